package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solemate-shop/solemate-api/internal/middleware"
	"github.com/solemate-shop/solemate-api/internal/models"
)

// GetCart handles GET /api/cart.
func (h *Handlers) GetCart(c *gin.Context) {
	cart, err := h.carts.GetCart(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	respondData(c, http.StatusOK, cart)
}

// AddCartItem handles POST /api/cart/items.
func (h *Handlers) AddCartItem(c *gin.Context) {
	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	cart, err := h.carts.AddItem(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	respondData(c, http.StatusOK, cart)
}

// UpdateCartItem handles PUT /api/cart/items.
func (h *Handlers) UpdateCartItem(c *gin.Context) {
	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	cart, err := h.carts.UpdateItem(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	respondData(c, http.StatusOK, cart)
}

// RemoveCartItem handles DELETE /api/cart/items.
func (h *Handlers) RemoveCartItem(c *gin.Context) {
	var req models.RemoveCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	cart, err := h.carts.RemoveItem(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	respondData(c, http.StatusOK, cart)
}

// ClearCart handles DELETE /api/cart.
func (h *Handlers) ClearCart(c *gin.Context) {
	if err := h.carts.Clear(c.Request.Context(), middleware.UserID(c)); err != nil {
		h.handleError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"cleared": true})
}
