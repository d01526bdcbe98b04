package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/solemate-shop/solemate-api/internal/middleware"
	"github.com/solemate-shop/solemate-api/internal/models"
)

// CreateOrder handles POST /api/orders.
func (h *Handlers) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	respondData(c, http.StatusCreated, order)
}

// MyOrders handles GET /api/orders/my-orders.
func (h *Handlers) MyOrders(c *gin.Context) {
	filter := orderFilterFromQuery(c)
	filter.UserID = middleware.UserID(c)

	orders, pagination, err := h.orders.ListOrders(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	respondList(c, orders, pagination)
}

// GetOrder handles GET /api/orders/:id.
func (h *Handlers) GetOrder(c *gin.Context) {
	order, err := h.orders.GetOrder(c.Request.Context(), c.Param("id"), middleware.UserID(c), middleware.IsAdmin(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	respondData(c, http.StatusOK, order)
}

// UpdateOrderStatus handles PUT /api/orders/:id/status (admin only).
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	respondData(c, http.StatusOK, order)
}

// CancelOrder handles POST /api/orders/:id/cancel.
func (h *Handlers) CancelOrder(c *gin.Context) {
	order, err := h.orders.CancelOrder(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	respondData(c, http.StatusOK, order)
}

// AdminListOrders handles GET /api/admin/orders (admin only).
func (h *Handlers) AdminListOrders(c *gin.Context) {
	filter := orderFilterFromQuery(c)

	orders, pagination, err := h.orders.ListOrders(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	respondList(c, orders, pagination)
}

func orderFilterFromQuery(c *gin.Context) *models.OrderListFilter {
	filter := &models.OrderListFilter{
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", 20),
	}
	if raw := c.Query("status"); raw != "" {
		status := models.OrderStatus(raw)
		filter.Status = &status
	}
	if raw := c.Query("paymentStatus"); raw != "" {
		status := models.PaymentStatus(raw)
		filter.PaymentStatus = &status
	}
	if ts, err := time.Parse(time.RFC3339, c.Query("from")); err == nil {
		filter.From = &ts
	}
	if ts, err := time.Parse(time.RFC3339, c.Query("to")); err == nil {
		filter.To = &ts
	}
	return filter
}
