package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solemate-shop/solemate-api/internal/middleware"
	"github.com/solemate-shop/solemate-api/internal/models"
)

// Register handles POST /api/auth/register.
func (h *Handlers) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.auth.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	respondData(c, http.StatusCreated, resp)
}

// Login handles POST /api/auth/login.
func (h *Handlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	respondData(c, http.StatusOK, resp)
}

// Me handles GET /api/auth/me.
func (h *Handlers) Me(c *gin.Context) {
	user, err := h.auth.GetUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	respondData(c, http.StatusOK, user)
}
