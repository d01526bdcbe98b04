package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solemate-shop/solemate-api/internal/middleware"
	"github.com/solemate-shop/solemate-api/internal/models"
)

// CreatePayment handles POST /api/payment/create-payment.
func (h *Handlers) CreatePayment(c *gin.Context) {
	var req models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.payments.CreatePayment(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	respondData(c, http.StatusOK, resp)
}

// PaymentCallback handles POST /api/payment/callback, the provider's
// server-to-server webhook. The provider posts a form with data and
// signature fields; a JSON body with the same fields is accepted as well.
func (h *Handlers) PaymentCallback(c *gin.Context) {
	data := c.PostForm("data")
	signature := c.PostForm("signature")

	if data == "" {
		var body struct {
			Data      string `json:"data"`
			Signature string `json:"signature"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || body.Data == "" {
			respondError(c, http.StatusBadRequest, "data and signature are required")
			return
		}
		data, signature = body.Data, body.Signature
	}

	if err := h.payments.HandleCallback(c.Request.Context(), data, signature); err != nil {
		h.handleError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"received": true})
}

// PaymentStatus handles GET /api/payment/status/:orderId.
func (h *Handlers) PaymentStatus(c *gin.Context) {
	resp, err := h.payments.GetPaymentStatus(c.Request.Context(),
		c.Param("orderId"), middleware.UserID(c), middleware.IsAdmin(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	respondData(c, http.StatusOK, resp)
}
