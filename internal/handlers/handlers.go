package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/solemate-shop/solemate-api/internal/apperrors"
	"github.com/solemate-shop/solemate-api/internal/config"
	"github.com/solemate-shop/solemate-api/internal/models"
	"github.com/solemate-shop/solemate-api/internal/service"
)

// Handlers holds all HTTP handlers for the API.
type Handlers struct {
	auth     *service.AuthService
	products *service.ProductService
	carts    *service.CartService
	orders   *service.OrderService
	payments *service.PaymentService
	config   *config.Config
	logger   *zap.Logger
	ready    func(ctx context.Context) error
}

// NewHandlers creates a new handlers instance.
func NewHandlers(
	auth *service.AuthService,
	products *service.ProductService,
	carts *service.CartService,
	orders *service.OrderService,
	payments *service.PaymentService,
	cfg *config.Config,
	logger *zap.Logger,
	ready func(ctx context.Context) error,
) *Handlers {
	return &Handlers{
		auth:     auth,
		products: products,
		carts:    carts,
		orders:   orders,
		payments: payments,
		config:   cfg,
		logger:   logger,
		ready:    ready,
	}
}

type response struct {
	Success bool               `json:"success"`
	Data    interface{}        `json:"data,omitempty"`
	Error   string             `json:"error,omitempty"`
	Meta    *models.Pagination `json:"meta,omitempty"`
}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, response{Success: true, Data: data})
}

func respondList(c *gin.Context, data interface{}, meta models.Pagination) {
	c.JSON(http.StatusOK, response{Success: true, Data: data, Meta: &meta})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, response{Success: false, Error: message})
}

// handleError maps service errors to HTTP statuses. Anything unmapped is a
// 500 with a generic message; the real error stays in the logs.
func (h *Handlers) handleError(c *gin.Context, err error) {
	if verr, ok := apperrors.AsValidation(err); ok {
		respondError(c, http.StatusBadRequest, verr.Message)
		return
	}

	switch err {
	case apperrors.ErrNotFound:
		respondError(c, http.StatusNotFound, "not found")
	case apperrors.ErrConflict:
		respondError(c, http.StatusConflict, "conflict")
	case apperrors.ErrUnauthorized:
		respondError(c, http.StatusUnauthorized, "invalid credentials")
	case apperrors.ErrForbidden:
		respondError(c, http.StatusForbidden, "forbidden")
	default:
		h.logger.Error("unhandled error", zap.String("path", c.Request.URL.Path), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}
