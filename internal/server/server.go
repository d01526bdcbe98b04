package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/solemate-shop/solemate-api/internal/config"
	"github.com/solemate-shop/solemate-api/internal/handlers"
	"github.com/solemate-shop/solemate-api/internal/middleware"
	"github.com/solemate-shop/solemate-api/internal/service"
)

// Server wires the router and owns the HTTP listener lifecycle.
type Server struct {
	config   *config.Config
	router   *gin.Engine
	handlers *handlers.Handlers
	auth     *service.AuthService
	httpSrv  *http.Server
	logger   *zap.Logger
}

// NewServer builds the router with all routes registered.
func NewServer(cfg *config.Config, h *handlers.Handlers, auth *service.AuthService, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.Server.FrontendURL))

	s := &Server{
		config:   cfg,
		router:   router,
		handlers: h,
		auth:     auth,
		logger:   logger,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handlers.Health)
	s.router.GET("/ready", s.handlers.Ready)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api")

	authn := middleware.RequireAuth(s.auth)
	admin := middleware.RequireAdmin()

	auth := api.Group("/auth")
	{
		auth.POST("/register", s.handlers.Register)
		auth.POST("/login", s.handlers.Login)
		auth.GET("/me", authn, s.handlers.Me)
	}

	products := api.Group("/products")
	{
		products.GET("", s.handlers.ListProducts)
		products.GET("/:id", s.handlers.GetProduct)
	}

	cart := api.Group("/cart", authn)
	{
		cart.GET("", s.handlers.GetCart)
		cart.POST("/items", s.handlers.AddCartItem)
		cart.PUT("/items", s.handlers.UpdateCartItem)
		cart.DELETE("/items", s.handlers.RemoveCartItem)
		cart.DELETE("", s.handlers.ClearCart)
	}

	orders := api.Group("/orders", authn)
	{
		orders.POST("", s.handlers.CreateOrder)
		orders.GET("/my-orders", s.handlers.MyOrders)
		orders.GET("/:id", s.handlers.GetOrder)
		orders.PUT("/:id/status", admin, s.handlers.UpdateOrderStatus)
		orders.POST("/:id/cancel", s.handlers.CancelOrder)
	}

	api.GET("/admin/orders", authn, admin, s.handlers.AdminListOrders)

	payment := api.Group("/payment")
	{
		payment.POST("/create-payment", authn, s.handlers.CreatePayment)
		payment.GET("/status/:orderId", authn, s.handlers.PaymentStatus)
		// The provider authenticates with its signature, not a bearer token.
		payment.POST("/callback", s.handlers.PaymentCallback)
	}
}

// Start begins serving and blocks until the listener stops.
func (s *Server) Start() error {
	s.httpSrv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Server.Port),
		Handler:      s.router,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
	}

	s.logger.Info("starting server", zap.String("addr", s.httpSrv.Addr))

	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
