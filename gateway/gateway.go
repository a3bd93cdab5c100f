package gateway

import (
	"errors"
	"net/http"
	"time"

	"github.com/Sakthivel0926/food-ordering-backend/pkg/config"
	"github.com/Sakthivel0926/food-ordering-backend/pkg/ordering"
	"github.com/Sakthivel0926/food-ordering-backend/pkg/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Gateway struct {
	config *config.Config
	logger *zap.Logger
	router *gin.Engine
	foods  *repository.FoodStore
	cache  *repository.RedisRepository
	orders *ordering.Service
}

func NewGateway(cfg *config.Config, logger *zap.Logger, foods *repository.FoodStore, cache *repository.RedisRepository, orders *ordering.Service) *Gateway {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggerMiddleware(logger))

	return &Gateway{
		config: cfg,
		logger: logger,
		router: router,
		foods:  foods,
		cache:  cache,
		orders: orders,
	}
}

func (g *Gateway) SetupRoutes() {
	// Health check
	g.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := g.router.Group("/api")
	{
		// Food catalog routes
		food := api.Group("/food")
		{
			food.GET("", g.listFood)
			food.GET("/:id", g.getFood)
			food.POST("", g.createFood)
			food.PUT("/:id", g.updateFood)
			food.DELETE("/:id", g.deleteFood)
		}

		// Order routes
		orders := api.Group("/orders")
		{
			orders.POST("", g.createOrder)
			orders.GET("", g.listOrders)
			orders.PUT("/:id/cancel", g.cancelOrder)
			orders.PUT("/:id/delivered", g.deliverOrder)
			orders.PUT("/:id/status", g.updateOrderStatus)
		}
	}
}

func (g *Gateway) Start() error {
	addr := g.config.Server.Addr()
	g.logger.Info("Gateway starting", zap.String("address", addr))
	return g.router.Run(addr)
}

// respondError maps domain errors to HTTP statuses: validation and business
// rule failures are 400, missing entities 404, anything unexpected a generic
// 500 without internal detail.
func (g *Gateway) respondError(c *gin.Context, err error) {
	var (
		invalidRef   *ordering.InvalidReferenceError
		notFound     *ordering.NotFoundError
		invalidQty   *ordering.InvalidQuantityError
		insufficient *ordering.InsufficientStockError
		notCancel    *ordering.NotCancellableError
		invalidTrans *ordering.InvalidTransitionError
	)

	switch {
	case errors.Is(err, ordering.ErrNoItems):
		c.JSON(http.StatusBadRequest, gin.H{"message": "No items in order"})
	case errors.As(err, &invalidRef):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.As(err, &invalidQty):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.As(err, &insufficient):
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   err.Error(),
			"foodId":    insufficient.FoodID,
			"available": insufficient.Available,
			"requested": insufficient.Requested,
		})
	case errors.As(err, &notCancel):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.As(err, &invalidTrans):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		g.logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
