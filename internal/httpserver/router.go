package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	metrics := newServerMetrics()
	router.Use(metrics.middleware())

	router.GET("/healthz", healthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.registry, promhttp.HandlerOpts{})))

	h := &cartHandlers{svc: deps.CartSvc}
	carts := router.Group("/carts")
	carts.POST("", h.createCart)
	carts.GET("/:cartId", h.getCart)
	carts.DELETE("/:cartId", h.deleteCart)
	carts.POST("/:cartId/items", h.addItem)
	carts.DELETE("/:cartId/items", h.clearCart)
	carts.PATCH("/:cartId/items/:itemId", h.updateItemQuantity)
	carts.DELETE("/:cartId/items/:itemId", h.removeItem)

	return router
}
