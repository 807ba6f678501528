package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery(), cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")

	api.POST("/login", loginHandler(deps.Users, deps.AuthSecret, deps.AuthTokenTTL))

	api.GET("/albums", listPublicAlbumsHandler(deps.Albums))
	api.GET("/albums/:id", optionalUser(deps.AuthSecret), showAlbumHandler(deps.Albums))

	// the payment provider calls back without credentials
	api.GET("/payment/success", paymentCallbackHandler(deps.Reconciler, callbackSuccessful))
	api.GET("/payment/cancel", paymentCallbackHandler(deps.Reconciler, callbackCanceled))
	api.GET("/payment/error", paymentCallbackHandler(deps.Reconciler, callbackUnsuccessful))

	authed := api.Group("", requireUser(deps.AuthSecret))
	{
		authed.GET("/my/albums", listOwnAlbumsHandler(deps.Albums))

		authed.GET("/addresses", listAddressesHandler(deps.Addresses))
		authed.POST("/addresses", createAddressHandler(deps.Addresses))

		authed.GET("/cart", showCartHandler(deps.CartSvc))
		authed.POST("/cart", addToCartHandler(deps.CartSvc))
		authed.PUT("/cart/:albumID", updateCartLineHandler(deps.CartSvc))
		authed.DELETE("/cart/:albumID", removeCartLineHandler(deps.CartSvc))
		authed.DELETE("/cart", emptyCartHandler(deps.CartSvc))

		authed.GET("/checkout", checkoutStartHandler(deps.CartSvc, deps.Addresses, deps.Guard))
		authed.POST("/checkout/addresses", checkoutAddressesHandler(deps.CartSvc, deps.Guard))
		authed.POST("/checkout/summary", checkoutSummaryHandler(deps.CartSvc, deps.Guard))
		authed.POST("/checkout/confirm", checkoutConfirmHandler(deps.CartSvc, deps.OrderSvc, deps.Reconciler, deps.Guard))

		authed.GET("/orders", listOrdersHandler(deps.OrderSvc))
		authed.GET("/orders/:id", showOrderHandler(deps.OrderSvc))
		authed.GET("/orders/:id/pay", payOrderHandler(deps.OrderSvc, deps.Reconciler))
		authed.POST("/orders/:id/sent", orderStatusHandler(deps.OrderSvc, actionSent))
		authed.POST("/orders/:id/block", orderStatusHandler(deps.OrderSvc, actionBlock))
		authed.POST("/orders/:id/unblock", orderStatusHandler(deps.OrderSvc, actionUnblock))
	}

	return router
}

// requestLogger logs one line per request with method, path, status and
// duration.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
