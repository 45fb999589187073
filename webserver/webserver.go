package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"CRMBackend/configuration"
	"CRMBackend/logger"
	"CRMBackend/metrics"
)

// SetupRouter builds the gin engine with all middleware and routes. Split
// out from StartWebServer so handler tests can drive it with httptest.
func SetupRouter() *gin.Engine {
	cfg := configuration.Get()
	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestLogger())
	r.Use(gin.Recovery())
	r.Use(RateLimiter(cfg.RateLimits.RequestsPerSecond, cfg.RateLimits.Burst))

	r.GET("/health", healthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	v1 := r.Group("/api/v1")
	{
		customers := v1.Group("/customers")
		{
			customers.GET("", listCustomers)
			customers.POST("", createCustomer)
			customers.POST("/bulk", bulkCreateCustomers)
		}

		products := v1.Group("/products")
		{
			products.GET("", listProducts)
			products.POST("", createProduct)
		}

		orders := v1.Group("/orders")
		{
			orders.GET("", listOrders)
			orders.POST("", createOrder)
		}

		v1.GET("/stats", getStats)
	}

	return r
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// StartWebServer runs the HTTP server until ctx is cancelled, then drains
// in-flight requests for up to ten seconds.
func StartWebServer(ctx context.Context) error {
	cfg := configuration.Get()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      SetupRouter(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Infof("Web server listening on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("web server error: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web server shutdown error: %w", err)
	}
	return <-errCh
}
