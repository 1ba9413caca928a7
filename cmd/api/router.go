package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"futsal-backend/internal/shared/middleware"
	"futsal-backend/pkg/container"
)

// setupRouter builds the route tree:
//
//	/api/v1/health
//	/api/v1/auth/...       public
//	/api/v1/customer/...   JWT protected
//	/api/v1/admin/...      JWT protected
func setupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())

	v1 := router.Group("/api/v1")

	v1.GET("/health", healthCheck(c))

	// Public authentication routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/forgot-password", c.ResetHandler.RequestReset)
		auth.POST("/reset-password/validate", c.ResetHandler.ValidateToken)
		auth.POST("/reset-password", c.ResetHandler.ResetPassword)
	}

	// Customer routes (authenticated)
	customer := v1.Group("/customer")
	customer.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		customer.GET("/profile", c.UserHandler.GetProfile)
		customer.PUT("/profile", c.UserHandler.UpdateProfile)

		customer.GET("/fields", c.FieldHandler.ListFields)
		customer.GET("/fields/:id", c.FieldHandler.GetField)

		customer.POST("/bookings", c.BookingHandler.Create)
		customer.GET("/bookings", c.BookingHandler.ListMyBookings)
		customer.GET("/bookings/:id", c.BookingHandler.GetDetail)
		customer.PUT("/bookings/:id/cancel", c.BookingHandler.Cancel)
		customer.POST("/bookings/check-availability", c.BookingHandler.CheckAvailability)

		customer.GET("/dashboard", c.BookingHandler.Dashboard)
	}

	// Admin routes (authenticated + admin role)
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(c.JWTManager))
	admin.Use(middleware.AdminMiddleware())
	{
		admin.PUT("/users/:id/status", c.UserHandler.UpdateUserStatus)
		admin.PUT("/bookings/:id/status", c.BookingHandler.UpdateStatus)
	}

	return router
}

func healthCheck(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := http.StatusOK
		checks := gin.H{"database": "ok", "redis": "ok"}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			checks["database"] = err.Error()
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			checks["redis"] = err.Error()
		}

		ctx.JSON(status, gin.H{
			"status":  http.StatusText(status),
			"version": c.Config.App.Version,
			"checks":  checks,
		})
	}
}
