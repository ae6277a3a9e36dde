package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/kairos-ev/ordertrack/internal/config"
	"github.com/kairos-ev/ordertrack/internal/server/http/handlers"
	"github.com/kairos-ev/ordertrack/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.DealershipFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Handler())

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	adminHandler := handlers.NewAdminOrderHandler(facade)
	attachmentHandler := handlers.NewAttachmentHandler(facade)

	api := engine.Group("/api")

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	userAuth := user.Group("")
	userAuth.Use(middleware.AuthRequired(facade))
	userAuth.GET("/session", authHandler.Session)
	userAuth.POST("/orders", orderHandler.Create)
	userAuth.GET("/orders", orderHandler.List)
	userAuth.GET("/orders/:id", orderHandler.Get)
	userAuth.GET("/orders/:id/progress", orderHandler.Progress)
	userAuth.GET("/orders/:id/documents", attachmentHandler.ListDocuments)
	userAuth.POST("/orders/:id/documents", attachmentHandler.AddDocument)
	userAuth.GET("/orders/:id/receipts", attachmentHandler.ListReceipts)
	userAuth.POST("/orders/:id/receipts", attachmentHandler.AddReceipt)
	userAuth.GET("/orders/:id/messages", attachmentHandler.ListMessages)
	userAuth.POST("/orders/:id/messages", attachmentHandler.PostMessage)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(facade), middleware.AdminRequired())
	admin.GET("/orders", adminHandler.List)
	admin.POST("/orders", orderHandler.Create)
	admin.GET("/orders/stats", adminHandler.Stats)
	admin.PATCH("/orders/:id/status", adminHandler.Transition)
	admin.POST("/orders/:id/status", adminHandler.Transition)
	admin.POST("/orders/status", adminHandler.BulkTransition)
	admin.DELETE("/orders/:id", adminHandler.Delete)
	admin.POST("/orders/delete", adminHandler.BulkDelete)
	admin.POST("/orders/:id/receipts/:receiptID/verify", attachmentHandler.VerifyReceipt)

	return engine
}
