package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-gudang-tekstil/internal/config"
	"go-gudang-tekstil/internal/handler"
	"go-gudang-tekstil/internal/middleware"
	"go-gudang-tekstil/internal/repository"
	"go-gudang-tekstil/internal/service"
	"go-gudang-tekstil/internal/ws"
	"go-gudang-tekstil/pkg/database"
	"go-gudang-tekstil/pkg/token"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}
	cfg := config.Load()

	// 2. Setup Database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database. \n", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database. \n", err)
	}
	log.Println("Database connection established")

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)

	tokens := token.NewMaker(cfg.JWTSecret, cfg.TokenTTL())

	authService := service.NewAuthService(userRepo, tokens, cfg.BcryptCost)
	productService := service.NewProductService(productRepo, wsHub, cfg.DefaultPageLimit, cfg.MaxPageLimit, cfg.LowStockThreshold)
	dashService := service.NewDashboardService(productRepo, cfg.LowStockThreshold, cfg.LowStockLimit)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	categoryHandler := handler.NewCategoryHandler(productService)
	dashHandler := handler.NewDashboardHandler(dashService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:      "Gudang Tekstil API v1.0",
		ErrorHandler: handler.NewErrorHandler(cfg.IsProduction()),
	})

	// Middleware
	app.Use(logger.New())  // Request logging
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.FrontendURL,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
	}))

	// 6. Routes
	api := app.Group(cfg.APIPrefix)

	requireAuth := middleware.RequireAuth(userRepo, tokens)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", requireAuth, authHandler.Logout)
	auth.Get("/me", requireAuth, authHandler.Me)

	// Health check (public)
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"success":   true,
			"message":   "API is running",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// All routes below require authentication
	protected := api.Group("", requireAuth)

	// Product routes
	protected.Get("/products", productHandler.List)
	protected.Get("/products/:id", productHandler.Get)
	protected.Post("/products", productHandler.Create)
	protected.Put("/products/:id", productHandler.Update)
	protected.Patch("/products/:id", productHandler.Update)
	protected.Delete("/products/:id", productHandler.Delete)

	// Category and size routes
	protected.Get("/categories", categoryHandler.GetCategories)
	protected.Get("/sizes", categoryHandler.GetSizes)

	// Dashboard routes
	protected.Get("/dashboard/stats", dashHandler.GetStats)
	protected.Get("/dashboard/low-stock", dashHandler.GetLowStock)

	// WebSocket route for catalog events
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register(c)
		defer wsHub.Unregister(c)

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 404 handler (must be last)
	app.Use(handler.NotFoundHandler)

	// 7. Start & Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()
	log.Printf("Server running on port %s (%s)", cfg.Port, cfg.Env)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		log.Printf("Forced shutdown after timeout: %v", err)
	}
	if err := database.Close(db); err != nil {
		log.Printf("Error closing database: %v", err)
	}

	log.Println("Server exited")
}
