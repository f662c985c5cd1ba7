package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-bom-catalog/internal/handler"
	"go-bom-catalog/internal/model"
	"go-bom-catalog/internal/repository"
	"go-bom-catalog/internal/service"
	"go-bom-catalog/internal/ws"
	"go-bom-catalog/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	db := database.ConnectDB()
	if err := db.AutoMigrate(&model.Feedstock{}, &model.Product{}, &model.ProductFeedstock{}); err != nil {
		log.Fatal("Migration failed: ", err)
	}

	wsHub := ws.NewHub()
	go wsHub.Run()

	feedstockRepo := repository.NewFeedstockRepo(db)
	productRepo := repository.NewProductRepo(db)

	feedstockService := service.NewFeedstockService(feedstockRepo, wsHub)
	productService := service.NewProductService(productRepo, db, wsHub)

	feedstockHandler := handler.NewFeedstockHandler(feedstockService)
	productHandler := handler.NewProductHandler(productService)

	app := fiber.New(fiber.Config{
		AppName: "BOM Catalog v1.0",
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	api := app.Group("/api/v1")

	feedstocks := api.Group("/feedstocks")
	feedstocks.Get("/", feedstockHandler.List)
	feedstocks.Get("/:id", feedstockHandler.Get)
	feedstocks.Post("/", feedstockHandler.Create)
	feedstocks.Put("/:id", feedstockHandler.Update)
	feedstocks.Delete("/:id", feedstockHandler.Delete)

	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.Get)
	products.Post("/", productHandler.Create)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
