package router

import (
	"pos-service/internal/handlers"
	"pos-service/internal/service"

	"github.com/gin-contrib/cors"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

func Router(orders service.OrderService, catalog service.CatalogService, inventory service.InventoryService, log *zap.Logger) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Actor"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	orderHandler := handlers.NewOrderHandler(orders, log)
	catalogHandler := handlers.NewCatalogHandler(catalog, log)
	inventoryHandler := handlers.NewInventoryHandler(inventory, log)

	api := r.Group("/api/v1")

	o := api.Group("/orders")
	{
		o.POST("", orderHandler.Create)
		o.GET("", orderHandler.List)
		o.GET("/:id", orderHandler.Get)
		o.DELETE("/:id", orderHandler.Delete)
		o.GET("/code/:code", orderHandler.GetByCode)
		o.POST("/:id/items", orderHandler.AddItem)
		o.PATCH("/:id/items/:itemId", orderHandler.UpdateItem)
		o.DELETE("/:id/items/:itemId", orderHandler.RemoveItem)
		o.POST("/:id/status", orderHandler.Transition)
	}

	p := api.Group("/products")
	{
		p.POST("", catalogHandler.Create)
		p.GET("", catalogHandler.List)
		p.GET("/:id", catalogHandler.Get)
		p.PATCH("/:id", catalogHandler.Update)
		p.DELETE("/:id", catalogHandler.Delete)
		p.PUT("/:id/recipe", catalogHandler.SetRecipe)
		p.POST("/:id/stock", catalogHandler.AddStock)
		p.GET("/:id/availability", orderHandler.Availability)
	}

	i := api.Group("/ingredients")
	{
		i.POST("", inventoryHandler.CreateIngredient)
		i.GET("", inventoryHandler.ListIngredients)
		i.GET("/low-stock", inventoryHandler.ListLowStock)
		i.GET("/:id", inventoryHandler.GetIngredient)
		i.PATCH("/:id", inventoryHandler.UpdateIngredient)
		i.DELETE("/:id", inventoryHandler.DeleteIngredient)
		i.POST("/:id/restock", inventoryHandler.Restock)
		i.POST("/:id/write-off", inventoryHandler.WriteOff)
	}

	cat := api.Group("/categories")
	{
		cat.POST("", inventoryHandler.CreateCategory)
		cat.GET("", inventoryHandler.ListCategories)
		cat.DELETE("/:id", inventoryHandler.DeleteCategory)
	}

	return r
}
