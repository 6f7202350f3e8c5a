package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gehna-backend/internal/handlers"
	"gehna-backend/internal/handlers/admin"
	"gehna-backend/internal/handlers/order"
	"gehna-backend/internal/handlers/product"
	"gehna-backend/internal/handlers/user"
	"gehna-backend/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "🚀 Gehna backend running")
	})

	api := r.Group("/api")

	// Auth
	auth := api.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/register-admin", handlers.RegisterAdmin)
		auth.POST("/login", handlers.Login)
		auth.GET("/me", middleware.AuthRequired(), handlers.Me)
	}

	// Catalog
	products := api.Group("/products")
	{
		products.GET("", product.List)
		products.GET("/sale", product.ListSale)
		products.GET("/slug/:slug", product.GetBySlug)
		products.GET("/category/:category", product.ListByCategory)
		products.GET("/:id", product.GetByID)

		products.POST("", middleware.AuthRequired(), middleware.RequireAdmin, product.Create)
		products.PUT("/:id", middleware.AuthRequired(), middleware.RequireAdmin, product.Update)
		products.DELETE("/:id", middleware.AuthRequired(), middleware.RequireAdmin, product.Delete)

		products.POST("/:id/reviews", middleware.AuthRequired(), product.AddReview)
	}

	// Orders & hampers. Static routes (custom, myorders, hamper) must be
	// declared before the :id routes are matched.
	orders := api.Group("/orders", middleware.AuthRequired())
	{
		orders.POST("/custom", order.CreateHamper)
		orders.GET("/hamper/my", order.MyHampers)
		orders.GET("/hamper", middleware.RequireAdmin, order.ListAllHampers)
		orders.PUT("/hamper/:id", middleware.RequireAdmin, order.UpdateHamperStatus)

		orders.POST("", order.Create)
		orders.GET("/myorders", order.MyOrders)
		orders.GET("", middleware.RequireAdmin, order.ListAll)

		orders.GET("/:id", order.GetByID)
		orders.PUT("/:id", middleware.RequireAdmin, order.UpdateStatus)
	}

	// Admin back-office
	adminGroup := api.Group("/admin", middleware.AuthRequired(), middleware.RequireAdmin)
	{
		adminGroup.GET("/stats", admin.Stats)
		adminGroup.GET("/sales-history", admin.SalesHistory)

		adminGroup.GET("/products", product.List)
		adminGroup.POST("/products", product.Create)
		adminGroup.PUT("/products/:id", product.Update)
		adminGroup.DELETE("/products/:id", product.Delete)

		adminGroup.GET("/orders", order.ListAll)
		adminGroup.PUT("/orders/:id", order.UpdateStatus)
	}

	// Users
	users := api.Group("/users")
	{
		users.POST("/profile-pic", middleware.AuthRequired(), user.UploadProfilePic)
	}

	// Generic admin image upload
	api.POST("/upload", middleware.AuthRequired(), middleware.RequireAdmin, handlers.UploadImage)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})
}
