package main

import (
	"log"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"gehna-backend/internal/config"
	"gehna-backend/internal/database"
	"gehna-backend/internal/routes"
)

func main() {
	config.Load()

	database.Connect()
	defer database.Close()

	r := gin.Default()
	r.Use(cors.New(corsConfig()))

	routes.RegisterRoutes(r)

	port := config.Getenv("PORT", "5000")
	log.Println("🚀 Gehna backend listening on port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("❌ Server failed:", err)
	}
}

func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()

	origins := config.Getenv("CORS_ORIGIN", "http://localhost:5173")
	cfg.AllowOrigins = strings.Split(origins, ",")
	cfg.AllowCredentials = true
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")

	return cfg
}
