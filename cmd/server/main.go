package main

import (
	"fmt"
	"log"

	"github.com/Vlad1805/blogmates-backend/internal/config"
	"github.com/Vlad1805/blogmates-backend/internal/database"
	"github.com/Vlad1805/blogmates-backend/internal/handler"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "github.com/Vlad1805/blogmates-backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//go:generate swag init -g cmd/server/main.go -o docs

func init() {
	config.LoadConfig()
}

// @title           Blogmates API
// @version         1.0
// @description     This is the API for the Blogmates blogging service.
// @host            localhost:8080
// @BasePath        /api/v1
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	handler.RegisterRoutes(router)

	fmt.Printf("Server is running on %s\n", config.AppConfig.ServerAddress)
	fmt.Printf("Swagger UI is available at http://localhost%s/swagger/index.html\n", config.AppConfig.ServerAddress)
	log.Fatal(router.Run(config.AppConfig.ServerAddress))
}
