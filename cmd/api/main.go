package main

import (
	"log"

	"github.com/Harishkumar132003/service-app-backend/internal/api/handlers"
	"github.com/Harishkumar132003/service-app-backend/internal/api/middleware"
	"github.com/Harishkumar132003/service-app-backend/internal/api/routes"
	"github.com/Harishkumar132003/service-app-backend/internal/application"
	"github.com/Harishkumar132003/service-app-backend/internal/config"
	"github.com/Harishkumar132003/service-app-backend/internal/config/db"
	"github.com/Harishkumar132003/service-app-backend/internal/domain/category"
	"github.com/Harishkumar132003/service-app-backend/internal/domain/company"
	"github.com/Harishkumar132003/service-app-backend/internal/domain/invoice"
	"github.com/Harishkumar132003/service-app-backend/internal/domain/ticket"
	"github.com/Harishkumar132003/service-app-backend/internal/domain/user"
	"github.com/Harishkumar132003/service-app-backend/internal/repository"
	"github.com/Harishkumar132003/service-app-backend/internal/seed"
	"github.com/Harishkumar132003/service-app-backend/internal/storage"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	middleware.Init()
	db.Init()

	if err := db.DB.AutoMigrate(
		&company.Company{},
		&user.User{},
		&category.Category{},
		&ticket.Ticket{},
		&invoice.Invoice{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if err := repository.EnsureInvoiceIndexes(db.DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := seed.Run(db.DB, config.SeedFile); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	images, err := storage.NewMinioStore()
	if err != nil {
		log.Fatalf("Failed to connect to object storage: %v", err)
	}

	repos := repository.NewRepositories(db.DB)
	services := application.New(repos, images)

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	routes.Register(router, handlers.New(services))

	port := ":" + config.ServerPort
	log.Printf("Starting API server on %s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
}
