package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/danuartha/delivery-app/config"
	"github.com/danuartha/delivery-app/events"
	"github.com/danuartha/delivery-app/models"
	"github.com/danuartha/delivery-app/router"
	"github.com/danuartha/delivery-app/services"
	"github.com/danuartha/delivery-app/utils"
)

func main() {
	// .env opsional, di production semua lewat environment asli
	_ = godotenv.Load()

	utils.InitLogger()

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("database connection failed: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Verification{},
		&models.Category{},
		&models.Restaurant{},
		&models.Dish{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	); err != nil {
		utils.ErrorLogger.Fatalf("migration failed: %v", err)
	}

	hub := events.NewHub()

	paymentSvc := services.NewPaymentService(db)
	if err := paymentSvc.StartPromotionSweeper(); err != nil {
		utils.ErrorLogger.Fatalf("promotion sweeper failed to start: %v", err)
	}
	defer paymentSvc.StopPromotionSweeper()

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.SetupRouter(db, hub, paymentSvc)
	if err := r.SetTrustedProxies(nil); err != nil {
		utils.ErrorLogger.Fatalf("failed to set trusted proxies: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	utils.InfoLogger.Printf("delivery-app listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatalf("server stopped: %v", err)
	}
}
