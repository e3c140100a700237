package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/adminpanel/dashboard/config"
	"github.com/adminpanel/dashboard/database"
	"github.com/adminpanel/dashboard/middlewares"
	"github.com/adminpanel/dashboard/models"
	"github.com/adminpanel/dashboard/router"
	"github.com/adminpanel/dashboard/services"
	"github.com/adminpanel/dashboard/utils"
	"gorm.io/gorm"
)

func init() {
	// Load .env di awal sebelum apapun
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	// Initialize DB
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	// Simpan koneksi database untuk dipakai lintas package
	utils.InitDB(db)

	// Set gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	if err := database.SeedAdmin(db); err != nil {
		utils.ErrorLogger.Printf("Error seeding admin account: %v", err)
	}

	// Blacklist access token: Redis kalau dikonfigurasi, selain itu in-memory
	blacklist := utils.NewTokenBlacklist()

	// Dispatcher push notification (RabbitMQ atau log-only)
	dispatcher, err := services.NewDispatcher(os.Getenv("AMQP_URL"))
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect dispatcher: %v", err)
	}
	defer dispatcher.Close()

	// Monitor notifikasi terjadwal
	monitor := services.NewScheduleMonitor(db, dispatcher)
	monitor.Start()
	defer monitor.Stop()

	// Setup router + rate limiter global
	r := router.SetupRouter(db, blacklist)
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Information{},
		&models.Notification{},
		&models.Report{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
