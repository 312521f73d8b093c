package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	orderControllers "github.com/samcraw1/walters-kitchen-kiosk/controllers/order"
	"github.com/samcraw1/walters-kitchen-kiosk/mailer"
	"github.com/samcraw1/walters-kitchen-kiosk/models"
	"github.com/samcraw1/walters-kitchen-kiosk/payments"
	"github.com/samcraw1/walters-kitchen-kiosk/routes"
	"github.com/samcraw1/walters-kitchen-kiosk/settings"
)

func main() {
	log.Println("✅ Starting Walter's Kitchen kiosk API...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB; the kiosk keeps serving (degraded) without one
	db := initDatabase()
	if db != nil {
		if err := db.AutoMigrate(
			&models.MenuCategory{},
			&models.MenuItem{},
			&models.Order{},
			&models.OrderItem{},
			&models.Setting{},
		); err != nil {
			log.Fatalf("❌ AutoMigrate failed: %v", err)
		}
	}

	store := settings.NewStore(db)

	// Optional order-notification email
	var notifier *mailer.Notifier
	if key := os.Getenv("RESEND_API_KEY"); key != "" && os.Getenv("RESTAURANT_EMAIL") != "" {
		notifier = mailer.New(key, os.Getenv("RESTAURANT_EMAIL"))
		log.Println("📧 Order notification email enabled")
	}

	orders := orderControllers.NewService(db, store, notifier)

	// Payment processors: one variant per deployment, picked by which
	// credentials are present
	var stripeProc *payments.StripeProcessor
	if key := os.Getenv("STRIPE_SECRET_KEY"); key != "" {
		stripeProc = payments.NewStripeProcessor(key, os.Getenv("STRIPE_WEBHOOK_SECRET"), store)
		log.Println("💳 Stripe payments enabled")
	}
	var squareProc *payments.SquareProcessor
	if appID := os.Getenv("SQUARE_APPLICATION_ID"); appID != "" {
		squareProc = payments.NewSquareProcessor(
			appID,
			os.Getenv("SQUARE_APPLICATION_SECRET"),
			os.Getenv("SQUARE_ACCESS_TOKEN"),
			os.Getenv("SQUARE_LOCATION_ID"),
			os.Getenv("SQUARE_ENVIRONMENT"),
			store,
		)
		log.Println("💳 Square payments enabled")
	}
	if stripeProc == nil && squareProc == nil {
		log.Println("⚠️ No payment processor configured")
	}

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Admin-Password", "Stripe-Signature"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, db, store, orders, stripeProc, squareProc)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	log.Printf("🚀 Walter's Kitchen API running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection. A missing configuration is
// tolerated; a configured-but-unreachable database is not.
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	if host == "" {
		log.Println("⚠️ Database not configured")
		return nil
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host,
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}
