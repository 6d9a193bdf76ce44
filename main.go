package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"zid-retention-server/handlers/auth"
	"zid-retention-server/handlers/dashboard"
	"zid-retention-server/handlers/reminders"
	"zid-retention-server/handlers/templates"
	"zid-retention-server/jobs"
	"zid-retention-server/migrations"
	"zid-retention-server/seed"
	"zid-retention-server/services/messaging"
	"zid-retention-server/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env file:", err)
	}
}

func main() {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://web.zid.sa"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	utils.ConnectDatabase()

	migrations.MigrateMerchantsAndCustomers()
	migrations.MigrateReminders()

	if err := seed.SeedDemoMerchant(); err != nil {
		log.Fatalf("Failed to seed demo merchant: %v", err)
	}

	auth.RegisterAuthRoutes(r)
	dashboard.RegisterDashboardRoutes(r)
	reminders.RegisterReminderRoutes(r)
	templates.RegisterTemplateRoutes(r)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "timestamp": time.Now().Format(time.RFC3339)})
	})

	// Reminder cron: one dispatch pass now, then one per interval.
	interval := 5 * time.Minute
	if minutes, err := strconv.Atoi(os.Getenv("REMINDER_INTERVAL_MINUTES")); err == nil && minutes > 0 {
		interval = time.Duration(minutes) * time.Minute
	}
	cron := jobs.NewReminderCron(messaging.NewEngine(utils.RetentionDB), interval)
	cron.Start()

	// Stop the cron before exiting on SIGINT/SIGTERM; an in-flight pass
	// finishes first.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-quit
		log.Printf("%s received, shutting down gracefully...", sig)
		cron.Stop()
		os.Exit(0)
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
