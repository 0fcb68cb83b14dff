package utils

import (
	"lms/config"
	"lms/database"
	"lms/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// FailStalePendingPurchases marks pending purchases older than the configured
// TTL as failed. A checkout session expires at the gateway long before that,
// so nothing can complete these rows anymore.
func FailStalePendingPurchases() {
	ttl := time.Duration(config.AppConfig.PendingPurchaseTTLHours) * time.Hour
	cutoff := time.Now().Add(-ttl)

	result := database.Database.Db.Model(&models.CoursePurchase{}).
		Where("status = ? AND created_at < ?", models.PurchaseStatusPending, cutoff).
		Update("status", models.PurchaseStatusFailed)
	if result.Error != nil {
		log.Printf("Purchase sweeper failed: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Purchase sweeper failed %d stale pending purchases", result.RowsAffected)
	}
}

// InitializePurchaseSweeper starts the hourly stale-purchase sweep
func InitializePurchaseSweeper() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@hourly", FailStalePendingPurchases); err != nil {
		log.Printf("Failed to schedule purchase sweeper: %v", err)
		return c
	}

	c.Start()
	log.Println("Purchase sweeper scheduled (hourly)")
	return c
}
