package helper

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/teressaborra/Bookflix-sub000/database"
	"github.com/teressaborra/Bookflix-sub000/model"
)

var pricingScheduler *cron.Cron

// StartPricingScheduler sweeps upcoming shows every 5 minutes: expired
// shows are flagged and every scheduled show gets a fresh demand-based
// price (which also self-heals the booked-seat counters).
func StartPricingScheduler() {
	pricingScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := pricingScheduler.AddFunc("*/5 * * * *", func() {
		expireStartedShows()
		refreshUpcomingShowPrices()
	})
	if err != nil {
		log.Printf("pricing scheduler init failed: %v", err)
		return
	}

	pricingScheduler.Start()
	log.Println("pricing scheduler started (every 5 minutes)")
}

func StopPricingScheduler() {
	if pricingScheduler != nil {
		pricingScheduler.Stop()
		log.Println("pricing scheduler stopped")
	}
}

func expireStartedShows() {
	now := time.Now()
	result := database.DB.Model(&model.Show{}).
		Where("status = ? AND start_time < ?", model.ShowScheduled, now).
		Update("status", model.ShowExpired)

	if result.Error != nil {
		log.Printf("expire shows: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("marked %d shows as expired", result.RowsAffected)
	}
}

func refreshUpcomingShowPrices() {
	now := time.Now()

	var showIds []uint
	if err := database.DB.Model(&model.Show{}).
		Where("status = ? AND start_time > ?", model.ShowScheduled, now).
		Pluck("id", &showIds).Error; err != nil {
		log.Printf("pricing sweep: list shows: %v", err)
		return
	}

	for _, id := range showIds {
		if _, err := RecalculateShowPricing(database.DB, id, now); err != nil {
			log.Printf("pricing sweep: show %d: %v", id, err)
		}
	}
}
