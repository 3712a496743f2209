package helper

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/teressaborra/Bookflix-sub000/database"
	"github.com/teressaborra/Bookflix-sub000/model"
)

// NewReleaseWindow is how long after its release date a movie counts as a
// new release for pricing purposes.
const NewReleaseWindow = 14 * 24 * time.Hour

var catalogScheduler gocron.Scheduler

// RefreshMovieCatalog moves movies through their lifecycle and keeps the
// new-release pricing flag in sync with the release date.
func RefreshMovieCatalog() {
	log.Println("[CRON] RefreshMovieCatalog triggered")

	db := database.DB
	now := time.Now()
	today := now.Truncate(24 * time.Hour)

	var movies []model.Movie
	if err := db.Find(&movies).Error; err != nil {
		log.Printf("catalog refresh: %v", err)
		return
	}

	for _, movie := range movies {
		updated := false

		releaseDate := movie.ReleaseDate.Truncate(24 * time.Hour)
		if !today.Before(releaseDate) && movie.Status == model.MovieComingSoon {
			movie.Status = model.MovieNowShowing
			updated = true
		}
		if movie.EndDate != nil {
			endDate := movie.EndDate.Truncate(24 * time.Hour)
			if today.After(endDate) && movie.Status == model.MovieNowShowing {
				movie.Status = model.MovieEnded
				updated = true
			}
		}

		isNew := !now.Before(movie.ReleaseDate) && now.Sub(movie.ReleaseDate) <= NewReleaseWindow
		if movie.IsNewRelease != isNew {
			movie.IsNewRelease = isNew
			updated = true
		}

		if updated {
			if err := db.Save(&movie).Error; err != nil {
				log.Printf("catalog refresh: save movie %q: %v", movie.Title, err)
			} else {
				log.Printf("movie %q -> status=%s newRelease=%v", movie.Title, movie.Status, movie.IsNewRelease)
			}
		}
	}
}

// RecomputeLoyaltyTiers re-derives every ledger's tier from its lifetime
// points, catching drift from manual adjustments.
func RecomputeLoyaltyTiers() {
	db := database.DB

	var ledgers []model.UserPoints
	if err := db.Find(&ledgers).Error; err != nil {
		log.Printf("tier recompute: %v", err)
		return
	}

	for _, ledger := range ledgers {
		tier := TierFor(ledger.TotalPoints)
		if tier == ledger.Tier {
			continue
		}
		if err := db.Model(&model.UserPoints{}).Where("id = ?", ledger.ID).Update("tier", tier).Error; err != nil {
			log.Printf("tier recompute: user %d: %v", ledger.UserId, err)
		}
	}
}

func StartCatalogScheduler() {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal(err)
	}

	catalogScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 5, 0),
			),
		),
		gocron.NewTask(func() {
			RefreshMovieCatalog()
			RecomputeLoyaltyTiers()
		}),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("catalog scheduler started (daily 00:05)")
}
