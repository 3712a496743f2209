package database

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/teressaborra/Bookflix-sub000/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func parseDate(dateStr string) time.Time {
	t, _ := time.Parse("2006-01-02", dateStr)
	return t
}

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
	hashPassword := string(bytes)
	if err != nil {
		hashPassword = "admin123"
	}

	users := []model.User{
		{Name: "Administrator", Email: "admin@bookflix.local", Password: hashPassword, Role: model.RoleAdmin, Active: true},
	}
	for _, user := range users {
		if err := db.Where(model.User{Email: user.Email}).FirstOrCreate(&user).Error; err != nil {
			log.Println("failed to seed user:", user.Email, "error:", err)
			continue
		}
		points := model.UserPoints{UserId: user.ID, Tier: model.TierBronze}
		if err := db.Where(model.UserPoints{UserId: user.ID}).FirstOrCreate(&points).Error; err != nil {
			log.Println("failed to seed points ledger for:", user.Email, "error:", err)
		}
	}

	movies := []model.Movie{
		{Title: "Interstellar Horizons", Genre: "SCI_FI", DurationMin: 162, ReleaseDate: parseDate("2026-08-21"), IsNewRelease: true, Status: model.MovieNowShowing},
		{Title: "The Last Heist", Genre: "THRILLER", DurationMin: 118, ReleaseDate: parseDate("2026-07-03"), Status: model.MovieNowShowing},
		{Title: "Paper Lanterns", Genre: "DRAMA", DurationMin: 104, ReleaseDate: parseDate("2026-10-01"), Status: model.MovieComingSoon},
	}
	for _, movie := range movies {
		movie.Slug = slug.Make(movie.Title)
		if err := db.Where(model.Movie{Slug: movie.Slug}).FirstOrCreate(&movie).Error; err != nil {
			log.Println("failed to seed movie:", movie.Title, "error:", err)
		}
	}

	theaters := []model.Theater{
		{Name: "Grand Central Cinema", City: "Springfield", Address: "12 Main St", Screens: 8},
		{Name: "Riverside Multiplex", City: "Springfield", Address: "400 River Rd", Screens: 6},
	}
	for _, theater := range theaters {
		if err := db.Where(model.Theater{Name: theater.Name}).FirstOrCreate(&theater).Error; err != nil {
			log.Println("failed to seed theater:", theater.Name, "error:", err)
		}
	}

	// A couple of demo shows, priced at base until the first recalculation.
	var movie model.Movie
	var theater model.Theater
	if db.First(&movie).Error == nil && db.First(&theater).Error == nil {
		var count int64
		db.Model(&model.Show{}).Count(&count)
		if count == 0 {
			shows := []model.Show{
				{PublicCode: "SHW-" + uuid.New().String()[:8], MovieId: movie.ID, TheaterId: theater.ID, StartTime: time.Now().Add(48 * time.Hour), TotalSeats: 100, BasePrice: 10, CurrentPrice: 10, PriceMultiplier: 1, Status: model.ShowScheduled},
				{PublicCode: "SHW-" + uuid.New().String()[:8], MovieId: movie.ID, TheaterId: theater.ID, StartTime: time.Now().Add(72 * time.Hour), TotalSeats: 64, BasePrice: 12, CurrentPrice: 12, PriceMultiplier: 1, IsPremium: true, Status: model.ShowScheduled},
			}
			for _, show := range shows {
				if err := db.Create(&show).Error; err != nil {
					log.Println("failed to seed show:", err)
				}
			}
		}
	}
}
