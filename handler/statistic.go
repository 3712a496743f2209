package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/teressaborra/Bookflix-sub000/database"
	"github.com/teressaborra/Bookflix-sub000/model"
	"github.com/teressaborra/Bookflix-sub000/utils"
)

// GetAdminStats compares today against yesterday and summarizes the
// upcoming schedule. Revenue counts confirmed bookings only.
func GetAdminStats(c *fiber.Ctx) error {
	db := database.DB

	type Stats struct {
		Movies   int64 `json:"movies"`
		Theaters int64 `json:"theaters"`
		Shows    int64 `json:"shows"`
		Users    int64 `json:"users"`

		TodayRevenue   float64 `json:"todayRevenue"`
		TodayBookings  int64   `json:"todayBookings"`
		UpcomingShows  int64   `json:"upcomingShows"`
		RevenueGrowth  float64 `json:"revenueGrowth"`
		BookingsGrowth float64 `json:"bookingsGrowth"`

		AvgOccupancy float64 `json:"avgOccupancy"`
	}

	var stats Stats
	today := time.Now().In(time.Local)
	todayStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	todayEnd := time.Date(today.Year(), today.Month(), today.Day(), 23, 59, 59, 0, today.Location())

	db.Model(&model.Movie{}).Count(&stats.Movies)
	db.Model(&model.Theater{}).Count(&stats.Theaters)
	db.Model(&model.Show{}).Count(&stats.Shows)
	db.Model(&model.User{}).Count(&stats.Users)

	db.Raw(`
        SELECT COALESCE(SUM(amount_paid), 0)
        FROM bookings
        WHERE status = 'CONFIRMED'
          AND created_at BETWEEN ? AND ?
    `, todayStart, todayEnd).Scan(&stats.TodayRevenue)

	db.Raw(`
        SELECT COUNT(*)
        FROM bookings
        WHERE status = 'CONFIRMED'
          AND created_at BETWEEN ? AND ?
    `, todayStart, todayEnd).Scan(&stats.TodayBookings)

	db.Model(&model.Show{}).
		Where("status = ? AND start_time > ? AND start_time < ?",
			model.ShowScheduled, time.Now(), time.Now().Add(24*time.Hour)).
		Count(&stats.UpcomingShows)

	yesterdayStart := todayStart.AddDate(0, 0, -1)
	yesterdayEnd := todayEnd.AddDate(0, 0, -1)

	var yesterdayRevenue float64
	var yesterdayBookings int64

	db.Raw(`
        SELECT COALESCE(SUM(amount_paid), 0)
        FROM bookings
        WHERE status = 'CONFIRMED'
          AND created_at BETWEEN ? AND ?
    `, yesterdayStart, yesterdayEnd).Scan(&yesterdayRevenue)

	db.Raw(`
        SELECT COUNT(*)
        FROM bookings
        WHERE status = 'CONFIRMED'
          AND created_at BETWEEN ? AND ?
    `, yesterdayStart, yesterdayEnd).Scan(&yesterdayBookings)

	stats.RevenueGrowth = utils.CalculateGrowth(stats.TodayRevenue, yesterdayRevenue)
	stats.BookingsGrowth = utils.CalculateGrowth(float64(stats.TodayBookings), float64(yesterdayBookings))

	db.Raw(`
        SELECT COALESCE(AVG(booked_seats::float / NULLIF(total_seats, 0)), 0)
        FROM shows
        WHERE status = 'SCHEDULED' AND start_time > ?
    `, time.Now()).Scan(&stats.AvgOccupancy)
	stats.AvgOccupancy = utils.Round2(stats.AvgOccupancy)

	return utils.SuccessResponse(c, fiber.StatusOK, stats)
}

// GetTopMovies ranks movies by confirmed revenue over the last 30 days.
func GetTopMovies(c *fiber.Ctx) error {
	db := database.DB

	limit := c.QueryInt("limit", 10)
	if limit < 1 || limit > 50 {
		limit = 10
	}

	type TopMovie struct {
		MovieId  uint    `json:"movieId"`
		Title    string  `json:"title"`
		Revenue  float64 `json:"revenue"`
		Bookings int64   `json:"bookings"`
		Seats    int64   `json:"seats"`
	}

	var rows []TopMovie
	db.Raw(`
        SELECT m.id AS movie_id,
               m.title,
               COALESCE(SUM(b.amount_paid), 0) AS revenue,
               COUNT(b.id) AS bookings,
               COALESCE(SUM(b.seat_count), 0) AS seats
        FROM movies m
        JOIN shows s ON s.movie_id = m.id
        JOIN bookings b ON b.show_id = s.id
        WHERE b.status = 'CONFIRMED'
          AND b.created_at > ?
        GROUP BY m.id, m.title
        ORDER BY revenue DESC
        LIMIT ?
    `, time.Now().AddDate(0, 0, -30), limit).Scan(&rows)

	return utils.SuccessResponse(c, fiber.StatusOK, rows)
}
