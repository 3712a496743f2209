package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/teressaborra/Bookflix-sub000/constants"
	"github.com/teressaborra/Bookflix-sub000/database"
	"github.com/teressaborra/Bookflix-sub000/helper"
	"github.com/teressaborra/Bookflix-sub000/model"
	"github.com/teressaborra/Bookflix-sub000/utils"
)

// GetSeatRecommendations ranks free seats for a show. groupSize > 1 switches
// to consecutive blocks on the same row.
func GetSeatRecommendations(c *fiber.Ctx) error {
	id, err := c.ParamsInt("showId")
	if err != nil {
		return utils.ErrorResponse(c, 400, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	groupSize := c.QueryInt("groupSize", 1)
	limit := c.QueryInt("limit", 5)
	if limit < 1 || limit > 50 {
		limit = 5
	}

	var show model.Show
	if err := database.DB.First(&show, id).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.SHOW_NOT_FOUND, err)
	}

	occupied, err := occupiedSeats(show.ID)
	if err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	if groupSize > 1 {
		groups := helper.RecommendGroups(show.TotalSeats, occupied, groupSize, limit)
		return utils.SuccessResponse(c, 200, fiber.Map{
			"showId":    show.ID,
			"groupSize": groupSize,
			"groups":    groups,
		})
	}

	seats := helper.RecommendSeats(show.TotalSeats, occupied, limit)
	return utils.SuccessResponse(c, 200, fiber.Map{
		"showId": show.ID,
		"seats":  seats,
	})
}

// GetSeatMap renders the live occupancy grid for a show.
func GetSeatMap(c *fiber.Ctx) error {
	id, err := c.ParamsInt("showId")
	if err != nil {
		return utils.ErrorResponse(c, 400, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	var show model.Show
	if err := database.DB.First(&show, id).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.SHOW_NOT_FOUND, err)
	}

	occupied, err := occupiedSeats(show.ID)
	if err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, 200, fiber.Map{
		"showId":         show.ID,
		"totalSeats":     show.TotalSeats,
		"availableSeats": show.TotalSeats - len(occupied),
		"seatMap":        helper.BuildSeatMap(show.TotalSeats, occupied),
	})
}

// GetMovieRecommendations suggests movies the user has not seen yet, ranked
// by how often each genre appears in their confirmed bookings. Users with no
// history get the top rated now-showing titles.
func GetMovieRecommendations(c *fiber.Ctx) error {
	user := c.Locals("account").(*model.User)
	db := database.DB

	limit := c.QueryInt("limit", 10)
	if limit < 1 || limit > 50 {
		limit = 10
	}

	type genreCount struct {
		Genre string
		Cnt   int64
	}
	var genres []genreCount
	db.Model(&model.Booking{}).
		Select("movies.genre AS genre, COUNT(*) AS cnt").
		Joins("JOIN shows ON shows.id = bookings.show_id").
		Joins("JOIN movies ON movies.id = shows.movie_id").
		Where("bookings.user_id = ? AND bookings.status = ?", user.ID, model.BookingConfirmed).
		Group("movies.genre").
		Order("cnt DESC").
		Scan(&genres)

	var seenMovieIds []uint
	db.Model(&model.Booking{}).
		Joins("JOIN shows ON shows.id = bookings.show_id").
		Where("bookings.user_id = ? AND bookings.status = ?", user.ID, model.BookingConfirmed).
		Pluck("shows.movie_id", &seenMovieIds)

	base := db.Model(&model.Movie{}).Where("status = ?", model.MovieNowShowing)
	if len(seenMovieIds) > 0 {
		base = base.Where("id NOT IN ?", seenMovieIds)
	}

	var recommended []model.Movie
	if len(genres) > 0 {
		topGenres := make([]string, 0, 3)
		for i, g := range genres {
			if i == 3 {
				break
			}
			topGenres = append(topGenres, g.Genre)
		}
		if err := base.Where("genre IN ?", topGenres).
			Order("rating desc, release_date desc").
			Limit(limit).
			Find(&recommended).Error; err != nil {
			return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	// fall back to popular titles when genre matching comes up short
	if len(recommended) < limit {
		exclude := make([]uint, 0, len(recommended)+len(seenMovieIds))
		for _, m := range recommended {
			exclude = append(exclude, m.ID)
		}
		exclude = append(exclude, seenMovieIds...)

		fallback := db.Model(&model.Movie{}).Where("status = ?", model.MovieNowShowing)
		if len(exclude) > 0 {
			fallback = fallback.Where("id NOT IN ?", exclude)
		}
		var popular []model.Movie
		fallback.Order("rating desc, review_count desc").
			Limit(limit - len(recommended)).
			Find(&popular)
		recommended = append(recommended, popular...)
	}

	return utils.SuccessResponse(c, 200, fiber.Map{
		"movies":      recommended,
		"generatedAt": time.Now(),
	})
}
