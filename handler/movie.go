package handler

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"github.com/teressaborra/Bookflix-sub000/constants"
	"github.com/teressaborra/Bookflix-sub000/database"
	"github.com/teressaborra/Bookflix-sub000/helper"
	"github.com/teressaborra/Bookflix-sub000/model"
	"github.com/teressaborra/Bookflix-sub000/utils"
)

// uniqueMovieSlug appends a counter until the slug is free.
func uniqueMovieSlug(title string) string {
	base := slug.Make(title)
	candidate := base
	for i := 2; ; i++ {
		var count int64
		database.DB.Model(&model.Movie{}).Where("slug = ?", candidate).Count(&count)
		if count == 0 {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func movieStatusFor(releaseDate time.Time, endDate *time.Time, now time.Time) string {
	if endDate != nil && endDate.Before(now) {
		return model.MovieEnded
	}
	if releaseDate.After(now) {
		return model.MovieComingSoon
	}
	return model.MovieNowShowing
}

func CreateMovie(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateMovieInput)

	now := time.Now()
	movie := model.Movie{
		Title:        input.Title,
		Slug:         uniqueMovieSlug(input.Title),
		Genre:        input.Genre,
		DurationMin:  input.DurationMin,
		Description:  input.Description,
		PosterUrl:    input.PosterUrl,
		ReleaseDate:  input.ReleaseDate,
		IsNewRelease: !input.ReleaseDate.After(now) && now.Sub(input.ReleaseDate) <= helper.NewReleaseWindow,
		Status:       movieStatusFor(input.ReleaseDate, nil, now),
	}

	if err := database.DB.Create(&movie).Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, 201, movie)
}

func GetMovies(c *fiber.Ctx) error {
	var filter model.FilterMovieInput
	if err := c.QueryParser(&filter); err != nil {
		return utils.ErrorResponse(c, 400, constants.ERROR_INPUT, err)
	}
	if filter.Limit == nil {
		filter.Limit = utils.Ptr(20)
	}
	if filter.Page == nil {
		filter.Page = utils.Ptr(1)
	}

	db := database.DB
	query := db.Model(&model.Movie{})

	if filter.Genre != "" {
		query = query.Where("genre = ?", filter.Genre)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Search+"%")
	}

	var totalCount int64
	query.Count(&totalCount)

	var movies []model.Movie
	query = utils.ApplyPagination(query, filter.Limit, filter.Page)
	if err := query.Order("release_date desc").Find(&movies).Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, 200, model.ResponseCustom{
		Rows:       movies,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: totalCount,
	})
}

func GetMovieBySlug(c *fiber.Ctx) error {
	slugParam := c.Params("slug")

	var movie model.Movie
	if err := database.DB.Where("slug = ?", slugParam).First(&movie).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.MOVIE_NOT_FOUND, err)
	}

	// upcoming shows only
	var shows []model.Show
	database.DB.Preload("Theater").
		Where("movie_id = ? AND status = ? AND start_time > ?", movie.ID, model.ShowScheduled, time.Now()).
		Order("start_time asc").
		Find(&shows)

	var reviews []model.Review
	database.DB.Preload("User").
		Where("movie_id = ?", movie.ID).
		Order("created_at desc").
		Limit(20).
		Find(&reviews)

	reviewRows := make([]fiber.Map, 0, len(reviews))
	for _, r := range reviews {
		reviewRows = append(reviewRows, fiber.Map{
			"id":        r.ID,
			"rating":    r.Rating,
			"comment":   r.Comment,
			"userName":  r.User.Name,
			"createdAt": r.CreatedAt,
		})
	}

	return utils.SuccessResponse(c, 200, fiber.Map{
		"movie":   movie,
		"shows":   shows,
		"reviews": reviewRows,
	})
}

func UpdateMovie(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.ErrorResponse(c, 400, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}
	input := c.Locals("input").(model.UpdateMovieInput)

	var movie model.Movie
	if err := database.DB.First(&movie, id).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.MOVIE_NOT_FOUND, err)
	}

	if input.Title != nil && *input.Title != movie.Title {
		movie.Title = *input.Title
		movie.Slug = uniqueMovieSlug(*input.Title)
	}
	if input.Genre != nil {
		movie.Genre = *input.Genre
	}
	if input.DurationMin != nil {
		movie.DurationMin = *input.DurationMin
	}
	if input.Description != nil {
		movie.Description = *input.Description
	}
	if input.PosterUrl != nil {
		movie.PosterUrl = *input.PosterUrl
	}
	if input.ReleaseDate != nil {
		movie.ReleaseDate = *input.ReleaseDate
	}
	if input.EndDate != nil {
		movie.EndDate = input.EndDate
	}
	if input.Status != nil {
		movie.Status = *input.Status
	} else {
		movie.Status = movieStatusFor(movie.ReleaseDate, movie.EndDate, time.Now())
	}
	movie.IsNewRelease = movie.Status == model.MovieNowShowing &&
		time.Since(movie.ReleaseDate) <= helper.NewReleaseWindow

	if err := database.DB.Save(&movie).Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, 200, movie)
}

func DeleteMovie(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.ErrorResponse(c, 400, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	var movie model.Movie
	if err := database.DB.First(&movie, id).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.MOVIE_NOT_FOUND, err)
	}

	// refuse while upcoming shows still hold confirmed bookings
	var bookedCount int64
	database.DB.Model(&model.Booking{}).
		Joins("JOIN shows ON shows.id = bookings.show_id").
		Where("shows.movie_id = ? AND bookings.status = ? AND shows.start_time > ?", movie.ID, model.BookingConfirmed, time.Now()).
		Count(&bookedCount)
	if bookedCount > 0 {
		return utils.ErrorResponse(c, 409, constants.MOVIE_HAS_BOOKINGS,
			errors.New("movie has upcoming shows with confirmed bookings"))
	}

	if err := database.DB.Delete(&movie).Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, 200, fiber.Map{"message": "Movie deleted"})
}
