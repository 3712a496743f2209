package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/teressaborra/Bookflix-sub000/constants"
	"github.com/teressaborra/Bookflix-sub000/database"
	"github.com/teressaborra/Bookflix-sub000/model"
	"github.com/teressaborra/Bookflix-sub000/utils"
	"gorm.io/gorm"
)

// CreateReview stores one review per user and movie and refreshes the
// movie's rating aggregate in the same transaction.
func CreateReview(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateReviewInput)
	user := c.Locals("account").(*model.User)

	db := database.DB
	var movie model.Movie
	if err := db.First(&movie, input.MovieId).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.MOVIE_NOT_FOUND, err)
	}

	var existing model.Review
	if err := db.Where("user_id = ? AND movie_id = ?", user.ID, movie.ID).
		First(&existing).Error; err == nil {
		return utils.ErrorResponse(c, 409, constants.REVIEW_ALREADY_EXISTS,
			errors.New("you already reviewed this movie"))
	}

	review := model.Review{
		UserId:  user.ID,
		MovieId: movie.ID,
		Rating:  input.Rating,
		Comment: input.Comment,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return refreshMovieRating(tx, movie.ID)
	})
	if err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, 201, review)
}

func GetMovieReviews(c *fiber.Ctx) error {
	slugParam := c.Params("slug")

	var movie model.Movie
	if err := database.DB.Where("slug = ?", slugParam).First(&movie).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.MOVIE_NOT_FOUND, err)
	}

	var reviews []model.Review
	if err := database.DB.Preload("User").
		Where("movie_id = ?", movie.ID).
		Order("created_at desc").
		Find(&reviews).Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	rows := make([]fiber.Map, 0, len(reviews))
	for _, r := range reviews {
		rows = append(rows, fiber.Map{
			"id":        r.ID,
			"rating":    r.Rating,
			"comment":   r.Comment,
			"userName":  r.User.Name,
			"createdAt": r.CreatedAt,
		})
	}

	return utils.SuccessResponse(c, 200, fiber.Map{
		"movie":       movie.Title,
		"rating":      movie.Rating,
		"reviewCount": movie.ReviewCount,
		"reviews":     rows,
	})
}

func refreshMovieRating(tx *gorm.DB, movieId uint) error {
	type aggregate struct {
		Avg float64
		Cnt int64
	}
	var agg aggregate
	if err := tx.Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS cnt").
		Where("movie_id = ?", movieId).
		Scan(&agg).Error; err != nil {
		return err
	}

	return tx.Model(&model.Movie{}).Where("id = ?", movieId).Updates(map[string]interface{}{
		"rating":       utils.Round2(agg.Avg),
		"review_count": agg.Cnt,
	}).Error
}
