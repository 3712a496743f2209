package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/teressaborra/Bookflix-sub000/constants"
	"github.com/teressaborra/Bookflix-sub000/database"
	"github.com/teressaborra/Bookflix-sub000/helper"
	"github.com/teressaborra/Bookflix-sub000/model"
	"github.com/teressaborra/Bookflix-sub000/utils"
)

func CreateShow(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateShowInput)
	db := database.DB

	var movie model.Movie
	if err := db.First(&movie, input.MovieId).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.MOVIE_NOT_FOUND, err)
	}
	var theater model.Theater
	if err := db.First(&theater, input.TheaterId).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.THEATER_NOT_FOUND, err)
	}

	now := time.Now()
	factors := helper.PriceFactors{
		Occupancy:          0,
		HoursToShow:        input.StartTime.Sub(now).Hours(),
		StartTime:          input.StartTime,
		IsPremium:          input.IsPremium,
		IsSpecialScreening: input.IsSpecialScreening,
		IsNewRelease:       movie.IsNewRelease,
	}

	show := model.Show{
		PublicCode:         "SHW-" + strings.ToUpper(uuid.New().String()[:8]),
		MovieId:            movie.ID,
		TheaterId:          theater.ID,
		StartTime:          input.StartTime,
		TotalSeats:         input.TotalSeats,
		BasePrice:          input.BasePrice,
		PriceMultiplier:    helper.PriceMultiplier(factors),
		IsPremium:          input.IsPremium,
		IsSpecialScreening: input.IsSpecialScreening,
		Status:             model.ShowScheduled,
	}
	show.CurrentPrice = utils.Round2(show.BasePrice * show.PriceMultiplier)

	if err := db.Create(&show).Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	show.Movie = movie
	show.Theater = theater
	return utils.SuccessResponse(c, 201, show)
}

func GetShows(c *fiber.Ctx) error {
	var filter model.FilterShowInput
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
	query := db.Model(&model.Show{}).
		Preload("Movie").Preload("Theater").
		Where("status = ?", model.ShowScheduled).
		Where("start_time > ?", time.Now())

	if filter.MovieId > 0 {
		query = query.Where("movie_id = ?", filter.MovieId)
	}
	if filter.TheaterId > 0 {
		query = query.Where("theater_id = ?", filter.TheaterId)
	}
	if filter.Date != "" {
		day, err := time.Parse("2006-01-02", filter.Date)
		if err != nil {
			return utils.ErrorResponse(c, 400, constants.ERROR_INPUT, err)
		}
		query = query.Where("start_time >= ? AND start_time < ?", day, day.Add(24*time.Hour))
	}

	var totalCount int64
	query.Count(&totalCount)

	var shows []model.Show
	query = utils.ApplyPagination(query, filter.Limit, filter.Page)
	if err := query.Order("start_time asc").Find(&shows).Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, 200, model.ResponseCustom{
		Rows:       shows,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: totalCount,
	})
}

func GetShowByCode(c *fiber.Ctx) error {
	code := c.Params("code")

	var show model.Show
	if err := database.DB.Preload("Movie").Preload("Theater").
		Where("public_code = ?", code).First(&show).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.SHOW_NOT_FOUND, err)
	}

	occupied, err := occupiedSeats(show.ID)
	if err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, 200, fiber.Map{
		"show":           show,
		"availableSeats": show.TotalSeats - len(occupied),
		"seatMap":        helper.BuildSeatMap(show.TotalSeats, occupied),
	})
}

func UpdateShow(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.ErrorResponse(c, 400, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}
	input := c.Locals("input").(model.UpdateShowInput)

	db := database.DB
	var show model.Show
	if err := db.First(&show, id).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.SHOW_NOT_FOUND, err)
	}

	if input.TotalSeats != nil && *input.TotalSeats < show.BookedSeats {
		return utils.ErrorResponse(c, 400, constants.ERROR_INPUT,
			errors.New("total seats cannot drop below booked seats"))
	}

	if input.StartTime != nil {
		show.StartTime = *input.StartTime
	}
	if input.TotalSeats != nil {
		show.TotalSeats = *input.TotalSeats
	}
	if input.BasePrice != nil {
		show.BasePrice = *input.BasePrice
	}
	if input.IsPremium != nil {
		show.IsPremium = *input.IsPremium
	}
	if input.IsSpecialScreening != nil {
		show.IsSpecialScreening = *input.IsSpecialScreening
	}

	if err := db.Save(&show).Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	// inputs of the price formula changed
	updated, err := helper.RecalculateShowPricing(db, show.ID, time.Now())
	if err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, 200, updated)
}

// DeleteShow cancels the show. Confirmed bookings block it so seats paid for
// never vanish silently.
func DeleteShow(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.ErrorResponse(c, 400, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	db := database.DB
	var show model.Show
	if err := db.First(&show, id).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.SHOW_NOT_FOUND, err)
	}

	var bookedCount int64
	db.Model(&model.Booking{}).
		Where("show_id = ? AND status = ?", show.ID, model.BookingConfirmed).
		Count(&bookedCount)
	if bookedCount > 0 {
		return utils.ErrorResponse(c, 409, constants.SHOW_HAS_BOOKINGS,
			errors.New("show has confirmed bookings"))
	}

	if err := db.Model(&show).Update("status", model.ShowCancelled).Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, 200, fiber.Map{"message": "Show cancelled"})
}
