package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/teressaborra/Bookflix-sub000/constants"
	"github.com/teressaborra/Bookflix-sub000/database"
	"github.com/teressaborra/Bookflix-sub000/model"
	"github.com/teressaborra/Bookflix-sub000/utils"
)

func CreateTheater(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateTheaterInput)

	theater := model.Theater{
		Name:    input.Name,
		City:    input.City,
		Address: input.Address,
		Screens: input.Screens,
	}
	if err := database.DB.Create(&theater).Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, 201, theater)
}

func GetTheaters(c *fiber.Ctx) error {
	db := database.DB
	query := db.Model(&model.Theater{})

	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}

	var theaters []model.Theater
	if err := query.Order("name asc").Find(&theaters).Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, 200, theaters)
}

func GetTheaterById(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.ErrorResponse(c, 400, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	var theater model.Theater
	if err := database.DB.First(&theater, id).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.THEATER_NOT_FOUND, err)
	}

	var shows []model.Show
	database.DB.Preload("Movie").
		Where("theater_id = ? AND status = ? AND start_time > ?", theater.ID, model.ShowScheduled, time.Now()).
		Order("start_time asc").
		Find(&shows)

	return utils.SuccessResponse(c, 200, fiber.Map{
		"theater": theater,
		"shows":   shows,
	})
}

func UpdateTheater(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.ErrorResponse(c, 400, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}
	input := c.Locals("input").(model.UpdateTheaterInput)

	var theater model.Theater
	if err := database.DB.First(&theater, id).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.THEATER_NOT_FOUND, err)
	}

	if input.Name != nil {
		theater.Name = *input.Name
	}
	if input.City != nil {
		theater.City = *input.City
	}
	if input.Address != nil {
		theater.Address = *input.Address
	}
	if input.Screens != nil {
		theater.Screens = *input.Screens
	}

	if err := database.DB.Save(&theater).Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, 200, theater)
}

func DeleteTheater(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.ErrorResponse(c, 400, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	var theater model.Theater
	if err := database.DB.First(&theater, id).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.THEATER_NOT_FOUND, err)
	}

	var upcoming int64
	database.DB.Model(&model.Show{}).
		Where("theater_id = ? AND status = ? AND start_time > ?", theater.ID, model.ShowScheduled, time.Now()).
		Count(&upcoming)
	if upcoming > 0 {
		return utils.ErrorResponse(c, 409, constants.THEATER_HAS_SHOWS,
			errors.New("theater still has upcoming shows"))
	}

	if err := database.DB.Delete(&theater).Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, 200, fiber.Map{"message": "Theater deleted"})
}
