package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/teressaborra/Bookflix-sub000/constants"
	"github.com/teressaborra/Bookflix-sub000/database"
	"github.com/teressaborra/Bookflix-sub000/helper"
	"github.com/teressaborra/Bookflix-sub000/model"
	"github.com/teressaborra/Bookflix-sub000/utils"
)

const pricingCacheTTL = 30 * time.Second

func pricingCacheKey(showId uint) string {
	return fmt.Sprintf("pricing:show:%d", showId)
}

func snapshotFromShow(show *model.Show) model.PricingSnapshot {
	occupancy := 0.0
	if show.TotalSeats > 0 {
		occupancy = float64(show.BookedSeats) / float64(show.TotalSeats)
	}
	return model.PricingSnapshot{
		ShowId:          show.ID,
		BasePrice:       show.BasePrice,
		CurrentPrice:    show.CurrentPrice,
		PriceMultiplier: show.PriceMultiplier,
		BookedSeats:     show.BookedSeats,
		TotalSeats:      show.TotalSeats,
		OccupancyRate:   utils.Round2(occupancy),
		UpdatedAt:       time.Now(),
	}
}

// UpdateShowPricing forces a recalculation, bypassing the cron cadence.
func UpdateShowPricing(c *fiber.Ctx) error {
	id, err := c.ParamsInt("showId")
	if err != nil {
		return utils.ErrorResponse(c, 400, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	show, err := helper.RecalculateShowPricing(database.DB, uint(id), time.Now())
	if err != nil {
		return utils.ErrorResponse(c, 404, constants.SHOW_NOT_FOUND, err)
	}

	snapshot := snapshotFromShow(show)

	// drop the stale cache entry, next read refills it
	database.Redis.Del(context.Background(), pricingCacheKey(show.ID))

	return utils.SuccessResponse(c, 200, snapshot)
}

// GetShowPricing serves the snapshot from Redis when fresh; the price only
// moves on recalculation so a short TTL is enough.
func GetShowPricing(c *fiber.Ctx) error {
	id, err := c.ParamsInt("showId")
	if err != nil {
		return utils.ErrorResponse(c, 400, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}
	showId := uint(id)

	ctx := context.Background()
	if cached, err := database.Redis.Get(ctx, pricingCacheKey(showId)).Result(); err == nil {
		var snapshot model.PricingSnapshot
		if json.Unmarshal([]byte(cached), &snapshot) == nil {
			return utils.SuccessResponse(c, 200, snapshot)
		}
	}

	var show model.Show
	if err := database.DB.First(&show, showId).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.SHOW_NOT_FOUND, err)
	}

	snapshot := snapshotFromShow(&show)
	if raw, err := json.Marshal(snapshot); err == nil {
		database.Redis.Set(ctx, pricingCacheKey(showId), raw, pricingCacheTTL)
	}

	return utils.SuccessResponse(c, 200, snapshot)
}
