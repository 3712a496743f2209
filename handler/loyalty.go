package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/teressaborra/Bookflix-sub000/constants"
	"github.com/teressaborra/Bookflix-sub000/database"
	"github.com/teressaborra/Bookflix-sub000/helper"
	"github.com/teressaborra/Bookflix-sub000/model"
	"github.com/teressaborra/Bookflix-sub000/utils"
)

// GetMyLoyalty returns the caller's points ledger. The row is created at
// registration; FirstOrCreate covers accounts seeded before that existed.
func GetMyLoyalty(c *fiber.Ctx) error {
	user := c.Locals("account").(*model.User)

	var ledger model.UserPoints
	if err := database.DB.
		Where(model.UserPoints{UserId: user.ID}).
		FirstOrCreate(&ledger).Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	nextTier, pointsToNext := nextTierProgress(ledger.TotalPoints)

	return utils.SuccessResponse(c, 200, fiber.Map{
		"totalPoints":     ledger.TotalPoints,
		"availablePoints": ledger.AvailablePoints,
		"tier":            ledger.Tier,
		"totalBookings":   ledger.TotalBookings,
		"totalSpent":      ledger.TotalSpent,
		"nextTier":        nextTier,
		"pointsToNext":    pointsToNext,
		"pointValue":      helper.PointValue,
	})
}

func nextTierProgress(totalPoints int) (string, int) {
	switch {
	case totalPoints < 1000:
		return model.TierSilver, 1000 - totalPoints
	case totalPoints < 5000:
		return model.TierGold, 5000 - totalPoints
	case totalPoints < 15000:
		return model.TierPlatinum, 15000 - totalPoints
	default:
		return "", 0
	}
}
