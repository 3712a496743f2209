package handler

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/teressaborra/Bookflix-sub000/constants"
	"github.com/teressaborra/Bookflix-sub000/database"
	"github.com/teressaborra/Bookflix-sub000/helper"
	"github.com/teressaborra/Bookflix-sub000/model"
	"github.com/teressaborra/Bookflix-sub000/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateBooking reserves seats, records the payment amount and credits
// loyalty points in one transaction. The unique index on (show_id, seat_no)
// is the backstop when two requests race for the same seat: the loser fails
// the insert and the whole transaction rolls back.
func CreateBooking(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateBookingInput)
	user := c.Locals("account").(*model.User)

	db := database.DB
	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var show model.Show
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Movie").Preload("Theater").
		First(&show, input.ShowId).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, 404, constants.SHOW_NOT_FOUND, err)
	}
	if show.Status != model.ShowScheduled || show.StartTime.Before(time.Now()) {
		tx.Rollback()
		return utils.ErrorResponse(c, 400, constants.SHOW_ALREADY_STARTED, nil)
	}
	for _, seat := range input.Seats {
		if seat < 1 || seat > show.TotalSeats {
			tx.Rollback()
			return utils.ErrorResponse(c, 400, constants.ERROR_INPUT, fmt.Errorf("seat %d out of range 1..%d", seat, show.TotalSeats))
		}
	}

	// best-effort pre-check; the unique constraint catches races
	var taken []model.ReservedSeat
	if err := tx.Where("show_id = ? AND seat_no IN ?", show.ID, input.Seats).Find(&taken).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}
	if len(taken) > 0 {
		takenNos := make([]string, 0, len(taken))
		for _, t := range taken {
			takenNos = append(takenNos, fmt.Sprintf("%d", t.SeatNo))
		}
		tx.Rollback()
		return utils.ErrorResponse(c, 409, constants.SEATS_ALREADY_TAKEN,
			fmt.Errorf("seats already taken: %s", strings.Join(takenNos, ", ")))
	}

	subtotal := utils.Round2(float64(len(input.Seats)) * show.CurrentPrice)

	// points redemption is a hard failure: not enough points aborts the
	// booking instead of silently dropping the discount
	var ledger model.UserPoints
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(model.UserPoints{UserId: user.ID}).
		FirstOrCreate(&ledger).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}
	if input.PointsToRedeem > ledger.AvailablePoints {
		tx.Rollback()
		return utils.ErrorResponse(c, 400, constants.INSUFFICIENT_POINTS,
			fmt.Errorf("requested %d points, available %d", input.PointsToRedeem, ledger.AvailablePoints))
	}

	discount := helper.RedeemDiscount(input.PointsToRedeem, subtotal)
	amountPaid := utils.Round2(subtotal - discount)
	pointsEarned := helper.PointsEarned(amountPaid)

	booking := model.Booking{
		PublicCode:    "BKG-" + strings.ToUpper(uuid.New().String()[:8]),
		UserId:        user.ID,
		ShowId:        show.ID,
		Seats:         model.JoinSeats(input.Seats),
		SeatCount:     len(input.Seats),
		AmountPaid:    amountPaid,
		Status:        model.BookingConfirmed,
		PaymentMethod: input.PaymentMethod,
		TransactionId: "TXN-" + uuid.New().String(),
		PointsEarned:  pointsEarned,
		PointsUsed:    input.PointsToRedeem,
	}
	if err := tx.Create(&booking).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	reserved := make([]model.ReservedSeat, 0, len(input.Seats))
	for _, seat := range input.Seats {
		reserved = append(reserved, model.ReservedSeat{
			ShowId:    show.ID,
			SeatNo:    seat,
			BookingId: booking.ID,
		})
	}
	if err := tx.Create(&reserved).Error; err != nil {
		// unique index violation: somebody else won the race
		tx.Rollback()
		return utils.ErrorResponse(c, 409, constants.SEATS_ALREADY_TAKEN, err)
	}

	if err := tx.Model(&model.Show{}).Where("id = ?", show.ID).
		UpdateColumn("booked_seats", show.BookedSeats+len(input.Seats)).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	ledger.TotalPoints += pointsEarned
	ledger.AvailablePoints += pointsEarned - input.PointsToRedeem
	ledger.TotalBookings++
	ledger.TotalSpent = utils.Round2(ledger.TotalSpent + amountPaid)
	ledger.Tier = helper.TierFor(ledger.TotalPoints)
	if err := tx.Save(&ledger).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	PublishSeatUpdate(show.ID)

	if user.Email != "" {
		utils.SendBookingConfirmationEmail(user.Email, utils.BookingEmailData{
			BookingCode:   booking.PublicCode,
			MovieTitle:    show.Movie.Title,
			TheaterName:   show.Theater.Name,
			Showtime:      show.StartTime.Format("02/01/2006 15:04"),
			Seats:         booking.Seats,
			AmountPaid:    booking.AmountPaid,
			PaymentMethod: booking.PaymentMethod,
			PointsEarned:  booking.PointsEarned,
		})
	}

	return utils.SuccessResponse(c, 201, fiber.Map{
		"booking":      booking,
		"subtotal":     subtotal,
		"discount":     discount,
		"pointsUsed":   booking.PointsUsed,
		"pointsEarned": booking.PointsEarned,
	})
}

// CancelBooking applies the refund tiers (>24h: 90%, >2h: 50%, else 0%),
// frees the seats, restores redeemed points and reprices the show.
func CancelBooking(c *fiber.Ctx) error {
	code := c.Params("code")
	user := c.Locals("account").(*model.User)
	input, _ := c.Locals("input").(model.CancelBookingInput)

	db := database.DB
	var booking model.Booking
	if err := db.Preload("Show").Preload("Show.Movie").Preload("Show.Theater").
		Where("public_code = ? AND user_id = ?", code, user.ID).
		First(&booking).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.BOOKING_NOT_FOUND, err)
	}

	if booking.Status != model.BookingConfirmed {
		return utils.ErrorResponse(c, 400, constants.BOOKING_NOT_CONFIRMED,
			fmt.Errorf("booking is %s", booking.Status))
	}

	hoursUntilShow := time.Until(booking.Show.StartTime).Hours()
	refundPercent := helper.RefundPercent(hoursUntilShow)
	refundAmount := utils.Round2(booking.AmountPaid * refundPercent)

	now := time.Now()
	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(&booking).Updates(map[string]interface{}{
		"status":              model.BookingCancelled,
		"cancellation_reason": input.Reason,
		"refund_percent":      refundPercent,
		"refund_amount":       refundAmount,
		"cancelled_at":        now,
	}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Where("booking_id = ?", booking.ID).Delete(&model.ReservedSeat{}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	if booking.PointsUsed > 0 {
		if err := tx.Model(&model.UserPoints{}).
			Where("user_id = ?", user.ID).
			UpdateColumn("available_points", gorm.Expr("available_points + ?", booking.PointsUsed)).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	// occupancy changed; reprice (also refreshes booked_seats)
	if _, err := helper.RecalculateShowPricing(tx, booking.ShowId, now); err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	PublishSeatUpdate(booking.ShowId)

	if user.Email != "" {
		utils.SendBookingCancellationEmail(user.Email, utils.BookingEmailData{
			BookingCode:   booking.PublicCode,
			MovieTitle:    booking.Show.Movie.Title,
			TheaterName:   booking.Show.Theater.Name,
			Showtime:      booking.Show.StartTime.Format("02/01/2006 15:04"),
			Seats:         booking.Seats,
			AmountPaid:    booking.AmountPaid,
			RefundAmount:  refundAmount,
			RefundPercent: refundPercent * 100,
			CancelledAt:   now.Format("02/01/2006 15:04"),
		})
	}

	return utils.SuccessResponse(c, 200, fiber.Map{
		"message":       "Booking cancelled",
		"refundPercent": refundPercent * 100,
		"refundAmount":  refundAmount,
		"seatsFreed":    booking.SeatNumbers(),
	})
}

// RescheduleBooking moves a confirmed booking onto another show of the same
// movie, keeping the seat numbers. The new amount carries the original
// payment plus the per-seat price difference between the two shows.
func RescheduleBooking(c *fiber.Ctx) error {
	code := c.Params("code")
	user := c.Locals("account").(*model.User)
	input := c.Locals("input").(model.RescheduleBookingInput)

	db := database.DB
	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var booking model.Booking
	if err := tx.Preload("Show").
		Where("public_code = ? AND user_id = ?", code, user.ID).
		First(&booking).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, 404, constants.BOOKING_NOT_FOUND, err)
	}
	if booking.Status != model.BookingConfirmed {
		tx.Rollback()
		return utils.ErrorResponse(c, 400, constants.BOOKING_NOT_CONFIRMED,
			fmt.Errorf("booking is %s", booking.Status))
	}

	var newShow model.Show
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Movie").Preload("Theater").
		First(&newShow, input.NewShowId).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, 404, constants.SHOW_NOT_FOUND, err)
	}
	if newShow.MovieId != booking.Show.MovieId {
		tx.Rollback()
		return utils.ErrorResponse(c, 400, constants.CROSS_MOVIE_RESCHEDULE,
			errors.New("target show plays a different movie"))
	}
	if newShow.Status != model.ShowScheduled || newShow.StartTime.Before(time.Now()) {
		tx.Rollback()
		return utils.ErrorResponse(c, 400, constants.SHOW_ALREADY_STARTED, nil)
	}

	seats := booking.SeatNumbers()
	for _, seat := range seats {
		if seat < 1 || seat > newShow.TotalSeats {
			tx.Rollback()
			return utils.ErrorResponse(c, 400, constants.ERROR_INPUT,
				fmt.Errorf("seat %d does not exist on the new show", seat))
		}
	}

	var taken []model.ReservedSeat
	if err := tx.Where("show_id = ? AND seat_no IN ?", newShow.ID, seats).Find(&taken).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}
	if len(taken) > 0 {
		takenNos := make([]string, 0, len(taken))
		for _, t := range taken {
			takenNos = append(takenNos, fmt.Sprintf("%d", t.SeatNo))
		}
		tx.Rollback()
		return utils.ErrorResponse(c, 409, constants.SEATS_ALREADY_TAKEN,
			fmt.Errorf("seats already taken on new show: %s", strings.Join(takenNos, ", ")))
	}

	newAmount := helper.RescheduleAmount(booking.AmountPaid, booking.SeatCount, newShow.CurrentPrice, booking.Show.CurrentPrice)
	message := helper.RescheduleMessage(booking.SeatCount, newShow.CurrentPrice, booking.Show.CurrentPrice)

	if err := tx.Model(&booking).Update("status", model.BookingRescheduled).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := tx.Where("booking_id = ?", booking.ID).Delete(&model.ReservedSeat{}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	var newBooking model.Booking
	if err := copier.Copy(&newBooking, &booking); err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}
	newBooking.DTO = model.DTO{}
	newBooking.Show = model.Show{}
	newBooking.ReservedSeats = nil
	newBooking.PublicCode = "BKG-" + strings.ToUpper(uuid.New().String()[:8])
	newBooking.ShowId = newShow.ID
	newBooking.AmountPaid = newAmount
	newBooking.Status = model.BookingConfirmed
	newBooking.TransactionId = "TXN-" + uuid.New().String()
	newBooking.OriginalBookingId = &booking.ID
	newBooking.PointsEarned = 0
	newBooking.PointsUsed = 0
	if err := tx.Create(&newBooking).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	reserved := make([]model.ReservedSeat, 0, len(seats))
	for _, seat := range seats {
		reserved = append(reserved, model.ReservedSeat{
			ShowId:    newShow.ID,
			SeatNo:    seat,
			BookingId: newBooking.ID,
		})
	}
	if err := tx.Create(&reserved).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, 409, constants.SEATS_ALREADY_TAKEN, err)
	}

	// occupancy moved between the two shows; reprice both
	now := time.Now()
	if _, err := helper.RecalculateShowPricing(tx, booking.ShowId, now); err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}
	if _, err := helper.RecalculateShowPricing(tx, newShow.ID, now); err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	PublishSeatUpdate(booking.ShowId)
	PublishSeatUpdate(newShow.ID)

	return utils.SuccessResponse(c, 200, fiber.Map{
		"message":        message,
		"newBookingCode": newBooking.PublicCode,
		"newAmount":      newAmount,
		"priceDelta":     utils.Round2(newAmount - booking.AmountPaid),
	})
}

func GetMyBookings(c *fiber.Ctx) error {
	user := c.Locals("account").(*model.User)

	var bookings []model.Booking
	if err := database.DB.
		Preload("Show").
		Preload("Show.Movie").
		Preload("Show.Theater").
		Where("user_id = ?", user.ID).
		Order("created_at desc").
		Find(&bookings).Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, 200, bookings)
}

func GetBookingDetail(c *fiber.Ctx) error {
	code := c.Params("code")
	user := c.Locals("account").(*model.User)

	var booking model.Booking
	if err := database.DB.
		Preload("Show").
		Preload("Show.Movie").
		Preload("Show.Theater").
		Where("public_code = ? AND user_id = ?", code, user.ID).
		First(&booking).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.BOOKING_NOT_FOUND, err)
	}

	// one QR per booking, scanned at the entrance
	qrBase64 := ""
	if qrBytes, err := utils.GenerateQRCode(booking.PublicCode, 400); err != nil {
		log.Printf("qr generation for booking %s: %v", booking.PublicCode, err)
	} else {
		qrBase64 = "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrBytes)
	}

	return utils.SuccessResponse(c, 200, fiber.Map{
		"booking":     booking,
		"movieTitle":  booking.Show.Movie.Title,
		"theater":     booking.Show.Theater.Name,
		"showtime":    booking.Show.StartTime.Format("02/01/2006 15:04"),
		"seats":       booking.SeatNumbers(),
		"amountPaid":  booking.AmountPaid,
		"qrCode":      qrBase64,
		"status":      booking.Status,
	})
}
