package helper

import (
	"math"
	"time"

	"github.com/teressaborra/Bookflix-sub000/model"
	"github.com/teressaborra/Bookflix-sub000/utils"
	"gorm.io/gorm"
)

const (
	// PointValue is the redemption rate: 1 point = $0.01.
	PointValue = 0.01
	// EarnRate: points earned = 10% of amount paid, floored.
	EarnRate = 0.10
)

// PriceFactors are the inputs of the dynamic price multiplier.
type PriceFactors struct {
	Occupancy          float64 // bookedSeats / totalSeats
	HoursToShow        float64
	StartTime          time.Time
	IsPremium          bool
	IsSpecialScreening bool
	IsNewRelease       bool
}

// PriceMultiplier multiplies the independent demand factors in a fixed
// order: occupancy, time-to-show, day-of-week, time-of-day, flags.
func PriceMultiplier(f PriceFactors) float64 {
	m := 1.0

	switch {
	case f.Occupancy > 0.8:
		m *= 1.5
	case f.Occupancy > 0.6:
		m *= 1.3
	case f.Occupancy > 0.4:
		m *= 1.15
	case f.Occupancy < 0.2:
		m *= 0.9
	}

	if f.HoursToShow < 2 {
		m *= 1.2 // last-minute premium
	} else if f.HoursToShow > 168 {
		m *= 0.95 // early bird
	}

	wd := f.StartTime.Weekday()
	if wd == time.Friday || wd == time.Saturday {
		m *= 1.1
	}

	hour := f.StartTime.Hour()
	if hour >= 18 && hour <= 22 {
		m *= 1.05 // prime time
	}

	if f.IsPremium {
		m *= 1.25
	}
	if f.IsSpecialScreening {
		m *= 1.4
	}
	if f.IsNewRelease {
		m *= 1.15
	}

	return m
}

// DynamicPrice applies the multiplier to the base price, rounded to cents.
func DynamicPrice(basePrice float64, f PriceFactors) float64 {
	return utils.Round2(basePrice * PriceMultiplier(f))
}

// RefundPercent is a step function of hours until showtime:
// >24h -> 90%, >2h -> 50%, otherwise nothing back.
func RefundPercent(hoursUntilShow float64) float64 {
	switch {
	case hoursUntilShow > 24:
		return 0.9
	case hoursUntilShow > 2:
		return 0.5
	default:
		return 0
	}
}

// RedeemDiscount converts loyalty points into a flat discount, capped at the
// subtotal so the total never goes negative.
func RedeemDiscount(points int, subtotal float64) float64 {
	if points <= 0 {
		return 0
	}
	discount := float64(points) * PointValue
	if discount > subtotal {
		return subtotal
	}
	return utils.Round2(discount)
}

// PointsEarned is 10% of the amount paid, integer floor.
func PointsEarned(amountPaid float64) int {
	return int(math.Floor(amountPaid * EarnRate))
}

// TierFor maps lifetime points onto a loyalty tier.
func TierFor(totalPoints int) string {
	switch {
	case totalPoints >= 15000:
		return model.TierPlatinum
	case totalPoints >= 5000:
		return model.TierGold
	case totalPoints >= 1000:
		return model.TierSilver
	default:
		return model.TierBronze
	}
}

// RescheduleAmount carries the original payment over and charges (or
// credits) the per-seat price difference between the two shows.
func RescheduleAmount(originalAmount float64, seatCount int, newShowPrice, originalShowPrice float64) float64 {
	return utils.Round2(originalAmount + float64(seatCount)*(newShowPrice-originalShowPrice))
}

// RescheduleMessage describes the price delta to the user.
func RescheduleMessage(seatCount int, newShowPrice, originalShowPrice float64) string {
	diff := utils.Round2(float64(seatCount) * (newShowPrice - originalShowPrice))
	switch {
	case diff > 0:
		return "Booking rescheduled. An additional charge applies for the new show."
	case diff < 0:
		return "Booking rescheduled. The price difference will be refunded."
	default:
		return "Booking rescheduled at no extra cost."
	}
}

// RecalculateShowPricing refreshes a show's booked-seat count from the live
// CONFIRMED reservations (self-healing against drift), recomputes the
// multiplier and persists price, multiplier and seat count on the show row.
// It must run on the transaction handle of the caller when invoked from a
// booking mutation. Past bookings keep the price they were charged.
func RecalculateShowPricing(tx *gorm.DB, showId uint, now time.Time) (*model.Show, error) {
	var show model.Show
	if err := tx.Preload("Movie").First(&show, showId).Error; err != nil {
		return nil, err
	}

	var liveCount int64
	if err := tx.Model(&model.ReservedSeat{}).
		Joins("JOIN bookings ON bookings.id = reserved_seats.booking_id").
		Where("reserved_seats.show_id = ? AND bookings.status = ?", showId, model.BookingConfirmed).
		Count(&liveCount).Error; err != nil {
		return nil, err
	}

	occupancy := 0.0
	if show.TotalSeats > 0 {
		occupancy = float64(liveCount) / float64(show.TotalSeats)
	}

	factors := PriceFactors{
		Occupancy:          occupancy,
		HoursToShow:        show.StartTime.Sub(now).Hours(),
		StartTime:          show.StartTime,
		IsPremium:          show.IsPremium,
		IsSpecialScreening: show.IsSpecialScreening,
		IsNewRelease:       show.Movie.IsNewRelease,
	}

	multiplier := PriceMultiplier(factors)
	show.PriceMultiplier = multiplier
	show.CurrentPrice = utils.Round2(show.BasePrice * multiplier)
	show.BookedSeats = int(liveCount)

	if err := tx.Model(&model.Show{}).Where("id = ?", showId).Updates(map[string]interface{}{
		"price_multiplier": show.PriceMultiplier,
		"current_price":    show.CurrentPrice,
		"booked_seats":     show.BookedSeats,
	}).Error; err != nil {
		return nil, err
	}

	return &show, nil
}
