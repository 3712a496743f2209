package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/teressaborra/Bookflix-sub000/model"
)

// Wednesday 10:00, 100h out: no weekday, prime-time or lead-time factor.
var neutralStart = time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC)

func neutralFactors(occupancy float64) PriceFactors {
	return PriceFactors{
		Occupancy:   occupancy,
		HoursToShow: 100,
		StartTime:   neutralStart,
	}
}

func TestPriceMultiplierOccupancyTiers(t *testing.T) {
	cases := []struct {
		name      string
		occupancy float64
		want      float64
	}{
		{"nearly full", 0.85, 1.5},
		{"exactly 80 percent", 0.8, 1.3},
		{"busy", 0.7, 1.3},
		{"exactly 60 percent", 0.6, 1.15},
		{"moderate", 0.5, 1.15},
		{"exactly 40 percent", 0.4, 1.0},
		{"exactly 20 percent", 0.2, 1.0},
		{"empty house", 0.1, 0.9},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := PriceMultiplier(neutralFactors(tc.occupancy))
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestPriceMultiplierTimeFactors(t *testing.T) {
	f := neutralFactors(0.3)

	f.HoursToShow = 1.5
	assert.InDelta(t, 1.2, PriceMultiplier(f), 1e-9, "last minute")

	f.HoursToShow = 200
	assert.InDelta(t, 0.95, PriceMultiplier(f), 1e-9, "early bird")

	// exactly at the boundaries neither factor applies
	f.HoursToShow = 2
	assert.InDelta(t, 1.0, PriceMultiplier(f), 1e-9)
	f.HoursToShow = 168
	assert.InDelta(t, 1.0, PriceMultiplier(f), 1e-9)
}

func TestPriceMultiplierScheduleFactors(t *testing.T) {
	friday := time.Date(2025, 6, 13, 10, 0, 0, 0, time.UTC)
	f := PriceFactors{Occupancy: 0.3, HoursToShow: 100, StartTime: friday}
	assert.InDelta(t, 1.1, PriceMultiplier(f), 1e-9, "friday")

	primeTime := time.Date(2025, 6, 11, 22, 0, 0, 0, time.UTC)
	f = PriceFactors{Occupancy: 0.3, HoursToShow: 100, StartTime: primeTime}
	assert.InDelta(t, 1.05, PriceMultiplier(f), 1e-9, "hour 22 still prime time")

	late := time.Date(2025, 6, 11, 23, 0, 0, 0, time.UTC)
	f.StartTime = late
	assert.InDelta(t, 1.0, PriceMultiplier(f), 1e-9, "hour 23 is not")
}

func TestPriceMultiplierFlags(t *testing.T) {
	f := neutralFactors(0.3)
	f.IsPremium = true
	assert.InDelta(t, 1.25, PriceMultiplier(f), 1e-9)

	f.IsPremium = false
	f.IsSpecialScreening = true
	assert.InDelta(t, 1.4, PriceMultiplier(f), 1e-9)

	f.IsSpecialScreening = false
	f.IsNewRelease = true
	assert.InDelta(t, 1.15, PriceMultiplier(f), 1e-9)
}

func TestDynamicPriceCombinedFactors(t *testing.T) {
	// base 10, 85% full, 1h before a Saturday 19:00 show:
	// 1.5 * 1.2 * 1.1 * 1.05 = 2.079 -> 20.79
	saturday := time.Date(2025, 6, 14, 19, 0, 0, 0, time.UTC)
	f := PriceFactors{
		Occupancy:   0.85,
		HoursToShow: 1,
		StartTime:   saturday,
	}
	assert.Equal(t, 20.79, DynamicPrice(10, f))
}

func TestRefundPercent(t *testing.T) {
	assert.Equal(t, 0.9, RefundPercent(48))
	assert.Equal(t, 0.9, RefundPercent(24.01))
	assert.Equal(t, 0.5, RefundPercent(24))
	assert.Equal(t, 0.5, RefundPercent(10))
	assert.Equal(t, 0.5, RefundPercent(2.01))
	assert.Equal(t, 0.0, RefundPercent(2))
	assert.Equal(t, 0.0, RefundPercent(0.5))
	assert.Equal(t, 0.0, RefundPercent(-1))
}

func TestRedeemDiscount(t *testing.T) {
	assert.Equal(t, 5.0, RedeemDiscount(500, 30))
	assert.Equal(t, 30.0, RedeemDiscount(5000, 30), "capped at subtotal")
	assert.Equal(t, 0.0, RedeemDiscount(0, 30))
	assert.Equal(t, 0.0, RedeemDiscount(-10, 30))
}

func TestPointsEarned(t *testing.T) {
	assert.Equal(t, 2, PointsEarned(25.98))
	assert.Equal(t, 0, PointsEarned(9.99))
	assert.Equal(t, 1, PointsEarned(10))
	assert.Equal(t, 0, PointsEarned(0))
}

func TestTierFor(t *testing.T) {
	assert.Equal(t, model.TierBronze, TierFor(0))
	assert.Equal(t, model.TierBronze, TierFor(999))
	assert.Equal(t, model.TierSilver, TierFor(1000))
	assert.Equal(t, model.TierSilver, TierFor(4999))
	assert.Equal(t, model.TierGold, TierFor(5000))
	assert.Equal(t, model.TierGold, TierFor(14999))
	assert.Equal(t, model.TierPlatinum, TierFor(15000))
}

func TestRescheduleAmount(t *testing.T) {
	// 2 seats moving from a $10 show to a $12 show on a $20 booking
	assert.Equal(t, 24.0, RescheduleAmount(20, 2, 12, 10))
	// cheaper show credits the difference
	assert.Equal(t, 16.0, RescheduleAmount(20, 2, 8, 10))
	// same price carries the amount over
	assert.Equal(t, 20.0, RescheduleAmount(20, 2, 10, 10))
}

func TestRescheduleMessage(t *testing.T) {
	assert.Contains(t, RescheduleMessage(2, 12, 10), "additional charge")
	assert.Contains(t, RescheduleMessage(2, 8, 10), "refunded")
	assert.Contains(t, RescheduleMessage(2, 10, 10), "no extra cost")
}
