package model

import (
	"strconv"
	"strings"
	"time"
)

const (
	BookingConfirmed   = "CONFIRMED"
	BookingCancelled   = "CANCELLED"
	BookingRescheduled = "RESCHEDULED"
	BookingRefunded    = "REFUNDED"
)

type Booking struct {
	DTO
	PublicCode string `gorm:"size:20;uniqueIndex" json:"publicCode"`
	UserId     uint   `gorm:"index" json:"userId"`
	ShowId     uint   `gorm:"index" json:"showId"`

	// Seats is the comma separated seat number list captured at booking time.
	// The authoritative per-seat rows live in reserved_seats.
	Seats     string `gorm:"size:500" json:"seats"`
	SeatCount int    `json:"seatCount"`

	AmountPaid    float64 `json:"amountPaid"` // price captured at booking time
	Status        string  `gorm:"size:12;default:'CONFIRMED'" json:"status"`
	PaymentMethod string  `gorm:"size:20" json:"paymentMethod"`
	TransactionId string  `gorm:"size:40" json:"transactionId"`

	CancellationReason string     `gorm:"size:250" json:"cancellationReason,omitempty"`
	RefundPercent      float64    `json:"refundPercent"`
	RefundAmount       float64    `json:"refundAmount"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`

	PointsEarned int `json:"pointsEarned"`
	PointsUsed   int `json:"pointsUsed"`

	OriginalBookingId *uint `json:"originalBookingId,omitempty"`

	User          User           `gorm:"foreignKey:UserId" json:"-"`
	Show          Show           `gorm:"foreignKey:ShowId" json:"show"`
	ReservedSeats []ReservedSeat `gorm:"foreignKey:BookingId" json:"-"`
}

// SeatNumbers parses the serialized seat list back into ints.
func (b *Booking) SeatNumbers() []int {
	if b.Seats == "" {
		return nil
	}
	parts := strings.Split(b.Seats, ",")
	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		if n, err := strconv.Atoi(strings.TrimSpace(p)); err == nil {
			nums = append(nums, n)
		}
	}
	return nums
}

// JoinSeats serializes seat numbers the way Booking.Seats stores them.
func JoinSeats(seats []int) string {
	parts := make([]string, len(seats))
	for i, s := range seats {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ",")
}

type CreateBookingInput struct {
	ShowId         uint   `json:"showId" validate:"required,gt=0"`
	Seats          []int  `json:"seats" validate:"required,min=1,dive,gt=0"`
	PointsToRedeem int    `json:"pointsToRedeem" validate:"omitempty,gte=0"`
	PaymentMethod  string `json:"paymentMethod" validate:"omitempty,oneof=CARD CASH UPI WALLET"`
}

type CancelBookingInput struct {
	Reason string `json:"reason" validate:"max=250"`
}

type RescheduleBookingInput struct {
	NewShowId uint `json:"newShowId" validate:"required,gt=0"`
}
