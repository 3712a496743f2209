package model

import "time"

const (
	ShowScheduled = "SCHEDULED"
	ShowExpired   = "EXPIRED"
	ShowCancelled = "CANCELLED"
)

type Show struct {
	DTO
	PublicCode         string    `gorm:"size:16;uniqueIndex" json:"publicCode"`
	MovieId            uint      `json:"movieId"`
	TheaterId          uint      `json:"theaterId"`
	StartTime          time.Time `json:"startTime"`
	TotalSeats         int       `json:"totalSeats"`
	BasePrice          float64   `json:"basePrice"`
	CurrentPrice       float64   `json:"currentPrice"`
	PriceMultiplier    float64   `gorm:"default:1" json:"priceMultiplier"`
	BookedSeats        int       `gorm:"default:0" json:"bookedSeats"`
	IsPremium          bool      `gorm:"default:false" json:"isPremium"`
	IsSpecialScreening bool      `gorm:"default:false" json:"isSpecialScreening"`
	Status             string    `gorm:"size:12;default:'SCHEDULED'" json:"status"`

	Movie   Movie   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignKey:MovieId" json:"movie"`
	Theater Theater `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignKey:TheaterId" json:"theater"`

	Bookings []Booking `gorm:"foreignKey:ShowId" json:"-"`
}

// ReservedSeat asserts that a seat number is taken for a show. The composite
// unique index is the backstop against double booking under concurrent
// transactions.
type ReservedSeat struct {
	DTO
	ShowId    uint `gorm:"uniqueIndex:idx_show_seat" json:"showId"`
	SeatNo    int  `gorm:"uniqueIndex:idx_show_seat" json:"seatNo"`
	BookingId uint `gorm:"index" json:"bookingId"`
}

type CreateShowInput struct {
	MovieId            uint      `json:"movieId" validate:"required,gt=0"`
	TheaterId          uint      `json:"theaterId" validate:"required,gt=0"`
	StartTime          time.Time `json:"startTime" validate:"required"`
	TotalSeats         int       `json:"totalSeats" validate:"required,gt=0"`
	BasePrice          float64   `json:"basePrice" validate:"required,gt=0"`
	IsPremium          bool      `json:"isPremium"`
	IsSpecialScreening bool      `json:"isSpecialScreening"`
}

type UpdateShowInput struct {
	StartTime          *time.Time `json:"startTime"`
	TotalSeats         *int       `json:"totalSeats" validate:"omitempty,gt=0"`
	BasePrice          *float64   `json:"basePrice" validate:"omitempty,gt=0"`
	IsPremium          *bool      `json:"isPremium"`
	IsSpecialScreening *bool      `json:"isSpecialScreening"`
}

type FilterShowInput struct {
	Pagination
	MovieId   uint   `query:"movieId" validate:"omitempty,gt=0"`
	TheaterId uint   `query:"theaterId" validate:"omitempty,gt=0"`
	Date      string `query:"date"` // YYYY-MM-DD
}

// PricingSnapshot is what GET /pricing/show/:showId returns (and what gets
// cached in Redis between recalculations).
type PricingSnapshot struct {
	ShowId          uint      `json:"showId"`
	BasePrice       float64   `json:"basePrice"`
	CurrentPrice    float64   `json:"currentPrice"`
	PriceMultiplier float64   `json:"priceMultiplier"`
	BookedSeats     int       `json:"bookedSeats"`
	TotalSeats      int       `json:"totalSeats"`
	OccupancyRate   float64   `json:"occupancyRate"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
