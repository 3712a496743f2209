package model

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

const (
	TierBronze   = "BRONZE"
	TierSilver   = "SILVER"
	TierGold     = "GOLD"
	TierPlatinum = "PLATINUM"
)

type User struct {
	DTO
	Name     string `gorm:"size:100" json:"name"`
	Email    string `gorm:"size:120;uniqueIndex" json:"email"`
	Password string `gorm:"size:100" json:"-"`
	Role     string `gorm:"size:10;default:'USER'" json:"role"`
	Active   bool   `gorm:"default:true" json:"active"`

	Points   *UserPoints `gorm:"foreignKey:UserId" json:"points,omitempty"`
	Bookings []Booking   `gorm:"foreignKey:UserId" json:"-"`
}

// UserPoints is the per-user loyalty ledger. One row per user, created at
// registration and mutated inside the same transaction as the booking that
// touches it.
type UserPoints struct {
	DTO
	UserId          uint    `gorm:"uniqueIndex" json:"userId"`
	TotalPoints     int     `json:"totalPoints"`
	AvailablePoints int     `json:"availablePoints"`
	Tier            string  `gorm:"size:10;default:'BRONZE'" json:"tier"`
	TotalBookings   int     `json:"totalBookings"`
	TotalSpent      float64 `json:"totalSpent"`
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
