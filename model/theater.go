package model

type Theater struct {
	DTO
	Name    string `gorm:"size:120" json:"name"`
	City    string `gorm:"size:80" json:"city"`
	Address string `gorm:"size:250" json:"address"`
	Screens int    `json:"screens"`

	Shows []Show `gorm:"foreignKey:TheaterId;constraint:OnDelete:CASCADE" json:"-"`
}

type CreateTheaterInput struct {
	Name    string `json:"name" validate:"required"`
	City    string `json:"city" validate:"required"`
	Address string `json:"address" validate:"required"`
	Screens int    `json:"screens" validate:"required,gt=0"`
}

type UpdateTheaterInput struct {
	Name    *string `json:"name"`
	City    *string `json:"city"`
	Address *string `json:"address"`
	Screens *int    `json:"screens" validate:"omitempty,gt=0"`
}
