package model

import "time"

const (
	MovieComingSoon = "COMING_SOON"
	MovieNowShowing = "NOW_SHOWING"
	MovieEnded      = "ENDED"
)

type Movie struct {
	DTO
	Title        string     `gorm:"size:200" json:"title"`
	Slug         string     `gorm:"size:220;uniqueIndex" json:"slug"`
	Genre        string     `gorm:"size:50" json:"genre"`
	DurationMin  int        `json:"durationMin"`
	Description  string     `gorm:"type:text" json:"description"`
	PosterUrl    string     `gorm:"size:500" json:"posterUrl"`
	ReleaseDate  time.Time  `json:"releaseDate"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	IsNewRelease bool       `gorm:"default:false" json:"isNewRelease"`
	Rating       float64    `json:"rating"` // aggregate of reviews, 0 when unrated
	ReviewCount  int        `json:"reviewCount"`
	Status       string     `gorm:"size:15;default:'COMING_SOON'" json:"status"`

	Shows   []Show   `gorm:"foreignKey:MovieId;constraint:OnDelete:CASCADE" json:"-"`
	Reviews []Review `gorm:"foreignKey:MovieId;constraint:OnDelete:CASCADE" json:"-"`
}

type Review struct {
	DTO
	UserId  uint   `gorm:"uniqueIndex:idx_user_movie" json:"userId"`
	MovieId uint   `gorm:"uniqueIndex:idx_user_movie" json:"movieId"`
	Rating  int    `json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`

	User  User  `gorm:"foreignKey:UserId" json:"-"`
	Movie Movie `gorm:"foreignKey:MovieId" json:"-"`
}

type CreateMovieInput struct {
	Title       string    `json:"title" validate:"required"`
	Genre       string    `json:"genre" validate:"required"`
	DurationMin int       `json:"durationMin" validate:"required,gt=0"`
	Description string    `json:"description"`
	PosterUrl   string    `json:"posterUrl"`
	ReleaseDate time.Time `json:"releaseDate" validate:"required"`
}

type UpdateMovieInput struct {
	Title       *string    `json:"title"`
	Genre       *string    `json:"genre"`
	DurationMin *int       `json:"durationMin" validate:"omitempty,gt=0"`
	Description *string    `json:"description"`
	PosterUrl   *string    `json:"posterUrl"`
	ReleaseDate *time.Time `json:"releaseDate"`
	EndDate     *time.Time `json:"endDate"`
	Status      *string    `json:"status" validate:"omitempty,oneof=COMING_SOON NOW_SHOWING ENDED"`
}

type CreateReviewInput struct {
	MovieId uint   `json:"movieId" validate:"required,gt=0"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

type FilterMovieInput struct {
	Pagination
	Genre  string `query:"genre"`
	Status string `query:"status" validate:"omitempty,oneof=COMING_SOON NOW_SHOWING ENDED"`
	Search string `query:"search"`
}
