package domain

import "github.com/shopspring/decimal"

var (
	MinHotelRating = decimal.RequireFromString("1.0")
	MaxHotelRating = decimal.RequireFromString("5.0")
)

type Hotel struct {
	ID            int64           `json:"id"`
	DestinationID int64           `json:"destination_id" validate:"required"`
	Name          string          `json:"name" validate:"required,max=200"`
	Slug          string          `json:"slug" validate:"max=255"`
	Description   string          `json:"description"`
	Address       string          `json:"address" validate:"required,max=255"`
	Phone         *string         `json:"phone,omitempty" validate:"omitempty,phone"`
	Email         *string         `json:"email,omitempty" validate:"omitempty,email"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	Rating        decimal.Decimal `json:"rating"`
	Image         string          `json:"image" validate:"max=255"`
	IsFeatured    bool            `json:"is_featured"`
	IsAvailable   bool            `json:"is_available"`
	AmenityIDs    []int64         `json:"amenity_ids,omitempty"` // nil leaves the stored set untouched on update
}

type Amenity struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required,max=100"`
}

type HotelDetail struct {
	Hotel
	Destination Destination    `json:"destination"`
	Amenities   []Amenity      `json:"amenities"`
	Gallery     []GalleryImage `json:"gallery"`
}
