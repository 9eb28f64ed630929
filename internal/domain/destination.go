package domain

import "time"

type Destination struct {
	ID              int64       `json:"id"`
	Name            string      `json:"name" validate:"required,max=200"`
	Slug            string      `json:"slug" validate:"max=255"`
	Description     string      `json:"description"`
	Country         string      `json:"country" validate:"required,max=100"`
	Image           string      `json:"image" validate:"max=255"`
	BestTimeToVisit string      `json:"best_time_to_visit" validate:"max=100"`
	IsFeatured      bool        `json:"is_featured"`
	Itinerary       []Itinerary `json:"itinerary,omitempty" validate:"dive"` // nil leaves stored rows untouched on update
}

// Itinerary is one day of a destination's suggested plan.
type Itinerary struct {
	ID            int64  `json:"id"`
	DestinationID int64  `json:"destination_id"`
	Day           int    `json:"day" validate:"gte=1"`
	Title         string `json:"title" validate:"required,max=200"`
	Detail        string `json:"detail" validate:"required"`
}

// GalleryImage belongs to a hotel or a destination. Both references are
// nullable and exclusivity is not enforced by the store.
type GalleryImage struct {
	ID            int64     `json:"id"`
	Caption       *string   `json:"caption,omitempty" validate:"omitempty,max=200"`
	Image         string    `json:"image" validate:"required,max=255"`
	HotelID       *int64    `json:"hotel_id,omitempty"`
	DestinationID *int64    `json:"destination_id,omitempty"`
	UploadedAt    time.Time `json:"uploaded_at"`
}

type DestinationDetail struct {
	Destination
	Hotels  []Hotel        `json:"hotels"`
	Gallery []GalleryImage `json:"gallery"`
}

func (d Destination) String() string { return d.Name + ", " + d.Country }
