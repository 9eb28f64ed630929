package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is written by the external booking workflow; staff only read it.
type Booking struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"user_id"`
	Username     string          `json:"username"`
	HotelID      int64           `json:"hotel_id"`
	HotelName    string          `json:"hotel_name"`
	CheckInDate  time.Time       `json:"check_in_date"`
	CheckOutDate time.Time       `json:"check_out_date"`
	NumGuests    int             `json:"num_guests"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	Status       BookingStatus   `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Enquiry is a contact-form submission.
type Enquiry struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          *string   `json:"phone,omitempty"`
	Subject        *string   `json:"subject,omitempty"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"created_at"`
	IsResolved     bool      `json:"is_resolved"`
	ResolutionNote *string   `json:"resolution_note,omitempty"`
}

type ContactAction struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// ContactActions returns the reply links staff can use for this enquiry.
func (e Enquiry) ContactActions() []ContactAction {
	var out []ContactAction
	if e.Email != "" {
		out = append(out, ContactAction{Label: "Send Email", Href: "mailto:" + e.Email})
	}
	if e.Phone != nil && *e.Phone != "" {
		out = append(out, ContactAction{Label: "Call Now", Href: "tel:" + *e.Phone})
	}
	return out
}

type Testimonial struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" validate:"required,max=100"`
	Designation *string   `json:"designation,omitempty" validate:"omitempty,max=100"`
	Content     string    `json:"content" validate:"required"`
	Rating      int       `json:"rating" validate:"gte=1,lte=5"`
	IsApproved  bool      `json:"is_approved"`
	CreatedAt   time.Time `json:"created_at"`
}

type FAQ struct {
	ID       int64  `json:"id"`
	Question string `json:"question" validate:"required,max=300"`
	Answer   string `json:"answer" validate:"required"`
}
