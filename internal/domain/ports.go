package domain

import (
	"context"
	"io"
	"time"
)

type DestinationRepository interface {
	ListDestinations(ctx context.Context, f DestinationFilter) ([]Destination, error)
	GetDestination(ctx context.Context, id int64) (DestinationDetail, error)
	GetDestinationBySlug(ctx context.Context, slug string) (DestinationDetail, error)
	CreateDestination(ctx context.Context, d *Destination) error
	UpdateDestination(ctx context.Context, d *Destination) error
	DeleteDestination(ctx context.Context, id int64) error
}

type HotelRepository interface {
	ListHotels(ctx context.Context, f HotelFilter) ([]Hotel, error)
	GetHotel(ctx context.Context, id int64) (HotelDetail, error)
	GetHotelBySlug(ctx context.Context, slug string) (HotelDetail, error)
	CreateHotel(ctx context.Context, h *Hotel) error
	UpdateHotel(ctx context.Context, h *Hotel) error
	DeleteHotel(ctx context.Context, id int64) error

	ListAmenities(ctx context.Context) ([]Amenity, error)
	CreateAmenity(ctx context.Context, a *Amenity) error
	UpdateAmenity(ctx context.Context, a *Amenity) error
	DeleteAmenity(ctx context.Context, id int64) error
}

type GalleryRepository interface {
	ListGallery(ctx context.Context, f GalleryFilter) ([]GalleryImage, error)
	GetGalleryImage(ctx context.Context, id int64) (GalleryImage, error)
	CreateGalleryImage(ctx context.Context, g *GalleryImage) error
	UpdateGalleryImage(ctx context.Context, g *GalleryImage) error
	DeleteGalleryImage(ctx context.Context, id int64) error
}

type BlogRepository interface {
	ListPosts(ctx context.Context, f PostFilter) ([]BlogPost, error)
	GetPost(ctx context.Context, id int64) (BlogPost, error)
	GetVisiblePostBySlug(ctx context.Context, slug string, now time.Time) (BlogPost, error)
	CreatePost(ctx context.Context, p *BlogPost) error
	UpdatePost(ctx context.Context, p *BlogPost) error
	DeletePost(ctx context.Context, id int64) error
	PublishPosts(ctx context.Context, ids []int64) (int64, error)
	IncrementPostViews(ctx context.Context, id int64) error

	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, c *Category) error
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id int64) error

	ListTags(ctx context.Context) ([]Tag, error)
	CreateTag(ctx context.Context, t *Tag) error
	UpdateTag(ctx context.Context, t *Tag) error
	DeleteTag(ctx context.Context, id int64) error
}

type EngagementRepository interface {
	ListTestimonials(ctx context.Context, f TestimonialFilter) ([]Testimonial, error)
	GetTestimonial(ctx context.Context, id int64) (Testimonial, error)
	CreateTestimonial(ctx context.Context, t *Testimonial) error
	UpdateTestimonial(ctx context.Context, t *Testimonial) error
	DeleteTestimonial(ctx context.Context, id int64) error
	ApproveTestimonials(ctx context.Context, ids []int64) (int64, error)

	ListFAQs(ctx context.Context) ([]FAQ, error)
	GetFAQ(ctx context.Context, id int64) (FAQ, error)
	CreateFAQ(ctx context.Context, f *FAQ) error
	UpdateFAQ(ctx context.Context, f *FAQ) error
	DeleteFAQ(ctx context.Context, id int64) error
}

type EnquiryRepository interface {
	CreateEnquiry(ctx context.Context, e *Enquiry) error
	ListEnquiries(ctx context.Context, f EnquiryFilter) ([]Enquiry, error)
	GetEnquiry(ctx context.Context, id int64) (Enquiry, error)
	ResolveEnquiry(ctx context.Context, id int64, resolved bool, note *string) error
}

// BookingReader is the only booking port; the external booking workflow writes them.
type BookingReader interface {
	ListBookings(ctx context.Context, f BookingFilter) ([]Booking, error)
	GetBooking(ctx context.Context, id int64) (Booking, error)
}

type Repository interface {
	DestinationRepository
	HotelRepository
	GalleryRepository
	BlogRepository
	EngagementRepository
	EnquiryRepository
	BookingReader
}

// Throttle decides whether another submission from key is allowed right now.
type Throttle interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// MediaStore persists uploaded files and returns the stored relative path.
type MediaStore interface {
	Save(ctx context.Context, folder, filename string, r io.Reader) (string, error)
}

// Read models & queries

type DestinationFilter struct {
	Featured *bool
	Country  string
	Q        string
	Limit    int
}

type HotelFilter struct {
	Featured      *bool
	Available     *bool
	DestinationID *int64
	Q             string
	Limit         int
}

type GalleryFilter struct {
	HotelID       *int64
	DestinationID *int64
}

type PostFilter struct {
	VisibleAt    *time.Time // when set only published posts with published_at <= VisibleAt
	Status       PostStatus
	CategorySlug string
	TagSlug      string
	Q            string
	Limit        int
	Offset       int
}

type TestimonialFilter struct {
	ApprovedOnly bool
	Limit        int
}

type EnquiryFilter struct {
	Resolved *bool
	Q        string
	Limit    int
	Offset   int
}

type BookingFilter struct {
	Status  BookingStatus
	HotelID *int64
	Limit   int
	Offset  int
}
