package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"travel_agency/internal/domain"
)

var maxPricePerNight = decimal.New(1, 8) // DECIMAL(10,2)

// CurationService backs the staff back-office.
type CurationService struct {
	repo     domain.Repository
	media    domain.MediaStore
	validate *validator.Validate
	now      func() time.Time
}

// NewCurationService wires the back-office. media may be nil when uploads
// are disabled.
func NewCurationService(r domain.Repository, m domain.MediaStore) *CurationService {
	return &CurationService{repo: r, media: m, validate: newValidator(), now: time.Now}
}

func (s *CurationService) WithClock(now func() time.Time) *CurationService {
	s.now = now
	return s
}

// assignSlug fills slug on create. An explicit slug goes through the same
// normalisation as a derived one.
func assignSlug(slug *string, source string, max int) *domain.ValidationError {
	raw := strings.TrimSpace(*slug)
	if raw == "" {
		raw = source
	}
	*slug = domain.Slugify(raw, max)
	if *slug == "" {
		return domain.NewValidationError("slug", "cannot be derived from the given name")
	}
	return nil
}

/********** destinations **********/

func (s *CurationService) ListDestinations(ctx context.Context, f domain.DestinationFilter) ([]domain.Destination, error) {
	return s.repo.ListDestinations(ctx, f)
}

func (s *CurationService) GetDestination(ctx context.Context, id int64) (domain.DestinationDetail, error) {
	return s.repo.GetDestination(ctx, id)
}

func (s *CurationService) CreateDestination(ctx context.Context, d *domain.Destination) error {
	trimDestination(d)
	problems := joinProblems(assignSlug(&d.Slug, d.Name, domain.SlugMaxLen), checkItinerary(d.Itinerary))
	if err := mergeErr(check(s.validate, d), problems); err != nil {
		return err
	}
	if err := s.repo.CreateDestination(ctx, d); err != nil {
		return fmt.Errorf("create destination %q: %w", d.Name, err)
	}
	log.Info().Int64("destination_id", d.ID).Str("slug", d.Slug).Msg("destination created")
	return nil
}

// UpdateDestination never rewrites the slug. A nil itinerary keeps the
// stored days.
func (s *CurationService) UpdateDestination(ctx context.Context, d *domain.Destination) (domain.DestinationDetail, error) {
	trimDestination(d)
	if err := mergeErr(check(s.validate, d), checkItinerary(d.Itinerary)); err != nil {
		return domain.DestinationDetail{}, err
	}
	if err := s.repo.UpdateDestination(ctx, d); err != nil {
		return domain.DestinationDetail{}, fmt.Errorf("update destination %d: %w", d.ID, err)
	}
	return s.repo.GetDestination(ctx, d.ID)
}

// DeleteDestination also removes its hotels, gallery and itinerary.
func (s *CurationService) DeleteDestination(ctx context.Context, id int64) error {
	return s.repo.DeleteDestination(ctx, id)
}

func trimDestination(d *domain.Destination) {
	d.Name = strings.TrimSpace(d.Name)
	d.Country = strings.TrimSpace(d.Country)
	d.BestTimeToVisit = strings.TrimSpace(d.BestTimeToVisit)
	for i := range d.Itinerary {
		d.Itinerary[i].Title = strings.TrimSpace(d.Itinerary[i].Title)
	}
}

func checkItinerary(days []domain.Itinerary) *domain.ValidationError {
	seen := make(map[int]bool, len(days))
	ve := &domain.ValidationError{}
	for i, it := range days {
		if it.Day >= 1 && seen[it.Day] {
			ve.Add(fmt.Sprintf("itinerary[%d].day", i), "is repeated")
		}
		seen[it.Day] = true
	}
	return ve
}

/********** hotels **********/

func (s *CurationService) ListHotels(ctx context.Context, f domain.HotelFilter) ([]domain.Hotel, error) {
	return s.repo.ListHotels(ctx, f)
}

func (s *CurationService) GetHotel(ctx context.Context, id int64) (domain.HotelDetail, error) {
	return s.repo.GetHotel(ctx, id)
}

func (s *CurationService) CreateHotel(ctx context.Context, h *domain.Hotel) error {
	trimHotel(h)
	problems := joinProblems(assignSlug(&h.Slug, h.Name, domain.SlugMaxLen), checkHotelNumbers(h))
	if err := mergeErr(check(s.validate, h), problems); err != nil {
		return err
	}
	if err := s.repo.CreateHotel(ctx, h); err != nil {
		return fmt.Errorf("create hotel %q: %w", h.Name, err)
	}
	log.Info().Int64("hotel_id", h.ID).Str("slug", h.Slug).Msg("hotel created")
	return nil
}

func (s *CurationService) UpdateHotel(ctx context.Context, h *domain.Hotel) (domain.HotelDetail, error) {
	trimHotel(h)
	if err := mergeErr(check(s.validate, h), checkHotelNumbers(h)); err != nil {
		return domain.HotelDetail{}, err
	}
	if err := s.repo.UpdateHotel(ctx, h); err != nil {
		return domain.HotelDetail{}, fmt.Errorf("update hotel %d: %w", h.ID, err)
	}
	return s.repo.GetHotel(ctx, h.ID)
}

func (s *CurationService) DeleteHotel(ctx context.Context, id int64) error {
	return s.repo.DeleteHotel(ctx, id)
}

func trimHotel(h *domain.Hotel) {
	h.Name = strings.TrimSpace(h.Name)
	h.Address = strings.TrimSpace(h.Address)
	h.Phone = trimOptional(h.Phone)
	h.Email = trimOptional(h.Email)
}

// checkHotelNumbers enforces the column shapes: price DECIMAL(10,2) >= 0 and
// rating DECIMAL(2,1) in [1.0, 5.0].
func checkHotelNumbers(h *domain.Hotel) *domain.ValidationError {
	ve := &domain.ValidationError{}
	switch p := h.PricePerNight; {
	case p.IsNegative():
		ve.Add("price_per_night", "must not be negative")
	case !p.Equal(p.Round(2)):
		ve.Add("price_per_night", "must have at most 2 decimal places")
	case p.GreaterThanOrEqual(maxPricePerNight):
		ve.Add("price_per_night", "is too large")
	}
	switch r := h.Rating; {
	case r.LessThan(domain.MinHotelRating) || r.GreaterThan(domain.MaxHotelRating):
		ve.Add("rating", "must be between 1.0 and 5.0")
	case !r.Equal(r.Round(1)):
		ve.Add("rating", "must have at most 1 decimal place")
	}
	return ve
}

/********** amenities **********/

func (s *CurationService) ListAmenities(ctx context.Context) ([]domain.Amenity, error) {
	return s.repo.ListAmenities(ctx)
}

func (s *CurationService) CreateAmenity(ctx context.Context, a *domain.Amenity) error {
	a.Name = strings.TrimSpace(a.Name)
	if err := check(s.validate, a); err != nil {
		return err
	}
	return s.repo.CreateAmenity(ctx, a)
}

func (s *CurationService) UpdateAmenity(ctx context.Context, a *domain.Amenity) error {
	a.Name = strings.TrimSpace(a.Name)
	if err := check(s.validate, a); err != nil {
		return err
	}
	return s.repo.UpdateAmenity(ctx, a)
}

func (s *CurationService) DeleteAmenity(ctx context.Context, id int64) error {
	return s.repo.DeleteAmenity(ctx, id)
}

/********** gallery **********/

func (s *CurationService) ListGallery(ctx context.Context, f domain.GalleryFilter) ([]domain.GalleryImage, error) {
	return s.repo.ListGallery(ctx, f)
}

func (s *CurationService) GetGalleryImage(ctx context.Context, id int64) (domain.GalleryImage, error) {
	return s.repo.GetGalleryImage(ctx, id)
}

func (s *CurationService) CreateGalleryImage(ctx context.Context, g *domain.GalleryImage) error {
	g.Caption = trimOptional(g.Caption)
	if err := check(s.validate, g); err != nil {
		return err
	}
	g.UploadedAt = s.now().UTC()
	return s.repo.CreateGalleryImage(ctx, g)
}

func (s *CurationService) UpdateGalleryImage(ctx context.Context, g *domain.GalleryImage) (domain.GalleryImage, error) {
	g.Caption = trimOptional(g.Caption)
	if err := check(s.validate, g); err != nil {
		return domain.GalleryImage{}, err
	}
	if err := s.repo.UpdateGalleryImage(ctx, g); err != nil {
		return domain.GalleryImage{}, err
	}
	return s.repo.GetGalleryImage(ctx, g.ID)
}

func (s *CurationService) DeleteGalleryImage(ctx context.Context, id int64) error {
	return s.repo.DeleteGalleryImage(ctx, id)
}

/********** helpers **********/

// joinProblems folds several field reports into one; nil when all are clean.
func joinProblems(parts ...*domain.ValidationError) *domain.ValidationError {
	out := &domain.ValidationError{}
	for _, p := range parts {
		if p == nil {
			continue
		}
		for k, m := range p.Fields {
			out.Add(k, m)
		}
	}
	if len(out.Fields) == 0 {
		return nil
	}
	return out
}

func trimOptional(p *string) *string {
	if p == nil {
		return nil
	}
	return optional(strings.TrimSpace(*p))
}
