package app

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"travel_agency/internal/domain"
)

const (
	EnquiryPageSize = 20
	BookingPageSize = 50
)

/********** testimonials & faqs **********/

func (s *CurationService) ListTestimonials(ctx context.Context, f domain.TestimonialFilter) ([]domain.Testimonial, error) {
	return s.repo.ListTestimonials(ctx, f)
}

func (s *CurationService) GetTestimonial(ctx context.Context, id int64) (domain.Testimonial, error) {
	return s.repo.GetTestimonial(ctx, id)
}

func (s *CurationService) CreateTestimonial(ctx context.Context, t *domain.Testimonial) error {
	t.Name = strings.TrimSpace(t.Name)
	t.Designation = trimOptional(t.Designation)
	if t.Rating == 0 {
		t.Rating = 5
	}
	if err := check(s.validate, t); err != nil {
		return err
	}
	t.CreatedAt = s.now().UTC()
	return s.repo.CreateTestimonial(ctx, t)
}

func (s *CurationService) UpdateTestimonial(ctx context.Context, t *domain.Testimonial) (domain.Testimonial, error) {
	t.Name = strings.TrimSpace(t.Name)
	t.Designation = trimOptional(t.Designation)
	if err := check(s.validate, t); err != nil {
		return domain.Testimonial{}, err
	}
	if err := s.repo.UpdateTestimonial(ctx, t); err != nil {
		return domain.Testimonial{}, err
	}
	return s.repo.GetTestimonial(ctx, t.ID)
}

func (s *CurationService) DeleteTestimonial(ctx context.Context, id int64) error {
	return s.repo.DeleteTestimonial(ctx, id)
}

// ApproveTestimonials is idempotent: already approved rows count as unchanged.
func (s *CurationService) ApproveTestimonials(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, domain.NewValidationError("ids", "select at least one testimonial")
	}
	n, err := s.repo.ApproveTestimonials(ctx, dedupe(ids))
	if err != nil {
		return 0, err
	}
	log.Info().Int64("changed", n).Int("requested", len(ids)).Msg("testimonials approved")
	return n, nil
}

func (s *CurationService) ListFAQs(ctx context.Context) ([]domain.FAQ, error) {
	return s.repo.ListFAQs(ctx)
}

func (s *CurationService) GetFAQ(ctx context.Context, id int64) (domain.FAQ, error) {
	return s.repo.GetFAQ(ctx, id)
}

func (s *CurationService) CreateFAQ(ctx context.Context, f *domain.FAQ) error {
	f.Question = strings.TrimSpace(f.Question)
	if err := check(s.validate, f); err != nil {
		return err
	}
	return s.repo.CreateFAQ(ctx, f)
}

func (s *CurationService) UpdateFAQ(ctx context.Context, f *domain.FAQ) error {
	f.Question = strings.TrimSpace(f.Question)
	if err := check(s.validate, f); err != nil {
		return err
	}
	return s.repo.UpdateFAQ(ctx, f)
}

func (s *CurationService) DeleteFAQ(ctx context.Context, id int64) error {
	return s.repo.DeleteFAQ(ctx, id)
}

/********** enquiries (read + resolve only) **********/

func (s *CurationService) ListEnquiries(ctx context.Context, f domain.EnquiryFilter) ([]domain.Enquiry, error) {
	if f.Limit <= 0 || f.Limit > EnquiryPageSize {
		f.Limit = EnquiryPageSize
	}
	f.Q = strings.TrimSpace(f.Q)
	return s.repo.ListEnquiries(ctx, f)
}

// EnquiriesForExport returns every enquiry matching f, unpaged.
func (s *CurationService) EnquiriesForExport(ctx context.Context, f domain.EnquiryFilter) ([]domain.Enquiry, error) {
	f.Limit, f.Offset = 0, 0
	f.Q = strings.TrimSpace(f.Q)
	return s.repo.ListEnquiries(ctx, f)
}

func (s *CurationService) GetEnquiry(ctx context.Context, id int64) (domain.Enquiry, error) {
	return s.repo.GetEnquiry(ctx, id)
}

func (s *CurationService) ResolveEnquiry(ctx context.Context, id int64, resolved bool, note *string) (domain.Enquiry, error) {
	note = trimOptional(note)
	if err := s.repo.ResolveEnquiry(ctx, id, resolved, note); err != nil {
		return domain.Enquiry{}, err
	}
	log.Info().Int64("enquiry_id", id).Bool("resolved", resolved).Msg("enquiry updated")
	return s.repo.GetEnquiry(ctx, id)
}

/********** bookings (audit only) **********/

func (s *CurationService) ListBookings(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, error) {
	if f.Status != "" && f.Status != domain.BookingPending &&
		f.Status != domain.BookingConfirmed && f.Status != domain.BookingCancelled {
		return nil, domain.NewValidationError("status", "must be pending, confirmed or cancelled")
	}
	if f.Limit <= 0 || f.Limit > BookingPageSize {
		f.Limit = BookingPageSize
	}
	return s.repo.ListBookings(ctx, f)
}

func (s *CurationService) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	return s.repo.GetBooking(ctx, id)
}

/********** media **********/

var ErrUploadsDisabled = errors.New("media uploads are not configured")

var mediaFolders = map[string]string{
	"destination": "destination_images",
	"hotel":       "hotel_images",
	"gallery":     "gallery",
	"blog":        "blog_images",
}

// UploadMedia stores r in the folder for kind and returns the relative path
// to put in an image field.
func (s *CurationService) UploadMedia(ctx context.Context, kind, filename string, r io.Reader) (string, error) {
	if s.media == nil {
		return "", ErrUploadsDisabled
	}
	folder, ok := mediaFolders[kind]
	if !ok {
		return "", domain.NewValidationError("kind", "must be destination, hotel, gallery or blog")
	}
	path, err := s.media.Save(ctx, folder, filename, r)
	if err != nil {
		return "", err
	}
	log.Info().Str("kind", kind).Str("path", path).Msg("media stored")
	return path, nil
}
