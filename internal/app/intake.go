package app

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"travel_agency/internal/domain"
)

// EnquiryInput is the raw contact form.
type EnquiryInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Phone   string `json:"phone" validate:"omitempty,phone"`
	Subject string `json:"subject" validate:"omitempty,max=255"`
	Message string `json:"message" validate:"required,max=5000"`
}

type EnquiryService struct {
	repo     domain.EnquiryRepository
	throttle domain.Throttle
	validate *validator.Validate
	now      func() time.Time
}

// NewEnquiryService wires the contact intake. throttle may be nil.
func NewEnquiryService(r domain.EnquiryRepository, t domain.Throttle) *EnquiryService {
	return &EnquiryService{repo: r, throttle: t, validate: newValidator(), now: time.Now}
}

func (s *EnquiryService) WithClock(now func() time.Time) *EnquiryService {
	s.now = now
	return s
}

// Submit validates and stores a contact-form enquiry. Invalid input returns a
// *domain.ValidationError and stores nothing.
func (s *EnquiryService) Submit(ctx context.Context, clientKey string, in EnquiryInput) (domain.Enquiry, error) {
	if s.throttle != nil && clientKey != "" {
		ok, err := s.throttle.Allow(ctx, clientKey)
		switch {
		case err != nil:
			// fail open
			log.Warn().Err(err).Str("client", clientKey).Msg("enquiry throttle unavailable")
		case !ok:
			return domain.Enquiry{}, domain.ErrThrottled
		}
	}

	in = normalizeEnquiry(in)
	if err := check(s.validate, in); err != nil {
		return domain.Enquiry{}, err
	}

	e := domain.Enquiry{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     optional(in.Phone),
		Subject:   optional(in.Subject),
		Message:   in.Message,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.CreateEnquiry(ctx, &e); err != nil {
		return domain.Enquiry{}, err
	}
	log.Info().Int64("enquiry_id", e.ID).Msg("enquiry received")
	return e, nil
}

func normalizeEnquiry(in EnquiryInput) EnquiryInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
	return in
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
