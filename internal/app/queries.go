package app

import (
	"context"
	"strings"
	"time"

	"travel_agency/internal/domain"
)

const (
	HomeFeaturedLimit    = 4
	HomeTestimonialLimit = 6
)

// ContentReader is the read side of the store used by public pages.
type ContentReader interface {
	ListDestinations(ctx context.Context, f domain.DestinationFilter) ([]domain.Destination, error)
	GetDestinationBySlug(ctx context.Context, slug string) (domain.DestinationDetail, error)
	ListHotels(ctx context.Context, f domain.HotelFilter) ([]domain.Hotel, error)
	GetHotelBySlug(ctx context.Context, slug string) (domain.HotelDetail, error)
	ListPosts(ctx context.Context, f domain.PostFilter) ([]domain.BlogPost, error)
	GetVisiblePostBySlug(ctx context.Context, slug string, now time.Time) (domain.BlogPost, error)
	IncrementPostViews(ctx context.Context, id int64) error
	ListFAQs(ctx context.Context) ([]domain.FAQ, error)
	ListTestimonials(ctx context.Context, f domain.TestimonialFilter) ([]domain.Testimonial, error)
}

type QueryService struct {
	repo ContentReader
	now  func() time.Time
}

func NewQueryService(r ContentReader) *QueryService {
	return &QueryService{repo: r, now: time.Now}
}

// WithClock replaces the clock used for the blog visibility window.
func (s *QueryService) WithClock(now func() time.Time) *QueryService {
	s.now = now
	return s
}

type HomePage struct {
	FeaturedDestinations []domain.Destination `json:"featured_destinations"`
	FeaturedHotels       []domain.Hotel       `json:"featured_hotels"`
	FAQs                 []domain.FAQ         `json:"faqs"`
	Testimonials         []domain.Testimonial `json:"testimonials"`
}

type BlogQuery struct {
	CategorySlug string
	TagSlug      string
	Limit        int
	Offset       int
}

func (s *QueryService) Home(ctx context.Context) (HomePage, error) {
	var hp HomePage
	var err error
	if hp.FeaturedDestinations, err = s.ListFeaturedDestinations(ctx, HomeFeaturedLimit); err != nil {
		return HomePage{}, err
	}
	if hp.FeaturedHotels, err = s.ListFeaturedHotels(ctx, HomeFeaturedLimit); err != nil {
		return HomePage{}, err
	}
	if hp.FAQs, err = s.ListFAQs(ctx); err != nil {
		return HomePage{}, err
	}
	if hp.Testimonials, err = s.ListApprovedTestimonials(ctx, HomeTestimonialLimit); err != nil {
		return HomePage{}, err
	}
	return hp, nil
}

// ListFeaturedDestinations returns featured destinations by name, at most limit.
func (s *QueryService) ListFeaturedDestinations(ctx context.Context, limit int) ([]domain.Destination, error) {
	if limit <= 0 {
		return []domain.Destination{}, nil
	}
	return s.repo.ListDestinations(ctx, domain.DestinationFilter{Featured: ptr(true), Limit: limit})
}

// ListFeaturedHotels returns featured hotels by rating (desc), at most limit.
func (s *QueryService) ListFeaturedHotels(ctx context.Context, limit int) ([]domain.Hotel, error) {
	if limit <= 0 {
		return []domain.Hotel{}, nil
	}
	return s.repo.ListHotels(ctx, domain.HotelFilter{Featured: ptr(true), Limit: limit})
}

func (s *QueryService) ListAllDestinations(ctx context.Context) ([]domain.Destination, error) {
	return s.repo.ListDestinations(ctx, domain.DestinationFilter{})
}

func (s *QueryService) ListAllHotels(ctx context.Context) ([]domain.Hotel, error) {
	return s.repo.ListHotels(ctx, domain.HotelFilter{})
}

func (s *QueryService) GetDestinationBySlug(ctx context.Context, slug string) (domain.DestinationDetail, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return domain.DestinationDetail{}, domain.ErrNotFound
	}
	return s.repo.GetDestinationBySlug(ctx, slug)
}

func (s *QueryService) GetHotelBySlug(ctx context.Context, slug string) (domain.HotelDetail, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return domain.HotelDetail{}, domain.ErrNotFound
	}
	return s.repo.GetHotelBySlug(ctx, slug)
}

// GetBlogPostBySlug only finds posts that are published and due.
func (s *QueryService) GetBlogPostBySlug(ctx context.Context, slug string) (domain.BlogPost, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return domain.BlogPost{}, domain.ErrNotFound
	}
	return s.repo.GetVisiblePostBySlug(ctx, slug, s.now())
}

// ListPublishedPostsNewestFirst excludes drafts and posts scheduled after now.
func (s *QueryService) ListPublishedPostsNewestFirst(ctx context.Context, q BlogQuery) ([]domain.BlogPost, error) {
	now := s.now()
	return s.repo.ListPosts(ctx, domain.PostFilter{
		VisibleAt:    &now,
		CategorySlug: q.CategorySlug,
		TagSlug:      q.TagSlug,
		Limit:        q.Limit,
		Offset:       q.Offset,
	})
}

func (s *QueryService) ListFAQs(ctx context.Context) ([]domain.FAQ, error) {
	return s.repo.ListFAQs(ctx)
}

func (s *QueryService) ListApprovedTestimonials(ctx context.Context, limit int) ([]domain.Testimonial, error) {
	return s.repo.ListTestimonials(ctx, domain.TestimonialFilter{ApprovedOnly: true, Limit: limit})
}

// RecordPostView bumps the view counter after a detail page was served.
func (s *QueryService) RecordPostView(ctx context.Context, id int64) error {
	return s.repo.IncrementPostViews(ctx, id)
}

func ptr[T any](v T) *T { return &v }
