package app_test

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"travel_agency/internal/domain"
)

// ---- fakes ----

// memRepo keeps just enough state to exercise the services. Methods it does
// not override panic through the nil embedded interface.
type memRepo struct {
	domain.Repository

	mu           sync.Mutex
	seq          int64
	destinations []domain.Destination
	hotels       []domain.Hotel
	amenities    []domain.Amenity
	faqs         []domain.FAQ
	testimonials []domain.Testimonial
	enquiries    []domain.Enquiry
	posts        []domain.BlogPost
	views        map[int64]int64
	lastPostQ    domain.PostFilter
	lastSlugNow  time.Time
}

func newMemRepo() *memRepo { return &memRepo{views: map[int64]int64{}} }

func (m *memRepo) next() int64 { m.seq++; return m.seq }

func dup(msg string) error {
	return &domain.IntegrityError{Kind: domain.IntegrityUnique, Message: msg}
}

func (m *memRepo) ListDestinations(ctx context.Context, f domain.DestinationFilter) ([]domain.Destination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Destination{}
	for _, d := range m.destinations {
		if f.Featured != nil && d.IsFeatured != *f.Featured {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memRepo) GetDestination(ctx context.Context, id int64) (domain.DestinationDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.destinations {
		if d.ID == id {
			return domain.DestinationDetail{Destination: d}, nil
		}
	}
	return domain.DestinationDetail{}, domain.ErrNotFound
}

func (m *memRepo) GetDestinationBySlug(ctx context.Context, slug string) (domain.DestinationDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.destinations {
		if d.Slug == slug {
			return domain.DestinationDetail{Destination: d}, nil
		}
	}
	return domain.DestinationDetail{}, domain.ErrNotFound
}

func (m *memRepo) CreateDestination(ctx context.Context, d *domain.Destination) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.destinations {
		if x.Name == d.Name || x.Slug == d.Slug {
			return dup("Duplicate entry for destinations")
		}
	}
	d.ID = m.next()
	m.destinations = append(m.destinations, *d)
	return nil
}

func (m *memRepo) UpdateDestination(ctx context.Context, d *domain.Destination) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, x := range m.destinations {
		if x.ID == d.ID {
			slug := x.Slug
			m.destinations[i] = *d
			m.destinations[i].Slug = slug
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memRepo) ListHotels(ctx context.Context, f domain.HotelFilter) ([]domain.Hotel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Hotel{}
	for _, h := range m.hotels {
		if f.Featured != nil && h.IsFeatured != *f.Featured {
			continue
		}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Rating.Cmp(out[j].Rating); c != 0 {
			return c > 0
		}
		return out[i].Name < out[j].Name
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memRepo) GetHotelBySlug(ctx context.Context, slug string) (domain.HotelDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, h := range m.hotels {
		if h.Slug == slug {
			return domain.HotelDetail{Hotel: h}, nil
		}
	}
	return domain.HotelDetail{}, domain.ErrNotFound
}

func (m *memRepo) GetHotel(ctx context.Context, id int64) (domain.HotelDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, h := range m.hotels {
		if h.ID == id {
			return domain.HotelDetail{Hotel: h}, nil
		}
	}
	return domain.HotelDetail{}, domain.ErrNotFound
}

func (m *memRepo) CreateHotel(ctx context.Context, h *domain.Hotel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.hotels {
		if x.Slug == h.Slug {
			return dup("Duplicate entry for hotels.uq_hotels_slug")
		}
	}
	h.ID = m.next()
	m.hotels = append(m.hotels, *h)
	return nil
}

func (m *memRepo) ListAmenities(ctx context.Context) ([]domain.Amenity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Amenity(nil), m.amenities...), nil
}

func (m *memRepo) CreateAmenity(ctx context.Context, a *domain.Amenity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = m.next()
	m.amenities = append(m.amenities, *a)
	return nil
}

func (m *memRepo) ListFAQs(ctx context.Context) ([]domain.FAQ, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.FAQ{}, m.faqs...), nil
}

func (m *memRepo) CreateFAQ(ctx context.Context, f *domain.FAQ) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f.ID = m.next()
	m.faqs = append(m.faqs, *f)
	return nil
}

func (m *memRepo) ListTestimonials(ctx context.Context, f domain.TestimonialFilter) ([]domain.Testimonial, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Testimonial{}
	for _, t := range m.testimonials {
		if f.ApprovedOnly && !t.IsApproved {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *memRepo) CreateTestimonial(ctx context.Context, t *domain.Testimonial) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = m.next()
	m.testimonials = append(m.testimonials, *t)
	return nil
}

func (m *memRepo) ApproveTestimonials(ctx context.Context, ids []int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for i := range m.testimonials {
		for _, id := range ids {
			if m.testimonials[i].ID == id && !m.testimonials[i].IsApproved {
				m.testimonials[i].IsApproved = true
				n++
			}
		}
	}
	return n, nil
}

func (m *memRepo) CreateEnquiry(ctx context.Context, e *domain.Enquiry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = m.next()
	m.enquiries = append(m.enquiries, *e)
	return nil
}

func (m *memRepo) ListPosts(ctx context.Context, f domain.PostFilter) ([]domain.BlogPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastPostQ = f
	out := []domain.BlogPost{}
	for _, p := range m.posts {
		if f.VisibleAt != nil && !p.VisibleAt(*f.VisibleAt) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PublishedAt.After(out[j].PublishedAt) })
	return out, nil
}

func (m *memRepo) GetPost(ctx context.Context, id int64) (domain.BlogPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.BlogPost{}, domain.ErrNotFound
}

func (m *memRepo) GetVisiblePostBySlug(ctx context.Context, slug string, now time.Time) (domain.BlogPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastSlugNow = now
	for _, p := range m.posts {
		if p.Slug == slug && p.VisibleAt(now) {
			return p, nil
		}
	}
	return domain.BlogPost{}, domain.ErrNotFound
}

func (m *memRepo) CreatePost(ctx context.Context, p *domain.BlogPost) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.next()
	m.posts = append(m.posts, *p)
	return nil
}

func (m *memRepo) UpdatePost(ctx context.Context, p *domain.BlogPost) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.posts {
		if m.posts[i].ID == p.ID {
			m.posts[i] = *p
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memRepo) PublishPosts(ctx context.Context, ids []int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for i := range m.posts {
		for _, id := range ids {
			if m.posts[i].ID == id && m.posts[i].Status != domain.PostPublished {
				m.posts[i].Status = domain.PostPublished
				n++
			}
		}
	}
	return n, nil
}

func (m *memRepo) IncrementPostViews(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.views[id]++
	return nil
}

type stubThrottle struct {
	allow bool
	err   error
	keys  []string
}

func (s *stubThrottle) Allow(ctx context.Context, key string) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allow, s.err
}

type memMedia struct {
	folder, name, body string
}

func (m *memMedia) Save(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.folder, m.name, m.body = folder, filename, string(b)
	return folder + "/" + strings.ToLower(filename), nil
}

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func ptr[T any](v T) *T { return &v }
