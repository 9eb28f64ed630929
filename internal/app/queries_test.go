package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"travel_agency/internal/app"
	"travel_agency/internal/domain"
)

func seedHotels(repo *memRepo) {
	add := func(name, rating string, featured bool) {
		h := domain.Hotel{Name: name, Slug: domain.Slugify(name, domain.SlugMaxLen),
			Rating: decimal.RequireFromString(rating), IsFeatured: featured}
		_ = repo.CreateHotel(context.Background(), &h)
	}
	add("Cliffside Inn", "4.2", true)
	add("Harbour View", "4.8", true)
	add("Old Town Rooms", "3.9", true)
	add("Budget Stay", "2.5", false)
	add("Lagoon Villas", "4.8", true)
	add("Pine Lodge", "4.5", true)
}

func TestListFeaturedHotels_BoundedAndSorted(t *testing.T) {
	repo := newMemRepo()
	seedHotels(repo)
	q := app.NewQueryService(repo)

	got, err := q.ListFeaturedHotels(context.Background(), 4)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("want 4 hotels, got %d", len(got))
	}
	want := []string{"Harbour View", "Lagoon Villas", "Pine Lodge", "Cliffside Inn"}
	for i, h := range got {
		if !h.IsFeatured {
			t.Fatalf("%q is not featured", h.Name)
		}
		if h.Name != want[i] {
			t.Fatalf("position %d: want %q, got %q", i, want[i], h.Name)
		}
	}
}

func TestListFeatured_NonPositiveLimit(t *testing.T) {
	repo := newMemRepo()
	seedHotels(repo)
	q := app.NewQueryService(repo)

	hs, err := q.ListFeaturedHotels(context.Background(), 0)
	if err != nil || len(hs) != 0 {
		t.Fatalf("want empty, got %d (%v)", len(hs), err)
	}
	ds, err := q.ListFeaturedDestinations(context.Background(), -1)
	if err != nil || ds == nil || len(ds) != 0 {
		t.Fatalf("want empty non-nil slice, got %v (%v)", ds, err)
	}
}

func TestGetHotelBySlug_NotFound(t *testing.T) {
	q := app.NewQueryService(newMemRepo())
	for _, slug := range []string{"nonexistent", "", "   "} {
		if _, err := q.GetHotelBySlug(context.Background(), slug); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("slug %q: want ErrNotFound, got %v", slug, err)
		}
	}
}

func TestBlog_HidesDraftsAndScheduled(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	repo := newMemRepo()
	repo.posts = []domain.BlogPost{
		{ID: 1, Slug: "live", Status: domain.PostPublished, PublishedAt: now.Add(-time.Hour)},
		{ID: 2, Slug: "draft", Status: domain.PostDraft, PublishedAt: now.Add(-time.Hour)},
		{ID: 3, Slug: "scheduled", Status: domain.PostPublished, PublishedAt: now.Add(time.Hour)},
		{ID: 4, Slug: "older", Status: domain.PostPublished, PublishedAt: now.Add(-48 * time.Hour)},
	}
	q := app.NewQueryService(repo).WithClock(fixedClock(now))

	posts, err := q.ListPublishedPostsNewestFirst(context.Background(), app.BlogQuery{TagSlug: "travel"})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(posts) != 2 || posts[0].ID != 1 || posts[1].ID != 4 {
		t.Fatalf("unexpected posts: %+v", posts)
	}
	if repo.lastPostQ.VisibleAt == nil || !repo.lastPostQ.VisibleAt.Equal(now) || repo.lastPostQ.TagSlug != "travel" {
		t.Fatalf("filter not forwarded: %+v", repo.lastPostQ)
	}

	if _, err := q.GetBlogPostBySlug(context.Background(), "draft"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("draft leaked: %v", err)
	}
	if _, err := q.GetBlogPostBySlug(context.Background(), "scheduled"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("scheduled post leaked: %v", err)
	}
	p, err := q.GetBlogPostBySlug(context.Background(), "live")
	if err != nil || p.ID != 1 {
		t.Fatalf("live post: %+v %v", p, err)
	}
}

func TestRecordPostView(t *testing.T) {
	repo := newMemRepo()
	q := app.NewQueryService(repo)
	_ = q.RecordPostView(context.Background(), 7)
	_ = q.RecordPostView(context.Background(), 7)
	if repo.views[7] != 2 {
		t.Fatalf("want 2 views, got %d", repo.views[7])
	}
}

func TestHome_Aggregates(t *testing.T) {
	repo := newMemRepo()
	seedHotels(repo)
	for _, n := range []string{"Zanzibar", "Bali", "Cusco", "Amalfi", "Kyoto"} {
		d := domain.Destination{Name: n, Slug: domain.Slugify(n, 255), IsFeatured: n != "Cusco"}
		_ = repo.CreateDestination(context.Background(), &d)
	}
	repo.faqs = []domain.FAQ{{ID: 1, Question: "Visa?", Answer: "Depends."}}
	repo.testimonials = []domain.Testimonial{
		{ID: 1, Name: "Ann", IsApproved: true},
		{ID: 2, Name: "Bob", IsApproved: false},
	}

	hp, err := app.NewQueryService(repo).Home(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(hp.FeaturedDestinations) != 4 || hp.FeaturedDestinations[0].Name != "Amalfi" {
		t.Fatalf("destinations: %+v", hp.FeaturedDestinations)
	}
	for _, d := range hp.FeaturedDestinations {
		if d.Name == "Cusco" {
			t.Fatalf("non-featured destination on home page")
		}
	}
	if len(hp.FeaturedHotels) != 4 {
		t.Fatalf("hotels: %d", len(hp.FeaturedHotels))
	}
	if len(hp.FAQs) != 1 || len(hp.Testimonials) != 1 || hp.Testimonials[0].Name != "Ann" {
		t.Fatalf("faqs/testimonials: %+v %+v", hp.FAQs, hp.Testimonials)
	}
}
