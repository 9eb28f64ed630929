package httpserver_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"travel_agency/internal/adapters/auth"
	httpserver "travel_agency/internal/adapters/http_server"
	"travel_agency/internal/app"
	"travel_agency/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	domain.Repository

	destinations []domain.Destination
	hotels       []domain.Hotel
	enquiries    []domain.Enquiry
	posts        []domain.BlogPost
	views        int
	approved     map[int64]bool
}

func (f *fakeRepo) GetHotelBySlug(ctx context.Context, slug string) (domain.HotelDetail, error) {
	return domain.HotelDetail{}, domain.ErrNotFound
}

func (f *fakeRepo) CreateHotel(ctx context.Context, h *domain.Hotel) error {
	h.ID = int64(len(f.hotels) + 1)
	f.hotels = append(f.hotels, *h)
	return nil
}

func (f *fakeRepo) CreateEnquiry(ctx context.Context, e *domain.Enquiry) error {
	e.ID = int64(len(f.enquiries) + 1)
	f.enquiries = append(f.enquiries, *e)
	return nil
}

func (f *fakeRepo) CreateDestination(ctx context.Context, d *domain.Destination) error {
	for _, x := range f.destinations {
		if x.Slug == d.Slug {
			return &domain.IntegrityError{Kind: domain.IntegrityUnique, Message: "duplicate slug"}
		}
	}
	d.ID = int64(len(f.destinations) + 1)
	f.destinations = append(f.destinations, *d)
	return nil
}

func (f *fakeRepo) GetVisiblePostBySlug(ctx context.Context, slug string, now time.Time) (domain.BlogPost, error) {
	for _, p := range f.posts {
		if p.Slug == slug && p.VisibleAt(now) {
			return p, nil
		}
	}
	return domain.BlogPost{}, domain.ErrNotFound
}

func (f *fakeRepo) IncrementPostViews(ctx context.Context, id int64) error {
	f.views++
	return nil
}

func (f *fakeRepo) ApproveTestimonials(ctx context.Context, ids []int64) (int64, error) {
	var n int64
	for _, id := range ids {
		if !f.approved[id] {
			f.approved[id] = true
			n++
		}
	}
	return n, nil
}

type denyAll struct{}

func (denyAll) Allow(ctx context.Context, key string) (bool, error) { return false, nil }

// onePerClient allows the first call per key and records every key seen.
type onePerClient struct {
	mu   sync.Mutex
	seen map[string]int
}

func (o *onePerClient) Allow(ctx context.Context, key string) (bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.seen == nil {
		o.seen = map[string]int{}
	}
	o.seen[key]++
	return o.seen[key] == 1, nil
}

// ---- harness ----

const secret = "test-secret"

func newServer(t *testing.T, repo *fakeRepo, th domain.Throttle) http.Handler {
	t.Helper()
	return newServerBehindProxy(t, repo, th, false)
}

func newServerBehindProxy(t *testing.T, repo *fakeRepo, th domain.Throttle, trustProxy bool) http.Handler {
	t.Helper()
	srv := httpserver.New(5*time.Second, trustProxy)
	srv.MountHandlers(&httpserver.Handlers{
		Q:         app.NewQueryService(repo),
		Enquiries: app.NewEnquiryService(repo, th),
	})
	srv.MountAdmin(&httpserver.Admin{
		C:      app.NewCurationService(repo, nil),
		Tokens: auth.NewTokens(secret),
	})
	return srv.Mux()
}

func staffToken(t *testing.T, staff bool) string {
	t.Helper()
	tok, err := auth.NewTokens(secret).Issue(1, staff, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return "Bearer " + tok
}

func do(h http.Handler, method, path, body, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

type problemBody struct {
	Status int               `json:"status"`
	Errors map[string]string `json:"errors"`
	Values map[string]string `json:"values"`
}

func decodeProblem(t *testing.T, rr *httptest.ResponseRecorder) problemBody {
	t.Helper()
	if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("content type %q", ct)
	}
	var p problemBody
	if err := json.Unmarshal(rr.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return p
}

// ---- tests ----

func TestGetHotel_NotFound(t *testing.T) {
	h := newServer(t, &fakeRepo{}, nil)
	rr := do(h, http.MethodGet, "/hotels/nonexistent", "", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status %d", rr.Code)
	}
	if p := decodeProblem(t, rr); p.Status != 404 {
		t.Fatalf("problem: %+v", p)
	}
}

func TestContact_InvalidEchoesValues(t *testing.T) {
	repo := &fakeRepo{}
	h := newServer(t, repo, nil)

	rr := do(h, http.MethodPost, "/contact", `{"name":"","email":"alice@example.com","message":"Hello"}`, "")
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	p := decodeProblem(t, rr)
	if p.Errors["name"] == "" || p.Values["email"] != "alice@example.com" || p.Values["message"] != "Hello" {
		t.Fatalf("problem: %+v", p)
	}
	if len(repo.enquiries) != 0 {
		t.Fatalf("enquiry stored on invalid input")
	}
}

func TestContact_FormPost(t *testing.T) {
	repo := &fakeRepo{}
	h := newServer(t, repo, nil)

	form := url.Values{"name": {"Alice"}, "email": {"alice@example.com"}, "message": {"Hello"}}
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	if len(repo.enquiries) != 1 || repo.enquiries[0].IsResolved {
		t.Fatalf("enquiries: %+v", repo.enquiries)
	}
}

func TestContact_Throttled(t *testing.T) {
	repo := &fakeRepo{}
	h := newServer(t, repo, denyAll{})
	rr := do(h, http.MethodPost, "/contact", `{"name":"Alice","email":"alice@example.com","message":"Hello"}`, "")
	if rr.Code != http.StatusTooManyRequests || len(repo.enquiries) != 0 {
		t.Fatalf("status %d, %d enquiries", rr.Code, len(repo.enquiries))
	}
}

func TestBlogDetail_CountsView(t *testing.T) {
	repo := &fakeRepo{posts: []domain.BlogPost{
		{ID: 3, Slug: "hello", Status: domain.PostPublished, PublishedAt: time.Now().Add(-time.Hour), Views: 4},
		{ID: 4, Slug: "soon", Status: domain.PostPublished, PublishedAt: time.Now().Add(time.Hour)},
	}}
	h := newServer(t, repo, nil)

	rr := do(h, http.MethodGet, "/blog/hello", "", "")
	if rr.Code != http.StatusOK || repo.views != 1 {
		t.Fatalf("status %d views %d", rr.Code, repo.views)
	}
	var p domain.BlogPost
	_ = json.Unmarshal(rr.Body.Bytes(), &p)
	if p.Views != 5 {
		t.Fatalf("views in body: %d", p.Views)
	}

	if rr := do(h, http.MethodGet, "/blog/soon", "", ""); rr.Code != http.StatusNotFound {
		t.Fatalf("scheduled post: %d", rr.Code)
	}
}

func TestAdmin_Auth(t *testing.T) {
	h := newServer(t, &fakeRepo{}, nil)
	if rr := do(h, http.MethodGet, "/admin/bookings/1", "", ""); rr.Code != http.StatusUnauthorized {
		t.Fatalf("no token: %d", rr.Code)
	}
	if rr := do(h, http.MethodGet, "/admin/bookings/1", "", "Bearer garbage"); rr.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: %d", rr.Code)
	}
	if rr := do(h, http.MethodGet, "/admin/bookings/1", "", staffToken(t, false)); rr.Code != http.StatusForbidden {
		t.Fatalf("non-staff: %d", rr.Code)
	}
}

func TestAdmin_ReadOnlyResources(t *testing.T) {
	h := newServer(t, &fakeRepo{}, nil)
	tok := staffToken(t, true)
	cases := []struct{ method, path string }{
		{http.MethodPost, "/admin/bookings"},
		{http.MethodPut, "/admin/bookings/1"},
		{http.MethodDelete, "/admin/bookings/1"},
		{http.MethodPost, "/admin/enquiries"},
		{http.MethodDelete, "/admin/enquiries/1"},
	}
	for _, tc := range cases {
		rr := do(h, tc.method, tc.path, `{}`, tok)
		if rr.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s: status %d", tc.method, tc.path, rr.Code)
		}
		if rr.Header().Get("Allow") == "" {
			t.Errorf("%s %s: missing Allow header", tc.method, tc.path)
		}
	}
}

func TestAdmin_DuplicateDestinationConflict(t *testing.T) {
	repo := &fakeRepo{}
	h := newServer(t, repo, nil)
	tok := staffToken(t, true)

	body := `{"name":"Paris","country":"France"}`
	if rr := do(h, http.MethodPost, "/admin/destinations", body, tok); rr.Code != http.StatusCreated {
		t.Fatalf("first: %d %s", rr.Code, rr.Body.String())
	}
	rr := do(h, http.MethodPost, "/admin/destinations", body, tok)
	if rr.Code != http.StatusConflict {
		t.Fatalf("second: %d %s", rr.Code, rr.Body.String())
	}
	if repo.destinations[0].Slug != "paris" {
		t.Fatalf("slug: %q", repo.destinations[0].Slug)
	}
}

func TestAdmin_ApproveTestimonials(t *testing.T) {
	repo := &fakeRepo{approved: map[int64]bool{}}
	h := newServer(t, repo, nil)
	tok := staffToken(t, true)

	rr := do(h, http.MethodPost, "/admin/testimonials/approve", `{"ids":[1,2]}`, tok)
	if rr.Code != http.StatusOK || strings.TrimSpace(rr.Body.String()) != `{"changed":2}` {
		t.Fatalf("first: %d %s", rr.Code, rr.Body.String())
	}
	rr = do(h, http.MethodPost, "/admin/testimonials/approve", `{"ids":[1,2]}`, tok)
	if rr.Code != http.StatusOK || strings.TrimSpace(rr.Body.String()) != `{"changed":0}` {
		t.Fatalf("second: %d %s", rr.Code, rr.Body.String())
	}
	if rr := do(h, http.MethodPost, "/admin/testimonials/approve", `{"ids":[]}`, tok); rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("empty ids: %d", rr.Code)
	}
}

func postFrom(h http.Handler, peer, forwardedFor string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/contact",
		strings.NewReader(`{"name":"Alice","email":"alice@example.com","message":"Hello"}`))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = peer
	req.Header.Set("X-Forwarded-For", forwardedFor)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestContact_ThrottleIgnoresSpoofedForwardedFor(t *testing.T) {
	repo := &fakeRepo{}
	th := &onePerClient{}
	h := newServer(t, repo, th)

	for i := 1; i <= 5; i++ {
		rr := postFrom(h, "203.0.113.9:40000", fmt.Sprintf("10.0.0.%d", i))
		want := http.StatusTooManyRequests
		if i == 1 {
			want = http.StatusCreated
		}
		if rr.Code != want {
			t.Fatalf("post %d: status %d, want %d", i, rr.Code, want)
		}
	}
	if len(repo.enquiries) != 1 {
		t.Fatalf("stored %d enquiries, want 1", len(repo.enquiries))
	}
	if len(th.seen) != 1 || th.seen["203.0.113.9"] != 5 {
		t.Fatalf("throttle keys: %v", th.seen)
	}
}

func TestContact_TrustedProxyUsesForwardedClient(t *testing.T) {
	repo := &fakeRepo{}
	th := &onePerClient{}
	h := newServerBehindProxy(t, repo, th, true)

	for _, client := range []string{"198.51.100.1", "198.51.100.2"} {
		if rr := postFrom(h, "10.0.0.2:40000", client); rr.Code != http.StatusCreated {
			t.Fatalf("client %s: status %d", client, rr.Code)
		}
	}
	if rr := postFrom(h, "10.0.0.2:40000", "198.51.100.1"); rr.Code != http.StatusTooManyRequests {
		t.Fatalf("repeat client: status %d", rr.Code)
	}
	if len(repo.enquiries) != 2 {
		t.Fatalf("stored %d enquiries, want 2", len(repo.enquiries))
	}
}

func TestAdmin_CreateHotelDefaultsAvailable(t *testing.T) {
	repo := &fakeRepo{}
	h := newServer(t, repo, nil)
	tok := staffToken(t, true)

	body := `{"destination_id":1,"name":"Sea View","address":"1 Harbour Rd","price_per_night":"120.00","rating":"4.5"}`
	rr := do(h, http.MethodPost, "/admin/hotels", body, tok)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	if len(repo.hotels) != 1 || !repo.hotels[0].IsAvailable {
		t.Fatalf("stored hotels: %+v", repo.hotels)
	}

	body = `{"destination_id":1,"name":"Closed Inn","address":"2 Harbour Rd","price_per_night":"90.00","rating":"3.0","is_available":false}`
	if rr := do(h, http.MethodPost, "/admin/hotels", body, tok); rr.Code != http.StatusCreated {
		t.Fatalf("explicit false: status %d", rr.Code)
	}
	if repo.hotels[1].IsAvailable {
		t.Fatalf("explicit is_available=false was overridden")
	}
}
