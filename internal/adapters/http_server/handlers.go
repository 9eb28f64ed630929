package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"travel_agency/internal/adapters/observability"
	"travel_agency/internal/app"
	"travel_agency/internal/domain"
)

const (
	blogPageSize    = 10
	maxBlogPageSize = 50
	maxFormBody     = 64 << 10
)

// Handlers serves the public site.
type Handlers struct {
	Q         *app.QueryService
	Enquiries *app.EnquiryService
	MediaRoot string
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/", h.home)
	s.mux.Get("/destinations", h.listDestinations)
	s.mux.Get("/destinations/{slug}", h.getDestination)
	s.mux.Get("/hotels", h.listHotels)
	s.mux.Get("/hotels/{slug}", h.getHotel)
	s.mux.Get("/blog", h.listPosts)
	s.mux.Get("/blog/{slug}", h.getPost)
	s.mux.Get("/contact", h.contactForm)
	s.mux.Post("/contact", h.submitContact)
	s.mux.Get("/testimonials", h.listTestimonials)
	s.mux.Get("/faqs", h.listFAQs)
	if h.MediaRoot != "" {
		s.mux.Handle("/media/*", http.StripPrefix("/media/", noDirListing(http.FileServer(http.Dir(h.MediaRoot)))))
	}
}

func noDirListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			writeProblem(w, problem{Title: "Not Found", Status: http.StatusNotFound})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handlers) home(w http.ResponseWriter, r *http.Request) {
	hp, err := h.Q.Home(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hp)
}

func (h *Handlers) listDestinations(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.ListAllDestinations(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) getDestination(w http.ResponseWriter, r *http.Request) {
	d, err := h.Q.GetDestinationBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.ListAllHotels(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	d, err := h.Q.GetHotelBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handlers) listPosts(w http.ResponseWriter, r *http.Request) {
	size := qInt(r, "limit", blogPageSize, maxBlogPageSize)
	q := app.BlogQuery{
		CategorySlug: r.URL.Query().Get("category"),
		TagSlug:      r.URL.Query().Get("tag"),
		Limit:        size,
		Offset:       qPage(r, size),
	}
	out, err := h.Q.ListPublishedPostsNewestFirst(r.Context(), q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) getPost(w http.ResponseWriter, r *http.Request) {
	p, err := h.Q.GetBlogPostBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Q.RecordPostView(r.Context(), p.ID); err != nil {
		log.Warn().Err(err).Int64("post_id", p.ID).Msg("view count not recorded")
	} else {
		p.Views++
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) listTestimonials(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.ListApprovedTestimonials(r.Context(), qInt(r, "limit", 0, 100))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) listFAQs(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.ListFAQs(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

/********** contact form **********/

type formField struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
	MaxLen   int    `json:"max_length,omitempty"`
}

type contactForm struct {
	Fields []formField       `json:"fields"`
	Values app.EnquiryInput  `json:"values"`
	Errors map[string]string `json:"errors,omitempty"`
	Sent   *domain.Enquiry   `json:"enquiry,omitempty"`
	Notice string            `json:"message,omitempty"`
}

var contactFields = []formField{
	{Name: "name", Type: "text", Required: true, MaxLen: 100},
	{Name: "email", Type: "email", Required: true, MaxLen: 254},
	{Name: "phone", Type: "tel", MaxLen: 20},
	{Name: "subject", Type: "text", MaxLen: 255},
	{Name: "message", Type: "textarea", Required: true, MaxLen: 5000},
}

func (h *Handlers) contactForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, contactForm{Fields: contactFields})
}

// submitContact accepts JSON or a classic url-encoded form. Invalid input is
// echoed back with per-field errors so the form can be re-rendered.
func (h *Handlers) submitContact(w http.ResponseWriter, r *http.Request) {
	var in app.EnquiryInput
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if !decodeJSON(w, r, &in) {
			return
		}
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)
		if err := r.ParseForm(); err != nil {
			writeProblem(w, problem{Title: "Bad Request", Status: http.StatusBadRequest, Detail: "malformed form body"})
			return
		}
		in = app.EnquiryInput{
			Name:    r.PostForm.Get("name"),
			Email:   r.PostForm.Get("email"),
			Phone:   r.PostForm.Get("phone"),
			Subject: r.PostForm.Get("subject"),
			Message: r.PostForm.Get("message"),
		}
	}

	e, err := h.Enquiries.Submit(r.Context(), clientIP(r), in)
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		observability.ObserveEnquiry("invalid")
		writeProblem(w, problem{
			Title:  "Validation Failed",
			Status: http.StatusUnprocessableEntity,
			Errors: ve.Fields,
			Values: in,
		})
		return
	case errors.Is(err, domain.ErrThrottled):
		observability.ObserveEnquiry("throttled")
		writeError(w, r, err)
		return
	case err != nil:
		observability.ObserveEnquiry("error")
		writeError(w, r, err)
		return
	}
	observability.ObserveEnquiry("created")
	writeJSON(w, http.StatusCreated, contactForm{
		Fields: contactFields,
		Sent:   &e,
		Notice: "Thank you for your message. We will get back to you soon!",
	})
}
