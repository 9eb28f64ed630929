package httpserver

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"travel_agency/internal/adapters/auth"
	"travel_agency/internal/adapters/media"
	"travel_agency/internal/adapters/observability"
	"travel_agency/internal/adapters/workbook"
	"travel_agency/internal/app"
	"travel_agency/internal/domain"
)

// Admin serves the staff back-office under /admin.
type Admin struct {
	C      *app.CurationService
	Tokens *auth.Tokens
}

func (s *Server) MountAdmin(a *Admin) {
	s.mux.Route("/admin", func(r chi.Router) {
		r.Use(RequireStaff(a.Tokens))

		r.Route("/destinations", func(r chi.Router) {
			r.Get("/", a.listDestinations)
			r.Post("/", a.createDestination)
			r.Get("/{id}", a.getDestination)
			r.Put("/{id}", a.updateDestination)
			r.Delete("/{id}", a.deleteDestination)
		})
		r.Route("/hotels", func(r chi.Router) {
			r.Get("/", a.listHotels)
			r.Post("/", a.createHotel)
			r.Get("/{id}", a.getHotel)
			r.Put("/{id}", a.updateHotel)
			r.Delete("/{id}", a.deleteHotel)
		})
		r.Route("/amenities", func(r chi.Router) {
			r.Get("/", a.listAmenities)
			r.Post("/", a.createAmenity)
			r.Put("/{id}", a.updateAmenity)
			r.Delete("/{id}", a.deleteAmenity)
		})
		r.Route("/gallery", func(r chi.Router) {
			r.Get("/", a.listGallery)
			r.Post("/", a.createGalleryImage)
			r.Get("/{id}", a.getGalleryImage)
			r.Put("/{id}", a.updateGalleryImage)
			r.Delete("/{id}", a.deleteGalleryImage)
		})
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", a.listCategories)
			r.Post("/", a.createCategory)
			r.Put("/{id}", a.updateCategory)
			r.Delete("/{id}", a.deleteCategory)
		})
		r.Route("/tags", func(r chi.Router) {
			r.Get("/", a.listTags)
			r.Post("/", a.createTag)
			r.Put("/{id}", a.updateTag)
			r.Delete("/{id}", a.deleteTag)
		})
		r.Route("/posts", func(r chi.Router) {
			r.Get("/", a.listPosts)
			r.Post("/", a.createPost)
			r.Post("/publish", a.publishPosts)
			r.Get("/{id}", a.getPost)
			r.Put("/{id}", a.updatePost)
			r.Delete("/{id}", a.deletePost)
		})
		r.Route("/testimonials", func(r chi.Router) {
			r.Get("/", a.listTestimonials)
			r.Post("/", a.createTestimonial)
			r.Post("/approve", a.approveTestimonials)
			r.Get("/{id}", a.getTestimonial)
			r.Put("/{id}", a.updateTestimonial)
			r.Delete("/{id}", a.deleteTestimonial)
		})
		r.Route("/faqs", func(r chi.Router) {
			r.Get("/", a.listFAQs)
			r.Post("/", a.createFAQ)
			r.Get("/{id}", a.getFAQ)
			r.Put("/{id}", a.updateFAQ)
			r.Delete("/{id}", a.deleteFAQ)
		})
		r.Route("/enquiries", func(r chi.Router) {
			r.Get("/", a.listEnquiries)
			r.Post("/", methodNotAllowed(http.MethodGet))
			r.Get("/export.xlsx", a.exportEnquiries)
			r.Get("/{id}", a.getEnquiry)
			r.Patch("/{id}", a.resolveEnquiry)
			r.Put("/{id}", methodNotAllowed(http.MethodGet, http.MethodPatch))
			r.Delete("/{id}", methodNotAllowed(http.MethodGet, http.MethodPatch))
		})
		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", a.listBookings)
			r.Post("/", methodNotAllowed(http.MethodGet))
			r.Get("/{id}", a.getBooking)
			r.Put("/{id}", methodNotAllowed(http.MethodGet))
			r.Patch("/{id}", methodNotAllowed(http.MethodGet))
			r.Delete("/{id}", methodNotAllowed(http.MethodGet))
		})
		r.Post("/media/{kind}", a.uploadMedia)
	})
}

func done(resource, action string) { observability.ObserveCuration(resource, action) }

/********** destinations **********/

func (a *Admin) listDestinations(w http.ResponseWriter, r *http.Request) {
	out, err := a.C.ListDestinations(r.Context(), domain.DestinationFilter{
		Featured: qBool(r, "featured"),
		Country:  r.URL.Query().Get("country"),
		Q:        r.URL.Query().Get("q"),
		Limit:    qInt(r, "limit", 0, 500),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *Admin) getDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	d, err := a.C.GetDestination(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (a *Admin) createDestination(w http.ResponseWriter, r *http.Request) {
	var d domain.Destination
	if !decodeJSON(w, r, &d) {
		return
	}
	if err := a.C.CreateDestination(r.Context(), &d); err != nil {
		writeError(w, r, err)
		return
	}
	done("destinations", "create")
	writeJSON(w, http.StatusCreated, d)
}

func (a *Admin) updateDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var d domain.Destination
	if !decodeJSON(w, r, &d) {
		return
	}
	d.ID = id
	out, err := a.C.UpdateDestination(r.Context(), &d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	done("destinations", "update")
	writeJSON(w, http.StatusOK, out)
}

func (a *Admin) deleteDestination(w http.ResponseWriter, r *http.Request) {
	a.remove(w, r, "destinations", a.C.DeleteDestination)
}

/********** hotels & amenities **********/

func (a *Admin) listHotels(w http.ResponseWriter, r *http.Request) {
	out, err := a.C.ListHotels(r.Context(), domain.HotelFilter{
		Featured:      qBool(r, "featured"),
		Available:     qBool(r, "available"),
		DestinationID: qInt64(r, "destination_id"),
		Q:             r.URL.Query().Get("q"),
		Limit:         qInt(r, "limit", 0, 500),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *Admin) getHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	h, err := a.C.GetHotel(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func (a *Admin) createHotel(w http.ResponseWriter, r *http.Request) {
	// omitted is_available means bookable
	h := domain.Hotel{IsAvailable: true}
	if !decodeJSON(w, r, &h) {
		return
	}
	if err := a.C.CreateHotel(r.Context(), &h); err != nil {
		writeError(w, r, err)
		return
	}
	done("hotels", "create")
	writeJSON(w, http.StatusCreated, h)
}

func (a *Admin) updateHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var h domain.Hotel
	if !decodeJSON(w, r, &h) {
		return
	}
	h.ID = id
	out, err := a.C.UpdateHotel(r.Context(), &h)
	if err != nil {
		writeError(w, r, err)
		return
	}
	done("hotels", "update")
	writeJSON(w, http.StatusOK, out)
}

func (a *Admin) deleteHotel(w http.ResponseWriter, r *http.Request) {
	a.remove(w, r, "hotels", a.C.DeleteHotel)
}

func (a *Admin) listAmenities(w http.ResponseWriter, r *http.Request) {
	out, err := a.C.ListAmenities(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *Admin) createAmenity(w http.ResponseWriter, r *http.Request) {
	var am domain.Amenity
	if !decodeJSON(w, r, &am) {
		return
	}
	if err := a.C.CreateAmenity(r.Context(), &am); err != nil {
		writeError(w, r, err)
		return
	}
	done("amenities", "create")
	writeJSON(w, http.StatusCreated, am)
}

func (a *Admin) updateAmenity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var am domain.Amenity
	if !decodeJSON(w, r, &am) {
		return
	}
	am.ID = id
	if err := a.C.UpdateAmenity(r.Context(), &am); err != nil {
		writeError(w, r, err)
		return
	}
	done("amenities", "update")
	writeJSON(w, http.StatusOK, am)
}

func (a *Admin) deleteAmenity(w http.ResponseWriter, r *http.Request) {
	a.remove(w, r, "amenities", a.C.DeleteAmenity)
}

/********** gallery **********/

func (a *Admin) listGallery(w http.ResponseWriter, r *http.Request) {
	out, err := a.C.ListGallery(r.Context(), domain.GalleryFilter{
		HotelID:       qInt64(r, "hotel_id"),
		DestinationID: qInt64(r, "destination_id"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *Admin) getGalleryImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	g, err := a.C.GetGalleryImage(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (a *Admin) createGalleryImage(w http.ResponseWriter, r *http.Request) {
	var g domain.GalleryImage
	if !decodeJSON(w, r, &g) {
		return
	}
	if err := a.C.CreateGalleryImage(r.Context(), &g); err != nil {
		writeError(w, r, err)
		return
	}
	done("gallery", "create")
	writeJSON(w, http.StatusCreated, g)
}

func (a *Admin) updateGalleryImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var g domain.GalleryImage
	if !decodeJSON(w, r, &g) {
		return
	}
	g.ID = id
	out, err := a.C.UpdateGalleryImage(r.Context(), &g)
	if err != nil {
		writeError(w, r, err)
		return
	}
	done("gallery", "update")
	writeJSON(w, http.StatusOK, out)
}

func (a *Admin) deleteGalleryImage(w http.ResponseWriter, r *http.Request) {
	a.remove(w, r, "gallery", a.C.DeleteGalleryImage)
}

/********** media **********/

func (a *Admin) uploadMedia(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, media.MaxUploadBytes+(1<<20))
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		writeProblem(w, problem{Title: "Bad Request", Status: http.StatusBadRequest, Detail: "expected a multipart upload under 10 MB"})
		return
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		writeProblem(w, problem{Title: "Bad Request", Status: http.StatusBadRequest, Detail: `missing "file" part`})
		return
	}
	defer f.Close()

	path, err := a.C.UploadMedia(r.Context(), chi.URLParam(r, "kind"), hdr.Filename, f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	done("media", "upload")
	writeJSON(w, http.StatusCreated, map[string]string{"path": path, "url": "/media/" + path})
}

/********** enquiries **********/

type enquiryView struct {
	domain.Enquiry
	Actions []domain.ContactAction `json:"contact_actions"`
}

func enquiryFilter(r *http.Request) domain.EnquiryFilter {
	return domain.EnquiryFilter{
		Resolved: qBool(r, "resolved"),
		Q:        r.URL.Query().Get("q"),
		Limit:    app.EnquiryPageSize,
		Offset:   qPage(r, app.EnquiryPageSize),
	}
}

func (a *Admin) listEnquiries(w http.ResponseWriter, r *http.Request) {
	es, err := a.C.ListEnquiries(r.Context(), enquiryFilter(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]enquiryView, len(es))
	for i, e := range es {
		out[i] = enquiryView{Enquiry: e, Actions: e.ContactActions()}
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *Admin) getEnquiry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	e, err := a.C.GetEnquiry(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, enquiryView{Enquiry: e, Actions: e.ContactActions()})
}

type resolveRequest struct {
	Resolved       *bool   `json:"is_resolved"`
	ResolutionNote *string `json:"resolution_note"`
}

func (a *Admin) resolveEnquiry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req resolveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Resolved == nil {
		writeError(w, r, domain.NewValidationError("is_resolved", "is required"))
		return
	}
	e, err := a.C.ResolveEnquiry(r.Context(), id, *req.Resolved, req.ResolutionNote)
	if err != nil {
		writeError(w, r, err)
		return
	}
	done("enquiries", "resolve")
	writeJSON(w, http.StatusOK, enquiryView{Enquiry: e, Actions: e.ContactActions()})
}

func (a *Admin) exportEnquiries(w http.ResponseWriter, r *http.Request) {
	f := enquiryFilter(r)
	out, err := a.C.EnquiriesForExport(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="enquiries.xlsx"`)
	if err := workbook.WriteEnquiries(w, out); err != nil {
		log.Error().Err(err).Msg("enquiry export failed")
	}
}

/********** bookings **********/

func (a *Admin) listBookings(w http.ResponseWriter, r *http.Request) {
	out, err := a.C.ListBookings(r.Context(), domain.BookingFilter{
		Status:  domain.BookingStatus(r.URL.Query().Get("status")),
		HotelID: qInt64(r, "hotel_id"),
		Limit:   app.BookingPageSize,
		Offset:  qPage(r, app.BookingPageSize),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *Admin) getBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	b, err := a.C.GetBooking(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

/********** shared **********/

type idsRequest struct {
	IDs []int64 `json:"ids"`
}

func (a *Admin) remove(w http.ResponseWriter, r *http.Request, resource string, del func(ctx context.Context, id int64) error) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := del(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	done(resource, "delete")
	actor, _ := auth.ActorFrom(r.Context())
	log.Info().Str("resource", resource).Int64("id", id).Int64("actor", actor).Msg("deleted")
	w.WriteHeader(http.StatusNoContent)
}
