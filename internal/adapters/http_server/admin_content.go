package httpserver

import (
	"net/http"

	"travel_agency/internal/adapters/auth"
	"travel_agency/internal/domain"
)

/********** categories & tags **********/

func (a *Admin) listCategories(w http.ResponseWriter, r *http.Request) {
	out, err := a.C.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *Admin) createCategory(w http.ResponseWriter, r *http.Request) {
	var c domain.Category
	if !decodeJSON(w, r, &c) {
		return
	}
	if err := a.C.CreateCategory(r.Context(), &c); err != nil {
		writeError(w, r, err)
		return
	}
	done("categories", "create")
	writeJSON(w, http.StatusCreated, c)
}

func (a *Admin) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var c domain.Category
	if !decodeJSON(w, r, &c) {
		return
	}
	c.ID = id
	if err := a.C.UpdateCategory(r.Context(), &c); err != nil {
		writeError(w, r, err)
		return
	}
	done("categories", "update")
	writeJSON(w, http.StatusOK, c)
}

func (a *Admin) deleteCategory(w http.ResponseWriter, r *http.Request) {
	a.remove(w, r, "categories", a.C.DeleteCategory)
}

func (a *Admin) listTags(w http.ResponseWriter, r *http.Request) {
	out, err := a.C.ListTags(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *Admin) createTag(w http.ResponseWriter, r *http.Request) {
	var t domain.Tag
	if !decodeJSON(w, r, &t) {
		return
	}
	if err := a.C.CreateTag(r.Context(), &t); err != nil {
		writeError(w, r, err)
		return
	}
	done("tags", "create")
	writeJSON(w, http.StatusCreated, t)
}

func (a *Admin) updateTag(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var t domain.Tag
	if !decodeJSON(w, r, &t) {
		return
	}
	t.ID = id
	if err := a.C.UpdateTag(r.Context(), &t); err != nil {
		writeError(w, r, err)
		return
	}
	done("tags", "update")
	writeJSON(w, http.StatusOK, t)
}

func (a *Admin) deleteTag(w http.ResponseWriter, r *http.Request) {
	a.remove(w, r, "tags", a.C.DeleteTag)
}

/********** posts **********/

func (a *Admin) listPosts(w http.ResponseWriter, r *http.Request) {
	size := qInt(r, "limit", 50, 200)
	out, err := a.C.ListPosts(r.Context(), domain.PostFilter{
		Status:       domain.PostStatus(r.URL.Query().Get("status")),
		CategorySlug: r.URL.Query().Get("category"),
		TagSlug:      r.URL.Query().Get("tag"),
		Q:            r.URL.Query().Get("q"),
		Limit:        size,
		Offset:       qPage(r, size),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *Admin) getPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := a.C.GetPost(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *Admin) createPost(w http.ResponseWriter, r *http.Request) {
	var p domain.BlogPost
	if !decodeJSON(w, r, &p) {
		return
	}
	actor, _ := auth.ActorFrom(r.Context())
	if err := a.C.CreatePost(r.Context(), actor, &p); err != nil {
		writeError(w, r, err)
		return
	}
	done("posts", "create")
	writeJSON(w, http.StatusCreated, p)
}

func (a *Admin) updatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var p domain.BlogPost
	if !decodeJSON(w, r, &p) {
		return
	}
	p.ID = id
	if err := a.C.UpdatePost(r.Context(), &p); err != nil {
		writeError(w, r, err)
		return
	}
	done("posts", "update")
	writeJSON(w, http.StatusOK, p)
}

func (a *Admin) deletePost(w http.ResponseWriter, r *http.Request) {
	a.remove(w, r, "posts", a.C.DeletePost)
}

func (a *Admin) publishPosts(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	n, err := a.C.PublishPosts(r.Context(), req.IDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	done("posts", "publish")
	writeJSON(w, http.StatusOK, map[string]int64{"changed": n})
}

/********** testimonials **********/

func (a *Admin) listTestimonials(w http.ResponseWriter, r *http.Request) {
	f := domain.TestimonialFilter{Limit: qInt(r, "limit", 0, 500)}
	if v := qBool(r, "approved"); v != nil && *v {
		f.ApprovedOnly = true
	}
	out, err := a.C.ListTestimonials(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *Admin) getTestimonial(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	t, err := a.C.GetTestimonial(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (a *Admin) createTestimonial(w http.ResponseWriter, r *http.Request) {
	var t domain.Testimonial
	if !decodeJSON(w, r, &t) {
		return
	}
	if err := a.C.CreateTestimonial(r.Context(), &t); err != nil {
		writeError(w, r, err)
		return
	}
	done("testimonials", "create")
	writeJSON(w, http.StatusCreated, t)
}

func (a *Admin) updateTestimonial(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var t domain.Testimonial
	if !decodeJSON(w, r, &t) {
		return
	}
	t.ID = id
	out, err := a.C.UpdateTestimonial(r.Context(), &t)
	if err != nil {
		writeError(w, r, err)
		return
	}
	done("testimonials", "update")
	writeJSON(w, http.StatusOK, out)
}

func (a *Admin) deleteTestimonial(w http.ResponseWriter, r *http.Request) {
	a.remove(w, r, "testimonials", a.C.DeleteTestimonial)
}

func (a *Admin) approveTestimonials(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	n, err := a.C.ApproveTestimonials(r.Context(), req.IDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	done("testimonials", "approve")
	writeJSON(w, http.StatusOK, map[string]int64{"changed": n})
}

/********** faqs **********/

func (a *Admin) listFAQs(w http.ResponseWriter, r *http.Request) {
	out, err := a.C.ListFAQs(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *Admin) getFAQ(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	f, err := a.C.GetFAQ(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (a *Admin) createFAQ(w http.ResponseWriter, r *http.Request) {
	var f domain.FAQ
	if !decodeJSON(w, r, &f) {
		return
	}
	if err := a.C.CreateFAQ(r.Context(), &f); err != nil {
		writeError(w, r, err)
		return
	}
	done("faqs", "create")
	writeJSON(w, http.StatusCreated, f)
}

func (a *Admin) updateFAQ(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var f domain.FAQ
	if !decodeJSON(w, r, &f) {
		return
	}
	f.ID = id
	if err := a.C.UpdateFAQ(r.Context(), &f); err != nil {
		writeError(w, r, err)
		return
	}
	done("faqs", "update")
	writeJSON(w, http.StatusOK, f)
}

func (a *Admin) deleteFAQ(w http.ResponseWriter, r *http.Request) {
	a.remove(w, r, "faqs", a.C.DeleteFAQ)
}
