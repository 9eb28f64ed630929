package mysql

import (
	"context"
	"database/sql"

	"travel_agency/internal/domain"
)

func scanTestimonial(s scanner) (domain.Testimonial, error) {
	var t domain.Testimonial
	var designation sql.NullString
	err := s.Scan(&t.ID, &t.Name, &designation, &t.Content, &t.Rating, &t.IsApproved, &t.CreatedAt)
	t.Designation = ptrStr(designation)
	return t, err
}

func (r *Repo) ListTestimonials(ctx context.Context, f domain.TestimonialFilter) ([]domain.Testimonial, error) {
	var w where
	if f.ApprovedOnly {
		w.add("is_approved = TRUE")
	}
	lim, largs := page(f.Limit, 0)
	q := "SELECT " + testimonialColumns + " FROM testimonials" + w.String() + " ORDER BY created_at DESC, id DESC" + lim

	rows, err := r.db.QueryContext(ctx, q, append(w.args, largs...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Testimonial{}
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repo) GetTestimonial(ctx context.Context, id int64) (domain.Testimonial, error) {
	t, err := scanTestimonial(r.db.QueryRowContext(ctx, "SELECT "+testimonialColumns+" FROM testimonials WHERE id = ?", id))
	if err != nil {
		return domain.Testimonial{}, mapErr(err)
	}
	return t, nil
}

func (r *Repo) CreateTestimonial(ctx context.Context, t *domain.Testimonial) error {
	id, err := insertID(r.db.ExecContext(ctx, insertTestimonialSQL,
		t.Name, valStr(t.Designation), t.Content, t.Rating, t.IsApproved, utc(t.CreatedAt)))
	if err != nil {
		return mapErr(err)
	}
	t.ID = id
	return nil
}

func (r *Repo) UpdateTestimonial(ctx context.Context, t *domain.Testimonial) error {
	return r.execUpdate(ctx, "testimonials", t.ID, updateTestimonialSQL,
		t.Name, valStr(t.Designation), t.Content, t.Rating, t.IsApproved, t.ID)
}

func (r *Repo) DeleteTestimonial(ctx context.Context, id int64) error {
	return r.execDelete(ctx, "testimonials", id)
}

// ApproveTestimonials returns the number of rows that changed; rows that
// were already approved are matched but not counted.
func (r *Repo) ApproveTestimonials(ctx context.Context, ids []int64) (int64, error) {
	return r.execIDs(ctx, approveTestimonialsPrefix, ids)
}

func (r *Repo) ListFAQs(ctx context.Context) ([]domain.FAQ, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, question, answer FROM faqs ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.FAQ{}
	for rows.Next() {
		var f domain.FAQ
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *Repo) GetFAQ(ctx context.Context, id int64) (domain.FAQ, error) {
	var f domain.FAQ
	err := r.db.QueryRowContext(ctx, "SELECT id, question, answer FROM faqs WHERE id = ?", id).
		Scan(&f.ID, &f.Question, &f.Answer)
	if err != nil {
		return domain.FAQ{}, mapErr(err)
	}
	return f, nil
}

func (r *Repo) CreateFAQ(ctx context.Context, f *domain.FAQ) error {
	id, err := insertID(r.db.ExecContext(ctx, "INSERT INTO faqs (question, answer) VALUES (?, ?)", f.Question, f.Answer))
	if err != nil {
		return mapErr(err)
	}
	f.ID = id
	return nil
}

func (r *Repo) UpdateFAQ(ctx context.Context, f *domain.FAQ) error {
	return r.execUpdate(ctx, "faqs", f.ID, "UPDATE faqs SET question = ?, answer = ? WHERE id = ?", f.Question, f.Answer, f.ID)
}

func (r *Repo) DeleteFAQ(ctx context.Context, id int64) error {
	return r.execDelete(ctx, "faqs", id)
}
