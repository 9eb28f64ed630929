package mysql

import (
	"context"
	"database/sql"

	"travel_agency/internal/domain"
)

func scanEnquiry(s scanner) (domain.Enquiry, error) {
	var e domain.Enquiry
	var phone, subject, note sql.NullString
	err := s.Scan(&e.ID, &e.Name, &e.Email, &phone, &subject, &e.Message, &e.CreatedAt, &e.IsResolved, &note)
	e.Phone = ptrStr(phone)
	e.Subject = ptrStr(subject)
	e.ResolutionNote = ptrStr(note)
	return e, err
}

func (r *Repo) CreateEnquiry(ctx context.Context, e *domain.Enquiry) error {
	id, err := insertID(r.db.ExecContext(ctx, insertEnquirySQL,
		e.Name, e.Email, valStr(e.Phone), valStr(e.Subject), e.Message, utc(e.CreatedAt)))
	if err != nil {
		return mapErr(err)
	}
	e.ID = id
	e.IsResolved = false
	return nil
}

func (r *Repo) ListEnquiries(ctx context.Context, f domain.EnquiryFilter) ([]domain.Enquiry, error) {
	var w where
	if f.Resolved != nil {
		w.add("is_resolved = ?", *f.Resolved)
	}
	if f.Q != "" {
		p := like(f.Q)
		w.add("(name LIKE ? OR email LIKE ? OR subject LIKE ? OR message LIKE ?)", p, p, p, p)
	}
	lim, largs := page(f.Limit, f.Offset)
	q := "SELECT " + enquiryColumns + " FROM enquiries" + w.String() + " ORDER BY created_at DESC, id DESC" + lim

	rows, err := r.db.QueryContext(ctx, q, append(w.args, largs...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Enquiry{}
	for rows.Next() {
		e, err := scanEnquiry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *Repo) GetEnquiry(ctx context.Context, id int64) (domain.Enquiry, error) {
	e, err := scanEnquiry(r.db.QueryRowContext(ctx, "SELECT "+enquiryColumns+" FROM enquiries WHERE id = ?", id))
	if err != nil {
		return domain.Enquiry{}, mapErr(err)
	}
	return e, nil
}

// ResolveEnquiry touches only the staff-owned columns.
func (r *Repo) ResolveEnquiry(ctx context.Context, id int64, resolved bool, note *string) error {
	return r.execUpdate(ctx, "enquiries", id, resolveEnquirySQL, resolved, valStr(note), id)
}
