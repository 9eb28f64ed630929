package mysql

import (
	"context"

	"travel_agency/internal/domain"
)

func scanBooking(s scanner) (domain.Booking, error) {
	var b domain.Booking
	var status string
	err := s.Scan(
		&b.ID, &b.UserID, &b.Username, &b.HotelID, &b.HotelName,
		&b.CheckInDate, &b.CheckOutDate, &b.NumGuests, &b.TotalPrice, &status,
		&b.CreatedAt, &b.UpdatedAt,
	)
	b.Status = domain.BookingStatus(status)
	return b, err
}

func (r *Repo) ListBookings(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, error) {
	var w where
	if f.Status != "" {
		w.add("b.status = ?", string(f.Status))
	}
	if f.HotelID != nil {
		w.add("b.hotel_id = ?", *f.HotelID)
	}
	lim, largs := page(f.Limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, bookingSelect+w.String()+" ORDER BY b.created_at DESC, b.id DESC"+lim,
		append(w.args, largs...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repo) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, bookingSelect+" WHERE b.id = ?", id))
	if err != nil {
		return domain.Booking{}, mapErr(err)
	}
	return b, nil
}
