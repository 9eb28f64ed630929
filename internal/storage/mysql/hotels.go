package mysql

import (
	"context"
	"database/sql"

	"travel_agency/internal/domain"
)

func scanHotel(s scanner) (domain.Hotel, error) {
	var h domain.Hotel
	var phone, email sql.NullString
	err := s.Scan(
		&h.ID, &h.DestinationID, &h.Name, &h.Slug, &h.Description, &h.Address,
		&phone, &email,
		&h.PricePerNight, &h.Rating, &h.Image, &h.IsFeatured, &h.IsAvailable,
	)
	h.Phone = ptrStr(phone)
	h.Email = ptrStr(email)
	return h, err
}

func (r *Repo) ListHotels(ctx context.Context, f domain.HotelFilter) ([]domain.Hotel, error) {
	var w where
	if f.Featured != nil {
		w.add("h.is_featured = ?", *f.Featured)
	}
	if f.Available != nil {
		w.add("h.is_available = ?", *f.Available)
	}
	if f.DestinationID != nil {
		w.add("h.destination_id = ?", *f.DestinationID)
	}
	if f.Q != "" {
		w.add("(h.name LIKE ? OR h.address LIKE ?)", like(f.Q), like(f.Q))
	}
	lim, largs := page(f.Limit, 0)
	q := "SELECT" + hotelColumns + " FROM hotels h" + w.String() + " ORDER BY h.rating DESC, h.name, h.id" + lim

	rows, err := r.db.QueryContext(ctx, q, append(w.args, largs...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Hotel{}
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *Repo) GetHotel(ctx context.Context, id int64) (domain.HotelDetail, error) {
	row := r.db.QueryRowContext(ctx, "SELECT"+hotelColumns+" FROM hotels h WHERE h.id = ?", id)
	return r.hotelDetail(ctx, row)
}

func (r *Repo) GetHotelBySlug(ctx context.Context, slug string) (domain.HotelDetail, error) {
	row := r.db.QueryRowContext(ctx, "SELECT"+hotelColumns+" FROM hotels h WHERE h.slug = ?", slug)
	return r.hotelDetail(ctx, row)
}

func (r *Repo) hotelDetail(ctx context.Context, row *sql.Row) (domain.HotelDetail, error) {
	h, err := scanHotel(row)
	if err != nil {
		return domain.HotelDetail{}, mapErr(err)
	}
	out := domain.HotelDetail{Hotel: h}

	drow := r.db.QueryRowContext(ctx, "SELECT"+destinationColumns+" FROM destinations d WHERE d.id = ?", h.DestinationID)
	if out.Destination, err = scanDestination(drow); err != nil {
		return domain.HotelDetail{}, mapErr(err)
	}
	if out.Amenities, err = r.hotelAmenities(ctx, h.ID); err != nil {
		return domain.HotelDetail{}, err
	}
	out.AmenityIDs = make([]int64, 0, len(out.Amenities))
	for _, a := range out.Amenities {
		out.AmenityIDs = append(out.AmenityIDs, a.ID)
	}
	if out.Gallery, err = r.ListGallery(ctx, domain.GalleryFilter{HotelID: &h.ID}); err != nil {
		return domain.HotelDetail{}, err
	}
	return out, nil
}

func (r *Repo) hotelAmenities(ctx context.Context, hotelID int64) ([]domain.Amenity, error) {
	rows, err := r.db.QueryContext(ctx, listHotelAmenitiesSQL, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Amenity{}
	for rows.Next() {
		var a domain.Amenity
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *Repo) CreateHotel(ctx context.Context, h *domain.Hotel) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		id, err := insertID(tx.ExecContext(ctx, insertHotelSQL,
			h.DestinationID, h.Name, h.Slug, h.Description, h.Address,
			valStr(h.Phone), valStr(h.Email),
			h.PricePerNight, h.Rating, h.Image, h.IsFeatured, h.IsAvailable,
		))
		if err != nil {
			return err
		}
		h.ID = id
		return writeHotelAmenities(ctx, tx, h.ID, h.AmenityIDs)
	})
}

func (r *Repo) UpdateHotel(ctx context.Context, h *domain.Hotel) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if err := lockRow(ctx, tx, "hotels", h.ID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, updateHotelSQL,
			h.DestinationID, h.Name, h.Description, h.Address,
			valStr(h.Phone), valStr(h.Email),
			h.PricePerNight, h.Rating, h.Image, h.IsFeatured, h.IsAvailable,
			h.ID,
		); err != nil {
			return err
		}
		if h.AmenityIDs == nil {
			return nil
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM hotel_amenities WHERE hotel_id = ?", h.ID); err != nil {
			return err
		}
		return writeHotelAmenities(ctx, tx, h.ID, h.AmenityIDs)
	})
}

func writeHotelAmenities(ctx context.Context, tx *sql.Tx, hotelID int64, ids []int64) error {
	for _, aid := range ids {
		if _, err := tx.ExecContext(ctx,
			"INSERT IGNORE INTO hotel_amenities (hotel_id, amenity_id) VALUES (?, ?)", hotelID, aid); err != nil {
			return err
		}
	}
	return nil
}

// DeleteHotel relies on ON DELETE CASCADE for gallery images and bookings.
func (r *Repo) DeleteHotel(ctx context.Context, id int64) error {
	return r.execDelete(ctx, "hotels", id)
}

func (r *Repo) ListAmenities(ctx context.Context) ([]domain.Amenity, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM amenities ORDER BY name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Amenity{}
	for rows.Next() {
		var a domain.Amenity
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *Repo) CreateAmenity(ctx context.Context, a *domain.Amenity) error {
	id, err := insertID(r.db.ExecContext(ctx, "INSERT INTO amenities (name) VALUES (?)", a.Name))
	if err != nil {
		return mapErr(err)
	}
	a.ID = id
	return nil
}

func (r *Repo) UpdateAmenity(ctx context.Context, a *domain.Amenity) error {
	return r.execUpdate(ctx, "amenities", a.ID, "UPDATE amenities SET name = ? WHERE id = ?", a.Name, a.ID)
}

func (r *Repo) DeleteAmenity(ctx context.Context, id int64) error {
	return r.execDelete(ctx, "amenities", id)
}
