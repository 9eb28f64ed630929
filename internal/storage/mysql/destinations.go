package mysql

import (
	"context"
	"database/sql"

	"travel_agency/internal/domain"
)

func scanDestination(s scanner) (domain.Destination, error) {
	var d domain.Destination
	err := s.Scan(&d.ID, &d.Name, &d.Slug, &d.Description, &d.Country, &d.Image, &d.BestTimeToVisit, &d.IsFeatured)
	return d, err
}

func (r *Repo) ListDestinations(ctx context.Context, f domain.DestinationFilter) ([]domain.Destination, error) {
	var w where
	if f.Featured != nil {
		w.add("d.is_featured = ?", *f.Featured)
	}
	if f.Country != "" {
		w.add("d.country = ?", f.Country)
	}
	if f.Q != "" {
		w.add("(d.name LIKE ? OR d.country LIKE ?)", like(f.Q), like(f.Q))
	}
	lim, largs := page(f.Limit, 0)
	q := "SELECT" + destinationColumns + " FROM destinations d" + w.String() + " ORDER BY d.name, d.id" + lim

	rows, err := r.db.QueryContext(ctx, q, append(w.args, largs...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Destination{}
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *Repo) GetDestination(ctx context.Context, id int64) (domain.DestinationDetail, error) {
	row := r.db.QueryRowContext(ctx, "SELECT"+destinationColumns+" FROM destinations d WHERE d.id = ?", id)
	return r.destinationDetail(ctx, row)
}

func (r *Repo) GetDestinationBySlug(ctx context.Context, slug string) (domain.DestinationDetail, error) {
	row := r.db.QueryRowContext(ctx, "SELECT"+destinationColumns+" FROM destinations d WHERE d.slug = ?", slug)
	return r.destinationDetail(ctx, row)
}

// destinationDetail loads the destination's hotels, gallery and itinerary.
func (r *Repo) destinationDetail(ctx context.Context, row *sql.Row) (domain.DestinationDetail, error) {
	d, err := scanDestination(row)
	if err != nil {
		return domain.DestinationDetail{}, mapErr(err)
	}
	out := domain.DestinationDetail{Destination: d}

	if out.Itinerary, err = r.listItinerary(ctx, d.ID); err != nil {
		return domain.DestinationDetail{}, err
	}
	if out.Hotels, err = r.ListHotels(ctx, domain.HotelFilter{DestinationID: &d.ID}); err != nil {
		return domain.DestinationDetail{}, err
	}
	if out.Gallery, err = r.ListGallery(ctx, domain.GalleryFilter{DestinationID: &d.ID}); err != nil {
		return domain.DestinationDetail{}, err
	}
	return out, nil
}

func (r *Repo) listItinerary(ctx context.Context, destinationID int64) ([]domain.Itinerary, error) {
	rows, err := r.db.QueryContext(ctx, listItinerarySQL, destinationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Itinerary{}
	for rows.Next() {
		var it domain.Itinerary
		if err := rows.Scan(&it.ID, &it.DestinationID, &it.Day, &it.Title, &it.Detail); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *Repo) CreateDestination(ctx context.Context, d *domain.Destination) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		id, err := insertID(tx.ExecContext(ctx, insertDestinationSQL,
			d.Name, d.Slug, d.Description, d.Country, d.Image, d.BestTimeToVisit, d.IsFeatured))
		if err != nil {
			return err
		}
		d.ID = id
		return writeItinerary(ctx, tx, d)
	})
}

func (r *Repo) UpdateDestination(ctx context.Context, d *domain.Destination) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if err := lockRow(ctx, tx, "destinations", d.ID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, updateDestinationSQL,
			d.Name, d.Description, d.Country, d.Image, d.BestTimeToVisit, d.IsFeatured, d.ID); err != nil {
			return err
		}
		if d.Itinerary == nil {
			return nil
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM itineraries WHERE destination_id = ?", d.ID); err != nil {
			return err
		}
		return writeItinerary(ctx, tx, d)
	})
}

func writeItinerary(ctx context.Context, tx *sql.Tx, d *domain.Destination) error {
	for i := range d.Itinerary {
		it := &d.Itinerary[i]
		it.DestinationID = d.ID
		id, err := insertID(tx.ExecContext(ctx, insertItinerarySQL, d.ID, it.Day, it.Title, it.Detail))
		if err != nil {
			return err
		}
		it.ID = id
	}
	return nil
}

// DeleteDestination relies on ON DELETE CASCADE for hotels, gallery and itinerary.
func (r *Repo) DeleteDestination(ctx context.Context, id int64) error {
	return r.execDelete(ctx, "destinations", id)
}
