package mysql

import (
	"context"
	"database/sql"

	"travel_agency/internal/domain"
)

func scanGallery(s scanner) (domain.GalleryImage, error) {
	var g domain.GalleryImage
	var caption sql.NullString
	var hotelID, destID sql.NullInt64
	err := s.Scan(&g.ID, &caption, &g.Image, &hotelID, &destID, &g.UploadedAt)
	g.Caption = ptrStr(caption)
	g.HotelID = ptrInt64(hotelID)
	g.DestinationID = ptrInt64(destID)
	return g, err
}

func (r *Repo) ListGallery(ctx context.Context, f domain.GalleryFilter) ([]domain.GalleryImage, error) {
	var w where
	if f.HotelID != nil {
		w.add("g.hotel_id = ?", *f.HotelID)
	}
	if f.DestinationID != nil {
		w.add("g.destination_id = ?", *f.DestinationID)
	}
	q := "SELECT " + galleryColumns + " FROM gallery_images g" + w.String() + " ORDER BY g.uploaded_at DESC, g.id DESC"

	rows, err := r.db.QueryContext(ctx, q, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.GalleryImage{}
	for rows.Next() {
		g, err := scanGallery(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *Repo) GetGalleryImage(ctx context.Context, id int64) (domain.GalleryImage, error) {
	g, err := scanGallery(r.db.QueryRowContext(ctx, "SELECT "+galleryColumns+" FROM gallery_images g WHERE g.id = ?", id))
	if err != nil {
		return domain.GalleryImage{}, mapErr(err)
	}
	return g, nil
}

func (r *Repo) CreateGalleryImage(ctx context.Context, g *domain.GalleryImage) error {
	id, err := insertID(r.db.ExecContext(ctx, insertGallerySQL,
		valStr(g.Caption), g.Image, valInt64(g.HotelID), valInt64(g.DestinationID), utc(g.UploadedAt)))
	if err != nil {
		return mapErr(err)
	}
	g.ID = id
	return nil
}

func (r *Repo) UpdateGalleryImage(ctx context.Context, g *domain.GalleryImage) error {
	return r.execUpdate(ctx, "gallery_images", g.ID, updateGallerySQL,
		valStr(g.Caption), g.Image, valInt64(g.HotelID), valInt64(g.DestinationID), g.ID)
}

func (r *Repo) DeleteGalleryImage(ctx context.Context, id int64) error {
	return r.execDelete(ctx, "gallery_images", id)
}
