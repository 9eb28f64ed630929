package app_test

import (
	"context"
	"sync"
	"testing"

	"travel_agency/internal/app"
	"travel_agency/internal/domain"
)

func TestCatalogImporter_Rerunnable(t *testing.T) {
	repo := newMemRepo()
	im := app.NewCatalogImporter(app.NewCurationService(repo, nil))
	ctx := context.Background()

	destRows := []app.Row{
		{"Name": "Santorini", "Country": "Greece", "Featured": "yes"},
		{"Destination Name": "Marrakech", "country": "Morocco", "Best Time To Visit": "Spring"},
	}
	for _, r := range destRows {
		if out, err := im.ImportDestination(ctx, r); err != nil || out != app.ImportCreated {
			t.Fatalf("import %v: %s %v", r, out, err)
		}
	}
	if out, err := im.ImportDestination(ctx, destRows[0]); err != nil || out != app.ImportSkipped {
		t.Fatalf("rerun: %s %v", out, err)
	}
	if !repo.destinations[0].IsFeatured || repo.destinations[1].BestTimeToVisit != "Spring" {
		t.Fatalf("mapping: %+v", repo.destinations)
	}

	hotelRows := []app.Row{
		{"Hotel Name": "Caldera Suites", "Destination": "santorini", "Address": "Oia", "Price": "€ 310,00", "Stars": "4.7", "Amenities": "Pool; Wi-Fi"},
		{"Name": "Riad Noor", "Destination": "Marrakech", "Address": "Medina", "Price Per Night": "1,250.50", "Rating": "4", "Facilities": "wi-fi, Spa", "Available": "no"},
	}
	if err := im.Prepare(ctx, hotelRows); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if len(repo.amenities) != 3 {
		t.Fatalf("want 3 amenities (Pool, Wi-Fi, Spa), got %+v", repo.amenities)
	}

	var wg sync.WaitGroup
	errs := make([]error, len(hotelRows))
	for i, r := range hotelRows {
		wg.Add(1)
		go func(i int, r app.Row) {
			defer wg.Done()
			_, errs[i] = im.ImportHotel(ctx, r)
		}(i, r)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Fatalf("hotel %d: %v", i, err)
		}
	}

	byName := map[string]domain.Hotel{}
	for _, h := range repo.hotels {
		byName[h.Name] = h
	}
	riad := byName["Riad Noor"]
	if riad.PricePerNight.String() != "1250.5" || riad.IsAvailable || len(riad.AmenityIDs) != 2 {
		t.Fatalf("riad: %+v", riad)
	}
	caldera := byName["Caldera Suites"]
	if caldera.PricePerNight.String() != "310" || !caldera.IsAvailable || caldera.Slug != "caldera-suites" {
		t.Fatalf("caldera: %+v", caldera)
	}

	if out, err := im.ImportHotel(ctx, hotelRows[0]); err != nil || out != app.ImportSkipped {
		t.Fatalf("hotel rerun: %s %v", out, err)
	}
}

func TestCatalogImporter_BadHotelRow(t *testing.T) {
	im := app.NewCatalogImporter(app.NewCurationService(newMemRepo(), nil))
	ctx := context.Background()
	if err := im.Prepare(ctx, nil); err != nil {
		t.Fatalf("prepare: %v", err)
	}

	_, err := im.ImportHotel(ctx, app.Row{"Name": "Nowhere Inn", "Price": "cheap", "Rating": "4"})
	if !domain.IsValidation(err) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	_, err = im.ImportHotel(ctx, app.Row{"Name": "Lost Inn", "Destination": "Atlantis", "Address": "x", "Price": "10", "Rating": "3"})
	if !domain.IsValidation(err) {
		t.Fatalf("unknown destination: want ValidationError, got %v", err)
	}
}

func TestCatalogImporter_FAQDedupe(t *testing.T) {
	repo := newMemRepo()
	repo.faqs = []domain.FAQ{{ID: 1, Question: "Do I need a visa?", Answer: "Maybe."}}
	im := app.NewCatalogImporter(app.NewCurationService(repo, nil))
	ctx := context.Background()
	if err := im.Prepare(ctx, nil); err != nil {
		t.Fatalf("prepare: %v", err)
	}

	out, err := im.ImportFAQ(ctx, app.Row{"Question": "do i need a visa?", "Answer": "Yes."})
	if err != nil || out != app.ImportSkipped {
		t.Fatalf("dup: %s %v", out, err)
	}
	out, err = im.ImportFAQ(ctx, app.Row{"Q": "Is travel insurance included?", "A": "No."})
	if err != nil || out != app.ImportCreated || len(repo.faqs) != 2 {
		t.Fatalf("new: %s %v (%d faqs)", out, err, len(repo.faqs))
	}
}
