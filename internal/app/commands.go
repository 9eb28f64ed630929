package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"travel_agency/internal/domain"
)

// ImportOutcome says what happened to one seed row.
type ImportOutcome string

const (
	ImportCreated ImportOutcome = "created"
	ImportSkipped ImportOutcome = "skipped"
)

// CatalogImporter loads seed rows through the curation rules, so slugs and
// validation match what staff would get.
type CatalogImporter struct {
	cur *CurationService

	mu           sync.RWMutex
	destinations map[string]int64 // name or slug (lowercase) -> id
	amenities    map[string]int64 // lowercase name -> id
	questions    map[string]bool  // FAQs have no unique key; dedupe on the text
}

func NewCatalogImporter(c *CurationService) *CatalogImporter {
	return &CatalogImporter{
		cur:          c,
		destinations: map[string]int64{},
		amenities:    map[string]int64{},
		questions:    map[string]bool{},
	}
}

// ImportDestination creates one destination. A duplicate name or slug is
// skipped, not failed, so the seeder can be rerun.
func (im *CatalogImporter) ImportDestination(ctx context.Context, row Row) (ImportOutcome, error) {
	d := mapDestination(row)
	if err := im.cur.CreateDestination(ctx, &d); err != nil {
		if isDuplicate(err) {
			log.Debug().Str("name", d.Name).Msg("destination exists, skipping")
			return ImportSkipped, nil
		}
		return "", err
	}
	im.mu.Lock()
	im.destinations[strings.ToLower(d.Name)] = d.ID
	im.destinations[d.Slug] = d.ID
	im.mu.Unlock()
	return ImportCreated, nil
}

// Prepare indexes stored destinations and makes sure every amenity named
// by the hotel rows exists. Call it once before ImportHotel.
func (im *CatalogImporter) Prepare(ctx context.Context, hotelRows []Row) error {
	dests, err := im.cur.ListDestinations(ctx, domain.DestinationFilter{})
	if err != nil {
		return fmt.Errorf("index destinations: %w", err)
	}
	ams, err := im.cur.ListAmenities(ctx)
	if err != nil {
		return fmt.Errorf("index amenities: %w", err)
	}
	faqs, err := im.cur.ListFAQs(ctx)
	if err != nil {
		return fmt.Errorf("index faqs: %w", err)
	}

	im.mu.Lock()
	defer im.mu.Unlock()
	for _, d := range dests {
		im.destinations[strings.ToLower(d.Name)] = d.ID
		im.destinations[d.Slug] = d.ID
	}
	for _, a := range ams {
		im.amenities[strings.ToLower(a.Name)] = a.ID
	}
	for _, f := range faqs {
		im.questions[strings.ToLower(f.Question)] = true
	}

	for _, raw := range hotelRows {
		names := splitList(firstNonEmptyAlias(raw.normalized(), hotelAliases, "amenities"))
		for _, name := range names {
			key := strings.ToLower(name)
			if _, ok := im.amenities[key]; ok {
				continue
			}
			a := domain.Amenity{Name: name}
			if err := im.cur.CreateAmenity(ctx, &a); err != nil {
				return fmt.Errorf("amenity %q: %w", name, err)
			}
			im.amenities[key] = a.ID
		}
	}
	return nil
}

// ImportHotel is safe to call from several goroutines after Prepare.
func (im *CatalogImporter) ImportHotel(ctx context.Context, row Row) (ImportOutcome, error) {
	hr, problems := mapHotel(row)
	if problems != nil {
		return "", problems
	}

	im.mu.RLock()
	destID, ok := im.destinations[strings.ToLower(hr.Destination)]
	if !ok {
		destID, ok = im.destinations[domain.Slugify(hr.Destination, domain.SlugMaxLen)]
	}
	amenityIDs := make([]int64, 0, len(hr.Amenities))
	for _, name := range hr.Amenities {
		if id, found := im.amenities[strings.ToLower(name)]; found {
			amenityIDs = append(amenityIDs, id)
		}
	}
	im.mu.RUnlock()

	if !ok {
		return "", domain.NewValidationError("destination", fmt.Sprintf("%q is not a known destination", hr.Destination))
	}
	h := hr.Hotel
	h.DestinationID = destID
	h.AmenityIDs = amenityIDs
	if err := im.cur.CreateHotel(ctx, &h); err != nil {
		if isDuplicate(err) {
			log.Debug().Str("name", h.Name).Msg("hotel exists, skipping")
			return ImportSkipped, nil
		}
		return "", err
	}
	return ImportCreated, nil
}

func (im *CatalogImporter) ImportFAQ(ctx context.Context, row Row) (ImportOutcome, error) {
	f := mapFAQ(row)
	key := strings.ToLower(strings.TrimSpace(f.Question))
	im.mu.Lock()
	defer im.mu.Unlock()
	if im.questions[key] {
		return ImportSkipped, nil
	}
	if err := im.cur.CreateFAQ(ctx, &f); err != nil {
		return "", err
	}
	im.questions[key] = true
	return ImportCreated, nil
}

func isDuplicate(err error) bool {
	var ie *domain.IntegrityError
	return errors.As(err, &ie) && ie.Kind == domain.IntegrityUnique
}
