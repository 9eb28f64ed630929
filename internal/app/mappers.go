package app

import (
	"strings"

	"github.com/shopspring/decimal"

	"travel_agency/internal/domain"
)

// Row is one spreadsheet row keyed by its column header.
type Row map[string]string

/********** alias registries (single source of truth) **********/

var destinationAliases = map[string][]string{
	"name":        {"name", "destination", "destination_name", "title"},
	"slug":        {"slug"},
	"country":     {"country", "country_name", "nation"},
	"description": {"description", "desc", "about", "overview"},
	"image":       {"image", "image_path", "photo", "picture"},
	"best_time":   {"best_time_to_visit", "best_time", "season", "when_to_go"},
	"featured":    {"is_featured", "featured"},
}

var hotelAliases = map[string][]string{
	"name":        {"name", "hotel", "hotel_name", "property"},
	"slug":        {"slug"},
	"destination": {"destination", "destination_name", "destination_slug", "city"},
	"description": {"description", "desc", "about"},
	"address":     {"address", "full_address", "street_address", "location"},
	"phone":       {"phone", "telephone", "phone_number", "tel"},
	"email":       {"email", "e-mail", "contact_email"},
	"price":       {"price_per_night", "price", "nightly_rate", "rate"},
	"rating":      {"rating", "stars", "score"},
	"image":       {"image", "image_path", "photo"},
	"featured":    {"is_featured", "featured"},
	"available":   {"is_available", "available"},
	"amenities":   {"amenities", "facilities", "features"},
}

var faqAliases = map[string][]string{
	"question": {"question", "q", "faq"},
	"answer":   {"answer", "a", "reply"},
}

/********** tiny helpers **********/

// normalizeHeader folds "Price Per Night " and "price-per-night" to "price_per_night".
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(h)
}

func (r Row) normalized() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[normalizeHeader(k)] = strings.TrimSpace(v)
	}
	return out
}

// firstNonEmptyAlias: first non-empty cell for a named alias set.
func firstNonEmptyAlias(r Row, aliases map[string][]string, key string) string {
	for _, col := range aliases[key] {
		if v := r[normalizeHeader(col)]; v != "" {
			return v
		}
	}
	return ""
}

// flexBool accepts yes/no, y/n, true/false, 1/0 and x. Blank yields def.
func flexBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def
	case "1", "y", "yes", "true", "x":
		return true
	}
	return false
}

// flexDecimal reads "1 250,50", "1250.5" and "$1,250.50" style cells.
func flexDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(s), "$€£"))
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero, false
	}
	switch {
	case strings.Contains(s, ",") && strings.Contains(s, "."):
		s = strings.ReplaceAll(s, ",", "")
	case strings.Count(s, ",") == 1:
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func splitList(s string) []string {
	f := func(r rune) bool { return r == ',' || r == ';' || r == '|' || r == '\n' }
	var out []string
	for _, part := range strings.FieldsFunc(s, f) {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

/********** row mappers **********/

func mapDestination(raw Row) domain.Destination {
	r := raw.normalized()
	return domain.Destination{
		Name:            firstNonEmptyAlias(r, destinationAliases, "name"),
		Slug:            firstNonEmptyAlias(r, destinationAliases, "slug"),
		Country:         firstNonEmptyAlias(r, destinationAliases, "country"),
		Description:     firstNonEmptyAlias(r, destinationAliases, "description"),
		Image:           firstNonEmptyAlias(r, destinationAliases, "image"),
		BestTimeToVisit: firstNonEmptyAlias(r, destinationAliases, "best_time"),
		IsFeatured:      flexBool(firstNonEmptyAlias(r, destinationAliases, "featured"), false),
	}
}

// hotelRow is a mapped hotel plus the cells that still need resolving
// against stored destinations and amenities.
type hotelRow struct {
	Hotel       domain.Hotel
	Destination string
	Amenities   []string
}

func mapHotel(raw Row) (hotelRow, *domain.ValidationError) {
	r := raw.normalized()
	ve := &domain.ValidationError{}
	h := domain.Hotel{
		Name:        firstNonEmptyAlias(r, hotelAliases, "name"),
		Slug:        firstNonEmptyAlias(r, hotelAliases, "slug"),
		Description: firstNonEmptyAlias(r, hotelAliases, "description"),
		Address:     firstNonEmptyAlias(r, hotelAliases, "address"),
		Phone:       optional(firstNonEmptyAlias(r, hotelAliases, "phone")),
		Email:       optional(firstNonEmptyAlias(r, hotelAliases, "email")),
		Image:       firstNonEmptyAlias(r, hotelAliases, "image"),
		IsFeatured:  flexBool(firstNonEmptyAlias(r, hotelAliases, "featured"), false),
		IsAvailable: flexBool(firstNonEmptyAlias(r, hotelAliases, "available"), true),
	}
	if p, ok := flexDecimal(firstNonEmptyAlias(r, hotelAliases, "price")); ok {
		h.PricePerNight = p
	} else {
		ve.Add("price_per_night", "is not a number")
	}
	if v, ok := flexDecimal(firstNonEmptyAlias(r, hotelAliases, "rating")); ok {
		h.Rating = v
	} else {
		ve.Add("rating", "is not a number")
	}
	out := hotelRow{
		Hotel:       h,
		Destination: firstNonEmptyAlias(r, hotelAliases, "destination"),
		Amenities:   splitList(firstNonEmptyAlias(r, hotelAliases, "amenities")),
	}
	if out.Destination == "" {
		ve.Add("destination", "is required")
	}
	if len(ve.Fields) > 0 {
		return out, ve
	}
	return out, nil
}

func mapFAQ(raw Row) domain.FAQ {
	r := raw.normalized()
	return domain.FAQ{
		Question: firstNonEmptyAlias(r, faqAliases, "question"),
		Answer:   firstNonEmptyAlias(r, faqAliases, "answer"),
	}
}
