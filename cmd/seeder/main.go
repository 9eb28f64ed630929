package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"travel_agency/internal/adapters/observability"
	"travel_agency/internal/adapters/workbook"
	"travel_agency/internal/app"
	"travel_agency/internal/shared"
	mysqlrepo "travel_agency/internal/storage/mysql"
)

// Sheets read from the catalog workbook. FAQs is optional.
const (
	sheetDestinations = "Destinations"
	sheetHotels       = "Hotels"
	sheetFAQs         = "FAQs"
)

type tally struct{ created, skipped, failed atomic.Int64 }

func (t *tally) record(out app.ImportOutcome, err error) {
	switch {
	case err != nil:
		t.failed.Add(1)
	case out == app.ImportSkipped:
		t.skipped.Add(1)
	default:
		t.created.Add(1)
	}
}

func main() {
	path := flag.String("file", "seed/catalog.xlsx", "catalog workbook (.xlsx)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("file", *path).
		Int("workers", cfg.SeedWorkers).
		Float64("rps", cfg.SeedRPS).
		Msg("seeder starting")

	book, err := workbook.Open(*path)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open catalog")
	}
	defer book.Close()

	destRows, err := book.Rows(sheetDestinations)
	if err != nil {
		log.Fatal().Err(err).Msg("read destinations")
	}
	hotelRows, err := book.Rows(sheetHotels)
	if err != nil && !errors.Is(err, workbook.ErrNoSheet) {
		log.Fatal().Err(err).Msg("read hotels")
	}
	faqRows, err := book.Rows(sheetFAQs)
	if err != nil && !errors.Is(err, workbook.ErrNoSheet) {
		log.Fatal().Err(err).Msg("read faqs")
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	im := app.NewCatalogImporter(app.NewCurationService(mysqlrepo.New(db), nil))
	limiter := rate.NewLimiter(rate.Limit(cfg.SeedRPS), 1)

	// Destinations go first and one by one: hotels reference them by name.
	var dests tally
	for i, r := range destRows {
		if err := limiter.Wait(ctx); err != nil {
			log.Fatal().Err(err).Msg("interrupted")
		}
		out, err := im.ImportDestination(ctx, app.Row(r))
		dests.record(out, err)
		if err != nil {
			log.Warn().Int("row", i+2).Err(err).Msg("destination failed")
		}
	}

	toRows := func(in []map[string]string) []app.Row {
		out := make([]app.Row, len(in))
		for i, r := range in {
			out[i] = app.Row(r)
		}
		return out
	}
	hotels := toRows(hotelRows)
	if err := im.Prepare(ctx, hotels); err != nil {
		log.Fatal().Err(err).Msg("prepare hotels")
	}

	var hs tally
	sem := semaphore.NewWeighted(int64(max(cfg.SeedWorkers, 1)))
	var wg sync.WaitGroup
	for i, r := range hotels {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Error().Err(err).Msg("semaphore acquire failed")
			break
		}
		wg.Add(1)
		go func(rowNum int, row app.Row) {
			defer wg.Done()
			defer sem.Release(1)

			if err := limiter.Wait(ctx); err != nil {
				hs.record("", err)
				return
			}
			out, err := im.ImportHotel(ctx, row)
			hs.record(out, err)
			if err != nil {
				log.Warn().Int("row", rowNum).Err(err).Msg("hotel failed")
			}
		}(i+2, r)
	}
	wg.Wait()

	var faqs tally
	for i, r := range toRows(faqRows) {
		out, err := im.ImportFAQ(ctx, r)
		faqs.record(out, err)
		if err != nil {
			log.Warn().Int("row", i+2).Err(err).Msg("faq failed")
		}
	}

	log.Info().
		Int64("destinations_created", dests.created.Load()).
		Int64("destinations_skipped", dests.skipped.Load()).
		Int64("destinations_failed", dests.failed.Load()).
		Int64("hotels_created", hs.created.Load()).
		Int64("hotels_skipped", hs.skipped.Load()).
		Int64("hotels_failed", hs.failed.Load()).
		Int64("faqs_created", faqs.created.Load()).
		Int64("faqs_skipped", faqs.skipped.Load()).
		Msg("seeding completed")

	if dests.failed.Load()+hs.failed.Load()+faqs.failed.Load() > 0 {
		os.Exit(1)
	}
}
