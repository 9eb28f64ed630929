package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"travel_agency/internal/adapters/auth"
	server "travel_agency/internal/adapters/http_server"
	"travel_agency/internal/adapters/media"
	"travel_agency/internal/adapters/observability"
	redisad "travel_agency/internal/adapters/redis"
	"travel_agency/internal/app"
	"travel_agency/internal/domain"
	"travel_agency/internal/shared"
	mysqlrepo "travel_agency/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)

	var throttle domain.Throttle
	if cfg.RedisAddr != "" {
		th := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.ContactLimit, cfg.ContactWindow)
		defer th.Close()
		if err := th.Ping(context.Background()); err != nil {
			log.Warn().Err(err).Msg("redis unreachable; throttle will fail open")
		}
		throttle = th
	}

	q := app.NewQueryService(repo)
	intake := app.NewEnquiryService(repo, throttle)
	curation := app.NewCurationService(repo, media.NewDisk(cfg.MediaRoot))

	// http
	srv := server.New(cfg.RequestTimeout, cfg.TrustProxy)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, Enquiries: intake, MediaRoot: cfg.MediaRoot})
	srv.MountAdmin(&server.Admin{C: curation, Tokens: auth.NewTokens(cfg.JWTSecret)})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("API stopped")
}
