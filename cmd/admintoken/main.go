// Command admintoken prints a bearer token for the admin API.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"travel_agency/internal/adapters/auth"
	"travel_agency/internal/adapters/observability"
	"travel_agency/internal/shared"
)

func main() {
	user := flag.Int64("user", 0, "staff user id (users.id)")
	ttl := flag.Duration("ttl", 12*time.Hour, "token lifetime")
	staff := flag.Bool("staff", true, "grant the staff claim")
	flag.Parse()

	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	if *user <= 0 {
		log.Fatal().Msg("-user is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}
	tok, err := auth.NewTokens(cfg.JWTSecret).Issue(*user, *staff, *ttl)
	if err != nil {
		log.Fatal().Err(err).Msg("sign token")
	}
	fmt.Fprintln(os.Stdout, tok)
}
