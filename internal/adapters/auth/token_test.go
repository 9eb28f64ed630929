package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"travel_agency/internal/adapters/auth"
)

func TestTokens_RoundTrip(t *testing.T) {
	tk := auth.NewTokens("s3cret")
	tok, err := tk.Issue(12, true, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	id, err := tk.VerifyStaff(tok)
	if err != nil || id != 12 {
		t.Fatalf("verify: id=%d err=%v", id, err)
	}
}

func TestTokens_Rejects(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tk := auth.NewTokens("s3cret").WithClock(func() time.Time { return now })

	nonStaff, _ := tk.Issue(5, false, time.Hour)
	if _, err := tk.VerifyStaff(nonStaff); !errors.Is(err, auth.ErrNotStaff) {
		t.Fatalf("non-staff: %v", err)
	}

	expired, _ := tk.Issue(5, true, -time.Minute)
	if _, err := tk.Verify(expired); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expired: %v", err)
	}

	other, _ := auth.NewTokens("other").WithClock(func() time.Time { return now }).Issue(5, true, time.Hour)
	if _, err := tk.Verify(other); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("wrong secret: %v", err)
	}

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "5", "staff": true})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if _, err := tk.Verify(unsigned); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("alg none accepted: %v", err)
	}

	if _, err := tk.Verify(""); !errors.Is(err, auth.ErrMissingToken) {
		t.Fatalf("empty: %v", err)
	}
}

func TestActorContext(t *testing.T) {
	ctx := auth.WithActor(context.Background(), 9)
	if id, ok := auth.ActorFrom(ctx); !ok || id != 9 {
		t.Fatalf("got %d %v", id, ok)
	}
	if _, ok := auth.ActorFrom(context.Background()); ok {
		t.Fatalf("empty context has no actor")
	}
}
