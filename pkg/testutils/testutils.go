// Package testutils provides helpers for webapi tests: an app wired to
// the in-memory ledger store and token/request plumbing.
package testutils

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sociomart/backend/config"
	"github.com/sociomart/backend/infra/initializer"
	"github.com/sociomart/backend/internal/fixtures/ledgertest"
	"github.com/sociomart/backend/pkg/reward"
	"github.com/sociomart/backend/pkg/service/market"
	"github.com/sociomart/backend/pkg/service/social"
	"github.com/sociomart/backend/webapi"
)

// TestConfig returns an AppConfig suitable for handler tests: a fixed
// signing secret and a rate limit high enough to never trip.
func TestConfig() *config.AppConfig {
	return &config.AppConfig{
		Env:  "test",
		Host: "localhost",
		Port: 0,
		Jwt: config.JwtConfig{
			Secret: "secret",
			Expiry: time.Hour,
		},
		RateLimit: config.RateLimitConfig{
			MaxRequests: 10000,
			Window:      time.Minute,
		},
		Rewards: config.RewardsConfig{
			Follow:  10,
			Like:    5,
			Comment: 3,
		},
	}
}

// SetupTestApp builds the fiber app over an in-memory store. The store
// is returned so tests can seed rows and inspect state directly.
func SetupTestApp(t *testing.T) (*fiber.App, *ledgertest.Store, *config.AppConfig) {
	t.Helper()

	cfg := TestConfig()
	store := ledgertest.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	deps := &initializer.Deps{
		Logger: logger,
		Cfg:    cfg,
		Uow:    store,
		Social: social.NewService(store, reward.DefaultPolicy(), logger),
		Market: market.NewService(store, logger),
	}
	return webapi.NewApp(deps), store, cfg
}

// SignToken issues a bearer token for userID with the test secret, the
// way the identity provider would.
func SignToken(t *testing.T, cfg *config.AppConfig, userID uuid.UUID) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(cfg.Jwt.Expiry).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Jwt.Secret))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

// MakeRequest performs a request against the app. An empty token sends
// no Authorization header.
func MakeRequest(app *fiber.App, method, path, body, token string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, 10000)
	if err != nil {
		panic(err)
	}
	return resp
}
