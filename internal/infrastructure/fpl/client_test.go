package fpl

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	"github.com/fplmate/fpl-companion/internal/platform/logging"
	"github.com/fplmate/fpl-companion/internal/platform/resilience"
	"github.com/fplmate/fpl-companion/internal/usecase"
)

func startTestServer(t *testing.T, handler fasthttp.RequestHandler) fasthttp.DialFunc {
	t.Helper()

	ln := fasthttputil.NewInmemoryListener()
	srv := &fasthttp.Server{Handler: handler}
	go func() {
		_ = srv.Serve(ln)
	}()
	t.Cleanup(func() {
		_ = srv.Shutdown()
		_ = ln.Close()
	})

	return func(string) (net.Conn, error) {
		return ln.Dial()
	}
}

func testClient(t *testing.T, handler fasthttp.RequestHandler, cfg ClientConfig) *Client {
	t.Helper()

	cfg.BaseURL = "http://fpl.test/api"
	cfg.Logger = logging.NewNop()
	cfg.Dial = startTestServer(t, handler)
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = resilience.RetryConfig{MaxAttempts: 1, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}
	}

	return NewClient(cfg)
}

func TestClientFetchBootstrap(t *testing.T) {
	t.Parallel()

	payload := `{
		"events": [{"id": 7, "is_current": true}],
		"teams": [{"id": 1, "name": "Arsenal", "short_name": "ARS"}],
		"elements": [{"id": 101, "web_name": "Saka", "team": 1, "element_type": 3, "now_cost": 87, "total_points": 45}]
	}`

	client := testClient(t, func(ctx *fasthttp.RequestCtx) {
		if string(ctx.Path()) != "/api/bootstrap-static/" {
			ctx.SetStatusCode(fasthttp.StatusNotFound)
			return
		}
		ctx.SetContentType("application/json")
		ctx.SetBodyString(payload)
	}, ClientConfig{})

	got, err := client.FetchBootstrap(context.Background())
	if err != nil {
		t.Fatalf("FetchBootstrap failed: %v", err)
	}
	if got.CurrentEvent() != 7 {
		t.Fatalf("current event = %d, want 7", got.CurrentEvent())
	}
	if len(got.Players) != 1 || got.Players[0].WebName != "Saka" || got.Players[0].NowCost != 87 {
		t.Fatalf("unexpected players: %+v", got.Players)
	}
	if len(got.Teams) != 1 || got.Teams[0].ShortName != "ARS" {
		t.Fatalf("unexpected teams: %+v", got.Teams)
	}
}

func TestClientFetchEntryPicksNotFound(t *testing.T) {
	t.Parallel()

	client := testClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		ctx.SetBodyString(`{"detail": "Not found."}`)
	}, ClientConfig{})

	_, err := client.FetchEntryPicks(context.Background(), 12345, 7)
	if !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestClientRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := testClient(t, func(ctx *fasthttp.RequestCtx) {
		if calls.Add(1) < 3 {
			ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
			return
		}
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`[{"id": 1, "event": 1, "team_h": 3, "team_a": 8, "team_h_difficulty": 2, "team_a_difficulty": 4}]`)
	}, ClientConfig{
		Retry: resilience.RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond},
	})

	fixtures, err := client.FetchFixtures(context.Background())
	if err != nil {
		t.Fatalf("FetchFixtures failed: %v", err)
	}
	if calls.Load() != 3 {
		t.Fatalf("server calls = %d, want 3", calls.Load())
	}
	if len(fixtures) != 1 || fixtures[0].HomeTeamID != 3 || fixtures[0].DifficultyFor(8) != 4 {
		t.Fatalf("unexpected fixtures: %+v", fixtures)
	}
}

func TestClientCircuitBreakerOpensAfterRepeatedFailures(t *testing.T) {
	t.Parallel()

	client := testClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
	}, ClientConfig{
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	for i := 0; i < 2; i++ {
		if _, err := client.FetchBootstrap(context.Background()); err == nil {
			t.Fatal("expected provider failure")
		}
	}

	_, err := client.FetchBootstrap(context.Background())
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable once the circuit opened, got %v", err)
	}
}
