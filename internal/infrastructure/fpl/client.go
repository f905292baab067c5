package fpl

import (
	"context"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/fplmate/fpl-companion/internal/domain/fixture"
	"github.com/fplmate/fpl-companion/internal/platform/logging"
	"github.com/fplmate/fpl-companion/internal/platform/resilience"
	"github.com/fplmate/fpl-companion/internal/usecase"
)

const (
	defaultBaseURL = "https://fantasy.premierleague.com/api"
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 8 << 20
)

var (
	errFPLTransient = crerr.New("fpl transient failure")

	// ErrEntryNotFound marks a 404 on the entry endpoints so the import flow
	// can answer with a clean client error instead of a provider failure.
	ErrEntryNotFound = crerr.New("fpl entry not found")
)

type ClientConfig struct {
	BaseURL        string
	Timeout        time.Duration
	Retry          resilience.RetryConfig
	CircuitBreaker resilience.CircuitBreakerConfig
	Logger         *logging.Logger

	// Dial overrides the transport dialer; tests point it at an in-memory
	// listener.
	Dial fasthttp.DialFunc
}

// Client talks to the public FPL API. All reads go through a circuit breaker
// and a per-path single-flight group; the provider serves the same payload to
// everyone, so concurrent identical requests collapse into one.
type Client struct {
	http           *fasthttp.Client
	baseURL        string
	timeout        time.Duration
	retry          resilience.RetryConfig
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		http: &fasthttp.Client{
			Name:                "fpl-companion",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxBodyBytes,
			Dial:                cfg.Dial,
		},
		baseURL:        baseURL,
		timeout:        timeout,
		retry:          resilience.NormalizeRetryConfig(cfg.Retry),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchBootstrap pulls the full bootstrap-static payload: gameweeks, clubs
// and the complete player universe.
func (c *Client) FetchBootstrap(ctx context.Context) (Bootstrap, error) {
	var out Bootstrap
	if err := c.doJSON(ctx, "/bootstrap-static/", &out); err != nil {
		return Bootstrap{}, fmt.Errorf("fetch bootstrap: %w", err)
	}
	if len(out.Players) == 0 || len(out.Teams) == 0 {
		return Bootstrap{}, crerr.New("fetch bootstrap: payload carries no players or teams")
	}

	return out, nil
}

// FetchFixtures pulls the season's full fixture list.
func (c *Client) FetchFixtures(ctx context.Context) ([]fixture.Fixture, error) {
	var out []fixture.Fixture
	if err := c.doJSON(ctx, "/fixtures/", &out); err != nil {
		return nil, fmt.Errorf("fetch fixtures: %w", err)
	}

	return out, nil
}

// FetchEntry pulls an FPL manager's public profile.
func (c *Client) FetchEntry(ctx context.Context, entryID int64) (Entry, error) {
	if entryID <= 0 {
		return Entry{}, crerr.New("entry id must be greater than zero")
	}

	var out Entry
	if err := c.doJSON(ctx, fmt.Sprintf("/entry/%d/", entryID), &out); err != nil {
		return Entry{}, fmt.Errorf("fetch entry entry_id=%d: %w", entryID, err)
	}

	return out, nil
}

// FetchEntryPicks pulls an entry's selection for one gameweek.
func (c *Client) FetchEntryPicks(ctx context.Context, entryID int64, event int) (EntryPicks, error) {
	if entryID <= 0 {
		return EntryPicks{}, crerr.New("entry id must be greater than zero")
	}
	if event <= 0 {
		return EntryPicks{}, crerr.New("event must be greater than zero")
	}

	var out EntryPicks
	if err := c.doJSON(ctx, fmt.Sprintf("/entry/%d/event/%d/picks/", entryID, event), &out); err != nil {
		return EntryPicks{}, fmt.Errorf("fetch picks entry_id=%d event=%d: %w", entryID, event, err)
	}

	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "fpl circuit breaker rejected request", "state", c.breaker.State(), "path", path)
			return fmt.Errorf("%w: fpl api is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	out, err, _ := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, c.baseURL+path)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errFPLTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return crerr.Newf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode fpl payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var raw []byte

	err := resilience.Retry(ctx, c.retry, func(ctx context.Context) error {
		req := fasthttp.AcquireRequest()
		resp := fasthttp.AcquireResponse()
		defer fasthttp.ReleaseRequest(req)
		defer fasthttp.ReleaseResponse(resp)

		req.SetRequestURI(fullURL)
		req.Header.SetMethod(fasthttp.MethodGet)
		req.Header.Set("Accept", "application/json")

		deadline := time.Now().Add(c.timeout)
		if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
			deadline = d
		}

		if doErr := c.http.DoDeadline(req, resp, deadline); doErr != nil {
			return fmt.Errorf("%w: send request: %v", errFPLTransient, doErr)
		}

		status := resp.StatusCode()
		body := bytebufferpool.Get()
		defer bytebufferpool.Put(body)
		_, _ = body.Write(resp.Body())

		switch {
		case status >= 200 && status < 300:
			raw = append([]byte(nil), body.B...)
			return nil
		case status == fasthttp.StatusNotFound:
			return resilience.Permanent(fmt.Errorf("%w: status=404 detail=%s", ErrEntryNotFound, abbreviateDetail(body.B)))
		case isRetryableStatus(status):
			return fmt.Errorf("%w: provider status=%d body=%s", errFPLTransient, status, abbreviateBody(body.B))
		default:
			return resilience.Permanent(crerr.Newf("provider status=%d body=%s", status, abbreviateBody(body.B)))
		}
	})
	if err != nil {
		c.logger.WarnContext(ctx, "fpl request failed", "url", fullURL, "error", err)
		return nil, err
	}

	return raw, nil
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		body = body[:limit] + "..."
	}
	return body
}

func abbreviateDetail(raw []byte) string {
	var payload apiError
	if err := sonic.Unmarshal(raw, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return abbreviateBody(raw)
}
