// Package resilience wraps outbound HTTP calls to catalog and generator
// providers with a circuit breaker, per-request timeouts and exponential
// backoff retries.
package resilience

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker/v2"
)

var (
	// ErrCircuitOpen is returned when the provider's circuit breaker is
	// open and no request was attempted.
	ErrCircuitOpen = errors.New("provider circuit open")
)

// Config holds the knobs for a resilient provider client. The zero value of
// any field takes the stated default.
type Config struct {
	// Name identifies the provider in breaker state and logs.
	Name string

	// Timeout bounds each individual HTTP attempt. Default 10s.
	Timeout time.Duration

	// MaxRetries bounds retry attempts after the first. Default 3.
	MaxRetries uint64

	// InitialBackoff is the first retry delay. Default 100ms.
	InitialBackoff time.Duration

	// MaxBackoff caps the retry delay. Default 5s.
	MaxBackoff time.Duration

	// BreakerTimeout is how long the breaker stays open before probing.
	// Default 60s.
	BreakerTimeout time.Duration

	// MinRequests is the sample size before the breaker may trip.
	// Default 5; it trips at a 50% failure rate.
	MinRequests uint32
}

// Client executes HTTP requests through a circuit breaker with retries.
// Retries apply to network errors and 5xx responses; 4xx responses are
// returned to the caller untouched.
type Client struct {
	name    string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*http.Response]
	cfg     Config
}

// New creates a resilient client for one named provider.
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.InitialBackoff == 0 {
		cfg.InitialBackoff = 100 * time.Millisecond
	}
	if cfg.MaxBackoff == 0 {
		cfg.MaxBackoff = 5 * time.Second
	}
	if cfg.BreakerTimeout == 0 {
		cfg.BreakerTimeout = 60 * time.Second
	}
	if cfg.MinRequests == 0 {
		cfg.MinRequests = 5
	}

	breaker := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{ //nolint:bodyclose // type param, not a response
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests && ratio >= 0.5
		},
	})

	return &Client{
		name:    cfg.Name,
		http:    &http.Client{Timeout: cfg.Timeout},
		breaker: breaker,
		cfg:     cfg,
	}
}

// Do executes the request, retrying transient failures with exponential
// backoff until the request context is done or retries are exhausted. A 429
// is retried after the upstream's Retry-After hint when one is sent, without
// counting against the breaker. When retries exhaust on a 5xx or 429, the
// last response is returned so callers can inspect the status. Returns
// ErrCircuitOpen without attempting a request while the breaker is open.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.cfg.InitialBackoff
	bo.MaxInterval = c.cfg.MaxBackoff
	bo.MaxElapsedTime = 0

	var retryAfter time.Duration
	hinted := &hintedBackOff{BackOff: bo, hint: &retryAfter, max: c.cfg.MaxBackoff}
	policy := backoff.WithContext(backoff.WithMaxRetries(hinted, c.cfg.MaxRetries), ctx)

	var last *http.Response

	attempt := func() error {
		resp, err := c.breaker.Execute(func() (*http.Response, error) { //nolint:bodyclose // caller closes
			clone := req.Clone(ctx)
			if req.GetBody != nil {
				body, bodyErr := req.GetBody()
				if bodyErr != nil {
					return nil, backoff.Permanent(bodyErr)
				}
				clone.Body = body
			}
			r, doErr := c.http.Do(clone)
			if doErr != nil {
				return nil, doErr
			}
			if r.StatusCode >= http.StatusInternalServerError {
				// Counts as a breaker failure and is retried.
				return r, &StatusError{Provider: c.name, StatusCode: r.StatusCode}
			}
			return r, nil
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(ErrCircuitOpen)
			}
			if resp != nil {
				last = resp
			}
			return err
		}

		// Rate limits are retried after the upstream's hint but are not
		// breaker failures; the provider is up, just throttling us.
		if resp.StatusCode == http.StatusTooManyRequests {
			last = resp
			retryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
			return &StatusError{Provider: c.name, StatusCode: resp.StatusCode}
		}

		last = resp
		return nil
	}

	if err := backoff.Retry(attempt, policy); err != nil {
		if last != nil {
			return last, nil
		}
		return nil, err
	}
	return last, nil
}

// State reports the breaker state for health endpoints.
func (c *Client) State() gobreaker.State {
	return c.breaker.State()
}

// Name returns the provider name the client was configured with.
func (c *Client) Name() string {
	return c.name
}

// StatusError marks a retryable upstream status (5xx or 429).
type StatusError struct {
	Provider   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: upstream status: %s", e.Provider, http.StatusText(e.StatusCode))
}

// hintedBackOff delegates to the wrapped policy unless the last response
// carried a Retry-After hint, in which case the hint wins when it is longer,
// capped at max.
type hintedBackOff struct {
	backoff.BackOff
	hint *time.Duration
	max  time.Duration
}

func (b *hintedBackOff) NextBackOff() time.Duration {
	next := b.BackOff.NextBackOff()
	if next == backoff.Stop {
		return next
	}
	if h := *b.hint; h > 0 {
		*b.hint = 0
		if h > next {
			next = h
		}
		if next > b.max {
			next = b.max
		}
	}
	return next
}

// parseRetryAfter reads the delay-seconds form of a Retry-After header.
// The HTTP-date form and anything malformed fall back to the retry policy.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
