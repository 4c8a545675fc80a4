// Package upstream holds the HTTP plumbing shared by the REST clients:
// the error taxonomy and a circuit-breaking GET.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

var (
	// ErrTransport covers network failures, timeouts and an open circuit.
	ErrTransport = errors.New("upstream transport failure")
	// ErrMalformed is returned when a response is missing required fields or cannot be decoded.
	ErrMalformed = errors.New("malformed upstream response")
	// ErrUpstreamStatus is returned when the upstream reports a failure status.
	ErrUpstreamStatus = errors.New("upstream reported failure")
)

// StatusError carries the HTTP status and a trimmed body for a failed call.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrUpstreamStatus
}

// Client issues GET requests to one upstream behind a circuit breaker.
// There are no retries: a failed call fails the caller's operation.
type Client struct {
	name       string
	httpClient *http.Client
	userAgent  string
	breaker    *gobreaker.CircuitBreaker
}

// NewClient creates a client for the named upstream.
func NewClient(name string, timeout time.Duration, userAgent string) *Client {
	return &Client{
		name:       name,
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
			// An abandoned search is not the upstream's fault.
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Printf("upstream=%s breaker=%s->%s", name, from, to)
			},
		}),
	}
}

// Name returns the upstream name used in logs and breaker state.
func (c *Client) Name() string {
	return c.name
}

// Get performs a GET and returns the response for any status below 500.
// The caller owns the body. 5xx responses count against the breaker and are
// returned as *StatusError.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.userAgent != "" {
			req.Header.Set("User-Agent", c.userAgent)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrTransport, c.name, err)
		}
		if resp.StatusCode >= 500 {
			return nil, readStatusError(resp)
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %s circuit open: %v", ErrTransport, c.name, err)
		}
		return nil, err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected result type from breaker", ErrTransport)
	}
	return resp, nil
}

// readStatusError drains and closes the body into a StatusError.
func readStatusError(resp *http.Response) error {
	defer resp.Body.Close()
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
}

// CheckStatus returns a *StatusError for any non-200 response, closing its body.
func CheckStatus(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	return readStatusError(resp)
}
