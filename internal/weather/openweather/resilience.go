package openweather

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// retryPolicy controls exponential backoff for upstream requests.
type retryPolicy struct {
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
}

func defaultRetryPolicy() retryPolicy {
	return retryPolicy{
		maxRetries:      3,
		initialInterval: 500 * time.Millisecond,
		maxInterval:     5 * time.Second,
	}
}

// delay returns the backoff before retry number attempt (0-based), doubling
// each time and capped at maxInterval.
func (p retryPolicy) delay(attempt int) time.Duration {
	d := p.initialInterval << uint(attempt)
	if p.maxInterval > 0 && d > p.maxInterval {
		d = p.maxInterval
	}
	return d
}

var (
	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")
	errUnexpected  = errors.New("unexpected status code")
	errCircuitOpen = errors.New("circuit breaker open")
)

// doResilient executes the request with retries, exponential backoff, and the
// endpoint's circuit breaker. The request is rebuilt per attempt so bodies
// and contexts stay fresh.
func (c *Client) doResilient(
	ctx context.Context,
	cb *gobreaker.CircuitBreaker,
	buildRequest func() (*http.Request, error),
) (*http.Response, error) {
	var lastErr error

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := buildRequest()
		if err != nil {
			return nil, err
		}
		req = req.WithContext(ctx)

		result, err := cb.Execute(func() (interface{}, error) {
			resp, execErr := c.http.Do(req)
			if execErr != nil {
				return nil, execErr
			}

			switch {
			case resp.StatusCode == http.StatusTooManyRequests:
				resp.Body.Close()
				return nil, errRateLimited
			case resp.StatusCode >= 500:
				resp.Body.Close()
				return nil, errServerError
			case resp.StatusCode < 200 || resp.StatusCode >= 300:
				resp.Body.Close()
				return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
			}
			return resp, nil
		})

		if err == nil {
			return result.(*http.Response), nil
		}

		// An open circuit means the endpoint is known-bad; fail fast.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}

		lastErr = err
		if attempt >= c.retry.maxRetries {
			return nil, lastErr
		}

		timer := time.NewTimer(c.retry.delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}
