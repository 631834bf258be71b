package prefetch

import (
	"context"
	"io"
	"log"
	"net/http"
	"time"
)

// Warmer pre-fetches image URLs to warm downstream caches. The work is a
// detached background task: Warm returns immediately and the critical path
// never joins on it. Failures are logged and swallowed.
type Warmer struct {
	client  *http.Client
	timeout time.Duration
}

// New creates a Warmer using the shared outbound HTTP client.
func New(client *http.Client) *Warmer {
	return &Warmer{
		client:  client,
		timeout: 10 * time.Second,
	}
}

// Warm fetches each URL best-effort in a detached goroutine.
func (w *Warmer) Warm(urls []string) {
	if len(urls) == 0 {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
		defer cancel()

		for _, u := range urls {
			if err := w.fetch(ctx, u); err != nil {
				log.Printf("prefetch: warm %s failed: %v", u, err)
			}
		}
	}()
}

func (w *Warmer) fetch(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	_, err = io.Copy(io.Discard, resp.Body)
	return err
}
