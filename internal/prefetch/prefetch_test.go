package prefetch

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestWarmFetchesEveryURL(t *testing.T) {
	hits := make(chan string, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits <- r.URL.Path
		w.Write([]byte("img"))
	}))
	defer srv.Close()

	w := New(srv.Client())
	w.Warm([]string{srv.URL + "/a.png", srv.URL + "/b.png"})

	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case p := <-hits:
			seen[p] = true
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for prefetch, saw %v", seen)
		}
	}
	if !seen["/a.png"] || !seen["/b.png"] {
		t.Fatalf("expected both urls fetched, saw %v", seen)
	}
}

func TestWarmSwallowsFailures(t *testing.T) {
	// Nothing is listening on this address; Warm must neither block nor panic.
	w := New(&http.Client{Timeout: time.Second})
	done := make(chan struct{})
	go func() {
		w.Warm([]string{"http://127.0.0.1:1/nope.png"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Warm blocked the caller")
	}
}
