package netstatus

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMonitorReportsOnline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	m := New(srv.Client(), srv.URL, time.Minute)
	if err := m.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer m.Stop()

	if !m.Online() {
		t.Fatal("expected online status against a healthy probe target")
	}
}

func TestMonitorReportsOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // probe target gone

	m := New(&http.Client{Timeout: time.Second}, srv.URL, time.Minute)
	if err := m.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer m.Stop()

	if m.Online() {
		t.Fatal("expected offline status against a dead probe target")
	}
}

func TestMonitorNotifiesOnChange(t *testing.T) {
	m := New(&http.Client{Timeout: time.Second}, "http://127.0.0.1:1", time.Minute)

	var events []bool
	m.Subscribe(func(online bool) {
		events = append(events, online)
	})

	m.setOnline(false)
	m.setOnline(true)  // change: notify
	m.setOnline(true)  // no change: silent
	m.setOnline(false) // change: notify

	if len(events) != 2 || events[0] != true || events[1] != false {
		t.Fatalf("unexpected notification sequence: %v", events)
	}
}
