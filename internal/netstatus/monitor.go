package netstatus

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

// Listener is notified when the connectivity status flips. Notifications are
// advisory only; they never trigger a re-fetch and never return an error.
type Listener func(online bool)

// Monitor tracks network reachability by periodically probing a well-known
// URL. It stands in for a platform network-state service.
type Monitor struct {
	client    *http.Client
	probeURL  string
	interval  time.Duration
	scheduler *gocron.Scheduler

	mu        sync.RWMutex
	online    bool
	listeners []Listener
}

// New creates a Monitor probing probeURL every interval.
func New(client *http.Client, probeURL string, interval time.Duration) *Monitor {
	return &Monitor{
		client:    client,
		probeURL:  probeURL,
		interval:  interval,
		scheduler: gocron.NewScheduler(time.UTC),
	}
}

// Start runs one synchronous probe to seed the status, then schedules the
// periodic probe.
func (m *Monitor) Start() error {
	m.setOnline(m.probe())

	seconds := int(m.interval.Seconds())
	if seconds <= 0 {
		seconds = 30
	}

	_, err := m.scheduler.Every(seconds).Seconds().Do(func() {
		m.setOnline(m.probe())
	})
	if err != nil {
		return err
	}

	m.scheduler.StartAsync()
	return nil
}

// Stop stops the periodic probe.
func (m *Monitor) Stop() {
	if m.scheduler != nil {
		m.scheduler.Stop()
	}
}

// Online reports the last observed connectivity status.
func (m *Monitor) Online() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

// Subscribe registers a change listener.
func (m *Monitor) Subscribe(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

func (m *Monitor) probe() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, m.probeURL, nil)
	if err != nil {
		return false
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()

	return resp.StatusCode < 500
}

func (m *Monitor) setOnline(online bool) {
	m.mu.Lock()
	changed := m.online != online
	m.online = online
	listeners := make([]Listener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	if !changed {
		return
	}

	if online {
		log.Println("netstatus: connection online")
	} else {
		log.Println("netstatus: connection offline")
	}

	for _, l := range listeners {
		l(online)
	}
}
