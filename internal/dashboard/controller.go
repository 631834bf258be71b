package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/avilik92/weather-dashboard/internal/store"
	"github.com/avilik92/weather-dashboard/internal/weather"
)

// Settings are the user preferences. They persist for the lifetime of the
// installation and change only through explicit user action.
type Settings struct {
	Units    weather.UnitSystem `json:"unitSystem"`
	Hour12   bool               `json:"hour12"`
	DarkMode bool               `json:"darkMode"`
}

// DefaultSettings are applied on first run.
func DefaultSettings() Settings {
	return Settings{
		Units:    weather.UnitsMetric,
		Hour12:   true,
		DarkMode: false,
	}
}

// Aggregator is the snapshot-building dependency.
type Aggregator interface {
	BuildSnapshot(ctx context.Context, q weather.Query, count int, units weather.UnitSystem, hour12 bool) (*weather.Snapshot, error)
	DefaultCount() int
}

// Connectivity reports whether the upstream provider is reachable.
type Connectivity interface {
	Online() bool
}

// Controller owns the settings/cache/re-derivation flow. All collaborators
// are injected at construction; nothing is reached through package globals.
// Operations that touch the held snapshot are serialized by an internal
// mutex, so unit and clock changes cannot interleave.
type Controller struct {
	kv  store.KV
	agg Aggregator
	net Connectivity

	mu       sync.Mutex
	snapshot *weather.Snapshot
}

// NewController wires the controller with its collaborators.
func NewController(kv store.KV, agg Aggregator, net Connectivity) *Controller {
	return &Controller{
		kv:  kv,
		agg: agg,
		net: net,
	}
}

// Settings loads the persisted preferences, initializing and persisting the
// defaults on first run.
func (c *Controller) Settings(ctx context.Context) (Settings, error) {
	raw, err := c.kv.Get(ctx, store.KeyUserSettings)
	if errors.Is(err, store.ErrNotFound) {
		log.Println("dashboard: settings not set, initializing defaults")
		s := DefaultSettings()
		if err := c.saveSettings(ctx, s); err != nil {
			return Settings{}, err
		}
		return s, nil
	}
	if err != nil {
		return Settings{}, err
	}

	var s Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return Settings{}, fmt.Errorf("decode stored settings: %w", err)
	}
	return s, nil
}

// Refresh produces the current view model. While online it builds a fresh
// snapshot and persists it as the offline fallback; while offline it serves
// the last stored snapshot, or ErrNoCachedData if none was ever stored. A
// failed build never disturbs the previously cached snapshot. The returned
// snapshot is a copy detached from the controller's internal state.
func (c *Controller) Refresh(ctx context.Context, q weather.Query, count int) (*weather.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	settings, err := c.Settings(ctx)
	if err != nil {
		return nil, err
	}

	if count <= 0 {
		count = c.agg.DefaultCount()
	}

	if !c.net.Online() {
		snap, err := c.loadCached(ctx)
		if err != nil {
			return nil, err
		}
		return snap.Clone(), nil
	}

	snap, err := c.agg.BuildSnapshot(ctx, q, count, settings.Units, settings.Hour12)
	if err != nil {
		return nil, err
	}

	if err := c.saveSnapshot(ctx, snap); err != nil {
		// The fresh snapshot is still good to display even if persisting the
		// fallback copy failed.
		log.Printf("dashboard: persisting snapshot failed: %v", err)
	}

	c.snapshot = snap
	return snap.Clone(), nil
}

// SetUnits persists the new unit preference and re-derives every temperature
// field of the held snapshot in place, without re-fetching. On return the
// stored settings and the snapshot agree on the unit system.
func (c *Controller) SetUnits(ctx context.Context, to weather.UnitSystem) (*weather.Snapshot, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("%w: %q", weather.ErrInvalidUnitSystem, to)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	settings, err := c.Settings(ctx)
	if err != nil {
		return nil, err
	}
	settings.Units = to
	if err := c.saveSettings(ctx, settings); err != nil {
		return nil, err
	}

	c.restoreCached(ctx)
	if c.snapshot == nil {
		return nil, nil
	}

	if err := weather.ConvertSnapshot(c.snapshot, to); err != nil {
		return nil, err
	}
	if err := c.saveSnapshot(ctx, c.snapshot); err != nil {
		return nil, err
	}
	return c.snapshot.Clone(), nil
}

// SetClockFormat persists the new clock preference and re-derives the
// formatted time strings of the held snapshot from their raw timestamps.
func (c *Controller) SetClockFormat(ctx context.Context, hour12 bool) (*weather.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	settings, err := c.Settings(ctx)
	if err != nil {
		return nil, err
	}
	settings.Hour12 = hour12
	if err := c.saveSettings(ctx, settings); err != nil {
		return nil, err
	}

	c.restoreCached(ctx)
	if c.snapshot == nil {
		return nil, nil
	}

	if err := weather.ReformatSnapshotTimes(c.snapshot, hour12); err != nil {
		return nil, err
	}
	if err := c.saveSnapshot(ctx, c.snapshot); err != nil {
		return nil, err
	}
	return c.snapshot.Clone(), nil
}

// SetDarkMode persists the theme preference. No snapshot re-derivation is
// involved.
func (c *Controller) SetDarkMode(ctx context.Context, dark bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	settings, err := c.Settings(ctx)
	if err != nil {
		return err
	}
	settings.DarkMode = dark
	return c.saveSettings(ctx, settings)
}

// Current returns a copy of the snapshot the controller currently holds, or
// nil.
func (c *Controller) Current() *weather.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot.Clone()
}

// Online reports the connectivity status for the status endpoint.
func (c *Controller) Online() bool {
	return c.net.Online()
}

// restoreCached repopulates the held snapshot from the offline cache when
// nothing is held yet. An empty cache is the expected first-run state; any
// other load failure is logged so a broken store does not pass silently.
func (c *Controller) restoreCached(ctx context.Context) {
	if c.snapshot != nil {
		return
	}
	if _, err := c.loadCached(ctx); err != nil && !errors.Is(err, weather.ErrNoCachedData) {
		log.Printf("dashboard: loading cached snapshot failed: %v", err)
	}
}

func (c *Controller) loadCached(ctx context.Context) (*weather.Snapshot, error) {
	raw, err := c.kv.Get(ctx, store.KeyCurrentWeather)
	if errors.Is(err, store.ErrNotFound) {
		return nil, weather.ErrNoCachedData
	}
	if err != nil {
		return nil, err
	}

	var snap weather.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode cached snapshot: %w", err)
	}

	c.snapshot = &snap
	return &snap, nil
}

func (c *Controller) saveSettings(ctx context.Context, s Settings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.kv.Set(ctx, store.KeyUserSettings, raw)
}

func (c *Controller) saveSnapshot(ctx context.Context, snap *weather.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.kv.Set(ctx, store.KeyCurrentWeather, raw)
}
