package weather

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ServiceConfig tunes snapshot enrichment.
type ServiceConfig struct {
	FlagBaseURL  string
	FlagStyle    FlagStyle
	FlagPixels   int
	DefaultCount int
}

// Service aggregates the three upstream fetches into one display-ready
// Snapshot. The label resolver and image warmer are optional collaborators.
type Service struct {
	source Source
	labels LabelResolver
	warmer ImageWarmer
	cfg    ServiceConfig
}

// NewService creates a new Service. labels and warmer may be nil.
func NewService(source Source, labels LabelResolver, warmer ImageWarmer, cfg ServiceConfig) *Service {
	if cfg.FlagStyle == "" {
		cfg.FlagStyle = FlagFlat
	}
	if cfg.FlagPixels <= 0 {
		cfg.FlagPixels = 64
	}
	if cfg.DefaultCount <= 0 {
		cfg.DefaultCount = 6
	}
	return &Service{
		source: source,
		labels: labels,
		warmer: warmer,
		cfg:    cfg,
	}
}

// DefaultCount returns the configured number of hourly/daily periods.
func (s *Service) DefaultCount() int {
	return s.cfg.DefaultCount
}

// BuildSnapshot fetches current, hourly and daily data concurrently, joins on
// all three, and builds the enriched snapshot. The operation is all-or-nothing:
// any fetch failure, or a forecast list shorter than count, fails the whole
// call and no partial snapshot is surfaced.
func (s *Service) BuildSnapshot(ctx context.Context, q Query, count int, units UnitSystem, hour12 bool) (*Snapshot, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if !units.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidUnitSystem, units)
	}
	if count <= 0 {
		count = s.cfg.DefaultCount
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		cur    RawCurrent
		hourly []RawHourly
		daily  []RawDaily
		errs   []error
	)

	record := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		c, err := s.source.Current(ctx, q, units)
		if err != nil {
			record(fmt.Errorf("current: %w", err))
			return
		}
		cur = c
	}()
	go func() {
		defer wg.Done()
		h, err := s.source.Hourly(ctx, q, count, units)
		if err != nil {
			record(fmt.Errorf("hourly: %w", err))
			return
		}
		hourly = h
	}()
	go func() {
		defer wg.Done()
		d, err := s.source.Daily(ctx, q, count, units)
		if err != nil {
			record(fmt.Errorf("daily: %w", err))
			return
		}
		daily = d
	}()
	wg.Wait()

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFetch, errs[0])
	}
	if len(hourly) < count {
		return nil, fmt.Errorf("%w: hourly has %d of %d entries", ErrPartialData, len(hourly), count)
	}
	if len(daily) < count {
		return nil, fmt.Errorf("%w: daily has %d of %d entries", ErrPartialData, len(daily), count)
	}

	// Providers return lists in chronological order; enforce it anyway so
	// positional consumers see non-decreasing timestamps.
	sort.SliceStable(hourly, func(i, j int) bool { return hourly[i].Dt < hourly[j].Dt })
	sort.SliceStable(daily, func(i, j int) bool { return daily[i].Dt < daily[j].Dt })

	coords := cur.Coords
	if coords == (Location{}) && q.Coords != nil {
		coords = *q.Coords
	}

	label := s.resolveLabel(ctx, cur, coords)

	flagURL := ""
	if cur.Country != "" {
		flagURL = FlagURL(s.cfg.FlagBaseURL, cur.Country, s.cfg.FlagStyle, s.cfg.FlagPixels)
	}

	currentTime, err := FormatTime(cur.Dt*1000, hour12, coords)
	if err != nil {
		return nil, fmt.Errorf("format current time: %w", err)
	}

	snap := &Snapshot{
		ID:          uuid.NewString(),
		Coordinates: coords,
		FlagURL:     flagURL,
		Units:       units,
		Current: CurrentPeriod{
			FormattedTime: currentTime,
			RawTimestamp:  cur.Dt,
			Conditions:    cur.Conditions,
			Temps:         cur.Temps,
			Wind:          cur.Wind,
			IconPath:      IconPathForConditions(cur.Conditions),
			LocationLabel: label,
		},
		Hourly:    make([]HourlyPeriod, 0, count),
		Daily:     make([]DailyPeriod, 0, count),
		FetchedAt: time.Now().UTC(),
	}

	for i := 0; i < count; i++ {
		h := hourly[i]
		ft, err := FormatTime(h.Dt*1000, hour12, coords)
		if err != nil {
			return nil, fmt.Errorf("format hourly time: %w", err)
		}
		snap.Hourly = append(snap.Hourly, HourlyPeriod{
			FormattedTime: ft,
			RawTimestamp:  h.Dt,
			Conditions:    h.Conditions,
			Temps:         h.Temps,
			Wind:          h.Wind,
			IconPath:      IconPathForConditions(h.Conditions),
		})

		d := daily[i]
		snap.Daily = append(snap.Daily, DailyPeriod{
			FormattedTime: FormatDate(d.Dt * 1000),
			RawTimestamp:  d.Dt,
			Conditions:    d.Conditions,
			Temps:         d.Temps,
			Wind:          d.Wind,
			IconPath:      IconPathForConditions(d.Conditions),
		})
	}

	s.warmImages(snap)

	return snap, nil
}

func (s *Service) resolveLabel(ctx context.Context, cur RawCurrent, coords Location) string {
	if cur.CityName != "" && cur.Country != "" {
		return fmt.Sprintf("%s, %s", cur.CityName, cur.Country)
	}
	if cur.CityName != "" {
		return cur.CityName
	}
	if s.labels != nil {
		if label, ok := s.labels.Label(ctx, coords); ok {
			return label
		}
	}
	return coords.Label()
}

// warmImages hands every derived image URL to the warmer. The warmer is
// fire-and-forget; it never blocks the path that returns the snapshot.
func (s *Service) warmImages(snap *Snapshot) {
	if s.warmer == nil {
		return
	}

	seen := make(map[string]struct{})
	var urls []string
	add := func(u string) {
		if u == "" {
			return
		}
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}

	add(snap.FlagURL)
	if len(snap.Current.Conditions) > 0 {
		add(ConditionIconURL(snap.Current.Conditions[0].Icon))
	}
	for _, h := range snap.Hourly {
		if len(h.Conditions) > 0 {
			add(ConditionIconURL(h.Conditions[0].Icon))
		}
	}
	for _, d := range snap.Daily {
		if len(d.Conditions) > 0 {
			add(ConditionIconURL(d.Conditions[0].Icon))
		}
	}

	if len(urls) > 0 {
		s.warmer.Warm(urls)
	}
}
