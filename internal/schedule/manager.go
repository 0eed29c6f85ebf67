package schedule

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"wayfinder.transitapp.org/internal/logging"
)

// Source produces schedule snapshots. Implemented by Client (bulk JSON
// provider) and StaticSource (GTFS zip).
type Source interface {
	FetchSnapshot(ctx context.Context) (*Snapshot, error)
	Source() string
}

// SnapshotCache persists snapshots between runs. Implemented by
// scheduledb.Client.
type SnapshotCache interface {
	Store(ctx context.Context, snap *Snapshot) error
	Load(ctx context.Context) (*Snapshot, error)
}

// ManagerConfig controls snapshot loading and refresh behavior.
type ManagerConfig struct {
	RefreshInterval time.Duration

	// WarmStart allows serving a cached snapshot when the initial fetch
	// fails. The fallback is explicit and logged; it never happens silently
	// on later refreshes.
	WarmStart bool
}

// Manager owns the current schedule snapshot and its index. The pair is
// swapped atomically under a read-write lock; readers share the immutable
// values by reference, so plan() never blocks on a refresh.
type Manager struct {
	source Source
	config ManagerConfig
	cache  SnapshotCache
	logger *slog.Logger

	mu          sync.RWMutex
	snapshot    *Snapshot
	index       *Index
	lastUpdated time.Time

	shutdownChan chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// InitManager fetches the initial snapshot from the source and starts the
// periodic refresh goroutine. When the initial fetch fails and WarmStart is
// enabled, a cached snapshot is served instead (loudly).
func InitManager(src Source, cache SnapshotCache, config ManagerConfig, logger *slog.Logger) (*Manager, error) {
	manager := &Manager{
		source:       src,
		config:       config,
		cache:        cache,
		logger:       logger,
		shutdownChan: make(chan struct{}),
	}

	snap, err := src.FetchSnapshot(context.Background())
	if err != nil {
		if !config.WarmStart || cache == nil {
			return nil, err
		}
		cached, cacheErr := cache.Load(context.Background())
		if cacheErr != nil || cached.IsEmpty() {
			return nil, err
		}
		logging.LogError(logger, "schedule fetch failed, serving cached snapshot", err,
			slog.String("source", src.Source()))
		snap = cached
	} else {
		manager.persistToCache(snap)
	}

	manager.setSnapshot(snap)

	if config.RefreshInterval > 0 {
		manager.wg.Add(1)
		go manager.refreshPeriodically()
	}

	return manager, nil
}

// Shutdown gracefully stops the manager's background refresh goroutine.
func (manager *Manager) Shutdown() {
	manager.shutdownOnce.Do(func() {
		close(manager.shutdownChan)
		manager.wg.Wait()
	})
}

// Current returns the snapshot and index being served. It returns
// ErrScheduleEmpty when no usable schedule has been loaded.
func (manager *Manager) Current() (*Snapshot, *Index, error) {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	if manager.snapshot.IsEmpty() {
		return nil, nil, ErrScheduleEmpty
	}
	return manager.snapshot, manager.index, nil
}

// LastUpdated returns when the current snapshot was installed.
func (manager *Manager) LastUpdated() time.Time {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.lastUpdated
}

func (manager *Manager) setSnapshot(snap *Snapshot) {
	index := BuildIndex(snap)

	manager.mu.Lock()
	manager.snapshot = snap
	manager.index = index
	manager.lastUpdated = time.Now()
	manager.mu.Unlock()

	logging.LogOperation(manager.logger, "schedule snapshot installed",
		slog.String("source", manager.source.Source()),
		slog.Int("stops", len(snap.Stops)),
		slog.Int("routes", len(snap.Routes)),
		slog.Int("trips", len(snap.Trips)),
		slog.Int("stop_times", len(snap.StopTimes)),
		slog.Int("skipped_rows", index.SkippedRows))
}

func (manager *Manager) refreshPeriodically() {
	defer manager.wg.Done()

	ticker := time.NewTicker(manager.config.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			snap, err := manager.source.FetchSnapshot(context.Background())
			if err != nil {
				// Keep serving the current snapshot; the caller decides
				// whether stale data is acceptable.
				logging.LogError(manager.logger, "schedule refresh failed", err,
					slog.String("source", manager.source.Source()))
				continue
			}
			manager.setSnapshot(snap)
			manager.persistToCache(snap)
		case <-manager.shutdownChan:
			return
		}
	}
}

func (manager *Manager) persistToCache(snap *Snapshot) {
	if manager.cache == nil {
		return
	}
	if err := manager.cache.Store(context.Background(), snap); err != nil {
		logging.LogError(manager.logger, "failed to persist snapshot cache", err)
	}
}
