package job

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/metrics"
	"github.com/honeycarbs/jobboard/pkg/logging"
	"github.com/honeycarbs/jobboard/pkg/observe"
)

// LoadState tracks the lifecycle of the listing fetch
type LoadState int

const (
	LoadIdle LoadState = iota
	Loading
	Loaded
	LoadFailed
)

func (s LoadState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case LoadFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Snapshot is what the catalog publishes after every state change
type Snapshot struct {
	State    LoadState
	Jobs     []domain.Job
	Err      error
	LoadedAt time.Time
}

// Option configures Catalog
type Option func(*config)

type config struct {
	provider Provider
	logger   *logging.Logger
	recorder metrics.Recorder
	clock    func() time.Time
}

// WithProvider sets the listing source
func WithProvider(p Provider) Option {
	return func(c *config) {
		c.provider = p
	}
}

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithRecorder sets the metrics recorder
func WithRecorder(r metrics.Recorder) Option {
	return func(c *config) {
		c.recorder = r
	}
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// Catalog holds the fetched job listing. The set is read-only after load.
type Catalog struct {
	provider Provider
	logger   *logging.Logger
	recorder metrics.Recorder
	clock    func() time.Time

	loadMu sync.Mutex

	mu       sync.RWMutex
	state    LoadState
	jobs     []domain.Job
	err      error
	loadedAt time.Time

	changes *observe.Subject[Snapshot]
}

// NewCatalog builds a Catalog from options
func NewCatalog(opts ...Option) (*Catalog, error) {
	cfg := &config{
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.provider == nil {
		return nil, fmt.Errorf("job.Catalog: provider is required")
	}
	if cfg.logger == nil {
		cfg.logger = logging.NewNop()
	}
	if cfg.recorder == nil {
		cfg.recorder = metrics.NopRecorder{}
	}

	return &Catalog{
		provider: cfg.provider,
		logger:   cfg.logger.With("component", "catalog", "provider", cfg.provider.Name()),
		recorder: cfg.recorder,
		clock:    cfg.clock,
		changes:  observe.New[Snapshot](),
	}, nil
}

// NewCatalogWithDeps creates a Catalog with direct dependencies (Wire-compatible)
func NewCatalogWithDeps(provider Provider, recorder metrics.Recorder, logger *logging.Logger) (*Catalog, error) {
	return NewCatalog(WithProvider(provider), WithRecorder(recorder), WithLogger(logger))
}

// Load fetches the full listing once. A failed load leaves the catalog empty
// in LoadFailed and may be retried; a successful load is never repeated.
func (c *Catalog) Load(ctx context.Context) error {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	if c.State() == Loaded {
		return nil
	}

	c.set(Loading, nil, nil)

	jobs, err := c.provider.ListJobs(ctx)
	if err != nil {
		ferr := &domain.FetchError{Err: err}
		c.logger.Warn("job listing fetch failed", "err", err)
		c.recorder.ObserveCatalogLoad(c.provider.Name(), false, 0)
		c.set(LoadFailed, nil, ferr)
		return ferr
	}

	c.logger.Info("job listing loaded", "count", len(jobs))
	c.recorder.ObserveCatalogLoad(c.provider.Name(), true, len(jobs))
	c.set(Loaded, jobs, nil)
	return nil
}

func (c *Catalog) set(state LoadState, jobs []domain.Job, err error) {
	c.mu.Lock()
	c.state = state
	c.jobs = jobs
	c.err = err
	if state == Loaded {
		c.loadedAt = c.clock()
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.changes.Publish(snap)
}

func (c *Catalog) snapshotLocked() Snapshot {
	return Snapshot{
		State:    c.state,
		Jobs:     c.jobs,
		Err:      c.err,
		LoadedAt: c.loadedAt,
	}
}

// State returns the current load state
func (c *Catalog) State() LoadState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Snapshot returns the current catalog contents
func (c *Catalog) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

// Jobs returns a copy of the loaded listing
func (c *Catalog) Jobs() []domain.Job {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Job(nil), c.jobs...)
}

// Filter narrows the loaded listing by query
func (c *Catalog) Filter(query string) []domain.Job {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Filter(c.jobs, query)
}

// Find looks a job up by id. Ids compare by their text, so "5" finds a job
// whose id was the JSON number 5.
func (c *Catalog) Find(id domain.JobID) (domain.Job, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, j := range c.jobs {
		if j.ID.String() == id.String() {
			return j, true
		}
	}
	return domain.Job{}, false
}

// Subscribe registers fn for catalog changes
func (c *Catalog) Subscribe(fn func(Snapshot)) func() {
	return c.changes.Subscribe(fn)
}

// Filter returns, in their original order, the jobs whose title, company or
// description contains query case-insensitively. An empty query keeps every job.
// The input slice is never modified.
func Filter(jobs []domain.Job, query string) []domain.Job {
	out := make([]domain.Job, 0, len(jobs))
	if query == "" {
		return append(out, jobs...)
	}

	q := strings.ToLower(query)
	for _, j := range jobs {
		if Matches(j, q) {
			out = append(out, j)
		}
	}
	return out
}

// Matches reports whether lowered appears in the job's searchable text.
// lowered must already be lowercase.
func Matches(j domain.Job, lowered string) bool {
	return strings.Contains(strings.ToLower(j.Title), lowered) ||
		strings.Contains(strings.ToLower(j.Company), lowered) ||
		strings.Contains(strings.ToLower(j.Description), lowered)
}
