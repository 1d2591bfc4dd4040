package health

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const defaultTimeout = 5 * time.Second

const (
	StatusUp   = "up"
	StatusDown = "down"
)

// Probe checks a single dependency. Probes from pkg/db and pkg/redis
// satisfy this signature directly.
type Probe func(ctx context.Context) error

// Probes maps a dependency name to its probe.
type Probes map[string]Probe

// Report is the aggregated result of running all probes.
type Report struct {
	Results map[string]Result `json:"checks,omitempty"`
	Status  string            `json:"status"`
}

// Result holds the outcome of one probe.
type Result struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Option configures probe execution.
type Option func(*config)

type config struct {
	logger  *slog.Logger
	timeout time.Duration
}

// WithTimeout bounds the total time spent running probes.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger for failed probes.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{timeout: defaultTimeout}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// run executes all probes concurrently and aggregates the results.
func run(ctx context.Context, probes Probes, cfg *config) *Report {
	if len(probes) == 0 {
		return &Report{Status: StatusUp}
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]Result, len(probes))
		failed  bool
	)

	for name, probe := range probes {
		wg.Add(1)
		go func(name string, probe Probe) {
			defer wg.Done()

			result := Result{Status: StatusUp}
			if err := probe(ctx); err != nil {
				result = Result{Status: StatusDown, Error: err.Error()}
				if cfg.logger != nil {
					cfg.logger.WarnContext(ctx, "health probe failed",
						slog.String("probe", name),
						slog.String("error", err.Error()),
					)
				}
			}

			mu.Lock()
			results[name] = result
			failed = failed || result.Status == StatusDown
			mu.Unlock()
		}(name, probe)
	}

	wg.Wait()

	status := StatusUp
	if failed {
		status = StatusDown
	}
	return &Report{Status: status, Results: results}
}
