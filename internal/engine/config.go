package engine

import (
	"runtime"

	"github.com/mgrunder/goparallel/internal/engine/metrics"
)

// Config holds engine configuration.
type Config struct {
	// Workers is the number of concurrent worker goroutines (ncores).
	// Default: runtime.NumCPU().
	Workers int

	// BaseDir is the process-scoped base directory under which capture
	// files, the processed-log, and the error-log are created.
	BaseDir string

	// Grouped enables ordered reassembly. When false, workers write
	// directly to the tool's own stdout/stderr and the ordered receiver
	// is not instantiated (see §9 "Ungroup mode").
	Grouped bool

	// Metrics receives dispatch/delivery instrumentation. Defaults to a
	// no-op provider.
	Metrics metrics.Provider

	// PoolCapacity selects the receiver's splice-buffer pool: 0 (the
	// default) uses an uncapped sync.Pool-backed pool, equivalent to
	// ygrebnov/workers' WithDynamicPool default; a positive value switches
	// to the channel-backed pool.NewFixed with that capacity, equivalent to
	// WithFixedPool.
	PoolCapacity uint
}

// defaultConfig centralizes default values, the same way ygrebnov/workers'
// own defaultConfig does.
func defaultConfig() Config {
	return Config{
		Workers: runtime.NumCPU(),
		Grouped: true,
		Metrics: metrics.Noop{},
	}
}

// Option configures a Config.
type Option func(*Config)

// WithWorkers sets the worker pool size.
func WithWorkers(n int) Option { return func(c *Config) { c.Workers = n } }

// WithBaseDir sets the process-scoped capture directory.
func WithBaseDir(dir string) Option { return func(c *Config) { c.BaseDir = dir } }

// WithGrouped toggles ordered reassembly.
func WithGrouped(grouped bool) Option { return func(c *Config) { c.Grouped = grouped } }

// WithMetrics installs a metrics provider.
func WithMetrics(p metrics.Provider) Option {
	return func(c *Config) {
		if p != nil {
			c.Metrics = p
		}
	}
}

// WithFixedPool switches the receiver's splice-buffer pool from the default
// uncapped sync.Pool to pool.NewFixed with the given capacity.
func WithFixedPool(capacity uint) Option {
	return func(c *Config) { c.PoolCapacity = capacity }
}

// NewConfig builds a Config from defaults plus the given options.
func NewConfig(opts ...Option) (Config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.Workers < 1 {
		return Config{}, ErrInvalidWorkerCount
	}
	return cfg, nil
}
