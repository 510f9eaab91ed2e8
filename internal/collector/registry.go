// Collectors are registered at startup in snapshot order; the sampler asks
// the registry to run them all once per sampling pass.

package collector

import (
	"context"

	"go.uber.org/zap"

	"github.com/silent-IM/private-dots/internal/models"
)

// Registry manages all registered collectors and runs them in registration order.
type Registry struct {
	collectors []Collector
	logger     *zap.Logger
}

// NewRegistry creates a new collector registry with the given logger.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		collectors: make([]Collector, 0),
		logger:     logger,
	}
}

// Register adds a collector if it's available on the current platform.
// Unavailable collectors are logged and skipped.
func (r *Registry) Register(c Collector) {
	if c.IsAvailable() {
		r.collectors = append(r.collectors, c)
		r.logger.Debug("Registered collector", zap.String("name", c.Name()))
	} else {
		r.logger.Warn("Collector not available, skipping", zap.String("name", c.Name()))
	}
}

// CollectAll runs every registered collector on the calling goroutine and
// returns a map of collector name -> result. A failed collector is recorded
// with its error and never prevents the others from running.
func (r *Registry) CollectAll(ctx context.Context) map[string]models.CollectorResult {
	results := make(map[string]models.CollectorResult, len(r.collectors))
	for _, c := range r.collectors {
		data, err := c.Collect(ctx)
		if err != nil {
			r.logger.Debug("Collection failed",
				zap.String("collector", c.Name()),
				zap.Error(err))
		}
		results[c.Name()] = models.CollectorResult{
			Name:  c.Name(),
			Data:  data,
			Error: err,
		}
	}
	return results
}

// Collectors returns a copy of all registered collectors.
func (r *Registry) Collectors() []Collector {
	result := make([]Collector, len(r.collectors))
	copy(result, r.collectors)
	return result
}
