// Host facts collector: hostname, distribution, kernel, boot time and CPU model.
// Uses gopsutil host and cpu packages.
//
// Results are cached after the first successful collection since they do
// not change while the daemon runs.
package collector

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"go.uber.org/zap"

	"github.com/silent-IM/private-dots/internal/models"
)

// HostCollector collects static host information.
type HostCollector struct {
	logger *zap.Logger
	cache  *models.Host
}

// NewHostCollector creates a new host collector.
func NewHostCollector(logger *zap.Logger) *HostCollector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HostCollector{logger: logger}
}

// Name returns the collector identifier.
func (c *HostCollector) Name() string { return "host" }

// Collect gathers host facts. Only host.Info failing is an error; CPU model
// and core count are best-effort.
func (c *HostCollector) Collect(ctx context.Context) (interface{}, error) {
	if c.cache != nil {
		return *c.cache, nil
	}

	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, err
	}

	result := models.Host{
		Hostname:        info.Hostname,
		OS:              info.OS,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		KernelVersion:   info.KernelVersion,
	}
	if info.BootTime > 0 {
		result.BootTime = time.Unix(int64(info.BootTime), 0).UTC()
	}

	if cpus, err := cpu.InfoWithContext(ctx); err == nil && len(cpus) > 0 {
		result.CPUModel = cpus[0].ModelName
	} else if err != nil {
		c.logger.Debug("CPU model not available", zap.Error(err))
	}
	if n, err := cpu.CountsWithContext(ctx, true); err == nil {
		result.LogicalCores = n
	}

	c.cache = &result
	return result, nil
}

// IsAvailable returns true; host info is available on all platforms gopsutil supports.
func (c *HostCollector) IsAvailable() bool { return true }
