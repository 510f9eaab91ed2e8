// Package sampler turns one pass over all collectors into a Snapshot.
// A Sampler owns its collectors, including the CPU collector's carried
// counters, so two samplers never share delta state.
package sampler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/silent-IM/private-dots/internal/collector"
	"github.com/silent-IM/private-dots/internal/models"
)

// Options selects the sources a Sampler reads.
type Options struct {
	Sources      collector.Sources
	Runner       collector.CommandRunner
	TopProcesses int
	HostInfo     bool
}

// DefaultOptions reads the live system.
func DefaultOptions() Options {
	return Options{
		Sources:      collector.DefaultSources(),
		Runner:       collector.ExecRunner{},
		TopProcesses: collector.DefaultTopProcesses,
		HostInfo:     true,
	}
}

// Sampler produces snapshots. It is meant to be driven by a single goroutine.
type Sampler struct {
	registry *collector.Registry
	logger   *zap.Logger
	now      func() time.Time
}

// New creates a Sampler with one collector per snapshot field.
func New(opts Options, logger *zap.Logger) *Sampler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Runner == nil {
		opts.Runner = collector.ExecRunner{}
	}

	registry := collector.NewRegistry(logger)
	registry.Register(collector.NewCPUCollector(opts.Sources))
	registry.Register(collector.NewMemoryCollector(opts.Sources))
	registry.Register(collector.NewDiskCollector(opts.Runner, logger))
	registry.Register(collector.NewNetworkCollector(opts.Sources))
	registry.Register(collector.NewProcessCollector(opts.Runner, opts.TopProcesses))
	registry.Register(collector.NewUptimeCollector(opts.Sources))
	registry.Register(collector.NewLoadAvgCollector(opts.Sources))
	registry.Register(collector.NewTemperatureCollector(opts.Sources, opts.Runner, logger))
	if opts.HostInfo {
		registry.Register(collector.NewHostCollector(logger))
	}

	collectors := registry.Collectors()
	names := make([]string, 0, len(collectors))
	for _, c := range collectors {
		names = append(names, c.Name())
	}
	logger.Debug("Sampler ready", zap.Strings("collectors", names))

	return &Sampler{
		registry: registry,
		logger:   logger,
		now:      time.Now,
	}
}

// Collect runs every collector once and returns the raw per-field results,
// keeping "source unavailable" distinct from a genuine zero.
func (s *Sampler) Collect(ctx context.Context) map[string]models.CollectorResult {
	return s.registry.CollectAll(ctx)
}

// Sample runs one sampling pass. It never fails: fields whose source was
// unavailable hold their zero value.
func (s *Sampler) Sample(ctx context.Context) models.Snapshot {
	snapshot := assembleSnapshot(s.Collect(ctx))
	snapshot.Timestamp = s.now().UTC()
	return snapshot
}

// assembleSnapshot maps collector results into a unified Snapshot.
func assembleSnapshot(results map[string]models.CollectorResult) models.Snapshot {
	snapshot := models.Snapshot{
		Disk:      []models.DiskInfo{},
		Processes: []models.ProcessInfo{},
	}

	// CPU
	if res, ok := results["cpu"]; ok && res.OK() {
		if cpu, ok := res.Data.(models.CPU); ok {
			snapshot.CPU = cpu
		}
	}

	// Memory
	if res, ok := results["memory"]; ok && res.OK() {
		if mem, ok := res.Data.(models.Memory); ok {
			snapshot.Memory = mem
		}
	}

	// Disk
	if res, ok := results["disk"]; ok && res.OK() {
		if disks, ok := res.Data.([]models.DiskInfo); ok {
			snapshot.Disk = disks
		}
	}

	// Network
	if res, ok := results["network"]; ok && res.OK() {
		if net, ok := res.Data.(models.Network); ok {
			snapshot.Network = net
		}
	}

	// Processes
	if res, ok := results["processes"]; ok && res.OK() {
		if procs, ok := res.Data.([]models.ProcessInfo); ok {
			snapshot.Processes = procs
		}
	}

	// Uptime
	if res, ok := results["uptime"]; ok && res.OK() {
		if uptime, ok := res.Data.(float64); ok {
			snapshot.Uptime = uptime
		}
	}

	// Load average
	if res, ok := results["loadavg"]; ok && res.OK() {
		if avg, ok := res.Data.([3]float64); ok {
			snapshot.LoadAvg = avg
		}
	}

	// Temperature
	if res, ok := results["temperature"]; ok && res.OK() {
		if temp, ok := res.Data.(models.Temperature); ok {
			snapshot.Temperature = temp
		}
	}

	// Host
	if res, ok := results["host"]; ok && res.OK() {
		if host, ok := res.Data.(models.Host); ok {
			snapshot.Host = host
		}
	}

	return snapshot
}
