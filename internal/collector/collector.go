// Package collector defines the Collector interface and provides
// implementations for each metric of a sampling pass.
package collector

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// Collector is the interface that all metric collectors must implement.
// Each collector gathers a specific field of the snapshot.
type Collector interface {
	// Name returns the unique identifier for this collector.
	Name() string

	// Collect gathers the metric data and returns it.
	// An error means the source was unavailable; the caller decides the default.
	Collect(ctx context.Context) (interface{}, error)

	// IsAvailable checks if this collector can run on the current platform.
	// Collectors that return false will not be registered.
	IsAvailable() bool
}

// CommandRunner runs an external command and returns its standard output.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run executes name with args and returns stdout.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Sources locates the kernel pseudo-filesystems read by the collectors.
type Sources struct {
	ProcRoot string
	SysRoot  string
}

// DefaultSources returns the live /proc and /sys mounts.
func DefaultSources() Sources {
	return Sources{ProcRoot: "/proc", SysRoot: "/sys"}
}

func (s Sources) proc(elem ...string) string {
	return filepath.Join(append([]string{s.ProcRoot}, elem...)...)
}

func (s Sources) sys(elem ...string) string {
	return filepath.Join(append([]string{s.SysRoot}, elem...)...)
}

// readFile returns the contents of path as a string.
func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// parseFloat parses a finite float. "inf" and "nan" tokens are rejected so a
// single odd value cannot make the snapshot unencodable.
func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return v, nil
}
