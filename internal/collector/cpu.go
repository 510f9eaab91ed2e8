// CPU usage collector: aggregate utilization from /proc/stat tick counters.
// Usage is a delta between two passes, so the collector carries the
// previous counters from one Collect call to the next.
package collector

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/silent-IM/private-dots/internal/models"
)

var cpuLinePattern = regexp.MustCompile(`cpu\s+(\d+)\s+(\d+)\s+(\d+)\s+(\d+)`)

// cpuTimes is one reading of the aggregate "cpu" line.
type cpuTimes struct {
	user, nice, system, idle uint64
	total                    uint64
}

// CPUCollector collects aggregate CPU usage.
// It is not safe for concurrent use; each sampler owns one.
type CPUCollector struct {
	src  Sources
	prev *cpuTimes
}

// NewCPUCollector creates a new CPU collector with no previous reading.
func NewCPUCollector(src Sources) *CPUCollector {
	return &CPUCollector{src: src}
}

// Name returns the collector identifier.
func (c *CPUCollector) Name() string { return "cpu" }

// Collect reads the current counters and returns usage since the previous call.
// The first call establishes a baseline and reports 0. On failure the
// previous counters are kept so the next successful call still has a baseline.
func (c *CPUCollector) Collect(ctx context.Context) (interface{}, error) {
	content, err := readFile(c.src.proc("stat"))
	if err != nil {
		return nil, err
	}
	cur, err := parseCPUTimes(content)
	if err != nil {
		return nil, err
	}

	usage := 0
	if c.prev != nil {
		usage = cpuUsage(*c.prev, cur)
	}
	c.prev = &cur

	return models.CPU{Usage: usage}, nil
}

// IsAvailable returns true; a missing /proc/stat surfaces as a Collect error.
func (c *CPUCollector) IsAvailable() bool { return true }

// parseCPUTimes extracts user, nice, system and idle from the first line of /proc/stat.
func parseCPUTimes(content string) (cpuTimes, error) {
	first, _, _ := strings.Cut(content, "\n")
	m := cpuLinePattern.FindStringSubmatch(first)
	if m == nil {
		return cpuTimes{}, fmt.Errorf("unexpected cpu line %q", first)
	}

	var vals [4]uint64
	for i := range vals {
		v, err := strconv.ParseUint(m[i+1], 10, 64)
		if err != nil {
			return cpuTimes{}, fmt.Errorf("parsing cpu counter %q: %w", m[i+1], err)
		}
		vals[i] = v
	}

	t := cpuTimes{user: vals[0], nice: vals[1], system: vals[2], idle: vals[3]}
	t.total = t.user + t.nice + t.system + t.idle
	return t, nil
}

// cpuUsage returns the busy share of the ticks elapsed between prev and cur.
func cpuUsage(prev, cur cpuTimes) int {
	totalDiff := int64(cur.total) - int64(prev.total)
	if totalDiff <= 0 {
		return 0
	}
	idleDiff := int64(cur.idle) - int64(prev.idle)

	usage := int(math.Round(float64(totalDiff-idleDiff) / float64(totalDiff) * 100))
	if usage < 0 {
		return 0
	}
	if usage > 100 {
		return 100
	}
	return usage
}
