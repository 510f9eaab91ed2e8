// RAM and swap collector: parses /proc/meminfo.
package collector

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/silent-IM/private-dots/internal/models"
)

var meminfoLinePattern = regexp.MustCompile(`^(\w+):\s*(\d+)\s*kB`)

// MemoryCollector collects RAM and swap usage.
type MemoryCollector struct {
	src Sources
}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector(src Sources) *MemoryCollector {
	return &MemoryCollector{src: src}
}

// Name returns the collector identifier.
func (c *MemoryCollector) Name() string { return "memory" }

// Collect gathers memory usage in bytes. Keys missing from meminfo count as 0.
func (c *MemoryCollector) Collect(ctx context.Context) (interface{}, error) {
	content, err := readFile(c.src.proc("meminfo"))
	if err != nil {
		return nil, err
	}
	return memoryFromInfo(parseMeminfo(content)), nil
}

// IsAvailable returns true; a missing /proc/meminfo surfaces as a Collect error.
func (c *MemoryCollector) IsAvailable() bool { return true }

// parseMeminfo maps every "<Key>: <n> kB" line to its value in bytes.
func parseMeminfo(content string) map[string]uint64 {
	info := make(map[string]uint64)
	for _, line := range strings.Split(content, "\n") {
		m := meminfoLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		kb, err := strconv.ParseUint(m[2], 10, 64)
		if err != nil {
			continue
		}
		info[m[1]] = kb * 1024
	}
	return info
}

func memoryFromInfo(info map[string]uint64) models.Memory {
	total := info["MemTotal"]
	available := info["MemAvailable"]
	swapTotal := info["SwapTotal"]

	return models.Memory{
		Used:      subFloor(total, available),
		Total:     total,
		Available: available,
		Swap: models.Swap{
			Used:  subFloor(swapTotal, info["SwapFree"]),
			Total: swapTotal,
		},
	}
}

// subFloor returns a-b, or 0 when b exceeds a.
func subFloor(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
