// System uptime collector: seconds since boot from /proc/uptime.
package collector

import (
	"context"
	"fmt"
	"strings"
)

// UptimeCollector collects system uptime in seconds.
type UptimeCollector struct {
	src Sources
}

// NewUptimeCollector creates a new uptime collector.
func NewUptimeCollector(src Sources) *UptimeCollector {
	return &UptimeCollector{src: src}
}

// Name returns the collector identifier.
func (c *UptimeCollector) Name() string { return "uptime" }

// Collect returns the first token of /proc/uptime as float64 seconds.
// The second token (aggregate idle time) is ignored.
func (c *UptimeCollector) Collect(ctx context.Context) (interface{}, error) {
	content, err := readFile(c.src.proc("uptime"))
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(content)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty uptime source")
	}
	uptime, err := parseFloat(fields[0])
	if err != nil {
		return nil, fmt.Errorf("parsing uptime: %w", err)
	}
	return uptime, nil
}

// IsAvailable returns true; a missing /proc/uptime surfaces as a Collect error.
func (c *UptimeCollector) IsAvailable() bool { return true }
