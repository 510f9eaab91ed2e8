// Load average collector: 1, 5 and 15 minute averages from /proc/loadavg.
package collector

import (
	"context"
	"strings"
)

// LoadAvgCollector collects the system load averages.
type LoadAvgCollector struct {
	src Sources
}

// NewLoadAvgCollector creates a new load average collector.
func NewLoadAvgCollector(src Sources) *LoadAvgCollector {
	return &LoadAvgCollector{src: src}
}

// Name returns the collector identifier.
func (c *LoadAvgCollector) Name() string { return "loadavg" }

// Collect returns the three load averages. Unparsable tokens count as 0.
func (c *LoadAvgCollector) Collect(ctx context.Context) (interface{}, error) {
	content, err := readFile(c.src.proc("loadavg"))
	if err != nil {
		return nil, err
	}
	return parseLoadAvg(content), nil
}

// IsAvailable returns true; a missing /proc/loadavg surfaces as a Collect error.
func (c *LoadAvgCollector) IsAvailable() bool { return true }

func parseLoadAvg(content string) [3]float64 {
	var avg [3]float64
	fields := strings.Fields(content)
	for i := 0; i < len(avg) && i < len(fields); i++ {
		v, err := parseFloat(fields[i])
		if err != nil {
			continue
		}
		avg[i] = v
	}
	return avg
}
