// Network collector: cumulative RX/TX byte counters from /proc/net/dev.
package collector

import (
	"context"
	"strconv"
	"strings"

	"github.com/silent-IM/private-dots/internal/models"
)

const loopbackInterface = "lo"

// NetworkCollector collects cumulative network byte counters
// summed over all non-loopback interfaces.
type NetworkCollector struct {
	src Sources
}

// NewNetworkCollector creates a new network collector.
func NewNetworkCollector(src Sources) *NetworkCollector {
	return &NetworkCollector{src: src}
}

// Name returns the collector identifier.
func (c *NetworkCollector) Name() string { return "network" }

// Collect sums received and transmitted bytes since boot.
func (c *NetworkCollector) Collect(ctx context.Context) (interface{}, error) {
	content, err := readFile(c.src.proc("net", "dev"))
	if err != nil {
		return nil, err
	}
	return parseNetDev(content), nil
}

// IsAvailable returns true; a missing /proc/net/dev surfaces as a Collect error.
func (c *NetworkCollector) IsAvailable() bool { return true }

// parseNetDev sums the receive-bytes and transmit-bytes columns.
// A line looks like "  eth0: 500 4 0 0 0 0 0 0 300 3 0 0 0 0 0 0"; the name
// may be glued to the first counter on some kernels, so it is split on ':'.
func parseNetDev(content string) models.Network {
	lines := strings.Split(content, "\n")
	if len(lines) <= 2 {
		return models.Network{}
	}

	var result models.Network
	for _, line := range lines[2:] {
		name, counters, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.TrimSpace(name) == loopbackInterface {
			continue
		}
		fields := strings.Fields(counters)
		if len(fields) < 9 {
			continue
		}
		rx, _ := strconv.ParseUint(fields[0], 10, 64)
		tx, _ := strconv.ParseUint(fields[8], 10, 64)
		result.RxTotal += rx
		result.TxTotal += tx
	}
	return result
}
