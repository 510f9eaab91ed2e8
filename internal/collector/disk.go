// Disk usage collector: per-mount usage as printed by df.
package collector

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/silent-IM/private-dots/internal/models"
)

// dfArgs selects the six columns parsed by parseDF.
var dfArgs = []string{"-h", "--output=source,size,used,avail,pcent,target"}

// DiskCollector collects disk usage metrics per mounted filesystem.
type DiskCollector struct {
	runner CommandRunner
	logger *zap.Logger
}

// NewDiskCollector creates a new disk collector.
func NewDiskCollector(runner CommandRunner, logger *zap.Logger) *DiskCollector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiskCollector{runner: runner, logger: logger}
}

// Name returns the collector identifier.
func (c *DiskCollector) Name() string { return "disk" }

// Collect runs df and parses one entry per mounted filesystem.
// Malformed lines are silently skipped.
func (c *DiskCollector) Collect(ctx context.Context) (interface{}, error) {
	out, err := c.runner.Run(ctx, "df", dfArgs...)
	if err != nil {
		return nil, err
	}
	disks := parseDF(string(out))
	c.logger.Debug("Parsed df output", zap.Int("filesystems", len(disks)))
	return disks, nil
}

// IsAvailable returns true; a missing df binary surfaces as a Collect error.
func (c *DiskCollector) IsAvailable() bool { return true }

func parseDF(out string) []models.DiskInfo {
	lines := strings.Split(out, "\n")
	if len(lines) > 0 {
		lines = lines[1:] // header
	}

	disks := make([]models.DiskInfo, 0, len(lines))
	for _, line := range lines {
		parts := strings.Fields(line)
		if len(parts) < 6 {
			continue
		}
		pct, _ := strconv.Atoi(strings.TrimSuffix(parts[4], "%"))
		disks = append(disks, models.DiskInfo{
			Device:     parts[0],
			Size:       parts[1],
			Used:       parts[2],
			Available:  parts[3],
			Percentage: pct,
			Mountpoint: parts[5],
		})
	}
	return disks
}
