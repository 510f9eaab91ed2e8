// Top N processes collector: the busiest rows of `ps aux --sort=-%cpu`.
package collector

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"github.com/silent-IM/private-dots/internal/models"
)

// DefaultTopProcesses is the number of process rows kept per sample.
const DefaultTopProcesses = 20

// psFields is the column count of `ps aux`; the last column (command) may contain spaces.
const psFields = 11

// normalizedStatuses maps the leading character of ps's STAT column to a
// consistent set of display values.
var normalizedStatuses = map[byte]string{
	'R': "running",
	'S': "sleeping",
	'D': "sleeping",
	'W': "sleeping",
	'I': "idle",
	'T': "stopped",
	't': "stopped",
	'Z': "zombie",
	'X': "zombie",
}

// normalizeStatus maps a raw STAT value such as "Ssl+" to a display value.
// Unknown codes are returned lowercased.
func normalizeStatus(stat string) string {
	if stat == "" {
		return ""
	}
	if mapped, ok := normalizedStatuses[stat[0]]; ok {
		return mapped
	}
	return strings.ToLower(stat)
}

// ProcessCollector collects the top N processes by CPU usage.
type ProcessCollector struct {
	runner CommandRunner
	topN   int
}

// NewProcessCollector creates a new process collector that returns the top N
// processes sorted by CPU usage descending. A non-positive topN selects
// DefaultTopProcesses.
func NewProcessCollector(runner CommandRunner, topN int) *ProcessCollector {
	if topN <= 0 {
		topN = DefaultTopProcesses
	}
	return &ProcessCollector{runner: runner, topN: topN}
}

// Name returns the collector identifier.
func (c *ProcessCollector) Name() string { return "processes" }

// Collect runs ps, which already sorts by CPU descending, and parses the
// first N rows. Rows with too few columns are skipped.
func (c *ProcessCollector) Collect(ctx context.Context) (interface{}, error) {
	out, err := c.runner.Run(ctx, "ps", "aux", "--sort=-%cpu")
	if err != nil {
		return nil, err
	}
	return parsePS(string(out), c.topN), nil
}

// IsAvailable returns true; a missing ps binary surfaces as a Collect error.
func (c *ProcessCollector) IsAvailable() bool { return true }

func parsePS(out string, topN int) []models.ProcessInfo {
	lines := strings.Split(out, "\n")
	if len(lines) > 0 {
		lines = lines[1:] // header
	}

	infos := make([]models.ProcessInfo, 0, topN)
	seen := 0
	for _, line := range lines {
		if seen >= topN {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		seen++

		parts := splitFieldsN(line, psFields)
		if len(parts) < psFields {
			continue
		}
		pid, _ := strconv.ParseInt(parts[1], 10, 32)
		cpuPct, _ := parseFloat(parts[2])
		memPct, _ := parseFloat(parts[3])

		infos = append(infos, models.ProcessInfo{
			User:    parts[0],
			PID:     int32(pid),
			CPU:     cpuPct,
			Memory:  memPct,
			Status:  normalizeStatus(parts[7]),
			Command: parts[10],
		})
	}
	return infos
}

// splitFieldsN splits s around runs of whitespace into at most n fields.
// The last field holds the rest of the line with its inner spacing intact.
func splitFieldsN(s string, n int) []string {
	var fields []string
	s = strings.TrimSpace(s)
	for s != "" && len(fields) < n-1 {
		i := strings.IndexFunc(s, unicode.IsSpace)
		if i < 0 {
			break
		}
		fields = append(fields, s[:i])
		s = strings.TrimLeftFunc(s[i:], unicode.IsSpace)
	}
	if s != "" {
		fields = append(fields, s)
	}
	return fields
}
