// Package emitter writes snapshots to the daemon's output stream, either as
// one JSON object per line or as a one-line text summary for simple bars.
package emitter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/silent-IM/private-dots/internal/config"
	"github.com/silent-IM/private-dots/internal/format"
	"github.com/silent-IM/private-dots/internal/models"
)

// topProcessWidth is the number of runes of the top command shown in text output.
const topProcessWidth = 20

// Emitter serializes snapshots to a writer.
type Emitter struct {
	w      io.Writer
	format string
	logger *zap.Logger
	mu     sync.Mutex
}

// New creates an Emitter writing in the given format ("json" or "text").
func New(w io.Writer, outputFormat string, logger *zap.Logger) (*Emitter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := strings.ToLower(outputFormat)
	if f != config.FormatJSON && f != config.FormatText {
		return nil, fmt.Errorf("unknown output format %q", outputFormat)
	}
	return &Emitter{w: w, format: f, logger: logger}, nil
}

// Emit writes one snapshot followed by a newline.
func (e *Emitter) Emit(s models.Snapshot) error {
	var line []byte
	switch e.format {
	case config.FormatText:
		line = []byte(Summary(s))
	default:
		data, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("marshal snapshot: %w", err)
		}
		line = data
	}
	line = append(line, '\n')

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.w.Write(line); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Handle emits a snapshot and logs instead of returning the error, for use
// as a scheduler callback.
func (e *Emitter) Handle(s models.Snapshot) {
	if err := e.Emit(s); err != nil {
		e.logger.Error("Failed to emit snapshot", zap.Error(err))
	}
}

// Summary renders the widget's headline values as a single line.
func Summary(s models.Snapshot) string {
	parts := []string{
		fmt.Sprintf("CPU %d%%", s.CPU.Usage),
		fmt.Sprintf("MEM %d%% (%s/%s)", s.Memory.Percent(),
			format.Bytes(s.Memory.Used), format.Bytes(s.Memory.Total)),
	}

	if s.Temperature.Available {
		parts = append(parts, fmt.Sprintf("TEMP %d°C %s", s.Temperature.CPU, s.Temperature.Level()))
	} else {
		parts = append(parts, "TEMP N/A")
	}

	if d, ok := s.MainDisk(); ok {
		parts = append(parts, fmt.Sprintf("DISK %s %d%%", d.Mountpoint, d.Percentage))
	} else {
		parts = append(parts, "DISK --")
	}

	parts = append(parts, "UP "+format.Uptime(s.Uptime))

	if p, ok := s.TopProcess(); ok {
		parts = append(parts, fmt.Sprintf("TOP %s %.1f%%", format.Truncate(p.Command, topProcessWidth), p.CPU))
	} else {
		parts = append(parts, "TOP None")
	}

	return strings.Join(parts, " | ")
}
