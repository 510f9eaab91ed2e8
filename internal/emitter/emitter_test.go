package emitter

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/silent-IM/private-dots/internal/models"
)

func sampleSnapshot() models.Snapshot {
	return models.Snapshot{
		CPU: models.CPU{Usage: 12},
		Memory: models.Memory{
			Used:  750000 * 1024,
			Total: 1000000 * 1024,
		},
		Disk: []models.DiskInfo{
			{Device: "/dev/sda2", Mountpoint: "/boot", Percentage: 10},
			{Device: "/dev/sda1", Mountpoint: "/", Percentage: 40},
		},
		Processes: []models.ProcessInfo{
			{User: "bob", PID: 7, CPU: 12.46, Command: "/usr/lib/firefox/firefox -contentproc"},
		},
		Uptime:      93784,
		Temperature: models.Temperature{CPU: 54, Available: true},
	}
}

func TestSummary(t *testing.T) {
	got := Summary(sampleSnapshot())
	want := "CPU 12% | MEM 75% (732.42 MB/976.56 MB) | TEMP 54°C normal | DISK / 40% | UP 1d 2h 3m | TOP /usr/lib/firefox/fir... 12.5%"
	if got != want {
		t.Errorf("Summary() =\n  %q\nwant\n  %q", got, want)
	}
}

func TestSummary_EmptySnapshot(t *testing.T) {
	got := Summary(models.Snapshot{})
	want := "CPU 0% | MEM 0% (0 B/0 B) | TEMP N/A | DISK -- | UP 0m | TOP None"
	if got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

func TestSummary_TemperatureLevel(t *testing.T) {
	tests := []struct {
		temp models.Temperature
		want string
	}{
		{models.Temperature{}, "TEMP N/A"},
		{models.Temperature{CPU: 65, Available: true}, "TEMP 65°C normal"},
		{models.Temperature{CPU: 66, Available: true}, "TEMP 66°C hot"},
		{models.Temperature{CPU: 90, Available: true}, "TEMP 90°C hot"},
		{models.Temperature{CPU: 91, Available: true}, "TEMP 91°C critical"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := Summary(models.Snapshot{Temperature: tt.temp})
			if !strings.Contains(got, "| "+tt.want+" |") {
				t.Errorf("Summary() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestEmit_JSONTemperatureLevel(t *testing.T) {
	tests := []struct {
		temp models.Temperature
		want string
	}{
		{models.Temperature{}, models.LevelUnavailable},
		{models.Temperature{CPU: 54, Available: true}, models.LevelNormal},
		{models.Temperature{CPU: 66, Available: true}, models.LevelHot},
		{models.Temperature{CPU: 91, Available: true}, models.LevelCritical},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			var buf bytes.Buffer
			e, err := New(&buf, "json", nil)
			if err != nil {
				t.Fatal(err)
			}
			if err := e.Emit(models.Snapshot{Temperature: tt.temp}); err != nil {
				t.Fatal(err)
			}

			var decoded struct {
				Temperature struct {
					CPU   int    `json:"cpu"`
					Level string `json:"level"`
				} `json:"temperature"`
			}
			if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
				t.Fatal(err)
			}
			if decoded.Temperature.Level != tt.want || decoded.Temperature.CPU != tt.temp.CPU {
				t.Errorf("temperature = %+v, want level %q", decoded.Temperature, tt.want)
			}
		})
	}
}

func TestEmit_JSONLines(t *testing.T) {
	var buf bytes.Buffer
	e, err := New(&buf, "json", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Emit(sampleSnapshot()); err != nil {
		t.Fatal(err)
	}
	if err := e.Emit(models.Snapshot{}); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	var decoded struct {
		CPU struct {
			Usage int `json:"usage"`
		} `json:"cpu"`
		Disk []struct {
			Mountpoint string `json:"mountpoint"`
		} `json:"disk"`
		Temperature struct {
			Available bool `json:"available"`
		} `json:"temperature"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.CPU.Usage != 12 || len(decoded.Disk) != 2 || !decoded.Temperature.Available {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestEmit_Text(t *testing.T) {
	var buf bytes.Buffer
	e, err := New(&buf, "TEXT", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Emit(models.Snapshot{}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "CPU 0% |") || !strings.HasSuffix(buf.String(), "\n") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestEmit_WriteError(t *testing.T) {
	e, err := New(failingWriter{}, "json", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Emit(models.Snapshot{}); err == nil {
		t.Error("expected write error")
	}
	e.Handle(models.Snapshot{})
}

func TestNew_UnknownFormat(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "yaml", nil); err == nil {
		t.Error("expected error for unknown format")
	}
}
