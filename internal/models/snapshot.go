// Package models defines the snapshot data structures produced by the sampler.
// These structures are serialized to JSON for widgets reading the daemon's output.
package models

import (
	"encoding/json"
	"math"
	"time"
)

// Snapshot represents a single point-in-time sampling pass over all metrics.
// Fields whose source was unavailable hold their zero value.
type Snapshot struct {
	Timestamp   time.Time     `json:"timestamp"`
	CPU         CPU           `json:"cpu"`
	Memory      Memory        `json:"memory"`
	Disk        []DiskInfo    `json:"disk"`
	Network     Network       `json:"network"`
	Processes   []ProcessInfo `json:"processes"`
	Uptime      float64       `json:"uptime"`
	LoadAvg     [3]float64    `json:"load_avg"`
	Temperature Temperature   `json:"temperature"`
	Host        Host          `json:"host"`
}

// CPU holds aggregate CPU utilization since the previous sample.
type CPU struct {
	Usage int `json:"usage"` // percent 0-100
}

// Memory holds RAM and swap accounting in bytes.
type Memory struct {
	Used      uint64 `json:"used"`
	Total     uint64 `json:"total"`
	Available uint64 `json:"available"`
	Swap      Swap   `json:"swap"`
}

// Swap holds swap accounting in bytes.
type Swap struct {
	Used  uint64 `json:"used"`
	Total uint64 `json:"total"`
}

// Percent returns used memory as a rounded percentage of total.
func (m Memory) Percent() int {
	if m.Total == 0 {
		return 0
	}
	return int(math.Round(float64(m.Used) / float64(m.Total) * 100))
}

// DiskInfo represents one mounted filesystem as reported by df.
// Sizes are kept in df's human-readable form.
type DiskInfo struct {
	Device     string `json:"device"`
	Size       string `json:"size"`
	Used       string `json:"used"`
	Available  string `json:"available"`
	Percentage int    `json:"percentage"`
	Mountpoint string `json:"mountpoint"`
}

// Network holds cumulative byte counters summed over non-loopback interfaces.
type Network struct {
	RxTotal uint64 `json:"rx_total"`
	TxTotal uint64 `json:"tx_total"`
}

// ProcessInfo represents a single row of the process table.
type ProcessInfo struct {
	User    string  `json:"user"`
	PID     int32   `json:"pid"`
	CPU     float64 `json:"cpu"`
	Memory  float64 `json:"memory"`
	Status  string  `json:"status,omitempty"`
	Command string  `json:"command"`
}

// Temperature holds the best-effort CPU temperature in whole degrees Celsius.
type Temperature struct {
	CPU       int    `json:"cpu"`
	Available bool   `json:"available"`
	Source    string `json:"source,omitempty"` // thermal_zone, sensors or hwmon
}

// Temperature levels reported by Level.
const (
	LevelUnavailable = "unavailable"
	LevelNormal      = "normal"
	LevelHot         = "hot"
	LevelCritical    = "critical"
)

// Level classifies the CPU temperature for display.
func (t Temperature) Level() string {
	switch {
	case !t.Available:
		return LevelUnavailable
	case t.CPU > 90:
		return LevelCritical
	case t.CPU > 65:
		return LevelHot
	default:
		return LevelNormal
	}
}

// MarshalJSON adds the display level to the encoded reading.
func (t Temperature) MarshalJSON() ([]byte, error) {
	type plain Temperature
	return json.Marshal(struct {
		plain
		Level string `json:"level"`
	}{plain(t), t.Level()})
}

// Host holds static facts about the machine.
type Host struct {
	Hostname        string    `json:"hostname,omitempty"`
	OS              string    `json:"os,omitempty"`
	Platform        string    `json:"platform,omitempty"`
	PlatformVersion string    `json:"platform_version,omitempty"`
	KernelVersion   string    `json:"kernel_version,omitempty"`
	CPUModel        string    `json:"cpu_model,omitempty"`
	LogicalCores    int       `json:"logical_cores,omitempty"`
	BootTime        time.Time `json:"boot_time"`
}

// MainDisk returns the filesystem mounted at "/", falling back to the first entry.
func (s Snapshot) MainDisk() (DiskInfo, bool) {
	for _, d := range s.Disk {
		if d.Mountpoint == "/" {
			return d, true
		}
	}
	if len(s.Disk) > 0 {
		return s.Disk[0], true
	}
	return DiskInfo{}, false
}

// TopProcess returns the busiest process of the sample, if any.
func (s Snapshot) TopProcess() (ProcessInfo, bool) {
	if len(s.Processes) == 0 {
		return ProcessInfo{}, false
	}
	return s.Processes[0], true
}

// CollectorResult holds the output of a single collector run.
// A non-nil Error means the field's source was unavailable.
type CollectorResult struct {
	Name  string
	Data  interface{}
	Error error
}

// OK reports whether the collector produced data.
func (r CollectorResult) OK() bool {
	return r.Error == nil && r.Data != nil
}
