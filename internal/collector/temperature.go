// CPU temperature collector: a priority-ordered fallback chain over sysfs
// thermal zones, the lm-sensors CLI and hwmon inputs. The first source that
// yields a plausible reading wins.
package collector

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/silent-IM/private-dots/internal/models"
)

// Temperature sources reported in models.Temperature.Source.
const (
	SourceThermalZone = "thermal_zone"
	SourceSensors     = "sensors"
	SourceHwmon       = "hwmon"
)

const (
	maxThermalZones = 10
	maxHwmonDevices = 5

	// Readings outside (minValidTemp, maxValidTemp) are sensor errors.
	minValidTemp = 0.0
	maxValidTemp = 150.0
)

// Zone type substrings identifying a CPU thermal zone, matched lowercased.
var cpuZoneKeys = []string{"cpu", "core", "x86_pkg_temp"}

// Labels of `sensors` output lines that carry a CPU reading.
var cpuSensorLabels = []string{"Core", "CPU", "Tctl"}

var sensorTempPattern = regexp.MustCompile(`([+-]?\d+\.?\d*).?°C`)

// thermalZone is one plausible thermal zone reading.
type thermalZone struct {
	zoneType string
	temp     float64
}

// TemperatureCollector collects the CPU temperature.
type TemperatureCollector struct {
	src    Sources
	runner CommandRunner
	logger *zap.Logger
}

// NewTemperatureCollector creates a new temperature collector.
// The logger parameter is used for debug logging. Pass nil for no logging.
func NewTemperatureCollector(src Sources, runner CommandRunner, logger *zap.Logger) *TemperatureCollector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemperatureCollector{
		src:    src,
		runner: runner,
		logger: logger,
	}
}

// Name returns the collector identifier.
func (c *TemperatureCollector) Name() string { return "temperature" }

// Collect walks the fallback chain. When no source answers, it returns an
// unavailable reading rather than an error.
func (c *TemperatureCollector) Collect(ctx context.Context) (interface{}, error) {
	if temp, ok := c.fromThermalZones(); ok {
		return c.reading(temp, SourceThermalZone), nil
	}
	if temp, ok := c.fromSensors(ctx); ok {
		return c.reading(temp, SourceSensors), nil
	}
	if temp, ok := c.fromHwmon(); ok {
		return c.reading(temp, SourceHwmon), nil
	}

	c.logger.Debug("No CPU temperature sensor found")
	return models.Temperature{}, nil
}

// IsAvailable returns true; always registered, reports unavailable if no sensor answers.
func (c *TemperatureCollector) IsAvailable() bool { return true }

func (c *TemperatureCollector) reading(temp float64, source string) models.Temperature {
	c.logger.Debug("CPU temperature collected",
		zap.String("source", source),
		zap.Float64("temp_c", temp))
	return models.Temperature{
		CPU:       int(math.Round(temp)),
		Available: true,
		Source:    source,
	}
}

// fromThermalZones prefers a zone whose type names the CPU and otherwise
// takes the first plausible zone.
func (c *TemperatureCollector) fromThermalZones() (float64, bool) {
	var zones []thermalZone
	for i := 0; i < maxThermalZones; i++ {
		dir := fmt.Sprintf("thermal_zone%d", i)
		temp, err := readMilliCelsius(c.src.sys("class", "thermal", dir, "temp"))
		if err != nil {
			continue
		}
		zoneType, err := readFile(c.src.sys("class", "thermal", dir, "type"))
		if err != nil {
			continue
		}
		if !isValidTemperature(temp) {
			continue
		}
		zones = append(zones, thermalZone{zoneType: strings.TrimSpace(zoneType), temp: temp})
	}

	for _, z := range zones {
		if matchesSensor(strings.ToLower(z.zoneType), cpuZoneKeys) {
			return z.temp, true
		}
	}
	if len(zones) > 0 {
		return zones[0].temp, true
	}
	return 0, false
}

// fromSensors scans `sensors -A` output for the first plausible CPU line.
func (c *TemperatureCollector) fromSensors(ctx context.Context) (float64, bool) {
	out, err := c.runner.Run(ctx, "sensors", "-A")
	if err != nil {
		c.logger.Debug("sensors command failed", zap.Error(err))
		return 0, false
	}
	return parseSensors(string(out))
}

func parseSensors(out string) (float64, bool) {
	for _, line := range strings.Split(out, "\n") {
		if !matchesSensor(line, cpuSensorLabels) {
			continue
		}
		m := sensorTempPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		temp, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if isValidTemperature(temp) {
			return temp, true
		}
	}
	return 0, false
}

// fromHwmon takes the first plausible temp1_input among the hwmon devices.
func (c *TemperatureCollector) fromHwmon() (float64, bool) {
	for i := 0; i < maxHwmonDevices; i++ {
		path := c.src.sys("class", "hwmon", fmt.Sprintf("hwmon%d", i), "temp1_input")
		temp, err := readMilliCelsius(path)
		if err != nil {
			continue
		}
		if isValidTemperature(temp) {
			return temp, true
		}
	}
	return 0, false
}

// readMilliCelsius reads a sysfs millidegree value and converts it to °C.
func readMilliCelsius(path string) (float64, error) {
	content, err := readFile(path)
	if err != nil {
		return 0, err
	}
	milli, err := strconv.ParseInt(strings.TrimSpace(content), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", path, err)
	}
	return float64(milli) / 1000, nil
}

// matchesSensor checks if the sensor name contains any of the given key substrings.
func matchesSensor(name string, keys []string) bool {
	for _, key := range keys {
		if strings.Contains(name, key) {
			return true
		}
	}
	return false
}

// isValidTemperature returns true if the temperature is within a plausible range.
func isValidTemperature(temp float64) bool {
	return temp > minValidTemp && temp < maxValidTemp
}
