// Package format renders snapshot values into short human-readable strings
// for widget labels.
package format

import (
	"fmt"
	"math"
	"strconv"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// Bytes formats a byte count using binary (1024) units, e.g. "1.5 KB".
// The value is rounded to two decimals and trailing zeros are dropped.
func Bytes(n uint64) string {
	if n == 0 {
		return "0 B"
	}
	v := float64(n)
	i := 0
	for v >= 1024 && i < len(byteUnits)-1 {
		v /= 1024
		i++
	}
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + byteUnits[i]
}

// Uptime formats seconds since boot as "Xd Yh Zm", omitting leading zero units.
func Uptime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	s := int64(seconds)
	days := s / 86400
	hours := (s % 86400) / 3600
	minutes := (s % 3600) / 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// Truncate shortens s to n runes, appending "..." when anything was cut.
// A negative n is treated as 0.
func Truncate(s string, n int) string {
	if n < 0 {
		n = 0
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
