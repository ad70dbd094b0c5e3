// Package format renders byte counts for humans.
package format

import "fmt"

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// Size converts a byte count using 1024 steps, stopping at TB.
func Size(bytes int64) string {
	if bytes == 0 {
		return "0 B"
	}

	value := float64(bytes)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}

	return fmt.Sprintf("%.2f %s", value, sizeUnits[unit])
}
