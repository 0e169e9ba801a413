// Package format renders playback times for display.
package format

import "fmt"

// Duration renders a seconds value as MM:SS, or HH:MM:SS from one hour
// up. Negative values render as 00:00 and fractional seconds truncate.
func Duration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}

	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
