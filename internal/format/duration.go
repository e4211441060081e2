package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats d for display: microseconds below a
// millisecond, milliseconds below a second, and time.Duration's own form
// otherwise.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.String()
	}
}

// FormatTableDuration is FormatExecutionDuration with durations that were
// too short to measure shown as "< 1µs".
func FormatTableDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return FormatExecutionDuration(d)
}
