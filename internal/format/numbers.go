package format

import (
	"fmt"
	"strings"
)

// FormatNumberString inserts thousands separators into a string of decimal
// digits with an optional leading '-'.
func FormatNumberString(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	var sb strings.Builder
	sb.Grow(len(sign) + len(s) + len(s)/3)
	sb.WriteString(sign)
	head := len(s) % 3
	if head > 0 {
		sb.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if sb.Len() > len(sign) {
			sb.WriteByte(',')
		}
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}

// FormatBytes renders a byte count with a binary unit (KiB, MiB, ...).
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}

// FormatDigitCount renders a digit count together with its radix, e.g.
// "1,024 digits (base 10)".
func FormatDigitCount(n int, radix uint64) string {
	noun := "digits"
	if n == 1 {
		noun = "digit"
	}
	return fmt.Sprintf("%s %s (base %d)", FormatNumberString(fmt.Sprint(n)), noun, radix)
}

// TruncateMiddle shortens s to its first and last edges runes joined by
// "..." when it is longer than limit runes. It reports whether s was cut.
func TruncateMiddle(s string, limit, edges int) (string, bool) {
	r := []rune(s)
	if len(r) <= limit || 2*edges >= len(r) {
		return s, false
	}
	return string(r[:edges]) + "..." + string(r[len(r)-edges:]), true
}
