package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseHMS converts an "H:M:S" duration string into total seconds. Blank or
// malformed input counts as zero seconds rather than an error: the TimeTo
// columns stay empty until a case is claimed.
func ParseHMS(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	parts := strings.Split(text, ":")
	if len(parts) != 3 {
		return 0
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0
	}
	s, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return 0
	}
	return h*3600 + m*60 + s
}

// FormatHMS renders seconds as a zero-padded "HH:MM:SS" string. Negative
// values keep a single leading minus. NaN renders as the zero duration so a
// missing mean never reaches the display layer.
func FormatHMS(seconds float64) string {
	if math.IsNaN(seconds) {
		return "00:00:00"
	}
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, h, m, s)
}

// FormatHMSFromMinutes is FormatHMS over a minutes value truncated to whole
// minutes, so the seconds component is always "00".
func FormatHMSFromMinutes(minutes float64) string {
	if math.IsNaN(minutes) {
		return "00:00:00"
	}
	return FormatHMS(math.Trunc(minutes) * 60)
}
