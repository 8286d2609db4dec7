package util

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

func SafeAtoi(s string) int {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return i
}

var nonNumericRegex = regexp.MustCompile(`[^\d]`)

func CleanNumericString(s string) string {
	return nonNumericRegex.ReplaceAllString(s, "")
}

// ParseLikeCount normalizes a localized like-count display text into an
// integer. The feed renders counts as plain digits, "1.2万" (×10,000) or
// "3千" (×1,000), optionally with a trailing "+". Malformed text yields 0;
// a bad count must never abort extraction of the rest of the record.
func ParseLikeCount(text string) int {
	s := strings.TrimSpace(strings.ReplaceAll(text, "+", ""))

	multiplier := 1.0
	switch {
	case strings.Contains(s, "万"):
		multiplier = 10000
		s = strings.ReplaceAll(s, "万", "")
	case strings.Contains(s, "千"):
		multiplier = 1000
		s = strings.ReplaceAll(s, "千", "")
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		// Digit salvage for grouped renders like "1,234"; text without
		// digits still comes out 0.
		value = float64(SafeAtoi(CleanNumericString(s)))
	}
	if value < 0 {
		return 0
	}
	return int(math.Round(value * multiplier))
}
