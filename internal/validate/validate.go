package validate

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"shopfront/internal/domain"
)

var reSID = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// Number parses a numeric form input. Empty, non-numeric, NaN and infinite values fail.
func Number(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// NumberOrZero is Number with failures mapped to 0, for live display values.
func NumberOrZero(s string) float64 {
	n, _ := Number(s)
	return n
}

// SID validates a session cookie value (lowercase uuid).
func SID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reSID.MatchString(s)
}

// Mode validates a posted view mode.
func Mode(s string) (domain.ViewMode, bool) {
	return domain.ParseViewMode(strings.ToLower(strings.TrimSpace(s)))
}
