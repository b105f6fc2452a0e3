package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseAmount parses a human-written integer amount such as "1,234,567" or "-2,000 gp".
// Thousands separators are removed and only the leading sign and digits are considered,
// so trailing units are ignored. Unparseable input yields 0.
func ParseAmount(s string) int64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}

	end := 0
	if s[0] == '-' || s[0] == '+' {
		end = 1
	}
	digits := end
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits == end {
		return 0
	}

	v, err := strconv.ParseInt(s[:digits], 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// ToInt64 converts various types to int64 using explicit type switching.
// It handles standard integer types, floats, strings (via ParseAmount) and byte slices.
func ToInt64(val any) int64 {
	switch v := val.(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case int32:
		return int64(v)
	case int16:
		return int64(v)
	case int8:
		return int64(v)
	case uint:
		return int64(v)
	case uint64:
		if v > math.MaxInt64 {
			return math.MaxInt64
		}
		return int64(v)
	case uint32:
		return int64(v)
	case uint16:
		return int64(v)
	case uint8:
		return int64(v)
	case float64:
		return int64(v)
	case float32:
		return int64(v)
	case string:
		return ParseAmount(v)
	case []byte:
		return ParseAmount(string(v))
	case nil:
		return 0
	default:
		return ParseAmount(fmt.Sprintf("%v", v))
	}
}

// FloorDiv divides a by b rounding toward negative infinity.
// b must be non-zero.
func FloorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
