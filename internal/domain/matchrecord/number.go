package matchrecord

import (
	"math"
	"strconv"
	"strings"
)

// Number is a numeric field read from scraped payloads. Providers send the
// same field as a JSON number, a localized string ("1,5") or null; every
// shape decodes through ParseNumber so a malformed value becomes 0.
type Number float64

func (n Number) Float() float64 {
	return float64(n)
}

func (n Number) Int() int {
	return int(n)
}

func (n *Number) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		*n = 0
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			*n = 0
			return nil
		}
		*n = Number(ParseNumber(unquoted))
		return nil
	}

	*n = Number(ParseNumber(raw))
	return nil
}

// ParseNumber coerces an arbitrary raw value into a finite float64.
// Strings have every comma removed and are then read like a leading decimal
// literal, so "1,000" is 1000 and "2,5" is 25. Anything else yields 0.
func ParseNumber(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case Number:
		return finite(float64(t))
	case *Number:
		if t == nil {
			return 0
		}
		return finite(float64(*t))
	case float64:
		return finite(t)
	case float32:
		return finite(float64(t))
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case uint:
		return float64(t)
	case uint32:
		return float64(t)
	case uint64:
		return float64(t)
	case string:
		return parseNumericString(t)
	case *string:
		if t == nil {
			return 0
		}
		return parseNumericString(*t)
	case interface{ String() string }:
		return parseNumericString(t.String())
	default:
		return 0
	}
}

func parseNumericString(s string) float64 {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimLeft(s, " \t\r\n")
	prefix := leadingDecimal(s)
	if prefix == "" {
		return 0
	}

	out, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0
	}
	return finite(out)
}

// leadingDecimal returns the longest prefix of s that reads as a decimal
// literal with optional sign, fraction and exponent.
func leadingDecimal(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		fraction := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			fraction++
		}
		if digits > 0 || fraction > 0 {
			i = j
			digits += fraction
		}
	}
	if digits == 0 {
		return ""
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expDigits := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			expDigits++
		}
		if expDigits > 0 {
			i = j
		}
	}

	return s[:i]
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
