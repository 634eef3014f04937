// Package coerce converts loosely typed catalog values into typed Go values.
// Every function takes any value and returns the coerced result when the
// value fits the expected shape, or the input unchanged when it does not, so
// callers can apply conversions blindly across mixed-quality fields.
package coerce

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// NoneValues are the default strings treated as missing data, compared after
// trimming and lowercasing.
var NoneValues = []string{"", "n/a", "none", "unknown"}

// YearEra is a galactic date split into its numeric year and era designation.
type YearEra struct {
	Year int64  `json:"year"`
	Era  string `json:"era"`
}

var yearEraPattern = regexp.MustCompile(`^([0-9]+)(BBY|ABY)$`)

// ToInt coerces a value to an int64. Strings may carry comma separators and a
// fractional part; the fraction truncates toward zero.
func ToInt(v any) any {
	switch value := v.(type) {
	case string:
		cleaned := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
		if n, err := strconv.ParseInt(cleaned, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
			return int64(f)
		}

		return v
	case float64:
		return int64(value)
	case int:
		return int64(value)
	case int64:
		return value
	default:
		return v
	}
}

// ToFloat coerces a value to a float64. Strings may carry comma separators.
func ToFloat(v any) any {
	switch value := v.(type) {
	case string:
		cleaned := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
		if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
			return f
		}

		return v
	case float64:
		return value
	case int:
		return float64(value)
	case int64:
		return float64(value)
	default:
		return v
	}
}

// ToList splits a string into a list of tokens. With a delimiter the split
// mirrors strings.Split, keeping empty tokens; without one the string splits
// on runs of whitespace. Non-string values pass through unchanged.
func ToList(v any, delimiter ...string) any {
	s, ok := v.(string)
	if !ok {
		return v
	}

	if len(delimiter) > 0 && delimiter[0] != "" {
		return strings.Split(s, delimiter[0])
	}

	return strings.Fields(s)
}

// ToNone replaces the sentinel strings that stand in for missing data with
// nil. Comparison trims surrounding whitespace and ignores case. Callers may
// supply their own sentinel set; the default is NoneValues.
func ToNone(v any, sentinels ...string) any {
	s, ok := v.(string)
	if !ok {
		return v
	}

	if len(sentinels) == 0 {
		sentinels = NoneValues
	}

	if slices.Contains(sentinels, strings.ToLower(strings.TrimSpace(s))) {
		return nil
	}

	return v
}

// ToYearEra splits a galactic date like "896BBY" into a YearEra. Only whole
// years convert; fractional dates and other strings pass through unchanged.
func ToYearEra(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}

	matches := yearEraPattern.FindStringSubmatch(s)
	if matches == nil {
		return v
	}

	year, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return v
	}

	return YearEra{Year: year, Era: matches[2]}
}

// ToGravity coerces a gravity reading to a float64, tolerating a "standard"
// unit suffix in any letter case.
func ToGravity(v any) any {
	s, ok := v.(string)
	if !ok {
		return ToFloat(v)
	}

	cleaned := strings.TrimSpace(strings.ReplaceAll(strings.ToLower(s), "standard", ""))

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return v
	}

	return f
}
