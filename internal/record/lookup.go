package record

import "reflect"

// FindByField returns the first record whose field holds target, or nil when
// no record matches. Numeric values compare across int, int64, and float64 so
// a coerced field still matches a literal of a different width.
func FindByField(records []*Record, field string, target any) *Record {
	for _, rec := range records {
		if rec == nil {
			continue
		}

		value, ok := rec.Get(field)
		if !ok {
			continue
		}

		if valuesEqual(value, target) {
			return rec
		}
	}

	return nil
}

func valuesEqual(a, b any) bool {
	if fa, ok := numericValue(a); ok {
		fb, bok := numericValue(b)

		return bok && fa == fb
	}

	return reflect.DeepEqual(a, b)
}

func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
