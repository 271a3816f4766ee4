package metadata

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tmcnab/exifscope/internal/exifdata"
)

// ConvertDMS converts a degrees/minutes/seconds triplet plus a
// hemisphere reference into signed decimal degrees, rounded to six
// decimal places (sub-meter precision). The result is negative iff the
// reference is S or W.
//
// A component that cannot be coerced to a number is an error, not a
// zero: a corrupt GPS block must not produce a plausible-looking wrong
// coordinate.
func ConvertDMS(value any, ref string) (float64, error) {
	parts, err := floatTriplet(value)
	if err != nil {
		return 0, err
	}
	decimal := parts[0] + parts[1]/60 + parts[2]/3600
	ref = strings.TrimSpace(ref)
	if ref == "S" || ref == "W" {
		decimal = -decimal
	}
	return roundTo(decimal, 6), nil
}

func floatTriplet(value any) ([3]float64, error) {
	var out [3]float64

	items, err := sequence(value)
	if err != nil {
		return out, err
	}
	if len(items) != 3 {
		return out, fmt.Errorf("dms: want 3 components, got %d", len(items))
	}
	for i, item := range items {
		f, err := toFloat(item)
		if err != nil {
			return out, fmt.Errorf("dms component %d: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}

func sequence(value any) ([]any, error) {
	switch v := value.(type) {
	case []any:
		return v, nil
	case []exifdata.Ratio:
		out := make([]any, len(v))
		for i, r := range v {
			out[i] = r
		}
		return out, nil
	case []float64:
		out := make([]any, len(v))
		for i, f := range v {
			out[i] = f
		}
		return out, nil
	case []int64:
		out := make([]any, len(v))
		for i, n := range v {
			out[i] = n
		}
		return out, nil
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("dms: %T is not a sequence", value)
	}
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case exifdata.Ratio:
		if v.Den == 0 {
			return 0, fmt.Errorf("ratio %d/0 has zero denominator", v.Num)
		}
		return v.Float(), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("parse %q as number: %w", v, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("cannot coerce %T to number", value)
	}
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
