package reduce

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/csm-adapt/karon"
)

// ToFloat converts a value to float64. Numbers of any kind, numeric strings
// and booleans are accepted. Other values produce an error wrapping
// karon.ErrTypeConversion.
func ToFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int8:
		return float64(x), nil
	case int16:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint:
		return float64(x), nil
	case uint8:
		return float64(x), nil
	case uint16:
		return float64(x), nil
	case uint32:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return math.NaN(), fmt.Errorf("%w: %q to float", karon.ErrTypeConversion, x)
		}
		return f, nil
	case fmt.Stringer:
		return ToFloat(x.String())
	}
	return math.NaN(), fmt.Errorf("%w: %T to float", karon.ErrTypeConversion, v)
}

// Floats converts values to float64, dropping everything which fails to
// convert or is NaN.
func Floats(values []any) []float64 {
	r := make([]float64, 0, len(values))
	for _, v := range values {
		f, err := ToFloat(v)
		if err != nil {
			tracer().Debugf("reduce: dropping value: %v", err)
			continue
		}
		if math.IsNaN(f) {
			continue
		}
		r = append(r, f)
	}
	return r
}

// Mean is the arithmetic mean of all convertible values.
func Mean(values []any) float64 {
	x := Floats(values)
	if len(x) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, f := range x {
		sum += f
	}
	return sum / float64(len(x))
}

// Median is the median of all convertible values.
func Median(values []any) float64 {
	x := Floats(values)
	if len(x) == 0 {
		return math.NaN()
	}
	sort.Float64s(x)
	m := len(x) / 2
	if len(x)%2 == 1 {
		return x[m]
	}
	return (x[m-1] + x[m]) / 2
}

// Std is the population standard deviation of all convertible values.
func Std(values []any) float64 {
	x := Floats(values)
	if len(x) == 0 {
		return math.NaN()
	}
	mean := 0.0
	for _, f := range x {
		mean += f
	}
	mean /= float64(len(x))
	variance := 0.0
	for _, f := range x {
		variance += (f - mean) * (f - mean)
	}
	return math.Sqrt(variance / float64(len(x)))
}

// Min is the smallest of all convertible values.
func Min(values []any) float64 {
	x := Floats(values)
	if len(x) == 0 {
		return math.NaN()
	}
	m := x[0]
	for _, f := range x[1:] {
		m = math.Min(m, f)
	}
	return m
}

// IsNull decides whether a value counts as absent: nil, false, a blank
// string, NaN, or an empty slice or map.
func IsNull(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case string:
		return strings.TrimSpace(x) == ""
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
