package reduce

import (
	"errors"
	"math"
	"testing"

	"github.com/csm-adapt/karon"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestToFloat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karon.reduce")
	defer teardown()
	//
	for _, v := range []any{3, int64(3), float32(3), 3.0, "3", " 3.0 ", uint8(3)} {
		f, err := ToFloat(v)
		assert.NoError(t, err, "value %#v", v)
		assert.Equal(t, 3.0, f, "value %#v", v)
	}
	_, err := ToFloat("path/to/fractograph.tif")
	if !errors.Is(err, karon.ErrTypeConversion) {
		t.Errorf("expected conversion error for a path, got %v", err)
	}
	_, err = ToFloat([]int{1})
	if !errors.Is(err, karon.ErrTypeConversion) {
		t.Errorf("expected conversion error for a slice, got %v", err)
	}
}

func TestReductionsSkipUnconvertible(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karon.reduce")
	defer teardown()
	//
	values := []any{1, "a", 2.0, nil, "3", math.NaN()}
	assert.Equal(t, 2.0, Mean(values))
	assert.Equal(t, 2.0, Median(values))
	assert.Equal(t, 1.0, Min(values))
	assert.InDelta(t, math.Sqrt(2.0/3.0), Std(values), 1e-12)
	assert.Equal(t, 2.5, Median([]any{1, 2, 3, 4}))
}

func TestReductionOverNothingIsNaN(t *testing.T) {
	if !math.IsNaN(Mean(nil)) {
		t.Error("expected mean of nothing to be NaN")
	}
	if !math.IsNaN(Median([]any{"x"})) {
		t.Error("expected median of unconvertible values to be NaN")
	}
}

func TestIsNull(t *testing.T) {
	for _, v := range []any{nil, false, "", "  ", math.NaN(), []string{}, map[string]int{}} {
		if !IsNull(v) {
			t.Errorf("expected %#v to be null", v)
		}
	}
	for _, v := range []any{0, 0.0, "a", true, []int{0}} {
		if IsNull(v) {
			t.Errorf("expected %#v not to be null", v)
		}
	}
}
