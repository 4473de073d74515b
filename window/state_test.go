package window

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowStateInvariants(t *testing.T) {
	t.Parallel()

	for total := 0; total <= 45; total++ {
		for count := 0; count <= 30; count++ {
			for start := -3; start <= 50; start += 7 {
				st := WindowState{Count: count}.WithStart(start, total)
				assertInvariants(t, st, total)
				assertInvariants(t, st.Step(count, total), total)
				assertInvariants(t, st.Step(-count, total), total)
				assertInvariants(t, st.WithCount(count+5, total), total)
			}
		}
	}
}

func TestWindowStateClamp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, WindowState{Start: 495, End: 515, Count: 20}, WindowState{Start: 495, Count: 20}.Clamp(1000))
	assert.Equal(t, WindowState{Start: 980, End: 999, Count: 20}, WindowState{Start: 990, Count: 20}.Clamp(1000))
	assert.Equal(t, WindowState{Start: 0, End: 4, Count: 20}, WindowState{Start: 3, Count: 20}.Clamp(5))
	assert.Equal(t, WindowState{Count: 20}, WindowState{Start: 3, End: 9, Count: 20}.Clamp(0))
}

func TestWindowStateEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, WindowState{}.Empty())
	assert.True(t, WindowState{Start: 4, End: 4, Count: 10}.Empty())
	assert.True(t, WindowState{Start: 5, End: 4}.Empty())
	assert.False(t, WindowState{Start: 4, End: 5, Count: 1}.Empty())
}

func TestRange(t *testing.T) {
	t.Parallel()

	r := Range{Start: 3, End: 7}
	assert.True(t, r.Valid())
	assert.Equal(t, 5, r.Len())
	assert.True(t, r.Contains(3))
	assert.True(t, r.Contains(7))
	assert.False(t, r.Contains(8))
	assert.Equal(t, "[3,7]", r.String())

	assert.False(t, Range{Start: -1, End: 2}.Valid())
	assert.False(t, Range{Start: 4, End: 2}.Valid())
	assert.Zero(t, Range{Start: 4, End: 2}.Len())
}

func TestStorageInfo(t *testing.T) {
	t.Parallel()

	require.NoError(t, StorageInfo{Count: 0}.Validate())
	err := StorageInfo{Count: -1}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidCount))

	cases := []struct {
		name  string
		in    float64
		count int
		ok    bool
	}{
		{name: "integer", in: 42, count: 42, ok: true},
		{name: "zero", in: 0, count: 0, ok: true},
		{name: "negative", in: -3},
		{name: "fraction", in: 2.5},
		{name: "nan", in: math.NaN()},
		{name: "inf", in: math.Inf(1)},
		{name: "negative inf", in: math.Inf(-1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			info, err := StorageInfoFromFloat(tc.in)
			if !tc.ok {
				assert.ErrorIs(t, err, ErrInvalidCount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.count, info.Count)
		})
	}
}

func TestMeasure(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 20, Measure(400, 20, 0))
	assert.Equal(t, 19, Measure(400, 20, 8))
	assert.Equal(t, 0, Measure(400, 0, 0))
	assert.Equal(t, 0, Measure(5, 20, 8))
	assert.Equal(t, 0, Measure(0, 20, 0))
}

func TestViewportRemeasure(t *testing.T) {
	t.Parallel()

	var v Viewport
	require.False(t, v.Measured())

	v, changed := v.Remeasure(400, 20, 8, false)
	require.True(t, changed)
	assert.True(t, v.Measured())
	assert.Equal(t, 392, v.Height)
	assert.Equal(t, 19, v.Rows)

	_, changed = v.Remeasure(400, 20, 8, false)
	assert.False(t, changed)

	_, changed = v.Remeasure(400, 20, 8, true)
	assert.True(t, changed)

	next, changed := v.Remeasure(600, 20, 8, false)
	assert.True(t, changed)
	assert.Equal(t, 29, next.Rows)
}

func TestParseAction(t *testing.T) {
	t.Parallel()

	for _, a := range Actions() {
		got, err := ParseAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
	got, err := ParseAction(" Page-Down ")
	require.NoError(t, err)
	assert.Equal(t, ActionPageDown, got)

	_, err = ParseAction("jump")
	assert.Error(t, err)
	assert.Equal(t, "none", ActionNone.String())
}
