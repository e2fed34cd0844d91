package series

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/signalexpr/expr"
	"github.com/rulego/signalexpr/types"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestTimelinePosition(t *testing.T) {
	tl, err := NewTimeline([]time.Time{day(2), day(3), day(5)})
	require.NoError(t, err)

	tests := []struct {
		name string
		key  types.Key
		pos  int
		ok   bool
	}{
		{"index", types.IndexKey(1), 1, true},
		{"index past the end", types.IndexKey(3), 3, false},
		{"negative index", types.IndexKey(-1), -1, false},
		{"exact time", types.TimeKey(day(3)), 1, true},
		{"time between bars", types.TimeKey(day(4)), 1, true},
		{"time after the last bar", types.TimeKey(day(9)), 2, true},
		{"time before the first bar", types.TimeKey(day(1)), -1, false},
		{"invalid", types.InvalidKey(types.KeyIndex), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, ok := tl.Position(tt.key)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.pos, pos)
			}
		})
	}

	assert.PanicsWithError(t, "unsupported operation: series does not support unkeyed bar lookup, use an index or timestamp key", func() {
		tl.Position(types.NoKey)
	})
}

func TestTimelinePreviousKey(t *testing.T) {
	tl, err := NewTimeline([]time.Time{day(2), day(3), day(5)})
	require.NoError(t, err)

	assert.Equal(t, types.IndexKey(1), tl.PreviousKey(types.IndexKey(2), 1))
	assert.Equal(t, types.IndexKey(0), tl.PreviousKey(types.IndexKey(2), 2))
	assert.False(t, tl.PreviousKey(types.IndexKey(0), 1).Valid())
	assert.False(t, tl.PreviousKey(types.InvalidKey(types.KeyIndex), 1).Valid())

	prev := tl.PreviousKey(types.TimeKey(day(5)), 1)
	require.True(t, prev.Valid())
	assert.True(t, day(3).Equal(prev.Time()))

	// a timestamp between bars steps back from the bar at or before it
	prev = tl.PreviousKey(types.TimeKey(day(4)), 1)
	assert.True(t, day(2).Equal(prev.Time()))
	assert.False(t, tl.PreviousKey(types.TimeKey(day(2)), 1).Valid())
	assert.Equal(t, types.KeyTime, tl.PreviousKey(types.TimeKey(day(2)), 1).Kind())

	assert.Panics(t, func() { tl.PreviousKey(types.NoKey, 1) })
	assert.Panics(t, func() { tl.PreviousKey(types.IndexKey(1), -1) })
}

func TestTimelineKeys(t *testing.T) {
	_, err := NewTimeline([]time.Time{day(3), day(3)})
	assert.Error(t, err)

	tl := NewIndexTimeline(2)
	assert.False(t, tl.Timed())
	assert.Equal(t, types.IndexKey(1), tl.Key(1, types.KeyIndex))
	assert.False(t, tl.Key(1, types.KeyTime).Valid())
	assert.False(t, tl.Key(2, types.KeyIndex).Valid())
	assert.Equal(t, types.NoKey, tl.Key(0, types.KeyNone))
	_, ok := tl.Position(types.TimeKey(day(1)))
	assert.False(t, ok)

	timed, err := NewTimeline([]time.Time{day(2), day(3)})
	require.NoError(t, err)
	assert.True(t, day(3).Equal(timed.Key(1, types.KeyTime).Time()))
	assert.True(t, day(2).Equal(timed.Time(0)))
}

func TestField(t *testing.T) {
	tl := NewIndexTimeline(4)
	s, err := NewOn(tl, "v", []float64{2.7, 0, math.NaN(), -1.5})
	require.NoError(t, err)

	tests := []struct {
		name     string
		typ      types.ExpressionType
		doubles  []float64
		booleans []bool
		nullable []types.Bool3
	}{
		{"double", types.Double, []float64{2.7, 0, math.NaN(), -1.5}, []bool{true, false, false, true}, []types.Bool3{types.True, types.False, types.Unknown, types.True}},
		{"integer", types.Integer, []float64{2, 0, math.NaN(), -1}, []bool{true, false, false, true}, []types.Bool3{types.True, types.False, types.Unknown, types.True}},
		{"boolean", types.Boolean, []float64{1, 0, 0, 1}, []bool{true, false, false, true}, []types.Bool3{types.True, types.False, types.False, types.True}},
		{"nullable", types.BooleanNullable, []float64{1, 0, math.NaN(), 1}, []bool{true, false, false, true}, []types.Bool3{types.True, types.False, types.Unknown, types.True}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewField(s, WithType(tt.typ))
			assert.Equal(t, tt.typ, f.Type())
			for i := range tt.doubles {
				k := types.IndexKey(i)
				got := f.EvalDouble(k)
				if math.IsNaN(tt.doubles[i]) {
					assert.True(t, math.IsNaN(got), "double at %d", i)
				} else {
					assert.Equal(t, tt.doubles[i], got, "double at %d", i)
				}
				assert.Equal(t, tt.booleans[i], f.EvalBoolean(k), "boolean at %d", i)
				assert.Equal(t, tt.nullable[i], f.EvalNullable(k), "nullable at %d", i)
			}
		})
	}

	f := NewField(s, Drawn(), Persisted())
	assert.True(t, f.ShouldDraw())
	assert.True(t, f.ShouldPersist())
	assert.False(t, f.IsConstant())
	assert.Equal(t, "v", f.String())
	assert.Same(t, tl, f.Provider())
	assert.Equal(t, int64(2), f.EvalInteger(types.IndexKey(0)))
	assert.Panics(t, func() { f.EvalInteger(types.IndexKey(2)) })
	assert.Panics(t, func() { f.EvalDouble(types.NoKey) })
	assert.True(t, math.IsNaN(f.EvalDouble(types.IndexKey(9))))
	assert.Panics(t, func() { NewField(s, WithType(types.ExpressionType(8))) })

	_, err = NewOn(tl, "short", []float64{1})
	assert.EqualError(t, err, "series short has 1 values, timeline has 4 bars")
}

func TestCrossingOverFrame(t *testing.T) {
	tl, err := NewTimeline([]time.Time{day(2), day(3), day(4), day(5)})
	require.NoError(t, err)
	frame := NewFrame(tl)
	fast, err := frame.Add("fast", []float64{5, 10, 12, 8})
	require.NoError(t, err)
	slow, err := frame.Add("slow", []float64{10, 5, 9, 9})
	require.NoError(t, err)

	c := expr.NewCrossing(expr.CrossesAbove, fast, fast.Provider(), slow, slow.Provider()).Simplify().(*expr.Crossing)
	assert.True(t, c.Shared())

	below := expr.NewCrossing(expr.CrossesBelow, fast, fast.Provider(), slow, slow.Provider())
	wantAbove := []bool{false, true, false, false}
	wantBelow := []bool{false, false, false, true}
	for i := 0; i < tl.Len(); i++ {
		assert.Equal(t, wantAbove[i], expr.BooleanAt(c, i), "above at %d", i)
		assert.Equal(t, wantAbove[i], expr.BooleanAtTime(c, tl.Time(i)), "above at %s", tl.Time(i))
		assert.Equal(t, wantBelow[i], expr.BooleanAtTime(below, tl.Time(i)), "below at %s", tl.Time(i))
	}
	// between bars the last bar decides
	assert.True(t, expr.BooleanAtTime(c, day(3).Add(12*time.Hour)))

	_, err = frame.Add("fast", []float64{1, 2, 3, 4})
	assert.Error(t, err)
	assert.Equal(t, []string{"fast", "slow"}, frame.Names())
}

func TestLoadYAML(t *testing.T) {
	data := []byte(`
timestamps: ["2024-01-02T00:00:00Z", "2024-01-03T00:00:00Z", "2024-01-04T00:00:00Z"]
series:
  close: [10, 11.5, 9]
  volume: [1200, ~, 900]
  signal: [1, 0, 1]
integer: [volume]
boolean: [signal]
draw: [close]
persist: [close, volume]
`)
	frame, err := LoadYAML(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"close", "volume", "signal"}, frame.Names())
	assert.Equal(t, 3, frame.Len())
	assert.True(t, frame.Timeline().Timed())

	cl, ok := frame.Field("close")
	require.True(t, ok)
	assert.True(t, cl.ShouldDraw())
	assert.True(t, cl.ShouldPersist())
	assert.Equal(t, 11.5, cl.EvalDouble(types.TimeKey(day(3))))

	vol, _ := frame.Field("volume")
	assert.Equal(t, types.Integer, vol.Type())
	assert.True(t, math.IsNaN(vol.EvalDouble(types.IndexKey(1))))
	assert.False(t, vol.ShouldDraw())

	sig, _ := frame.Field("signal")
	assert.Equal(t, types.Boolean, sig.Type())

	node, provider, ok := frame.Lookup("close")
	require.True(t, ok)
	assert.Same(t, cl, node)
	assert.Same(t, frame.Timeline(), provider)
	_, _, ok = frame.Lookup("open")
	assert.False(t, ok)
}

func TestLoadYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"no series", `draw: []`, "series file declares no series"},
		{"not a mapping", `series: [1, 2]`, "series must be a mapping"},
		{"bad value", "series:\n  close: [1, abc]", "series close: element 1"},
		{"length mismatch", "series:\n  a: [1, 2]\n  b: [1]", "series b has 1 values, timeline has 2 bars"},
		{"timestamps mismatch", "timestamps: [\"2024-01-02T00:00:00Z\"]\nseries:\n  a: [1, 2]", "series a has 2 values, timeline has 1 bars"},
		{"unsorted timestamps", "timestamps: [\"2024-01-03T00:00:00Z\", \"2024-01-02T00:00:00Z\"]\nseries:\n  a: [1, 2]", "is not after"},
		{"bad timestamp", "timestamps: [\"soon\"]\nseries:\n  a: [1]", "timestamp 0"},
		{"unknown draw", "series:\n  a: [1]\ndraw: [b]", "draw: unknown series b"},
		{"malformed", "series: [", "parse series file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadYAML([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bars.yaml")
	require.NoError(t, os.WriteFile(path, []byte("series:\n  x: [1, 2, 3]\n"), 0o600))

	frame, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, frame.Len())
	assert.False(t, frame.Timeline().Timed())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
