package expr

import (
	"math"
	"testing"

	"github.com/rulego/signalexpr/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bool3Constants = map[types.Bool3]*Constant{
	types.True:    True,
	types.False:   False,
	types.Unknown: Unknown,
}

func TestLogicalTruthTables(t *testing.T) {
	const (
		T = types.True
		F = types.False
		U = types.Unknown
	)
	tests := []struct {
		op   Operator
		l, r types.Bool3
		want types.Bool3
	}{
		{And, T, T, T}, {And, T, F, F}, {And, T, U, U},
		{And, F, T, F}, {And, F, F, F}, {And, F, U, F},
		{And, U, T, T}, {And, U, F, F}, {And, U, U, U},

		{Or, T, T, T}, {Or, T, F, T}, {Or, T, U, T},
		{Or, F, T, T}, {Or, F, F, F}, {Or, F, U, U},
		{Or, U, T, T}, {Or, U, F, F}, {Or, U, U, U},

		{Xor, T, T, F}, {Xor, T, F, T}, {Xor, T, U, U},
		{Xor, F, T, T}, {Xor, F, F, F}, {Xor, F, U, U},
		{Xor, U, T, U}, {Xor, U, F, U}, {Xor, U, U, U},
	}
	for _, tt := range tests {
		t.Run(tt.op.String()+" "+tt.l.String()+" "+tt.r.String(), func(t *testing.T) {
			l, r := bool3Constants[tt.l], bool3Constants[tt.r]
			forms := map[string]Node{
				"short-circuit": NewLogical(tt.op, l, r),
				"parallel":      NewParallelLogical(tt.op, l, r),
			}
			for name, n := range forms {
				assert.Equal(t, tt.want, n.EvalNullable(types.NoKey), name)
				assert.Equal(t, tt.want == types.True, n.EvalBoolean(types.NoKey), name)
				assertSameValue(t, bool3ToDouble(tt.want), n.EvalDouble(types.NoKey), name)

				folded := n.Simplify()
				require.True(t, folded.IsConstant(), name)
				assert.Equal(t, tt.want, folded.EvalNullable(types.NoKey), name)

				ev, err := Compile[types.Bool3](n, types.KeyNone)
				require.NoError(t, err)
				assert.Equal(t, tt.want, ev(types.NoKey), name)
			}
		})
	}
}

func bool3ToDouble(b types.Bool3) float64 {
	switch b {
	case types.True:
		return 1
	case types.False:
		return 0
	default:
		return math.NaN()
	}
}

func TestLogicalOverSeries(t *testing.T) {
	// every combination of left and right, one per key
	l := nullables("l", 1, 1, 1, 0, 0, 0, math.NaN(), math.NaN(), math.NaN())
	r := nullables("r", 1, 0, math.NaN(), 1, 0, math.NaN(), 1, 0, math.NaN())
	wantAnd := []types.Bool3{types.True, types.False, types.Unknown, types.False, types.False, types.False, types.True, types.False, types.Unknown}
	wantOr := []types.Bool3{types.True, types.True, types.True, types.True, types.False, types.Unknown, types.True, types.False, types.Unknown}

	andNode, orNode := and(l, r), or(l, r)
	andEval, err := Compile[types.Bool3](andNode, types.KeyIndex)
	require.NoError(t, err)
	orEval, err := Compile[types.Bool3](orNode, types.KeyIndex)
	require.NoError(t, err)

	for i := range l.values {
		k := types.IndexKey(i)
		assert.Equal(t, wantAnd[i], andNode.EvalNullable(k), "and at %d", i)
		assert.Equal(t, wantOr[i], orNode.EvalNullable(k), "or at %d", i)
		assert.Equal(t, wantAnd[i], andEval(k), "compiled and at %d", i)
		assert.Equal(t, wantOr[i], orEval(k), "compiled or at %d", i)
	}
}

func TestNegation(t *testing.T) {
	assert.Equal(t, types.False, NewNot(True).EvalNullable(types.NoKey))
	assert.Equal(t, types.True, NewNot(False).EvalNullable(types.NoKey))
	assert.Equal(t, types.Unknown, NewNot(Unknown).EvalNullable(types.NoKey))
	assert.True(t, math.IsNaN(NewNot(Unknown).EvalDouble(types.NoKey)))
	assert.Equal(t, int64(0), NewNot(Unknown).EvalInteger(types.NoKey))
	assert.False(t, NewNot(Unknown).EvalBoolean(types.NoKey))
	assert.Equal(t, 1.0, NewBooleanNot(False).EvalDouble(types.NoKey))
	assert.Equal(t, Not, NewNot(True).Operator())
}

func TestShortCircuitSkipsRightOperand(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want types.Bool3
	}{
		{"false and", and(False, explosive{}), types.False},
		{"true or", or(True, explosive{}), types.True},
		{"false and two-valued", NewBooleanLogical(And, False, explosive{}), types.False},
		{"true or two-valued", NewBooleanLogical(Or, True, explosive{}), types.True},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.want, tt.node.EvalNullable(types.IndexKey(0)))
			})
			assert.NotPanics(t, func() {
				ev, err := Compile[types.Bool3](tt.node, types.KeyIndex)
				require.NoError(t, err)
				assert.Equal(t, tt.want, ev(types.IndexKey(0)))
			})
		})
	}

	assert.PanicsWithValue(t, "evaluated", func() { and(True, explosive{}).EvalNullable(types.NoKey) })
	assert.PanicsWithValue(t, "evaluated", func() { or(Unknown, explosive{}).EvalNullable(types.NoKey) })
	assert.PanicsWithValue(t, "evaluated", func() {
		NewParallelLogical(And, False, explosive{}).EvalNullable(types.NoKey)
	})
}

func TestLogicalDoubleMapping(t *testing.T) {
	t.Run("unknown and is NaN", func(t *testing.T) {
		n := and(Unknown, nullables("b", math.NaN()))
		assert.True(t, math.IsNaN(n.EvalDouble(types.IndexKey(0))))
		assert.Equal(t, int64(0), n.EvalInteger(types.IndexKey(0)))
	})
	t.Run("two-valued or maps false to -1", func(t *testing.T) {
		n := NewBooleanLogical(Or, False, False)
		assert.Equal(t, -1.0, n.EvalDouble(types.NoKey))
		assert.Equal(t, 1.0, NewBooleanLogical(Or, False, True).EvalDouble(types.NoKey))
		assert.Equal(t, int64(0), n.EvalInteger(types.NoKey))

		ev, err := Compile[float64](n, types.KeyNone)
		require.NoError(t, err)
		assert.Equal(t, -1.0, ev(types.NoKey))
	})
	t.Run("folded two-valued or maps false to 0", func(t *testing.T) {
		n := NewBooleanLogical(Or, False, False)
		s := n.Simplify()
		require.True(t, s.IsConstant())
		assert.Equal(t, -1.0, n.EvalDouble(types.NoKey))
		assert.Equal(t, 0.0, s.EvalDouble(types.NoKey))
		assert.Equal(t, n.EvalBoolean(types.NoKey), s.EvalBoolean(types.NoKey))
		assert.Equal(t, n.EvalNullable(types.NoKey), s.EvalNullable(types.NoKey))
		assert.Equal(t, n.EvalInteger(types.NoKey), s.EvalInteger(types.NoKey))
	})
	t.Run("nullable or maps false to 0", func(t *testing.T) {
		assert.Equal(t, 0.0, or(False, False).EvalDouble(types.NoKey))
	})
	t.Run("two-valued and maps false to 0", func(t *testing.T) {
		assert.Equal(t, 0.0, NewBooleanLogical(And, True, False).EvalDouble(types.NoKey))
	})
	t.Run("narrowed or keeps the legacy mapping", func(t *testing.T) {
		x := doubles("x", 1, 5)
		y := doubles("y", 2, 3)
		s := or(gt(x, y), gt(x, NewInteger(10))).Simplify()
		require.Equal(t, types.Boolean, s.Type())
		assert.Equal(t, -1.0, s.EvalDouble(types.IndexKey(0)))
		assert.Equal(t, 1.0, s.EvalDouble(types.IndexKey(1)))
	})
}

func TestLogicalConstructors(t *testing.T) {
	n := NewParallelLogical(Or, True, False)
	assert.True(t, n.Parallel())
	assert.True(t, n.Nullable())
	assert.Equal(t, types.BooleanNullable, n.Type())
	assert.Equal(t, types.Boolean, NewBooleanLogical(Or, True, False).Type())

	w := n.WithLeft(Unknown)
	assert.Same(t, True, n.Left())
	assert.Same(t, Unknown, w.Left())
	assert.True(t, w.Parallel())

	assert.PanicsWithError(t, "unknown logical operator: ADD", func() { NewLogical(Add, True, False) })
}
