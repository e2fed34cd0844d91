package expr

import (
	"math"
	"testing"

	"github.com/rulego/signalexpr/types"
	"github.com/rulego/signalexpr/utils/cast"
	"github.com/stretchr/testify/assert"
)

// seq is an index-keyed leaf over a fixed slice. Positions outside the slice
// and invalid keys read as NaN.
type seq struct {
	name    string
	values  []float64
	typ     types.ExpressionType
	draw    bool
	persist bool
}

func doubles(name string, values ...float64) *seq {
	return &seq{name: name, values: values, typ: types.Double}
}

func integers(name string, values ...float64) *seq {
	return &seq{name: name, values: values, typ: types.Integer}
}

func nullables(name string, values ...float64) *seq {
	return &seq{name: name, values: values, typ: types.BooleanNullable}
}

func (s *seq) Type() types.ExpressionType { return s.typ }
func (s *seq) IsConstant() bool           { return false }
func (s *seq) Simplify() Node             { return s }
func (s *seq) Children() []Node           { return nil }
func (s *seq) ShouldPersist() bool        { return s.persist }
func (s *seq) ShouldDraw() bool           { return s.draw }
func (s *seq) String() string             { return s.name }

func (s *seq) EvalDouble(k types.Key) float64 {
	if !k.Valid() || k.Kind() != types.KeyIndex || k.Index() < 0 || k.Index() >= len(s.values) {
		return math.NaN()
	}
	return s.values[k.Index()]
}

func (s *seq) EvalInteger(k types.Key) int64 { return cast.DoubleToInteger(s.EvalDouble(k)) }

func (s *seq) EvalBoolean(k types.Key) bool { return cast.DoubleToBool(s.EvalDouble(k)) }

func (s *seq) EvalNullable(k types.Key) types.Bool3 { return cast.DoubleToBool3(s.EvalDouble(k)) }

// indexProvider steps back along integer keys.
type indexProvider struct {
	name string
}

func newIndexProvider(name string) *indexProvider { return &indexProvider{name: name} }

func (p *indexProvider) PreviousKey(k types.Key, lag int) types.Key {
	if k.Kind() != types.KeyIndex || !k.Valid() || k.Index()-lag < 0 {
		return types.InvalidKey(k.Kind())
	}
	return types.IndexKey(k.Index() - lag)
}

func (p *indexProvider) EvalDouble(n Node, k types.Key) float64 { return n.EvalDouble(k) }

// explosive fails the test run if anything evaluates it.
type explosive struct{}

func (explosive) Type() types.ExpressionType { return types.BooleanNullable }
func (explosive) IsConstant() bool           { return false }
func (e explosive) Simplify() Node           { return e }
func (explosive) Children() []Node           { return nil }
func (explosive) ShouldPersist() bool        { return false }
func (explosive) ShouldDraw() bool           { return false }
func (explosive) String() string             { return "boom" }

func (explosive) EvalDouble(types.Key) float64       { panic("evaluated") }
func (explosive) EvalInteger(types.Key) int64        { panic("evaluated") }
func (explosive) EvalBoolean(types.Key) bool         { panic("evaluated") }
func (explosive) EvalNullable(types.Key) types.Bool3 { panic("evaluated") }

func add(l, r Node) Node { return NewBinary(Add, l, r) }
func mul(l, r Node) Node { return NewBinary(Multiply, l, r) }
func sub(l, r Node) Node { return NewBinary(Subtract, l, r) }
func gt(l, r Node) Node  { return NewBinary(GreaterThan, l, r) }
func and(l, r Node) Node { return NewLogical(And, l, r) }
func or(l, r Node) Node  { return NewLogical(Or, l, r) }

func assertSameValue(t *testing.T, want, got float64, msgAndArgs ...interface{}) {
	t.Helper()
	if math.IsNaN(want) {
		assert.True(t, math.IsNaN(got), msgAndArgs...)
		return
	}
	assert.Equal(t, want, got, msgAndArgs...)
}

func recovered(f func()) (v interface{}) {
	defer func() { v = recover() }()
	f()
	return nil
}
