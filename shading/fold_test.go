package shading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// foldConst verifies a source with a single const global named C and
// returns its folded value.
func foldConst(t *testing.T, expr string) *ConstantValue {
	t.Helper()
	ast := verifySource(t, "const C = "+expr+";\n\nVector4 main() {\n    return sprite_color;\n}\n")
	c := ast.Decls[0].(*VarDecl)
	require.NotNil(t, c.FoldedValue)
	return c.FoldedValue
}

func foldErr(t *testing.T, expr string) *Diagnostic {
	t.Helper()
	diag := verifyErr(t, "const C = "+expr+";\n\nVector4 main() {\n    return sprite_color;\n}\n")
	return diag
}

func TestFoldIntArithmetic(t *testing.T) {
	tests := []struct {
		expr string
		want int64
	}{
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"7 / 2", 3},
		{"-5 + 1", -4},
		{"1 << 4", 16},
		{"0xFF & 0x0F", 15},
		{"6 | 1", 7},
		{"5 ^ 1", 4},
	}
	for _, tt := range tests {
		v := foldConst(t, tt.expr)
		assert.Equal(t, ConstantInt, v.Kind, tt.expr)
		assert.Equal(t, tt.want, v.Int, tt.expr)
	}
}

func TestFoldFloatArithmetic(t *testing.T) {
	v := foldConst(t, "1.5 * 2.0 + 0.25")
	assert.Equal(t, ConstantFloat, v.Kind)
	assert.InDelta(t, 3.25, v.Float, 1e-9)
}

func TestFoldBoolLogic(t *testing.T) {
	v := foldConst(t, "true && (1 < 2)")
	assert.Equal(t, ConstantBool, v.Kind)
	assert.True(t, v.Bool)

	v = foldConst(t, "false || 3 == 4")
	assert.False(t, v.Bool)
}

func TestFoldTernary(t *testing.T) {
	v := foldConst(t, "2 > 1 ? 10 : 20")
	assert.Equal(t, int64(10), v.Int)
}

func TestFoldConstReference(t *testing.T) {
	ast := verifySource(t, `
const A = 6;
const B = A * 7;

Vector4 main() {
    return sprite_color;
}
`)
	b := ast.Decls[1].(*VarDecl)
	require.NotNil(t, b.FoldedValue)
	assert.Equal(t, int64(42), b.FoldedValue.Int)
}

func TestFoldVectorCtor(t *testing.T) {
	v := foldConst(t, "Vector3(1.0, 2.0, 3.0)")
	assert.Equal(t, ConstantVector, v.Kind)
	assert.Equal(t, []float64{1, 2, 3}, v.Vector)
}

func TestFoldVectorSplat(t *testing.T) {
	v := foldConst(t, "Vector4(0.5)")
	assert.Equal(t, ConstantVector, v.Kind)
	assert.Equal(t, []float64{0.5, 0.5, 0.5, 0.5}, v.Vector)
}

func TestFoldDivisionByZero(t *testing.T) {
	diag := foldErr(t, "1 / 0")
	assert.Equal(t, EvaluationError, diag.Kind)
	assert.Contains(t, diag.Message, "division by zero")
}

func TestFoldShiftOutOfRange(t *testing.T) {
	diag := foldErr(t, "1 << 64")
	assert.Equal(t, EvaluationError, diag.Kind)
	assert.Contains(t, diag.Message, "out of range")
}

func TestFoldUnsignedNotImplemented(t *testing.T) {
	diag := foldErr(t, "34u")
	assert.Equal(t, EvaluationError, diag.Kind)
	assert.Contains(t, diag.Message, "unsigned constant evaluation is not implemented")
}

func TestFoldArraySizeBounds(t *testing.T) {
	verifySource(t, "float[255] W;\n\nVector4 main() {\n    return sprite_color;\n}\n")

	for _, size := range []string{"0", "256", "-1"} {
		diag := verifyErr(t, "float["+size+"] W;\n\nVector4 main() {\n    return sprite_color;\n}\n")
		assert.Equal(t, EvaluationError, diag.Kind, size)
	}
}
