package shading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, source string) *AST {
	t.Helper()
	tokens, err := Lex(source, "test.shd", true)
	require.NoError(t, err)
	ast, err := Parse(tokens)
	require.NoError(t, err)
	return ast
}

func parseErr(t *testing.T, source string) *Diagnostic {
	t.Helper()
	tokens, err := Lex(source, "test.shd", true)
	require.NoError(t, err)
	_, err = Parse(tokens)
	require.Error(t, err)
	diag, ok := err.(*Diagnostic)
	require.True(t, ok)
	return diag
}

func TestParseStructDecl(t *testing.T) {
	ast := parse(t, `
struct Material {
    Vector4 tint;
    float shininess;
}
`)
	require.Len(t, ast.Decls, 1)

	st, ok := ast.Decls[0].(*StructDecl)
	require.True(t, ok)
	assert.Equal(t, "Material", st.Name)
	require.Len(t, st.Fields, 2)
	assert.Equal(t, "tint", st.Fields[0].Name)
	assert.Equal(t, "shininess", st.Fields[1].Name)
}

func TestParseShaderParams(t *testing.T) {
	ast := parse(t, `
float Scale = 2.0;
Image Background;
float[4] Weights;
`)
	require.Len(t, ast.Decls, 3)

	scale, ok := ast.Decls[0].(*ShaderParamDecl)
	require.True(t, ok)
	assert.Equal(t, "Scale", scale.Name)
	assert.NotNil(t, scale.DefaultValue)

	bg, ok := ast.Decls[1].(*ShaderParamDecl)
	require.True(t, ok)
	assert.Nil(t, bg.DefaultValue)

	weights, ok := ast.Decls[2].(*ShaderParamDecl)
	require.True(t, ok)
	_, ok = weights.Type.(*ArrayType)
	assert.True(t, ok)
}

func TestParseConstGlobal(t *testing.T) {
	ast := parse(t, "const N = 2 + 3 * 4;")
	require.Len(t, ast.Decls, 1)

	c, ok := ast.Decls[0].(*VarDecl)
	require.True(t, ok)
	assert.True(t, c.IsConst)
	assert.Equal(t, "N", c.Name)
}

func TestParseMutableGlobalRejected(t *testing.T) {
	diag := parseErr(t, "var x = 1;")
	assert.Equal(t, ParseError, diag.Kind)
	assert.Contains(t, diag.Message, "mutable global")
}

func TestParseFunction(t *testing.T) {
	ast := parse(t, `
float double(float x) {
    return x * 2.0;
}

Vector4 main() {
    return Vector4(double(0.5));
}
`)
	require.Len(t, ast.Decls, 2)

	fn := ast.Decls[0].(*FunctionDecl)
	assert.Equal(t, FunctionNormal, fn.Kind)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, "x", fn.Params[0].Name)

	entry := ast.Decls[1].(*FunctionDecl)
	assert.Equal(t, FunctionShader, entry.Kind)
}

func TestParsePrecedence(t *testing.T) {
	ast := parse(t, "const N = 2 + 3 * 4;")
	c := ast.Decls[0].(*VarDecl)

	// The tree must be 2 + (3 * 4).
	add, ok := c.Value.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, OpAdd, add.Op)

	mul, ok := add.Rhs.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, OpMultiply, mul.Op)
}

func TestParseMemberAccessBindsTightest(t *testing.T) {
	ast := parse(t, `
Vector4 main() {
    return sprite_color.xyzw * sprite_color;
}
`)
	body := ast.Decls[0].(*FunctionDecl).Body
	ret := body.Stmts[0].(*ReturnStmt)

	mul, ok := ret.Value.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, OpMultiply, mul.Op)

	access, ok := mul.Lhs.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, OpMemberAccess, access.Op)
}

func TestParseUnaryOverMemberAccess(t *testing.T) {
	ast := parse(t, `
Vector4 main() {
    return Vector4(-sprite_color.x);
}
`)
	body := ast.Decls[0].(*FunctionDecl).Body
	ret := body.Stmts[0].(*ReturnStmt)

	call, ok := ret.Value.(*FunctionCallExpr)
	require.True(t, ok)

	// The negation applies to the member, not the object.
	neg, ok := call.Args[0].(*UnaryExpr)
	require.True(t, ok)
	assert.Equal(t, UnaryNegate, neg.Op)

	access, ok := neg.Operand.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, OpMemberAccess, access.Op)
}

func TestParseTernary(t *testing.T) {
	ast := parse(t, `
Vector4 main() {
    var v = true ? 1.0 : 2.0;
    return Vector4(v);
}
`)
	body := ast.Decls[0].(*FunctionDecl).Body
	v := body.Stmts[0].(*VarStmt)
	assert.True(t, isa[*TernaryExpr](v.Decl.Value))
}

func TestParseStructCtor(t *testing.T) {
	ast := parse(t, `
Vector4 main() {
    var m = Material { tint = sprite_color, shininess = 1.0 };
    return m.tint;
}
`)
	body := ast.Decls[0].(*FunctionDecl).Body
	v := body.Stmts[0].(*VarStmt)

	ctor, ok := v.Decl.Value.(*StructCtorCall)
	require.True(t, ok)
	require.Len(t, ctor.Args, 2)
	assert.Equal(t, "tint", ctor.Args[0].Name)
	assert.Equal(t, "shininess", ctor.Args[1].Name)
}

func TestParseDuplicateCtorField(t *testing.T) {
	diag := parseErr(t, `
Vector4 main() {
    var m = Material { tint = sprite_color, tint = sprite_color };
    return m.tint;
}
`)
	assert.Equal(t, ParseError, diag.Kind)
	assert.Contains(t, diag.Message, "duplicate field")
}

func TestParseForLoop(t *testing.T) {
	ast := parse(t, `
Vector4 main() {
    var sum = 0.0;
    for (i in 0..4) {
        sum += 1.0;
    }
    return Vector4(sum);
}
`)
	body := ast.Decls[0].(*FunctionDecl).Body
	loop, ok := body.Stmts[1].(*ForStmt)
	require.True(t, ok)
	assert.Equal(t, "i", loop.Variable.Name)
	require.Len(t, loop.Body.Stmts, 1)
	assert.True(t, isa[*CompoundStmt](loop.Body.Stmts[0]))
}

func TestParseIfElseChain(t *testing.T) {
	ast := parse(t, `
Vector4 main() {
    var v = 0.0;
    if (v < 1.0) {
        v = 1.0;
    } else if (v < 2.0) {
        v = 2.0;
    } else {
        v = 3.0;
    }
    return Vector4(v);
}
`)
	body := ast.Decls[0].(*FunctionDecl).Body
	chain, ok := body.Stmts[1].(*IfStmt)
	require.True(t, ok)
	require.NotNil(t, chain.Next)
	assert.NotNil(t, chain.Next.Condition)
	require.NotNil(t, chain.Next.Next)
	assert.Nil(t, chain.Next.Next.Condition)
}

func TestParseEOFReportsConstructStart(t *testing.T) {
	diag := parseErr(t, "Vector4 main() {\n    return sprite_color;")
	assert.Equal(t, ParseError, diag.Kind)
	assert.Contains(t, diag.Message, "unexpected end of file")
	// Reported at the opening of the unterminated block, not at EOF.
	assert.Equal(t, 1, diag.Location.Line)
}

func TestParseSubscript(t *testing.T) {
	ast := parse(t, `
Vector4 main() {
    return Vector4(Weights[2]);
}
`)
	body := ast.Decls[0].(*FunctionDecl).Body
	ret := body.Stmts[0].(*ReturnStmt)
	call := ret.Value.(*FunctionCallExpr)
	assert.True(t, isa[*SubscriptExpr](call.Args[0]))
}
