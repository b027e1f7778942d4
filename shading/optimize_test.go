package shading

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func optimizeSource(t *testing.T, source string) *AST {
	t.Helper()
	ast := verifySource(t, source)
	Optimize(ast)
	return ast
}

func declNames(ast *AST) []string {
	names := make([]string, 0, len(ast.Decls))
	for _, d := range ast.Decls {
		names = append(names, d.DeclName())
	}
	return names
}

func TestOptimizeRemovesUncalledFunction(t *testing.T) {
	ast := optimizeSource(t, `
float unused(float x) {
    return x * 2.0;
}

Vector4 main() {
    return sprite_color;
}
`)
	if diff := cmp.Diff([]string{"main"}, declNames(ast)); diff != "" {
		t.Errorf("declarations mismatch (-want +got):\n%s", diff)
	}
}

func TestOptimizeKeepsTransitiveCalls(t *testing.T) {
	ast := optimizeSource(t, `
float inner(float x) {
    return x + 1.0;
}

float outer(float x) {
    return inner(x) * 2.0;
}

Vector4 main() {
    return Vector4(outer(0.5));
}
`)
	if diff := cmp.Diff([]string{"inner", "outer", "main"}, declNames(ast)); diff != "" {
		t.Errorf("declarations mismatch (-want +got):\n%s", diff)
	}
}

func TestOptimizeRemovesUnreferencedStruct(t *testing.T) {
	ast := optimizeSource(t, `
struct Unused {
    float x;
}

Vector4 main() {
    return sprite_color;
}
`)
	assert.Equal(t, []string{"main"}, declNames(ast))
}

func TestOptimizeKeepsInputStruct(t *testing.T) {
	ast := optimizeSource(t, `
struct In {
    Vector2 uv;
    Vector4 color;
}

Vector4 main(In Input) {
    return Input.color;
}
`)
	assert.Equal(t, []string{"In", "main"}, declNames(ast))
}

func TestOptimizeRemovesUnusedLocal(t *testing.T) {
	ast := optimizeSource(t, `
Vector4 main() {
    var unused = 1.0;
    var kept = sprite_color;
    return kept;
}
`)
	body := ast.EntryPoint("main").Body
	require.Len(t, body.Stmts, 2)
	assert.Equal(t, "kept", body.Stmts[0].(*VarStmt).Decl.Name)
}

func TestOptimizeRemovesUnusedShaderParam(t *testing.T) {
	ast := optimizeSource(t, `
float Used;
float Unused;

Vector4 main() {
    return sprite_color * Used;
}
`)
	assert.Equal(t, []string{"Used", "main"}, declNames(ast))
}

func TestOptimizeIsIdempotent(t *testing.T) {
	source := `
float unused(float x) {
    return x;
}

Vector4 main() {
    var dead = 2.0;
    return sprite_color;
}
`
	ast := optimizeSource(t, source)
	once := declNames(ast)
	Optimize(ast)
	if diff := cmp.Diff(once, declNames(ast)); diff != "" {
		t.Errorf("second pass changed declarations (-want +got):\n%s", diff)
	}
	assert.True(t, ast.IsOptimized())
}

func TestAccessedParamsOrdering(t *testing.T) {
	ast := optimizeSource(t, `
Image Overlay;
float Strength;
Image Mask;
float Bias;

Vector4 main() {
    var a = sample(Overlay, sprite_uv) * Strength;
    var b = sample(Mask, sprite_uv) * Bias;
    return a + b;
}
`)
	params := AccessedParams(ast, ast.EntryPoint("main"))
	names := make([]string, 0, len(params))
	for _, p := range params {
		names = append(names, p.Name)
	}
	// Non-resource parameters precede images, each in declaration order.
	if diff := cmp.Diff([]string{"Strength", "Bias", "Overlay", "Mask"}, names); diff != "" {
		t.Errorf("parameter order mismatch (-want +got):\n%s", diff)
	}
}

func TestAccessedParamsSkipsUnreferenced(t *testing.T) {
	ast := verifySource(t, `
float Used;
float Unused;

Vector4 main() {
    return sprite_color * Used;
}
`)
	params := AccessedParams(ast, ast.EntryPoint("main"))
	require.Len(t, params, 1)
	assert.Equal(t, "Used", params[0].Name)
}
