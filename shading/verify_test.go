package shading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verifySource(t *testing.T, source string) *AST {
	t.Helper()
	ast := parse(t, source)
	require.NoError(t, Verify(ast))
	return ast
}

func verifyErr(t *testing.T, source string) *Diagnostic {
	t.Helper()
	ast := parse(t, source)
	err := Verify(ast)
	require.Error(t, err)
	diag, ok := err.(*Diagnostic)
	require.True(t, ok)
	return diag
}

func TestVerifyBasicShader(t *testing.T) {
	ast := verifySource(t, `
Vector4 main() {
    return sample(sprite_image, sprite_uv) * sprite_color;
}
`)
	entry := ast.EntryPoint("main")
	require.NotNil(t, entry)
	assert.Equal(t, FunctionShader, entry.Kind)
	assert.Same(t, Vector4Type, entry.ReturnType)

	ret := entry.Body.Stmts[0].(*ReturnStmt)
	assert.Same(t, Vector4Type, ret.Value.ResolvedType())
}

func TestVerifyReservedPrefix(t *testing.T) {
	diag := verifyErr(t, `
float cer_x;

Vector4 main() {
    return Vector4(cer_x);
}
`)
	assert.Equal(t, NameError, diag.Kind)
	assert.Contains(t, diag.Message, "cer_")
}

func TestVerifyUndefinedSymbolSuggestion(t *testing.T) {
	diag := verifyErr(t, `
Vector4 main() {
    return sprite_colr;
}
`)
	assert.Equal(t, NameError, diag.Kind)
	assert.Contains(t, diag.Message, "undefined symbol 'sprite_colr'")
	assert.Contains(t, diag.Message, "did you mean 'sprite_color'?")
}

func TestVerifyUndefinedType(t *testing.T) {
	diag := verifyErr(t, `
Vectr4 main() {
    return sprite_color;
}
`)
	assert.Equal(t, NameError, diag.Kind)
	assert.Contains(t, diag.Message, "undefined type 'Vectr4'")
	assert.Contains(t, diag.Message, "did you mean 'Vector4'?")

	// The struct constructor path reports the same kind.
	diag = verifyErr(t, `
Vector4 main() {
    var m = Materiall { x = 1.0 };
    return sprite_color;
}
`)
	assert.Equal(t, NameError, diag.Kind)
	assert.Contains(t, diag.Message, "undefined type 'Materiall'")
}

func TestVerifyOperatorNotDefined(t *testing.T) {
	diag := verifyErr(t, `
Vector4 main() {
    var v = 1.0 + true;
    return Vector4(v);
}
`)
	assert.Equal(t, TypeError, diag.Kind)
	assert.Contains(t, diag.Message, "operator '+' is not defined between types 'float' and 'bool'")
}

func TestVerifyOverloadNoMatch(t *testing.T) {
	diag := verifyErr(t, `
Vector4 main() {
    var v = abs(true);
    return Vector4(v);
}
`)
	assert.Equal(t, OverloadError, diag.Kind)
	assert.Contains(t, diag.Message, "no overload of 'abs'")
}

func TestVerifyShadersAreNotCallable(t *testing.T) {
	diag := verifyErr(t, `
Vector4 main() {
    return main();
}
`)
	assert.Equal(t, ShaderError, diag.Kind)
	assert.Contains(t, diag.Message, "cannot be called")
}

func TestVerifyMutationErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		message string
	}{
		{
			"const local",
			`Vector4 main() {
			    const v = 1.0;
			    v = 2.0;
			    return Vector4(v);
			}`,
			"cannot assign to constant 'v'",
		},
		{
			"system value",
			`Vector4 main() {
			    sprite_uv = Vector2(0.0, 0.0);
			    return sprite_color;
			}`,
			"cannot assign to system value",
		},
		{
			"loop variable",
			`Vector4 main() {
			    for (i in 0..4) {
			        i = 2;
			    }
			    return sprite_color;
			}`,
			"cannot assign to loop variable",
		},
		{
			"parameter",
			`float f(float x) {
			    x = 1.0;
			    return x;
			}
			Vector4 main() {
			    return Vector4(f(1.0));
			}`,
			"cannot assign to parameter",
		},
		{
			"subscript",
			`float[4] Weights;
			Vector4 main() {
			    Weights[0] = 1.0;
			    return sprite_color;
			}`,
			"subscript assignment is not supported",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diag := verifyErr(t, tt.source)
			assert.Equal(t, MutationError, diag.Kind)
			assert.Contains(t, diag.Message, tt.message)
		})
	}
}

func TestVerifyShaderSignatureErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{
			"too many parameters",
			`struct In { Vector2 uv; Vector4 color; }
			Vector4 main(In a, In b) {
			    return sprite_color;
			}`,
		},
		{
			"wrong parameter name",
			`struct In { Vector2 uv; Vector4 color; }
			Vector4 main(In data) {
			    return sprite_color;
			}`,
		},
		{
			"wrong return type",
			`float main() {
			    return 1.0;
			}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diag := verifyErr(t, tt.source)
			assert.Equal(t, ShaderError, diag.Kind)
		})
	}
}

func TestVerifyMissingTerminalReturn(t *testing.T) {
	diag := verifyErr(t, `
Vector4 main() {
    var v = sprite_color;
}
`)
	assert.Equal(t, ShaderError, diag.Kind)
	assert.Contains(t, diag.Message, "must end with a return statement")
}

func TestVerifyStructReturningShader(t *testing.T) {
	ast := verifySource(t, `
struct Output {
    float intensity;
    Vector4 color;
}

Output main() {
    return Output { intensity = 1.0, color = sprite_color };
}
`)
	entry := ast.EntryPoint("main")
	require.NotNil(t, entry)

	st, ok := entry.ReturnType.(*StructDecl)
	require.True(t, ok)
	assert.Equal(t, "Output", st.Name)
}

func TestVerifyInputStruct(t *testing.T) {
	ast := verifySource(t, `
struct In {
    Vector2 uv;
    Vector4 color;
}

Vector4 main(In Input) {
    return Input.color;
}
`)
	entry := ast.EntryPoint("main")
	require.Len(t, entry.Params, 1)
	assert.True(t, IsUserStructType(entry.Params[0].Type))
}

func TestVerifyNegatedStructMember(t *testing.T) {
	ast := verifySource(t, `
struct In {
    float strength;
    Vector4 color;
}

Vector4 main(In Input) {
    return Input.color * -Input.strength;
}
`)
	entry := ast.EntryPoint("main")
	ret := entry.Body.Stmts[0].(*ReturnStmt)
	assert.Same(t, Vector4Type, ret.Value.ResolvedType())
}

func TestVerifyImplicitConstIntInVectorCtor(t *testing.T) {
	ast := verifySource(t, `
const N = 2 + 3 * 4;

Vector4 main() {
    return Vector4(N, N, N, N);
}
`)
	c := ast.Decls[0].(*VarDecl)
	require.NotNil(t, c.FoldedValue)
	assert.Equal(t, int64(14), c.FoldedValue.Int)
}

func TestVerifySwizzles(t *testing.T) {
	ast := verifySource(t, `
Vector4 main() {
    var uv = sprite_uv.yx;
    var splat = sprite_uv.xxxx;
    var one = sprite_color.w;
    return splat * Vector4(uv, one, 1.0);
}
`)
	body := ast.EntryPoint("main").Body
	assert.Same(t, Vector2Type, body.Stmts[0].(*VarStmt).Decl.Type)
	assert.Same(t, Vector4Type, body.Stmts[1].(*VarStmt).Decl.Type)
	assert.Same(t, FloatType, body.Stmts[2].(*VarStmt).Decl.Type)
}

func TestVerifyInvalidSwizzle(t *testing.T) {
	diag := verifyErr(t, `
Vector4 main() {
    var v = sprite_uv.z;
    return Vector4(v);
}
`)
	assert.Equal(t, TypeError, diag.Kind)
	assert.Contains(t, diag.Message, "invalid swizzle")
}

func TestVerifyForBoundsMustBeInt(t *testing.T) {
	diag := verifyErr(t, `
Vector4 main() {
    for (i in 0.0..4.0) {
    }
    return sprite_color;
}
`)
	assert.Equal(t, TypeError, diag.Kind)
	assert.Contains(t, diag.Message, "for loop bounds")
}

func TestVerifyConditionMustBeBool(t *testing.T) {
	diag := verifyErr(t, `
Vector4 main() {
    if (1) {
    }
    return sprite_color;
}
`)
	assert.Equal(t, TypeError, diag.Kind)
	assert.Contains(t, diag.Message, "'bool'")
}

func TestVerifyArraySizeRange(t *testing.T) {
	diag := verifyErr(t, `
float[300] Weights;

Vector4 main() {
    return sprite_color;
}
`)
	assert.Equal(t, EvaluationError, diag.Kind)
	assert.Contains(t, diag.Message, "out of range")
}

func TestVerifyDuplicateDeclaration(t *testing.T) {
	diag := verifyErr(t, `
float Scale;
float Scale;

Vector4 main() {
    return sprite_color;
}
`)
	assert.Equal(t, NameError, diag.Kind)
	assert.Contains(t, diag.Message, "already declared")
}

func TestVerifyIsIdempotent(t *testing.T) {
	ast := verifySource(t, `
Vector4 main() {
    return sprite_color;
}
`)
	require.NoError(t, Verify(ast))
	assert.True(t, ast.IsVerified())
}

func TestVerifyNoUnresolvedTypesSurvive(t *testing.T) {
	ast := verifySource(t, `
struct In {
    Vector2 uv;
    Vector4 color;
}

float Scale = 1.0;

float brighten(float x) {
    return x * Scale;
}

Vector4 main(In Input) {
    return Input.color * brighten(2.0);
}
`)
	for _, decl := range ast.Decls {
		switch d := decl.(type) {
		case *StructDecl:
			for _, f := range d.Fields {
				assert.False(t, IsUnresolvedType(f.Type))
			}
		case *FunctionDecl:
			assert.False(t, IsUnresolvedType(d.ReturnType))
			for _, p := range d.Params {
				assert.False(t, IsUnresolvedType(p.Type))
			}
		case *ShaderParamDecl:
			assert.False(t, IsUnresolvedType(d.Type))
		}
	}
}
