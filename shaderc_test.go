package shaderc_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shaderc "github.com/cemderv/cerlib-sub001"
	"github.com/cemderv/cerlib-sub001/shading"
)

const grayscaleShader = `
float Strength = 1.0;

Vector4 main() {
    var color = sample(sprite_image, sprite_uv) * sprite_color;
    var gray = dot(color.xyz, Vector3(0.299, 0.587, 0.114));
    var mixed = lerp(color.xyz, Vector3(gray), Strength);
    return Vector4(mixed, color.w);
}
`

func TestCompileDesktop(t *testing.T) {
	result, err := shaderc.Compile(grayscaleShader, "grayscale.shd", shaderc.GLSLDesktop, "main", false)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.GLSLSource, "#version 140\n"))
	assert.Contains(t, result.GLSLSource, "uniform float Strength;")
	assert.Contains(t, result.GLSLSource, "mix(")
	assert.Contains(t, result.GLSLSource, "texture(SpriteImage, cer_v2f_UV)")
	assert.Equal(t, "main", result.EntryPoint.Name)

	require.Len(t, result.Parameters, 1)
	assert.Equal(t, "Strength", result.Parameters[0].Name)
}

func TestCompileES(t *testing.T) {
	result, err := shaderc.Compile(grayscaleShader, "grayscale.shd", shaderc.GLSLES, "main", false)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.GLSLSource, "#version 300 es\n"))
}

func TestCompileParameterOrdering(t *testing.T) {
	source := `
Image Overlay;
float Opacity;
Image Mask;

Vector4 main() {
    var base = sample(sprite_image, sprite_uv);
    var over = sample(Overlay, sprite_uv);
    var mask = sample(Mask, sprite_uv).x;
    return lerp(base, over, Opacity * mask) * sprite_color;
}
`
	result, err := shaderc.Compile(source, "blend.shd", shaderc.GLSLDesktop, "main", false)
	require.NoError(t, err)

	names := make([]string, 0, len(result.Parameters))
	for _, p := range result.Parameters {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Opacity", "Overlay", "Mask"}, names)
}

func TestCompileReservedPrefixFails(t *testing.T) {
	source := `
float cer_strength;

Vector4 main() {
    return sprite_color * cer_strength;
}
`
	_, err := shaderc.Compile(source, "bad.shd", shaderc.GLSLDesktop, "main", false)
	require.Error(t, err)

	diag, ok := err.(*shading.Diagnostic)
	require.True(t, ok)
	assert.Equal(t, shading.NameError, diag.Kind)
	assert.Equal(t, source, diag.Source)
	assert.Contains(t, diag.FormatWithContext(), "float cer_strength;")
}

func TestCompileDiagnosticFormat(t *testing.T) {
	_, err := shaderc.Compile("Vector4 main() {\n    return undefined_thing;\n}\n", "fx.shd", shaderc.GLSLDesktop, "main", false)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "fx.shd(2, 12): error: "))
}

func TestCompileDefaultEntryPoint(t *testing.T) {
	result, err := shaderc.Compile("Vector4 main() {\n    return sprite_color;\n}\n", "fx.shd", shaderc.GLSLDesktop, "", false)
	require.NoError(t, err)
	assert.Equal(t, "main", result.EntryPoint.Name)
}

func TestCompileMinify(t *testing.T) {
	result, err := shaderc.Compile("Vector4 main() {\n    return sprite_color;\n}\n", "fx.shd", shaderc.GLSLDesktop, "main", true)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(result.GLSLSource, "\n"))
}
