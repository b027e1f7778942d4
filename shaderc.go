// Package shaderc compiles cerlib sprite shaders to GLSL.
//
// The cerlib shading language is a small C-family language for writing
// sprite fragment shaders. shaderc compiles it to GLSL for two targets:
//   - GLSLDesktop: #version 140 for OpenGL 3.1+
//   - GLSLES: #version 300 es for OpenGL ES 3.0 / WebGL 2.0
//
// The package provides a single high-level entry point as well as
// access to the individual compilation stages.
//
// Example usage:
//
//	source := `
//	float Saturation = 1.0;
//
//	Vector4 main() {
//	    var color = sample(sprite_image, sprite_uv) * sprite_color;
//	    return color * Saturation;
//	}
//	`
//	result, err := shaderc.Compile(source, "sprite.shd", shaderc.GLSLDesktop, "main", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.GLSLSource)
//
// For stage-level access, use the shading and glsl packages:
//
//	tokens, _ := shading.Lex(source, "sprite.shd", true)
//	ast, _ := shading.Parse(tokens)
//	_ = shading.Verify(ast)
//	shading.Optimize(ast)
//	out, _ := glsl.Generate(ast, glsl.DefaultOptions())
package shaderc

import (
	"github.com/cemderv/cerlib-sub001/glsl"
	"github.com/cemderv/cerlib-sub001/shading"
)

// Target selects the GLSL profile to compile for.
type Target uint8

const (
	// GLSLDesktop targets desktop OpenGL (#version 140).
	GLSLDesktop Target = iota

	// GLSLES targets OpenGL ES 3.0 (#version 300 es).
	GLSLES
)

// String returns the target's name.
func (t Target) String() string {
	if t == GLSLES {
		return "glsl-es"
	}
	return "glsl-desktop"
}

// version returns the GLSL profile for the target.
func (t Target) version() glsl.Version {
	if t == GLSLES {
		return glsl.VersionES300
	}
	return glsl.Version140
}

// Result is the output of a successful compilation.
type Result struct {
	// GLSLSource is the complete fragment shader text.
	GLSLSource string

	// EntryPoint is the compiled shader function.
	EntryPoint *shading.FunctionDecl

	// Parameters lists the shader parameters the entry point accesses,
	// non-resource parameters first, each group in declaration order.
	// Hosts bind uniform values in this order.
	Parameters []*shading.ShaderParamDecl
}

// Compile runs the full pipeline on a shader source: lexing, parsing,
// verification, optimization and GLSL generation. On failure it returns
// a *shading.Diagnostic carrying the source location and message.
func Compile(source, filename string, target Target, entryPoint string, minify bool) (*Result, error) {
	if entryPoint == "" {
		entryPoint = "main"
	}

	tokens, err := shading.Lex(source, filename, true)
	if err != nil {
		return nil, attachSource(err, source)
	}

	ast, err := shading.Parse(tokens)
	if err != nil {
		return nil, attachSource(err, source)
	}

	if err := shading.Verify(ast); err != nil {
		return nil, attachSource(err, source)
	}
	shading.Optimize(ast)

	output, err := glsl.Generate(ast, &glsl.Options{
		Version:    target.version(),
		EntryPoint: entryPoint,
		Minify:     minify,
	})
	if err != nil {
		return nil, attachSource(err, source)
	}

	return &Result{
		GLSLSource: output.Code,
		EntryPoint: output.EntryPoint,
		Parameters: output.Params,
	}, nil
}

// attachSource stores the source text on a diagnostic so that callers
// can render the offending line with context.
func attachSource(err error, source string) error {
	if diag, ok := err.(*shading.Diagnostic); ok {
		diag.Source = source
	}
	return err
}
