package glsl

import (
	"strconv"

	"github.com/cemderv/cerlib-sub001/shading"
)

// Version identifies a GLSL profile.
type Version struct {
	Number int
	ES     bool
}

// The two profiles the sprite pipeline targets.
var (
	// Version140 is desktop OpenGL 3.1.
	Version140 = Version{Number: 140}

	// VersionES300 is OpenGL ES 3.0 / WebGL 2.0.
	VersionES300 = Version{Number: 300, ES: true}
)

// String returns the version directive value.
func (v Version) String() string {
	s := strconv.Itoa(v.Number)
	if v.ES {
		s += " es"
	}
	return s
}

// Options control code generation.
type Options struct {
	// Version selects the GLSL profile. Defaults to Version140.
	Version Version

	// EntryPoint names the shader function to emit. Defaults to "main".
	EntryPoint string

	// Minify suppresses indentation and all newlines except the one
	// terminating the version directive.
	Minify bool
}

// DefaultOptions returns options targeting desktop GLSL.
func DefaultOptions() *Options {
	return &Options{
		Version:    Version140,
		EntryPoint: "main",
	}
}

// Output is the result of generating GLSL for one entry point.
type Output struct {
	// Code is the complete fragment shader source.
	Code string

	// EntryPoint is the shader function the code was generated for.
	EntryPoint *shading.FunctionDecl

	// Params lists the shader parameters the entry point accesses,
	// non-resource parameters first, each group in declaration order.
	Params []*shading.ShaderParamDecl
}

// Generate emits a GLSL fragment shader for one entry point of a
// verified AST.
func Generate(ast *shading.AST, options *Options) (*Output, error) {
	if options == nil {
		options = DefaultOptions()
	}
	entryName := options.EntryPoint
	if entryName == "" {
		entryName = "main"
	}
	version := options.Version
	if version.Number == 0 {
		version = Version140
	}

	if !ast.IsVerified() {
		return nil, &shading.Diagnostic{
			Kind:    shading.ShaderError,
			Message: "the shader must be verified before code generation",
		}
	}

	entry := ast.EntryPoint(entryName)
	if entry == nil {
		return nil, &shading.Diagnostic{
			Kind:    shading.ShaderError,
			Message: "shader entry point '" + entryName + "' not found",
		}
	}

	w := newWriter(ast, entry, version, options.Minify)
	if err := w.writeModule(); err != nil {
		return nil, err
	}

	return &Output{
		Code:       w.String(),
		EntryPoint: entry,
		Params:     w.params,
	}, nil
}
