package glsl

// reservedWords holds GLSL keywords, reserved words and the names of
// commonly available built-in functions. User identifiers that collide
// with an entry are escaped before emission.
var reservedWords = map[string]struct{}{
	// Keywords
	"attribute": {}, "const": {}, "uniform": {}, "varying": {},
	"buffer": {}, "shared": {}, "coherent": {}, "volatile": {},
	"restrict": {}, "readonly": {}, "writeonly": {}, "atomic_uint": {},
	"layout": {}, "centroid": {}, "flat": {}, "smooth": {},
	"noperspective": {}, "patch": {}, "sample": {}, "break": {},
	"continue": {}, "do": {}, "for": {}, "while": {}, "switch": {},
	"case": {}, "default": {}, "if": {}, "else": {}, "subroutine": {},
	"in": {}, "out": {}, "inout": {}, "float": {}, "double": {},
	"int": {}, "void": {}, "bool": {}, "true": {}, "false": {},
	"invariant": {}, "precise": {}, "discard": {}, "return": {},
	"mat2": {}, "mat3": {}, "mat4": {}, "vec2": {}, "vec3": {},
	"vec4": {}, "ivec2": {}, "ivec3": {}, "ivec4": {}, "bvec2": {},
	"bvec3": {}, "bvec4": {}, "uint": {}, "uvec2": {}, "uvec3": {},
	"uvec4": {}, "lowp": {}, "mediump": {}, "highp": {},
	"precision": {}, "sampler2D": {}, "sampler3D": {},
	"samplerCube": {}, "sampler2DShadow": {}, "samplerCubeShadow": {},
	"sampler2DArray": {}, "sampler2DArrayShadow": {}, "isampler2D": {},
	"isampler3D": {}, "isamplerCube": {}, "isampler2DArray": {},
	"usampler2D": {}, "usampler3D": {}, "usamplerCube": {},
	"usampler2DArray": {}, "struct": {},

	// Reserved for future use
	"common": {}, "partition": {}, "active": {}, "asm": {},
	"class": {}, "union": {}, "enum": {}, "typedef": {},
	"template": {}, "this": {}, "resource": {}, "goto": {},
	"inline": {}, "noinline": {}, "public": {}, "static": {},
	"extern": {}, "external": {}, "interface": {}, "long": {},
	"short": {}, "half": {}, "fixed": {}, "unsigned": {},
	"superp": {}, "input": {}, "output": {}, "filter": {},
	"sizeof": {}, "cast": {}, "namespace": {}, "using": {},

	// Built-in functions user code may otherwise shadow
	"texture": {}, "mix": {}, "main": {},
}

// escapeName rewrites identifiers that collide with GLSL spellings.
// The reserved cer_ prefix makes the result collision-free.
func escapeName(name string) string {
	if _, ok := reservedWords[name]; ok {
		return "cer_" + name
	}
	return name
}
