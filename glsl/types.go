package glsl

import (
	"strconv"

	"github.com/cemderv/cerlib-sub001/shading"
)

// typeName returns the GLSL spelling of a shading language type. Array
// types return their element's spelling; the `[N]` suffix attaches to
// the declared name instead.
func typeName(t shading.Type) string {
	switch tt := t.(type) {
	case *shading.PrimitiveType:
		return primitiveName(tt)
	case *shading.ArrayType:
		return typeName(tt.Element)
	case *shading.StructDecl:
		return escapeName(tt.Name)
	default:
		return t.TypeName()
	}
}

func primitiveName(t *shading.PrimitiveType) string {
	switch t.Kind {
	case shading.PrimVector2:
		return "vec2"
	case shading.PrimVector3:
		return "vec3"
	case shading.PrimVector4:
		return "vec4"
	case shading.PrimMatrix:
		return "mat4"
	case shading.PrimImage:
		return "sampler2D"
	default:
		return t.TypeName()
	}
}

// arraySuffix returns "[N]" for array types and "" otherwise.
func arraySuffix(t shading.Type) string {
	if arr, ok := t.(*shading.ArrayType); ok {
		return "[" + strconv.Itoa(arr.Size) + "]"
	}
	return ""
}
