package shading

// Builtins holds the synthesized declarations available to every
// compilation: vector constructors, intrinsic functions and the sprite
// system values. A fresh set is created per compilation so that
// verification state on the declarations never leaks between runs.
type Builtins struct {
	Functions    []*FunctionDecl
	SystemValues []*VarDecl
}

// genTypes are the types most intrinsics are overloaded over.
var genTypes = []Type{FloatType, Vector2Type, Vector3Type, Vector4Type}

// NewBuiltins creates the built-in declaration set.
func NewBuiltins() *Builtins {
	b := &Builtins{}

	b.addVectorCtors()
	b.addIntrinsics()
	b.addSystemValues()

	return b
}

// register adds every built-in declaration to the given scope.
func (b *Builtins) register(scope *Scope) {
	for _, fn := range b.Functions {
		scope.AddSymbol(fn.Name, fn)
	}
	for _, sv := range b.SystemValues {
		scope.AddSymbol(sv.Name, sv)
	}
}

// ctor creates a synthesized vector constructor overload. Constructors
// accept compile-time constant integer arguments in float slots.
func (b *Builtins) ctor(result Type, paramTypes ...Type) {
	fn := &FunctionDecl{
		Name:               result.TypeName(),
		ReturnType:         result,
		IsStructCtor:       true,
		AllowsImplicitCast: true,
	}
	for i, pt := range paramTypes {
		fn.Params = append(fn.Params, &FunctionParamDecl{
			Name: ctorParamNames[i],
			Type: pt,
		})
	}
	b.Functions = append(b.Functions, fn)
}

var ctorParamNames = []string{"x", "y", "z", "w"}

// intrinsic creates one overload of a built-in function. glslName, when
// non-empty, is the spelling emitted in GLSL output.
func (b *Builtins) intrinsic(name, glslName string, result Type, paramTypes ...Type) {
	fn := &FunctionDecl{
		Name:       name,
		ReturnType: result,
		glslName:   glslName,
	}
	for i, pt := range paramTypes {
		fn.Params = append(fn.Params, &FunctionParamDecl{
			Name: intrinsicParamNames[i],
			Type: pt,
		})
	}
	b.Functions = append(b.Functions, fn)
}

var intrinsicParamNames = []string{"a", "b", "c"}

func (b *Builtins) addVectorCtors() {
	b.ctor(Vector2Type, FloatType)
	b.ctor(Vector2Type, FloatType, FloatType)

	b.ctor(Vector3Type, FloatType)
	b.ctor(Vector3Type, FloatType, FloatType, FloatType)
	b.ctor(Vector3Type, Vector2Type, FloatType)
	b.ctor(Vector3Type, FloatType, Vector2Type)

	b.ctor(Vector4Type, FloatType)
	b.ctor(Vector4Type, FloatType, FloatType, FloatType, FloatType)
	b.ctor(Vector4Type, Vector2Type, FloatType, FloatType)
	b.ctor(Vector4Type, FloatType, FloatType, Vector2Type)
	b.ctor(Vector4Type, Vector2Type, Vector2Type)
	b.ctor(Vector4Type, Vector3Type, FloatType)
	b.ctor(Vector4Type, FloatType, Vector3Type)
}

func (b *Builtins) addIntrinsics() {
	// Componentwise unary math over float and vectors
	unary := []string{
		"sin", "cos", "tan", "asin", "acos", "atan",
		"ceil", "floor", "round", "fract",
		"degrees", "radians",
		"exp", "exp2", "log", "log2", "sqrt",
		"normalize",
	}
	for _, name := range unary {
		for _, t := range genTypes {
			if name == "normalize" && t == FloatType {
				continue
			}
			b.intrinsic(name, "", t, t)
		}
	}

	// abs and sign additionally cover int
	for _, name := range []string{"abs", "sign"} {
		b.intrinsic(name, "", IntType, IntType)
		for _, t := range genTypes {
			b.intrinsic(name, "", t, t)
		}
	}

	// Componentwise binary math
	for _, name := range []string{"pow", "mod"} {
		for _, t := range genTypes {
			b.intrinsic(name, "", t, t, t)
		}
	}
	for _, t := range genTypes[1:] {
		b.intrinsic("mod", "", t, t, FloatType)
	}

	b.intrinsic("min", "", IntType, IntType, IntType)
	b.intrinsic("max", "", IntType, IntType, IntType)
	for _, t := range genTypes {
		b.intrinsic("min", "", t, t, t)
		b.intrinsic("max", "", t, t, t)
	}

	b.intrinsic("atan2", "atan", FloatType, FloatType, FloatType)
	for _, t := range genTypes[1:] {
		b.intrinsic("atan2", "atan", t, t, t)
	}

	// clamp and lerp
	b.intrinsic("clamp", "", IntType, IntType, IntType, IntType)
	for _, t := range genTypes {
		b.intrinsic("clamp", "", t, t, t, t)
	}
	for _, t := range genTypes[1:] {
		b.intrinsic("clamp", "", t, t, FloatType, FloatType)
	}
	for _, t := range genTypes {
		b.intrinsic("lerp", "mix", t, t, t, t)
	}
	for _, t := range genTypes[1:] {
		b.intrinsic("lerp", "mix", t, t, t, FloatType)
	}

	// Geometric functions
	for _, t := range genTypes[1:] {
		b.intrinsic("length", "", FloatType, t)
		b.intrinsic("distance", "", FloatType, t, t)
		b.intrinsic("dot", "", FloatType, t, t)
	}
	b.intrinsic("cross", "", Vector3Type, Vector3Type, Vector3Type)

	// Texture sampling
	b.intrinsic("sample", "texture", Vector4Type, ImageType, Vector2Type)
}

// addSystemValues creates the implicit sprite inputs. Their GLSL
// spellings are the interpolated varyings and the bound sprite sampler.
func (b *Builtins) addSystemValues() {
	sv := func(name string, t Type, glslName string) {
		b.SystemValues = append(b.SystemValues, &VarDecl{
			Name:            name,
			Type:            t,
			IsConst:         true,
			SystemValueName: glslName,
			isVerified:      true,
		})
	}

	sv("sprite_color", Vector4Type, "cer_v2f_Color")
	sv("sprite_uv", Vector2Type, "cer_v2f_UV")
	sv("sprite_image", ImageType, "SpriteImage")
}
