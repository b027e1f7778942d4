package shading

// StructDecl is a user-defined struct. A struct is both a declaration and
// a type; its synthesized constructor is created during verification.
type StructDecl struct {
	Name     string
	Fields   []*StructFieldDecl
	Location SourceLocation

	// IsBuiltin marks structs synthesized by the compiler rather than
	// declared in user code.
	IsBuiltin bool

	// Ctor is the synthesized constructor function.
	Ctor *FunctionDecl

	isVerified bool
}

func (d *StructDecl) Pos() SourceLocation { return d.Location }
func (d *StructDecl) DeclName() string    { return d.Name }
func (d *StructDecl) declNode()           {}
func (d *StructDecl) TypeName() string    { return d.Name }
func (d *StructDecl) typeNode()           {}

// FindField returns the field with the given name, or nil.
func (d *StructDecl) FindField(name string) *StructFieldDecl {
	for _, f := range d.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// StructFieldDecl is a single named, typed struct field.
type StructFieldDecl struct {
	Name     string
	Type     Type
	Location SourceLocation
	Parent   *StructDecl

	isVerified bool
}

func (d *StructFieldDecl) Pos() SourceLocation { return d.Location }
func (d *StructFieldDecl) DeclName() string    { return d.Name }
func (d *StructFieldDecl) declNode()           {}

// FunctionKind distinguishes ordinary functions from shader entry
// points. A function named "main" is a shader.
type FunctionKind uint8

const (
	FunctionNormal FunctionKind = iota
	FunctionShader
)

// FunctionDecl is a function definition or, when Body is nil, a built-in
// intrinsic.
type FunctionDecl struct {
	Name       string
	Kind       FunctionKind
	Params     []*FunctionParamDecl
	ReturnType Type
	Body       *CodeBlock
	Location   SourceLocation

	// IsStructCtor marks the synthesized constructor of a struct type.
	IsStructCtor bool

	// AllowsImplicitCast permits integer-literal arguments in float
	// parameter slots. Only synthesized vector constructors set it.
	AllowsImplicitCast bool

	// glslName overrides the emitted name for intrinsics whose GLSL
	// equivalent is spelled differently (lerp -> mix).
	glslName string

	isVerified bool
}

func (d *FunctionDecl) Pos() SourceLocation { return d.Location }
func (d *FunctionDecl) DeclName() string    { return d.Name }
func (d *FunctionDecl) declNode()           {}

// IsIntrinsic reports whether the function has no body and is translated
// directly to a target-language primitive.
func (d *FunctionDecl) IsIntrinsic() bool { return d.Body == nil && !d.IsStructCtor }

// GLSLName returns the name the code generator emits for this function.
func (d *FunctionDecl) GLSLName() string {
	if d.glslName != "" {
		return d.glslName
	}
	return d.Name
}

// FunctionParamDecl is a single function parameter.
type FunctionParamDecl struct {
	Name     string
	Type     Type
	Location SourceLocation

	isVerified bool
}

func (d *FunctionParamDecl) Pos() SourceLocation { return d.Location }
func (d *FunctionParamDecl) DeclName() string    { return d.Name }
func (d *FunctionParamDecl) declNode()           {}

// ForLoopVariableDecl is the induction variable of a range-based for
// statement. It is visible only inside the loop body and is immutable.
type ForLoopVariableDecl struct {
	Name     string
	Type     Type
	Location SourceLocation
}

func (d *ForLoopVariableDecl) Pos() SourceLocation { return d.Location }
func (d *ForLoopVariableDecl) DeclName() string    { return d.Name }
func (d *ForLoopVariableDecl) declNode()           {}

// ShaderParamDecl is a top-level shader parameter whose value is supplied
// by the host at draw time. Image parameters use an integer default that
// denotes a binding slot.
type ShaderParamDecl struct {
	Name     string
	Type     Type
	Location SourceLocation

	// DefaultValue is the optional constant default-value expression.
	DefaultValue Expr

	// FoldedDefault is the constant-folded default, set during
	// verification when DefaultValue is present.
	FoldedDefault *ConstantValue

	isVerified bool
}

func (d *ShaderParamDecl) Pos() SourceLocation { return d.Location }
func (d *ShaderParamDecl) DeclName() string    { return d.Name }
func (d *ShaderParamDecl) declNode()           {}

// IsResource reports whether the parameter is an opaque resource (image)
// rather than a scalar-like value.
func (d *ShaderParamDecl) IsResource() bool { return IsImageType(d.Type) }

// VarDecl is a let-style binding: mutable when declared with var,
// immutable when declared with const. System values are synthesized
// immutable bindings backed by implicit shader inputs.
type VarDecl struct {
	Name     string
	Type     Type
	Value    Expr
	IsConst  bool
	Location SourceLocation

	// SystemValueName is the well-known GLSL spelling for synthesized
	// system values (sprite_color, sprite_uv, sprite_image); empty for
	// user bindings.
	SystemValueName string

	// FoldedValue is set for top-level const bindings after folding.
	FoldedValue *ConstantValue

	isVerified bool
}

func (d *VarDecl) Pos() SourceLocation { return d.Location }
func (d *VarDecl) DeclName() string    { return d.Name }
func (d *VarDecl) declNode()           {}

// IsSystemValue reports whether the binding is an implicit shader input.
func (d *VarDecl) IsSystemValue() bool { return d.SystemValueName != "" }
