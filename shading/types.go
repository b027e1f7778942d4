package shading

import "fmt"

// Type is the interface implemented by all shading language types.
//
// The built-in scalar, vector, matrix and image types are process-wide
// singletons shared by reference. Array and unresolved types are owned by
// the compilation's TypeCache; struct types are declarations that double
// as types.
type Type interface {
	// TypeName returns the user-visible name of the type.
	TypeName() string

	typeNode()
}

// PrimitiveKind enumerates the built-in non-composite types.
type PrimitiveKind uint8

const (
	PrimInt PrimitiveKind = iota
	PrimBool
	PrimFloat
	PrimVector2
	PrimVector3
	PrimVector4
	PrimMatrix
	PrimImage
)

// PrimitiveType is a built-in type. Exactly one instance exists per kind;
// compare by pointer identity.
type PrimitiveType struct {
	Kind PrimitiveKind
	name string
}

func (t *PrimitiveType) TypeName() string { return t.name }
func (t *PrimitiveType) typeNode()        {}

// Built-in type singletons.
var (
	IntType     = &PrimitiveType{Kind: PrimInt, name: "int"}
	BoolType    = &PrimitiveType{Kind: PrimBool, name: "bool"}
	FloatType   = &PrimitiveType{Kind: PrimFloat, name: "float"}
	Vector2Type = &PrimitiveType{Kind: PrimVector2, name: "Vector2"}
	Vector3Type = &PrimitiveType{Kind: PrimVector3, name: "Vector3"}
	Vector4Type = &PrimitiveType{Kind: PrimVector4, name: "Vector4"}
	MatrixType  = &PrimitiveType{Kind: PrimMatrix, name: "Matrix"}
	ImageType   = &PrimitiveType{Kind: PrimImage, name: "Image"}
)

// builtinTypes lists every named built-in type, for scope registration.
var builtinTypes = []Type{
	IntType, BoolType, FloatType,
	Vector2Type, Vector3Type, Vector4Type,
	MatrixType, ImageType,
}

// ArrayType is an array of a fixed, compile-time size between 1 and 255.
type ArrayType struct {
	Element Type
	Size    int

	// SizeExpr is the unfolded size expression as written in the source.
	// It is constant-folded into Size during verification.
	SizeExpr Expr

	Location SourceLocation
}

func (t *ArrayType) TypeName() string {
	return fmt.Sprintf("%s[%d]", t.Element.TypeName(), t.Size)
}
func (t *ArrayType) typeNode() {}

// UnresolvedType is a placeholder for a type referenced by name before
// semantic verification replaces it with the real type. Instances live
// only in the compilation's TypeCache.
type UnresolvedType struct {
	Name     string
	Location SourceLocation
}

func (t *UnresolvedType) TypeName() string { return t.Name }
func (t *UnresolvedType) typeNode()        {}

// TypeCache owns the unresolved and array types created during a single
// compilation. It is not safe for concurrent use; every compilation has
// its own cache.
type TypeCache struct {
	unresolved []*UnresolvedType
	arrays     []*ArrayType
}

// NewTypeCache creates an empty type cache.
func NewTypeCache() *TypeCache {
	return &TypeCache{}
}

// Unresolved creates a placeholder for the named type.
func (c *TypeCache) Unresolved(name string, loc SourceLocation) *UnresolvedType {
	t := &UnresolvedType{Name: name, Location: loc}
	c.unresolved = append(c.unresolved, t)
	return t
}

// Array creates an array type with an unfolded size expression.
func (c *TypeCache) Array(element Type, sizeExpr Expr, loc SourceLocation) *ArrayType {
	t := &ArrayType{Element: element, SizeExpr: sizeExpr, Location: loc}
	c.arrays = append(c.arrays, t)
	return t
}

// Type predicates. Unresolved types satisfy none of them.

// IsScalarType reports whether t is int, bool or float.
func IsScalarType(t Type) bool {
	p, ok := t.(*PrimitiveType)
	return ok && (p.Kind == PrimInt || p.Kind == PrimBool || p.Kind == PrimFloat)
}

// IsVectorType reports whether t is Vector2, Vector3 or Vector4.
func IsVectorType(t Type) bool {
	p, ok := t.(*PrimitiveType)
	return ok && (p.Kind == PrimVector2 || p.Kind == PrimVector3 || p.Kind == PrimVector4)
}

// IsMatrixType reports whether t is the 4x4 matrix type.
func IsMatrixType(t Type) bool {
	p, ok := t.(*PrimitiveType)
	return ok && p.Kind == PrimMatrix
}

// IsImageType reports whether t is the opaque image sampler type.
func IsImageType(t Type) bool {
	p, ok := t.(*PrimitiveType)
	return ok && p.Kind == PrimImage
}

// IsArrayType reports whether t is an array type.
func IsArrayType(t Type) bool {
	_, ok := t.(*ArrayType)
	return ok
}

// IsUserStructType reports whether t is a user-defined struct.
func IsUserStructType(t Type) bool {
	s, ok := t.(*StructDecl)
	return ok && !s.IsBuiltin
}

// IsUnresolvedType reports whether t is still an unresolved placeholder.
func IsUnresolvedType(t Type) bool {
	_, ok := t.(*UnresolvedType)
	return ok
}

// VectorSize returns the component count of a vector type, or 0.
func VectorSize(t Type) int {
	p, ok := t.(*PrimitiveType)
	if !ok {
		return 0
	}
	switch p.Kind {
	case PrimVector2:
		return 2
	case PrimVector3:
		return 3
	case PrimVector4:
		return 4
	default:
		return 0
	}
}

// vectorTypeOfSize returns the vector singleton with the given component
// count, with float standing in for size 1.
func vectorTypeOfSize(n int) Type {
	switch n {
	case 1:
		return FloatType
	case 2:
		return Vector2Type
	case 3:
		return Vector3Type
	case 4:
		return Vector4Type
	default:
		return nil
	}
}

// CanBeShaderParamType reports whether t is a legal shader parameter
// type: scalar, vector, matrix, image, or an array of any of those
// except image and user structs.
func CanBeShaderParamType(t Type) bool {
	if arr, ok := t.(*ArrayType); ok {
		elem := arr.Element
		if IsImageType(elem) || IsUserStructType(elem) {
			return false
		}
		return IsScalarType(elem) || IsVectorType(elem) || IsMatrixType(elem)
	}
	return IsScalarType(t) || IsVectorType(t) || IsMatrixType(t) || IsImageType(t)
}
