package shading

// binOpKey identifies one row of the binary operation table. Operand
// types are the primitive singletons, so plain equality works.
type binOpKey struct {
	op  BinaryOpKind
	lhs Type
	rhs Type
}

// binOpTable maps every defined operator and operand type combination
// to the operation's result type. It is built once and never mutated.
var binOpTable = buildBinOpTable()

// BinaryOpResultType returns the result type of applying op to the given
// operand types, or nil when the combination is undefined.
func BinaryOpResultType(op BinaryOpKind, lhs, rhs Type) Type {
	return binOpTable[binOpKey{op, lhs, rhs}]
}

func buildBinOpTable() map[binOpKey]Type {
	t := make(map[binOpKey]Type)

	add := func(op BinaryOpKind, lhs, rhs, result Type) {
		t[binOpKey{op, lhs, rhs}] = result
	}

	arithmetic := []BinaryOpKind{OpAdd, OpSubtract, OpMultiply, OpDivide}
	relational := []BinaryOpKind{OpLess, OpLessEqual, OpGreater, OpGreaterEqual}
	equality := []BinaryOpKind{OpEqual, OpNotEqual}
	vectors := []Type{Vector2Type, Vector3Type, Vector4Type}

	// Scalar arithmetic and comparison
	for _, scalar := range []Type{IntType, FloatType} {
		for _, op := range arithmetic {
			add(op, scalar, scalar, scalar)
		}
		for _, op := range relational {
			add(op, scalar, scalar, BoolType)
		}
		for _, op := range equality {
			add(op, scalar, scalar, BoolType)
		}
	}

	// Integer shifts and bitwise operations
	for _, op := range []BinaryOpKind{OpLeftShift, OpRightShift, OpBitwiseAnd, OpBitwiseXor, OpBitwiseOr} {
		add(op, IntType, IntType, IntType)
	}

	// Booleans compare and combine logically
	for _, op := range equality {
		add(op, BoolType, BoolType, BoolType)
	}
	add(OpLogicalAnd, BoolType, BoolType, BoolType)
	add(OpLogicalOr, BoolType, BoolType, BoolType)

	// Componentwise vector arithmetic, vector-scalar scaling and
	// whole-vector equality
	for _, vec := range vectors {
		for _, op := range arithmetic {
			add(op, vec, vec, vec)
		}
		add(OpMultiply, vec, FloatType, vec)
		add(OpMultiply, FloatType, vec, vec)
		add(OpDivide, vec, FloatType, vec)
		for _, op := range equality {
			add(op, vec, vec, BoolType)
		}
	}

	// Matrix products
	add(OpMultiply, MatrixType, MatrixType, MatrixType)
	add(OpMultiply, MatrixType, Vector4Type, Vector4Type)
	add(OpMultiply, MatrixType, FloatType, MatrixType)

	return t
}
