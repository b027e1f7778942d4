package shading

import (
	"strconv"
	"strings"
)

// ConstantKind enumerates the shapes a compile-time constant can take.
type ConstantKind uint8

const (
	ConstantInt ConstantKind = iota
	ConstantBool
	ConstantFloat
	ConstantVector
)

// ConstantValue is the result of evaluating a compile-time constant
// expression. Vector constants store their components as floats.
type ConstantValue struct {
	Kind   ConstantKind
	Int    int64
	Bool   bool
	Float  float64
	Vector []float64
}

// Type returns the language type of the constant.
func (v *ConstantValue) Type() Type {
	switch v.Kind {
	case ConstantInt:
		return IntType
	case ConstantBool:
		return BoolType
	case ConstantFloat:
		return FloatType
	case ConstantVector:
		return vectorTypeOfSize(len(v.Vector))
	default:
		return nil
	}
}

// AsFloat returns the numeric value widened to float. Only valid for
// int and float constants.
func (v *ConstantValue) AsFloat() float64 {
	if v.Kind == ConstantInt {
		return float64(v.Int)
	}
	return v.Float
}

func (v *ConstantValue) String() string {
	switch v.Kind {
	case ConstantInt:
		return strconv.FormatInt(v.Int, 10)
	case ConstantBool:
		return strconv.FormatBool(v.Bool)
	case ConstantFloat:
		return formatConstFloat(v.Float)
	case ConstantVector:
		parts := make([]string, len(v.Vector))
		for i, c := range v.Vector {
			parts[i] = formatConstFloat(c)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return "<invalid>"
	}
}

func formatConstFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func constInt(i int64) *ConstantValue     { return &ConstantValue{Kind: ConstantInt, Int: i} }
func constBool(b bool) *ConstantValue     { return &ConstantValue{Kind: ConstantBool, Bool: b} }
func constFloat(f float64) *ConstantValue { return &ConstantValue{Kind: ConstantFloat, Float: f} }

// Evaluate computes the value of a compile-time constant expression.
// Expressions that reference mutable state, call non-constructor
// functions or use unsigned literals produce an EvaluationError.
func Evaluate(expr Expr) (*ConstantValue, error) {
	switch e := expr.(type) {
	case *IntLiteralExpr:
		if e.IsUnsigned {
			return nil, newDiag(EvaluationError, e.Location,
				"unsigned constant evaluation is not implemented")
		}
		return constInt(e.Value), nil

	case *BoolLiteralExpr:
		return constBool(e.Value), nil

	case *FloatLiteralExpr:
		return constFloat(e.Value), nil

	case *ScientificLiteralExpr:
		return constFloat(e.Value), nil

	case *HexLiteralExpr:
		return constInt(e.Value), nil

	case *ParenExpr:
		return Evaluate(e.Inner)

	case *UnaryExpr:
		return evaluateUnary(e)

	case *BinaryExpr:
		return evaluateBinary(e)

	case *TernaryExpr:
		cond, err := Evaluate(e.Condition)
		if err != nil {
			return nil, err
		}
		if cond.Kind != ConstantBool {
			return nil, newDiag(EvaluationError, e.Location,
				"ternary condition is not a constant bool")
		}
		if cond.Bool {
			return Evaluate(e.TrueExpr)
		}
		return Evaluate(e.FalseExpr)

	case *SymAccessExpr:
		if v, ok := e.Decl.(*VarDecl); ok && v.IsConst && v.FoldedValue != nil {
			return v.FoldedValue, nil
		}
		return nil, newDiag(EvaluationError, e.Location,
			"'%s' is not a compile-time constant", e.Name)

	case *FunctionCallExpr:
		return evaluateCtorCall(e)

	default:
		return nil, newDiag(EvaluationError, expr.Pos(),
			"expression is not a compile-time constant")
	}
}

func evaluateUnary(e *UnaryExpr) (*ConstantValue, error) {
	operand, err := Evaluate(e.Operand)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case UnaryNegate:
		switch operand.Kind {
		case ConstantInt:
			return constInt(-operand.Int), nil
		case ConstantFloat:
			return constFloat(-operand.Float), nil
		}
	case UnaryLogicalNot:
		if operand.Kind == ConstantBool {
			return constBool(!operand.Bool), nil
		}
	}

	return nil, newDiag(EvaluationError, e.Location,
		"unary operator is not defined for this constant")
}

func evaluateBinary(e *BinaryExpr) (*ConstantValue, error) {
	lhs, err := Evaluate(e.Lhs)
	if err != nil {
		return nil, err
	}
	rhs, err := Evaluate(e.Rhs)
	if err != nil {
		return nil, err
	}

	if lhs.Kind == ConstantInt && rhs.Kind == ConstantInt {
		return evaluateIntBinary(e, lhs.Int, rhs.Int)
	}
	if lhs.Kind == ConstantBool && rhs.Kind == ConstantBool {
		return evaluateBoolBinary(e, lhs.Bool, rhs.Bool)
	}
	if (lhs.Kind == ConstantFloat || lhs.Kind == ConstantInt) &&
		(rhs.Kind == ConstantFloat || rhs.Kind == ConstantInt) {
		return evaluateFloatBinary(e, lhs.AsFloat(), rhs.AsFloat())
	}

	return nil, newDiag(EvaluationError, e.Location,
		"operator '%s' is not defined between these constants", e.Op)
}

func evaluateIntBinary(e *BinaryExpr, a, b int64) (*ConstantValue, error) {
	switch e.Op {
	case OpAdd:
		return constInt(a + b), nil
	case OpSubtract:
		return constInt(a - b), nil
	case OpMultiply:
		return constInt(a * b), nil
	case OpDivide:
		if b == 0 {
			return nil, newDiag(EvaluationError, e.Location, "division by zero in constant expression")
		}
		return constInt(a / b), nil
	case OpLeftShift:
		if b < 0 || b >= 64 {
			return nil, newDiag(EvaluationError, e.Location, "shift amount %d is out of range", b)
		}
		return constInt(a << uint(b)), nil
	case OpRightShift:
		if b < 0 || b >= 64 {
			return nil, newDiag(EvaluationError, e.Location, "shift amount %d is out of range", b)
		}
		return constInt(a >> uint(b)), nil
	case OpBitwiseAnd:
		return constInt(a & b), nil
	case OpBitwiseXor:
		return constInt(a ^ b), nil
	case OpBitwiseOr:
		return constInt(a | b), nil
	case OpLess:
		return constBool(a < b), nil
	case OpLessEqual:
		return constBool(a <= b), nil
	case OpGreater:
		return constBool(a > b), nil
	case OpGreaterEqual:
		return constBool(a >= b), nil
	case OpEqual:
		return constBool(a == b), nil
	case OpNotEqual:
		return constBool(a != b), nil
	default:
		return nil, newDiag(EvaluationError, e.Location,
			"operator '%s' is not defined for integer constants", e.Op)
	}
}

func evaluateBoolBinary(e *BinaryExpr, a, b bool) (*ConstantValue, error) {
	switch e.Op {
	case OpLogicalAnd:
		return constBool(a && b), nil
	case OpLogicalOr:
		return constBool(a || b), nil
	case OpEqual:
		return constBool(a == b), nil
	case OpNotEqual:
		return constBool(a != b), nil
	default:
		return nil, newDiag(EvaluationError, e.Location,
			"operator '%s' is not defined for bool constants", e.Op)
	}
}

func evaluateFloatBinary(e *BinaryExpr, a, b float64) (*ConstantValue, error) {
	switch e.Op {
	case OpAdd:
		return constFloat(a + b), nil
	case OpSubtract:
		return constFloat(a - b), nil
	case OpMultiply:
		return constFloat(a * b), nil
	case OpDivide:
		if b == 0 {
			return nil, newDiag(EvaluationError, e.Location, "division by zero in constant expression")
		}
		return constFloat(a / b), nil
	case OpLess:
		return constBool(a < b), nil
	case OpLessEqual:
		return constBool(a <= b), nil
	case OpGreater:
		return constBool(a > b), nil
	case OpGreaterEqual:
		return constBool(a >= b), nil
	case OpEqual:
		return constBool(a == b), nil
	case OpNotEqual:
		return constBool(a != b), nil
	default:
		return nil, newDiag(EvaluationError, e.Location,
			"operator '%s' is not defined for float constants", e.Op)
	}
}

// evaluateCtorCall folds a vector constructor call whose arguments are
// all constant.
func evaluateCtorCall(e *FunctionCallExpr) (*ConstantValue, error) {
	fn := e.Function
	if fn == nil || !fn.IsStructCtor || !IsVectorType(fn.ReturnType) {
		return nil, newDiag(EvaluationError, e.Location,
			"function call is not a compile-time constant")
	}

	size := VectorSize(fn.ReturnType)
	components := make([]float64, 0, size)
	for _, arg := range e.Args {
		v, err := Evaluate(arg)
		if err != nil {
			return nil, err
		}
		switch v.Kind {
		case ConstantInt, ConstantFloat:
			components = append(components, v.AsFloat())
		case ConstantVector:
			components = append(components, v.Vector...)
		default:
			return nil, newDiag(EvaluationError, arg.Pos(),
				"constructor argument is not a numeric constant")
		}
	}

	// Single-scalar constructors splat across every component.
	if len(components) == 1 && size > 1 {
		splat := components[0]
		for len(components) < size {
			components = append(components, splat)
		}
	}
	if len(components) != size {
		return nil, newDiag(EvaluationError, e.Location,
			"constructor expects %d components, got %d", size, len(components))
	}

	return &ConstantValue{Kind: ConstantVector, Vector: components}, nil
}

// foldArraySize folds and range-checks an array size expression.
func foldArraySize(expr Expr) (int, error) {
	v, err := Evaluate(expr)
	if err != nil {
		return 0, err
	}
	if v.Kind != ConstantInt {
		return 0, newDiag(EvaluationError, expr.Pos(), "array size must be a constant integer")
	}
	if v.Int < 1 || v.Int > 255 {
		return 0, newDiag(EvaluationError, expr.Pos(),
			"array size %d is out of range [1, 255]", v.Int)
	}
	return int(v.Int), nil
}
