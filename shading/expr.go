package shading

// exprBase carries the fields common to every expression node.
type exprBase struct {
	Location SourceLocation

	// typ is the resolved type, attached during verification.
	typ Type

	isVerified bool
}

func (e *exprBase) Pos() SourceLocation { return e.Location }
func (e *exprBase) ResolvedType() Type  { return e.typ }
func (e *exprBase) exprNode()           {}

// IntLiteralExpr is a decimal integer literal. IsUnsigned marks
// literals written with the 'u' suffix; unsigned arithmetic is parsed
// but constant evaluation of it is not implemented.
type IntLiteralExpr struct {
	exprBase
	Value      int64
	IsUnsigned bool
}

// BoolLiteralExpr is `true` or `false`.
type BoolLiteralExpr struct {
	exprBase
	Value bool
}

// FloatLiteralExpr is a literal with a fractional part, e.g. 1.5.
type FloatLiteralExpr struct {
	exprBase
	Value float64
}

// ScientificLiteralExpr is a literal in scientific notation, e.g. 1.5e-3.
type ScientificLiteralExpr struct {
	exprBase
	Value float64
	Raw   string
}

// HexLiteralExpr is a hexadecimal integer literal, e.g. 0xFF.
type HexLiteralExpr struct {
	exprBase
	Value int64
	Raw   string
}

// ParenExpr is a parenthesised expression.
type ParenExpr struct {
	exprBase
	Inner Expr
}

// UnaryOpKind enumerates the unary operators.
type UnaryOpKind uint8

const (
	UnaryNegate UnaryOpKind = iota // -
	UnaryLogicalNot                // !
)

// UnaryExpr applies a unary operator to its operand.
type UnaryExpr struct {
	exprBase
	Op      UnaryOpKind
	Operand Expr
}

// BinaryOpKind enumerates the 18 binary operators, member access
// included.
type BinaryOpKind uint8

const (
	OpMemberAccess BinaryOpKind = iota // .
	OpMultiply                         // *
	OpDivide                           // /
	OpAdd                              // +
	OpSubtract                         // -
	OpLeftShift                        // <<
	OpRightShift                       // >>
	OpLess                             // <
	OpLessEqual                        // <=
	OpGreater                          // >
	OpGreaterEqual                     // >=
	OpEqual                            // ==
	OpNotEqual                         // !=
	OpBitwiseAnd                       // &
	OpBitwiseXor                       // ^
	OpBitwiseOr                        // |
	OpLogicalAnd                       // &&
	OpLogicalOr                        // ||
)

// String returns the operator's source spelling.
func (op BinaryOpKind) String() string {
	switch op {
	case OpMemberAccess:
		return "."
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpLeftShift:
		return "<<"
	case OpRightShift:
		return ">>"
	case OpLess:
		return "<"
	case OpLessEqual:
		return "<="
	case OpGreater:
		return ">"
	case OpGreaterEqual:
		return ">="
	case OpEqual:
		return "=="
	case OpNotEqual:
		return "!="
	case OpBitwiseAnd:
		return "&"
	case OpBitwiseXor:
		return "^"
	case OpBitwiseOr:
		return "|"
	case OpLogicalAnd:
		return "&&"
	case OpLogicalOr:
		return "||"
	default:
		return "?"
	}
}

// BinaryExpr applies a binary operator. Member access is represented as
// a binary op whose right-hand side is a SymAccessExpr resolved in the
// context of the left-hand side's type.
type BinaryExpr struct {
	exprBase
	Op  BinaryOpKind
	Lhs Expr
	Rhs Expr

	// swizzle is set for member accesses that select vector components.
	swizzle string
}

// Swizzle returns the swizzle pattern when the expression is a member
// access that selects vector components, and "" otherwise.
func (e *BinaryExpr) Swizzle() string { return e.swizzle }

// SymAccessExpr references a named symbol. After verification Decl
// points at the referenced declaration.
type SymAccessExpr struct {
	exprBase
	Name string
	Decl Decl
}

// FunctionCallExpr calls a function or intrinsic. After verification
// Function points at the selected overload.
type FunctionCallExpr struct {
	exprBase
	Callee   Expr
	Args     []Expr
	Function *FunctionDecl
}

// StructCtorCall constructs a struct value with named field arguments:
// `Name { field = expr, ... }`.
type StructCtorCall struct {
	exprBase
	Callee Expr
	Args   []*StructCtorArg
	Struct *StructDecl
}

// StructCtorArg is one named argument of a struct constructor call.
type StructCtorArg struct {
	exprBase
	Name  string
	Value Expr
}

// SubscriptExpr indexes an array.
type SubscriptExpr struct {
	exprBase
	Base  Expr
	Index Expr
}

// TernaryExpr is the conditional operator `cond ? a : b`.
type TernaryExpr struct {
	exprBase
	Condition Expr
	TrueExpr  Expr
	FalseExpr Expr
}

// RangeExpr is `start..end`; it is only valid as the range of a for
// statement.
type RangeExpr struct {
	exprBase
	Start Expr
	End   Expr
}
