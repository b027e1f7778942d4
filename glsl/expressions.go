package glsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cemderv/cerlib-sub001/shading"
)

// expr renders an expression as GLSL text. Struct constructor calls
// must have been hoisted before the enclosing statement.
func (w *writer) expr(e shading.Expr) (string, error) {
	switch ex := e.(type) {
	case *shading.IntLiteralExpr:
		s := strconv.FormatInt(ex.Value, 10)
		if ex.IsUnsigned {
			s += "u"
		}
		return s, nil

	case *shading.BoolLiteralExpr:
		return strconv.FormatBool(ex.Value), nil

	case *shading.FloatLiteralExpr:
		return formatFloat(ex.Value), nil

	case *shading.ScientificLiteralExpr:
		return ex.Raw + "f", nil

	case *shading.HexLiteralExpr:
		return ex.Raw, nil

	case *shading.ParenExpr:
		inner, err := w.expr(ex.Inner)
		if err != nil {
			return "", err
		}
		return "(" + inner + ")", nil

	case *shading.UnaryExpr:
		operand, err := w.expr(ex.Operand)
		if err != nil {
			return "", err
		}
		if ex.Op == shading.UnaryLogicalNot {
			return "!" + operand, nil
		}
		return "-" + operand, nil

	case *shading.BinaryExpr:
		return w.binaryExpr(ex)

	case *shading.SymAccessExpr:
		return w.symAccess(ex), nil

	case *shading.FunctionCallExpr:
		return w.callExpr(ex)

	case *shading.StructCtorCall:
		name, ok := w.hoisted[ex]
		if !ok {
			return "", fmt.Errorf("glsl: struct constructor was not hoisted")
		}
		return name, nil

	case *shading.SubscriptExpr:
		base, err := w.expr(ex.Base)
		if err != nil {
			return "", err
		}
		index, err := w.expr(ex.Index)
		if err != nil {
			return "", err
		}
		return base + "[" + index + "]", nil

	case *shading.TernaryExpr:
		cond, err := w.expr(ex.Condition)
		if err != nil {
			return "", err
		}
		t, err := w.expr(ex.TrueExpr)
		if err != nil {
			return "", err
		}
		f, err := w.expr(ex.FalseExpr)
		if err != nil {
			return "", err
		}
		return "(" + cond + " ? " + t + " : " + f + ")", nil

	default:
		return "", fmt.Errorf("glsl: unsupported expression %T", e)
	}
}

func (w *writer) binaryExpr(e *shading.BinaryExpr) (string, error) {
	if e.Op == shading.OpMemberAccess {
		return w.memberAccess(e)
	}

	lhs, rhs := e.Lhs, e.Rhs

	// The source language multiplies with the matrix on the left; the
	// emitted GLSL swaps the operands to match the column-major
	// convention of the surrounding pipeline.
	if e.Op == shading.OpMultiply &&
		shading.IsMatrixType(lhs.ResolvedType()) &&
		shading.IsVectorType(rhs.ResolvedType()) {
		lhs, rhs = rhs, lhs
	}

	left, err := w.expr(lhs)
	if err != nil {
		return "", err
	}
	right, err := w.expr(rhs)
	if err != nil {
		return "", err
	}
	return left + " " + e.Op.String() + " " + right, nil
}

func (w *writer) memberAccess(e *shading.BinaryExpr) (string, error) {
	base, err := w.expr(e.Lhs)
	if err != nil {
		return "", err
	}
	if swizzle := e.Swizzle(); swizzle != "" {
		return base + "." + swizzle, nil
	}
	member, ok := e.Rhs.(*shading.SymAccessExpr)
	if !ok {
		return "", fmt.Errorf("glsl: malformed member access")
	}
	return base + "." + escapeName(member.Name), nil
}

// symAccess renders a symbol reference, rewriting system values to
// their well-known GLSL names.
func (w *writer) symAccess(e *shading.SymAccessExpr) string {
	if v, ok := e.Decl.(*shading.VarDecl); ok && v.IsSystemValue() {
		return v.SystemValueName
	}
	return escapeName(e.Name)
}

func (w *writer) callExpr(e *shading.FunctionCallExpr) (string, error) {
	args := make([]string, len(e.Args))
	for i, arg := range e.Args {
		s, err := w.expr(arg)
		if err != nil {
			return "", err
		}
		args[i] = s
	}

	fn := e.Function
	var name string
	switch {
	case fn.IsStructCtor && shading.IsVectorType(fn.ReturnType):
		name = typeName(fn.ReturnType)
	case fn.IsIntrinsic():
		name = fn.GLSLName()
	default:
		name = escapeName(fn.Name)
	}
	return name + "(" + strings.Join(args, ", ") + ")", nil
}
