package glsl

import (
	"fmt"

	"github.com/cemderv/cerlib-sub001/shading"
)

// writeBlock emits the statements of one code block. Each block numbers
// its hoisted temporaries independently.
func (w *writer) writeBlock(block *shading.CodeBlock, inEntry bool) error {
	saved := w.tempCount
	w.tempCount = 0
	defer func() { w.tempCount = saved }()

	for _, stmt := range block.Stmts {
		if err := w.writeStmt(stmt, inEntry); err != nil {
			return err
		}
	}
	return nil
}

func (w *writer) writeStmt(stmt shading.Stmt, inEntry bool) error {
	switch st := stmt.(type) {
	case *shading.VarStmt:
		return w.writeVarStmt(st)

	case *shading.AssignmentStmt:
		if err := w.hoistCtors(st.Target, ""); err != nil {
			return err
		}
		if err := w.hoistCtors(st.Value, ""); err != nil {
			return err
		}
		target, err := w.expr(st.Target)
		if err != nil {
			return err
		}
		value, err := w.expr(st.Value)
		if err != nil {
			return err
		}
		w.writeLine("%s = %s;", target, value)
		return nil

	case *shading.CompoundStmt:
		if err := w.hoistCtors(st.Value, ""); err != nil {
			return err
		}
		target, err := w.expr(st.Target)
		if err != nil {
			return err
		}
		value, err := w.expr(st.Value)
		if err != nil {
			return err
		}
		w.writeLine("%s %s= %s;", target, st.Op, value)
		return nil

	case *shading.ReturnStmt:
		return w.writeReturn(st, inEntry)

	case *shading.ForStmt:
		return w.writeFor(st, inEntry)

	case *shading.IfStmt:
		return w.writeIf(st, inEntry)

	default:
		return fmt.Errorf("glsl: unsupported statement %T", stmt)
	}
}

func (w *writer) writeVarStmt(st *shading.VarStmt) error {
	d := st.Decl

	// A variable initialized directly from a struct constructor lends
	// its name to the hoisted temporary.
	hint := ""
	if _, ok := d.Value.(*shading.StructCtorCall); ok {
		hint = d.Name
	}
	if err := w.hoistCtors(d.Value, hint); err != nil {
		return err
	}

	value, err := w.expr(d.Value)
	if err != nil {
		return err
	}
	w.writeLine("%s %s%s = %s;", typeName(d.Type), escapeName(d.Name), arraySuffix(d.Type), value)
	return nil
}

// writeReturn emits a return statement. Inside the entry point the
// returned value is written to cer_OutColor instead; shaders returning
// a struct write the struct's last field. Early returns keep a bare
// `return;` after the assignment so later statements stay unreachable.
func (w *writer) writeReturn(st *shading.ReturnStmt, inEntry bool) error {
	if err := w.hoistCtors(st.Value, ""); err != nil {
		return err
	}
	value, err := w.expr(st.Value)
	if err != nil {
		return err
	}

	if !inEntry {
		w.writeLine("return %s;", value)
		return nil
	}

	if ret, ok := st.Value.ResolvedType().(*shading.StructDecl); ok {
		last := ret.Fields[len(ret.Fields)-1]
		w.writeLine("cer_OutColor = %s.%s;", value, escapeName(last.Name))
	} else {
		w.writeLine("cer_OutColor = %s;", value)
	}
	if st != w.entryTerminalReturn {
		w.writeLine("return;")
	}
	return nil
}

// writeFor lowers the range loop to a C-style for statement. The upper
// bound is exclusive.
func (w *writer) writeFor(st *shading.ForStmt, inEntry bool) error {
	if err := w.hoistCtors(st.Range.Start, ""); err != nil {
		return err
	}
	if err := w.hoistCtors(st.Range.End, ""); err != nil {
		return err
	}
	start, err := w.expr(st.Range.Start)
	if err != nil {
		return err
	}
	end, err := w.expr(st.Range.End)
	if err != nil {
		return err
	}

	name := escapeName(st.Variable.Name)
	w.writeLine("for (int %s = %s; %s < %s; %s++) {", name, start, name, end, name)
	w.pushIndent()
	if err := w.writeBlock(st.Body, inEntry); err != nil {
		return err
	}
	w.popIndent()
	w.writeLine("}")
	return nil
}

func (w *writer) writeIf(st *shading.IfStmt, inEntry bool) error {
	// Branch conditions are hoisted ahead of the whole chain; the
	// language is pure, so evaluating them early is unobservable.
	for branch := st; branch != nil; branch = branch.Next {
		if branch.Condition != nil {
			if err := w.hoistCtors(branch.Condition, ""); err != nil {
				return err
			}
		}
	}

	first := true
	for branch := st; branch != nil; branch = branch.Next {
		switch {
		case branch.Condition == nil:
			w.writeLine("} else {")
		case first:
			cond, err := w.expr(branch.Condition)
			if err != nil {
				return err
			}
			w.writeLine("if (%s) {", cond)
		default:
			cond, err := w.expr(branch.Condition)
			if err != nil {
				return err
			}
			w.writeLine("} else if (%s) {", cond)
		}
		first = false

		w.pushIndent()
		if err := w.writeBlock(branch.Body, inEntry); err != nil {
			return err
		}
		w.popIndent()
	}
	w.writeLine("}")
	return nil
}

// hoistCtors emits a temporary declaration and per-field assignments
// for every struct constructor call inside expr, innermost first. The
// call sites are later emitted as the temporary's name.
func (w *writer) hoistCtors(expr shading.Expr, hint string) error {
	var firstErr error

	var hoist func(e shading.Expr)
	hoist = func(e shading.Expr) {
		if e == nil || firstErr != nil {
			return
		}
		switch ex := e.(type) {
		case *shading.ParenExpr:
			hoist(ex.Inner)
		case *shading.UnaryExpr:
			hoist(ex.Operand)
		case *shading.BinaryExpr:
			hoist(ex.Lhs)
			hoist(ex.Rhs)
		case *shading.FunctionCallExpr:
			for _, arg := range ex.Args {
				hoist(arg)
			}
		case *shading.SubscriptExpr:
			hoist(ex.Base)
			hoist(ex.Index)
		case *shading.TernaryExpr:
			hoist(ex.Condition)
			hoist(ex.TrueExpr)
			hoist(ex.FalseExpr)
		case *shading.StructCtorCall:
			for _, arg := range ex.Args {
				hoist(arg.Value)
			}
			if firstErr == nil {
				firstErr = w.emitHoistedCtor(ex, hint)
			}
		}
	}
	hoist(expr)
	return firstErr
}

func (w *writer) emitHoistedCtor(ctor *shading.StructCtorCall, hint string) error {
	if _, done := w.hoisted[ctor]; done {
		return nil
	}

	name := fmt.Sprintf("cer_var%d", w.tempCount)
	if hint != "" {
		name += "_" + hint
	}
	w.tempCount++
	w.hoisted[ctor] = name

	w.writeLine("%s %s;", escapeName(ctor.Struct.Name), name)
	for _, arg := range ctor.Args {
		value, err := w.expr(arg.Value)
		if err != nil {
			return err
		}
		w.writeLine("%s.%s = %s;", name, escapeName(arg.Name), value)
	}
	return nil
}
