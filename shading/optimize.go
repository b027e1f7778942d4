package shading

// Optimize removes declarations and statements the shader entry points
// can never reach: uncalled functions, unreferenced structs, unused
// local variables and finally unused shader parameters. The AST must be
// verified first. Optimizing twice is a no-op.
func Optimize(ast *AST) {
	if !ast.isVerified || ast.isOptimized {
		return
	}

	for {
		changed := removeUnusedFunctions(ast)
		changed = removeUnusedStructs(ast) || changed
		changed = removeUnusedLocals(ast) || changed
		if !changed {
			break
		}
	}
	removeUnusedShaderParams(ast)

	ast.isOptimized = true
}

// AccessedParams returns the shader parameters reachable from the given
// entry point, directly or through called functions. Non-resource
// parameters come first, then image parameters, each group in
// declaration order.
func AccessedParams(ast *AST, entry *FunctionDecl) []*ShaderParamDecl {
	used := make(map[Decl]struct{})
	collectUsedDecls(entry, used)

	var params []*ShaderParamDecl
	for _, decl := range ast.Decls {
		p := asa[*ShaderParamDecl](decl)
		if p == nil || p.IsResource() {
			continue
		}
		if _, ok := used[p]; ok {
			params = append(params, p)
		}
	}
	for _, decl := range ast.Decls {
		p := asa[*ShaderParamDecl](decl)
		if p == nil || !p.IsResource() {
			continue
		}
		if _, ok := used[p]; ok {
			params = append(params, p)
		}
	}
	return params
}

// collectUsedDecls records every declaration referenced from fn's body,
// following function calls transitively.
func collectUsedDecls(fn *FunctionDecl, used map[Decl]struct{}) {
	if _, ok := used[fn]; ok {
		return
	}
	used[fn] = struct{}{}

	markType := func(t Type) {
		if st, ok := t.(*StructDecl); ok {
			used[st] = struct{}{}
		}
	}
	markType(fn.ReturnType)
	for _, param := range fn.Params {
		markType(param.Type)
	}

	if fn.Body == nil {
		return
	}
	WalkBlock(fn.Body, func(e Expr) {
		switch expr := e.(type) {
		case *SymAccessExpr:
			if expr.Decl != nil {
				used[expr.Decl] = struct{}{}
				if field, ok := expr.Decl.(*StructFieldDecl); ok {
					used[field.Parent] = struct{}{}
				}
			}
		case *FunctionCallExpr:
			if expr.Function != nil {
				collectUsedDecls(expr.Function, used)
			}
		case *StructCtorCall:
			if expr.Struct != nil {
				used[expr.Struct] = struct{}{}
			}
		}
	})
}

// usedByLiveDecls collects everything reachable from the declarations
// that anchor liveness: shader entry points and shader parameter
// defaults.
func usedByLiveDecls(ast *AST) map[Decl]struct{} {
	used := make(map[Decl]struct{})
	for _, entry := range ast.entryPoints {
		collectUsedDecls(entry, used)
	}
	for _, decl := range ast.Decls {
		if p, ok := decl.(*ShaderParamDecl); ok {
			used[p] = struct{}{}
		}
	}
	return used
}

func removeUnusedFunctions(ast *AST) bool {
	used := usedByLiveDecls(ast)

	return removeDecls(ast, func(decl Decl) bool {
		fn := asa[*FunctionDecl](decl)
		if fn == nil || fn.Kind == FunctionShader {
			return false
		}
		_, isUsed := used[fn]
		return !isUsed
	})
}

func removeUnusedStructs(ast *AST) bool {
	used := usedByLiveDecls(ast)
	for _, decl := range ast.Decls {
		if p, ok := decl.(*ShaderParamDecl); ok {
			if st, ok := p.Type.(*StructDecl); ok {
				used[st] = struct{}{}
			}
		}
	}

	return removeDecls(ast, func(decl Decl) bool {
		st := asa[*StructDecl](decl)
		if st == nil || st.IsBuiltin {
			return false
		}
		_, isUsed := used[st]
		return !isUsed
	})
}

// removeUnusedLocals drops var statements whose binding is never read
// in the remainder of the function.
func removeUnusedLocals(ast *AST) bool {
	changed := false
	for _, decl := range ast.Decls {
		fn, ok := decl.(*FunctionDecl)
		if !ok || fn.Body == nil {
			continue
		}

		reads := make(map[Decl]int)
		WalkBlock(fn.Body, func(e Expr) {
			if sym, ok := e.(*SymAccessExpr); ok && sym.Decl != nil {
				reads[sym.Decl]++
			}
		})

		changed = pruneBlockLocals(fn.Body, reads) || changed
	}
	return changed
}

func pruneBlockLocals(block *CodeBlock, reads map[Decl]int) bool {
	changed := false
	kept := block.Stmts[:0]
	for _, stmt := range block.Stmts {
		switch st := stmt.(type) {
		case *VarStmt:
			if reads[st.Decl] == 0 {
				changed = true
				continue
			}
		case *ForStmt:
			changed = pruneBlockLocals(st.Body, reads) || changed
		case *IfStmt:
			for branch := st; branch != nil; branch = branch.Next {
				changed = pruneBlockLocals(branch.Body, reads) || changed
			}
		}
		kept = append(kept, stmt)
	}
	block.Stmts = kept
	return changed
}

func removeUnusedShaderParams(ast *AST) {
	used := make(map[Decl]struct{})
	for _, entry := range ast.entryPoints {
		collectUsedDecls(entry, used)
	}

	removeDecls(ast, func(decl Decl) bool {
		p, ok := decl.(*ShaderParamDecl)
		if !ok {
			return false
		}
		_, isUsed := used[p]
		return !isUsed
	})
}

// removeDecls drops every top-level declaration the predicate marks.
func removeDecls(ast *AST, drop func(Decl) bool) bool {
	changed := false
	kept := ast.Decls[:0]
	for _, decl := range ast.Decls {
		if drop(decl) {
			changed = true
			continue
		}
		kept = append(kept, decl)
	}
	ast.Decls = kept
	return changed
}

// WalkBlock applies fn to every expression in a statement block,
// including nested blocks.
func WalkBlock(block *CodeBlock, fn func(Expr)) {
	for _, stmt := range block.Stmts {
		switch st := stmt.(type) {
		case *VarStmt:
			WalkExpr(st.Decl.Value, fn)
		case *AssignmentStmt:
			WalkExpr(st.Target, fn)
			WalkExpr(st.Value, fn)
		case *CompoundStmt:
			WalkExpr(st.Target, fn)
			WalkExpr(st.Value, fn)
		case *ReturnStmt:
			WalkExpr(st.Value, fn)
		case *ForStmt:
			WalkExpr(st.Range.Start, fn)
			WalkExpr(st.Range.End, fn)
			WalkBlock(st.Body, fn)
		case *IfStmt:
			for branch := st; branch != nil; branch = branch.Next {
				if branch.Condition != nil {
					WalkExpr(branch.Condition, fn)
				}
				WalkBlock(branch.Body, fn)
			}
		}
	}
}

// WalkExpr applies fn to expr and every subexpression.
func WalkExpr(expr Expr, fn func(Expr)) {
	if expr == nil {
		return
	}
	fn(expr)

	switch e := expr.(type) {
	case *ParenExpr:
		WalkExpr(e.Inner, fn)
	case *UnaryExpr:
		WalkExpr(e.Operand, fn)
	case *BinaryExpr:
		WalkExpr(e.Lhs, fn)
		WalkExpr(e.Rhs, fn)
	case *FunctionCallExpr:
		for _, arg := range e.Args {
			WalkExpr(arg, fn)
		}
	case *StructCtorCall:
		for _, arg := range e.Args {
			WalkExpr(arg.Value, fn)
		}
	case *SubscriptExpr:
		WalkExpr(e.Base, fn)
		WalkExpr(e.Index, fn)
	case *TernaryExpr:
		WalkExpr(e.Condition, fn)
		WalkExpr(e.TrueExpr, fn)
		WalkExpr(e.FalseExpr, fn)
	case *RangeExpr:
		WalkExpr(e.Start, fn)
		WalkExpr(e.End, fn)
	}
}
