package shading

import "strings"

// reservedPrefix is forbidden in user declarations. Synthesized GLSL
// identifiers use it to avoid collisions with user code.
const reservedPrefix = "cer_"

// Verify resolves names and types across the AST and checks every
// semantic rule. It mutates the AST in place and is idempotent; the
// first error aborts verification.
func Verify(ast *AST) error {
	if ast.isVerified {
		return nil
	}

	sema := &SemaContext{
		ast:      ast,
		builtins: NewBuiltins(),
		root:     NewScope(),
	}
	sema.builtins.register(sema.root)

	if err := sema.registerTopLevel(); err != nil {
		return err
	}
	if err := sema.resolveSignatures(); err != nil {
		return err
	}
	if err := sema.verifyDecls(); err != nil {
		return err
	}

	ast.isVerified = true
	return nil
}

// SemaContext carries the state of a single verification run.
type SemaContext struct {
	ast      *AST
	builtins *Builtins
	root     *Scope
}

// checkName rejects user declarations that use the reserved prefix.
func (s *SemaContext) checkName(name string, loc SourceLocation) error {
	if strings.HasPrefix(name, reservedPrefix) {
		return newDiag(NameError, loc,
			"the prefix '%s' is reserved; rename '%s'", reservedPrefix, name)
	}
	return nil
}

// registerTopLevel checks declaration names and registers every
// top-level declaration in the root scope so that later declarations
// can reference earlier and later ones alike.
func (s *SemaContext) registerTopLevel() error {
	for _, decl := range s.ast.Decls {
		if err := s.checkName(decl.DeclName(), decl.Pos()); err != nil {
			return err
		}
		if s.root.ContainsSymbolHere(decl.DeclName()) || s.root.LookupType(decl.DeclName()) != nil {
			return newDiag(NameError, decl.Pos(),
				"symbol '%s' is already declared", decl.DeclName())
		}

		switch d := decl.(type) {
		case *StructDecl:
			s.root.AddSymbol(d.Name, d)
			s.root.AddType(d.Name, d)
		default:
			s.root.AddSymbol(decl.DeclName(), decl)
		}
	}
	return nil
}

// resolveSignatures resolves struct fields, function signatures and
// shader parameter types before any bodies are verified, so that calls
// and member accesses can reference declarations in any order.
func (s *SemaContext) resolveSignatures() error {
	for _, decl := range s.ast.Decls {
		switch d := decl.(type) {
		case *StructDecl:
			if err := s.verifyStructDecl(d); err != nil {
				return err
			}
		case *FunctionDecl:
			if err := s.resolveFunctionSignature(d); err != nil {
				return err
			}
		case *ShaderParamDecl:
			t, err := s.resolveType(s.root, d.Type)
			if err != nil {
				return err
			}
			if !CanBeShaderParamType(t) {
				return newDiag(TypeError, d.Location,
					"type '%s' cannot be used as a shader parameter", t.TypeName())
			}
			d.Type = t
		}
	}
	return nil
}

func (s *SemaContext) verifyStructDecl(d *StructDecl) error {
	if d.isVerified {
		return nil
	}

	seen := make(map[string]struct{}, len(d.Fields))
	for _, field := range d.Fields {
		if err := s.checkName(field.Name, field.Location); err != nil {
			return err
		}
		if _, dup := seen[field.Name]; dup {
			return newDiag(NameError, field.Location,
				"struct '%s' already has a field named '%s'", d.Name, field.Name)
		}
		seen[field.Name] = struct{}{}

		t, err := s.resolveType(s.root, field.Type)
		if err != nil {
			return err
		}
		if !IsScalarType(t) && !IsVectorType(t) && !IsMatrixType(t) {
			return newDiag(TypeError, field.Location,
				"type '%s' is not allowed as a struct field", t.TypeName())
		}
		field.Type = t
		field.isVerified = true
	}

	d.Ctor = synthesizeStructCtor(d)
	d.isVerified = true
	return nil
}

// synthesizeStructCtor builds the constructor function for a struct.
// It takes one parameter per field, in field order.
func synthesizeStructCtor(d *StructDecl) *FunctionDecl {
	ctor := &FunctionDecl{
		Name:         d.Name,
		ReturnType:   d,
		IsStructCtor: true,
		Location:     d.Location,
		isVerified:   true,
	}
	for _, field := range d.Fields {
		ctor.Params = append(ctor.Params, &FunctionParamDecl{
			Name:     field.Name,
			Type:     field.Type,
			Location: field.Location,
		})
	}
	return ctor
}

func (s *SemaContext) resolveFunctionSignature(d *FunctionDecl) error {
	ret, err := s.resolveType(s.root, d.ReturnType)
	if err != nil {
		return err
	}
	d.ReturnType = ret

	seen := make(map[string]struct{}, len(d.Params))
	for _, param := range d.Params {
		if err := s.checkName(param.Name, param.Location); err != nil {
			return err
		}
		if _, dup := seen[param.Name]; dup {
			return newDiag(NameError, param.Location,
				"duplicate parameter '%s'", param.Name)
		}
		seen[param.Name] = struct{}{}

		t, err := s.resolveType(s.root, param.Type)
		if err != nil {
			return err
		}
		param.Type = t
		param.isVerified = true
	}

	if d.Kind == FunctionShader {
		if err := s.checkShaderSignature(d); err != nil {
			return err
		}
	}
	return nil
}

// checkShaderSignature enforces the entry point contract: at most one
// parameter, named Input and of user struct type, and a return type of
// Vector4 or a struct whose last field is Vector4.
func (s *SemaContext) checkShaderSignature(d *FunctionDecl) error {
	if len(d.Params) > 1 {
		return newDiag(ShaderError, d.Location,
			"shader '%s' must have at most one parameter", d.Name)
	}
	if len(d.Params) == 1 {
		param := d.Params[0]
		if param.Name != "Input" {
			return newDiag(ShaderError, param.Location,
				"the shader parameter must be named 'Input', got '%s'", param.Name)
		}
		if !IsUserStructType(param.Type) {
			return newDiag(ShaderError, param.Location,
				"the shader 'Input' parameter must be a user-defined struct")
		}
	}

	if !shaderReturnTypeOK(d.ReturnType) {
		return newDiag(ShaderError, d.Location,
			"shader '%s' must return Vector4 or a struct whose last field is Vector4", d.Name)
	}
	return nil
}

func shaderReturnTypeOK(t Type) bool {
	if t == Vector4Type {
		return true
	}
	if st, ok := t.(*StructDecl); ok && !st.IsBuiltin && len(st.Fields) > 0 {
		return st.Fields[len(st.Fields)-1].Type == Vector4Type
	}
	return false
}

// verifyDecls verifies declaration bodies and values in source order.
// Constants fold first so that later expressions can reference them.
func (s *SemaContext) verifyDecls() error {
	for _, decl := range s.ast.Decls {
		d, ok := decl.(*VarDecl)
		if !ok {
			continue
		}
		if err := s.verifyConstGlobal(d); err != nil {
			return err
		}
	}

	for _, decl := range s.ast.Decls {
		switch d := decl.(type) {
		case *ShaderParamDecl:
			if err := s.verifyShaderParam(d); err != nil {
				return err
			}
		case *FunctionDecl:
			if err := s.verifyFunctionBody(d); err != nil {
				return err
			}
			if d.Kind == FunctionShader {
				s.ast.entryPoints = append(s.ast.entryPoints, d)
			}
		}
	}
	return nil
}

func (s *SemaContext) verifyConstGlobal(d *VarDecl) error {
	if d.isVerified {
		return nil
	}
	if err := s.verifyExpr(s.root, d.Value); err != nil {
		return err
	}
	folded, err := Evaluate(d.Value)
	if err != nil {
		return err
	}
	d.FoldedValue = folded
	d.Type = folded.Type()
	d.isVerified = true
	return nil
}

func (s *SemaContext) verifyShaderParam(d *ShaderParamDecl) error {
	if d.isVerified {
		return nil
	}
	if d.DefaultValue != nil {
		if err := s.verifyExpr(s.root, d.DefaultValue); err != nil {
			return err
		}
		folded, err := Evaluate(d.DefaultValue)
		if err != nil {
			return err
		}
		if err := s.checkParamDefault(d, folded); err != nil {
			return err
		}
		d.FoldedDefault = folded
	}
	d.isVerified = true
	return nil
}

// checkParamDefault validates a parameter's default against its type.
// Image parameters take an integer binding slot as their default.
func (s *SemaContext) checkParamDefault(d *ShaderParamDecl, v *ConstantValue) error {
	if IsImageType(d.Type) {
		if v.Kind != ConstantInt {
			return newDiag(TypeError, d.DefaultValue.Pos(),
				"the default of image parameter '%s' must be an integer binding slot", d.Name)
		}
		return nil
	}
	if IsArrayType(d.Type) {
		return newDiag(TypeError, d.DefaultValue.Pos(),
			"array parameter '%s' cannot have a default value", d.Name)
	}

	valueType := v.Type()
	if valueType == d.Type {
		return nil
	}
	// An integer default widens to a float parameter.
	if d.Type == FloatType && v.Kind == ConstantInt {
		return nil
	}
	return newDiag(TypeError, d.DefaultValue.Pos(),
		"default value of type '%s' does not match parameter type '%s'",
		valueType.TypeName(), d.Type.TypeName())
}

func (s *SemaContext) verifyFunctionBody(d *FunctionDecl) error {
	if d.isVerified {
		return nil
	}

	scope := s.root.Child(ContextNormal)
	scope.SetFunction(d)
	for _, param := range d.Params {
		scope.AddSymbol(param.Name, param)
	}

	if err := s.verifyBlock(scope, d.Body); err != nil {
		return err
	}

	if err := s.checkTerminalReturn(d); err != nil {
		return err
	}

	d.isVerified = true
	return nil
}

// checkTerminalReturn requires the last statement of a function body to
// be a return statement.
func (s *SemaContext) checkTerminalReturn(d *FunctionDecl) error {
	stmts := d.Body.Stmts
	if len(stmts) == 0 || !isa[*ReturnStmt](stmts[len(stmts)-1]) {
		kind := TypeError
		if d.Kind == FunctionShader {
			kind = ShaderError
		}
		return newDiag(kind, d.Location,
			"function '%s' must end with a return statement", d.Name)
	}
	return nil
}

func (s *SemaContext) verifyBlock(scope *Scope, block *CodeBlock) error {
	for _, stmt := range block.Stmts {
		if err := s.verifyStmt(scope, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SemaContext) verifyStmt(scope *Scope, stmt Stmt) error {
	switch st := stmt.(type) {
	case *VarStmt:
		return s.verifyVarStmt(scope, st)
	case *AssignmentStmt:
		return s.verifyAssignment(scope, st.Target, st.Value, nil)
	case *CompoundStmt:
		return s.verifyAssignment(scope, st.Target, st.Value, &st.Op)
	case *ReturnStmt:
		return s.verifyReturn(scope, st)
	case *ForStmt:
		return s.verifyFor(scope, st)
	case *IfStmt:
		return s.verifyIf(scope, st)
	default:
		return newDiag(TypeError, stmt.Pos(), "unsupported statement")
	}
}

func (s *SemaContext) verifyVarStmt(scope *Scope, st *VarStmt) error {
	d := st.Decl
	if err := s.checkName(d.Name, d.Location); err != nil {
		return err
	}
	if scope.ContainsSymbolHere(d.Name) {
		return newDiag(NameError, d.Location, "symbol '%s' is already declared", d.Name)
	}
	if err := s.verifyExpr(scope, d.Value); err != nil {
		return err
	}
	d.Type = d.Value.ResolvedType()
	if d.IsConst {
		folded, err := Evaluate(d.Value)
		if err != nil {
			return err
		}
		d.FoldedValue = folded
	}
	d.isVerified = true
	scope.AddSymbol(d.Name, d)
	return nil
}

// verifyAssignment checks a plain or compound assignment. op is the
// compound operator, or nil for plain assignments.
func (s *SemaContext) verifyAssignment(scope *Scope, target, value Expr, op *BinaryOpKind) error {
	if err := s.verifyExpr(scope, target); err != nil {
		return err
	}
	if err := s.verifyExpr(scope, value); err != nil {
		return err
	}
	if err := s.checkMutable(target); err != nil {
		return err
	}

	targetType := target.ResolvedType()
	valueType := value.ResolvedType()

	if op != nil {
		result := BinaryOpResultType(*op, targetType, valueType)
		if result == nil {
			return newDiag(TypeError, value.Pos(),
				"operator '%s' is not defined between types '%s' and '%s'",
				*op, targetType.TypeName(), valueType.TypeName())
		}
		if result != targetType {
			return newDiag(TypeError, value.Pos(),
				"compound assignment changes the type of '%s'", targetType.TypeName())
		}
		return nil
	}

	if targetType != valueType {
		return newDiag(TypeError, value.Pos(),
			"cannot assign a value of type '%s' to a target of type '%s'",
			valueType.TypeName(), targetType.TypeName())
	}
	return nil
}

// checkMutable rejects assignments to immutable or temporary targets.
// Member access chains are mutable when their root binding is.
func (s *SemaContext) checkMutable(target Expr) error {
	switch t := target.(type) {
	case *ParenExpr:
		return s.checkMutable(t.Inner)

	case *SubscriptExpr:
		return newDiag(MutationError, t.Location, "subscript assignment is not supported")

	case *BinaryExpr:
		if t.Op != OpMemberAccess {
			return newDiag(MutationError, t.Location, "cannot assign to a temporary value")
		}
		if t.swizzle != "" {
			return newDiag(MutationError, t.Location, "cannot assign to a swizzle")
		}
		return s.checkMutable(t.Lhs)

	case *SymAccessExpr:
		switch d := t.Decl.(type) {
		case *VarDecl:
			if d.IsSystemValue() {
				return newDiag(MutationError, t.Location,
					"cannot assign to system value '%s'", t.Name)
			}
			if d.IsConst {
				return newDiag(MutationError, t.Location,
					"cannot assign to constant '%s'", t.Name)
			}
			return nil
		case *FunctionParamDecl:
			return newDiag(MutationError, t.Location,
				"cannot assign to parameter '%s'", t.Name)
		case *ForLoopVariableDecl:
			return newDiag(MutationError, t.Location,
				"cannot assign to loop variable '%s'", t.Name)
		case *ShaderParamDecl:
			return newDiag(MutationError, t.Location,
				"cannot assign to shader parameter '%s'", t.Name)
		default:
			return newDiag(MutationError, t.Location, "cannot assign to '%s'", t.Name)
		}

	default:
		return newDiag(MutationError, target.Pos(), "cannot assign to a temporary value")
	}
}

func (s *SemaContext) verifyReturn(scope *Scope, st *ReturnStmt) error {
	fn := scope.Function()
	if fn == nil {
		return newDiag(ParseError, st.Location, "return outside of a function")
	}
	if err := s.verifyExpr(scope, st.Value); err != nil {
		return err
	}
	valueType := st.Value.ResolvedType()
	if valueType != fn.ReturnType {
		return newDiag(TypeError, st.Location,
			"cannot return a value of type '%s' from a function returning '%s'",
			valueType.TypeName(), fn.ReturnType.TypeName())
	}
	return nil
}

func (s *SemaContext) verifyFor(scope *Scope, st *ForStmt) error {
	if err := s.verifyExpr(scope, st.Range.Start); err != nil {
		return err
	}
	if err := s.verifyExpr(scope, st.Range.End); err != nil {
		return err
	}

	startType := st.Range.Start.ResolvedType()
	endType := st.Range.End.ResolvedType()
	if startType != IntType || endType != IntType {
		return newDiag(TypeError, st.Range.Location,
			"for loop bounds must be of type 'int', got '%s' and '%s'",
			startType.TypeName(), endType.TypeName())
	}
	st.Range.typ = IntType

	if err := s.checkName(st.Variable.Name, st.Variable.Location); err != nil {
		return err
	}
	st.Variable.Type = IntType

	body := scope.Child(ContextNormal)
	body.AddSymbol(st.Variable.Name, st.Variable)
	return s.verifyBlock(body, st.Body)
}

func (s *SemaContext) verifyIf(scope *Scope, st *IfStmt) error {
	// A nil condition is the trailing else branch.
	if st.Condition != nil {
		if err := s.verifyExpr(scope, st.Condition); err != nil {
			return err
		}
		if st.Condition.ResolvedType() != BoolType {
			return newDiag(TypeError, st.Condition.Pos(),
				"if condition must be of type 'bool', got '%s'",
				st.Condition.ResolvedType().TypeName())
		}
	}
	if err := s.verifyBlock(scope.Child(ContextNormal), st.Body); err != nil {
		return err
	}
	if st.Next != nil {
		return s.verifyIf(scope, st.Next)
	}
	return nil
}

// verifyExpr resolves the names and type of an expression tree.
func (s *SemaContext) verifyExpr(scope *Scope, expr Expr) error {
	switch e := expr.(type) {
	case *IntLiteralExpr:
		e.typ = IntType
	case *BoolLiteralExpr:
		e.typ = BoolType
	case *FloatLiteralExpr:
		e.typ = FloatType
	case *ScientificLiteralExpr:
		e.typ = FloatType
	case *HexLiteralExpr:
		e.typ = IntType

	case *ParenExpr:
		if err := s.verifyExpr(scope, e.Inner); err != nil {
			return err
		}
		e.typ = e.Inner.ResolvedType()

	case *UnaryExpr:
		return s.verifyUnary(scope, e)

	case *BinaryExpr:
		return s.verifyBinary(scope, e)

	case *SymAccessExpr:
		return s.verifySymAccess(scope, e)

	case *FunctionCallExpr:
		return s.verifyCall(scope, e)

	case *StructCtorCall:
		return s.verifyStructCtorCall(scope, e)

	case *SubscriptExpr:
		return s.verifySubscript(scope, e)

	case *TernaryExpr:
		return s.verifyTernary(scope, e)

	case *RangeExpr:
		return newDiag(ParseError, e.Location, "a range is only valid in a for loop")

	default:
		return newDiag(TypeError, expr.Pos(), "unsupported expression")
	}
	return nil
}

func (s *SemaContext) verifyUnary(scope *Scope, e *UnaryExpr) error {
	if err := s.verifyExpr(scope, e.Operand); err != nil {
		return err
	}
	operandType := e.Operand.ResolvedType()

	switch e.Op {
	case UnaryNegate:
		if operandType != IntType && operandType != FloatType && !IsVectorType(operandType) {
			return newDiag(TypeError, e.Location,
				"operator '-' is not defined for type '%s'", operandType.TypeName())
		}
	case UnaryLogicalNot:
		if operandType != BoolType {
			return newDiag(TypeError, e.Location,
				"operator '!' is not defined for type '%s'", operandType.TypeName())
		}
	}
	e.typ = operandType
	return nil
}

func (s *SemaContext) verifyBinary(scope *Scope, e *BinaryExpr) error {
	if e.Op == OpMemberAccess {
		return s.verifyMemberAccess(scope, e)
	}

	if err := s.verifyExpr(scope, e.Lhs); err != nil {
		return err
	}
	if err := s.verifyExpr(scope, e.Rhs); err != nil {
		return err
	}

	lhsType := e.Lhs.ResolvedType()
	rhsType := e.Rhs.ResolvedType()

	result := BinaryOpResultType(e.Op, lhsType, rhsType)
	if result == nil {
		return newDiag(TypeError, e.Location,
			"operator '%s' is not defined between types '%s' and '%s'",
			e.Op, lhsType.TypeName(), rhsType.TypeName())
	}
	e.typ = result
	return nil
}

// verifyMemberAccess resolves `expr.member`: a swizzle on vectors, a
// field access on structs.
func (s *SemaContext) verifyMemberAccess(scope *Scope, e *BinaryExpr) error {
	if err := s.verifyExpr(scope, e.Lhs); err != nil {
		return err
	}
	member, ok := e.Rhs.(*SymAccessExpr)
	if !ok {
		return newDiag(ParseError, e.Rhs.Pos(), "expected a member name")
	}

	lhsType := e.Lhs.ResolvedType()

	if IsVectorType(lhsType) {
		swizzleType, err := swizzleResultType(lhsType, member.Name, member.Location)
		if err != nil {
			return err
		}
		e.swizzle = member.Name
		member.typ = swizzleType
		e.typ = swizzleType
		return nil
	}

	if st, ok := lhsType.(*StructDecl); ok {
		field := st.FindField(member.Name)
		if field == nil {
			return newDiag(TypeError, member.Location,
				"struct '%s' has no field named '%s'", st.Name, member.Name)
		}
		member.Decl = field
		member.typ = field.Type
		e.typ = field.Type
		return nil
	}

	return newDiag(TypeError, e.Location,
		"type '%s' has no members", lhsType.TypeName())
}

// swizzleResultType validates a swizzle pattern against the component
// count of the source vector and returns the result type.
func swizzleResultType(vec Type, pattern string, loc SourceLocation) (Type, error) {
	size := VectorSize(vec)
	if len(pattern) < 1 || len(pattern) > 4 {
		return nil, newDiag(TypeError, loc, "invalid swizzle '%s'", pattern)
	}
	for i := 0; i < len(pattern); i++ {
		component := strings.IndexByte("xyzw", pattern[i])
		if component < 0 || component >= size {
			return nil, newDiag(TypeError, loc,
				"invalid swizzle '%s' for type '%s'", pattern, vec.TypeName())
		}
	}
	return vectorTypeOfSize(len(pattern)), nil
}

func (s *SemaContext) verifySymAccess(scope *Scope, e *SymAccessExpr) error {
	candidates := scope.LookupSymbol(e.Name)
	if len(candidates) == 0 {
		msg := "undefined symbol '" + e.Name + "'"
		if suggestion := scope.Suggest(e.Name); suggestion != "" {
			msg += "; did you mean '" + suggestion + "'?"
		}
		return newDiag(NameError, e.Location, "%s", msg)
	}

	if len(candidates) > 1 {
		return newDiag(OverloadError, e.Location,
			"'%s' is overloaded and cannot be referenced without a call", e.Name)
	}

	decl := candidates[0]
	switch d := decl.(type) {
	case *VarDecl:
		e.Decl = d
		e.typ = d.Type
	case *FunctionParamDecl:
		e.Decl = d
		e.typ = d.Type
	case *ForLoopVariableDecl:
		e.Decl = d
		e.typ = d.Type
	case *ShaderParamDecl:
		e.Decl = d
		e.typ = d.Type
	case *FunctionDecl:
		return newDiag(TypeError, e.Location,
			"function '%s' must be called", e.Name)
	case *StructDecl:
		return newDiag(TypeError, e.Location,
			"type '%s' cannot be used as a value", e.Name)
	default:
		return newDiag(NameError, e.Location, "'%s' cannot be used here", e.Name)
	}
	return nil
}

func (s *SemaContext) verifyCall(scope *Scope, e *FunctionCallExpr) error {
	callee, ok := e.Callee.(*SymAccessExpr)
	if !ok {
		return newDiag(ParseError, e.Location, "expected a function name")
	}

	callScope := scope.Child(ContextFunctionCall)
	callScope.SetCallArgs(e.Args)
	for _, arg := range e.Args {
		if err := s.verifyExpr(callScope, arg); err != nil {
			return err
		}
	}

	candidates := scope.LookupSymbol(callee.Name)
	if len(candidates) == 0 {
		msg := "undefined symbol '" + callee.Name + "'"
		if suggestion := scope.Suggest(callee.Name); suggestion != "" {
			msg += "; did you mean '" + suggestion + "'?"
		}
		return newDiag(NameError, callee.Location, "%s", msg)
	}

	var overloads []*FunctionDecl
	for _, c := range candidates {
		if fn, ok := c.(*FunctionDecl); ok {
			overloads = append(overloads, fn)
		}
	}
	if len(overloads) == 0 {
		return newDiag(TypeError, callee.Location,
			"'%s' is not a function", callee.Name)
	}

	var matches []*FunctionDecl
	for _, fn := range overloads {
		if callMatches(fn, e.Args) {
			matches = append(matches, fn)
		}
	}

	switch len(matches) {
	case 0:
		return newDiag(OverloadError, e.Location,
			"no overload of '%s' matches argument types (%s)",
			callee.Name, argTypeList(e.Args))
	case 1:
	default:
		return newDiag(OverloadError, e.Location,
			"call to '%s' with argument types (%s) is ambiguous",
			callee.Name, argTypeList(e.Args))
	}

	fn := matches[0]
	if fn.Kind == FunctionShader {
		return newDiag(ShaderError, e.Location,
			"shader '%s' cannot be called", fn.Name)
	}

	e.Function = fn
	callee.Decl = fn
	callee.typ = fn.ReturnType
	e.typ = fn.ReturnType
	return nil
}

// callMatches reports whether a call's argument types satisfy one
// overload. Functions with AllowsImplicitCast additionally accept
// compile-time constant integers in float slots.
func callMatches(fn *FunctionDecl, args []Expr) bool {
	if len(fn.Params) != len(args) {
		return false
	}
	for i, param := range fn.Params {
		argType := args[i].ResolvedType()
		if argType == param.Type {
			continue
		}
		if fn.AllowsImplicitCast && param.Type == FloatType && argType == IntType &&
			isConstantInt(args[i]) {
			continue
		}
		return false
	}
	return true
}

// isConstantInt reports whether an expression folds to an integer
// constant.
func isConstantInt(expr Expr) bool {
	v, err := Evaluate(expr)
	return err == nil && v.Kind == ConstantInt
}

func argTypeList(args []Expr) string {
	names := make([]string, len(args))
	for i, arg := range args {
		names[i] = arg.ResolvedType().TypeName()
	}
	return strings.Join(names, ", ")
}

func (s *SemaContext) verifyStructCtorCall(scope *Scope, e *StructCtorCall) error {
	callee, ok := e.Callee.(*SymAccessExpr)
	if !ok {
		return newDiag(ParseError, e.Location, "expected a struct name")
	}

	t := scope.LookupType(callee.Name)
	if t == nil {
		msg := "undefined type '" + callee.Name + "'"
		if suggestion := scope.Suggest(callee.Name); suggestion != "" {
			msg += "; did you mean '" + suggestion + "'?"
		}
		return newDiag(NameError, callee.Location, "%s", msg)
	}
	st, ok := t.(*StructDecl)
	if !ok || st.IsBuiltin {
		return newDiag(TypeError, callee.Location,
			"type '%s' is not a constructible struct", callee.Name)
	}

	initialized := make(map[string]struct{}, len(e.Args))
	for _, arg := range e.Args {
		field := st.FindField(arg.Name)
		if field == nil {
			return newDiag(NameError, arg.Location,
				"struct '%s' has no field named '%s'", st.Name, arg.Name)
		}
		if err := s.verifyExpr(scope, arg.Value); err != nil {
			return err
		}
		valueType := arg.Value.ResolvedType()
		if valueType != field.Type {
			return newDiag(TypeError, arg.Value.Pos(),
				"cannot initialize field '%s' of type '%s' with a value of type '%s'",
				arg.Name, field.Type.TypeName(), valueType.TypeName())
		}
		arg.typ = field.Type
		initialized[arg.Name] = struct{}{}
	}

	for _, field := range st.Fields {
		if _, ok := initialized[field.Name]; !ok {
			return newDiag(TypeError, e.Location,
				"missing initializer for field '%s' of struct '%s'", field.Name, st.Name)
		}
	}

	e.Struct = st
	callee.typ = st
	e.typ = st
	return nil
}

func (s *SemaContext) verifySubscript(scope *Scope, e *SubscriptExpr) error {
	if err := s.verifyExpr(scope, e.Base); err != nil {
		return err
	}
	if err := s.verifyExpr(scope, e.Index); err != nil {
		return err
	}

	arr, ok := e.Base.ResolvedType().(*ArrayType)
	if !ok {
		return newDiag(TypeError, e.Location,
			"type '%s' cannot be subscripted", e.Base.ResolvedType().TypeName())
	}
	if e.Index.ResolvedType() != IntType {
		return newDiag(TypeError, e.Index.Pos(),
			"array index must be of type 'int', got '%s'",
			e.Index.ResolvedType().TypeName())
	}
	e.typ = arr.Element
	return nil
}

func (s *SemaContext) verifyTernary(scope *Scope, e *TernaryExpr) error {
	if err := s.verifyExpr(scope, e.Condition); err != nil {
		return err
	}
	if e.Condition.ResolvedType() != BoolType {
		return newDiag(TypeError, e.Condition.Pos(),
			"ternary condition must be of type 'bool', got '%s'",
			e.Condition.ResolvedType().TypeName())
	}
	if err := s.verifyExpr(scope, e.TrueExpr); err != nil {
		return err
	}
	if err := s.verifyExpr(scope, e.FalseExpr); err != nil {
		return err
	}

	trueType := e.TrueExpr.ResolvedType()
	falseType := e.FalseExpr.ResolvedType()
	if trueType != falseType {
		return newDiag(TypeError, e.Location,
			"ternary branches have mismatched types '%s' and '%s'",
			trueType.TypeName(), falseType.TypeName())
	}
	e.typ = trueType
	return nil
}

// resolveType replaces unresolved placeholders with real types and folds
// array sizes.
func (s *SemaContext) resolveType(scope *Scope, t Type) (Type, error) {
	switch tt := t.(type) {
	case *UnresolvedType:
		resolved := scope.LookupType(tt.Name)
		if resolved == nil {
			msg := "undefined type '" + tt.Name + "'"
			if suggestion := scope.Suggest(tt.Name); suggestion != "" {
				msg += "; did you mean '" + suggestion + "'?"
			}
			return nil, newDiag(NameError, tt.Location, "%s", msg)
		}
		return resolved, nil

	case *ArrayType:
		element, err := s.resolveType(scope, tt.Element)
		if err != nil {
			return nil, err
		}
		tt.Element = element
		if tt.SizeExpr != nil && tt.Size == 0 {
			if err := s.verifyExpr(scope, tt.SizeExpr); err != nil {
				return nil, err
			}
			size, err := foldArraySize(tt.SizeExpr)
			if err != nil {
				return nil, err
			}
			tt.Size = size
		}
		return tt, nil

	default:
		return t, nil
	}
}
