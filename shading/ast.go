package shading

// Node is the base interface for all AST nodes.
type Node interface {
	Pos() SourceLocation
}

// Decl is the interface for declarations.
type Decl interface {
	Node
	DeclName() string
	declNode()
}

// Stmt is the interface for statements.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is the interface for expressions. After verification every
// expression carries a resolved, non-unresolved type.
type Expr interface {
	Node
	// ResolvedType returns the expression's type, or nil before
	// verification.
	ResolvedType() Type
	exprNode()
}

// isa reports whether n has dynamic type T.
func isa[T Node](n Node) bool {
	_, ok := n.(T)
	return ok
}

// asa returns n as T, or the zero value when n has a different type.
func asa[T Node](n Node) T {
	v, _ := n.(T)
	return v
}

// AST is the result of parsing a single translation unit. Decls holds
// the top-level declarations in source order.
type AST struct {
	Filename string
	Decls    []Decl

	// Cache owns the unresolved and array type placeholders created
	// during parsing. Verification resolves against it.
	Cache *TypeCache

	// entryPoints caches the shader functions found during verification.
	entryPoints []*FunctionDecl

	isVerified  bool
	isOptimized bool
}

// IsVerified reports whether the AST has passed semantic verification.
func (a *AST) IsVerified() bool { return a.isVerified }

// IsOptimized reports whether the optimizer has run on the AST.
func (a *AST) IsOptimized() bool { return a.isOptimized }

// EntryPoint returns the shader function with the given name, or nil.
func (a *AST) EntryPoint(name string) *FunctionDecl {
	for _, fn := range a.entryPoints {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}

// CodeBlock is a braced sequence of statements with its own lexical
// scope.
type CodeBlock struct {
	Stmts    []Stmt
	Location SourceLocation
}

func (b *CodeBlock) Pos() SourceLocation { return b.Location }
