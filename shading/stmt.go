package shading

// VarStmt declares a local binding.
type VarStmt struct {
	Decl     *VarDecl
	Location SourceLocation
}

func (s *VarStmt) Pos() SourceLocation { return s.Location }
func (s *VarStmt) stmtNode()           {}

// AssignmentStmt assigns Value to the lvalue Target.
type AssignmentStmt struct {
	Target   Expr
	Value    Expr
	Location SourceLocation
}

func (s *AssignmentStmt) Pos() SourceLocation { return s.Location }
func (s *AssignmentStmt) stmtNode()           {}

// CompoundStmt is a compound assignment: +=, -=, *= or /=.
type CompoundStmt struct {
	Target   Expr
	Op       BinaryOpKind
	Value    Expr
	Location SourceLocation
}

func (s *CompoundStmt) Pos() SourceLocation { return s.Location }
func (s *CompoundStmt) stmtNode()           {}

// ReturnStmt returns Value from the enclosing function.
type ReturnStmt struct {
	Value    Expr
	Location SourceLocation
}

func (s *ReturnStmt) Pos() SourceLocation { return s.Location }
func (s *ReturnStmt) stmtNode()           {}

// ForStmt is the range-based loop `for (x in start..end) { ... }`.
type ForStmt struct {
	Variable *ForLoopVariableDecl
	Range    *RangeExpr
	Body     *CodeBlock
	Location SourceLocation
}

func (s *ForStmt) Pos() SourceLocation { return s.Location }
func (s *ForStmt) stmtNode()           {}

// IfStmt is an if/else-if/else chain. Next links the following branch;
// a branch with a nil Condition is a plain else.
type IfStmt struct {
	Condition Expr
	Body      *CodeBlock
	Next      *IfStmt
	Location  SourceLocation
}

func (s *IfStmt) Pos() SourceLocation { return s.Location }
func (s *IfStmt) stmtNode()           {}
