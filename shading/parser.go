package shading

import (
	"strconv"
	"strings"
)

// Parse parses a lexed token stream into an AST of top-level
// declarations.
//
// Accepted top-level forms: struct declarations, immutable const
// bindings, shader parameters and function definitions. Any token
// mismatch aborts parsing with a ParseError; no recovery is attempted.
func Parse(tokens []Token) (*AST, error) {
	p := &parser{tokens: tokens, cache: NewTypeCache()}

	if p.check(TokenBeginningOfFile) {
		p.advance()
	}

	ast := &AST{Cache: p.cache}
	if len(tokens) > 0 {
		ast.Filename = tokens[0].Location.File
	}

	for !p.isAtEnd() {
		decl, err := p.declaration()
		if err != nil {
			return nil, err
		}
		ast.Decls = append(ast.Decls, decl)
	}

	return ast, nil
}

// binaryOpPrecedence drives precedence climbing, multiplication
// tightest, logical-or loosest. Member access binds tighter than any
// of these, including unary operators; postfixExpr consumes it before
// climbing ever sees a dot.
var binaryOpPrecedence = map[BinaryOpKind]int{
	OpMultiply:     10,
	OpDivide:       10,
	OpAdd:          9,
	OpSubtract:     9,
	OpLeftShift:    8,
	OpRightShift:   8,
	OpLess:         7,
	OpLessEqual:    7,
	OpGreater:      7,
	OpGreaterEqual: 7,
	OpEqual:        6,
	OpNotEqual:     6,
	OpBitwiseAnd:   5,
	OpBitwiseXor:   4,
	OpBitwiseOr:    3,
	OpLogicalAnd:   2,
	OpLogicalOr:    1,
}

var tokenBinaryOps = map[TokenKind]BinaryOpKind{
	TokenAsterisk:        OpMultiply,
	TokenForwardSlash:    OpDivide,
	TokenPlus:            OpAdd,
	TokenMinus:           OpSubtract,
	TokenLeftShift:       OpLeftShift,
	TokenRightShift:      OpRightShift,
	TokenLess:            OpLess,
	TokenLessEqual:       OpLessEqual,
	TokenGreater:         OpGreater,
	TokenGreaterEqual:    OpGreaterEqual,
	TokenLogicalEqual:    OpEqual,
	TokenLogicalNotEqual: OpNotEqual,
	TokenAmpersand:       OpBitwiseAnd,
	TokenHat:             OpBitwiseXor,
	TokenBar:             OpBitwiseOr,
	TokenLogicalAnd:      OpLogicalAnd,
	TokenLogicalOr:       OpLogicalOr,
}

type parser struct {
	tokens  []Token
	current int
	cache   *TypeCache

	// constructStarts tracks the start locations of open constructs so
	// that an EOF inside one is reported at the construct's beginning.
	constructStarts []SourceLocation
}

// declaration parses a single top-level declaration.
func (p *parser) declaration() (Decl, error) {
	tok := p.peek()

	switch {
	case tok.Is("struct"):
		return p.structDecl()
	case tok.Is("const"):
		return p.constGlobal()
	case tok.Is("var"):
		return nil, newDiag(ParseError, tok.Location,
			"mutable global variables are not allowed; declare a 'const' or a shader parameter instead")
	case tok.Kind == TokenIdentifier:
		return p.functionOrShaderParam()
	default:
		return nil, newDiag(ParseError, tok.Location,
			"expected a struct, const, shader parameter or function declaration, got '%s'", tok.Lexeme)
	}
}

// structDecl parses `struct Name { Type field; ... }`.
func (p *parser) structDecl() (*StructDecl, error) {
	start := p.advance() // struct
	p.beginConstruct(start.Location)
	defer p.endConstruct()

	name, err := p.expectIdentifier("struct name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLeftBrace); err != nil {
		return nil, err
	}

	decl := &StructDecl{Name: name.Lexeme, Location: start.Location}

	for !p.check(TokenRightBrace) {
		fieldType, err := p.typeRef()
		if err != nil {
			return nil, err
		}
		fieldName, err := p.expectIdentifier("field name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenSemicolon); err != nil {
			return nil, err
		}
		decl.Fields = append(decl.Fields, &StructFieldDecl{
			Name:     fieldName.Lexeme,
			Type:     fieldType,
			Location: fieldName.Location,
			Parent:   decl,
		})
	}

	if _, err := p.expect(TokenRightBrace); err != nil {
		return nil, err
	}

	return decl, nil
}

// constGlobal parses `const name = expr;`.
func (p *parser) constGlobal() (*VarDecl, error) {
	start := p.advance() // const

	name, err := p.expectIdentifier("constant name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenEqual); err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}

	return &VarDecl{
		Name:     name.Lexeme,
		Value:    value,
		IsConst:  true,
		Location: start.Location,
	}, nil
}

// functionOrShaderParam parses the two type-led top-level forms:
// `Type name(params) { ... }` and `Type name [= default];`.
func (p *parser) functionOrShaderParam() (Decl, error) {
	declType, err := p.typeRef()
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier("declaration name")
	if err != nil {
		return nil, err
	}

	if p.check(TokenLeftParen) {
		return p.functionDecl(declType, name)
	}

	// Shader parameter
	var defaultValue Expr
	if p.match(TokenEqual) {
		defaultValue, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}

	return &ShaderParamDecl{
		Name:         name.Lexeme,
		Type:         declType,
		DefaultValue: defaultValue,
		Location:     name.Location,
	}, nil
}

// functionDecl parses a function definition after its return type and
// name have been consumed.
func (p *parser) functionDecl(returnType Type, name Token) (*FunctionDecl, error) {
	p.beginConstruct(name.Location)
	defer p.endConstruct()

	p.advance() // (

	params := make([]*FunctionParamDecl, 0, 4)
	for !p.check(TokenRightParen) {
		if len(params) > 0 {
			if _, err := p.expect(TokenComma); err != nil {
				return nil, err
			}
		}
		paramType, err := p.typeRef()
		if err != nil {
			return nil, err
		}
		paramName, err := p.expectIdentifier("parameter name")
		if err != nil {
			return nil, err
		}
		params = append(params, &FunctionParamDecl{
			Name:     paramName.Lexeme,
			Type:     paramType,
			Location: paramName.Location,
		})
	}
	if _, err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}

	kind := FunctionNormal
	if name.Lexeme == "main" {
		kind = FunctionShader
	}

	return &FunctionDecl{
		Name:       name.Lexeme,
		Kind:       kind,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
		Location:   name.Location,
	}, nil
}

// typeRef parses a type reference: an identifier optionally followed by
// `[expr]` for array types. Named types become unresolved placeholders
// until semantic verification.
func (p *parser) typeRef() (Type, error) {
	name, err := p.expectIdentifier("type name")
	if err != nil {
		return nil, err
	}

	var t Type = p.cache.Unresolved(name.Lexeme, name.Location)

	if p.check(TokenLeftBracket) {
		bracket := p.advance()
		sizeExpr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRightBracket); err != nil {
			return nil, err
		}
		t = p.cache.Array(t, sizeExpr, bracket.Location)
	}

	return t, nil
}

// block parses `{ stmt... }`.
func (p *parser) block() (*CodeBlock, error) {
	start, err := p.expect(TokenLeftBrace)
	if err != nil {
		return nil, err
	}
	p.beginConstruct(start.Location)
	defer p.endConstruct()

	blk := &CodeBlock{Location: start.Location}
	for !p.check(TokenRightBrace) {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		blk.Stmts = append(blk.Stmts, stmt)
	}

	if _, err := p.expect(TokenRightBrace); err != nil {
		return nil, err
	}

	return blk, nil
}

// statement parses a single statement.
func (p *parser) statement() (Stmt, error) {
	tok := p.peek()

	switch {
	case tok.Is("var"), tok.Is("const"):
		return p.varStmt()
	case tok.Is("return"):
		return p.returnStmt()
	case tok.Is("for"):
		return p.forStmt()
	case tok.Is("if"):
		return p.ifStmt()
	default:
		return p.assignmentStmt()
	}
}

// varStmt parses `var name = expr;` or `const name = expr;`.
func (p *parser) varStmt() (*VarStmt, error) {
	start := p.advance() // var | const
	isConst := start.Lexeme == "const"

	name, err := p.expectIdentifier("variable name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenEqual); err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}

	return &VarStmt{
		Decl: &VarDecl{
			Name:     name.Lexeme,
			Value:    value,
			IsConst:  isConst,
			Location: name.Location,
		},
		Location: start.Location,
	}, nil
}

func (p *parser) returnStmt() (*ReturnStmt, error) {
	start := p.advance() // return

	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}

	return &ReturnStmt{Value: value, Location: start.Location}, nil
}

// forStmt parses `for (x in start..end) { ... }`.
func (p *parser) forStmt() (*ForStmt, error) {
	start := p.advance() // for
	p.beginConstruct(start.Location)
	defer p.endConstruct()

	if _, err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier("loop variable name")
	if err != nil {
		return nil, err
	}
	inTok := p.peek()
	if !inTok.Is("in") {
		return nil, newDiag(ParseError, inTok.Location, "expected 'in', got '%s'", inTok.Lexeme)
	}
	p.advance()

	rangeExpr, err := p.rangeExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return &ForStmt{
		Variable: &ForLoopVariableDecl{Name: name.Lexeme, Location: name.Location},
		Range:    rangeExpr,
		Body:     body,
		Location: start.Location,
	}, nil
}

// rangeExpr parses `start..end`.
func (p *parser) rangeExpr() (*RangeExpr, error) {
	startExpr, err := p.expression()
	if err != nil {
		return nil, err
	}
	dots, err := p.expect(TokenDotDot)
	if err != nil {
		return nil, err
	}
	endExpr, err := p.expression()
	if err != nil {
		return nil, err
	}

	r := &RangeExpr{Start: startExpr, End: endExpr}
	r.Location = dots.Location
	return r, nil
}

// ifStmt parses an if/else-if/else chain.
func (p *parser) ifStmt() (*IfStmt, error) {
	start := p.advance() // if
	p.beginConstruct(start.Location)
	defer p.endConstruct()

	if _, err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}

	stmt := &IfStmt{Condition: cond, Body: body, Location: start.Location}

	if p.peek().Is("else") {
		elseTok := p.advance()
		if p.peek().Is("if") {
			next, err := p.ifStmt()
			if err != nil {
				return nil, err
			}
			stmt.Next = next
		} else {
			elseBody, err := p.block()
			if err != nil {
				return nil, err
			}
			stmt.Next = &IfStmt{Body: elseBody, Location: elseTok.Location}
		}
	}

	return stmt, nil
}

// assignmentStmt parses `lvalue = expr;` or a compound assignment.
func (p *parser) assignmentStmt() (Stmt, error) {
	start := p.peek()
	target, err := p.expression()
	if err != nil {
		return nil, err
	}

	var compound BinaryOpKind
	isCompound := true
	switch p.peek().Kind {
	case TokenEqual:
		isCompound = false
	case TokenCompoundAdd:
		compound = OpAdd
	case TokenCompoundSubtract:
		compound = OpSubtract
	case TokenCompoundMultiply:
		compound = OpMultiply
	case TokenCompoundDivide:
		compound = OpDivide
	default:
		return nil, newDiag(ParseError, p.peek().Location,
			"expected an assignment, got '%s'", p.peek().Lexeme)
	}
	p.advance()

	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}

	if isCompound {
		return &CompoundStmt{Target: target, Op: compound, Value: value, Location: start.Location}, nil
	}
	return &AssignmentStmt{Target: target, Value: value, Location: start.Location}, nil
}

// expression parses a full expression including the ternary suffix.
func (p *parser) expression() (Expr, error) {
	expr, err := p.binaryExpr(1)
	if err != nil {
		return nil, err
	}

	// Ternary suffix
	if p.check(TokenQuestionMark) {
		q := p.advance()
		trueExpr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenColon); err != nil {
			return nil, err
		}
		falseExpr, err := p.expression()
		if err != nil {
			return nil, err
		}
		t := &TernaryExpr{Condition: expr, TrueExpr: trueExpr, FalseExpr: falseExpr}
		t.Location = q.Location
		return t, nil
	}

	return expr, nil
}

// binaryExpr implements precedence climbing over the fixed operator
// table.
func (p *parser) binaryExpr(minPrecedence int) (Expr, error) {
	lhs, err := p.unaryExpr()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := tokenBinaryOps[p.peek().Kind]
		if !ok || binaryOpPrecedence[op] < minPrecedence {
			return lhs, nil
		}
		opTok := p.advance()

		rhs, err := p.binaryExpr(binaryOpPrecedence[op] + 1)
		if err != nil {
			return nil, err
		}

		bin := &BinaryExpr{Op: op, Lhs: lhs, Rhs: rhs}
		bin.Location = opTok.Location
		lhs = bin
	}
}

// unaryExpr parses `-x`, `!x` or a postfix expression. The operand of
// a unary operator is a postfix expression, so `-a.b` negates the
// member, not the object.
func (p *parser) unaryExpr() (Expr, error) {
	tok := p.peek()

	var op UnaryOpKind
	switch tok.Kind {
	case TokenMinus:
		op = UnaryNegate
	case TokenExclamation:
		op = UnaryLogicalNot
	default:
		return p.postfixExpr()
	}

	p.advance()
	operand, err := p.unaryExpr()
	if err != nil {
		return nil, err
	}

	u := &UnaryExpr{Op: op, Operand: operand}
	u.Location = tok.Location
	return u, nil
}

// postfixExpr parses a primary expression followed by a member-access
// chain.
func (p *parser) postfixExpr() (Expr, error) {
	expr, err := p.primaryExpr()
	if err != nil {
		return nil, err
	}

	for p.check(TokenDot) {
		dot := p.advance()
		member, err := p.expectIdentifier("member name")
		if err != nil {
			return nil, err
		}
		sym := &SymAccessExpr{Name: member.Lexeme}
		sym.Location = member.Location

		bin := &BinaryExpr{Op: OpMemberAccess, Lhs: expr, Rhs: sym}
		bin.Location = dot.Location
		expr = bin
	}
	return expr, nil
}

// primaryExpr parses literals, parenthesised expressions and symbol
// accesses with their optional call, struct-constructor or subscript
// suffix.
func (p *parser) primaryExpr() (Expr, error) {
	tok := p.peek()

	switch tok.Kind {
	case TokenLeftParen:
		p.advance()
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
		e := &ParenExpr{Inner: inner}
		e.Location = tok.Location
		return e, nil

	case TokenIntLiteral, TokenUIntLiteral:
		p.advance()
		raw := strings.TrimSuffix(tok.Lexeme, "u")
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, newDiag(LexError, tok.Location, "malformed integer literal %q", tok.Lexeme)
		}
		e := &IntLiteralExpr{Value: value, IsUnsigned: tok.Kind == TokenUIntLiteral}
		e.Location = tok.Location
		return e, nil

	case TokenFloatLiteral:
		p.advance()
		value, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, newDiag(LexError, tok.Location, "malformed float literal %q", tok.Lexeme)
		}
		e := &FloatLiteralExpr{Value: value}
		e.Location = tok.Location
		return e, nil

	case TokenScientificNumber:
		p.advance()
		value, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, newDiag(LexError, tok.Location, "malformed scientific literal %q", tok.Lexeme)
		}
		e := &ScientificLiteralExpr{Value: value, Raw: tok.Lexeme}
		e.Location = tok.Location
		return e, nil

	case TokenHexNumber:
		p.advance()
		value, err := strconv.ParseInt(tok.Lexeme[2:], 16, 64)
		if err != nil {
			return nil, newDiag(LexError, tok.Location, "malformed hex literal %q", tok.Lexeme)
		}
		e := &HexLiteralExpr{Value: value, Raw: tok.Lexeme}
		e.Location = tok.Location
		return e, nil

	case TokenKeyword:
		if tok.Lexeme == "true" || tok.Lexeme == "false" {
			p.advance()
			e := &BoolLiteralExpr{Value: tok.Lexeme == "true"}
			e.Location = tok.Location
			return e, nil
		}
		return nil, newDiag(ParseError, tok.Location, "unexpected keyword '%s' in expression", tok.Lexeme)

	case TokenIdentifier:
		p.advance()
		sym := &SymAccessExpr{Name: tok.Lexeme}
		sym.Location = tok.Location
		return p.primarySuffix(sym)

	default:
		return nil, newDiag(ParseError, tok.Location, "unexpected '%s' in expression", tok.Lexeme)
	}
}

// primarySuffix parses the optional call, struct-constructor or
// subscript suffix of a symbol access.
func (p *parser) primarySuffix(sym *SymAccessExpr) (Expr, error) {
	switch p.peek().Kind {
	case TokenLeftParen:
		start := p.advance()
		p.beginConstruct(sym.Location)
		defer p.endConstruct()

		call := &FunctionCallExpr{Callee: sym}
		call.Location = start.Location
		for !p.check(TokenRightParen) {
			if len(call.Args) > 0 {
				if _, err := p.expect(TokenComma); err != nil {
					return nil, err
				}
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
		}
		if _, err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
		return call, nil

	case TokenLeftBrace:
		start := p.advance()
		p.beginConstruct(sym.Location)
		defer p.endConstruct()

		ctor := &StructCtorCall{Callee: sym}
		ctor.Location = start.Location
		seen := make(map[string]struct{})
		for !p.check(TokenRightBrace) {
			if len(ctor.Args) > 0 {
				if _, err := p.expect(TokenComma); err != nil {
					return nil, err
				}
			}
			name, err := p.expectIdentifier("field name")
			if err != nil {
				return nil, err
			}
			if _, dup := seen[name.Lexeme]; dup {
				return nil, newDiag(ParseError, name.Location,
					"duplicate field '%s' in constructor call", name.Lexeme)
			}
			seen[name.Lexeme] = struct{}{}
			if _, err := p.expect(TokenEqual); err != nil {
				return nil, err
			}
			value, err := p.expression()
			if err != nil {
				return nil, err
			}
			arg := &StructCtorArg{Name: name.Lexeme, Value: value}
			arg.Location = name.Location
			ctor.Args = append(ctor.Args, arg)
		}
		if _, err := p.expect(TokenRightBrace); err != nil {
			return nil, err
		}
		return ctor, nil

	case TokenLeftBracket:
		start := p.advance()
		index, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRightBracket); err != nil {
			return nil, err
		}
		sub := &SubscriptExpr{Base: sym, Index: index}
		sub.Location = start.Location
		return sub, nil

	default:
		return sym, nil
	}
}

// Helper methods

func (p *parser) peek() Token {
	return p.tokens[p.current]
}

func (p *parser) advance() Token {
	tok := p.tokens[p.current]
	if !p.isAtEnd() {
		p.current++
	}
	return tok
}

func (p *parser) isAtEnd() bool {
	return p.peek().Kind == TokenEndOfFile
}

func (p *parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *parser) match(kind TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return Token{}, p.unexpected("'" + kind.String() + "'")
}

func (p *parser) expectIdentifier(what string) (Token, error) {
	if p.check(TokenIdentifier) {
		return p.advance(), nil
	}
	return Token{}, p.unexpected(what)
}

// unexpected builds a ParseError for the current token. An EndOfFile is
// reported at the start of the innermost open construct.
func (p *parser) unexpected(expected string) error {
	tok := p.peek()
	if tok.Kind == TokenEndOfFile {
		loc := tok.Location
		if n := len(p.constructStarts); n > 0 {
			loc = p.constructStarts[n-1]
		}
		return newDiag(ParseError, loc, "unexpected end of file; expected %s", expected)
	}
	return newDiag(ParseError, tok.Location, "expected %s, got '%s'", expected, tok.Lexeme)
}

func (p *parser) beginConstruct(loc SourceLocation) {
	p.constructStarts = append(p.constructStarts, loc)
}

func (p *parser) endConstruct() {
	p.constructStarts = p.constructStarts[:len(p.constructStarts)-1]
}
