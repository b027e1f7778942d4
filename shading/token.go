package shading

// TokenKind represents the type of token.
type TokenKind uint8

const (
	TokenBeginningOfFile TokenKind = iota
	TokenEndOfFile

	// Literals
	TokenIdentifier
	TokenKeyword
	TokenIntLiteral
	TokenUIntLiteral
	TokenFloatLiteral
	TokenScientificNumber
	TokenHexNumber

	// Single-character symbols
	TokenLeftParen    // (
	TokenRightParen   // )
	TokenLeftBrace    // {
	TokenRightBrace   // }
	TokenLeftBracket  // [
	TokenRightBracket // ]
	TokenSemicolon    // ;
	TokenComma        // ,
	TokenDot          // .
	TokenPlus         // +
	TokenMinus        // -
	TokenAsterisk     // *
	TokenForwardSlash // /
	TokenPercent      // %
	TokenEqual        // =
	TokenLess         // <
	TokenGreater      // >
	TokenExclamation  // !
	TokenQuestionMark // ?
	TokenColon        // :
	TokenAmpersand    // &
	TokenBar          // |
	TokenHat          // ^
	TokenTilde        // ~
	TokenAt           // @
	TokenNumberSign   // #
	TokenDollar       // $
	TokenSingleQuote  // '
	TokenDoubleQuote  // "
	TokenBackslash    // \
	TokenBacktick     // `

	// Multi-character symbols
	TokenLeftShift          // <<
	TokenRightShift         // >>
	TokenLessEqual          // <=
	TokenGreaterEqual       // >=
	TokenLogicalEqual       // ==
	TokenLogicalNotEqual    // !=
	TokenLogicalAnd         // &&
	TokenLogicalOr          // ||
	TokenCompoundAdd        // +=
	TokenCompoundSubtract   // -=
	TokenCompoundMultiply   // *=
	TokenCompoundDivide     // /=
	TokenDotDot             // ..
	TokenRightArrow         // ->
)

// Keywords reserved by the language. `include` is reserved for a future
// preprocessor and currently has no semantics.
var keywords = map[string]struct{}{
	"struct":  {},
	"return":  {},
	"var":     {},
	"const":   {},
	"for":     {},
	"if":      {},
	"else":    {},
	"in":      {},
	"true":    {},
	"false":   {},
	"include": {},
}

// singleCharSymbols maps each recognised symbol character to its kind.
var singleCharSymbols = map[byte]TokenKind{
	'(':  TokenLeftParen,
	')':  TokenRightParen,
	'{':  TokenLeftBrace,
	'}':  TokenRightBrace,
	'[':  TokenLeftBracket,
	']':  TokenRightBracket,
	';':  TokenSemicolon,
	',':  TokenComma,
	'.':  TokenDot,
	'+':  TokenPlus,
	'-':  TokenMinus,
	'*':  TokenAsterisk,
	'/':  TokenForwardSlash,
	'%':  TokenPercent,
	'=':  TokenEqual,
	'<':  TokenLess,
	'>':  TokenGreater,
	'!':  TokenExclamation,
	'?':  TokenQuestionMark,
	':':  TokenColon,
	'&':  TokenAmpersand,
	'|':  TokenBar,
	'^':  TokenHat,
	'~':  TokenTilde,
	'@':  TokenAt,
	'#':  TokenNumberSign,
	'$':  TokenDollar,
	'\'': TokenSingleQuote,
	'"':  TokenDoubleQuote,
	'\\': TokenBackslash,
	'`':  TokenBacktick,
}

// String returns the string representation of the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenBeginningOfFile:
		return "BeginningOfFile"
	case TokenEndOfFile:
		return "EndOfFile"
	case TokenIdentifier:
		return "Identifier"
	case TokenKeyword:
		return "Keyword"
	case TokenIntLiteral:
		return "IntLiteral"
	case TokenUIntLiteral:
		return "UIntLiteral"
	case TokenFloatLiteral:
		return "FloatLiteral"
	case TokenScientificNumber:
		return "ScientificNumber"
	case TokenHexNumber:
		return "HexNumber"
	case TokenLeftParen:
		return "("
	case TokenRightParen:
		return ")"
	case TokenLeftBrace:
		return "{"
	case TokenRightBrace:
		return "}"
	case TokenLeftBracket:
		return "["
	case TokenRightBracket:
		return "]"
	case TokenSemicolon:
		return ";"
	case TokenComma:
		return ","
	case TokenDot:
		return "."
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenAsterisk:
		return "*"
	case TokenForwardSlash:
		return "/"
	case TokenPercent:
		return "%"
	case TokenEqual:
		return "="
	case TokenLess:
		return "<"
	case TokenGreater:
		return ">"
	case TokenExclamation:
		return "!"
	case TokenQuestionMark:
		return "?"
	case TokenColon:
		return ":"
	case TokenAmpersand:
		return "&"
	case TokenBar:
		return "|"
	case TokenHat:
		return "^"
	case TokenTilde:
		return "~"
	case TokenAt:
		return "@"
	case TokenNumberSign:
		return "#"
	case TokenDollar:
		return "$"
	case TokenSingleQuote:
		return "'"
	case TokenDoubleQuote:
		return "\""
	case TokenBackslash:
		return "\\"
	case TokenBacktick:
		return "`"
	case TokenLeftShift:
		return "<<"
	case TokenRightShift:
		return ">>"
	case TokenLessEqual:
		return "<="
	case TokenGreaterEqual:
		return ">="
	case TokenLogicalEqual:
		return "=="
	case TokenLogicalNotEqual:
		return "!="
	case TokenLogicalAnd:
		return "&&"
	case TokenLogicalOr:
		return "||"
	case TokenCompoundAdd:
		return "+="
	case TokenCompoundSubtract:
		return "-="
	case TokenCompoundMultiply:
		return "*="
	case TokenCompoundDivide:
		return "/="
	case TokenDotDot:
		return ".."
	case TokenRightArrow:
		return "->"
	default:
		return "Unknown"
	}
}

// Token represents a lexical token. Lexeme is a view into the original
// source text; for BeginningOfFile and EndOfFile it is empty.
type Token struct {
	Kind     TokenKind
	Lexeme   string
	Location SourceLocation
}

// Is reports whether the token is a keyword with the given spelling.
func (t Token) Is(keyword string) bool {
	return t.Kind == TokenKeyword && t.Lexeme == keyword
}

// end returns the byte offset one past the token's lexeme. Used to test
// textual adjacency during multi-character token assembly.
func (t Token) end() int {
	return t.Location.Offset + len(t.Lexeme)
}
