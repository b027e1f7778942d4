package shading

// Lex tokenizes shader source code.
//
// The returned list always begins with a BeginningOfFile token and ends
// with an EndOfFile token; every other token spans a non-empty substring
// of source.
//
// Lexing runs in up to three stages. The first stage performs a single
// left-to-right pass that classifies each character as digit, letter
// (including '_') or symbol and produces a cut whenever the
// classification changes. When postProcess is set, two further passes
// assemble multi-character tokens (compound operators, float, scientific,
// hex and unsigned literals) and strip '//' comments.
func Lex(source, filename string, postProcess bool) ([]Token, error) {
	l := &lexer{source: source, filename: filename}

	tokens, err := l.scan()
	if err != nil {
		return nil, err
	}

	if postProcess {
		tokens, err = assembleMultiCharTokens(source, tokens)
		if err != nil {
			return nil, err
		}
		tokens = removeComments(tokens)
	}

	bof := Token{
		Kind:     TokenBeginningOfFile,
		Location: SourceLocation{File: filename, Line: 1, Column: 1},
	}
	eof := Token{
		Kind:     TokenEndOfFile,
		Location: l.location(),
	}

	result := make([]Token, 0, len(tokens)+2)
	result = append(result, bof)
	result = append(result, tokens...)
	result = append(result, eof)

	return result, nil
}

// lexer performs the raw classification pass.
type lexer struct {
	source   string
	filename string
	pos      int
	line     int
	column   int
}

// charClass is the classification of a single source character.
type charClass uint8

const (
	classDigit charClass = iota
	classLetter
	classSymbol
	classSpace
	classInvalid
)

func classify(c byte) charClass {
	switch {
	case c >= '0' && c <= '9':
		return classDigit
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		return classLetter
	case c == ' ', c == '\t', c == '\r', c == '\n':
		return classSpace
	default:
		if _, ok := singleCharSymbols[c]; ok {
			return classSymbol
		}
		return classInvalid
	}
}

func (l *lexer) scan() ([]Token, error) {
	l.line = 1
	l.column = 1

	if l.source == "" {
		return nil, newDiag(LexError, l.location(), "source is empty")
	}

	estTokens := len(l.source) / 4
	if estTokens < 16 {
		estTokens = 16
	}
	tokens := make([]Token, 0, estTokens)

	for l.pos < len(l.source) {
		c := l.source[l.pos]

		switch classify(c) {
		case classSpace:
			l.advance(c == '\n')

		case classSymbol:
			tokens = append(tokens, Token{
				Kind:     singleCharSymbols[c],
				Lexeme:   l.source[l.pos : l.pos+1],
				Location: l.location(),
			})
			l.advance(false)

		case classDigit:
			tokens = append(tokens, l.scanDigits())

		case classLetter:
			tokens = append(tokens, l.scanWord())

		default:
			return nil, newDiag(LexError, l.location(), "unrecognized character %q", rune(c))
		}
	}

	return tokens, nil
}

// scanDigits consumes a run of digits. A letter terminates the run; the
// multi-character assembly pass later merges patterns such as "0" "xFF"
// or "1" "." "5" back into single literals.
func (l *lexer) scanDigits() Token {
	start := l.pos
	loc := l.location()
	for l.pos < len(l.source) && classify(l.source[l.pos]) == classDigit {
		l.advance(false)
	}
	return Token{
		Kind:     TokenIntLiteral,
		Lexeme:   l.source[start:l.pos],
		Location: loc,
	}
}

// scanWord consumes an identifier or keyword: a letter followed by any
// run of letters and digits.
func (l *lexer) scanWord() Token {
	start := l.pos
	loc := l.location()
	for l.pos < len(l.source) {
		class := classify(l.source[l.pos])
		if class != classLetter && class != classDigit {
			break
		}
		l.advance(false)
	}

	lexeme := l.source[start:l.pos]
	kind := TokenIdentifier
	if _, ok := keywords[lexeme]; ok {
		kind = TokenKeyword
	}

	return Token{Kind: kind, Lexeme: lexeme, Location: loc}
}

func (l *lexer) advance(newline bool) {
	l.pos++
	if newline {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

func (l *lexer) location() SourceLocation {
	return SourceLocation{
		File:   l.filename,
		Line:   l.line,
		Column: l.column,
		Offset: l.pos,
	}
}

// twoSymbolMerges lists the compound operators assembled from two
// adjacent single-character symbol tokens.
var twoSymbolMerges = map[[2]TokenKind]TokenKind{
	{TokenLess, TokenLess}:           TokenLeftShift,
	{TokenGreater, TokenGreater}:     TokenRightShift,
	{TokenLess, TokenEqual}:          TokenLessEqual,
	{TokenGreater, TokenEqual}:       TokenGreaterEqual,
	{TokenEqual, TokenEqual}:         TokenLogicalEqual,
	{TokenExclamation, TokenEqual}:   TokenLogicalNotEqual,
	{TokenAmpersand, TokenAmpersand}: TokenLogicalAnd,
	{TokenBar, TokenBar}:             TokenLogicalOr,
	{TokenPlus, TokenEqual}:          TokenCompoundAdd,
	{TokenMinus, TokenEqual}:         TokenCompoundSubtract,
	{TokenAsterisk, TokenEqual}:      TokenCompoundMultiply,
	{TokenForwardSlash, TokenEqual}:  TokenCompoundDivide,
	{TokenDot, TokenDot}:             TokenDotDot,
	{TokenMinus, TokenGreater}:       TokenRightArrow,
}

// adjacent reports whether b starts exactly where a ends, on the same
// line. Merging is only legal for textually adjacent tokens.
func adjacent(a, b Token) bool {
	return a.Location.Line == b.Location.Line && a.end() == b.Location.Offset
}

// assembleMultiCharTokens merges adjacent tokens into compound operators
// and numeric literals.
func assembleMultiCharTokens(source string, tokens []Token) ([]Token, error) {
	out := make([]Token, 0, len(tokens))

	merged := func(first, last Token, kind TokenKind) Token {
		return Token{
			Kind:     kind,
			Lexeme:   source[first.Location.Offset:last.end()],
			Location: first.Location,
		}
	}

	at := func(i int) Token {
		if i < len(tokens) {
			return tokens[i]
		}
		return Token{Kind: TokenEndOfFile}
	}

	run := func(i, j int) bool {
		for ; i < j; i++ {
			if !adjacent(tokens[i], tokens[i+1]) {
				return false
			}
		}
		return true
	}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if tok.Kind == TokenIntLiteral {
			t1, t2 := at(i+1), at(i+2)

			switch {
			// 1 . 0 [e 5 | e - 10]
			case t1.Kind == TokenDot && t2.Kind == TokenIntLiteral && run(i, i+2):
				if mergedTok, consumed, err := assembleExponent(source, tokens, i, i+2); err != nil {
					return nil, err
				} else if consumed > 0 {
					out = append(out, mergedTok)
					i += consumed
					continue
				}
				out = append(out, merged(tok, t2, TokenFloatLiteral))
				i += 2
				continue

			// 0 xFF
			case tok.Lexeme == "0" && t1.Kind == TokenIdentifier && adjacent(tok, t1) &&
				(t1.Lexeme[0] == 'x' || t1.Lexeme[0] == 'X'):
				if len(t1.Lexeme) == 1 {
					return nil, newDiag(LexError, t1.Location, "unexpected end of hex literal")
				}
				if !allHexDigits(t1.Lexeme[1:]) {
					return nil, newDiag(LexError, t1.Location, "malformed hex literal %q", source[tok.Location.Offset:t1.end()])
				}
				out = append(out, merged(tok, t1, TokenHexNumber))
				i++
				continue

			// 34 u
			case t1.Kind == TokenIdentifier && t1.Lexeme == "u" && adjacent(tok, t1):
				out = append(out, merged(tok, t1, TokenUIntLiteral))
				i++
				continue

			// 1 e5 | 1 e - 10
			default:
				if mergedTok, consumed, err := assembleExponent(source, tokens, i, i); err != nil {
					return nil, err
				} else if consumed > 0 {
					out = append(out, mergedTok)
					i += consumed
					continue
				}
			}

			out = append(out, tok)
			continue
		}

		// Compound operators
		if next := at(i + 1); adjacent(tok, next) {
			if kind, ok := twoSymbolMerges[[2]TokenKind{tok.Kind, next.Kind}]; ok {
				out = append(out, merged(tok, next, kind))
				i++
				continue
			}
		}

		out = append(out, tok)
	}

	return out, nil
}

// assembleExponent tries to extend a numeric literal ending at token
// index last with a scientific exponent. first is the index of the
// literal's first token. Returns the merged token and the number of
// tokens consumed past first, or consumed == 0 when no exponent follows.
func assembleExponent(source string, tokens []Token, first, last int) (Token, int, error) {
	at := func(i int) Token {
		if i < len(tokens) {
			return tokens[i]
		}
		return Token{Kind: TokenEndOfFile}
	}

	e := at(last + 1)
	if e.Kind != TokenIdentifier || !adjacent(tokens[last], e) {
		return Token{}, 0, nil
	}

	mk := func(until Token, consumed int) (Token, int, error) {
		firstTok := tokens[first]
		return Token{
			Kind:     TokenScientificNumber,
			Lexeme:   source[firstTok.Location.Offset:until.end()],
			Location: firstTok.Location,
		}, consumed, nil
	}

	// "e10": exponent digits fused into the identifier run
	if (e.Lexeme[0] == 'e' || e.Lexeme[0] == 'E') && len(e.Lexeme) > 1 && allDigits(e.Lexeme[1:]) {
		return mk(e, last+1-first)
	}

	// "e" "-" "10" or "e" "+" "10"
	if e.Lexeme == "e" || e.Lexeme == "E" {
		sign := at(last + 2)
		digits := at(last + 3)
		if (sign.Kind == TokenPlus || sign.Kind == TokenMinus) &&
			digits.Kind == TokenIntLiteral &&
			adjacent(e, sign) && adjacent(sign, digits) {
			return mk(digits, last+3-first)
		}
		return Token{}, 0, newDiag(LexError, e.Location, "malformed scientific literal")
	}

	return Token{}, 0, nil
}

// removeComments drops '//' and everything through the end of its line.
func removeComments(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.Kind == TokenForwardSlash && i+1 < len(tokens) &&
			tokens[i+1].Kind == TokenForwardSlash && adjacent(tok, tokens[i+1]) {
			line := tok.Location.Line
			for i < len(tokens) && tokens[i].Location.Line == line {
				i++
			}
			i--
			continue
		}
		out = append(out, tok)
	}

	return out
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

func allHexDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return len(s) > 0
}
