package mdmath

import "unicode"

// TokenKind discriminates a lexed MathToken.
type TokenKind int

// TokenKind values, per spec.md §4.3.
const (
	TokEOF TokenKind = iota
	TokSymbol
	TokNumber
	TokCommand
	TokLBrace
	TokRBrace
	TokLBracket
	TokRBracket
	TokLParen
	TokRParen
	TokCaret
	TokUnderscore
	TokAmpersand
	TokComma
	TokNewline
	TokSpace
)

// Token is one lexed unit of a TeX math source string.
type Token struct {
	Kind  TokenKind
	Value string       // Symbol text, Command name, or single-char literal
	Space SpacingWidth // meaningful only when Kind == TokSpace
}

// Lexer scans a TeX math subset into a Token stream. It is a one-shot
// scanner over a fixed string; math payloads are parsed synchronously and
// in full, so no incremental state is needed (spec.md §5).
type Lexer struct {
	src []rune
	pos int
}

// NewLexer returns a Lexer over src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: []rune(src)}
}

// Next returns the next token, advancing the lexer. Returns TokEOF forever
// once the source is exhausted.
func (l *Lexer) Next() Token {
	l.skipSpace()
	if l.pos >= len(l.src) {
		return Token{Kind: TokEOF}
	}

	c := l.src[l.pos]
	switch c {
	case '\\':
		return l.lexCommand()
	case '{':
		l.pos++
		return Token{Kind: TokLBrace}
	case '}':
		l.pos++
		return Token{Kind: TokRBrace}
	case '[':
		l.pos++
		return Token{Kind: TokLBracket}
	case ']':
		l.pos++
		return Token{Kind: TokRBracket}
	case '(':
		l.pos++
		return Token{Kind: TokLParen}
	case ')':
		l.pos++
		return Token{Kind: TokRParen}
	case '^':
		l.pos++
		return Token{Kind: TokCaret}
	case '_':
		l.pos++
		return Token{Kind: TokUnderscore}
	case '&':
		l.pos++
		return Token{Kind: TokAmpersand}
	case ',':
		l.pos++
		return Token{Kind: TokComma}
	case '|':
		l.pos++
		return Token{Kind: TokSymbol, Value: "|"}
	}

	if isDigit(c) || c == '.' {
		return l.lexNumber()
	}
	if isMathLetter(c) {
		return l.lexSymbol()
	}

	// Conservative fallback: an otherwise unclassified rune stands for
	// itself (e.g. '+', '-', '=', '!').
	l.pos++
	return Token{Kind: TokSymbol, Value: string(c)}
}

// rawTextUntilBrace scans raw runes up to (but not including) the next
// depth-0 '}', preserving whitespace literally. Used by the parser for
// \text{...} bodies, which are not tokenized the ordinary way so that
// interior spaces survive.
func (l *Lexer) rawTextUntilBrace() string {
	start := l.pos
	depth := 0
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return string(l.src[start:l.pos])
			}
			depth--
		}
		l.pos++
	}
	return string(l.src[start:l.pos])
}

func (l *Lexer) lexCommand() Token {
	l.pos++ // consume '\'
	if l.pos >= len(l.src) {
		return Token{Kind: TokCommand}
	}

	c := l.src[l.pos]
	switch c {
	case '\\':
		l.pos++
		return Token{Kind: TokNewline}
	case ',':
		l.pos++
		return Token{Kind: TokSpace, Space: SpacingThin}
	case ';':
		l.pos++
		return Token{Kind: TokSpace, Space: SpacingMedium}
	case ' ':
		l.pos++
		return Token{Kind: TokSpace, Space: SpacingMedium}
	case '{', '}', '[', ']':
		l.pos++
		return Token{Kind: TokSymbol, Value: string(c)}
	case '|':
		l.pos++
		return Token{Kind: TokSymbol, Value: "\\|"}
	case '%':
		for l.pos < len(l.src) && l.src[l.pos] != '\n' {
			l.pos++
		}
		return l.Next()
	default:
		start := l.pos
		for l.pos < len(l.src) && isLetter(l.src[l.pos]) {
			l.pos++
		}
		name := string(l.src[start:l.pos])
		if name == "" {
			// a bare backslash followed by punctuation: treat the
			// punctuation itself as a literal symbol
			l.pos++
			return Token{Kind: TokSymbol, Value: string(c)}
		}
		if name == "quad" {
			return Token{Kind: TokSpace, Space: SpacingQuad}
		}
		return Token{Kind: TokCommand, Value: name}
	}
}

func (l *Lexer) lexNumber() Token {
	start := l.pos
	for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '.') {
		l.pos++
	}
	return Token{Kind: TokNumber, Value: string(l.src[start:l.pos])}
}

func (l *Lexer) lexSymbol() Token {
	start := l.pos
	for l.pos < len(l.src) && isMathLetter(l.src[l.pos]) {
		l.pos++
	}
	return Token{Kind: TokSymbol, Value: string(l.src[start:l.pos])}
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }
func isLetter(c rune) bool { return unicode.IsLetter(c) }

// isMathLetter reports whether c continues an identifier run: any Unicode
// letter, which already covers the fixed Greek-letter set spec.md §4.3
// calls out (α, β, ... arrive as ordinary Unicode letters).
func isMathLetter(c rune) bool { return unicode.IsLetter(c) }
