package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tangwind/spring-data-jpa/pkg/token"
)

const (
	eof         = -1
	invalidByte = -2 // a byte that does not start valid UTF-8
)

// Lexer tokenizes HQL input. It is not safe for concurrent use; create one
// per input.
type Lexer struct {
	input   string
	pos     int  // byte offset of ch
	readPos int  // byte offset after ch
	ch      rune // current character, eof at end of input
	line    int  // line of ch (1-based)
	col     int  // column of ch in runes (1-based)

	err *Diagnostic
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.readChar()
	return l
}

// Tokenize splits input into tokens, ending with a single EOF token. It is
// all-or-nothing: the first unrecognized character or unterminated literal
// fails the whole input.
func Tokenize(input string) ([]token.Token, error) {
	l := NewLexer(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.ILLEGAL {
			return nil, ErrorList{l.err}
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

// Err returns the diagnostic behind the last ILLEGAL token.
func (l *Lexer) Err() *Diagnostic {
	return l.err
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	if l.readPos >= len(l.input) {
		l.ch = eof
		l.pos = len(l.input)
		return
	}
	r, w := decodeRune(l.input[l.readPos:])
	l.ch = r
	l.pos = l.readPos
	l.readPos += w
}

func decodeRune(s string) (rune, int) {
	r, w := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && w == 1 {
		return invalidByte, 1
	}
	return r, w
}

// peekChar returns the character after ch without advancing.
func (l *Lexer) peekChar() rune {
	return l.peekCharAt(1)
}

// peekCharAt returns the n-th character after ch.
func (l *Lexer) peekCharAt(n int) rune {
	off := l.readPos
	if l.ch == eof {
		return eof
	}
	var r rune = eof
	for i := 0; i < n; i++ {
		if off >= len(l.input) {
			return eof
		}
		var w int
		r, w = decodeRune(l.input[off:])
		off += w
	}
	return r
}

// currentPos returns the position of ch.
func (l *Lexer) currentPos() token.Position {
	return token.Position{Line: l.line, Column: l.col, Offset: l.pos}
}

// NextToken returns the next token. On failure it returns an ILLEGAL token
// and records the diagnostic, available from Err.
func (l *Lexer) NextToken() token.Token {
	if !l.skipWhitespaceAndComments() {
		return token.Token{Type: token.ILLEGAL, Pos: l.err.Span.Start, End: l.err.Span.End}
	}

	start := l.currentPos()
	typ, value, ok := l.scan(start)
	if !ok {
		return token.Token{Type: token.ILLEGAL, Pos: start, End: l.currentPos()}
	}
	end := l.currentPos()
	tok := token.Token{
		Type:    typ,
		Literal: l.input[start.Offset:end.Offset],
		Value:   value,
		Pos:     start,
		End:     end,
	}
	if typ == token.EOF {
		tok.Literal = ""
	}
	return tok
}

//nolint:gocyclo // one case per leading character
func (l *Lexer) scan(start token.Position) (token.TokenType, string, bool) {
	single := func(t token.TokenType) (token.TokenType, string, bool) {
		l.readChar()
		return t, "", true
	}
	double := func(t token.TokenType) (token.TokenType, string, bool) {
		l.readChar()
		l.readChar()
		return t, "", true
	}

	switch ch := l.ch; {
	case ch == eof:
		return token.EOF, "", true
	case ch == '+':
		return single(token.PLUS)
	case ch == '-':
		return single(token.MINUS)
	case ch == '*':
		return single(token.STAR)
	case ch == '/':
		return single(token.SLASH)
	case ch == '%':
		return single(token.PERCENT)
	case ch == '=':
		return single(token.EQ)
	case ch == ',':
		return single(token.COMMA)
	case ch == ':':
		return single(token.COLON)
	case ch == '?':
		return single(token.QUESTION)
	case ch == '(':
		return single(token.LPAREN)
	case ch == ')':
		return single(token.RPAREN)
	case ch == '[':
		return single(token.LBRACKET)
	case ch == ']':
		return single(token.RBRACKET)
	case ch == '}':
		return single(token.RBRACE)
	case ch == '<':
		switch l.peekChar() {
		case '=':
			return double(token.LE)
		case '>':
			return double(token.NE)
		}
		return single(token.LT)
	case ch == '>':
		if l.peekChar() == '=' {
			return double(token.GE)
		}
		return single(token.GT)
	case ch == '!' && l.peekChar() == '=':
		return double(token.NE)
	case ch == '^' && l.peekChar() == '=':
		return double(token.NE)
	case ch == '|' && l.peekChar() == '|':
		return double(token.DPIPE)
	case ch == '.':
		if isDigit(l.peekChar()) {
			return l.readNumber(), "", true
		}
		return single(token.DOT)
	case ch == '{':
		return l.readBrace(), "", true
	case ch == '\'':
		l.readChar()
		v, ok := l.readSQLString(start)
		return token.STRING, v, ok
	case ch == '"':
		l.readChar()
		v, ok := l.readEscaped(start, '"')
		return token.HOST_STRING, v, ok
	case ch == '`':
		l.readChar()
		v, ok := l.readEscaped(start, '`')
		return token.QUOTED_IDENT, v, ok
	case (ch == 'j' || ch == 'J') && (l.peekChar() == '\'' || l.peekChar() == '"'):
		l.readChar()
		quote := l.ch
		l.readChar()
		v, ok := l.readEscaped(start, quote)
		return token.HOST_STRING, v, ok
	case (ch == 'x' || ch == 'X') && l.peekChar() == '\'':
		return l.readBinary(start)
	case isLetter(ch):
		ident := l.readIdentifier()
		return token.Lookup(ident), "", true
	case isDigit(ch):
		return l.readNumber(), "", true
	}

	l.readChar()
	l.fail(UnrecognizedCharacter, start, fmt.Sprintf("unrecognized character %q", l.input[start.Offset:l.pos]))
	return token.ILLEGAL, "", false
}

func (l *Lexer) fail(exp Expectation, start token.Position, msg string) {
	end := l.currentPos()
	l.err = &Diagnostic{
		Kind:     LexicalError,
		Expected: exp,
		Found:    l.input[start.Offset:end.Offset],
		Span:     token.Span{Start: start, End: end},
		Message:  msg,
	}
}

// skipWhitespaceAndComments skips whitespace and block comments. It returns
// false on an unterminated comment.
func (l *Lexer) skipWhitespaceAndComments() bool {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' || l.ch == '\f' {
			l.readChar()
		}
		if l.ch != '/' || l.peekChar() != '*' {
			return true
		}
		start := l.currentPos()
		l.readChar()
		l.readChar()
		for {
			if l.ch == eof {
				l.fail(UnterminatedLiteral, start, "unterminated comment")
				return false
			}
			if l.ch == '*' && l.peekChar() == '/' {
				l.readChar()
				l.readChar()
				break
			}
			l.readChar()
		}
	}
}

// readBrace reads '{' or one of the JDBC escape starts {ts, {d and {t.
func (l *Lexer) readBrace() token.TokenType {
	rest := l.input[l.pos:]
	var typ token.TokenType
	var n int
	switch {
	case hasWordPrefix(rest, "{ts"):
		typ, n = token.TS_ESCAPE, 3
	case hasWordPrefix(rest, "{d"):
		typ, n = token.D_ESCAPE, 2
	case hasWordPrefix(rest, "{t"):
		typ, n = token.T_ESCAPE, 2
	default:
		typ, n = token.LBRACE, 1
	}
	for i := 0; i < n; i++ {
		l.readChar()
	}
	return typ
}

// hasWordPrefix reports whether s starts with prefix, case-insensitively,
// and the prefix is not followed by another identifier character.
func hasWordPrefix(s, prefix string) bool {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return false
	}
	if len(s) == len(prefix) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[len(prefix):])
	return !isLetter(r) && !isDigit(r)
}

// readSQLString reads the rest of a single-quoted string. A doubled quote
// stands for one quote.
func (l *Lexer) readSQLString(start token.Position) (string, bool) {
	var b strings.Builder
	for {
		switch l.ch {
		case eof:
			l.fail(UnterminatedLiteral, start, "unterminated string literal")
			return "", false
		case '\'':
			if l.peekChar() == '\'' {
				b.WriteByte('\'')
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar()
			return b.String(), true
		default:
			b.WriteRune(l.ch)
			l.readChar()
		}
	}
}

// readEscaped reads the rest of a literal closed by quote, resolving
// backslash escapes. Used for host strings and backtick identifiers.
func (l *Lexer) readEscaped(start token.Position, quote rune) (string, bool) {
	var b strings.Builder
	for {
		switch l.ch {
		case eof:
			if quote == '`' {
				l.fail(UnterminatedLiteral, start, "unterminated quoted identifier")
			} else {
				l.fail(UnterminatedLiteral, start, "unterminated string literal")
			}
			return "", false
		case quote:
			l.readChar()
			return b.String(), true
		case '\\':
			escStart := l.currentPos()
			l.readChar()
			r, ok := l.readEscape()
			if !ok {
				l.fail(InvalidEscape, escStart, fmt.Sprintf("invalid escape sequence %q", l.input[escStart.Offset:l.pos]))
				return "", false
			}
			b.WriteRune(r)
		default:
			b.WriteRune(l.ch)
			l.readChar()
		}
	}
}

// readEscape decodes the character after a backslash.
func (l *Lexer) readEscape() (rune, bool) {
	var r rune
	switch l.ch {
	case 'b':
		r = '\b'
	case 't':
		r = '\t'
	case 'n':
		r = '\n'
	case 'f':
		r = '\f'
	case 'r':
		r = '\r'
	case '"', '\'', '\\', '`':
		r = l.ch
	case 'u':
		l.readChar()
		start := l.pos
		for i := 0; i < 4; i++ {
			if !isHexDigit(l.ch) {
				return 0, false
			}
			l.readChar()
		}
		v, err := strconv.ParseUint(l.input[start:l.pos], 16, 32)
		if err != nil {
			return 0, false
		}
		return rune(v), true
	default:
		return 0, false
	}
	l.readChar()
	return r, true
}

// readBinary reads X'0A0B'.
func (l *Lexer) readBinary(start token.Position) (token.TokenType, string, bool) {
	l.readChar() // X
	l.readChar() // '
	for isHexDigit(l.ch) {
		l.readChar()
	}
	if l.ch != '\'' {
		if l.ch == eof {
			l.fail(UnterminatedLiteral, start, "unterminated binary literal")
		} else {
			l.readChar()
			l.fail(UnrecognizedCharacter, start, fmt.Sprintf("invalid binary literal %q", l.input[start.Offset:l.pos]))
		}
		return token.ILLEGAL, "", false
	}
	l.readChar()
	return token.BINARY, "", true
}

// readIdentifier reads an unquoted identifier or keyword.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readNumber reads a numeric literal and classifies it by its suffix.
func (l *Lexer) readNumber() token.TokenType {
	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') && isHexDigit(l.peekCharAt(2)) {
		l.readChar()
		l.readChar()
		for isHexDigit(l.ch) {
			l.readChar()
		}
		if l.ch == 'l' || l.ch == 'L' {
			l.readChar()
		}
		return token.HEX
	}

	fractional := false
	l.readDigits()
	if l.ch == '.' && isDigit(l.peekChar()) {
		fractional = true
		l.readChar()
		l.readDigits()
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekCharAt(2))) {
			fractional = true
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			l.readDigits()
		}
	}

	switch l.ch {
	case 'b', 'B':
		switch l.peekChar() {
		case 'd', 'D':
			l.readChar()
			l.readChar()
			return token.BIG_DECIMAL
		case 'i', 'I':
			if !fractional {
				l.readChar()
				l.readChar()
				return token.BIG_INTEGER
			}
		}
	case 'l', 'L':
		if !fractional {
			l.readChar()
			return token.LONG
		}
	case 'f', 'F':
		l.readChar()
		return token.FLOAT
	case 'd', 'D':
		l.readChar()
		return token.DOUBLE
	}
	if fractional {
		return token.DOUBLE
	}
	return token.INTEGER
}

// readDigits reads digits with single underscores between them.
func (l *Lexer) readDigits() {
	for isDigit(l.ch) || (l.ch == '_' && isDigit(l.peekChar())) {
		l.readChar()
	}
}

func isLetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || r == '_' || r == '$' ||
		(r >= 0x80 && r <= 0xfffe)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}
