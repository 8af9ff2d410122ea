// Package lexer implements Marrow's tokenizer: a lazy scanner that turns a
// character stream into a sequence of token.Token values, terminated by an
// infinite tail of EOF.
package lexer

import (
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/qexat/marrow/token"
)

const sentinel = rune(0)

// Lexer lazily scans runes from an underlying reader into tokens. It reads
// ahead only as far as it needs to decide the current token's boundaries.
type Lexer struct {
	reader io.RuneReader
	file   *token.SourceFile

	buffer []rune

	start, current int
}

// New returns a Lexer reading from r, displaying diagnostics under name.
func New(r io.Reader, name string) *Lexer {
	return &Lexer{
		reader: newRuneReader(r),
		file:   token.NewSourceFile(name),
	}
}

// File returns the source-file handle tokens produced by this lexer share.
func (l *Lexer) File() *token.SourceFile {
	return l.file
}

func newRuneReader(r io.Reader) io.RuneReader {
	if rr, ok := r.(io.RuneReader); ok {
		return rr
	}

	return &runeScanner{r: r}
}

// runeScanner adapts a plain io.Reader to io.RuneReader one byte at a time,
// returning each byte as its own rune without UTF-8 decoding; Marrow source
// is ASCII-only in practice.
type runeScanner struct {
	r   io.Reader
	buf [utf8.UTFMax]byte
}

func (s *runeScanner) ReadRune() (rune, int, error) {
	n, err := s.r.Read(s.buf[:1])
	if n == 0 {
		return 0, 0, err
	}

	return rune(s.buf[0]), 1, nil
}

// peek returns the character at distance from the current head without
// consuming it, reading ahead and caching as necessary.
func (l *Lexer) peek(distance int) rune {
	for distance >= len(l.buffer) {
		r, _, err := l.reader.ReadRune()
		if err != nil {
			r = sentinel
		}

		if r != sentinel {
			l.file.Append(string(r))
		}
		l.buffer = append(l.buffer, r)
	}

	return l.buffer[distance]
}

func (l *Lexer) isAtEnd() bool {
	return l.peek(0) == sentinel
}

// syncHead prepares start for a new token.
func (l *Lexer) syncHead() {
	l.start = l.current
}

func (l *Lexer) advance() {
	l.current++
}

// consume returns and removes the current character.
func (l *Lexer) consume() rune {
	r := l.peek(0)
	l.advance()
	l.buffer = l.buffer[1:]

	return r
}

func (l *Lexer) lexeme() string {
	runes := []rune(l.file.Contents())
	start := min(l.start, len(runes))
	end := min(l.current, len(runes))

	return string(runes[start:end])
}

// scanNumber consumes digits, delegating to the float tail when a '.' is
// found; returns the resulting literal kind.
func (l *Lexer) scanNumber() token.Kind {
	for unicode.IsDigit(l.peek(0)) {
		l.consume()
	}

	if l.peek(0) == '.' {
		l.consume()

		return l.scanFloatDecimals()
	}

	return token.Integer
}

func (l *Lexer) scanFloatDecimals() token.Kind {
	for unicode.IsDigit(l.peek(0)) {
		l.consume()
	}

	return token.Float
}

// scanSymbol consumes alphanumerics and looks the lexeme up in the keyword
// table; a miss is an Invalid token.
func (l *Lexer) scanSymbol() token.Kind {
	for isAlnum(l.peek(0)) {
		l.consume()
	}

	if kind, ok := token.KeywordLexemes[l.lexeme()]; ok {
		return kind
	}

	return token.Invalid
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// scanToken consumes characters until a token is formed, skipping
// whitespace along the way.
func (l *Lexer) scanToken() token.Kind {
	for {
		c := l.consume()

		switch {
		case c == sentinel:
			return token.EOF
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.syncHead()
		case c == '(':
			return token.LeftParen
		case c == ')':
			return token.RightParen
		case c == '-':
			return token.Minus
		case c == '%':
			return token.Percent
		case c == '+':
			return token.Plus
		case c == '/':
			return token.Slash
		case c == '*':
			return token.Star
		case c == ';':
			return token.Semicolon
		case unicode.IsDigit(c):
			return l.scanNumber()
		case unicode.IsLetter(c):
			return l.scanSymbol()
		default:
			return token.Invalid
		}
	}
}

func (l *Lexer) buildToken(kind token.Kind) token.Token {
	return token.Token{
		Kind:   kind,
		Lexeme: l.lexeme(),
		Span:   token.Span{Start: l.start, End: l.current},
		File:   l.file,
	}
}

// Next returns the next token in the stream. Once the stream is exhausted
// it returns EOF forever.
func (l *Lexer) Next() token.Token {
	if l.isAtEnd() {
		l.syncHead()

		return l.buildToken(token.EOF)
	}

	l.syncHead()

	return l.buildToken(l.scanToken())
}
