package token

import "strings"

// Span is the half-open byte-offset interval [Start, End) a token occupies
// in its source file.
type Span struct {
	Start int
	End   int
}

// SourceFile is a named handle onto accumulated source text. When the
// source comes from a literal string rather than a file on disk, Name is
// "<string>". Contents grows as the lexer reads ahead; every Token produced
// from it holds a reference to the same SourceFile rather than a private
// copy, so that diagnostics can recover source-line context long after
// tokenizing has moved on.
type SourceFile struct {
	Name     string
	contents strings.Builder
}

// NewSourceFile returns an empty source file handle displayed as name.
func NewSourceFile(name string) *SourceFile {
	return &SourceFile{Name: name}
}

// Append mirrors characters consumed by the lexer into the accumulated text.
func (f *SourceFile) Append(s string) {
	f.contents.WriteString(s)
}

// Contents returns everything read from the file so far.
func (f *SourceFile) Contents() string {
	return f.contents.String()
}

// Token is an immutable record produced by the lexer and consumed by the
// parser. Lexeme is the exact substring of the source the span covers.
type Token struct {
	Kind   Kind
	Lexeme string
	Span   Span
	File   *SourceFile
}

// GetLines returns the source lines the token's span touches, including
// partial lines at either end, for use in diagnostic rendering.
func (t Token) GetLines() []string {
	contents := t.File.Contents()
	startLine, _ := lineCol(contents, t.Span.Start)
	endLine, _ := lineCol(contents, t.Span.End)

	lines := splitLines(contents)

	if startLine > len(lines) {
		return nil
	}
	if endLine > len(lines) {
		endLine = len(lines)
	}

	return lines[startLine-1 : endLine]
}

// GetLineSpan returns the 1-indexed (column, line) pair for the span's
// start and end offsets.
func (t Token) GetLineSpan() (start, end [2]int) {
	contents := t.File.Contents()
	startLine, startCol := lineCol(contents, t.Span.Start)
	endLine, endCol := lineCol(contents, t.Span.End)

	return [2]int{startCol, startLine}, [2]int{endCol, endLine}
}

// lineCol computes the 1-indexed line and column of a byte offset within s.
func lineCol(s string, offset int) (line, col int) {
	if offset > len(s) {
		offset = len(s)
	}

	line = 1
	lastNewline := -1

	for i := 0; i < offset; i++ {
		if s[i] == '\n' {
			line++
			lastNewline = i
		}
	}

	col = offset - lastNewline

	return line, col
}

// splitLines splits s into lines, keeping line terminators, for
// diagnostic rendering.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}

	var lines []string
	start := 0

	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i+1])
			start = i + 1
		}
	}

	if start < len(s) {
		lines = append(lines, s[start:])
	}

	return lines
}
