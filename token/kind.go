// Package token defines the lexical data model shared by the lexer and
// the parser: token kinds, spans, source-file handles and the token
// record itself.
package token

// Kind is the closed set of lexical categories Marrow source can contain.
type Kind int

const (
	End Kind = iota
	In
	Mod

	Float
	Integer

	LeftParen
	RightParen

	Minus
	Percent
	Plus
	Slash
	Star

	Semicolon

	Invalid
	EOF
)

// String renders a kind the way diagnostics and error messages want it.
func (k Kind) String() string {
	switch k {
	case End:
		return "END"
	case In:
		return "IN"
	case Mod:
		return "MOD"
	case Float:
		return "FLOAT"
	case Integer:
		return "INTEGER"
	case LeftParen:
		return "LEFT_PAREN"
	case RightParen:
		return "RIGHT_PAREN"
	case Minus:
		return "MINUS"
	case Percent:
		return "PERCENT"
	case Plus:
		return "PLUS"
	case Slash:
		return "SLASH"
	case Star:
		return "STAR"
	case Semicolon:
		return "SEMICOLON"
	case Invalid:
		return "INVALID"
	case EOF:
		return "EOF"
	default:
		return "UNKNOWN"
	}
}

// KeywordLexemes maps a reserved word spelling to its keyword kind; a miss
// means the symbol is not a keyword and the lexer should emit Invalid.
var KeywordLexemes = map[string]Kind{
	"end": End,
	"in":  In,
	"mod": Mod,
}

// IsUnaryOp reports whether k can appear in prefix (unary) operator position.
func IsUnaryOp(k Kind) bool {
	return k == Plus || k == Minus
}

// IsBinaryOp reports whether k can appear in infix (binary) operator position.
func IsBinaryOp(k Kind) bool {
	switch k {
	case Plus, Minus, Star, Slash, Percent:
		return true
	default:
		return false
	}
}
