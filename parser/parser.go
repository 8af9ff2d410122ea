// Package parser implements Marrow's Pratt expression parser: three
// subparser tables keyed by token kind (atom, prefix, nonprefix), a
// lookahead buffer over a lazy token source, and a precedence-climbing
// core. Errors never abort parsing: they are folded into ast.Invalid
// nodes inline, so Parse always returns a tree.
package parser

import (
	"fmt"

	"github.com/qexat/marrow/ast"
	"github.com/qexat/marrow/diag"
	"github.com/qexat/marrow/token"
)

// Precedence table: higher binds tighter.
const (
	precNone           = 0
	precAdditive       = 1
	precMultiplicative = 2
)

// TokenSource yields one token per call and never runs out: once
// exhausted it yields EOF forever, matching lexer.Lexer.Next.
type TokenSource interface {
	Next() token.Token
}

type atomParseFunc func(p *Parser, tok token.Token) ast.Expr
type prefixParseFunc func(p *Parser, tok token.Token) ast.Expr
type nonprefixParseFunc func(p *Parser, left ast.Expr, tok token.Token) ast.Expr

type nonprefixEntry struct {
	precedence int
	rightAssoc bool
	parse      nonprefixParseFunc
}

// Parser is a Pratt parser over a lazy token source.
type Parser struct {
	tokens TokenSource
	sink   diag.Sink
	buffer []token.Token

	atomParsers      map[token.Kind]atomParseFunc
	prefixParsers    map[token.Kind]prefixParseFunc
	nonprefixParsers map[token.Kind]nonprefixEntry
}

// New builds a Parser over tokens, reporting non-fatal diagnostics (float
// literal warnings, leftover-buffer notices) to sink.
func New(tokens TokenSource, sink diag.Sink) *Parser {
	p := &Parser{
		tokens: tokens,
		sink:   sink,

		atomParsers:      map[token.Kind]atomParseFunc{},
		prefixParsers:    map[token.Kind]prefixParseFunc{},
		nonprefixParsers: map[token.Kind]nonprefixEntry{},
	}

	p.registerSubparsers()

	return p
}

func (p *Parser) registerSubparsers() {
	p.atomParsers[token.Integer] = parseLiteralScalar
	p.atomParsers[token.Float] = parseLiteralScalar
	p.atomParsers[token.LeftParen] = parseGrouping
	p.atomParsers[token.In] = parseBlock
	p.atomParsers[token.Mod] = parseModule

	p.prefixParsers[token.Plus] = parseUnary
	p.prefixParsers[token.Minus] = parseUnary

	p.registerBinary(token.Plus, precAdditive)
	p.registerBinary(token.Minus, precAdditive)
	p.registerBinary(token.Star, precMultiplicative)
	p.registerBinary(token.Slash, precMultiplicative)
	p.registerBinary(token.Percent, precMultiplicative)
}

func (p *Parser) registerBinary(kind token.Kind, precedence int) {
	p.nonprefixParsers[kind] = nonprefixEntry{
		precedence: precedence,
		parse:      parseBinary,
	}
}

// peek returns the token at distance from the head without consuming it,
// filling the lookahead buffer from the token source as needed.
func (p *Parser) peek(distance int) token.Token {
	for distance >= len(p.buffer) {
		p.buffer = append(p.buffer, p.tokens.Next())
	}

	return p.buffer[distance]
}

// consume removes and returns the head token.
func (p *Parser) consume() token.Token {
	tok := p.peek(0)
	p.buffer = p.buffer[1:]

	return tok
}

// match consumes the head token if it has the expected kind, reporting
// whether it did. It never leaves the buffer in an inconsistent state.
func (p *Parser) match(expected token.Kind) bool {
	if p.peek(0).Kind != expected {
		return false
	}

	p.consume()

	return true
}

func (p *Parser) precedenceOf(kind token.Kind) int {
	entry, ok := p.nonprefixParsers[kind]
	if !ok {
		return precNone
	}

	return entry.precedence
}

// ParseExpr parses one expression, only continuing to absorb infix
// operators whose precedence exceeds minPrecedence.
func (p *Parser) ParseExpr(minPrecedence int) ast.Expr {
	tok := p.consume()

	parse, ok := p.prefixOrAtom(tok.Kind)
	if !ok {
		return &ast.Invalid{
			Message: fmt.Sprintf("unexpected token %q", tok.Lexeme),
			Token:   tok,
		}
	}

	left := parse(p, tok)

	for minPrecedence < p.precedenceOf(p.peek(0).Kind) {
		opTok := p.consume()
		entry := p.nonprefixParsers[opTok.Kind]
		left = entry.parse(p, left, opTok)
	}

	return left
}

func (p *Parser) prefixOrAtom(kind token.Kind) (func(*Parser, token.Token) ast.Expr, bool) {
	if fn, ok := p.prefixParsers[kind]; ok {
		return fn, true
	}
	if fn, ok := p.atomParsers[kind]; ok {
		return fn, true
	}

	return nil, false
}

// Parse runs the parser to completion and returns the resulting tree. The
// parser is total: it always returns an expression, folding errors into
// ast.Invalid nodes rather than failing.
func (p *Parser) Parse() ast.Expr {
	expression := p.ParseExpr(precNone)

	leftover := 0
	for _, tok := range p.buffer {
		if tok.Kind != token.EOF {
			leftover++
		}
	}

	if leftover > 0 {
		p.sink.Emit(diag.Record{
			Kind:    diag.Warning,
			Message: fmt.Sprintf("parser buffer still contains %d token(s)", leftover),
		})
	}

	return expression
}

func parseLiteralScalar(p *Parser, tok token.Token) ast.Expr {
	kind := ast.IntegerLiteral
	if tok.Kind == token.Float {
		kind = ast.FloatLiteral

		p.sink.Emit(diag.Record{
			Kind:    diag.Warning,
			Message: "float literal used; runtime arithmetic truncates to integer",
		})
	}

	return &ast.LiteralScalar{Token: tok, Kind: kind}
}

func parseGrouping(p *Parser, openParen token.Token) ast.Expr {
	inner := p.ParseExpr(precNone)

	if !p.match(token.RightParen) {
		return &ast.Invalid{
			Message:  "missing expected ')'",
			Token:    openParen,
			SubExprs: []ast.Expr{inner},
		}
	}

	return &ast.Grouping{Inner: inner}
}

func parseBlock(p *Parser, inTok token.Token) ast.Expr {
	var exprs []ast.Expr

	for p.peek(0).Kind != token.End && p.peek(0).Kind != token.EOF {
		exprs = append(exprs, p.ParseExpr(precNone))

		if p.peek(0).Kind != token.End && !p.match(token.Semicolon) {
			current := p.peek(0)
			exprs = append(exprs, &ast.Invalid{
				Message: fmt.Sprintf("expected ';' after %s", current.Kind),
				Token:   current,
			})
		}
	}

	if !p.match(token.End) {
		return &ast.Invalid{
			Message:  "missing expected 'end'",
			Token:    inTok,
			SubExprs: exprs,
		}
	}

	return &ast.Block{Exprs: exprs}
}

func parseModule(p *Parser, modTok token.Token) ast.Expr {
	return &ast.Module{Inner: p.ParseExpr(precNone)}
}

func parseUnary(p *Parser, opTok token.Token) ast.Expr {
	operand := p.ParseExpr(precNone)

	return &ast.Unary{Operator: opTok.Kind, Operand: operand}
}

func parseBinary(p *Parser, left ast.Expr, opTok token.Token) ast.Expr {
	entry := p.nonprefixParsers[opTok.Kind]

	rightAssocAdjustment := 0
	if entry.rightAssoc {
		rightAssocAdjustment = 1
	}

	right := p.ParseExpr(entry.precedence - rightAssocAdjustment)

	return &ast.Binary{Operator: opTok.Kind, Left: left, Right: right}
}
