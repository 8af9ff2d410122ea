// Package compiler orchestrates the front end and middle/back end into a
// single Compile call: tokenize, parse, sanity-check, generate SSA IR,
// generate macro-ops.
package compiler

import (
	"fmt"
	"io"
	"time"

	"github.com/qexat/marrow/ast"
	"github.com/qexat/marrow/diag"
	"github.com/qexat/marrow/lexer"
	"github.com/qexat/marrow/macro"
	"github.com/qexat/marrow/parser"
	"github.com/qexat/marrow/sanity"
	"github.com/qexat/marrow/ssa"
)

// Config toggles the compiler's ambient behavior.
type Config struct {
	Verbose bool
	Debug   bool
}

// Result holds everything a Compile call produced, available to the
// caller (environment.Environment) after the fact for execution or
// inspection.
type Result struct {
	ParseTree    ast.Expr
	Invalid      []*ast.Invalid
	Instructions []ssa.Instruction
	Ops          []macro.Op
}

// Compiler lowers one source file from text to macro-ops.
type Compiler struct {
	sink   diag.Sink
	config Config
}

// New returns a Compiler reporting diagnostics to sink under config.
func New(sink diag.Sink, config Config) *Compiler {
	c := &Compiler{sink: sink, config: config}

	c.logPreparativeSetup()
	c.sink.Emit(diag.Record{Kind: diag.Success, Message: "compiler initialized"})

	return c
}

func (c *Compiler) logPreparativeSetup() {
	names := []string{"tokenizer", "parser", "sanity checker", "SSA IR generator", "macro op generator"}

	msg := "preparative setup: initialized components that will be used later\n"
	for _, name := range names {
		msg += fmt.Sprintf("• %s\n", name)
	}

	c.sink.Emit(diag.Record{Kind: diag.Note, Message: msg})
}

// Compile reads source (displayed as name), tokenizing, parsing, sanity
// checking, and, if sane, lowering to SSA and then macro-ops. It returns
// 0 on success or 1 if the sanity checker found any invalid node, along
// with everything produced along the way.
func (c *Compiler) Compile(source io.Reader, name string) (int, Result) {
	c.sink.Emit(diag.Record{Kind: diag.Info, Message: fmt.Sprintf("starting compilation of %q", name)})

	start := time.Now()

	lx := lexer.New(source, name)
	c.sink.Emit(diag.Record{Kind: diag.Info, Message: "tokenized source"})

	p := parser.New(lx, c.sink)
	tree := p.Parse()
	c.sink.Emit(diag.Record{Kind: diag.Info, Message: "parsed source"})

	c.sink.Emit(diag.Record{Kind: diag.Note, Message: "done with the file - closed"})

	checker := sanity.NewChecker()
	invalid := checker.Check(tree)
	c.sink.Emit(diag.Record{Kind: diag.Info, Message: "checked parse tree sanity"})

	if len(invalid) > 0 {
		c.sink.Emit(diag.Record{Kind: diag.Info, Message: "found invalid nodes!"})

		for _, node := range invalid {
			c.sink.Emit(diag.Record{Kind: diag.Error, Message: node.Message})
		}

		c.sink.Emit(diag.Record{Kind: diag.Error, Message: "errors occurred - aborting"})

		return 1, Result{ParseTree: tree, Invalid: invalid}
	}

	c.sink.Emit(diag.Record{Kind: diag.Success, Message: "parse tree seems sane"})

	instructions := ssa.NewGenerator().Generate(tree)
	c.sink.Emit(diag.Record{Kind: diag.Info, Message: fmt.Sprintf("generated %d SSA instruction(s)", len(instructions))})

	ops := macro.NewGenerator(c.sink).Generate(instructions)

	if c.config.Debug {
		ops = append(ops, macro.DumpMemory{SectionID: 0})
		c.sink.Emit(diag.Record{Kind: diag.Info, Message: "injected memory dump op"})
	}

	c.sink.Emit(diag.Record{Kind: diag.Info, Message: fmt.Sprintf("generated %d macro op(s)", len(ops))})

	if c.config.Debug {
		c.sink.Emit(diag.Record{
			Kind:    diag.Debug,
			Message: fmt.Sprintf("compilation time: %s", time.Since(start)),
		})
	}

	return 0, Result{ParseTree: tree, Instructions: instructions, Ops: ops}
}
