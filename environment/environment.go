// Package environment wires the compiler and the virtual machine
// together behind the two operations promised externally: Compile and
// Run. A single diagnostic sink is shared by both the compile-time and
// run-time halves.
package environment

import (
	"fmt"
	"io"

	"github.com/rs/xid"

	"github.com/qexat/marrow/compiler"
	"github.com/qexat/marrow/diag"
	"github.com/qexat/marrow/vm"
)

// Config toggles ambient behavior for both halves of the pipeline.
type Config struct {
	Verbose bool
	Debug   bool
}

// Environment owns one compiler and one machine, stamped with a
// per-invocation session ID for the startup banner.
type Environment struct {
	SessionID xid.ID

	sink     diag.Sink
	config   Config
	compiler *compiler.Compiler
	machine  *vm.Machine
}

// New wires a fresh Environment, emitting a BANNER diagnostic once setup
// completes.
func New(sink diag.Sink, config Config) *Environment {
	e := &Environment{
		SessionID: xid.New(),
		sink:      sink,
		config:    config,
		compiler:  compiler.New(sink, compiler.Config{Verbose: config.Verbose, Debug: config.Debug}),
		machine:   vm.NewMachine(vm.WithSink(sink)),
	}

	e.sink.Emit(diag.Record{
		Kind:    diag.Banner,
		Message: fmt.Sprintf("marrow environment initialized (session %s)", e.SessionID),
	})

	return e
}

// Machine returns the underlying virtual machine, for callers that want
// to inspect heap/register state after Run.
func (e *Environment) Machine() *vm.Machine {
	return e.machine
}

// Compile lowers source (displayed as name) through the full compiler
// pipeline and returns its exit code (0 or 1) plus the intermediate
// results produced.
func (e *Environment) Compile(source io.Reader, name string) (int, compiler.Result) {
	return e.compiler.Compile(source, name)
}

// Run compiles source and, if compilation succeeded, executes the
// resulting macro-ops against the machine. It returns the compile code
// if nonzero; otherwise it executes and returns 0.
func (e *Environment) Run(source io.Reader, name string) int {
	code, result := e.compiler.Compile(source, name)
	if code != 0 {
		return code
	}

	e.machine.Execute(result.Ops, e.config.Debug)
	e.sink.Emit(diag.Record{Kind: diag.Info, Message: "execution finished"})

	return 0
}
