package main

import (
	"fmt"
	"io"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/qexat/marrow/diag"
)

// ansiSink renders diag.Record values as colored, symbol-prefixed lines
// over a logr.Logger (! for ERROR/WARNING, ✓ for SUCCESS, i for INFO,
// * for NOTE, ? for DEBUG, » for BANNER). Error/Warning records always
// print; everything else is gated behind verbose.
type ansiSink struct {
	log     logr.Logger
	verbose bool
}

func newANSISink(w io.Writer, verbose bool) *ansiSink {
	log := funcr.New(func(prefix, args string) {
		fmt.Fprintln(w, args)
	}, funcr.Options{})

	return &ansiSink{log: log, verbose: verbose}
}

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiGreen  = "\x1b[32m"
	ansiBlue   = "\x1b[34m"
	ansiDim    = "\x1b[2m"
	ansiBold   = "\x1b[1m"
)

func (s *ansiSink) Emit(r diag.Record) {
	if !r.Kind.BypassesVerbosity() && !s.verbose {
		return
	}

	symbol, color := symbolAndColorFor(r.Kind)

	line := fmt.Sprintf("%s%s%s %s", color, symbol, ansiReset, r.Message)
	if r.SourcePath != "" {
		line = fmt.Sprintf("%s %s(%s)%s", line, ansiDim, r.SourcePath, ansiReset)
	}

	if r.Kind == diag.Error {
		s.log.Error(nil, line)
		return
	}

	s.log.Info(line)
}

func symbolAndColorFor(kind diag.Kind) (symbol, color string) {
	switch kind {
	case diag.Error:
		return "!", ansiRed
	case diag.Warning:
		return "!", ansiYellow
	case diag.Success:
		return "✓", ansiGreen
	case diag.Info:
		return "i", ansiBlue
	case diag.Note:
		return "*", ansiDim
	case diag.Debug:
		return "?", ansiDim
	case diag.Banner:
		return "»", ansiBold
	default:
		return "?", ansiReset
	}
}
