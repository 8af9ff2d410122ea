// Command marrow compiles and executes Marrow source files.
//
// Usage:
//
//	marrow compile -file program.marrow
//	marrow run -string "1 + 2;" -debug
//
// Flags:
//
//	-file, -f     Path to a source file
//	-string, -s   Source text given directly on the command line
//	-verbose, -v  Show INFO/NOTE/SUCCESS diagnostics in addition to errors
//	-debug, -d    Show DEBUG diagnostics (timings, access log, memory dump)
//
// -file and -string are mutually exclusive; exactly one must be given.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/qexat/marrow/environment"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage()
		return 1
	}

	subcommand, rest := args[0], args[1:]

	switch subcommand {
	case "compile", "run":
	default:
		fmt.Fprintf(os.Stderr, "marrow: unknown subcommand %q\n", subcommand)
		usage()
		return 1
	}

	fs := flag.NewFlagSet(subcommand, flag.ExitOnError)

	var (
		file    = fs.String("file", "", "path to a source file")
		str     = fs.String("string", "", "source text")
		verbose = fs.Bool("verbose", false, "show info/note/success diagnostics")
		debug   = fs.Bool("debug", false, "show debug diagnostics")
	)

	fs.StringVar(file, "f", "", "shorthand for -file")
	fs.StringVar(str, "s", "", "shorthand for -string")
	fs.BoolVar(verbose, "v", false, "shorthand for -verbose")
	fs.BoolVar(debug, "d", false, "shorthand for -debug")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: marrow %s [-file path | -string src] [-verbose] [-debug]\n\n", subcommand)
		fs.PrintDefaults()
	}

	if err := fs.Parse(rest); err != nil {
		return 1
	}

	if (*file == "") == (*str == "") {
		fmt.Fprintln(os.Stderr, "marrow: exactly one of -file or -string is required")
		fs.Usage()
		return 1
	}

	var (
		source io.Reader
		name   string
	)

	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "marrow: %v\n", err)
			return 1
		}
		defer f.Close()

		source = f
		name = *file
	} else {
		source = strings.NewReader(*str)
		name = "<string>"
	}

	sink := newANSISink(os.Stdout, *verbose || *debug)
	env := environment.New(sink, environment.Config{Verbose: *verbose, Debug: *debug})

	switch subcommand {
	case "compile":
		code, _ := env.Compile(source, name)
		return code
	case "run":
		return env.Run(source, name)
	default:
		return 1
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: marrow <compile|run> [-file path | -string src] [-verbose] [-debug]")
}
