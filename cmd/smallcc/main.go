// Package main implements the smallcc driver: it reads a preprocessed C
// source file, runs the compilation pipeline, and writes x86-64 assembly.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/smallcc/smallcc/internal/ast"
	"github.com/smallcc/smallcc/internal/codegen/x86_64"
	"github.com/smallcc/smallcc/internal/ir"
	"github.com/smallcc/smallcc/internal/lexer"
	"github.com/smallcc/smallcc/internal/parser"
	"github.com/xyproto/env/v2"
)

var (
	output     = flag.String("o", "", "Output assembly path (default: source with .s extension)")
	targetName = flag.String("target", env.Str("SMALLCC_TARGET", x86_64.DefaultTarget().String()),
		"Emission target (linux or darwin)")
	emitTokens = flag.Bool("emit-tokens", false, "Print the token stream and stop")
	emitAST    = flag.Bool("emit-ast", false, "Print the AST and stop")
	emitIR     = flag.Bool("emit-ir", false, "Print the IR and stop")
	emitAsm    = flag.Bool("emit-asm", false, "Print the assembly to stdout and stop")
	build      = flag.Bool("build", false, "Assemble and link the output with the system C compiler")
	watch      = flag.Bool("watch", false, "Recompile whenever the source file changes (Linux only)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: smallcc [options] <file.c>")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	srcPath := flag.Arg(0)

	target, err := x86_64.ParseTarget(*targetName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "smallcc: %v\n", err)
		os.Exit(2)
	}

	if *watch {
		if err := watchLoop(srcPath, func() int { return run(srcPath, target) }); err != nil {
			fmt.Fprintf(os.Stderr, "smallcc: %v\n", err)
			os.Exit(1)
		}
		return
	}
	os.Exit(run(srcPath, target))
}

// run executes the pipeline for one source file and returns the process
// exit code. Stage-stopping flags short-circuit after printing their dump.
func run(srcPath string, target x86_64.Target) int {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read error: %v\n", err)
		return 1
	}
	src := string(data)

	if *emitTokens {
		toks, err := lexer.Tokenize(src)
		if err != nil {
			return fail(srcPath, err)
		}
		for _, tok := range toks {
			fmt.Printf("%d:%d\t%v\t%s\n", tok.Line, tok.Col, tok.Type, tok.Lex)
		}
		return 0
	}

	prog, err := parser.ParseFile(src)
	if err != nil {
		return fail(srcPath, err)
	}
	if *emitAST {
		ast.Fprint(os.Stdout, prog)
		return 0
	}

	irProg := ir.Generate(prog)
	if *emitIR {
		ir.Fprint(os.Stdout, irProg)
		return 0
	}

	asm, err := x86_64.Generate(irProg, target)
	if err != nil {
		return fail(srcPath, err)
	}
	if *emitAsm {
		fmt.Print(asm)
		return 0
	}

	outPath := outputPath(srcPath, *output)
	if err := os.WriteFile(outPath, []byte(asm), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "write error: %v\n", err)
		return 1
	}

	if *build {
		if err := assemble(outPath); err != nil {
			fmt.Fprintf(os.Stderr, "build error: %v\n", err)
			return 1
		}
	}
	return 0
}

// fail prints a stage-tagged diagnostic and returns the error exit code.
func fail(srcPath string, err error) int {
	var lexErr *lexer.LexError
	var parseErr *parser.ParseError
	var emitErr *x86_64.EmitError
	switch {
	case errors.As(err, &lexErr):
		fmt.Fprintf(os.Stderr, "%s: lex error: %v\n", srcPath, err)
	case errors.As(err, &parseErr):
		fmt.Fprintf(os.Stderr, "%s: parse error: %v\n", srcPath, err)
	case errors.As(err, &emitErr):
		fmt.Fprintf(os.Stderr, "%s: codegen error: %v\n", srcPath, err)
	default:
		fmt.Fprintf(os.Stderr, "%s: %v\n", srcPath, err)
	}
	return 1
}

// outputPath derives the assembly path: the explicit -o value when given,
// otherwise the source path with its extension replaced by .s.
func outputPath(srcPath, explicit string) string {
	if explicit != "" {
		return explicit
	}
	ext := filepath.Ext(srcPath)
	return strings.TrimSuffix(srcPath, ext) + ".s"
}

// assemble hands the emitted assembly to the system C compiler, producing
// a binary next to it (output path minus the extension).
func assemble(asmPath string) error {
	cc := env.Str("SMALLCC_CC", "cc")
	binPath := strings.TrimSuffix(asmPath, filepath.Ext(asmPath))
	cmd := exec.Command(cc, asmPath, "-o", binPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s failed: %v\n%s", cc, err, out)
	}
	return nil
}
