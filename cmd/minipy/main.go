// Package main is the minipy front-end driver.
//
// It runs the complete pipeline over one source file:
// 1. Lexical analysis (indentation-aware tokenization)
// 2. Parsing (AST construction + symbol table bookkeeping)
// 3. Three-address code generation
//
// and prints the intermediate artifacts selected by flags:
//
//	minipy program.mpy                   # AST + 3AC (the default)
//	minipy --tokens program.mpy
//	minipy --tokens --ast --symtable --tac program.mpy
//	minipy --tac -                       # read source from stdin
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/hassan/minipy/internal/lexer"
	"github.com/hassan/minipy/internal/parser"
	"github.com/hassan/minipy/internal/parser/ast"
	"github.com/hassan/minipy/internal/tac"
)

func main() {
	var (
		showTokens   = flag.Bool("tokens", false, "print the token stream")
		showAST      = flag.Bool("ast", false, "print the syntax tree")
		showSymtable = flag.Bool("symtable", false, "print the symbol table scopes")
		showTAC      = flag.Bool("tac", false, "print the three-address code")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"usage: %s [flags] <source-file | ->\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	// No flags selects the default artifacts: AST and 3AC.
	if !*showTokens && !*showAST && !*showSymtable && !*showTAC {
		*showAST = true
		*showTAC = true
	}

	source, err := readSource(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %q: %v\n", flag.Arg(0), err)
		os.Exit(1)
	}

	if err := run(source, *showTokens, *showAST, *showSymtable, *showTAC); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// readSource loads the source text from a file, or from stdin for "-".
func readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

// run executes the pipeline, printing the selected artifacts as each stage
// completes. The first stage error stops the run.
func run(source string, showTokens, showAST, showSymtable, showTAC bool) error {
	tokens, err := lexer.New(source).Tokenize()
	if err != nil {
		return fmt.Errorf("lexing failed: %w", err)
	}

	if showTokens {
		fmt.Println("=== TOKENS ===")
		for _, tok := range tokens {
			fmt.Println(tok)
		}
		fmt.Println()
	}

	p, err := parser.New(tokens)
	if err != nil {
		return err
	}
	program, err := p.Parse()
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if showAST {
		fmt.Println("=== AST ===")
		fmt.Println(ast.Dump(program))
		fmt.Println()
	}

	if showSymtable {
		fmt.Println("=== SYMBOL TABLES ===")
		fmt.Print(p.Scopes().DebugString())
		fmt.Println()
	}

	if showTAC {
		code, err := tac.NewGenerator().Generate(program)
		if err != nil {
			return fmt.Errorf("code generation failed: %w", err)
		}
		fmt.Println("=== THREE-ADDRESS CODE ===")
		fmt.Print(tac.Render(code))
	}

	return nil
}
