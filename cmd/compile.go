package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/kievzenit/ranni/internal/ast"
	"github.com/kievzenit/ranni/internal/compiler_errors"
	"github.com/kievzenit/ranni/internal/config"
	"github.com/kievzenit/ranni/internal/lexer"
	"github.com/kievzenit/ranni/internal/parser"
	"github.com/spf13/cobra"
)

const stdinName = "<stdin>"

type compileOptions struct {
	format string
	tokens bool
}

var compileCmd = &cobra.Command{
	Use:   "compile <file|->",
	Short: "Parse a ranni program and print its syntax tree",
	Long:  "Parse a ranni program and print its syntax tree. Use - to read the program from standard input.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		opts := compileOptions{
			format: cfg.Compile.Format,
			tokens: cfg.Compile.Tokens,
		}
		if cmd.Flags().Changed("format") {
			opts.format, _ = cmd.Flags().GetString("format")
		}
		if cmd.Flags().Changed("tokens") {
			opts.tokens, _ = cmd.Flags().GetBool("tokens")
		}
		if !slices.Contains(config.OutputFormats, opts.format) {
			return fmt.Errorf("unknown output format %q (expected one of %s)", opts.format, strings.Join(config.OutputFormats, ", "))
		}

		fileName, src, err := readSource(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}

		return runCompile(fileName, src, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	compileCmd.Flags().StringP("format", "f", "litter", "output format: "+strings.Join(config.OutputFormats, ", "))
	compileCmd.Flags().BoolP("tokens", "t", false, "print the token stream before the syntax tree")
}

func readSource(path string, stdin io.Reader) (string, string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read standard input: %w", err)
		}
		return stdinName, string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read source file: %w", err)
	}
	return path, string(data), nil
}

func runCompile(fileName, src string, opts compileOptions, stdout, stderr io.Writer) error {
	if opts.tokens {
		eh := compiler_errors.NewErrorHandler()
		for _, token := range lexer.NewLexer(fileName, src, eh).Tokenize() {
			fmt.Fprintln(stdout, token.String())
		}
	}

	expr, errs := parser.Parse(fileName, src)
	if len(errs) > 0 {
		compiler_errors.Report(stderr, errs)
		return fmt.Errorf("%s: parsing failed with %d error(s)", fileName, len(errs))
	}

	switch opts.format {
	case "sexp":
		fmt.Fprintln(stdout, expr.String())
	default:
		fmt.Fprintln(stdout, ast.Dump(expr))
	}

	return nil
}
