package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kievzenit/ranni/internal/ast"
	"github.com/kievzenit/ranni/internal/compiler_errors"
	"github.com/kievzenit/ranni/internal/parser"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const (
	promptMain = "ranni> "
	promptCont = "  ...> "
	replName   = "<repl>"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Parse programs interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		return runRepl(cfg.REPL.HistoryFile, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

type prompter interface {
	Prompt(prompt string) (string, error)
}

func runRepl(historyFile string, stdout, stderr io.Writer) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}

		defer func() {
			if f, err := os.Create(historyFile); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	for {
		src, expr, errs, ok := readByParseProbe(ln)
		if !ok {
			fmt.Fprintln(stdout)
			return nil
		}
		if strings.TrimSpace(src) == "" {
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if len(errs) > 0 {
			compiler_errors.Report(stderr, errs)
			continue
		}
		fmt.Fprintln(stdout, expr.String())
	}
}

// readByParseProbe keeps reading continuation lines while the program parsed
// so far fails only because it ends too early. ok is false once input ends.
func readByParseProbe(p prompter) (src string, expr ast.Expr, errs []compiler_errors.CompilerError, ok bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}

		line, err := p.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", nil, nil, false
		}
		if err != nil {
			return "", nil, nil, true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src = b.String()
		if strings.TrimSpace(src) == "" {
			return src, nil, nil, true
		}

		expr, errs = parser.Parse(replName, src)
		if compiler_errors.IsIncomplete(errs) {
			continue
		}
		return src, expr, errs, true
	}
}
