package compiler_errors

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Report writes one line per error to w. Colours are only emitted when w is a
// terminal that supports them.
func Report(w io.Writer, errs []CompilerError) {
	renderer := lipgloss.NewRenderer(w)
	locationStyle := renderer.NewStyle().Bold(true)
	kindStyle := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	for _, err := range errs {
		span := Span{
			FileName: err.GetFileName(),
			Line:     err.GetLine(),
			Column:   err.GetColumn(),
		}
		fmt.Fprintf(w, "%s: %s: %s\n",
			locationStyle.Render(span.String()),
			kindStyle.Render(err.GetKind().String()),
			err.GetMessage())
	}
}
