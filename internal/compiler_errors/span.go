package compiler_errors

import "fmt"

// Span locates an error in the source. Line and Column are 1-based, Offset
// and Length are in bytes.
type Span struct {
	FileName string
	Offset   int
	Line     int
	Column   int
	Length   int

	// AtEOF is set when the offending token was the end of input.
	AtEOF bool
}

func (s Span) GetFileName() string { return s.FileName }
func (s Span) GetOffset() int      { return s.Offset }
func (s Span) GetLine() int        { return s.Line }
func (s Span) GetColumn() int      { return s.Column }
func (s Span) GetLength() int      { return s.Length }

func (s Span) String() string {
	fileName := s.FileName
	if fileName == "" {
		fileName = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d", fileName, s.Line, s.Column)
}

// Format renders err the way every CompilerError prints itself.
func Format(err CompilerError) string {
	span := Span{
		FileName: err.GetFileName(),
		Line:     err.GetLine(),
		Column:   err.GetColumn(),
	}
	return fmt.Sprintf("%s: %s: %s", span, err.GetKind(), err.GetMessage())
}

type eofMarker interface {
	atEOF() bool
}

func (s Span) atEOF() bool { return s.AtEOF }

// IsIncomplete reports whether errs describe input that merely ended too
// early: every error is a syntax error raised at the end of input.
func IsIncomplete(errs []CompilerError) bool {
	if len(errs) == 0 {
		return false
	}
	for _, err := range errs {
		marker, ok := err.(eofMarker)
		if !ok || !marker.atEOF() || err.GetKind() != SyntaxError {
			return false
		}
	}
	return true
}
