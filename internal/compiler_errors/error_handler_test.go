package compiler_errors

import (
	"bytes"
	"testing"
)

type testError struct {
	Span
	kind    ErrorKind
	message string
}

func (e *testError) GetKind() ErrorKind { return e.kind }
func (e *testError) GetMessage() string { return e.message }
func (e *testError) Error() string      { return Format(e) }

func TestErrorHandlerCollectsInOrder(t *testing.T) {
	eh := NewErrorHandler()
	if eh.HasErrors() {
		t.Fatalf("new handler reports errors")
	}

	first := &testError{Span: Span{Line: 1, Column: 1}, kind: LexicalError, message: "first"}
	second := &testError{Span: Span{Line: 2, Column: 5}, kind: SyntaxError, message: "second"}
	eh.AddError(first)
	eh.AddError(second)

	errs := eh.Errors()
	if len(errs) != 2 || errs[0] != first || errs[1] != second {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestFailNowPanicsWithBailout(t *testing.T) {
	eh := NewErrorHandler()
	defer func() {
		r := recover()
		if _, ok := r.(Bailout); !ok {
			t.Fatalf("expected Bailout panic, got %v", r)
		}
	}()
	eh.FailNow()
}

func TestFormat(t *testing.T) {
	err := &testError{
		Span:    Span{FileName: "main.rni", Line: 3, Column: 7},
		kind:    SyntaxError,
		message: "unexpected token: 'RPAREN'",
	}
	expected := "main.rni:3:7: syntax error: unexpected token: 'RPAREN'"
	if got := err.Error(); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}

	anonymous := &testError{Span: Span{Line: 1, Column: 1}, kind: LexicalError, message: "bad"}
	if got := anonymous.Error(); got != "<input>:1:1: lexical error: bad" {
		t.Errorf("unexpected format for unnamed input: %q", got)
	}
}

func TestIsIncomplete(t *testing.T) {
	tests := []struct {
		name     string
		errs     []CompilerError
		expected bool
	}{
		{
			name:     "no errors",
			errs:     nil,
			expected: false,
		},
		{
			name: "syntax error at eof",
			errs: []CompilerError{
				&testError{Span: Span{AtEOF: true}, kind: SyntaxError},
			},
			expected: true,
		},
		{
			name: "syntax error before eof",
			errs: []CompilerError{
				&testError{Span: Span{}, kind: SyntaxError},
			},
			expected: false,
		},
		{
			name: "lexical error alongside eof",
			errs: []CompilerError{
				&testError{Span: Span{}, kind: LexicalError},
				&testError{Span: Span{AtEOF: true}, kind: SyntaxError},
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsIncomplete(tt.errs); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestReportWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	Report(&buf, []CompilerError{
		&testError{Span: Span{FileName: "a.rni", Line: 1, Column: 2}, kind: SyntaxError, message: "one"},
		&testError{Span: Span{FileName: "a.rni", Line: 4, Column: 1}, kind: ExhaustionError, message: "two"},
	})

	expected := "a.rni:1:2: syntax error: one\na.rni:4:1: exhaustion error: two\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}
