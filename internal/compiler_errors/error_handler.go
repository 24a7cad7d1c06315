package compiler_errors

type ErrorKind int

const (
	LexicalError ErrorKind = iota
	SyntaxError
	ExhaustionError
)

func (k ErrorKind) String() string {
	switch k {
	case LexicalError:
		return "lexical error"
	case SyntaxError:
		return "syntax error"
	case ExhaustionError:
		return "exhaustion error"
	default:
		return "error"
	}
}

type CompilerError interface {
	error
	GetKind() ErrorKind
	GetMessage() string
	GetFileName() string
	GetOffset() int
	GetLine() int
	GetColumn() int
	GetLength() int
}

// Bailout is the panic value used by FailNow. It never escapes parser.Parse.
type Bailout struct{}

type ErrorHandler interface {
	AddError(err CompilerError)
	FailNow()
	HasErrors() bool
	Errors() []CompilerError
}

type CompilerErrorHandler struct {
	errors []CompilerError
}

func NewErrorHandler() ErrorHandler {
	return &CompilerErrorHandler{
		errors: make([]CompilerError, 0),
	}
}

func (eh *CompilerErrorHandler) AddError(err CompilerError) {
	eh.errors = append(eh.errors, err)
}

// FailNow abandons the current parse attempt. The caller that owns the
// handler must recover Bailout.
func (eh *CompilerErrorHandler) FailNow() {
	panic(Bailout{})
}

func (eh *CompilerErrorHandler) HasErrors() bool {
	return len(eh.errors) > 0
}

func (eh *CompilerErrorHandler) Errors() []CompilerError {
	return eh.errors
}
