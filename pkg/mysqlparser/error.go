package mysqlparser

import (
	"fmt"

	"github.com/antlr4-go/antlr/v4"
)

// SyntaxError is a lexing error with its one-based line and zero-based column.
type SyntaxError struct {
	Line       int
	Column     int
	Message    string
	RawMessage string
}

// Error returns the error message.
func (e *SyntaxError) Error() string {
	return e.Message
}

// ParseErrorListener keeps the first syntax error reported by a recognizer.
type ParseErrorListener struct {
	*antlr.DefaultErrorListener
	Err       *SyntaxError
	Statement string
}

// NewParseErrorListener returns a listener for the given script.
func NewParseErrorListener(statement string) *ParseErrorListener {
	return &ParseErrorListener{
		DefaultErrorListener: antlr.NewDefaultErrorListener(),
		Statement:            statement,
	}
}

// SyntaxError records the error unless one was already seen.
func (l *ParseErrorListener) SyntaxError(
	_ antlr.Recognizer,
	token any,
	line, column int,
	message string,
	_ antlr.RecognitionException,
) {
	if l.Err != nil {
		return
	}

	related := ""
	if token, ok := token.(*antlr.CommonToken); ok {
		stream := token.GetInputStream()
		start := token.GetStart() - 40
		if start < 0 {
			start = 0
		}
		stop := token.GetStop()
		if stop >= stream.Size() {
			stop = stream.Size() - 1
		}
		related = fmt.Sprintf("\nrelated text: %s", stream.GetTextFromInterval(antlr.NewInterval(start, stop)))
	}

	l.Err = &SyntaxError{
		Line:       line,
		Column:     column,
		RawMessage: message,
		Message:    fmt.Sprintf("syntax error at line %d:%d: %s%s", line, column, message, related),
	}
}
