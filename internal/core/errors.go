package core

import (
	"errors"
	"fmt"

	"github.com/pterm/pterm"
)

// Error codes for the kinds of failures a fontsheet run may encounter.
// Errors without a code report EINTERNAL, nil reports 0.
const (
	EFONT     int = 130 // font cannot be resolved
	ESOURCE   int = 131 // glyph source missing or unreadable
	ERASTER   int = 132 // pixel buffer cannot be constructed
	EWRITE    int = 133 // directory or file cannot be written
	EINTERNAL int = 135
)

var codeText = map[int]string{
	EFONT:     "font not found",
	ESOURCE:   "glyph source unreadable",
	ERASTER:   "rasterization failure",
	EWRITE:    "file write failure",
	EINTERNAL: "internal error",
}

// AppError is an error carrying a code and a message for the user.
type AppError interface {
	error
	ErrorCode() int
	UserMessage() string
}

// codedError attaches a code and a user message to a cause.
type codedError struct {
	cause error
	code  int
	msg   string
}

func (e *codedError) Error() string       { return fmt.Sprintf("[%d] %v", e.code, e.cause) }
func (e *codedError) Unwrap() error       { return e.cause }
func (e *codedError) ErrorCode() int      { return e.code }
func (e *codedError) UserMessage() string { return e.msg }

// WrapError attaches code and a formatted user message to err.
// A nil err is replaced by the code's default text.
func WrapError(err error, code int, format string, v ...interface{}) error {
	if err == nil {
		err = errors.New(codeText[code])
	}
	return &codedError{cause: err, code: code, msg: fmt.Sprintf(format, v...)}
}

// Error creates a coded error without an underlying cause.
func Error(code int, format string, v ...interface{}) error {
	return WrapError(nil, code, format, v...)
}

func asApp(err error) (AppError, bool) {
	var e AppError
	ok := errors.As(err, &e)
	return e, ok
}

// Code returns the code of the first coded error in err's chain.
func Code(err error) int {
	if err == nil {
		return 0
	}
	if e, ok := asApp(err); ok {
		return e.ErrorCode()
	}
	return EINTERNAL
}

// UserMessage returns the user message of err, or the text of its code.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := asApp(err); ok {
		return e.UserMessage()
	}
	return codeText[EINTERNAL]
}

// UserError prints an error to standard output, the way users of the
// command line tool see diagnostics.
func UserError(err error) {
	if err == nil {
		return
	}
	if e, ok := asApp(err); ok {
		pterm.Error.Printfln("[%d] %s", e.ErrorCode(), e.UserMessage())
		return
	}
	pterm.Error.Printfln("%s", err.Error())
}
