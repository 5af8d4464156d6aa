package errors

import (
	"bufio"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Category groups error codes.
type Category string

const (
	CategoryMount  Category = "mount"
	CategoryRender Category = "render"
	CategoryConfig Category = "config"
	CategoryCLI    Category = "cli"
	CategoryServer Category = "server"
)

// Location is a position in a source file.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column,omitempty"`
}

// String returns the location as file:line[:column].
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Error is a coded error.
type Error struct {
	// Code is the registry code (e.g., "E101").
	Code string

	// Category is the code's group.
	Category Category

	// Message is a short description.
	Message string

	// Detail is a longer explanation.
	Detail string

	// Location is the source position, for file-backed errors.
	Location *Location

	// Context holds the source lines around Location.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is matches another *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code != "" && t.Code == e.Code
}

// WithLocation sets the source location and loads the lines around it.
func (e *Error) WithLocation(file string, line, column int) *Error {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

var (
	yamlLine = regexp.MustCompile(`line (\d+)`)
)

// WithLocationFromError derives a location in file from a decoder error:
// yaml.v3 messages ("yaml: line 3: ...") and *json.SyntaxError offsets.
// It leaves e unchanged when err carries no position.
func (e *Error) WithLocationFromError(file string, err error) *Error {
	if err == nil {
		return e
	}

	var syntax *json.SyntaxError
	if stderrors.As(err, &syntax) {
		if line, col := offsetToLine(file, syntax.Offset); line > 0 {
			return e.WithLocation(file, line, col)
		}
		return e
	}

	if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
		if line, _ := strconv.Atoi(m[1]); line > 0 {
			return e.WithLocation(file, line, 0)
		}
	}
	return e
}

// WithSuggestion adds a fix hint.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// WithDetail replaces the detail text.
func (e *Error) WithDetail(d string) *Error {
	e.Detail = d
	return e
}

// WithDetailf replaces the detail text with a formatted one.
func (e *Error) WithDetailf(format string, args ...any) *Error {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap sets the underlying error.
func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	return e
}

// readContextLines reads up to size lines centred on target.
func readContextLines(filename string, target, size int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	n := 0
	start := target - size/2
	end := target + size/2

	for scanner.Scan() {
		n++
		if n >= start && n <= end {
			lines = append(lines, scanner.Text())
		}
		if n > end {
			break
		}
	}
	return lines
}

// offsetToLine converts a byte offset in filename to a 1-based line and
// column.
func offsetToLine(filename string, offset int64) (int, int) {
	data, err := os.ReadFile(filename)
	if err != nil || offset <= 0 {
		return 0, 0
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	before := string(data[:offset])
	line := strings.Count(before, "\n") + 1
	col := int(offset)
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		col = int(offset) - i - 1
	}
	return line, col
}

// New creates an Error from a registered code.
func New(code string) *Error {
	template, ok := registry[code]
	if !ok {
		return &Error{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &Error{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates an uncoded Error with a formatted message.
func Newf(category Category, format string, args ...any) *Error {
	return &Error{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError returns err as an *Error, wrapping it under code when it is
// not one already.
func FromError(err error, code string) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err or anything it wraps is an *Error with code.
func HasCode(err error, code string) bool {
	return stderrors.Is(err, &Error{Code: code})
}
