package errors

import (
	"fmt"
	"strings"
)

// ErrorType classifies a load error.
type ErrorType string

const (
	// ErrorTypeSyntax is malformed YAML or a node of the wrong shape.
	ErrorTypeSyntax ErrorType = "syntax"
	// ErrorTypeStructural is an unknown kind, type, slot or reference.
	ErrorTypeStructural ErrorType = "structural"
	// ErrorTypeSemantic is an inconsistency between definitions, such as an
	// inheritance cycle or a duplicate name.
	ErrorTypeSemantic ErrorType = "semantic"
	// ErrorTypeIO is a file that could not be read.
	ErrorTypeIO ErrorType = "io"
)

// Location is a 1-based position in a design document or dictionary.
type Location struct {
	File   string
	Line   int
	Column int
}

// IsValid reports whether the location names a file and a line.
func (l Location) IsValid() bool {
	return l.File != "" && l.Line > 0
}

func (l Location) String() string {
	switch {
	case l.File == "":
		return "<unknown>"
	case l.Line <= 0:
		return l.File
	default:
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
}

// Error is one problem found while loading. Context holds the surrounding
// source lines once AddContextToError has run.
type Error struct {
	Type       ErrorType
	Message    string
	Location   Location
	Context    string
	Suggestion string
}

func (e *Error) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s error: %s\n", e.Location, e.Type, e.Message)
	if e.Context != "" {
		sb.WriteString(e.Context)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&sb, "  hint: %s\n", e.Suggestion)
	}
	return sb.String()
}

// ErrorList collects every problem of a document so that one load reports
// all of them.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList returns an empty list.
func NewErrorList() *ErrorList {
	return &ErrorList{}
}

// Add appends err. Nil errors are ignored.
func (el *ErrorList) Add(err *Error) {
	if err != nil {
		el.Errors = append(el.Errors, err)
	}
}

// AddError appends a new error at location.
func (el *ErrorList) AddError(errType ErrorType, message string, location Location) {
	el.AddErrorWithSuggestion(errType, message, location, "")
}

// AddErrorWithSuggestion appends a new error carrying a hint for the fix.
func (el *ErrorList) AddErrorWithSuggestion(errType ErrorType, message string, location Location, suggestion string) {
	el.Add(&Error{Type: errType, Message: message, Location: location, Suggestion: suggestion})
}

func (el *ErrorList) HasErrors() bool { return el.Count() > 0 }

func (el *ErrorList) Count() int { return len(el.Errors) }

func (el *ErrorList) Error() string {
	switch el.Count() {
	case 0:
		return ""
	case 1:
		return el.Errors[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d errors:\n", el.Count())
	for _, err := range el.Errors {
		sb.WriteString("\n")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// ToError returns the list as an error, or nil when it is empty.
func (el *ErrorList) ToError() error {
	if el.HasErrors() {
		return el
	}
	return nil
}

// ByType returns the errors of one type.
func (el *ErrorList) ByType(errType ErrorType) []*Error {
	var matched []*Error
	for _, err := range el.Errors {
		if err.Type == errType {
			matched = append(matched, err)
		}
	}
	return matched
}

// HasErrorType reports whether any error has the given type.
func (el *ErrorList) HasErrorType(errType ErrorType) bool {
	return len(el.ByType(errType)) > 0
}
