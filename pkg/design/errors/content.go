package errors

import (
	"fmt"
	"strings"
)

// Code identifies the reason a containment request was refused.
type Code string

const (
	// CodeInvalidContextContainment is the generic containment rejection
	// produced by the structural guards.
	CodeInvalidContextContainment Code = "INVALID_CONTEXT_CONTAINMENT"

	// CodeWrongType means the slot does not accept the candidate's type.
	CodeWrongType Code = "WRONG_TYPE"

	// CodeSlotIsFull means a single-cardinality slot is already occupied.
	CodeSlotIsFull Code = "SLOT_IS_FULL"

	// CodeRowCellOverflow means a row spans more cells than its table has columns.
	CodeRowCellOverflow Code = "ROW_CELL_OVERFLOW"

	// CodeDuplicateGroupName means a listing already has a group of that name.
	CodeDuplicateGroupName Code = "DUPLICATE_GROUP_NAME"

	// CodeDataBoundInMasterPage means data-bound content was offered to a master page.
	CodeDataBoundInMasterPage Code = "DATA_BOUND_IN_MASTER_PAGE"
)

// ContentError records one refused containment: the container slot that was
// asked and the candidate that was offered. Candidate fields describe either a
// concrete element or, for type-only queries, just its type.
type ContentError struct {
	Code Code

	ContainerID   string
	ContainerName string
	ContainerType string
	Slot          string

	ElementID   string
	ElementName string
	ElementType string

	Message string
}

// Error implements the error interface.
func (e *ContentError) Error() string {
	candidate := e.ElementType
	if e.ElementName != "" {
		candidate = fmt.Sprintf("%s %q", e.ElementType, e.ElementName)
	}
	container := e.ContainerType
	if e.ContainerName != "" {
		container = fmt.Sprintf("%s %q", e.ContainerType, e.ContainerName)
	}

	msg := fmt.Sprintf("[%s] %s cannot be contained in slot %q of %s", e.Code, candidate, e.Slot, container)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Violations is the result of a detailed containment check. An empty list
// means the candidate is accepted.
type Violations []*ContentError

// Error implements the error interface.
func (v Violations) Error() string {
	switch len(v) {
	case 0:
		return ""
	case 1:
		return v[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d containment violations:\n", len(v)))
	for _, e := range v {
		sb.WriteString("  - ")
		sb.WriteString(e.Error())
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToError returns nil for an empty list, otherwise the list itself.
func (v Violations) ToError() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// HasCode returns true if any violation carries the given code.
func (v Violations) HasCode(code Code) bool {
	for _, e := range v {
		if e.Code == code {
			return true
		}
	}
	return false
}

// Codes returns the codes of all violations in order.
func (v Violations) Codes() []string {
	codes := make([]string, 0, len(v))
	for _, e := range v {
		codes = append(codes, string(e.Code))
	}
	return codes
}
