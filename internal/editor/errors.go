// Package editor provides the form editing layer that owns the in-memory
// resume during an editing session and enforces field-level invariants.
package editor

import "fmt"

// LastEntryError indicates an attempt to remove the last remaining entry of
// a repeatable section. The operation is rejected and state is unchanged.
type LastEntryError struct {
	Section string
}

func (e *LastEntryError) Error() string {
	return fmt.Sprintf("cannot remove the last %s entry", e.Section)
}

// NotFoundError indicates an update or remove referencing an unknown
// identity token. This is a programming-contract violation inside the
// session: given correct UI wiring it should not occur.
type NotFoundError struct {
	Section string
	ID      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s entry not found: %s", e.Section, e.ID)
}

// FieldError indicates a field-scoped validation failure. It blocks only
// the affected field's acceptance, never the whole form.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// UnknownFieldError indicates an update naming a field the section does not have.
type UnknownFieldError struct {
	Section string
	Field   string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown %s field: %s", e.Section, e.Field)
}
