package drafting

import "fmt"

// ServiceError represents a transport or provider failure while talking to
// the LLM service.
type ServiceError struct {
	Action  string
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("drafting %s failed: %s: %v", e.Action, e.Message, e.Cause)
	}
	return fmt.Sprintf("drafting %s failed: %s", e.Action, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// MalformedResponseError represents a response the service returned but that
// does not match the expected structure. Raw carries the payload for
// logging; the caller's state is never partially updated from it.
type MalformedResponseError struct {
	Action  string
	Message string
	Raw     string
	Cause   error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("drafting %s returned malformed response: %s: %v", e.Action, e.Message, e.Cause)
	}
	return fmt.Sprintf("drafting %s returned malformed response: %s", e.Action, e.Message)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}
