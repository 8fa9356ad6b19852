package domain

import "fmt"

// NotFoundError indicates a referenced entity does not exist
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ValidationError indicates invalid caller input
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// MalformedResponseError indicates the model returned output that failed
// structural decoding or the sequence cardinality check. Callers may choose
// to retry the model call; the error is never coerced into a success.
type MalformedResponseError struct {
	Reason string
	Raw    string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %s", e.Reason)
}

// UpstreamError wraps a transport failure from an external service
// (model, embedding, vector index). The original cause is preserved;
// retry policy is left to the caller.
type UpstreamError struct {
	Service string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Status is a soft, non-fatal outcome returned as data rather than raised
// as an error (e.g. "no user turns yet", "no relevant documents found").
type Status struct {
	State   string `json:"status"`
	Message string `json:"message"`
	Count   int    `json:"doc_count,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusWarning = "warning"
)
