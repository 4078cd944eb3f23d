package annotate

import "fmt"

// PromptNotFoundError is returned when the instruction template cannot be
// read.
type PromptNotFoundError struct {
	Path string
	Err  error
}

func (e *PromptNotFoundError) Error() string {
	return fmt.Sprintf("prompt not found at %s: %v", e.Path, e.Err)
}

func (e *PromptNotFoundError) Unwrap() error { return e.Err }

// MalformedResponseError is returned when the model reply is not JSON.
type MalformedResponseError struct {
	Text string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("model did not return valid JSON, raw text:\n%s", e.Text)
}

// UnexpectedShapeError is returned when the model reply is JSON but not an
// array.
type UnexpectedShapeError struct {
	Got  string
	Text string
}

func (e *UnexpectedShapeError) Error() string {
	return fmt.Sprintf("expected a JSON array, got %s", e.Got)
}

// StatusError is returned when the service answers with a non 2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("annotation service returned status %d: %s", e.StatusCode, e.Body)
}
