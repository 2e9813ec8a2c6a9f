package schema

import "fmt"

// ValidationError reports a malformed request before any external call is
// made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// GenerationError reports a research or content stage failure: transport,
// parsing, or an output that violates the stage contract. It aborts the run.
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ImageGenerationError reports an image stage failure. It is recorded on the
// run but does not discard the research and content already produced.
type ImageGenerationError struct {
	Err error
}

func (e *ImageGenerationError) Error() string {
	return fmt.Sprintf("image stage failed: %v", e.Err)
}

func (e *ImageGenerationError) Unwrap() error { return e.Err }
