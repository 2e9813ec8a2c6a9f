package agent

import "context"

// OutputSchema names the JSON shape a completion must conform to.
type OutputSchema struct {
	Name   string
	Schema map[string]any
}

// Prompt is the message set sent to the model. When Output is set the
// completion is constrained to that schema.
type Prompt struct {
	System string
	User   string
	Output *OutputSchema
}

// LLMClient abstracts the completion capability so it can be swapped or
// mocked.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// ImageClient abstracts the image-generation capability.
type ImageClient interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// LLMSettings carries provider configuration for concrete clients.
type LLMSettings struct {
	Provider   string
	Model      string
	ImageModel string
	APIKey     string
	BaseURL    string
}
