package agent

import (
	"context"
	"errors"
	"fmt"

	"ai_content_generator/schema"
)

// ContentAgent turns research bullets into platform-shaped content via one
// completion call. The platform policy (length cap, title rule) is enforced
// on the output, not merely requested in the prompt.
type ContentAgent struct {
	llm LLMClient
}

func NewContentAgent(llm LLMClient) (*ContentAgent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	return &ContentAgent{llm: llm}, nil
}

func (a *ContentAgent) Generate(ctx context.Context, req schema.Request, research schema.ResearchResult) (schema.ContentResult, error) {
	raw, err := a.llm.Complete(ctx, BuildContentPrompt(req, research))
	if err != nil {
		return schema.ContentResult{}, &schema.GenerationError{Stage: schema.StageContent, Err: err}
	}

	var res schema.ContentResult
	if err := decodeStrict(raw, &res); err != nil {
		return schema.ContentResult{}, &schema.GenerationError{Stage: schema.StageContent, Err: fmt.Errorf("parse model output: %w", err)}
	}
	if err := res.ValidateFor(req.Platform); err != nil {
		return schema.ContentResult{}, &schema.GenerationError{Stage: schema.StageContent, Err: err}
	}
	return res, nil
}
