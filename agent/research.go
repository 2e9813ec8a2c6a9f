package agent

import (
	"context"
	"errors"
	"fmt"

	"ai_content_generator/schema"
)

// ResearchAgent turns a topic into 5-7 factual bullet points via one
// completion call.
type ResearchAgent struct {
	llm LLMClient
}

func NewResearchAgent(llm LLMClient) (*ResearchAgent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	return &ResearchAgent{llm: llm}, nil
}

func (a *ResearchAgent) Research(ctx context.Context, req schema.Request) (schema.ResearchResult, error) {
	raw, err := a.llm.Complete(ctx, BuildResearchPrompt(req))
	if err != nil {
		return schema.ResearchResult{}, &schema.GenerationError{Stage: schema.StageResearch, Err: err}
	}

	var res schema.ResearchResult
	if err := decodeStrict(raw, &res); err != nil {
		return schema.ResearchResult{}, &schema.GenerationError{Stage: schema.StageResearch, Err: fmt.Errorf("parse model output: %w", err)}
	}
	if err := res.Validate(); err != nil {
		return schema.ResearchResult{}, &schema.GenerationError{Stage: schema.StageResearch, Err: err}
	}
	return res, nil
}
