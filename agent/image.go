package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ai_content_generator/schema"
	"ai_content_generator/storage"
)

// ImageAgent runs the two-call image stage: one completion engineers an
// image prompt from the generated content, one image call renders it. The
// PNG is persisted through the image store.
type ImageAgent struct {
	llm    LLMClient
	images ImageClient
	store  *storage.ImageStore
}

type imagePromptResult struct {
	ImagePrompt string `json:"image_prompt"`
}

func NewImageAgent(llm LLMClient, images ImageClient, store *storage.ImageStore) (*ImageAgent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if images == nil {
		return nil, errors.New("image client is required")
	}
	if store == nil {
		return nil, errors.New("image store is required")
	}
	return &ImageAgent{llm: llm, images: images, store: store}, nil
}

func (a *ImageAgent) Generate(ctx context.Context, req schema.Request, content schema.ContentResult) (schema.ImageResult, error) {
	raw, err := a.llm.Complete(ctx, BuildImagePrompt(req, content))
	if err != nil {
		return schema.ImageResult{}, &schema.ImageGenerationError{Err: fmt.Errorf("engineer image prompt: %w", err)}
	}

	var ip imagePromptResult
	if err := decodeStrict(raw, &ip); err != nil {
		return schema.ImageResult{}, &schema.ImageGenerationError{Err: fmt.Errorf("parse image prompt: %w", err)}
	}
	if strings.TrimSpace(ip.ImagePrompt) == "" {
		return schema.ImageResult{}, &schema.ImageGenerationError{Err: errors.New("model returned an empty image prompt")}
	}

	data, err := a.images.GenerateImage(ctx, ip.ImagePrompt)
	if err != nil {
		return schema.ImageResult{}, &schema.ImageGenerationError{Err: err}
	}

	path, err := a.store.Save(req.Platform, data)
	if err != nil {
		return schema.ImageResult{}, &schema.ImageGenerationError{Err: fmt.Errorf("persist image: %w", err)}
	}

	return schema.ImageResult{ImagePrompt: ip.ImagePrompt, ImagePath: path, Data: data}, nil
}
