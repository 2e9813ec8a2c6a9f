package agent

import (
	"context"
	"encoding/base64"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultImageModel = "gpt-image-1"

// OpenAILLM implements LLMClient and ImageClient using the official
// openai-go SDK (chat completions + images).
type OpenAILLM struct {
	Model      string
	ImageModel string
	Opts       []option.RequestOption
}

func NewOpenAILLMFromConfig(cfg *LLMSettings) (*OpenAILLM, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing")
	}
	if cfg.Model == "" {
		return nil, errors.New("llm model is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	imageModel := cfg.ImageModel
	if imageModel == "" {
		imageModel = defaultImageModel
	}
	return &OpenAILLM{Model: cfg.Model, ImageModel: imageModel, Opts: opts}, nil
}

func (o *OpenAILLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	client := openai.NewClient(o.Opts...)

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt.System),
			openai.UserMessage(prompt.User),
		},
	}
	if prompt.Output != nil {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   prompt.Output.Name,
					Schema: prompt.Output.Schema,
					Strict: openai.Bool(true),
				},
			},
		}
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateImage produces a single 1024x1024 PNG and returns its raw bytes.
func (o *OpenAILLM) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	client := openai.NewClient(o.Opts...)

	resp, err := client.Images.Generate(ctx, openai.ImageGenerateParams{
		Model:  openai.ImageModel(o.ImageModel),
		Prompt: prompt,
		N:      openai.Int(1),
		Size:   openai.ImageGenerateParamsSize1024x1024,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, errors.New("openai: empty image data")
	}
	return base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
}
