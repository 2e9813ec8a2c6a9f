package agent

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"ai_content_generator/schema"
)

// MockLLM is a deterministic offline stand-in for the completion capability,
// useful for local debugging and tests. It inspects the requested output
// schema and returns a shape-conformant canned answer.
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	if prompt.Output == nil {
		return "mock completion", nil
	}
	switch prompt.Output.Name {
	case researchOutput.Name:
		return m.researchJSON()
	case contentOutput.Name:
		return m.contentJSON(prompt.User)
	case imagePromptOutput.Name:
		return marshal(imagePromptResult{ImagePrompt: "A clean flat illustration of the topic, soft colors, minimal composition."})
	}
	return "", fmt.Errorf("mock llm: unknown output schema %q", prompt.Output.Name)
}

func (m MockLLM) researchJSON() (string, error) {
	res := schema.ResearchResult{BulletPoints: []schema.BulletPoint{
		{Content: "Adoption of the technology grew 40% year over year according to industry surveys."},
		{Content: "Analysts expect the market to triple in size by 2030."},
		{Content: "Over 60% of enterprises report running at least one pilot project."},
		{Content: "Regulators in the EU and US published draft guidance this year."},
		{Content: "Early adopters report double-digit efficiency gains within twelve months."},
	}}
	return marshal(res)
}

func (m MockLLM) contentJSON(user string) (string, error) {
	switch {
	case strings.Contains(user, "Platform: medium"):
		return marshal(schema.ContentResult{
			Title: "Five Things the Data Tells Us",
			Content: "The numbers are hard to ignore: adoption is up 40% year over year and the market is on track to triple by 2030.\n\n" +
				"More than 60% of enterprises already run pilots, and early adopters report double-digit efficiency gains within a year. " +
				"With draft regulatory guidance now on the table, the window for waiting on the sidelines is closing.",
		})
	case strings.Contains(user, "Platform: linkedin"):
		return marshal(schema.ContentResult{
			Content: "Adoption grew 40% year over year, and analysts expect the market to triple by 2030. " +
				"With over 60% of enterprises running pilots and early adopters reporting double-digit efficiency gains, " +
				"now is the time to move from experiments to strategy. Where is your organization on that curve?",
		})
	default:
		return marshal(schema.ContentResult{
			Content: "Adoption up 40% YoY, market set to triple by 2030, and 60% of enterprises already piloting. The shift is happening now. #trends #data",
		})
	}
}

func marshal(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// mockPNG is a 1x1 transparent PNG.
const mockPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

// MockImage is a deterministic offline stand-in for the image-generation
// capability.
type MockImage struct{}

func (m MockImage) GenerateImage(_ context.Context, _ string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(mockPNG)
}
