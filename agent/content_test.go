package agent

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai_content_generator/schema"
)

func contentJSON(t *testing.T, res schema.ContentResult) string {
	t.Helper()
	b, err := json.Marshal(res)
	require.NoError(t, err)
	return string(b)
}

func testResearch() schema.ResearchResult {
	return schema.ResearchResult{BulletPoints: []schema.BulletPoint{
		{Content: "fact one"}, {Content: "fact two"}, {Content: "fact three"},
		{Content: "fact four"}, {Content: "fact five"},
	}}
}

func reqFor(p schema.Platform) schema.Request {
	return schema.Request{Topic: "ai ethics", Platform: p, Tone: schema.ToneProfessional}
}

func TestContentAgent(t *testing.T) {
	t.Run("twitter", func(t *testing.T) {
		llm := &fakeLLM{resp: contentJSON(t, schema.ContentResult{Content: "AI ethics matters. #AIethics"})}
		a, err := NewContentAgent(llm)
		require.NoError(t, err)

		res, err := a.Generate(context.Background(), reqFor(schema.PlatformTwitter), testResearch())
		require.NoError(t, err)
		assert.Empty(t, res.Title)
		assert.Contains(t, res.Content, "#")

		require.Len(t, llm.prompts, 1)
		assert.Contains(t, llm.prompts[0].User, "280")
		assert.Contains(t, llm.prompts[0].User, "fact one")
	})

	t.Run("medium requires title", func(t *testing.T) {
		llm := &fakeLLM{resp: contentJSON(t, schema.ContentResult{
			Title:   "The State of AI Ethics",
			Content: "First paragraph.\n\nSecond paragraph.",
		})}
		a, _ := NewContentAgent(llm)

		res, err := a.Generate(context.Background(), reqFor(schema.PlatformMedium), testResearch())
		require.NoError(t, err)
		assert.NotEmpty(t, res.Title)
	})

	t.Run("medium missing title rejected", func(t *testing.T) {
		llm := &fakeLLM{resp: contentJSON(t, schema.ContentResult{Content: "body only"})}
		a, _ := NewContentAgent(llm)

		_, err := a.Generate(context.Background(), reqFor(schema.PlatformMedium), testResearch())
		var gerr *schema.GenerationError
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, schema.StageContent, gerr.Stage)
	})

	t.Run("title on non-medium rejected", func(t *testing.T) {
		llm := &fakeLLM{resp: contentJSON(t, schema.ContentResult{Title: "nope", Content: "post"})}
		a, _ := NewContentAgent(llm)

		_, err := a.Generate(context.Background(), reqFor(schema.PlatformLinkedIn), testResearch())
		var gerr *schema.GenerationError
		require.ErrorAs(t, err, &gerr)
	})

	t.Run("twitter over 280 rejected", func(t *testing.T) {
		llm := &fakeLLM{resp: contentJSON(t, schema.ContentResult{Content: strings.Repeat("x", 281)})}
		a, _ := NewContentAgent(llm)

		_, err := a.Generate(context.Background(), reqFor(schema.PlatformTwitter), testResearch())
		var gerr *schema.GenerationError
		require.ErrorAs(t, err, &gerr)
		assert.Contains(t, gerr.Error(), "281")
	})

	t.Run("null title decodes clean", func(t *testing.T) {
		llm := &fakeLLM{resp: `{"title":null,"content":"a post"}`}
		a, _ := NewContentAgent(llm)

		res, err := a.Generate(context.Background(), reqFor(schema.PlatformLinkedIn), testResearch())
		require.NoError(t, err)
		assert.Empty(t, res.Title)
	})
}
