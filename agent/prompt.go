package agent

import (
	"fmt"
	"strings"

	"ai_content_generator/schema"
)

var researchOutput = &OutputSchema{
	Name: "research_result",
	Schema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"bullet_points": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"content": map[string]any{"type": "string"},
					},
					"required":             []string{"content"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"bullet_points"},
		"additionalProperties": false,
	},
}

var contentOutput = &OutputSchema{
	Name: "platform_content",
	Schema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":   map[string]any{"type": []string{"string", "null"}},
			"content": map[string]any{"type": "string"},
		},
		"required":             []string{"title", "content"},
		"additionalProperties": false,
	},
}

var imagePromptOutput = &OutputSchema{
	Name: "image_prompt",
	Schema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"image_prompt": map[string]any{"type": "string"},
		},
		"required":             []string{"image_prompt"},
		"additionalProperties": false,
	},
}

// BuildResearchPrompt asks for 5-7 factual bullet points on the topic.
func BuildResearchPrompt(req schema.Request) Prompt {
	var sb strings.Builder
	sb.WriteString("You are an expert research assistant specializing in finding accurate, relevant information.\n")
	sb.WriteString(fmt.Sprintf("Your task is to gather %d-%d factual bullet points on a given topic.\n", schema.MinBulletPoints, schema.MaxBulletPoints))
	sb.WriteString("Each bullet point should:\n")
	sb.WriteString("- Be concise and factual (no opinions)\n")
	sb.WriteString("- Include specific data points, statistics, or quotable facts when possible\n")
	sb.WriteString("- Be tailored to be useful for the specified platform and tone\n")
	sb.WriteString("- Avoid repetition across bullet points\n")
	sb.WriteString("- Be presented without numbering or prefixes\n")

	user := fmt.Sprintf(
		"Research Topic: %s\nTarget Platform: %s\nContent Tone: %s\n\n"+
			"Provide %d-%d factual bullet points on this topic that would be useful for creating %s content with a %s tone. "+
			"Focus on recent data, surprising facts, and information that would engage the target audience.",
		req.Topic, req.Platform, req.Tone,
		schema.MinBulletPoints, schema.MaxBulletPoints, req.Platform, req.Tone,
	)

	return Prompt{
		System: sb.String(),
		User:   user,
		Output: researchOutput,
	}
}

func platformInstructions(p schema.Platform) string {
	switch p {
	case schema.PlatformTwitter:
		return fmt.Sprintf("Create a Twitter post (max %d characters) that's engaging and concise. "+
			"Include 1-2 relevant hashtags. The title field must be null.", schema.TwitterMaxChars)
	case schema.PlatformLinkedIn:
		return "Create a professional LinkedIn post (300-500 characters) that's insightful " +
			"and valuable to professionals. The title field must be null."
	case schema.PlatformMedium:
		return "Create a Medium post with an engaging title and 2-3 paragraphs of content. " +
			"The title should be attention-grabbing but accurate."
	}
	return "Create content appropriate for the platform."
}

// BuildContentPrompt turns research bullets into platform-shaped content.
func BuildContentPrompt(req schema.Request, research schema.ResearchResult) Prompt {
	var sb strings.Builder
	sb.WriteString("You are an expert content creator specializing in crafting engaging, platform-optimized content from research bullet points.\n")
	sb.WriteString("Your content must:\n")
	sb.WriteString("- Be perfectly tailored for the specified platform in both format and length\n")
	sb.WriteString("- Maintain the requested tone consistently\n")
	sb.WriteString("- Incorporate the provided research points naturally\n")

	var bullets strings.Builder
	for _, b := range research.BulletPoints {
		bullets.WriteString(fmt.Sprintf("- %s\n", b.Content))
	}

	user := fmt.Sprintf(
		"Platform: %s\nTone: %s\n\nResearch Bullet Points:\n%s\nInstructions:\n%s\n\n"+
			"Ensure the content uses a %s tone consistently throughout and incorporates the key research points naturally.",
		req.Platform, req.Tone, bullets.String(), platformInstructions(req.Platform), req.Tone,
	)

	return Prompt{
		System: sb.String(),
		User:   user,
		Output: contentOutput,
	}
}

// BuildImagePrompt asks for a detailed image-generation prompt capturing the
// essence of the generated content.
func BuildImagePrompt(req schema.Request, content schema.ContentResult) Prompt {
	var sb strings.Builder
	sb.WriteString("You are an expert image prompt engineer creating prompts for AI image generation from text content.\n")
	sb.WriteString("Analyze the provided content, extract the key visual elements, and produce one detailed, descriptive prompt.\n")
	sb.WriteString("The prompt should be visually descriptive (colors, style, mood, composition), relate directly to the content, and match its tone.\n")

	user := fmt.Sprintf(
		"Content: %s\nTitle (if any): %s\nPlatform: %s\nTone: %s\n\n"+
			"Create a detailed image generation prompt that captures the essence of this content.",
		content.Content, content.Title, req.Platform, req.Tone,
	)

	return Prompt{
		System: sb.String(),
		User:   user,
		Output: imagePromptOutput,
	}
}
