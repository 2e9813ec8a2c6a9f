package schema

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Platform is the publishing target for generated content.
type Platform string

const (
	PlatformTwitter  Platform = "twitter"
	PlatformLinkedIn Platform = "linkedin"
	PlatformMedium   Platform = "medium"
)

// Tone is the requested register for generated content.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneCasual       Tone = "casual"
	ToneInformative  Tone = "informative"
	TonePersuasive   Tone = "persuasive"
	ToneEnthusiastic Tone = "enthusiastic"
)

// TwitterMaxChars is the hard post length limit, counted in runes.
const TwitterMaxChars = 280

// Bullet count bounds for a research result.
const (
	MinBulletPoints = 5
	MaxBulletPoints = 7
)

// Stage names used in error reporting and tracing.
const (
	StageResearch = "research"
	StageContent  = "content"
	StageImage    = "image"
)

func Platforms() []Platform {
	return []Platform{PlatformTwitter, PlatformLinkedIn, PlatformMedium}
}

func Tones() []Tone {
	return []Tone{ToneProfessional, ToneCasual, ToneInformative, TonePersuasive, ToneEnthusiastic}
}

func (p Platform) Valid() bool {
	switch p {
	case PlatformTwitter, PlatformLinkedIn, PlatformMedium:
		return true
	}
	return false
}

func (t Tone) Valid() bool {
	switch t {
	case ToneProfessional, ToneCasual, ToneInformative, TonePersuasive, ToneEnthusiastic:
		return true
	}
	return false
}

// ParsePlatform parses a platform name as received from the CLI or API.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", &ValidationError{Field: "platform", Reason: fmt.Sprintf("%q is not one of %v", s, Platforms())}
	}
	return p, nil
}

// ParseTone parses a tone name as received from the CLI or API.
func ParseTone(s string) (Tone, error) {
	t := Tone(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", &ValidationError{Field: "tone", Reason: fmt.Sprintf("%q is not one of %v", s, Tones())}
	}
	return t, nil
}

// Request is the immutable input of a single workflow run.
type Request struct {
	Topic    string   `json:"topic"`
	Platform Platform `json:"platform"`
	Tone     Tone     `json:"tone"`
}

func (r Request) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return &ValidationError{Field: "topic", Reason: "must not be empty"}
	}
	if !r.Platform.Valid() {
		return &ValidationError{Field: "platform", Reason: fmt.Sprintf("%q is not one of %v", r.Platform, Platforms())}
	}
	if !r.Tone.Valid() {
		return &ValidationError{Field: "tone", Reason: fmt.Sprintf("%q is not one of %v", r.Tone, Tones())}
	}
	return nil
}

// BulletPoint is a single factual research finding.
type BulletPoint struct {
	Content string `json:"content"`
}

// ResearchResult is the research stage output: 5-7 factual bullet points.
type ResearchResult struct {
	BulletPoints []BulletPoint `json:"bullet_points"`
}

// Validate rejects out-of-range or empty bullets; it never clamps.
func (r ResearchResult) Validate() error {
	n := len(r.BulletPoints)
	if n < MinBulletPoints || n > MaxBulletPoints {
		return fmt.Errorf("expected %d-%d bullet points, got %d", MinBulletPoints, MaxBulletPoints, n)
	}
	for i, b := range r.BulletPoints {
		if strings.TrimSpace(b.Content) == "" {
			return fmt.Errorf("bullet point %d is empty", i+1)
		}
	}
	return nil
}

// ContentResult is the content stage output. Title is populated only for
// medium posts.
type ContentResult struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
}

// ValidateFor enforces the platform policy on a generated result: non-empty
// content, title present iff medium, and the twitter rune cap.
func (c ContentResult) ValidateFor(p Platform) error {
	if strings.TrimSpace(c.Content) == "" {
		return fmt.Errorf("content is empty")
	}
	switch p {
	case PlatformMedium:
		if strings.TrimSpace(c.Title) == "" {
			return fmt.Errorf("medium post is missing a title")
		}
	default:
		if c.Title != "" {
			return fmt.Errorf("%s post must not carry a title", p)
		}
	}
	if p == PlatformTwitter {
		if n := utf8.RuneCountInString(c.Content); n > TwitterMaxChars {
			return fmt.Errorf("twitter post is %d characters, limit is %d", n, TwitterMaxChars)
		}
	}
	return nil
}

// ImageResult is the image stage output: the engineered prompt, the path the
// PNG was written to, and the raw bytes.
type ImageResult struct {
	ImagePrompt string `json:"image_prompt"`
	ImagePath   string `json:"image_path"`
	Data        []byte `json:"-"`
}
