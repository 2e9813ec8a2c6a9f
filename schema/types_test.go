package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		in      string
		want    Platform
		wantErr bool
	}{
		{in: "twitter", want: PlatformTwitter},
		{in: "LinkedIn", want: PlatformLinkedIn},
		{in: " medium ", want: PlatformMedium},
		{in: "facebook", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePlatform(tt.in)
			if tt.wantErr {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "platform", verr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTone(t *testing.T) {
	for _, tone := range Tones() {
		got, err := ParseTone(string(tone))
		require.NoError(t, err)
		assert.Equal(t, tone, got)
	}

	_, err := ParseTone("sarcastic")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "tone", verr.Field)
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name      string
		req       Request
		wantField string
	}{
		{name: "valid", req: Request{Topic: "ai ethics", Platform: PlatformTwitter, Tone: ToneCasual}},
		{name: "empty topic", req: Request{Topic: "  ", Platform: PlatformTwitter, Tone: ToneCasual}, wantField: "topic"},
		{name: "bad platform", req: Request{Topic: "ai", Platform: "myspace", Tone: ToneCasual}, wantField: "platform"},
		{name: "bad tone", req: Request{Topic: "ai", Platform: PlatformMedium, Tone: "angry"}, wantField: "tone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func bullets(n int) []BulletPoint {
	out := make([]BulletPoint, n)
	for i := range out {
		out[i] = BulletPoint{Content: "a fact"}
	}
	return out
}

func TestResearchResultValidate(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		wantErr bool
	}{
		{name: "too few", count: 4, wantErr: true},
		{name: "lower bound", count: 5},
		{name: "upper bound", count: 7},
		{name: "too many", count: 8, wantErr: true},
		{name: "none", count: 0, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ResearchResult{BulletPoints: bullets(tt.count)}.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("empty bullet content", func(t *testing.T) {
		bs := bullets(5)
		bs[2].Content = "   "
		assert.Error(t, ResearchResult{BulletPoints: bs}.Validate())
	})
}

func TestContentResultValidateFor(t *testing.T) {
	tests := []struct {
		name     string
		platform Platform
		content  ContentResult
		wantErr  bool
	}{
		{name: "twitter ok", platform: PlatformTwitter, content: ContentResult{Content: "short post #tag"}},
		{name: "twitter with title", platform: PlatformTwitter, content: ContentResult{Title: "no", Content: "post"}, wantErr: true},
		{name: "twitter at limit", platform: PlatformTwitter, content: ContentResult{Content: strings.Repeat("a", 280)}},
		{name: "twitter over limit", platform: PlatformTwitter, content: ContentResult{Content: strings.Repeat("a", 281)}, wantErr: true},
		{name: "twitter multibyte at limit", platform: PlatformTwitter, content: ContentResult{Content: strings.Repeat("é", 280)}},
		{name: "linkedin ok", platform: PlatformLinkedIn, content: ContentResult{Content: strings.Repeat("insightful ", 35)}},
		{name: "linkedin with title", platform: PlatformLinkedIn, content: ContentResult{Title: "no", Content: "post"}, wantErr: true},
		{name: "medium ok", platform: PlatformMedium, content: ContentResult{Title: "A Title", Content: "First.\n\nSecond."}},
		{name: "medium missing title", platform: PlatformMedium, content: ContentResult{Content: "body"}, wantErr: true},
		{name: "empty content", platform: PlatformLinkedIn, content: ContentResult{Content: " "}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.content.ValidateFor(tt.platform)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	base := errors.New("boom")

	gerr := &GenerationError{Stage: StageResearch, Err: base}
	assert.ErrorIs(t, gerr, base)
	assert.Contains(t, gerr.Error(), "research")

	ierr := &ImageGenerationError{Err: base}
	assert.ErrorIs(t, ierr, base)
	assert.Contains(t, ierr.Error(), "image")
}
