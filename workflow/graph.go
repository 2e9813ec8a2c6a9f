// Package workflow sequences the research → content → image chain and owns
// its failure semantics: research and content failures abort the run, an
// image failure is recorded and the run still returns the content produced.
package workflow

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"ai_content_generator/schema"
	"ai_content_generator/trace"
)

// Phase is a node of the run state machine.
type Phase string

const (
	PhaseStart      Phase = "start"
	PhaseResearched Phase = "researched"
	PhaseContented  Phase = "contented"
	PhaseImaged     Phase = "imaged"
	PhaseFailed     Phase = "failed"
	PhaseEnd        Phase = "end"
)

// Researcher produces factual bullet points for a topic.
type Researcher interface {
	Research(ctx context.Context, req schema.Request) (schema.ResearchResult, error)
}

// ContentGenerator produces platform-shaped content from research bullets.
type ContentGenerator interface {
	Generate(ctx context.Context, req schema.Request, research schema.ResearchResult) (schema.ContentResult, error)
}

// ImageGenerator produces and persists an illustrative image for content.
type ImageGenerator interface {
	Generate(ctx context.Context, req schema.Request, content schema.ContentResult) (schema.ImageResult, error)
}

// State accumulates one run's results. Each stage writes exactly its own
// field; nothing is mutated after the run returns.
type State struct {
	Request  schema.Request
	Phase    Phase
	Research *schema.ResearchResult
	Content  *schema.ContentResult
	Image    *schema.ImageResult

	// Err is the aborting failure (validation, research, or content).
	Err error
	// ImageErr is a recorded image failure; the run is still a partial
	// success.
	ImageErr error
}

// PartialSuccess reports whether the run produced content but no image.
func (s *State) PartialSuccess() bool {
	return s.ImageErr != nil && s.Content != nil
}

// Graph is the fixed three-node chain. It holds sequencing and error routing
// only; all business logic lives in the stage agents.
type Graph struct {
	research Researcher
	content  ContentGenerator
	image    ImageGenerator
	tracer   *trace.Tracer
}

func New(research Researcher, content ContentGenerator, image ImageGenerator, tracer *trace.Tracer) (*Graph, error) {
	if research == nil || content == nil || image == nil {
		return nil, errors.New("all three stage agents are required")
	}
	if tracer == nil {
		tracer = trace.Nop()
	}
	return &Graph{research: research, content: content, image: image, tracer: tracer}, nil
}

// Run executes the chain for one request. Stages run strictly sequentially
// with no retries. The returned error is non-nil only for aborting failures;
// an image failure is reported through State.ImageErr instead.
func (g *Graph) Run(ctx context.Context, req schema.Request) (*State, error) {
	started := time.Now()
	state := &State{Request: req, Phase: PhaseStart}
	g.tracer.RunStarted(req)

	if err := req.Validate(); err != nil {
		return g.fail(state, err)
	}

	// Research.
	if err := ctx.Err(); err != nil {
		return g.fail(state, &schema.GenerationError{Stage: schema.StageResearch, Err: err})
	}
	g.tracer.StageStarted(schema.StageResearch)
	stageStart := time.Now()
	research, err := g.research.Research(ctx, req)
	if err != nil {
		g.tracer.StageFailed(schema.StageResearch, err)
		return g.fail(state, err)
	}
	state.Research = &research
	state.Phase = PhaseResearched
	g.tracer.StageDone(schema.StageResearch, time.Since(stageStart),
		zap.Int("bullet_points", len(research.BulletPoints)))

	// Content.
	if err := ctx.Err(); err != nil {
		return g.fail(state, &schema.GenerationError{Stage: schema.StageContent, Err: err})
	}
	g.tracer.StageStarted(schema.StageContent)
	stageStart = time.Now()
	content, err := g.content.Generate(ctx, req, research)
	if err != nil {
		g.tracer.StageFailed(schema.StageContent, err)
		return g.fail(state, err)
	}
	state.Content = &content
	state.Phase = PhaseContented
	g.tracer.StageDone(schema.StageContent, time.Since(stageStart),
		zap.Int("content_chars", len(content.Content)),
		zap.Bool("has_title", content.Title != ""))

	// Image. A failure here is recorded, not propagated: the run still
	// returns the research and content already produced.
	if err := g.runImage(ctx, state, req, content); err != nil {
		state.ImageErr = err
		state.Phase = PhaseEnd
		g.tracer.RunCompleted(time.Since(started), true)
		return state, nil
	}

	state.Phase = PhaseEnd
	g.tracer.RunCompleted(time.Since(started), false)
	return state, nil
}

func (g *Graph) runImage(ctx context.Context, state *State, req schema.Request, content schema.ContentResult) error {
	if err := ctx.Err(); err != nil {
		return &schema.ImageGenerationError{Err: err}
	}
	g.tracer.StageStarted(schema.StageImage)
	stageStart := time.Now()
	img, err := g.image.Generate(ctx, req, content)
	if err != nil {
		g.tracer.StageFailed(schema.StageImage, err)
		return err
	}
	state.Image = &img
	state.Phase = PhaseImaged
	g.tracer.StageDone(schema.StageImage, time.Since(stageStart),
		zap.String("image_path", img.ImagePath))
	return nil
}

func (g *Graph) fail(state *State, err error) (*State, error) {
	state.Err = err
	state.Phase = PhaseFailed
	g.tracer.RunFailed(err)
	return state, err
}
