// Package trace emits structured workflow telemetry.
package trace

import (
	"time"

	"go.uber.org/zap"

	"ai_content_generator/schema"
)

// Tracer wraps a zap logger with workflow-shaped events.
type Tracer struct {
	log *zap.Logger
}

// New builds a Tracer writing JSON events to stderr. Verbose switches to the
// human-readable development encoder at debug level.
func New(verbose bool) (*Tracer, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.OutputPaths = []string{"stderr"}
		logger, err = cfg.Build()
	}
	if err != nil {
		return nil, err
	}
	return &Tracer{log: logger}, nil
}

// Nop returns a Tracer that discards everything, for tests.
func Nop() *Tracer {
	return &Tracer{log: zap.NewNop()}
}

func (t *Tracer) Sync() {
	_ = t.log.Sync()
}

func (t *Tracer) RunStarted(req schema.Request) {
	t.log.Info("workflow started",
		zap.String("topic", req.Topic),
		zap.String("platform", string(req.Platform)),
		zap.String("tone", string(req.Tone)),
	)
}

func (t *Tracer) RunCompleted(elapsed time.Duration, partial bool) {
	t.log.Info("workflow completed",
		zap.Duration("elapsed", elapsed),
		zap.Bool("partial", partial),
	)
}

func (t *Tracer) RunFailed(err error) {
	t.log.Error("workflow failed", zap.Error(err))
}

func (t *Tracer) StageStarted(stage string) {
	t.log.Info("stage started", zap.String("stage", stage))
}

func (t *Tracer) StageDone(stage string, elapsed time.Duration, fields ...zap.Field) {
	fields = append([]zap.Field{
		zap.String("stage", stage),
		zap.Duration("elapsed", elapsed),
	}, fields...)
	t.log.Info("stage done", fields...)
}

func (t *Tracer) StageFailed(stage string, err error) {
	t.log.Error("stage failed", zap.String("stage", stage), zap.Error(err))
}
