package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"snapname/internal/logging"
	"snapname/internal/notify"
	"snapname/internal/rename"
	"snapname/internal/textutil"
)

// Describer asks a vision model to describe an image.
type Describer interface {
	Describe(ctx context.Context, prompt string, image []byte) (string, error)
}

// StabilityWaiter blocks until a file stops changing or the window expires.
type StabilityWaiter interface {
	Wait(ctx context.Context, path string) error
}

// Result records a completed rename for logging and counters.
type Result struct {
	SourcePath  string
	FinalPath   string
	Description string
}

// Processor owns the per-candidate sequence. One Processor is shared by all
// pool workers; it holds no per-file state.
type Processor struct {
	waiter    StabilityWaiter
	describer Describer
	notifier  notify.Service
	logger    *slog.Logger
	prompt    string

	readFile func(string) ([]byte, error)
}

// Option adjusts a Processor.
type Option func(*Processor)

// WithReadFile replaces the file reader, used by tests.
func WithReadFile(fn func(string) ([]byte, error)) Option {
	return func(p *Processor) {
		if fn != nil {
			p.readFile = fn
		}
	}
}

// NewProcessor wires the pipeline stages together.
func NewProcessor(waiter StabilityWaiter, describer Describer, notifier notify.Service, prompt string, logger *slog.Logger, opts ...Option) *Processor {
	if logger == nil {
		logger = logging.NewNop()
	}
	p := &Processor{
		waiter:    waiter,
		describer: describer,
		notifier:  notifier,
		logger:    logging.NewComponentLogger(logger, "pipeline"),
		prompt:    prompt,
		readFile:  os.ReadFile,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process runs the full sequence for one file. A non-nil error means the
// file was left untouched (stability, inference, or rename failure); a
// notification failure is logged and swallowed because the rename already
// happened.
func (p *Processor) Process(ctx context.Context, path string) (Result, error) {
	id := uuid.NewString()[:8]
	log := p.logger.With(logging.String(logging.FieldCandidate, id), logging.String(logging.FieldFile, filepath.Base(path)))

	log.Info("processing screenshot")

	if err := p.waiter.Wait(ctx, path); err != nil {
		return Result{}, fmt.Errorf("waiting for %s to settle: %w", filepath.Base(path), err)
	}

	description, err := p.describe(ctx, path)
	if err != nil {
		return Result{}, fmt.Errorf("describing %s: %w", filepath.Base(path), err)
	}

	name := textutil.NameFromDescription(description)
	finalPath, err := rename.To(path, name)
	if err != nil {
		return Result{}, fmt.Errorf("renaming %s: %w", filepath.Base(path), err)
	}

	log.Info("renamed screenshot",
		logging.String("description", description),
		logging.String("new_name", filepath.Base(finalPath)))

	if p.notifier != nil {
		if err := p.notifier.NotifyRenamed(ctx, filepath.Base(path), filepath.Base(finalPath)); err != nil {
			log.Warn("notification delivery failed", logging.Error(err))
		}
	}

	return Result{SourcePath: path, FinalPath: finalPath, Description: description}, nil
}

// describe returns the model's description, or the fallback token when the
// file cannot be read. A read failure does not abort: the rename proceeds
// with the fallback name. Inference failures do abort.
func (p *Processor) describe(ctx context.Context, path string) (string, error) {
	image, err := p.readFile(path)
	if err != nil {
		p.logger.Warn("reading screenshot failed, using fallback name",
			logging.String(logging.FieldFile, filepath.Base(path)), logging.Error(err))
		return textutil.FallbackName, nil
	}
	return p.describer.Describe(ctx, p.prompt, image)
}
