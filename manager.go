package bananagen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Request describes one invocation of the generator.
type Request struct {
	Prompt string

	// InputImages switches the request to image+text mode when non-empty.
	InputImages []string

	// OutputFile is the base name of the written files. When empty the text
	// model is asked for a name in parallel with the image request.
	OutputFile string

	Config *GenerateConfig
}

// Report describes what a Run produced.
type Report struct {
	RunID string

	// Paths lists the written files in result order.
	Paths []string

	// BaseName is the name the files were derived from.
	BaseName string

	// NameSuggested is true when BaseName came from the text model.
	NameSuggested bool

	// Degraded is set when the written images are placeholders.
	Degraded bool
	Reason   error
}

// Manager wires normalization, generation and storage into one run.
type Manager struct {
	generator  Generator
	normalizer Normalizer
	storage    Storage
	logger     *slog.Logger

	filenameModel Model
	newRunID      func() string
}

// New creates a Manager that uses gen for both images and filenames.
func New(gen Generator) *Manager {
	return &Manager{
		generator:  gen,
		normalizer: passthrough{},
		storage:    NewLocalStorage(DefaultOutputDir, nil),
		logger:     slog.Default(),
		newRunID:   uuid.NewString,
	}
}

// Run generates the images for req and writes them to storage.
//
// The image request and, if req.OutputFile is empty, the filename request run
// concurrently; nothing is written until both have finished. A missing input
// image returns an error matching ErrInputNotFound and writes nothing.
func (m *Manager) Run(ctx context.Context, req Request) (*Report, error) {
	cfg := req.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := ValidatePrompt(req.Prompt); err != nil {
		return nil, err
	}
	if err := ValidateGenerateConfig(cfg); err != nil {
		return nil, err
	}
	if err := ValidateInputCount(len(req.InputImages)); err != nil {
		return nil, err
	}

	report := &Report{RunID: m.newRunID()}
	logger := m.logger.With("run_id", report.RunID)
	start := time.Now()

	inputs := make([]string, 0, len(req.InputImages))
	for _, p := range req.InputImages {
		inputs = append(inputs, m.normalizer.Normalize(ctx, p))
	}

	var (
		result    *ImageResult
		suggested string
		nameErr   error
		g         errgroup.Group
	)

	g.Go(func() error {
		var err error
		if len(inputs) > 0 {
			result, err = m.generator.GenerateImagesFromImages(ctx, req.Prompt, inputs, cfg)
		} else {
			result, err = m.generator.GenerateImagesFromText(ctx, req.Prompt, cfg)
		}
		return err
	})

	if req.OutputFile == "" {
		g.Go(func() error {
			suggested, nameErr = m.generator.GenerateText(ctx, FilenamePrompt(req.Prompt), &TextConfig{
				Model:           m.filenameModel,
				DisableThinking: true,
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, ErrInputNotFound) {
			logger.Error("image generation skipped", "error", err)
			return report, err
		}
		return nil, fmt.Errorf("generating images: %w", err)
	}

	report.BaseName = req.OutputFile
	if report.BaseName == "" {
		report.BaseName = SanitizeFilename(suggested)
		switch {
		case nameErr != nil:
			logger.Warn("filename suggestion failed", "error", nameErr)
			report.BaseName = DefaultBaseName
			logger.Info("using fallback filename", "name", DefaultBaseName)
		case report.BaseName == "":
			report.BaseName = DefaultBaseName
			logger.Info("using fallback filename", "name", DefaultBaseName, "suggestion", suggested)
		default:
			report.NameSuggested = true
			logger.Debug("using suggested filename", "name", report.BaseName)
		}
	}

	if result == nil || len(result.Images) == 0 {
		logger.Warn("no images returned")
		return report, nil
	}

	report.Degraded = result.Degraded
	report.Reason = result.Reason
	if result.Degraded {
		logger.Warn("writing placeholder images", "reason", result.Reason, "count", len(result.Images))
	}

	saved, err := SaveToStorage(ctx, m.storage, result.Images, report.BaseName)
	for _, s := range saved {
		report.Paths = append(report.Paths, s.Location)
		logger.Debug("image saved", "path", s.Location)
	}
	if err != nil {
		return report, fmt.Errorf("saving images: %w", err)
	}

	logger.Debug("run completed",
		"duration_ms", time.Since(start).Milliseconds(),
		"image_count", len(report.Paths),
		"degraded", report.Degraded,
	)

	return report, nil
}

// Models returns the models of the underlying generator.
func (m *Manager) Models() []ModelInfo {
	return m.generator.Models()
}

// Close releases the generator's resources.
func (m *Manager) Close() error {
	return m.generator.Close()
}

type passthrough struct{}

func (passthrough) Normalize(_ context.Context, path string) string { return path }
