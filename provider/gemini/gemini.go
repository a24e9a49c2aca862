// Package gemini provides bananagen's Generator implementation using Google's Gemini API.
//
// This provider uses the Gemini API backend via the official Go SDK:
// https://github.com/googleapis/go-genai
package gemini

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/mhpenta/bananagen"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// contentGenerator is the part of genai.Models this package calls.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Config configures a Generator.
type Config struct {
	// APIKey for authentication. Required.
	APIKey string

	// ImageModel and TextModel override the default models. Either a catalogue
	// name ("nano-banana-1") or an API model name is accepted.
	ImageModel string
	TextModel  string

	// RequestsPerMinute caps requests per model. Zero uses the catalogue
	// limits, a negative value disables limiting.
	RequestsPerMinute int

	Logger *slog.Logger
}

// Generator implements bananagen.Generator using Google's Gemini API.
type Generator struct {
	cfg    Config
	logger *slog.Logger

	// models creates the genai client on first use, exactly once.
	models func() (contentGenerator, error)

	// limiters is read-only after construction.
	limiters map[string]*rate.Limiter
}

// Ensure Generator implements the interfaces.
var _ bananagen.Generator = (*Generator)(nil)

// New creates a Generator. It fails with bananagen.ErrMissingAPIKey when no
// key is configured; the API client itself is created on the first request.
func New(ctx context.Context, cfg Config) (*Generator, error) {
	initCtx := context.WithoutCancel(ctx)
	return newGenerator(cfg, func() (contentGenerator, error) {
		client, err := genai.NewClient(initCtx, &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return client.Models, nil
	})
}

func newGenerator(cfg Config, factory func() (contentGenerator, error)) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, bananagen.ErrMissingAPIKey
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = DefaultImageModel
	}
	if cfg.TextModel == "" {
		cfg.TextModel = DefaultTextModel
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	g := &Generator{
		cfg:      cfg,
		logger:   logger,
		models:   sync.OnceValues(factory),
		limiters: make(map[string]*rate.Limiter),
	}

	if cfg.RequestsPerMinute >= 0 {
		for _, info := range g.Models() {
			rpm := info.RateLimits.RequestsPerMinute
			if cfg.RequestsPerMinute > 0 {
				rpm = cfg.RequestsPerMinute
			}
			if rpm > 0 {
				g.limiters[info.APIModelName] = rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm)
			}
		}
	}

	return g, nil
}

// Models returns the model definitions supported by this provider.
// The first model is the default image model.
func (g *Generator) Models() []bananagen.ModelInfo {
	return []bananagen.ModelInfo{
		NanoBanana2Info,
		NanoBanana1Info,
		FlashInfo,
	}
}

// Close releases any resources held by the generator.
func (g *Generator) Close() error {
	// The genai.Client doesn't require explicit closing in the current SDK
	return nil
}

// GenerateText sends prompt to the text model and returns the response text
// unmodified. Options left unset in textConfig are not sent.
func (g *Generator) GenerateText(ctx context.Context, prompt string, textConfig *bananagen.TextConfig) (string, error) {
	model := g.cfg.TextModel
	if textConfig != nil && textConfig.Model != "" {
		model = textConfig.Model.String()
	}
	model = g.resolveModel(model)

	resp, err := g.generate(ctx, model, genai.Text(prompt), buildTextConfig(textConfig))
	if err != nil {
		return "", fmt.Errorf("text generation failed: %w", err)
	}
	return resp.Text(), nil
}

// GenerateImagesFromText creates images from a text prompt.
//
// If any part of the response fails to decode, or the response holds no
// image, the whole result is replaced by NumberOfImages purple placeholders
// and marked degraded. Only a failed request is returned as an error.
func (g *Generator) GenerateImagesFromText(ctx context.Context, prompt string, config *bananagen.GenerateConfig) (*bananagen.ImageResult, error) {
	if err := bananagen.ValidatePrompt(prompt); err != nil {
		return nil, err
	}
	if config == nil {
		config = bananagen.DefaultConfig()
	}
	model := g.imageModel(config)

	g.logger.Info("generating images from text",
		"model", model,
		"count", config.Count(),
		"prompt", prompt,
	)

	resp, err := g.generate(ctx, model, genai.Text(prompt), buildImageConfig(config))
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	result, err := parseImages(resp)
	if err == nil && len(result.Images) == 0 {
		err = bananagen.ErrNoImageInResponse
	}
	if err != nil {
		g.logger.Error("error processing API response", "model", model, "error", err)
		return bananagen.DegradedResult(err, bananagen.PlaceholderTextToImage, config.Count()), nil
	}

	return result, nil
}

// GenerateImagesFromImages creates one image from a prompt and input images.
//
// Every path is read before anything is sent; a missing file aborts with a
// nil result and an *bananagen.InputNotFoundError. Only the first image part
// of the response is kept. Decoding failures yield one orange placeholder.
func (g *Generator) GenerateImagesFromImages(ctx context.Context, prompt string, imagePaths []string, config *bananagen.GenerateConfig) (*bananagen.ImageResult, error) {
	if err := bananagen.ValidatePrompt(prompt); err != nil {
		return nil, err
	}
	if err := bananagen.ValidateInputCount(len(imagePaths)); err != nil {
		return nil, err
	}
	if config == nil {
		config = bananagen.DefaultConfig()
	}

	parts := make([]*genai.Part, 0, len(imagePaths)+1)
	parts = append(parts, genai.NewPartFromText(prompt))
	for _, path := range imagePaths {
		part, err := g.readImagePart(path)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}

	model := g.imageModel(config)
	g.logger.Info("generating image from images",
		"model", model,
		"input_images", len(imagePaths),
		"prompt", prompt,
	)

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	resp, err := g.generate(ctx, model, contents, buildImageConfig(config))
	if err != nil {
		return nil, fmt.Errorf("image edit failed: %w", err)
	}

	result, err := parseImages(resp)
	if err == nil && len(result.Images) == 0 {
		err = bananagen.ErrNoImageInResponse
	}
	if err != nil {
		g.logger.Error("error processing API response", "model", model, "error", err)
		return bananagen.DegradedResult(err, bananagen.PlaceholderImageToImage, 1), nil
	}

	result.Images = result.Images[:1]
	return result, nil
}

// readImagePart loads path as an inline image part.
func (g *Generator) readImagePart(path string) (*genai.Part, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			g.logger.Error("input image not found", "path", path)
			return nil, &bananagen.InputNotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("reading input image %s: %w", path, err)
	}

	mimeType, err := bananagen.ValidateInputImage(data)
	if err != nil {
		return nil, fmt.Errorf("input image %s: %w", path, err)
	}
	return genai.NewPartFromBytes(data, mimeType), nil
}

// generate waits for the model's limiter and sends one request.
func (g *Generator) generate(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	models, err := g.models()
	if err != nil {
		return nil, err
	}

	if limiter := g.limiter(model); limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, &bananagen.RateLimitError{
				LimitType: "requests",
				Model:     model,
				Err:       err,
			}
		}
	}

	start := time.Now()
	resp, err := models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		if rlErr := checkRateLimitError(err, model); rlErr != nil {
			return nil, rlErr
		}
		return nil, err
	}

	logAttrs := []any{
		"model", model,
		"duration_ms", time.Since(start).Milliseconds(),
	}
	if resp != nil && resp.UsageMetadata != nil {
		logAttrs = append(logAttrs,
			"prompt_tokens", resp.UsageMetadata.PromptTokenCount,
			"total_tokens", resp.UsageMetadata.TotalTokenCount,
		)
	}
	g.logger.Debug("request completed", logAttrs...)

	return resp, nil
}

func (g *Generator) limiter(model string) *rate.Limiter {
	return g.limiters[model]
}

// imageModel picks the per-request model or the configured default.
func (g *Generator) imageModel(config *bananagen.GenerateConfig) string {
	if config != nil && config.Model != "" {
		return g.resolveModel(config.Model.String())
	}
	return g.resolveModel(g.cfg.ImageModel)
}

// resolveModel maps catalogue names to API model names; anything else is
// passed through as an API model name.
func (g *Generator) resolveModel(name string) string {
	for _, info := range g.Models() {
		if info.Name == name {
			return info.APIModelName
		}
	}
	return name
}

// checkRateLimitError checks if an error from the Gemini API is a rate limit error.
// If so, it wraps it in a RateLimitError; otherwise it returns nil.
func checkRateLimitError(err error, model string) error {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return nil
	}

	if apiErr.Code != 429 && apiErr.Status != "RESOURCE_EXHAUSTED" {
		return nil
	}

	return &bananagen.RateLimitError{
		RetryAfter: 60 * time.Second, // Default; API doesn't reliably provide Retry-After
		LimitType:  "requests",
		Model:      model,
		Err:        err,
	}
}
