package bananagen

import "context"

// ImageGenerator is the core interface for image generation backends.
// Implement this interface to add support for new models or providers.
type ImageGenerator interface {
	// GenerateImagesFromText creates images from a text prompt. A response that
	// cannot be decoded yields a degraded result rather than an error.
	GenerateImagesFromText(ctx context.Context, prompt string, genConfig *GenerateConfig) (*ImageResult, error)

	// GenerateImagesFromImages creates a single image from a prompt and one or
	// more input image paths. If any path cannot be found it returns a nil
	// result and an *InputNotFoundError without contacting the backend.
	GenerateImagesFromImages(ctx context.Context, prompt string, imagePaths []string, genConfig *GenerateConfig) (*ImageResult, error)

	// Models returns the model definitions supported by this provider.
	Models() []ModelInfo

	// Close releases any resources held by the generator.
	Close() error
}

// TextGenerator produces plain text from a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, textConfig *TextConfig) (string, error)
}

// Generator is implemented by providers that serve both images and text.
type Generator interface {
	ImageGenerator
	TextGenerator
}

// Normalizer rewrites an input image path into one the backend accepts.
// Implementations must not fail: on error they return the original path.
type Normalizer interface {
	Normalize(ctx context.Context, path string) string
}
