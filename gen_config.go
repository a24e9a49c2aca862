package bananagen

// Model represents a specific generation model.
type Model string

// ImageSize represents the output resolution for generated images.
type ImageSize string

const (
	ImageSize1K ImageSize = "1K"
	ImageSize2K ImageSize = "2K"
	ImageSize4K ImageSize = "4K"
)

// AspectRatio represents the aspect ratio for generated images.
type AspectRatio string

const (
	AspectRatio1x1  AspectRatio = "1:1"
	AspectRatio16x9 AspectRatio = "16:9"
	AspectRatio9x16 AspectRatio = "9:16"
	AspectRatio4x3  AspectRatio = "4:3"
	AspectRatio3x4  AspectRatio = "3:4"
	AspectRatio2x3  AspectRatio = "2:3"
	AspectRatio3x2  AspectRatio = "3:2"
	AspectRatio4x5  AspectRatio = "4:5"
	AspectRatio5x4  AspectRatio = "5:4"
	AspectRatio21x9 AspectRatio = "21:9"
	AspectRatioAuto AspectRatio = ""
)

// SupportedAspectRatios lists every ratio accepted by ValidateGenerateConfig.
var SupportedAspectRatios = []AspectRatio{
	AspectRatio1x1,
	AspectRatio16x9,
	AspectRatio9x16,
	AspectRatio4x3,
	AspectRatio3x4,
	AspectRatio2x3,
	AspectRatio3x2,
	AspectRatio4x5,
	AspectRatio5x4,
	AspectRatio21x9,
}

// SupportedSizes lists every resolution accepted by ValidateGenerateConfig.
var SupportedSizes = []ImageSize{ImageSize1K, ImageSize2K, ImageSize4K}

// GenerateConfig holds configuration options for image generation.
// Zero values mean "use the service default" and are never sent.
type GenerateConfig struct {
	// Model to use for generation (if empty, uses the provider's default)
	Model Model

	// Size of the output image (1K, 2K, 4K)
	Size ImageSize

	// AspectRatio of the output image
	AspectRatio AspectRatio

	// NumberOfImages expected from a text-to-image request. It also sets how
	// many placeholders a degraded result carries.
	NumberOfImages int
}

// WithModel returns a copy of the config with the specified model.
func (c *GenerateConfig) WithModel(model Model) *GenerateConfig {
	if c == nil {
		return &GenerateConfig{Model: model}
	}
	cX := *c
	cX.Model = model
	return &cX
}

// Count returns NumberOfImages, treating anything below one as one.
func (c *GenerateConfig) Count() int {
	if c == nil || c.NumberOfImages < 1 {
		return 1
	}
	return c.NumberOfImages
}

// DefaultConfig returns a GenerateConfig requesting a single image with
// service defaults for everything else.
func DefaultConfig() *GenerateConfig {
	return &GenerateConfig{
		AspectRatio:    AspectRatioAuto,
		NumberOfImages: 1,
	}
}

// TextConfig holds the optional knobs of a text request. Only the options
// that are set end up in the request.
type TextConfig struct {
	// Model to use (if empty, uses the provider's default text model)
	Model Model

	SystemInstruction string

	// Temperature is sent only when non-nil.
	Temperature *float32

	// DisableThinking sets the reasoning budget to zero.
	DisableThinking bool
}

// String returns the string representation for API calls.
func (s ImageSize) String() string {
	return string(s)
}

// String returns the string representation for API calls.
func (a AspectRatio) String() string {
	return string(a)
}

// String returns the model identifier.
func (m Model) String() string {
	return string(m)
}
