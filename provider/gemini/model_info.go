package gemini

import "github.com/mhpenta/bananagen"

// Model name constants - the actual API model names.
const (
	// APIModelNanoBanana2 is the actual API name for Gemini 3 Pro Image
	APIModelNanoBanana2 = "gemini-3-pro-image-preview"

	// APIModelNanoBanana1 is the actual API name for Gemini 2.5 Flash Image
	APIModelNanoBanana1 = "gemini-2.5-flash-image"

	// APIModelFlash is the actual API name of the default text model
	APIModelFlash = "gemini-2.5-flash"

	DefaultImageModel = APIModelNanoBanana2
	DefaultTextModel  = APIModelFlash
)

// NanoBanana2Info is the model info for Gemini 3 Pro Image (nano-banana-2).
var NanoBanana2Info = bananagen.ModelInfo{
	Name:         "nano-banana-2",
	Provider:     bananagen.ProviderGeminiAPI,
	APIModelName: APIModelNanoBanana2,
	Kind:         bananagen.ModelKindImage,

	Capabilities: bananagen.ModelCapabilities{
		SupportsTextToImage:  true,
		SupportsImageEditing: true,
		SupportsMultiImage:   true,
		SupportsThinking:     true,
		MaxInputImages:       14,
		MaxOutputImages:      4,
	},

	ContextLength: 1048576, // 1M tokens

	RateLimits: bananagen.RateLimits{
		TokensPerMinute:   4000000,
		RequestsPerMinute: 360,
	},
}

// NanoBanana1Info is the model info for Gemini 2.5 Flash Image (nano-banana-1).
var NanoBanana1Info = bananagen.ModelInfo{
	Name:         "nano-banana-1",
	Provider:     bananagen.ProviderGeminiAPI,
	APIModelName: APIModelNanoBanana1,
	Kind:         bananagen.ModelKindImage,

	Capabilities: bananagen.ModelCapabilities{
		SupportsTextToImage:  true,
		SupportsImageEditing: true,
		SupportsMultiImage:   true,
		MaxInputImages:       3, // Works best with up to 3 images
		MaxOutputImages:      4,
	},

	ContextLength: 32768,

	RateLimits: bananagen.RateLimits{
		TokensPerMinute:   1000000,
		RequestsPerMinute: 500,
	},
}

// FlashInfo is the model info for the text model used for filename suggestions.
var FlashInfo = bananagen.ModelInfo{
	Name:         "flash",
	Provider:     bananagen.ProviderGeminiAPI,
	APIModelName: APIModelFlash,
	Kind:         bananagen.ModelKindText,

	Capabilities: bananagen.ModelCapabilities{
		SupportsThinking: true,
	},

	ContextLength: 1048576,

	RateLimits: bananagen.RateLimits{
		TokensPerMinute:   1000000,
		RequestsPerMinute: 1000,
	},
}
