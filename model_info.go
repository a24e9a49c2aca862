package bananagen

// Provider represents a model provider/backend.
type Provider string

const (
	ProviderGeminiAPI Provider = "gemini"
)

// ModelKind tells image models from text models.
type ModelKind string

const (
	ModelKindImage ModelKind = "image"
	ModelKindText  ModelKind = "text"
)

// ModelCapabilities describes what features a model supports.
type ModelCapabilities struct {
	SupportsTextToImage  bool
	SupportsImageEditing bool
	SupportsMultiImage   bool // Multiple input images in one request
	SupportsThinking     bool

	MaxInputImages  int
	MaxOutputImages int
}

// RateLimits defines rate limiting parameters for a model.
type RateLimits struct {
	TokensPerMinute   int
	RequestsPerMinute int
}

// ModelInfo contains complete metadata for a model.
type ModelInfo struct {
	Name         string   // Public model name (e.g., "nano-banana-2")
	Provider     Provider // Which provider serves this model
	APIModelName string   // Actual API name (e.g., "gemini-3-pro-image-preview")
	Kind         ModelKind

	Capabilities ModelCapabilities

	ContextLength int

	RateLimits RateLimits
}
