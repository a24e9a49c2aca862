package bananagen

// GeneratedImage represents a single generated image result.
type GeneratedImage struct {
	// Data contains the raw image bytes
	Data []byte

	// MIMEType of the generated image
	MIMEType string

	// Index is the position in a multi-image result (0-indexed)
	Index int

	// Placeholder is set on substitute images of a degraded result
	Placeholder bool
}

// ImageResult holds the images produced by one generation request.
//
// A result is either real (Degraded is false) or degraded: the response could
// not be decoded, so Images holds placeholders and Reason holds the failure.
type ImageResult struct {
	Images []GeneratedImage

	// Text contains any text parts returned next to the images
	Text string

	Degraded bool
	Reason   error

	// UsageMetadata contains token/billing information
	UsageMetadata *UsageMetadata
}

// UsageMetadata contains usage information for billing and monitoring.
type UsageMetadata struct {
	PromptTokens     int
	CandidatesTokens int
	TotalTokens      int
	ImageCount       int
}

// DegradedResult builds a result of n placeholder images filled with fill.
func DegradedResult(reason error, fill PlaceholderColor, n int) *ImageResult {
	if n < 1 {
		n = 1
	}
	images := make([]GeneratedImage, 0, n)
	data := Placeholder(fill)
	for i := 0; i < n; i++ {
		images = append(images, GeneratedImage{
			Data:        data,
			MIMEType:    "image/png",
			Index:       i,
			Placeholder: true,
		})
	}
	return &ImageResult{
		Images:   images,
		Degraded: true,
		Reason:   reason,
	}
}
