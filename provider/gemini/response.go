package gemini

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/mhpenta/bananagen"
	_ "golang.org/x/image/webp"
	"google.golang.org/genai"
)

var errNilPart = errors.New("response contains a nil part")

// buildTextConfig converts a TextConfig into the request config, leaving out
// every option the caller did not set. It returns nil when nothing is set.
func buildTextConfig(tc *bananagen.TextConfig) *genai.GenerateContentConfig {
	if tc == nil {
		return nil
	}

	genConfig := &genai.GenerateContentConfig{}
	set := false

	if tc.SystemInstruction != "" {
		genConfig.SystemInstruction = genai.NewContentFromText(tc.SystemInstruction, genai.RoleUser)
		set = true
	}
	if tc.Temperature != nil {
		genConfig.Temperature = genai.Ptr(*tc.Temperature)
		set = true
	}
	if tc.DisableThinking {
		genConfig.ThinkingConfig = &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr[int32](0),
		}
		set = true
	}

	if !set {
		return nil
	}
	return genConfig
}

// buildImageConfig asks for text and image parts; ImageConfig is attached
// only when aspect ratio or size is given.
func buildImageConfig(config *bananagen.GenerateConfig) *genai.GenerateContentConfig {
	genConfig := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}

	if config != nil && (config.AspectRatio != "" || config.Size != "") {
		genConfig.ImageConfig = &genai.ImageConfig{
			AspectRatio: config.AspectRatio.String(),
			ImageSize:   config.Size.String(),
		}
	}

	return genConfig
}

// parseImages collects every image part of the response in order. Text parts
// are gathered into Text; thought parts are dropped. A part that claims to be
// an image but does not decode fails the whole parse.
func parseImages(resp *genai.GenerateContentResponse) (*bananagen.ImageResult, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, bananagen.ErrEmptyResponse
	}

	result := &bananagen.ImageResult{
		Images: make([]bananagen.GeneratedImage, 0),
	}

	var text strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}

		for i, part := range candidate.Content.Parts {
			if part == nil {
				return nil, errNilPart
			}
			if part.Thought {
				continue
			}
			if part.Text != "" {
				text.WriteString(part.Text)
			}
			if part.InlineData == nil || !strings.HasPrefix(part.InlineData.MIMEType, "image/") {
				continue
			}

			_, format, err := image.DecodeConfig(bytes.NewReader(part.InlineData.Data))
			if err != nil {
				return nil, fmt.Errorf("decoding image part %d: %w", i, err)
			}

			result.Images = append(result.Images, bananagen.GeneratedImage{
				Data:     part.InlineData.Data,
				MIMEType: "image/" + format,
				Index:    len(result.Images),
			})
		}
	}

	result.Text = text.String()

	if resp.UsageMetadata != nil {
		result.UsageMetadata = &bananagen.UsageMetadata{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CandidatesTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
			ImageCount:       len(result.Images),
		}
	}

	return result, nil
}
