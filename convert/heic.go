// Package convert turns HEIC photos into PNG files the generation service accepts.
package convert

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jdeng/goheif"
)

// HEICExtension is the extension, compared case-insensitively, that triggers conversion.
const HEICExtension = ".heic"

// DecodeFunc decodes a source image.
type DecodeFunc func(r io.Reader) (image.Image, error)

// EncodeFunc encodes an image to PNG.
type EncodeFunc func(w io.Writer, img image.Image) error

// Normalizer converts HEIC inputs to sibling PNG files. It implements
// bananagen.Normalizer.
type Normalizer struct {
	decode DecodeFunc
	encode EncodeFunc
	logger *slog.Logger
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithDecoder replaces the HEIC decoder.
func WithDecoder(fn DecodeFunc) Option {
	return func(n *Normalizer) {
		n.decode = fn
	}
}

// WithEncoder replaces the PNG encoder.
func WithEncoder(fn EncodeFunc) Option {
	return func(n *Normalizer) {
		n.encode = fn
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Normalizer) {
		n.logger = logger
	}
}

// NewNormalizer returns a Normalizer backed by goheif and image/png.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{
		decode: goheif.Decode,
		encode: png.Encode,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// IsHEIC reports whether path has a HEIC extension.
func IsHEIC(path string) bool {
	return strings.EqualFold(filepath.Ext(path), HEICExtension)
}

// PNGSibling returns path with its extension replaced by ".png".
func PNGSibling(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
}

// Normalize returns a PNG path for HEIC inputs and path itself otherwise.
//
// An existing PNG sibling is reused as is. When conversion fails the error is
// logged and the original path is returned, leaving the caller to report any
// problem with it.
func (n *Normalizer) Normalize(ctx context.Context, path string) string {
	if !IsHEIC(path) {
		return path
	}

	pngPath := PNGSibling(path)
	if _, err := os.Stat(pngPath); err == nil {
		n.logger.InfoContext(ctx, "using existing PNG", "path", pngPath)
		return pngPath
	}

	n.logger.InfoContext(ctx, "converting HEIC to PNG", "path", path)
	if err := n.convert(path, pngPath); err != nil {
		n.logger.ErrorContext(ctx, "error converting HEIC file", "path", path, "error", err)
		return path
	}

	n.logger.InfoContext(ctx, "saved new PNG", "path", pngPath)
	return pngPath
}

func (n *Normalizer) convert(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	img, err := n.decode(in)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(dst)
		}
	}()

	if err := n.encode(out, img); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
