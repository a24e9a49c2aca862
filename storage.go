package bananagen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "golang.org/x/image/webp"
)

const (
	// PNGExtension is appended to every output name that lacks it.
	PNGExtension = ".png"

	// DefaultBaseName names outputs when neither the caller nor the model supplied one.
	DefaultBaseName = "generated_image"

	// DefaultOutputDir is where the CLI writes images unless told otherwise.
	DefaultOutputDir = "images/outputs"
)

// Storage persists generated images.
// Implementations can wrap local disks or cloud storage clients.
type Storage interface {
	// SaveFile saves image data under name and returns where it ended up.
	// The returned location may differ from name when the backend has to
	// avoid an existing object.
	SaveFile(ctx context.Context, data []byte, name string, contentType string) (string, error)
}

// StorageResult contains information about a saved image.
type StorageResult struct {
	// Location is the path or URL where the image was saved
	Location string

	// Name is the name requested from the backend
	Name string

	// Size is the number of bytes handed to the backend
	Size int
}

// EnsurePNGExtension appends ".png" unless name already ends with it in any case.
func EnsurePNGExtension(name string) string {
	if name == "" {
		name = DefaultBaseName
	}
	if strings.HasSuffix(strings.ToLower(name), PNGExtension) {
		return name
	}
	return name + PNGExtension
}

// OutputFilename returns the file name for image i of n. A single image keeps
// the base name; several images get "_i" inserted before the extension.
func OutputFilename(base string, i, n int) string {
	name := EnsurePNGExtension(base)
	if n <= 1 {
		return name
	}
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "_" + strconv.Itoa(i) + ext
}

// SaveToStorage saves images in order, naming them with OutputFilename.
// It returns a StorageResult for every image saved before the first error.
func SaveToStorage(ctx context.Context, storage Storage, images []GeneratedImage, base string) ([]StorageResult, error) {
	if storage == nil {
		return nil, ErrStorageNotConfigured
	}
	if len(images) == 0 {
		return nil, nil
	}

	results := make([]StorageResult, 0, len(images))
	for i, img := range images {
		name := OutputFilename(base, i, len(images))

		location, err := storage.SaveFile(ctx, img.Data, name, img.MIMEType)
		if err != nil {
			return results, err
		}

		results = append(results, StorageResult{
			Location: location,
			Name:     name,
			Size:     len(img.Data),
		})
	}

	return results, nil
}

// LocalStorage writes PNG files into a directory without ever replacing an
// existing file.
type LocalStorage struct {
	dir    string
	logger *slog.Logger
}

var _ Storage = (*LocalStorage)(nil)

// NewLocalStorage returns a LocalStorage rooted at dir. The directory is
// created by Write, even when there is nothing to write, or on first SaveFile.
func NewLocalStorage(dir string, logger *slog.Logger) *LocalStorage {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocalStorage{dir: dir, logger: logger}
}

// Dir returns the output directory.
func (s *LocalStorage) Dir() string {
	return s.dir
}

// Write persists images named after base and returns the written paths in
// the order of images.
func (s *LocalStorage) Write(ctx context.Context, images []GeneratedImage, base string) ([]string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	results, err := SaveToStorage(ctx, s, images, base)
	paths := make([]string, 0, len(results))
	for _, r := range results {
		paths = append(paths, r.Location)
	}
	return paths, err
}

// SaveFile implements Storage. The name gets a ".png" extension if missing;
// if that file exists, "_1", "_2", ... are appended to the stem until a free
// name is found.
func (s *LocalStorage) SaveFile(ctx context.Context, data []byte, name string, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	pngData, err := toPNG(data, contentType)
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", name, err)
	}

	target := filepath.Join(s.dir, EnsurePNGExtension(name))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	f, path, err := createUnique(target)
	if err != nil {
		return "", err
	}

	if _, err := f.Write(pngData); err != nil {
		f.Close()
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}

	s.logger.Debug("image written", "path", path, "bytes", len(pngData))
	return path, nil
}

// createUnique creates target exclusively, probing stem_1, stem_2, ... while
// the candidate already exists.
func createUnique(target string) (*os.File, string, error) {
	ext := filepath.Ext(target)
	stem := strings.TrimSuffix(target, ext)

	candidate := target
	for n := 1; ; n++ {
		f, err := os.OpenFile(candidate, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, candidate, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", fmt.Errorf("creating %s: %w", candidate, err)
		}
		candidate = stem + "_" + strconv.Itoa(n) + ext
	}
}

// toPNG returns data unchanged for PNG input and re-encodes anything else.
func toPNG(data []byte, contentType string) ([]byte, error) {
	if contentType == "image/png" {
		return data, nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
