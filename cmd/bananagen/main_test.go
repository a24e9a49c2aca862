package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/mhpenta/bananagen"
	"github.com/mhpenta/bananagen/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_SplitsByLevel(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := newLogger(&out, &errOut, false).With("run_id", "r1")

	logger.Debug("hidden")
	logger.Info("progress")
	logger.Warn("careful")
	logger.Error("failed")

	assert.Contains(t, out.String(), "progress")
	assert.Contains(t, out.String(), "run_id=r1")
	assert.NotContains(t, out.String(), "hidden")
	assert.NotContains(t, out.String(), "careful")

	assert.Contains(t, errOut.String(), "careful")
	assert.Contains(t, errOut.String(), "failed")
	assert.NotContains(t, errOut.String(), "progress")
}

func TestNewLogger_Verbose(t *testing.T) {
	var out bytes.Buffer
	logger := newLogger(&out, &bytes.Buffer{}, true)

	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
	logger.Debug("details")
	assert.Contains(t, out.String(), "details")
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestGenerate_MissingAPIKey(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(config.EnvAPIKey, "")
	require.NoError(t, os.Unsetenv(config.EnvAPIKey))

	_, _, err := execute(t, "generate", "a cat")
	assert.ErrorIs(t, err, bananagen.ErrMissingAPIKey)
}

func TestGenerate_RejectsBadOptionsBeforeCallingTheAPI(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(config.EnvAPIKey, "test-key")

	_, _, err := execute(t, "generate", "a cat", "--aspect-ratio", "5:1")
	assert.ErrorIs(t, err, bananagen.ErrInvalidAspectRatio)

	_, _, err = execute(t, "generate", "a cat", "--num-images", "0")
	assert.ErrorIs(t, err, bananagen.ErrInvalidImageCount)

	_, _, err = execute(t, "generate", "a cat", "--resolution", "8K")
	assert.ErrorIs(t, err, bananagen.ErrInvalidImageSize)
}

func TestGenerate_RequiresPrompt(t *testing.T) {
	_, _, err := execute(t, "generate")
	assert.Error(t, err)
}

func TestGenerate_InputImagesTakeSeveralPaths(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(config.EnvAPIKey, "test-key")

	first := filepath.Join(dir, "a.png")
	second := filepath.Join(dir, "b.png")

	_, _, err := execute(t, "generate", "a cat", "--input-images", first, second)

	var notFound *bananagen.InputNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, first, notFound.Path)
}

func TestGenerate_InputImagePathsKeepCommas(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(config.EnvAPIKey, "test-key")

	path := filepath.Join(dir, "my,photo.png")

	_, _, err := execute(t, "generate", "a cat", "--input-images", path)

	var notFound *bananagen.InputNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, path, notFound.Path)
}

func TestGenerate_ExtraArgumentsNeedInputImages(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(config.EnvAPIKey, "test-key")

	_, _, err := execute(t, "generate", "a cat", "b.png")
	assert.ErrorContains(t, err, "accepts 1 prompt argument")
}

func TestRun_MissingInputImage(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(config.EnvAPIKey, "test-key")
	missing := filepath.Join(dir, "nope.jpg")

	var out, errOut bytes.Buffer
	code := run(context.Background(), []string{"generate", "a cat", "--input-images", missing}, &out, &errOut)

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "Error: input image not found at "+missing)
	assert.NotContains(t, out.String(), "Image saved as")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing may be written")
}
