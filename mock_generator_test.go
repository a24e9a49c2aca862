package bananagen

import (
	"context"
	"sync"
)

// MockGenerator is a mock implementation of Generator.
type MockGenerator struct {
	GenerateImagesFromTextFunc   func(ctx context.Context, prompt string, config *GenerateConfig) (*ImageResult, error)
	GenerateImagesFromImagesFunc func(ctx context.Context, prompt string, paths []string, config *GenerateConfig) (*ImageResult, error)
	GenerateTextFunc             func(ctx context.Context, prompt string, config *TextConfig) (string, error)
	ModelsFunc                   func() []ModelInfo
	CloseFunc                    func() error
}

func (m *MockGenerator) GenerateImagesFromText(ctx context.Context, prompt string, config *GenerateConfig) (*ImageResult, error) {
	if m.GenerateImagesFromTextFunc != nil {
		return m.GenerateImagesFromTextFunc(ctx, prompt, config)
	}
	return &ImageResult{}, nil
}

func (m *MockGenerator) GenerateImagesFromImages(ctx context.Context, prompt string, paths []string, config *GenerateConfig) (*ImageResult, error) {
	if m.GenerateImagesFromImagesFunc != nil {
		return m.GenerateImagesFromImagesFunc(ctx, prompt, paths, config)
	}
	return &ImageResult{}, nil
}

func (m *MockGenerator) GenerateText(ctx context.Context, prompt string, config *TextConfig) (string, error) {
	if m.GenerateTextFunc != nil {
		return m.GenerateTextFunc(ctx, prompt, config)
	}
	return "", nil
}

func (m *MockGenerator) Models() []ModelInfo {
	if m.ModelsFunc != nil {
		return m.ModelsFunc()
	}
	return []ModelInfo{}
}

func (m *MockGenerator) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// recordingStorage records saved names and hands them back as locations.
type recordingStorage struct {
	mu     sync.Mutex
	names  []string
	onSave func(name string)
}

func (s *recordingStorage) SaveFile(_ context.Context, _ []byte, name string, _ string) (string, error) {
	if s.onSave != nil {
		s.onSave(name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names = append(s.names, name)
	return "out/" + name, nil
}

func (s *recordingStorage) saved() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.names...)
}
