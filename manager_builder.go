package bananagen

import (
	"log/slog"
)

// ManagerOption configures the Manager.
type ManagerOption func(*Manager)

// WithLogger sets a structured logger for the manager.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithStorage sets the backend generated images are written to.
func WithStorage(storage Storage) ManagerOption {
	return func(m *Manager) {
		m.storage = storage
	}
}

// WithNormalizer sets the normalizer applied to every input image path.
func WithNormalizer(n Normalizer) ManagerOption {
	return func(m *Manager) {
		m.normalizer = n
	}
}

// WithFilenameModel sets the text model used to suggest output names.
func WithFilenameModel(model Model) ManagerOption {
	return func(m *Manager) {
		m.filenameModel = model
	}
}

// WithRunID overrides the run id generator.
func WithRunID(fn func() string) ManagerOption {
	return func(m *Manager) {
		m.newRunID = fn
	}
}

// NewManager creates a Manager with the given generator and options.
//
// Example:
//
//	gen, err := gemini.New(ctx, gemini.Config{APIKey: apiKey})
//	if err != nil {
//	    return err
//	}
//	manager := bananagen.NewManager(gen,
//	    bananagen.WithLogger(slog.Default()),
//	    bananagen.WithStorage(bananagen.NewLocalStorage("out", nil)),
//	)
func NewManager(gen Generator, opts ...ManagerOption) *Manager {
	m := New(gen)

	for _, opt := range opts {
		opt(m)
	}

	return m
}
