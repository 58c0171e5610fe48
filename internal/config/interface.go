package config

import (
	"context"

	"github.com/specialistvlad/dagcheck/internal/pipeline"
)

// Loader is the interface for a format-specific settings loader.
type Loader interface {
	// Load reads the settings file at path and translates it into the
	// format-agnostic model.
	Load(ctx context.Context, path string) (*Model, error)
}

// GraphLoader is the interface for a format-specific pipeline graph loader.
type GraphLoader interface {
	// LoadGraph reads every graph file found under paths (files or
	// directories) and merges them into a single graph, preserving file and
	// declaration order.
	LoadGraph(ctx context.Context, paths ...string) (*pipeline.Graph, error)
}
