package hcl_adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/dagcheck/internal/config"
	"github.com/specialistvlad/dagcheck/internal/ctxlog"
	"github.com/specialistvlad/dagcheck/internal/fsutil"
	"github.com/specialistvlad/dagcheck/internal/pipeline"
)

// Loader is the HCL implementation of config.Loader and config.GraphLoader.
type Loader struct{}

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{}
}

var (
	_ config.Loader      = (*Loader)(nil)
	_ config.GraphLoader = (*Loader)(nil)
)

// Load parses a single settings file into the config model.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL settings loader started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root settingsRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	model := translateSettings(&root)
	logger.Debug("HCL settings loaded.",
		"server", model.Server != nil,
		"cors", model.CORS != nil,
		"log", model.Log != nil,
		"realtime", model.Realtime != nil,
	)
	return model, nil
}

// LoadGraph parses every .hcl file under paths and merges their node and
// edge blocks into one graph. Files are visited in lexical walk order.
func (l *Loader) LoadGraph(ctx context.Context, paths ...string) (*pipeline.Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL graph loader started.", "path_count", len(paths))

	files, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	graph := &pipeline.Graph{
		Nodes: []pipeline.Node{},
		Edges: []pipeline.Edge{},
	}
	parser := hclparse.NewParser()

	for _, path := range files {
		file, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
		}

		var root graphRoot
		if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
		}

		for _, n := range root.Nodes {
			node, err := translateNode(ctx, n)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", path, err)
			}
			graph.Nodes = append(graph.Nodes, node)
		}
		for _, e := range root.Edges {
			graph.Edges = append(graph.Edges, pipeline.Edge{Source: e.Source, Target: e.Target})
		}
	}

	logger.Debug("HCL graph loading complete.", "nodes", len(graph.Nodes), "edges", len(graph.Edges))
	return graph, nil
}

// findAllHCLFiles walks all given paths and returns a flat list of all .hcl files found.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})

	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			if filepath.Ext(path) != ".hcl" {
				return nil, fmt.Errorf("not an HCL file: %s", path)
			}
			add(path)
			continue
		}

		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("error walking %s: %w", path, err)
		}
		for _, p := range found {
			add(p)
		}
	}
	return allFiles, nil
}
