package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/specialistvlad/dagcheck/internal/client"
	"github.com/specialistvlad/dagcheck/internal/ctxlog"
	"github.com/specialistvlad/dagcheck/internal/pipeline"
)

// LoadGraph reads a pipeline graph from path. A .json file is validated
// exactly like an HTTP payload; .hcl files and directories go through the
// HCL graph loader.
func (a *App) LoadGraph(ctx context.Context, path string) (*pipeline.Graph, error) {
	ctx = a.withLogger(ctx)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading graph...", "path", path)

	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read graph file: %w", err)
		}
		graph, err := pipeline.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("failed to load graph %s: %w", path, err)
		}
		logger.Debug("JSON graph loaded.", "nodes", len(graph.Nodes), "edges", len(graph.Edges))
		return graph, nil
	}

	graph, err := a.graphs.LoadGraph(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load graph: %w", err)
	}
	return graph, nil
}

// Check loads the graph at path and evaluates it locally.
func (a *App) Check(ctx context.Context, path string) (pipeline.Report, error) {
	graph, err := a.LoadGraph(ctx, path)
	if err != nil {
		return pipeline.Report{}, err
	}

	report := pipeline.Parse(graph)
	a.logger.Info("Graph checked.", "path", path, "nodes", report.Nodes, "edges", report.Edges, "is_dag", report.IsDAG)
	return report, nil
}

// Submit loads the graph at path and has the server at serverURL evaluate it.
func (a *App) Submit(ctx context.Context, path, serverURL string, timeout time.Duration) (pipeline.Report, error) {
	graph, err := a.LoadGraph(ctx, path)
	if err != nil {
		return pipeline.Report{}, err
	}

	c := client.New(serverURL, timeout)
	defer c.Close()

	report, err := c.Parse(a.withLogger(ctx), graph)
	if err != nil {
		return pipeline.Report{}, err
	}
	a.logger.Info("Graph submitted.", "path", path, "server", serverURL, "is_dag", report.IsDAG)
	return report, nil
}
