// This file translates decoded HCL schema structs into the format-agnostic
// settings model and into pipeline graph values.

package hcl_adapter

import (
	"context"
	"fmt"
	"sort"

	"github.com/specialistvlad/dagcheck/internal/config"
	"github.com/specialistvlad/dagcheck/internal/ctxlog"
	"github.com/specialistvlad/dagcheck/internal/pipeline"
)

func translateSettings(root *settingsRoot) *config.Model {
	model := &config.Model{}
	if s := root.Server; s != nil {
		model.Server = &config.Server{
			ListenAddr:      s.ListenAddr,
			ReadTimeout:     s.ReadTimeout,
			WriteTimeout:    s.WriteTimeout,
			ShutdownTimeout: s.ShutdownTimeout,
			MaxBodyBytes:    s.MaxBodyBytes,
		}
	}
	if c := root.CORS; c != nil {
		model.CORS = &config.CORS{AllowedOrigins: c.AllowedOrigins}
	}
	if lg := root.Log; lg != nil {
		model.Log = &config.Log{Level: lg.Level, Format: lg.Format}
	}
	if r := root.Realtime; r != nil {
		model.Realtime = &config.Realtime{Enabled: r.Enabled}
	}
	return model
}

// translateNode evaluates the attributes of a node block into an opaque
// payload. The block label becomes the payload's "id".
func translateNode(ctx context.Context, n *NodeBlock) (pipeline.Node, error) {
	logger := ctxlog.FromContext(ctx).With("node", n.ID)

	attrs, diags := n.Remain.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("node %q: %w", n.ID, diags)
	}
	if _, ok := attrs["id"]; ok {
		return nil, fmt.Errorf("node %q: the id attribute is reserved, it is taken from the block label", n.ID)
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	node := pipeline.Node{"id": n.ID}
	for _, name := range names {
		val, diags := attrs[name].Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("node %q attribute %q: %w", n.ID, name, diags)
		}
		goVal, err := ctyToGo(val)
		if err != nil {
			return nil, fmt.Errorf("node %q attribute %q: %w", n.ID, name, err)
		}
		node[name] = goVal
	}

	logger.Debug("Translated HCL node.", "attributes", len(names))
	return node, nil
}
