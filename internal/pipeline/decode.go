package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Detail describes a single problem found in a submitted payload. Loc is the
// path to the offending value, starting at "body".
type Detail struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

// ValidationError is returned when a payload does not have the shape of a
// Graph. It lists every problem, not just the first.
type ValidationError struct {
	Details []Detail
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		loc := make([]string, len(d.Loc))
		for i, l := range d.Loc {
			loc[i] = fmt.Sprint(l)
		}
		parts = append(parts, fmt.Sprintf("%s: %s", strings.Join(loc, "."), d.Msg))
	}
	return "invalid pipeline payload: " + strings.Join(parts, "; ")
}

// Decode parses and validates a JSON payload.
func Decode(data []byte) (*Graph, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, &ValidationError{Details: []Detail{{
			Loc:  []any{"body"},
			Msg:  "JSON decode error: " + err.Error(),
			Type: "json_invalid",
		}}}
	}
	if dec.More() {
		return nil, &ValidationError{Details: []Detail{{
			Loc:  []any{"body"},
			Msg:  "JSON decode error: unexpected data after top-level value",
			Type: "json_invalid",
		}}}
	}
	return FromValue(raw)
}

// FromValue validates an already decoded value (as produced by encoding/json
// or a Socket.IO event) and converts it into a Graph.
func FromValue(raw any) (*Graph, error) {
	var v validator

	body, ok := raw.(map[string]any)
	if !ok {
		v.add([]any{"body"}, "Input should be a valid dictionary", "dict_type")
		return nil, v.err()
	}

	g := &Graph{
		Nodes: v.nodes(body),
		Edges: v.edges(body),
	}
	if err := v.err(); err != nil {
		return nil, err
	}
	return g, nil
}

type validator struct {
	details []Detail
}

func (v *validator) add(loc []any, msg, typ string) {
	v.details = append(v.details, Detail{Loc: loc, Msg: msg, Type: typ})
}

func (v *validator) err() error {
	if len(v.details) == 0 {
		return nil
	}
	return &ValidationError{Details: v.details}
}

func (v *validator) list(body map[string]any, field string) ([]any, bool) {
	raw, ok := body[field]
	if !ok {
		v.add([]any{"body", field}, "Field required", "missing")
		return nil, false
	}
	items, ok := raw.([]any)
	if !ok {
		v.add([]any{"body", field}, "Input should be a valid list", "list_type")
		return nil, false
	}
	return items, true
}

func (v *validator) nodes(body map[string]any) []Node {
	items, ok := v.list(body, "nodes")
	if !ok {
		return nil
	}
	nodes := make([]Node, 0, len(items))
	for i, item := range items {
		rec, ok := item.(map[string]any)
		if !ok {
			v.add([]any{"body", "nodes", i}, "Input should be a valid dictionary", "dict_type")
			continue
		}
		nodes = append(nodes, Node(rec))
	}
	return nodes
}

func (v *validator) edges(body map[string]any) []Edge {
	items, ok := v.list(body, "edges")
	if !ok {
		return nil
	}
	edges := make([]Edge, 0, len(items))
	for i, item := range items {
		rec, ok := item.(map[string]any)
		if !ok {
			v.add([]any{"body", "edges", i}, "Input should be a valid dictionary", "dict_type")
			continue
		}
		source, okS := v.str(rec, "body", "edges", i, "source")
		target, okT := v.str(rec, "body", "edges", i, "target")
		if okS && okT {
			edges = append(edges, Edge{Source: source, Target: target})
		}
	}
	return edges
}

func (v *validator) str(rec map[string]any, loc ...any) (string, bool) {
	field := loc[len(loc)-1].(string)
	raw, ok := rec[field]
	if !ok {
		v.add(loc, "Field required", "missing")
		return "", false
	}
	s, ok := raw.(string)
	if !ok {
		v.add(loc, "Input should be a valid string", "string_type")
		return "", false
	}
	return s, true
}
