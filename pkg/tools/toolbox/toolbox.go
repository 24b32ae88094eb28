// Package toolbox holds the generation tools exposed to MCP clients.
package toolbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrToolNotFound is returned by Call for an unregistered name.
var ErrToolNotFound = errors.New("toolbox: tool not found")

// Handler runs a tool on its JSON arguments and returns a text result.
type Handler func(ctx context.Context, input json.RawMessage) (string, error)

// Tool is a named operation with a JSON Schema for its arguments.
type Tool struct {
	Name        string
	Description string
	InputSchema json.RawMessage
	Handler     Handler
}

// ToolBox is a name-indexed set of tools. Not safe for concurrent Register.
type ToolBox struct {
	tools map[string]Tool
}

// New returns a ToolBox holding tools.
func New(tools ...Tool) *ToolBox {
	tb := &ToolBox{tools: make(map[string]Tool, len(tools))}
	tb.Register(tools...)

	return tb
}

// Register adds tools, replacing any with the same name. Tools without a
// handler are skipped.
func (tb *ToolBox) Register(tools ...Tool) {
	for _, t := range tools {
		if t.Handler == nil {
			continue
		}
		tb.tools[t.Name] = t
	}
}

// Get looks a tool up by name.
func (tb *ToolBox) Get(name string) (Tool, bool) {
	t, ok := tb.tools[name]
	return t, ok
}

// Tools returns the registered tools ordered by name.
func (tb *ToolBox) Tools() []Tool {
	out := make([]Tool, 0, len(tb.tools))
	for _, t := range tb.tools {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b Tool) int { return strings.Compare(a.Name, b.Name) })

	return out
}

// Select returns a ToolBox holding only the named tools. Blank names are
// ignored; an unknown name fails with ErrToolNotFound.
func (tb *ToolBox) Select(names ...string) (*ToolBox, error) {
	out := New()
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		t, ok := tb.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
		}
		out.Register(t)
	}

	return out, nil
}

// Call runs the named tool. Empty input is treated as "{}".
func (tb *ToolBox) Call(ctx context.Context, name string, input json.RawMessage) (string, error) {
	t, ok := tb.tools[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	if len(input) == 0 {
		input = json.RawMessage("{}")
	}

	return t.Handler(ctx, input)
}

// Decode unmarshals tool arguments into dest with a tool-prefixed error.
func Decode(name string, input json.RawMessage, dest any) error {
	if err := json.Unmarshal(input, dest); err != nil {
		return fmt.Errorf("%s: invalid input: %w", name, err)
	}

	return nil
}
