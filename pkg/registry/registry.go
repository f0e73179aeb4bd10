package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
)

// ToolExecutorFunc executes a tool with already decoded arguments. The result
// is either a string, which is passed through as is, or any JSON encodable
// value.
type ToolExecutorFunc func(ctx context.Context, args map[string]any) (any, error)

// ToolDefinition links a tool's LLM facing description and MCP input schema
// to the function that runs it.
type ToolDefinition struct {
	SkillID     string              // The agent card skill the tool belongs to
	ToolName    string              // The name presented to the LLM
	Description string              // The description presented to the LLM
	Schema      mcp.ToolInputSchema // The MCP input schema for the tool
	Executor    ToolExecutorFunc
}

// Tool returns the MCP representation of the definition.
func (def ToolDefinition) Tool() mcp.Tool {
	return mcp.Tool{
		Name:        def.ToolName,
		Description: def.Description,
		InputSchema: def.Schema,
	}
}

/*
Registry holds the tools an agent may call, keyed by tool name.
*/
type Registry struct {
	mu    sync.RWMutex
	tools map[string]ToolDefinition
}

func NewRegistry(defs ...ToolDefinition) *Registry {
	r := &Registry{tools: make(map[string]ToolDefinition)}

	for _, def := range defs {
		r.Register(def)
	}

	return r
}

// Register adds or replaces a tool definition.
func (r *Registry) Register(def ToolDefinition) {
	r.mu.Lock()
	r.tools[def.ToolName] = def
	r.mu.Unlock()
}

func (r *Registry) Get(name string) (ToolDefinition, bool) {
	r.mu.RLock()
	def, found := r.tools[name]
	r.mu.RUnlock()
	return def, found
}

// List returns all definitions ordered by name.
func (r *Registry) List() []ToolDefinition {
	r.mu.RLock()
	defs := make([]ToolDefinition, 0, len(r.tools))

	for _, def := range r.tools {
		defs = append(defs, def)
	}
	r.mu.RUnlock()

	sort.Slice(defs, func(i, j int) bool {
		return defs[i].ToolName < defs[j].ToolName
	})

	return defs
}

// Execute runs the named tool.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (any, error) {
	def, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("tool not found: %s", name)
	}

	if args == nil {
		args = map[string]any{}
	}

	return def.Executor(ctx, args)
}
