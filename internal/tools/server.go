// Package tools adapts plain functions to MCP tools on a mark3labs/mcp-go
// server. Each registration derives the tool's input schema once from the
// function's declared signature and keeps it as a snapshot.
package tools

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/minimcp-servers/internal/common"
	"github.com/bobmcallan/minimcp-servers/internal/namespace"
)

// Descriptor is one registered tool.
type Descriptor struct {
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Params      []ParamSchema `json:"params" yaml:"params"`
	Result      string        `json:"result" yaml:"result"`
	Tool        mcp.Tool      `json:"-" yaml:"-"`

	sig *signature
}

// Server is a named MCP server with an insertion-ordered tool registry.
//
// Tools are added only during the registration phase. Freeze ends that phase;
// after it the registry is read-only and may be dispatched against
// concurrently. RegisterTool must not be called concurrently with itself.
type Server struct {
	name         string
	version      string
	instructions string
	logger       *common.Logger

	mcp    *server.MCPServer
	order  []string
	tools  map[string]*Descriptor
	frozen bool
}

// New creates a server. Extra options are passed to the underlying MCPServer.
func New(name, version, instructions string, logger *common.Logger, opts ...server.ServerOption) *Server {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	base := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithInstructions(instructions),
		server.WithRecovery(),
	}
	return &Server{
		name:         name,
		version:      version,
		instructions: instructions,
		logger:       logger,
		mcp:          server.NewMCPServer(name, version, append(base, opts...)...),
		tools:        make(map[string]*Descriptor),
	}
}

// Name returns the server name.
func (s *Server) Name() string { return s.name }

// Version returns the server version.
func (s *Server) Version() string { return s.version }

// Instructions returns the instructions sent to clients on initialize.
func (s *Server) Instructions() string { return s.instructions }

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer { return s.mcp }

// RegisterTool registers f under its own name. The first registration of a
// name wins; later ones fail with ErrDuplicateName and leave it untouched.
func (s *Server) RegisterTool(f *namespace.Function) error {
	if f == nil {
		return &RegistrationError{Kind: ErrUnsupportedSignature, Err: fmt.Errorf("nil function")}
	}
	if s.frozen {
		return &RegistrationError{Tool: f.Name, Kind: ErrFrozen}
	}
	if _, exists := s.tools[f.Name]; exists {
		return &RegistrationError{Tool: f.Name, Kind: ErrDuplicateName}
	}

	d, err := newDescriptor(f)
	if err != nil {
		return err
	}

	s.mcp.AddTool(d.Tool, s.handler(d))
	s.tools[d.Name] = d
	s.order = append(s.order, d.Name)
	return nil
}

func newDescriptor(f *namespace.Function) (*Descriptor, error) {
	sig, err := deriveSignature(f)
	if err != nil {
		return nil, err
	}
	schema, err := sig.inputSchema()
	if err != nil {
		return nil, &RegistrationError{Tool: f.Name, Kind: ErrUnsupportedSignature, Err: err}
	}

	tool := mcp.NewToolWithRawSchema(f.Name, f.Doc, schema)
	tool.Annotations = mcp.ToolAnnotation{
		ReadOnlyHint:    mcp.ToBoolPtr(true),
		DestructiveHint: mcp.ToBoolPtr(false),
		OpenWorldHint:   mcp.ToBoolPtr(false),
	}

	params := make([]ParamSchema, len(sig.params))
	for i, p := range sig.params {
		params[i] = p.ParamSchema
	}

	return &Descriptor{
		Name:        f.Name,
		Description: f.Doc,
		Params:      params,
		Result:      sig.result,
		Tool:        tool,
		sig:         sig,
	}, nil
}

func (s *Server) handler(d *Descriptor) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := r.GetArguments()
		if args == nil && r.GetRawArguments() != nil {
			if err := r.BindArguments(&args); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Error: invalid arguments: %v", err)), nil
			}
		}
		return s.invoke(ctx, d, args), nil
	}
}

func (s *Server) invoke(ctx context.Context, d *Descriptor, args map[string]any) *mcp.CallToolResult {
	log := s.logger.WithCorrelationId(uuid.NewString())
	log.Debug().Str("tool", d.Name).Msg("tool call")

	out, err := d.sig.invoke(ctx, d.Name, args)
	if err != nil {
		log.Warn().Str("tool", d.Name).Err(err).Msg("tool call failed")
		return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err))
	}
	return toolResult(out)
}

// Freeze ends the registration phase.
func (s *Server) Freeze() {
	s.frozen = true
}

// Frozen reports whether Freeze has been called.
func (s *Server) Frozen() bool { return s.frozen }

// Lookup returns the descriptor registered under name.
func (s *Server) Lookup(name string) (*Descriptor, bool) {
	d, ok := s.tools[name]
	return d, ok
}

// Names returns tool names in registration order.
func (s *Server) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of registered tools.
func (s *Server) Len() int { return len(s.order) }

// Descriptors returns all descriptors in registration order.
func (s *Server) Descriptors() []*Descriptor {
	out := make([]*Descriptor, len(s.order))
	for i, name := range s.order {
		out[i] = s.tools[name]
	}
	return out
}

// Call invokes a registered tool in-process, bypassing the transport.
// Tool failures are reported in the result, not as an error.
func (s *Server) Call(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	d, ok := s.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return s.invoke(ctx, d, args), nil
}
