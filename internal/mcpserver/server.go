// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the address book to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/rolodex/internal/apperr"
	"github.com/starford/rolodex/internal/command"
	"github.com/starford/rolodex/internal/index"
	"github.com/starford/rolodex/internal/models"
)

const referenceURI = "rolodex://commands"

// Service is what the tools need from the address book.
type Service interface {
	Execute(ctx context.Context, line string) (command.Result, error)
	Persons() []models.Person
	Filtered() []models.Person
	Search(ctx context.Context, query string, limit int) ([]index.SearchResult, error)
}

// Server wraps the MCP server with rolodex tools.
type Server struct {
	mcp *server.MCPServer
	svc Service
}

type commandOutput struct {
	Feedback string          `json:"feedback"`
	Persons  []models.Person `json:"persons"`
}

// New creates a new MCP server with all rolodex tools registered.
func New(svc Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Rolodex",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("run_command",
		mcp.WithDescription("Run one rolodex command line (add, edit, delete, find, list, clear, remark, help). "+
			"Returns the feedback message and the list displayed afterwards. "+
			"Read the command reference first via get_command_reference or the "+referenceURI+" resource."),
		mcp.WithString("command", mcp.Required(), mcp.Description("Command line, e.g. 'find n:alice t:friends'")),
	), s.runCommand)

	s.mcp.AddTool(mcp.NewTool("list_persons",
		mcp.WithDescription("List persons in the address book."),
		mcp.WithString("view", mcp.Description("'all' (default) or 'filtered' for the list displayed after the last command")),
	), s.listPersons)

	s.mcp.AddTool(mcp.NewTool("search_persons",
		mcp.WithDescription("Full-text search over names, phones, emails, tags and remarks."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 20)")),
	), s.searchPersons)

	s.mcp.AddTool(mcp.NewTool("get_command_reference",
		mcp.WithDescription("Returns the rolodex command language reference. "+
			"Call this before run_command to get prefixes and syntax right."),
	), s.getCommandReference)

	s.mcp.AddResource(
		mcp.NewResource(referenceURI, "Command Reference",
			mcp.WithResourceDescription("Syntax of every rolodex command."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readReferenceResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func nonNil(ps []models.Person) []models.Person {
	if ps == nil {
		return []models.Person{}
	}
	return ps
}

func (s *Server) runCommand(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	line, err := req.RequireString("command")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := s.svc.Execute(ctx, line)
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return mcp.NewToolResultError(ae.Msg), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("internal error: %v", err)), nil
	}
	if res.ShowHelp {
		return mcp.NewToolResultText(command.HelpText()), nil
	}
	return jsonResult(commandOutput{Feedback: res.Feedback, Persons: nonNil(s.svc.Filtered())})
}

func (s *Server) listPersons(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	switch view := req.GetString("view", "all"); view {
	case "", "all":
		return jsonResult(nonNil(s.svc.Persons()))
	case "filtered":
		return jsonResult(nonNil(s.svc.Filtered()))
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown view %q: use 'all' or 'filtered'", view)), nil
	}
}

func (s *Server) searchPersons(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, req.GetInt("limit", 20))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultText("no matches"), nil
	}
	return jsonResult(results)
}

func (s *Server) getCommandReference(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(CommandReference()), nil
}

func (s *Server) readReferenceResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      referenceURI,
			MIMEType: "text/markdown",
			Text:     CommandReference(),
		},
	}, nil
}
