package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	goMCP "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Lumos-Labs-HQ/datamock/internal/classify"
	"github.com/Lumos-Labs-HQ/datamock/internal/converter"
	"github.com/Lumos-Labs-HQ/datamock/internal/rule"
	"github.com/Lumos-Labs-HQ/datamock/internal/types"
)

type toolHandler = func(context.Context, goMCP.CallToolRequest) (*goMCP.CallToolResult, error)

// NewServer builds an MCP server exposing the rule tools.
func NewServer(reg *converter.Registry, dialect classify.Dialect, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"datamock",
		version,
		server.WithToolCapabilities(false),
		server.WithLogging(),
	)
	RegisterTools(s, reg, dialect)
	return s
}

func RegisterTools(s *server.MCPServer, reg *converter.Registry, dialect classify.Dialect) {
	dialectOpt := goMCP.WithString("dialect",
		goMCP.Description("Database dialect: mysql, oracle or postgresql (default from config)"),
	)

	classifyTool := goMCP.NewTool("classify_column",
		goMCP.WithDescription("Classify a column type and list the mock rules it accepts"),
		goMCP.WithString("column_type",
			goMCP.Required(),
			goMCP.Description("Native column type, e.g. varchar(64) or NUMBER(10,2)"),
		),
		dialectOpt,
	)

	defaultTool := goMCP.NewTool("default_rule",
		goMCP.WithDescription("Get the default rule and form value for a column"),
		goMCP.WithString("column",
			goMCP.Required(),
			goMCP.Description(`Column as JSON: {"columnName","columnType","columnObj":{"width","precision","scale"}}`),
		),
		goMCP.WithString("rule",
			goMCP.Description("Rule tag; the category default when empty"),
		),
		dialectOpt,
	)

	toServerTool := goMCP.NewTool("convert_to_server",
		goMCP.WithDescription("Convert form columns (rule + value) into server generator configs"),
		goMCP.WithString("columns",
			goMCP.Required(),
			goMCP.Description("JSON array of form columns"),
		),
		dialectOpt,
	)

	toFormTool := goMCP.NewTool("convert_to_form",
		goMCP.WithDescription("Convert server generator configs back into form columns"),
		goMCP.WithString("columns",
			goMCP.Required(),
			goMCP.Description("JSON array of server columns"),
		),
		dialectOpt,
	)

	s.AddTool(classifyTool, ClassifyHandler(dialect))
	s.AddTool(defaultTool, DefaultHandler(reg, dialect))
	s.AddTool(toServerTool, ToServerHandler(reg, dialect))
	s.AddTool(toFormTool, ToFormHandler(reg, dialect))
}

func resolveDialect(request goMCP.CallToolRequest, fallback classify.Dialect) (classify.Dialect, error) {
	name := request.GetString("dialect", "")
	if name == "" {
		return fallback, nil
	}
	return classify.ParseDialect(name)
}

func jsonResult(v interface{}) (*goMCP.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return goMCP.NewToolResultError(fmt.Sprintf("Failed to marshal results: %v", err)), nil
	}
	return goMCP.NewToolResultText(string(data)), nil
}

func ClassifyHandler(dialect classify.Dialect) toolHandler {
	return func(ctx context.Context, request goMCP.CallToolRequest) (*goMCP.CallToolResult, error) {
		columnType, err := request.RequireString("column_type")
		if err != nil {
			return goMCP.NewToolResultError(fmt.Sprintf("Missing column_type parameter: %v", err)), nil
		}
		d, err := resolveDialect(request, dialect)
		if err != nil {
			return goMCP.NewToolResultError(err.Error()), nil
		}
		cat, ok := classify.Classify(d, columnType)
		if !ok {
			cat = rule.CategoryOther
		}
		return jsonResult(map[string]interface{}{
			"category":    cat,
			"matched":     ok,
			"rules":       rule.Rules(cat),
			"defaultRule": rule.DefaultRule(cat),
		})
	}
}

func DefaultHandler(reg *converter.Registry, dialect classify.Dialect) toolHandler {
	return func(ctx context.Context, request goMCP.CallToolRequest) (*goMCP.CallToolResult, error) {
		raw, err := request.RequireString("column")
		if err != nil {
			return goMCP.NewToolResultError(fmt.Sprintf("Missing column parameter: %v", err)), nil
		}
		var col types.Column
		if err := converter.Decode([]byte(raw), &col); err != nil {
			return goMCP.NewToolResultError(err.Error()), nil
		}
		d, err := resolveDialect(request, dialect)
		if err != nil {
			return goMCP.NewToolResultError(err.Error()), nil
		}

		t := rule.Type(request.GetString("rule", ""))
		if t == "" {
			return jsonResult(reg.DefaultColumn(d, col))
		}
		v, err := reg.DefaultValue(d, col, t)
		if err != nil {
			return goMCP.NewToolResultError(err.Error()), nil
		}
		return jsonResult(converter.FormColumn{Column: col, Rule: t, TypeConfig: v})
	}
}

func ToServerHandler(reg *converter.Registry, dialect classify.Dialect) toolHandler {
	return func(ctx context.Context, request goMCP.CallToolRequest) (*goMCP.CallToolResult, error) {
		raw, err := request.RequireString("columns")
		if err != nil {
			return goMCP.NewToolResultError(fmt.Sprintf("Missing columns parameter: %v", err)), nil
		}
		cols, err := converter.DecodeFormColumns([]byte(raw))
		if err != nil {
			return goMCP.NewToolResultError(err.Error()), nil
		}
		d, err := resolveDialect(request, dialect)
		if err != nil {
			return goMCP.NewToolResultError(err.Error()), nil
		}
		out, err := reg.ConvertFormToServerColumns(d, cols)
		if err != nil {
			return goMCP.NewToolResultError(fmt.Sprintf("Conversion failed: %v", err)), nil
		}
		return jsonResult(out)
	}
}

func ToFormHandler(reg *converter.Registry, dialect classify.Dialect) toolHandler {
	return func(ctx context.Context, request goMCP.CallToolRequest) (*goMCP.CallToolResult, error) {
		raw, err := request.RequireString("columns")
		if err != nil {
			return goMCP.NewToolResultError(fmt.Sprintf("Missing columns parameter: %v", err)), nil
		}
		cols, err := converter.DecodeServerColumns([]byte(raw))
		if err != nil {
			return goMCP.NewToolResultError(err.Error()), nil
		}
		d, err := resolveDialect(request, dialect)
		if err != nil {
			return goMCP.NewToolResultError(err.Error()), nil
		}
		out, err := reg.ConvertServerColumnsToFormColumns(d, cols)
		if err != nil {
			return goMCP.NewToolResultError(fmt.Sprintf("Conversion failed: %v", err)), nil
		}
		return jsonResult(out)
	}
}
