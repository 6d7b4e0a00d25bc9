package api

import (
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hazyhaar/adresse-fr/pkg/adresse"
	"github.com/hazyhaar/adresse-fr/pkg/kit"
	"github.com/hazyhaar/adresse-fr/pkg/pipeline"
)

// RegisterMCPTools registers the address tools on the server.
func RegisterMCPTools(srv *server.MCPServer, p *pipeline.Pipeline, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	ep := newEndpoints(p, logger)

	queryTool := func(name, desc string) mcp.Tool {
		return mcp.NewTool(name,
			mcp.WithDescription(desc),
			mcp.WithString("query", mcp.Required(), mcp.Description("Free-text French address query")),
		)
	}
	kit.RegisterMCPTool(srv, queryTool("clean_query",
		"Remove postal noise (BP, CS, CEDEX, phone numbers, floors) from an address query."),
		ep.clean, decodeQueryArgs)
	kit.RegisterMCPTool(srv, queryTool("extract_address",
		"Extract the street address (number, street type, rest) from a longer text."),
		ep.extract, decodeQueryArgs)
	kit.RegisterMCPTool(srv, queryTool("process_query",
		"Run the full query pipeline: cleaned text, normalized tokens and the detected house number."),
		ep.query, decodeQueryArgs)

	kit.RegisterMCPTool(srv, mcp.NewTool("process_housenumber",
		mcp.WithDescription("Normalize an indexed house number the way queries see it (\"1 bis\" becomes \"1b\")."),
		mcp.WithString("housenumber", mcp.Required(), mcp.Description("House number with optional ordinal")),
	), ep.housenumber, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		hn, err := kit.StringArg(req, "housenumber", true)
		if err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &housenumberReq{Housenumber: hn}}, nil
	})

	kit.RegisterMCPTool(srv, mcp.NewTool("make_labels",
		mcp.WithDescription("Build the display labels of a search result, most specific first."),
		mcp.WithString("names", mcp.Required(), mcp.Description("Pipe-separated names of the result (e.g. rue des Lilas|rue Lilas)")),
		mcp.WithString("city", mcp.Description("City name")),
		mcp.WithString("postcode", mcp.Description("Postcode")),
		mcp.WithString("housenumber", mcp.Description("House number as displayed")),
		mcp.WithString("type", mcp.Description("Result type (municipality, street, housenumber)")),
	), ep.labels, decodeResultArgs)

	kit.RegisterMCPTool(srv, mcp.NewTool("list_tables",
		mcp.WithDescription("Show the loaded address tables, the pipeline configuration and the registered processors."),
	), ep.tables, func(mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: nil}, nil
	})
}

func decodeQueryArgs(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
	q, err := kit.StringArg(req, "query", true)
	if err != nil {
		return nil, err
	}
	return &kit.MCPDecodeResult{Request: &queryReq{Query: q}}, nil
}

func decodeResultArgs(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
	names, err := kit.StringArg(req, "names", true)
	if err != nil {
		return nil, err
	}
	res := &adresse.Result{}
	for _, n := range strings.Split(names, "|") {
		if n = strings.TrimSpace(n); n != "" {
			res.Names = append(res.Names, n)
		}
	}
	for field, dst := range map[string]*string{
		"city":        &res.City,
		"postcode":    &res.Postcode,
		"housenumber": &res.Housenumber,
		"type":        &res.Type,
	} {
		if *dst, err = kit.StringArg(req, field, false); err != nil {
			return nil, err
		}
	}
	return &kit.MCPDecodeResult{Request: res}, nil
}
