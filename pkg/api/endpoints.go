package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hazyhaar/adresse-fr/pkg/adresse"
	"github.com/hazyhaar/adresse-fr/pkg/kit"
	"github.com/hazyhaar/adresse-fr/pkg/pipeline"
)

// Shared request/response types used by both HTTP and MCP transports.

const (
	maxQueryLen = 1024
	maxNames    = 50
)

var errEmptyQuery = errors.New("query is empty")

type queryReq struct {
	Query string `json:"q"`
}

type housenumberReq struct {
	Housenumber string `json:"housenumber"`
}

type textResponse struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

type tablesResponse struct {
	Tables     *adresse.Tables `json:"tables"`
	Pipeline   pipeline.Config `json:"pipeline"`
	Processors []string        `json:"processors"`
}

type endpoints struct {
	clean       kit.Endpoint
	extract     kit.Endpoint
	query       kit.Endpoint
	housenumber kit.Endpoint
	labels      kit.Endpoint
	tables      kit.Endpoint
}

func newEndpoints(p *pipeline.Pipeline, logger *slog.Logger) *endpoints {
	wrap := func(name string, ep kit.Endpoint) kit.Endpoint {
		return kit.Chain(kit.Logging(logger, name), kit.Recover())(ep)
	}
	return &endpoints{
		clean:       wrap("clean", cleanEndpoint(p)),
		extract:     wrap("extract", extractEndpoint(p)),
		query:       wrap("query", queryEndpoint(p)),
		housenumber: wrap("housenumber", housenumberEndpoint(p)),
		labels:      wrap("labels", labelsEndpoint(p)),
		tables:      wrap("tables", tablesEndpoint(p)),
	}
}

func checkQuery(q string) error {
	if q == "" {
		return errEmptyQuery
	}
	if len(q) > maxQueryLen {
		return fmt.Errorf("query too long (max %d bytes, got %d)", maxQueryLen, len(q))
	}
	return nil
}

func cleanEndpoint(p *pipeline.Pipeline) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*queryReq)
		if err := checkQuery(req.Query); err != nil {
			return nil, err
		}
		return textResponse{Input: req.Query, Output: p.Rules().Clean(req.Query)}, nil
	}
}

func extractEndpoint(p *pipeline.Pipeline) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*queryReq)
		if err := checkQuery(req.Query); err != nil {
			return nil, err
		}
		return textResponse{Input: req.Query, Output: p.Rules().Extract(req.Query)}, nil
	}
}

func queryEndpoint(p *pipeline.Pipeline) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*queryReq)
		if err := checkQuery(req.Query); err != nil {
			return nil, err
		}
		return p.Query(req.Query), nil
	}
}

func housenumberEndpoint(p *pipeline.Pipeline) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*housenumberReq)
		if err := checkQuery(req.Housenumber); err != nil {
			return nil, fmt.Errorf("housenumber: %w", err)
		}
		return textResponse{Input: req.Housenumber, Output: p.Housenumber(req.Housenumber)}, nil
	}
}

func labelsEndpoint(p *pipeline.Pipeline) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		res := request.(*adresse.Result)
		if len(res.Names) == 0 {
			return nil, errors.New("names is empty")
		}
		if len(res.Names) > maxNames {
			return nil, fmt.Errorf("too many names (max %d, got %d)", maxNames, len(res.Names))
		}
		p.Result(res)
		return res, nil
	}
}

func tablesEndpoint(p *pipeline.Pipeline) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		return tablesResponse{
			Tables:     p.Rules().Tables(),
			Pipeline:   p.Config(),
			Processors: pipeline.Names(),
		}, nil
	}
}
