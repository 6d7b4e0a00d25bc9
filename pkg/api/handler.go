// Package api exposes the address pipeline over HTTP and MCP. Both transports
// dispatch to the same kit.Endpoints.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"

	"github.com/hazyhaar/adresse-fr/pkg/adresse"
	"github.com/hazyhaar/adresse-fr/pkg/kit"
	"github.com/hazyhaar/adresse-fr/pkg/pipeline"
)

const maxBodyBytes = 64 * 1024

// NewRouter returns an http.Handler with all address API routes. rateLimit
// is the number of requests per minute allowed per client IP; zero disables
// the limit.
func NewRouter(p *pipeline.Pipeline, logger *slog.Logger, rateLimit int) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &handler{ep: newEndpoints(p, logger), p: p}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors)
	if rateLimit > 0 {
		r.Use(httprate.LimitByIP(rateLimit, time.Minute))
	}
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/clean", h.serve(h.ep.clean, decodeQuery))
		r.Post("/extract", h.serve(h.ep.extract, decodeQuery))
		r.Post("/query", h.serve(h.ep.query, decodeQuery))
		r.Post("/housenumber", h.serve(h.ep.housenumber, decodeHousenumber))
		r.Post("/labels", h.serve(h.ep.labels, decodeResult))
		r.Get("/tables", h.serve(h.ep.tables, nil))
		r.Get("/health", h.handleHealth)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "not found")
	})
	return r
}

type handler struct {
	ep *endpoints
	p  *pipeline.Pipeline
}

type decodeFunc func(*http.Request) (any, error)

// serve decodes the request, runs the endpoint and renders its response.
// Decoding and endpoint errors are client errors.
func (h *handler) serve(ep kit.Endpoint, decode decodeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req any
		if decode != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			var err error
			if req, err = decode(r); err != nil {
				writeError(w, r, http.StatusBadRequest, "invalid JSON body")
				return
			}
		}
		ctx := kit.WithTransport(r.Context(), kit.TransportHTTP)
		if id := middleware.GetReqID(ctx); id != "" {
			ctx = kit.WithRequestID(ctx, id)
		}
		resp, err := ep(ctx, req)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		render.JSON(w, r, resp)
	}
}

func decodeQuery(r *http.Request) (any, error) {
	var req queryReq
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func decodeHousenumber(r *http.Request) (any, error) {
	var req housenumberReq
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func decodeResult(r *http.Request) (any, error) {
	var res adresse.Result
	if err := render.DecodeJSON(r.Body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// --- health ---

type healthResponse struct {
	Status     string `json:"status"`
	Tables     string `json:"tables"`
	Processors int    `json:"processors"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, healthResponse{
		Status:     "ok",
		Tables:     h.p.Rules().Tables().Version,
		Processors: len(pipeline.Names()),
	})
}

// --- helpers ---

func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	render.Status(r, code)
	render.JSON(w, r, map[string]string{"error": msg})
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
