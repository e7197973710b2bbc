package server

import (
	"encoding/json"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/archlens/pkg/errors"
	"github.com/matzehuels/archlens/pkg/graph"
)

type optimizeRequest struct {
	Graph    graph.Graph     `json:"graph"`
	Viewport *graph.Viewport `json:"viewport,omitempty"`
}

type viewportRequest struct {
	Viewport *graph.Viewport `json:"viewport"`
	// Graph replaces the stored graph when present.
	Graph *graph.Graph `json:"graph,omitempty"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.Graph.Validate(); err != nil {
		s.writeError(w, err)
		return
	}
	s.setLast(req.Graph)
	s.writeJSON(w, http.StatusOK, s.engine.Optimize(r.Context(), req.Graph, req.Viewport))
}

func (s *Server) handleViewport(w http.ResponseWriter, r *http.Request) {
	var req viewportRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.Graph != nil {
		if err := req.Graph.Validate(); err != nil {
			s.writeError(w, err)
			return
		}
		s.setLast(*req.Graph)
	}
	g, ok := s.lastGraph()
	if !ok {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "no graph loaded; POST /v1/optimize first or include a graph"))
		return
	}
	s.writeJSON(w, http.StatusOK, s.engine.UpdateViewport(r.Context(), req.Viewport, g))
}

func (s *Server) handleProcessQueue(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.engine.ProcessLoadingQueue(r.Context()))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.engine.Statistics(r.Context()))
}

func (s *Server) handleClearCache(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.ClearCache(r.Context()); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeCache, err, "clear cache"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleIcon(w http.ResponseWriter, r *http.Request) {
	if s.icons == nil {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "no icon directory configured"))
		return
	}
	file := chi.URLParam(r, "*")
	format := strings.TrimPrefix(path.Ext(file), ".")
	name := strings.TrimSuffix(file, path.Ext(file))
	if name == "" || format == "" {
		s.writeError(w, errors.New(errors.ErrCodeInvalidIcon, "icon path must be <name>.<format>"))
		return
	}
	if err := errors.ValidateIconName(name); err != nil {
		s.writeError(w, err)
		return
	}

	req := s.engine.Config().Resolver().Resolve(name)
	req.Format = format
	data, err := s.icons.Fetch(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	ctype := mime.TypeByExtension("." + format)
	if ctype == "" {
		ctype = http.DetectContentType(data)
	}
	w.Header().Set("Content-Type", ctype)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(data)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	s.writeJSON(w, status, errorBody{Error: errorDetail{
		Code:    errors.GetCode(err),
		Message: errors.UserMessage(err),
	}})
}
