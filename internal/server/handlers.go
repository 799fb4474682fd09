package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/matzehuels/quadart/pkg/buildinfo"
	"github.com/matzehuels/quadart/pkg/errors"
	"github.com/matzehuels/quadart/pkg/history"
	"github.com/matzehuels/quadart/pkg/pipeline"
)

// Response headers describing a render.
const (
	HeaderLeaves    = "X-Quadart-Leaves"
	HeaderTruncated = "X-Quadart-Truncated"
	HeaderCache     = "X-Quadart-Cache"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Timeout)
	defer cancel()

	q := r.URL.Query()
	opts, err := s.parseOptions(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var input []byte
	if src := q.Get("url"); src != "" {
		opts.Source = src
		if err = errors.ValidateURL(src); err == nil {
			input, err = s.runner.Load(ctx, src)
		}
	} else {
		opts.Source = "upload"
		input, err = io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
		if err == nil && len(input) == 0 {
			err = errors.New(errors.ErrCodeInvalidInput, "request body is empty; send image bytes or pass ?url=")
		}
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(ctx, input, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", res.ContentType)
	h.Set("Content-Length", strconv.Itoa(len(res.Artifact)))
	h.Set(HeaderLeaves, strconv.Itoa(res.Leaves))
	h.Set(HeaderTruncated, strconv.FormatBool(res.Truncated))
	if res.CacheHit {
		h.Set(HeaderCache, "hit")
	} else {
		h.Set(HeaderCache, "miss")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(res.Artifact)
}

// parseOptions applies query parameters over the server defaults.
func (s *Server) parseOptions(q url.Values) (pipeline.Options, error) {
	opts := s.cfg.Defaults
	opts.Logger = nil

	ints := []struct {
		name string
		dst  *int
	}{
		{"max_depth", &opts.MaxDepth},
		{"size_threshold", &opts.SizeThreshold},
		{"max_leaves", &opts.MaxLeaves},
		{"max_side", &opts.MaxSide},
		{"tree_depth", &opts.TreeDepth},
	}
	for _, p := range ints {
		if v := q.Get(p.name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "%s must be an integer, got %q", p.name, v)
			}
			*p.dst = n
		}
	}
	if v := q.Get("color_threshold"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "color_threshold must be a number, got %q", v)
		}
		opts.ColorThreshold = f
	}
	if v := q.Get("metric"); v != "" {
		opts.Metric = v
	}
	if v := q.Get("format"); v != "" {
		opts.Format = v
	}
	if v := q.Get("outline"); v != "" {
		opts.Outline = v
		opts.NoOutline = false
	}
	for _, name := range []string{"no_outline", "refresh"} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "%s must be a boolean, got %q", name, v)
		}
		if name == "no_outline" {
			opts.NoOutline = b
		} else {
			opts.Refresh = b
		}
	}

	opts.SetDefaults()
	return opts, opts.Validate()
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := history.DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "limit must be a non-negative integer, got %q", v))
			return
		}
		limit = n
	}

	records := []history.Record{}
	if s.runner.History != nil {
		var err error
		records, err = s.runner.History.List(r.Context(), limit)
		if err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "list history"))
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": records})
}

type errorResponse struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, errors.ErrCodeTimeout) || stderrors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeInvalidSource:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
		if status == http.StatusRequestEntityTooLarge {
			code = errors.ErrCodeInvalidInput
		}
	}
	if status >= 500 {
		s.logger.Error("request failed", "id", RequestIDFromContext(r.Context()), "error", err)
	}
	writeJSON(w, status, errorResponse{
		Code:      code,
		Message:   errors.UserMessage(err),
		RequestID: RequestIDFromContext(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
