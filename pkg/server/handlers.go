package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/panelview/pkg/buildinfo"
	"github.com/matzehuels/panelview/pkg/cache"
	perrors "github.com/matzehuels/panelview/pkg/errors"
	"github.com/matzehuels/panelview/pkg/pipeline"
	"github.com/matzehuels/panelview/pkg/preview/sink"
	"github.com/matzehuels/panelview/pkg/state"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), body, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set("X-Cache", cacheStatus(res.CacheInfo.RenderHit))
	w.Header().Set("X-Holes-Clamped", strconv.Itoa(res.Stats.ClampedCount))
	writeArtifact(w, r, pipeline.ContentTypes[format], res.Artifacts[format])
}

// handleLegacy serves callers that expect a document for every request,
// with decode failures rendered into the document itself.
func (s *Server) handleLegacy(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeArtifact(w, r, pipeline.ContentTypes[pipeline.FormatSVG], sink.RenderErrorSVG(err))
		return
	}

	opts := s.opts.Defaults
	opts.Formats = []string{pipeline.FormatSVG}
	opts.Strict = false
	opts.Logger = s.requestLogger(r)

	res, err := s.runner.Execute(r.Context(), body, opts)
	var decodeErr *state.DecodeError
	switch {
	case err == nil:
		writeArtifact(w, r, pipeline.ContentTypes[pipeline.FormatSVG], res.Artifacts[pipeline.FormatSVG])
	case errors.As(err, &decodeErr):
		writeArtifact(w, r, pipeline.ContentTypes[pipeline.FormatSVG], sink.RenderErrorSVG(decodeErr))
	default:
		s.writeError(w, r, err)
	}
}

// requestOptions applies query parameters on top of the server defaults.
func (s *Server) requestOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.opts.Defaults
	opts.Logger = s.requestLogger(r)
	q := r.URL.Query()

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return opts, err
	}
	opts.Formats = []string{format}

	for name, dst := range map[string]*bool{"legacy_clamp": &opts.LegacyClamp, "strict": &opts.Strict} {
		if v := q.Get(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return opts, perrors.New(perrors.ErrCodeInvalidInput, "%s: %q is not a boolean", name, v)
			}
			*dst = b
		}
	}

	if v := q.Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, perrors.New(perrors.ErrCodeInvalidInput, "scale: %q is not a number", v)
		}
		opts.PNGScale = f
	}
	return opts, nil
}

func (s *Server) requestLogger(r *http.Request) *log.Logger {
	return s.logger.With("request_id", RequestID(r.Context()))
}

// writeArtifact sends data with a content ETag, or 304 when the client
// already holds it.
func writeArtifact(w http.ResponseWriter, r *http.Request, contentType string, data []byte) {
	etag := `"` + cache.Hash(data) + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")

	if etagMatch(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// etagMatch implements the weak comparison used by If-None-Match.
func etagMatch(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

type errorBody struct {
	Error     errorDetail `json:"error"`
	RequestID string      `json:"request_id,omitempty"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := string(perrors.GetCode(err))
	if code == "" {
		code = string(perrors.ErrCodeInternal)
	}
	msg := perrors.UserMessage(err)
	if status == http.StatusRequestEntityTooLarge {
		code, msg = string(perrors.ErrCodeInvalidInput), "request body too large"
	}

	if status >= 500 {
		s.requestLogger(r).Error("request failed", "err", err)
	} else {
		s.requestLogger(r).Debug("request rejected", "status", status, "err", err)
	}

	writeJSON(w, status, errorBody{
		Error:     errorDetail{Code: code, Message: msg},
		RequestID: RequestID(r.Context()),
	})
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case perrors.IsInvalid(err):
		return http.StatusBadRequest
	}
	switch perrors.GetCode(err) {
	case perrors.ErrCodeNotFound, perrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case perrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
