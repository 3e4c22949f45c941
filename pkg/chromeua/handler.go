package chromeua

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// maxUpdateBody limits the size of a registry update request.
const maxUpdateBody = 1 << 20

// Response is the JSON envelope written by the HTTP handler.
type Response struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type handlerConfig struct {
	allowUpdates bool
}

// HandlerOption configures NewHandler.
type HandlerOption func(*handlerConfig)

// WithUpdateRoute mounts PUT /registry, which applies a YAML or JSON body
// with UpdateRaw.
func WithUpdateRoute() HandlerOption {
	return func(c *handlerConfig) { c.allowUpdates = true }
}

// NewHandler exposes ua over HTTP:
//
//	GET /headers?platform=mac&chrome_version=137&os_version=...&header=Name:Value
//	GET /ua/{kind}        kind is chrome, mac, windows, latest or random
//	GET /versions
//	GET /platforms
//	GET /os-versions
//	PUT /registry         only with WithUpdateRoute
func NewHandler(ua *ChromeUA, opts ...HandlerOption) http.Handler {
	var cfg handlerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	h := &httpHandler{ua: ua}
	r := chi.NewRouter()
	r.Get("/headers", h.headers)
	r.Get("/ua/{kind}", h.userAgent)
	r.Get("/versions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Response{Data: ua.AvailableVersions()})
	})
	r.Get("/platforms", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Response{Data: ua.AvailablePlatforms()})
	})
	r.Get("/os-versions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Response{Data: ua.AvailableOSVersions()})
	})
	if cfg.allowUpdates {
		r.Put("/registry", h.update)
	}
	return r
}

type httpHandler struct {
	ua *ChromeUA
}

func (h *httpHandler) headers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var opts []QueryOption
	if q.Has("platform") {
		opts = append(opts, Platform(q.Get("platform")))
	}
	if q.Has("chrome_version") {
		opts = append(opts, ChromeVersion(q.Get("chrome_version")))
	}
	if q.Has("os_version") {
		opts = append(opts, OSVersion(q.Get("os_version")))
	}
	if values := q["header"]; len(values) > 0 {
		extra := make(map[string]string, len(values))
		for _, v := range values {
			name, value, ok := strings.Cut(v, ":")
			if !ok {
				writeError(w, newError(ErrValue, "Invalid header parameter %q, expected Name:Value", v))
				return
			}
			extra[strings.TrimSpace(name)] = strings.TrimSpace(value)
		}
		opts = append(opts, ExtraHeaders(extra))
	}

	headers, err := h.ua.GetHeaders(opts...)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{
		Data: headers,
		Meta: map[string]any{"revision": h.ua.Revision()},
	})
}

func (h *httpHandler) userAgent(w http.ResponseWriter, r *http.Request) {
	var pick func() (string, error)
	switch chi.URLParam(r, "kind") {
	case "chrome":
		pick = h.ua.Chrome
	case "mac":
		pick = h.ua.Mac
	case "windows":
		pick = h.ua.Windows
	case "latest":
		pick = h.ua.Latest
	case "random":
		pick = h.ua.Random
	default:
		writeJSON(w, http.StatusNotFound, Response{Error: &ErrorDetail{Code: "not_found", Message: "unknown user-agent kind"}})
		return
	}

	ua, err := pick()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Data: ua})
}

func (h *httpHandler) update(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUpdateBody))
	if err != nil {
		writeError(w, errors.Join(ErrReadData, err))
		return
	}
	d, err := ParseData(body)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.ua.UpdateRaw(d.Agents, d.SecUA); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{
		Data: map[string]any{"agents": h.ua.Len()},
		Meta: map[string]any{"revision": h.ua.Revision()},
	})
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps error kinds to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status, code := http.StatusInternalServerError, "internal_error"
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		status, code = http.StatusRequestEntityTooLarge, "too_large"
	case errors.Is(err, ErrIndex):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, ErrType), errors.Is(err, ErrKey):
		status, code = http.StatusUnprocessableEntity, "invalid_registry"
	case errors.Is(err, ErrValue), errors.Is(err, ErrReadData):
		status, code = http.StatusBadRequest, "bad_request"
	}
	writeJSON(w, status, Response{Error: &ErrorDetail{Code: code, Message: err.Error()}})
}
