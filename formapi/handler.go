// Package formapi serves field descriptors and default instances over HTTP.
package formapi

import (
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	xsdform "github.com/reoring/xsdform"
	"github.com/reoring/xsdform/descriptor"
	"github.com/reoring/xsdform/document"
	"github.com/reoring/xsdform/outcome"
	"github.com/reoring/xsdform/schema"
)

// maxBody bounds uploaded documents.
const maxBody = 4 << 20

// Handler serves one schema set. Attribute lists are compiled once per type
// and cloned for every request.
type Handler struct {
	set    *schema.Set
	opts   outcome.Options
	logger zerolog.Logger

	mu    sync.Mutex
	lists map[string]*outcome.AttributeList
}

// NewHandler creates a handler for set.
func NewHandler(set *schema.Set, opts outcome.Options, logger zerolog.Logger) *Handler {
	if opts.Logger == nil {
		opts.Logger = &logger
	}
	return &Handler{
		set:    set,
		opts:   opts,
		logger: logger,
		lists:  map[string]*outcome.AttributeList{},
	}
}

// Router returns the HTTP routes.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(NewLoggingMiddleware(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/types", h.ListTypes)
	r.Get("/types/{name}/descriptors", h.Descriptors)
	r.Get("/types/{name}/instance", h.Instance)
	r.Post("/types/{name}/check", h.Check)
	return r
}

// attributeList returns a fresh per-request list for the named type.
func (h *Handler) attributeList(name string) (*outcome.AttributeList, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if l, ok := h.lists[name]; ok {
		return l.Clone(), true
	}
	ct, ok := h.set.ComplexType(name)
	if !ok {
		return nil, false
	}
	l := outcome.NewAttributeList(ct, h.opts)
	h.lists[name] = l
	return l.Clone(), true
}

// ListTypes returns the complex type names of the schema.
func (h *Handler) ListTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"types": h.set.ComplexTypeNames()})
}

// Descriptors returns the control descriptors of a type's attributes. Query
// parameters named after attributes become the presented values.
func (h *Handler) Descriptors(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	l, ok := h.attributeList(name)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_type", "no complex type "+name)
		return
	}
	inputs := map[string]any{}
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			inputs[k] = v[0]
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"type": name, "fields": l.Descriptors(inputs)})
}

// Instance returns a new element of the type with default attributes.
func (h *Handler) Instance(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	l, ok := h.attributeList(name)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_type", "no complex type "+name)
		return
	}
	root := r.URL.Query().Get("root")
	if root == "" {
		root = name
	}
	doc := document.New(root)
	l.CreateDefaults(doc, doc.Root())
	l.PruneOptionalEmpties()
	out, err := doc.Marshal()
	if err != nil {
		h.logger.Error().Err(err).Str("type", name).Msg("marshal instance")
		writeError(w, http.StatusInternalServerError, "internal", "cannot render instance")
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// Check validates the attributes of the posted document's root element
// against the type.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	l, ok := h.attributeList(name)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_type", "no complex type "+name)
		return
	}
	doc, err := document.ReadFrom(io.LimitReader(r.Body, maxBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_document", err.Error())
		return
	}
	if err := l.Populate(doc, doc.Root()); err != nil {
		status := http.StatusInternalServerError
		if xsdform.IsStructural(err) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, xsdform.CodeStructural, err.Error())
		return
	}
	iss, _ := xsdform.AsIssues(l.Validate())
	writeJSON(w, http.StatusOK, map[string]any{"valid": len(iss) == 0, "issues": issueBodies(iss)})
}

type issueBody struct {
	Path    string         `json:"path"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Params  map[string]any `json:"params,omitempty"`
}

func issueBodies(iss xsdform.Issues) []issueBody {
	out := make([]issueBody, 0, len(iss))
	for _, it := range iss {
		out = append(out, issueBody{Path: it.Path, Code: it.Code, Message: it.Message, Params: it.Params})
	}
	return out
}

// NewLoggingMiddleware logs HTTP requests.
func NewLoggingMiddleware(logger zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("http request")
		})
	}
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := descriptor.MarshalIndent(v)
	if err != nil {
		status = http.StatusInternalServerError
		b, _ = json.Marshal(errorBody{Code: "internal", Message: err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]any{"error": errorBody{Code: code, Message: msg}})
}
