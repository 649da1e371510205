package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"maps"
	"net/http"

	"github.com/aretw0/bombrisk"
	"github.com/aretw0/bombrisk/internal/logging"
	"github.com/aretw0/bombrisk/pkg/domain"
	"github.com/aretw0/bombrisk/pkg/ports"
	"github.com/aretw0/bombrisk/pkg/session"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server exposes widgets held by a session.Manager as a JSON API.
type Server struct {
	manager    *session.Manager
	treatments ports.TreatmentLoader
	metrics    http.Handler
	logger     *slog.Logger
	doc        *openapi3.T
}

// Option configures the Server.
type Option func(*Server)

// WithTreatments lets create requests name a treatment preset.
func WithTreatments(loader ports.TreatmentLoader) Option {
	return func(s *Server) { s.treatments = loader }
}

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// WithLogger configures request logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WidgetResponse is the JSON shape returned for a widget.
type WidgetResponse struct {
	ID     string        `json:"id"`
	View   domain.View   `json:"view"`
	Values domain.Values `json:"values"`
}

// CommitResponse pairs a commit result with the widget it applied to.
type CommitResponse struct {
	Result domain.CommitResult `json:"result"`
	Widget WidgetResponse      `json:"widget"`
}

type createRequest struct {
	Treatment string         `json:"treatment"`
	Options   map[string]any `json:"options"`
}

type selectionRequest struct {
	Selection int `json:"selection"`
}

type choiceRequest struct {
	Row    int           `json:"row"`
	Choice domain.Choice `json:"choice"`
}

// NewHandler builds the router. The embedded OpenAPI document is validated
// once here and then used to check request bodies.
func NewHandler(ctx context.Context, manager *session.Manager, opts ...Option) (http.Handler, error) {
	doc, err := LoadSpec(ctx)
	if err != nil {
		return nil, err
	}
	s := &Server{manager: manager, doc: doc, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(rawSpec)
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Get("/methods", s.listMethods)
	r.Route("/widgets", func(r chi.Router) {
		r.Get("/", s.listWidgets)
		r.With(validateBody(doc, "CreateWidgetRequest")).Post("/", s.createWidget)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getWidget)
			r.Delete("/", s.deleteWidget)
			r.With(validateBody(doc, "SelectionRequest")).Put("/selection", s.selectBoxes)
			r.With(validateBody(doc, "ChoiceRequest")).Put("/choices", s.chooseRow)
			r.Post("/commit", s.commit)
			r.Get("/values", s.getValues)
			r.With(validateBody(doc, "ValuesRequest")).Post("/values", s.setValues)
			r.Post("/signals/{signal}", s.signal)
		})
	})
	return r, nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", ww.Status())
	})
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status, body := classify(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeError(w, status, body)
}

func (s *Server) listMethods(w http.ResponseWriter, r *http.Request) {
	names, err := s.manager.Methods()
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"methods": names})
}

func (s *Server) listWidgets(w http.ResponseWriter, r *http.Request) {
	ids, err := s.manager.List(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"widgets": ids})
}

func (s *Server) createWidget(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errorBody{Category: "request", Message: err.Error()})
		return
	}

	options, err := s.resolveOptions(r.Context(), req)
	if err != nil {
		s.fail(w, err)
		return
	}
	id, widget, err := s.manager.Create(r.Context(), options)
	if err != nil {
		s.fail(w, err)
		return
	}
	resp, err := describe(id, widget)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// resolveOptions overlays request options on the named treatment's options.
func (s *Server) resolveOptions(ctx context.Context, req createRequest) (map[string]any, error) {
	options := map[string]any{}
	if req.Treatment != "" {
		if s.treatments == nil {
			return nil, &domain.ConfigError{Field: "treatment", Reason: "no treatment catalogue configured", Value: req.Treatment}
		}
		t, err := s.treatments.Get(ctx, req.Treatment)
		if err != nil {
			return nil, err
		}
		maps.Copy(options, t.Options)
	}
	maps.Copy(options, req.Options)
	return options, nil
}

func (s *Server) getWidget(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	widget, err := s.manager.Get(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respond(w, id, widget)
}

func (s *Server) deleteWidget(w http.ResponseWriter, r *http.Request) {
	if err := s.manager.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) selectBoxes(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errorBody{Category: "request", Message: err.Error()})
		return
	}
	s.update(w, r, func(widget *bombrisk.Widget) error {
		return widget.Select(req.Selection)
	})
}

func (s *Server) chooseRow(w http.ResponseWriter, r *http.Request) {
	var req choiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errorBody{Category: "request", Message: err.Error()})
		return
	}
	s.update(w, r, func(widget *bombrisk.Widget) error {
		return widget.Choose(req.Row, req.Choice)
	})
}

func (s *Server) commit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var result domain.CommitResult
	widget, err := s.manager.Update(r.Context(), id, func(widget *bombrisk.Widget) error {
		var err error
		result, err = widget.Commit()
		return err
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	resp, err := describe(id, widget)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CommitResponse{Result: result, Widget: resp})
}

func (s *Server) getValues(w http.ResponseWriter, r *http.Request) {
	widget, err := s.manager.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	values, err := widget.Values()
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, values)
}

func (s *Server) setValues(w http.ResponseWriter, r *http.Request) {
	var req domain.Response
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errorBody{Category: "request", Message: err.Error()})
		return
	}
	s.update(w, r, func(widget *bombrisk.Widget) error {
		return widget.SetValues(req)
	})
}

func (s *Server) signal(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "signal")
	if name == bombrisk.SignalDestroyed {
		writeError(w, http.StatusBadRequest, errorBody{Category: "request", Message: "use DELETE to destroy a widget"})
		return
	}
	s.update(w, r, func(widget *bombrisk.Widget) error {
		return widget.Signal(name)
	})
}

func (s *Server) update(w http.ResponseWriter, r *http.Request, fn func(*bombrisk.Widget) error) {
	id := chi.URLParam(r, "id")
	widget, err := s.manager.Update(r.Context(), id, fn)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respond(w, id, widget)
}

func (s *Server) respond(w http.ResponseWriter, id string, widget *bombrisk.Widget) {
	resp, err := describe(id, widget)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func describe(id string, widget *bombrisk.Widget) (WidgetResponse, error) {
	view, err := widget.View()
	if err != nil {
		return WidgetResponse{}, err
	}
	values, err := widget.Values()
	if err != nil {
		return WidgetResponse{}, err
	}
	return WidgetResponse{ID: id, View: view, Values: values}, nil
}
