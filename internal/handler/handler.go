// Package handler содержит HTTP-обработчики формы сокращения ссылок.
package handler

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/InQaaaaGit/shorten_form.git/internal/middleware"
	"github.com/InQaaaaGit/shorten_form.git/internal/models"
	"github.com/InQaaaaGit/shorten_form.git/internal/workflow"
	"go.uber.org/zap"
)

const (
	contentTypeJSON = "application/json"
	contentTypeHTML = "text/html; charset=utf-8"

	outcomeSuccess  = "success"
	outcomeInFlight = "in_flight"
)

//go:embed templates/index.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// Views выдает процессы отправки по идентификатору представления
type Views interface {
	Get(id string) *workflow.Workflow
	Remove(id string) bool
}

// HealthChecker проверяет доступность сервиса сокращения
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Option настраивает Handler
type Option func(*Handler)

// WithSubmissionRecorder подключает учет исходов отправки.
func WithSubmissionRecorder(record func(outcome string)) Option {
	return func(h *Handler) {
		h.recordSubmission = record
	}
}

type Handler struct {
	views            Views
	health           HealthChecker
	logger           *zap.Logger
	recordSubmission func(outcome string)
}

func NewHandler(views Views, health HealthChecker, logger *zap.Logger, opts ...Option) *Handler {
	h := &Handler{
		views:            views,
		health:           health,
		logger:           logger,
		recordSubmission: func(string) {},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleForm отображает форму текущего представления
func (h *Handler) HandleForm(w http.ResponseWriter, r *http.Request) {
	wf, ok := h.workflow(w, r)
	if !ok {
		return
	}

	view := newFormView(wf.State())
	w.Header().Set("Content-Type", contentTypeHTML)
	w.Header().Set("Cache-Control", "no-store")
	if err := pageTemplate.Execute(w, view); err != nil {
		h.logger.Error("Error rendering form", zap.Error(err))
	}
}

// HandleFormPost принимает отправку HTML-формы и перенаправляет на GET /
func (h *Handler) HandleFormPost(w http.ResponseWriter, r *http.Request) {
	wf, ok := h.workflow(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error reading form", http.StatusBadRequest)
		return
	}

	wf.Edit(r.PostForm.Get("long_url"))
	if _, err := h.submit(r, wf); err != nil {
		// ошибка уже отражена в состоянии формы
		h.logger.Debug("Form submission not sent", zap.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleGetForm возвращает состояние формы в JSON
func (h *Handler) HandleGetForm(w http.ResponseWriter, r *http.Request) {
	wf, ok := h.workflow(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, newFormView(wf.State()))
}

// HandleEditInput обновляет поле ввода. Во время отправки отвечает 409.
func (h *Handler) HandleEditInput(w http.ResponseWriter, r *http.Request) {
	wf, ok := h.workflow(w, r)
	if !ok {
		return
	}

	var req models.InputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Info("Cannot decode input request", zap.Error(err))
		h.writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	state := wf.Edit(req.LongURL)
	status := http.StatusOK
	if state.IsSubmitting {
		status = http.StatusConflict
	}
	h.writeJSON(w, status, newFormView(state))
}

// HandleSubmit выполняет отправку формы. Если отправка уже выполняется, отвечает 409.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	wf, ok := h.workflow(w, r)
	if !ok {
		return
	}

	state, err := h.submit(r, wf)
	status := http.StatusOK
	if errors.Is(err, workflow.ErrSubmitInFlight) {
		status = http.StatusConflict
	}
	h.writeJSON(w, status, newFormView(state))
}

// HandleDeleteForm закрывает представление
func (h *Handler) HandleDeleteForm(w http.ResponseWriter, r *http.Request) {
	viewID, err := middleware.ViewIDFromContext(r.Context())
	if err != nil {
		h.logger.Error("Request without view", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.views.Remove(viewID)
	w.WriteHeader(http.StatusNoContent)
}

// submit выполняет отправку. Вызов к сервису не отменяется при разрыве
// соединения клиентом.
func (h *Handler) submit(r *http.Request, wf *workflow.Workflow) (workflow.FormState, error) {
	state, err := wf.Submit(context.WithoutCancel(r.Context()))
	if wf.Closed() {
		h.logger.Info("View closed during submission, result dropped",
			zap.String("state", state.Phase.String()))
	}

	switch {
	case errors.Is(err, workflow.ErrSubmitInFlight):
		h.recordSubmission(outcomeInFlight)
	case state.Phase == workflow.PhaseSucceeded:
		h.recordSubmission(outcomeSuccess)
	default:
		h.recordSubmission(state.Failure.String())
	}
	return state, err
}

func (h *Handler) workflow(w http.ResponseWriter, r *http.Request) (*workflow.Workflow, bool) {
	viewID, err := middleware.ViewIDFromContext(r.Context())
	if err != nil {
		h.logger.Error("Request without view", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return nil, false
	}
	return h.views.Get(viewID), true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Error encoding response", zap.Error(err))
	}
}

func newFormView(s workflow.FormState) models.FormView {
	view := models.FormView{
		LongURL:      s.LongURLInput,
		ShortURL:     s.ShortURLResult,
		Error:        s.ErrorMessage,
		IsSubmitting: s.IsSubmitting,
		State:        s.Phase.String(),
	}
	if s.Failure != models.KindNone {
		view.ErrorKind = s.Failure.String()
	}
	return view
}
