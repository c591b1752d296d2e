package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/InQaaaaGit/shorten_form.git/internal/client"
	"github.com/InQaaaaGit/shorten_form.git/internal/handler"
	"github.com/InQaaaaGit/shorten_form.git/internal/middleware"
	"github.com/InQaaaaGit/shorten_form.git/internal/session"
	"github.com/InQaaaaGit/shorten_form.git/internal/workflow"
	"go.uber.org/zap"
)

// ExampleHandler_HandleSubmit демонстрирует отправку формы через JSON API.
func ExampleHandler_HandleSubmit() {
	// Поддельный сервис сокращения
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"short_url": "http://sho.rt/Ab3dE6gH"}`)
	}))
	defer backend.Close()

	logger := zap.NewNop()
	c := client.New(backend.URL, logger)
	views := session.NewStore(func() *workflow.Workflow {
		return workflow.New(c, c.Configured(), logger)
	}, 0, logger)
	h := handler.NewHandler(views, c, logger)

	// Идентификатор представления обычно кладет middleware.Session
	withView := func(r *http.Request) *http.Request {
		return r.WithContext(context.WithValue(r.Context(), middleware.ViewIDKey, "example-view"))
	}

	edit := httptest.NewRecorder()
	h.HandleEditInput(edit, withView(httptest.NewRequest(http.MethodPut, "/api/form/input",
		strings.NewReader(`{"long_url": "https://practicum.yandex.ru/"}`))))

	submit := httptest.NewRecorder()
	h.HandleSubmit(submit, withView(httptest.NewRequest(http.MethodPost, "/api/form/submit", nil)))

	fmt.Printf("Status: %d\n", submit.Code)
	fmt.Print(submit.Body.String())

	// Output:
	// Status: 200
	// {"long_url":"","short_url":"http://sho.rt/Ab3dE6gH","is_submitting":false,"state":"succeeded"}
}

// ExampleHandler_HandleSubmit_validation демонстрирует ошибку проверки ввода без обращения к сервису.
func ExampleHandler_HandleSubmit_validation() {
	logger := zap.NewNop()
	c := client.New("http://127.0.0.1:1", logger)
	views := session.NewStore(func() *workflow.Workflow {
		return workflow.New(c, c.Configured(), logger)
	}, 0, logger)
	h := handler.NewHandler(views, c, logger)

	req := httptest.NewRequest(http.MethodPost, "/api/form/submit", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.ViewIDKey, "example-view"))
	rr := httptest.NewRecorder()
	h.HandleSubmit(rr, req)

	fmt.Print(rr.Body.String())

	// Output:
	// {"long_url":"","error":"Please enter a URL to shorten.","error_kind":"validation","is_submitting":false,"state":"failed"}
}
