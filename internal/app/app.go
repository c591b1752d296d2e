// Package app содержит основную структуру приложения и логику инициализации.
// Предоставляет точку входа для запуска HTTP сервера с настроенными маршрутами и middleware.
package app

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/InQaaaaGit/shorten_form.git/internal/client"
	"github.com/InQaaaaGit/shorten_form.git/internal/config"
	"github.com/InQaaaaGit/shorten_form.git/internal/handler"
	"github.com/InQaaaaGit/shorten_form.git/internal/metrics"
	"github.com/InQaaaaGit/shorten_form.git/internal/middleware"
	"github.com/InQaaaaGit/shorten_form.git/internal/server"
	"github.com/InQaaaaGit/shorten_form.git/internal/session"
	"github.com/InQaaaaGit/shorten_form.git/internal/workflow"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const compressLevel = 5

// App представляет сервис формы сокращения ссылок.
// Инкапсулирует конфигурацию, HTTP роутер, логгер, клиента сервиса и реестр представлений.
type App struct {
	config  *config.Config
	router  *chi.Mux
	logger  *zap.Logger
	handler *handler.Handler
	client  *client.Client
	views   *session.Store
	metrics *metrics.Metrics
	session *middleware.Session
}

// NewApp создает и инициализирует новый экземпляр приложения.
//
// Параметры:
//   - cfg: конфигурация приложения
//   - logger: логгер приложения
func NewApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	m := metrics.New()

	c := client.New(cfg.ShortenerURL, logger.Named("client"),
		client.WithTimeout(cfg.RequestTimeout),
		client.WithObserver(m.ObserveShorten))
	configured := cfg.IsShortenerConfigured()
	if !configured {
		logger.Warn("Shortening service URL is not configured, every submission will fail")
	}

	wfLogger := logger.Named("workflow")
	views := session.NewStore(func() *workflow.Workflow {
		return workflow.New(c, configured, wfLogger)
	}, cfg.SessionTTL, logger.Named("session"), session.WithHooks(session.Hooks{
		Mounted:   m.ViewMounted,
		Unmounted: m.ViewUnmounted,
	}))

	a := &App{
		config:  cfg,
		router:  chi.NewRouter(),
		logger:  logger,
		handler: handler.NewHandler(views, c, logger, handler.WithSubmissionRecorder(m.Submission)),
		client:  c,
		views:   views,
		metrics: m,
		session: middleware.NewSession(cfg.SessionSecret, cfg.IsHTTPSEnabled(), logger),
	}
	a.setupRoutes()
	return a, nil
}

// setupRoutes настраивает HTTP маршруты и middleware для приложения.
func (a *App) setupRoutes() {
	a.router.Use(chimiddleware.RequestID)
	a.router.Use(chimiddleware.Recoverer)
	a.router.Use(a.metrics.Middleware)
	a.router.Use(chimiddleware.Compress(compressLevel))

	// Форма и ее JSON API работают в рамках представления
	a.router.Group(func(r chi.Router) {
		r.Use(a.session.Handler)
		r.Use(middleware.LoggerMiddleware(a.logger))
		r.Use(middleware.DecompressRequest(a.logger))

		r.Get("/", a.handler.HandleForm)
		r.Post("/", a.handler.HandleFormPost)

		r.Route("/api/form", func(r chi.Router) {
			r.Get("/", a.handler.HandleGetForm)
			r.Delete("/", a.handler.HandleDeleteForm)
			r.Put("/input", a.handler.HandleEditInput)
			r.Post("/submit", a.handler.HandleSubmit)
		})
	})

	a.router.Group(func(r chi.Router) {
		r.Use(middleware.LoggerMiddleware(a.logger))

		r.Get("/ping", a.handler.HandlePing)
		r.Method(http.MethodGet, "/metrics", a.metrics.Handler())
		// Профилирование
		r.Mount("/debug", chimiddleware.Profiler())
	})
}

// Router возвращает HTTP обработчик приложения.
func (a *App) Router() http.Handler {
	return a.router
}

// GetServer создает и возвращает настроенный HTTP сервер.
// Если таймаут запроса к сервису сокращения не задан, таймаут записи ответа тоже не ограничен.
func (a *App) GetServer() *http.Server {
	var writeTimeout time.Duration
	if a.config.RequestTimeout > 0 {
		writeTimeout = a.config.RequestTimeout + 10*time.Second
	}
	return &http.Server{
		Addr:              a.config.ServerAddress,
		Handler:           a.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       120 * time.Second,
	}
}

// Run запускает сервер и очистку представлений. Блокирует до отмены ctx
// и завершения сервера.
func (a *App) Run(ctx context.Context) error {
	go a.views.Run(ctx)
	return server.NewHTTPServer(a.GetServer(), a.config, a.logger).Run(ctx)
}

// RunListener то же, что Run, но на готовом ln.
func (a *App) RunListener(ctx context.Context, ln net.Listener) error {
	go a.views.Run(ctx)
	return server.NewHTTPServer(a.GetServer(), a.config, a.logger).RunListener(ctx, ln)
}
