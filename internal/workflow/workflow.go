package workflow

import (
	"context"
	"errors"
	"sync"

	"github.com/InQaaaaGit/shorten_form.git/internal/models"
	"go.uber.org/zap"
)

// Shortener выполняет один обмен запрос-ответ с сервисом сокращения.
// Никогда не возвращает ошибку: неудача описывается результатом.
type Shortener interface {
	Shorten(ctx context.Context, req models.ShortenRequest) models.ShortenResult
}

// Workflow владеет состоянием формы одного представления.
// Одновременно выполняется не больше одного сетевого вызова.
type Workflow struct {
	mu         sync.Mutex
	state      FormState
	closed     bool
	shortener  Shortener
	configured bool
	logger     *zap.Logger
}

// New создает процесс в начальном состоянии PhaseIdle.
// configured сообщает, задан ли адрес сервиса сокращения.
func New(shortener Shortener, configured bool, logger *zap.Logger) *Workflow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workflow{
		shortener:  shortener,
		configured: configured,
		logger:     logger,
	}
}

// State возвращает копию текущего состояния.
func (w *Workflow) State() FormState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Edit обновляет поле ввода и возвращает новое состояние.
func (w *Workflow) Edit(input string) FormState {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = Edit(w.state, input)
	return w.state
}

// Submit выполняет попытку отправки и возвращает итоговое состояние.
//
// Ошибки предварительных проверок возвращаются как *FailureError, повторная
// отправка во время выполняющейся возвращает ErrSubmitInFlight и ничего не
// меняет. Ошибки сервиса и транспорта ошибкой не считаются: они отражаются
// в состоянии формы.
func (w *Workflow) Submit(ctx context.Context) (FormState, error) {
	w.mu.Lock()
	next, req, err := Begin(w.state, w.configured)
	if errors.Is(err, ErrSubmitInFlight) {
		w.mu.Unlock()
		w.logger.Debug("Submit ignored, request in flight")
		return next, err
	}
	w.state = next
	if err != nil {
		w.mu.Unlock()
		w.logger.Info("Submission rejected",
			zap.String("kind", next.Failure.String()),
			zap.String("message", next.ErrorMessage))
		return next, err
	}
	w.mu.Unlock()

	w.logger.Info("Submitting URL", zap.String("long_url", req.LongURL))
	res := w.shortener.Shorten(ctx, *req)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		w.logger.Debug("View closed, dropping shorten result")
		return Resolve(next, res), nil
	}
	w.state = Resolve(w.state, res)
	if w.state.Phase == PhaseFailed {
		w.logger.Info("Shortening failed",
			zap.String("kind", w.state.Failure.String()),
			zap.String("message", w.state.ErrorMessage))
	} else {
		w.logger.Info("URL shortened", zap.String("short_url", w.state.ShortURLResult))
	}
	return w.state, nil
}

// Close отсоединяет процесс от представления. Результат незавершенного
// запроса после этого отбрасывается.
func (w *Workflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
}

// Closed сообщает, закрыт ли процесс.
func (w *Workflow) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}
