package workflow

import (
	"errors"

	"github.com/InQaaaaGit/shorten_form.git/internal/models"
)

// Тексты ошибок показываются пользователю как есть.
const (
	MsgConfigurationMissing = "Shortening service URL is not configured. Check SHORTENER_URL."
	MsgInputRequired        = "Please enter a URL to shorten."
	MsgInvalidURL           = "Please enter a valid URL (e.g., https://example.com)."
	MsgShortenFailed        = "Failed to shorten URL."
)

var (
	// ErrConfigurationMissing адрес сервиса сокращения не задан
	ErrConfigurationMissing = errors.New(MsgConfigurationMissing)
	// ErrInputRequired поле ввода пустое
	ErrInputRequired = errors.New(MsgInputRequired)
	// ErrInvalidURL ввод не является абсолютным URL
	ErrInvalidURL = errors.New(MsgInvalidURL)
	// ErrSubmitInFlight предыдущая отправка еще не завершилась
	ErrSubmitInFlight = errors.New("submission already in flight")
)

// FailureError ошибка предварительной проверки с видом ошибки.
type FailureError struct {
	Kind models.ErrorKind
	Err  error
}

func (e *FailureError) Error() string {
	return e.Err.Error()
}

func (e *FailureError) Unwrap() error {
	return e.Err
}

func newFailure(kind models.ErrorKind, err error) *FailureError {
	return &FailureError{Kind: kind, Err: err}
}
