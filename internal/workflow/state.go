// Package workflow реализует процесс отправки формы сокращения ссылки:
// состояние формы, чистые функции переходов и границу с сетевым вызовом.
//
// Поля FormState меняются только функциями этого пакета. Остальной код
// получает копии состояния и читает их.
package workflow

import (
	"github.com/InQaaaaGit/shorten_form.git/internal/models"
	"github.com/InQaaaaGit/shorten_form.git/internal/validator"
)

// Phase фаза попытки отправки.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// FormState состояние формы одного представления.
// Не больше одного из ShortURLResult и ErrorMessage непусто.
// IsSubmitting истинно только в фазе PhaseSubmitting.
type FormState struct {
	LongURLInput   string
	ShortURLResult string
	ErrorMessage   string
	IsSubmitting   bool
	Phase          Phase
	Failure        models.ErrorKind
}

// Edit обновляет поле ввода. Результат и ошибка прошлой попытки
// остаются видимыми до следующей отправки. Во время отправки ввод не меняется.
func Edit(s FormState, input string) FormState {
	if s.IsSubmitting {
		return s
	}
	s.LongURLInput = input
	return s
}

// Begin начинает попытку отправки. Проверки выполняются по порядку, первая
// неудачная переводит форму в PhaseFailed без входа в PhaseSubmitting.
// При успехе возвращает запрос для клиента сокращения.
func Begin(s FormState, serviceConfigured bool) (FormState, *models.ShortenRequest, error) {
	if s.IsSubmitting {
		return s, nil, ErrSubmitInFlight
	}

	s.ErrorMessage = ""
	s.ShortURLResult = ""
	s.Failure = models.KindNone

	switch {
	case !serviceConfigured:
		return fail(s, newFailure(models.KindConfiguration, ErrConfigurationMissing))
	case s.LongURLInput == "":
		return fail(s, newFailure(models.KindValidation, ErrInputRequired))
	case !validator.IsValidURL(s.LongURLInput):
		return fail(s, newFailure(models.KindValidation, ErrInvalidURL))
	}

	s.IsSubmitting = true
	s.Phase = PhaseSubmitting
	return s, &models.ShortenRequest{LongURL: s.LongURLInput}, nil
}

func fail(s FormState, err *FailureError) (FormState, *models.ShortenRequest, error) {
	s.ErrorMessage = err.Error()
	s.Failure = err.Kind
	s.Phase = PhaseFailed
	return s, nil, err
}

// Resolve применяет результат клиента сокращения. Вне фазы отправки ничего не делает.
func Resolve(s FormState, res models.ShortenResult) FormState {
	if !s.IsSubmitting {
		return s
	}
	s.IsSubmitting = false

	if res.Succeeded() {
		s.ShortURLResult = res.ShortURL
		s.ErrorMessage = ""
		s.LongURLInput = ""
		s.Failure = models.KindNone
		s.Phase = PhaseSucceeded
		return s
	}

	s.ShortURLResult = ""
	s.ErrorMessage = res.ErrorDetail
	if s.ErrorMessage == "" {
		s.ErrorMessage = MsgShortenFailed
	}
	s.Failure = res.Kind
	if s.Failure == models.KindNone {
		s.Failure = models.KindService
	}
	s.Phase = PhaseFailed
	return s
}
