// Package models содержит структуры обмена с сервисом сокращения ссылок
// и результат одной попытки сокращения.
package models

// ShortenRequest тело запроса POST /api/v1/shorten.
type ShortenRequest struct {
	LongURL string `json:"long_url"`
}

// ShortenResponse успешный ответ сервиса сокращения.
type ShortenResponse struct {
	ShortURL  string `json:"short_url"`
	ShortCode string `json:"short_code,omitempty"`
}

// ErrorResponse структурированная ошибка сервиса сокращения.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse ответ GET /_health.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
