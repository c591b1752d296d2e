package client

import "errors"

// Тексты неудачных результатов, которые видит пользователь.
const (
	MsgShortenFailed      = "Failed to shorten URL."
	MsgServiceUnreachable = "Could not reach the shortening service."
	MsgUnexpectedResponse = "Unexpected response from the shortening service."
	MsgNotConfigured      = "Shortening service URL is not configured."
)

var (
	// ErrNotConfigured адрес сервиса сокращения не задан
	ErrNotConfigured = errors.New("shortening service URL is not configured")
	// ErrUnhealthy сервис сокращения ответил на проверку не-2xx
	ErrUnhealthy = errors.New("shortening service is unhealthy")
)
