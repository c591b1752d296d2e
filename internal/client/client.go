// Package client реализует обращение к внешнему сервису сокращения ссылок.
package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/InQaaaaGit/shorten_form.git/internal/models"
	"github.com/imroc/req/v3"
	"github.com/lithammer/shortuuid/v4"
	"go.uber.org/zap"
)

const (
	shortenPath = "/api/v1/shorten"
	healthPath  = "/_health"
	userAgent   = "shortform"

	headerRequestID = "X-Request-ID"
)

// Observer получает исход и длительность каждого вызова сервиса.
type Observer func(outcome string, elapsed time.Duration)

// Option настраивает Client.
type Option func(*Client)

// WithTimeout задает таймаут запроса. Ноль означает отсутствие таймаута.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// WithObserver подключает наблюдателя за вызовами.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observe = o
	}
}

// Client клиент сервиса сокращения ссылок.
type Client struct {
	baseURL string
	http    *req.Client
	logger  *zap.Logger
	observe Observer
}

// New создает клиент для сервиса с адресом baseURL.
// Пустой baseURL допустим: Configured вернет false.
func New(baseURL string, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
		observe: func(string, time.Duration) {},
	}
	c.http = req.C().
		SetTimeout(0).
		SetUserAgent(userAgent).
		SetCommonHeader("Content-Type", "application/json").
		SetLogger(logger.Sugar())

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured сообщает, задан ли адрес сервиса.
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

// Shorten выполняет один POST /api/v1/shorten. Ошибку не возвращает:
// любая неудача описывается результатом с видом KindService или KindTransport.
func (c *Client) Shorten(ctx context.Context, r models.ShortenRequest) (res models.ShortenResult) {
	requestID := shortuuid.New()
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			c.logger.Error("Shorten request panicked", zap.String("id", requestID), zap.Any("panic", p))
			res = models.ShortenFailure(models.KindTransport, MsgServiceUnreachable)
		}
		outcome := "success"
		if !res.Succeeded() {
			outcome = res.Kind.String()
		}
		c.observe(outcome, time.Since(start))
	}()

	if !c.Configured() {
		return models.ShortenFailure(models.KindConfiguration, MsgNotConfigured)
	}

	c.logger.Info("SendToShortener", zap.String("id", requestID), zap.String("long_url", r.LongURL))
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(headerRequestID, requestID).
		SetBody(&r).
		Post(c.baseURL + shortenPath)
	if err != nil {
		c.logger.Error("CannotSendToShortener", zap.String("id", requestID), zap.Error(err))
		return models.ShortenFailure(models.KindTransport, MsgServiceUnreachable)
	}

	status := resp.GetStatusCode()
	if !resp.IsSuccessState() {
		detail := MsgShortenFailed
		var errResp models.ErrorResponse
		if err := resp.Unmarshal(&errResp); err == nil && errResp.Error != "" {
			detail = errResp.Error
		}
		c.logger.Warn("ShortenerResultError", zap.String("id", requestID), zap.Int("code", status), zap.String("detail", detail))
		return models.ShortenFailure(models.KindService, detail)
	}

	var body models.ShortenResponse
	if err := resp.Unmarshal(&body); err != nil || body.ShortURL == "" {
		c.logger.Error("ShortenerResultUnparsable", zap.String("id", requestID), zap.Int("code", status), zap.Error(err))
		return models.ShortenFailure(models.KindTransport, MsgUnexpectedResponse)
	}

	c.logger.Info("ShortenUrl", zap.String("id", requestID), zap.Int("code", status), zap.String("short_url", body.ShortURL))
	return models.ShortenSuccess(body.ShortURL)
}

// Health проверяет доступность сервиса через GET /_health.
func (c *Client) Health(ctx context.Context) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(headerRequestID, shortuuid.New()).
		Get(c.baseURL + healthPath)
	if err != nil {
		return fmt.Errorf("health request: %w", err)
	}
	if !resp.IsSuccessState() {
		var health models.HealthResponse
		_ = resp.Unmarshal(&health)
		return fmt.Errorf("%w: status %d %s", ErrUnhealthy, resp.GetStatusCode(), health.Error)
	}
	return nil
}
