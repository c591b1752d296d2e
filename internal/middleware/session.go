package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/InQaaaaGit/shorten_form.git/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// contextKey используется как ключ для значений в контексте
type contextKey string

const (
	// ViewIDKey ключ идентификатора представления в контексте
	ViewIDKey contextKey = "view_id"
	// CookieName имя cookie представления
	CookieName = "form_session"

	tokenTTL = 24 * time.Hour
)

// ErrNoView в контексте запроса нет идентификатора представления
var ErrNoView = errors.New("view id is missing from request context")

// Session выдает и проверяет подписанную cookie представления формы.
type Session struct {
	secret []byte
	secure bool
	logger *zap.Logger
}

// NewSession создает middleware представлений. secure включает флаг Secure
// у cookie и должен быть true только при работе по HTTPS.
func NewSession(secret string, secure bool, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		secret: []byte(secret),
		secure: secure,
		logger: logger,
	}
}

// Handler кладет идентификатор представления в контекст, при необходимости
// выдавая новую cookie.
func (s *Session) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(CookieName); err == nil {
			viewID, err := s.parse(cookie.Value)
			if err == nil {
				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ViewIDKey, viewID)))
				return
			}
			s.logger.Debug("Invalid view cookie, issuing a new one", zap.Error(err))
		}

		viewID := uuid.NewString()
		token, err := s.sign(viewID)
		if err != nil {
			s.logger.Error("Cannot sign view cookie", zap.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    token,
			Path:     "/",
			Expires:  time.Now().Add(tokenTTL),
			HttpOnly: true,
			Secure:   s.secure,
			SameSite: http.SameSiteLaxMode,
		})
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ViewIDKey, viewID)))
	})
}

// ViewIDFromContext возвращает идентификатор представления из контекста.
func ViewIDFromContext(ctx context.Context) (string, error) {
	viewID, ok := ctx.Value(ViewIDKey).(string)
	if !ok || viewID == "" {
		return "", ErrNoView
	}
	return viewID, nil
}

func (s *Session) sign(viewID string) (string, error) {
	now := time.Now()
	claims := &models.ViewClaims{
		ViewID: viewID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Session) parse(value string) (string, error) {
	claims := &models.ViewClaims{}
	token, err := jwt.ParseWithClaims(value, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.ViewID == "" {
		return "", errors.New("invalid view token")
	}
	return claims.ViewID, nil
}
