package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const (
	CookieName   = "session_token"
	cookieMaxAge = 24 * 60 * 60 // сутки
)

type ctxKey struct{}

// Sessions выдаёт и проверяет подписанные идентификаторы сессий интерфейса.
type Sessions struct {
	SecretKey string
}

func New(secret string) *Sessions {
	return &Sessions{SecretKey: secret}
}

// Создать подпись
func (s *Sessions) sign(sessionID string) string {
	mac := hmac.New(sha256.New, []byte(s.SecretKey))
	mac.Write([]byte(sessionID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Создать куку вида session_token=sessionID:signature
func (s *Sessions) issueCookie(w http.ResponseWriter) string {
	sessionID := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    s.SignCookieValue(sessionID),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   cookieMaxAge,
	})
	return sessionID
}

// GetOrCreate возвращает сессию из куки или выдаёт новую, если кука отсутствует или подделана.
func (s *Sessions) GetOrCreate(w http.ResponseWriter, r *http.Request) string {
	if sessionID, ok := s.Validate(r); ok {
		return sessionID
	}
	return s.issueCookie(w)
}

// Validate проверяет куку сессии
func (s *Sessions) Validate(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	parts := strings.SplitN(cookie.Value, ":", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", false
	}
	if !hmac.Equal([]byte(s.sign(parts[0])), []byte(parts[1])) {
		return "", false
	}

	return parts[0], true
}

// SignCookieValue подписывает идентификатор, используется и в тестах
func (s *Sessions) SignCookieValue(sessionID string) string {
	return fmt.Sprintf("%s:%s", sessionID, s.sign(sessionID))
}

// WithSessionID кладёт идентификатор сессии в контекст запроса.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, sessionID)
}

// SessionIDFromContext достаёт идентификатор сессии из контекста.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(ctxKey{}).(string)
	return sessionID, ok && sessionID != ""
}
