// Package middleware ...
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey int

const viewerKey contextKey = iota

// Auth issues and verifies bearer tokens, HS256 with subject = user id.
type Auth struct {
	secret []byte
	ttl    time.Duration
}

// NewAuth ...
func NewAuth(secret string, ttl time.Duration) *Auth {
	return &Auth{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// IssueToken creates a signed token for the given user.
func (a *Auth) IssueToken(userID string, now time.Time) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
	})

	return t.SignedString(a.secret)
}

// Required rejects requests without a valid bearer token.
func (a *Auth) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := a.subject(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid or missing token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithViewerID(r.Context(), id)))
	})
}

// Optional propagates the viewer id when a valid token is present and lets
// anonymous requests through.
func (a *Auth) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := a.subject(r); ok {
			r = r.WithContext(WithViewerID(r.Context(), id))
		}

		next.ServeHTTP(w, r)
	})
}

func (a *Auth) subject(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}

	t, err := jwt.ParseWithClaims(strings.TrimPrefix(h, "Bearer "), &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil || !t.Valid {
		return "", false
	}

	sub, err := t.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", false
	}

	return sub, true
}

// WithViewerID ...
func WithViewerID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, viewerKey, id)
}

// ViewerID extracts an authenticated viewer id from the context.
func ViewerID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(viewerKey).(string)
	return id, ok
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(struct {
		Error string `json:"error"`
	}{Error: message})
}
