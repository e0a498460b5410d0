package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type userIDKey struct{}

// CurrentUserID returns the authenticated user id stored by Authenticator.
func CurrentUserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok && id != ""
}

// ContextIdentity reads the user stored by Authenticator. It satisfies the
// handler package's IdentityProvider.
type ContextIdentity struct{}

func (ContextIdentity) CurrentUserID(ctx context.Context) (string, bool) {
	return CurrentUserID(ctx)
}

// WithUserID returns a copy of ctx carrying userID. Handlers read it back
// with CurrentUserID; tests use it to skip token signing.
func WithUserID(ctx context.Context, userID string) context.Context {
	if h, ok := ctx.Value(userHolderKey{}).(*userHolder); ok {
		h.userID = userID
	}
	return context.WithValue(ctx, userIDKey{}, userID)
}

// Authenticator verifies HS256 bearer tokens and records the token subject
// as the current user.
type Authenticator struct {
	secret []byte
	log    *slog.Logger
}

// NewAuthenticator returns an Authenticator that accepts tokens signed with secret.
func NewAuthenticator(secret string, log *slog.Logger) *Authenticator {
	return &Authenticator{secret: []byte(secret), log: log}
}

// Require rejects requests without a valid bearer token with 401.
// The token's "sub" claim becomes the owner for every itinerary operation.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			writeUnauthorized(w, "missing bearer token")
			return
		}
		sub, err := a.subject(raw)
		if err != nil {
			a.log.DebugContext(r.Context(), "rejected token", "error", err)
			writeUnauthorized(w, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), sub)))
	})
}

// subject parses and validates raw, returning its non-empty subject.
func (a *Authenticator) subject(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", jwt.ErrTokenRequiredClaimMissing
	}
	return claims.Subject, nil
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": "unauthorized", "message": msg},
	})
}
