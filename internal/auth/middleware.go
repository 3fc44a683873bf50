package auth

import (
	"context"
	"net/http"
	"strings"
)

// CookieName holds the session token issued by the identity provider.
const CookieName = "healai_session"

type contextKey struct{}

var principalKey = contextKey{}

// Authenticator resolves the request principal from the session cookie or a
// Bearer token and stores it in the request context. Requests without a valid
// token pass through without a principal; handlers decide whether that is 401.
func Authenticator(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims := claimsFromRequest(secret, r); claims != nil {
				p := Principal{Email: claims.Email, Name: claims.Name, Image: claims.Image}
				r = r.WithContext(WithPrincipal(r.Context(), p))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func claimsFromRequest(secret string, r *http.Request) *Claims {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		if claims, err := ParseToken(secret, c.Value); err == nil {
			return claims
		}
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		if claims, err := ParseToken(secret, strings.TrimPrefix(h, "Bearer ")); err == nil {
			return claims
		}
	}
	return nil
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}
