package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ecobin/rewards-backend/pkg/ctxutil"
)

// bearerChallenge follows RFC 6750 section 3.
const bearerChallenge = `Bearer realm="ecobin-rewards", error="invalid_token"`

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, string, error)
}

// Auth resolves the bearer token into the caller's account ID and role.
// Requests without a token pass through anonymously; handlers decide whether
// an identity is required.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r) // Anonymous
				return
			}
			accountID, role, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				slog.DebugContext(r.Context(), "bearer token rejected",
					append(ctxutil.LogAttrs(r.Context()), slog.String("error", err.Error()))...)
				w.Header().Set("WWW-Authenticate", bearerChallenge)
				writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "invalid or expired token")
				return
			}
			ctx := ctxutil.WithAccountID(r.Context(), accountID)
			ctx = ctxutil.WithRole(ctx, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
