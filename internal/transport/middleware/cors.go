package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"

	"github.com/ecobin/rewards-backend/internal/config"
)

// CORS returns middleware that handles Cross-Origin Resource Sharing,
// including preflight OPTIONS requests.
func CORS(cfg config.CORSConfig) Middleware {
	return cors.Handler(cors.Options{
		AllowedOrigins:       splitList(cfg.AllowedOrigins),
		AllowedMethods:       splitList(cfg.AllowedMethods),
		AllowedHeaders:       splitList(cfg.AllowedHeaders),
		ExposedHeaders:       []string{"X-Request-Id", "Retry-After"},
		AllowCredentials:     cfg.AllowCredentials,
		MaxAge:               cfg.MaxAge,
		OptionsSuccessStatus: http.StatusNoContent,
	})
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
