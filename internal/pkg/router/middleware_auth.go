package router

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/shandysiswandi/userlab/internal/pkg/jwt"
)

const (
	msgAuthRequired = "Authentification requise"
	msgInvalidToken = "Jeton invalide ou expiré"
)

// Authenticated guards an endpoint with a bearer token. Without a verifier
// every request is rejected.
func (r *Router) Authenticated() Middleware {
	return middlewareAuthentication(r.verifier)
}

func middlewareAuthentication(verifier jwt.JWT) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := strings.Fields(r.Header.Get("Authorization"))
			if len(p) != 2 || !strings.EqualFold(p[0], "Bearer") {
				writeJSON(w, errorResponse{Message: msgAuthRequired}, http.StatusUnauthorized)
				return
			}

			if verifier == nil {
				slog.WarnContext(r.Context(), "bearer token rejected, no verifier configured")
				writeJSON(w, errorResponse{Message: msgInvalidToken}, http.StatusUnauthorized)
				return
			}

			claims, err := verifier.Verify(p[1])
			if err != nil {
				slog.WarnContext(r.Context(), "bearer token rejected", "error", err)
				writeJSON(w, errorResponse{Message: msgInvalidToken}, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(jwt.SetAuth(r.Context(), claims)))
		})
	}
}
