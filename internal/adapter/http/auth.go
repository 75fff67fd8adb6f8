package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"linkswap/internal/core/domain"
)

type callerKey struct{}

// authenticate resolves the bearer token into a domain.Caller stored on the
// request context. Authorization decisions are left to the use cases.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		caller, err := h.tokens.Parse(token)
		if err != nil {
			h.logger.Debug("token rejected", slog.Any("error", err))
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		ctx := context.WithValue(r.Context(), callerKey{}, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func callerFrom(r *http.Request) domain.Caller {
	c, _ := r.Context().Value(callerKey{}).(domain.Caller)
	return c
}
