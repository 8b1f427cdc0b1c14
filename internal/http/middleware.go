package http

import (
	"context"
	"net/http"

	"github.com/flossiendabambi/alx-project-nexus/internal/service"
)

type contextKey string

const requesterKey contextKey = "requester"

// AuthMiddleware trusts the identity headers set by the upstream auth
// collaborator. Requests without X-User-ID stay anonymous; handlers that need
// an identity reject those themselves.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			next.ServeHTTP(w, r)
			return
		}

		requester := service.Requester{
			UserID:  userID,
			Email:   r.Header.Get("X-User-Email"),
			IsStaff: r.Header.Get("X-User-Staff") == "true",
		}

		ctx := context.WithValue(r.Context(), requesterKey, requester)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requesterFromContext(ctx context.Context) (service.Requester, bool) {
	requester, ok := ctx.Value(requesterKey).(service.Requester)
	return requester, ok
}
