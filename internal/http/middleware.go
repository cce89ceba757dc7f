package http

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/MehediHasan95/tasty-pizza-server/internal/auth"
	"github.com/MehediHasan95/tasty-pizza-server/internal/domain"
	"github.com/MehediHasan95/tasty-pizza-server/internal/repository"
)

type ctxKey int

const (
	claimsKey ctxKey = iota
	requestIDKey
)

// ClaimsFromContext returns the verified token claims, nil when the request
// passed through no verify middleware.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// RequestIDMiddleware adds a unique request ID to each request.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// VerifyToken rejects missing, forged, and expired tokens with the fixed
// 401 body before any store access. The frontend sends the raw token in
// Authorization; a Bearer prefix is tolerated.
func VerifyToken(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

			claims, err := tokens.Verify(raw)
			if err != nil {
				respondUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireOwner gates owner-scoped routes: the token subject must equal the
// uid query parameter, else the fixed 403 body and no store access.
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		if claims == nil {
			respondUnauthorized(w)
			return
		}
		if claims.UID == "" || claims.UID != r.URL.Query().Get("uid") {
			respondForbidden(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin gates operator routes on the caller's stored role, a
// separate check from self-ownership.
func RequireAdmin(users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				respondUnauthorized(w)
				return
			}

			user, err := users.FindByUID(r.Context(), claims.UID)
			if err != nil {
				log.Printf("request %s: admin lookup failed: %v", requestIDFromContext(r.Context()), err)
				respondForbidden(w)
				return
			}
			if user.Role != domain.RoleAdmin {
				respondForbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
