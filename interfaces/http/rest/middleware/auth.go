package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"kusina-backend/pkg/auth"
	"kusina-backend/pkg/common"
	apperrors "kusina-backend/pkg/errors"
)

type contextKey string

const actorKey contextKey = "actor"

// Actor is the authenticated dashboard user attached to the request
// context by Authenticate.
type Actor struct {
	ID    string
	Email string
	Role  string
}

// ActorFromContext returns the authenticated actor, if any.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey).(Actor)
	return actor, ok
}

// Authenticate validates the Bearer token on every request and places
// the resulting actor in the context. A nil verifier admits every
// request as a development admin; production config requires the JWT
// secret so this cannot happen outside local runs.
func Authenticate(verifier *auth.Verifier, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				ctx := context.WithValue(r.Context(), actorKey, Actor{
					ID:    "dev",
					Email: "dev@localhost",
					Role:  auth.RoleAdmin,
				})
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			token := bearerToken(r)
			if token == "" {
				common.RespondError(w, apperrors.NewUnauthorizedError("missing bearer token"))
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				logger.Warn("rejected token",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				common.RespondError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), actorKey, Actor{
				ID:    claims.Subject,
				Email: claims.Email,
				Role:  claims.Role(),
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireWriter rejects requests from actors that may not mutate
// catalog data.
func RequireWriter(next http.Handler) http.Handler {
	return requireRole(auth.CanWrite, next)
}

// RequireReviewer rejects requests from actors that may not review
// cook verifications.
func RequireReviewer(next http.Handler) http.Handler {
	return requireRole(auth.CanReview, next)
}

func requireRole(allowed func(string) bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok {
			common.RespondError(w, apperrors.NewUnauthorizedError("not authenticated"))
			return
		}
		if !allowed(actor.Role) {
			common.RespondError(w, apperrors.NewForbiddenError("insufficient permissions"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimit gates requests per actor using the given limiter. Requests
// without an actor fall back to the client IP.
func RateLimit(limiter auth.RateLimiter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)
			if actor, ok := ActorFromContext(r.Context()); ok {
				key = actor.ID
			}
			allowed, err := limiter.Allow(r.Context(), key)
			if err == nil && !allowed {
				common.RespondError(w, apperrors.NewRateLimitedError("rate limit exceeded"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
