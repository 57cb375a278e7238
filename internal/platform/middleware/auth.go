package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/devfelipenunes/zolvency-contracts/internal/jwttoken"
	dErrors "github.com/devfelipenunes/zolvency-contracts/pkg/domain-errors"
	"github.com/devfelipenunes/zolvency-contracts/pkg/platform/httputil"
	"github.com/devfelipenunes/zolvency-contracts/pkg/requestcontext"
)

// TokenValidator validates a bearer token and returns its claims.
type TokenValidator interface {
	ValidateToken(tokenString string) (*jwttoken.Claims, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// authenticated account in the context. The token subject IS the caller
// account; handlers never take a caller from the request body.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token", "request_id", requestID)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing or invalid Authorization header"))
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"request_id", requestID,
					"error", err,
				)
				httputil.WriteError(w, err)
				return
			}

			ctx = requestcontext.WithAccount(ctx, claims.Account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
