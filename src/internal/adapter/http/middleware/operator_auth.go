package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/logger"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/usecase/service_interfaces"
)

type Operator struct {
	Username string
	Role     string
}

type operatorKey struct{}

func OperatorFromContext(ctx context.Context) Operator {
	operator, _ := ctx.Value(operatorKey{}).(Operator)
	return operator
}

// OperatorAuth admits requests carrying either a Bearer token issued by
// /auth/login or HTTP Basic credentials held in the credential store.
func OperatorAuth(auth service_interfaces.OperatorAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if auth == nil {
				logger.Error("operator auth middleware missing authenticator", nil, logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				})
				http.Error(w, "server auth configuration is missing", http.StatusInternalServerError)
				return
			}

			operator, status := authenticate(r, auth)
			if status != http.StatusOK {
				logger.Info("operator auth middleware unauthorized request", logger.Fields{
					"method":      r.Method,
					"path":        r.URL.Path,
					"credentials": "invalid_or_missing",
				})
				if status == http.StatusUnauthorized {
					w.Header().Set("WWW-Authenticate", `Basic realm="financepro", Bearer`)
				}
				http.Error(w, strings.ToLower(http.StatusText(status)), status)
				return
			}

			logger.Info("operator auth middleware authorized request", logger.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"operator": operator.Username,
			})
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), operatorKey{}, operator)))
		})
	}
}

func authenticate(r *http.Request, auth service_interfaces.OperatorAuthenticator) (Operator, int) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		claims, err := auth.ParseToken(token)
		if err != nil {
			return Operator{}, http.StatusUnauthorized
		}
		return Operator{Username: claims.Subject, Role: claims.Role}, http.StatusOK
	}

	username, password, ok := r.BasicAuth()
	if !ok {
		return Operator{}, http.StatusUnauthorized
	}

	credential, valid, err := auth.Verify(r.Context(), username, password)
	if err != nil {
		logger.Error("operator auth middleware verify failed", err, logger.Fields{
			"path": r.URL.Path,
		})
		return Operator{}, http.StatusInternalServerError
	}
	if !valid {
		return Operator{}, http.StatusUnauthorized
	}
	return Operator{Username: credential.Username, Role: credential.Role}, http.StatusOK
}
