package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/saulo-duarte/examly-api/internal/config"
	"github.com/sirupsen/logrus"
)

type claimsKey struct{}

const cookieName = "jwt"

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := config.WithContext(r.Context())

		tokenStr := tokenFromRequest(r)
		if tokenStr == "" {
			log.Warn("Missing bearer token")
			config.WriteError(w, r, ErrUnauthenticated)
			return
		}

		claims, err := ValidateJWT(tokenStr)
		if err != nil {
			log.WithError(err).Warn("Invalid bearer token")
			config.WriteError(w, r, ErrUnauthenticated)
			return
		}

		ctx := ContextWithClaims(r.Context(), claims)
		ctx = config.ContextWithFields(ctx, logrus.Fields{
			"user_id": claims.UserID,
			"role":    claims.Role,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := r.Cookie(cookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func ContextWithClaims(ctx context.Context, claims *UserClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

func GetUserClaimsFromContext(ctx context.Context) (*UserClaims, error) {
	claims, ok := ctx.Value(claimsKey{}).(*UserClaims)
	if !ok || claims == nil {
		return nil, ErrUnauthenticated
	}
	return claims, nil
}
