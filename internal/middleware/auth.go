package middleware

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/roguesweeper/server/internal/config"
)

type CtxKey int

const (
	CtxPlayerClaims CtxKey = iota
)

// PlayerClaims returns the claims attached to the request by [Auth],
// or nil when the request is unauthenticated.
func PlayerClaims(r *http.Request) *config.PlayerClaims {
	claims, ok := r.Context().Value(CtxPlayerClaims).(*config.PlayerClaims)
	if !ok {
		return nil
	}
	return claims
}

func Auth(log *logrus.Logger, cookies *config.Cookies) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := cookies.ParsePlayerClaims(r)
			if err != nil {
				cookies.Clear(w)
				h.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxPlayerClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
