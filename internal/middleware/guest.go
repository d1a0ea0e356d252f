package middleware

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"github.com/roguesweeper/server/internal/config"
	"github.com/roguesweeper/server/internal/repository"
)

const guestSuffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func guestUsername(rnd *rand.Rand) string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = guestSuffixAlphabet[rnd.IntN(len(guestSuffixAlphabet))]
	}
	return "Guest-" + string(suffix)
}

// Guest provisions a throwaway player for unauthenticated requests so
// anyone can start playing without registering. Must run after [Auth].
func Guest(
	log *logrus.Logger,
	repo *repository.Queries,
	cookies *config.Cookies,
	rnd *rand.Rand,
) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims := PlayerClaims(r); claims != nil {
				h.ServeHTTP(w, r)
				return
			}

			var (
				player *repository.Player
				err    error
			)
			for range 5 {
				player, err = repo.CreatePlayer(r.Context(), repository.CreatePlayerParams{
					Username: guestUsername(rnd),
					IsGuest:  true,
				})
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) &&
					pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
					continue
				}
				break
			}
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				log.Error("unable to create guest player: ", err)
				return
			}

			claims := config.NewPlayerClaims(player.PlayerId, player.Username, true)
			if err := cookies.Issue(w, claims); err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				log.Error("unable to issue guest cookies: ", err)
				return
			}

			log.WithFields(logrus.Fields{
				"playerId": player.PlayerId,
				"username": player.Username,
			}).Debug("provisioned guest player")

			ctx := context.WithValue(r.Context(), CtxPlayerClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
