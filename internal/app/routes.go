package app

import (
	"hash/maphash"
	"math/rand/v2"
	"net/http"

	"github.com/roguesweeper/server/internal/handlers"
	"github.com/roguesweeper/server/internal/middleware"
	"github.com/roguesweeper/server/internal/repository"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	auth := handlers.NewAuth(a.log, a.db, a.cookies)

	a.router.HandleFunc("POST /register", auth.Register)
	a.router.HandleFunc("POST /login", auth.Login)
	a.router.HandleFunc("POST /logout", auth.Logout)
	a.router.HandleFunc("GET /status", auth.Status)

	game := handlers.NewGameHandler(
		a.log, a.db, a.cookies, a.ws, a.levels, createRand(),
	)

	// starting a game provisions a guest player for anonymous visitors
	guest := middleware.Guest(a.log, repository.New(a.db), a.cookies, createRand())
	a.router.Handle("POST /game", middleware.Wrap(
		http.HandlerFunc(game.StartGame), guest,
	))

	a.router.HandleFunc("GET /game/{id}", game.Fetch)
	a.router.HandleFunc("POST /game/{id}/reveal", game.Reveal)
	a.router.HandleFunc("POST /game/{id}/flag", game.Flag)
	a.router.HandleFunc("POST /game/{id}/chord", game.Chord)
	a.router.HandleFunc("POST /game/{id}/clue", game.Clue)
	a.router.HandleFunc("POST /game/{id}/next", game.NextLevel)
	a.router.HandleFunc("POST /game/{id}/forfeit", game.Abandon)
	a.router.HandleFunc("POST /game/{id}/time", game.UpdateTime)
	a.router.HandleFunc("/game/{id}/connect", game.ConnectWS)

	leaderboard := handlers.NewLeaderboard(a.log, a.db)

	a.router.HandleFunc("GET /leaderboard", leaderboard.Fetch)
	a.router.HandleFunc("GET /stats", leaderboard.Stats)
}
