package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/roguesweeper/server/internal/middleware"
	"github.com/roguesweeper/server/internal/repository"
)

type Leaderboard struct {
	log  *logrus.Logger
	repo *repository.Queries
}

func NewLeaderboard(log *logrus.Logger, db *pgxpool.Pool) *Leaderboard {
	return &Leaderboard{
		log:  log,
		repo: repository.New(db),
	}
}

func (l Leaderboard) Fetch(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		limit = 100
	}

	entries, err := l.repo.GetLeaderboard(r.Context(), limit)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		l.log.Error("unable to fetch leaderboard: ", err)
		return
	}

	sendJSONOrLog(w, l.log, entries)
}

type PlayerStats struct {
	Username     string             `json:"username"`
	CurrentLevel int                `json:"current_level"`
	HighScore    int                `json:"high_score"`
	GamesPlayed  int                `json:"games_played"`
	GamesWon     int                `json:"games_won"`
	Best         *PlayerBestRunInfo `json:"best_run,omitempty"`
}

type PlayerBestRunInfo struct {
	FinalScore   int `json:"final_score"`
	LevelReached int `json:"level_reached"`
	TimeTaken    int `json:"time_taken"`
}

func (l Leaderboard) Stats(w http.ResponseWriter, r *http.Request) {
	claims := middleware.PlayerClaims(r)
	if claims == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	player, err := l.repo.FetchPlayerById(r.Context(), claims.PlayerId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		l.log.Error("unable to fetch player: ", err)
		return
	}

	stats := &PlayerStats{
		Username:     player.Username,
		CurrentLevel: player.CurrentLevel,
		HighScore:    player.HighScore,
		GamesPlayed:  player.GamesPlayed,
		GamesWon:     player.GamesWon,
	}

	best, err := l.repo.GetPlayerBest(r.Context(), claims.PlayerId)
	if err == nil {
		stats.Best = &PlayerBestRunInfo{
			FinalScore:   best.FinalScore,
			LevelReached: best.LevelReached,
			TimeTaken:    best.TimeTaken,
		}
	} else if !errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusInternalServerError)
		l.log.Error("unable to fetch player best run: ", err)
		return
	}

	sendJSONOrLog(w, l.log, stats)
}
