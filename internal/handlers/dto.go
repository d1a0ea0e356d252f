package handlers

import (
	"strconv"

	"github.com/gorilla/schema"

	"github.com/roguesweeper/server/internal/engine"
	"github.com/roguesweeper/server/internal/repository"
)

type ActionParams struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func ParseActionParams(src map[string][]string) (ActionParams, error) {
	var params ActionParams
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&params, src)
	return params, err
}

// GameSessionDTO is the wire shape of a session. The board goes through
// [engine.BoardState.Render] so mine positions never leave the server
// on a live game.
type GameSessionDTO struct {
	GameSessionId  string            `json:"game_session_id"`
	LevelNumber    int               `json:"level_number"`
	CluesRemaining int               `json:"clues_remaining"`
	TimeElapsed    int               `json:"time_elapsed"`
	Score          int               `json:"score"`
	Status         string            `json:"status"`
	Board          engine.ClientView `json:"board"`
	StartedAt      int64             `json:"started_at"`
	EndedAt        *int64            `json:"ended_at,omitempty"`
}

func NewGameSessionDTO(
	session *repository.GameSession, state engine.BoardState,
) *GameSessionDTO {
	var endedAt *int64
	if session.EndedAt.Valid {
		e := session.EndedAt.Time.UnixMilli()
		endedAt = &e
	}
	return &GameSessionDTO{
		GameSessionId:  strconv.FormatInt(session.GameSessionId, 10),
		LevelNumber:    session.LevelNumber,
		CluesRemaining: session.CluesRemaining,
		TimeElapsed:    session.TimeElapsed,
		Score:          session.Score,
		Status:         session.Status,
		Board:          state.Render(false),
		StartedAt:      session.StartedAt.Time.UnixMilli(),
		EndedAt:        endedAt,
	}
}
