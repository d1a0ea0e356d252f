package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	SessionActive    = "active"
	SessionWon       = "won"
	SessionLost      = "lost"
	SessionAbandoned = "abandoned"
)

type GameSession struct {
	GameSessionId  int64
	PlayerId       int64
	LevelNumber    int
	CluesRemaining int
	TimeElapsed    int
	Score          int
	Status         string
	State          []byte
	StartedAt      pgtype.Timestamptz
	EndedAt        pgtype.Timestamptz
	CreatedAt      pgtype.Timestamptz
	UpdatedAt      pgtype.Timestamptz
}

type CreateGameSessionParams struct {
	PlayerId       int64
	LevelNumber    int
	CluesRemaining int
	State          []byte
}

func (q *Queries) CreateGameSession(
	ctx context.Context, params CreateGameSessionParams,
) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_session (
			player_id, level_number, clues_remaining, state
		)
		VALUES (
			@player_id, @level_number, @clues_remaining, @state
		)
		RETURNING *`,
		pgx.NamedArgs{
			"player_id":       params.PlayerId,
			"level_number":    params.LevelNumber,
			"clues_remaining": params.CluesRemaining,
			"state":           params.State,
		},
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

func (q *Queries) FetchGameSession(
	ctx context.Context, gameSessionId int64,
) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM game_session WHERE game_session_id = $1",
		gameSessionId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

// FetchActiveSession returns a player's most recent unfinished session.
func (q *Queries) FetchActiveSession(
	ctx context.Context, playerId int64,
) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		`SELECT * FROM game_session
		WHERE player_id = $1 AND status = 'active'
		ORDER BY started_at DESC
		LIMIT 1`,
		playerId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

type UpdateGameSessionParams struct {
	CluesRemaining *int
	TimeElapsed    *int
	Score          *int
	Status         *string
	EndedAt        *time.Time
	State          *[]byte
}

func (p UpdateGameSessionParams) SetClause() (string, map[string]any) {
	parts := make([]string, 0)
	args := make(map[string]any)

	if p.CluesRemaining != nil {
		parts = append(parts, "clues_remaining = @clues_remaining")
		args["clues_remaining"] = *p.CluesRemaining
	}
	if p.TimeElapsed != nil {
		parts = append(parts, "time_elapsed = @time_elapsed")
		args["time_elapsed"] = *p.TimeElapsed
	}
	if p.Score != nil {
		parts = append(parts, "score = @score")
		args["score"] = *p.Score
	}
	if p.Status != nil {
		parts = append(parts, "status = @status")
		args["status"] = *p.Status
	}
	if p.EndedAt != nil {
		parts = append(parts, "ended_at = @ended_at")
		args["ended_at"] = *p.EndedAt
	}
	if p.State != nil {
		parts = append(parts, "state = @state")
		args["state"] = *p.State
	}

	return strings.Join(parts, ", "), args
}

func (q *Queries) UpdateGameSession(
	ctx context.Context, gameSessionId int64, params UpdateGameSessionParams,
) (*GameSession, error) {
	setClause, args := params.SetClause()
	args["game_session_id"] = gameSessionId
	rows, _ := q.db.Query(
		ctx,
		"UPDATE game_session SET "+setClause+
			" WHERE game_session_id = @game_session_id RETURNING *",
		pgx.NamedArgs(args),
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}
