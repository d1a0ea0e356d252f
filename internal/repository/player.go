package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type Player struct {
	PlayerId     int64
	Username     string
	PasswordHash []byte
	IsGuest      bool
	CurrentLevel int
	HighScore    int
	GamesPlayed  int
	GamesWon     int
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

type CreatePlayerParams struct {
	Username     string
	PasswordHash []byte
	IsGuest      bool
}

func (q *Queries) CreatePlayer(ctx context.Context, params CreatePlayerParams) (*Player, error) {
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO player (username, password_hash, is_guest)
		VALUES (@username, @password_hash, @is_guest)
		RETURNING *`,
		pgx.NamedArgs{
			"username":      params.Username,
			"password_hash": params.PasswordHash,
			"is_guest":      params.IsGuest,
		},
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Player])
}

func (q *Queries) FetchPlayer(ctx context.Context, username string) (*Player, error) {
	rows, _ := q.db.Query(
		ctx, "SELECT * FROM player WHERE username = $1", username,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Player])
}

func (q *Queries) FetchPlayerById(ctx context.Context, playerId int64) (*Player, error) {
	rows, _ := q.db.Query(
		ctx, "SELECT * FROM player WHERE player_id = $1", playerId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Player])
}

// RecordResult bumps a player's aggregate counters after a finished run.
func (q *Queries) RecordResult(
	ctx context.Context, playerId int64, won bool, score int,
) (*Player, error) {
	rows, _ := q.db.Query(
		ctx,
		`UPDATE player SET
			games_played = games_played + 1,
			games_won = games_won + CASE WHEN @won THEN 1 ELSE 0 END,
			high_score = GREATEST(high_score, @score)
		WHERE player_id = @player_id
		RETURNING *`,
		pgx.NamedArgs{
			"player_id": playerId,
			"won":       won,
			"score":     score,
		},
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Player])
}

func (q *Queries) SetCurrentLevel(
	ctx context.Context, playerId int64, level int,
) (*Player, error) {
	rows, _ := q.db.Query(
		ctx,
		`UPDATE player SET current_level = $2
		WHERE player_id = $1
		RETURNING *`,
		playerId, level,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Player])
}
