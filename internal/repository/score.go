package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type Score struct {
	ScoreId       int64
	PlayerId      int64
	FinalScore    int
	LevelReached  int
	TimeTaken     int
	CellsRevealed int
	CluesUsed     int
	CreatedAt     pgtype.Timestamptz
}

type CreateScoreParams struct {
	PlayerId      int64
	FinalScore    int
	LevelReached  int
	TimeTaken     int
	CellsRevealed int
	CluesUsed     int
}

func (q *Queries) CreateScore(ctx context.Context, params CreateScoreParams) (*Score, error) {
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO score (
			player_id, final_score, level_reached,
			time_taken, cells_revealed, clues_used
		)
		VALUES (
			@player_id, @final_score, @level_reached,
			@time_taken, @cells_revealed, @clues_used
		)
		RETURNING *`,
		pgx.NamedArgs{
			"player_id":      params.PlayerId,
			"final_score":    params.FinalScore,
			"level_reached":  params.LevelReached,
			"time_taken":     params.TimeTaken,
			"cells_revealed": params.CellsRevealed,
			"clues_used":     params.CluesUsed,
		},
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Score])
}

type LeaderboardEntry struct {
	Username     string `json:"username"`
	FinalScore   int    `json:"final_score"`
	LevelReached int    `json:"level_reached"`
	TimeTaken    int    `json:"time_taken"`
}

func (q *Queries) GetLeaderboard(
	ctx context.Context, limit int,
) ([]LeaderboardEntry, error) {
	if limit < 1 || limit > 100 {
		limit = 100
	}
	rows, err := q.db.Query(
		ctx,
		`SELECT
			username,
			final_score,
			level_reached,
			time_taken
		FROM score
			JOIN player USING (player_id)
		ORDER BY final_score DESC, level_reached DESC, time_taken ASC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[LeaderboardEntry])
}

func (q *Queries) GetPlayerBest(ctx context.Context, playerId int64) (*Score, error) {
	rows, _ := q.db.Query(
		ctx,
		`SELECT * FROM score
		WHERE player_id = $1
		ORDER BY final_score DESC, level_reached DESC, time_taken ASC
		LIMIT 1`,
		playerId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Score])
}
