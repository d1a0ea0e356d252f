package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	createPlayerTable = `
CREATE TABLE IF NOT EXISTS player (
	player_id 		bigint 	GENERATED ALWAYS AS IDENTITY
							PRIMARY KEY,
	username 		text 	UNIQUE NOT NULL,
	password_hash 	bytea 	NULL,
	is_guest		boolean	DEFAULT false
							NOT NULL,
	current_level	integer	DEFAULT 1
							NOT NULL,
	high_score		integer	DEFAULT 0
							NOT NULL,
	games_played	integer	DEFAULT 0
							NOT NULL,
	games_won		integer	DEFAULT 0
							NOT NULL,
	created_at 		timestamp with time zone
							DEFAULT now()
							NOT NULL,
	updated_at 		timestamp with time zone
							DEFAULT now()
							NOT NULL
);`
	createGameSessionTable = `
CREATE TABLE IF NOT EXISTS game_session (
	game_session_id	bigint 	GENERATED ALWAYS AS IDENTITY
							PRIMARY KEY,
	player_id		bigint	REFERENCES player (player_id)
							NOT NULL,
	level_number	integer	NOT NULL,
	clues_remaining	integer	NOT NULL,
	time_elapsed	integer	DEFAULT 0
							NOT NULL,
	score			integer	DEFAULT 0
							NOT NULL,
	status			text	DEFAULT 'active'
							NOT NULL,
	state			bytea	NOT NULL,
	started_at		timestamp with time zone
							DEFAULT now()
							NOT NULL,
	ended_at		timestamp with time zone
							NULL,
	created_at 		timestamp with time zone
							DEFAULT now()
							NOT NULL,
	updated_at 		timestamp with time zone
							DEFAULT now()
							NOT NULL
);`
	createScoreTable = `
CREATE TABLE IF NOT EXISTS score (
	score_id		bigint 	GENERATED ALWAYS AS IDENTITY
							PRIMARY KEY,
	player_id		bigint	REFERENCES player (player_id)
							NOT NULL,
	final_score		integer	NOT NULL,
	level_reached	integer	NOT NULL,
	time_taken		integer	NOT NULL,
	cells_revealed	integer	NOT NULL,
	clues_used		integer	NOT NULL,
	created_at 		timestamp with time zone
							DEFAULT now()
							NOT NULL
);`
	createUpdateModifiedColumnFunction = `
CREATE OR REPLACE FUNCTION update_modified_column()
RETURNS TRIGGER AS $$
BEGIN
	NEW.updated_at = now();
	RETURN NEW;
END;
$$ LANGUAGE 'plpgsql';`
	createPlayerUpdateTrigger = `
CREATE OR REPLACE TRIGGER update_player_modtime
BEFORE UPDATE ON player
FOR EACH ROW EXECUTE FUNCTION update_modified_column();`
	createGameSessionUpdateTrigger = `
CREATE OR REPLACE TRIGGER update_game_session_modtime
BEFORE UPDATE ON game_session
FOR EACH ROW EXECUTE FUNCTION update_modified_column();`
	initSql = createPlayerTable +
		createGameSessionTable +
		createScoreTable +
		createUpdateModifiedColumnFunction +
		createPlayerUpdateTrigger +
		createGameSessionUpdateTrigger
)

type Queries struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Queries {
	return &Queries{db: db}
}

// InitSchema creates the tables and triggers if they do not exist yet.
func (q *Queries) InitSchema(ctx context.Context) error {
	_, err := q.db.Exec(ctx, initSql)
	return err
}
