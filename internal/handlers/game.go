package handlers

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/roguesweeper/server/internal/config"
	"github.com/roguesweeper/server/internal/engine"
	"github.com/roguesweeper/server/internal/middleware"
	"github.com/roguesweeper/server/internal/repository"
)

var (
	ErrSessionFinished = errors.New("game session is already finished")
	ErrNoCluesLeft     = errors.New("no clues remaining")
	ErrNotWon          = errors.New("current level is not won")
)

type GameHandler struct {
	log     *logrus.Logger
	repo    *repository.Queries
	cookies *config.Cookies
	ws      *config.WebSocket
	levels  config.Levels
	rnd     *rand.Rand
	locks   *sessionLocks
}

func NewGameHandler(
	log *logrus.Logger,
	db *pgxpool.Pool,
	cookies *config.Cookies,
	ws *config.WebSocket,
	levels config.Levels,
	rnd *rand.Rand,
) *GameHandler {
	return &GameHandler{
		log:     log,
		repo:    repository.New(db),
		cookies: cookies,
		ws:      ws,
		levels:  levels,
		rnd:     rnd,
		locks:   newSessionLocks(),
	}
}

// StartGame returns the player's active session or begins a fresh run at
// level 1. Mines are not placed until the first reveal.
func (g *GameHandler) StartGame(w http.ResponseWriter, r *http.Request) {
	claims := middleware.PlayerClaims(r)
	if claims == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	session, err := g.repo.FetchActiveSession(r.Context(), claims.PlayerId)
	if err == nil {
		state, err := engine.DecodeBoardState(session.State)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			g.log.Error("db returned invalid game_session.state: ", err)
			return
		}
		sendJSONOrLog(w, g.log, NewGameSessionDTO(session, state))
		return
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.Error("unable to fetch active session: ", err)
		return
	}

	session, err = g.createLevelSession(r.Context(), claims.PlayerId, 1, 0)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.Error("unable to create game session: ", err)
		return
	}

	if _, err := g.repo.SetCurrentLevel(r.Context(), claims.PlayerId, 1); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.Error("unable to reset player level: ", err)
		return
	}

	state, err := engine.DecodeBoardState(session.State)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.Error("unable to decode fresh session state: ", err)
		return
	}

	sendJSONOrLog(w, g.log, NewGameSessionDTO(session, state))
}

func (g *GameHandler) createLevelSession(
	ctx context.Context, playerId int64, level int, carriedScore int,
) (*repository.GameSession, error) {
	rows, cols := g.levels.GridSize(level)
	state, err := engine.NewBoard(rows, cols).Bytes()
	if err != nil {
		return nil, err
	}
	session, err := g.repo.CreateGameSession(ctx, repository.CreateGameSessionParams{
		PlayerId:       playerId,
		LevelNumber:    level,
		CluesRemaining: g.levels.CluesPerLevel,
		State:          state,
	})
	if err != nil {
		return nil, err
	}
	if carriedScore > 0 {
		session, err = g.repo.UpdateGameSession(
			ctx, session.GameSessionId,
			repository.UpdateGameSessionParams{Score: &carriedScore},
		)
	}
	return session, err
}

// loadOwnedSession fetches the session from the request path and verifies
// it belongs to the authenticated player. On failure the response status
// is already written.
func (g *GameHandler) loadOwnedSession(
	w http.ResponseWriter, r *http.Request,
) (*repository.GameSession, bool) {
	claims := middleware.PlayerClaims(r)
	if claims == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return nil, false
	}

	sessionId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, false
	}

	session, err := g.repo.FetchGameSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.Error("unable to fetch session from db: ", err)
		return nil, false
	}

	if session.PlayerId != claims.PlayerId {
		w.WriteHeader(http.StatusForbidden)
		return nil, false
	}

	return session, true
}

func (g *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	session, ok := g.loadOwnedSession(w, r)
	if !ok {
		return
	}

	state, err := engine.DecodeBoardState(session.State)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.Error("db returned invalid game_session.state: ", err)
		return
	}

	sendJSONOrLog(w, g.log, NewGameSessionDTO(session, state))
}

func (g *GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	g.act(w, r, actionReveal)
}

func (g *GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	g.act(w, r, actionFlag)
}

func (g *GameHandler) Chord(w http.ResponseWriter, r *http.Request) {
	g.act(w, r, actionChord)
}

func (g *GameHandler) Clue(w http.ResponseWriter, r *http.Request) {
	g.act(w, r, actionClue)
}

func (g *GameHandler) act(w http.ResponseWriter, r *http.Request, act action) {
	params, err := ParseActionParams(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(err))
		return
	}

	session, ok := g.loadOwnedSession(w, r)
	if !ok {
		return
	}

	unlock := g.locks.Lock(session.GameSessionId)
	defer unlock()

	// reload under the lock so we apply the action to the latest state
	session, err = g.repo.FetchGameSession(r.Context(), session.GameSessionId)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.Error("unable to fetch session from db: ", err)
		return
	}

	if session.Status != repository.SessionActive {
		w.WriteHeader(http.StatusConflict)
		sendJSONOrLog(w, g.log, wrapError(ErrSessionFinished))
		return
	}

	state, err := engine.DecodeBoardState(session.State)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.Error("db returned invalid game_session.state: ", err)
		return
	}

	next, cluesRemaining, err := g.applyAction(session, state, act, params.Row, params.Col)
	if errors.Is(err, ErrNoCluesLeft) {
		w.WriteHeader(http.StatusConflict)
		sendJSONOrLog(w, g.log, wrapError(err))
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(err))
		return
	}

	session, err = g.storeTurn(r.Context(), session, next, cluesRemaining)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.Error("unable to update session in db: ", err)
		return
	}

	sendJSONOrLog(w, g.log, NewGameSessionDTO(session, next))
}

// applyAction runs one engine operation and returns the resulting state
// along with the clue count after the move.
func (g *GameHandler) applyAction(
	session *repository.GameSession,
	state engine.BoardState,
	act action,
	row, col int,
) (engine.BoardState, int, error) {
	mineCount := g.levels.MineCount(session.LevelNumber)
	cluesRemaining := session.CluesRemaining

	switch act {
	case actionReveal:
		next, err := state.Reveal(row, col, mineCount, g.rnd)
		return next, cluesRemaining, err

	case actionFlag:
		return state.ToggleFlag(row, col), cluesRemaining, nil

	case actionChord:
		return state.ChordReveal(row, col), cluesRemaining, nil

	case actionClue:
		if cluesRemaining < 1 {
			return state, cluesRemaining, ErrNoCluesLeft
		}
		next, err := state.ApplyClue(row, col, mineCount, g.rnd)
		if err != nil {
			return next, cluesRemaining, err
		}
		if clueConsumed(state, next) {
			cluesRemaining--
		}
		return next, cluesRemaining, nil
	}

	return state, cluesRemaining, errors.New("unknown action")
}

// clueConsumed reports whether a clue actually changed the board. No-op
// targets (already revealed, player-flagged) do not spend a clue.
func clueConsumed(before, after engine.BoardState) bool {
	return before.Initialized != after.Initialized ||
		len(before.Revealed) != len(after.Revealed) ||
		len(before.ImmuneFlags) != len(after.ImmuneFlags)
}

// storeTurn persists the post-move state. When the move ended the game it
// also settles the score and the player's aggregate stats.
func (g *GameHandler) storeTurn(
	ctx context.Context,
	session *repository.GameSession,
	state engine.BoardState,
	cluesRemaining int,
) (*repository.GameSession, error) {
	stateBytes, err := state.Bytes()
	if err != nil {
		return nil, err
	}

	params := repository.UpdateGameSessionParams{
		State: &stateBytes,
	}
	if cluesRemaining != session.CluesRemaining {
		params.CluesRemaining = &cluesRemaining
	}

	if state.GameOver {
		cluesUsed := g.levels.CluesPerLevel - cluesRemaining
		gained := engine.Score(
			session.LevelNumber,
			len(state.Revealed),
			session.TimeElapsed,
			cluesUsed,
			state.Won,
		)
		total := session.Score + gained
		endedAt := time.Now().UTC()

		status := repository.SessionLost
		if state.Won {
			status = repository.SessionWon
		}

		params.Score = &total
		params.Status = &status
		params.EndedAt = &endedAt

		if _, err := g.repo.RecordResult(ctx, session.PlayerId, state.Won, total); err != nil {
			return nil, err
		}

		if state.Won {
			_, err := g.repo.SetCurrentLevel(
				ctx, session.PlayerId, session.LevelNumber+1,
			)
			if err != nil {
				return nil, err
			}
		} else {
			_, err := g.repo.CreateScore(ctx, repository.CreateScoreParams{
				PlayerId:      session.PlayerId,
				FinalScore:    total,
				LevelReached:  session.LevelNumber,
				TimeTaken:     session.TimeElapsed,
				CellsRevealed: len(state.Revealed),
				CluesUsed:     cluesUsed,
			})
			if err != nil {
				return nil, err
			}
		}
	}

	return g.repo.UpdateGameSession(ctx, session.GameSessionId, params)
}

// NextLevel starts the following level of a won run, carrying the score
// forward and resetting the clue budget.
func (g *GameHandler) NextLevel(w http.ResponseWriter, r *http.Request) {
	session, ok := g.loadOwnedSession(w, r)
	if !ok {
		return
	}

	unlock := g.locks.Lock(session.GameSessionId)
	defer unlock()

	session, err := g.repo.FetchGameSession(r.Context(), session.GameSessionId)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.Error("unable to fetch session from db: ", err)
		return
	}

	if session.Status != repository.SessionWon {
		w.WriteHeader(http.StatusConflict)
		sendJSONOrLog(w, g.log, wrapError(ErrNotWon))
		return
	}

	next, err := g.createLevelSession(
		r.Context(), session.PlayerId, session.LevelNumber+1, session.Score,
	)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.Error("unable to create next level session: ", err)
		return
	}

	state, err := engine.DecodeBoardState(next.State)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.Error("unable to decode fresh session state: ", err)
		return
	}

	sendJSONOrLog(w, g.log, NewGameSessionDTO(next, state))
}

// Abandon forfeits an active run. The board is disclosed and the run is
// scored as a loss.
func (g *GameHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	session, ok := g.loadOwnedSession(w, r)
	if !ok {
		return
	}

	unlock := g.locks.Lock(session.GameSessionId)
	defer unlock()

	session, err := g.repo.FetchGameSession(r.Context(), session.GameSessionId)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.Error("unable to fetch session from db: ", err)
		return
	}

	if session.Status != repository.SessionActive {
		w.WriteHeader(http.StatusConflict)
		sendJSONOrLog(w, g.log, wrapError(ErrSessionFinished))
		return
	}

	state, err := engine.DecodeBoardState(session.State)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.Error("db returned invalid game_session.state: ", err)
		return
	}

	state.GameOver = true
	stateBytes, err := state.Bytes()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.Error("unable to serialize game state: ", err)
		return
	}

	cluesUsed := g.levels.CluesPerLevel - session.CluesRemaining
	endedAt := time.Now().UTC()
	status := repository.SessionAbandoned

	if _, err := g.repo.RecordResult(r.Context(), session.PlayerId, false, session.Score); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.Error("unable to record player result: ", err)
		return
	}

	_, err = g.repo.CreateScore(r.Context(), repository.CreateScoreParams{
		PlayerId:      session.PlayerId,
		FinalScore:    session.Score,
		LevelReached:  session.LevelNumber,
		TimeTaken:     session.TimeElapsed,
		CellsRevealed: len(state.Revealed),
		CluesUsed:     cluesUsed,
	})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.Error("unable to record final score: ", err)
		return
	}

	session, err = g.repo.UpdateGameSession(
		r.Context(), session.GameSessionId,
		repository.UpdateGameSessionParams{
			Status:  &status,
			EndedAt: &endedAt,
			State:   &stateBytes,
		},
	)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.Error("unable to update session in db: ", err)
		return
	}

	sendJSONOrLog(w, g.log, NewGameSessionDTO(session, state))
}

// UpdateTime records elapsed play time reported by the client. Time only
// moves forward.
func (g *GameHandler) UpdateTime(w http.ResponseWriter, r *http.Request) {
	seconds, err := strconv.Atoi(r.URL.Query().Get("seconds"))
	if err != nil || seconds < 0 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	session, ok := g.loadOwnedSession(w, r)
	if !ok {
		return
	}

	unlock := g.locks.Lock(session.GameSessionId)
	defer unlock()

	session, err = g.repo.FetchGameSession(r.Context(), session.GameSessionId)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.Error("unable to fetch session from db: ", err)
		return
	}

	if session.Status != repository.SessionActive {
		w.WriteHeader(http.StatusConflict)
		sendJSONOrLog(w, g.log, wrapError(ErrSessionFinished))
		return
	}

	if seconds > session.TimeElapsed {
		session, err = g.repo.UpdateGameSession(
			r.Context(), session.GameSessionId,
			repository.UpdateGameSessionParams{TimeElapsed: &seconds},
		)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			g.log.Error("unable to update session in db: ", err)
			return
		}
	}

	state, err := engine.DecodeBoardState(session.State)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.Error("db returned invalid game_session.state: ", err)
		return
	}

	sendJSONOrLog(w, g.log, NewGameSessionDTO(session, state))
}
