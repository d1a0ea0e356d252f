package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/roguesweeper/server/internal/engine"
	"github.com/roguesweeper/server/internal/repository"
)

// ConnectWS serves the newline command protocol over a websocket. Each
// text frame carries one or more commands ("r ROW COL", "f ROW COL",
// "c ROW COL", "u ROW COL", "g"); after each frame the updated session
// is written back as JSON.
func (g *GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	session, ok := g.loadOwnedSession(w, r)
	if !ok {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Error("upgrade: ", err)
		return
	}
	defer c.Close()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				g.log.Warn("read: ", err)
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}

		session, err = g.handleFrame(r, session, string(message))
		if err != nil {
			g.log.Error("command: ", err)
			return
		}

		state, err := engine.DecodeBoardState(session.State)
		if err != nil {
			g.log.Error("db returned invalid game_session.state: ", err)
			return
		}
		if err := c.WriteJSON(NewGameSessionDTO(session, state)); err != nil {
			g.log.Error("write: ", err)
			break
		}
	}
}

func (g *GameHandler) handleFrame(
	r *http.Request, session *repository.GameSession, frame string,
) (*repository.GameSession, error) {
	unlock := g.locks.Lock(session.GameSessionId)
	defer unlock()

	session, err := g.repo.FetchGameSession(r.Context(), session.GameSessionId)
	if err != nil {
		return nil, err
	}

	for _, line := range strings.Split(strings.TrimSpace(frame), "\n") {
		cmd, err := parseCommand(strings.TrimSpace(line))
		if err != nil {
			return nil, err
		}
		if cmd.Action == actionGet {
			continue
		}
		if session.Status != repository.SessionActive {
			return nil, ErrSessionFinished
		}

		state, err := engine.DecodeBoardState(session.State)
		if err != nil {
			return nil, err
		}

		next, cluesRemaining, err := g.applyAction(
			session, state, cmd.Action, cmd.Row, cmd.Col,
		)
		if err != nil {
			return nil, err
		}

		session, err = g.storeTurn(r.Context(), session, next, cluesRemaining)
		if err != nil {
			return nil, err
		}
	}

	return session, nil
}
