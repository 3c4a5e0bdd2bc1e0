package httpadapter

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"svw.info/minesweeper/internal/domain"
	"svw.info/minesweeper/internal/usecase"
	"svw.info/minesweeper/internal/viewmodel"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wsCommand is one client message on /api/ws. ID may be omitted after
// "new"; the connection remembers the last game it started. Starting a new
// game drops the one it replaces.
type wsCommand struct {
	Op    string `json:"op"`
	ID    string `json:"id,omitempty"`
	X     int    `json:"x,omitempty"`
	Y     int    `json:"y,omitempty"`
	Size  int    `json:"size,omitempty"`
	Bombs int    `json:"bombs,omitempty"`
}

type wsReply struct {
	Op    string              `json:"op"`
	Game  *viewmodel.GameView `json:"game,omitempty"`
	Hint  *domain.Hint        `json:"hint,omitempty"`
	Error string              `json:"error,omitempty"`
}

func (h *Handler) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	log := h.Log.WithField("remote", r.RemoteAddr)
	log.Debug("websocket connected")

	current := uuid.Nil
	for {
		var cmd wsCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Warn("websocket read failed")
			}
			return
		}
		if cmd.ID != "" {
			id, err := parseID(cmd.ID)
			if err != nil {
				if err := conn.WriteJSON(wsReply{Op: cmd.Op, Error: err.Error()}); err != nil {
					log.WithError(err).Warn("websocket write failed")
					return
				}
				continue
			}
			current = id
		}

		reply := h.dispatch(r, &current, cmd)
		if err := conn.WriteJSON(reply); err != nil {
			log.WithError(err).Warn("websocket write failed")
			return
		}
	}
}

func (h *Handler) dispatch(r *http.Request, current *uuid.UUID, cmd wsCommand) wsReply {
	ctx := r.Context()
	reply := wsReply{Op: cmd.Op}
	var (
		v   viewmodel.GameView
		err error
	)
	switch cmd.Op {
	case "new":
		p := h.Defaults
		if cmd.Size != 0 {
			p = domain.Params{Size: cmd.Size, Bombs: cmd.Bombs}
		}
		var id uuid.UUID
		id, v, err = h.UC.NewGame(ctx, p)
		if err != nil {
			break
		}
		if *current != uuid.Nil {
			if ferr := h.UC.Forget(ctx, *current); ferr != nil && !errors.Is(ferr, usecase.ErrUnknownGame) {
				h.Log.WithError(ferr).Warn("dropping replaced game failed")
			}
		}
		*current = id
	case "forget":
		if err := h.UC.Forget(ctx, *current); err != nil {
			reply.Error = err.Error()
			return reply
		}
		*current = uuid.Nil
		return reply
	case "click":
		v, err = h.UC.Click(ctx, *current, cmd.X, cmd.Y)
	case "flagmode":
		v, err = h.UC.ToggleFlagMode(ctx, *current)
	case "state":
		v, err = h.UC.State(ctx, *current)
	case "hint":
		hh, ok, herr := h.UC.Hint(ctx, *current)
		if herr != nil {
			reply.Error = herr.Error()
		} else if ok {
			reply.Hint = &hh
		}
		return reply
	default:
		reply.Error = "unknown op " + cmd.Op
		return reply
	}
	if err != nil {
		reply.Error = err.Error()
		return reply
	}
	reply.Game = &v
	return reply
}
