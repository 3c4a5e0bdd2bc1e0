package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"svw.info/minesweeper/internal/domain"
	"svw.info/minesweeper/internal/grid"
	"svw.info/minesweeper/internal/usecase"
	"svw.info/minesweeper/internal/validator"
	"svw.info/minesweeper/internal/viewmodel"
)

type Handler struct {
	UC       *usecase.Service
	Defaults domain.Params
	Log      logrus.FieldLogger
}

func New(uc *usecase.Service, defaults domain.Params) *Handler {
	return &Handler{UC: uc, Defaults: defaults, Log: logrus.StandardLogger()}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/new", h.handleNew)
	mux.HandleFunc("/api/click", h.handleClick)
	mux.HandleFunc("/api/flagmode", h.handleFlagMode)
	mux.HandleFunc("/api/state", h.handleState)
	mux.HandleFunc("/api/hint", h.handleHint)
	mux.HandleFunc("/api/autoplay", h.handleAutoplay)
	mux.HandleFunc("/api/forget", h.handleForget)
	mux.HandleFunc("/api/results", h.handleResults)
	mux.HandleFunc("/api/ws", h.handleWS)
}

// statusFor maps usecase and engine errors to HTTP codes.
func statusFor(err error) int {
	var pe *validator.ParamError
	switch {
	case errors.Is(err, usecase.ErrUnknownGame):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrTooManyGames):
		return http.StatusServiceUnavailable
	case errors.As(err, &pe),
		errors.Is(err, grid.ErrTooManyBombs),
		errors.Is(err, grid.ErrBadLayout):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	if code != http.StatusOK {
		w.WriteHeader(code)
	}
	_ = json.NewEncoder(w).Encode(v)
}

// decode reads an optional JSON body; an empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func parseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, usecase.ErrUnknownGame
	}
	return id, nil
}

type gameResp struct {
	Game  *viewmodel.GameView `json:"game,omitempty"`
	Error string              `json:"error,omitempty"`
}

func (h *Handler) writeGame(w http.ResponseWriter, v viewmodel.GameView, err error) {
	if err != nil {
		writeJSON(w, statusFor(err), gameResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, gameResp{Game: &v})
}

func allow(w http.ResponseWriter, r *http.Request, method string) bool {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != method {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// ---- New ----

type newReq struct {
	Size  int `json:"size,omitempty"`
	Bombs int `json:"bombs,omitempty"`
}

func (h *Handler) handleNew(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req newReq
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, gameResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	p := h.Defaults
	if req.Size != 0 {
		p.Size = req.Size
		p.Bombs = req.Bombs
	}
	_, v, err := h.UC.NewGame(r.Context(), p)
	h.writeGame(w, v, err)
}

// ---- Click / FlagMode / State ----

type clickReq struct {
	ID string `json:"id"`
	X  int    `json:"x"`
	Y  int    `json:"y"`
}

func (h *Handler) handleClick(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req clickReq
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, gameResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	id, err := parseID(req.ID)
	if err != nil {
		h.writeGame(w, viewmodel.GameView{}, err)
		return
	}
	v, err := h.UC.Click(r.Context(), id, req.X, req.Y)
	h.writeGame(w, v, err)
}

type idReq struct {
	ID string `json:"id"`
}

func (h *Handler) handleFlagMode(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req idReq
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, gameResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	id, err := parseID(req.ID)
	if err != nil {
		h.writeGame(w, viewmodel.GameView{}, err)
		return
	}
	v, err := h.UC.ToggleFlagMode(r.Context(), id)
	h.writeGame(w, v, err)
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	id, err := parseID(r.URL.Query().Get("id"))
	if err != nil {
		h.writeGame(w, viewmodel.GameView{}, err)
		return
	}
	v, err := h.UC.State(r.Context(), id)
	h.writeGame(w, v, err)
}

// ---- Hint ----

type hintResp struct {
	Found bool        `json:"found"`
	Hint  domain.Hint `json:"hint,omitempty"`
	Error string      `json:"error,omitempty"`
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req idReq
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, hintResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	id, err := parseID(req.ID)
	if err != nil {
		writeJSON(w, statusFor(err), hintResp{Error: err.Error()})
		return
	}
	hh, ok, err := h.UC.Hint(r.Context(), id)
	if err != nil {
		writeJSON(w, statusFor(err), hintResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, hintResp{Found: ok, Hint: hh})
}

// ---- Autoplay ----

type autoplayResp struct {
	Game       *viewmodel.GameView `json:"game,omitempty"`
	Moves      int                 `json:"moves,omitempty"`
	DurationMs int64               `json:"durationMs,omitempty"`
	Error      string              `json:"error,omitempty"`
}

func (h *Handler) handleAutoplay(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req idReq
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, autoplayResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	id, err := parseID(req.ID)
	if err != nil {
		writeJSON(w, statusFor(err), autoplayResp{Error: err.Error()})
		return
	}
	v, st, err := h.UC.Autoplay(r.Context(), id)
	if err != nil {
		writeJSON(w, statusFor(err), autoplayResp{Error: err.Error(), Moves: st.Moves})
		return
	}
	writeJSON(w, http.StatusOK, autoplayResp{Game: &v, Moves: st.Moves, DurationMs: st.Duration.Milliseconds()})
}

// ---- Forget ----

type forgetResp struct {
	Forgotten bool   `json:"forgotten"`
	Error     string `json:"error,omitempty"`
}

func (h *Handler) handleForget(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req idReq
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, forgetResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	id, err := parseID(req.ID)
	if err == nil {
		err = h.UC.Forget(r.Context(), id)
	}
	if err != nil {
		writeJSON(w, statusFor(err), forgetResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, forgetResp{Forgotten: true})
}

// ---- Results ----

type resultsResp struct {
	Results []domain.RecordMeta `json:"results"`
	Error   string              `json:"error,omitempty"`
}

func (h *Handler) handleResults(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	rs, err := h.UC.Results(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, resultsResp{Error: err.Error()})
		return
	}
	if rs == nil {
		rs = []domain.RecordMeta{}
	}
	writeJSON(w, http.StatusOK, resultsResp{Results: rs})
}
