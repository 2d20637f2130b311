package match

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Zarux/othello/internal/logger"
	"github.com/Zarux/othello/pkg/othello"
)

type httpHandler struct {
	svc *Service
}

func HTTPHandler(s *Service) http.Handler {
	h := &httpHandler{
		svc: s,
	}

	r := chi.NewRouter()
	r.Post("/games", h.HandleNewGame)
	r.Get("/games/{gameID}", h.HandleGetGame)
	r.Post("/games/{gameID}/moves", h.HandleNewMove)
	r.Post("/games/{gameID}/undo", h.HandleUndo)

	return r
}

type newGameRequest struct {
	Player      string `json:"player"`
	ThinkTimeMs int    `json:"thinkTimeMs"`
}

type moveRequest struct {
	Row  *int   `json:"row"`
	Col  *int   `json:"col"`
	Hash string `json:"hash,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *httpHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req newGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	human, err := othello.ParseTeam(req.Player)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	st, err := h.svc.NewGame(ctx, human, time.Duration(req.ThinkTimeMs)*time.Millisecond)
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusCreated, st)
}

func (h *httpHandler) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Game(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, st)
}

func (h *httpHandler) HandleNewMove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	if req.Row == nil || req.Col == nil {
		writeError(w, r, http.StatusBadRequest, othello.ErrMalformedMove)
		return
	}

	var hash *uint64
	if req.Hash != "" {
		v, err := strconv.ParseUint(req.Hash, 10, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err)
			return
		}
		hash = &v
	}

	move := othello.Coord{Row: *req.Row, Col: *req.Col}
	st, err := h.svc.NewMove(ctx, chi.URLParam(r, "gameID"), move, hash)
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, st)
}

func (h *httpHandler) HandleUndo(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Undo(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, st)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNotYourTurn), errors.Is(err, ErrStaleBoard),
		errors.Is(err, ErrGameOver), errors.Is(err, ErrNothingToUndo):
		return http.StatusConflict
	case errors.Is(err, othello.ErrIllegalMove), errors.Is(err, othello.ErrOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, othello.ErrMalformedMove), errors.Is(err, othello.ErrUnknownTeam):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "error", err)
	} else {
		log.Debug("request rejected", "status", status, "error", err)
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
