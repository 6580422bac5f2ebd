package server

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/QuadDarv1ne/chess-rules-go/internal/chess"
	"github.com/QuadDarv1ne/chess-rules-go/internal/errors"
	"github.com/QuadDarv1ne/chess-rules-go/internal/game"
)

// maxBodyBytes bounds request bodies; a grid fits easily.
const maxBodyBytes = 1 << 16

// CreateRequest starts a game from a grid, or from the initial position
// when Grid is empty.
type CreateRequest struct {
	Grid   []string `json:"grid,omitempty"`
	ToMove string   `json:"toMove,omitempty"`
}

// MoveRequest carries either a SAN move or a coordinate move.
type MoveRequest struct {
	SAN       string `json:"san,omitempty"`
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
	Promotion string `json:"promotion,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"games":  s.games.Len(),
	})
}

func (s *Server) createGame(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	board, err := req.board()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	g, err := s.games.Create(board)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info().Str("game", g.ID).Msg("game created")
	writeJSON(w, http.StatusCreated, g.State())
}

// board builds the starting board, or returns nil for the initial position.
func (req CreateRequest) board() (*chess.Board, error) {
	colour := chess.White
	if req.ToMove != "" {
		c, ok := chess.ParseColour(req.ToMove)
		if !ok {
			return nil, fmt.Errorf("side to move %q: %w", req.ToMove, errors.ErrInvalidGrid)
		}
		colour = c
	}
	if len(req.Grid) == 0 {
		if colour == chess.White {
			return nil, nil
		}
		board := chess.NewInitialBoard()
		board.ToMove = colour
		return board, nil
	}
	return chess.NewBoardFromGrid(req.Grid, colour)
}

func (s *Server) getGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.games.Get(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g.State())
}

func (s *Server) deleteGame(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.games.Delete(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.hub.CloseGame(id)
	s.log.Info().Str("game", id).Msg("game deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) postMove(w http.ResponseWriter, r *http.Request) {
	g, err := s.games.Get(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req MoveRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var ev game.Event
	if req.SAN != "" {
		ev, err = g.MoveSAN(req.SAN)
	} else {
		var m chess.Move
		m, err = req.move()
		if err == nil {
			ev, err = g.Move(m)
		}
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.log.Debug().Str("game", g.ID).Int("ply", ev.Ply).Str("san", ev.SAN).Stringer("status", ev.Status).Msg("move")
	s.hub.Broadcast(ev)
	writeJSON(w, http.StatusOK, g.State())
}

// move converts the coordinate fields of req.
func (req MoveRequest) move() (chess.Move, error) {
	if req.From == "" || req.To == "" {
		return chess.Move{}, fmt.Errorf("need san or from and to: %w", errors.ErrInvalidSAN)
	}
	from, ok := chess.ParseSquare(req.From)
	if !ok {
		return chess.Move{}, fmt.Errorf("from square %q: %w", req.From, errors.ErrInvalidSAN)
	}
	to, ok := chess.ParseSquare(req.To)
	if !ok {
		return chess.Move{}, fmt.Errorf("to square %q: %w", req.To, errors.ErrInvalidSAN)
	}

	m := chess.NewMove(from, to)
	if req.Promotion != "" {
		if len(req.Promotion) != 1 {
			return chess.Move{}, fmt.Errorf("promotion %q: %w", req.Promotion, errors.ErrInvalidSAN)
		}
		m.Flag = chess.PromotionFlag(chess.KindFromLetter(req.Promotion[0]))
		if m.Flag == chess.NoFlag {
			return chess.Move{}, fmt.Errorf("promotion %q: %w", req.Promotion, errors.ErrInvalidSAN)
		}
	}
	return m, nil
}

func (s *Server) suggest(w http.ResponseWriter, r *http.Request) {
	g, err := s.games.Get(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rng := s.cfg.Rules.NewRand()
	if v := r.URL.Query().Get("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid seed: " + v})
			return
		}
		rng = rand.New(rand.NewSource(seed))
	}

	sg, err := g.Suggest(rng)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sg)
}

// opening classifies a game begun from the initial position.
func (s *Server) opening(w http.ResponseWriter, r *http.Request) {
	g, err := s.games.Get(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !g.FromInitialPosition() {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: "game did not start from the initial position"})
		return
	}

	entry := s.book.Classify(g.State().History)
	if entry == nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "no opening matched"})
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not found"})
}

// decodeBody reads an optional JSON body into v. An empty body leaves v
// untouched.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && err != io.EOF {
		return &badRequestError{err: err}
	}
	return nil
}

// badRequestError marks a body that could not be decoded.
type badRequestError struct {
	err error
}

func (e *badRequestError) Error() string { return "malformed request: " + e.err.Error() }
func (e *badRequestError) Unwrap() error { return e.err }

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var bad *badRequestError
	switch {
	case errors.As(err, &bad):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrTooManyGames):
		return http.StatusServiceUnavailable
	case errors.Is(err, errors.ErrIllegalMove),
		errors.Is(err, errors.ErrNoCandidate),
		errors.Is(err, errors.ErrAmbiguousMove):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errors.ErrInvalidSAN),
		errors.Is(err, errors.ErrInvalidGrid),
		errors.Is(err, errors.ErrPrecondition):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
