package game

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/QuadDarv1ne/chess-rules-go/internal/chess"
	"github.com/QuadDarv1ne/chess-rules-go/internal/engine"
	"github.com/QuadDarv1ne/chess-rules-go/internal/errors"
	"github.com/QuadDarv1ne/chess-rules-go/internal/testutil"
)

func newGame(t *testing.T, board *chess.Board, strict bool) *Game {
	t.Helper()
	g, err := New("test", board, strict)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return g
}

func TestMove_LooseNeverCapturesKing(t *testing.T) {
	board := testutil.MustBoard(t, []string{
		"....k...",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"K...R...",
	}, chess.White)
	g := newGame(t, board, false)

	_, err := g.MoveSAN("Rxe8")
	testutil.AssertErrorIs(t, err, errors.ErrIllegalMove)
	testutil.AssertEqual(t, g.Plies(), 0)

	state := g.State()
	testutil.AssertEqual(t, state.Status, engine.Ongoing)
	testutil.AssertNoError(t, engine.ValidatePosition(g.Board()))
}

func TestNew_InitialState(t *testing.T) {
	g := newGame(t, nil, true)
	state := g.State()

	testutil.AssertEqual(t, state.ID, "test")
	testutil.AssertEqual(t, state.ToMove, "White")
	testutil.AssertEqual(t, state.Status, engine.Ongoing)
	testutil.AssertFalse(t, state.InCheck)
	testutil.AssertEqual(t, len(state.History), 0)
	testutil.AssertEqual(t, len(state.LegalMoves), 20)
	testutil.AssertEqual(t, state.Grid[6], "PPPPPPPP")
	testutil.AssertEqual(t, state.FEN, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1")
	testutil.AssertTrue(t, g.FromInitialPosition())
}

func TestNew_RejectsBoardWithoutKings(t *testing.T) {
	_, err := New("x", chess.NewBoard(), true)
	testutil.AssertErrorIs(t, err, errors.ErrPrecondition)
}

func TestNew_CopiesBoard(t *testing.T) {
	board := chess.NewInitialBoard()
	g := newGame(t, board, true)
	board.Set(chess.MustSquare("e2"), chess.Empty)

	testutil.AssertEqual(t, g.Board().At(chess.MustSquare("e2")), chess.W(chess.Pawn))
	testutil.AssertFalse(t, g.FromInitialPosition())
}

func TestMoveSAN_ScholarsMate(t *testing.T) {
	g := newGame(t, nil, true)

	var last Event
	for _, s := range []string{"e4", "e5", "Bc4", "Nc6", "Qh5", "Nf6", "Qxf7"} {
		ev, err := g.MoveSAN(s)
		if err != nil {
			t.Fatalf("MoveSAN(%q) error: %v", s, err)
		}
		last = ev
	}

	testutil.AssertEqual(t, last.Ply, 7)
	testutil.AssertEqual(t, last.SAN, "Qxf7#")
	testutil.AssertEqual(t, last.Move, "h5f7")
	testutil.AssertEqual(t, last.Status, engine.Checkmate)

	state := g.State()
	testutil.AssertEqual(t, state.History, []string{"e4", "e5", "Bc4", "Nc6", "Qh5", "Nf6", "Qxf7#"})
	testutil.AssertTrue(t, state.InCheck)
	testutil.AssertEqual(t, len(state.LegalMoves), 0)

	_, err := g.MoveSAN("Ke7")
	testutil.AssertErrorIs(t, err, errors.ErrIllegalMove)
}

func TestMove_Coordinates(t *testing.T) {
	g := newGame(t, nil, true)
	for _, m := range testutil.MustMoves(t, "e2e4 e7e5 g1f3") {
		if _, err := g.Move(m); err != nil {
			t.Fatalf("Move(%s) error: %v", m, err)
		}
	}
	testutil.AssertEqual(t, g.State().History, []string{"e4", "e5", "Nf3"})

	_, err := g.Move(testutil.MustMoves(t, "f3f5")[0])
	testutil.AssertErrorIs(t, err, errors.ErrIllegalMove)
	testutil.AssertEqual(t, len(g.State().History), 3)
}

func TestMove_KingStepCastles(t *testing.T) {
	g := newGame(t, testutil.MustBoard(t, testutil.TwoRooks, chess.White), true)

	ev, err := g.Move(chess.NewMove(chess.MustSquare("e1"), chess.MustSquare("g1")))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ev.SAN, "O-O")

	board := g.Board()
	testutil.AssertEqual(t, board.At(chess.MustSquare("g1")), chess.W(chess.King))
	testutil.AssertEqual(t, board.At(chess.MustSquare("f1")), chess.W(chess.Rook))
}

func TestMove_StrictAndPseudoLegal(t *testing.T) {
	pinned := []string{
		"....k...",
		"....r...",
		"........",
		"........",
		"........",
		"........",
		"....B...",
		"....K...",
	}
	expose := chess.NewMove(chess.MustSquare("e2"), chess.MustSquare("d3"))

	strict := newGame(t, testutil.MustBoard(t, pinned, chess.White), true)
	_, err := strict.Move(expose)
	testutil.AssertErrorIs(t, err, errors.ErrIllegalMove)

	loose := newGame(t, testutil.MustBoard(t, pinned, chess.White), false)
	ev, err := loose.Move(expose)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ev.SAN, "Bd3")

	// Black may not take the exposed king.
	_, err = loose.Move(chess.NewMove(chess.MustSquare("e7"), chess.MustSquare("e1")))
	testutil.AssertErrorIs(t, err, errors.ErrIllegalMove)
}

func TestMoveSAN_Errors(t *testing.T) {
	g := newGame(t, nil, true)

	_, err := g.MoveSAN("Zz9")
	testutil.AssertErrorIs(t, err, errors.ErrInvalidSAN)
	_, err = g.MoveSAN("Nd4")
	testutil.AssertErrorIs(t, err, errors.ErrNoCandidate)
	testutil.AssertEqual(t, len(g.State().History), 0)
}

func TestSuggest(t *testing.T) {
	g := newGame(t, nil, true)

	a, err := g.Suggest(rand.New(rand.NewSource(3)))
	testutil.AssertNoError(t, err)
	b, err := g.Suggest(rand.New(rand.NewSource(3)))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, a, b)

	m, ok := chess.ParseCoordinate(a.Move)
	testutil.AssertTrue(t, ok)
	testutil.AssertTrue(t, engine.IsFullyLegal(g.Board(), m))
	testutil.AssertEqual(t, len(g.State().History), 0, "Suggest must not play the move")

	stale := newGame(t, testutil.MustBoard(t, testutil.StalemateKQ, chess.Black), true)
	_, err = stale.Suggest(rand.New(rand.NewSource(3)))
	testutil.AssertErrorIs(t, err, errors.ErrNoCandidate)
}

func TestGame_ConcurrentMoves(t *testing.T) {
	g := newGame(t, nil, true)

	// Several goroutines race to play the same first move; exactly one wins.
	var wg sync.WaitGroup
	results := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = g.MoveSAN("e4")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		}
	}
	testutil.AssertEqual(t, succeeded, 1)
	testutil.AssertEqual(t, g.State().History, []string{"e4"})
}
