package engine

import "github.com/QuadDarv1ne/chess-rules-go/internal/chess"

// distance returns how many rows and columns apart two squares are.
func distance(from, to chess.Square) (rows, cols int) {
	return abs(to.Row - from.Row), abs(to.Col - from.Col)
}

// direction returns the unit step from one square towards another, each
// component -1, 0 or 1.
func direction(from, to chess.Square) (dRow, dCol int) {
	return sign(to.Row - from.Row), sign(to.Col - from.Col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
