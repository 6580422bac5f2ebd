package eco

import (
	"strings"
	"testing"

	"github.com/QuadDarv1ne/chess-rules-go/internal/testutil"
)

func TestBuiltinClassifier(t *testing.T) {
	c := NewBuiltinClassifier()
	testutil.AssertTrue(t, c.EntriesLoaded() > 30)

	tests := []struct {
		name    string
		moves   string
		want    string
		opening string
	}{
		{"exact line", "e4 c5 Nf3 d6", "B50", "Sicilian Defence"},
		{"deepest match wins", "e4 e5 Nf3 Nc6 Bb5 a6 Ba4 Nf6", "C60", "Ruy Lopez"},
		{"transposition", "Nf3 c5 e4 d6", "B50", "Sicilian Defence"},
		{"queen's gambit", "d4 d5 c4 e6 Nc3", "D30", "Queen's Gambit Declined"},
		{"single move", "c4", "A10", "English Opening"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(strings.Fields(tt.moves))
			if got == nil {
				t.Fatalf("Classify(%q) = nil, want %s", tt.moves, tt.want)
			}
			testutil.AssertEqual(t, got.Code, tt.want)
			testutil.AssertEqual(t, got.Opening, tt.opening)
		})
	}
}

func TestClassify_NoMatch(t *testing.T) {
	c := NewBuiltinClassifier()
	if got := c.Classify([]string{"a3", "a6"}); got != nil {
		t.Errorf("Classify(a3 a6) = %v, want nil", got)
	}
	if got := c.Classify(nil); got != nil {
		t.Errorf("Classify(nil) = %v, want nil", got)
	}
	if got := NewClassifier().Classify([]string{"e4"}); got != nil {
		t.Errorf("empty classifier matched %v", got)
	}
}

func TestLoadFromReader(t *testing.T) {
	book := "# custom\n\nX01\tDouble King Pawn\t1. e4 e5\nX01\tDouble King Pawn\te4 e5\n"
	c := NewClassifier()
	testutil.AssertNoError(t, c.LoadFromReader(strings.NewReader(book)))
	testutil.AssertEqual(t, c.EntriesLoaded(), 1)

	got := c.Classify([]string{"e4", "e5", "Nf3"})
	if got == nil {
		t.Fatal("expected a match")
	}
	testutil.AssertEqual(t, got.String(), "X01 Double King Pawn")
	testutil.AssertEqual(t, got.Moves, "1. e4 e5")
	testutil.AssertEqual(t, got.HalfMoves, 2)
}

func TestLoadFromReader_Errors(t *testing.T) {
	c := NewClassifier()
	err := c.LoadFromReader(strings.NewReader("X01 no tabs here\n"))
	testutil.AssertContains(t, err.Error(), "ECO line 1")

	err = c.LoadFromReader(strings.NewReader("X02\tBad\te4 Ke7\n"))
	testutil.AssertContains(t, err.Error(), "ECO line 1")
	testutil.AssertEqual(t, c.EntriesLoaded(), 0)
}

func TestLoadFromFile_Missing(t *testing.T) {
	err := NewClassifier().LoadFromFile(t.TempDir() + "/missing.tsv")
	testutil.AssertContains(t, err.Error(), "cannot open ECO file")
}

func BenchmarkClassify(b *testing.B) {
	c := NewBuiltinClassifier()
	history := strings.Fields("e4 e5 Nf3 Nc6 Bb5 a6 Ba4 Nf6 O-O Be7")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Classify(history)
	}
}
