package hashing

import (
	"sync"

	"github.com/QuadDarv1ne/chess-rules-go/internal/chess"
)

// GameSignature identifies a replayed game by its final position.
type GameSignature struct {
	// Hash is the Zobrist hash of the final position
	Hash uint64
	// WeakHash confirms Hash
	WeakHash uint32
	// Plies is the number of half-moves played
	Plies int
}

// DuplicateDetector remembers the final positions of games seen so far.
// It is safe for concurrent use.
type DuplicateDetector struct {
	mu             sync.Mutex
	hashTable      map[uint64][]GameSignature
	exactMatch     bool // also require equal ply counts
	maxCapacity    int  // 0 = unlimited
	entries        int
	duplicateCount int
}

// NewDuplicateDetector creates a detector. With exactMatch set, two games
// only match when they also have the same number of plies. maxCapacity of
// 0 means unlimited; once full, new positions are no longer remembered.
func NewDuplicateDetector(exactMatch bool, maxCapacity int) *DuplicateDetector {
	return &DuplicateDetector{
		hashTable:   make(map[uint64][]GameSignature),
		exactMatch:  exactMatch,
		maxCapacity: maxCapacity,
	}
}

// Signature computes the signature of a game ending on board.
func Signature(board *chess.Board, plies int) GameSignature {
	return GameSignature{
		Hash:     GenerateZobristHash(board),
		WeakHash: WeakHash(board),
		Plies:    plies,
	}
}

// CheckAndAdd reports whether a game ending on board after plies half-moves
// was seen before, and remembers it otherwise.
func (d *DuplicateDetector) CheckAndAdd(board *chess.Board, plies int) bool {
	if board == nil {
		return false
	}
	sig := Signature(board, plies)

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, existing := range d.hashTable[sig.Hash] {
		if d.signaturesMatch(sig, existing) {
			d.duplicateCount++
			return true
		}
	}

	if d.maxCapacity > 0 && d.entries >= d.maxCapacity {
		return false
	}
	d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
	d.entries++
	return false
}

func (d *DuplicateDetector) signaturesMatch(a, b GameSignature) bool {
	if a.Hash != b.Hash || a.WeakHash != b.WeakHash {
		return false
	}
	return !d.exactMatch || a.Plies == b.Plies
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.duplicateCount
}

// UniqueCount returns the number of remembered games.
func (d *DuplicateDetector) UniqueCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.entries
}

// IsFull reports whether the capacity limit has been reached.
func (d *DuplicateDetector) IsFull() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.maxCapacity > 0 && d.entries >= d.maxCapacity
}

// Reset forgets every game.
func (d *DuplicateDetector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hashTable = make(map[uint64][]GameSignature)
	d.entries = 0
	d.duplicateCount = 0
}
