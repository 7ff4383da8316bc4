// Package hashing provides duplicate detection for chess games.
package hashing

import (
	"github.com/lgbarn/nicechess-go/internal/chess"
	"github.com/lgbarn/nicechess-go/internal/game"
)

// DuplicateDetector tracks seen games for duplicate game detection.
type DuplicateDetector struct {
	// hashTable stores seen signatures by final position hash
	hashTable map[uint64][]GameSignature
	// useExactMatch also compares the moves that led to the position
	useExactMatch bool
	// maxCapacity bounds the number of stored signatures (0 = unlimited)
	maxCapacity int
	size        int
	// duplicateCount tracks number of duplicates found
	duplicateCount int
}

// GameSignature stores identifying information about a game.
type GameSignature struct {
	// Hash is the Zobrist hash of the final position
	Hash uint64
	// WeakHash is a fast hash for quick comparison
	WeakHash uint64
	// MoveCount is the number of half-moves in the game
	MoveCount int
	// MovesHash hashes the move sequence
	MovesHash uint64
}

// NewDuplicateDetector creates a new duplicate detector.
// maxCapacity of 0 means unlimited capacity.
func NewDuplicateDetector(exactMatch bool, maxCapacity int) *DuplicateDetector {
	return &DuplicateDetector{
		hashTable:     make(map[uint64][]GameSignature),
		useExactMatch: exactMatch,
		maxCapacity:   maxCapacity,
	}
}

// Signature computes the signature of a game.
func Signature(state *game.State) GameSignature {
	board := state.Board()
	return GameSignature{
		Hash:      GenerateZobristHash(&board),
		WeakHash:  WeakHash(&board),
		MoveCount: state.Ply(),
		MovesHash: hashMoveSequence(state.StartFEN(), state.History()),
	}
}

// CheckAndAdd checks if a game is a duplicate and adds it to the hash table.
// Returns true if the game is a duplicate. Once the detector is full, new
// games are still checked but no longer stored.
func (d *DuplicateDetector) CheckAndAdd(state *game.State) bool {
	sig := Signature(state)

	for _, existing := range d.hashTable[sig.Hash] {
		if d.signaturesMatch(sig, existing) {
			d.duplicateCount++
			return true
		}
	}

	if !d.IsFull() {
		d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
		d.size++
	}
	return false
}

// signaturesMatch checks if two game signatures match.
func (d *DuplicateDetector) signaturesMatch(a, b GameSignature) bool {
	if a.Hash != b.Hash || a.WeakHash != b.WeakHash {
		return false
	}
	if d.useExactMatch {
		return a.MoveCount == b.MoveCount && a.MovesHash == b.MovesHash
	}
	return true
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of unique games stored.
func (d *DuplicateDetector) UniqueCount() int {
	return d.size
}

// IsFull returns true if the detector has reached its capacity limit.
func (d *DuplicateDetector) IsFull() bool {
	return d.maxCapacity > 0 && d.size >= d.maxCapacity
}

// Reset clears the hash table.
func (d *DuplicateDetector) Reset() {
	d.hashTable = make(map[uint64][]GameSignature)
	d.size = 0
	d.duplicateCount = 0
}

// hashMoveSequence creates a hash from the start position and move texts.
func hashMoveSequence(startFEN string, moves []chess.Move) uint64 {
	var hash uint64
	multiplier := uint64(31)

	for _, c := range startFEN {
		hash = hash*multiplier + uint64(c)
	}
	for _, move := range moves {
		for _, c := range move.String() {
			hash = hash*multiplier + uint64(c)
		}
		hash = hash*multiplier + ' '
	}
	return hash
}
