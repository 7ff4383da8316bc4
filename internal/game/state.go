// Package game tracks one game of chess: the board plus the bookkeeping
// the rules need across moves (clocks, repetitions, result).
package game

import (
	"fmt"

	"github.com/lgbarn/nicechess-go/internal/chess"
	"github.com/lgbarn/nicechess-go/internal/engine"
	"github.com/lgbarn/nicechess-go/internal/errors"
)

// Status is where a game stands.
type Status int

const (
	Fresh Status = iota // no move accepted yet
	InProgress
	Checkmate
	Stalemate
	Draw
)

// String returns the string representation of a status.
func (s Status) String() string {
	names := []string{"Fresh", "InProgress", "Checkmate", "Stalemate", "Draw"}
	if int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}

// IsOver reports whether the status is terminal.
func (s Status) IsOver() bool {
	return s == Checkmate || s == Stalemate || s == Draw
}

// DrawReason names the rule that drew a game.
type DrawReason int

const (
	NoDraw DrawReason = iota
	DrawStalemate
	DrawInsufficientMaterial
	DrawFiftyMoves
	DrawThreefold
)

// String returns the string representation of a draw reason.
func (r DrawReason) String() string {
	switch r {
	case DrawStalemate:
		return "stalemate"
	case DrawInsufficientMaterial:
		return "insufficient material"
	case DrawFiftyMoves:
		return "fifty-move rule"
	case DrawThreefold:
		return "threefold repetition"
	}
	return "none"
}

// fiftyMoveLimit is the largest halfmove clock at which play continues.
const fiftyMoveLimit = 99

// State owns the board of one game and everything derived from its
// history. It is mutated only by Update, Promote and CancelPromotion and
// is not safe for concurrent use; searches work on a Snapshot.
type State struct {
	board       chess.Board
	startFEN    string
	turn        int
	halfmove    int
	lastMove    chess.Move
	history     []chess.Move
	repetitions map[chess.SerialBoard]int
	threefold   bool
	check       bool
	status      Status
	drawReason  DrawReason
	pending     chess.Move
	hasPending  bool
}

// New returns a game at the standard starting position.
func New() *State {
	s := &State{}
	s.Reset()
	return s
}

// FromFEN returns a game starting from a custom position.
func FromFEN(fen string) (*State, error) {
	s := &State{}
	if err := s.Load(fen); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset restarts the game from the standard starting position.
func (s *State) Reset() {
	board := engine.NewInitialBoard()
	s.start(board, engine.Clocks{Halfmove: 0, Fullmove: 1}, engine.InitialFEN)
}

// Load restarts the game from a FEN position. On error the state is unchanged.
func (s *State) Load(fen string) error {
	board, clocks, err := engine.ParseFEN(fen)
	if err != nil {
		return err
	}
	if err := engine.Validate(board); err != nil {
		return errors.Wrapf(err, "loading %q", fen)
	}
	s.start(board, clocks, engine.FormatFEN(board, clocks))
	return nil
}

func (s *State) start(board *chess.Board, clocks engine.Clocks, fen string) {
	*s = State{
		board:       *board,
		startFEN:    fen,
		turn:        clocks.Fullmove,
		halfmove:    clocks.Halfmove,
		lastMove:    chess.NullMove,
		repetitions: make(map[chess.SerialBoard]int),
	}
	s.repetitions[s.board.Serialize()] = 1
	s.refreshStatus(Fresh)
}

// Update plays a move for the side to move.
//
// A pawn move onto the last rank without a promotion piece is not played:
// the game waits for Promote or CancelPromotion and ErrPromotionRequired is
// returned. Illegal moves leave the state untouched and return an error
// wrapping ErrIllegalMove. Moves after the game has ended return ErrGameOver.
func (s *State) Update(move chess.Move) error {
	if s.status.IsOver() {
		return s.moveError(move, errors.ErrGameOver)
	}
	if s.hasPending {
		return s.moveError(move, errors.ErrPromotionPending)
	}

	move = engine.ResolveMove(&s.board, move)
	if move.Promotion == chess.NoPieceType && move.NeedsPromotion() {
		if err := engine.CheckMove(&s.board, move.WithPromotion(chess.Queen)); err != nil {
			return s.moveError(move, err)
		}
		s.pending = move
		s.hasPending = true
		return s.moveError(move, errors.ErrPromotionRequired)
	}

	if err := engine.CheckMove(&s.board, move); err != nil {
		return s.moveError(move, err)
	}
	s.apply(move)
	return nil
}

// Promote completes a pending promotion with the given piece.
func (s *State) Promote(t chess.PieceType) error {
	if !s.hasPending {
		return fmt.Errorf("no promotion pending: %w", errors.ErrIllegalMove)
	}
	move := s.pending.WithPromotion(t)
	if err := engine.CheckMove(&s.board, move); err != nil {
		return s.moveError(move, err)
	}
	s.hasPending = false
	s.pending = chess.NullMove
	s.apply(move)
	return nil
}

// CancelPromotion abandons a pending promotion; the side to move moves again.
func (s *State) CancelPromotion() {
	s.hasPending = false
	s.pending = chess.NullMove
}

// PendingPromotion returns the move waiting for a promotion piece.
func (s *State) PendingPromotion() (chess.Move, bool) {
	return s.pending, s.hasPending
}

// apply records a legal move.
func (s *State) apply(move chess.Move) {
	mover := s.board.ToMove
	irreversible := move.Piece.Type == chess.Pawn || engine.IsCapture(&s.board, move)

	if irreversible {
		s.halfmove = 0
	} else {
		s.halfmove++
	}

	engine.ApplyMove(&s.board, move)

	// No earlier position can recur after a pawn move or capture.
	if irreversible {
		clear(s.repetitions)
	}
	key := s.board.Serialize()
	s.repetitions[key]++
	if s.repetitions[key] >= 3 {
		s.threefold = true
	}

	if mover == chess.Black {
		s.turn++
	}
	s.lastMove = move
	s.history = append(s.history, move)
	s.refreshStatus(InProgress)
}

// refreshStatus recomputes check and the result. live is the status to
// report when the game goes on.
func (s *State) refreshStatus(live Status) {
	colour := s.board.ToMove
	s.check = engine.IsInCheck(&s.board, colour)
	s.drawReason = NoDraw

	switch {
	case !engine.HasLegalMoves(&s.board, colour):
		if s.check {
			s.status = Checkmate
			return
		}
		s.status = Stalemate
		s.drawReason = DrawStalemate
		return
	case engine.IsMaterialDraw(&s.board):
		s.drawReason = DrawInsufficientMaterial
	case s.halfmove > fiftyMoveLimit:
		s.drawReason = DrawFiftyMoves
	case s.threefold:
		s.drawReason = DrawThreefold
	}

	if s.drawReason != NoDraw {
		s.status = Draw
		return
	}
	s.status = live
}

func (s *State) moveError(move chess.Move, err error) error {
	return &errors.MoveError{
		Err:      err,
		Ply:      len(s.history) + 1,
		Side:     s.board.ToMove.String(),
		MoveText: move.String(),
	}
}

// IsDraw reports whether the game is drawn: stalemate, insufficient
// material, a halfmove clock above 99 or a threefold repetition.
func (s *State) IsDraw() bool {
	return s.status == Stalemate || s.status == Draw
}

// DrawReason returns the rule that drew the game, NoDraw otherwise.
func (s *State) DrawReason() DrawReason {
	return s.drawReason
}

// Status returns where the game stands.
func (s *State) Status() Status {
	return s.status
}

// Winner returns the side that delivered checkmate.
func (s *State) Winner() (chess.Colour, bool) {
	if s.status != Checkmate {
		return chess.White, false
	}
	return s.board.ToMove.Opposite(), true
}

// IsPositionSelectable reports whether a piece of the side to move stands on pos.
func (s *State) IsPositionSelectable(pos chess.Position) bool {
	piece := s.board.Get(pos)
	return !piece.IsEmpty() && piece.Colour == s.board.ToMove
}

// FEN returns the position in Forsyth-Edwards Notation.
func (s *State) FEN() string {
	return engine.FormatFEN(&s.board, engine.Clocks{Halfmove: s.halfmove, Fullmove: s.turn})
}

// StartFEN returns the FEN the game started from.
func (s *State) StartFEN() string {
	return s.startFEN
}

// Board returns a copy of the board.
func (s *State) Board() chess.Board {
	return s.board
}

// ToMove returns the side to move.
func (s *State) ToMove() chess.Colour {
	return s.board.ToMove
}

// TurnNumber returns the full-move number.
func (s *State) TurnNumber() int {
	return s.turn
}

// HalfmoveClock returns the plies since the last pawn move or capture.
func (s *State) HalfmoveClock() int {
	return s.halfmove
}

// InCheck reports whether the side to move is in check.
func (s *State) InCheck() bool {
	return s.check
}

// IsThreefold reports whether any position has occurred three times.
func (s *State) IsThreefold() bool {
	return s.threefold
}

// Repetitions returns how often the current position has occurred since
// the last irreversible move.
func (s *State) Repetitions() int {
	return s.repetitions[s.board.Serialize()]
}

// LastMove returns the most recent move, or NullMove.
func (s *State) LastMove() chess.Move {
	return s.lastMove
}

// History returns the moves played so far.
func (s *State) History() []chess.Move {
	out := make([]chess.Move, len(s.history))
	copy(out, s.history)
	return out
}

// Ply returns the number of moves played so far.
func (s *State) Ply() int {
	return len(s.history)
}

// LegalMoves returns the legal moves of the side to move, or nil once the
// game is over.
func (s *State) LegalMoves() []chess.Move {
	if s.status.IsOver() {
		return nil
	}
	return engine.LegalMoves(&s.board)
}

// Snapshot returns an independent deep copy of the state.
func (s *State) Snapshot() *State {
	c := *s
	c.history = s.History()
	c.repetitions = make(map[chess.SerialBoard]int, len(s.repetitions))
	for k, v := range s.repetitions {
		c.repetitions[k] = v
	}
	return &c
}

// TakeBack undoes the last n moves by replaying the game from its start
// position. A pending promotion is dropped. On error the state is unchanged.
func (s *State) TakeBack(n int) error {
	if n < 0 || n > len(s.history) {
		return fmt.Errorf("cannot take back %d of %d moves: %w", n, len(s.history), errors.ErrIllegalMove)
	}
	replay, err := FromFEN(s.startFEN)
	if err != nil {
		return err
	}
	for _, move := range s.history[:len(s.history)-n] {
		if err := replay.Update(move); err != nil {
			return errors.Wrap(err, "replaying game")
		}
	}
	*s = *replay
	return nil
}
