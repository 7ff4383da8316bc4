// Package errors provides sentinel errors and error types for nicechess.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidPosition indicates a board that cannot arise in a game,
	// such as one with a missing king.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrInvalidSquare indicates unparsable square notation.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrInvalidMoveText indicates unparsable move notation.
	ErrInvalidMoveText = errors.New("invalid move text")

	// ErrIllegalMove indicates a move that violates chess rules.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrPromotionPending indicates a move was offered while the game
	// waits for a promotion piece to be chosen.
	ErrPromotionPending = errors.New("promotion choice pending")

	// ErrNotYourTurn indicates input from a human while no human is
	// asked for a move or a promotion piece.
	ErrNotYourTurn = errors.New("not your move")

	// ErrGameOver indicates a move was offered after the game ended.
	ErrGameOver = errors.New("game is over")

	// ErrNoLegalMove indicates the side to move has no legal move.
	ErrNoLegalMove = errors.New("no legal move")

	// ErrSearchStopped indicates a search was cancelled before it produced a move.
	ErrSearchStopped = errors.New("search stopped")

	// ErrEngineProtocol indicates an external engine sent something unexpected
	// or stopped responding.
	ErrEngineProtocol = errors.New("engine protocol error")
)

// Reasons a move is illegal. All of them match ErrIllegalMove with errors.Is().
var (
	ErrNoPiece           = fmt.Errorf("no piece on origin square: %w", ErrIllegalMove)
	ErrWrongColour       = fmt.Errorf("piece belongs to the side not to move: %w", ErrIllegalMove)
	ErrOffBoard          = fmt.Errorf("square off the board: %w", ErrIllegalMove)
	ErrBadGeometry       = fmt.Errorf("piece cannot move that way: %w", ErrIllegalMove)
	ErrSelfCheck         = fmt.Errorf("move leaves own king in check: %w", ErrIllegalMove)
	ErrPromotionRequired = fmt.Errorf("promotion piece required: %w", ErrIllegalMove)
	ErrBadPromotion      = fmt.Errorf("promotion not allowed: %w", ErrIllegalMove)
	ErrCastleNotAllowed  = fmt.Errorf("castling not allowed: %w", ErrIllegalMove)
)

// MoveError wraps errors with game context: the ply at which the move was
// offered, the side offering it and its text. It supports unwrapping via
// errors.Is() and errors.As().
type MoveError struct {
	Err      error  // The underlying error
	Ply      int    // 1-based ply number (0 if not applicable)
	Side     string // "White" or "Black" (empty if unknown)
	MoveText string // The move text that caused the error (if applicable)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.Ply > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.Ply))
	}
	if e.Side != "" {
		parts = append(parts, e.Side)
	}
	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.MoveText))
	}

	context := strings.Join(parts, ", ")
	switch {
	case e.Err != nil && context != "":
		return fmt.Sprintf("%s: %v", context, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	case context != "":
		return context
	}
	return "move error"
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// ProtocolError records an unexpected exchange with an external engine.
type ProtocolError struct {
	Engine   string // Engine name or path
	Expected string // What was expected, e.g. "uciok"
	Got      string // The offending line (empty on EOF)
	Err      error  // The underlying error
}

// Error returns a formatted error message.
func (e *ProtocolError) Error() string {
	var parts []string
	if e.Engine != "" {
		parts = append(parts, e.Engine)
	}
	if e.Expected != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("expected %s, got %q", e.Expected, e.Got))
	} else if e.Expected != "" {
		parts = append(parts, fmt.Sprintf("expected %s", e.Expected))
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %q", e.Got))
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	if len(parts) == 0 {
		return ErrEngineProtocol.Error()
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error, or ErrEngineProtocol if none was set.
func (e *ProtocolError) Unwrap() error {
	if e.Err == nil {
		return ErrEngineProtocol
	}
	return e.Err
}

// Is makes every ProtocolError match ErrEngineProtocol.
func (e *ProtocolError) Is(target error) bool {
	return target == ErrEngineProtocol
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	return pkgerrors.WithMessage(err, context)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	return pkgerrors.WithMessagef(err, format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
