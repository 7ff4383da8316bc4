// Package match drives a game between two players. The match goroutine is
// the only one that changes the game; each turn the side to move thinks in
// a worker goroutine on a snapshot, and that worker is joined before the
// next one starts.
package match

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/lgbarn/nicechess-go/internal/chess"
	"github.com/lgbarn/nicechess-go/internal/errors"
	"github.com/lgbarn/nicechess-go/internal/game"
	"github.com/lgbarn/nicechess-go/internal/player"
)

// Ply is one move played in a match, as reported to observers.
type Ply struct {
	Number  int // 1-based
	Colour  chess.Colour
	Move    chess.Move
	FEN     string // position after the move
	Elapsed time.Duration
}

// Match plays one game.
type Match struct {
	ID uuid.UUID

	white, black player.Player
	state        *game.State

	minMoveTime time.Duration
	maxPlies    int
	logger      *log.Logger
	observer    func(Ply)
	onReject    func(error)

	mu      sync.Mutex
	cancel  context.CancelFunc
	undo    chan struct{}
	workers sync.WaitGroup
}

// Option configures a Match.
type Option func(*Match)

// WithMinMoveTime delays computer moves until d has passed since they
// started thinking.
func WithMinMoveTime(d time.Duration) Option {
	return func(m *Match) {
		if d > 0 {
			m.minMoveTime = d
		}
	}
}

// WithMaxPlies ends the match unfinished after n plies.
func WithMaxPlies(n int) Option {
	return func(m *Match) {
		if n > 0 {
			m.maxPlies = n
		}
	}
}

// WithLogger sets the logger for move commentary.
func WithLogger(l *log.Logger) Option {
	return func(m *Match) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithObserver registers a function called after every move.
func WithObserver(fn func(Ply)) Option {
	return func(m *Match) {
		m.observer = fn
	}
}

// WithRejectHandler registers a function called with the error when a
// human's move is rejected, before the human is asked again.
func WithRejectHandler(fn func(error)) Option {
	return func(m *Match) {
		m.onReject = fn
	}
}

// New creates a match on state. The players must sit on their own sides.
func New(white, black player.Player, state *game.State, opts ...Option) (*Match, error) {
	if white.Colour() != chess.White || black.Colour() != chess.Black {
		return nil, errors.Wrap(errors.ErrInvalidConfig, "players on the wrong side")
	}
	m := &Match{
		ID:     uuid.New(),
		white:  white,
		black:  black,
		state:  state,
		logger: log.New(io.Discard, "", 0),
		undo:   make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// State returns the game. It must not be changed while Run is active.
func (m *Match) State() *game.State { return m.state }

// Player returns the player of the given side.
func (m *Match) Player(colour chess.Colour) player.Player {
	if colour == chess.White {
		return m.white
	}
	return m.black
}

// Run plays until the game ends, the move limit is hit, or the match is
// stopped through Stop or ctx. A stopped match returns its result with
// ReasonStopped and no error.
func (m *Match) Run(ctx context.Context) (Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	m.mu.Lock()
	m.cancel = cancel
	m.mu.Unlock()

	if err := m.newGame(); err != nil {
		return resultOf(m.state, ""), err
	}
	m.logger.Printf("match %s: %s", m.ID, m.state.FEN())

	for !m.state.Status().IsOver() {
		if m.maxPlies > 0 && m.state.Ply() >= m.maxPlies {
			return resultOf(m.state, ReasonMaxPlies), nil
		}

		err := m.turn(ctx)
		switch {
		case ctx.Err() != nil:
			return resultOf(m.state, ReasonStopped), nil
		case err != nil:
			return resultOf(m.state, ""), err
		}
	}

	res := resultOf(m.state, "")
	m.logger.Printf("match %s: %s %s", m.ID, res.PGN(), res.Reason)
	return res, nil
}

func (m *Match) newGame() error {
	var errs error
	for _, p := range []player.Player{m.white, m.black} {
		if err := p.NewGame(m.state.Snapshot()); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs
}

// turn gets one move from the side to move and plays it. A human's illegal
// move is reported and the human is asked again.
func (m *Match) turn(ctx context.Context) error {
	mover := m.Player(m.state.ToMove())
	start := time.Now()

	move, err := m.think(ctx, mover)
	if err == nil && ctx.Err() != nil {
		err = errors.ErrSearchStopped
	}
	if err == nil && !mover.IsHuman() {
		err = m.pace(ctx, start)
	}
	if errors.Is(err, errUndone) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := m.play(ctx, mover, move); err != nil {
		if mover.IsHuman() && errors.Is(err, errors.ErrIllegalMove) {
			m.logger.Printf("%v", err)
			if m.onReject != nil {
				m.onReject(err)
			}
			return nil
		}
		return err
	}

	played := m.state.LastMove()
	if err := m.Player(m.state.ToMove()).OpponentMove(played, m.state.Snapshot()); err != nil {
		return err
	}
	m.notify(played, time.Since(start))
	return nil
}

var errUndone = errors.Wrap(errors.ErrSearchStopped, "move taken back")

type thought struct {
	move chess.Move
	err  error
}

// think runs mover.Think in a worker goroutine and joins it. An undo
// request cancels the worker and takes moves back.
func (m *Match) think(ctx context.Context, mover player.Player) (chess.Move, error) {
	turnCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	snapshot := m.state.Snapshot()
	results := make(chan thought, 1)
	m.workers.Add(1)
	go func() {
		defer m.workers.Done()
		move, err := mover.Think(turnCtx, snapshot)
		results <- thought{move, err}
	}()

	var t thought
	select {
	case t = <-results:
	case <-m.undo:
		cancel()
		<-results
		m.workers.Wait()
		if err := m.rewind(); err != nil {
			return chess.NullMove, err
		}
		return chess.NullMove, errUndone
	}
	m.workers.Wait()
	return t.move, t.err
}

// pace holds a computer move back until the minimum move time has passed.
// An undo request while waiting drops the move and takes moves back.
func (m *Match) pace(ctx context.Context, start time.Time) error {
	wait := m.minMoveTime - time.Since(start)
	if wait <= 0 {
		return nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-m.undo:
		if err := m.rewind(); err != nil {
			return err
		}
		return errUndone
	case <-ctx.Done():
		return errors.ErrSearchStopped
	}
}

// play updates the game, asking for a promotion piece when the move needs
// one and does not name it.
func (m *Match) play(ctx context.Context, mover player.Player, move chess.Move) error {
	err := m.state.Update(move)
	if !errors.Is(err, errors.ErrPromotionRequired) {
		return err
	}

	pending, _ := m.state.PendingPromotion()
	piece := chess.Queen
	if p, ok := mover.(player.Promoter); ok {
		if piece, err = p.ChoosePromotion(ctx, pending); err != nil {
			m.state.CancelPromotion()
			return err
		}
	}
	if err := m.state.Promote(piece); err != nil {
		m.state.CancelPromotion()
		return err
	}
	return nil
}

func (m *Match) notify(move chess.Move, elapsed time.Duration) {
	ply := Ply{
		Number:  m.state.Ply(),
		Colour:  move.Piece.Colour,
		Move:    move,
		FEN:     m.state.FEN(),
		Elapsed: elapsed,
	}
	m.logger.Printf("%d. %s %s (%s)", ply.Number, ply.Colour, ply.Move, elapsed.Round(time.Millisecond))
	if m.observer != nil {
		m.observer(ply)
	}
}

// RequestUndo asks a running match to take back the last two plies, or
// the only one, and let the side then to move think again. It takes effect
// while a player thinks or a computer move waits out the minimum move
// time. A request made while a human chooses a promotion piece is kept
// until the next turn starts.
func (m *Match) RequestUndo() {
	select {
	case m.undo <- struct{}{}:
	default:
	}
}

// rewind takes back the last two plies, or the only one, and tells the
// players that keep their own board.
func (m *Match) rewind() error {
	back := 2
	if n := m.state.Ply(); n < back {
		back = n
	}
	if back == 0 {
		return nil
	}
	if err := m.state.TakeBack(back); err != nil {
		return err
	}

	var errs error
	for i := 0; i < back; i++ {
		for _, p := range []player.Player{m.white, m.black} {
			if u, ok := p.(player.Undoer); ok {
				if err := u.UndoMove(); err != nil {
					errs = multierror.Append(errs, err)
				}
			}
		}
	}
	m.logger.Printf("match %s: took back %d plies", m.ID, back)
	return errs
}

// Stop cancels a running match. Run returns with ReasonStopped.
func (m *Match) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		m.cancel()
	}
}

// Close stops the match and closes both players.
func (m *Match) Close() error {
	m.Stop()
	m.workers.Wait()

	var errs error
	for _, p := range []player.Player{m.white, m.black} {
		if err := p.Close(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs
}
