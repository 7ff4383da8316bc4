package player

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/lgbarn/nicechess-go/internal/chess"
	"github.com/lgbarn/nicechess-go/internal/engine"
	"github.com/lgbarn/nicechess-go/internal/errors"
	"github.com/lgbarn/nicechess-go/internal/game"
)

// Protocol is the text protocol an external engine speaks.
type Protocol int

// Supported protocols.
const (
	UCI Protocol = iota
	Xboard
)

func (p Protocol) String() string {
	if p == Xboard {
		return "xboard"
	}
	return "uci"
}

// ParseProtocol parses "uci" or "xboard".
func ParseProtocol(s string) (Protocol, error) {
	switch strings.ToLower(s) {
	case "uci":
		return UCI, nil
	case "xboard", "winboard", "cecp":
		return Xboard, nil
	}
	return UCI, fmt.Errorf("unknown engine protocol %q: %w", s, errors.ErrInvalidConfig)
}

const (
	handshakeTimeout = 10 * time.Second
	stopGrace        = 500 * time.Millisecond
	exitGrace        = 2 * time.Second
	lineBuffer       = 64
)

// External drives a chess engine in another process over its standard
// input and output.
type External struct {
	base
	name  string
	proto Protocol

	mu     sync.Mutex // guards w
	w      *bufio.Writer
	closer io.Closer

	lines   chan string
	done    chan struct{}
	readErr error

	cmd       *exec.Cmd
	ready     bool
	usermove  bool
	pings     int
	closeOnce sync.Once
}

// StartExternal runs the engine at path and connects to it. The handshake
// happens on the first NewGame.
func StartExternal(ctx context.Context, name, path string, proto Protocol, colour chess.Colour, ply int, logger *log.Logger) (*External, error) {
	cmd := exec.CommandContext(ctx, path) //nolint:gosec // G204: the engine path is chosen by the user
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.Wrapf(err, "engine %s", path)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrapf(err, "engine %s", path)
	}
	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, "starting engine %s", path)
	}

	e := NewExternal(name, proto, colour, ply, stdout, stdin, logger)
	e.cmd = cmd
	return e, nil
}

// NewExternal connects to an engine reading from r and writing to w. If w
// is an io.Closer it is closed by Close.
func NewExternal(name string, proto Protocol, colour chess.Colour, ply int, r io.Reader, w io.Writer, logger *log.Logger) *External {
	if ply < 1 {
		ply = 1
	}
	e := &External{
		base:  newBase(colour, ply, logger),
		name:  name,
		proto: proto,
		w:     bufio.NewWriter(w),
		lines: make(chan string, lineBuffer),
		done:  make(chan struct{}),
	}
	if c, ok := w.(io.Closer); ok {
		e.closer = c
	}
	go e.readLoop(r)
	return e
}

// Name returns the engine's display name.
func (e *External) Name() string { return e.name }

// Protocol returns the protocol the engine speaks.
func (e *External) Protocol() Protocol { return e.proto }

func (e *External) readLoop(r io.Reader) {
	defer close(e.lines)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		select {
		case e.lines <- strings.TrimSpace(sc.Text()):
		case <-e.done:
			return
		}
	}
	e.readErr = sc.Err()
}

func (e *External) send(format string, args ...interface{}) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	line := fmt.Sprintf(format, args...)
	e.logger.Printf("%s < %s", e.name, line)
	if _, err := fmt.Fprintln(e.w, line); err != nil {
		return &errors.ProtocolError{Engine: e.name, Err: err}
	}
	if err := e.w.Flush(); err != nil {
		return &errors.ProtocolError{Engine: e.name, Err: err}
	}
	return nil
}

// expect reads lines until match accepts one. It returns ctx.Err() when
// ctx is done first and a ProtocolError when the engine hangs up.
func (e *External) expect(ctx context.Context, expected string, match func(string) bool) (string, error) {
	for {
		select {
		case line, ok := <-e.lines:
			if !ok {
				err := e.readErr
				if err == nil {
					err = io.ErrUnexpectedEOF
				}
				return "", &errors.ProtocolError{Engine: e.name, Expected: expected, Err: err}
			}
			e.logger.Printf("%s > %s", e.name, line)
			e.noteFeatures(line)
			if match(line) {
				return line, nil
			}
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

func (e *External) expectWithin(timeout time.Duration, expected string, match func(string) bool) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	line, err := e.expect(ctx, expected, match)
	if err == context.DeadlineExceeded {
		return "", &errors.ProtocolError{Engine: e.name, Expected: expected, Err: err}
	}
	return line, err
}

func (e *External) noteFeatures(line string) {
	if e.proto == Xboard && strings.HasPrefix(line, "feature ") && strings.Contains(line, "usermove=1") {
		e.usermove = true
	}
}

func equals(want string) func(string) bool {
	return func(line string) bool { return line == want }
}

func hasPrefix(prefix string) func(string) bool {
	return func(line string) bool { return strings.HasPrefix(line, prefix) }
}

func (e *External) handshake() error {
	if e.ready {
		return nil
	}
	switch e.proto {
	case UCI:
		if err := e.send("uci"); err != nil {
			return err
		}
		if _, err := e.expectWithin(handshakeTimeout, "uciok", equals("uciok")); err != nil {
			return err
		}
	case Xboard:
		if err := e.send("xboard"); err != nil {
			return err
		}
		if err := e.send("protover 2"); err != nil {
			return err
		}
		if err := e.sync(); err != nil {
			return err
		}
	}
	e.ready = true
	return nil
}

// sync waits until the engine has processed every command sent so far.
func (e *External) sync() error {
	if e.proto == UCI {
		if err := e.send("isready"); err != nil {
			return err
		}
		_, err := e.expectWithin(handshakeTimeout, "readyok", equals("readyok"))
		return err
	}
	e.pings++
	pong := fmt.Sprintf("pong %d", e.pings)
	if err := e.send("ping %d", e.pings); err != nil {
		return err
	}
	_, err := e.expectWithin(handshakeTimeout, pong, equals(pong))
	return err
}

// NewGame starts the engine on the given position.
func (e *External) NewGame(state *game.State) error {
	if err := e.handshake(); err != nil {
		return err
	}
	if e.proto == UCI {
		if err := e.send("ucinewgame"); err != nil {
			return err
		}
		return e.sync()
	}

	for _, cmd := range []string{"new", "force", "setboard " + state.FEN(), fmt.Sprintf("sd %d", e.ply)} {
		if err := e.send("%s", cmd); err != nil {
			return err
		}
	}
	return e.sync()
}

// SetPly changes the search depth. Xboard engines are told at once.
func (e *External) SetPly(ply int) {
	e.ply = ply
	if e.proto == Xboard && e.ready {
		if err := e.send("sd %d", ply); err != nil {
			e.logger.Printf("%s: %v", e.name, err)
		}
	}
}

// OpponentMove tells an Xboard engine about the opponent's move. UCI
// engines receive the whole game with every search instead.
func (e *External) OpponentMove(move chess.Move, _ *game.State) error {
	if e.proto == UCI {
		return nil
	}
	if e.usermove {
		return e.send("usermove %s", move)
	}
	return e.send("%s", move)
}

// UndoMove takes back the last move on an Xboard engine.
func (e *External) UndoMove() error {
	if e.proto == UCI {
		return nil
	}
	return e.send("undo")
}

// Think asks the engine for a move. On cancellation the engine is told to
// stop and its answer is discarded.
func (e *External) Think(ctx context.Context, state *game.State) (chess.Move, error) {
	if len(state.LegalMoves()) == 0 {
		return chess.NullMove, errors.ErrNoLegalMove
	}
	if e.proto == UCI {
		return e.thinkUCI(ctx, state)
	}
	return e.thinkXboard(ctx, state)
}

func (e *External) thinkUCI(ctx context.Context, state *game.State) (chess.Move, error) {
	if err := e.send("%s", uciPosition(state)); err != nil {
		return chess.NullMove, err
	}
	if err := e.send("go depth %d", e.ply); err != nil {
		return chess.NullMove, err
	}

	line, err := e.expect(ctx, "bestmove", hasPrefix("bestmove"))
	if ctx.Err() != nil {
		if err := e.send("stop"); err != nil {
			return chess.NullMove, err
		}
		if _, err := e.expectWithin(stopGrace, "bestmove", hasPrefix("bestmove")); err != nil {
			e.logger.Printf("%s: %v", e.name, err)
		}
		return chess.NullMove, errors.ErrSearchStopped
	}
	if err != nil {
		return chess.NullMove, err
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return chess.NullMove, &errors.ProtocolError{Engine: e.name, Expected: "bestmove <move>", Got: line}
	}
	return e.readMove(state, fields[1], line)
}

func uciPosition(state *game.State) string {
	history := state.History()
	if len(history) == 0 {
		return "position fen " + state.FEN()
	}
	var sb strings.Builder
	sb.WriteString("position fen ")
	sb.WriteString(state.StartFEN())
	sb.WriteString(" moves")
	for _, m := range history {
		sb.WriteByte(' ')
		sb.WriteString(m.String())
	}
	return sb.String()
}

func isXboardMove(line string) bool {
	return strings.HasPrefix(line, "move ") || strings.HasPrefix(line, "My move is")
}

func xboardMoveText(line string) string {
	if i := strings.Index(line, ":"); strings.HasPrefix(line, "My move is") && i >= 0 {
		line = line[i+1:]
	} else {
		line = strings.TrimPrefix(line, "move ")
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func (e *External) thinkXboard(ctx context.Context, state *game.State) (chess.Move, error) {
	if err := e.send("go"); err != nil {
		return chess.NullMove, err
	}

	line, err := e.expect(ctx, "move", isXboardMove)
	if ctx.Err() != nil {
		var errs error
		if err := e.send("?"); err != nil {
			errs = multierror.Append(errs, err)
		}
		_, moveErr := e.expectWithin(stopGrace, "move", isXboardMove)
		if err := e.send("force"); err != nil {
			errs = multierror.Append(errs, err)
		}
		if moveErr == nil {
			if err := e.send("undo"); err != nil {
				errs = multierror.Append(errs, err)
			}
		}
		if errs != nil {
			e.logger.Printf("%s: %v", e.name, errs)
		}
		return chess.NullMove, errors.ErrSearchStopped
	}
	if err != nil {
		return chess.NullMove, err
	}
	if err := e.send("force"); err != nil {
		return chess.NullMove, err
	}
	return e.readMove(state, xboardMoveText(line), line)
}

// readMove turns the engine's move text into a legal move.
func (e *External) readMove(state *game.State, text, line string) (chess.Move, error) {
	if text == "(none)" || text == "0000" {
		return chess.NullMove, errors.ErrNoLegalMove
	}
	move, err := chess.ParseMove(text)
	if err != nil {
		return chess.NullMove, &errors.ProtocolError{Engine: e.name, Expected: "a move", Got: line, Err: err}
	}
	board := state.Board()
	move = engine.ResolveMove(&board, move)
	if move.NeedsPromotion() && move.Promotion == chess.NoPieceType {
		move = move.WithPromotion(chess.Queen)
	}
	if err := engine.CheckMove(&board, move); err != nil {
		return chess.NullMove, &errors.ProtocolError{Engine: e.name, Expected: "a legal move", Got: line, Err: err}
	}
	return move, nil
}

// Close asks the engine to quit and releases its process.
func (e *External) Close() error {
	var errs error
	e.closeOnce.Do(func() {
		if err := e.send("quit"); err != nil {
			errs = multierror.Append(errs, err)
		}
		close(e.done)
		if e.closer != nil {
			if err := e.closer.Close(); err != nil {
				errs = multierror.Append(errs, err)
			}
		}
		if e.cmd != nil {
			if err := e.wait(); err != nil {
				errs = multierror.Append(errs, err)
			}
		}
	})
	return errs
}

func (e *External) wait() error {
	exited := make(chan error, 1)
	go func() { exited <- e.cmd.Wait() }()
	select {
	case err := <-exited:
		return err
	case <-time.After(exitGrace):
		if err := e.cmd.Process.Kill(); err != nil {
			return err
		}
		return <-exited
	}
}
