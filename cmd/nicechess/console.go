package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/lgbarn/nicechess-go/internal/chess"
	"github.com/lgbarn/nicechess-go/internal/engine"
	"github.com/lgbarn/nicechess-go/internal/errors"
	"github.com/lgbarn/nicechess-go/internal/match"
	"github.com/lgbarn/nicechess-go/internal/player"
)

// sendTimeout bounds how long a typed move waits for the player to take it.
const sendTimeout = time.Second

// promptInterval is how often the console checks for a promotion question.
const promptInterval = 20 * time.Millisecond

// console connects the humans of a match to a terminal.
type console struct {
	m      *match.Match
	humans []*player.Human
	out    io.Writer

	prompted bool
}

func newConsole(m *match.Match, out io.Writer) *console {
	c := &console{m: m, out: out}
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		if h, ok := m.Player(colour).(*player.Human); ok {
			c.humans = append(c.humans, h)
		}
	}
	return c
}

// waiting returns the human whose move or promotion is awaited, if any.
func (c *console) waiting() *player.Human {
	for _, h := range c.humans {
		if h.NeedMove() {
			return h
		}
	}
	return nil
}

// run reads commands from r until it is exhausted or ctx is done. Moves
// are long algebraic ("e2e4", "e7e8q"), a single piece letter answers a
// promotion question, "undo" takes back a move and "quit" stops the match.
func (c *console) run(ctx context.Context, r io.Reader) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(promptInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.prompt()
		case line, ok := <-lines:
			if !ok {
				c.m.Stop()
				return
			}
			if err := c.handle(ctx, strings.TrimSpace(line)); err != nil {
				fmt.Fprintf(c.out, "%v\n", err)
			}
		}
	}
}

// prompt asks for a promotion piece once per pending promotion.
func (c *console) prompt() {
	for _, h := range c.humans {
		if move, ok := h.AwaitingPromotion(); ok {
			if !c.prompted {
				fmt.Fprintf(c.out, "%s: promote %s to q, r, b or n?\n", h.Colour(), move)
				c.prompted = true
			}
			return
		}
	}
	c.prompted = false
}

func (c *console) handle(ctx context.Context, line string) error {
	switch strings.ToLower(line) {
	case "":
		return nil
	case "quit", "exit":
		c.m.Stop()
		return nil
	case "undo":
		c.m.RequestUndo()
		return nil
	}

	h := c.waiting()
	if h == nil {
		return errors.ErrNotYourTurn
	}

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if len(line) == 1 {
		t := chess.PieceTypeFromLetter(line[0])
		if !t.IsPromotionTarget() {
			return fmt.Errorf("%q is not a promotion piece: %w", line, errors.ErrInvalidMoveText)
		}
		return h.SendPromotion(sendCtx, t)
	}

	move, err := chess.ParseMove(strings.ToLower(line))
	if err != nil {
		return err
	}
	return h.SendMove(sendCtx, move)
}

// printRejection reports a human's rejected move.
func printRejection(out io.Writer) func(error) {
	return func(err error) {
		fmt.Fprintf(out, "%v, try again\n", err)
	}
}

// printPly is a match observer that shows each move and the new position.
func printPly(out io.Writer, showBoard bool) func(match.Ply) {
	return func(ply match.Ply) {
		fmt.Fprintf(out, "%d. %s plays %s (%s)\n", ply.Number, ply.Colour, ply.Move, ply.Elapsed.Round(time.Millisecond))
		if showBoard {
			printBoard(out, ply.FEN)
		}
	}
}

func printBoard(out io.Writer, fen string) {
	board, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		return
	}
	fmt.Fprintf(out, "\n%s\n%s to move\n", board, board.ToMove)
}
