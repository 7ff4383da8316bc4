// Package output writes match records as PGN or JSON, and tournament
// summaries as text.
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lgbarn/nicechess-go/internal/chess"
	"github.com/lgbarn/nicechess-go/internal/engine"
)

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// PGNOptions control PGN movetext.
type PGNOptions struct {
	Format        Format
	MaxLineLength int
}

// WritePGN writes a record as one PGN game followed by a blank line.
func WritePGN(w io.Writer, rec *Record, opts PGNOptions) {
	writeTags(w, rec)
	fmt.Fprintln(w)
	writeMoves(w, rec, opts)
	fmt.Fprintln(w)
}

func writeTags(w io.Writer, rec *Record) {
	round := "?"
	if rec.Round > 0 {
		round = strconv.Itoa(rec.Round)
	}
	tags := [][2]string{
		{"Event", orUnknown(rec.Event)},
		{"Site", "?"},
		{"Date", orDefault(rec.Date, "????.??.??")},
		{"Round", round},
		{"White", orUnknown(rec.White)},
		{"Black", orUnknown(rec.Black)},
		{"Result", rec.Result},
	}
	if rec.InitialFEN != "" {
		tags = append(tags, [2]string{"SetUp", "1"}, [2]string{"FEN", rec.InitialFEN})
	}
	if rec.Termination != "" {
		tags = append(tags, [2]string{"Termination", rec.Termination})
	}
	for _, tag := range tags {
		fmt.Fprintf(w, "[%s \"%s\"]\n", tag[0], escapeTagValue(tag[1]))
	}
}

func orUnknown(s string) string {
	return orDefault(s, "?")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// escapeTagValue escapes special characters in tag values.
func escapeTagValue(s string) string {
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}

func writeMoves(w io.Writer, rec *Record, opts PGNOptions) {
	ow := NewOutputWriter(w, opts.MaxLineLength)
	board := startBoard(rec)

	for i, m := range rec.Moves {
		switch {
		case m.Color == "white":
			ow.Write(fmt.Sprintf("%d.", m.MoveNumber))
		case i == 0:
			ow.Write(fmt.Sprintf("%d...", m.MoveNumber))
		}
		ow.Write(moveText(board, m, opts.Format))
	}
	ow.Write(rec.Result)
	ow.NewLine()
}

func startBoard(rec *Record) *chess.Board {
	if rec.InitialFEN != "" {
		if board, err := engine.NewBoardFromFEN(rec.InitialFEN); err == nil {
			return board
		}
	}
	return engine.NewInitialBoard()
}

// moveText formats a recorded move and plays it on board. The recorded SAN
// is used when the move cannot be replayed.
func moveText(board *chess.Board, m JSONMove, format Format) string {
	move, err := chess.ParseMove(m.UCI)
	if err != nil || board.Get(move.From).IsEmpty() {
		return m.SAN
	}
	text := m.SAN
	if format != SAN {
		text = FormatMove(board, move, format)
	}
	engine.ApplyMove(board, move)
	return text
}
