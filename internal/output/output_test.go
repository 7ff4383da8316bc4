package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/lgbarn/nicechess-go/internal/chess"
	"github.com/lgbarn/nicechess-go/internal/engine"
	"github.com/lgbarn/nicechess-go/internal/game"
	"github.com/lgbarn/nicechess-go/internal/match"
	"github.com/lgbarn/nicechess-go/internal/testutil"
)

func mustBoard(t *testing.T, fen string) *chess.Board {
	t.Helper()
	board, err := engine.NewBoardFromFEN(fen)
	testutil.AssertNoError(t, err)
	return board
}

func playGame(t *testing.T, fen string, moves ...string) *game.State {
	t.Helper()
	s, err := game.FromFEN(fen)
	testutil.AssertNoError(t, err)
	for _, m := range moves {
		testutil.AssertNoError(t, s.Update(testutil.MustParseMove(t, m)), "move %s", m)
	}
	return s
}

func TestFormatMoveSAN(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move string
		want string
	}{
		{"pawn push", engine.InitialFEN, "e2e4", "e4"},
		{"knight", engine.InitialFEN, "g1f3", "Nf3"},
		{"pawn capture", "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1", "e4d5", "exd5"},
		{"en passant", "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1", "e5d6", "exd6"},
		{"kingside castle", "4k3/8/8/8/8/8/8/4K2R w K - 0 1", "e1g1", "O-O"},
		{"queenside castle", "4k3/8/8/8/8/8/8/R3K3 w Q - 0 1", "e1c1", "O-O-O"},
		{"file disambiguation", "4k3/8/8/8/8/8/4K3/R6R w - - 0 1", "a1d1", "Rad1"},
		{"rank disambiguation", "7k/8/R7/8/8/8/8/R3K3 w - - 0 1", "a1a4", "R1a4"},
		{"square disambiguation", "4k3/8/8/8/8/Q1Q5/8/Q3K3 w - - 0 1", "a3b2", "Qa3b2"},
		{"promotion", "8/P6k/8/8/8/8/6K1/8 w - - 0 1", "a7a8q", "a8=Q"},
		{"promotion capture", "1r5k/P7/8/8/8/8/6K1/8 w - - 0 1", "a7b8n", "axb8=N"},
		{"check", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", "a1a8", "Ra8+"},
		{"mate", "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", "a1a8", "Ra8#"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := mustBoard(t, tt.fen)
			before := engine.BoardToFEN(board)
			got := FormatMove(board, testutil.MustParseMove(t, tt.move), SAN)
			testutil.AssertEqual(t, got, tt.want)
			testutil.AssertEqual(t, engine.BoardToFEN(board), before, "board modified")
		})
	}
}

func TestFormatMoveLongForms(t *testing.T) {
	board := mustBoard(t, "4k3/8/8/3p4/4P3/8/8/4K1N1 w - - 0 1")
	tests := []struct {
		move   string
		format Format
		want   string
	}{
		{"e4d5", LALG, "e4d5"},
		{"e4d5", HALG, "e4xd5"},
		{"g1f3", HALG, "g1-f3"},
		{"g1f3", ELALG, "Ng1f3"},
		{"e4e5", ELALG, "e4e5"},
		{"g1f3", UCI, "g1f3"},
	}
	for _, tt := range tests {
		got := FormatMove(board, testutil.MustParseMove(t, tt.move), tt.format)
		testutil.AssertEqual(t, got, tt.want, "%s in format %d", tt.move, tt.format)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": SAN, "san": SAN, "LALG": LALG, "halg": HALG, "elalg": ELALG, "uci": UCI} {
		got, err := ParseFormat(in)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, got, want, "format %q", in)
	}
	_, err := ParseFormat("epd")
	testutil.AssertError(t, err)
}

func scholarsMate(t *testing.T) (*game.State, match.Result) {
	s := playGame(t, engine.InitialFEN, "e2e4", "e7e5", "f1c4", "b8c6", "d1h5", "g8f6", "h5f7")
	return s, match.Result{Status: s.Status(), Winner: chess.White, HasWinner: true, Reason: match.ReasonCheckmate, Plies: s.Ply()}
}

func TestNewRecord(t *testing.T) {
	s, res := scholarsMate(t)
	rec, err := NewRecord("id-1", "nice", "random", s, res)
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, rec.Result, "1-0")
	testutil.AssertEqual(t, rec.PlyCount, 7)
	testutil.AssertEqual(t, rec.InitialFEN, "")
	testutil.AssertEqual(t, rec.FinalFEN, s.FEN())

	var sans []string
	for _, m := range rec.Moves {
		sans = append(sans, m.SAN)
	}
	testutil.AssertEqual(t, sans, []string{"e4", "e5", "Bc4", "Nc6", "Qh5", "Nf6", "Qxf7#"})

	last := rec.Moves[6]
	testutil.AssertEqual(t, last.MoveNumber, 4)
	testutil.AssertEqual(t, last.Color, "white")
	testutil.AssertEqual(t, last.Piece, "queen")
	testutil.AssertEqual(t, last.Captured, "pawn")
	testutil.AssertEqual(t, last.FEN, s.FEN())
	testutil.AssertEqual(t, rec.Moves[1].Color, "black")
}

func TestWritePGN(t *testing.T) {
	s, res := scholarsMate(t)
	rec, err := NewRecord("id-1", "nice", "random", s, res)
	testutil.AssertNoError(t, err)
	rec.Date = "2026.10.19"
	rec.Round = 3

	var buf bytes.Buffer
	WritePGN(&buf, rec, PGNOptions{})
	want := `[Event "?"]
[Site "?"]
[Date "2026.10.19"]
[Round "3"]
[White "nice"]
[Black "random"]
[Result "1-0"]
[Termination "checkmate"]

1. e4 e5 2. Bc4 Nc6 3. Qh5 Nf6 4. Qxf7# 1-0

`
	testutil.AssertEqual(t, buf.String(), want)

	buf.Reset()
	WritePGN(&buf, rec, PGNOptions{Format: HALG})
	testutil.AssertContains(t, buf.String(), "1. e2-e4 e7-e5 2. f1-c4")
	testutil.AssertContains(t, buf.String(), "4. h5xf7 1-0")
}

func TestWritePGNFromPosition(t *testing.T) {
	fen := "4k3/8/8/8/8/8/4P3/4K3 b - - 0 1"
	s := playGame(t, fen, "e8d7", "e2e4")
	rec, err := NewRecord("id-2", "a", "b", s, match.Result{Status: s.Status()})
	testutil.AssertNoError(t, err)

	var buf bytes.Buffer
	WritePGN(&buf, rec, PGNOptions{})
	out := buf.String()
	testutil.AssertContains(t, out, `[SetUp "1"]`)
	testutil.AssertContains(t, out, `[FEN "`+fen+`"]`)
	testutil.AssertContains(t, out, "1... Kd7 2. e4 *")
}

func TestOutputWriterWrapsLines(t *testing.T) {
	var buf bytes.Buffer
	ow := NewOutputWriter(&buf, 10)
	for _, s := range []string{"1.", "e4", "e5", "2.", "Nf3", "Nc6"} {
		ow.Write(s)
	}
	ow.NewLine()
	testutil.AssertEqual(t, buf.String(), "1. e4 e5\n2. Nf3 Nc6\n")
}

func TestEscapeTagValue(t *testing.T) {
	testutil.AssertEqual(t, escapeTagValue(`plain`), `plain`)
	testutil.AssertEqual(t, escapeTagValue(`say "hi"\`), `say \"hi\"\\`)
}

func TestJSONWriter(t *testing.T) {
	s, res := scholarsMate(t)
	rec, err := NewRecord("id-1", "nice", "random", s, res)
	testutil.AssertNoError(t, err)

	var buf bytes.Buffer
	jw := NewJSONWriter(&buf)
	testutil.AssertNoError(t, jw.WriteGame(rec))
	testutil.AssertNoError(t, jw.WriteGame(rec))
	testutil.AssertEqual(t, buf.Len(), 0, "batch writer wrote before Close")
	testutil.AssertNoError(t, jw.Close())

	var out JSONOutput
	testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &out))
	testutil.AssertEqual(t, len(out.Games), 2)
	testutil.AssertEqual(t, out.Games[0].ID, "id-1")
	testutil.AssertEqual(t, out.Games[0].Moves[6].UCI, "h5f7")
	testutil.AssertEqual(t, out.Games[0].Termination, "checkmate")
}

func TestJSONWriterSingle(t *testing.T) {
	s, res := scholarsMate(t)
	rec, err := NewRecord("id-1", "nice", "random", s, res)
	testutil.AssertNoError(t, err)

	var buf bytes.Buffer
	jw := NewJSONWriterSingle(&buf)
	testutil.AssertNoError(t, jw.WriteGame(rec))
	testutil.AssertContains(t, buf.String(), `"id": "id-1"`)
	testutil.AssertContains(t, buf.String(), `"san": "Qxf7#"`)
	testutil.AssertNoError(t, jw.Close())
}

func TestStandings(t *testing.T) {
	st := NewStandings()
	st.Add(match.Result{Status: game.Checkmate, HasWinner: true, Winner: chess.White, Reason: match.ReasonCheckmate})
	st.Add(match.Result{Status: game.Checkmate, HasWinner: true, Winner: chess.Black, Reason: match.ReasonCheckmate})
	st.Add(match.Result{Status: game.Draw, Reason: "threefold repetition"})
	st.Add(match.Result{Status: game.InProgress, Reason: match.ReasonMaxPlies})

	testutil.AssertEqual(t, st.Games, 4)
	testutil.AssertEqual(t, st.WhiteScore(), 2.0)

	var buf bytes.Buffer
	WriteSummary(&buf, st, "nice", "random")
	out := buf.String()
	testutil.AssertTrue(t, strings.HasPrefix(out, "4 game(s): nice 2.0 - 2.0 random\n"), out)
	testutil.AssertContains(t, out, "white wins 1, black wins 1, draws 1, unfinished 1")
	testutil.AssertContains(t, out, "checkmate:")
}
