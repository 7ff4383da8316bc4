package output

import (
	"fmt"
	"io"
	"sort"

	"github.com/lgbarn/nicechess-go/internal/match"
)

// Standings accumulates the results of a series of games between the same
// two players.
type Standings struct {
	Games      int
	WhiteWins  int
	BlackWins  int
	Draws      int
	Unfinished int
	Reasons    map[string]int
}

// NewStandings creates empty standings.
func NewStandings() *Standings {
	return &Standings{Reasons: make(map[string]int)}
}

// Add counts one result.
func (s *Standings) Add(res match.Result) {
	s.Games++
	switch res.PGN() {
	case match.WhiteWins:
		s.WhiteWins++
	case match.BlackWins:
		s.BlackWins++
	case match.DrawResult:
		s.Draws++
	default:
		s.Unfinished++
	}
	if res.Reason != "" {
		s.Reasons[res.Reason]++
	}
}

// WhiteScore returns White's points, counting draws and unfinished games
// as half a point.
func (s *Standings) WhiteScore() float64 {
	return float64(s.WhiteWins) + 0.5*float64(s.Draws+s.Unfinished)
}

// WriteSummary writes the standings as text.
func WriteSummary(w io.Writer, s *Standings, white, black string) {
	fmt.Fprintf(w, "%d game(s): %s %.1f - %.1f %s\n",
		s.Games, white, s.WhiteScore(), float64(s.Games)-s.WhiteScore(), black)
	fmt.Fprintf(w, "  white wins %d, black wins %d, draws %d", s.WhiteWins, s.BlackWins, s.Draws)
	if s.Unfinished > 0 {
		fmt.Fprintf(w, ", unfinished %d", s.Unfinished)
	}
	fmt.Fprintln(w)

	reasons := make([]string, 0, len(s.Reasons))
	for r := range s.Reasons {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)
	for _, r := range reasons {
		fmt.Fprintf(w, "  %-22s %d\n", r+":", s.Reasons[r])
	}
}
