package worker

import (
	"context"

	"github.com/lgbarn/nicechess-go/internal/match"
)

// MatchFactory builds the match for one work item.
type MatchFactory func(item WorkItem) (*match.Match, error)

// PlayFunc returns a ProcessFunc that builds a match, runs it under ctx
// and closes it.
func PlayFunc(ctx context.Context, factory MatchFactory) ProcessFunc {
	return func(item WorkItem) ProcessResult {
		res := ProcessResult{Index: item.Index}

		m, err := factory(item)
		if err != nil {
			res.Error = err
			return res
		}
		res.MatchID = m.ID.String()

		res.Result, res.Error = m.Run(ctx)
		res.State = m.State()
		if err := m.Close(); err != nil && res.Error == nil {
			res.Error = err
		}
		return res
	}
}

// Items returns n work items with seeds derived from seed.
func Items(n int, seed int64, startFEN string) []WorkItem {
	items := make([]WorkItem, n)
	for i := range items {
		items[i] = WorkItem{Index: i, Seed: seed + int64(i), StartFEN: startFEN}
	}
	return items
}
