package main

import (
	"context"
	"log"

	"github.com/lgbarn/nicechess-go/internal/chess"
	"github.com/lgbarn/nicechess-go/internal/config"
	"github.com/lgbarn/nicechess-go/internal/errors"
	"github.com/lgbarn/nicechess-go/internal/game"
	"github.com/lgbarn/nicechess-go/internal/match"
	"github.com/lgbarn/nicechess-go/internal/player"
	"github.com/lgbarn/nicechess-go/internal/worker"
)

// newPlayer creates the player described by pc. External engines are
// started under ctx and must be closed by the caller.
func newPlayer(ctx context.Context, pc config.PlayerConfig, colour chess.Colour, seed int64, logger *log.Logger) (player.Player, error) {
	switch pc.Kind {
	case config.HumanPlayer:
		return player.NewHuman(colour, logger), nil
	case config.NicePlayer:
		return player.NewComputer(colour, pc.Ply, logger), nil
	case config.RandomPlayer:
		return player.NewRandom(colour, seed, logger), nil
	case config.UCIPlayer:
		return player.StartExternal(ctx, pc.Name(), pc.EnginePath, player.UCI, colour, pc.Ply, logger)
	case config.XboardPlayer:
		return player.StartExternal(ctx, pc.Name(), pc.EnginePath, player.Xboard, colour, pc.Ply, logger)
	}
	return nil, errors.Wrapf(errors.ErrInvalidConfig, "unknown player kind %v", pc.Kind)
}

// newMatch builds a match between the configured players. Black's seed is
// offset so two random players do not mirror each other.
func newMatch(ctx context.Context, cfg *config.Config, item worker.WorkItem, opts ...match.Option) (*match.Match, error) {
	logger := cfg.Logger()

	state := game.New()
	if item.StartFEN != "" {
		var err error
		if state, err = game.FromFEN(item.StartFEN); err != nil {
			return nil, err
		}
	}

	white, err := newPlayer(ctx, cfg.White, chess.White, item.Seed, logger)
	if err != nil {
		return nil, errors.Wrap(err, "white")
	}
	black, err := newPlayer(ctx, cfg.Black, chess.Black, item.Seed^0x5bd1e995, logger)
	if err != nil {
		white.Close() //nolint:errcheck,gosec // G104: cleanup on error path
		return nil, errors.Wrap(err, "black")
	}

	opts = append([]match.Option{
		match.WithMinMoveTime(cfg.MinMoveTime),
		match.WithMaxPlies(cfg.MaxPlies),
		match.WithLogger(logger),
	}, opts...)
	m, err := match.New(white, black, state, opts...)
	if err != nil {
		white.Close() //nolint:errcheck,gosec // G104: cleanup on error path
		black.Close() //nolint:errcheck,gosec // G104: cleanup on error path
		return nil, err
	}
	return m, nil
}

// matchFactory adapts newMatch for the tournament worker pool.
func matchFactory(ctx context.Context, cfg *config.Config) worker.MatchFactory {
	return func(item worker.WorkItem) (*match.Match, error) {
		return newMatch(ctx, cfg, item)
	}
}
