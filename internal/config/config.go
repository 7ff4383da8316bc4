// Package config provides configuration management for nicechess.
//
// A Config is built by the command line, optionally from the environment,
// and passed down explicitly; there is no package-level instance.
package config

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lgbarn/nicechess-go/internal/engine"
	"github.com/lgbarn/nicechess-go/internal/errors"
	"github.com/lgbarn/nicechess-go/internal/output"
	"github.com/lgbarn/nicechess-go/internal/search"
)

// Verbosity levels.
const (
	Silent     = 0
	Results    = 1
	Commentary = 2
)

// MaxMinMoveTime is the largest accepted minimum move time.
const MaxMinMoveTime = 2000 * time.Millisecond

const moveTimeStep = 100 * time.Millisecond

// PlayerKind selects a player implementation.
type PlayerKind int

// Player kinds.
const (
	HumanPlayer PlayerKind = iota
	NicePlayer
	RandomPlayer
	UCIPlayer
	XboardPlayer
)

var playerKindNames = map[PlayerKind]string{
	HumanPlayer:  "human",
	NicePlayer:   "nice",
	RandomPlayer: "random",
	UCIPlayer:    "uci",
	XboardPlayer: "xboard",
}

func (k PlayerKind) String() string {
	if name, ok := playerKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsEngine reports whether the kind runs an external program.
func (k PlayerKind) IsEngine() bool {
	return k == UCIPlayer || k == XboardPlayer
}

// PlayerConfig describes one side of a match.
type PlayerConfig struct {
	Kind       PlayerKind
	Ply        int    // Search depth for nice and external players
	EnginePath string // Program to run for uci and xboard players
}

// ParsePlayerSpec parses "human", "nice", "random", "uci:<path>" or
// "xboard:<path>". The ply is left at zero.
func ParsePlayerSpec(spec string) (PlayerConfig, error) {
	name, path, hasPath := strings.Cut(strings.TrimSpace(spec), ":")
	name = strings.ToLower(name)

	for kind, kindName := range playerKindNames {
		if name != kindName {
			continue
		}
		if kind.IsEngine() {
			if !hasPath || path == "" {
				return PlayerConfig{}, errors.Wrapf(errors.ErrInvalidConfig, "player %q: engine path required", spec)
			}
			return PlayerConfig{Kind: kind, EnginePath: path}, nil
		}
		if hasPath {
			return PlayerConfig{}, errors.Wrapf(errors.ErrInvalidConfig, "player %q takes no path", spec)
		}
		return PlayerConfig{Kind: kind}, nil
	}
	return PlayerConfig{}, errors.Wrapf(errors.ErrInvalidConfig, "unknown player %q", spec)
}

// String returns the player in the form accepted by ParsePlayerSpec.
func (p PlayerConfig) String() string {
	if p.Kind.IsEngine() {
		return p.Kind.String() + ":" + p.EnginePath
	}
	return p.Kind.String()
}

// Name is the name used for the player in game records.
func (p PlayerConfig) Name() string {
	switch p.Kind {
	case HumanPlayer:
		return "Human"
	case NicePlayer:
		return "Nice"
	case RandomPlayer:
		return "Random"
	default:
		return filepath.Base(p.EnginePath)
	}
}

// Config holds all configuration for a nicechess run.
type Config struct {
	White PlayerConfig
	Black PlayerConfig

	// MinMoveTime is the shortest time a computer move takes to arrive.
	MinMoveTime time.Duration

	// MaxPlies ends a game unfinished after that many plies (0 = no limit).
	MaxPlies int

	// Verbosity: 0 silent, 1 game results, 2 every move and search stats.
	Verbosity int

	Seed     int64
	Games    int
	Workers  int
	StartFEN string // Empty for the standard start

	// SuppressDuplicates drops repeated games from tournament output.
	SuppressDuplicates bool

	// Output
	JSON          bool
	Notation      string // san, lalg, halg, elalg or uci
	MaxLineLength int

	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		White:         PlayerConfig{Kind: HumanPlayer, Ply: 3},
		Black:         PlayerConfig{Kind: NicePlayer, Ply: 3},
		MinMoveTime:   1000 * time.Millisecond,
		Verbosity:     Results,
		Games:         1,
		Workers:       1,
		Notation:      "san",
		MaxLineLength: 80,
		OutputFile:    os.Stdout,
		LogFile:       os.Stderr,
	}
}

// NormalizeMinMoveTime clamps d to [0, MaxMinMoveTime] and rounds it up
// to a multiple of 100ms.
func NormalizeMinMoveTime(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	if d > MaxMinMoveTime {
		return MaxMinMoveTime
	}
	if rem := d % moveTimeStep; rem != 0 {
		d += moveTimeStep - rem
	}
	return d
}

// Validate checks the configuration. Errors wrap ErrInvalidConfig and
// name the offending field. MinMoveTime is normalized in place.
func (c *Config) Validate() error {
	sides := []struct {
		name string
		p    PlayerConfig
	}{{"white", c.White}, {"black", c.Black}}
	for _, side := range sides {
		if _, ok := playerKindNames[side.p.Kind]; !ok {
			return errors.Wrapf(errors.ErrInvalidConfig, "%s: unknown player kind %d", side.name, side.p.Kind)
		}
		if side.p.Ply < 1 || side.p.Ply > search.MaxDepth {
			return errors.Wrapf(errors.ErrInvalidConfig, "%s ply %d: must be between 1 and %d", side.name, side.p.Ply, search.MaxDepth)
		}
		if side.p.Kind.IsEngine() && side.p.EnginePath == "" {
			return errors.Wrapf(errors.ErrInvalidConfig, "%s: engine path required", side.name)
		}
	}

	if c.Games < 1 {
		return errors.Wrapf(errors.ErrInvalidConfig, "games %d: must be at least 1", c.Games)
	}
	if c.Workers < 1 {
		return errors.Wrapf(errors.ErrInvalidConfig, "workers %d: must be at least 1", c.Workers)
	}
	if c.Games > 1 && (c.White.Kind == HumanPlayer || c.Black.Kind == HumanPlayer) {
		return errors.Wrap(errors.ErrInvalidConfig, "a human cannot play a tournament")
	}
	if c.MaxPlies < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "max plies %d: must not be negative", c.MaxPlies)
	}
	if c.Verbosity < Silent || c.Verbosity > Commentary {
		return errors.Wrapf(errors.ErrInvalidConfig, "verbosity %d: must be between %d and %d", c.Verbosity, Silent, Commentary)
	}
	if c.StartFEN != "" {
		if _, err := engine.NewBoardFromFEN(c.StartFEN); err != nil {
			return errors.Wrapf(errors.ErrInvalidConfig, "start position: %v", err)
		}
	}
	if _, err := output.ParseFormat(c.Notation); err != nil {
		return errors.Wrapf(errors.ErrInvalidConfig, "notation: %v", err)
	}
	if c.MaxLineLength < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "line length %d: must not be negative", c.MaxLineLength)
	}

	c.MinMoveTime = NormalizeMinMoveTime(c.MinMoveTime)
	return nil
}

// LoggerAt returns a logger writing to LogFile when Verbosity is at least
// level, and a discarding logger otherwise.
func (c *Config) LoggerAt(level int) *log.Logger {
	if c.Verbosity < level || c.LogFile == nil {
		return log.New(io.Discard, "", 0)
	}
	return log.New(c.LogFile, "", 0)
}

// Logger returns the commentary logger handed to matches and players.
func (c *Config) Logger() *log.Logger {
	return c.LoggerAt(Commentary)
}
