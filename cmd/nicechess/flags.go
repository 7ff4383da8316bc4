// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"time"

	"github.com/lgbarn/nicechess-go/internal/config"
)

var (
	// Players
	whitePlayer = flag.String("white", "human", "White player: human, nice, random, uci:<path> or xboard:<path>")
	blackPlayer = flag.String("black", "nice", "Black player: human, nice, random, uci:<path> or xboard:<path>")
	whitePly    = flag.Int("wply", 3, "Search depth for White")
	blackPly    = flag.Int("bply", 3, "Search depth for Black")
	minMoveTime = flag.Int("mintime", 1000, "Minimum computer move time in milliseconds (max 2000)")
	maxPlies    = flag.Int("maxplies", 0, "End a game unfinished after N plies (0 = no limit)")
	startFEN    = flag.String("fen", "", "Start from this FEN position")
	seed        = flag.Int64("seed", 0, "Seed for random players (0 = time based)")

	// Tournament
	games   = flag.Int("games", 1, "Number of games to play")
	workers = flag.Int("workers", 1, "Number of games played in parallel")

	// Duplicate detection
	suppressDuplicates = flag.Bool("D", false, "Suppress duplicate games in tournament output")

	// Output options
	outputFile   = flag.String("o", "", "Output file (default: stdout)")
	appendOutput = flag.Bool("a", false, "Append to output file instead of overwrite")
	jsonOutput   = flag.Bool("J", false, "Output in JSON format")
	outputFormat = flag.String("W", "san", "Move notation: san, lalg, halg, elalg, uci")
	lineLength   = flag.Int("w", 80, "Maximum line length")

	// Logging
	logFile   = flag.String("l", "", "Write diagnostics to log file")
	verbosity = flag.Int("v", 1, "Verbosity: 0 silent, 1 results, 2 every move")
	quiet     = flag.Bool("s", false, "Silent mode (same as -v 0)")

	// Other options
	envFile = flag.String("env", "", "Load NICECHESS_* settings from this file (default: .env if present)")
	noBoard = flag.Bool("noboard", false, "Don't print the board during a single game")
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies the command-line flags that were set explicitly, so
// values from the environment survive unless overridden.
func applyFlags(cfg *config.Config, set map[string]bool) error {
	if err := applyPlayerFlags(cfg, set); err != nil {
		return err
	}
	applyGameFlags(cfg, set)
	applyOutputFlags(cfg, set)

	if set["v"] {
		cfg.Verbosity = *verbosity
	}
	if *quiet {
		cfg.Verbosity = config.Silent
	}
	return nil
}

// applyPlayerFlags configures both sides.
func applyPlayerFlags(cfg *config.Config, set map[string]bool) error {
	sides := []struct {
		spec, ply string
		specVal   *string
		plyVal    *int
		dst       *config.PlayerConfig
	}{
		{"white", "wply", whitePlayer, whitePly, &cfg.White},
		{"black", "bply", blackPlayer, blackPly, &cfg.Black},
	}
	for _, side := range sides {
		if set[side.spec] {
			p, err := config.ParsePlayerSpec(*side.specVal)
			if err != nil {
				return err
			}
			p.Ply = side.dst.Ply
			*side.dst = p
		}
		if set[side.ply] {
			side.dst.Ply = *side.plyVal
		}
	}
	return nil
}

// applyGameFlags configures pacing, the start position and the tournament.
func applyGameFlags(cfg *config.Config, set map[string]bool) {
	if set["mintime"] {
		cfg.MinMoveTime = time.Duration(*minMoveTime) * time.Millisecond
	}
	if set["maxplies"] {
		cfg.MaxPlies = *maxPlies
	}
	if set["fen"] {
		cfg.StartFEN = *startFEN
	}
	if set["seed"] {
		cfg.Seed = *seed
	}
	if set["games"] {
		cfg.Games = *games
	}
	if set["workers"] {
		cfg.Workers = *workers
	}
}

// applyOutputFlags configures the output format.
func applyOutputFlags(cfg *config.Config, set map[string]bool) {
	cfg.JSON = *jsonOutput
	cfg.SuppressDuplicates = *suppressDuplicates
	if set["W"] {
		cfg.Notation = *outputFormat
	}
	if set["w"] {
		cfg.MaxLineLength = *lineLength
	}
}

// setFlags returns the names of the flags given on the command line.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}
