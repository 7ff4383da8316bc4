package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/lgbarn/nicechess-go/internal/errors"
)

// DefaultEnvFile is loaded by LoadEnv when no path is given and it exists.
const DefaultEnvFile = ".env"

// Environment variables read by LoadEnv.
const (
	EnvWhite       = "NICECHESS_WHITE"
	EnvBlack       = "NICECHESS_BLACK"
	EnvWhitePly    = "NICECHESS_WHITE_PLY"
	EnvBlackPly    = "NICECHESS_BLACK_PLY"
	EnvMinMoveTime = "NICECHESS_MIN_MOVE_TIME" // milliseconds
	EnvMaxPlies    = "NICECHESS_MAX_PLIES"
	EnvVerbosity   = "NICECHESS_VERBOSITY"
	EnvSeed        = "NICECHESS_SEED"
	EnvGames       = "NICECHESS_GAMES"
	EnvWorkers     = "NICECHESS_WORKERS"
	EnvFEN         = "NICECHESS_FEN"
)

// LoadEnv loads the .env file at path (DefaultEnvFile if path is empty)
// when it exists, then applies the NICECHESS_* variables to cfg. Variables
// already set in the environment win over the file.
func LoadEnv(cfg *Config, path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}
	if _, err := os.Stat(path); err == nil {
		if err := godotenv.Load(path); err != nil {
			return errors.Wrapf(err, "loading %s", path)
		}
	} else if explicit {
		return errors.Wrapf(err, "loading %s", path)
	}
	return applyEnv(cfg, os.LookupEnv)
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	// Ply comes from its own variable, so keep it when the kind changes.
	players := []struct {
		key string
		p   *PlayerConfig
	}{{EnvWhite, &cfg.White}, {EnvBlack, &cfg.Black}}
	for _, pl := range players {
		if v, ok := lookup(pl.key); ok {
			parsed, err := ParsePlayerSpec(v)
			if err != nil {
				return errors.Wrap(err, pl.key)
			}
			parsed.Ply = pl.p.Ply
			*pl.p = parsed
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{EnvWhitePly, &cfg.White.Ply},
		{EnvBlackPly, &cfg.Black.Ply},
		{EnvMaxPlies, &cfg.MaxPlies},
		{EnvVerbosity, &cfg.Verbosity},
		{EnvGames, &cfg.Games},
		{EnvWorkers, &cfg.Workers},
	}
	for _, iv := range ints {
		v, ok := lookup(iv.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(errors.ErrInvalidConfig, "%s=%q: not an integer", iv.key, v)
		}
		*iv.dst = n
	}

	if v, ok := lookup(EnvMinMoveTime); ok {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(errors.ErrInvalidConfig, "%s=%q: not an integer", EnvMinMoveTime, v)
		}
		cfg.MinMoveTime = time.Duration(ms) * time.Millisecond
	}
	if v, ok := lookup(EnvSeed); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.Wrapf(errors.ErrInvalidConfig, "%s=%q: not an integer", EnvSeed, v)
		}
		cfg.Seed = seed
	}
	if v, ok := lookup(EnvFEN); ok {
		cfg.StartFEN = v
	}
	return nil
}
