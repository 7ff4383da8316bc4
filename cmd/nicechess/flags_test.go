package main

import (
	"flag"
	"testing"
	"time"

	"github.com/lgbarn/nicechess-go/internal/config"
)

func saveRestoreBool(ptr *bool, val bool) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreInt(ptr *int, val int) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreString(ptr *string, val string) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func TestApplyPlayerFlags(t *testing.T) {
	t.Run("unset flags keep config", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Black = config.PlayerConfig{Kind: config.RandomPlayer, Ply: 5}
		if err := applyPlayerFlags(cfg, map[string]bool{}); err != nil {
			t.Fatal(err)
		}
		if cfg.Black != (config.PlayerConfig{Kind: config.RandomPlayer, Ply: 5}) {
			t.Errorf("Black = %+v; want random ply 5", cfg.Black)
		}
	})

	t.Run("engine player keeps ply", func(t *testing.T) {
		defer saveRestoreString(whitePlayer, "uci:/usr/games/stockfish")()
		cfg := config.NewConfig()
		if err := applyPlayerFlags(cfg, map[string]bool{"white": true}); err != nil {
			t.Fatal(err)
		}
		want := config.PlayerConfig{Kind: config.UCIPlayer, Ply: 3, EnginePath: "/usr/games/stockfish"}
		if cfg.White != want {
			t.Errorf("White = %+v; want %+v", cfg.White, want)
		}
	})

	t.Run("ply flags", func(t *testing.T) {
		defer saveRestoreInt(whitePly, 2)()
		defer saveRestoreInt(blackPly, 6)()
		cfg := config.NewConfig()
		if err := applyPlayerFlags(cfg, map[string]bool{"wply": true, "bply": true}); err != nil {
			t.Fatal(err)
		}
		if cfg.White.Ply != 2 || cfg.Black.Ply != 6 {
			t.Errorf("ply = %d/%d; want 2/6", cfg.White.Ply, cfg.Black.Ply)
		}
	})

	t.Run("bad player", func(t *testing.T) {
		defer saveRestoreString(blackPlayer, "deep-blue")()
		cfg := config.NewConfig()
		if err := applyPlayerFlags(cfg, map[string]bool{"black": true}); err == nil {
			t.Error("expected an error for an unknown player")
		}
	})
}

func TestApplyGameFlags(t *testing.T) {
	defer saveRestoreInt(minMoveTime, 300)()
	defer saveRestoreInt(maxPlies, 120)()
	defer saveRestoreInt(games, 8)()
	defer saveRestoreInt(workers, 3)()
	defer saveRestoreString(startFEN, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")()

	cfg := config.NewConfig()
	applyGameFlags(cfg, map[string]bool{
		"mintime": true, "maxplies": true, "games": true, "workers": true, "fen": true,
	})

	if cfg.MinMoveTime != 300*time.Millisecond {
		t.Errorf("MinMoveTime = %v; want 300ms", cfg.MinMoveTime)
	}
	if cfg.MaxPlies != 120 {
		t.Errorf("MaxPlies = %d; want 120", cfg.MaxPlies)
	}
	if cfg.Games != 8 || cfg.Workers != 3 {
		t.Errorf("Games/Workers = %d/%d; want 8/3", cfg.Games, cfg.Workers)
	}
	if cfg.StartFEN != "4k3/8/8/8/8/8/8/4K3 w - - 0 1" {
		t.Errorf("StartFEN = %q", cfg.StartFEN)
	}
}

func TestApplyOutputFlags(t *testing.T) {
	defer saveRestoreBool(jsonOutput, true)()
	defer saveRestoreString(outputFormat, "lalg")()
	defer saveRestoreInt(lineLength, 60)()

	cfg := config.NewConfig()
	applyOutputFlags(cfg, map[string]bool{"J": true, "W": true, "w": true})

	if !cfg.JSON {
		t.Error("JSON should be set")
	}
	if cfg.Notation != "lalg" {
		t.Errorf("Notation = %q; want lalg", cfg.Notation)
	}
	if cfg.MaxLineLength != 60 {
		t.Errorf("MaxLineLength = %d; want 60", cfg.MaxLineLength)
	}
}

func TestApplyFlagsQuiet(t *testing.T) {
	defer saveRestoreBool(quiet, true)()
	defer saveRestoreInt(verbosity, 2)()

	cfg := config.NewConfig()
	if err := applyFlags(cfg, map[string]bool{"v": true, "s": true}); err != nil {
		t.Fatal(err)
	}
	if cfg.Verbosity != config.Silent {
		t.Errorf("Verbosity = %d; want %d", cfg.Verbosity, config.Silent)
	}
}

func TestSetFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Int("games", 1, "")
	fs.Int("workers", 1, "")
	if err := fs.Parse([]string{"-games", "4"}); err != nil {
		t.Fatal(err)
	}

	set := setFlags(fs)
	if !set["games"] {
		t.Error("games should be reported as set")
	}
	if set["workers"] {
		t.Error("workers should not be reported as set")
	}
}
