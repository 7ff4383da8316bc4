package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lgbarn/nicechess-go/internal/errors"
)

// TestNewConfig_Defaults verifies NewConfig has the documented defaults
func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.White.Kind != HumanPlayer {
		t.Errorf("White.Kind = %v, want human", cfg.White.Kind)
	}
	if cfg.Black.Kind != NicePlayer {
		t.Errorf("Black.Kind = %v, want nice", cfg.Black.Kind)
	}
	if cfg.White.Ply != 3 || cfg.Black.Ply != 3 {
		t.Errorf("ply = %d/%d, want 3/3", cfg.White.Ply, cfg.Black.Ply)
	}
	if cfg.MinMoveTime != time.Second {
		t.Errorf("MinMoveTime = %v, want 1s", cfg.MinMoveTime)
	}
	if cfg.Verbosity != Results {
		t.Errorf("Verbosity = %d, want %d", cfg.Verbosity, Results)
	}
	if cfg.Games != 1 || cfg.Workers != 1 {
		t.Errorf("Games/Workers = %d/%d, want 1/1", cfg.Games, cfg.Workers)
	}
	if cfg.Notation != "san" {
		t.Errorf("Notation = %q, want san", cfg.Notation)
	}
	if cfg.MaxLineLength != 80 {
		t.Errorf("MaxLineLength = %d, want 80", cfg.MaxLineLength)
	}
	if cfg.OutputFile != os.Stdout {
		t.Error("OutputFile should default to stdout")
	}
	if cfg.LogFile != os.Stderr {
		t.Error("LogFile should default to stderr")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestParsePlayerSpec(t *testing.T) {
	tests := []struct {
		spec    string
		want    PlayerConfig
		wantErr bool
	}{
		{spec: "human", want: PlayerConfig{Kind: HumanPlayer}},
		{spec: "Nice", want: PlayerConfig{Kind: NicePlayer}},
		{spec: " random ", want: PlayerConfig{Kind: RandomPlayer}},
		{spec: "uci:/usr/bin/stockfish", want: PlayerConfig{Kind: UCIPlayer, EnginePath: "/usr/bin/stockfish"}},
		{spec: "xboard:gnuchess", want: PlayerConfig{Kind: XboardPlayer, EnginePath: "gnuchess"}},
		{spec: "uci", wantErr: true},
		{spec: "uci:", wantErr: true},
		{spec: "nice:/bin/sh", wantErr: true},
		{spec: "crafty", wantErr: true},
		{spec: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParsePlayerSpec(tt.spec)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrInvalidConfig) {
					t.Errorf("ParsePlayerSpec(%q) error = %v, want ErrInvalidConfig", tt.spec, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePlayerSpec(%q) error = %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("ParsePlayerSpec(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestPlayerConfig_StringAndName(t *testing.T) {
	tests := []struct {
		p        PlayerConfig
		wantStr  string
		wantName string
	}{
		{PlayerConfig{Kind: HumanPlayer}, "human", "Human"},
		{PlayerConfig{Kind: NicePlayer}, "nice", "Nice"},
		{PlayerConfig{Kind: RandomPlayer}, "random", "Random"},
		{PlayerConfig{Kind: UCIPlayer, EnginePath: "/opt/engines/stockfish"}, "uci:/opt/engines/stockfish", "stockfish"},
		{PlayerConfig{Kind: XboardPlayer, EnginePath: "crafty"}, "xboard:crafty", "crafty"},
	}

	for _, tt := range tests {
		if got := tt.p.String(); got != tt.wantStr {
			t.Errorf("String() = %q, want %q", got, tt.wantStr)
		}
		if got := tt.p.Name(); got != tt.wantName {
			t.Errorf("Name() = %q, want %q", got, tt.wantName)
		}
	}
}

func TestNormalizeMinMoveTime(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want time.Duration
	}{
		{0, 0},
		{-5 * time.Millisecond, 0},
		{1 * time.Millisecond, 100 * time.Millisecond},
		{100 * time.Millisecond, 100 * time.Millisecond},
		{1001 * time.Millisecond, 1100 * time.Millisecond},
		{1999 * time.Millisecond, 2000 * time.Millisecond},
		{5 * time.Second, MaxMinMoveTime},
	}

	for _, tt := range tests {
		if got := NormalizeMinMoveTime(tt.in); got != tt.want {
			t.Errorf("NormalizeMinMoveTime(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "defaults", modify: func(*Config) {}},
		{name: "engine players", modify: func(c *Config) {
			c.White = PlayerConfig{Kind: UCIPlayer, Ply: 5, EnginePath: "stockfish"}
		}},
		{name: "zero ply", modify: func(c *Config) { c.Black.Ply = 0 }, wantErr: true},
		{name: "ply too deep", modify: func(c *Config) { c.White.Ply = 1000 }, wantErr: true},
		{name: "engine without path", modify: func(c *Config) {
			c.Black = PlayerConfig{Kind: XboardPlayer, Ply: 3}
		}, wantErr: true},
		{name: "unknown kind", modify: func(c *Config) { c.White.Kind = PlayerKind(42) }, wantErr: true},
		{name: "no games", modify: func(c *Config) { c.Games = 0 }, wantErr: true},
		{name: "no workers", modify: func(c *Config) { c.Workers = 0 }, wantErr: true},
		{name: "human tournament", modify: func(c *Config) { c.Games = 4 }, wantErr: true},
		{name: "computer tournament", modify: func(c *Config) {
			c.White.Kind = RandomPlayer
			c.Games = 4
			c.Workers = 2
		}},
		{name: "negative max plies", modify: func(c *Config) { c.MaxPlies = -1 }, wantErr: true},
		{name: "verbosity too high", modify: func(c *Config) { c.Verbosity = 3 }, wantErr: true},
		{name: "bad start position", modify: func(c *Config) { c.StartFEN = "not a fen" }, wantErr: true},
		{name: "good start position", modify: func(c *Config) { c.StartFEN = "4k3/8/8/8/8/8/8/4K2R w K - 0 1" }},
		{name: "bad notation", modify: func(c *Config) { c.Notation = "descriptive" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if !errors.Is(err, errors.ErrInvalidConfig) {
					t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestConfig_ValidateNormalizesMinMoveTime(t *testing.T) {
	cfg := NewConfig()
	cfg.MinMoveTime = 250 * time.Millisecond
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.MinMoveTime != 300*time.Millisecond {
		t.Errorf("MinMoveTime = %v, want 300ms", cfg.MinMoveTime)
	}
}

func TestConfig_LoggerAt(t *testing.T) {
	tests := []struct {
		verbosity int
		level     int
		wantOut   bool
	}{
		{Silent, Results, false},
		{Results, Results, true},
		{Results, Commentary, false},
		{Commentary, Commentary, true},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		cfg := NewConfig()
		cfg.LogFile = &buf
		cfg.Verbosity = tt.verbosity
		cfg.LoggerAt(tt.level).Print("hello")
		if got := buf.Len() > 0; got != tt.wantOut {
			t.Errorf("verbosity %d, level %d: wrote = %v, want %v", tt.verbosity, tt.level, got, tt.wantOut)
		}
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvWhite:       "random",
		EnvBlack:       "uci:/usr/games/stockfish",
		EnvBlackPly:    "6",
		EnvMinMoveTime: "250",
		EnvMaxPlies:    "200",
		EnvVerbosity:   "2",
		EnvSeed:        "-17",
		EnvGames:       "10",
		EnvWorkers:     "4",
		EnvFEN:         "4k3/8/8/8/8/8/8/4K3 w - - 0 1",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := NewConfig()
	if err := applyEnv(cfg, lookup); err != nil {
		t.Fatalf("applyEnv() error = %v", err)
	}

	if cfg.White != (PlayerConfig{Kind: RandomPlayer, Ply: 3}) {
		t.Errorf("White = %+v", cfg.White)
	}
	if cfg.Black != (PlayerConfig{Kind: UCIPlayer, Ply: 6, EnginePath: "/usr/games/stockfish"}) {
		t.Errorf("Black = %+v", cfg.Black)
	}
	if cfg.MinMoveTime != 250*time.Millisecond {
		t.Errorf("MinMoveTime = %v, want 250ms", cfg.MinMoveTime)
	}
	if cfg.MaxPlies != 200 || cfg.Verbosity != 2 || cfg.Games != 10 || cfg.Workers != 4 {
		t.Errorf("MaxPlies/Verbosity/Games/Workers = %d/%d/%d/%d", cfg.MaxPlies, cfg.Verbosity, cfg.Games, cfg.Workers)
	}
	if cfg.Seed != -17 {
		t.Errorf("Seed = %d, want -17", cfg.Seed)
	}
	if cfg.StartFEN != env[EnvFEN] {
		t.Errorf("StartFEN = %q", cfg.StartFEN)
	}
}

func TestApplyEnv_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{EnvWhite, "grandmaster"},
		{EnvWhitePly, "three"},
		{EnvMinMoveTime, "1s"},
		{EnvSeed, "0x10"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			lookup := func(key string) (string, bool) {
				if key == tt.key {
					return tt.value, true
				}
				return "", false
			}
			err := applyEnv(NewConfig(), lookup)
			if !errors.Is(err, errors.ErrInvalidConfig) {
				t.Errorf("applyEnv(%s=%q) error = %v, want ErrInvalidConfig", tt.key, tt.value, err)
			}
		})
	}
}

func TestLoadEnv_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nicechess.env")
	content := "NICECHESS_BLACK=random\nNICECHESS_GAMES=3\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv(EnvBlack)
		os.Unsetenv(EnvGames)
	})

	cfg := NewConfig()
	if err := LoadEnv(cfg, path); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	if cfg.Black.Kind != RandomPlayer {
		t.Errorf("Black.Kind = %v, want random", cfg.Black.Kind)
	}
	if cfg.Games != 3 {
		t.Errorf("Games = %d, want 3", cfg.Games)
	}
}

func TestLoadEnv_MissingExplicitFile(t *testing.T) {
	err := LoadEnv(NewConfig(), filepath.Join(t.TempDir(), "missing.env"))
	if err == nil {
		t.Error("LoadEnv() should fail for a missing explicit file")
	}
}
