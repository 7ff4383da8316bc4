// nicechess plays chess between humans, its own search engine, a random
// mover and external UCI or Xboard engines.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/lgbarn/nicechess-go/internal/config"
	"github.com/lgbarn/nicechess-go/internal/errors"
	"github.com/lgbarn/nicechess-go/internal/game"
	"github.com/lgbarn/nicechess-go/internal/hashing"
	"github.com/lgbarn/nicechess-go/internal/match"
	"github.com/lgbarn/nicechess-go/internal/output"
	"github.com/lgbarn/nicechess-go/internal/worker"
)

const programVersion = "0.1.0"

const eventName = "nicechess"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("nicechess version %s\n", programVersion)
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "nicechess: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.NewConfig()
	if err := config.LoadEnv(cfg, *envFile); err != nil {
		return err
	}
	if err := applyFlags(cfg, setFlags(flag.CommandLine)); err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Set up logging and output files
	closeLog, err := setupLogFile(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	closeOutput, err := setupOutputFile(cfg)
	if err != nil {
		return err
	}
	defer closeOutput()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gw := newGameWriter(cfg)
	if cfg.Games == 1 {
		err = playSingle(ctx, cfg, gw)
	} else {
		err = playTournament(ctx, cfg, gw)
	}
	if cerr := gw.Close(); cerr != nil {
		err = multierror.Append(err, cerr)
	}
	return err
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) (func(), error) {
	if *logFile == "" {
		return func() {}, nil
	}
	file, err := os.Create(*logFile)
	if err != nil {
		return nil, errors.Wrapf(err, "creating log file %s", *logFile)
	}
	cfg.LogFile = file
	return func() { file.Close() }, nil //nolint:errcheck,gosec // G104: cleanup on exit
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) (func(), error) {
	if *outputFile == "" {
		return func() {}, nil
	}

	var file *os.File
	var err error

	if *appendOutput {
		file, err = os.OpenFile(*outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created output files
	} else {
		file, err = os.Create(*outputFile)
	}

	if err != nil {
		return nil, errors.Wrapf(err, "creating output file %s", *outputFile)
	}
	cfg.OutputFile = file
	return func() { file.Close() }, nil //nolint:errcheck,gosec // G104: cleanup on exit
}

// newGameWriter creates the JSON or PGN writer for finished games.
func newGameWriter(cfg *config.Config) output.GameWriter {
	if cfg.JSON {
		if cfg.Games == 1 {
			return output.NewJSONWriterSingle(cfg.OutputFile)
		}
		return output.NewJSONWriter(cfg.OutputFile)
	}
	format, _ := output.ParseFormat(cfg.Notation) // checked by Validate
	return output.NewPGNWriter(cfg.OutputFile, output.PGNOptions{
		Format:        format,
		MaxLineLength: cfg.MaxLineLength,
	})
}

// playSingle plays one game. When a human takes part, moves are read from
// stdin and the board is printed after every move.
func playSingle(ctx context.Context, cfg *config.Config, gw output.GameWriter) error {
	interactive := cfg.White.Kind == config.HumanPlayer || cfg.Black.Kind == config.HumanPlayer

	var opts []match.Option
	if interactive {
		opts = append(opts,
			match.WithObserver(printPly(os.Stdout, !*noBoard)),
			match.WithRejectHandler(printRejection(os.Stdout)))
	}
	m, err := newMatch(ctx, cfg, worker.WorkItem{Seed: cfg.Seed, StartFEN: cfg.StartFEN}, opts...)
	if err != nil {
		return err
	}

	if interactive {
		if !*noBoard {
			printBoard(os.Stdout, m.State().FEN())
		}
		consoleCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go newConsole(m, os.Stdout).run(consoleCtx, os.Stdin)
	}

	res, runErr := m.Run(ctx)
	var errs error
	if runErr != nil {
		errs = multierror.Append(errs, runErr)
	}
	if err := m.Close(); err != nil {
		errs = multierror.Append(errs, err)
	}

	reportResult(cfg.LoggerAt(config.Results).Writer(), 0, res)
	if err := writeRecord(gw, cfg, m.ID.String(), 0, m.State(), res); err != nil {
		errs = multierror.Append(errs, err)
	}
	return errs
}

// playTournament plays cfg.Games games on cfg.Workers workers and reports
// the standings.
func playTournament(ctx context.Context, cfg *config.Config, gw output.GameWriter) error {
	pool := worker.NewPool(worker.PlayFunc(ctx, matchFactory(ctx, cfg)), worker.WithWorkers(cfg.Workers))
	stopPool := context.AfterFunc(ctx, pool.Stop)
	defer stopPool()

	results := pool.RunAll(worker.Items(cfg.Games, cfg.Seed, cfg.StartFEN))

	resultLog := cfg.LoggerAt(config.Results).Writer()
	standings := output.NewStandings()
	detector := hashing.NewDuplicateDetector(true, 0)
	var errs error
	for _, r := range results {
		if r.Error != nil {
			errs = multierror.Append(errs, errors.Wrapf(r.Error, "game %d", r.Index+1))
		}
		if r.State == nil {
			continue
		}
		standings.Add(r.Result)
		reportResult(resultLog, r.Index+1, r.Result)

		if detector.CheckAndAdd(r.State) && cfg.SuppressDuplicates {
			continue
		}
		if err := writeRecord(gw, cfg, r.MatchID, r.Index+1, r.State, r.Result); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	output.WriteSummary(resultLog, standings, cfg.White.Name(), cfg.Black.Name())
	if n := detector.DuplicateCount(); n > 0 {
		fmt.Fprintf(resultLog, "%d duplicate game(s) out of %d.\n", n, standings.Games)
	}
	return errs
}

// writeRecord writes one game. Round 0 means a single game.
func writeRecord(gw output.GameWriter, cfg *config.Config, id string, round int, state *game.State, res match.Result) error {
	rec, err := output.NewRecord(id, cfg.White.Name(), cfg.Black.Name(), state, res)
	if err != nil {
		return err
	}
	rec.Event = eventName
	rec.Date = time.Now().Format("2006.01.02")
	rec.Round = round
	return gw.WriteGame(rec)
}

func reportResult(w io.Writer, round int, res match.Result) {
	reason := res.Reason
	if reason == "" {
		reason = "unfinished"
	}
	if round > 0 {
		fmt.Fprintf(w, "game %d: %s (%s) after %d plies\n", round, res.PGN(), reason, res.Plies)
		return
	}
	fmt.Fprintf(w, "%s (%s) after %d plies\n", res.PGN(), reason, res.Plies)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: nicechess [options]\n\n")
	fmt.Fprintf(os.Stderr, "Play chess against the computer, or let engines play each other.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nPlayers (-white, -black):\n")
	fmt.Fprintf(os.Stderr, "  human          Moves typed on stdin (e2e4, e7e8q, undo, quit)\n")
	fmt.Fprintf(os.Stderr, "  nice           Built-in alpha-beta search\n")
	fmt.Fprintf(os.Stderr, "  random         Uniformly random legal moves\n")
	fmt.Fprintf(os.Stderr, "  uci:<path>     External UCI engine\n")
	fmt.Fprintf(os.Stderr, "  xboard:<path>  External Xboard engine\n")
	fmt.Fprintf(os.Stderr, "\nMove notations (-W):\n")
	fmt.Fprintf(os.Stderr, "  san    Standard Algebraic Notation (default)\n")
	fmt.Fprintf(os.Stderr, "  lalg   Long algebraic (e2e4)\n")
	fmt.Fprintf(os.Stderr, "  halg   Hyphenated long algebraic (e2-e4)\n")
	fmt.Fprintf(os.Stderr, "  elalg  Enhanced long algebraic (Ng1f3)\n")
	fmt.Fprintf(os.Stderr, "  uci    UCI format\n")
}
