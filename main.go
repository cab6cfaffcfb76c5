package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/dino/config"
	"github.com/pthm-cable/dino/game"
	"github.com/pthm-cable/dino/neat"
	"github.com/pthm-cable/dino/renderer"
	"github.com/pthm-cable/dino/store"
	"github.com/pthm-cable/dino/telemetry"
	"github.com/pthm-cable/dino/term"
)

// options holds the parsed command line.
type options struct {
	neat        bool
	night       bool
	replay      bool
	headless    bool
	term        bool
	neatConfig  string
	generations int
	genomeFile  string
	outputDir   string
	logFile     string
	seed        int64
	maxTicks    int
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	neatMode := flag.Bool("neat", false, "Train a population with NEAT instead of playing")
	night := flag.Bool("night", false, "Use the night palette")
	replay := flag.Bool("replay", false, "Watch the saved best genome play")
	headless := flag.Bool("headless", false, "Run without graphics (training and replay only)")
	termMode := flag.Bool("term", false, "Play in the terminal instead of a window")
	neatConfig := flag.String("neat-config", "", "Path to the NEAT ini file (empty = use config)")
	generations := flag.Int("generations", 0, "Generations to train (0 = use config)")
	genomeFile := flag.String("genome", "", "Best genome file (empty = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logFile := flag.String("log-file", "", "Write logs to this file instead of stdout")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Headless: stop each session after N ticks (0 = unlimited)")

	flag.Parse()

	// The bare words "neat" and "night" are accepted as well
	for _, arg := range flag.Args() {
		switch arg {
		case "neat":
			*neatMode = true
		case "night":
			*night = true
		default:
			fmt.Fprintf(os.Stderr, "unknown argument %q\n", arg)
			flag.Usage()
			os.Exit(2)
		}
	}

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	opts := options{
		neat:        *neatMode,
		night:       *night,
		replay:      *replay,
		headless:    *headless,
		term:        *termMode,
		neatConfig:  *neatConfig,
		generations: *generations,
		genomeFile:  *genomeFile,
		outputDir:   *outputDir,
		logFile:     *logFile,
		seed:        *seed,
		maxTicks:    *maxTicks,
	}
	if opts.neatConfig == "" {
		opts.neatConfig = cfg.NEAT.ConfigPath
	}
	if opts.generations <= 0 {
		opts.generations = cfg.NEAT.Generations
	}
	if opts.genomeFile == "" {
		opts.genomeFile = cfg.NEAT.GenomeFile
	}
	if opts.seed == 0 {
		opts.seed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logOut, closeLog, err := logWriter(opts)
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts); err != nil {
		slog.Error("dino failed", "error", err)
		stop()
		closeLog()
		os.Exit(1)
	}
}

// logWriter picks the log destination. The terminal front end owns stdout,
// so without a log file its logs are discarded.
func logWriter(opts options) (io.Writer, func(), error) {
	if opts.logFile != "" {
		f, err := os.Create(opts.logFile)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { f.Close() }, nil
	}
	if opts.term {
		return io.Discard, func() {}, nil
	}
	return os.Stdout, func() {}, nil
}

func run(ctx context.Context, cfg *config.Config, opts options) error {
	if opts.headless && !opts.neat && !opts.replay {
		return errors.New("-headless needs -neat or -replay, manual play needs a screen")
	}

	out, err := telemetry.NewOutputManager(opts.outputDir)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		return fmt.Errorf("writing config snapshot: %w", err)
	}

	driver, closeDriver, err := newDriver(cfg, opts, out)
	if err != nil {
		return err
	}
	defer closeDriver()

	rng := rand.New(rand.NewSource(opts.seed))
	world := game.NewWorld(cfg, rng)

	slog.Info("starting",
		"neat", opts.neat,
		"replay", opts.replay,
		"night", opts.night,
		"seed", opts.seed,
	)

	switch {
	case opts.neat:
		err = train(ctx, cfg, opts, world, driver, out, rng)
	case opts.replay:
		err = watchReplay(ctx, cfg, opts, world, driver)
	default:
		err = driver.Run(ctx, game.NewPlayerSession(cfg, world))
	}
	if errors.Is(err, game.ErrExitRequested) {
		slog.Info("exit requested", "reason", err)
		return nil
	}
	return err
}

// newDriver builds the presentation for the chosen front end.
func newDriver(cfg *config.Config, opts options, out *telemetry.OutputManager) (game.Driver, func(), error) {
	switch {
	case opts.headless:
		return &game.HeadlessDriver{DT: cfg.Physics.DT, MaxTicks: opts.maxTicks}, func() {}, nil

	case opts.term:
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, nil, fmt.Errorf("creating terminal screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return nil, nil, fmt.Errorf("initializing terminal screen: %w", err)
		}
		d := term.New(screen, cfg, term.Options{Night: opts.night})
		return d, func() {
			d.Close()
			screen.Fini()
		}, nil

	default:
		d, err := renderer.NewWindowDriver(cfg, renderer.WindowOptions{Night: opts.night, Output: out})
		if err != nil {
			return nil, nil, err
		}
		return d, d.Close, nil
	}
}

func train(ctx context.Context, cfg *config.Config, opts options, world *game.World, driver game.Driver, out *telemetry.OutputManager, rng *rand.Rand) error {
	ncfg, err := neat.LoadConfig(opts.neatConfig)
	if err != nil {
		return err
	}

	pop := neat.NewPopulation(ncfg, rng)
	pop.AddReporter(telemetry.NewRecorder(out))
	trainer := game.NewTrainer(cfg, world, driver)

	slog.Info("training",
		"population", ncfg.Neat.PopSize,
		"generations", opts.generations,
		"output_dir", out.Dir(),
	)

	_, err = trainer.Train(ctx, pop, opts.generations, opts.genomeFile)
	return err
}

func watchReplay(ctx context.Context, cfg *config.Config, opts options, world *game.World, driver game.Driver) error {
	rec, err := store.Load(opts.genomeFile)
	if errors.Is(err, store.ErrNoRecord) {
		return fmt.Errorf("nothing to replay, train first: %w", err)
	}
	if err != nil {
		return err
	}

	session, err := game.NewReplay(cfg, world, rec.Genome)
	if err != nil {
		return err
	}
	slog.Info("replaying", "key", rec.Genome.Key, "recorded_fitness", rec.Fitness, "saved_at", rec.SavedAt)

	if err := driver.Run(ctx, session); err != nil {
		return err
	}
	slog.Info("replay finished", "fitness", rec.Genome.Fitness, "score", world.Score)
	return nil
}
