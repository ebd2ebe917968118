package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"se4x/config"
	"se4x/engine"
	"se4x/experiments"
	"se4x/experiments/metrics"
	"se4x/game"
	"se4x/scenario"
	"se4x/simulator"
)

func main() {
	flags := pflag.NewFlagSet("se4x", pflag.ExitOnError)
	configDir := flags.String("config-dir", ".", "Directory containing se4x.yaml")
	scenarioPath := flags.String("scenario", "", "Scenario file to fight")
	replay := flags.Bool("replay", false, "Fight once with a full trace instead of running a batch")
	experiment := flags.String("experiment", "", "Run an experiment instead: throughput or tech-sweep")
	dice := flags.Int("dice", 0, "Print the hit distribution for this many dice and exit")
	threshold := flags.Int("threshold", 5, "Hit threshold used with --dice")
	flags.Int("trials", 0, "Number of fights per batch")
	flags.Int("workers", 0, "Number of goroutines running fights")
	flags.Uint64("seed", 0, "Base seed, 0 for a time-based seed")
	flags.Int("max-rounds", 0, "Round limit before a fight is a stalemate")
	flags.String("csv-dir", "", "Export trial records and the summary as CSV under this directory")
	flags.String("log-level", "", "Log level")
	_ = flags.Parse(os.Args[1:])

	if err := config.Load(*configDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	bindFlags(flags)
	setupLogger(config.GetString("logLevel"))

	cfg, err := config.GetSimulationConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	if *dice > 0 {
		dist, err := simulator.RollDistribution(*dice, *threshold, cfg.Trials, game.NewSeededRoller(cfg.Seed))
		if err != nil {
			log.Fatal().Err(err).Msg("roll distribution failed")
		}
		fmt.Println(dist)
		return
	}

	if *scenarioPath == "" {
		log.Fatal().Msg("a --scenario file is required")
	}
	sc, err := scenario.Load(*scenarioPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load scenario")
	}
	battle, err := sc.Resolve(game.StandardCatalog())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to resolve scenario")
	}
	log.Info().Msgf("%s: %s [%s] vs. %s [%s]", battle.Name,
		scenario.Describe(battle.Attacker), battle.Attacker.Upgrades,
		scenario.Describe(battle.Defender), battle.Defender.Upgrades)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case *replay:
		err = runReplay(battle, cfg)
	case *experiment != "":
		err = runExperiment(ctx, *experiment, battle, cfg)
	default:
		err = runBatch(ctx, battle, cfg)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}

func bindFlags(flags *pflag.FlagSet) {
	for key, name := range map[string]string{
		"simulation.trials":    "trials",
		"simulation.workers":   "workers",
		"simulation.seed":      "seed",
		"simulation.maxRounds": "max-rounds",
		"output.csvDir":        "csv-dir",
		"logLevel":             "log-level",
	} {
		// Only explicit flags override the config file
		if f := flags.Lookup(name); f != nil && f.Changed {
			_ = viper.BindPFlag(key, f)
		}
	}
}

func setupLogger(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(lvl).With().Timestamp().Logger()
}

func runReplay(battle scenario.Battle, cfg config.SimulationConfig) error {
	var dice game.Roller = game.NewSeededRoller(cfg.Seed)
	if len(battle.Rolls) > 0 {
		dice = &game.ScriptedRoller{Rolls: battle.Rolls, Fallback: game.DieSides}
	}

	// Replays always show the full trace
	trace := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, PartsExclude: []string{zerolog.TimestampFieldName}}).
		Level(zerolog.DebugLevel)
	f, err := engine.NewFight(battle.Attacker, battle.Defender,
		engine.WithRoller(dice),
		engine.WithTrace(trace),
		engine.WithEnvironment(battle.Environment),
		engine.WithMaxRounds(cfg.MaxRounds),
	)
	if err != nil {
		return err
	}
	res, err := f.Run()
	if err != nil {
		return err
	}
	fmt.Printf("Att CP lost: %d - Def CP lost : %d\n", res.AttackerLost, res.DefenderLost)
	return nil
}

func runBatch(ctx context.Context, battle scenario.Battle, cfg config.SimulationConfig) error {
	sim, err := simulator.New(battle.Attacker, battle.Defender,
		simulator.WithTrials(cfg.Trials),
		simulator.WithWorkers(cfg.Workers),
		simulator.WithSeed(cfg.Seed),
		simulator.WithMaxRounds(cfg.MaxRounds),
		simulator.WithEnvironment(battle.Environment),
		simulator.WithMetrics(),
	)
	if err != nil {
		return err
	}
	summary, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println(summary)
	fmt.Println(summary.CSVLine())
	if summary.Stalemates > 0 || summary.Faults > 0 {
		log.Warn().Msgf("%d stalemates, %d faulted trials", summary.Stalemates, summary.Faults)
	}
	log.Info().Msgf("rounds: mean %.1f p90 %.0f, seed %d", summary.Rounds.Mean, summary.Rounds.P90, summary.Seed)

	csvDir := config.GetString("output.csvDir")
	if csvDir == "" {
		return nil
	}
	writer, err := metrics.NewWriter(csvDir)
	if err != nil {
		return err
	}
	if err := writer.WriteTrialRecords(summary.TrialRecords()); err != nil {
		return err
	}
	if err := writer.WriteSummaries([]metrics.SummaryRecord{summary.SummaryRecord(battle.Name)}); err != nil {
		return err
	}
	log.Info().Msgf("stored records in %s", writer.Dir())
	return nil
}

func runExperiment(ctx context.Context, name string, battle scenario.Battle, cfg config.SimulationConfig) error {
	outDir := config.GetString("output.csvDir")
	if outDir == "" {
		outDir = "experiments"
	}
	setup := experiments.Setup{
		Battle:  battle,
		Trials:  cfg.Trials,
		Workers: cfg.Workers,
		Seed:    cfg.Seed,
		OutDir:  outDir,
	}
	switch name {
	case "throughput":
		return experiments.RunThroughputExperiment(ctx, setup)
	case "tech-sweep":
		return experiments.RunTechSweep(ctx, setup)
	}
	return fmt.Errorf("unknown experiment %q", name)
}
