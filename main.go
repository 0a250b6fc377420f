package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/calebmur/uamwatch/config"
	"github.com/calebmur/uamwatch/public/analyzer"
	"github.com/calebmur/uamwatch/public/collector"
	"github.com/calebmur/uamwatch/public/refstore"
	"github.com/calebmur/uamwatch/public/report"
	"github.com/calebmur/uamwatch/ui"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	logPath := flag.String("log-path", "", "Path to the UAM event log (overrides config)")
	outputDir := flag.String("output-dir", "", "Directory for report files (overrides config)")
	initConfig := flag.Bool("init-config", false, "Write a default configuration file and exit")
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	version := flag.Bool("version", false, "Display version information")
	flag.Parse()

	if *version {
		fmt.Println("UAMWatch v0.1.0")
		os.Exit(0)
	}

	if *initConfig {
		if err := config.CreateDefaultConfig(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing configuration: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Default configuration written to %s\n", *configPath)
		os.Exit(0)
	}

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		cfg.Logging.Verbose = true
	}
	if *logPath != "" {
		cfg.Input.LogPath = *logPath
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}

	log := newLogger(cfg)

	ui.ShowBanner(cfg.General.Name, cfg.General.Version)

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("Detection run failed")
	}
}

// newLogger builds the run logger. Every line carries a fresh run id so
// interleaved invocations stay distinguishable in shared log captures.
func newLogger(cfg *config.Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
		level = parsed
	}
	if cfg.Logging.Verbose {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(level).With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Logger()
}

// run executes one detection pass end to end. Any error aborts before the
// report files are touched.
func run(cfg *config.Config, log zerolog.Logger) error {
	personnel, err := collector.ReadPersonnel(cfg.Input.PersonnelPath)
	if err != nil {
		return err
	}
	assets, err := collector.ReadAssets(cfg.Input.AssetsPath)
	if err != nil {
		return err
	}
	requests, err := collector.ReadRequests(cfg.Input.RequestsPath)
	if err != nil {
		return err
	}
	events, err := collector.ReadEvents(cfg.Input.LogPath)
	if err != nil {
		return err
	}
	log.Debug().
		Int("personnel", len(personnel)).
		Int("assets", len(assets)).
		Int("requests", len(requests)).
		Int("events", len(events)).
		Msg("Inputs loaded")

	store := refstore.Build(personnel, assets, requests)

	engine, err := analyzer.New(store, cfg.Detection)
	if err != nil {
		return err
	}
	alerts, err := engine.Run(events)
	if err != nil {
		return err
	}
	log.Info().Int("events", len(events)).Int("alerts", len(alerts)).Msg("Detection pass complete")

	if err := report.Write(alerts, cfg.Output.Dir); err != nil {
		return err
	}
	log.Info().Str("dir", cfg.Output.Dir).Msg("Reports written")

	ui.RenderRun(alerts)
	return nil
}
