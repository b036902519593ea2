package main

import (
	"errors"
	"flag"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/tmr-alias/internal/config"
	"github.com/thatsimonsguy/tmr-alias/internal/datadog"
	"github.com/thatsimonsguy/tmr-alias/internal/env"
	"github.com/thatsimonsguy/tmr-alias/internal/generate"
	"github.com/thatsimonsguy/tmr-alias/internal/logging"
	"github.com/thatsimonsguy/tmr-alias/system/shutdown"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		shutdown.ShutdownWithError(err, "Invalid timer alias configuration")
		return
	}
	logging.Init(cfg.LogLevel, cfg.LogFile)
	env.Cfg = cfg
	datadog.InitMetrics()

	log.Info().
		Str("config", cfg.ConfigFile).
		Str("format", cfg.Output.Format).
		Bool("strict", cfg.Strict).
		Msg("Resolving timer aliases")

	if cfg.DryRun {
		calls, err := generate.DryRun(cfg)
		if err != nil {
			shutdown.ShutdownWithError(err, "Dry run failed")
			return
		}
		log.Info().Int("calls", len(calls)).Msg("Dry run complete, no output written")
		return
	}

	res, err := generate.Run(cfg)
	if err != nil {
		shutdown.ShutdownWithError(err, "Failed to generate timer aliases")
		return
	}

	evt := log.Info().Str("output", res.Output).Int("bytes", res.Size)
	if res.RunID != 0 {
		evt = evt.Int64("run_id", res.RunID)
	}
	evt.Msg("Timer aliases written")
}
