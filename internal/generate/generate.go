package generate

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/tmr-alias/db"
	"github.com/thatsimonsguy/tmr-alias/internal/alias"
	"github.com/thatsimonsguy/tmr-alias/internal/codegen"
	"github.com/thatsimonsguy/tmr-alias/internal/config"
	"github.com/thatsimonsguy/tmr-alias/internal/datadog"
	"github.com/thatsimonsguy/tmr-alias/internal/model"
	"github.com/thatsimonsguy/tmr-alias/internal/output"
	"github.com/thatsimonsguy/tmr-alias/internal/sdk"
	"github.com/thatsimonsguy/tmr-alias/internal/sdk/sim"
)

type Result struct {
	Bindings []model.Binding
	Output   string
	Size     int
	RunID    int64
}

// Run resolves the configured aliases, writes them in the configured
// format and records the run. Any configuration problem aborts before the
// output file is touched.
func Run(cfg *config.Config) (*Result, error) {
	bindings, err := alias.Bindings(cfg.Timers, alias.Options{Strict: cfg.Strict})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = codegen.Generate(&buf, cfg.Output.Format, bindings, codegen.Options{
		Package:   cfg.Output.Package,
		SDKImport: cfg.Output.SDKImport,
		Source:    filepath.Base(cfg.ConfigFile),
	})
	if err != nil {
		return nil, err
	}

	res := &Result{Bindings: bindings, Output: cfg.Output.Path, Size: buf.Len()}

	if cfg.ManifestDB == "" {
		if err := output.Write(cfg.Output.Path, buf.Bytes(), cfg.Output.Force); err != nil {
			return nil, err
		}
	} else {
		id, err := writeWithManifest(cfg, bindings, buf.Bytes())
		if err != nil {
			return nil, err
		}
		res.RunID = id
	}

	aliased := cfg.Aliased()
	for _, l := range aliased {
		log.Warn().
			Str("logical", l.Prefix()).
			Str("target", cfg.Timers.TargetOf(l).Name()).
			Msg("Logical timer shares its peripheral with another")
	}
	datadog.RecordRun(cfg.Output.Format, bindings, len(aliased))

	for _, b := range bindings {
		log.Info().
			Str("logical", b.Logical.Prefix()).
			Str("target", b.Target.Name()).
			Str("pin", b.Pin.Name()).
			Bool("alt_pin", b.AltPin).
			Msg("Timer alias")
	}
	return res, nil
}

// writeWithManifest records the run and writes the output as one unit:
// the run is only committed once the output is on disk, and a failed
// manifest leaves no output behind.
func writeWithManifest(cfg *config.Config, bindings []model.Binding, data []byte) (int64, error) {
	conn, err := db.Open(cfg.ManifestDB)
	if err != nil {
		return 0, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer conn.Close()

	tx, err := db.StartTransaction(conn)
	if err != nil {
		return 0, err
	}
	id, err := db.RecordRunWithTx(tx, db.Run{
		Source: cfg.ConfigFile,
		Format: cfg.Output.Format,
		Output: cfg.Output.Path,
		Strict: cfg.Strict,
	}, bindings)
	if err != nil {
		db.RollbackTransaction(tx)
		return 0, fmt.Errorf("failed to record manifest: %w", err)
	}

	if err := output.Write(cfg.Output.Path, data, cfg.Output.Force); err != nil {
		db.RollbackTransaction(tx)
		return 0, err
	}

	if err := db.CommitTransaction(tx); err != nil {
		os.Remove(cfg.Output.Path)
		return 0, fmt.Errorf("failed to record manifest: %w", err)
	}
	return id, nil
}

// DryRun resolves the aliases against the simulator and performs the
// usual pin bring-up on each: remap if needed, then configure the pin as
// a push-pull output. It returns the vendor calls that resulted.
func DryRun(cfg *config.Config) ([]sim.Call, error) {
	drv := sim.New()
	set, err := alias.Resolve(cfg.Timers, drv, alias.Options{Strict: cfg.Strict})
	if err != nil {
		return nil, err
	}

	for _, l := range model.Logicals {
		tm := set.Timer(l)
		tm.MaybePinRemap()
		tm.GPIOModeCfg(sdk.GPIOModeOutPP5mA)
	}

	calls := drv.Calls()
	for _, c := range calls {
		log.Info().Str("call", c.String()).Msg("Dry run")
	}
	return calls, nil
}
