package generate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thatsimonsguy/tmr-alias/db"
	"github.com/thatsimonsguy/tmr-alias/internal/alias"
	"github.com/thatsimonsguy/tmr-alias/internal/config"
	"github.com/thatsimonsguy/tmr-alias/internal/output"
)

func intPtr(i int) *int {
	return &i
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.ConfigFile = "tmralias.yaml"
	cfg.Output.Path = filepath.Join(dir, "timer_alias.h")
	cfg.Timers.A.Target = intPtr(3)
	cfg.Timers.A.AltPin = true
	return cfg
}

func TestRunWritesHeaderAndManifest(t *testing.T) {
	cfg := testConfig(t)
	cfg.ManifestDB = filepath.Join(t.TempDir(), "manifest.db")

	res, err := Run(cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.Output.Path, res.Output)
	assert.NotZero(t, res.RunID)
	require.Len(t, res.Bindings, 4)

	data, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)
	assert.Equal(t, res.Size, len(data))
	assert.Contains(t, string(data), "#define TMRA_TARGET 3")
	assert.Contains(t, string(data), `#define TMRA_PIN_NAME "PA2"`)

	conn, err := db.Open(cfg.ManifestDB)
	require.NoError(t, err)
	defer conn.Close()

	run, err := db.LatestRun(conn)
	require.NoError(t, err)
	assert.Equal(t, res.RunID, run.ID)
	assert.Equal(t, "c", run.Format)

	stored, err := db.Bindings(conn, run.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Bindings, stored)
}

func TestRunGoOutput(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.Format = "go"
	cfg.Output.Path = filepath.Join(filepath.Dir(cfg.Output.Path), "timers", "alias_gen.go")

	_, err := Run(cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "package timers")
	assert.Contains(t, string(data), "DO NOT EDIT.")
}

func TestRunStrictWritesNothing(t *testing.T) {
	cfg := testConfig(t)
	cfg.Strict = true
	cfg.Timers.B.Target = intPtr(3)

	_, err := Run(cfg)
	require.ErrorIs(t, err, alias.ErrSharedTarget)
	assert.NoFileExists(t, cfg.Output.Path)
}

func TestRunKeepsExistingOutput(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.Output.Path, []byte("keep"), 0o644))

	_, err := Run(cfg)
	require.ErrorIs(t, err, output.ErrExists)

	data, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))

	cfg.Output.Force = true
	_, err = Run(cfg)
	require.NoError(t, err)
}

func TestRunBadManifestWritesNothing(t *testing.T) {
	cfg := testConfig(t)
	cfg.ManifestDB = t.TempDir()

	_, err := Run(cfg)
	require.Error(t, err)
	assert.NoFileExists(t, cfg.Output.Path)

	cfg.ManifestDB = filepath.Join(t.TempDir(), "manifest.db")
	res, err := Run(cfg)
	require.NoError(t, err)
	assert.NotZero(t, res.RunID)
	assert.FileExists(t, cfg.Output.Path)
}

func TestRunExistingOutputLeavesNoManifestRun(t *testing.T) {
	cfg := testConfig(t)
	cfg.ManifestDB = filepath.Join(t.TempDir(), "manifest.db")
	require.NoError(t, os.WriteFile(cfg.Output.Path, []byte("keep"), 0o644))

	_, err := Run(cfg)
	require.ErrorIs(t, err, output.ErrExists)

	conn, err := db.Open(cfg.ManifestDB)
	require.NoError(t, err)
	defer conn.Close()
	_, err = db.LatestRun(conn)
	assert.ErrorIs(t, err, db.ErrNoRuns)
}

func TestDryRun(t *testing.T) {
	cfg := testConfig(t)

	calls, err := DryRun(cfg)
	require.NoError(t, err)
	assert.NoFileExists(t, cfg.Output.Path)

	// TMRA remaps onto PA2, every timer then configures its pin.
	require.Len(t, calls, 5)
	assert.Equal(t, "GPIOPinRemap", calls[0].Fn)
	assert.Equal(t, "GPIOA_ModeCfg", calls[1].Fn)
	assert.Equal(t, "GPIOA_ModeCfg", calls[2].Fn)
	assert.Equal(t, "GPIOA_ModeCfg", calls[3].Fn)
	assert.Equal(t, "GPIOB_ModeCfg", calls[4].Fn)
}

func TestDryRunOutOfRange(t *testing.T) {
	cfg := testConfig(t)
	cfg.Timers.C.Target = intPtr(4)

	_, err := DryRun(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tmr.C")
}
