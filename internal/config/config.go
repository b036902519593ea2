package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/thatsimonsguy/tmr-alias/internal/model"
)

var ErrInvalid = errors.New("invalid timer configuration")

// TimerConfig selects the peripheral and pin of one logical timer.
// A nil Target means the logical timer keeps its default peripheral.
type TimerConfig struct {
	Target *int `json:"target,omitempty" yaml:"target,omitempty"`
	AltPin bool `json:"alt_pin" yaml:"alt_pin"`
}

type Timers struct {
	A TimerConfig `json:"A" yaml:"A"`
	B TimerConfig `json:"B" yaml:"B"`
	C TimerConfig `json:"C" yaml:"C"`
	D TimerConfig `json:"D" yaml:"D"`
}

// Get returns the entry for l, nil for an unknown logical timer.
func (t *Timers) Get(l model.Logical) *TimerConfig {
	switch l {
	case model.TimerA:
		return &t.A
	case model.TimerB:
		return &t.B
	case model.TimerC:
		return &t.C
	case model.TimerD:
		return &t.D
	}
	return nil
}

// TargetOf applies the default A->0, B->1, C->2, D->3 when no target is set.
func (t *Timers) TargetOf(l model.Logical) model.Target {
	tc := t.Get(l)
	if tc == nil || tc.Target == nil {
		return model.Target(l)
	}
	return model.Target(*tc.Target)
}

func (t *Timers) AltPinOf(l model.Logical) bool {
	tc := t.Get(l)
	return tc != nil && tc.AltPin
}

type OutputConfig struct {
	Format    string `json:"format" yaml:"format"`
	Path      string `json:"path" yaml:"path"`
	Package   string `json:"package" yaml:"package"`
	SDKImport string `json:"sdk_import" yaml:"sdk_import"`
	Force     bool   `json:"force" yaml:"force"`
}

type Config struct {
	ConfigFile string        `json:"-" yaml:"-"`
	LogLevel   zerolog.Level `json:"-" yaml:"-"`
	LogFile    string        `json:"log_file" yaml:"log_file"`
	DryRun     bool          `json:"-" yaml:"-"`

	// Strict rejects two logical timers bound to the same peripheral.
	Strict bool   `json:"strict" yaml:"strict"`
	Timers Timers `json:"timers" yaml:"timers"`

	Output     OutputConfig `json:"output" yaml:"output"`
	ManifestDB string       `json:"manifest_db" yaml:"manifest_db"`

	EnableDatadog bool     `json:"enable_datadog" yaml:"enable_datadog"`
	DDAgentAddr   string   `json:"dd_agent_addr" yaml:"dd_agent_addr"`
	DDNamespace   string   `json:"dd_namespace" yaml:"dd_namespace"`
	DDTags        []string `json:"dd_tags" yaml:"dd_tags"`
}

func Default() *Config {
	return &Config{
		LogLevel: zerolog.InfoLevel,
		Output: OutputConfig{
			Format:    "c",
			Path:      "timer_alias.h",
			Package:   "timers",
			SDKImport: "github.com/wch/ch5xx",
		},
		DDAgentAddr: "127.0.0.1:8125",
		DDNamespace: "tmralias.",
	}
}

// Load parses command line flags, reads the config file they name and
// validates the result. Flags given explicitly win over file values.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("tmralias", flag.ContinueOnError)

	var (
		configFile = fs.String("config", "tmralias.yaml", "Path to timer alias config (.yaml, .json or .h)")
		logLevel   = fs.String("log-level", "info", "Log level (debug, info, warn, error)")
		logFile    = fs.String("log-file", "", "Also append logs to this file")
		strict     = fs.Bool("strict", false, "Reject two logical timers sharing one peripheral")
		format     = fs.String("format", "", "Output format (c, go)")
		output     = fs.String("output", "", "Output file")
		force      = fs.Bool("force", false, "Overwrite output file")
		pkg        = fs.String("package", "", "Package name of generated Go code")
		sdk        = fs.String("sdk", "", "Import path of the vendor SDK bindings for generated Go code")
		manifest   = fs.String("manifest", "", "Record the resolved bindings in this sqlite database")
		dryRun     = fs.Bool("dry-run", false, "Resolve against the simulator instead of writing output")
	)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	explicit := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicit = true
		}
	})
	if explicit {
		if _, err := os.Stat(*configFile); err != nil {
			return nil, fmt.Errorf("config file %s: %w", *configFile, err)
		}
	}

	cfg, err := LoadFile(*configFile)
	if err != nil {
		return nil, err
	}
	cfg.ConfigFile = *configFile
	cfg.LogLevel = parseLogLevel(*logLevel)
	cfg.DryRun = *dryRun

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-file":
			cfg.LogFile = *logFile
		case "strict":
			cfg.Strict = *strict
		case "format":
			cfg.Output.Format = *format
		case "output":
			cfg.Output.Path = *output
		case "force":
			cfg.Output.Force = *force
		case "package":
			cfg.Output.Package = *pkg
		case "sdk":
			cfg.Output.SDKImport = *sdk
		case "manifest":
			cfg.ManifestDB = *manifest
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a config file without validating it. A missing file
// yields the defaults; Load only allows that for the implicit default path.
func LoadFile(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unknown keys are errors: a misspelt timer would otherwise keep its
	// default mapping.
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(cfg)
	case ".h":
		err = parseDefines(bytes.NewReader(data), &cfg.Timers)
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err = dec.Decode(cfg); errors.Is(err, io.EOF) {
			err = nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}

	cfg.ensureDefaults()
	return cfg, nil
}

func (c *Config) ensureDefaults() {
	def := Default()
	if c.Output.Format == "" {
		c.Output.Format = def.Output.Format
	}
	if c.Output.Path == "" {
		c.Output.Path = def.Output.Path
	}
	if c.Output.Package == "" {
		c.Output.Package = def.Output.Package
	}
	if c.Output.SDKImport == "" {
		c.Output.SDKImport = def.Output.SDKImport
	}
	if c.DDAgentAddr == "" {
		c.DDAgentAddr = def.DDAgentAddr
	}
	if c.DDNamespace == "" {
		c.DDNamespace = def.DDNamespace
	}
}

func parseLogLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Validate reports every out-of-range target and, in strict mode, every
// pair of logical timers sharing a peripheral.
func (c *Config) Validate() error {
	var (
		invalid   []string
		used      = map[model.Target]model.Logical{}
		conflicts []string
	)

	for _, l := range model.Logicals {
		target := c.Timers.TargetOf(l)
		if !target.Valid() {
			invalid = append(invalid, fmt.Sprintf("tmr.%s: target %d out of range (0-%d)", l, int(target), int(model.MaxTarget)))
			continue
		}
		if other, exists := used[target]; exists {
			conflicts = append(conflicts, fmt.Sprintf("tmr.%s and tmr.%s both target %s", other, l, target.Name()))
		} else {
			used[target] = l
		}
	}

	var problems []string
	problems = append(problems, invalid...)
	if c.Strict {
		problems = append(problems, conflicts...)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// Aliased lists the logical timers that share a peripheral with an
// earlier one. Permitted unless Strict is set.
func (c *Config) Aliased() []model.Logical {
	var out []model.Logical
	seen := map[model.Target]bool{}
	for _, l := range model.Logicals {
		target := c.Timers.TargetOf(l)
		if seen[target] {
			out = append(out, l)
		}
		seen[target] = true
	}
	return out
}
