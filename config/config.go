// Package config provides the run configuration of the chronos tools and
// turns it into machine, core and driver builders.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sarchlab/akita/v4/sim"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/chronos/api"
	"github.com/sarchlab/chronos/core"
)

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds everything a run can be tuned with. Zero values of the
// numeric limits mean "no limit".
type Config struct {
	Input string `yaml:"input"`

	// Part selects which answer to compute: 1, 2, or 0 for both.
	Part int `yaml:"part"`

	Strategy         string `yaml:"strategy"`
	Start            uint64 `yaml:"start"`
	MaxSteps         uint64 `yaml:"max_steps"`
	MaxCandidates    uint64 `yaml:"max_candidates"`
	Workers          int    `yaml:"workers"`
	BatchSize        uint64 `yaml:"batch_size"`
	ProgressInterval uint64 `yaml:"progress_interval"`

	LogLevel string `yaml:"log_level"`
	Trace    bool   `yaml:"trace"`

	// Timed runs part 1 on the akita engine and reports cycles.
	Timed   bool    `yaml:"timed"`
	FreqGHz float64 `yaml:"freq_ghz"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Input:            "input.txt",
		Strategy:         api.StrategyAuto.String(),
		Workers:          1,
		ProgressInterval: api.DefaultProgressInterval,
		LogLevel:         "info",
		FreqGHz:          1,
	}
}

// Load reads a YAML configuration file. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a YAML configuration. Unknown keys are rejected.
func Parse(r io.Reader) (Config, error) {
	c := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks that every field holds a usable value.
func (c Config) Validate() error {
	if c.Part < 0 || c.Part > 2 {
		return fmt.Errorf("%w: part must be 0, 1 or 2, got %d", ErrInvalidConfig, c.Part)
	}

	if _, err := api.ParseStrategy(c.Strategy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if _, err := c.Level(); err != nil {
		return err
	}

	if c.FreqGHz <= 0 {
		return fmt.Errorf("%w: freq_ghz must be positive, got %g", ErrInvalidConfig, c.FreqGHz)
	}

	return nil
}

// Level resolves LogLevel. Besides the slog names it accepts "trace".
func (c Config) Level() (slog.Level, error) {
	name := strings.ToLower(strings.TrimSpace(c.LogLevel))
	if name == "trace" {
		return core.LevelTrace, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}

	return level, nil
}

// DriverBuilder returns a driver builder carrying the search settings.
func (c Config) DriverBuilder() api.DriverBuilder {
	strategy, _ := api.ParseStrategy(c.Strategy)

	return api.NewDriverBuilder().
		WithStrategy(strategy).
		WithStart(c.Start).
		WithMaxSteps(c.MaxSteps).
		WithMaxCandidates(c.MaxCandidates).
		WithWorkers(c.Workers).
		WithBatchSize(c.BatchSize).
		WithProgressInterval(c.ProgressInterval)
}

// MachineBuilder returns a machine builder carrying the run settings.
func (c Config) MachineBuilder() core.MachineBuilder {
	return core.MachineBuilder{}.
		WithMaxSteps(c.MaxSteps).
		WithTrace(c.Trace)
}

// CoreBuilder returns a builder for a timed core driven by engine.
func (c Config) CoreBuilder(engine sim.Engine) core.Builder {
	return core.NewBuilder().
		WithEngine(engine).
		WithFreq(sim.Freq(c.FreqGHz) * sim.GHz).
		WithMaxSteps(c.MaxSteps).
		WithTrace(c.Trace)
}
