// Package config loads the satdsp configuration from defaults, an optional
// YAML file, SATDSP_* environment variables and bound command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/satprobe/satdsp/dsp/core"
	"github.com/satprobe/satdsp/dsp/fft"
	"github.com/satprobe/satdsp/dsp/filter/band"
	"github.com/satprobe/satdsp/dsp/filter/spatial"
	"github.com/satprobe/satdsp/internal/logging"
	"github.com/satprobe/satdsp/measure/gate"
	"github.com/satprobe/satdsp/measure/normalize"
)

// EnvPrefix is the prefix of environment overrides, e.g.
// SATDSP_FILTER_MIDDLE_CUTOFF_RATIO.
const EnvPrefix = "SATDSP"

// Output formats accepted by output_format.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config represents the application configuration
type Config struct {
	SampleRate   float64 `mapstructure:"sample_rate" yaml:"sample_rate"`
	LogLevel     string  `mapstructure:"log_level" yaml:"log_level"`
	OutputFormat string  `mapstructure:"output_format" yaml:"output_format"`

	FFT        FFTConfig        `mapstructure:"fft" yaml:"fft"`
	Filter     FilterConfig     `mapstructure:"filter" yaml:"filter"`
	Gate       GateConfig       `mapstructure:"gate" yaml:"gate"`
	BScan      BScanConfig      `mapstructure:"bscan" yaml:"bscan"`
	Smooth     SmoothConfig     `mapstructure:"smooth" yaml:"smooth"`
	Unsharp    UnsharpConfig    `mapstructure:"unsharp" yaml:"unsharp"`
	Threshold  ThresholdConfig  `mapstructure:"threshold" yaml:"threshold"`
	ZeroOffset ZeroOffsetConfig `mapstructure:"zero_offset" yaml:"zero_offset"`
}

// FFTConfig selects the transform backend.
type FFTConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
}

// FilterConfig holds the band filter cut-off ratios.
type FilterConfig struct {
	MiddleCutoffRatio float64 `mapstructure:"middle_cutoff_ratio" yaml:"middle_cutoff_ratio"`
	SideCutoffRatio   float64 `mapstructure:"side_cutoff_ratio" yaml:"side_cutoff_ratio"`
}

// GateConfig describes the gates and the reference used to shift them.
type GateConfig struct {
	FirstPeakRatio      float64     `mapstructure:"first_peak_ratio" yaml:"first_peak_ratio"`
	OriginFirstMaxIndex int         `mapstructure:"origin_first_max_index" yaml:"origin_first_max_index"`
	Gates               []gate.Gate `mapstructure:"gates" yaml:"gates"`
	SoundVelocities     []float64   `mapstructure:"sound_velocities" yaml:"sound_velocities"`
}

type BScanConfig struct {
	ThresholdRatio float64 `mapstructure:"threshold_ratio" yaml:"threshold_ratio"`
}

// SmoothConfig configures Gaussian smoothing. KernelSize 0 derives the size
// from Sigma.
type SmoothConfig struct {
	Sigma      float64 `mapstructure:"sigma" yaml:"sigma"`
	KernelSize int     `mapstructure:"kernel_size" yaml:"kernel_size"`
}

// UnsharpConfig configures unsharp masking. The blur uses Smooth.Sigma.
type UnsharpConfig struct {
	Amount    float64 `mapstructure:"amount" yaml:"amount"`
	Threshold float64 `mapstructure:"threshold" yaml:"threshold"`
}

type ThresholdConfig struct {
	Level       float64 `mapstructure:"level" yaml:"level"`
	UseAbsolute bool    `mapstructure:"use_absolute" yaml:"use_absolute"`
}

type ZeroOffsetConfig struct {
	UseAbsolute bool `mapstructure:"use_absolute" yaml:"use_absolute"`
}

// NewViper returns a viper instance with defaults and environment binding
// applied.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// SetDefaults sets default configuration values
func SetDefaults(v *viper.Viper) {
	v.SetDefault("sample_rate", core.DefaultSampleRate)
	v.SetDefault("log_level", "info")
	v.SetDefault("output_format", FormatCSV)

	v.SetDefault("fft.backend", fft.BackendAuto.String())

	b := band.DefaultBand()
	v.SetDefault("filter.middle_cutoff_ratio", b.MiddleCutoffRatio)
	v.SetDefault("filter.side_cutoff_ratio", b.SideCutoffRatio)

	v.SetDefault("gate.first_peak_ratio", gate.DefaultFirstPeakRatio)
	v.SetDefault("gate.origin_first_max_index", 0)
	v.SetDefault("gate.gates", []map[string]any{})
	v.SetDefault("gate.sound_velocities", []float64{gate.DefaultSoundVelocity})

	v.SetDefault("bscan.threshold_ratio", normalize.DefaultThresholdRatio)

	v.SetDefault("smooth.sigma", 2.0)
	v.SetDefault("smooth.kernel_size", 0)

	v.SetDefault("unsharp.amount", 1.5)
	v.SetDefault("unsharp.threshold", 0.0)

	v.SetDefault("threshold.level", 0.0)
	v.SetDefault("threshold.use_absolute", true)

	v.SetDefault("zero_offset.use_absolute", false)
}

// Load reads the configuration. An explicit path must exist; without one the
// file satdsp.yaml is looked up in ./configs, the working directory and
// $HOME/.config/satdsp, and its absence is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("satdsp")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "satdsp"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration with every key at its default.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		panic(fmt.Sprintf("config: decoding defaults: %v", err))
	}
	return cfg
}

// Validate rejects values the engine would refuse. Errors wrap
// core.ErrInvalidParameter or core.ErrInvalidGate.
func (c *Config) Validate() error {
	if err := core.RequirePositive("sample_rate", c.SampleRate); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", core.ErrInvalidParameter, err)
	}
	switch c.OutputFormat {
	case FormatCSV, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("%w: output_format must be csv, json or yaml: %q", core.ErrInvalidParameter, c.OutputFormat)
	}
	if _, err := c.Backend(); err != nil {
		return err
	}
	if err := c.Band().Validate(); err != nil {
		return err
	}

	if !core.IsFinite(c.Gate.FirstPeakRatio) || c.Gate.FirstPeakRatio < 0 {
		return fmt.Errorf("%w: gate.first_peak_ratio must be >= 0: %v", core.ErrInvalidParameter, c.Gate.FirstPeakRatio)
	}
	for k, g := range c.Gate.Gates {
		if !g.Valid() {
			return fmt.Errorf("%w: gate.gates[%d] %v", core.ErrInvalidGate, k, g)
		}
	}
	for k, vel := range c.Gate.SoundVelocities {
		if err := core.RequirePositive(fmt.Sprintf("gate.sound_velocities[%d]", k), vel); err != nil {
			return err
		}
	}

	if err := core.RequirePositive("bscan.threshold_ratio", c.BScan.ThresholdRatio); err != nil {
		return err
	}
	if err := core.RequirePositive("smooth.sigma", c.Smooth.Sigma); err != nil {
		return err
	}
	if c.Smooth.KernelSize < 0 {
		return fmt.Errorf("%w: smooth.kernel_size must be >= 0: %d", core.ErrInvalidParameter, c.Smooth.KernelSize)
	}
	if !core.IsFinite(c.Unsharp.Amount) {
		return fmt.Errorf("%w: unsharp.amount must be finite: %v", core.ErrInvalidParameter, c.Unsharp.Amount)
	}
	if err := core.RequireNonNegative("unsharp.threshold", c.Unsharp.Threshold); err != nil {
		return err
	}
	if !core.IsFinite(c.Threshold.Level) {
		return fmt.Errorf("%w: threshold.level must be finite: %v", core.ErrInvalidParameter, c.Threshold.Level)
	}
	return nil
}

// Band returns the configured band filter.
func (c *Config) Band() band.Band {
	return band.Band{
		MiddleCutoffRatio: c.Filter.MiddleCutoffRatio,
		SideCutoffRatio:   c.Filter.SideCutoffRatio,
	}
}

// Backend returns the configured FFT backend.
func (c *Config) Backend() (fft.Backend, error) {
	return fft.ParseBackend(c.FFT.Backend)
}

// FFTOptions returns the transform options for the configured backend.
// Callers should have validated the configuration.
func (c *Config) FFTOptions() []fft.Option {
	b, err := c.Backend()
	if err != nil {
		return nil
	}
	return []fft.Option{fft.WithBackend(b)}
}

// KernelSize returns the effective smoothing kernel size.
func (c *Config) KernelSize() int {
	if c.Smooth.KernelSize > 0 {
		return c.Smooth.KernelSize
	}
	return spatial.DefaultKernelSize(c.Smooth.Sigma)
}

// YAML renders the configuration as YAML.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
