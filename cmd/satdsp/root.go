package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/satprobe/satdsp/dsp/core"
	"github.com/satprobe/satdsp/internal/config"
	"github.com/satprobe/satdsp/internal/logging"
	"github.com/satprobe/satdsp/internal/signalio"
)

// configKeyAnnotation maps a command flag to the configuration key it
// overrides.
const configKeyAnnotation = "satdsp/config-key"

// app carries the state shared by every subcommand of one invocation.
type app struct {
	v          *viper.Viper
	configFile string
	cfg        *config.Config
	log        *logging.ZapLogger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	root := &cobra.Command{
		Use:   "satdsp",
		Short: "Ultrasonic A-scan signal processing",
		Long: `satdsp runs the signal processing chain of a scanning acoustic test rig on
traces exported as time,voltage CSV files.

Configuration is read from satdsp.yaml (./configs, the working directory or
$HOME/.config/satdsp), SATDSP_* environment variables and flags, in
increasing order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initialize(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default is satdsp.yaml in ./configs, . or $HOME/.config/satdsp)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.StringP("output", "o", config.FormatCSV, "output format (csv, json, yaml)")
	pf.Float64("sample-rate", core.DefaultSampleRate, "sample rate in Hz; overrides the rate derived from the time column")
	pf.String("fft-backend", "auto", "FFT backend (auto, algofft, gonum, godsp)")

	_ = a.v.BindPFlag("log_level", pf.Lookup("log-level"))
	_ = a.v.BindPFlag("output_format", pf.Lookup("output"))
	_ = a.v.BindPFlag("sample_rate", pf.Lookup("sample-rate"))
	_ = a.v.BindPFlag("fft.backend", pf.Lookup("fft-backend"))

	root.AddCommand(
		newSpectrumCmd(a),
		newFilterCmd(a),
		newEnvelopeCmd(a),
		newHilbertCmd(a),
		newGatesCmd(a),
		newBScanCmd(a),
		newCScanCmd(a),
		newThicknessCmd(a),
		newStatsCmd(a),
		newSmoothCmd(a),
		newUnsharpCmd(a),
		newZeroOffsetCmd(a),
		newThresholdCmd(a),
		newSynthCmd(a),
		newRunCmd(a),
		newConfigCmd(a),
	)
	return root
}

// initialize binds the running command's flags, loads the configuration and
// builds the logger.
func (a *app) initialize(cmd *cobra.Command) error {
	if err := bindFlags(cmd, a.v); err != nil {
		return err
	}

	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.log = logging.NewWithWriter(cmd.ErrOrStderr(), level, false)
	if used := a.v.ConfigFileUsed(); used != "" {
		a.log.Debug("using config file", logging.Fields{"path": used})
	}
	return nil
}

// bindFlags binds every local flag carrying a config key annotation to that
// key. Only the running command is bound, so commands sharing a key do not
// shadow each other.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var lastErr error
	cmd.LocalNonPersistentFlags().VisitAll(func(f *pflag.Flag) {
		keys, ok := f.Annotations[configKeyAnnotation]
		if !ok || len(keys) == 0 {
			return
		}
		if err := v.BindPFlag(keys[0], f); err != nil {
			lastErr = err
		}
	})
	return lastErr
}

// configFlag marks flag name of cmd as an override for key.
func configFlag(cmd *cobra.Command, name, key string) {
	if err := cmd.Flags().SetAnnotation(name, configKeyAnnotation, []string{key}); err != nil {
		panic(fmt.Sprintf("satdsp: annotate flag %s: %v", name, err))
	}
}

// loadTrace reads a trace and resolves the sample rate used for it: the
// --sample-rate flag when given, else the rate of the time column, else the
// configured rate.
func (a *app) loadTrace(cmd *cobra.Command, path string) (signalio.Trace, float64, error) {
	tr, err := signalio.ReadCSVFile(path)
	if err != nil {
		return signalio.Trace{}, 0, err
	}
	return tr, a.sampleRate(cmd, tr), nil
}

func (a *app) sampleRate(cmd *cobra.Command, tr signalio.Trace) float64 {
	if cmd.Flags().Changed("sample-rate") {
		return a.cfg.SampleRate
	}
	fs, err := tr.SampleRate()
	if err != nil {
		a.log.Debug("falling back to configured sample rate", logging.Fields{
			"trace":  tr.Name,
			"reason": err.Error(),
		})
		return a.cfg.SampleRate
	}
	return fs
}
