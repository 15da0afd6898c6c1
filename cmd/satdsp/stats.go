package main

import (
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/satprobe/satdsp/dsp/spectrum"
	"github.com/satprobe/satdsp/internal/logging"
	frequencystats "github.com/satprobe/satdsp/stats/frequency"
	timestats "github.com/satprobe/satdsp/stats/time"
)

type traceStats struct {
	Trace      string               `json:"trace" yaml:"trace"`
	SampleRate float64              `json:"sample_rate" yaml:"sample_rate"`
	Time       timestats.Stats      `json:"time" yaml:"time"`
	Spectrum   frequencystats.Stats `json:"spectrum" yaml:"spectrum"`
	SNR        *float64             `json:"snr_db,omitempty" yaml:"snr_db,omitempty"`
}

func newStatsCmd(a *app) *cobra.Command {
	var (
		dropDB    float64
		echoGate  string
		noiseGate string
	)
	cmd := &cobra.Command{
		Use:   "stats <trace.csv>",
		Short: "Level and spectrum statistics of a trace",
		Long: `Reports time-domain levels (DC, RMS, peak, crest factor) and the echo
spectrum: peak and center frequency and the bandwidth --drop-db below the
peak. With --echo-gate and --noise-gate the signal-to-noise ratio is added.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, fs, err := a.loadTrace(cmd, args[0])
			if err != nil {
				return err
			}
			rep := traceStats{Trace: tr.Name, SampleRate: fs}
			if rep.Time, err = timestats.Calculate(tr.Voltage); err != nil {
				return err
			}
			s, err := spectrum.Analyze(tr.Voltage, fs, a.cfg.FFTOptions()...)
			if err != nil {
				return err
			}
			if rep.Spectrum, err = frequencystats.Calculate(s, dropDB); err != nil {
				return err
			}
			if echoGate != "" && noiseGate != "" {
				snr, err := gateSNR(tr.Voltage, echoGate, noiseGate)
				if err != nil {
					return err
				}
				if reason, ok := snrOmitReason(snr); ok {
					a.log.Warn(reason+", SNR omitted", logging.Fields{"echo_gate": echoGate, "noise_gate": noiseGate})
				} else {
					rep.SNR = &snr
				}
			}

			f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
			rows := [][]string{
				{"sample_rate", f(rep.SampleRate)},
				{"dc", f(rep.Time.DC)},
				{"rms", f(rep.Time.RMS)},
				{"peak", f(rep.Time.Peak)},
				{"peak_index", strconv.Itoa(rep.Time.PeakIndex)},
				{"crest_factor_db", f(rep.Time.CrestFactorDB)},
				{"zero_crossings", strconv.Itoa(rep.Time.ZeroCrossings)},
				{"peak_frequency", f(rep.Spectrum.PeakFrequency)},
				{"center_frequency", f(rep.Spectrum.CenterFrequency)},
				{"bandwidth", f(rep.Spectrum.Bandwidth)},
				{"relative_bandwidth", f(rep.Spectrum.RelativeBandwidth)},
			}
			if rep.SNR != nil {
				rows = append(rows, []string{"snr_db", f(*rep.SNR)})
			}
			return a.writeRecords(cmd.OutOrStdout(), []string{"statistic", "value"}, rows, rep)
		},
	}
	cmd.Flags().Float64Var(&dropDB, "drop-db", frequencystats.DefaultDropDB, "level below the spectral peak that delimits the bandwidth")
	cmd.Flags().StringVar(&echoGate, "echo-gate", "", "echo window start:end for the SNR")
	cmd.Flags().StringVar(&noiseGate, "noise-gate", "", "noise window start:end for the SNR")
	return cmd
}

// snrOmitReason reports why a non-finite SNR cannot be shown.
func snrOmitReason(snr float64) (string, bool) {
	switch {
	case math.IsNaN(snr):
		return "echo and noise windows are silent", true
	case math.IsInf(snr, 1):
		return "noise window is silent", true
	case math.IsInf(snr, -1):
		return "echo window is silent", true
	}
	return "", false
}

func gateSNR(x []float64, echo, noise string) (float64, error) {
	eg, err := parseGate(echo)
	if err != nil {
		return 0, err
	}
	ng, err := parseGate(noise)
	if err != nil {
		return 0, err
	}
	return timestats.SNR(x, eg, ng)
}

