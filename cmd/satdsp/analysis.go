package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satprobe/satdsp/dsp/fft"
	"github.com/satprobe/satdsp/dsp/filter/band"
	"github.com/satprobe/satdsp/dsp/filter/hilbert"
	"github.com/satprobe/satdsp/dsp/spectrum"
	"github.com/satprobe/satdsp/internal/logging"
)

const (
	viewTime     = "time"
	viewSpectrum = "spectrum"
)

func newSpectrumCmd(a *app) *cobra.Command {
	var (
		positive bool
		db       bool
		phase    bool
		unwrap   bool
	)
	cmd := &cobra.Command{
		Use:   "spectrum <trace.csv>",
		Short: "Magnitude spectrum of a trace",
		Long: `Computes the magnitude of the unnormalised DFT of the voltage column. Bins
are listed in transform order with negative frequencies in the upper half
unless --positive is given. --phase adds the bin phase in radians; --unwrap
removes its 2*pi jumps across the listed bins.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, fs, err := a.loadTrace(cmd, args[0])
			if err != nil {
				return err
			}
			s, err := spectrum.Analyze(tr.Voltage, fs, a.cfg.FFTOptions()...)
			if err != nil {
				return err
			}
			freq, mag := s.Peak()
			a.log.Info("spectrum", logging.Fields{
				"trace":     tr.Name,
				"bins":      s.Len(),
				"peak_hz":   freq,
				"peak_magn": mag,
			})
			if positive {
				s = s.PositiveHalf()
			}

			header := []string{"frequency", "magnitude"}
			columns := [][]float64{s.Frequency, s.Magnitude}
			if db {
				header[1], columns[1] = "magnitude_db", s.DB()
			}
			if phase || unwrap {
				ph := s.Phase
				if unwrap {
					ph = spectrum.UnwrapPhase(ph)
				}
				header = append(header, "phase")
				columns = append(columns, ph)
			}
			return a.writeColumns(cmd.OutOrStdout(), header, columns...)
		},
	}
	cmd.Flags().BoolVar(&positive, "positive", false, "only list bins with non-negative frequency")
	cmd.Flags().BoolVar(&db, "db", false, "report magnitudes in dB")
	cmd.Flags().BoolVar(&phase, "phase", false, "add the bin phase in radians")
	cmd.Flags().BoolVar(&unwrap, "unwrap", false, "add the unwrapped bin phase (implies --phase)")
	return cmd
}

func newFilterCmd(a *app) *cobra.Command {
	var (
		envelope bool
		view     string
	)
	cmd := &cobra.Command{
		Use:   "filter <trace.csv>",
		Short: "Frequency-domain band filter",
		Long: `Keeps the DFT bins between the side and middle cut-off ratios (and their
mirror images) and transforms back. --view spectrum lists the masked
magnitude spectrum instead; --envelope returns the envelope of the band
limited signal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, fs, err := a.loadTrace(cmd, args[0])
			if err != nil {
				return err
			}
			b := a.cfg.Band()
			opts := a.cfg.FFTOptions()
			if b.Empty(tr.Len()) {
				a.log.Warn("band keeps no bins, output is zero", logging.Fields{"band": b.String(), "samples": tr.Len()})
			}

			switch view {
			case viewSpectrum:
				s, err := band.FilterSpectrum(tr.Voltage, b, fs, opts...)
				if err != nil {
					return err
				}
				return a.writeColumns(cmd.OutOrStdout(), []string{"frequency", "magnitude"}, s.Frequency, s.Magnitude)
			case viewTime:
				var values []float64
				if envelope {
					values, err = band.FilterWithEnvelope(tr.Voltage, b, opts...)
				} else {
					values, err = band.Filter(tr.Voltage, b, opts...)
				}
				if err != nil {
					return err
				}
				t, err := fft.TimeAxis(len(values), fs)
				if err != nil {
					return err
				}
				return a.writeColumns(cmd.OutOrStdout(), []string{"time", "value"}, t, values)
			default:
				return fmt.Errorf("unknown view %q (want %s or %s)", view, viewTime, viewSpectrum)
			}
		},
	}
	cmd.Flags().BoolVar(&envelope, "envelope", false, "return the envelope of the filtered signal")
	cmd.Flags().StringVar(&view, "view", viewTime, "output view (time, spectrum)")
	cmd.Flags().Float64("middle", 0, "middle cut-off ratio (default from config)")
	cmd.Flags().Float64("side", 0, "side cut-off ratio (default from config)")
	configFlag(cmd, "middle", "filter.middle_cutoff_ratio")
	configFlag(cmd, "side", "filter.side_cutoff_ratio")
	return cmd
}

func newEnvelopeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "envelope <trace.csv>",
		Short: "Hilbert envelope of a trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, _, err := a.loadTrace(cmd, args[0])
			if err != nil {
				return err
			}
			env, err := hilbert.Envelope(tr.Voltage, a.cfg.FFTOptions()...)
			if err != nil {
				return err
			}
			return a.writeColumns(cmd.OutOrStdout(), []string{"time", "voltage", "envelope"}, tr.Time, tr.Voltage, env)
		},
	}
}

func newHilbertCmd(a *app) *cobra.Command {
	var quadrature bool
	cmd := &cobra.Command{
		Use:   "hilbert <trace.csv>",
		Short: "Hilbert transform of a trace",
		Long: `Computes the analytic signal and reports its magnitude (the envelope), or
its imaginary part with --quadrature.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, _, err := a.loadTrace(cmd, args[0])
			if err != nil {
				return err
			}
			out, err := hilbert.Transform(tr.Voltage, !quadrature, a.cfg.FFTOptions()...)
			if err != nil {
				return err
			}
			name := "envelope"
			if quadrature {
				name = "quadrature"
			}
			return a.writeColumns(cmd.OutOrStdout(), []string{"time", name}, tr.Time, out)
		},
	}
	cmd.Flags().BoolVar(&quadrature, "quadrature", false, "report the imaginary part instead of the envelope")
	return cmd
}
