package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/satprobe/satdsp/dsp/core"
	"github.com/satprobe/satdsp/dsp/fft"
	"github.com/satprobe/satdsp/dsp/signal"
)

func newSynthCmd(a *app) *cobra.Command {
	var (
		samples int
		center  float64
		cycles  float64
		echoes  []string
		tones   []string
		noise   float64
		peak    float64
		seed    int64
	)
	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Synthesize a pulse-echo trace",
		Long: `Writes a time,voltage trace made of Gaussian tone bursts, one per --echo
(delay_seconds:amplitude), plus optional continuous-wave pickup (--tone
frequency_hz:amplitude) and white noise. The sample rate is --sample-rate or
the configured rate.`,
		Example: `  satdsp synth --echo 2e-6:1 --echo 5.2e-6:0.4 > trace.csv`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			train := make([]signal.Echo, 0, len(echoes))
			for _, s := range echoes {
				e, err := parseEcho(s)
				if err != nil {
					return err
				}
				train = append(train, e)
			}

			fs := a.cfg.SampleRate
			g := signal.NewGeneratorWithOptions(
				[]core.ProcessorOption{core.WithSampleRate(fs)},
				signal.WithSeed(seed),
			)
			x, err := g.EchoTrain(train, center, cycles, samples)
			if err != nil {
				return err
			}
			for _, spec := range tones {
				freq, amp, err := parsePair("tone", spec)
				if err != nil {
					return err
				}
				tone, err := g.Sine(freq, amp, samples)
				if err != nil {
					return err
				}
				for i := range x {
					x[i] += tone[i]
				}
			}
			if noise > 0 {
				n, err := g.WhiteNoise(noise, samples)
				if err != nil {
					return err
				}
				for i := range x {
					x[i] += n[i]
				}
			}
			if peak > 0 {
				if x, err = signal.Normalize(x, peak); err != nil {
					return err
				}
			}
			t, err := fft.TimeAxis(samples, fs)
			if err != nil {
				return err
			}
			return a.writeColumns(cmd.OutOrStdout(), []string{"time", "voltage"}, t, x)
		},
	}
	f := cmd.Flags()
	f.IntVar(&samples, "samples", 2048, "trace length")
	f.Float64Var(&center, "center", 5e6, "transducer center frequency in Hz")
	f.Float64Var(&cycles, "cycles", 3, "burst length in carrier periods")
	f.StringArrayVar(&echoes, "echo", []string{"2e-6:1", "5.2e-6:0.5", "8.4e-6:0.25"}, "echo as delay_seconds:amplitude, repeatable")
	f.StringArrayVar(&tones, "tone", nil, "continuous-wave interference as frequency_hz:amplitude, repeatable")
	f.Float64Var(&noise, "noise", 0, "white noise amplitude")
	f.Float64Var(&peak, "peak", 0, "rescale so the largest |sample| equals this value; 0 keeps echo amplitudes")
	f.Int64Var(&seed, "seed", 1, "noise seed")
	return cmd
}

func parseEcho(s string) (signal.Echo, error) {
	delay, amp, err := parsePair("echo", s)
	if err != nil {
		return signal.Echo{}, err
	}
	return signal.Echo{Delay: delay, Amplitude: amp}, nil
}

// parsePair parses "a:b" into two floats.
func parsePair(what, s string) (float64, float64, error) {
	l, r, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s %q is not of the form a:b", core.ErrInvalidParameter, what, s)
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(l), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %s %q: %v", core.ErrInvalidParameter, what, s, err)
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(r), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %s %q: %v", core.ErrInvalidParameter, what, s, err)
	}
	return a, b, nil
}
