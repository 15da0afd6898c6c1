package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/satprobe/satdsp/dsp/core"
	"github.com/satprobe/satdsp/internal/logging"
	"github.com/satprobe/satdsp/measure/gate"
	"github.com/satprobe/satdsp/measure/normalize"
)

var errNoGates = errors.New("no gates configured: set gate.gates or pass --gate")

// addGateFlags registers the flags that override the gate configuration.
func addGateFlags(cmd *cobra.Command) {
	cmd.Flags().StringArray("gate", nil, "gate as start:end sample indices, repeatable (default from config)")
	cmd.Flags().Int("origin", 0, "first-peak index of the reference trace (default from config)")
	cmd.Flags().Float64("first-peak-ratio", 0, "leading fraction searched for the first peak (default from config)")
	configFlag(cmd, "origin", "gate.origin_first_max_index")
	configFlag(cmd, "first-peak-ratio", "gate.first_peak_ratio")
}

// gates returns the --gate values when given, else the configured gates.
func (a *app) gates(cmd *cobra.Command) ([]gate.Gate, error) {
	if !cmd.Flags().Changed("gate") {
		if len(a.cfg.Gate.Gates) == 0 {
			return nil, errNoGates
		}
		return a.cfg.Gate.Gates, nil
	}
	specs, err := cmd.Flags().GetStringArray("gate")
	if err != nil {
		return nil, err
	}
	out := make([]gate.Gate, 0, len(specs))
	for _, s := range specs {
		g, err := parseGate(s)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

func parseGate(s string) (gate.Gate, error) {
	lo, hi, ok := strings.Cut(s, ":")
	if !ok {
		return gate.Gate{}, fmt.Errorf("%w: %q is not start:end", core.ErrInvalidGate, s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return gate.Gate{}, fmt.Errorf("%w: %q: %v", core.ErrInvalidGate, s, err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return gate.Gate{}, fmt.Errorf("%w: %q: %v", core.ErrInvalidGate, s, err)
	}
	g := gate.Gate{Start: start, End: end}
	if !g.Valid() {
		return gate.Gate{}, fmt.Errorf("%w: %v", core.ErrInvalidGate, g)
	}
	return g, nil
}

// gateReport is the result of scanning every gate of one trace.
type gateReport struct {
	Trace     string       `json:"trace" yaml:"trace"`
	Offset    int          `json:"offset" yaml:"offset"`
	FirstPeak gate.Result  `json:"first_peak" yaml:"first_peak"`
	Gates     []gateResult `json:"gates" yaml:"gates"`
}

type gateResult struct {
	Gate     gate.Gate     `json:"gate" yaml:"gate"`
	Shifted  gate.Gate     `json:"shifted" yaml:"shifted"`
	Peak     gate.Result   `json:"peak" yaml:"peak"`
	Interval gate.Interval `json:"interval" yaml:"interval"`
}

func (a *app) scanGates(cmd *cobra.Command, path string) (gateReport, error) {
	tr, fs, err := a.loadTrace(cmd, path)
	if err != nil {
		return gateReport{}, err
	}
	gates, err := a.gates(cmd)
	if err != nil {
		return gateReport{}, err
	}

	gc := a.cfg.Gate
	offset, first, err := gate.Offset(tr.Voltage, gc.OriginFirstMaxIndex, gc.FirstPeakRatio)
	if err != nil {
		return gateReport{}, err
	}
	if !first.Found() {
		a.log.Warn("no first peak in search range", logging.Fields{"trace": tr.Name, "ratio": gc.FirstPeakRatio})
	}
	results, err := gate.Scan(tr.Voltage, gates, offset)
	if err != nil {
		return gateReport{}, err
	}
	intervals, err := gate.Intervals(results, fs, gc.SoundVelocities)
	if err != nil {
		return gateReport{}, err
	}

	rep := gateReport{Trace: tr.Name, Offset: offset, FirstPeak: first, Gates: make([]gateResult, len(gates))}
	for k, g := range gates {
		rep.Gates[k] = gateResult{Gate: g, Shifted: g.Shift(offset), Peak: results[k], Interval: intervals[k]}
	}
	return rep, nil
}

func newGatesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gates <trace.csv>",
		Short: "Peak of each gate, tracking the first echo",
		Long: `Finds the first peak in the leading part of the trace, shifts every gate by
its offset from the configured origin, and reports the largest sample in
each shifted gate. Gates outside the trace report index -1.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := a.scanGates(cmd, args[0])
			if err != nil {
				return err
			}
			rows := make([][]string, len(rep.Gates))
			for k, g := range rep.Gates {
				rows[k] = []string{
					strconv.Itoa(k),
					strconv.Itoa(g.Shifted.Start),
					strconv.Itoa(g.Shifted.End),
					strconv.Itoa(g.Peak.Index),
					formatFloat(g.Peak.Value, g.Peak.Found()),
				}
			}
			return a.writeRecords(cmd.OutOrStdout(), []string{"gate", "start", "end", "index", "value"}, rows, rep)
		},
	}
	addGateFlags(cmd)
	return cmd
}

func newThicknessCmd(a *app) *cobra.Command {
	var table bool
	cmd := &cobra.Command{
		Use:   "thickness <trace.csv>",
		Short: "Layer thickness between consecutive gate peaks",
		Long: `Converts the sample distance between the peaks of consecutive gates into a
thickness in micrometres, using the sound velocity configured for each gate
(gate.sound_velocities). --table prints an aligned table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := a.scanGates(cmd, args[0])
			if err != nil {
				return err
			}
			if table {
				return writeThicknessTable(cmd.OutOrStdout(), rep)
			}
			intervals := make([]gate.Interval, len(rep.Gates))
			rows := make([][]string, len(rep.Gates))
			for k, g := range rep.Gates {
				iv := g.Interval
				intervals[k] = iv
				rows[k] = []string{
					strconv.Itoa(k),
					strconv.Itoa(iv.IndexDifference),
					formatFloat(iv.Distance, iv.Valid),
					strconv.FormatFloat(iv.Velocity, 'g', -1, 64),
					strconv.FormatBool(iv.Valid),
				}
			}
			return a.writeRecords(cmd.OutOrStdout(),
				[]string{"gate", "index_difference", "distance_um", "velocity", "valid"}, rows, intervals)
		},
	}
	addGateFlags(cmd)
	cmd.Flags().BoolVar(&table, "table", false, "print an aligned table")
	return cmd
}

func writeThicknessTable(w io.Writer, rep gateReport) error {
	title := cases.Title(language.English)
	p := message.NewPrinter(language.English)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	headers := []string{"gate", "window", "peak index", "samples", "thickness (µm)", "velocity (m/s)"}
	for _, h := range headers {
		fmt.Fprintf(tw, "%s\t", title.String(h))
	}
	fmt.Fprintln(tw)

	for k, g := range rep.Gates {
		iv := g.Interval
		thickness := "-"
		if iv.Valid && k > 0 {
			thickness = p.Sprintf("%.2f", iv.Distance)
		}
		p.Fprintf(tw, "%d\t%v\t%d\t%d\t%s\t%.0f\t\n",
			k, g.Shifted, g.Peak.Index, iv.IndexDifference, thickness, iv.Velocity)
	}
	return tw.Flush()
}

func formatFloat(v float64, ok bool) string {
	if !ok {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func newBScanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bscan <trace.csv>",
		Short: "Normalise a trace inside a gate for B-scan imaging",
		Long: `Divides |x| by a fraction (--ratio) of the largest |x| in the gate, clips
to 1, and zeroes samples outside the gate. The first configured gate is
used; without gates the whole trace is the gate.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, _, err := a.loadTrace(cmd, args[0])
			if err != nil {
				return err
			}
			g := gate.Gate{Start: 0, End: tr.Len() - 1}
			gates, err := a.gates(cmd)
			switch {
			case err == nil:
				g = gates[0]
			case !errors.Is(err, errNoGates):
				return err
			}
			if err := normalize.IsDegenerate(tr.Voltage, g); err != nil {
				a.log.Warn("b-scan gate resolved to zeros", logging.Fields{"trace": tr.Name, "reason": err.Error()})
			}
			out, err := normalize.BScan(tr.Voltage, g, a.cfg.BScan.ThresholdRatio)
			if err != nil {
				return err
			}
			return a.writeColumns(cmd.OutOrStdout(), []string{"time", "bscan"}, tr.Time, out)
		},
	}
	addGateFlags(cmd)
	cmd.Flags().Float64("ratio", 0, "fraction of the gate maximum mapped to 1 (default from config)")
	configFlag(cmd, "ratio", "bscan.threshold_ratio")
	return cmd
}

func newCScanCmd(a *app) *cobra.Command {
	var amplitude bool
	cmd := &cobra.Command{
		Use:   "cscan <trace.csv>",
		Short: "Score each gate for C-scan imaging",
		Long: `Scores each shifted gate by the position of its peak, 1 at the gate start
falling to 0 at its end. --amplitude reports the peak value instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, _, err := a.loadTrace(cmd, args[0])
			if err != nil {
				return err
			}
			gates, err := a.gates(cmd)
			if err != nil {
				return err
			}
			gc := a.cfg.Gate
			var scores []float64
			if amplitude {
				scores, err = normalize.CScanAmplitudeWithRatio(tr.Voltage, gates, gc.OriginFirstMaxIndex, gc.FirstPeakRatio)
			} else {
				scores, err = normalize.CScanWithRatio(tr.Voltage, gates, gc.OriginFirstMaxIndex, gc.FirstPeakRatio)
			}
			if err != nil {
				return err
			}
			index := make([]float64, len(scores))
			for k := range index {
				index[k] = float64(k)
			}
			return a.writeColumns(cmd.OutOrStdout(), []string{"gate", "score"}, index, scores)
		},
	}
	addGateFlags(cmd)
	cmd.Flags().BoolVar(&amplitude, "amplitude", false, "report peak amplitude instead of position")
	return cmd
}
