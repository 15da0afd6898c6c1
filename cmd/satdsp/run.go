package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/satprobe/satdsp/internal/config"
	"github.com/satprobe/satdsp/internal/logging"
	"github.com/satprobe/satdsp/internal/pipeline"
	"github.com/satprobe/satdsp/internal/signalio"
	"github.com/satprobe/satdsp/internal/store"
)

// channelOutput is the JSON/YAML form of one processed trace.
type channelOutput struct {
	Trace  string    `json:"trace" yaml:"trace"`
	ID     int       `json:"id" yaml:"id"`
	Output []float64 `json:"output" yaml:"output"`
}

func newRunCmd(a *app) *cobra.Command {
	var (
		jobs   int
		outDir string
		list   bool
	)
	cmd := &cobra.Command{
		Use:   "run <algorithm> <trace.csv>...",
		Short: "Run a named algorithm over several traces concurrently",
		Long: `Loads every trace, runs the named algorithm on each of them concurrently and
writes the results. With --out-dir each result is written to
<out-dir>/<trace>.<algorithm>.csv; otherwise the results are written as one
table with a column per trace, which requires equal trace lengths.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if list {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.MinimumNArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := pipeline.NewDefaultRegistry(a.cfg, pipeline.WithLogger(a.log))
			if list {
				for _, name := range reg.Names() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			name, paths := args[0], args[1:]
			traces := make([]signalio.Trace, len(paths))
			for k, p := range paths {
				tr, err := signalio.ReadCSVFile(p)
				if err != nil {
					return err
				}
				traces[k] = tr
			}

			st := store.New(store.WithLogger(a.log))
			events, cancel := st.Subscribe(len(traces) * 3)
			done := make(chan struct{})
			go func() {
				defer close(done)
				for ev := range events {
					a.log.Debug("store event", logging.Fields{
						"event":     ev.Kind.String(),
						"trace":     ev.ID,
						"algorithm": ev.Algorithm,
					})
				}
			}()

			ctx := logging.ContextWithFields(cmd.Context(), logging.Fields{"command": "run"})
			results, err := reg.RunChannels(ctx, st, name, traces, jobs)
			cancel()
			<-done
			if err != nil {
				return err
			}

			if outDir != "" {
				return a.writeChannelFiles(st, outDir, name, results)
			}
			return a.writeChannels(cmd, name, results)
		},
	}
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "maximum traces processed at once, 0 for no limit")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "write one CSV per trace into this directory")
	cmd.Flags().BoolVar(&list, "list", false, "list the available algorithms")
	return cmd
}

func (a *app) writeChannels(cmd *cobra.Command, name string, results []pipeline.ChannelResult) error {
	out := make([]channelOutput, len(results))
	header := make([]string, len(results))
	columns := make([][]float64, len(results))
	for k, r := range results {
		out[k] = channelOutput{Trace: r.Name, ID: r.ID, Output: r.Output}
		header[k] = r.Name
		columns[k] = r.Output
	}
	if a.cfg.OutputFormat != config.FormatCSV {
		return a.writeValue(cmd.OutOrStdout(), out)
	}
	for k := range columns {
		if len(columns[k]) != len(columns[0]) {
			return fmt.Errorf("%s: traces differ in length (%d and %d samples); use --out-dir", name, len(columns[0]), len(columns[k]))
		}
	}
	return signalio.WriteCSV(cmd.OutOrStdout(), header, columns...)
}

// writeChannelFiles writes each stored trace with its result next to it.
func (a *app) writeChannelFiles(st *store.Store, dir, name string, results []pipeline.ChannelResult) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, r := range results {
		e, ok := st.Get(r.ID)
		if !ok {
			return fmt.Errorf("trace %s missing from store", r.Name)
		}
		base := strings.TrimSuffix(r.Name, filepath.Ext(r.Name))
		path := filepath.Join(dir, base+"."+name+".csv")
		if err := writeFile(path, func(f *os.File) error {
			return signalio.WriteCSV(f, []string{"time", "voltage", name}, e.Trace.Time, e.Trace.Voltage, e.Results[name])
		}); err != nil {
			return err
		}
		a.log.Info("wrote result", logging.Fields{"path": path})
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := a.cfg.YAML()
			if err != nil {
				return fmt.Errorf("failed to render configuration: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
