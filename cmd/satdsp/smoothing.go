package main

import (
	"github.com/spf13/cobra"

	"github.com/satprobe/satdsp/dsp/filter/spatial"
)

func newSmoothCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smooth <trace.csv>",
		Short: "Gaussian smoothing",
		Long: `Convolves the trace with a normalised Gaussian kernel. Near the edges the
kernel is truncated and renormalised. With kernel size 0 the size is
2*ceil(3*sigma)+1.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, _, err := a.loadTrace(cmd, args[0])
			if err != nil {
				return err
			}
			out, err := spatial.GaussianSmooth(tr.Voltage, a.cfg.Smooth.Sigma, a.cfg.KernelSize())
			if err != nil {
				return err
			}
			return a.writeColumns(cmd.OutOrStdout(), []string{"time", "smoothed"}, tr.Time, out)
		},
	}
	cmd.Flags().Float64("sigma", 0, "standard deviation in samples (default from config)")
	cmd.Flags().Int("kernel", 0, "kernel size, 0 derives it from sigma (default from config)")
	configFlag(cmd, "sigma", "smooth.sigma")
	configFlag(cmd, "kernel", "smooth.kernel_size")
	return cmd
}

func newUnsharpCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unsharp <trace.csv>",
		Short: "Unsharp masking",
		Long: `Adds amount times the difference between the trace and its Gaussian blur,
where that difference exceeds the threshold in magnitude.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, _, err := a.loadTrace(cmd, args[0])
			if err != nil {
				return err
			}
			out, err := spatial.UnsharpMask(tr.Voltage, a.cfg.Unsharp.Amount, a.cfg.Smooth.Sigma, a.cfg.Unsharp.Threshold)
			if err != nil {
				return err
			}
			return a.writeColumns(cmd.OutOrStdout(), []string{"time", "sharpened"}, tr.Time, out)
		},
	}
	cmd.Flags().Float64("amount", 0, "sharpening gain (default from config)")
	cmd.Flags().Float64("threshold", 0, "minimum detail magnitude (default from config)")
	cmd.Flags().Float64("sigma", 0, "blur standard deviation in samples (default from config)")
	configFlag(cmd, "amount", "unsharp.amount")
	configFlag(cmd, "threshold", "unsharp.threshold")
	configFlag(cmd, "sigma", "smooth.sigma")
	return cmd
}

func newZeroOffsetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zero-offset <trace.csv>",
		Short: "Remove the DC offset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, _, err := a.loadTrace(cmd, args[0])
			if err != nil {
				return err
			}
			out, err := spatial.ZeroOffset(tr.Voltage, a.cfg.ZeroOffset.UseAbsolute)
			if err != nil {
				return err
			}
			return a.writeColumns(cmd.OutOrStdout(), []string{"time", "voltage"}, tr.Time, out)
		},
	}
	cmd.Flags().Bool("absolute", false, "rectify after removing the offset (default from config)")
	configFlag(cmd, "absolute", "zero_offset.use_absolute")
	return cmd
}

func newThresholdCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "threshold <trace.csv>",
		Short: "Zero samples at or below a level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, _, err := a.loadTrace(cmd, args[0])
			if err != nil {
				return err
			}
			out, err := spatial.ThresholdFilter(tr.Voltage, a.cfg.Threshold.Level, a.cfg.Threshold.UseAbsolute)
			if err != nil {
				return err
			}
			return a.writeColumns(cmd.OutOrStdout(), []string{"time", "voltage"}, tr.Time, out)
		},
	}
	cmd.Flags().Float64("level", 0, "threshold level (default from config)")
	cmd.Flags().Bool("absolute", true, "compare |x| against the level (default from config)")
	configFlag(cmd, "level", "threshold.level")
	configFlag(cmd, "absolute", "threshold.use_absolute")
	return cmd
}
