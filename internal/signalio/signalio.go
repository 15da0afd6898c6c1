// Package signalio reads and writes A-scan traces as CSV.
//
// The input format is the oscilloscope export used by the inspection rig: a
// header row followed by "time,voltage" rows, time in seconds. Extra columns
// are ignored and rows whose first two fields do not parse are skipped.
package signalio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/satprobe/satdsp/dsp/core"
)

// ErrNoData is returned when a CSV source holds no valid sample row.
var ErrNoData = errors.New("signalio: no valid data rows")

// Trace is one loaded A-scan.
type Trace struct {
	Name    string
	Time    []float64
	Voltage []float64
}

// Len returns the sample count.
func (t Trace) Len() int { return len(t.Voltage) }

// SampleRate derives the sampling rate from the median time step, which
// tolerates the occasional jitter or dropped row in scope exports.
func (t Trace) SampleRate() (float64, error) {
	if len(t.Time) < 2 {
		return 0, fmt.Errorf("%w: need at least 2 samples to derive a sample rate, have %d", core.ErrInvalidParameter, len(t.Time))
	}
	steps := make([]float64, len(t.Time)-1)
	for i := range steps {
		steps[i] = t.Time[i+1] - t.Time[i]
	}
	sort.Float64s(steps)
	dt := stat.Quantile(0.5, stat.Empirical, steps, nil)
	if !(dt > 0) || !core.IsFinite(dt) {
		return 0, fmt.Errorf("%w: time column is not increasing (median step %v)", core.ErrInvalidParameter, dt)
	}
	return 1 / dt, nil
}

// ReadCSVFile loads a trace from path. The trace is named after the file.
func ReadCSVFile(path string) (Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return Trace{}, err
	}
	defer f.Close()

	tr, err := ReadCSV(f)
	if err != nil {
		return Trace{}, fmt.Errorf("%s: %w", path, err)
	}
	tr.Name = filepath.Base(path)
	return tr, nil
}

// ReadCSV parses a header row followed by time,voltage rows.
func ReadCSV(r io.Reader) (Trace, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var tr Trace
	header := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				continue
			}
			return Trace{}, err
		}
		if header {
			header = false
			continue
		}
		if len(rec) < 2 {
			continue
		}
		t, errT := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		v, errV := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if errT != nil || errV != nil {
			continue
		}
		tr.Time = append(tr.Time, t)
		tr.Voltage = append(tr.Voltage, v)
	}

	if tr.Len() == 0 {
		return Trace{}, ErrNoData
	}
	return tr, nil
}

// WriteCSV writes a header row and one row per sample index. All columns
// must have the same length.
func WriteCSV(w io.Writer, header []string, columns ...[]float64) error {
	if len(header) != len(columns) {
		return fmt.Errorf("signalio: %d header fields for %d columns", len(header), len(columns))
	}
	n := 0
	if len(columns) > 0 {
		n = len(columns[0])
	}
	for k, c := range columns {
		if len(c) != n {
			return fmt.Errorf("signalio: column %q has %d rows, want %d", header[k], len(c), n)
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	row := make([]string, len(columns))
	for i := 0; i < n; i++ {
		for k, c := range columns {
			row[k] = strconv.FormatFloat(c[i], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
