package main

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/satprobe/satdsp/dsp/core"
	"github.com/satprobe/satdsp/internal/config"
	"github.com/satprobe/satdsp/internal/signalio"
)

// writeColumns writes equally long sample columns. CSV output has one row
// per sample; JSON and YAML output a list of objects keyed by header, with
// non-finite values as null.
func (a *app) writeColumns(w io.Writer, header []string, columns ...[]float64) error {
	if a.cfg.OutputFormat == config.FormatCSV {
		return signalio.WriteCSV(w, header, columns...)
	}

	n := 0
	if len(columns) > 0 {
		n = len(columns[0])
	}
	rows := make([]map[string]any, n)
	for i := range rows {
		row := make(map[string]any, len(columns))
		for k, c := range columns {
			if core.IsFinite(c[i]) {
				row[header[k]] = c[i]
			} else {
				row[header[k]] = nil
			}
		}
		rows[i] = row
	}
	return a.writeValue(w, rows)
}

// writeRecords writes a report. CSV output uses header and rows; JSON and
// YAML encode v.
func (a *app) writeRecords(w io.Writer, header []string, rows [][]string, v any) error {
	if a.cfg.OutputFormat != config.FormatCSV {
		return a.writeValue(w, v)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

func (a *app) writeValue(w io.Writer, v any) error {
	if a.cfg.OutputFormat == config.FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
