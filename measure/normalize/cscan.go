package normalize

import (
	"github.com/satprobe/satdsp/measure/gate"
)

// CScan scores each gate by the position of its peak. The gates are shifted
// by the offset of the first peak of signal from originFirstMaxIndex. For a
// shifted gate [s, e] with peak index p the score is 1-(p-s)/(e-s); a
// zero-width gate scores 1 when p == s and 0 otherwise. Gates without a peak
// score 0.
func CScan(signal []float64, gates []gate.Gate, originFirstMaxIndex int) ([]float64, error) {
	return CScanWithRatio(signal, gates, originFirstMaxIndex, gate.DefaultFirstPeakRatio)
}

// CScanWithRatio is CScan with an explicit first-peak search ratio.
func CScanWithRatio(signal []float64, gates []gate.Gate, originFirstMaxIndex int, ratio float64) ([]float64, error) {
	offset, results, err := scan(signal, gates, originFirstMaxIndex, ratio)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(gates))
	for k, g := range gates {
		r := results[k]
		if !r.Found() {
			continue
		}
		s := g.Shift(offset)
		if s.End != s.Start {
			out[k] = 1 - float64(r.Index-s.Start)/float64(s.End-s.Start)
		} else if r.Index == s.Start {
			out[k] = 1
		}
	}
	return out, nil
}

// CScanAmplitude returns the peak value of each shifted gate, 0 for gates
// without a peak.
func CScanAmplitude(signal []float64, gates []gate.Gate, originFirstMaxIndex int) ([]float64, error) {
	return CScanAmplitudeWithRatio(signal, gates, originFirstMaxIndex, gate.DefaultFirstPeakRatio)
}

// CScanAmplitudeWithRatio is CScanAmplitude with an explicit first-peak
// search ratio.
func CScanAmplitudeWithRatio(signal []float64, gates []gate.Gate, originFirstMaxIndex int, ratio float64) ([]float64, error) {
	_, results, err := scan(signal, gates, originFirstMaxIndex, ratio)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(gates))
	for k, r := range results {
		if r.Found() {
			out[k] = r.Value
		}
	}
	return out, nil
}

func scan(signal []float64, gates []gate.Gate, originFirstMaxIndex int, ratio float64) (int, []gate.Result, error) {
	offset, _, err := gate.Offset(signal, originFirstMaxIndex, ratio)
	if err != nil {
		return 0, nil, err
	}
	results, err := gate.Scan(signal, gates, offset)
	if err != nil {
		return 0, nil, err
	}
	return offset, results, nil
}
