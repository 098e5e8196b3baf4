package core

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// NaNMarker is how a statistic with no defined value is rendered.
const NaNMarker = "nan"

// statPrecision is the number of digits after the decimal point.
const statPrecision = 5

// StatNames lists the summary statistics in report order.
var StatNames = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// Summary is the describe-style statistics block of one column. Every value
// is fixed-point text with five decimals, or NaNMarker.
type Summary struct {
	Count string `json:"count" yaml:"count"`
	Mean  string `json:"mean" yaml:"mean"`
	Std   string `json:"std" yaml:"std"`
	Min   string `json:"min" yaml:"min"`
	P25   string `json:"25%" yaml:"25%"`
	P50   string `json:"50%" yaml:"50%"`
	P75   string `json:"75%" yaml:"75%"`
	Max   string `json:"max" yaml:"max"`
}

// Values returns the statistics in StatNames order.
func (s Summary) Values() []string {
	return []string{s.Count, s.Mean, s.Std, s.Min, s.P25, s.P50, s.P75, s.Max}
}

// NumericValues returns the cells that coerce to a number, in row order.
// Missing and non-numeric cells are skipped.
func NumericValues(cells []string) []float64 {
	vals := make([]float64, 0, len(cells))
	for _, cell := range cells {
		s := strings.TrimSpace(cell)
		if missingTokens[s] || !numericRegex.MatchString(s) {
			continue
		}
		// Out-of-range literals come back as ±Inf with ErrRange; keep them.
		f, _ := strconv.ParseFloat(s, 64)
		vals = append(vals, f)
	}
	return vals
}

// Describe computes count, mean, sample standard deviation, min, quartiles
// and max of values. Percentiles interpolate linearly between the closest
// ranks of the sorted values.
func Describe(values []float64) Summary {
	n := len(values)
	nan := math.NaN()
	if n == 0 {
		return Summary{
			Count: formatStat(0),
			Mean:  formatStat(nan),
			Std:   formatStat(nan),
			Min:   formatStat(nan),
			P25:   formatStat(nan),
			P50:   formatStat(nan),
			P75:   formatStat(nan),
			Max:   formatStat(nan),
		}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	std := nan
	if n > 1 {
		var ss float64
		for _, v := range sorted {
			d := v - mean
			ss += d * d
		}
		std = math.Sqrt(ss / float64(n-1))
	}

	return Summary{
		Count: formatStat(float64(n)),
		Mean:  formatStat(mean),
		Std:   formatStat(std),
		Min:   formatStat(sorted[0]),
		P25:   formatStat(quantile(sorted, 0.25)),
		P50:   formatStat(quantile(sorted, 0.50)),
		P75:   formatStat(quantile(sorted, 0.75)),
		Max:   formatStat(sorted[n-1]),
	}
}

// quantile returns the q-th quantile of sorted values using linear
// interpolation at position q*(n-1).
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*w
}

func formatStat(v float64) string {
	switch {
	case math.IsNaN(v):
		return NaNMarker
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', statPrecision, 64)
}
