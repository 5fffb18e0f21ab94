// Package analysis provides statistical summaries for simulation results.
package analysis

import (
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Summary contains descriptive statistics for a sample.
type Summary struct {
	Mean   float64
	Median float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize computes descriptive statistics over values.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	return Summary{
		Mean:   stat.Mean(values, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		StdDev: stat.StdDev(values, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
}

// Comparison contains a pairwise comparison of two policies' hit rates.
type Comparison struct {
	Policy1 string
	Policy2 string
	Stats1  Summary
	Stats2  Summary

	// MeanDiff is Policy1's mean hit rate minus Policy2's.
	MeanDiff float64

	// RelImprovementPct is MeanDiff relative to Policy2's mean, in percent.
	RelImprovementPct float64

	// Winner names the policy with the higher mean hit rate; empty on a tie.
	Winner string
}

// Compare compares two per-window hit-rate samples.
func Compare(name1 string, rates1 []float64, name2 string, rates2 []float64) *Comparison {
	c := &Comparison{
		Policy1: name1,
		Policy2: name2,
		Stats1:  Summarize(rates1),
		Stats2:  Summarize(rates2),
	}

	c.MeanDiff = c.Stats1.Mean - c.Stats2.Mean
	if c.Stats2.Mean != 0 {
		c.RelImprovementPct = c.MeanDiff / c.Stats2.Mean * 100
	}

	switch {
	case c.MeanDiff > 0:
		c.Winner = name1
	case c.MeanDiff < 0:
		c.Winner = name2
	}

	return c
}
