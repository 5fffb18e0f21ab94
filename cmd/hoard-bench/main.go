// Package main provides the hoard-bench CLI tool for comparing eviction
// policies on synthetic workloads.
package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/discochess/hoard"
	"github.com/discochess/hoard/benchmark/analysis"
	"github.com/discochess/hoard/benchmark/reporting"
	"github.com/discochess/hoard/benchmark/simulation"
)

var (
	capacity     int64
	keys         int
	lookups      int
	window       int
	policyNames  []string
	distribution string
	zipfS        float64
	seed         uint64
	outputFormat string
	outputFile   string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "hoard-bench",
	Short: "Benchmark eviction policies for hoard",
	Long: `hoard-bench compares eviction policies on synthetic key-access traces.

It replays the same trace against one cache per policy and measures hit
rates, overall and per sampling window, to show which policy fits a given
access pattern.

Examples:
  # Compare all policies on a zipf-skewed trace
  hoard-bench run

  # Uniform accesses over a large key space
  hoard-bench run --distribution uniform --keys 100000

  # Output as markdown report
  hoard-bench run --format markdown --output report.md`,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the policy simulation",
	RunE:  runSimulation,
}

func init() {
	runCmd.Flags().Int64Var(&capacity, "capacity", 1000, "cache capacity (entry weight 1)")
	runCmd.Flags().IntVar(&keys, "keys", 10000, "size of the key space")
	runCmd.Flags().IntVar(&lookups, "lookups", 100000, "number of lookups to replay")
	runCmd.Flags().IntVar(&window, "window", 1000, "lookups per hit-rate sample")
	runCmd.Flags().StringSliceVarP(&policyNames, "policies", "p", []string{"lru", "lfu", "fifo"}, "policies to compare")
	runCmd.Flags().StringVar(&distribution, "distribution", "zipf", "access distribution: zipf, uniform")
	runCmd.Flags().Float64Var(&zipfS, "zipf-s", 1.2, "zipf skew parameter (> 1)")
	runCmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")
	runCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format: text, markdown")
	runCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	policies := make([]hoard.PolicyKind, 0, len(policyNames))
	for _, name := range policyNames {
		switch kind := hoard.PolicyKind(name); kind {
		case hoard.LRU, hoard.LFU, hoard.FIFO:
			policies = append(policies, kind)
		default:
			return fmt.Errorf("unknown policy: %s", name)
		}
	}

	r := rand.New(rand.NewPCG(seed, seed))
	var trace simulation.Trace
	switch distribution {
	case "zipf":
		trace = simulation.ZipfTrace(r, keys, lookups, zipfS)
	case "uniform":
		trace = simulation.UniformTrace(r, keys, lookups)
	default:
		return fmt.Errorf("unknown distribution: %s", distribution)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Replaying %d lookups over %d keys against %d policies...\n",
			lookups, keys, len(policies))
	}

	sim := simulation.NewSimulator(capacity, window, policies...)
	results, err := sim.Run(trace)
	if err != nil {
		return fmt.Errorf("running simulation: %w", err)
	}

	out := io.Writer(os.Stdout)
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch outputFormat {
	case "markdown":
		writeMarkdown(out, results)
	case "text":
		writeText(out, results)
	default:
		return fmt.Errorf("unknown format: %s", outputFormat)
	}

	return nil
}

func writeMarkdown(w io.Writer, results map[string]*simulation.Result) {
	report := reporting.NewMarkdownReport(w)
	report.WriteHeader("Eviction Policy Benchmark")
	report.WriteMethodology(capacity, keys, lookups, window, distribution)
	report.WriteSummaryTable(results)

	// Pairwise comparisons in a stable order.
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	slices.Sort(names)
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			report.WriteComparison(analysis.Compare(
				names[i], results[names[i]].WindowHitRates,
				names[j], results[names[j]].WindowHitRates,
			))
		}
	}
	report.WriteFooter()
}

func writeText(w io.Writer, results map[string]*simulation.Result) {
	for name, res := range results {
		summary := analysis.Summarize(res.WindowHitRates)
		fmt.Fprintf(w, "%-6s hit rate %.1f%% (window mean %.1f%%, stddev %.2f), %d evictions\n",
			name, res.HitRate(), summary.Mean, summary.StdDev, res.Evictions)
	}
}
