// Demo: migrating a pricing routine behind an experiment.
//
// The legacy implementation is kept as the control; a rewritten candidate
// runs on a sampled fraction of calls and every disagreement is resolved
// back to the legacy value. Run counts are reported from the Prometheus
// registry at the end.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/trialrun-io/trialrun/internal/logger"
	"github.com/trialrun-io/trialrun/internal/metrics"
	"github.com/trialrun-io/trialrun/pkg/experiment"
)

// legacyPrice is the trusted implementation.
func legacyPrice(units int) int {
	total := 0
	for i := 0; i < units; i++ {
		total += 100
		if i >= 10 {
			total -= 5 // bulk discount past ten units
		}
	}
	return total
}

// rewrittenPrice is the candidate. It carries a deliberate off-by-one in
// the discount threshold so the demo produces mismatches.
func rewrittenPrice(units int) int {
	total := units * 100
	if units > 9 {
		total -= (units - 9) * 5
	}
	return total
}

func main() {
	runs := 1000
	if len(os.Args) > 1 {
		if n, err := strconv.Atoi(os.Args[1]); err == nil {
			runs = n
		}
	}

	if _, err := logger.InitLogger(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer logger.SyncLogger()

	registry := prometheus.NewRegistry()
	metrics.InitMetrics(registry)

	mismatches := 0
	ctx := context.Background()
	for i := 0; i < runs; i++ {
		units := i % 25
		_, err := experiment.New[int]("pricing-rewrite").
			Control(func(ctx context.Context) (int, error) {
				return legacyPrice(units), nil
			}).
			Experimental(func(ctx context.Context) (int, error) {
				return rewrittenPrice(units), nil
			}).
			Rollout(0.2).
			OnMismatch(func(m experiment.Mismatch[int]) (int, error) {
				mismatches++
				return m.Control, nil
			}).
			Run(ctx)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}

	fmt.Printf("runs: %d, mismatches resolved to control: %d\n", runs, mismatches)

	families, err := registry.Gather()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := ""
			for _, lp := range m.GetLabel() {
				labels += fmt.Sprintf(" %s=%s", lp.GetName(), lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				fmt.Printf("%s%s %v\n", mf.GetName(), labels, m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				fmt.Printf("%s%s count=%d\n", mf.GetName(), labels, m.GetHistogram().GetSampleCount())
			}
		}
	}
}
