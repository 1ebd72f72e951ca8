// Command precompute runs the C1-C5 pipeline over a pro-play CSV
// export and writes a draft-metrics artifact: precompute <csvPath>
// <outputPath> [--patch <X>].
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/kihw/draftlens/internal/aggregate"
	"github.com/kihw/draftlens/internal/artifact"
	"github.com/kihw/draftlens/internal/metrics"
	"github.com/kihw/draftlens/internal/row"
)

const defaultPatch = "15.20"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	csvPath, outputPath, patch, err := parseArgs(args)
	if err != nil {
		return err
	}

	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("precompute: open %s: %w", csvPath, err)
	}
	defer f.Close()

	playerRows, teamRows, err := row.Parse(f, patch)
	if err != nil {
		return fmt.Errorf("precompute: %w", err)
	}

	agg := aggregate.New()
	for _, pr := range playerRows {
		agg.AddPlayerRow(pr)
	}
	for _, tr := range teamRows {
		agg.AddTeamRow(tr)
	}
	agg.Finalize()

	priors := metrics.DefaultPriors()
	weights := metrics.DefaultWeights()
	result := metrics.Compile(agg, priors, weights)

	a := artifact.Build(patch, time.Now().UTC().Format(time.RFC3339), len(playerRows), result, priors, weights)

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("precompute: create %s: %w", outputPath, err)
	}
	defer out.Close()

	if err := a.Encode(out); err != nil {
		return fmt.Errorf("precompute: encode artifact: %w", err)
	}

	fmt.Printf("precompute: wrote %s (patch %s, %d player rows, %d champion-role entries)\n",
		outputPath, patch, len(playerRows), len(a.ChampionRoleMetrics))
	return nil
}

func parseArgs(args []string) (csvPath, outputPath, patch string, err error) {
	patch = os.Getenv("DRAFT_METRICS_PATCH")
	if patch == "" {
		patch = defaultPatch
	}

	var positional []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--patch":
			if i+1 >= len(args) {
				return "", "", "", usageError()
			}
			patch = args[i+1]
			i++
		default:
			positional = append(positional, args[i])
		}
	}

	if len(positional) != 2 {
		return "", "", "", usageError()
	}
	return positional[0], positional[1], patch, nil
}

func usageError() error {
	return fmt.Errorf("usage: precompute <csvPath> <outputPath> [--patch <X>]")
}
