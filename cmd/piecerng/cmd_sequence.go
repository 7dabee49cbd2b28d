package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opd-ai/go-piecerng"
)

func runSequence(cmd *cobra.Command, args []string) error {
	seed, err := piecerng.ParseValidSeed(args[0])
	if err != nil {
		return err
	}
	t, err := loadTable()
	if err != nil {
		return err
	}

	seq := piecerng.GenerateSequence(t, seed, config.Length)
	writeSequence(cmd.OutOrStdout(), seed, seq, showCounts)
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	r, err := parseRange(fromSeed, toSeed, keepAll)
	if err != nil {
		return err
	}
	t, err := loadTable()
	if err != nil {
		return err
	}

	logger.Info("scanning seeds", "from", r.From.String(), "to", r.To.String(), "length", config.Length)
	x, err := piecerng.ScanExtremes(cmd.Context(), t, config.Length, r, config.Workers)
	if err != nil {
		return err
	}
	writeExtremes(cmd.OutOrStdout(), x)
	return nil
}

// loadTable loads or builds the repeat table named by the configuration.
func loadTable() (*piecerng.Table, error) {
	return piecerng.LoadOrBuildTable(config.TablePath, logger)
}

// parseRange builds a scan range. Unless all is set, invalid seeds and seeds
// that behave like a lower seed are skipped.
func parseRange(from, to string, all bool) (piecerng.SeedRange, error) {
	f, err := piecerng.ParseSeed(from)
	if err != nil {
		return piecerng.SeedRange{}, fmt.Errorf("--from: %w", err)
	}
	l, err := piecerng.ParseSeed(to)
	if err != nil {
		return piecerng.SeedRange{}, fmt.Errorf("--to: %w", err)
	}
	if f > l {
		return piecerng.SeedRange{}, fmt.Errorf("empty range: %s > %s", f, l)
	}
	return piecerng.SeedRange{From: f, To: l, SkipInvalid: !all, SkipRedundant: !all}, nil
}
