package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/opd-ai/go-piecerng"
)

// errTableMismatch is returned by table verify when a file is internally
// consistent but differs from a fresh build.
var errTableMismatch = errors.New("table differs from a fresh build")

func runTableBuild(cmd *cobra.Command, args []string) error {
	start := time.Now()
	t := piecerng.BuildTable()
	if err := piecerng.WriteTableFile(args[0], t); err != nil {
		return err
	}
	fp := t.Fingerprint()
	logger.Info("repeat table written", "path", args[0], "elapsed", time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", hex.EncodeToString(fp[:]), args[0])
	return nil
}

func runTableVerify(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	got, err := piecerng.ReadTable(f)
	if err != nil {
		return err
	}
	want := piecerng.BuildTable().Fingerprint()
	fp := got.Fingerprint()
	if fp != want {
		return fmt.Errorf("%s: %w", args[0], errTableMismatch)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s: OK\n", hex.EncodeToString(fp[:]), args[0])
	return nil
}
