package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/opd-ai/go-piecerng/internal/logging"
)

// --- Global Command Variables ---
var (
	configPath  string
	logLevel    string
	logJSON     bool
	length      int
	workers     int
	tablePath   string
	storePath   string
	metricsAddr string
	fromSeed    string
	toSeed      string
	showCounts  bool
	verifyRun   bool
	keepAll     bool

	config Config
	logger *slog.Logger

	rootCmd = &cobra.Command{
		Use:   "piecerng",
		Short: "Reproduce and analyze a falling-block game's piece randomizer",
		Long: `piecerng regenerates the exact piece sequence for a 24-bit seed and
explores the seed space to classify seeds by the cycle they end in.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	// --- Sequences ---
	sequenceCmd = &cobra.Command{
		Use:   "sequence <seed>",
		Short: "Print the piece sequence for a seed (6 hex digits)",
		Args:  cobra.ExactArgs(1),
		RunE:  runSequence, // Defined in cmd_sequence.go
	}

	// --- Statistics ---
	statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Find the seeds with the most and fewest I pieces and the most O pieces",
		RunE:  runStats, // Defined in cmd_sequence.go
	}

	// --- Exploration ---
	exploreCmd = &cobra.Command{
		Use:   "explore",
		Short: "Classify seeds by the loop their randomizer state falls into",
		RunE:  runExplore, // Defined in cmd_explore.go
	}
	loopsCmd = &cobra.Command{
		Use:   "loops",
		Short: "Report a stored exploration result",
		RunE:  runLoops, // Defined in cmd_explore.go
	}
	lookupCmd = &cobra.Command{
		Use:   "lookup <seed>",
		Short: "Look up one seed in a stored exploration result",
		Args:  cobra.ExactArgs(1),
		RunE:  runLookup, // Defined in cmd_explore.go
	}

	// --- Table ---
	tableCmd = &cobra.Command{
		Use:   "table",
		Short: "Manage the precomputed repeat table",
	}
	tableBuildCmd = &cobra.Command{
		Use:   "build <file>",
		Short: "Build the repeat table and write it to a file",
		Args:  cobra.ExactArgs(1),
		RunE:  runTableBuild, // Defined in cmd_table.go
	}
	tableVerifyCmd = &cobra.Command{
		Use:   "verify <file>",
		Short: "Check a table file against its fingerprint and a fresh build",
		Args:  cobra.ExactArgs(1),
		RunE:  runTableVerify, // Defined in cmd_table.go
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", defaultConfigPath, "YAML configuration file")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&logJSON, "log-json", false, "log as JSON")
	pf.StringVar(&tablePath, "table", "", "repeat table cache file (built on first use)")
	pf.IntVar(&workers, "workers", 0, "parallel workers (0 = number of CPUs)")

	sequenceCmd.Flags().IntVarP(&length, "length", "n", defaultLength, "number of pieces")
	sequenceCmd.Flags().BoolVar(&showCounts, "counts", false, "also print per-piece counts")

	statsCmd.Flags().IntVarP(&length, "length", "n", defaultLength, "pieces per seed")
	addRangeFlags(statsCmd)

	addRangeFlags(exploreCmd)
	exploreCmd.Flags().StringVar(&storePath, "db", "", "store the result in this BadgerDB directory")
	exploreCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while exploring")
	exploreCmd.Flags().BoolVar(&verifyRun, "verify", false, "replay every seed to check the result")

	loopsCmd.Flags().StringVar(&storePath, "db", "", "BadgerDB directory written by explore")
	loopsCmd.Flags().BoolVar(&keepAll, "all", false, "list every loop instead of the largest")
	lookupCmd.Flags().StringVar(&storePath, "db", "", "BadgerDB directory written by explore")

	tableCmd.AddCommand(tableBuildCmd, tableVerifyCmd)
	rootCmd.AddCommand(sequenceCmd, statsCmd, exploreCmd, loopsCmd, lookupCmd, tableCmd)
}

func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&fromSeed, "from", "000000", "first seed of the range")
	cmd.Flags().StringVar(&toSeed, "to", "FFFFFF", "last seed of the range")
	cmd.Flags().BoolVar(&keepAll, "all", false, "include invalid and redundant seeds")
}

// setup loads the configuration file, applies flag overrides and creates
// the logger.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-json") {
		cfg.Log.JSON = logJSON
	}
	if flags.Changed("table") {
		cfg.TablePath = tablePath
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("length") {
		cfg.Length = length
	}
	if flags.Changed("db") {
		cfg.StorePath = storePath
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	config = cfg
	logger = logging.New(cfg.loggingConfig())
	return nil
}
