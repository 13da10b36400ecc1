// Package commands implements the hypercube command line interface.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hupe1980/hypercube"
	"github.com/hupe1980/hypercube/internal/config"
)

// app carries state shared by all subcommands of one invocation.
type app struct {
	v          *viper.Viper
	configPath string
	format     string
	precision  int

	cfg     *config.Config
	logger  *hypercube.Logger
	metrics *hypercube.BasicMetricsCollector
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:   "hypercube",
		Short: "Slice, dice and aggregate record streams in memory",
		Long: `hypercube - in-memory analytical cube over JSON Lines record streams.

Records are read from a file, stdin, a local directory, an S3 bucket or a
MinIO bucket, loaded into a cube and queried by fact values.

Examples:
  hypercube summary --path plays.jsonl
  hypercube slice --path plays.jsonl --where genre=rock --where country=de
  hypercube group --path plays.jsonl --by genre --measure views --limit 5
  hypercube top --backend s3 --bucket events --prefix plays/ --measure views
  hypercube export --path plays.jsonl --out plays.jsonl.zst --compress zstd`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Config file (toml, yaml or json)")
	flags.StringVar(&a.format, "format", "table", "Output format: table or json")
	flags.IntVar(&a.precision, "precision", 0, "Round measures to this many significant figures before summing (0 keeps full precision)")

	flags.String("backend", "", "Source backend: local, s3 or minio")
	flags.String("path", "", "Local file, directory or - for stdin")
	flags.String("bucket", "", "Bucket for the s3 and minio backends")
	flags.String("prefix", "", "Blob prefix to load")
	flags.String("endpoint", "", "Endpoint for the minio backend or an S3-compatible service")
	flags.String("codec", "", "Record codec: json or go-json")
	flags.Float64("rate", 0, "Maximum records per second (0 disables limiting)")
	flags.Bool("enrich", false, "Add calendar facts to timed records")
	flags.String("location", "", "Time zone for calendar facts")
	flags.Bool("skip-invalid", false, "Skip undecodable records")
	flags.StringSlice("expected-measures", nil, "Measures reported as zero for empty results")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("log-format", "", "Log format: text or json")

	bindings := map[string]string{
		"source.backend":         "backend",
		"source.path":            "path",
		"source.bucket":          "bucket",
		"source.prefix":          "prefix",
		"source.endpoint":        "endpoint",
		"source.codec":           "codec",
		"ingest.rate":            "rate",
		"ingest.enrich":          "enrich",
		"ingest.location":        "location",
		"ingest.skip_invalid":    "skip-invalid",
		"cube.expected_measures": "expected-measures",
		"log.level":              "log-level",
		"log.format":             "log-format",
	}
	for key, name := range bindings {
		_ = a.v.BindPFlag(key, flags.Lookup(name))
	}

	root.AddCommand(
		newSummaryCmd(a),
		newSliceCmd(a),
		newGroupCmd(a),
		newTopCmd(a),
		newExportCmd(a),
	)
	return root
}

// Execute runs the command tree and exits on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) init() error {
	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return err
	}
	if a.format != "table" && a.format != "json" {
		return fmt.Errorf("--format %q: want table or json", a.format)
	}

	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return err
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}

	a.cfg = cfg
	a.logger = hypercube.NewLogger(handler)
	a.metrics = &hypercube.BasicMetricsCollector{}
	return nil
}
