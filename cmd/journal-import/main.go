package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/DragosCt10/trading-tracker/internal/analytics"
	"github.com/DragosCt10/trading-tracker/internal/auditlog"
	"github.com/DragosCt10/trading-tracker/internal/csvio"
	"github.com/DragosCt10/trading-tracker/internal/importer"
	"github.com/DragosCt10/trading-tracker/internal/logger"
	"github.com/DragosCt10/trading-tracker/internal/match"
	"github.com/DragosCt10/trading-tracker/internal/store"

	"github.com/joho/godotenv"
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "optional yaml config path")
	minConfidence := flag.Float64("min-confidence", 0, "override the minimum composite confidence (0..1)")
	apply := flag.Bool("apply", false, "import rows with the proposed mapping and print an analytics summary")
	headersOnly := flag.Bool("headers-only", false, "match on header text only, ignoring cell values")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <export.csv>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	path := flag.Arg(0)

	cfg := store.Default()
	if *configPath != "" {
		var err error
		cfg, err = store.LoadConfig(*configPath)
		must(err)
	}
	must(logger.InitWithConfig(logger.LogConfig{
		Level:           cfg.Log.Level,
		Format:          cfg.Log.Format,
		DetailedLogging: cfg.Log.Detailed,
		TracingEnabled:  cfg.Log.Tracing,
	}))
	ctx := context.Background()
	defer logger.Shutdown(ctx)

	if v := os.Getenv("TRACKER_LOG_RETENTION_DAYS"); v != "" {
		var n int
		fmt.Sscanf(v, "%d", &n)
		_ = auditlog.CompressOlder(n)
	}

	f, err := csvio.ReadFile(path)
	must(err)

	opts := cfg.MatchOptions()
	if *minConfidence > 0 {
		opts.MinConfidence = *minConfidence
	}

	if *headersOnly {
		printJSON(match.HeaderMatches(f.Headers, opts))
		return
	}

	cols := match.SamplesFromRows(f.Headers, f.Rows, opts.SampleCap)
	timer := logger.StartOperation(ctx, "match_columns", "file", path, "columns", len(cols))
	res := match.Match(cols, opts)
	timer.End("matched", len(res.Matches), "unmapped", len(res.UnmappedColumns))

	for header, fm := range res.Matches {
		logger.Mapping(ctx, header, fm.Field, fm.Confidence)
	}
	printJSON(res)

	if !*apply {
		return
	}
	batch := importer.Apply(res.Mapping(), f.Rows, importer.Options{
		SourceFile:   path,
		KeepUnmapped: cfg.Import.KeepUnmapped,
	})
	logger.Import(ctx, batch.ID, batch.Rows, batch.Imported, batch.Skipped)
	if err := auditlog.Append(auditlog.Entry{
		BatchID:         batch.ID,
		SourceFile:      path,
		Rows:            batch.Rows,
		Imported:        batch.Imported,
		Skipped:         batch.Skipped,
		UnmappedColumns: res.UnmappedColumns,
		MissingRequired: res.MissingRequired,
	}); err != nil {
		logger.Warn(ctx, "Failed to write import audit entry", "error", err)
	}
	printJSON(analytics.Summarize(batch.Trades))
}
