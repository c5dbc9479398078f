// Command warnings fetches the DWD warning list once and prints it.
//
// Usage:
//
//	go run ./cmd/warnings           # active warnings only
//	go run ./cmd/warnings -all      # include expired warnings
//	go run ./cmd/warnings -url http://localhost:9000/warnings.json
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/couchcryptid/dwd-warning-service/internal/adapter/dwd"
	"github.com/couchcryptid/dwd-warning-service/internal/config"
	"github.com/couchcryptid/dwd-warning-service/internal/domain"
	"github.com/couchcryptid/dwd-warning-service/internal/observability"
)

func main() {
	all := flag.Bool("all", false, "print expired warnings too")
	urlFlag := flag.String("url", "", "override the warnings endpoint")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *urlFlag != "" {
		cfg.WarningsURL = *urlFlag
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := dwd.NewClient(cfg.WarningsURL, cfg.FetchTimeout, logger, observability.NewMetrics())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
	defer cancel()

	list, err := client.FetchWarnings(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetch warnings: %v\n", err)
		os.Exit(1)
	}

	warnings := list.Warnings
	if !*all {
		warnings = list.Current()
	}

	fmt.Printf("%d warnings as of %s\n", len(warnings), list.Time.Format(time.RFC3339))
	for _, w := range warnings {
		printWarning(w)
	}
	fmt.Println(list.Copyright)
}

func printWarning(w domain.Warning) {
	end := "open-ended"
	if w.End != nil {
		end = w.End.Format(time.RFC3339)
	}
	fmt.Printf("\n[%d] %s\n", w.Level, w.Headline)
	fmt.Printf("    %s (%s), %s – %s\n", w.RegionName, w.StateShort, w.Start.Format(time.RFC3339), end)
	if w.Description != "" {
		fmt.Printf("    %s\n", w.Description)
	}
	if w.Instruction != "" {
		fmt.Printf("    %s\n", w.Instruction)
	}
}
