// Command fivewords finds every set of five English words that together use
// 25 distinct letters.
//
// Usage:
//
//	fivewords [flags] [word-file]
//
// Flags:
//
//	-config            path to YAML config file (default: $CONFIG_PATH or ./fivewords.yaml)
//	-word-file         newline-delimited word list (or the first argument)
//	-d                 allow words with repeated letters
//	-stream            print combinations as they are found
//	-workers           goroutines per stage (0 = NumCPU)
//	-format            output format: list or csv
//	-store             persist results to PostgreSQL (needs DATABASE_DSN)
//	-migrate           apply schema migrations before storing
//	-metrics-textfile  write run metrics in Prometheus text format
//	-list-words        print eligible words with their masks and exit
//	-version           print version and exit
//
// Results go to stdout, logs to stderr.
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/fivewords/internal/app"
	"github.com/heartmarshall/fivewords/internal/config"
)

func main() {
	configFlag := flag.String("config", "", "path to YAML config file")
	wordFileFlag := flag.String("word-file", "", "newline-delimited word list")
	dupFlag := flag.Bool("d", false, "allow words with repeated letters")
	streamFlag := flag.Bool("stream", false, "print combinations as they are found")
	workersFlag := flag.Int("workers", -1, "goroutines per stage (0 = NumCPU)")
	formatFlag := flag.String("format", "", "output format: list or csv")
	storeFlag := flag.Bool("store", false, "persist results to PostgreSQL")
	migrateFlag := flag.Bool("migrate", false, "apply schema migrations before storing")
	metricsFlag := flag.String("metrics-textfile", "", "write run metrics to this file")
	listFlag := flag.Bool("list-words", false, "print eligible words with their masks and exit")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println(app.BuildVersion())
		return
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// CLI flags override config.
	if *wordFileFlag != "" {
		cfg.WordFile = *wordFileFlag
	}
	if flag.NArg() > 0 {
		cfg.WordFile = flag.Arg(0)
	}
	if *dupFlag {
		cfg.Search.AllowDuplicateLetters = true
	}
	if *streamFlag {
		cfg.Search.Incremental = true
	}
	if *workersFlag >= 0 {
		cfg.Search.Workers = *workersFlag
	}
	if *formatFlag != "" {
		cfg.Output.Format = *formatFlag
	}
	if *storeFlag {
		cfg.Store.Enabled = true
	}
	if *migrateFlag {
		cfg.Store.Migrate = true
	}
	if *metricsFlag != "" {
		cfg.Metrics.TextfilePath = *metricsFlag
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := app.NewLogger(cfg.Log, os.Stderr)

	if cfg.WordFile == "" {
		logger.Error("a word file is required: fivewords [flags] path/to/words.txt")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := app.Run(ctx, cfg, logger, app.Options{ListWords: *listFlag, Out: os.Stdout}); err != nil {
		logger.Error("search failed", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}
