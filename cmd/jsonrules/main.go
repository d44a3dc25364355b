// Command jsonrules evaluates a JSON document against a YAML
// specification of MongoDB-style predicates and prints the tri-state
// outcome.
//
// Usage:
//
//	jsonrules -spec spec.yaml -doc document.json [-format text|json|yaml]
//
// Environment:
//
//	JSONRULES_LOG_LEVEL    zap level for diagnostics (default "info")
//	JSONRULES_CONCURRENCY  parallel predicate evaluations (default 2x CPUs)
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v10"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/thekitchencoder/json-rules/infrastructure/operators"
	"github.com/thekitchencoder/json-rules/infrastructure/render"
	"github.com/thekitchencoder/json-rules/internal/application"
)

// config holds environment-sourced settings.
type config struct {
	LogLevel    string `env:"JSONRULES_LOG_LEVEL" envDefault:"info"`
	Concurrency int    `env:"JSONRULES_CONCURRENCY" envDefault:"0"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "jsonrules:", err)
		os.Exit(1)
	}
}

func run() error {
	specPath := flag.String("spec", "", "path to the YAML specification")
	docPath := flag.String("doc", "", "path to the JSON document")
	format := flag.String("format", "text", "output format: text, json, or yaml")
	flag.Parse()

	if *specPath == "" || *docPath == "" {
		flag.Usage()
		return fmt.Errorf("both -spec and -doc are required")
	}

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // stderr sync failure is unactionable

	spec, err := application.NewSpecLoader().LoadFile(*specPath)
	if err != nil {
		return err
	}

	docData, err := os.ReadFile(*docPath)
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}
	document, err := application.ParseDocument(docData)
	if err != nil {
		return err
	}

	predicateEvaluator, err := application.NewPredicateEvaluator(operators.NewRegistry(), logger)
	if err != nil {
		return err
	}
	specEvaluator, err := application.NewSpecEvaluator(predicateEvaluator,
		application.WithLogger(logger),
		application.WithConcurrency(cfg.Concurrency),
	)
	if err != nil {
		return err
	}

	outcome := specEvaluator.Evaluate(context.Background(), document, spec)
	return render.Outcome(os.Stdout, outcome, render.Format(*format))
}

// newLogger builds a production zap logger at the configured level,
// writing to stderr so report output on stdout stays clean.
func newLogger(level string) (*zap.Logger, error) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parsed)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
