// fuzzdx is the command-line collaborator around the inference core: it runs
// a single diagnosis or a whole batch file without requiring the service.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/nullcipherr/fuzzdx/internal/anxiety"
	"github.com/nullcipherr/fuzzdx/internal/batch"
	"github.com/nullcipherr/fuzzdx/internal/diagnose"
	"github.com/nullcipherr/fuzzdx/internal/fuzz"
	"github.com/nullcipherr/fuzzdx/internal/store"
)

func main() {
	var (
		inputPath  = flag.String("input", "", "batch input file, one case per line: heart rate, worry, sleep quality, muscle tension")
		outputPath = flag.String("output", "", "batch output file (default stdout)")
		values     = flag.String("values", "", "single case, e.g. \"65,2,8,1\"")
		method     = flag.String("method", "centroid", "defuzzification method: centroid, bisector, mom, som, lom")
		allMethods = flag.Bool("all-methods", false, "with -values, evaluate every defuzzification method")
		workers    = flag.Int("workers", 4, "batch worker count")
		systemPath = flag.String("system", "", "YAML system spec (default: built-in anxiety system)")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	spec := anxiety.Spec()
	if *systemPath != "" {
		var err error
		spec, err = fuzz.LoadSpec(*systemPath)
		if err != nil {
			fatal("load system spec: %v", err)
		}
	}
	system, err := fuzz.NewSystem(spec)
	if err != nil {
		fatal("build system: %v", err)
	}

	defaultMethod, err := fuzz.ParseMethod(*method)
	if err != nil {
		fatal("%v", err)
	}

	svc, err := diagnose.NewService(system, defaultMethod, store.NewMemoryStore(), nil, logger)
	if err != nil {
		fatal("%v", err)
	}

	ctx := context.Background()

	switch {
	case *values != "":
		runSingle(ctx, svc, *values, defaultMethod, *allMethods)
	case *inputPath != "":
		runBatch(ctx, svc, logger, *inputPath, *outputPath, *method, *workers)
	default:
		fmt.Fprintln(os.Stderr, "either -values or -input is required")
		flag.Usage()
		os.Exit(2)
	}
}

func runSingle(ctx context.Context, svc *diagnose.Service, values string, method fuzz.Method, allMethods bool) {
	inputs, err := batch.ParseRow(values)
	if err != nil {
		fatal("parse -values: %v", err)
	}

	methods := []fuzz.Method{method}
	if allMethods {
		methods = fuzz.Methods()
	}
	for _, m := range methods {
		result, err := svc.Diagnose(ctx, inputs.Map(), string(m), store.SourceCLI)
		if err != nil {
			fatal("%v", err)
		}
		fmt.Printf("%-8s  score=%6.2f  level=%s\n", m, result.Score, result.Level)
	}
}

func runBatch(ctx context.Context, svc *diagnose.Service, logger *slog.Logger, inputPath, outputPath, method string, workers int) {
	in, err := os.Open(inputPath)
	if err != nil {
		fatal("open input: %v", err)
	}
	defer in.Close()

	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			fatal("create output: %v", err)
		}
		defer f.Close()
		out = f
	}

	p := batch.NewProcessor(svc, nil, workers, logger)
	summary, err := p.Process(ctx, in, out, method)
	if err != nil {
		fatal("%v", err)
	}
	fmt.Fprintf(os.Stderr, "%d rows processed, %d errors\n", summary.Rows, summary.Errors)
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
