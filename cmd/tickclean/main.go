package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/baditaflorin/l"
	"github.com/google/uuid"

	"yashubustudio/tickclean/labels"
	"yashubustudio/tickclean/paths"
)

type cliOptions struct {
	configPath    string
	inputPath     string
	outputPath    string
	speciesColumn string
	labelColumn   string
	root          string
	stdout        bool
	jsonLogs      bool
}

func main() {
	opts, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("tickclean: %v", err)
	}
	logger, err := newLogger(os.Stderr, opts.jsonLogs)
	if err != nil {
		log.Fatalf("tickclean: create logger: %v", err)
	}
	if err := run(opts, logger, os.Stdout); err != nil {
		logger.Error("run failed", "error", err)
		logger.Close()
		log.Fatalf("tickclean: %v", err)
	}
	logger.Close()
}

func newLogger(w io.Writer, jsonFormat bool) (l.Logger, error) {
	return l.NewStandardFactory().CreateLogger(l.Config{
		Output:      w,
		JsonFormat:  jsonFormat,
		AsyncWrite:  true,
		BufferSize:  64 * 1024,
		MaxFileSize: 10 * 1024 * 1024,
		MaxBackups:  5,
		AddSource:   false,
		Metrics:     false,
	})
}

func parseFlags(fs *flag.FlagSet, args []string) (cliOptions, error) {
	var opts cliOptions
	fs.StringVar(&opts.configPath, "config", "", "Path to cleaner config (.json or .toml, default: ./tickclean.json if present)")
	fs.StringVar(&opts.inputPath, "input", "", "CSV/TSV file to clean, or @alias[/sub/path] from config/paths.json")
	fs.StringVar(&opts.outputPath, "output", "", "Where to write the cleaned table (default: <input>_clean<ext>)")
	fs.StringVar(&opts.speciesColumn, "species-column", "", "Column name or #index holding species labels (default: \"Species of Tick\")")
	fs.StringVar(&opts.labelColumn, "label-column", "", "Column receiving standardized labels (default: true_label)")
	fs.StringVar(&opts.root, "root", "", "Repository root for path aliases (default: nearest directory with config/paths.json)")
	fs.BoolVar(&opts.stdout, "stdout", false, "Print a label summary to STDOUT")
	fs.BoolVar(&opts.jsonLogs, "json-logs", false, "Emit logs as JSON")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s --input FILE [options]\n\n", filepath.Base(os.Args[0]))
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.configPath = strings.TrimSpace(opts.configPath)
	opts.inputPath = strings.TrimSpace(opts.inputPath)
	opts.outputPath = strings.TrimSpace(opts.outputPath)
	opts.speciesColumn = strings.TrimSpace(opts.speciesColumn)
	opts.labelColumn = strings.TrimSpace(opts.labelColumn)
	opts.root = strings.TrimSpace(opts.root)

	if opts.inputPath == "" {
		fs.Usage()
		return opts, errors.New("missing required --input file")
	}
	return opts, nil
}

func run(opts cliOptions, logger l.Logger, stdout io.Writer) error {
	runID := uuid.NewString()

	cfg, err := labels.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.speciesColumn != "" {
		cfg.SpeciesColumn = opts.speciesColumn
	}
	if opts.labelColumn != "" {
		cfg.LabelColumn = opts.labelColumn
	}

	inputPath, err := resolveInput(opts.inputPath, opts.root)
	if err != nil {
		return err
	}
	outputPath, err := resolveOutputPath(opts.outputPath, inputPath)
	if err != nil {
		return err
	}
	logger.Info("cleaning started", "run_id", runID, "input", inputPath, "output", outputPath)

	cleaner, err := labels.NewCleaner(cfg, logger)
	if err != nil {
		return fmt.Errorf("init cleaner: %w", err)
	}
	table, err := cleaner.LoadAndClean(inputPath)
	if err != nil {
		return err
	}
	if err := cleaner.Write(outputPath, table); err != nil {
		return err
	}
	cleaned, err := table.Values(cfg.LabelColumn)
	if err != nil {
		return err
	}
	logger.Info("cleaning finished",
		"run_id", runID,
		"rows", len(table.Rows),
		"distinct_labels", len(labels.UniqueLabels(cleaned)),
		"output", outputPath,
	)

	if opts.stdout {
		printSummary(stdout, labels.Summarize(cleaned))
	}
	return nil
}

// resolveInput expands "@alias" and "@alias/rest" through config/paths.json.
func resolveInput(input, root string) (string, error) {
	if !strings.HasPrefix(input, "@") {
		return filepath.Abs(input)
	}
	alias, rest, _ := strings.Cut(strings.TrimPrefix(input, "@"), "/")
	if alias == "" {
		return "", fmt.Errorf("empty path alias in %q", input)
	}
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("working directory: %w", err)
		}
		if root, err = paths.FindRoot(wd); err != nil {
			return "", fmt.Errorf("locate repository root: %w", err)
		}
	}
	resolved, err := paths.Load(root)
	if err != nil {
		return "", fmt.Errorf("load path aliases: %w", err)
	}
	base, ok := resolved[alias]
	if !ok {
		return "", fmt.Errorf("unknown path alias %q", alias)
	}
	if rest == "" {
		return base, nil
	}
	return filepath.Join(base, filepath.FromSlash(rest)), nil
}

func resolveOutputPath(path, input string) (string, error) {
	if path != "" {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("resolve output path: %w", err)
		}
		return absPath, nil
	}
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(input, ext)
	if ext == "" {
		ext = ".csv"
	}
	return stem + "_clean" + ext, nil
}

func printSummary(w io.Writer, counts []labels.LabelCount) {
	fmt.Fprintln(w, "==== label summary ====")
	if len(counts) == 0 {
		fmt.Fprintln(w, "  (no labels)")
		return
	}
	for _, c := range counts {
		fmt.Fprintf(w, "  %6d  %s\n", c.Count, c.Label)
	}
}
