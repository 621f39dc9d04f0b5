package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"bennypowers.dev/sls/internal/analysis"
	"bennypowers.dev/sls/internal/collections"
	"bennypowers.dev/sls/internal/config"
	"bennypowers.dev/sls/internal/log"
	"bennypowers.dev/sls/internal/symbols"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// defaultPattern is used when no patterns are given
const defaultPattern = "**/*.scss"

// Output formats
const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// errFilesFailed is returned after printing when any file could not be analyzed
var errFilesFailed = errors.New("some files could not be analyzed")

type dumpOptions struct {
	root       string
	patterns   []string
	exclude    []string
	format     string
	offset     int
	atOffset   bool
	showErrors *bool
	parser     string
}

// fileDump is the printed result for one file
type fileDump struct {
	File    string         `json:"file" yaml:"file"`
	Error   string         `json:"error,omitempty" yaml:"error,omitempty"`
	Symbols *symbols.Table `json:"symbols,omitempty" yaml:"symbols,omitempty"`
	Node    *nodeDump      `json:"node,omitempty" yaml:"node,omitempty"`
}

// nodeDump describes the innermost node at the requested offset
type nodeDump struct {
	Kind  string `json:"kind" yaml:"kind"`
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
}

func newDumpCmd() *cobra.Command {
	opts := dumpOptions{}
	var showErrors bool

	cmd := &cobra.Command{
		Use:   "dump [patterns...]",
		Short: "Print the symbol table of each matching file",
		Long: `Print the symbol table of each file matching the doublestar patterns,
relative to --root. Without patterns, every .scss file under the root is
dumped.

With --offset, the table also holds the variables and mixins visible at
that byte offset, and the innermost node there is reported.

Examples:
  scss-symbols dump
  scss-symbols dump 'src/**/*.scss' --format yaml
  scss-symbols dump styles/main.scss --offset 120 --parser tree-sitter`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.patterns = args
			opts.atOffset = cmd.Flags().Changed("offset")
			if cmd.Flags().Changed("show-errors") {
				opts.showErrors = &showErrors
			}
			return runDump(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.root, "root", ".", "directory patterns and package.json are resolved against")
	flags.StringArrayVar(&opts.exclude, "exclude", nil, "doublestar pattern of files to skip (repeatable)")
	flags.StringVar(&opts.format, "format", formatJSON, "output format: json or yaml")
	flags.IntVar(&opts.offset, "offset", 0, "byte offset for scoped symbols")
	flags.BoolVar(&showErrors, "show-errors", false, "report syntax errors instead of empty tables")
	flags.StringVar(&opts.parser, "parser", "", "tree parser for scoped symbols: scss or tree-sitter")

	return cmd
}

func runDump(ctx context.Context, opts dumpOptions, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.format != formatJSON && opts.format != formatYAML {
		return fmt.Errorf("unknown format %q", opts.format)
	}

	cfg, err := config.Load(opts.root)
	if err != nil {
		return fmt.Errorf("package.json %s: %w", config.Key, err)
	}
	if opts.showErrors != nil {
		cfg.ShowErrors = *opts.showErrors
	}
	if opts.parser != "" {
		cfg.Parser = opts.parser
	}
	cfg.Exclude = append(cfg.Exclude, opts.exclude...)

	trees, err := analysis.TreeParser(cfg.Parser)
	if err != nil {
		return err
	}
	analyzer := analysis.New(trees)

	files, err := collectFiles(opts.root, opts.patterns, cfg.Exclude)
	if err != nil {
		return err
	}
	log.Debug("Dumping %d files from %s", len(files), opts.root)

	var request analysis.Request = analysis.WholeDocument{}
	if opts.atOffset {
		request = analysis.AtOffset{Offset: opts.offset}
	}

	dumps := make([]fileDump, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			dumps[i] = dumpFile(analyzer, opts.root, file, request, cfg.ShowErrors)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := encode(out, opts.format, dumps); err != nil {
		return err
	}

	for _, d := range dumps {
		if d.Error != "" {
			return errFilesFailed
		}
	}
	return nil
}

// collectFiles expands patterns under root into sorted, slash-separated
// relative paths, dropping excluded ones
func collectFiles(root string, patterns, exclude []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{defaultPattern}
	}

	fsys := os.DirFS(root)
	files := collections.NewSet[string]()
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, filepath.ToSlash(pattern), doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			if files.Has(match) {
				continue
			}
			excluded, err := isExcluded(match, exclude)
			if err != nil {
				return nil, err
			}
			if excluded {
				log.Debug("Skipping excluded file %s", match)
				continue
			}
			files.Add(match)
		}
	}
	return collections.Sorted(files), nil
}

func isExcluded(path string, exclude []string) (bool, error) {
	for _, pattern := range exclude {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

func dumpFile(analyzer *analysis.Analyzer, root, file string, request analysis.Request, showErrors bool) fileDump {
	d := fileDump{File: file}

	source, err := fs.ReadFile(os.DirFS(root), file)
	if err != nil {
		d.Error = err.Error()
		return d
	}

	result, err := analyzer.Parse(string(source), filepath.Join(root, filepath.FromSlash(file)), request, analysis.Options{
		ShowErrors: showErrors,
	})
	if err != nil {
		log.Warn("Failed to analyze %s: %v", file, err)
		d.Error = err.Error()
		return d
	}

	d.Symbols = result.Symbols
	if n := result.Node; n != nil {
		d.Node = &nodeDump{Kind: n.Kind().String(), Name: n.Name(), Start: n.Start(), End: n.End()}
	}
	return d
}

func encode(out io.Writer, format string, dumps []fileDump) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(dumps); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(dumps); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	}
}
