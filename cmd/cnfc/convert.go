package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/npillmayer/chomsky/cnf"
	"github.com/npillmayer/chomsky/grammar"
	"github.com/npillmayer/chomsky/grammar/notation"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// Output formats of command convert.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type convertOptions struct {
	format  string
	steps   bool
	compact bool
	jobs    int
}

var (
	convertOpts convertOptions
	asJSON      bool
	asYAML      bool
	prune       bool
)

var convertCmd = &cobra.Command{
	Use:   "convert file...",
	Short: "Convert grammar files to CNF",
	Long: `Convert reads grammar files and prints their Chomsky Normal Form.

Files ending in .json, .yaml or .yml hold grammars in exchange format, all
other files are read in textual notation. Files are converted concurrently;
a failing file does not stop the others.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := convertOpts
		switch {
		case asJSON && asYAML:
			return fmt.Errorf("flags --json and --yaml are mutually exclusive")
		case asJSON:
			opts.format = formatJSON
		case asYAML:
			opts.format = formatYAML
		default:
			opts.format = formatText
		}
		if cmd.Flags().Changed("prune") {
			cfg.Engine.Prune = prune
		}
		return runConvert(cmd.Context(), cmd.OutOrStdout(), cfg.Converter(), args, opts)
	},
}

func init() {
	flags := convertCmd.Flags()
	flags.BoolVar(&asJSON, "json", false, "print results in JSON exchange format")
	flags.BoolVar(&asYAML, "yaml", false, "print results in YAML exchange format")
	flags.BoolVar(&convertOpts.steps, "steps", false, "print the grammar after every stage")
	flags.BoolVar(&convertOpts.compact, "compact", false, "split identifiers of text grammars into characters")
	flags.BoolVar(&prune, "prune", false, "remove useless symbols after conversion")
	flags.IntVarP(&convertOpts.jobs, "jobs", "j", runtime.NumCPU(), "number of concurrent conversions")
	rootCmd.AddCommand(convertCmd)
}

// conversion is the outcome of converting a single file.
type conversion struct {
	file   string
	input  *grammar.Grammar
	result *grammar.Grammar
	steps  []cnf.Step
	err    error
}

// runConvert converts files and writes the results to w, in the order of
// files. The error returned combines the errors of all failing files.
func runConvert(ctx context.Context, w io.Writer, conv *cnf.Converter, files []string,
	opts convertOptions) error {
	//
	results := convertFiles(ctx, conv, files, opts)
	var errs error
	for _, c := range results {
		if c.err != nil {
			pterm.Error.Println(fmt.Sprintf("%s: %v", c.file, c.err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", c.file, c.err))
		}
	}
	if err := writeResults(w, results, opts); err != nil {
		errs = multierr.Append(errs, err)
	}
	if errs != nil {
		n := len(multierr.Errors(errs))
		return fmt.Errorf("%d of %d conversion(s) failed: %w", n, len(files), errs)
	}
	return nil
}

func convertFiles(ctx context.Context, conv *cnf.Converter, files []string,
	opts convertOptions) []conversion {
	//
	results := make([]conversion, len(files))
	group, ctx := errgroup.WithContext(ctx)
	if opts.jobs > 0 {
		group.SetLimit(opts.jobs)
	}
	for i, file := range files {
		i, file := i, file
		group.Go(func() error {
			results[i].file = file
			if err := ctx.Err(); err != nil {
				results[i].err = err
				return nil
			}
			results[i] = convertFile(conv, file, opts)
			return nil
		})
	}
	_ = group.Wait() // errors are kept per file
	return results
}

func convertFile(conv *cnf.Converter, file string, opts convertOptions) conversion {
	c := conversion{file: file}
	if c.input, c.err = readGrammar(file, opts.compact); c.err != nil {
		return c
	}
	tracer().P("file", file).Infof("converting grammar with %d productions", c.input.Size())
	if opts.steps {
		c.result, c.steps, c.err = conv.ConvertSteps(c.input)
	} else {
		c.result, c.err = conv.Convert(c.input)
	}
	return c
}

// readGrammar reads a grammar file, choosing the format by file extension.
func readGrammar(path string, compact bool) (*grammar.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return grammar.ReadJSON(f)
	case ".yaml", ".yml":
		return grammar.ReadYAML(f)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return notation.Parse(name, string(data), notation.Compact(compact))
}

// --- Output ----------------------------------------------------------------

type fileResult struct {
	File  string           `json:"file"`
	CNF   *grammar.Grammar `json:"cnf"`
	Steps []stepResult     `json:"steps,omitempty"`
}

type stepResult struct {
	Name    string           `json:"name"`
	Grammar *grammar.Grammar `json:"grammar"`
}

func writeResults(w io.Writer, results []conversion, opts convertOptions) error {
	switch opts.format {
	case formatJSON:
		var out []fileResult
		for _, c := range results {
			if c.err != nil {
				continue
			}
			r := fileResult{File: c.file, CNF: c.result}
			for _, st := range c.steps {
				r.Steps = append(r.Steps, stepResult{Name: st.Name, Grammar: st.Grammar})
			}
			out = append(out, r)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case formatYAML:
		for _, c := range results {
			if c.err != nil {
				continue
			}
			fmt.Fprintf(w, "--- # %s\n", c.file)
			if err := grammar.WriteYAML(c.result, w); err != nil {
				return err
			}
		}
		return nil
	}
	for _, c := range results {
		if c.err != nil {
			continue
		}
		fmt.Fprintf(w, "# %s\n", c.file)
		for _, st := range c.steps {
			fmt.Fprintf(w, "## after %s\n%s\n", st.Name, st.Grammar)
		}
		if len(c.steps) > 0 {
			fmt.Fprintln(w, "## CNF")
		}
		fmt.Fprintln(w, notation.String(c.result))
	}
	return nil
}
