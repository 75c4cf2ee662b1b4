package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"gopkg.in/yaml.v3"

	"github.com/aria-lang/subseq-go/internal/alignment"
	"github.com/aria-lang/subseq-go/internal/config"
	"github.com/aria-lang/subseq-go/internal/search"
	"github.com/aria-lang/subseq-go/internal/selection"
	"github.com/aria-lang/subseq-go/internal/sequence"
	"github.com/aria-lang/subseq-go/internal/structure"
	"github.com/aria-lang/subseq-go/pkg/subseq"
)

// reCmd searches targets as regular expressions.
var reCmd = &cobra.Command{
	Use:   "re [targets...]",
	Short: "Search chains with regular expressions",
	Long: `Search chains with regular expressions.

Letters are upper-cased and a single pair of enclosing parentheses or quotes
is removed. With --search nucleicacids, IUPAC codes such as N, R or Y are
expanded to the nucleotides they stand for.`,
	Example: `  subseq re --pdb 1abc.pdb "KTG[TS]" "C.{2,4}C"`,
	Aliases: []string{"regex"},
	RunE:    searchRunner(search.Regex),
}

// localCmd searches targets with Smith-Waterman alignments.
var localCmd = &cobra.Command{
	Use:   "local [targets...]",
	Short: "Search chains with local alignments",
	Long: `Search chains with Smith-Waterman local alignments.

A chain is only traced back when its best score reaches --minscore percent
of the target aligned against itself. Every cell holding the best score is
reported.`,
	Example: `  subseq local --pdb 1abc.pdb --matrix blosum62 --minscore 60 KTGTAVU`,
	Aliases: []string{"la"},
	RunE:    searchRunner(search.Local),
}

// globalCmd searches targets with Needleman-Wunsch alignments.
var globalCmd = &cobra.Command{
	Use:   "global [targets...]",
	Short: "Search chains with global alignments",
	Long: `Search chains with Needleman-Wunsch global alignments.

Leading and trailing gaps of the target are trimmed so the match covers the
part of the chain the target was aligned against.`,
	Example: `  subseq global --fasta chains.fa --search nucleicacids --matrix nucleicmatrix ACGU`,
	Aliases: []string{"ga"},
	RunE:    searchRunner(search.Global),
}

func init() {
	rootCmd.AddCommand(reCmd)
	rootCmd.AddCommand(localCmd)
	rootCmd.AddCommand(globalCmd)
}

// job is a validated search request.
type job struct {
	cfg     config.Config
	targets []string
	store   *sequence.Store
	params  search.Params
}

func searchRunner(method search.Method) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := settings()
		if err != nil {
			return err
		}

		j, errs := prepare(method, cfg, args)
		if len(errs) > 0 {
			return reportErrors(errs)
		}

		return execute(j, cmd.OutOrStdout())
	}
}

// prepare checks every parameter and loads the inputs. All problems are
// returned together.
func prepare(method search.Method, cfg config.Config, args []string) (*job, []error) {
	errs := cfg.Validate()

	targets, err := subseq.ParseTargets(args)
	if err != nil {
		errs = append(errs, err)
	} else if len(targets) == 0 {
		errs = append(errs, fmt.Errorf("no targets were given"))
	}

	var matrix *alignment.SubstitutionMatrix
	if method != search.Regex {
		if matrix, err = alignment.LoadMatrix(cfg.Matrix); err != nil {
			errs = append(errs, err)
		}
	}

	store, loadErrs := loadStore(cfg)
	errs = append(errs, loadErrs...)
	if len(errs) > 0 {
		return nil, errs
	}

	alphabet, _ := cfg.Alphabet()
	return &job{
		cfg:     cfg,
		targets: targets,
		store:   store,
		params: search.Params{
			Method:    method,
			Alphabet:  alphabet,
			FirstOnly: cfg.FirstOnly,
			GapCost:   cfg.GapCost,
			MinScore:  cfg.MinScore,
			Matrix:    matrix,
		},
	}, nil
}

// loadStore reads the inputs, checks the requested models and chains and
// builds the chain store.
func loadStore(cfg config.Config) (*sequence.Store, []error) {
	catalog, load, err := openInputs()
	if err != nil {
		return nil, []error{err}
	}
	if errs := structure.CheckNames(catalog, cfg.Models, cfg.Chains); len(errs) > 0 {
		return nil, errs
	}

	alphabet, _ := cfg.Alphabet()
	placeholder, _ := cfg.PlaceholderSymbol()
	return load(sequence.BuildOptions{
		Alphabet:    alphabet,
		Models:      cfg.Models,
		Chains:      cfg.Chains,
		Placeholder: placeholder,
		Logger:      logger,
	}), nil
}

// reportErrors logs every error and returns the summary error.
func reportErrors(errs []error) error {
	for _, e := range errs {
		logger.Printf("ERROR: %v", e)
	}
	return fmt.Errorf("%d errors were found, please see above messages", len(errs))
}

// openInputs reads the PDB files or the FASTA file. The returned function
// builds the chain store once the options are known.
func openInputs() (structure.Catalog, func(sequence.BuildOptions) *sequence.Store, error) {
	switch {
	case len(pdbPaths) > 0 && fastaPath != "":
		return nil, nil, fmt.Errorf("--pdb and --fasta cannot be combined")
	case len(pdbPaths) > 0:
		host, err := subseq.LoadHost(pdbPaths...)
		if err != nil {
			return nil, nil, err
		}
		return host, func(opts sequence.BuildOptions) *sequence.Store {
			return subseq.BuildStore(host, opts)
		}, nil
	case fastaPath != "":
		store, err := subseq.ReadFASTA(fastaPath)
		if err != nil {
			return nil, nil, err
		}
		return store, func(opts sequence.BuildOptions) *sequence.Store {
			return store.Filter(opts.Models, opts.Chains)
		}, nil
	}
	return nil, nil, fmt.Errorf("no structures were given, use --pdb or --fasta")
}

// execute runs the batch and writes the requested outputs.
func execute(j *job, stdout io.Writer) error {
	if !quiet && j.params.Method != search.Regex {
		colored := !color.NoColor
		j.params.Reporter = func(r *alignment.Report) {
			if err := r.Write(stdout, colored); err != nil {
				logger.Printf("WARNING: %v", err)
			}
		}
	}

	var sink selection.Sink
	if scriptPath != "" {
		file, err := os.Create(scriptPath)
		if err != nil {
			return fmt.Errorf("creating script: %w", err)
		}
		defer file.Close()
		sink = selection.NewPyMOLWriter(file)
	}

	s := subseq.NewSearcher(logger, j.cfg.Template)
	wait := trackProgress(s, len(j.targets))
	sum := s.Search(j.targets, j.store, j.params, sink)
	wait()

	printSummary(stdout, sum)

	if yamlPath != "" {
		if err := writeMatches(yamlPath, j.params.Method, sum); err != nil {
			return err
		}
	}
	if sum.Errors > 0 {
		return fmt.Errorf("%d of %d targets failed", sum.Errors, len(j.targets))
	}
	return nil
}

// trackProgress shows a bar advancing with every finished target. The
// returned function waits for the bar to finish rendering.
func trackProgress(s *search.Searcher, total int) func() {
	if !progress {
		return func() {}
	}

	pbs := mpb.New(mpb.WithWidth(40), mpb.WithOutput(os.Stderr))
	bar := pbs.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name("searched targets: ", decor.WC{W: len("searched targets: "), C: decor.DindentRight}),
			decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.OnComplete(decor.Percentage(decor.WC{W: 5}), " done"),
		),
	)
	s.OnResult = func(search.Result) { bar.Increment() }

	return func() {
		bar.SetTotal(int64(total), true)
		pbs.Wait()
	}
}

func printSummary(w io.Writer, sum search.Summary) {
	for _, r := range sum.Results {
		switch r.Outcome {
		case search.Found:
			fmt.Fprintf(w, "%s: %d matches, selection %s\n", r.Target, len(r.Matches), r.Selection)
			for _, m := range r.Matches {
				fmt.Fprintf(w, "  %s/%s %s-%s", m.Model, m.Chain, m.Start(), m.End())
				if m.Score != 0 {
					fmt.Fprintf(w, " score %g", m.Score)
				}
				fmt.Fprintln(w)
			}
		case search.Failed:
			fmt.Fprintf(w, "%s: failed: %v\n", r.Target, r.Err)
		}
	}
	fmt.Fprintf(w, "%d targets, %d found, %d empty, %d failed\n", len(sum.Results),
		sum.Count(search.Found), sum.Count(search.Empty), sum.Count(search.Failed))
}

// matchRecord is the YAML form of one target's matches.
type matchRecord struct {
	Target    string         `yaml:"target"`
	Method    string         `yaml:"method"`
	Outcome   string         `yaml:"outcome"`
	Selection string         `yaml:"selection,omitempty"`
	Error     string         `yaml:"error,omitempty"`
	Matches   []search.Match `yaml:"matches,omitempty"`
}

func writeMatches(path string, method search.Method, sum search.Summary) error {
	records := make([]matchRecord, 0, len(sum.Results))
	for _, r := range sum.Results {
		rec := matchRecord{
			Target:    r.Target,
			Method:    method.String(),
			Outcome:   r.Outcome.String(),
			Selection: r.Selection,
			Matches:   r.Matches,
		}
		if r.Err != nil {
			rec.Error = r.Err.Error()
		}
		records = append(records, rec)
	}

	out, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding matches: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("writing matches: %w", err)
	}
	return nil
}
