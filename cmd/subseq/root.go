package main

import (
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aria-lang/subseq-go/internal/config"
	"github.com/aria-lang/subseq-go/pkg/subseq"
)

var (
	cfgFile string

	// structure and sequence inputs
	pdbPaths  []string
	fastaPath string

	// outputs
	scriptPath string
	yamlPath   string
	quiet      bool
	noColor    bool
	progress   bool

	logger = log.New(os.Stderr, "", 0)
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "subseq",
	Short: "Find subsequences in the chains of macromolecular structures",
	Long: `Find subsequences in the chains of macromolecular structures.

Chains are read from PDB files (--pdb) or a FASTA file (--fasta) and
translated to one-letter sequences. Targets are searched with regular
expressions (re) or with Smith-Waterman (local) and Needleman-Wunsch
(global) alignments. Every target with matches becomes a named selection
that can be written as a PyMOL script (--out).

Targets are given as arguments. An argument naming a file is read as a
list of targets, one per line.`,
	Version:           subseq.Version(),
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func init() {
	config.Setup(viper.GetViper())

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "settings file (default ./subseq.yaml or $HOME/.subseq/subseq.yaml)")

	flags.StringSliceVarP(&pdbPaths, "pdb", "p", nil, "PDB files to read chains from")
	flags.StringVarP(&fastaPath, "fasta", "f", "", "FASTA file with >model:chain records to read chains from")
	flags.StringSliceP("models", "m", nil, "models to search, all when empty")
	flags.StringSliceP("chains", "c", nil, "chains to search, all when empty")
	flags.StringP("search", "s", "aminoacids", "alphabet residues are translated with (aminoacids, nucleicacids)")
	flags.String("placeholder", "X", "symbol for residues outside the alphabet")
	flags.Bool("firstonly", false, "stop at the first match")
	flags.String("template", "ss-{method}-{id}-{target}", "selection name template")

	flags.Float64P("gapcost", "g", 10, "gap penalty for alignments")
	flags.Float64("minscore", 51, "minimum local alignment score, percent of the best possible score")
	flags.String("matrix", "blosum62", "substitution matrix file or built-in name (blosum62, nucleicmatrix)")

	flags.StringVarP(&scriptPath, "out", "o", "", "write selections as a PyMOL script")
	flags.StringVar(&yamlPath, "yaml", "", "write matches as YAML")
	flags.BoolVarP(&quiet, "quiet", "q", false, "do not print alignment reports")
	flags.BoolVar(&noColor, "no-color", false, "disable colored reports")
	flags.BoolVar(&progress, "progress", false, "show a progress bar across targets")

	for _, key := range []string{
		config.KeyModels, config.KeyChains, config.KeySearch, config.KeyPlaceholder,
		config.KeyFirstOnly, config.KeyTemplate, config.KeyGapCost, config.KeyMinScore,
		config.KeyMatrix,
	} {
		viper.BindPFlag(key, flags.Lookup(key))
	}
}

// loadSettings reads the settings file before any command runs.
func loadSettings(cmd *cobra.Command, args []string) error {
	if noColor {
		color.NoColor = true
	}
	return config.ReadFile(viper.GetViper(), cfgFile)
}

// settings returns the merged configuration.
func settings() (config.Config, error) {
	return config.New(viper.GetViper())
}
