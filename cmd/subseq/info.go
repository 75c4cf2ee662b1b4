package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/aria-lang/subseq-go/internal/stats"
	"github.com/aria-lang/subseq-go/pkg/subseq"
)

var (
	exportPath    string
	histogramBins int
)

// infoCmd describes the chains a search would see.
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the chains read from the inputs",
	Long: `Show the chains read from the inputs.

Chains are translated with the same settings a search uses, so the
output shows exactly what the targets will be matched against.
With --export the chain sequences are also written as FASTA.`,
	Example: `  subseq info --pdb 1abc.pdb --chains A,B --export chains.fa`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := settings()
		if err != nil {
			return err
		}

		errs := cfg.Validate()
		store, loadErrs := loadStore(cfg)
		if errs = append(errs, loadErrs...); len(errs) > 0 {
			return reportErrors(errs)
		}

		placeholder, _ := cfg.PlaceholderSymbol()
		if err := describe(cmd.OutOrStdout(), store, placeholder); err != nil {
			return err
		}

		if exportPath != "" {
			if err := subseq.WriteFASTA(exportPath, store); err != nil {
				return err
			}
			logger.Printf("INFO: wrote %s chains to %s", humanize.Comma(int64(store.Len())), exportPath)
		}
		return nil
	},
}

func init() {
	infoCmd.Flags().StringVarP(&exportPath, "export", "e", "", "write the chain sequences as FASTA")
	infoCmd.Flags().IntVar(&histogramBins, "bins", 10, "number of chain length histogram bins")

	rootCmd.AddCommand(infoCmd)
}

func describe(w io.Writer, store *subseq.Store, placeholder byte) error {
	st, err := stats.FromStore(store, placeholder)
	if err != nil {
		return err
	}

	for _, c := range st.PerChain {
		fmt.Fprintf(w, "%s/%s: %s residues, %s placeholders (%.1f%%), most common %v\n",
			c.Model, c.Chain,
			humanize.Comma(int64(c.Length)),
			humanize.Comma(int64(c.Placeholders)),
			c.PlaceholderRatio()*100,
			c.TopSymbols(3))
	}

	fmt.Fprintf(w, "\n%s models, %s chains, %s residues\n",
		humanize.Comma(int64(st.Models)), humanize.Comma(int64(st.Chains)),
		humanize.Comma(int64(st.TotalResidues)))
	fmt.Fprintf(w, "chain length %d - %d, mean %.1f, median %d, N50 %d\n",
		st.MinLength, st.MaxLength, st.MeanLength, st.MedianLength, st.N50)

	if histogramBins > 0 && st.Chains > 1 {
		h, err := stats.NewLengthHistogram(store, histogramBins)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "\n%s", h)
	}
	return nil
}
