package sequence

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// fastaWidth is the line width used when writing FASTA.
const fastaWidth = 60

// ParseFASTA reads chain sequences from FASTA. The first word of a header
// names the chain as "model:chain"; a bare word is taken as the model with
// chain "A". Residue ids are the 1-based positions.
func ParseFASTA(r io.Reader) (*Store, error) {
	store := NewStore()
	scanner := bufio.NewScanner(r)

	var model, chain string
	var bases strings.Builder
	lineNum := 0

	flush := func() error {
		if model == "" {
			return nil
		}
		cs, err := NumberedChainSequence(model, chain, bases.String())
		if err != nil {
			return err
		}
		if _, exists := store.Get(cs.Model, cs.Chain); exists {
			return fmt.Errorf("duplicate FASTA record %s", cs.Label())
		}
		store.Add(cs)
		bases.Reset()
		return nil
	}

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || line[0] == ';' {
			continue
		}

		if line[0] == '>' {
			if err := flush(); err != nil {
				return nil, err
			}
			fields := strings.Fields(line[1:])
			if len(fields) == 0 {
				return nil, fmt.Errorf("line %d: empty FASTA header", lineNum)
			}
			model, chain = fields[0], "A"
			if m, c, ok := strings.Cut(fields[0], ":"); ok {
				model, chain = m, c
			}
			continue
		}

		if model == "" {
			return nil, fmt.Errorf("line %d: sequence data before first header", lineNum)
		}
		bases.WriteString(strings.ReplaceAll(line, " ", ""))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading FASTA: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return store, nil
}

// WriteFASTA writes every chain of the store as a ">model:chain" record.
func WriteFASTA(w io.Writer, store *Store) error {
	bw := bufio.NewWriter(w)
	store.Each(func(cs *ChainSequence) bool {
		fmt.Fprintf(bw, ">%s:%s\n", cs.Model, cs.Chain)
		for i := 0; i < len(cs.Sequence); i += fastaWidth {
			bw.WriteString(cs.Sequence[i:min(i+fastaWidth, len(cs.Sequence))])
			bw.WriteByte('\n')
		}
		return true
	})
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing FASTA: %w", err)
	}
	return nil
}
