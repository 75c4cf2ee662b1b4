package selection

import "fmt"

// Entry is the part of a selection that lies in one chain.
type Entry struct {
	Model string   `json:"model" yaml:"model"`
	Chain string   `json:"chain" yaml:"chain"`
	IDs   []string `json:"ids" yaml:"ids"`
}

// Selection is a named set of residues.
type Selection struct {
	Name    string  `json:"name" yaml:"name"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

// Recorder keeps selections in memory.
type Recorder struct {
	selections []*Selection
	byName     map[string]*Selection
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{byName: make(map[string]*Selection)}
}

// CreateEmpty starts a selection, discarding any earlier one of that name.
func (r *Recorder) CreateEmpty(name string) error {
	if name == "" {
		return fmt.Errorf("selection name cannot be empty")
	}
	if sel, ok := r.byName[name]; ok {
		sel.Entries = nil
		return nil
	}
	sel := &Selection{Name: name}
	r.selections = append(r.selections, sel)
	r.byName[name] = sel
	return nil
}

// Extend appends residues to an existing selection.
func (r *Recorder) Extend(name, model, chain string, ids []string) error {
	sel, ok := r.byName[name]
	if !ok {
		return fmt.Errorf("selection %q does not exist", name)
	}
	sel.Entries = append(sel.Entries, Entry{
		Model: model,
		Chain: chain,
		IDs:   append([]string(nil), ids...),
	})
	return nil
}

// Selections returns the selections in creation order.
func (r *Recorder) Selections() []Selection {
	out := make([]Selection, len(r.selections))
	for i, sel := range r.selections {
		out[i] = *sel
	}
	return out
}

// Get returns one selection by name.
func (r *Recorder) Get(name string) (Selection, bool) {
	sel, ok := r.byName[name]
	if !ok {
		return Selection{}, false
	}
	return *sel, true
}
