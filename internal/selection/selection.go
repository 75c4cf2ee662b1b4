// Package selection turns matches into named residue selections.
package selection

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultTemplate is the selection name template used when none is given.
const DefaultTemplate = "ss-{method}-{id}-{target}"

// Sink receives selections. CreateEmpty starts (or resets) a named
// selection and Extend adds the residues of one chain to it.
type Sink interface {
	CreateEmpty(name string) error
	Extend(name, model, chain string, ids []string) error
}

var (
	templateToken = regexp.MustCompile(`\{(\w+)\}`)
	nonWord       = regexp.MustCompile(`\W`)
)

// Namer expands selection name templates. Supported tokens are {method},
// {target} (the first 10 word characters of the target) and {id}, a counter
// that only advances for templates containing {id}. Any other token is
// replaced by its own name.
//
// A Namer belongs to one search session.
type Namer struct {
	template string
	id       int
}

// NewNamer creates a namer for template, or DefaultTemplate when empty.
func NewNamer(template string) *Namer {
	if strings.TrimSpace(template) == "" {
		template = DefaultTemplate
	}
	return &Namer{template: template}
}

// Template returns the template in use.
func (n *Namer) Template() string {
	return n.template
}

// Name returns the selection name for one target.
func (n *Namer) Name(method, target string) string {
	if strings.Contains(n.template, "{id}") {
		n.id++
	}

	short := nonWord.ReplaceAllString(target, "")
	if len(short) > 10 {
		short = short[:10]
	}

	return templateToken.ReplaceAllStringFunc(n.template, func(tok string) string {
		switch key := tok[1 : len(tok)-1]; key {
		case "method":
			return method
		case "target":
			return short
		case "id":
			return fmt.Sprint(n.id)
		default:
			return key
		}
	})
}
