// Package pattern scans chain sequences with regular expressions.
//
// Targets are RE2 expressions matched case-insensitively. For nucleic acid
// searches the IUPAC ambiguity codes are expanded into character classes
// before compilation.
package pattern

import (
	"regexp"
	"strings"

	"github.com/aria-lang/subseq-go/internal/sequence"
)

// nucleicCodes lists the members of each ambiguity code.
var nucleicCodes = map[byte]string{
	'R': "AG",
	'Y': "CT",
	'S': "GC",
	'W': "AT",
	'K': "GT",
	'M': "AC",
	'B': "CGT",
	'D': "AGT",
	'H': "ACT",
	'N': "ACGTU",
}

// Normalize cleans a target as typed on a command line: surrounding quotes
// and one enclosing pair of parentheses are removed, unescaped letters are
// upper-cased and the "{,n}" quantifier is rewritten to "{0,n}".
func Normalize(target string) string {
	t := strings.Trim(strings.TrimSpace(target), `'"`)
	if enclosed(t) {
		t = t[1 : len(t)-1]
	}

	b := []byte(t)
	for i := 0; i < len(b); i++ {
		if b[i] == '\\' {
			i++
			continue
		}
		if 'a' <= b[i] && b[i] <= 'z' {
			b[i] -= 'a' - 'A'
		}
	}
	return strings.ReplaceAll(string(b), "{,", "{0,")
}

// enclosed reports whether t is wrapped in one pair of matching
// parentheses, as in "(AB)" but not "(A)(B)".
func enclosed(t string) bool {
	if len(t) < 2 || t[0] != '(' || t[len(t)-1] != ')' {
		return false
	}
	depth := 0
	for i := 0; i < len(t); i++ {
		switch t[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(t)-1 {
				return false
			}
		}
	}
	return depth == 0
}

// ExpandNucleic rewrites the ambiguity codes R Y S W K M B D H N into
// character classes in a single pass. Outside a bracket expression R becomes
// "[AG]" and N becomes "."; inside one the code contributes its members.
// Escaped characters are copied unchanged.
func ExpandNucleic(p string) string {
	var b strings.Builder
	b.Grow(len(p) * 2)

	inClass := false
	for i := 0; i < len(p); i++ {
		c := p[i]
		switch {
		case c == '\\' && i+1 < len(p):
			b.WriteByte(c)
			b.WriteByte(p[i+1])
			i++
			continue
		case c == '[' && !inClass:
			inClass = true
		case c == ']' && inClass:
			inClass = false
		}

		members, ok := nucleicCodes[upper(c)]
		switch {
		case !ok:
			b.WriteByte(c)
		case inClass:
			b.WriteString(members)
		case upper(c) == 'N':
			b.WriteByte('.')
		default:
			b.WriteString("[" + members + "]")
		}
	}
	return b.String()
}

func upper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// Matcher is a compiled target.
type Matcher struct {
	Target   string
	Alphabet sequence.Alphabet
	re       *regexp.Regexp
}

// Compile normalizes target, expands ambiguity codes for nucleic acids and
// compiles it case-insensitively. A syntax error is returned as a
// *PatternSyntaxError.
func Compile(target string, alphabet sequence.Alphabet) (*Matcher, error) {
	expr := Normalize(target)
	if alphabet == sequence.NucleicAcids {
		expr = ExpandNucleic(expr)
	}

	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return nil, &PatternSyntaxError{Target: target, Err: err}
	}
	return &Matcher{Target: target, Alphabet: alphabet, re: re}, nil
}

// Expr returns the expression handed to the regexp engine.
func (m *Matcher) Expr() string {
	return m.re.String()
}

// Hit is one match inside a chain. Start and End are the 0-based half-open
// span in the chain sequence; IDs holds one residue id per matched symbol.
type Hit struct {
	Model string
	Chain string
	Start int
	End   int
	IDs   []string
}

// FindAll returns the successive non-overlapping matches in one chain,
// leftmost first. Empty matches are skipped and do not count towards limit;
// limit <= 0 means no limit.
func (m *Matcher) FindAll(cs *sequence.ChainSequence, limit int) []Hit {
	var hits []Hit
	for _, loc := range m.re.FindAllStringIndex(cs.Sequence, -1) {
		start, end := loc[0], loc[1]
		if end == start {
			continue
		}
		if limit > 0 && len(hits) == limit {
			break
		}
		hits = append(hits, Hit{
			Model: cs.Model,
			Chain: cs.Chain,
			Start: start,
			End:   end,
			IDs:   append([]string(nil), cs.IDs[start:end]...),
		})
	}
	return hits
}

// Search scans every chain of the store in order. With firstOnly the whole
// sweep stops at the first hit. A nil result means nothing matched.
func (m *Matcher) Search(store *sequence.Store, firstOnly bool) []Hit {
	limit := 0
	if firstOnly {
		limit = 1
	}

	var hits []Hit
	store.Each(func(cs *sequence.ChainSequence) bool {
		found := m.FindAll(cs, limit)
		hits = append(hits, found...)
		return !firstOnly || len(found) == 0
	})
	return hits
}
