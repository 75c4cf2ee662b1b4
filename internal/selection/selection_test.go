package selection

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamer(t *testing.T) {
	n := NewNamer("")
	assert.Equal(t, DefaultTemplate, n.Template())

	assert.Equal(t, "ss-re-1-KTGT", n.Name("re", "KTGT"))
	assert.Equal(t, "ss-local-2-GT4A0", n.Name("local", "(GT{,4}A.0)"))
	assert.Equal(t, "ss-global-3-ABCDEFGHIJ", n.Name("global", "ABCDEFGHIJKLMN"))
}

func TestNamerCounterOnlyWithIDToken(t *testing.T) {
	n := NewNamer("hit_{method}_{target}")
	assert.Equal(t, "hit_re_KT", n.Name("re", "KT"))
	assert.Equal(t, "hit_re_KT", n.Name("re", "KT"))

	withID := NewNamer("m{id}")
	assert.Equal(t, "m1", withID.Name("re", "A"))
	assert.Equal(t, "m2", withID.Name("re", "A"))

	// Sessions do not share counters.
	assert.Equal(t, "m1", NewNamer("m{id}").Name("re", "A"))
}

func TestNamerUnknownToken(t *testing.T) {
	n := NewNamer("{prefix}-{target}")
	assert.Equal(t, "prefix-KT", n.Name("re", "KT"))
}

func TestResidueExpr(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want string
	}{
		{"single", []string{"7"}, "7"},
		{"run", []string{"10", "11", "12", "13"}, "10-13"},
		{"run and gap", []string{"10", "11", "12", "15"}, "10-12+15"},
		{"insertion codes", []string{"51", "52", "52A", "53"}, "51-52+52A+53"},
		{"negative", []string{"-2", "-1", "0", "1"}, `\-2-1`},
		{"descending", []string{"5", "4"}, "5+4"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResidueExpr(tt.ids))
		})
	}
}

func TestPyMOLWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewPyMOLWriter(&buf)

	require.NoError(t, w.CreateEmpty("ss-re-1-KTG"))
	require.NoError(t, w.Extend("ss-re-1-KTG", "1ABC", "A", []string{"11", "12", "13"}))
	require.NoError(t, w.Extend("ss-re-1-KTG", "1ABC", "B", nil))
	require.NoError(t, w.Extend("ss-re-1-KTG", "2XYZ", "B", []string{"4"}))

	assert.Equal(t, "select ss-re-1-KTG, none\n"+
		"select ss-re-1-KTG, ss-re-1-KTG | /1ABC//A/11-13\n"+
		"select ss-re-1-KTG, ss-re-1-KTG | /2XYZ//B/4\n", buf.String())

	assert.Error(t, w.CreateEmpty(""))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestPyMOLWriterError(t *testing.T) {
	w := NewPyMOLWriter(failingWriter{})
	assert.Error(t, w.CreateEmpty("x"))
	assert.Error(t, w.Extend("x", "M", "A", []string{"1"}))
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()

	require.Error(t, r.Extend("missing", "M", "A", []string{"1"}))

	require.NoError(t, r.CreateEmpty("first"))
	require.NoError(t, r.Extend("first", "M", "A", []string{"1", "2"}))
	require.NoError(t, r.CreateEmpty("second"))
	require.NoError(t, r.Extend("first", "M", "B", []string{"9"}))

	sels := r.Selections()
	require.Len(t, sels, 2)
	assert.Equal(t, "first", sels[0].Name)
	assert.Equal(t, []Entry{
		{Model: "M", Chain: "A", IDs: []string{"1", "2"}},
		{Model: "M", Chain: "B", IDs: []string{"9"}},
	}, sels[0].Entries)
	assert.Empty(t, sels[1].Entries)

	require.NoError(t, r.CreateEmpty("first"))
	sel, ok := r.Get("first")
	require.True(t, ok)
	assert.Empty(t, sel.Entries)
	assert.Len(t, r.Selections(), 2)

	_, ok = r.Get("nope")
	assert.False(t, ok)
	assert.Error(t, r.CreateEmpty(""))
}

var (
	_ Sink = (*Recorder)(nil)
	_ Sink = (*PyMOLWriter)(nil)
)
