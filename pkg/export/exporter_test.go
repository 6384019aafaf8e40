package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() Table {
	return Table{
		Title:   "Subscribers",
		Headers: []string{"Email", "Active"},
		Rows:    [][]string{{"a@example.com", "yes"}, {"b,c@example.com", "no"}},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleTable())
	require.NoError(t, err)
	assert.Equal(t, "Email,Active\na@example.com,yes\n\"b,c@example.com\",no\n", string(out))
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleTable())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderRejectsRaggedRows(t *testing.T) {
	table := Table{Headers: []string{"Email"}, Rows: [][]string{{"a", "b"}}}
	_, err := NewCSVExporter().Render(table)
	assert.Error(t, err)
	_, err = NewPDFExporter().Render(Table{})
	assert.Error(t, err)
}
