package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mandag122/WeeVora/internal/models"
)

func TestWriteDiagnosticsText(t *testing.T) {
	var buf bytes.Buffer
	err := writeDiagnostics(&buf, "text", []models.Diagnostic{
		{Table: "Camps", RecordID: "rec1", Field: "Age Group", Message: "age min 12 is greater than max 5"},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Camps\trec1\tAge Group\t")
	assert.Contains(t, buf.String(), "1 problems")

	buf.Reset()
	require.NoError(t, writeDiagnostics(&buf, "", nil))
	assert.Equal(t, "no problems found\n", buf.String())
}

func TestWriteDiagnosticsYAML(t *testing.T) {
	var buf bytes.Buffer
	err := writeDiagnostics(&buf, "yaml", []models.Diagnostic{
		{Table: "Registration_Options", RecordID: "recOpt", Field: "price", Message: "entry 2: invalid price \"abc\""},
	})
	require.NoError(t, err)

	var out struct {
		Diagnostics []models.Diagnostic `yaml:"diagnostics"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Diagnostics, 1)
	assert.Equal(t, "recOpt", out.Diagnostics[0].RecordID)
	assert.Equal(t, "price", out.Diagnostics[0].Field)
}

func TestWriteDiagnosticsUnknownFormat(t *testing.T) {
	err := writeDiagnostics(&bytes.Buffer{}, "xml", nil)
	assert.Error(t, err)
}
