// pkg/output/output_test.go

package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONTo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSONTo(&buf, map[string]int{"failed": 2}))
	assert.Equal(t, "{\n  \"failed\": 2\n}\n", buf.String())
}

func TestJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, JSONToFile(path, []string{"a", "b"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(data))
}

func TestTableWriter(t *testing.T) {
	var buf bytes.Buffer
	err := NewTableTo(&buf).
		WithHeaders("SEVERITY", "COUNT").
		AddRow("failed", "2").
		AddRow("ok", "5").
		Render()
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "SEVERITY")
	assert.Contains(t, lines[0], "COUNT")
	assert.Contains(t, lines[1], "--------")
	assert.Contains(t, lines[2], "failed")
	assert.Contains(t, lines[3], "ok")
}

func TestTableWriter_NoHeaders(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableTo(&buf).AddRow("only", "data").Render())
	assert.NotContains(t, buf.String(), "-")
}
