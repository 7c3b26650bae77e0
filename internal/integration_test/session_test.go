package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/csvql/internal/engine"
	"github.com/leengari/csvql/internal/index"
	"github.com/leengari/csvql/internal/table"
)

// Exercises the full session lifecycle: file on disk → loaded table →
// indices → engine → queries.
func TestLoadFileAndQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	content := "name,age,city\nalice,30,oslo\nbob,25,lima\ncarol,30,kyiv\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tbl, err := table.LoadFile(path, nil)
	require.NoError(t, err)
	eng := engine.New(tbl, index.Build(tbl, nil))

	result, err := eng.Run("PROJECT name, city FILTER age = 30")
	require.NoError(t, err)

	got := make([][]string, len(result.Rows))
	for i, row := range result.Rows {
		got[i] = []string{row[0].String(), row[1].String()}
	}
	assert.Equal(t, [][]string{
		{"alice", "oslo"},
		{"carol", "kyiv"},
	}, got)
}

func TestQuotedValueTypingEndToEnd(t *testing.T) {
	// "30" is text, 30 is an integer; an integer column matches only the
	// unquoted form
	input := "name,age\nalice,30\nbob,25\n"
	tbl, err := table.Load(strings.NewReader(input), nil)
	require.NoError(t, err)
	eng := engine.New(tbl, index.Build(tbl, nil))

	quoted, err := eng.Run(`PROJECT name FILTER age = "30"`)
	require.NoError(t, err)
	assert.Empty(t, quoted.Rows)

	bare, err := eng.Run("PROJECT name FILTER age = 30")
	require.NoError(t, err)
	require.Len(t, bare.Rows, 1)
	assert.Equal(t, "alice", bare.Rows[0][0].String())
}

func TestReplStyleErrorRecovery(t *testing.T) {
	// A failed query must not poison the session state for later queries
	input := "a,b\n1,x\n2,y\n"
	tbl, err := table.Load(strings.NewReader(input), nil)
	require.NoError(t, err)
	eng := engine.New(tbl, index.Build(tbl, nil))

	_, err = eng.Run("PROJECT missing")
	require.Error(t, err)

	result, err := eng.Run("PROJECT b FILTER a > 1")
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "y", result.Rows[0][0].String())
}
