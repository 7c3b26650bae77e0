package repl_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/csvql/internal/engine"
	"github.com/leengari/csvql/internal/index"
	"github.com/leengari/csvql/internal/repl"
	"github.com/leengari/csvql/internal/table"
)

func TestPrintResult(t *testing.T) {
	input := "column1,column2,column3\nbbb,3,b\naaa,1,10\nccc,2,11\neee,2,9\nddd,1,5\n"
	tbl, err := table.Load(strings.NewReader(input), nil)
	require.NoError(t, err)
	eng := engine.New(tbl, index.Build(tbl, nil))

	result, err := eng.Run(`PROJECT column1, column2 FILTER column1 > "bbb"`)
	require.NoError(t, err)

	var buf bytes.Buffer
	repl.PrintResult(&buf, result)

	assert.Equal(t,
		"column1,column2\n"+
			"---,---\n"+
			"ccc,2\n"+
			"ddd,1\n"+
			"eee,2\n",
		buf.String())
}

func TestPrintResult_EmptyResultSet(t *testing.T) {
	input := "a,b\n1,2\n"
	tbl, err := table.Load(strings.NewReader(input), nil)
	require.NoError(t, err)
	eng := engine.New(tbl, index.Build(tbl, nil))

	result, err := eng.Run("PROJECT a FILTER b > 9")
	require.NoError(t, err)

	var buf bytes.Buffer
	repl.PrintResult(&buf, result)

	// Header and separator only
	assert.Equal(t, "a\n---\n", buf.String())
}
