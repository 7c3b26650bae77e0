package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/csvql/internal/parser"
	"github.com/leengari/csvql/internal/parser/ast"
	"github.com/leengari/csvql/internal/value"
)

func TestParse_ProjectionAndGreaterFilter(t *testing.T) {
	query, err := parser.Parse(`PROJECT col1, col2 FILTER col3 > "value"`)
	require.NoError(t, err)

	assert.Equal(t, &ast.Query{
		Columns: []string{"col1", "col2"},
		Filter: &ast.Filter{
			Column: "col3",
			Op:     ast.Greater,
			Value:  value.Text("value"),
		},
	}, query)
}

func TestParse_EqualFilterWithIntegerValue(t *testing.T) {
	query, err := parser.Parse("PROJECT a FILTER b = 9")
	require.NoError(t, err)

	require.NotNil(t, query.Filter)
	assert.Equal(t, ast.Equal, query.Filter.Op)
	assert.Equal(t, value.Integer(9), query.Filter.Value)
}

func TestParse_ProjectionOnly(t *testing.T) {
	query, err := parser.Parse("PROJECT col1, col2, col3")
	require.NoError(t, err)

	assert.Equal(t, []string{"col1", "col2", "col3"}, query.Columns)
	assert.Nil(t, query.Filter)
}

func TestParse_SingleColumn(t *testing.T) {
	query, err := parser.Parse("PROJECT only")
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, query.Columns)
}

func TestParse_BareTextFilterValue(t *testing.T) {
	query, err := parser.Parse("PROJECT a FILTER a > bbb")
	require.NoError(t, err)
	assert.Equal(t, value.Text("bbb"), query.Filter.Value)
}

func TestParse_QuotedDigitsForceText(t *testing.T) {
	query, err := parser.Parse(`PROJECT a FILTER b = "9"`)
	require.NoError(t, err)
	assert.Equal(t, value.Text("9"), query.Filter.Value)
}

func TestParse_UnknownLeadingKeyword(t *testing.T) {
	_, err := parser.Parse("SELECT a")
	var perr *parser.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Error(), "PROJECT")
}

func TestParse_EmptyProjectionList(t *testing.T) {
	_, err := parser.Parse("PROJECT")
	var perr *parser.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Error(), "column name")
}

func TestParse_DanglingComma(t *testing.T) {
	_, err := parser.Parse("PROJECT a, FILTER b = 1")
	var perr *parser.ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParse_MissingFilterOperator(t *testing.T) {
	_, err := parser.Parse("PROJECT a FILTER b 5")
	var perr *parser.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Error(), "> or =")
}

func TestParse_MissingFilterValue(t *testing.T) {
	_, err := parser.Parse("PROJECT a FILTER b =")
	var perr *parser.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Error(), "filter value")
}

func TestParse_TrailingInput(t *testing.T) {
	_, err := parser.Parse("PROJECT a FILTER b = 1 extra")
	var perr *parser.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Error(), "trailing")
}

func TestParse_OverflowingFilterValue(t *testing.T) {
	_, err := parser.Parse("PROJECT a FILTER b = 18446744073709551616")
	var perr *parser.ParseError
	require.ErrorAs(t, err, &perr)
}
