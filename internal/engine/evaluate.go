package engine

import (
	"fmt"

	"github.com/leengari/csvql/internal/index"
	"github.com/leengari/csvql/internal/parser/ast"
	"github.com/leengari/csvql/internal/table"
	"github.com/leengari/csvql/internal/value"
)

// ResultSet is the ordered output of one query execution
type ResultSet struct {
	Columns []string
	Rows    [][]value.Value
}

// Evaluate runs a structured query against an indexed table.
//
// Row selection comes first: without a filter every row position is selected
// in table order; with a filter the column's index answers the predicate, or
// a full scan does when no index covers the column. Projection then resolves
// each requested column once and emits output rows in selection order — the
// order the index produced, not re-sorted into table order.
//
// Unknown filter or projection columns terminate the query with a
// ColumnNotFoundError; an empty selection is a valid, empty result.
func Evaluate(q *ast.Query, t *table.Table, indices index.Indices) (*ResultSet, error) {
	positions, err := selectPositions(q.Filter, t, indices)
	if err != nil {
		return nil, err
	}

	columnPositions := make([]int, len(q.Columns))
	for i, name := range q.Columns {
		pos, err := t.ColumnPosition(name)
		if err != nil {
			return nil, err
		}
		columnPositions[i] = pos
	}

	rows := make([][]value.Value, 0, len(positions))
	for _, rowPos := range positions {
		out := make([]value.Value, len(columnPositions))
		for i, colPos := range columnPositions {
			out[i] = t.Rows[rowPos][colPos]
		}
		rows = append(rows, out)
	}

	return &ResultSet{Columns: append([]string(nil), q.Columns...), Rows: rows}, nil
}

func selectPositions(f *ast.Filter, t *table.Table, indices index.Indices) ([]int, error) {
	if f == nil {
		positions := make([]int, len(t.Rows))
		for i := range positions {
			positions[i] = i
		}
		return positions, nil
	}

	colPos, err := t.ColumnPosition(f.Column)
	if err != nil {
		return nil, err
	}

	if ix, ok := indices[f.Column]; ok {
		switch f.Op {
		case ast.Greater:
			return ix.GreaterThan(f.Value), nil
		case ast.Equal:
			return ix.EqualTo(f.Value), nil
		default:
			return nil, fmt.Errorf("unsupported filter operator %q", f.Op)
		}
	}

	return scanPositions(f, t, colPos)
}

// scanPositions is the fallback for tables without an index on the filter
// column: a linear pass with the same operator semantics, producing
// positions in original table order.
func scanPositions(f *ast.Filter, t *table.Table, colPos int) ([]int, error) {
	var positions []int
	for rowPos, row := range t.Rows {
		cmp := value.Compare(row[colPos], f.Value)
		var match bool
		switch f.Op {
		case ast.Greater:
			match = cmp > 0
		case ast.Equal:
			match = cmp == 0
		default:
			return nil, fmt.Errorf("unsupported filter operator %q", f.Op)
		}
		if match {
			positions = append(positions, rowPos)
		}
	}
	return positions, nil
}
