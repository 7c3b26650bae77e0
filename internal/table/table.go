package table

import (
	"fmt"
	"strings"

	"github.com/leengari/csvql/internal/value"
)

// ColumnType is the inferred storage type of a column
type ColumnType string

const (
	ColumnTypeInteger ColumnType = "INTEGER"
	ColumnTypeText    ColumnType = "TEXT"
)

// Column pairs a name with its inferred type. Names are unique within a table.
type Column struct {
	Name string
	Type ColumnType
}

// Row holds one value per column, positionally aligned with the column list
type Row []value.Value

// Table is typed columnar storage over row-major backing. It is built once
// by Load and never mutated afterwards; row order is source order and is
// semantically meaningful.
type Table struct {
	Columns []Column
	Rows    []Row
}

// ColumnNotFoundError reports a reference to a column the table does not
// have, along with every column it does have, in declaration order.
type ColumnNotFoundError struct {
	Name      string
	Available []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found (available columns: %s)",
		e.Name, strings.Join(e.Available, ", "))
}

// ColumnPosition resolves a column name to its position in the column list
func (t *Table) ColumnPosition(name string) (int, error) {
	for i, col := range t.Columns {
		if col.Name == name {
			return i, nil
		}
	}
	return 0, &ColumnNotFoundError{Name: name, Available: t.ColumnNames()}
}

// ColumnNames returns the column names in declaration order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}
