package index

import (
	"log/slog"
	"sort"

	"github.com/leengari/csvql/internal/table"
	"github.com/leengari/csvql/internal/value"
)

// Entry pairs a column value with the position of the row it came from
type Entry struct {
	Value value.Value
	Row   int
}

// Index is a sorted projection of one column: entries ordered ascending by
// value. The build uses a stable sort, so entries with equal values keep
// their original row order; EqualTo and GreaterThan results rely on that
// guarantee.
type Index struct {
	Column  string
	Entries []Entry
}

// Indices maps column name to that column's index
type Indices map[string]*Index

// Build constructs one index per column from a fully loaded table
func Build(t *table.Table, logger *slog.Logger) Indices {
	indices := make(Indices, len(t.Columns))

	for pos, col := range t.Columns {
		entries := make([]Entry, len(t.Rows))
		for rowPos, row := range t.Rows {
			entries[rowPos] = Entry{Value: row[pos], Row: rowPos}
		}
		sort.SliceStable(entries, func(i, j int) bool {
			return value.Compare(entries[i].Value, entries[j].Value) < 0
		})

		indices[col.Name] = &Index{Column: col.Name, Entries: entries}

		if logger != nil {
			logger.Debug("index built",
				slog.String("column", col.Name),
				slog.Int("entries", len(entries)),
			)
		}
	}

	return indices
}

// GreaterThan returns the positions of all rows whose value compares
// strictly greater than v, in index order. Empty if no entry exceeds v.
func (ix *Index) GreaterThan(v value.Value) []int {
	first := sort.Search(len(ix.Entries), func(i int) bool {
		return value.Compare(ix.Entries[i].Value, v) > 0
	})

	rows := make([]int, 0, len(ix.Entries)-first)
	for _, e := range ix.Entries[first:] {
		rows = append(rows, e.Row)
	}
	return rows
}

// EqualTo returns the positions of all rows whose value equals v, in index
// order. With the stable build that is original row order among ties.
// Empty if no entry matches.
func (ix *Index) EqualTo(v value.Value) []int {
	first := sort.Search(len(ix.Entries), func(i int) bool {
		return value.Compare(ix.Entries[i].Value, v) >= 0
	})

	var rows []int
	for i := first; i < len(ix.Entries) && value.Compare(ix.Entries[i].Value, v) == 0; i++ {
		rows = append(rows, ix.Entries[i].Row)
	}
	return rows
}
