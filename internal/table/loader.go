package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/leengari/csvql/internal/value"
)

// LoadError reports a malformed source record. Line is 1-based and counts
// the header line.
type LoadError struct {
	Line   int
	Reason string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load error at line %d: %s", e.Line, e.Reason)
}

// Load materializes a table from comma-delimited text: a header line of
// column names followed by data records. Every record must have exactly as
// many fields as the header. Column types are inferred after the full row
// set is materialized: a column is Integer only if every row's field in
// that position parsed as an integer.
func Load(r io.Reader, logger *slog.Logger) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // field counts validated here, with line context

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &LoadError{Line: 1, Reason: "missing header row"}
	}
	if err != nil {
		return nil, &LoadError{Line: 1, Reason: err.Error()}
	}

	rows, err := parseRows(cr, len(header))
	if err != nil {
		return nil, err
	}

	t := &Table{
		Columns: inferColumns(header, rows),
		Rows:    rows,
	}

	if logger != nil {
		logger.Info("table loaded",
			slog.Int("columns", len(t.Columns)),
			slog.Int("rows", len(t.Rows)),
		)
	}
	return t, nil
}

// LoadFile opens path and loads it as a table
func LoadFile(path string, logger *slog.Logger) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f, logger)
}

func parseRows(cr *csv.Reader, columnCount int) ([]Row, error) {
	var rows []Row
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, &LoadError{Line: line, Reason: err.Error()}
		}
		if len(record) != columnCount {
			return nil, &LoadError{
				Line:   line,
				Reason: fmt.Sprintf("record has %d fields, header has %d columns", len(record), columnCount),
			}
		}

		fields := make(Row, len(record))
		for i, raw := range record {
			v, err := value.Parse(raw)
			if err != nil {
				var perr *value.ParseError
				if errors.As(err, &perr) {
					return nil, &LoadError{Line: line, Reason: perr.Error()}
				}
				return nil, &LoadError{Line: line, Reason: err.Error()}
			}
			fields[i] = v
		}
		rows = append(rows, fields)
	}
}

func inferColumns(header []string, rows []Row) []Column {
	columns := make([]Column, len(header))
	for pos, name := range header {
		columnType := ColumnTypeInteger
		for _, row := range rows {
			if row[pos].Kind() != value.KindInteger {
				columnType = ColumnTypeText
				break
			}
		}
		columns[pos] = Column{Name: name, Type: columnType}
	}
	return columns
}
