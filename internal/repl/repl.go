package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/leengari/csvql/internal/engine"
)

// Start runs the interactive query loop. Per-query failures are reported
// and the session continues; only EOF or an exit command ends it.
func Start(eng *engine.Engine) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("csvql — PROJECT <col>[, <col>...] [FILTER <col> (> | =) <value>]")
	fmt.Println("Type 'exit' or '\\q' to quit.")

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()

		if strings.TrimSpace(line) == "" {
			continue
		}

		if line == "exit" || line == "\\q" {
			break
		}

		if line == "columns" {
			for _, col := range eng.Table().Columns {
				fmt.Printf("  - %s (%s)\n", col.Name, col.Type)
			}
			continue
		}

		result, err := eng.Run(line)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}

		PrintResult(os.Stdout, result)
	}
}

// PrintResult renders a result set: comma-joined header, a separator line,
// then one comma-joined line per row with integers as bare digits and text
// verbatim.
func PrintResult(w io.Writer, result *engine.ResultSet) {
	fmt.Fprintln(w, strings.Join(result.Columns, ","))

	separators := make([]string, len(result.Columns))
	for i := range separators {
		separators[i] = "---"
	}
	fmt.Fprintln(w, strings.Join(separators, ","))

	for _, row := range result.Rows {
		fields := make([]string, len(row))
		for i, v := range row {
			fields[i] = v.String()
		}
		fmt.Fprintln(w, strings.Join(fields, ","))
	}
}
