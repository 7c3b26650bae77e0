package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leengari/csvql/internal/engine"
	"github.com/leengari/csvql/internal/index"
	"github.com/leengari/csvql/internal/logging"
	"github.com/leengari/csvql/internal/network"
	"github.com/leengari/csvql/internal/repl"
	"github.com/leengari/csvql/internal/table"
)

var rootCmd = &cobra.Command{
	Use:   "csvql",
	Short: "Query engine over delimited text files",
	Long: "csvql loads a comma-delimited file into an indexed in-memory table and\n" +
		"evaluates PROJECT/FILTER queries against it.",
}

var replCmd = &cobra.Command{
	Use:   "repl <file.csv>",
	Short: "Start an interactive query session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine(args[0])
		if err != nil {
			return err
		}
		repl.Start(eng)
		return nil
	},
}

var execCmd = &cobra.Command{
	Use:   "exec <file.csv> <query>",
	Short: "Run a single query and print the result",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine(args[0])
		if err != nil {
			return err
		}
		result, err := eng.Run(args[1])
		if err != nil {
			return err
		}
		repl.PrintResult(cmd.OutOrStdout(), result)
		return nil
	},
}

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve <file.csv>",
	Short: "Serve queries over TCP (JSON request/response)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine(args[0])
		if err != nil {
			return err
		}
		// Register logging observer for lifecycle tracing
		eng.AddObserver(engine.NewLoggingObserver())
		return network.Start(servePort, eng)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 4000, "TCP port to listen on")
	rootCmd.AddCommand(replCmd, execCmd, serveCmd)
}

func loadEngine(path string) (*engine.Engine, error) {
	tbl, err := table.LoadFile(path, slog.Default())
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	indices := index.Build(tbl, slog.Default())
	return engine.New(tbl, indices), nil
}

func main() {
	logger, closeFn := logging.SetupLogger()
	defer closeFn()
	slog.SetDefault(logger)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		closeFn()
		os.Exit(1)
	}
}
