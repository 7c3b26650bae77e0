package network

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"

	"github.com/leengari/csvql/internal/engine"
)

type Request struct {
	Query string `json:"query"`
}

type Response struct {
	Columns []string   `json:"columns,omitempty"`
	Rows    [][]string `json:"rows,omitempty"`
	Error   string     `json:"error,omitempty"`
}

// Start binds the TCP query server on the given port and serves until the
// listener fails
func Start(port int, eng *engine.Engine) error {
	addr := fmt.Sprintf(":%d", port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind to port %d: %w", port, err)
	}
	defer listener.Close()

	slog.Info("Running on port", "port", port)
	return Serve(listener, eng)
}

// Serve accepts connections on an existing listener; one goroutine per
// connection. The engine is read-only, so all connections share it.
func Serve(listener net.Listener, eng *engine.Engine) error {
	for {
		conn, err := listener.Accept()
		if err != nil {
			return err
		}
		go handleConnection(conn, eng)
	}
}

func handleConnection(conn net.Conn, eng *engine.Engine) {
	defer conn.Close()

	// Use Decoder instead of Scanner for network streams
	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)

	for {
		var req Request
		// Decode directly from the connection
		if err := decoder.Decode(&req); err != nil {
			if err == io.EOF {
				return // Connection closed gracefully
			}
			slog.Error("decode error", "error", err)

			// Send error back to client
			_ = encoder.Encode(&Response{
				Error: fmt.Sprintf("Invalid request format: %v", err),
			})
			return
		}

		if req.Query == "exit" || req.Query == "\\q" {
			return
		}

		result, err := eng.Run(req.Query)
		if err != nil {
			// Return error as a Response object; the session continues
			if encodeErr := encoder.Encode(&Response{Error: err.Error()}); encodeErr != nil {
				slog.Error("encode error", "error", encodeErr)
				return
			}
			continue
		}

		if err := encoder.Encode(toResponse(result)); err != nil {
			slog.Error("encode error", "error", err)
			return
		}
	}
}

func toResponse(result *engine.ResultSet) *Response {
	rows := make([][]string, len(result.Rows))
	for i, row := range result.Rows {
		fields := make([]string, len(row))
		for j, v := range row {
			fields[j] = v.String()
		}
		rows[i] = fields
	}
	return &Response{Columns: result.Columns, Rows: rows}
}
