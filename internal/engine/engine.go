package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/leengari/csvql/internal/index"
	"github.com/leengari/csvql/internal/parser"
	"github.com/leengari/csvql/internal/parser/lexer"
	"github.com/leengari/csvql/internal/table"
)

// Engine is the session state for one loaded table: the table itself, its
// per-column indices, and any registered observers. Everything it holds is
// read-only after construction, so a single Engine may serve any number of
// concurrent queries.
type Engine struct {
	table     *table.Table
	indices   index.Indices
	observers []Observer
}

// New creates an Engine over a loaded table and its indices
func New(t *table.Table, indices index.Indices) *Engine {
	return &Engine{
		table:     t,
		indices:   indices,
		observers: make([]Observer, 0),
	}
}

// Table returns the loaded table
func (e *Engine) Table() *table.Table {
	return e.table
}

// Run processes one query string end to end: tokenize, parse, evaluate.
// Each run carries a fresh query ID through the lifecycle events.
func (e *Engine) Run(input string) (*ResultSet, error) {
	queryID := uuid.New().String()

	// 1. Tokenize
	e.notify(Event{Type: EventLexStart, QueryID: queryID, Data: input})
	tokens, err := lexer.Tokenize(input)
	if err != nil {
		return nil, fmt.Errorf("lexer error: %w", err)
	}
	e.notify(Event{Type: EventLexEnd, QueryID: queryID, Data: len(tokens)})

	// 2. Parse
	e.notify(Event{Type: EventParseStart, QueryID: queryID})
	p := parser.New(tokens)
	query, err := p.Parse()
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	e.notify(Event{Type: EventParseEnd, QueryID: queryID, Data: query.String()})

	// 3. Evaluate
	e.notify(Event{Type: EventExecStart, QueryID: queryID})
	result, err := Evaluate(query, e.table, e.indices)
	if err != nil {
		return nil, fmt.Errorf("execution error: %w", err)
	}
	e.notify(Event{Type: EventExecEnd, QueryID: queryID, Data: map[string]interface{}{
		"rows_returned": len(result.Rows),
	}})

	return result, nil
}

// RunBatch evaluates several queries concurrently against the shared
// read-only table and indices. Results align with the input slice. The
// first failing query cancels the batch and its error is returned.
func (e *Engine) RunBatch(ctx context.Context, queries []string) ([]*ResultSet, error) {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]*ResultSet, len(queries))

	for i, input := range queries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := e.Run(input)
			if err != nil {
				return fmt.Errorf("query %d: %w", i, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// AddObserver registers an observer to receive lifecycle events
func (e *Engine) AddObserver(observer Observer) {
	e.observers = append(e.observers, observer)
}

// RemoveObserver unregisters an observer
func (e *Engine) RemoveObserver(observer Observer) {
	for i, o := range e.observers {
		if o == observer {
			e.observers = append(e.observers[:i], e.observers[i+1:]...)
			return
		}
	}
}

// notify sends an event to all registered observers
func (e *Engine) notify(event Event) {
	event.Timestamp = time.Now()
	for _, observer := range e.observers {
		observer.OnEvent(event)
	}
}
