package ast

import (
	"fmt"
	"strings"

	"github.com/leengari/csvql/internal/value"
)

// Operator is a filter comparison operator
type Operator string

const (
	Greater Operator = ">"
	Equal   Operator = "="
)

// Filter is a single predicate restricting which rows a query selects
type Filter struct {
	Column string
	Op     Operator
	Value  value.Value
}

// Query is the structured form the engine consumes: a projection column
// list plus an optional filter clause.
type Query struct {
	Columns []string
	Filter  *Filter
}

func (q *Query) String() string {
	s := "PROJECT " + strings.Join(q.Columns, ", ")
	if q.Filter != nil {
		s += fmt.Sprintf(" FILTER %s %s %s", q.Filter.Column, q.Filter.Op, q.Filter.Value)
	}
	return s
}
