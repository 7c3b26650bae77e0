package parser

import (
	"fmt"

	"github.com/leengari/csvql/internal/parser/ast"
	"github.com/leengari/csvql/internal/parser/lexer"
	"github.com/leengari/csvql/internal/value"
)

// ParseError reports malformed query text; Column is the 1-based position
// of the offending token (0 when the input ended early)
type ParseError struct {
	Column int
	Reason string
}

func (e *ParseError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("syntax error at column %d: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("syntax error: %s", e.Reason)
}

type Parser struct {
	tokens  []lexer.Token
	curPos  int
	curTok  lexer.Token
	peekTok lexer.Token
}

func New(tokens []lexer.Token) *Parser {
	p := &Parser{tokens: tokens, curPos: 0}
	// Read two tokens to set curTok and peekTok
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	if p.curPos < len(p.tokens) {
		p.peekTok = p.tokens[p.curPos]
		p.curPos++
	} else {
		p.peekTok = lexer.Token{Type: lexer.EOF}
	}
}

// Parse consumes the token stream as a complete query:
//
//	PROJECT <col>[, <col>...] [FILTER <col> (> | =) <value>]
//
// Trailing tokens after a complete parse are a syntax error.
func (p *Parser) Parse() (*ast.Query, error) {
	if p.curTok.Type != lexer.PROJECT {
		return nil, &ParseError{
			Column: p.curTok.Column,
			Reason: fmt.Sprintf("expected PROJECT, got %q", p.curTok.Literal),
		}
	}
	p.nextToken()

	columns, err := p.parseColumnList()
	if err != nil {
		return nil, err
	}

	query := &ast.Query{Columns: columns}

	if p.curTok.Type == lexer.FILTER {
		p.nextToken()
		filter, err := p.parseFilter()
		if err != nil {
			return nil, err
		}
		query.Filter = filter
	}

	if p.curTok.Type != lexer.EOF {
		return nil, &ParseError{
			Column: p.curTok.Column,
			Reason: fmt.Sprintf("unexpected trailing input %q", p.curTok.Literal),
		}
	}

	return query, nil
}

func (p *Parser) parseColumnList() ([]string, error) {
	if p.curTok.Type != lexer.IDENTIFIER {
		return nil, &ParseError{
			Column: p.curTok.Column,
			Reason: "expected at least one column name after PROJECT",
		}
	}

	columns := []string{p.curTok.Literal}
	p.nextToken()

	for p.curTok.Type == lexer.COMMA {
		p.nextToken()
		if p.curTok.Type != lexer.IDENTIFIER {
			return nil, &ParseError{
				Column: p.curTok.Column,
				Reason: "expected column name after comma",
			}
		}
		columns = append(columns, p.curTok.Literal)
		p.nextToken()
	}

	return columns, nil
}

func (p *Parser) parseFilter() (*ast.Filter, error) {
	if p.curTok.Type != lexer.IDENTIFIER {
		return nil, &ParseError{
			Column: p.curTok.Column,
			Reason: "expected column name after FILTER",
		}
	}
	column := p.curTok.Literal
	p.nextToken()

	var op ast.Operator
	switch p.curTok.Type {
	case lexer.GT:
		op = ast.Greater
	case lexer.EQUALS:
		op = ast.Equal
	default:
		return nil, &ParseError{
			Column: p.curTok.Column,
			Reason: fmt.Sprintf("expected > or = in filter, got %q", p.curTok.Literal),
		}
	}
	p.nextToken()

	v, err := p.parseFilterValue()
	if err != nil {
		return nil, err
	}

	return &ast.Filter{Column: column, Op: op, Value: v}, nil
}

// parseFilterValue types the filter operand. Bare all-digit tokens become
// integers; everything else becomes text. Double quotes force text even
// when the quoted content is all digits.
func (p *Parser) parseFilterValue() (value.Value, error) {
	tok := p.curTok
	switch tok.Type {
	case lexer.STRING:
		p.nextToken()
		return value.Text(tok.Literal), nil
	case lexer.NUMBER, lexer.IDENTIFIER:
		v, err := value.Parse(tok.Literal)
		if err != nil {
			return value.Value{}, &ParseError{Column: tok.Column, Reason: err.Error()}
		}
		p.nextToken()
		return v, nil
	default:
		return value.Value{}, &ParseError{
			Column: tok.Column,
			Reason: "expected filter value after operator",
		}
	}
}

// Parse is the package-level convenience: tokenize and parse in one call
func Parse(input string) (*ast.Query, error) {
	tokens, err := lexer.Tokenize(input)
	if err != nil {
		return nil, err
	}
	return New(tokens).Parse()
}
