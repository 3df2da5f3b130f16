package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/pstuifzand/rayday/internal/model"
)

// TokenType represents the type of a token in the search query
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenText
	TokenFuzzy  // ~term
	TokenFilter // d:, t:, len:
	TokenRegex  // /pattern/
	TokenAnd    // + (explicit)
	TokenOr     // |
	TokenNot    // -
	TokenLParen // (
	TokenRParen // )
)

// Token represents a single token in the search query
type Token struct {
	Type  TokenType
	Value string
}

// ComparisonOp represents comparison operators
type ComparisonOp string

const (
	OpEqual        ComparisonOp = "="
	OpNotEqual     ComparisonOp = "!="
	OpGreater      ComparisonOp = ">"
	OpGreaterEqual ComparisonOp = ">="
	OpLess         ComparisonOp = "<"
	OpLessEqual    ComparisonOp = "<="
)

// Tokenizer converts a search query string into tokens
type Tokenizer struct {
	input string
	pos   int
}

// NewTokenizer creates a new tokenizer for the given input
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input, pos: 0}
}

// NextToken returns the next token in the input
func (t *Tokenizer) NextToken() Token {
	t.skipWhitespace()

	if t.pos >= len(t.input) {
		return Token{Type: TokenEOF}
	}

	switch ch := t.input[t.pos]; ch {
	case '(':
		t.pos++
		return Token{Type: TokenLParen, Value: "("}
	case ')':
		t.pos++
		return Token{Type: TokenRParen, Value: ")"}
	case '|':
		t.pos++
		return Token{Type: TokenOr, Value: "|"}
	case '+':
		t.pos++
		return Token{Type: TokenAnd, Value: "+"}
	case '-':
		t.pos++
		return Token{Type: TokenNot, Value: "-"}
	case '"':
		return t.readQuotedText()
	case '~':
		return t.readFuzzy()
	case '/':
		return t.readRegex()
	default:
		if isAlpha(ch) {
			return t.readFilter()
		}
		return t.readText()
	}
}

// AllTokens returns all tokens in the input
func (t *Tokenizer) AllTokens() []Token {
	var tokens []Token
	for {
		tok := t.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	return tokens
}

func (t *Tokenizer) skipWhitespace() {
	for t.pos < len(t.input) && (t.input[t.pos] == ' ' || t.input[t.pos] == '\t' || t.input[t.pos] == '\n') {
		t.pos++
	}
}

func (t *Tokenizer) readQuotedText() Token {
	t.pos++ // Skip opening quote
	start := t.pos
	for t.pos < len(t.input) && t.input[t.pos] != '"' {
		t.pos++
	}
	value := t.input[start:t.pos]
	if t.pos < len(t.input) {
		t.pos++ // Skip closing quote
	}
	return Token{Type: TokenText, Value: value}
}

// readFilter reads "name:criteria", or falls back to plain text when there
// is no colon after the identifier
func (t *Tokenizer) readFilter() Token {
	start := t.pos
	for t.pos < len(t.input) && isAlphaNumeric(t.input[t.pos]) {
		t.pos++
	}

	if t.pos < len(t.input) && t.input[t.pos] == ':' {
		ident := t.input[start:t.pos]
		t.pos++
		return Token{Type: TokenFilter, Value: ident + ":" + t.readCriteria()}
	}

	t.pos = start
	return t.readText()
}

func (t *Tokenizer) readCriteria() string {
	start := t.pos
	for t.pos < len(t.input) {
		ch := t.input[t.pos]
		if ch == ' ' || ch == '\t' || ch == '|' || ch == ')' {
			break
		}
		t.pos++
	}
	return t.input[start:t.pos]
}

func (t *Tokenizer) readText() Token {
	start := t.pos
	for t.pos < len(t.input) {
		ch := t.input[t.pos]
		if ch == ' ' || ch == '\t' || ch == '|' || ch == '+' || ch == ')' || ch == '(' {
			break
		}
		t.pos++
	}
	return Token{Type: TokenText, Value: t.input[start:t.pos]}
}

func (t *Tokenizer) readFuzzy() Token {
	t.pos++ // Skip ~
	tok := t.readText()
	if tok.Value == "" {
		return Token{Type: TokenText, Value: "~"}
	}
	return Token{Type: TokenFuzzy, Value: tok.Value}
}

func (t *Tokenizer) readRegex() Token {
	startPos := t.pos
	t.pos++ // Skip opening /
	start := t.pos
	escaped := false

	for t.pos < len(t.input) {
		ch := t.input[t.pos]
		if escaped {
			escaped = false
			t.pos++
			continue
		}
		if ch == '\\' {
			escaped = true
			t.pos++
			continue
		}
		if ch == '/' {
			pattern := t.input[start:t.pos]
			t.pos++ // Skip closing /
			return Token{Type: TokenRegex, Value: pattern}
		}
		t.pos++
	}

	// Unterminated: the rest is the pattern
	pattern := t.input[start:t.pos]
	if pattern == "" {
		t.pos = startPos + 1
		return Token{Type: TokenText, Value: "/"}
	}
	return Token{Type: TokenRegex, Value: pattern}
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isAlphaNumeric(ch byte) bool {
	return isAlpha(ch) || (ch >= '0' && ch <= '9')
}

// Parser converts tokens into a FilterExpr tree
type Parser struct {
	tokens []Token
	pos    int
	loc    *time.Location
}

// NewParser creates a new parser for the given tokens. Dates in filters are
// interpreted in loc.
func NewParser(tokens []Token, loc *time.Location) *Parser {
	return &Parser{tokens: tokens, pos: 0, loc: loc}
}

// ParseQuery parses a complete search query and returns the root expression
func ParseQuery(query string) (FilterExpr, error) {
	return ParseQueryIn(query, time.Local)
}

// ParseQueryIn parses a query, reading dates in loc
func ParseQueryIn(query string, loc *time.Location) (FilterExpr, error) {
	tokens := NewTokenizer(query).AllTokens()

	if len(tokens) == 1 && tokens[0].Type == TokenEOF {
		return NewAlwaysMatchExpr(), nil
	}

	p := NewParser(tokens, loc)
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if p.currentToken().Type != TokenEOF {
		return nil, fmt.Errorf("unexpected token: %s", p.currentToken().Value)
	}

	return expr, nil
}

func (p *Parser) currentToken() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

// Operator precedence: OR < AND < NOT < atoms

func (p *Parser) parseOr() (FilterExpr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.currentToken().Type == TokenOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = NewOrExpr(left, right)
	}

	return left, nil
}

func (p *Parser) parseAnd() (FilterExpr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	for {
		if p.currentToken().Type == TokenAnd {
			p.advance()
		}
		// Implicit AND between adjacent terms
		switch p.currentToken().Type {
		case TokenEOF, TokenRParen, TokenOr:
			return left, nil
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = NewAndExpr(left, right)
	}
}

func (p *Parser) parseNot() (FilterExpr, error) {
	if p.currentToken().Type == TokenNot {
		p.advance()
		expr, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return NewNotExpr(expr), nil
	}

	return p.parseAtom()
}

func (p *Parser) parseAtom() (FilterExpr, error) {
	tok := p.currentToken()
	switch tok.Type {
	case TokenLParen:
		p.advance()
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.currentToken().Type != TokenRParen {
			return nil, fmt.Errorf("expected ')', got %q", p.currentToken().Value)
		}
		p.advance()
		return expr, nil

	case TokenText:
		p.advance()
		return NewTextExpr(tok.Value), nil

	case TokenFuzzy:
		p.advance()
		return NewFuzzyExpr(tok.Value), nil

	case TokenFilter:
		p.advance()
		return p.parseFilterValue(tok.Value)

	case TokenRegex:
		p.advance()
		return NewRegexExpr(tok.Value)

	case TokenEOF:
		return nil, fmt.Errorf("unexpected end of input")

	default:
		return nil, fmt.Errorf("unexpected token: %s", tok.Value)
	}
}

// parseFilterValue converts "name:criteria" into a filter. Unknown names are
// searched for as text.
func (p *Parser) parseFilterValue(value string) (FilterExpr, error) {
	name, criteria, _ := strings.Cut(value, ":")

	switch name {
	case "d", "date":
		op, v, err := parseComparison(criteria)
		if err != nil {
			return nil, err
		}
		day, err := time.ParseInLocation(model.DateFormat, v, p.loc)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", v, err)
		}
		return NewDateFilter(op, day), nil

	case "t", "time":
		op, v, err := parseComparison(criteria)
		if err != nil {
			return nil, err
		}
		clock, err := time.Parse(model.ClockFormat, v)
		if err != nil {
			return nil, fmt.Errorf("invalid time %q: %w", v, err)
		}
		return NewTimeFilter(op, clock.Hour()*60+clock.Minute()), nil

	case "len":
		op, v, err := parseComparison(criteria)
		if err != nil {
			return nil, err
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid duration %q: %w", v, err)
		}
		return NewLengthFilter(op, d), nil

	default:
		return NewTextExpr(value), nil
	}
}

// parseComparison extracts the comparison operator and value from criteria
// Examples: "5" -> ("=", "5"), ">=2025-11-01" -> (">=", "2025-11-01")
func parseComparison(criteria string) (ComparisonOp, string, error) {
	if criteria == "" {
		return "", "", fmt.Errorf("empty criteria")
	}

	ops := []ComparisonOp{OpGreaterEqual, OpLessEqual, OpNotEqual, OpGreater, OpLess, OpEqual}
	for _, op := range ops {
		if strings.HasPrefix(criteria, string(op)) {
			val := criteria[len(op):]
			if val == "" {
				return "", "", fmt.Errorf("missing value after operator %s", op)
			}
			return op, val, nil
		}
	}

	return OpEqual, criteria, nil
}
