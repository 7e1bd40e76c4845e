// Package calc evaluates keypad expressions: decimal literals joined by the
// four basic operators, with optional unary signs. Nothing else is accepted.
package calc

import (
	"fmt"
	"strings"

	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/domain"
	"github.com/shopspring/decimal"
)

type tokenKind int

const (
	tokenNumber tokenKind = iota
	tokenOperator
)

type token struct {
	kind  tokenKind
	value decimal.Decimal
	op    byte
	pos   int
}

// Evaluate parses and evaluates expr with the usual precedence: * and / bind
// tighter than + and -, and operators of equal precedence associate left.
func Evaluate(expr string) (decimal.Decimal, error) {
	tokens, err := tokenize(expr)
	if err != nil {
		return decimal.Zero, err
	}
	if len(tokens) == 0 {
		return decimal.Zero, fmt.Errorf("%w: expression is empty", domain.ErrInvalidExpression)
	}

	p := &parser{tokens: tokens}
	result, err := p.parseSum()
	if err != nil {
		return decimal.Zero, err
	}
	if p.pos < len(p.tokens) {
		return decimal.Zero, fmt.Errorf("%w: unexpected token at position %d", domain.ErrInvalidExpression, p.tokens[p.pos].pos)
	}

	return result, nil
}

// Format renders a result the way the keypad displays it: no exponent and no
// trailing fraction zeros.
func Format(value decimal.Decimal) string {
	return value.String()
}

func tokenize(expr string) ([]token, error) {
	var tokens []token
	for i := 0; i < len(expr); {
		ch := expr[i]
		switch {
		case ch == ' ' || ch == '\t':
			i++
		case ch == '+' || ch == '-' || ch == '*' || ch == '/':
			tokens = append(tokens, token{kind: tokenOperator, op: ch, pos: i})
			i++
		case isDigit(ch) || ch == '.':
			start := i
			dots := 0
			for i < len(expr) && (isDigit(expr[i]) || expr[i] == '.') {
				if expr[i] == '.' {
					dots++
				}
				i++
			}
			literal := expr[start:i]
			if dots > 1 || literal == "." {
				return nil, fmt.Errorf("%w: malformed number %q", domain.ErrInvalidExpression, literal)
			}
			if strings.HasPrefix(literal, ".") {
				literal = "0" + literal
			}
			literal = strings.TrimSuffix(literal, ".")
			value, err := decimal.NewFromString(literal)
			if err != nil {
				return nil, fmt.Errorf("%w: malformed number %q", domain.ErrInvalidExpression, expr[start:i])
			}
			tokens = append(tokens, token{kind: tokenNumber, value: value, pos: start})
		default:
			return nil, fmt.Errorf("%w: unexpected character %q at position %d", domain.ErrInvalidExpression, ch, i)
		}
	}
	return tokens, nil
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) parseSum() (decimal.Decimal, error) {
	left, err := p.parseProduct()
	if err != nil {
		return decimal.Zero, err
	}
	for p.peekOperator('+', '-') {
		op := p.next().op
		right, err := p.parseProduct()
		if err != nil {
			return decimal.Zero, err
		}
		if op == '+' {
			left = left.Add(right)
		} else {
			left = left.Sub(right)
		}
	}
	return left, nil
}

func (p *parser) parseProduct() (decimal.Decimal, error) {
	left, err := p.parseUnary()
	if err != nil {
		return decimal.Zero, err
	}
	for p.peekOperator('*', '/') {
		op := p.next().op
		right, err := p.parseUnary()
		if err != nil {
			return decimal.Zero, err
		}
		if op == '*' {
			left = left.Mul(right)
			continue
		}
		if right.IsZero() {
			return decimal.Zero, fmt.Errorf("%w: division by zero", domain.ErrInvalidExpression)
		}
		left = left.Div(right)
	}
	return left, nil
}

func (p *parser) parseUnary() (decimal.Decimal, error) {
	if p.peekOperator('+', '-') {
		op := p.next().op
		operand, err := p.parseUnary()
		if err != nil {
			return decimal.Zero, err
		}
		if op == '-' {
			return operand.Neg(), nil
		}
		return operand, nil
	}

	if p.pos >= len(p.tokens) {
		return decimal.Zero, fmt.Errorf("%w: expression ends with an operator", domain.ErrInvalidExpression)
	}
	tok := p.next()
	if tok.kind != tokenNumber {
		return decimal.Zero, fmt.Errorf("%w: unexpected %q at position %d", domain.ErrInvalidExpression, tok.op, tok.pos)
	}
	return tok.value, nil
}

func (p *parser) peekOperator(ops ...byte) bool {
	if p.pos >= len(p.tokens) || p.tokens[p.pos].kind != tokenOperator {
		return false
	}
	for _, op := range ops {
		if p.tokens[p.pos].op == op {
			return true
		}
	}
	return false
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}
