// Package formula evaluates the restricted arithmetic expressions used by
// material templates. Templates are administrator-supplied, so the grammar
// is deliberately small: numbers, attribute identifiers, + - * /, unary
// minus, parentheses and the min/max/ceil/floor functions. Nothing in an
// expression can reach host capability.
package formula

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

var (
	ErrEmptyExpression = errors.New("empty formula expression")
	ErrNotFinite       = errors.New("formula result is not a finite number")
)

// SyntaxError reports where parsing stopped making sense.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("formula syntax error at position %d: %s", e.Pos, e.Msg)
}

// EvalError reports an evaluation failure (unknown attribute, bad arity,
// division by zero).
type EvalError struct {
	Msg string
}

func (e *EvalError) Error() string {
	return "formula eval error: " + e.Msg
}

// Vars supplies attribute values by identifier. ok=false means the
// identifier is unknown, which fails the evaluation.
type Vars interface {
	Lookup(name string) (float64, bool)
}

// VarMap is the plain map implementation of Vars.
type VarMap map[string]float64

func (m VarMap) Lookup(name string) (float64, bool) {
	v, ok := m[name]
	return v, ok
}

// Expr is a parsed expression, reusable across evaluations.
type Expr struct {
	root node
}

// Parse compiles src against the restricted grammar.
func Parse(src string) (*Expr, error) {
	if strings.TrimSpace(src) == "" {
		return nil, ErrEmptyExpression
	}
	p := &parser{src: src}
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, &SyntaxError{Pos: p.pos, Msg: fmt.Sprintf("unexpected %q", p.src[p.pos])}
	}
	return &Expr{root: root}, nil
}

// Eval evaluates the expression. The result must be finite; NaN and
// infinities are errors so callers can fall back to defaults.
func (e *Expr) Eval(vars Vars) (float64, error) {
	v, err := e.root.eval(vars)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotFinite
	}
	return v, nil
}

// Eval is the one-shot parse-and-evaluate convenience.
func Eval(src string, vars Vars) (float64, error) {
	expr, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return expr.Eval(vars)
}

type node interface {
	eval(vars Vars) (float64, error)
}

type numberNode float64

func (n numberNode) eval(Vars) (float64, error) { return float64(n), nil }

type varNode string

func (n varNode) eval(vars Vars) (float64, error) {
	v, ok := vars.Lookup(string(n))
	if !ok {
		return 0, &EvalError{Msg: fmt.Sprintf("unknown attribute %q", string(n))}
	}
	return v, nil
}

type unaryNode struct {
	operand node
}

func (n unaryNode) eval(vars Vars) (float64, error) {
	v, err := n.operand.eval(vars)
	if err != nil {
		return 0, err
	}
	return -v, nil
}

type binaryNode struct {
	op          byte
	left, right node
}

func (n binaryNode) eval(vars Vars) (float64, error) {
	l, err := n.left.eval(vars)
	if err != nil {
		return 0, err
	}
	r, err := n.right.eval(vars)
	if err != nil {
		return 0, err
	}
	switch n.op {
	case '+':
		return l + r, nil
	case '-':
		return l - r, nil
	case '*':
		return l * r, nil
	case '/':
		if r == 0 {
			return 0, &EvalError{Msg: "division by zero"}
		}
		return l / r, nil
	}
	return 0, &EvalError{Msg: fmt.Sprintf("unknown operator %q", n.op)}
}

type callNode struct {
	name string
	args []node
}

func (n callNode) eval(vars Vars) (float64, error) {
	vals := make([]float64, len(n.args))
	for i, arg := range n.args {
		v, err := arg.eval(vars)
		if err != nil {
			return 0, err
		}
		vals[i] = v
	}
	switch n.name {
	case "min", "max":
		if len(vals) < 2 {
			return 0, &EvalError{Msg: n.name + " needs at least two arguments"}
		}
		out := vals[0]
		for _, v := range vals[1:] {
			if (n.name == "min" && v < out) || (n.name == "max" && v > out) {
				out = v
			}
		}
		return out, nil
	case "ceil":
		if len(vals) != 1 {
			return 0, &EvalError{Msg: "ceil needs exactly one argument"}
		}
		return math.Ceil(vals[0]), nil
	case "floor":
		if len(vals) != 1 {
			return 0, &EvalError{Msg: "floor needs exactly one argument"}
		}
		return math.Floor(vals[0]), nil
	}
	return 0, &EvalError{Msg: fmt.Sprintf("unknown function %q", n.name)}
}

// parser is a recursive-descent parser over the grammar:
//
//	expr   := term (('+'|'-') term)*
//	term   := unary (('*'|'/') unary)*
//	unary  := '-' unary | atom
//	atom   := number | ident | ident '(' expr (',' expr)* ')' | '(' expr ')'
type parser struct {
	src string
	pos int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) parseExpr() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		if op != '+' && op != '-' {
			return left, nil
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
}

func (p *parser) parseTerm() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		if op != '*' && op != '/' {
			return left, nil
		}
		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
}

func (p *parser) parseUnary() (node, error) {
	if p.peek() == '-' {
		p.pos++
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return unaryNode{operand: operand}, nil
	}
	return p.parseAtom()
}

func (p *parser) parseAtom() (node, error) {
	c := p.peek()
	switch {
	case c == 0:
		return nil, &SyntaxError{Pos: p.pos, Msg: "unexpected end of expression"}
	case c == '(':
		p.pos++
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.peek() != ')' {
			return nil, &SyntaxError{Pos: p.pos, Msg: "expected ')'"}
		}
		p.pos++
		return inner, nil
	case c >= '0' && c <= '9' || c == '.':
		return p.parseNumber()
	case isIdentStart(rune(c)):
		return p.parseIdentOrCall()
	default:
		return nil, &SyntaxError{Pos: p.pos, Msg: fmt.Sprintf("unexpected %q", c)}
	}
}

func (p *parser) parseNumber() (node, error) {
	start := p.pos
	for p.pos < len(p.src) && (p.src[p.pos] >= '0' && p.src[p.pos] <= '9' || p.src[p.pos] == '.') {
		p.pos++
	}
	v, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return nil, &SyntaxError{Pos: start, Msg: fmt.Sprintf("invalid number %q", p.src[start:p.pos])}
	}
	return numberNode(v), nil
}

func (p *parser) parseIdentOrCall() (node, error) {
	start := p.pos
	for p.pos < len(p.src) && isIdentPart(rune(p.src[p.pos])) {
		p.pos++
	}
	name := p.src[start:p.pos]

	if p.peek() != '(' {
		return varNode(name), nil
	}

	switch name {
	case "min", "max", "ceil", "floor":
	default:
		return nil, &SyntaxError{Pos: start, Msg: fmt.Sprintf("unknown function %q", name)}
	}

	p.pos++ // consume '('
	var args []node
	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		switch p.peek() {
		case ',':
			p.pos++
		case ')':
			p.pos++
			return callNode{name: name, args: args}, nil
		default:
			return nil, &SyntaxError{Pos: p.pos, Msg: "expected ',' or ')'"}
		}
	}
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
