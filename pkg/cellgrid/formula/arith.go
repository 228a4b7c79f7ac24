package formula

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/ref"
	"github.com/xuri/efp"
)

// safeExprRE is the character set a substituted expression may contain.
var safeExprRE = regexp.MustCompile(`^[0-9A-Za-z+\-*/(). \t"']*$`)

var (
	errSyntax    = errors.New("formula: syntax error")
	errOperand   = errors.New("formula: text operand in numeric operation")
	errDivZero   = errors.New("formula: division by zero")
	errNotFinite = errors.New("formula: result is not a finite number")
)

// arithmetic evaluates an inline expression. Cell references are replaced
// by their evaluated values before the expression is checked and parsed.
// A faulted reference faults the whole expression.
func (e *Evaluator) arithmetic(content string, st *stack) result {
	tokens := tokenize(content)
	if !plainArithmetic(tokens) {
		return plain(content)
	}

	for i, tok := range tokens {
		if tok.TType != efp.TokenTypeOperand || tok.TSubType != efp.TokenSubTypeRange {
			continue
		}
		c, _ := ref.Parse(tok.TValue)
		v := e.cellValue(c.Row, c.Col, st)
		if v.fault {
			return v
		}
		tokens[i] = operandOf(v.text)
	}

	if !safeExprRE.MatchString(render(tokens)) {
		return failed(ErrorValue)
	}
	v, err := evaluateTokens(tokens)
	if err != nil {
		return failed(ErrorValue)
	}
	return plain(v.String())
}

// tokenize splits a formula into efp tokens without the leading "=".
func tokenize(content string) (tokens []efp.Token) {
	defer func() {
		if recover() != nil {
			tokens = []efp.Token{{TType: efp.TokenTypeUnknown}}
		}
	}()
	ps := efp.ExcelParser()
	tokens = ps.Parse(strings.ReplaceAll(content, "\t", " "))
	if len(tokens) > 0 && tokens[0].TType == efp.TokenTypeOperatorInfix && tokens[0].TValue == "=" {
		tokens = tokens[1:]
	}
	return tokens
}

// plainArithmetic reports whether tokens can be evaluated as arithmetic.
// Function calls, names that are not cell references, ranges and booleans
// are not.
func plainArithmetic(tokens []efp.Token) bool {
	for _, tok := range tokens {
		switch tok.TType {
		case efp.TokenTypeFunction:
			if tok.TSubType == efp.TokenSubTypeStart {
				return false
			}
		case efp.TokenTypeArgument:
			return false
		case efp.TokenTypeOperand:
			switch tok.TSubType {
			case efp.TokenSubTypeLogical:
				return false
			case efp.TokenSubTypeRange:
				if !ref.IsAddress(tok.TValue) {
					return false
				}
			}
		}
	}
	return true
}

// operandOf turns an evaluated cell value into a literal token: a bare
// number when numeric (empty is zero), quoted text otherwise.
func operandOf(v string) efp.Token {
	if n, ok := parseValue(v); ok {
		return efp.Token{TValue: formatNumber(n), TType: efp.TokenTypeOperand, TSubType: efp.TokenSubTypeNumber}
	}
	return efp.Token{TValue: v, TType: efp.TokenTypeOperand, TSubType: efp.TokenSubTypeText}
}

// render writes tokens back as formula text.
func render(tokens []efp.Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		switch {
		case tok.TType == efp.TokenTypeSubexpression && tok.TSubType == efp.TokenSubTypeStart:
			b.WriteByte('(')
		case tok.TSubType == efp.TokenSubTypeStop:
			b.WriteByte(')')
		case tok.TType == efp.TokenTypeOperand && tok.TSubType == efp.TokenSubTypeText:
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(tok.TValue, `"`, `""`))
			b.WriteByte('"')
		case tok.TSubType == efp.TokenSubTypeIntersection:
			b.WriteByte(' ')
		default:
			b.WriteString(tok.TValue)
		}
	}
	return b.String()
}

// value is the result of an expression: a number or text.
type value struct {
	num    float64
	text   string
	isText bool
}

func number(v float64) value { return value{num: v} }

func (v value) String() string {
	if v.isText {
		return v.text
	}
	return formatNumber(v.num)
}

// exprParser is a recursive-descent parser over
//
//	expr  = term { ("+" | "-") term }
//	term  = unary { ("*" | "/") unary }
//	unary = "-" unary | primary
//	primary = number | text | "(" expr ")"
type exprParser struct {
	tokens []efp.Token
	pos    int
}

func evaluateTokens(tokens []efp.Token) (value, error) {
	p := &exprParser{tokens: tokens}
	v, err := p.parseExpr()
	if err != nil {
		return value{}, err
	}
	if p.pos < len(p.tokens) {
		return value{}, errSyntax
	}
	if !v.isText && (math.IsNaN(v.num) || math.IsInf(v.num, 0)) {
		return value{}, errNotFinite
	}
	return v, nil
}

func (p *exprParser) peek() (efp.Token, bool) {
	if p.pos >= len(p.tokens) {
		return efp.Token{}, false
	}
	return p.tokens[p.pos], true
}

// infix returns the operator at the current position if it is one of ops.
func (p *exprParser) infix(ops ...string) (string, bool) {
	tok, ok := p.peek()
	if !ok || tok.TType != efp.TokenTypeOperatorInfix || tok.TSubType != efp.TokenSubTypeMath {
		return "", false
	}
	for _, op := range ops {
		if tok.TValue == op {
			return op, true
		}
	}
	return "", false
}

func (p *exprParser) parseExpr() (value, error) {
	left, err := p.parseTerm()
	if err != nil {
		return value{}, err
	}
	for {
		op, ok := p.infix("+", "-")
		if !ok {
			return left, nil
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return value{}, err
		}
		if left, err = apply(op, left, right); err != nil {
			return value{}, err
		}
	}
}

func (p *exprParser) parseTerm() (value, error) {
	left, err := p.parseUnary()
	if err != nil {
		return value{}, err
	}
	for {
		op, ok := p.infix("*", "/")
		if !ok {
			return left, nil
		}
		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return value{}, err
		}
		if left, err = apply(op, left, right); err != nil {
			return value{}, err
		}
	}
}

func (p *exprParser) parseUnary() (value, error) {
	tok, ok := p.peek()
	if ok && tok.TType == efp.TokenTypeOperatorPrefix && tok.TValue == "-" {
		p.pos++
		v, err := p.parseUnary()
		if err != nil {
			return value{}, err
		}
		if v.isText {
			return value{}, errOperand
		}
		return number(-v.num), nil
	}
	return p.parsePrimary()
}

func (p *exprParser) parsePrimary() (value, error) {
	tok, ok := p.peek()
	if !ok {
		return value{}, errSyntax
	}
	p.pos++

	switch {
	case tok.TType == efp.TokenTypeOperand && tok.TSubType == efp.TokenSubTypeNumber:
		f, err := strconv.ParseFloat(tok.TValue, 64)
		if err != nil {
			return value{}, errSyntax
		}
		return number(f), nil
	case tok.TType == efp.TokenTypeOperand && tok.TSubType == efp.TokenSubTypeText:
		return value{text: tok.TValue, isText: true}, nil
	case tok.TType == efp.TokenTypeSubexpression && tok.TSubType == efp.TokenSubTypeStart:
		v, err := p.parseExpr()
		if err != nil {
			return value{}, err
		}
		closing, ok := p.peek()
		if !ok || closing.TType != efp.TokenTypeSubexpression || closing.TSubType != efp.TokenSubTypeStop {
			return value{}, errSyntax
		}
		p.pos++
		return v, nil
	}
	return value{}, errSyntax
}

// apply combines two operands. "+" concatenates when either side is text;
// the other operators require numbers.
func apply(op string, left, right value) (value, error) {
	if op == "+" && (left.isText || right.isText) {
		return value{text: left.String() + right.String(), isText: true}, nil
	}
	if left.isText || right.isText {
		return value{}, errOperand
	}
	switch op {
	case "+":
		return number(left.num + right.num), nil
	case "-":
		return number(left.num - right.num), nil
	case "*":
		return number(left.num * right.num), nil
	default:
		if right.num == 0 {
			return value{}, errDivZero
		}
		return number(left.num / right.num), nil
	}
}
