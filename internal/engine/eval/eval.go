// Package eval implements the restricted arithmetic mini-language used by
// descriptor and trait templates: numbers, + - * /, parentheses, and unary
// minus. Evaluation never panics; malformed input reports ok=false.
package eval

import (
	"strconv"
	"strings"
)

// Evaluate parses and evaluates an arithmetic expression. Whitespace is
// ignored. Unary minus is permitted at the start of the expression, after an
// operator, or after "(". Division by zero, mismatched parentheses, repeated
// decimal points and any character outside the grammar all report ok=false.
func Evaluate(expr string) (float64, bool) {
	tokens, ok := tokenize(expr)
	if !ok {
		return 0, false
	}

	postfix, ok := toPostfix(tokens)
	if !ok {
		return 0, false
	}

	return evalPostfix(postfix)
}

func isOperator(tok string) bool {
	switch tok {
	case "+", "-", "*", "/":
		return true
	}
	return false
}

func precedence(op string) int {
	switch op {
	case "*", "/":
		return 2
	default:
		return 1
	}
}

// tokenize splits the expression into number and operator tokens. A "-" at
// the start, after "(" or after another operator is rewritten as "0" "-" so
// the parser only ever sees binary operators.
func tokenize(expr string) ([]string, bool) {
	stripped := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, expr)

	var tokens []string
	var number strings.Builder
	dots := 0

	flushNumber := func() bool {
		if number.Len() == 0 {
			return true
		}
		tok := number.String()
		number.Reset()
		dots = 0
		if _, err := strconv.ParseFloat(tok, 64); err != nil {
			return false
		}
		tokens = append(tokens, tok)
		return true
	}

	for _, r := range stripped {
		switch {
		case r >= '0' && r <= '9':
			number.WriteRune(r)
		case r == '.':
			dots++
			if dots > 1 {
				return nil, false
			}
			number.WriteRune(r)
		case r == '(' || r == ')' || r == '+' || r == '-' || r == '*' || r == '/':
			if !flushNumber() {
				return nil, false
			}
			if r == '-' {
				last := ""
				if len(tokens) > 0 {
					last = tokens[len(tokens)-1]
				}
				if last == "" || last == "(" || isOperator(last) {
					tokens = append(tokens, "0")
				}
			}
			tokens = append(tokens, string(r))
		default:
			return nil, false
		}
	}

	if !flushNumber() {
		return nil, false
	}

	return tokens, true
}

// toPostfix runs the shunting-yard algorithm. Both operator tiers are
// left-associative; * and / bind tighter than + and -.
func toPostfix(tokens []string) ([]string, bool) {
	var output []string
	var ops []string

	for _, tok := range tokens {
		switch {
		case tok == "(":
			ops = append(ops, tok)
		case tok == ")":
			matched := false
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if top == "(" {
					matched = true
					break
				}
				output = append(output, top)
			}
			if !matched {
				return nil, false
			}
		case isOperator(tok):
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if !isOperator(top) || precedence(top) < precedence(tok) {
					break
				}
				output = append(output, top)
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, tok)
		default:
			output = append(output, tok)
		}
	}

	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if top == "(" {
			return nil, false
		}
		output = append(output, top)
	}

	return output, true
}

func evalPostfix(postfix []string) (float64, bool) {
	var stack []float64

	for _, tok := range postfix {
		if isOperator(tok) {
			if len(stack) < 2 {
				return 0, false
			}
			b := stack[len(stack)-1]
			a := stack[len(stack)-2]
			stack = stack[:len(stack)-2]

			var result float64
			switch tok {
			case "+":
				result = a + b
			case "-":
				result = a - b
			case "*":
				result = a * b
			case "/":
				if b == 0 {
					return 0, false
				}
				result = a / b
			}
			stack = append(stack, result)
			continue
		}

		value, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return 0, false
		}
		stack = append(stack, value)
	}

	if len(stack) != 1 {
		return 0, false
	}
	return stack[0], true
}
