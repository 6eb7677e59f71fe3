// Package calc evaluates arithmetic expressions typed into the search box.
//
// Input is untrusted user text, so evaluation is a hand-written tokenizer
// plus precedence walk; nothing is ever handed to a general-purpose
// expression or code evaluator.
package calc

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// resultPrecision is the number of decimal places the final value is
// rounded to, suppressing float noise like 0.30000000000000004.
const resultPrecision = 8

// exprGuard requires a digit, an arithmetic operator, and another digit to
// appear in that order. It keeps the calculator from firing on ordinary
// text queries ("meeting notes 2024").
var exprGuard = regexp.MustCompile(`[0-9].*[+\-*/%^].*[0-9]`)

// allowedChars is the full character set an expression may use after
// whitespace removal. Note ^ is in the guard but not here: it marks the
// query as calculator-intended, then fails cleanly as unsupported.
const allowedChars = "0123456789+-*/().%"

// Arithmetic is the hand-rolled evaluator. The zero value is ready to use.
type Arithmetic struct{}

// New returns a ready-to-use Arithmetic evaluator.
func New() *Arithmetic {
	return &Arithmetic{}
}

// Evaluate parses and evaluates expr. It returns the result as a canonical
// decimal string and true, or "" and false when expr is not a well-formed,
// finite arithmetic expression. Division or modulo by zero counts as not
// well-formed: the caller simply shows no calculator row.
func (a *Arithmetic) Evaluate(expr string) (string, bool) {
	s := stripWhitespace(expr)
	if s == "" || !exprGuard.MatchString(s) {
		return "", false
	}
	if strings.Contains(s, "()") {
		return "", false
	}
	for _, r := range s {
		if !strings.ContainsRune(allowedChars, r) {
			return "", false
		}
	}

	tokens := tokenize(s)
	value, ok := evalTokens(tokens)
	if !ok {
		return "", false
	}

	rounded := roundTo(value, resultPrecision)
	if math.IsNaN(rounded) || math.IsInf(rounded, 0) {
		return "", false
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64), true
}

func stripWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// tokenize splits the expression into numeric tokens and single-character
// operator/paren tokens, scanning left to right.
func tokenize(s string) []string {
	var tokens []string
	var num strings.Builder

	flush := func() {
		if num.Len() > 0 {
			tokens = append(tokens, num.String())
			num.Reset()
		}
	}

	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			num.WriteRune(r)
			continue
		}
		flush()
		tokens = append(tokens, string(r))
	}
	flush()
	return tokens
}

// evalTokens resolves parenthesized runs innermost-first, then hands the
// flat stream to evalFlat.
func evalTokens(tokens []string) (float64, bool) {
	for {
		closing := indexOf(tokens, ")")
		if closing < 0 {
			break
		}
		opening := -1
		for i := closing - 1; i >= 0; i-- {
			if tokens[i] == "(" {
				opening = i
				break
			}
		}
		if opening < 0 {
			return 0, false // ) without a matching (
		}
		inner, ok := evalFlat(tokens[opening+1 : closing])
		if !ok {
			return 0, false
		}
		// Splice the scalar back into the stream in place of the group.
		spliced := make([]string, 0, len(tokens)-(closing-opening))
		spliced = append(spliced, tokens[:opening]...)
		spliced = append(spliced, strconv.FormatFloat(inner, 'f', -1, 64))
		spliced = append(spliced, tokens[closing+1:]...)
		tokens = spliced
	}
	if indexOf(tokens, "(") >= 0 {
		return 0, false // ( without a matching )
	}
	return evalFlat(tokens)
}

// evalFlat evaluates a paren-free token run: first * / % left to right,
// then + - left to right.
func evalFlat(tokens []string) (float64, bool) {
	if len(tokens) == 0 {
		return 0, false
	}

	// Multiplicative pass.
	reduced := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok != "*" && tok != "/" && tok != "%" {
			reduced = append(reduced, tok)
			continue
		}
		if len(reduced) == 0 || i+1 >= len(tokens) {
			return 0, false
		}
		left, okL := parseNumber(reduced[len(reduced)-1])
		right, okR := parseNumber(tokens[i+1])
		if !okL || !okR {
			return 0, false
		}
		var v float64
		switch tok {
		case "*":
			v = left * right
		case "/":
			if right == 0 {
				return 0, false
			}
			v = left / right
		case "%":
			if right == 0 {
				return 0, false
			}
			v = math.Mod(left, right)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		reduced[len(reduced)-1] = strconv.FormatFloat(v, 'f', -1, 64)
		i++ // consume the right operand
	}

	// Additive pass.
	acc, ok := parseNumber(reduced[0])
	if !ok {
		return 0, false
	}
	i := 1
	for i < len(reduced) {
		op := reduced[i]
		if op != "+" && op != "-" {
			return 0, false
		}
		if i+1 >= len(reduced) {
			return 0, false
		}
		operand, ok := parseNumber(reduced[i+1])
		if !ok {
			return 0, false
		}
		switch op {
		case "+":
			acc += operand
		case "-":
			acc -= operand
		}
		i += 2
	}
	if math.IsNaN(acc) || math.IsInf(acc, 0) {
		return 0, false
	}
	return acc, true
}

func parseNumber(tok string) (float64, bool) {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func indexOf(tokens []string, want string) int {
	for i, tok := range tokens {
		if tok == want {
			return i
		}
	}
	return -1
}

func roundTo(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}
