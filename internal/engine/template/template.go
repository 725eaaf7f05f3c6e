// Package template renders admin-authored descriptor and trait templates.
// A template is free text containing bracketed tokens ("[MonsterLevel]") and
// optional parenthesized arithmetic, either bare ("([Level]/2)") or wrapped
// in a rounding function ("(ceil([Level]/2))").
//
// Rendering is three ordered passes over the text: rounding-wrapped
// expressions first, then bare parentheticals, then remaining tokens. The
// order matters because later passes must not re-match text produced by
// earlier passes. Each pass is a pure (string) -> string transform.
package template

import (
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/forgelight/forge-api/internal/engine/eval"
)

// Context maps token names to their values. A value may be a number, a
// die-size string ("D4".."D12", numeric as its face count), any other string
// (display only), or nil for unknown.
type Context map[string]any

const unknown = "?"

var (
	roundedExprRegex = regexp.MustCompile(`\((ceil|floor|round)\(([^()]*)\)\)`)
	bareExprRegex    = regexp.MustCompile(`\(([^()]*)\)`)
	tokenRegex       = regexp.MustCompile(`\[([A-Za-z0-9]+)\]`)
	dieSizeRegex     = regexp.MustCompile(`^D(4|6|8|10|12)$`)
)

// Render resolves every token and templated expression in the template
// against the context. Unknown tokens and failed evaluations render as "?";
// parentheticals containing no tokens are left untouched. Render is pure and
// deterministic.
func Render(tmpl string, ctx Context) string {
	text := renderRoundedExprs(tmpl, ctx)
	text = renderBareExprs(text, ctx)
	return renderTokens(text, ctx)
}

// renderRoundedExprs resolves (ceil(...)), (floor(...)) and (round(...))
// wrappers. The result is always an integer rendered as text, or "?".
func renderRoundedExprs(text string, ctx Context) string {
	return roundedExprRegex.ReplaceAllStringFunc(text, func(match string) string {
		groups := roundedExprRegex.FindStringSubmatch(match)
		fn, expr := groups[1], groups[2]

		if !tokenRegex.MatchString(expr) {
			// plain prose that happens to look like a rounding call
			return match
		}

		value, ok := substituteAndEvaluate(expr, ctx)
		if !ok {
			return unknown
		}

		switch fn {
		case "ceil":
			value = math.Ceil(value)
		case "floor":
			value = math.Floor(value)
		default:
			value = math.Round(value)
		}
		return strconv.Itoa(int(value))
	})
}

// renderBareExprs resolves remaining ( EXPR ) groups with no rounding.
// Near-integer results render as integers, everything else rounds to two
// decimal places.
func renderBareExprs(text string, ctx Context) string {
	return bareExprRegex.ReplaceAllStringFunc(text, func(match string) string {
		expr := match[1 : len(match)-1]

		if !tokenRegex.MatchString(expr) {
			return match
		}

		value, ok := substituteAndEvaluate(expr, ctx)
		if !ok {
			return unknown
		}

		if math.Abs(value-math.Round(value)) < 1e-9 {
			return strconv.Itoa(int(math.Round(value)))
		}
		return strconv.FormatFloat(math.Round(value*100)/100, 'f', -1, 64)
	})
}

// renderTokens substitutes any remaining [Token] with its display form.
func renderTokens(text string, ctx Context) string {
	return tokenRegex.ReplaceAllStringFunc(text, func(match string) string {
		name := match[1 : len(match)-1]
		return displayValue(ctx[name])
	})
}

// substituteAndEvaluate replaces every token in the expression with its
// numeric value and runs the result through the evaluator. It fails if any
// token is unknown or non-numeric, or if the arithmetic is malformed.
func substituteAndEvaluate(expr string, ctx Context) (float64, bool) {
	substituted := tokenRegex.ReplaceAllStringFunc(expr, func(match string) string {
		name := match[1 : len(match)-1]
		value, ok := numericValue(ctx[name])
		if !ok {
			return unknown
		}
		return strconv.FormatFloat(value, 'f', -1, 64)
	})

	if strings.Contains(substituted, unknown) {
		return 0, false
	}
	return eval.Evaluate(substituted)
}

// numericValue coerces a context value to a number. Die-size strings count
// as their face value so templates can do arithmetic on monster stats.
func numericValue(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case reflect.String:
		s := rv.String()
		if m := dieSizeRegex.FindStringSubmatch(s); m != nil {
			faces, _ := strconv.Atoi(m[1])
			return float64(faces), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// displayValue renders a context value as display text. Die sizes render in
// their lower-case notation ("D6" -> "d6"), other strings render as-is, and
// anything unknown renders as "?".
func displayValue(v any) string {
	if v == nil {
		return unknown
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return unknown
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	case reflect.String:
		s := rv.String()
		if m := dieSizeRegex.FindStringSubmatch(s); m != nil {
			return "d" + m[1]
		}
		return s
	default:
		return unknown
	}
}
