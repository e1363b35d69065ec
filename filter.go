package emitorcsv

import (
	"fmt"
	"strconv"

	"github.com/casbin/govaluate"
	"github.com/pkg/errors"
)

// Filter evaluates a govaluate expression against each record before it
// reaches the sinks. The expression sees these parameters:
//
//	emitor  string  emitter component of the path
//	path    string  full dotted path
//	value   string  raw pkt value
//	pkt     float64 numeric pkt value, only when it parses
//	date    string  capture date, YYYY-MM-DD
//	hour    int     capture hour of day
//
// Expressions referencing pkt fail on records whose value is not numeric;
// such a failure terminates the run.
type Filter struct {
	expr *govaluate.EvaluableExpression
}

// NewFilter compiles a filter expression.
func NewFilter(expression string) (*Filter, error) {
	expr, err := govaluate.NewEvaluableExpression(expression)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &Filter{expr: expr}, nil
}

// Match reports whether rec passes the filter.
func (f *Filter) Match(rec Record) (bool, error) {
	params := map[string]any{
		"emitor": rec.Emitor(),
		"path":   rec.Path,
		"value":  rec.Value,
		"date":   fmt.Sprintf("%d-%02d-%02d", rec.Year, rec.Month, rec.Day),
		"hour":   rec.Hour,
	}
	if pkt, err := strconv.ParseFloat(rec.Value, 64); err == nil {
		params["pkt"] = pkt
	}

	response, err := f.expr.Evaluate(params)
	if err != nil {
		return false, errors.WithStack(err)
	}
	// the assertion also catches nil results, which govaluate produces
	// for a ternary whose else branch is omitted
	b, ok := response.(bool)
	if !ok {
		return false, errors.Errorf("filter expression %q is not a bool", f.expr.String())
	}

	return b, nil
}
