package table

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// SQLExpr is a rendered predicate fragment. The kind drives parenthesization
// when fragments are combined: OR fragments are wrapped inside conjunctions
// and AND fragments are wrapped inside disjunctions.
type SQLExpr struct {
	text string
	kind exprKind
}

type exprKind int

const (
	exprSimple exprKind = iota
	exprAnd
	exprOr
)

// String returns the SQL text of the expression.
func (e SQLExpr) String() string {
	return e.text
}

// FiltersToSQLPredicate renders normalized filters as a single SQL predicate:
// an OR across conjunction groups, each group an AND across its filters.
func FiltersToSQLPredicate(schema Schema, filters NormalizedFilters) (SQLExpr, error) {
	groups := make([]SQLExpr, 0, len(filters))
	for _, group := range filters {
		conj, err := FiltersToSQLConjunction(schema, group)
		if err != nil {
			return SQLExpr{}, err
		}
		groups = append(groups, conj)
	}
	return joinOr(groups), nil
}

// FiltersToSQLConjunction renders a list of filters joined with AND.
func FiltersToSQLConjunction(schema Schema, filters []Filter) (SQLExpr, error) {
	exprs := make([]SQLExpr, 0, len(filters))
	for _, f := range filters {
		expr, err := FilterToSQLExpr(schema, f)
		if err != nil {
			return SQLExpr{}, err
		}
		exprs = append(exprs, expr)
	}
	return joinAnd(exprs), nil
}

// FilterToSQLExpr renders a single filter against the schema. The column must
// exist; the includes operators additionally require a list column.
func FilterToSQLExpr(schema Schema, f Filter) (SQLExpr, error) {
	column, ok := schema.Column(f.Column)
	if !ok {
		return SQLExpr{}, fmt.Errorf("table: invalid column name %s", f.Column)
	}

	ident := quoteIdent(f.Column)

	switch f.Operator {
	case OpEqual, OpNotEqual, OpLess, OpLessEqual, OpGreater, OpGreaterEqual:
		value, err := sqlLiteral(f.Value)
		if err != nil {
			return SQLExpr{}, fmt.Errorf("table: filter on %s: %w", f.Column, err)
		}
		op := string(f.Operator)
		if f.Operator == OpNotEqual {
			op = "<>"
		}
		return SQLExpr{text: ident + op + value}, nil

	case OpIn, OpNotIn:
		values, err := tupleLiterals(f.Value)
		if err != nil {
			return SQLExpr{}, fmt.Errorf("table: filter on %s: %w", f.Column, err)
		}
		keyword := " IN "
		if f.Operator == OpNotIn {
			keyword = " NOT IN "
		}
		return SQLExpr{text: ident + keyword + "(" + strings.Join(values, ",") + ")"}, nil

	case OpContains:
		text, ok := f.Value.(string)
		if !ok {
			return SQLExpr{}, fmt.Errorf("table: contains filter on %s requires a string value", f.Column)
		}
		return SQLExpr{text: ident + " LIKE '%" + escapeString(text) + "%'"}, nil

	case OpIncludes, OpIncludesAny, OpIncludesAll:
		if !column.Type.IsList() {
			return SQLExpr{}, fmt.Errorf("table: %s filter requires a list column, %s is %s", f.Operator, f.Column, column.Type)
		}

		var values []string
		if f.Operator == OpIncludes {
			value, err := sqlLiteral(f.Value)
			if err != nil {
				return SQLExpr{}, fmt.Errorf("table: filter on %s: %w", f.Column, err)
			}
			values = []string{value}
		} else {
			tuple, err := tupleLiterals(f.Value)
			if err != nil {
				return SQLExpr{}, fmt.Errorf("table: filter on %s: %w", f.Column, err)
			}
			if len(tuple) == 0 {
				return SQLExpr{}, fmt.Errorf("table: %s filter on %s requires values", f.Operator, f.Column)
			}
			values = tuple
		}

		exprs := make([]SQLExpr, 0, len(values))
		for _, value := range values {
			exprs = append(exprs, SQLExpr{text: "array_contains(" + ident + "," + value + ")"})
		}
		if f.Operator == OpIncludesAll {
			return joinAnd(exprs), nil
		}
		return joinOr(exprs), nil

	default:
		return SQLExpr{}, fmt.Errorf("table: invalid operator %s", f.Operator)
	}
}

func joinAnd(exprs []SQLExpr) SQLExpr {
	if len(exprs) == 1 {
		return exprs[0]
	}
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		if e.kind == exprOr {
			parts = append(parts, "("+e.text+")")
			continue
		}
		parts = append(parts, e.text)
	}
	return SQLExpr{text: strings.Join(parts, " AND "), kind: exprAnd}
}

func joinOr(exprs []SQLExpr) SQLExpr {
	if len(exprs) == 1 {
		return exprs[0]
	}
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		if e.kind == exprAnd {
			parts = append(parts, "("+e.text+")")
			continue
		}
		parts = append(parts, e.text)
	}
	return SQLExpr{text: strings.Join(parts, " OR "), kind: exprOr}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func escapeString(value string) string {
	return strings.ReplaceAll(value, "'", "''")
}

// timestampLayout is RFC 3339 with an always-numeric zone offset.
const timestampLayout = "2006-01-02T15:04:05-07:00"

// sqlLiteral renders a Go value as a SQL literal. Formatting follows the
// value's Go type, not the column type: a string value against an integer
// column is still quoted.
func sqlLiteral(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "NULL", nil
	case string:
		return "'" + escapeString(v) + "'", nil
	case bool:
		if v {
			return "TRUE", nil
		}
		return "FALSE", nil
	case time.Time:
		// Numeric offsets throughout: UTC renders as +00:00, not Z.
		return "'" + v.Format(timestampLayout) + "'", nil
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v), nil
	case float32, float64:
		return fmt.Sprintf("%v", v), nil
	default:
		return "", fmt.Errorf("unsupported literal type %T", value)
	}
}

// tupleLiterals renders slice values for the IN/NOT IN and includes
// operators. A single-element tuple renders without a trailing comma.
func tupleLiterals(value any) ([]string, error) {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, fmt.Errorf("tuple operator requires a slice value, got %T", value)
	}

	out := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		literal, err := sqlLiteral(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		out = append(out, literal)
	}
	return out, nil
}
