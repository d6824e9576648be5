package table

import "fmt"

// Operator names a comparison supported by the filter algebra.
type Operator string

const (
	OpEqual        Operator = "="
	OpNotEqual     Operator = "!="
	OpLess         Operator = "<"
	OpLessEqual    Operator = "<="
	OpGreater      Operator = ">"
	OpGreaterEqual Operator = ">="
	OpIn           Operator = "in"
	OpNotIn        Operator = "not in"
	OpContains     Operator = "contains"
	OpIncludes     Operator = "includes"
	OpIncludesAny  Operator = "includes any"
	OpIncludesAll  Operator = "includes all"
)

// Filter is a single column predicate. Values are plain Go values: strings,
// numbers, booleans, time.Time, or slices for the tuple operators.
type Filter struct {
	Column   string
	Operator Operator
	Value    any
}

// NewFilter is a convenience constructor matching the positional style used
// in manifests and docs.
func NewFilter(column string, operator Operator, value any) Filter {
	return Filter{Column: column, Operator: operator, Value: value}
}

// NormalizedFilters is a disjunction of conjunctions: the outer slice is OR,
// each inner slice is AND.
type NormalizedFilters = [][]Filter

// NormalizeFilters accepts the accepted input shapes and produces the
// canonical nested form:
//
//	nil                 -> [][]Filter{}
//	[]Filter{a, b}      -> [][]Filter{{a, b}}  (single conjunction)
//	[][]Filter{{a},{b}} -> unchanged            (a OR b)
func NormalizeFilters(filters any) (NormalizedFilters, error) {
	switch v := filters.(type) {
	case nil:
		return NormalizedFilters{}, nil
	case Filter:
		return NormalizedFilters{{v}}, nil
	case []Filter:
		if len(v) == 0 {
			return NormalizedFilters{}, nil
		}
		group := append([]Filter(nil), v...)
		return NormalizedFilters{group}, nil
	case [][]Filter:
		out := make(NormalizedFilters, 0, len(v))
		for _, group := range v {
			out = append(out, append([]Filter(nil), group...))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("table: unsupported filter input %T", filters)
	}
}

// MustNormalizeFilters panics on invalid input. Useful for code-defined
// catalogs where the shape is static.
func MustNormalizeFilters(filters any) NormalizedFilters {
	out, err := NormalizeFilters(filters)
	if err != nil {
		panic(err)
	}
	return out
}
