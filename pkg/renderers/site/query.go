package site

import (
	"github.com/goliatone/go-catgen/pkg/model"
	"github.com/goliatone/go-catgen/pkg/table"
)

// sampleQuery compiles the table's docs filters into a sample SELECT shown on
// the doc page. Tables without filters, or filters that fail to compile, get
// no sample.
func sampleQuery(tbl model.Table) string {
	if len(tbl.DocsFilters) == 0 {
		return ""
	}

	columns := make([]table.Column, 0, len(tbl.Columns))
	for _, col := range tbl.Columns {
		parsed, err := table.ParseDataType(col.Type)
		if err != nil {
			return ""
		}
		columns = append(columns, table.Column{Name: col.Name, Type: parsed, Nullable: col.Nullable})
	}
	schema, err := table.NewSchema(columns...)
	if err != nil {
		return ""
	}

	filters := make([]table.Filter, 0, len(tbl.DocsFilters))
	for _, f := range tbl.DocsFilters {
		filters = append(filters, table.Filter{
			Column:   f.Column,
			Operator: table.Operator(f.Operator),
			Value:    f.Value,
		})
	}

	predicate, err := table.FiltersToSQLConjunction(schema, filters)
	if err != nil {
		return ""
	}

	return "SELECT * FROM " + tbl.Name + " WHERE " + predicate.String()
}
