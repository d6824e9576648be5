package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-catgen/pkg/manifest"
	"github.com/goliatone/go-catgen/pkg/table"
)

// Builder turns a parsed manifest into a CatalogModel.
type Builder interface {
	Build(m manifest.Manifest) (CatalogModel, error)
}

type builder struct{}

// NewBuilder constructs the default builder.
func NewBuilder() Builder {
	return builder{}
}

// Build validates the manifest semantically and produces a model with
// databases and tables in deterministic (sorted) order. Schema imports must
// already be resolved into columns; the orchestrator runs that stage before
// building.
func (builder) Build(m manifest.Manifest) (CatalogModel, error) {
	catalog := m.Catalog

	out := CatalogModel{
		Name:        catalog.Name,
		Description: strings.TrimSpace(catalog.Description),
	}

	for _, db := range catalog.Databases {
		database := Database{
			Name:        db.Name,
			Description: strings.TrimSpace(db.Description),
		}
		for _, def := range db.Tables {
			tbl, err := buildTable(db.Name, def)
			if err != nil {
				return CatalogModel{}, err
			}
			database.Tables = append(database.Tables, tbl)
		}
		sort.Slice(database.Tables, func(i, j int) bool {
			return database.Tables[i].Name < database.Tables[j].Name
		})
		out.Databases = append(out.Databases, database)
	}

	sort.Slice(out.Databases, func(i, j int) bool {
		return out.Databases[i].Name < out.Databases[j].Name
	})

	return out, nil
}

func buildTable(database string, def manifest.TableDef) (Table, error) {
	where := fmt.Sprintf("model builder: table %q in database %q", def.Name, database)

	if len(def.Columns) == 0 {
		if def.SchemaFrom != nil {
			return Table{}, fmt.Errorf("%s: schema import from %q is unresolved", where, def.SchemaFrom.Source)
		}
		return Table{}, fmt.Errorf("%s: no columns", where)
	}

	columns := make([]Column, 0, len(def.Columns))
	names := make(map[string]struct{}, len(def.Columns))
	for _, col := range def.Columns {
		parsed, err := table.ParseDataType(col.Type)
		if err != nil {
			return Table{}, fmt.Errorf("%s: column %q: %w", where, col.Name, err)
		}
		names[col.Name] = struct{}{}
		columns = append(columns, Column{
			Name:     col.Name,
			Type:     parsed.String(),
			Nullable: col.Nullable,
		})
	}

	// Optional attributes stay nil when the manifest omits them so they
	// serialise as absent, not empty.
	var partitions []Partition
	for _, partition := range def.Partitions {
		if _, ok := names[partition.Column]; !ok {
			return Table{}, fmt.Errorf("%s: partition column %q not in schema", where, partition.Column)
		}
		partitions = append(partitions, Partition{Column: partition.Column, Type: partition.Type})
	}

	var filters []Filter
	for _, filter := range def.DocsFilters {
		if _, ok := names[filter.Column]; !ok {
			return Table{}, fmt.Errorf("%s: docs filter column %q not in schema", where, filter.Column)
		}
		filters = append(filters, Filter{Column: filter.Column, Operator: filter.Operator, Value: filter.Value})
	}

	for _, unique := range def.UniqueColumns {
		if _, ok := names[unique]; !ok {
			return Table{}, fmt.Errorf("%s: unique column %q not in schema", where, unique)
		}
	}

	var roapi *Roapi
	if def.Roapi != nil {
		roapi = &Roapi{
			UseMemoryTable:        def.Roapi.UseMemoryTable,
			Disable:               def.Roapi.Disable,
			OverrideName:          def.Roapi.OverrideName,
			ReloadIntervalSeconds: def.Roapi.ReloadIntervalSeconds,
		}
	}
	if def.Kind == string(table.KindDelta) {
		// Delta tables reload on an interval so new commits become visible.
		defaults := table.DeltaRoapiOptions()
		if roapi == nil {
			roapi = &Roapi{ReloadIntervalSeconds: defaults.ReloadIntervalSeconds}
		} else if roapi.ReloadIntervalSeconds == 0 {
			roapi.ReloadIntervalSeconds = defaults.ReloadIntervalSeconds
		}
	}

	return Table{
		Name:               def.Name,
		Kind:               def.Kind,
		URI:                def.URI,
		Description:        strings.TrimSpace(def.Description),
		Columns:            columns,
		Partitions:         partitions,
		PartitioningScheme: def.PartitioningScheme,
		DocsFilters:        filters,
		UniqueColumns:      def.UniqueColumns,
		Roapi:              roapi,
	}, nil
}
