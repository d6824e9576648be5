// Package parser decodes catalog manifest documents. Manifests are YAML;
// JSON parses through the same path since yaml.v3 accepts it.
package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	pkgmanifest "github.com/goliatone/go-catgen/pkg/manifest"
	"github.com/goliatone/go-catgen/pkg/table"
)

// Parser implements pkgmanifest.Parser.
type Parser struct{}

// Ensure the implementation satisfies the public interface.
var _ pkgmanifest.Parser = (*Parser)(nil)

// New constructs a Parser.
func New() *Parser {
	return &Parser{}
}

// Parse decodes and validates a manifest document.
func (p *Parser) Parse(ctx context.Context, doc pkgmanifest.Document) (pkgmanifest.Manifest, error) {
	if err := ctx.Err(); err != nil {
		return pkgmanifest.Manifest{}, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return pkgmanifest.Manifest{}, errors.New("manifest parser: document payload is empty")
	}

	var manifest pkgmanifest.Manifest
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return pkgmanifest.Manifest{}, fmt.Errorf("manifest parser: decode document: %w", err)
	}

	if err := validate(manifest); err != nil {
		return pkgmanifest.Manifest{}, err
	}

	return manifest, nil
}

func validate(manifest pkgmanifest.Manifest) error {
	catalog := manifest.Catalog
	if strings.TrimSpace(catalog.Name) == "" {
		return errors.New("manifest parser: catalog name is required")
	}

	dbNames := make(map[string]struct{}, len(catalog.Databases))
	for _, db := range catalog.Databases {
		if strings.TrimSpace(db.Name) == "" {
			return fmt.Errorf("manifest parser: catalog %q declares a database without a name", catalog.Name)
		}
		if _, exists := dbNames[db.Name]; exists {
			return fmt.Errorf("manifest parser: duplicate database %q", db.Name)
		}
		dbNames[db.Name] = struct{}{}

		tableNames := make(map[string]struct{}, len(db.Tables))
		for _, tbl := range db.Tables {
			if strings.TrimSpace(tbl.Name) == "" {
				return fmt.Errorf("manifest parser: database %q declares a table without a name", db.Name)
			}
			if _, exists := tableNames[tbl.Name]; exists {
				return fmt.Errorf("manifest parser: duplicate table %q in database %q", tbl.Name, db.Name)
			}
			tableNames[tbl.Name] = struct{}{}

			if err := validateTable(db.Name, tbl); err != nil {
				return err
			}
		}
	}

	return nil
}

func validateTable(database string, tbl pkgmanifest.TableDef) error {
	where := fmt.Sprintf("table %q in database %q", tbl.Name, database)

	switch table.Kind(tbl.Kind) {
	case table.KindParquet, table.KindDelta:
		if strings.TrimSpace(tbl.URI) == "" {
			return fmt.Errorf("manifest parser: %s: %s tables require a uri", where, tbl.Kind)
		}
		if len(tbl.Rows) > 0 {
			return fmt.Errorf("manifest parser: %s: inline rows are only valid for static tables", where)
		}
	case table.KindStatic:
		if strings.TrimSpace(tbl.URI) != "" {
			return fmt.Errorf("manifest parser: %s: static tables do not take a uri", where)
		}
	default:
		return fmt.Errorf("manifest parser: %s: unknown kind %q", where, tbl.Kind)
	}

	if len(tbl.Columns) == 0 && tbl.SchemaFrom == nil {
		return fmt.Errorf("manifest parser: %s: columns or schema_from is required", where)
	}
	if len(tbl.Columns) > 0 && tbl.SchemaFrom != nil {
		return fmt.Errorf("manifest parser: %s: columns and schema_from are mutually exclusive", where)
	}
	if tbl.SchemaFrom != nil {
		if strings.TrimSpace(tbl.SchemaFrom.Source) == "" || strings.TrimSpace(tbl.SchemaFrom.Component) == "" {
			return fmt.Errorf("manifest parser: %s: schema_from requires source and component", where)
		}
	}

	columns := make(map[string]struct{}, len(tbl.Columns))
	for _, col := range tbl.Columns {
		if strings.TrimSpace(col.Name) == "" {
			return fmt.Errorf("manifest parser: %s: column name is required", where)
		}
		if _, exists := columns[col.Name]; exists {
			return fmt.Errorf("manifest parser: %s: duplicate column %q", where, col.Name)
		}
		columns[col.Name] = struct{}{}
		if _, err := table.ParseDataType(col.Type); err != nil {
			return fmt.Errorf("manifest parser: %s: column %q: %w", where, col.Name, err)
		}
	}

	if len(tbl.Partitions) > 0 {
		switch table.PartitioningScheme(tbl.PartitioningScheme) {
		case table.PartitioningDirectory, table.PartitioningHive:
		case "":
			return fmt.Errorf("manifest parser: %s: partitions require a partitioning_scheme", where)
		default:
			return fmt.Errorf("manifest parser: %s: unknown partitioning_scheme %q", where, tbl.PartitioningScheme)
		}
	}
	for _, partition := range tbl.Partitions {
		if strings.TrimSpace(partition.Column) == "" {
			return fmt.Errorf("manifest parser: %s: partition column is required", where)
		}
		// Partition columns must exist when the schema is declared inline;
		// imported schemas are checked by the model builder instead.
		if len(tbl.Columns) > 0 {
			if _, ok := columns[partition.Column]; !ok {
				return fmt.Errorf("manifest parser: %s: partition column %q not in schema", where, partition.Column)
			}
		}
	}

	for _, filter := range tbl.DocsFilters {
		if strings.TrimSpace(filter.Column) == "" {
			return fmt.Errorf("manifest parser: %s: docs filter column is required", where)
		}
		if !validOperator(filter.Operator) {
			return fmt.Errorf("manifest parser: %s: docs filter on %q: invalid operator %q", where, filter.Column, filter.Operator)
		}
	}

	return nil
}

func validOperator(op string) bool {
	switch table.Operator(op) {
	case table.OpEqual, table.OpNotEqual, table.OpLess, table.OpLessEqual,
		table.OpGreater, table.OpGreaterEqual, table.OpIn, table.OpNotIn,
		table.OpContains, table.OpIncludes, table.OpIncludesAny, table.OpIncludesAll:
		return true
	}
	return false
}
