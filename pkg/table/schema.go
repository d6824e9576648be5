package table

import (
	"fmt"
	"strings"
)

// TypeKind enumerates the column types the catalog understands. The set is
// intentionally small; it covers what the supported table formats expose.
type TypeKind string

const (
	TypeString    TypeKind = "string"
	TypeInt32     TypeKind = "int32"
	TypeInt64     TypeKind = "int64"
	TypeFloat32   TypeKind = "float32"
	TypeFloat64   TypeKind = "float64"
	TypeBool      TypeKind = "bool"
	TypeDate      TypeKind = "date"
	TypeTimestamp TypeKind = "timestamp"
	TypeDecimal   TypeKind = "decimal"
	TypeList      TypeKind = "list"
)

// DataType describes a column type. List types carry an element type and
// decimal types carry precision/scale.
type DataType struct {
	Kind      TypeKind
	Elem      *DataType
	Precision int
	Scale     int
}

// String renders the manifest notation for the type, e.g. "list<string>" or
// "decimal(12,2)".
func (t DataType) String() string {
	switch t.Kind {
	case TypeList:
		if t.Elem == nil {
			return "list"
		}
		return "list<" + t.Elem.String() + ">"
	case TypeDecimal:
		if t.Precision > 0 {
			return fmt.Sprintf("decimal(%d,%d)", t.Precision, t.Scale)
		}
		return "decimal"
	default:
		return string(t.Kind)
	}
}

// IsList reports whether the type is a list type.
func (t DataType) IsList() bool {
	return t.Kind == TypeList
}

// Scalar constructs a DataType for a non-parameterised kind.
func Scalar(kind TypeKind) DataType {
	return DataType{Kind: kind}
}

// ListOf constructs a list type with the given element type.
func ListOf(elem DataType) DataType {
	e := elem
	return DataType{Kind: TypeList, Elem: &e}
}

// Decimal constructs a decimal type with precision and scale.
func Decimal(precision, scale int) DataType {
	return DataType{Kind: TypeDecimal, Precision: precision, Scale: scale}
}

// ParseDataType parses the manifest notation produced by DataType.String.
func ParseDataType(raw string) (DataType, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return DataType{}, fmt.Errorf("table: data type is required")
	}

	if strings.HasPrefix(text, "list<") && strings.HasSuffix(text, ">") {
		inner := text[len("list<") : len(text)-1]
		elem, err := ParseDataType(inner)
		if err != nil {
			return DataType{}, fmt.Errorf("table: list element type: %w", err)
		}
		return ListOf(elem), nil
	}

	if strings.HasPrefix(text, "decimal(") && strings.HasSuffix(text, ")") {
		var precision, scale int
		if _, err := fmt.Sscanf(text, "decimal(%d,%d)", &precision, &scale); err != nil {
			return DataType{}, fmt.Errorf("table: invalid decimal type %q", raw)
		}
		return Decimal(precision, scale), nil
	}

	switch TypeKind(text) {
	case TypeString, TypeInt32, TypeInt64, TypeFloat32, TypeFloat64,
		TypeBool, TypeDate, TypeTimestamp, TypeDecimal:
		return Scalar(TypeKind(text)), nil
	}
	return DataType{}, fmt.Errorf("table: unknown data type %q", raw)
}

// Column describes a single column in a table schema.
type Column struct {
	Name     string
	Type     DataType
	Nullable bool
}

// Schema is an ordered list of columns.
type Schema struct {
	Columns []Column
}

// NewSchema constructs a Schema validating column names are unique and
// non-empty.
func NewSchema(columns ...Column) (Schema, error) {
	seen := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		name := strings.TrimSpace(col.Name)
		if name == "" {
			return Schema{}, fmt.Errorf("table: column name is required")
		}
		if _, exists := seen[name]; exists {
			return Schema{}, fmt.Errorf("table: duplicate column %q", name)
		}
		seen[name] = struct{}{}
	}
	return Schema{Columns: columns}, nil
}

// MustNewSchema panics if the schema cannot be created. Useful for tests and
// code-defined catalogs.
func MustNewSchema(columns ...Column) Schema {
	schema, err := NewSchema(columns...)
	if err != nil {
		panic(err)
	}
	return schema
}

// Column returns the column with the given name.
func (s Schema) Column(name string) (Column, bool) {
	for _, col := range s.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// Names returns the column names in declaration order.
func (s Schema) Names() []string {
	names := make([]string, 0, len(s.Columns))
	for _, col := range s.Columns {
		names = append(names, col.Name)
	}
	return names
}
