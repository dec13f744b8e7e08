// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package sales

import (
	"fmt"
	"time"
)

// FieldType is the logical type of a column. Storage backends map it to
// their own SQL types.
type FieldType int

const (
	// TypeString is free text.
	TypeString FieldType = iota
	// TypeFloat is a float64.
	TypeFloat
	// TypeInt is an int64.
	TypeInt
	// TypeDate is a calendar date held as a UTC midnight time.Time.
	TypeDate
)

func (t FieldType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeFloat:
		return "float"
	case TypeInt:
		return "int"
	case TypeDate:
		return "date"
	default:
		return fmt.Sprintf("FieldType(%d)", int(t))
	}
}

// Field declares one column of a schema.
type Field struct {
	Name string
	Type FieldType
	// Required fields must appear in the file header. Their cells may still be empty.
	Required bool
	// Default replaces null cells when non-nil. Its Go type must match Type.
	Default any
}

// Schema is the typed layout a sales file is checked against at load time.
type Schema struct {
	Table  string
	Fields []Field
}

// Well-known column names.
const (
	ColumnOrderDate  = "order_date"
	ColumnShipDate   = "ship_date"
	ColumnPostalCode = "postal_code"
	ColumnProfit     = "profit"
	ColumnSales      = "sales"
	// ColumnSubCategory keeps its hyphen: normalization only replaces spaces.
	ColumnSubCategory = "sub-category"
)

// UnknownPostalCode fills empty postal_code cells.
const UnknownPostalCode = "Unknown"

// DefaultSchema returns the retail order layout (one row per order line).
func DefaultSchema() Schema {
	return Schema{
		Table: "sales",
		Fields: []Field{
			{Name: "row_id", Type: TypeInt},
			{Name: "order_id", Type: TypeString},
			{Name: ColumnOrderDate, Type: TypeDate, Required: true},
			{Name: ColumnShipDate, Type: TypeDate},
			{Name: "ship_mode", Type: TypeString},
			{Name: "customer_id", Type: TypeString},
			{Name: "customer_name", Type: TypeString},
			{Name: "segment", Type: TypeString},
			{Name: "country", Type: TypeString},
			{Name: "city", Type: TypeString},
			{Name: "state", Type: TypeString},
			{Name: ColumnPostalCode, Type: TypeString, Default: UnknownPostalCode},
			{Name: "region", Type: TypeString},
			{Name: "product_id", Type: TypeString},
			{Name: "category", Type: TypeString},
			{Name: ColumnSubCategory, Type: TypeString},
			{Name: "product_name", Type: TypeString},
			{Name: ColumnSales, Type: TypeFloat, Required: true},
			{Name: "quantity", Type: TypeInt},
			{Name: "discount", Type: TypeFloat},
			{Name: ColumnProfit, Type: TypeFloat, Default: float64(0)},
		},
	}
}

// Lookup returns the field called name.
func (s Schema) Lookup(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Validate checks that field names are normalized and unique and that
// defaults match their declared types.
func (s Schema) Validate() error {
	if s.Table == "" {
		return fmt.Errorf("schema has no table name")
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("schema %s has no fields", s.Table)
	}

	seen := make(map[string]struct{}, len(s.Fields))
	for _, f := range s.Fields {
		if f.Name == "" || NormalizeColumnName(f.Name) != f.Name {
			return fmt.Errorf("schema field %q is not a normalized column name", f.Name)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("%w: schema declares %q twice", ErrDuplicateColumn, f.Name)
		}
		seen[f.Name] = struct{}{}

		if f.Default != nil && !defaultMatches(f.Type, f.Default) {
			return fmt.Errorf("schema field %q: default %v (%T) is not a %s", f.Name, f.Default, f.Default, f.Type)
		}
	}
	return nil
}

func defaultMatches(t FieldType, v any) bool {
	switch t {
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeFloat:
		_, ok := v.(float64)
		return ok
	case TypeInt:
		_, ok := v.(int64)
		return ok
	case TypeDate:
		_, ok := v.(time.Time)
		return ok
	default:
		return false
	}
}
