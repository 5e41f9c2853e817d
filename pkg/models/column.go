package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// DataType is the declared type of a property value.
type DataType string

const (
	TypeString       DataType = "string"
	TypeDouble       DataType = "double"
	TypeListOfString DataType = "list_of_string"
)

// shorthandSep separates the column name from the type in "Name::type".
const shorthandSep = "::"

// KnownDataTypes lists every data type a plan may declare.
var KnownDataTypes = []DataType{TypeString, TypeDouble, TypeListOfString}

// IsKnown reports whether d is one of KnownDataTypes.
func (d DataType) IsKnown() bool {
	for _, known := range KnownDataTypes {
		if d == known {
			return true
		}
	}
	return false
}

// IsList reports whether values of this type are split on a delimiter.
func (d DataType) IsList() bool {
	return strings.HasPrefix(string(d), "list_of_")
}

// Column is the canonical property descriptor. A plan may spell it either as
// the shorthand string "Name::type" or as an object; both decode into the
// same Column, with AttributeName and DataType defaults filled in.
type Column struct {
	ColumnName    string   `json:"column_name,omitempty" yaml:"column_name,omitempty"`
	AttributeName string   `json:"attribute_name,omitempty" yaml:"attribute_name,omitempty"`
	DefaultValue  string   `json:"default_value,omitempty" yaml:"default_value,omitempty"`
	ValuePrefix   string   `json:"value_prefix,omitempty" yaml:"value_prefix,omitempty"`
	DataType      DataType `json:"data_type,omitempty" yaml:"data_type,omitempty"`
	Delimiter     string   `json:"delimiter,omitempty" yaml:"delimiter,omitempty"`

	// shorthand records that the column was written as "Name::type", so it
	// is written back the same way. bare marks the "Name" spelling.
	shorthand bool
	bare      bool
}

// columnFields has Column's layout without its marshaling methods.
type columnFields Column

// ParseShorthand decodes a "Name::type" descriptor. A bare "Name" is a
// string column.
func ParseShorthand(s string) Column {
	name, typ, found := strings.Cut(s, shorthandSep)
	c := Column{
		ColumnName: strings.TrimSpace(name),
		shorthand:  true,
		bare:       !found,
	}
	if found {
		c.DataType = DataType(strings.TrimSpace(typ))
	}
	c.normalize()
	return c
}

// Shorthand returns the "Name::type" spelling of the column, or just "Name"
// for a string column that was written without a type.
func (c Column) Shorthand() string {
	if c.bare && c.DataType == TypeString {
		return c.ColumnName
	}
	return c.ColumnName + shorthandSep + string(c.DataType)
}

// IsShorthand reports whether the column was decoded from a shorthand string.
func (c Column) IsShorthand() bool {
	return c.shorthand
}

// Attribute returns the name of the property the column produces.
func (c Column) Attribute() string {
	if c.AttributeName != "" {
		return c.AttributeName
	}
	return c.ColumnName
}

// canShorthand reports whether the shorthand spelling loses nothing.
func (c Column) canShorthand() bool {
	return c.shorthand &&
		c.ColumnName != "" &&
		c.AttributeName == c.ColumnName &&
		c.DefaultValue == "" &&
		c.ValuePrefix == "" &&
		c.Delimiter == ""
}

func (c *Column) normalize() {
	if c.AttributeName == "" {
		c.AttributeName = c.ColumnName
	}
	if c.DataType == "" {
		c.DataType = TypeString
	}
}

// UnmarshalJSON accepts both the shorthand string and the object form.
func (c *Column) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*c = ParseShorthand(s)
		return nil
	}

	var fields columnFields
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return fmt.Errorf("property column must be a \"Name::type\" string or an object: %w", err)
	}
	*c = Column(fields)
	c.shorthand, c.bare = false, false
	c.normalize()
	return nil
}

// MarshalJSON writes the column back in the form it was read in.
func (c Column) MarshalJSON() ([]byte, error) {
	if c.canShorthand() {
		return json.Marshal(c.Shorthand())
	}
	return json.Marshal(columnFields(c))
}

// UnmarshalYAML accepts both the shorthand string and the mapping form.
func (c *Column) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*c = ParseShorthand(s)
		return nil

	case yaml.MappingNode:
		var fields columnFields
		if err := node.Decode(&fields); err != nil {
			return err
		}
		*c = Column(fields)
		c.shorthand, c.bare = false, false
		c.normalize()
		return nil

	default:
		return fmt.Errorf("property column must be a string or a mapping, got %v at line %d", node.Kind, node.Line)
	}
}

// MarshalYAML writes the column back in the form it was read in.
func (c Column) MarshalYAML() (any, error) {
	if c.canShorthand() {
		return c.Shorthand(), nil
	}
	return columnFields(c), nil
}
