package plan

import (
	"fmt"
	"strings"

	"github.com/BartekS5/loadplan/pkg/models"
	"github.com/BartekS5/loadplan/pkg/utils"
)

// Resolver expands identifiers and cell values using a plan's context.
// It only reads the plan, so one Resolver can be shared between goroutines.
type Resolver struct {
	Plan *models.LoadPlan
}

func NewResolver(p *models.LoadPlan) *Resolver {
	return &Resolver{Plan: p}
}

// ResolveIdentifier turns a raw identifier into a URI. With a prefix the
// context entry is prepended. Without one, a CURIE such as "MESH:D003920"
// is expanded when its namespace is in the context. Anything else is
// returned unchanged.
func (r *Resolver) ResolveIdentifier(prefix, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if prefix != "" {
		base, ok := r.Plan.Context.Lookup(prefix)
		if !ok {
			return "", &UnresolvedPrefixError{Path: "context", Prefix: prefix}
		}
		return base + raw, nil
	}

	if ns, local, found := strings.Cut(raw, ":"); found && ns != "" && local != "" {
		if base, ok := r.Plan.Context.LookupFold(ns); ok {
			return base + local, nil
		}
	}
	return raw, nil
}

// ResolveEntityID resolves a node identifier with the entity's rep_prefix.
func (r *Resolver) ResolveEntityID(e *models.EntityPlan, raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("empty value in column %s", e.RepColumn)
	}
	return r.ResolveIdentifier(e.RepPrefix, raw)
}

// ResolveCell converts one cell into the property value the column
// describes: a string, a float64, or a []string for list types. An empty
// cell falls back to the column's default_value, or nil without one.
func (r *Resolver) ResolveCell(col models.Column, cell string) (interface{}, error) {
	if strings.TrimSpace(cell) == "" {
		if col.DefaultValue == "" {
			return nil, nil
		}
		cell = col.DefaultValue
	}

	if col.DataType.IsList() {
		parts := utils.SplitList(cell, col.Delimiter)
		values := make([]string, 0, len(parts))
		for _, part := range parts {
			v, err := r.prefixValue(col, part)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return values, nil
	}

	val, err := utils.ConvertCell(cell, col.DataType)
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", col.Attribute(), err)
	}
	if s, ok := val.(string); ok && col.ValuePrefix != "" {
		return r.prefixValue(col, s)
	}
	return val, nil
}

func (r *Resolver) prefixValue(col models.Column, value string) (string, error) {
	if col.ValuePrefix == "" {
		return value, nil
	}
	base, ok := r.Plan.Context.Lookup(col.ValuePrefix)
	if !ok {
		return "", &UnresolvedPrefixError{Path: col.Attribute() + ".value_prefix", Prefix: col.ValuePrefix}
	}
	return base + value, nil
}

// FindColumn looks a property column up by attribute or column name, edge
// columns first, then source and target columns.
func (r *Resolver) FindColumn(name string) (models.Column, bool) {
	lists := [][]models.Column{
		r.Plan.EdgePlan.PropertyColumns,
		r.Plan.SourcePlan.PropertyColumns,
		r.Plan.TargetPlan.PropertyColumns,
	}
	for _, cols := range lists {
		for _, col := range cols {
			if col.Attribute() == name || col.ColumnName == name {
				return col, true
			}
		}
	}
	return models.Column{}, false
}
