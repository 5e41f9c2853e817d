// Package plan validates load plans and resolves identifiers and cell values
// against a plan's context.
package plan

import (
	"fmt"
	"net/url"

	"github.com/BartekS5/loadplan/pkg/models"
	"github.com/BartekS5/loadplan/pkg/utils"
)

// Validate checks the whole plan and returns nil or a *ValidationErrors
// holding one named error per problem.
func Validate(p *models.LoadPlan) error {
	errs := &ValidationErrors{}
	if p == nil {
		errs.add(&MissingFieldError{Path: "load_plan"})
		return errs
	}

	for _, name := range p.Context.Names() {
		path := fmt.Sprintf("context.%s", name)
		value := p.Context[name]
		if value == "" {
			errs.add(&MissingFieldError{Path: path})
			continue
		}
		if !isAbsoluteURI(value) {
			errs.add(&InvalidURIError{Path: path, Value: value})
		}
	}

	validateEntity(errs, p.Context, "source_plan", &p.SourcePlan)
	validateEntity(errs, p.Context, "target_plan", &p.TargetPlan)

	if p.EdgePlan.DefaultPredicate == "" {
		errs.add(&MissingFieldError{Path: "edge_plan.default_predicate"})
	}
	validateColumns(errs, p.Context, "edge_plan.property_columns", p.EdgePlan.PropertyColumns)

	return errs.orNil()
}

func validateEntity(errs *ValidationErrors, ctx models.Context, path string, e *models.EntityPlan) {
	if e.RepColumn == "" {
		errs.add(&MissingFieldError{Path: path + ".rep_column"})
	}
	if e.NodeNameColumn == "" {
		errs.add(&MissingFieldError{Path: path + ".node_name_column"})
	}
	if e.RepPrefix != "" {
		if _, ok := ctx.Lookup(e.RepPrefix); !ok {
			errs.add(&UnresolvedPrefixError{Path: path + ".rep_prefix", Prefix: e.RepPrefix})
		}
	}
	validateColumns(errs, ctx, path+".property_columns", e.PropertyColumns)
}

func validateColumns(errs *ValidationErrors, ctx models.Context, path string, cols []models.Column) {
	for i, col := range cols {
		colPath := fmt.Sprintf("%s[%d]", path, i)

		if col.ColumnName == "" && col.AttributeName == "" {
			errs.add(&MissingFieldError{Path: colPath + ".attribute_name"})
		}

		if !col.DataType.IsKnown() {
			errs.add(&UnknownTypeError{Path: colPath + ".data_type", Type: string(col.DataType)})
		} else if col.DataType.IsList() && col.Delimiter == "" {
			errs.add(&MissingDelimiterError{Path: colPath + ".delimiter"})
		} else if !col.DataType.IsList() && col.DefaultValue != "" {
			if _, err := utils.ConvertCell(col.DefaultValue, col.DataType); err != nil {
				errs.add(&InvalidDefaultError{
					Path:  colPath + ".default_value",
					Value: col.DefaultValue,
					Type:  string(col.DataType),
					Err:   err,
				})
			}
		}

		if col.ValuePrefix != "" {
			if _, ok := ctx.Lookup(col.ValuePrefix); !ok {
				errs.add(&UnresolvedPrefixError{Path: colPath + ".value_prefix", Prefix: col.ValuePrefix})
			}
		}
	}
}

func isAbsoluteURI(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && (u.Host != "" || u.Opaque != "")
}

// Warnings returns non-fatal findings that are worth a log line.
func Warnings(p *models.LoadPlan) []string {
	if p == nil {
		return nil
	}
	var out []string
	out = append(out, columnWarnings("source_plan.property_columns", p.SourcePlan.PropertyColumns)...)
	out = append(out, columnWarnings("target_plan.property_columns", p.TargetPlan.PropertyColumns)...)
	out = append(out, columnWarnings("edge_plan.property_columns", p.EdgePlan.PropertyColumns)...)
	return out
}

func columnWarnings(path string, cols []models.Column) []string {
	var out []string
	seen := make(map[string]int, len(cols))
	for i, col := range cols {
		colPath := fmt.Sprintf("%s[%d]", path, i)
		if col.Delimiter != "" && !col.DataType.IsList() {
			out = append(out, fmt.Sprintf("%s: delimiter %q is ignored for scalar type %q", colPath, col.Delimiter, col.DataType))
		}
		attr := col.Attribute()
		if attr == "" {
			continue
		}
		if first, dup := seen[attr]; dup {
			out = append(out, fmt.Sprintf("%s: attribute %q already produced by %s[%d]", colPath, attr, path, first))
			continue
		}
		seen[attr] = i
	}
	return out
}
