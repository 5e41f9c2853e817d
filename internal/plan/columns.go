package plan

import (
	"fmt"
	"strings"

	"github.com/BartekS5/loadplan/pkg/models"
)

// ColumnRef is a source-table column named somewhere in a plan.
type ColumnRef struct {
	Path   string
	Column string
}

// ReferencedColumns lists every source-table column the plan reads, in
// document order. Default-only properties read no column and are skipped.
func ReferencedColumns(p *models.LoadPlan) []ColumnRef {
	var refs []ColumnRef
	add := func(path, column string) {
		if column != "" {
			refs = append(refs, ColumnRef{Path: path, Column: column})
		}
	}

	entities := []struct {
		path string
		plan *models.EntityPlan
	}{
		{"source_plan", &p.SourcePlan},
		{"target_plan", &p.TargetPlan},
	}
	for _, e := range entities {
		add(e.path+".rep_column", e.plan.RepColumn)
		add(e.path+".node_name_column", e.plan.NodeNameColumn)
		for i, col := range e.plan.PropertyColumns {
			add(fmt.Sprintf("%s.property_columns[%d].column_name", e.path, i), col.ColumnName)
		}
	}

	add("edge_plan.predicate_column", p.EdgePlan.PredicateColumn)
	for i, col := range p.EdgePlan.PropertyColumns {
		add(fmt.Sprintf("edge_plan.property_columns[%d].column_name", i), col.ColumnName)
	}
	return refs
}

// CheckColumns returns the references whose column is not in available.
// Names are compared case-insensitively, as SQL Server does by default.
func CheckColumns(refs []ColumnRef, available []string) []ColumnRef {
	have := make(map[string]struct{}, len(available))
	for _, name := range available {
		have[strings.ToLower(name)] = struct{}{}
	}

	var missing []ColumnRef
	for _, ref := range refs {
		if _, ok := have[strings.ToLower(ref.Column)]; !ok {
			missing = append(missing, ref)
		}
	}
	return missing
}
