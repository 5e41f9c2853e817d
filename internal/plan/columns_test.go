package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferencedColumns(t *testing.T) {
	p := ctdPlan()
	p.EdgePlan.PredicateColumn = "Relation"

	refs := ReferencedColumns(p)
	assert.Equal(t, []ColumnRef{
		{Path: "source_plan.rep_column", Column: "GeneID"},
		{Path: "source_plan.node_name_column", Column: "GeneSymbol"},
		{Path: "target_plan.rep_column", Column: "DiseaseID"},
		{Path: "target_plan.node_name_column", Column: "DiseaseName"},
		{Path: "edge_plan.predicate_column", Column: "Relation"},
		{Path: "edge_plan.property_columns[0].column_name", Column: "InferenceScore"},
		{Path: "edge_plan.property_columns[1].column_name", Column: "PubMedIDs"},
	}, refs)
}

func TestCheckColumns(t *testing.T) {
	refs := ReferencedColumns(ctdPlan())
	table := []string{"geneid", "GeneSymbol", "DiseaseID", "DiseaseName", "InferenceScore", "PubMedIDs"}
	assert.Empty(t, CheckColumns(refs, table))

	missing := CheckColumns(refs, table[:4])
	assert.Equal(t, []ColumnRef{
		{Path: "edge_plan.property_columns[0].column_name", Column: "InferenceScore"},
		{Path: "edge_plan.property_columns[1].column_name", Column: "PubMedIDs"},
	}, missing)
}
