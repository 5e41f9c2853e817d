package plan

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BartekS5/loadplan/pkg/models"
)

func TestResolveCell_PrefixedList(t *testing.T) {
	r := NewResolver(ctdPlan())
	col, ok := r.FindColumn("pubmed")
	require.True(t, ok)

	v, err := r.ResolveCell(col, "12345|67890")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"http://ctdbase.org/detail.go?type=reference&acc=12345",
		"http://ctdbase.org/detail.go?type=reference&acc=67890",
	}, v)
}

func TestResolveCell_Scalars(t *testing.T) {
	r := NewResolver(ctdPlan())

	score, ok := r.FindColumn("InferenceScore")
	require.True(t, ok)
	v, err := r.ResolveCell(score, "4.57")
	require.NoError(t, err)
	assert.Equal(t, 4.57, v)

	_, err = r.ResolveCell(score, "n/a")
	assert.Error(t, err)

	prefixed := models.Column{ColumnName: "Ref", AttributeName: "ref", ValuePrefix: "pubmed", DataType: models.TypeString}
	v, err = r.ResolveCell(prefixed, "111")
	require.NoError(t, err)
	assert.Equal(t, "http://ctdbase.org/detail.go?type=reference&acc=111", v)
}

func TestResolveCell_EmptyUsesDefault(t *testing.T) {
	r := NewResolver(ctdPlan())

	typ, ok := r.FindColumn("type")
	require.True(t, ok)
	v, err := r.ResolveCell(typ, "")
	require.NoError(t, err)
	assert.Equal(t, "gene", v)

	score, _ := r.FindColumn("InferenceScore")
	v, err = r.ResolveCell(score, "  ")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestResolveCell_UnknownPrefix(t *testing.T) {
	r := NewResolver(ctdPlan())
	col := models.Column{ColumnName: "X", ValuePrefix: "unknown", DataType: models.TypeListOfString, Delimiter: "|"}

	_, err := r.ResolveCell(col, "1|2")
	var unresolved *UnresolvedPrefixError
	assert.True(t, errors.As(err, &unresolved))
}

func TestResolveIdentifier(t *testing.T) {
	p := ctdPlan()
	r := NewResolver(p)

	id, err := r.ResolveEntityID(&p.SourcePlan, "7157")
	require.NoError(t, err)
	assert.Equal(t, "http://ctdbase.org/detail.go?type=gene&acc=7157", id)

	id, err = r.ResolveEntityID(&p.TargetPlan, "MESH:D003920")
	require.NoError(t, err)
	assert.Equal(t, "http://ctdbase.org/detail.go?type=disease&acc=MESH:D003920", id)

	id, err = r.ResolveIdentifier("", "OMIM:125853")
	require.NoError(t, err)
	assert.Equal(t, "OMIM:125853", id)

	_, err = r.ResolveEntityID(&p.SourcePlan, " ")
	assert.Error(t, err)

	_, err = r.ResolveIdentifier("hgnc", "1100")
	assert.Error(t, err)
}

func TestResolver_ConcurrentUse(t *testing.T) {
	r := NewResolver(ctdPlan())
	col, _ := r.FindColumn("pubmed")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := r.ResolveCell(col, "1|2|3")
			assert.NoError(t, err)
			assert.Len(t, v, 3)
		}()
	}
	wg.Wait()
}

func TestFindColumn(t *testing.T) {
	r := NewResolver(ctdPlan())

	col, ok := r.FindColumn("PubMedIDs")
	require.True(t, ok)
	assert.Equal(t, "pubmed", col.Attribute())

	_, ok = r.FindColumn("nope")
	assert.False(t, ok)
}
