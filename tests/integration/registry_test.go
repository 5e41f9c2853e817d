package integration

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/BartekS5/loadplan/internal/config"
	"github.com/BartekS5/loadplan/internal/plan"
	"github.com/BartekS5/loadplan/internal/registry"
	"github.com/BartekS5/loadplan/internal/schema"
	"github.com/BartekS5/loadplan/pkg/database"
)

const (
	planPath  = "../../configs/ctd_gene_disease_plan.json"
	testTable = "dbo.loadplan_it_ctd_gene_disease"
	testDB    = "loadplan_it"
)

func TestRegistryPublishFetch(t *testing.T) {
	connString := os.Getenv("MONGO_CONNECTION_STRING")
	if connString == "" {
		t.Skip("MONGO_CONNECTION_STRING not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := database.ConnectMongo(ctx, connString)
	require.NoError(t, err)
	defer client.Disconnect(context.Background())
	cleanupRegistry(t, client)
	defer cleanupRegistry(t, client)

	p, err := config.LoadPlanFile(planPath)
	require.NoError(t, err)

	reg := registry.NewMongoRegistry(client, testDB)
	first, err := reg.Publish(ctx, "ctd-gene-disease", p)
	require.NoError(t, err)
	second, err := reg.Publish(ctx, "ctd-gene-disease", p)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	fetched, summary, err := reg.Fetch(ctx, "ctd-gene-disease")
	require.NoError(t, err)
	assert.Equal(t, second, summary.Revision)
	assert.Equal(t, p, fetched)

	list, err := reg.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ctd-gene-disease", list[0].Name)

	require.NoError(t, reg.Delete(ctx, "ctd-gene-disease"))
	_, _, err = reg.Fetch(ctx, "ctd-gene-disease")
	assert.True(t, errors.Is(err, registry.ErrPlanNotFound))
}

func TestCheckColumnsAgainstSQLServer(t *testing.T) {
	connString := os.Getenv("SQL_CONNECTION_STRING")
	if connString == "" {
		t.Skip("SQL_CONNECTION_STRING not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.ConnectSQL(ctx, connString)
	require.NoError(t, err)
	defer db.Close()

	createSourceTable(t, db)
	defer db.Exec("DROP TABLE IF EXISTS " + testTable)

	p, err := config.LoadPlanFile(planPath)
	require.NoError(t, err)

	cols, err := schema.NewInspector(db).TableColumns(ctx, testTable)
	require.NoError(t, err)

	missing := plan.CheckColumns(plan.ReferencedColumns(p), cols)
	require.Len(t, missing, 1)
	assert.Equal(t, "PubMedIDs", missing[0].Column)
}

// createSourceTable mirrors the CTD gene-disease export without PubMedIDs.
func createSourceTable(t *testing.T, db *sql.DB) {
	db.Exec("DROP TABLE IF EXISTS " + testTable)
	_, err := db.Exec(`CREATE TABLE ` + testTable + ` (
		GeneSymbol NVARCHAR(64),
		GeneID NVARCHAR(32),
		DiseaseName NVARCHAR(256),
		DiseaseID NVARCHAR(32),
		DirectEvidence NVARCHAR(128),
		InferenceChemicalName NVARCHAR(256),
		InferenceScore FLOAT,
		OmimIDs NVARCHAR(256)
	)`)
	if err != nil {
		t.Fatalf("Failed to create source table: %v", err)
	}
}

func cleanupRegistry(t *testing.T, client *mongo.Client) {
	coll := client.Database(testDB).Collection(registry.Collection)
	if _, err := coll.DeleteMany(context.Background(), bson.M{}); err != nil {
		t.Logf("cleanup failed: %v", err)
	}
}
