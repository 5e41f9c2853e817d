// Package registry keeps validated load plans in MongoDB so that every
// ingestion host reads the same reviewed copy.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BartekS5/loadplan/internal/config"
	"github.com/BartekS5/loadplan/internal/plan"
	"github.com/BartekS5/loadplan/pkg/logger"
	"github.com/BartekS5/loadplan/pkg/models"
)

const Collection = "load_plans"

var ErrPlanNotFound = errors.New("load plan not found")

// Record is one stored plan.
type Record struct {
	Name        string    `bson:"name"`
	Revision    string    `bson:"revision"`
	PublishedAt time.Time `bson:"published_at"`
	Plan        bson.Raw  `bson:"plan,omitempty"`
}

// Summary describes a stored plan without its body.
type Summary struct {
	Name        string
	Revision    string
	PublishedAt time.Time
}

type MongoRegistry struct {
	Client   *mongo.Client
	Database string
	Timeout  time.Duration
}

func NewMongoRegistry(client *mongo.Client, database string) *MongoRegistry {
	return &MongoRegistry{
		Client:   client,
		Database: database,
		Timeout:  30 * time.Second,
	}
}

func (r *MongoRegistry) coll() *mongo.Collection {
	return r.Client.Database(r.Database).Collection(Collection)
}

// Publish validates p and upserts it under name. Each publish gets a new
// revision id, which is returned.
func (r *MongoRegistry) Publish(ctx context.Context, name string, p *models.LoadPlan) (string, error) {
	if name == "" {
		return "", errors.New("plan name is required")
	}
	if err := plan.Validate(p); err != nil {
		return "", err
	}

	doc, err := toDocument(p)
	if err != nil {
		return "", err
	}

	revision := uuid.NewString()
	filter := bson.M{"name": name}
	update := bson.M{"$set": bson.M{
		"name":         name,
		"revision":     revision,
		"published_at": time.Now().UTC(),
		"plan":         doc,
	}}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	res, err := r.coll().UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return "", fmt.Errorf("failed to publish plan %s: %w", name, err)
	}
	logger.Infof("Published plan %s revision %s (match %d, upsert %d)", name, revision, res.MatchedCount, res.UpsertedCount)
	return revision, nil
}

// Fetch returns the stored plan, validated again on the way out.
func (r *MongoRegistry) Fetch(ctx context.Context, name string) (*models.LoadPlan, *Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	var rec Record
	err := r.coll().FindOne(ctx, bson.M{"name": name}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil, fmt.Errorf("%w: %s", ErrPlanNotFound, name)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch plan %s: %w", name, err)
	}

	p, err := fromDocument(rec.Plan)
	if err != nil {
		return nil, nil, fmt.Errorf("stored plan %s revision %s: %w", name, rec.Revision, err)
	}
	return p, &Summary{Name: rec.Name, Revision: rec.Revision, PublishedAt: rec.PublishedAt}, nil
}

// List returns every stored plan sorted by name.
func (r *MongoRegistry) List(ctx context.Context) ([]Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	findOpts := options.Find().
		SetSort(bson.M{"name": 1}).
		SetProjection(bson.M{"plan": 0})

	cursor, err := r.coll().Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer cursor.Close(ctx)

	var out []Summary
	for cursor.Next(ctx) {
		var rec Record
		if err := cursor.Decode(&rec); err != nil {
			logger.Errorf("Error decoding plan record: %v", err)
			continue
		}
		out = append(out, Summary{Name: rec.Name, Revision: rec.Revision, PublishedAt: rec.PublishedAt})
	}
	return out, cursor.Err()
}

// Delete removes a stored plan.
func (r *MongoRegistry) Delete(ctx context.Context, name string) error {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	res, err := r.coll().DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return fmt.Errorf("failed to delete plan %s: %w", name, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", ErrPlanNotFound, name)
	}
	return nil
}

// toDocument goes through the plan's JSON form so shorthand columns are
// stored the way they are written in the file.
func toDocument(p *models.LoadPlan) (bson.D, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode plan: %w", err)
	}
	var doc bson.D
	if err := bson.UnmarshalExtJSON(data, false, &doc); err != nil {
		return nil, fmt.Errorf("failed to convert plan to BSON: %w", err)
	}
	return doc, nil
}

func fromDocument(raw bson.Raw) (*models.LoadPlan, error) {
	if len(raw) == 0 {
		return nil, errors.New("record has no plan body")
	}
	data, err := bson.MarshalExtJSON(raw, false, false)
	if err != nil {
		return nil, fmt.Errorf("failed to convert BSON to JSON: %w", err)
	}
	return config.ParsePlan(data, config.FormatJSON)
}
