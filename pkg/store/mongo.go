package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mlindgren/wirecut/pkg/graphio"
)

// MongoConfig configures a MongoDB-backed store.
type MongoConfig struct {
	URI        string // connection string (e.g. "mongodb://localhost:27017")
	Database   string // defaults to "wirecut"
	Collection string // defaults to "graphs"
}

// MongoStore persists snapshots as BSON documents keyed by name.
// Suitable for durable deployments; relies on graphio's bson tags.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// graphDoc wraps a snapshot with its name and save time.
type graphDoc struct {
	Name    string        `bson:"_id"`
	Graph   graphio.Graph `bson:"graph"`
	SavedAt time.Time     `bson:"saved_at"`
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "wirecut"
	}
	if cfg.Collection == "" {
		cfg.Collection = "graphs"
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo %s: %w", cfg.URI, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo %s: %w", cfg.URI, err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Save upserts the snapshot document.
func (s *MongoStore) Save(ctx context.Context, name string, g graphio.Graph) error {
	doc := graphDoc{Name: name, Graph: g, SavedAt: time.Now().UTC()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": name}, doc, options.Replace().SetUpsert(true))
	return err
}

// Load retrieves a snapshot by name.
func (s *MongoStore) Load(ctx context.Context, name string) (graphio.Graph, error) {
	var doc graphDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return graphio.Graph{}, ErrNotFound
	}
	if err != nil {
		return graphio.Graph{}, err
	}
	return doc.Graph, nil
}

// List returns all snapshot names, sorted.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var names []string
	for cursor.Next(ctx) {
		var doc struct {
			Name string `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		names = append(names, doc.Name)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	slices.Sort(names)
	return names, nil
}

// Delete removes a snapshot document.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": name})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close disconnects the Mongo client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
