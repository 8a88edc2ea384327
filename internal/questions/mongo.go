package questions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Nitingarg01/Major-project-sub001/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	defaultQuestionsDB         = "interviews"
	defaultQuestionsCollection = "questions"
	statusActive               = "active"
	indexTimeout               = 5 * time.Second
)

// MongoClient wraps a connected mongo client and the database questions live in.
type MongoClient struct {
	raw    *mongo.Client
	dbName string
}

func NewMongoClient(ctx context.Context, uri, dbName string) (*MongoClient, error) {
	if uri == "" {
		return nil, errors.New("MONGO_URI is empty")
	}
	if dbName == "" {
		dbName = defaultQuestionsDB
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	c, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	return &MongoClient{raw: c, dbName: dbName}, nil
}

func (c *MongoClient) DB() (*mongo.Database, error) {
	if c == nil || c.raw == nil {
		return nil, errors.New("mongo client not initialized")
	}
	return c.raw.Database(c.dbName), nil
}

func (c *MongoClient) Ping(ctx context.Context) error {
	if c == nil || c.raw == nil {
		return errors.New("mongo client not initialized")
	}
	return c.raw.Ping(ctx, nil)
}

func (c *MongoClient) Disconnect(ctx context.Context) error {
	if c == nil || c.raw == nil {
		return nil
	}
	return c.raw.Disconnect(ctx)
}

// questionDocument is the stored shape of a bank question.
type questionDocument struct {
	ID         string    `bson:"_id"`
	RoundType  string    `bson:"round_type"`
	Text       string    `bson:"text"`
	Category   string    `bson:"category,omitempty"`
	Difficulty string    `bson:"difficulty,omitempty"`
	PointValue float64   `bson:"point_value,omitempty"`
	Status     string    `bson:"status"`
	CreatedAt  time.Time `bson:"created_at"`
}

func (d questionDocument) toModel() models.Question {
	return models.Question{
		ID:         d.ID,
		Text:       d.Text,
		PointValue: d.PointValue,
		Category:   d.Category,
		Difficulty: d.Difficulty,
	}
}

func newQuestionDocument(roundType models.RoundType, q models.Question, now time.Time) questionDocument {
	return questionDocument{
		ID:         q.ID,
		RoundType:  string(roundType),
		Text:       q.Text,
		Category:   q.Category,
		Difficulty: q.Difficulty,
		PointValue: q.PointValue,
		Status:     statusActive,
		CreatedAt:  now.UTC(),
	}
}

// MongoProvider reads questions from a mongo collection.
type MongoProvider struct {
	col *mongo.Collection
}

// NewMongoProvider binds the provider to a collection. A failure to create
// the lookup index is logged and does not stop the provider from serving.
func NewMongoProvider(ctx context.Context, c *MongoClient, collection string, logger *zap.Logger) (*MongoProvider, error) {
	db, err := c.DB()
	if err != nil {
		return nil, err
	}
	if collection == "" {
		collection = defaultQuestionsCollection
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	mp := &MongoProvider{col: db.Collection(collection)}
	if err := mp.EnsureIndexes(ctx); err != nil {
		logger.Warn("failed to create question index",
			zap.String("collection", collection),
			zap.Error(err))
	}
	return mp, nil
}

// EnsureIndexes creates the (round_type, status) index queries filter on.
func (mp *MongoProvider) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := mp.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "round_type", Value: 1}, {Key: "status", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create index on %s: %w", mp.col.Name(), err)
	}
	return nil
}

func (mp *MongoProvider) Name() string { return "mongo" }

func (mp *MongoProvider) Questions(ctx context.Context, q Query) ([]models.Question, error) {
	filter := bson.M{"round_type": string(q.RoundType), "status": statusActive}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cur, err := mp.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, &ProviderError{Provider: mp.Name(), Message: "find failed", Err: err}
	}
	defer cur.Close(ctx)

	var docs []questionDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, &ProviderError{Provider: mp.Name(), Message: "decode failed", Err: err}
	}
	if len(docs) == 0 {
		return nil, ErrNoQuestions
	}

	pool := make([]models.Question, len(docs))
	for i, d := range docs {
		pool[i] = d.toModel()
	}
	ordered := orderByDifficulty(pool, q.Difficulty)
	if q.Count > 0 && q.Count < len(ordered) {
		ordered = ordered[:q.Count]
	}
	for i := range ordered {
		ordered[i].Text = fillPlaceholders(ordered[i].Text, q)
	}
	return ordered, nil
}

// Seed upserts questions for a round type and returns how many were written.
func (mp *MongoProvider) Seed(ctx context.Context, roundType models.RoundType, qs []models.Question) (int, error) {
	now := time.Now()
	written := 0
	for _, q := range qs {
		doc := newQuestionDocument(roundType, q, now)
		_, err := mp.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
		if err != nil {
			return written, fmt.Errorf("failed to seed question %s: %w", q.ID, err)
		}
		written++
	}
	return written, nil
}
