package questions

import (
	"context"
	"testing"
	"time"

	"github.com/Nitingarg01/Major-project-sub001/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestQuestionDocumentStoredShape(t *testing.T) {
	now := time.Date(2025, 3, 14, 17, 0, 0, 0, time.FixedZone("SGT", 8*3600))
	q := models.Question{ID: "dsa-lru", Text: "Design an LRU cache.", PointValue: 50, Category: "design", Difficulty: "medium"}

	doc := newQuestionDocument(models.RoundDSA, q, now)
	assert.Equal(t, statusActive, doc.Status)
	assert.Equal(t, time.UTC, doc.CreatedAt.Location())
	assert.Equal(t, q, doc.toModel())

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)
	var fields bson.M
	require.NoError(t, bson.Unmarshal(raw, &fields))
	assert.Equal(t, "dsa-lru", fields["_id"])
	assert.Equal(t, "dsa", fields["round_type"])
	assert.Equal(t, "active", fields["status"])
}

func TestMongoClientGuards(t *testing.T) {
	_, err := NewMongoClient(context.Background(), "", "interview")
	assert.Error(t, err)

	var c *MongoClient
	assert.Error(t, c.Ping(context.Background()))
	assert.NoError(t, c.Disconnect(context.Background()))
	_, err = c.DB()
	assert.Error(t, err)
}

func TestNewMongoProviderLogsIndexFailure(t *testing.T) {
	// nothing listens on port 1; the driver connects lazily so only the
	// index call fails
	client, err := NewMongoClient(context.Background(),
		"mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=100&connectTimeoutMS=100", "interview")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	core, logs := observer.New(zapcore.WarnLevel)
	provider, err := NewMongoProvider(context.Background(), client, "questions", zap.New(core))
	require.NoError(t, err)
	require.NotNil(t, provider)

	entries := logs.FilterMessage("failed to create question index").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "questions", entries[0].ContextMap()["collection"])

	assert.Error(t, provider.EnsureIndexes(context.Background()))
}
