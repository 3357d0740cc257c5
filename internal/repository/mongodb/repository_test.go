package mongodb

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/storemanager/internal/domain/models"
)

// newTestRepository connects to MONGODB_TEST_URI and uses a throwaway database.
func newTestRepository(t *testing.T) *MongoDBRepository {
	t.Helper()

	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbName := fmt.Sprintf("storemanager_test_%d", time.Now().UnixNano())
	repo, err := NewMongoDBRepository(ctx, uri, dbName)
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = repo.client.Database(dbName).Drop(ctx)
		_ = repo.Close(ctx)
	})
	return repo
}

func TestMongoDBRepository(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Seed(ctx, models.SeedItems()))
	// second seed is a no-op
	require.NoError(t, repo.Seed(ctx, models.SeedItems()))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SeedItems(), items)

	created, err := repo.Create(ctx, models.ItemInput{Name: "Keyboard", Quantity: float64(5), Price: 49.99})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	items, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, created, items[3])

	require.NoError(t, repo.Delete(ctx, "2"))
	require.NoError(t, repo.Delete(ctx, "missing"))

	items, err = repo.List(ctx)
	require.NoError(t, err)
	got := make([]string, 0, len(items))
	for _, it := range items {
		got = append(got, it.ID)
	}
	assert.Equal(t, []string{"1", "3", created.ID}, got)
}

func TestCreateOrderFollowsCounter(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Seed(ctx, models.SeedItems()))
	want := []string{"1", "2", "3"}
	for i := 0; i < 20; i++ {
		created, err := repo.Create(ctx, models.ItemInput{Name: fmt.Sprintf("item-%d", i)})
		require.NoError(t, err)
		want = append(want, created.ID)
	}

	items, err := repo.List(ctx)
	require.NoError(t, err)
	got := make([]string, 0, len(items))
	for _, it := range items {
		got = append(got, it.ID)
	}
	assert.Equal(t, want, got)
}

func TestItemDocumentConversion(t *testing.T) {
	doc := itemDocument{ID: "x", Name: "Cable", Quantity: "7", Price: nil, Position: 42}
	assert.Equal(t, models.Item{ID: "x", Name: "Cable", Quantity: "7"}, doc.item())
}

func TestSeedDocumentsSortBeforeCreatedItems(t *testing.T) {
	docs := seedDocuments(models.SeedItems())
	require.Len(t, docs, 3)

	prev := int64(-1 << 62)
	for i, d := range docs {
		doc, ok := d.(itemDocument)
		require.True(t, ok)
		assert.Equal(t, models.SeedItems()[i].ID, doc.ID)
		assert.Less(t, doc.Position, int64(1), "seed positions stay below the first counter value")
		assert.Greater(t, doc.Position, prev)
		prev = doc.Position
	}

	assert.Empty(t, seedDocuments(nil))
}

func TestPositionCounterUpdate(t *testing.T) {
	filter, update, opts := positionCounterUpdate()

	assert.Equal(t, bson.D{{Key: "_id", Value: positionCounterID}}, filter)
	assert.Equal(t, bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: int64(1)}}}}, update)
	require.NotNil(t, opts.Upsert)
	assert.True(t, *opts.Upsert)
	require.NotNil(t, opts.ReturnDocument)
	assert.Equal(t, options.After, *opts.ReturnDocument)
}
