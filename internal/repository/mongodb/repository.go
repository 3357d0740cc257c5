package mongodb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/storemanager/internal/domain/models"
)

const (
	itemsCollection    = "items"
	countersCollection = "counters"

	// id of the counter document holding the last item position
	positionCounterID = "items"
)

// itemDocument is the stored shape of an item. Position keeps insertion order.
type itemDocument struct {
	ID       string `bson:"_id"`
	Name     any    `bson:"name"`
	Quantity any    `bson:"quantity"`
	Price    any    `bson:"price"`
	Position int64  `bson:"position"`
}

func (d itemDocument) item() models.Item {
	return models.Item{ID: d.ID, Name: d.Name, Quantity: d.Quantity, Price: d.Price}
}

// MongoDBRepository stores items in a MongoDB collection.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().
		ApplyURI(uri).
		// decode embedded documents as maps so they render back to JSON objects
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: itemsCollection,
	}, nil
}

func (r *MongoDBRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

type counterDocument struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

// positionCounterUpdate returns the filter, update and options that bump the
// position counter and return its new value, creating it at 1 when missing.
func positionCounterUpdate() (bson.D, bson.D, *options.FindOneAndUpdateOptions) {
	filter := bson.D{{Key: "_id", Value: positionCounterID}}
	update := bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: int64(1)}}}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	return filter, update, opts
}

// nextPosition atomically allocates the next insertion position.
func (r *MongoDBRepository) nextPosition(ctx context.Context) (int64, error) {
	filter, update, opts := positionCounterUpdate()
	var counter counterDocument
	err := r.client.Database(r.dbName).Collection(countersCollection).
		FindOneAndUpdate(ctx, filter, update, opts).
		Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate item position: %w", err)
	}
	return counter.Seq, nil
}

// seedDocuments numbers seed items below 1 so they sort before every item
// created through the counter.
func seedDocuments(items []models.Item) []interface{} {
	docs := make([]interface{}, 0, len(items))
	for i, it := range items {
		docs = append(docs, itemDocument{
			ID:       it.ID,
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
			Position: int64(i - len(items)),
		})
	}
	return docs
}

// List returns all items in insertion order.
func (r *MongoDBRepository) List(ctx context.Context) ([]models.Item, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := r.collection().Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find items: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []itemDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}

	items := make([]models.Item, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.item())
	}
	return items, nil
}

// Create inserts a new item with a generated id.
func (r *MongoDBRepository) Create(ctx context.Context, input models.ItemInput) (models.Item, error) {
	position, err := r.nextPosition(ctx)
	if err != nil {
		return models.Item{}, err
	}

	item := models.NewItem(uuid.NewString(), input)
	doc := itemDocument{
		ID:       item.ID,
		Name:     item.Name,
		Quantity: item.Quantity,
		Price:    item.Price,
		Position: position,
	}

	if _, err := r.collection().InsertOne(ctx, doc); err != nil {
		return models.Item{}, fmt.Errorf("failed to insert item: %w", err)
	}
	return item, nil
}

// Delete removes every document with the given id.
func (r *MongoDBRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.collection().DeleteMany(ctx, bson.D{{Key: "_id", Value: id}}); err != nil {
		return fmt.Errorf("failed to delete item %s: %w", id, err)
	}
	return nil
}

// Seed inserts items when the collection is empty.
func (r *MongoDBRepository) Seed(ctx context.Context, items []models.Item) error {
	count, err := r.collection().CountDocuments(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("failed to count items: %w", err)
	}
	if count > 0 {
		return nil
	}

	docs := seedDocuments(items)
	if len(docs) == 0 {
		return nil
	}

	_, err = r.collection().InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	// a concurrent seeder may have inserted the same ids first
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("failed to seed items: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
