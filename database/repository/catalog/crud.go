package catalogRepo

import (
	"context"
	"errors"
	"fmt"

	"bookrental/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrBookNotFound is returned when no catalog entry matches the id.
var ErrBookNotFound = errors.New("book not found")

// GetByID returns a single catalog entry.
func (r *mongoBookRepo) GetByID(ctx context.Context, id string) (*models.Book, error) {
	var book models.Book
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to fetch book %s: %w", id, err)
	}
	return &book, nil
}

// ListAll returns the full catalog sorted by title.
func (r *mongoBookRepo) ListAll(ctx context.Context) ([]models.Book, error) {
	opts := options.Find().SetSort(bson.D{{Key: "title", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer cursor.Close(ctx)

	var books []models.Book
	if err := cursor.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// Seed replaces the catalog contents. Used by the seed binary.
func (r *mongoBookRepo) Seed(ctx context.Context, books []models.Book) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear books collection: %w", err)
	}
	docs := make([]interface{}, 0, len(books))
	for _, b := range books {
		docs = append(docs, b)
	}
	if len(docs) == 0 {
		return nil
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to seed books: %w", err)
	}
	return nil
}
