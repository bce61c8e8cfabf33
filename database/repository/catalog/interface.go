package catalogRepo

import (
	"context"

	"bookrental/database"
	"bookrental/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookRepository defines the interface for catalog data access. The rental
// core only ever reads books through it.
type BookRepository interface {
	GetByID(ctx context.Context, id string) (*models.Book, error)
	ListAll(ctx context.Context) ([]models.Book, error)
	Seed(ctx context.Context, books []models.Book) error
}

type mongoBookRepo struct {
	coll *mongo.Collection
}

// NewMongoBookRepo returns a new BookRepository instance using MongoDB.
func NewMongoBookRepo() BookRepository {
	db := database.MongoClient.Database("bookrental")
	return &mongoBookRepo{
		coll: db.Collection("books"),
	}
}
