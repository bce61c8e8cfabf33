package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"bookrental/config"
	"bookrental/database"
	catalogRepo "bookrental/database/repository/catalog"
	"bookrental/models"
)

// Seeds the book catalog with a small fixture set for local development.
func main() {
	config.LoadConfig()
	database.InitDB()

	books := []models.Book{
		{ID: "1", Title: "Dune", Author: "Frank Herbert", RentPrice: 3.50},
		{ID: "2", Title: "The Left Hand of Darkness", Author: "Ursula K. Le Guin", RentPrice: 2.75},
		{ID: "3", Title: "Neuromancer", Author: "William Gibson", RentPrice: 3.00},
		{ID: "4", Title: "A Wizard of Earthsea", Author: "Ursula K. Le Guin", RentPrice: 2.50},
		{ID: "5", Title: "Foundation", Author: "Isaac Asimov", RentPrice: 3.25},
		{ID: "6", Title: "Hyperion", Author: "Dan Simmons", RentPrice: 3.75},
		{ID: "7", Title: "The Dispossessed", Author: "Ursula K. Le Guin", RentPrice: 2.75},
		{ID: "8", Title: "Snow Crash", Author: "Neal Stephenson", RentPrice: 3.00},
	}

	repo := catalogRepo.NewMongoBookRepo()
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := repo.Seed(ctx, books); err != nil {
		log.Fatalf("Failed to seed book catalog: %v", err)
	}
	fmt.Printf("Seeded %d books\n", len(books))
}
