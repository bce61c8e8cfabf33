package models

// Book represents a catalog entry. The rental core treats books as
// read-only values supplied by the catalog.
type Book struct {
	ID        string  `bson:"id" json:"id"`
	Title     string  `bson:"title" json:"title"`
	Author    string  `bson:"author,omitempty" json:"author,omitempty"`
	Cover     string  `bson:"cover,omitempty" json:"cover,omitempty"` // cover image URL, may be empty
	RentPrice float64 `bson:"rentPrice" json:"rentPrice"`
}
