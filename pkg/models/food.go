package models

import (
	"time"
)

// DefaultQuantity is the stock assigned to a food item created without an
// explicit quantity.
const DefaultQuantity = 10

type Category string

const (
	CategoryFastFood      Category = "Fast Food"
	CategoryBeverages     Category = "Beverages"
	CategoryDessert       Category = "Dessert"
	CategoryVegetarian    Category = "Vegetarian"
	CategoryNonVegetarian Category = "Non-Vegetarian"
)

var categories = map[Category]bool{
	CategoryFastFood:      true,
	CategoryBeverages:     true,
	CategoryDessert:       true,
	CategoryVegetarian:    true,
	CategoryNonVegetarian: true,
}

func ValidCategory(c Category) bool {
	return categories[c]
}

// FoodItem is a purchasable catalog entry. Quantity is the available stock and
// is never negative; all stock mutation goes through the store's conditioned
// decrement/increment operations.
type FoodItem struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Category  Category  `bson:"category" json:"category"`
	Price     float64   `bson:"price" json:"price"`
	Image     string    `bson:"image" json:"image"`
	Quantity  int       `bson:"quantity" json:"quantity"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
