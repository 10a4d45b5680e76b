package domain

import "time"

// Cake is a product in the catalogue.
type Cake struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	Name          string    `json:"name" bson:"name"`
	Description   string    `json:"description,omitempty" bson:"description,omitempty"`
	Price         float64   `json:"price" bson:"price"`
	StockQuantity int       `json:"stock_quantity" bson:"stock_quantity"`
	CategoryID    string    `json:"category_id" bson:"category_id"`
	ImageURL      string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// Category groups cakes.
type Category struct {
	ID       string `json:"id" bson:"_id,omitempty"`
	Name     string `json:"name" bson:"name"`
	ImageURL string `json:"image_url,omitempty" bson:"image_url,omitempty"`
}
