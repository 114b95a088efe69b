package models

import "time"

// Customer is a dimension entity generated once at bootstrap.
// SurrogateKey is assigned by the store; CustomerID is the natural id.
type Customer struct {
	SurrogateKey int64     `db:"customer_sk" json:"customer_sk"`
	CustomerID   string    `db:"customer_id" json:"customer_id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Address      string    `db:"address" json:"address"`
	City         string    `db:"city" json:"city"`
	Country      string    `db:"country" json:"country"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Seller is a dimension entity generated once at bootstrap.
type Seller struct {
	SurrogateKey int64     `db:"seller_sk" json:"seller_sk"`
	SellerID     string    `db:"seller_id" json:"seller_id"`
	Name         string    `db:"name" json:"name"`
	Status       string    `db:"status" json:"status"`
	Country      string    `db:"country" json:"country"`
	City         string    `db:"city" json:"city"`
	Address      string    `db:"address" json:"address"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Product is a dimension entity generated once at bootstrap.
type Product struct {
	SurrogateKey int64     `db:"product_sk" json:"product_sk"`
	ProductID    string    `db:"product_id" json:"product_id"`
	Name         string    `db:"name" json:"name"`
	Category     string    `db:"category" json:"category"`
	Description  string    `db:"description" json:"description"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Listing is a seller-product price offer. The price is fixed at
// bootstrap time; stock and price changes are emitted as events, not
// written back to the listing.
type Listing struct {
	SurrogateKey int64   `db:"seller_product_sk" json:"seller_product_sk"`
	SellerSK     int64   `db:"seller_sk" json:"seller_sk"`
	ProductSK    int64   `db:"product_sk" json:"product_sk"`
	SellerID     string  `db:"seller_id" json:"seller_id"`
	ProductID    string  `db:"product_id" json:"product_id"`
	Price        float64 `db:"price" json:"price"`
}

// Seller statuses
const (
	SellerStatusActive   = "Active"
	SellerStatusInactive = "Inactive"
)

// SellerStatuses lists the valid seller states.
var SellerStatuses = []string{SellerStatusActive, SellerStatusInactive}

// ProductCategories lists the catalog categories.
var ProductCategories = []string{"Electronics", "Home", "Clothes", "Toys", "Computers"}
