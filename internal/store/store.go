// Package store is the Postgres-backed persistence layer. It owns the
// dimension tables the bootstrapper writes and reads, and the fact
// tables behind the direct-persistence sink.
package store

import (
	"context"
	"fmt"
	"time"

	"commercegen/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type Store struct {
	db *sqlx.DB
}

// NewStore creates a new database store
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// InsertCustomer persists a customer and fills in the store-assigned
// surrogate key.
func (s *Store) InsertCustomer(ctx context.Context, c *models.Customer) error {
	query := `
		INSERT INTO dim_customer (customer_id, name, email, address, city, country)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING customer_sk, created_at`

	return s.db.GetContext(ctx, c, query,
		c.CustomerID, c.Name, c.Email, c.Address, c.City, c.Country)
}

// InsertSeller persists a seller and fills in the surrogate key.
func (s *Store) InsertSeller(ctx context.Context, sl *models.Seller) error {
	query := `
		INSERT INTO dim_seller (seller_id, name, status, country, city, address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING seller_sk, created_at`

	return s.db.GetContext(ctx, sl, query,
		sl.SellerID, sl.Name, sl.Status, sl.Country, sl.City, sl.Address)
}

// InsertProduct persists a product and fills in the surrogate key.
func (s *Store) InsertProduct(ctx context.Context, p *models.Product) error {
	query := `
		INSERT INTO dim_product (product_id, name, category, description)
		VALUES ($1, $2, $3, $4)
		RETURNING product_sk, created_at`

	return s.db.GetContext(ctx, p, query,
		p.ProductID, p.Name, p.Category, p.Description)
}

// InsertListing persists a seller-product price listing and fills in
// the surrogate key. Duplicate (seller, product) pairs are allowed.
func (s *Store) InsertListing(ctx context.Context, l *models.Listing) error {
	query := `
		INSERT INTO dim_seller_product_pricing (seller_sk, product_sk, price)
		VALUES ($1, $2, $3)
		RETURNING seller_product_sk`

	return s.db.GetContext(ctx, &l.SurrogateKey, query,
		l.SellerSK, l.ProductSK, l.Price)
}

// ListCustomers retrieves all persisted customers.
func (s *Store) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := s.db.SelectContext(ctx, &customers,
		"SELECT customer_sk, customer_id, name, email, address, city, country, created_at FROM dim_customer ORDER BY customer_sk")
	return customers, err
}

// ListSellers retrieves all persisted sellers.
func (s *Store) ListSellers(ctx context.Context) ([]models.Seller, error) {
	var sellers []models.Seller
	err := s.db.SelectContext(ctx, &sellers,
		"SELECT seller_sk, seller_id, name, status, country, city, address, created_at FROM dim_seller ORDER BY seller_sk")
	return sellers, err
}

// ListProducts retrieves all persisted products.
func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products,
		"SELECT product_sk, product_id, name, category, description, created_at FROM dim_product ORDER BY product_sk")
	return products, err
}

// ListListings retrieves all persisted listings with their latest
// price. Seller and product natural ids are resolved in memory by the
// rehydrate path.
func (s *Store) ListListings(ctx context.Context) ([]models.Listing, error) {
	var listings []models.Listing
	err := s.db.SelectContext(ctx, &listings,
		"SELECT seller_product_sk, seller_sk, product_sk, price FROM dim_seller_product_pricing ORDER BY seller_product_sk")
	return listings, err
}
