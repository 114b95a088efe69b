// Package bootstrap populates the reference pool exactly once at
// startup, either by generating and persisting a fresh universe or by
// rehydrating one from already-persisted dimension tables.
package bootstrap

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"commercegen/internal/models"
	"commercegen/internal/pool"
	"commercegen/internal/util"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Price bounds for generated listings, in currency units.
const (
	priceMin = 10.0
	priceMax = 2000.0
)

// Store is the narrow persistence surface the bootstrapper needs. The
// insert methods assign the entity's surrogate key on success.
type Store interface {
	InsertCustomer(ctx context.Context, c *models.Customer) error
	InsertSeller(ctx context.Context, s *models.Seller) error
	InsertProduct(ctx context.Context, p *models.Product) error
	InsertListing(ctx context.Context, l *models.Listing) error

	ListCustomers(ctx context.Context) ([]models.Customer, error)
	ListSellers(ctx context.Context) ([]models.Seller, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListListings(ctx context.Context) ([]models.Listing, error)
}

// Counts configures how many of each entity to materialize.
type Counts struct {
	Customers int
	Sellers   int
	Products  int
	Listings  int
}

// Bootstrapper builds a ReferencePool through a Store.
type Bootstrapper struct {
	store  Store
	faker  *gofakeit.Faker
	rng    *rand.Rand
	logger *zap.Logger
}

func New(store Store, faker *gofakeit.Faker, rng *rand.Rand) *Bootstrapper {
	return &Bootstrapper{
		store:  store,
		faker:  faker,
		rng:    rng,
		logger: util.GetLogger(),
	}
}

// Run generates counts.X entities, persists each one, and records the
// store-assigned surrogate keys in a fresh pool. The pool is only
// returned after every insert succeeded, so sampling can never see an
// entity the store rejected; on failure the caller aborts the process.
func (b *Bootstrapper) Run(ctx context.Context, counts Counts) (*pool.ReferencePool, error) {
	ctx, span := util.StartSpan(ctx, "Bootstrapper.Run")
	defer span.End()

	p := pool.New(b.rng)

	for i := 0; i < counts.Customers; i++ {
		c := models.Customer{
			CustomerID: uuid.New().String(),
			Name:       b.faker.Name(),
			Email:      b.faker.Email(),
			Address:    b.faker.Address().Address,
			City:       b.faker.City(),
			Country:    b.faker.Country(),
		}
		if err := b.store.InsertCustomer(ctx, &c); err != nil {
			return nil, fmt.Errorf("bootstrap customer: %w", err)
		}
		p.AddCustomer(c)
	}

	sellers := make([]models.Seller, 0, counts.Sellers)
	for i := 0; i < counts.Sellers; i++ {
		s := models.Seller{
			SellerID: uuid.New().String(),
			Name:     b.faker.Company(),
			Status:   models.SellerStatuses[b.rng.Intn(len(models.SellerStatuses))],
			Country:  b.faker.Country(),
			City:     b.faker.City(),
			Address:  b.faker.Address().Address,
		}
		if err := b.store.InsertSeller(ctx, &s); err != nil {
			return nil, fmt.Errorf("bootstrap seller: %w", err)
		}
		p.AddSeller(s)
		sellers = append(sellers, s)
	}

	products := make([]models.Product, 0, counts.Products)
	for i := 0; i < counts.Products; i++ {
		pr := models.Product{
			ProductID:   uuid.New().String(),
			Name:        b.faker.ProductName(),
			Category:    models.ProductCategories[b.rng.Intn(len(models.ProductCategories))],
			Description: b.faker.ProductDescription(),
		}
		if err := b.store.InsertProduct(ctx, &pr); err != nil {
			return nil, fmt.Errorf("bootstrap product: %w", err)
		}
		p.AddProduct(pr)
		products = append(products, pr)
	}

	// Each listing picks one random seller and product; duplicate
	// (seller, product) pairs are allowed.
	for i := 0; i < counts.Listings; i++ {
		seller := sellers[b.rng.Intn(len(sellers))]
		product := products[b.rng.Intn(len(products))]
		l := models.Listing{
			SellerSK:  seller.SurrogateKey,
			ProductSK: product.SurrogateKey,
			SellerID:  seller.SellerID,
			ProductID: product.ProductID,
			Price:     round2(priceMin + b.rng.Float64()*(priceMax-priceMin)),
		}
		if err := b.store.InsertListing(ctx, &l); err != nil {
			return nil, fmt.Errorf("bootstrap listing: %w", err)
		}
		p.AddListing(l)
	}

	b.logPoolSizes(p)
	return p, nil
}

// Rehydrate rebuilds the pool from already-persisted dimension tables
// instead of inserting new rows. The resulting pool satisfies the same
// invariants as a freshly generated one: non-empty collections and
// every listing resolving to a known seller and product.
func (b *Bootstrapper) Rehydrate(ctx context.Context) (*pool.ReferencePool, error) {
	ctx, span := util.StartSpan(ctx, "Bootstrapper.Rehydrate")
	defer span.End()

	p := pool.New(b.rng)

	customers, err := b.store.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("rehydrate customers: %w", err)
	}
	sellers, err := b.store.ListSellers(ctx)
	if err != nil {
		return nil, fmt.Errorf("rehydrate sellers: %w", err)
	}
	products, err := b.store.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("rehydrate products: %w", err)
	}
	listings, err := b.store.ListListings(ctx)
	if err != nil {
		return nil, fmt.Errorf("rehydrate listings: %w", err)
	}

	if len(customers) == 0 || len(sellers) == 0 || len(products) == 0 || len(listings) == 0 {
		return nil, fmt.Errorf("rehydrate: store holds an empty dimension table")
	}

	sellersBySK := make(map[int64]models.Seller, len(sellers))
	for _, s := range sellers {
		p.AddSeller(s)
		sellersBySK[s.SurrogateKey] = s
	}
	productsBySK := make(map[int64]models.Product, len(products))
	for _, pr := range products {
		p.AddProduct(pr)
		productsBySK[pr.SurrogateKey] = pr
	}
	for _, c := range customers {
		p.AddCustomer(c)
	}
	for _, l := range listings {
		seller, ok := sellersBySK[l.SellerSK]
		if !ok {
			return nil, fmt.Errorf("rehydrate listing %d: unknown seller_sk %d", l.SurrogateKey, l.SellerSK)
		}
		product, ok := productsBySK[l.ProductSK]
		if !ok {
			return nil, fmt.Errorf("rehydrate listing %d: unknown product_sk %d", l.SurrogateKey, l.ProductSK)
		}
		l.SellerID = seller.SellerID
		l.ProductID = product.ProductID
		p.AddListing(l)
	}

	b.logPoolSizes(p)
	return p, nil
}

func (b *Bootstrapper) logPoolSizes(p *pool.ReferencePool) {
	customers, sellers, products, listings := p.Counts()
	util.BootstrapEntitiesTotal.WithLabelValues("customer").Add(float64(customers))
	util.BootstrapEntitiesTotal.WithLabelValues("seller").Add(float64(sellers))
	util.BootstrapEntitiesTotal.WithLabelValues("product").Add(float64(products))
	util.BootstrapEntitiesTotal.WithLabelValues("listing").Add(float64(listings))
	b.logger.Info("Reference pool loaded",
		zap.Int("customers", customers),
		zap.Int("sellers", sellers),
		zap.Int("products", products),
		zap.Int("listings", listings))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
