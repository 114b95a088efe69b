// Package pool holds the in-memory reference-data universe the event
// builders sample from. The pool is populated once at bootstrap and is
// read-only afterwards; all sampling is uniform with replacement.
package pool

import (
	"fmt"
	"math/rand"
	"sync"

	"commercegen/internal/models"
)

// ReferencePool holds the generated universe of customers, sellers,
// products and seller-product listings. The collections are safe for
// concurrent sampling once bootstrap completes; the rand source has its
// own lock since streams sample in parallel.
type ReferencePool struct {
	mu        sync.RWMutex
	customers []models.Customer
	sellers   []models.Seller
	products  []models.Product
	listings  []models.Listing

	rngMu sync.Mutex
	rng   *rand.Rand
}

// New creates an empty pool. The rand source is used for all sampling;
// tests pass a seeded source for determinism.
func New(rng *rand.Rand) *ReferencePool {
	return &ReferencePool{rng: rng}
}

// AddCustomer appends a customer. Only the bootstrapper calls the Add
// methods; they are not safe to call once sampling has started.
func (p *ReferencePool) AddCustomer(c models.Customer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.customers = append(p.customers, c)
}

func (p *ReferencePool) AddSeller(s models.Seller) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sellers = append(p.sellers, s)
}

func (p *ReferencePool) AddProduct(pr models.Product) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.products = append(p.products, pr)
}

func (p *ReferencePool) AddListing(l models.Listing) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listings = append(p.listings, l)
}

// SampleCustomer returns a uniformly random customer.
func (p *ReferencePool) SampleCustomer() (models.Customer, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if len(p.customers) == 0 {
		return models.Customer{}, fmt.Errorf("customers: %w", ErrEmptyPool)
	}
	return p.customers[p.intn(len(p.customers))], nil
}

// SampleSeller returns a uniformly random seller.
func (p *ReferencePool) SampleSeller() (models.Seller, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if len(p.sellers) == 0 {
		return models.Seller{}, fmt.Errorf("sellers: %w", ErrEmptyPool)
	}
	return p.sellers[p.intn(len(p.sellers))], nil
}

// SampleProduct returns a uniformly random product.
func (p *ReferencePool) SampleProduct() (models.Product, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if len(p.products) == 0 {
		return models.Product{}, fmt.Errorf("products: %w", ErrEmptyPool)
	}
	return p.products[p.intn(len(p.products))], nil
}

// SampleListing returns a uniformly random seller-product listing.
func (p *ReferencePool) SampleListing() (models.Listing, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if len(p.listings) == 0 {
		return models.Listing{}, fmt.Errorf("listings: %w", ErrEmptyPool)
	}
	return p.listings[p.intn(len(p.listings))], nil
}

// SampleDistinctListings returns n distinct listings. When the pool has
// fewer than n listings the result is clamped to the pool size; an
// order is never failed for asking more items than the catalog holds.
func (p *ReferencePool) SampleDistinctListings(n int) ([]models.Listing, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if len(p.listings) == 0 {
		return nil, fmt.Errorf("listings: %w", ErrEmptyPool)
	}
	if n > len(p.listings) {
		n = len(p.listings)
	}
	picked := make([]models.Listing, 0, n)
	for _, i := range p.perm(len(p.listings))[:n] {
		picked = append(picked, p.listings[i])
	}
	return picked, nil
}

// Counts reports the pool sizes for startup logging and invariants.
func (p *ReferencePool) Counts() (customers, sellers, products, listings int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.customers), len(p.sellers), len(p.products), len(p.listings)
}

func (p *ReferencePool) intn(n int) int {
	p.rngMu.Lock()
	defer p.rngMu.Unlock()
	return p.rng.Intn(n)
}

func (p *ReferencePool) perm(n int) []int {
	p.rngMu.Lock()
	defer p.rngMu.Unlock()
	return p.rng.Perm(n)
}
