package pool

import (
	"math/rand"
	"testing"

	"commercegen/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPool(t *testing.T) *ReferencePool {
	t.Helper()
	return New(rand.New(rand.NewSource(1)))
}

func TestSampleEmptyPool(t *testing.T) {
	p := newTestPool(t)

	_, err := p.SampleCustomer()
	assert.ErrorIs(t, err, ErrEmptyPool)

	_, err = p.SampleSeller()
	assert.ErrorIs(t, err, ErrEmptyPool)

	_, err = p.SampleProduct()
	assert.ErrorIs(t, err, ErrEmptyPool)

	_, err = p.SampleListing()
	assert.ErrorIs(t, err, ErrEmptyPool)

	_, err = p.SampleDistinctListings(3)
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestSampleReturnsPoolMembers(t *testing.T) {
	p := newTestPool(t)

	known := map[int64]bool{}
	for i := int64(1); i <= 10; i++ {
		p.AddListing(models.Listing{SurrogateKey: i, Price: float64(i) * 10})
		known[i] = true
	}

	for i := 0; i < 100; i++ {
		l, err := p.SampleListing()
		require.NoError(t, err)
		assert.True(t, known[l.SurrogateKey])
	}
}

func TestSampleDistinctListings(t *testing.T) {
	p := newTestPool(t)
	for i := int64(1); i <= 10; i++ {
		p.AddListing(models.Listing{SurrogateKey: i})
	}

	listings, err := p.SampleDistinctListings(5)
	require.NoError(t, err)
	require.Len(t, listings, 5)

	seen := map[int64]bool{}
	for _, l := range listings {
		assert.False(t, seen[l.SurrogateKey], "listing %d sampled twice", l.SurrogateKey)
		seen[l.SurrogateKey] = true
	}
}

func TestSampleDistinctListingsClampsToPoolSize(t *testing.T) {
	p := newTestPool(t)
	for i := int64(1); i <= 3; i++ {
		p.AddListing(models.Listing{SurrogateKey: i})
	}

	// Asking for 5 out of 3 yields all 3, not a failure.
	listings, err := p.SampleDistinctListings(5)
	require.NoError(t, err)
	assert.Len(t, listings, 3)
}

func TestCounts(t *testing.T) {
	p := newTestPool(t)
	p.AddCustomer(models.Customer{SurrogateKey: 1})
	p.AddSeller(models.Seller{SurrogateKey: 1})
	p.AddSeller(models.Seller{SurrogateKey: 2})
	p.AddProduct(models.Product{SurrogateKey: 1})
	p.AddListing(models.Listing{SurrogateKey: 1})

	customers, sellers, products, listings := p.Counts()
	assert.Equal(t, 1, customers)
	assert.Equal(t, 2, sellers)
	assert.Equal(t, 1, products)
	assert.Equal(t, 1, listings)
}
