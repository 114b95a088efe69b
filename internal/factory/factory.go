// Package factory builds the three event shapes from the reference
// pool. Builders are side-effect free: they sample, assemble a value,
// and return it; delivery is someone else's job.
package factory

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"commercegen/internal/models"
	"commercegen/internal/pool"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

// Order shape bounds, from the feed contract: 1-5 distinct listings
// per order, quantity 1-3 per item, stock levels 0-200.
const (
	maxOrderItems = 5
	maxQuantity   = 3
	maxStockLevel = 200
)

const (
	orderCurrency      = "USD"
	orderStatusPlaced  = "PLACED"
	stockSourceTag     = "generator"
	cartPath           = "/cart"
	checkoutPath       = "/checkout"
	productPathPattern = "/product/%s"
)

// Factory samples from a ReferencePool and constructs events with a
// fresh event id and UTC timestamp. Every foreign reference inside a
// built event resolves to an entity present in the pool.
type Factory struct {
	pool  *pool.ReferencePool
	faker *gofakeit.Faker
	rng   *rand.Rand
}

func New(p *pool.ReferencePool, faker *gofakeit.Faker, rng *rand.Rand) *Factory {
	return &Factory{pool: p, faker: faker, rng: rng}
}

// BuildOrder samples one customer and 1-5 distinct listings, each with
// quantity 1-3, priced at the listing's bootstrap-time price. The item
// count is clamped to the listing pool size rather than failing.
func (f *Factory) BuildOrder() (*models.OrderEvent, error) {
	customer, err := f.pool.SampleCustomer()
	if err != nil {
		return nil, err
	}

	listings, err := f.pool.SampleDistinctListings(1 + f.rng.Intn(maxOrderItems))
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(listings))
	var total float64
	for _, l := range listings {
		quantity := 1 + f.rng.Intn(maxQuantity)
		total += l.Price * float64(quantity)
		items = append(items, models.OrderItem{
			ListingSK: l.SurrogateKey,
			SellerID:  l.SellerID,
			ProductID: l.ProductID,
			UnitPrice: l.Price,
			Quantity:  quantity,
		})
	}

	return &models.OrderEvent{
		BaseEvent:   f.newBase(models.EventTypeOrder),
		OrderID:     uuid.New().String(),
		CustomerSK:  customer.SurrogateKey,
		CustomerID:  customer.CustomerID,
		Items:       items,
		TotalAmount: round2(total),
		Currency:    orderCurrency,
		Status:      orderStatusPlaced,
	}, nil
}

// BuildStock samples one listing and a stock level in [0,200].
func (f *Factory) BuildStock() (*models.StockEvent, error) {
	listing, err := f.pool.SampleListing()
	if err != nil {
		return nil, err
	}

	return &models.StockEvent{
		BaseEvent: f.newBase(models.EventTypeStock),
		ListingSK: listing.SurrogateKey,
		Stock:     f.rng.Intn(maxStockLevel + 1),
		Source:    stockSourceTag,
	}, nil
}

// BuildClickstream samples an action and derives its URL: view_page
// points at a pooled product's detail page, the other actions use
// fixed paths. Session and user tokens are fresh per event.
func (f *Factory) BuildClickstream() (*models.ClickstreamEvent, error) {
	action := models.ClickstreamActions[f.rng.Intn(len(models.ClickstreamActions))]

	var url string
	switch action {
	case models.ActionViewPage:
		product, err := f.pool.SampleProduct()
		if err != nil {
			return nil, err
		}
		url = fmt.Sprintf(productPathPattern, product.ProductID)
	case models.ActionAddToCart:
		url = cartPath
	default:
		url = checkoutPath
	}

	return &models.ClickstreamEvent{
		BaseEvent: f.newBase(models.EventTypeClickstream),
		SessionID: uuid.New().String(),
		UserID:    uuid.New().String(),
		URL:       url,
		Action:    action,
		UserAgent: f.faker.UserAgent(),
		IP:        f.faker.IPv4Address(),
	}, nil
}

func (f *Factory) newBase(eventType string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now().UTC(),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
