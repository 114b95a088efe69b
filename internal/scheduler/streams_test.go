package scheduler

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"commercegen/internal/delivery"
	"commercegen/internal/factory"
	"commercegen/internal/models"
	"commercegen/internal/pool"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
)

// countingSink counts deliveries per stream and can be told to reject
// one stream's events.
type countingSink struct {
	mu        sync.Mutex
	delivered map[string]int
	failFor   string
}

func (s *countingSink) Publish(_ context.Context, stream string, _ []byte) error {
	if stream == s.failFor {
		return fmt.Errorf("sink rejected %s event", stream)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delivered[stream]++
	return nil
}

func (s *countingSink) count(stream string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delivered[stream]
}

func seededPool(t *testing.T) *pool.ReferencePool {
	t.Helper()
	p := pool.New(rand.New(rand.NewSource(1)))
	for i := int64(1); i <= 10; i++ {
		p.AddCustomer(models.Customer{SurrogateKey: i, CustomerID: fmt.Sprintf("c-%d", i)})
		p.AddProduct(models.Product{SurrogateKey: i, ProductID: fmt.Sprintf("p-%d", i)})
		p.AddListing(models.Listing{
			SurrogateKey: i,
			SellerID:     fmt.Sprintf("s-%d", i%3),
			ProductID:    fmt.Sprintf("p-%d", i),
			Price:        25.50,
		})
	}
	return p
}

func generatorStreams(t *testing.T, snk delivery.Sink, intervals map[string]time.Duration) []Stream {
	t.Helper()
	pipeline := delivery.NewPipeline(snk)
	refPool := seededPool(t)

	newFire := func(stream string, build func(*factory.Factory) (models.Event, error)) func(context.Context) {
		f := factory.New(refPool, gofakeit.New(1), rand.New(rand.NewSource(7)))
		return func(ctx context.Context) {
			event, err := build(f)
			if err != nil {
				t.Errorf("build %s event: %v", stream, err)
				return
			}
			pipeline.Deliver(ctx, stream, event)
		}
	}

	return []Stream{
		{
			Name:     models.StreamOrders,
			Interval: intervals[models.StreamOrders],
			Fire: newFire(models.StreamOrders, func(f *factory.Factory) (models.Event, error) {
				return f.BuildOrder()
			}),
		},
		{
			Name:     models.StreamStock,
			Interval: intervals[models.StreamStock],
			Fire: newFire(models.StreamStock, func(f *factory.Factory) (models.Event, error) {
				return f.BuildStock()
			}),
		},
		{
			Name:     models.StreamClickstream,
			Interval: intervals[models.StreamClickstream],
			Fire: newFire(models.StreamClickstream, func(f *factory.Factory) (models.Event, error) {
				return f.BuildClickstream()
			}),
		},
	}
}

func TestGeneratorDeliversOnConfiguredCadences(t *testing.T) {
	snk := &countingSink{delivered: map[string]int{}}

	s := New(generatorStreams(t, snk, map[string]time.Duration{
		models.StreamOrders:      30 * time.Second,
		models.StreamStock:       30 * time.Second,
		models.StreamClickstream: 3 * time.Second,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.startWorkers(ctx)

	base := time.Now()
	for i := 1; i <= 30; i++ {
		s.tick(base.Add(time.Duration(i) * time.Second))
		waitDispatched(t, s)
	}

	assert.Eventually(t, func() bool {
		return snk.count(models.StreamOrders) == 1 &&
			snk.count(models.StreamStock) == 1 &&
			snk.count(models.StreamClickstream) == 10
	}, time.Second, time.Millisecond,
		"got orders=%d stock=%d clickstream=%d",
		snk.count(models.StreamOrders), snk.count(models.StreamStock), snk.count(models.StreamClickstream))
}

func TestFailingSinkDoesNotAffectOtherStreams(t *testing.T) {
	snk := &countingSink{delivered: map[string]int{}, failFor: models.StreamOrders}

	s := New(generatorStreams(t, snk, map[string]time.Duration{
		models.StreamOrders:      time.Second,
		models.StreamStock:       5 * time.Second,
		models.StreamClickstream: time.Second,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.startWorkers(ctx)

	base := time.Now()
	for i := 1; i <= 10; i++ {
		s.tick(base.Add(time.Duration(i) * time.Second))
		waitDispatched(t, s)
	}

	assert.Eventually(t, func() bool {
		return snk.count(models.StreamClickstream) == 10 && snk.count(models.StreamStock) == 2
	}, time.Second, time.Millisecond)

	// Every orders delivery was rejected and dropped.
	assert.Equal(t, 0, snk.count(models.StreamOrders))
}
