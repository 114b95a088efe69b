// Command tail prints events from one generated stream to stdout.
// Handy for eyeballing the feed while tuning intervals:
//
//	tail -stream clickstream -brokers localhost:9092
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"commercegen/config"
	"commercegen/internal/broker"
	"commercegen/internal/models"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

var (
	stream  string
	brokers string
)

func init() {
	flag.StringVar(&stream, "stream", models.StreamOrders, "Stream to tail (orders|stock|clickstream)")
	flag.StringVar(&brokers, "brokers", "", "Comma-separated Kafka brokers (defaults to KAFKA_BROKERS)")
}

func main() {
	flag.Parse()

	cfg := config.Load()

	topics := map[string]string{
		models.StreamOrders:      cfg.Kafka.TopicOrders,
		models.StreamStock:       cfg.Kafka.TopicStock,
		models.StreamClickstream: cfg.Kafka.TopicClickstream,
	}
	topic, ok := topics[stream]
	if !ok {
		log.Fatalf("Unknown stream %q", stream)
	}

	brokerList := cfg.Kafka.Brokers
	if brokers != "" {
		brokerList = strings.Split(brokers, ",")
	}

	// Throwaway group id so repeated runs always see new events.
	groupID := fmt.Sprintf("tail-%s", uuid.New().String())
	consumer := broker.NewConsumer(brokerList, topic, groupID)
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		cancel()
	}()

	err := consumer.StartConsuming(ctx, func(ctx context.Context, msg kafka.Message) error {
		fmt.Println(string(msg.Value))
		return nil
	})
	if err != nil && err != context.Canceled {
		log.Fatalf("Consumer stopped: %v", err)
	}
}
