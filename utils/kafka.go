package utils

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/segmentio/kafka-go"
)

var kafkaWriter *kafka.Writer

// DonationEvent is published when an order reaches the completed state.
// The notification consumer turns it into a receipt email.
type DonationEvent struct {
	OrderID    uint    `json:"order_id"`
	ReceiptNo  string  `json:"receipt_no"`
	DonorName  string  `json:"donor_name"`
	DonorEmail string  `json:"donor_email"`
	Amount     float64 `json:"amount"`
}

// InitializeKafka sets up the donation-events writer. Kafka is optional:
// without a broker the publish calls become no-ops.
func InitializeKafka() {
	broker := os.Getenv("KAFKA_BROKER")
	topic := os.Getenv("KAFKA_DONATION_TOPIC")
	if broker == "" || topic == "" {
		log.Println("Kafka not configured, donation events disabled")
		return
	}

	kafkaWriter = &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	log.Printf("Kafka writer ready (topic %s)", topic)
}

// PublishDonationEvent is best effort; a broker outage must never fail a
// verified payment.
func PublishDonationEvent(ev DonationEvent) {
	if kafkaWriter == nil {
		return
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("failed to marshal donation event: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := kafkaWriter.WriteMessages(ctx, kafka.Message{Value: payload}); err != nil {
		log.Printf("failed to publish donation event for order %d: %v", ev.OrderID, err)
	}
}

// StartDonationConsumer runs handle for every donation event until the
// process exits.
func StartDonationConsumer(handle func(DonationEvent)) {
	broker := os.Getenv("KAFKA_BROKER")
	topic := os.Getenv("KAFKA_DONATION_TOPIC")
	if broker == "" || topic == "" {
		return
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{broker},
		Topic:   topic,
		GroupID: "registry-notifications",
	})

	go func() {
		for {
			msg, err := reader.ReadMessage(context.Background())
			if err != nil {
				log.Printf("kafka read error: %v", err)
				time.Sleep(time.Second)
				continue
			}

			var ev DonationEvent
			if err := json.Unmarshal(msg.Value, &ev); err != nil {
				log.Printf("bad donation event payload: %v", err)
				continue
			}
			handle(ev)
		}
	}()
}
