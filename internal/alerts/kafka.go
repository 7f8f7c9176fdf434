// Package alerts delivers consecutive-breach alerts to external systems.
package alerts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/i474232898/weather-monitor/internal/weather"
)

var errNoBrokers = errors.New("at least one kafka broker is required")

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes each alert as a JSON message keyed by city.
type KafkaNotifier struct {
	writer messageWriter
	topic  string
}

// NewKafkaNotifier builds a notifier writing to topic on brokers.
func NewKafkaNotifier(brokers []string, topic string) (*KafkaNotifier, error) {
	if len(brokers) == 0 {
		return nil, errNoBrokers
	}
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("kafka alert topic must not be empty")
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           5 * time.Second,
		AllowAutoTopicCreation: true,
	}
	return &KafkaNotifier{writer: w, topic: topic}, nil
}

func newKafkaNotifierWithWriter(w messageWriter, topic string) *KafkaNotifier {
	return &KafkaNotifier{writer: w, topic: topic}
}

// Notify publishes the alert. Delivery is best effort.
func (k *KafkaNotifier) Notify(ctx context.Context, alert weather.Alert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("encode alert: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(alert.City),
		Value: payload,
		Time:  alert.Timestamp,
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish alert to %s: %w", k.topic, err)
	}
	return nil
}

// Close flushes and closes the writer.
func (k *KafkaNotifier) Close() error {
	return k.writer.Close()
}
