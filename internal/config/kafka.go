package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

// NewKafkaWriter returns a writer for the venta event topic. Writes are
// asynchronous: WriteMessages only enqueues, and delivery failures are
// logged by the completion callback.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		Async:                  true,
		BatchTimeout:           10 * time.Millisecond,
		MaxAttempts:            3,
		WriteTimeout:           5 * time.Second,
		Completion:             logDelivery,
	}
}

func logDelivery(messages []kafka.Message, err error) {
	if err == nil {
		return
	}
	keys := make([]string, 0, len(messages))
	for _, m := range messages {
		keys = append(keys, string(m.Key))
	}
	log.Warn().Err(err).Strs("keys", keys).Msg("venta events not delivered")
}
