package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alimikegami/pos-microservices/storefront-service/config"
	"github.com/alimikegami/pos-microservices/storefront-service/internal/dto"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

const (
	maxRetries          = 3
	defaultWriteTimeout = 2 * time.Second
)

type messageWriter interface {
	SetWriteDeadline(t time.Time) error
	WriteMessages(msgs ...kafka.Message) (int, error)
}

type KafkaPublisher struct {
	writer       messageWriter
	backoff      time.Duration
	writeTimeout time.Duration
}

func CreateKafkaProducer(conf config.KafkaConfig) (*kafka.Conn, error) {
	return kafka.DialLeader(context.Background(), "tcp", conf.BrokerAddress, conf.BrokerTopic, conf.BrokerPartition)
}

// CreateKafkaPublisher sends cart events over conn.
func CreateKafkaPublisher(conn *kafka.Conn) *KafkaPublisher {
	return &KafkaPublisher{writer: conn, backoff: 100 * time.Millisecond, writeTimeout: defaultWriteTimeout}
}

// writeDeadline bounds a single attempt by writeTimeout and by ctx, whichever ends first.
func (p *KafkaPublisher) writeDeadline(ctx context.Context) time.Time {
	timeout := p.writeTimeout
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}

	deadline := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		return ctxDeadline
	}
	return deadline
}

func (p *KafkaPublisher) Publish(ctx context.Context, key string, msg dto.KafkaMessage) error {
	jsonMsg, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal Kafka message: %w", err)
	}

	for i := 0; i < maxRetries; i++ {
		if err = p.writer.SetWriteDeadline(p.writeDeadline(ctx)); err != nil {
			return fmt.Errorf("failed to set Kafka write deadline: %w", err)
		}

		_, err = p.writer.WriteMessages(kafka.Message{
			Key:   []byte(key),
			Value: jsonMsg,
		})
		if err == nil {
			return nil
		}

		log.Ctx(ctx).Warn().Err(err).Str("component", "Publish").
			Int("attempt", i+1).Int("max_attempts", maxRetries).Msg("failed to write Kafka message")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.backoff * time.Duration(i+1)):
		}
	}

	return fmt.Errorf("failed to write Kafka message after %d attempts: %w", maxRetries, err)
}
