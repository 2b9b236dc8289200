package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"train-service/pkg/models"
)

type kafkaMessage struct {
	reader *kafka.Reader
	msg    kafka.Message
}

func (m *kafkaMessage) Payload() []byte {
	return m.msg.Value
}

func (m *kafkaMessage) Commit(ctx context.Context) error {
	if err := m.reader.CommitMessages(ctx, m.msg); err != nil {
		return fmt.Errorf("failed to commit offset %d on partition %d: %w", m.msg.Offset, m.msg.Partition, err)
	}
	return nil
}

// KafkaReceiver consumes the runs topic with manual offset control: offsets
// advance only through Message.Commit.
type KafkaReceiver struct {
	reader *kafka.Reader
}

var _ Receiver = (*KafkaReceiver)(nil)

func NewKafkaReceiver(brokers []string, topic, groupId string) *KafkaReceiver {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupId,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})

	return &KafkaReceiver{reader: reader}
}

func (r *KafkaReceiver) Fetch(ctx context.Context) (Message, error) {
	msg, err := r.reader.FetchMessage(ctx)
	if err != nil {
		return nil, err
	}
	return &kafkaMessage{reader: r.reader, msg: msg}, nil
}

func (r *KafkaReceiver) Close() error {
	return r.reader.Close()
}

// KafkaPublisher writes run requests to the runs topic.
type KafkaPublisher struct {
	writer *kafka.Writer
}

var _ Publisher = (*KafkaPublisher)(nil)

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		BatchSize:    1,
		BatchTimeout: 10 * time.Millisecond,
	}

	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) PublishRun(ctx context.Context, payload models.RunMessage) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal run message: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(uuid.New().String()),
		Value: body,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish run %d: %w", payload.RunId, err)
	}

	slog.Info("run published", "run_id", payload.RunId, "topic", p.writer.Topic)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
