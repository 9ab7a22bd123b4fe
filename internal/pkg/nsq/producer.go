package nsq

import (
	"encoding/json"
	"fmt"

	"github.com/nsqio/go-nsq"
)

// Producer publishes JSON messages to NSQ topics
type Producer struct {
	producer *nsq.Producer
}

// NewProducer connects to nsqd at address and pings it
func NewProducer(address string) (*Producer, error) {
	producer, err := nsq.NewProducer(address, nsq.NewConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create NSQ producer: %w", err)
	}
	producer.SetLoggerLevel(nsq.LogLevelWarning)

	if err := producer.Ping(); err != nil {
		producer.Stop()
		return nil, fmt.Errorf("failed to ping NSQ daemon: %w", err)
	}

	return &Producer{producer: producer}, nil
}

// Publish encodes message as JSON and publishes it to topic
func (p *Producer) Publish(topic string, message interface{}) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	if err := p.producer.Publish(topic, body); err != nil {
		return fmt.Errorf("failed to publish message to %s: %w", topic, err)
	}
	return nil
}

// Ping checks connectivity, used by the health checker
func (p *Producer) Ping() error {
	return p.producer.Ping()
}

// Stop gracefully stops the producer
func (p *Producer) Stop() {
	p.producer.Stop()
}
