package nsq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nsqio/go-nsq"
	"github.com/piresc/payrecon/internal/pkg/logger"
)

// MessageHandler processes one message body. A returned error requeues the
// message until MaxAttempts is reached.
type MessageHandler func(ctx context.Context, body []byte) error

// ConsumerConfig configures a topic/channel subscription
type ConsumerConfig struct {
	Topic          string
	Channel        string
	Address        string
	MaxAttempts    uint16
	MaxInFlight    int
	HandlerTimeout time.Duration
}

// Consumer handles consuming messages from an NSQ topic
type Consumer struct {
	consumer *nsq.Consumer
}

// NewConsumer subscribes handler to the configured topic/channel
func NewConsumer(cfg ConsumerConfig, handler MessageHandler) (*Consumer, error) {
	config := nsq.NewConfig()
	if cfg.MaxAttempts > 0 {
		config.MaxAttempts = cfg.MaxAttempts
	}
	if cfg.MaxInFlight > 0 {
		config.MaxInFlight = cfg.MaxInFlight
	}
	timeout := cfg.HandlerTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	consumer, err := nsq.NewConsumer(cfg.Topic, cfg.Channel, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create NSQ consumer: %w", err)
	}
	consumer.SetLoggerLevel(nsq.LogLevelWarning)

	consumer.AddHandler(nsq.HandlerFunc(func(message *nsq.Message) error {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := handler(ctx, message.Body); err != nil {
			logger.Warn("Failed to process NSQ message",
				logger.String("topic", cfg.Topic),
				logger.Int("attempts", int(message.Attempts)),
				logger.Err(err))
			return err
		}
		return nil
	}))

	if err := consumer.ConnectToNSQD(cfg.Address); err != nil {
		consumer.Stop()
		return nil, fmt.Errorf("failed to connect to NSQ daemon: %w", err)
	}

	return &Consumer{consumer: consumer}, nil
}

// UnmarshalMessage decodes a JSON message body into v
func UnmarshalMessage(body []byte, v interface{}) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}
	return nil
}

// Stop stops the consumer and waits for in-flight handlers
func (c *Consumer) Stop() {
	c.consumer.Stop()
	<-c.consumer.StopChan
}
