// Package logging provides an event publisher that only writes events to the
// log. It stands in for Kafka when no brokers are configured.
package logging

import (
	"context"

	"go.uber.org/zap"

	interfaces "github.com/sheikh-saqib/household-payoff-planner/internal/interfaces"
)

type Publisher struct {
	logger *zap.Logger
}

func NewPublisher(logger *zap.Logger) *Publisher {
	return &Publisher{logger: logger}
}

func (p *Publisher) Publish(_ context.Context, topic, key string, event any) error {
	p.logger.Info("event published",
		zap.String("topic", topic),
		zap.String("key", key),
		zap.Any("event", event),
	)
	return nil
}

var _ interfaces.EventPublisher = (*Publisher)(nil)
