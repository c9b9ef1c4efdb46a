package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ZhongweiL/CSCI-39548-final-project-client/internal/models"
	"github.com/ZhongweiL/CSCI-39548-final-project-client/pkg/rabbitmq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// RabbitMQClient announces successful edits to downstream consumers.
type RabbitMQClient interface {
	PublishStudentEdited(ctx context.Context, event *models.StudentEditedEvent) error
	PublishCampusEdited(ctx context.Context, event *models.CampusEditedEvent) error
	Close() error
}

type RabbitMQConfig struct {
	URL               string
	Exchange          string
	StudentRoutingKey string
	CampusRoutingKey  string
}

// publisher is the subset of *amqp.Channel used here.
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type rabbitMQClient struct {
	conn              *amqp.Connection
	channel           publisher
	exchange          string
	studentRoutingKey string
	campusRoutingKey  string
	logger            zerolog.Logger
}

func NewRabbitMQClient(cfg RabbitMQConfig, logger zerolog.Logger) (RabbitMQClient, error) {
	conn, err := rabbitmq.NewConnection(cfg.URL)
	if err != nil {
		return nil, err
	}

	channel, err := rabbitmq.NewChannel(conn, cfg.Exchange)
	if err != nil {
		conn.Close()
		return nil, err
	}

	logger.Info().
		Str("exchange", cfg.Exchange).
		Str("student_routing_key", cfg.StudentRoutingKey).
		Str("campus_routing_key", cfg.CampusRoutingKey).
		Msg("Connected to RabbitMQ")

	client := newRabbitMQClient(channel, cfg, logger)
	client.conn = conn
	return client, nil
}

func newRabbitMQClient(channel publisher, cfg RabbitMQConfig, logger zerolog.Logger) *rabbitMQClient {
	return &rabbitMQClient{
		channel:           channel,
		exchange:          cfg.Exchange,
		studentRoutingKey: cfg.StudentRoutingKey,
		campusRoutingKey:  cfg.CampusRoutingKey,
		logger:            logger,
	}
}

func (c *rabbitMQClient) PublishStudentEdited(ctx context.Context, event *models.StudentEditedEvent) error {
	if err := c.publish(ctx, c.studentRoutingKey, event); err != nil {
		return err
	}

	c.logger.Info().
		Str("event_id", event.EventID).
		Int("student_id", event.StudentID).
		Msg("Student edited event published")
	return nil
}

func (c *rabbitMQClient) PublishCampusEdited(ctx context.Context, event *models.CampusEditedEvent) error {
	if err := c.publish(ctx, c.campusRoutingKey, event); err != nil {
		return err
	}

	c.logger.Info().
		Str("event_id", event.EventID).
		Int("campus_id", event.CampusID).
		Msg("Campus edited event published")
	return nil
}

func (c *rabbitMQClient) publish(ctx context.Context, routingKey string, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		publishCtx,
		c.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

func (c *rabbitMQClient) Close() error {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.logger.Error().Err(err).Msg("Failed to close RabbitMQ channel")
		}
	}

	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			c.logger.Error().Err(err).Msg("Failed to close RabbitMQ connection")
		}
	}

	return nil
}
