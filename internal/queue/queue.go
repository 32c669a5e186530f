package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/inquesta/casefile/internal/util"
)

const IngestQueue = "ingest_queue"

// Queues lists every work queue the worker consumes from.
var Queues = []string{IngestQueue}

func Init() (*amqp091.Connection, error) {
	user := util.GetEnv("RABBITMQ_USER")
	password := util.GetEnv("RABBITMQ_PASSWORD")
	host := util.GetEnv("RABBITMQ_HOST")
	port := util.GetEnv("RABBITMQ_PORT")

	conn, err := amqp091.Dial(fmt.Sprintf("amqp://%s:%s@%s:%s", user, password, host, port))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %v", err)
	}

	return conn, nil
}

// SetupQueues declares each queue together with its retry and dead letter
// companions. Messages published to the retry queue expire after the TTL and
// are routed back to the main queue.
func SetupQueues(ch *amqp091.Channel, queues []string) error {
	for _, queue := range queues {
		_, err := ch.QueueDeclare(
			queue,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			return fmt.Errorf("failed to declare queue %s: %v", queue, err)
		}

		_, err = ch.QueueDeclare(
			fmt.Sprintf("%s_dlq", queue),
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			return fmt.Errorf("failed to declare dead letter queue for %s: %v", queue, err)
		}

		_, err = ch.QueueDeclare(
			fmt.Sprintf("%s_retry", queue),
			true,
			false,
			false,
			false,
			amqp091.Table{
				"x-message-ttl":             int32(10000),
				"x-dead-letter-exchange":    "",
				"x-dead-letter-routing-key": queue,
			},
		)
		if err != nil {
			return fmt.Errorf("failed to declare retry queue for %s: %v", queue, err)
		}
	}

	return nil
}

func PublishFIFO(ctx context.Context, ch *amqp091.Channel, queue string, body []byte) error {
	err := ch.PublishWithContext(
		ctx,
		"",
		queue,
		false,
		false,
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message to queue %s: %v", queue, err)
	}

	return nil
}
