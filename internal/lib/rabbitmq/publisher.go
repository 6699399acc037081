// Package rabbitmq реализует публикацию событий о подтверждённых заказах.
//
// После успешного двухшагового оформления консоль публикует событие
// orders.committed; его потребляют внешние воркеры уведомлений.
// Публикация выполняется по принципу best-effort: ошибка публикации
// не влияет на результат оформления заказа.
package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// OrderCommittedEvent — тело события о подтверждённом заказе.
type OrderCommittedEvent struct {
	AttemptID string    `json:"attempt_id"`
	UserID    int       `json:"user_id"`
	Username  string    `json:"username"`
	Total     float64   `json:"total"`
	Committed time.Time `json:"committed_at"`
}

// Connect подключается к RabbitMQ с повторными попытками.
func Connect(connection string, retries int, delay time.Duration) (*amqp.Connection, error) {
	const op = "rabbitmq.Connect"
	var conn *amqp.Connection
	var err error

	for range retries {
		conn, err = amqp.Dial(connection)
		if err == nil {
			return conn, nil
		}
		time.Sleep(delay)
	}

	return nil, fmt.Errorf("%s: %w", op, err)
}

// SetupChannel открывает канал и объявляет очередь заказов.
func SetupChannel(conn *amqp.Connection, queueName string) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := ch.QueueDeclare(
		queueName,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return nil, fmt.Errorf("%s: failed to declare queue %s: %w", op, queueName, err)
	}
	return ch, nil
}

// Publisher публикует события о заказах в объявленную очередь.
type Publisher struct {
	ch    *amqp.Channel
	queue string
}

// NewPublisher создаёт Publisher поверх открытого канала.
func NewPublisher(ch *amqp.Channel, queue string) *Publisher {
	return &Publisher{ch: ch, queue: queue}
}

// PublishOrderCommitted публикует событие о подтверждённом заказе.
func (p *Publisher) PublishOrderCommitted(event OrderCommittedEvent) error {
	return PublishMessage(p.ch, p.queue, event)
}

// PublishMessage публикует сообщение в очередь заказов.
func PublishMessage(ch *amqp.Channel, queueName string, message any) error {
	const op = "rabbitmq.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		"",
		queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
