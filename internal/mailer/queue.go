package mailer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/chuk05/myy-signature-myy-style/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// DeclareQueue declares the durable e-mail queue shared by the API, the jobs
// and the mail worker.
func DeclareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	return ch.QueueDeclare(
		name,
		true,  // durable
		false, // keep the queue when no consumer is attached
		false,
		false,
		nil,
	)
}

// Publisher serializes mail messages to JSON and publishes them on the
// e-mail queue.
type Publisher struct {
	ch      *amqp.Channel
	queue   string
	timeout time.Duration
}

func NewPublisher(ch *amqp.Channel, queue string, timeout time.Duration) *Publisher {
	return &Publisher{ch: ch, queue: queue, timeout: timeout}
}

func (p *Publisher) Publish(msg domain.MailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	return p.ch.PublishWithContext(
		ctx,
		"",
		p.queue,
		true,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}
