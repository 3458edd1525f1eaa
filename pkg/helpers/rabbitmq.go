package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

var (
	ErrPublisherClosed = errors.New("rabbitmq publisher closed")
	ErrPublishNacked   = errors.New("rabbitmq broker rejected message")
)

// RabbitPublisher publishes persistent JSON messages to one durable queue
// and waits for the broker to confirm each of them.
type RabbitPublisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	Queue string
	AppID string

	mu     sync.Mutex
	closed chan *amqp.Error
}

func NewRabbitPublisher(url, queue string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	fail := func(err error) (*RabbitPublisher, error) {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fail(fmt.Errorf("declare queue %s: %w", queue, err))
	}
	if err := ch.Confirm(false); err != nil {
		return fail(fmt.Errorf("enable confirms: %w", err))
	}
	return &RabbitPublisher{
		conn:   conn,
		ch:     ch,
		Queue:  queue,
		closed: ch.NotifyClose(make(chan *amqp.Error, 1)),
	}, nil
}

func (p *RabbitPublisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// PublishJSON marshals body and publishes it to the queue. It returns once
// the broker has confirmed the message or ctx is done.
func (p *RabbitPublisher) PublishJSON(ctx context.Context, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	select {
	case <-p.closed:
		return ErrPublisherClosed
	default:
	}
	if p.ch.IsClosed() {
		return ErrPublisherClosed
	}

	conf, err := p.ch.PublishWithDeferredConfirmWithContext(ctx,
		"",      // default exchange
		p.Queue, // routing key = queue
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			AppId:        p.AppID,
			Timestamp:    time.Now().UTC(),
			Body:         b,
		},
	)
	if err != nil {
		return err
	}
	ok, err := conf.WaitContext(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPublishNacked
	}
	return nil
}
