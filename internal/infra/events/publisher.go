// Package events публикует доменные события бронирований в RabbitMQ.
// Публикация best-effort: ошибки логируются и возвращаются, но вызывающий
// код не прерывает из-за них основной сценарий запроса.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Publisher публикует события в RabbitMQ через долгоживущее соединение.
// При обрыве соединения следующая публикация пытается переподключиться.
type Publisher struct {
	url    string
	logger Logger

	mu   sync.Mutex
	conn *amqp.Connection
}

// NewPublisher создает издателя событий. Соединение устанавливается лениво
// при первой публикации, поэтому недоступный брокер не мешает старту сервиса.
func NewPublisher(url string, logger Logger) *Publisher {
	return &Publisher{
		url:    url,
		logger: logger,
	}
}

// PublishBookingConfirmed публикует событие подтверждения бронирования
func (p *Publisher) PublishBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error {
	return p.publish(ctx, QueueBookingConfirmed, event)
}

// PublishBookingCancelled публикует событие отмены бронирования
func (p *Publisher) PublishBookingCancelled(ctx context.Context, event BookingCancelledEvent) error {
	return p.publish(ctx, QueueBookingCancelled, event)
}

// Close закрывает соединение с брокером
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil {
		return nil
	}
	err := p.conn.Close()
	p.conn = nil
	return err
}

func (p *Publisher) publish(ctx context.Context, queue string, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event for %s: %v", ErrPublish, queue, err)
	}

	channel, err := p.openChannel()
	if err != nil {
		p.logger.Warn("[EventsPublisher] Брокер недоступен, событие %s не опубликовано: %v", queue, err)
		return err
	}
	defer func() { _ = channel.Close() }()

	// Очередь durable, объявление идемпотентно
	if _, err := channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("%w: declare queue %s: %v", ErrPublish, queue, err)
	}

	publishing := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := channel.PublishWithContext(ctx, "", queue, false, false, publishing); err != nil {
		p.logger.Error("[EventsPublisher] Ошибка публикации события %s: %v", queue, err)
		return fmt.Errorf("%w: publish to %s: %v", ErrPublish, queue, err)
	}

	p.logger.Info("[EventsPublisher] Событие %s опубликовано", queue)
	return nil
}

// openChannel возвращает канал живого соединения, переподключаясь при необходимости
func (p *Publisher) openChannel() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.Dial(p.url)
		if err != nil {
			return nil, fmt.Errorf("%w: dial %s: %v", ErrNotConnected, p.url, err)
		}
		p.conn = conn
	}

	channel, err := p.conn.Channel()
	if err != nil {
		// Соединение могло умереть между IsClosed и Channel
		_ = p.conn.Close()
		p.conn = nil
		return nil, fmt.Errorf("%w: open channel: %v", ErrNotConnected, err)
	}

	return channel, nil
}
