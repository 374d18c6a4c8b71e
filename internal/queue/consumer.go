package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Notifier forwards a booking's share message somewhere people read it.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Consumer reads booking.recorded events, appends one line per event to a
// log file and optionally hands the share message to a Notifier.
type Consumer struct {
	url      string
	logPath  string
	notifier Notifier
	log      *zap.Logger
}

// NewConsumer returns a consumer for the broker at url. notifier may be nil.
func NewConsumer(url, logPath string, notifier Notifier, log *zap.Logger) *Consumer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Consumer{url: url, logPath: logPath, notifier: notifier, log: log}
}

// Run connects to the broker and consumes until ctx is cancelled, redialling
// with exponential backoff (capped at 30s) whenever the connection drops.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Warn("booking consumer: dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
			if !sleepCtx(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn("booking consumer: loop ended, reconnecting", zap.Error(err))
		if !sleepCtx(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.log.Warn("booking consumer: set QoS failed", zap.Error(err))
	}
	if _, err := ch.QueueDeclare(BookingQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(BookingQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.handleMessage(ctx, d.Body); err != nil {
				c.log.Error("booking consumer: handle message failed", zap.Error(err))
				_ = d.Nack(false, false) // do not requeue poison messages
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// handleMessage records one event. A notifier failure is logged but does
// not reject the message; the log line is the record of delivery.
func (c *Consumer) handleMessage(ctx context.Context, body []byte) error {
	var ev BookingRecordedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if err := c.appendLine(FormatLogLine(ev)); err != nil {
		return err
	}
	if c.notifier != nil && ev.ShareMessage != "" {
		if err := c.notifier.Notify(ctx, ev.ShareMessage); err != nil {
			c.log.Warn("booking consumer: notify failed", zap.Uint64("booking_id", ev.BookingID), zap.Error(err))
		}
	}
	return nil
}

func (c *Consumer) appendLine(line string) error {
	if err := os.MkdirAll(filepath.Dir(c.logPath), 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(c.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatLogLine renders an event as one line of the booking log.
func FormatLogLine(ev BookingRecordedEvent) string {
	return fmt.Sprintf("[%s] Booking recorded | booking_id=%d | date=%s | court=%q | shuttlecock=%q | hours=%d | shuttlecocks=%d | players=%d | total=%d | per_person=%.2f\n",
		ev.RecordedAt, ev.BookingID, ev.PlayDate, ev.CourtName, ev.ShuttlecockName,
		ev.DurationHours, ev.ShuttlecockCount, ev.PlayerCount, ev.TotalCost, ev.CostPerPerson)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
