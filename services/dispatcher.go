package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/streadway/amqp"
	"github.com/adminpanel/dashboard/models"
	"github.com/adminpanel/dashboard/utils"
)

const pushExchange = "push.notifications"

// Dispatcher mengirim push notification yang sudah jatuh tempo ke message
// broker. Worker terpisah yang menangani pengiriman ke device.
type Dispatcher interface {
	Dispatch(notif *models.Notification) error
	Close() error
}

// NewDispatcher memakai RabbitMQ kalau amqpURL tidak kosong, selain itu
// fallback ke log-only (dev/test).
func NewDispatcher(amqpURL string) (Dispatcher, error) {
	if amqpURL == "" {
		return &logDispatcher{}, nil
	}
	return newAMQPDispatcher(amqpURL)
}

type pushMessage struct {
	NotificationID uint      `json:"notification_id"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Target         string    `json:"target"`
	TargetUserID   *uint     `json:"target_user_id,omitempty"`
	DispatchedAt   time.Time `json:"dispatched_at"`
}

type amqpDispatcher struct {
	conn *amqp.Connection
	mu   sync.Mutex
}

func newAMQPDispatcher(url string) (*amqpDispatcher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	// Pastikan exchange ada sebelum publish
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(pushExchange, "direct", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, err
	}

	return &amqpDispatcher{conn: conn}, nil
}

func (d *amqpDispatcher) Dispatch(notif *models.Notification) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	ch, err := d.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	body, err := json.Marshal(pushMessage{
		NotificationID: notif.ID,
		Title:          notif.Title,
		Message:        notif.Message,
		Target:         notif.Target,
		TargetUserID:   notif.TargetUserID,
		DispatchedAt:   time.Now(),
	})
	if err != nil {
		return err
	}

	return ch.Publish(pushExchange, notif.Target, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

func (d *amqpDispatcher) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.conn == nil {
		return nil
	}
	err := d.conn.Close()
	d.conn = nil
	return err
}

// logDispatcher hanya mencatat, dipakai saat AMQP_URL tidak di-set.
type logDispatcher struct{}

func (d *logDispatcher) Dispatch(notif *models.Notification) error {
	utils.InfoLogger.Printf("Dispatch (log-only): notification id=%d target=%s title=%q",
		notif.ID, notif.Target, notif.Title)
	return nil
}

func (d *logDispatcher) Close() error { return nil }
