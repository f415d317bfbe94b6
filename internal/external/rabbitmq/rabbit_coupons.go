package loyalty

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	config "github.com/richardgms/cicero-joias-sub001/internal/config"
	model "github.com/richardgms/cicero-joias-sub001/internal/models"
)

const queue = "coupons"

var ErrNotifierDisabled = errors.New("env RABBIT_URL is not set, coupon notifications disabled")

// Публикация выпущенных купонов для рассылки
type RabbitNotifier struct {
	conn *amqp.Connection
	mu   sync.Mutex
	ch   *amqp.Channel
}

type CouponMessage struct {
	CouponID   string     `json:"couponId"`
	Code       string     `json:"code"`
	Type       string     `json:"type"`
	CustomerID string     `json:"customerId"`
	Email      string     `json:"email"`
	ExpiresAt  *time.Time `json:"expiresAt"`
}

func NewCouponMessage(coupon model.Coupon, customer model.Customer) CouponMessage {
	return CouponMessage{
		CouponID:   coupon.ID.String(),
		Code:       coupon.Code,
		Type:       string(coupon.Type),
		CustomerID: coupon.CustomerID.String(),
		Email:      customer.Email,
		ExpiresAt:  coupon.ExpiresAt,
	}
}

// NewRabbitNotifier возвращает ErrNotifierDisabled, если RabbitMQ не настроен
func NewRabbitNotifier() (rabbit *RabbitNotifier, err error) {
	// config
	rabbiturl := config.String("RABBIT_URL", "")
	if rabbiturl == "" {
		return nil, ErrNotifierDisabled
	}
	rabbitport, err := config.Required("RABBIT_PORT")
	if err != nil {
		return nil, err
	}
	rabbituser, err := config.Required("RABBIT_USER")
	if err != nil {
		return nil, err
	}
	rabbitpass, err := config.Required("RABBIT_PASSWORD")
	if err != nil {
		return nil, err
	}

	rabbitconn := "amqp://" + rabbituser + ":" + rabbitpass + "@" + rabbiturl + ":" + rabbitport + "/"
	conn, err := amqp.Dial(rabbitconn)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	_, err = ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &RabbitNotifier{conn: conn, ch: ch}, nil
}

func (r *RabbitNotifier) Close() {
	r.ch.Close()
	r.conn.Close()
}

// уведомление о выпуске купона
func (r *RabbitNotifier) CouponIssued(ctx context.Context, coupon model.Coupon, customer model.Customer) error {
	msg, err := json.Marshal(NewCouponMessage(coupon, customer))
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ch.PublishWithContext(ctx,
		"",    // exchange
		queue, // routing key
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    coupon.ID.String(),
			Timestamp:    coupon.CreatedAt,
			Body:         msg,
		})
}
