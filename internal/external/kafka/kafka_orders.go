package loyalty

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	config "github.com/richardgms/cicero-joias-sub001/internal/config"
	model "github.com/richardgms/cicero-joias-sub001/internal/models"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	OrdersTopic = "orders_completed"
	ordersGroup = "loyalty"

	commitTimeout = 5 * time.Second
	orderTries    = 5
)

var (
	ErrMalformedOrder = errors.New("malformed order event")
	ErrOrderFailed    = errors.New("order event failed")
)

// источник сообщений; *kafka.Reader
type MessageSource interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

type OrderHandler func(ctx context.Context, event model.OrderEvent) error

func NewOrdersReader(topic string) (*kafka.Reader, error) {
	// config
	kafkaurl, err := config.Required("KAFKA_ORDER_URL")
	if err != nil {
		return nil, err
	}
	kafkaport, err := config.Required("KAFKA_ORDER_PORT")
	if err != nil {
		return nil, err
	}

	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{kafkaurl + ":" + kafkaport},
		Topic:   topic,
		GroupID: ordersGroup,
	}), nil
}

func ParseOrderEvent(value []byte) (event model.OrderEvent, err error) {
	err = json.Unmarshal(value, &event)
	if err != nil {
		return event, fmt.Errorf("%w: %v", ErrMalformedOrder, err)
	}
	event.OrderID = strings.TrimSpace(event.OrderID)
	if event.OrderID == "" {
		return event, fmt.Errorf("%w: orderId is empty", ErrMalformedOrder)
	}
	if event.CustomerID == "" && strings.TrimSpace(event.ClientEmail) == "" {
		return event, fmt.Errorf("%w: neither customerId nor clientEmail", ErrMalformedOrder)
	}
	return event, nil
}

// Потребитель заказов: не более workers обработчиков одновременно.
// Временные ошибки обработчика повторяются на месте; offset фиксируется
// по порядку внутри партиции, только за полностью обработанными сообщениями.
// Битые сообщения и заказы неизвестных клиентов фиксируются и пропускаются.
type OrderConsumer struct {
	source  MessageSource
	logger  *zap.Logger
	workers int

	tries   uint
	initial time.Duration
	max     time.Duration
}

func NewOrderConsumer(source MessageSource, logger *zap.Logger, workers int) *OrderConsumer {
	if workers < 1 {
		workers = 1
	}
	return &OrderConsumer{
		source:  source,
		logger:  logger,
		workers: workers,
		tries:   orderTries,
		initial: 200 * time.Millisecond,
		max:     5 * time.Second,
	}
}

// Run читает до отмены ctx (или io.EOF) и дожидается запущенных обработчиков.
// Если заказ не обработан за все попытки, чтение останавливается
// и возвращается ошибка с ErrOrderFailed; offset за ним не фиксируются.
func (c *OrderConsumer) Run(ctx context.Context, handle OrderHandler) error {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	wg := &sync.WaitGroup{}
	offsets := newOffsetTracker(c.source, c.logger)

	err := c.consume(ctx, cancel, wg, offsets, handle)
	wg.Wait()

	cause := context.Cause(ctx)
	if errors.Is(cause, ErrOrderFailed) {
		return cause
	}
	return err
}

func (c *OrderConsumer) consume(ctx context.Context, cancel context.CancelCauseFunc, wg *sync.WaitGroup, offsets *offsetTracker, handle OrderHandler) error {
	semaphore := make(chan struct{}, c.workers)
	for {
		if ctx.Err() != nil {
			return nil
		}
		msg, err := c.source.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		pending := offsets.add(msg)

		event, err := ParseOrderEvent(msg.Value)
		if err != nil {
			c.logger.Error("Order event skipped",
				zap.Error(err),
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
			)
			offsets.done(ctx, pending)
			continue
		}

		select {
		case semaphore <- struct{}{}:
		case <-ctx.Done():
			return nil
		}
		wg.Add(1)
		go func(msg kafka.Message) {
			defer wg.Done()
			defer func() { <-semaphore }()

			err := c.process(ctx, handle, event, msg)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.Error("Order event failed",
					zap.Error(err),
					zap.String("order", event.OrderID),
					zap.Int("partition", msg.Partition),
					zap.Int64("offset", msg.Offset),
				)
				cancel(fmt.Errorf("%w: order %s partition %d offset %d: %w", ErrOrderFailed, event.OrderID, msg.Partition, msg.Offset, err))
				return
			}
			offsets.done(ctx, pending)
		}(msg)
	}
}

// process повторяет обработчик с экспоненциальной задержкой.
// ErrNotFound и ErrInvalidInput не повторяются: заказ пропускается.
func (c *OrderConsumer) process(ctx context.Context, handle OrderHandler, event model.OrderEvent, msg kafka.Message) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initial
	b.MaxInterval = c.max

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := handle(ctx, event)
		switch {
		case err == nil:
			return struct{}{}, nil
		case errors.Is(err, model.ErrNotFound), errors.Is(err, model.ErrInvalidInput):
			c.logger.Error("Order event rejected",
				zap.Error(err),
				zap.String("order", event.OrderID),
				zap.Int64("offset", msg.Offset),
			)
			return struct{}{}, nil
		}
		return struct{}{}, err
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(c.tries),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.logger.Warn("Order event retry",
				zap.Error(err),
				zap.String("order", event.OrderID),
				zap.Int64("offset", msg.Offset),
				zap.Duration("next", next),
			)
		}),
	)
	return err
}

type pendingMessage struct {
	msg      kafka.Message
	finished bool
}

// offsetTracker фиксирует offset партиции только за непрерывным префиксом
// обработанных сообщений
type offsetTracker struct {
	source MessageSource
	logger *zap.Logger

	mu      sync.Mutex
	pending map[int][]*pendingMessage
}

func newOffsetTracker(source MessageSource, logger *zap.Logger) *offsetTracker {
	return &offsetTracker{
		source:  source,
		logger:  logger,
		pending: make(map[int][]*pendingMessage),
	}
}

func (t *offsetTracker) add(msg kafka.Message) *pendingMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	pm := &pendingMessage{msg: msg}
	t.pending[msg.Partition] = append(t.pending[msg.Partition], pm)
	return pm
}

func (t *offsetTracker) done(ctx context.Context, pm *pendingMessage) {
	t.mu.Lock()
	defer t.mu.Unlock()
	pm.finished = true

	queue := t.pending[pm.msg.Partition]
	n := 0
	for n < len(queue) && queue[n].finished {
		n++
	}
	if n == 0 {
		return
	}
	msgs := make([]kafka.Message, n)
	for i := range msgs {
		msgs[i] = queue[i].msg
	}
	t.pending[pm.msg.Partition] = queue[n:]

	// под мьютексом: commit партиции идут строго по возрастанию offset
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), commitTimeout)
	defer cancel()
	err := t.source.CommitMessages(ctx, msgs...)
	if err != nil {
		t.logger.Error("Kafka commit",
			zap.Error(err),
			zap.Int("partition", pm.msg.Partition),
			zap.Int64("offset", msgs[n-1].Offset),
		)
	}
}
