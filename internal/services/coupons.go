package loyalty

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	interf "github.com/richardgms/cicero-joias-sub001/internal/interfaces"
	model "github.com/richardgms/cicero-joias-sub001/internal/models"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Лимит попыток сгенерировать свободный код
const maxCodeAttempts = 20

// Условия выпуска купона
type CouponTerms struct {
	Type        model.CouponType
	Prefix      string
	Value       float64
	Percentage  int
	MaxDiscount float64
	ExpiresIn   time.Duration
}

var (
	// 100% скидки, но не больше 40,00; действует 180 дней
	LoyaltyTerms = CouponTerms{
		Type:        model.LOYALTY,
		Prefix:      "FIEL",
		Value:       40.00,
		Percentage:  100,
		MaxDiscount: 40.00,
		ExpiresIn:   180 * 24 * time.Hour,
	}
	// 10,00 на первую покупку; действует 90 дней
	NewUserTerms = CouponTerms{
		Type:      model.NEW_USER,
		Prefix:    "NOVO",
		Value:     10.00,
		ExpiresIn: 90 * 24 * time.Hour,
	}
)

func (t CouponTerms) coupon(customerID uuid.UUID, code string, now time.Time) model.Coupon {
	c := model.Coupon{
		ID:          uuid.New(),
		Code:        code,
		Type:        t.Type,
		Value:       t.Value,
		Percentage:  t.Percentage,
		MaxDiscount: t.MaxDiscount,
		CustomerID:  customerID,
		IsActive:    true,
		IsUsed:      false,
		CreatedAt:   now,
	}
	if t.ExpiresIn > 0 {
		expires := now.Add(t.ExpiresIn)
		c.ExpiresAt = &expires
	}
	return c
}

type CouponIssuer struct {
	logger   *zap.Logger
	db       interf.LedgerStorage
	codes    CodeGenerator
	notifier interf.CouponNotifier
	now      func() time.Time
}

// codes и notifier могут быть nil
func NewCouponIssuer(logger *zap.Logger, db interf.LedgerStorage, codes CodeGenerator, notifier interf.CouponNotifier) *CouponIssuer {
	if codes == nil {
		codes = RandomCodes{}
	}
	return &CouponIssuer{logger, db, codes, notifier, time.Now}
}

// Issue выпускает купон внутри транзакции вызывающего.
// Проверка существования кода - быстрый путь, уникальный индекс - окончательный.
func (c *CouponIssuer) Issue(ctx context.Context, tx interf.LedgerTx, customerID uuid.UUID, terms CouponTerms) (model.Coupon, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := c.codes.Generate(terms.Prefix)
		if err != nil {
			return model.Coupon{}, err
		}

		exists, err := tx.CouponCodeExists(ctx, code)
		if err != nil {
			return model.Coupon{}, err
		}
		if exists {
			couponCodeCollisionsTotal.Inc()
			continue
		}

		coupon := terms.coupon(customerID, code, c.now())
		created, err := tx.CouponCreate(ctx, coupon)
		if err != nil {
			return model.Coupon{}, err
		}
		if !created {
			// код заняли параллельно между проверкой и вставкой
			couponCodeCollisionsTotal.Inc()
			continue
		}
		return coupon, nil
	}
	c.logger.Error("Coupon code space exhausted",
		zap.String("service", "Issue"),
		zap.String("prefix", terms.Prefix),
		zap.String("customer", customerID.String()),
	)
	return model.Coupon{}, fmt.Errorf("prefix %s after %d attempts: %w", terms.Prefix, maxCodeAttempts, model.ErrCouponCodeExhausted)
}

// Купон нового пользователя: не более одного активного неиспользованного на клиента
func (c *CouponIssuer) NewUserCoupon(ctx context.Context, customerID uuid.UUID) (coupon model.Coupon, alreadyIssued bool, err error) {
	ctx, span := tracer.Start(ctx, "CouponIssuer.NewUserCoupon")
	defer span.End()
	span.SetAttributes(attribute.String("customer.id", customerID.String()))

	var customer model.Customer
	err = c.db.InTx(ctx, func(tx interf.LedgerTx) error {
		alreadyIssued = false

		var err error
		customer, err = tx.LockCustomer(ctx, customerID)
		if err != nil {
			return err
		}

		existing, err := tx.GetUnusedCoupon(ctx, customerID, model.NEW_USER)
		if err == nil {
			coupon = existing
			alreadyIssued = true
			return nil
		}
		if !errors.Is(err, model.ErrNotFound) {
			return err
		}

		coupon, err = c.Issue(ctx, tx, customerID, NewUserTerms)
		return err
	})
	if err != nil {
		span.RecordError(err)
		return model.Coupon{}, false, fmt.Errorf("new user coupon for %s: %w", customerID, err)
	}

	if alreadyIssued {
		return coupon, true, nil
	}
	couponsIssuedTotal.WithLabelValues(string(model.NEW_USER)).Inc()
	c.logger.Info("Coupon issued",
		zap.String("type", string(coupon.Type)),
		zap.String("code", coupon.Code),
		zap.String("customer", customerID.String()),
	)
	c.notify(ctx, coupon, customer)
	return coupon, false, nil
}

// Действующие купоны клиента, новые первыми
func (c *CouponIssuer) ActiveCoupons(ctx context.Context, customerID uuid.UUID) ([]model.Coupon, error) {
	coupons, err := c.db.GetActiveCoupons(ctx, customerID, c.now())
	if err != nil {
		return nil, err
	}
	if coupons == nil {
		coupons = []model.Coupon{}
	}
	return coupons, nil
}

// уведомление после commit; ошибка не отменяет выпуск
func (c *CouponIssuer) notify(ctx context.Context, coupon model.Coupon, customer model.Customer) {
	if c.notifier == nil {
		return
	}
	err := c.notifier.CouponIssued(ctx, coupon, customer)
	if err != nil {
		c.logger.Error("Coupon notification",
			zap.String("service", "notify"),
			zap.String("code", coupon.Code),
			zap.Error(err),
		)
	}
}
