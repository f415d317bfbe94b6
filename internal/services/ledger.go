package loyalty

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	interf "github.com/richardgms/cicero-joias-sub001/internal/interfaces"
	model "github.com/richardgms/cicero-joias-sub001/internal/models"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	PointsPerOrder     = 1  // балл за завершенный заказ, не настраивается
	CouponThreshold    = 10 // баллов за купон
	RecentTransactions = 10

	DefaultEarnDescription = "Ponto ganho por conserto/compra"
	redeemDescription      = "Cupom de fidelidade gerado (10 pontos)"
)

// Сколько баллов осталось до следующего купона; на кратном 10 балансе - 0
func PointsToNextCoupon(points int) int {
	rest := points % CouponThreshold
	if rest == 0 {
		return 0
	}
	return CouponThreshold - rest
}

type LoyaltyLedger struct {
	logger *zap.Logger
	db     interf.LedgerStorage
	cache  interf.CacheStorage
	issuer *CouponIssuer
	now    func() time.Time
}

// cache может быть nil
func NewLoyaltyLedger(logger *zap.Logger, db interf.LedgerStorage, cache interf.CacheStorage, issuer *CouponIssuer) *LoyaltyLedger {
	return &LoyaltyLedger{logger, db, cache, issuer, time.Now}
}

// EarnPoint начисляет балл за заказ. Всё, включая выпуск купона при
// достижении порога, выполняется в одной транзакции с блокировкой клиента.
// Повтор по тому же orderID ничего не меняет.
func (l *LoyaltyLedger) EarnPoint(ctx context.Context, customerID uuid.UUID, orderID string, description string) (result model.EarnResult, err error) {
	ctx, span := tracer.Start(ctx, "LoyaltyLedger.EarnPoint")
	defer span.End()
	span.SetAttributes(
		attribute.String("customer.id", customerID.String()),
		attribute.String("order.id", orderID),
	)

	if description == "" {
		description = DefaultEarnDescription
	}

	var customer model.Customer
	err = l.db.InTx(ctx, func(tx interf.LedgerTx) error {
		result = model.EarnResult{}

		var err error
		customer, err = tx.LockCustomer(ctx, customerID)
		if err != nil {
			return err
		}

		// заказ уже учтен
		if orderID != "" {
			done, err := tx.EarnedExists(ctx, customerID, orderID)
			if err != nil {
				return err
			}
			if done {
				result.LoyaltyPoints = customer.LoyaltyPoints
				result.PointsToNextCoupon = PointsToNextCoupon(customer.LoyaltyPoints)
				result.AlreadyProcessed = true
				return nil
			}
		}

		now := l.now()
		err = tx.TnxCreate(ctx, model.LoyaltyTransaction{
			ID:          uuid.New(),
			CustomerID:  customerID,
			Kind:        model.EARNED,
			Points:      PointsPerOrder,
			OrderID:     orderID,
			Description: description,
			CreatedAt:   now,
		})
		if err != nil {
			return err
		}
		points := customer.LoyaltyPoints + PointsPerOrder

		// порог: купон и списание 10 баллов
		if points > 0 && points%CouponThreshold == 0 {
			coupon, err := l.issuer.Issue(ctx, tx, customerID, LoyaltyTerms)
			if err != nil {
				return err
			}
			err = tx.TnxCreate(ctx, model.LoyaltyTransaction{
				ID:          uuid.New(),
				CustomerID:  customerID,
				Kind:        model.REDEEMED,
				Points:      -CouponThreshold,
				CouponID:    uuid.NullUUID{UUID: coupon.ID, Valid: true},
				Description: redeemDescription,
				CreatedAt:   now,
			})
			if err != nil {
				return err
			}
			points -= CouponThreshold
			result.NewCoupon = &coupon
		}

		err = tx.SetPoints(ctx, customerID, points)
		if err != nil {
			return err
		}
		result.LoyaltyPoints = points
		result.PointsToNextCoupon = PointsToNextCoupon(points)
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return model.EarnResult{}, fmt.Errorf("earn point for %s: %w", customerID, err)
	}

	if result.AlreadyProcessed {
		ordersAlreadyProcessedTotal.Inc()
		l.logger.Info("Order already processed",
			zap.String("customer", customerID.String()),
			zap.String("order", orderID),
		)
		return result, nil
	}

	pointsEarnedTotal.Add(PointsPerOrder)
	l.invalidate(ctx, customerID)
	if result.NewCoupon != nil {
		couponsIssuedTotal.WithLabelValues(string(model.LOYALTY)).Inc()
		l.logger.Info("Coupon issued",
			zap.String("type", string(result.NewCoupon.Type)),
			zap.String("code", result.NewCoupon.Code),
			zap.String("customer", customerID.String()),
			zap.String("order", orderID),
		)
		l.issuer.notify(ctx, *result.NewCoupon, customer)
	}
	return result, nil
}

// ReportBalance - баланс, баллы до купона и последние транзакции
func (l *LoyaltyLedger) ReportBalance(ctx context.Context, customerID uuid.UUID) (report model.BalanceReport, err error) {
	// cache; поколение читается до базы, чтобы не записать отчет старше инвалидации
	var version int64
	cacheable := false
	if l.cache != nil {
		report, err = l.cache.GetReport(ctx, customerID)
		if err == nil {
			return report, nil
		}
		version, err = l.cache.ReportVersion(ctx, customerID)
		if err != nil {
			l.logger.Error(err.Error())
		} else {
			cacheable = true
		}
	}

	// database
	customer, err := l.db.GetCustomer(ctx, customerID)
	if err != nil {
		return model.BalanceReport{}, err
	}
	tnxs, err := l.db.GetTnx(ctx, customerID, RecentTransactions)
	if err != nil {
		return model.BalanceReport{}, err
	}
	if tnxs == nil {
		tnxs = []model.LoyaltyTransaction{}
	}
	report = model.BalanceReport{
		CustomerID:         customerID,
		LoyaltyPoints:      customer.LoyaltyPoints,
		PointsToNextCoupon: PointsToNextCoupon(customer.LoyaltyPoints),
		Transactions:       tnxs,
	}

	if cacheable {
		err = l.cache.SetReport(ctx, report, version)
		if err != nil {
			l.logger.Error(err.Error())
		}
	}
	return report, nil
}

// инвалидировать кэш баланса
func (l *LoyaltyLedger) invalidate(ctx context.Context, customerID uuid.UUID) {
	if l.cache == nil {
		return
	}
	err := l.cache.InvalidateReport(ctx, customerID)
	if err != nil {
		l.logger.Error(err.Error())
	}
}
