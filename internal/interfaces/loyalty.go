package loyalty

import (
	"context"
	"time"

	"github.com/google/uuid"
	model "github.com/richardgms/cicero-joias-sub001/internal/models"
)

//go:generate mockgen -destination=./../services/mock_ledger_test.go -package=loyalty . LedgerStorage,LedgerTx,CacheStorage,CouponNotifier

type LedgerStorage interface {
	// InTx выполняет fn в одной транзакции хранилища: либо фиксируется всё, либо ничего
	InTx(ctx context.Context, fn func(tx LedgerTx) error) error
	GetCustomer(ctx context.Context, id uuid.UUID) (model.Customer, error)
	GetCustomerByEmail(ctx context.Context, email string) (model.Customer, error)
	CustomerCreate(ctx context.Context, customer model.Customer) (model.Customer, error)
	GetTnx(ctx context.Context, customerID uuid.UUID, limit uint64) ([]model.LoyaltyTransaction, error)
	GetActiveCoupons(ctx context.Context, customerID uuid.UUID, now time.Time) ([]model.Coupon, error)
}

// Операции внутри транзакции
type LedgerTx interface {
	LockCustomer(ctx context.Context, id uuid.UUID) (model.Customer, error)
	EarnedExists(ctx context.Context, customerID uuid.UUID, orderID string) (bool, error)
	TnxCreate(ctx context.Context, tnx model.LoyaltyTransaction) error
	SetPoints(ctx context.Context, customerID uuid.UUID, points int) error
	CouponCodeExists(ctx context.Context, code string) (bool, error)
	// CouponCreate возвращает false, если код уже занят (уникальный индекс)
	CouponCreate(ctx context.Context, coupon model.Coupon) (bool, error)
	GetUnusedCoupon(ctx context.Context, customerID uuid.UUID, typ model.CouponType) (model.Coupon, error)
}

// Кэш отчетов с поколением: InvalidateReport увеличивает поколение,
// SetReport пишет отчет, только если поколение все еще равно version
type CacheStorage interface {
	GetReport(ctx context.Context, customerID uuid.UUID) (model.BalanceReport, error)
	ReportVersion(ctx context.Context, customerID uuid.UUID) (int64, error)
	SetReport(ctx context.Context, report model.BalanceReport, version int64) error
	InvalidateReport(ctx context.Context, customerID uuid.UUID) error
}

type CouponNotifier interface {
	CouponIssued(ctx context.Context, coupon model.Coupon, customer model.Customer) error
}
