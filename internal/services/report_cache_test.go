package loyalty

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	db "github.com/richardgms/cicero-joias-sub001/internal/db"
	model "github.com/richardgms/cicero-joias-sub001/internal/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// хранилище, которое выполняет afterTnx один раз сразу после чтения транзакций
type interleavedStorage struct {
	*db.MemoryDB
	afterTnx func()
}

func (s *interleavedStorage) GetTnx(ctx context.Context, customerID uuid.UUID, limit uint64) ([]model.LoyaltyTransaction, error) {
	tnxs, err := s.MemoryDB.GetTnx(ctx, customerID, limit)
	if s.afterTnx != nil {
		fn := s.afterTnx
		s.afterTnx = nil
		fn()
	}
	return tnxs, err
}

func TestReportBalanceNotCachedAfterConcurrentEarn(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Setenv("LOYALTY_CACHE_URL", mr.Addr())
	ctx := context.Background()
	cache, err := db.NewCacheService(ctx)
	require.NoError(t, err)
	defer cache.Close()

	storage := &interleavedStorage{MemoryDB: db.NewMemoryDB()}
	issuer := NewCouponIssuer(zap.NewNop(), storage, nil, nil)
	ledger := NewLoyaltyLedger(zap.NewNop(), storage, cache, issuer)
	customer, err := NewCustomers(zap.NewNop(), storage).Resolve(ctx, model.Identity{Email: "maria@example.com", Name: "Maria"})
	require.NoError(t, err)

	// заказ фиксируется между чтением базы и записью в кэш
	storage.afterTnx = func() {
		_, err := ledger.EarnPoint(ctx, customer.ID, "O1", "")
		require.NoError(t, err)
	}
	report, err := ledger.ReportBalance(ctx, customer.ID)
	require.NoError(t, err)
	require.Equal(t, 0, report.LoyaltyPoints)

	report, err = ledger.ReportBalance(ctx, customer.ID)
	require.NoError(t, err)
	require.Equal(t, 1, report.LoyaltyPoints)
	require.Equal(t, 9, report.PointsToNextCoupon)
	require.Len(t, report.Transactions, 1)

	// свежий отчет кэшируется
	cached, err := cache.GetReport(ctx, customer.ID)
	require.NoError(t, err)
	require.Equal(t, 1, cached.LoyaltyPoints)
	require.Len(t, cached.Transactions, 1)
	require.Equal(t, "O1", cached.Transactions[0].OrderID)
}
