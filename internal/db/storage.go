package loyalty

import (
	"context"
	"fmt"

	config "github.com/richardgms/cicero-joias-sub001/internal/config"
	interf "github.com/richardgms/cicero-joias-sub001/internal/interfaces"
	"go.uber.org/zap"
)

var (
	_ interf.LedgerStorage = (*LedgerDB)(nil)
	_ interf.LedgerStorage = (*MemoryDB)(nil)
	_ interf.CacheStorage  = (*CacheService)(nil)
)

// Хранилище по LOYALTY_STORAGE: postgres (по умолчанию) или memory.
// Для postgres схема создается при старте.
func NewStorage(ctx context.Context, logger *zap.Logger) (storage interf.LedgerStorage, closer func(), err error) {
	switch kind := config.String("LOYALTY_STORAGE", "postgres"); kind {
	case "memory":
		logger.Warn("In-memory storage, data is lost on restart")
		return NewMemoryDB(), func() {}, nil
	case "postgres":
		ledger, err := NewLedgerDB(ctx, logger)
		if err != nil {
			return nil, nil, err
		}
		err = ledger.Migrate(ctx)
		if err != nil {
			ledger.Close()
			return nil, nil, err
		}
		return ledger, ledger.Close, nil
	default:
		return nil, nil, fmt.Errorf("env LOYALTY_STORAGE: unknown storage %q", kind)
	}
}
