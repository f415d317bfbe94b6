package loyalty

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	interf "github.com/richardgms/cicero-joias-sub001/internal/interfaces"
	model "github.com/richardgms/cicero-joias-sub001/internal/models"
)

// MemoryDB держит всё в памяти процесса (LOYALTY_STORAGE=memory).
// Транзакции сериализуются: снимок при начале, подмена при commit.
type MemoryDB struct {
	txmu sync.Mutex // один пишущий за раз
	mu   sync.RWMutex
	data memoryData
}

type memoryData struct {
	customers map[uuid.UUID]model.Customer
	emails    map[string]uuid.UUID
	tnx       []model.LoyaltyTransaction
	coupons   map[uuid.UUID]model.Coupon
	codes     map[string]uuid.UUID
}

func NewMemoryDB() *MemoryDB {
	return &MemoryDB{data: memoryData{
		customers: make(map[uuid.UUID]model.Customer),
		emails:    make(map[string]uuid.UUID),
		coupons:   make(map[uuid.UUID]model.Coupon),
		codes:     make(map[string]uuid.UUID),
	}}
}

func (d memoryData) clone() memoryData {
	c := memoryData{
		customers: make(map[uuid.UUID]model.Customer, len(d.customers)),
		emails:    make(map[string]uuid.UUID, len(d.emails)),
		tnx:       make([]model.LoyaltyTransaction, len(d.tnx)),
		coupons:   make(map[uuid.UUID]model.Coupon, len(d.coupons)),
		codes:     make(map[string]uuid.UUID, len(d.codes)),
	}
	for k, v := range d.customers {
		c.customers[k] = v
	}
	for k, v := range d.emails {
		c.emails[k] = v
	}
	copy(c.tnx, d.tnx)
	for k, v := range d.coupons {
		c.coupons[k] = v
	}
	for k, v := range d.codes {
		c.codes[k] = v
	}
	return c
}

func (m *MemoryDB) InTx(ctx context.Context, fn func(tx interf.LedgerTx) error) error {
	m.txmu.Lock()
	defer m.txmu.Unlock()

	m.mu.RLock()
	tx := &memoryTx{data: m.data.clone()}
	m.mu.RUnlock()

	err := fn(tx)
	if err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	m.data = tx.data
	m.mu.Unlock()
	return nil
}

func (m *MemoryDB) GetCustomer(ctx context.Context, id uuid.UUID) (model.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	customer, ok := m.data.customers[id]
	if !ok {
		return model.Customer{}, fmt.Errorf("customer %w", model.ErrNotFound)
	}
	return customer, nil
}

func (m *MemoryDB) GetCustomerByEmail(ctx context.Context, email string) (model.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.data.emails[email]
	if !ok {
		return model.Customer{}, fmt.Errorf("customer %w", model.ErrNotFound)
	}
	return m.data.customers[id], nil
}

func (m *MemoryDB) CustomerCreate(ctx context.Context, customer model.Customer) (model.Customer, error) {
	m.txmu.Lock()
	defer m.txmu.Unlock()
	m.mu.Lock()
	defer m.mu.Unlock()

	if id, ok := m.data.emails[customer.Email]; ok {
		return m.data.customers[id], nil
	}
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now()
	}
	m.data.customers[customer.ID] = customer
	m.data.emails[customer.Email] = customer.ID
	return customer, nil
}

func (m *MemoryDB) GetTnx(ctx context.Context, customerID uuid.UUID, limit uint64) ([]model.LoyaltyTransaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var tnxs []model.LoyaltyTransaction
	for i := len(m.data.tnx) - 1; i >= 0 && uint64(len(tnxs)) < limit; i-- {
		if m.data.tnx[i].CustomerID == customerID {
			tnxs = append(tnxs, m.data.tnx[i])
		}
	}
	return tnxs, nil
}

func (m *MemoryDB) GetActiveCoupons(ctx context.Context, customerID uuid.UUID, now time.Time) ([]model.Coupon, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var coupons []model.Coupon
	for _, c := range m.data.coupons {
		if c.CustomerID == customerID && c.Redeemable(now) {
			coupons = append(coupons, c)
		}
	}
	sort.Slice(coupons, func(i, j int) bool {
		return coupons[i].CreatedAt.After(coupons[j].CreatedAt)
	})
	return coupons, nil
}

// Все транзакции клиента в порядке записи
func (m *MemoryDB) Ledger(customerID uuid.UUID) []model.LoyaltyTransaction {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var tnxs []model.LoyaltyTransaction
	for _, tnx := range m.data.tnx {
		if tnx.CustomerID == customerID {
			tnxs = append(tnxs, tnx)
		}
	}
	return tnxs
}

// Все купоны клиента, включая использованные
func (m *MemoryDB) Coupons(customerID uuid.UUID) []model.Coupon {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var coupons []model.Coupon
	for _, c := range m.data.coupons {
		if c.CustomerID == customerID {
			coupons = append(coupons, c)
		}
	}
	return coupons
}

// Пометить купон использованным (оформление заказа вне сервиса)
func (m *MemoryDB) MarkCouponUsed(id uuid.UUID) error {
	m.txmu.Lock()
	defer m.txmu.Unlock()
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.data.coupons[id]
	if !ok {
		return fmt.Errorf("coupon %w", model.ErrNotFound)
	}
	c.IsUsed = true
	m.data.coupons[id] = c
	return nil
}

type memoryTx struct {
	data memoryData
}

func (t *memoryTx) LockCustomer(ctx context.Context, id uuid.UUID) (model.Customer, error) {
	customer, ok := t.data.customers[id]
	if !ok {
		return model.Customer{}, fmt.Errorf("customer %w", model.ErrNotFound)
	}
	return customer, nil
}

func (t *memoryTx) EarnedExists(ctx context.Context, customerID uuid.UUID, orderID string) (bool, error) {
	for _, tnx := range t.data.tnx {
		if tnx.CustomerID == customerID && tnx.OrderID == orderID && tnx.Kind == model.EARNED {
			return true, nil
		}
	}
	return false, nil
}

func (t *memoryTx) TnxCreate(ctx context.Context, tnx model.LoyaltyTransaction) error {
	if _, ok := t.data.customers[tnx.CustomerID]; !ok {
		return fmt.Errorf("customer %w", model.ErrNotFound)
	}
	if tnx.ID == uuid.Nil {
		tnx.ID = uuid.New()
	}
	if tnx.CreatedAt.IsZero() {
		tnx.CreatedAt = time.Now()
	}
	t.data.tnx = append(t.data.tnx, tnx)
	return nil
}

func (t *memoryTx) SetPoints(ctx context.Context, customerID uuid.UUID, points int) error {
	customer, ok := t.data.customers[customerID]
	if !ok {
		return fmt.Errorf("customer %w", model.ErrNotFound)
	}
	if points < 0 {
		return fmt.Errorf("negative balance %d: %w", points, model.ErrInvalidInput)
	}
	customer.LoyaltyPoints = points
	t.data.customers[customerID] = customer
	return nil
}

func (t *memoryTx) CouponCodeExists(ctx context.Context, code string) (bool, error) {
	_, ok := t.data.codes[code]
	return ok, nil
}

func (t *memoryTx) CouponCreate(ctx context.Context, coupon model.Coupon) (bool, error) {
	if _, ok := t.data.codes[coupon.Code]; ok {
		return false, nil
	}
	t.data.coupons[coupon.ID] = coupon
	t.data.codes[coupon.Code] = coupon.ID
	return true, nil
}

func (t *memoryTx) GetUnusedCoupon(ctx context.Context, customerID uuid.UUID, typ model.CouponType) (model.Coupon, error) {
	var found model.Coupon
	for _, c := range t.data.coupons {
		if c.CustomerID != customerID || c.Type != typ || !c.IsActive || c.IsUsed {
			continue
		}
		if found.ID == uuid.Nil || c.CreatedAt.After(found.CreatedAt) {
			found = c
		}
	}
	if found.ID == uuid.Nil {
		return model.Coupon{}, fmt.Errorf("coupon %w", model.ErrNotFound)
	}
	return found, nil
}
