package loyalty

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	config "github.com/richardgms/cicero-joias-sub001/internal/config"
	interf "github.com/richardgms/cicero-joias-sub001/internal/interfaces"
	model "github.com/richardgms/cicero-joias-sub001/internal/models"
	"go.uber.org/zap"
)

//go:embed schema.sql
var schema string

var (
	customerColumns = []string{"id", "email", "name", "loyalty_points", "created_at"}
	tnxColumns      = []string{"id", "customer_id", "kind", "points", "order_id", "coupon_id", "description", "created_at"}
	couponColumns   = []string{"id", "code", "type", "value", "percentage", "max_discount", "customer_id", "is_active", "is_used", "expires_at", "created_at"}
)

// Хранилище PostgreSQL
type LedgerDB struct {
	pool    *pgxpool.Pool
	logger  *zap.Logger
	retry   *Retrier
	timeout time.Duration
}

func NewLedgerDB(ctx context.Context, logger *zap.Logger) (db *LedgerDB, err error) {
	// config
	purl, err := config.Required("LOYALTY_DB")
	if err != nil {
		return nil, err
	}
	port, err := config.Required("LOYALTY_DB_PORT")
	if err != nil {
		return nil, err
	}
	user, err := config.Required("LOYALTY_DB_USER")
	if err != nil {
		return nil, err
	}
	password, err := config.Required("LOYALTY_DB_PASSWORD")
	if err != nil {
		return nil, err
	}
	database, err := config.Required("LOYALTY_DB_BASE")
	if err != nil {
		return nil, err
	}
	dsn := "postgres://" + user + ":" + password + "@" + purl + ":" + port + "/" + database

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &LedgerDB{
		pool:    pool,
		logger:  logger,
		retry:   NewRetrier(logger, config.Int("LOYALTY_DB_RETRIES", 3)),
		timeout: config.Seconds("LOYALTY_DB_TIMEOUT", 5*time.Second),
	}, nil
}

func (p *LedgerDB) Close() {
	p.pool.Close()
}

// Создание таблиц, если их нет
func (p *LedgerDB) Migrate(ctx context.Context) error {
	return p.retry.Do(ctx, "Migrate", func() error {
		_, err := p.pool.Exec(ctx, schema)
		return err
	})
}

func (p *LedgerDB) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.pool.Ping(ctx)
}

func sqlError(logger *zap.Logger, err error, sql string, args []any) error {
	logger.Error("SQL error",
		zap.Error(err),
		zap.String("query", sql),
		zap.Any("args", args),
	)
	return err
}

// Транзакция: блокировки строк клиентов держатся до commit/rollback
func (p *LedgerDB) InTx(ctx context.Context, fn func(tx interf.LedgerTx) error) error {
	return p.retry.Do(ctx, "InTx", func() (err error) {
		tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
		if err != nil {
			return err
		}
		defer func() {
			if err != nil {
				_ = tx.Rollback(ctx)
			}
		}()

		err = fn(&pgTx{tx, p.logger, p.timeout})
		if err != nil {
			return err
		}
		return tx.Commit(ctx)
	})
}

// Клиент по ID
func (p *LedgerDB) GetCustomer(ctx context.Context, id uuid.UUID) (customer model.Customer, err error) {
	return p.getCustomer(ctx, "GetCustomer", sq.Eq{"id": id})
}

// Клиент по email
func (p *LedgerDB) GetCustomerByEmail(ctx context.Context, email string) (customer model.Customer, err error) {
	return p.getCustomer(ctx, "GetCustomerByEmail", sq.Eq{"email": email})
}

func (p *LedgerDB) getCustomer(ctx context.Context, op string, where sq.Eq) (customer model.Customer, err error) {
	sql, args, err := sq.Select(customerColumns...).
		From("customers").
		Where(where).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return customer, sqlError(p.logger, err, sql, args)
	}

	err = p.retry.Do(ctx, op, func() error {
		ctx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()
		return scanCustomer(p.pool.QueryRow(ctx, sql, args...), &customer)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Customer{}, fmt.Errorf("customer %w", model.ErrNotFound)
		}
		return model.Customer{}, sqlError(p.logger, err, sql, args)
	}
	return customer, nil
}

// Создание клиента; при гонке по email возвращается уже созданный
func (p *LedgerDB) CustomerCreate(ctx context.Context, customer model.Customer) (model.Customer, error) {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now()
	}

	sql, args, err := sq.Insert("customers").
		Columns(customerColumns...).
		Values(customer.ID, customer.Email, customer.Name, customer.LoyaltyPoints, customer.CreatedAt).
		Suffix("ON CONFLICT (email) DO NOTHING").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.Customer{}, sqlError(p.logger, err, sql, args)
	}

	err = p.retry.Do(ctx, "CustomerCreate", func() error {
		ctx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()
		_, err := p.pool.Exec(ctx, sql, args...)
		return err
	})
	if err != nil {
		return model.Customer{}, sqlError(p.logger, err, sql, args)
	}
	return p.GetCustomerByEmail(ctx, customer.Email)
}

// Последние транзакции клиента, новые первыми
func (p *LedgerDB) GetTnx(ctx context.Context, customerID uuid.UUID, limit uint64) (tnxs []model.LoyaltyTransaction, err error) {
	sql, args, err := sq.Select(tnxColumns...).
		From("loyalty_transactions").
		Where(sq.Eq{"customer_id": customerID}).
		OrderBy("seq DESC").
		Limit(limit).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, sqlError(p.logger, err, sql, args)
	}

	err = p.retry.Do(ctx, "GetTnx", func() error {
		ctx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()

		rows, err := p.pool.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		tnxs = tnxs[:0]
		for rows.Next() {
			var tnx model.LoyaltyTransaction
			err = scanTnx(rows, &tnx)
			if err != nil {
				return err
			}
			tnxs = append(tnxs, tnx)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, sqlError(p.logger, err, sql, args)
	}
	return tnxs, nil
}

// Действующие купоны: активные, неиспользованные, не истекшие на now
func (p *LedgerDB) GetActiveCoupons(ctx context.Context, customerID uuid.UUID, now time.Time) (coupons []model.Coupon, err error) {
	sql, args, err := sq.Select(couponColumns...).
		From("coupons").
		Where(sq.Eq{"customer_id": customerID}).
		Where(sq.Eq{"is_active": true}).
		Where(sq.Eq{"is_used": false}).
		Where(sq.Or{sq.Eq{"expires_at": nil}, sq.Gt{"expires_at": now}}).
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, sqlError(p.logger, err, sql, args)
	}

	err = p.retry.Do(ctx, "GetActiveCoupons", func() error {
		ctx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()

		rows, err := p.pool.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		coupons = coupons[:0]
		for rows.Next() {
			var coupon model.Coupon
			err = scanCoupon(rows, &coupon)
			if err != nil {
				return err
			}
			coupons = append(coupons, coupon)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, sqlError(p.logger, err, sql, args)
	}
	return coupons, nil
}

// операции внутри транзакции
type pgTx struct {
	tx      pgx.Tx
	logger  *zap.Logger
	timeout time.Duration
}

// Блокируем строку клиента до конца транзакции
func (t *pgTx) LockCustomer(ctx context.Context, id uuid.UUID) (customer model.Customer, err error) {
	sql, args, err := sq.Select(customerColumns...).
		From("customers").
		Where(sq.Eq{"id": id}).
		Suffix("FOR UPDATE").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return customer, sqlError(t.logger, err, sql, args)
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	err = scanCustomer(t.tx.QueryRow(ctx, sql, args...), &customer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Customer{}, fmt.Errorf("customer %w", model.ErrNotFound)
		}
		return model.Customer{}, sqlError(t.logger, err, sql, args)
	}
	return customer, nil
}

// Заказ уже начислен
func (t *pgTx) EarnedExists(ctx context.Context, customerID uuid.UUID, orderID string) (bool, error) {
	return t.exists(ctx, sq.Select("1").
		From("loyalty_transactions").
		Where(sq.Eq{"customer_id": customerID}).
		Where(sq.Eq{"order_id": orderID}).
		Where(sq.Eq{"kind": model.EARNED}))
}

func (t *pgTx) CouponCodeExists(ctx context.Context, code string) (bool, error) {
	return t.exists(ctx, sq.Select("1").
		From("coupons").
		Where(sq.Eq{"code": code}))
}

func (t *pgTx) exists(ctx context.Context, query sq.SelectBuilder) (exists bool, err error) {
	sql, args, err := query.
		Prefix("SELECT EXISTS (").
		Suffix(")").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return false, sqlError(t.logger, err, sql, args)
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	err = t.tx.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil {
		return false, sqlError(t.logger, err, sql, args)
	}
	return exists, nil
}

// Запись транзакции лояльности
func (t *pgTx) TnxCreate(ctx context.Context, tnx model.LoyaltyTransaction) error {
	if tnx.ID == uuid.Nil {
		tnx.ID = uuid.New()
	}
	if tnx.CreatedAt.IsZero() {
		tnx.CreatedAt = time.Now()
	}
	var couponID any
	if tnx.CouponID.Valid {
		couponID = tnx.CouponID.UUID
	}

	sql, args, err := sq.Insert("loyalty_transactions").
		Columns(tnxColumns...).
		Values(tnx.ID, tnx.CustomerID, tnx.Kind, tnx.Points, nullString(tnx.OrderID), couponID, tnx.Description, tnx.CreatedAt).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return sqlError(t.logger, err, sql, args)
	}
	return t.exec(ctx, sql, args)
}

// Новый баланс клиента
func (t *pgTx) SetPoints(ctx context.Context, customerID uuid.UUID, points int) error {
	sql, args, err := sq.Update("customers").
		Set("loyalty_points", points).
		Where(sq.Eq{"id": customerID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return sqlError(t.logger, err, sql, args)
	}
	return t.exec(ctx, sql, args)
}

// Создание купона; конфликт по коду не ошибка, а повод сгенерировать новый
func (t *pgTx) CouponCreate(ctx context.Context, coupon model.Coupon) (bool, error) {
	var percentage, maxDiscount any
	if coupon.Percentage != 0 {
		percentage = coupon.Percentage
	}
	if coupon.MaxDiscount != 0 {
		maxDiscount = coupon.MaxDiscount
	}

	sql, args, err := sq.Insert("coupons").
		Columns(couponColumns...).
		Values(coupon.ID, coupon.Code, coupon.Type, coupon.Value, percentage, maxDiscount,
			coupon.CustomerID, coupon.IsActive, coupon.IsUsed, coupon.ExpiresAt, coupon.CreatedAt).
		Suffix("ON CONFLICT (code) DO NOTHING").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return false, sqlError(t.logger, err, sql, args)
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	tag, err := t.tx.Exec(ctx, sql, args...)
	if err != nil {
		return false, sqlError(t.logger, err, sql, args)
	}
	return tag.RowsAffected() == 1, nil
}

// Активный неиспользованный купон заданного типа
func (t *pgTx) GetUnusedCoupon(ctx context.Context, customerID uuid.UUID, typ model.CouponType) (coupon model.Coupon, err error) {
	sql, args, err := sq.Select(couponColumns...).
		From("coupons").
		Where(sq.Eq{"customer_id": customerID}).
		Where(sq.Eq{"type": typ}).
		Where(sq.Eq{"is_active": true}).
		Where(sq.Eq{"is_used": false}).
		OrderBy("created_at DESC").
		Limit(1).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return coupon, sqlError(t.logger, err, sql, args)
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	err = scanCoupon(t.tx.QueryRow(ctx, sql, args...), &coupon)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Coupon{}, fmt.Errorf("coupon %w", model.ErrNotFound)
		}
		return model.Coupon{}, sqlError(t.logger, err, sql, args)
	}
	return coupon, nil
}

func (t *pgTx) exec(ctx context.Context, sql string, args []any) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	_, err := t.tx.Exec(ctx, sql, args...)
	if err != nil {
		return sqlError(t.logger, err, sql, args)
	}
	return nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func scanCustomer(row pgx.Row, c *model.Customer) error {
	return row.Scan(&c.ID, &c.Email, &c.Name, &c.LoyaltyPoints, &c.CreatedAt)
}

func scanTnx(row pgx.Row, tnx *model.LoyaltyTransaction) error {
	var kind string
	var orderID pgtype.Text
	var couponID pgtype.UUID
	err := row.Scan(&tnx.ID, &tnx.CustomerID, &kind, &tnx.Points, &orderID, &couponID, &tnx.Description, &tnx.CreatedAt)
	if err != nil {
		return err
	}
	tnx.Kind = model.TnxKind(kind)
	tnx.OrderID = orderID.String
	if couponID.Status == pgtype.Present {
		tnx.CouponID = uuid.NullUUID{UUID: uuid.UUID(couponID.Bytes), Valid: true}
	}
	return nil
}

func scanCoupon(row pgx.Row, c *model.Coupon) error {
	var typ string
	var percentage *int
	var maxDiscount *float64
	err := row.Scan(&c.ID, &c.Code, &typ, &c.Value, &percentage, &maxDiscount,
		&c.CustomerID, &c.IsActive, &c.IsUsed, &c.ExpiresAt, &c.CreatedAt)
	if err != nil {
		return err
	}
	c.Type = model.CouponType(typ)
	if percentage != nil {
		c.Percentage = *percentage
	}
	if maxDiscount != nil {
		c.MaxDiscount = *maxDiscount
	}
	return nil
}
