package loyalty

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	model "github.com/richardgms/cicero-joias-sub001/internal/models"
	redis "github.com/redis/go-redis/v9"
)

const (
	reportTTL  = 5 * time.Minute
	versionTTL = 24 * time.Hour
)

var (
	ErrCacheDisabled = errors.New("env LOYALTY_CACHE_URL is not set, cache disabled")
	errStaleReport   = errors.New("balance report is stale")
)

// Кэш отчетов о балансе
type CacheService struct {
	client *redis.Client
}

// NewCacheService возвращает ErrCacheDisabled, если Redis не настроен
func NewCacheService(ctx context.Context) (serv *CacheService, err error) {
	// config
	addr := os.Getenv("LOYALTY_CACHE_URL")
	if addr == "" {
		return nil, ErrCacheDisabled
	}
	user := os.Getenv("LOYALTY_CACHE_USER")
	pwd := os.Getenv("LOYALTY_CACHE_PWD")

	// redis
	db := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    pwd,
		Username:    user,
		DB:          0,
		MaxRetries:  5,
		DialTimeout: 10 * time.Second,
	})
	err = db.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return &CacheService{db}, nil
}

func reportKey(customerID uuid.UUID) string {
	return "loyalty:balance:" + customerID.String()
}

// поколение отчета; живет дольше самого отчета
func versionKey(customerID uuid.UUID) string {
	return reportKey(customerID) + ":gen"
}

func (c *CacheService) GetReport(ctx context.Context, customerID uuid.UUID) (report model.BalanceReport, err error) {
	val, err := c.client.Get(ctx, reportKey(customerID)).Bytes()
	if err == redis.Nil {
		return report, fmt.Errorf("balance %w", model.ErrNotFound)
	} else if err != nil {
		return report, err
	}

	err = json.Unmarshal(val, &report)
	if err != nil {
		return report, err
	}
	report.CustomerID = customerID
	return report, nil
}

// ReportVersion - текущее поколение отчета; 0, если инвалидаций не было
func (c *CacheService) ReportVersion(ctx context.Context, customerID uuid.UUID) (int64, error) {
	version, err := c.client.Get(ctx, versionKey(customerID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return version, err
}

// SetReport пишет отчет, прочитанный при поколении version.
// Если поколение с тех пор изменилось, отчет устарел и не пишется.
func (c *CacheService) SetReport(ctx context.Context, report model.BalanceReport, version int64) error {
	val, err := json.Marshal(report)
	if err != nil {
		return err
	}
	key := versionKey(report.CustomerID)

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Int64()
		if err != nil && err != redis.Nil {
			return err
		}
		if current != version {
			return errStaleReport
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, reportKey(report.CustomerID), val, reportTTL)
			return nil
		})
		return err
	}, key)
	if errors.Is(err, errStaleReport) || errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

// InvalidateReport удаляет отчет и увеличивает поколение одной транзакцией
func (c *CacheService) InvalidateReport(ctx context.Context, customerID uuid.UUID) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey(customerID))
		pipe.Expire(ctx, versionKey(customerID), versionTTL)
		pipe.Del(ctx, reportKey(customerID))
		return nil
	})
	return err
}

func (c *CacheService) Close() error {
	return c.client.Close()
}
