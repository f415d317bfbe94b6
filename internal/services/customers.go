package loyalty

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	interf "github.com/richardgms/cicero-joias-sub001/internal/interfaces"
	model "github.com/richardgms/cicero-joias-sub001/internal/models"
	"go.uber.org/zap"
)

const defaultCustomerName = "Cliente"

type Customers struct {
	logger *zap.Logger
	db     interf.LedgerStorage
}

func NewCustomers(logger *zap.Logger, db interf.LedgerStorage) *Customers {
	return &Customers{logger, db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Клиент по email
func (c *Customers) ByEmail(ctx context.Context, email string) (model.Customer, error) {
	email = normalizeEmail(email)
	if email == "" {
		return model.Customer{}, fmt.Errorf("email is required: %w", model.ErrInvalidInput)
	}
	return c.db.GetCustomerByEmail(ctx, email)
}

// Resolve находит клиента по email из провайдера идентификации или создает нового
func (c *Customers) Resolve(ctx context.Context, identity model.Identity) (model.Customer, error) {
	customer, err := c.ByEmail(ctx, identity.Email)
	if err == nil || !errors.Is(err, model.ErrNotFound) {
		return customer, err
	}

	name := strings.TrimSpace(identity.Name)
	if name == "" {
		name = defaultCustomerName
	}
	customer, err = c.db.CustomerCreate(ctx, model.Customer{
		ID:        uuid.New(),
		Email:     normalizeEmail(identity.Email),
		Name:      name,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return model.Customer{}, err
	}
	c.logger.Info("Customer created",
		zap.String("customer", customer.ID.String()),
		zap.String("email", customer.Email),
	)
	return customer, nil
}
