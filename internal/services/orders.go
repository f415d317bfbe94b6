package loyalty

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	model "github.com/richardgms/cicero-joias-sub001/internal/models"
	"go.uber.org/zap"
)

// Обработка событий о завершенных заказах
type OrderProcessor struct {
	logger    *zap.Logger
	ledger    *LoyaltyLedger
	customers *Customers
}

func NewOrderProcessor(logger *zap.Logger, ledger *LoyaltyLedger, customers *Customers) *OrderProcessor {
	return &OrderProcessor{logger, ledger, customers}
}

// Клиент по customerId, иначе по clientEmail
func (p *OrderProcessor) customer(ctx context.Context, event model.OrderEvent) (uuid.UUID, error) {
	if event.CustomerID != "" {
		id, err := uuid.Parse(event.CustomerID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("customer id %q: %w", event.CustomerID, model.ErrInvalidInput)
		}
		return id, nil
	}
	customer, err := p.customers.ByEmail(ctx, event.ClientEmail)
	if err != nil {
		return uuid.Nil, err
	}
	return customer.ID, nil
}

func (p *OrderProcessor) Process(ctx context.Context, event model.OrderEvent) (model.EarnResult, error) {
	orderID := strings.TrimSpace(event.OrderID)
	if orderID == "" {
		return model.EarnResult{}, fmt.Errorf("order id is required: %w", model.ErrInvalidInput)
	}
	customerID, err := p.customer(ctx, event)
	if err != nil {
		return model.EarnResult{}, fmt.Errorf("order %s: %w", orderID, err)
	}

	result, err := p.ledger.EarnPoint(ctx, customerID, orderID, event.Description)
	if err != nil {
		return model.EarnResult{}, err
	}
	if !result.AlreadyProcessed {
		p.logger.Info("Order processed",
			zap.String("order", orderID),
			zap.String("customer", customerID.String()),
			zap.Int("points", result.LoyaltyPoints),
		)
	}
	return result, nil
}
