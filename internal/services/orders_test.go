package loyalty

import (
	"context"
	"fmt"
	"testing"

	model "github.com/richardgms/cicero-joias-sub001/internal/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOrderProcessor(t *testing.T) {
	s := newScenario(t, nil)
	p := NewOrderProcessor(zap.NewNop(), s.ledger, NewCustomers(zap.NewNop(), s.storage))
	ctx := context.Background()

	result, err := p.Process(ctx, model.OrderEvent{OrderID: "K1", CustomerID: s.customer.ID.String()})
	require.NoError(t, err)
	require.Equal(t, 1, result.LoyaltyPoints)

	result, err = p.Process(ctx, model.OrderEvent{OrderID: "K2", ClientEmail: "MARIA@example.com", Description: "Conserto de corrente"})
	require.NoError(t, err)
	require.Equal(t, 2, result.LoyaltyPoints)
	require.Equal(t, "Conserto de corrente", s.storage.Ledger(s.customer.ID)[1].Description)

	// повторная доставка
	result, err = p.Process(ctx, model.OrderEvent{OrderID: "K1", CustomerID: s.customer.ID.String()})
	require.NoError(t, err)
	require.True(t, result.AlreadyProcessed)
	require.Equal(t, 2, result.LoyaltyPoints)

	for i := 3; i <= 10; i++ {
		result, err = p.Process(ctx, model.OrderEvent{OrderID: fmt.Sprintf("K%d", i), CustomerID: s.customer.ID.String()})
		require.NoError(t, err)
	}
	require.NotNil(t, result.NewCoupon)
	require.Equal(t, 0, result.LoyaltyPoints)
}

func TestOrderProcessorInvalid(t *testing.T) {
	s := newScenario(t, nil)
	p := NewOrderProcessor(zap.NewNop(), s.ledger, NewCustomers(zap.NewNop(), s.storage))
	ctx := context.Background()

	tests := []struct {
		name  string
		event model.OrderEvent
		err   error
	}{
		{"no order", model.OrderEvent{CustomerID: s.customer.ID.String()}, model.ErrInvalidInput},
		{"bad customer id", model.OrderEvent{OrderID: "K1", CustomerID: "42"}, model.ErrInvalidInput},
		{"no customer", model.OrderEvent{OrderID: "K1"}, model.ErrInvalidInput},
		{"unknown email", model.OrderEvent{OrderID: "K1", ClientEmail: "ninguem@example.com"}, model.ErrNotFound},
	}

	for _, ts := range tests {
		_, err := p.Process(ctx, ts.event)
		require.ErrorIs(t, err, ts.err, ts.name)
	}
	require.Empty(t, s.storage.Ledger(s.customer.ID))
}
