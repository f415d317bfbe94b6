package loyalty

import (
	"time"

	"github.com/google/uuid"
)

// Клиент магазина
type Customer struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	LoyaltyPoints int       `json:"loyaltyPoints"` // текущий баланс баллов
	CreatedAt     time.Time `json:"createdAt"`
}

type TnxKind string

const (
	EARNED   TnxKind = "EARNED"
	REDEEMED TnxKind = "REDEEMED"
	EXPIRED  TnxKind = "EXPIRED"
)

// Транзакция программы лояльности, неизменяемая
type LoyaltyTransaction struct {
	ID          uuid.UUID     `json:"id"`
	CustomerID  uuid.UUID     `json:"customerId"`
	Kind        TnxKind       `json:"type"`
	Points      int           `json:"points"`            // +1 за заказ, -10 за купон
	OrderID     string        `json:"orderId,omitempty"` // ID заказа
	CouponID    uuid.NullUUID `json:"couponId"`          // купон, на который потрачены баллы
	Description string        `json:"description"`
	CreatedAt   time.Time     `json:"createdAt"`
}

type CouponType string

const (
	NEW_USER    CouponType = "NEW_USER"
	LOYALTY     CouponType = "LOYALTY"
	PROMOTIONAL CouponType = "PROMOTIONAL"
)

// Купон на скидку
type Coupon struct {
	ID          uuid.UUID  `json:"id"`
	Code        string     `json:"code"`
	Type        CouponType `json:"type"`
	Value       float64    `json:"value"`                 // сумма скидки
	Percentage  int        `json:"percentage,omitempty"`  // 0 - без процента
	MaxDiscount float64    `json:"maxDiscount,omitempty"` // 0 - без ограничения
	CustomerID  uuid.UUID  `json:"customerId"`
	IsActive    bool       `json:"isActive"`
	IsUsed      bool       `json:"isUsed"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Купон можно использовать на момент now
func (c Coupon) Redeemable(now time.Time) bool {
	if !c.IsActive || c.IsUsed {
		return false
	}
	return c.ExpiresAt == nil || c.ExpiresAt.After(now)
}

// Результат начисления балла
type EarnResult struct {
	LoyaltyPoints      int     `json:"loyaltyPoints"`
	PointsToNextCoupon int     `json:"pointsToNextCoupon"`
	NewCoupon          *Coupon `json:"newCoupon,omitempty"`
	AlreadyProcessed   bool    `json:"alreadyProcessed"`
}

// Баланс и последние транзакции
type BalanceReport struct {
	CustomerID         uuid.UUID            `json:"-"`
	LoyaltyPoints      int                  `json:"loyaltyPoints"`
	PointsToNextCoupon int                  `json:"pointsToNextCoupon"`
	Transactions       []LoyaltyTransaction `json:"transactions"`
}

// Данные пользователя от провайдера идентификации
type Identity struct {
	Email string
	Name  string
	Role  string
}

func (i Identity) IsAdmin() bool {
	return i.Role == "admin"
}

// Событие о завершенном заказе из Kafka
type OrderEvent struct {
	OrderID     string `json:"orderId"`
	CustomerID  string `json:"customerId,omitempty"`
	ClientEmail string `json:"clientEmail,omitempty"`
	Description string `json:"description,omitempty"`
}
