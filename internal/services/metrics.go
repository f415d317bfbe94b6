package loyalty

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("loyalty")

// метрики

var (
	pointsEarnedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loyalty_points_earned_total",
			Help: "Начислено баллов",
		},
	)

	ordersAlreadyProcessedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loyalty_orders_already_processed_total",
			Help: "Повторные начисления по одному заказу",
		},
	)

	couponsIssuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loyalty_coupons_issued_total",
			Help: "Выпущено купонов",
		},
		[]string{"type"},
	)

	couponCodeCollisionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loyalty_coupon_code_collisions_total",
			Help: "Повторная генерация кода купона из-за коллизии",
		},
	)
)
