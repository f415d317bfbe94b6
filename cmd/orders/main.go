// Job - начисление баллов по завершенным заказам
// Kafka orders_completed -> EarnPoint; offset фиксируется после обработки
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	config "github.com/richardgms/cicero-joias-sub001/internal/config"
	db "github.com/richardgms/cicero-joias-sub001/internal/db"
	kafka "github.com/richardgms/cicero-joias-sub001/internal/external/kafka"
	rabbit "github.com/richardgms/cicero-joias-sub001/internal/external/rabbitmq"
	interf "github.com/richardgms/cicero-joias-sub001/internal/interfaces"
	model "github.com/richardgms/cicero-joias-sub001/internal/models"
	services "github.com/richardgms/cicero-joias-sub001/internal/services"
	tracing "github.com/richardgms/cicero-joias-sub001/observability/otel"
	"go.uber.org/zap"
)

func main() {
	// log
	logger, err := zap.NewDevelopment()
	if os.Getenv("LOYALTY_ENV") == "production" {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// tracing
	shutdownTracer, err := tracing.InitTracer(ctx, logger, "loyalty-orders")
	if err != nil {
		panic(err)
	}
	defer shutdownTracer()

	// kafka
	reader, err := kafka.NewOrdersReader(kafka.OrdersTopic)
	if err != nil {
		panic(err)
	}
	defer reader.Close()

	// database
	storage, closeStorage, err := db.NewStorage(ctx, logger)
	if err != nil {
		panic(err)
	}
	defer closeStorage()

	// cache
	var cache interf.CacheStorage
	redis, err := db.NewCacheService(ctx)
	if err != nil {
		logger.Warn(err.Error())
	} else {
		cache = redis
		defer redis.Close()
	}

	// notifications
	var notifier interf.CouponNotifier
	rabbitmq, err := rabbit.NewRabbitNotifier()
	if err != nil {
		logger.Warn(err.Error())
	} else {
		notifier = rabbitmq
		defer rabbitmq.Close()
	}

	// services
	issuer := services.NewCouponIssuer(logger, storage, nil, notifier)
	ledger := services.NewLoyaltyLedger(logger, storage, cache, issuer)
	processor := services.NewOrderProcessor(logger, ledger, services.NewCustomers(logger, storage))

	// start
	consumer := kafka.NewOrderConsumer(reader, logger, config.Int("LOYALTY_ORDERS_COUNT", 5))
	logger.Info("Orders job started", zap.String("topic", kafka.OrdersTopic))
	err = consumer.Run(ctx, func(ctx context.Context, event model.OrderEvent) error {
		_, err := processor.Process(ctx, event)
		return err
	})
	if err != nil {
		logger.Error("Orders job stopped", zap.Error(err))
	}
}
