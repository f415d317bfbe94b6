// HTTP API лояльности и gRPC health
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	api "github.com/richardgms/cicero-joias-sub001/internal/api"
	config "github.com/richardgms/cicero-joias-sub001/internal/config"
	db "github.com/richardgms/cicero-joias-sub001/internal/db"
	rabbit "github.com/richardgms/cicero-joias-sub001/internal/external/rabbitmq"
	interf "github.com/richardgms/cicero-joias-sub001/internal/interfaces"
	services "github.com/richardgms/cicero-joias-sub001/internal/services"
	tracing "github.com/richardgms/cicero-joias-sub001/observability/otel"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func newLogger() (*zap.Logger, error) {
	if os.Getenv("LOYALTY_ENV") == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func main() {
	// log
	logger, err := newLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// config
	port, err := config.Required("LOYALTY_HTTP_PORT")
	if err != nil {
		panic(err)
	}
	secret, err := config.Required("AUTH_JWT_SECRET")
	if err != nil {
		panic(err)
	}
	grpcPort := config.String("LOYALTY_GRPC_PORT", "")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// tracing
	shutdownTracer, err := tracing.InitTracer(ctx, logger, "loyalty")
	if err != nil {
		panic(err)
	}
	defer shutdownTracer()

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
	customers := services.NewCustomers(logger, storage)

	// api handlers
	r := api.NewHandler(logger, ledger, issuer, customers, api.NewAuthenticator(secret, logger))
	srv := &http.Server{
		Handler:      otelhttp.NewHandler(r, "loyalty-http"),
		Addr:         ":" + port,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}

	// grpc health
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("HTTP server started", zap.String("port", port))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if grpcPort != "" {
		lis, err := net.Listen("tcp", "0.0.0.0:"+grpcPort)
		if err != nil {
			panic(err)
		}
		g.Go(func() error {
			logger.Info("gRPC server started", zap.String("port", grpcPort))
			return grpcServer.Serve(lis)
		})
	}

	// shutdown
	g.Go(func() error {
		<-gctx.Done()
		healthServer.Shutdown()
		timeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		grpcServer.GracefulStop()
		return srv.Shutdown(timeout)
	})

	err = g.Wait()
	if err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
