// cmd/order-service/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"

	"bazaar/internal/pkg/config"
	"bazaar/internal/pkg/eventbus"
	"bazaar/internal/pkg/logger"
	"bazaar/internal/pkg/tracing"
	catalog "bazaar/internal/service/catalog/domain"
	listingapp "bazaar/internal/service/listing/application"
	listingdomain "bazaar/internal/service/listing/domain"
	listinginfra "bazaar/internal/service/listing/infrastructure"
	listinghttp "bazaar/internal/service/listing/interfaces"
	"bazaar/internal/service/order/application"
	"bazaar/internal/service/order/command"
	"bazaar/internal/service/order/domain"
	"bazaar/internal/service/order/infrastructure"
	"bazaar/internal/service/order/infrastructure/adapter"
	"bazaar/internal/service/order/infrastructure/rule"
	"bazaar/internal/service/order/interfaces"
	"bazaar/internal/service/payment"
	paymentadapter "bazaar/internal/service/payment/adapter"
)

// main 函数是应用的"组装根" (Composition Root)
// 它的核心职责是：创建并组装所有依赖项，然后启动应用。
func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.App.ServiceName)
	log := logger.Ctx(context.Background())

	// 1. 初始化核心技术组件
	if cfg.Infra.Jaeger.Endpoint != "" {
		tp, err := tracing.InitTracerProvider(cfg.App.ServiceName, cfg.Infra.Jaeger.Endpoint)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize tracer provider")
		}
		defer tp.Shutdown(context.Background())
	}
	tracer := otel.Tracer(cfg.App.ServiceName)

	// 2. 事件总线与订阅者
	events := eventbus.NewBus()
	events.Subscribe(domain.EventOrderPlaced, eventbus.EmailNotifier{})
	events.Subscribe(domain.EventOrderPlaced, eventbus.SellerNotifier{})
	events.Subscribe(domain.EventPaymentCaptured, eventbus.EmailNotifier{})
	analytics := eventbus.NewAnalyticsSubscriber()
	events.Subscribe(domain.EventOrderPlaced, analytics)
	events.Subscribe(domain.EventPaymentCaptured, analytics)

	if cfg.Infra.Kafka.Brokers != "" {
		writer := adapter.NewKafkaWriter(strings.Split(cfg.Infra.Kafka.Brokers, ","), cfg.Infra.Kafka.Topic)
		defer writer.Close()
		relay := adapter.NewEventKafkaRelay(writer)
		events.Subscribe(domain.EventOrderPlaced, relay)
		events.Subscribe(domain.EventPaymentCaptured, relay)
	}

	// 3. 支付栈：适配器外面包重试代理
	gateway := payment.NewRetryProxy(
		paymentadapter.NewStripeAdapter(os.Getenv("STRIPE_API_KEY")),
		payment.RetryPolicy{Attempts: cfg.App.PaymentAttempts},
	)
	strategy := payment.NewGatewayStrategy(gateway)

	// 4. 订单服务
	orderService := application.NewOrderApplicationService(
		infrastructure.NewMemoryOrderRepository(),
		command.NewCommandBus(),
		events,
		strategy,
		infrastructure.NewMemoryInventory(),
		rule.NewCELEngineAdapter(),
		cfg.App.FraudRule,
		tracer,
	)

	// 5. 商品条目服务
	listingService := buildListingService(cfg)

	// 6. HTTP 接口
	mux := http.NewServeMux()
	interfaces.NewOrderHandler(orderService).RegisterRoutes(mux)
	listinghttp.NewListingHandler(listingService).RegisterRoutes(mux)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: mux,
	}

	go func() {
		log.Info().Int("port", cfg.App.Port).Msg("order service listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// 7. 优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// buildListingService 按配置逐层升级条目仓储：
// 配了 MySQL 用 GORM 持久化，否则用内存实现；
// 配了 Redis 在外面包跨进程读缓存，否则用进程内缓存。
func buildListingService(cfg *config.Config) *listingapp.ListingService {
	log := logger.Ctx(context.Background())

	var repo listingdomain.ListingRepository = listinginfra.NewMemoryListingRepository()
	if cfg.Infra.MySQL.DSN != "" {
		db, err := listinginfra.OpenMySQL(cfg.Infra.MySQL.DSN)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open mysql")
		}
		repo = listinginfra.NewGormListingRepository(db)
	}

	if cfg.Infra.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Infra.Redis.Addr})
		repo = listinginfra.NewRedisCacheProxy(repo, client)
	} else {
		repo = listinginfra.NewCacheProxy(repo)
	}

	return listingapp.NewListingService(catalog.DefaultRegistry(), repo)
}
