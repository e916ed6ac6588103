package app

import (
	"context"
	"time"

	config "github.com/DRSN-tech/grocery-merchant/internal/cfg"
	"github.com/DRSN-tech/grocery-merchant/internal/infrastructure/kafka"
	"github.com/DRSN-tech/grocery-merchant/internal/repository/catalog"
	"github.com/DRSN-tech/grocery-merchant/internal/repository/jsonfile"
	"github.com/DRSN-tech/grocery-merchant/internal/repository/memory"
	"github.com/DRSN-tech/grocery-merchant/internal/repository/redis"
	"github.com/DRSN-tech/grocery-merchant/internal/usecase"
	"github.com/DRSN-tech/grocery-merchant/pkg/clients"
	"github.com/DRSN-tech/grocery-merchant/pkg/closer"
	"github.com/DRSN-tech/grocery-merchant/pkg/e"
	"github.com/DRSN-tech/grocery-merchant/pkg/logger"
	"github.com/jimlawless/whereami"
)

// Services — ядро магазина, общее для сервера и CLI.
type Services struct {
	Catalog    *usecase.CatalogUseCase
	Preference *usecase.PreferenceUseCase
	Order      *usecase.OrderUseCase
	OrderRepo  *jsonfile.OrderRepo

	closer *closer.Closer
	logger logger.Logger
}

// NewServices собирает репозитории и use case'ы. Redis и Kafka подключаются,
// только если заданы в конфигурации. Недоступный Redis не мешает запуску.
func NewServices(ctx context.Context, cfg *config.Config, logger logger.Logger) (*Services, error) {
	cl := closer.NewCloser(2 * time.Second)

	catalogRepo, err := catalog.Load(cfg.App.CatalogPath)
	if err != nil {
		logger.Errorf(err, "failed to load catalog")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	products, _ := catalogRepo.List(ctx)
	logger.Infof("Catalog loaded: %d products", len(products))

	orderRepo, err := jsonfile.NewOrderRepo(cfg.App.OrdersFile, cfg.App.LockTimeout, logger.With("component", "order-store"))
	if err != nil {
		logger.Errorf(err, "failed to initialize order store")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	sessionRepo := memory.NewSessionRepo()

	var cacheRepo usecase.SearchCacheRepository
	if cfg.Redis != nil {
		redisClient := clients.NewRedisClient(cfg.Redis)
		cl.AddSimple("redis", redisClient.Close)

		if err := redisClient.Ping(ctx, cfg.Redis.DialTimeout); err != nil {
			logger.Warnf("Redis is unavailable, search cache disabled: %v", err)
		} else {
			cacheRepo = redis.NewCacheRepo(redisClient, cfg.Redis, logger.With("component", "search-cache"))
			logger.Infof("Search cache enabled: %s", redisClient.Addr())
		}
	}

	var producer usecase.OrderEventProducer
	if cfg.Kafka != nil {
		kafkaProducer := kafka.NewProducer(logger.With("component", "order-events"), cfg.Kafka)
		cl.AddSimple("kafka producer", kafkaProducer.Close)
		producer = kafkaProducer
		logger.Infof("Order events enabled: topic %s", cfg.Kafka.Topic)
	}

	orderUC := usecase.NewOrderUC(catalogRepo, orderRepo, producer, logger, cfg.App.DefaultCurrency)
	// Ожидание событий закрывается раньше продюсера
	cl.Add("order events", orderUC.WaitForEvents)

	return &Services{
		Catalog:    usecase.NewCatalogUC(catalogRepo, sessionRepo, cacheRepo, logger),
		Preference: usecase.NewPreferenceUC(sessionRepo, logger),
		Order:      orderUC,
		OrderRepo:  orderRepo,
		closer:     cl,
		logger:     logger,
	}, nil
}

// Ready проверяет, что хранилище заказов читается.
func (s *Services) Ready(ctx context.Context) error {
	if _, err := s.OrderRepo.List(ctx); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

// Close освобождает ресурсы в обратном порядке регистрации.
func (s *Services) Close(ctx context.Context) error {
	return s.closer.Close(ctx)
}
