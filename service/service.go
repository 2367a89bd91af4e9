package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gorm.io/gorm"

	"github.com/civkit/civkit-api-sub000/anchor"
	"github.com/civkit/civkit-api-sub000/chat"
	"github.com/civkit/civkit-api-sub000/config"
	"github.com/civkit/civkit-api-sub000/db"
	"github.com/civkit/civkit-api-sub000/db/migrations"
	"github.com/civkit/civkit-api-sub000/discovery"
	"github.com/civkit/civkit-api-sub000/events"
	"github.com/civkit/civkit-api-sub000/lnclient"
	"github.com/civkit/civkit-api-sub000/lnclient/clnrest"
	"github.com/civkit/civkit-api-sub000/logger"
	"github.com/civkit/civkit-api-sub000/orders"
	"github.com/civkit/civkit-api-sub000/payouts"
	"github.com/civkit/civkit-api-sub000/pkg/version"
	"github.com/civkit/civkit-api-sub000/reconciliation"
)

type Service interface {
	GetDB() *gorm.DB
	GetConfig() *config.AppConfig
	GetLNClient() lnclient.LNClient
	GetOrdersService() orders.OrdersService
	GetPayoutsService() payouts.PayoutsService
	GetReconciliationService() reconciliation.ReconciliationService
	GetEventPublisher() events.EventPublisher
	Shutdown()
}

type service struct {
	cfg *config.AppConfig

	db                    *gorm.DB
	lnClient              lnclient.LNClient
	ordersService         orders.OrdersService
	payoutsService        payouts.PayoutsService
	reconciliationService reconciliation.ReconciliationService
	eventPublisher        events.EventPublisher
	ctx                   context.Context
}

func NewService(ctx context.Context) (*service, error) {
	// Load config from environment variables / .env file
	godotenv.Load(".env")
	appConfig := &config.AppConfig{}
	err := envconfig.Process("", appConfig)
	if err != nil {
		return nil, err
	}

	logger.Init(appConfig.LogLevel)
	logger.Logger.Info().Msg("Escrow service " + version.Tag)

	if appConfig.Workdir == "" {
		appConfig.Workdir = filepath.Join(xdg.DataHome, "/civkit-api")
		logger.Logger.Info().Str("workdir", appConfig.Workdir).Msg("No workdir specified, using default")
	}
	os.MkdirAll(appConfig.Workdir, os.ModePerm)

	if appConfig.LogToFile {
		err = logger.AddFileLogger(appConfig.Workdir)
		if err != nil {
			return nil, err
		}
	}

	// If DATABASE_URI is a URI or a path, leave it unchanged.
	// If it only contains a filename, prepend the workdir.
	if !strings.HasPrefix(appConfig.DatabaseUri, "file:") {
		databasePath, _ := filepath.Split(appConfig.DatabaseUri)
		if databasePath == "" {
			appConfig.DatabaseUri = filepath.Join(appConfig.Workdir, appConfig.DatabaseUri)
		}
	}

	gormDB, err := db.NewDB(appConfig.DatabaseUri, appConfig.LogDBQueries)
	if err != nil {
		return nil, err
	}
	if err := migrations.Migrate(gormDB); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to migrate database")
		return nil, err
	}

	eventPublisher := events.NewEventPublisher()

	lnClient, err := clnrest.NewCLNRestService(ctx, appConfig.LNRestUrl, appConfig.LNRestMacaroon)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create payment node client")
		return nil, err
	}

	ordersService := orders.NewOrdersService(gormDB, eventPublisher)
	payoutsService := payouts.NewPayoutsService(gormDB, eventPublisher)

	chatClient := chat.NewClient(appConfig.ChatServiceUrl)
	reconciliationService := reconciliation.NewReconciliationService(
		gormDB,
		lnClient,
		eventPublisher,
		chatClient,
		time.Duration(appConfig.ReconcileInterval)*time.Second,
	)

	eventPublisher.RegisterSubscriber(anchor.NewCommitmentConsumer(appConfig.AnchorServiceUrl))
	eventPublisher.RegisterSubscriber(discovery.NewOrderAnnouncer(appConfig.GetRelayUrls(), appConfig.NostrSecretKey))

	svc := &service{
		cfg:                   appConfig,
		ctx:                   ctx,
		db:                    gormDB,
		lnClient:              lnClient,
		ordersService:         ordersService,
		payoutsService:        payoutsService,
		reconciliationService: reconciliationService,
		eventPublisher:        eventPublisher,
	}

	reconciliationService.Start(ctx)

	eventPublisher.Publish(&events.Event{
		Event: "escrow_started",
		Properties: map[string]interface{}{
			"version": version.Tag,
		},
	})

	return svc, nil
}

func (svc *service) Shutdown() {
	svc.eventPublisher.PublishSync(&events.Event{
		Event: "escrow_stopped",
	})
	if err := svc.lnClient.Shutdown(); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to shutdown payment node client")
	}
	if err := db.Stop(svc.db); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to close database")
	}
}

func (svc *service) GetDB() *gorm.DB {
	return svc.db
}

func (svc *service) GetConfig() *config.AppConfig {
	return svc.cfg
}

func (svc *service) GetLNClient() lnclient.LNClient {
	return svc.lnClient
}

func (svc *service) GetOrdersService() orders.OrdersService {
	return svc.ordersService
}

func (svc *service) GetPayoutsService() payouts.PayoutsService {
	return svc.payoutsService
}

func (svc *service) GetReconciliationService() reconciliation.ReconciliationService {
	return svc.reconciliationService
}

func (svc *service) GetEventPublisher() events.EventPublisher {
	return svc.eventPublisher
}
