package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/nimasrn/branch-backoffice/internal/broadcast"
	"github.com/nimasrn/branch-backoffice/internal/config"
	"github.com/nimasrn/branch-backoffice/internal/handlers"
	"github.com/nimasrn/branch-backoffice/internal/queue"
	"github.com/nimasrn/branch-backoffice/internal/repository"
	"github.com/nimasrn/branch-backoffice/internal/services"
	xhttp "github.com/nimasrn/branch-backoffice/pkg/http"
	"github.com/nimasrn/branch-backoffice/pkg/logger"
	"github.com/nimasrn/branch-backoffice/pkg/pg"
	"github.com/nimasrn/branch-backoffice/pkg/prom"
	"github.com/nimasrn/branch-backoffice/pkg/redis"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {

	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	// transport (tcp for now)
	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Server.ReadBufferSize = 1024 * 16
	s.Server.WriteBufferSize = 1024 * 16
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(time.Second * 5))
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	s.Router = xhttp.CreateDefaultRouter()

	readConf := pg.Config{
		User:     config.Get().PostgresReadUser,
		Host:     config.Get().PostgresReadHost,
		Port:     config.Get().PostgresReadPort,
		Password: config.Get().PostgresReadPassword,
		Database: config.Get().PostgresReadDatabase,
	}
	writeConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}

	pgDebug := false
	if config.Get().AppEnv == "dev" {
		pgDebug = true
	}
	db, err := pg.CreateReadWrite(readConf, writeConf, pgDebug)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	redisAdap, err := redis.NewRedisAdapter("default", config.Get().RedisUniversalKeyPrefix, &redis.Options{
		Addrs:      []string{config.Get().RedisAddr},
		ClientName: "default",
		DB:         config.Get().RedisDatabase,
		Username:   config.Get().RedisUsername,
		Password:   config.Get().RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
		return
	}

	notifyQueue, err := queue.NewQueue(redisAdap, queue.QueueConfig{
		Name:              config.Get().NotifyQueueName,
		ConsumerGroup:     config.Get().NotifyQueueConsumerGroup,
		ConsumerName:      config.Get().NotifyQueueConsumerName,
		MaxRetries:        config.Get().NotifyQueueMaxRetries,
		VisibilityTimeout: config.Get().NotifyQueueVisibilityTimeout,
		PollInterval:      config.Get().NotifyQueuePollInterval,
		BatchSize:         config.Get().NotifyQueueBatchSize,
		MaxLen:            config.Get().NotifyQueueMaxLen,
		EnableDLQ:         config.Get().NotifyQueueEnableDLQ,
	})
	if err != nil {
		logger.Error("failed creating notify queue", "error", err)
		return
	}

	var hostname string
	hostname, err = os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	err = prom.Create(hostname, config.Get().AppEnv, config.Get().PromNamespace)
	if err != nil {
		logger.Error("failed to create prometheus metrics", "error", err)
		return
	}

	go prom.ListenAndServer(config.Get().PromListenAddr, "/metrics")

	publisher := broadcast.NewRedisPublisher(redisAdap)

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	deliveryRepo := repository.NewDeliveryRepository(db)
	requestRepo := repository.NewRequestStocksRepository(db)
	orderRepo := repository.NewSalesOrderRepository(db)
	customerOrderRepo := repository.NewCustomerOrderRepository(db)
	targetRepo := repository.NewSalesTargetRepository(db)
	remittanceRepo := repository.NewRemittanceRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	chatNotificationRepo := repository.NewChatNotificationRepository(db)

	// services
	tokens := services.NewTokenStore(redisAdap, config.Get().SessionTokenTTL)
	authService := services.NewAuthService(userRepo, tokens, publisher)
	inventoryService := services.NewInventoryService(productRepo, supplierRepo, deliveryRepo, requestRepo)
	salesService := services.NewSalesService(orderRepo, customerOrderRepo, targetRepo, productRepo, publisher)
	remittanceService := services.NewRemittanceService(remittanceRepo, orderRepo)
	announcementService := services.NewAnnouncementService(announcementRepo, chatNotificationRepo, userRepo, notifyQueue, publisher)
	healthService := services.NewHealthService(db, redisAdap)

	// v1 handlers
	authRequired := handlers.RequireAuth(authService)
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(inventoryService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	salesHandler := handlers.NewSalesHandler(salesService)
	remittanceHandler := handlers.NewRemittanceHandler(remittanceService)
	announcementHandler := handlers.NewAnnouncementHandler(announcementService)
	healthHandler := handlers.NewHealthHandler(healthService)

	g := s.Router.Group("/api/v1")
	handlers.RegisterAuthRoutes(g, authHandler, authRequired)
	handlers.RegisterProductRoutes(g, productHandler, authRequired)
	handlers.RegisterInventoryRoutes(g, inventoryHandler, authRequired)
	handlers.RegisterSalesRoutes(g, salesHandler, authRequired)
	handlers.RegisterRemittanceRoutes(g, remittanceHandler, authRequired)
	handlers.RegisterAnnouncementRoutes(g, announcementHandler, authRequired)
	handlers.RegisterHealthRoutes(g, healthHandler)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Kill, os.Interrupt, syscall.SIGTERM)

	go func() {
		var err = s.ListenAndServe(config.Get().HttpListenAddr)
		if err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()

	select {
	case <-c:
		s.Shutdown()
	}
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
