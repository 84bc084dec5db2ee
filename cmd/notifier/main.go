package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/nimasrn/branch-backoffice/internal/config"
	gateway "github.com/nimasrn/branch-backoffice/internal/gateways"
	"github.com/nimasrn/branch-backoffice/internal/notifier"
	"github.com/nimasrn/branch-backoffice/internal/repository"
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

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Kill, os.Interrupt, syscall.SIGTERM)
	cfg := &gateway.Config{
		BaseURL:                 config.Get().ChatServiceBaseUrl,
		Token:                   config.Get().ChatServiceToken,
		Timeout:                 time.Second * 5,
		MaxRetries:              3,
		RetryDelay:              time.Millisecond * 100,
		MaxConns:                1000,
		ReadBufferSize:          1024 * 4,
		WriteBufferSize:         1024 * 4,
		HealthCheckInterval:     30 * time.Second,
		CircuitBreakerThreshold: 5,
		CircuitBreakerTimeout:   60 * time.Second,
	}
	client, err := gateway.NewChatClient(cfg)
	if err != nil {
		logger.Error("failed to create chat gateway", "error", err)
		return
	}

	announcementRepo := repository.NewAnnouncementRepository(db)

	idempotencyConfig := notifier.DefaultIdempotencyConfig()
	idempotencyService := notifier.NewIdempotencyService(redisAdap, idempotencyConfig)

	service, err := notifier.NewNotifierService(redisAdap)
	if err != nil {
		logger.Error("failed to create the notifier", "error", err)
		return
	}
	service.RegisterProcessor(notifier.NewNotificationProcessor(client, announcementRepo, idempotencyService, service.Metrics()))

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

	go func() {
		prom.ListenAndServer(config.Get().PromListenAddr, "/metrics")
	}()

	go func() {
		err := service.Start()
		if err != nil {
			logger.Error("failed to start the notifier", "error", err)
		}
	}()

	select {
	case <-c:
		service.Stop()
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
