package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/rtomilin/pennywise/internal/api"
	"github.com/rtomilin/pennywise/internal/controller"
	"github.com/rtomilin/pennywise/internal/migrations"
	"github.com/rtomilin/pennywise/internal/service"
	"github.com/rtomilin/pennywise/internal/storage/postgres"
	redisstorage "github.com/rtomilin/pennywise/internal/storage/redis"
	"github.com/rtomilin/pennywise/internal/util"

	_ "github.com/lib/pq"
)

func main() {
	ctx := context.Background()
	logger := util.NewZapLogger()

	db, dbCleanup, err := util.NewDBConnection(logger, util.NewDBConfig())
	if err != nil {
		logger.Fatal(zap.Error(err))
	}
	if err := migrations.RunMigrations(db, logger); err != nil {
		logger.Fatal(zap.Error(err))
	}

	redisClient, redisCleanup, err := util.NewRedisClient(logger, util.NewRedisConfig())
	if err != nil {
		logger.Fatal(zap.Error(err))
	}

	cleanupFuncs := []func(){dbCleanup, redisCleanup}

	tokenConfig := util.NewTokenConfig()
	storage := postgres.NewStorage(db)
	userLocker := redisstorage.NewUserLocker(redisClient)

	tokenService := service.NewTokenService(tokenConfig)
	authService := service.NewAuthService(
		tokenService,
		storage,
		userLocker,
		service.NewBcryptHasher(),
		logger,
		tokenConfig.MaxRefreshTokens,
	)
	financeService := service.NewFinanceService(storage, storage)

	controller := controller.NewController(logger, authService, financeService)

	apiServer := api.NewAPI(controller, tokenService, util.NewServerConfig(), logger, cleanupFuncs)
	apiServer.Run(ctx)
}
