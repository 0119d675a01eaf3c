package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RoyceAzure/lab/ristorante/internal/api"
	"github.com/RoyceAzure/lab/ristorante/internal/api/handler"
	"github.com/RoyceAzure/lab/ristorante/internal/api/router"
	"github.com/RoyceAzure/lab/ristorante/internal/config"
	"github.com/RoyceAzure/lab/ristorante/internal/infra/producer"
	"github.com/RoyceAzure/lab/ristorante/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/ristorante/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/ristorante/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "ristorante").Logger()

	cf, err := config.LoadConfig(".env")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	// db
	conn, err := db.GetDbConn(cf.DbName, cf.DbHost, cf.DbPort, cf.DbUser, cf.DbPas)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect db")
	}
	dbDao := db.NewDbDao(conn)
	if err := dbDao.InitMigrate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate db schema")
	}

	// redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cf.RedisAddr,
		Password: cf.RedisPassword,
		DB:       cf.RedisDB,
	})

	// kafka
	eventProducer := producer.NewCartEventProducer(cf.Brokers(), cf.KafkaTopic)
	defer eventProducer.Close()

	// services
	menuService, err := service.NewMenuService(cf.MenuPath, cf.OffersPath, cf.LocationsPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load catalog")
	}
	cartService := service.NewCartService(redis_repo.NewCartRepo(rdb), eventProducer)
	orderService := service.NewOrderService(redis_repo.NewCartRepo(rdb), db.NewOrderRepo(dbDao), eventProducer)
	favoriteService := service.NewFavoriteService(db.NewFavoriteRepo(dbDao))

	server := api.NewServer(
		handler.NewMenuHandler(menuService),
		handler.NewCartHandler(cartService, menuService),
		handler.NewOrderHandler(orderService),
		handler.NewFavoriteHandler(favoriteService, menuService),
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cf.ServerPort),
		Handler: router.SetupRouter(server, &logger),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info().Msg("received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("server stopped unexpectedly")
	}
	logger.Info().Msg("server stopped")
}
