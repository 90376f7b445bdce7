package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ROCKERZ109/lillasure-website/configs"
	"github.com/ROCKERZ109/lillasure-website/internal/adapter/cache"
	httpadapter "github.com/ROCKERZ109/lillasure-website/internal/adapter/http"
	"github.com/ROCKERZ109/lillasure-website/internal/adapter/http/middleware"
	"github.com/ROCKERZ109/lillasure-website/internal/adapter/queue"
	"github.com/ROCKERZ109/lillasure-website/internal/adapter/repo"
	domain "github.com/ROCKERZ109/lillasure-website/internal/entity"
	"github.com/ROCKERZ109/lillasure-website/internal/logging"
	"github.com/ROCKERZ109/lillasure-website/internal/schedule"
	"github.com/ROCKERZ109/lillasure-website/internal/usecase"
)

type App struct {
	Router   *gin.Engine
	Products usecase.ProductStore
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	log := logging.Init(cfg.App.Name, cfg.App.LogFile)

	// init mongo (the remote document store for products and orders)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	db := client.Database(cfg.Mongo.Database)

	log.Info("bageri-api: starting up")

	// init redis (cart persistence + duplicate-submit guard)
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}

	// optional rabbitmq notifier for the back-of-house display
	var orderQueue usecase.OrderQueue = usecase.NopQueue{}
	var amqpConn *amqp.Connection
	if cfg.Rabbit.URL != "" {
		amqpConn, err = amqp.Dial(cfg.Rabbit.URL)
		if err != nil {
			log.Warn("rabbitmq unavailable, order notifications disabled", "error", err)
		} else {
			ch, err := amqpConn.Channel()
			if err == nil {
				producer, perr := queue.NewRabbitProducer(ch)
				if perr != nil {
					log.Warn("rabbitmq setup failed, order notifications disabled", "error", perr)
				} else {
					orderQueue = producer
				}
			}
		}
	}

	// infra
	orderRepo := repo.NewMongoOrderRepo(db, cfg.Mongo.OrdersCollection)
	productRepo := repo.NewMongoProductRepo(db, cfg.Mongo.ProductsCollection)
	cartStore := cache.NewRedisCartStore(rdb, cfg.Cart.TTL)
	idem := cache.NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL)
	sched := schedule.New(cfg.Schedule())

	// services
	carts := usecase.NewCartService(cartStore, logging.New("cart"))
	submit := usecase.NewSubmitOrder(orderRepo, idem, orderQueue, logging.New("submit"))
	checkout := usecase.NewCheckoutService(carts, sched, submit, logging.New("checkout"))
	fettisdagen := usecase.NewFettisdagenService(productRepo, sched, submit, logging.New("fettisdagen"))

	// handlers + router + middleware
	router := httpadapter.NewRouter(httpadapter.Handlers{
		Catalog:     httpadapter.NewCatalogHandler(productRepo, sched),
		Cart:        httpadapter.NewCartHandler(carts, productRepo),
		Pickup:      httpadapter.NewPickupHandler(sched),
		Checkout:    httpadapter.NewCheckoutHandler(checkout),
		Fettisdagen: httpadapter.NewFettisdagenHandler(fettisdagen),
		Admin:       httpadapter.NewAdminHandler(orderRepo),
		Token:       httpadapter.NewTokenHandler(cfg),
	}, middleware.NewAuthz(cfg))

	cleanup := func() {
		_ = client.Disconnect(context.Background())
		_ = rdb.Close()
		if amqpConn != nil {
			_ = amqpConn.Close()
		}
	}

	return &App{Router: router, Products: productRepo}, cleanup, nil
}

// SeedProducts upserts a catalog file (JSON list of products) into the
// product store. Run via the -seed flag.
func (a *App) SeedProducts(ctx context.Context, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}
	if err := a.Products.Seed(ctx, products); err != nil {
		return err
	}
	logging.Base().Info("catalog seeded", "count", len(products), "file", path)
	return nil
}
