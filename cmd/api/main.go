// @title                       Cake Delivery API
// @version                     1.0
// @description                 CRUD API for cakes, orders, customers and deliveries with JWT authentication.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodrv "go.mongodb.org/mongo-driver/mongo"

	_ "github.com/cakedelivery/delivery-api/docs"
	"github.com/cakedelivery/delivery-api/internal/api"
	"github.com/cakedelivery/delivery-api/internal/api/handler"
	"github.com/cakedelivery/delivery-api/internal/core/domain"
	"github.com/cakedelivery/delivery-api/internal/core/ports"
	"github.com/cakedelivery/delivery-api/internal/core/service"
	"github.com/cakedelivery/delivery-api/internal/infrastructure/db/memory"
	"github.com/cakedelivery/delivery-api/internal/infrastructure/db/mongo"
	"github.com/cakedelivery/delivery-api/internal/infrastructure/db/redis"
	"github.com/cakedelivery/delivery-api/internal/infrastructure/http/handlers"
	"github.com/cakedelivery/delivery-api/internal/pkg/config"
	"github.com/cakedelivery/delivery-api/pkg/logger"
)

const serviceName = "cake-delivery-api"

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
	})

	ctx := context.Background()
	checks := map[string]handlers.Check{}
	closers := map[string]gfshutdown.Operation{}

	// --- Stores ---
	var (
		stores *storeFactory
		users  ports.UserRepository
	)
	switch cfg.StoreDriver {
	case config.StoreMemory:
		db := memory.NewDatabase()
		stores = &storeFactory{memory: db}
		users = memory.NewUserRepository(db, service.UsersCollection)
		checks["store"] = db.Ping
		log.Warn().Msg("using in-memory store; data is lost on restart")
	default:
		client, db, err := mongo.Connect(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  serviceName,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to MongoDB")
		}
		if err := mongo.EnsureIndexes(ctx, db, indexes()); err != nil {
			log.Fatal().Err(err).Msg("failed to create MongoDB indexes")
		}
		stores = &storeFactory{mongo: db}
		users = mongo.NewUserRepository(db, service.UsersCollection)
		checks["mongodb"] = mongo.Ping(db)
		closers["mongodb"] = client.Disconnect
	}

	// --- Login throttle ---
	var throttle ports.LoginThrottle
	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	switch {
	case err == nil:
		throttle = redis.NewLoginThrottle(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginThrottleWindow)
		checks["redis"] = redis.Ping(rdb)
		closers["redis"] = closeRedis(rdb)
	case cfg.StoreDriver == config.StoreMemory:
		log.Warn().Err(err).Msg("redis unavailable, login throttling disabled")
	default:
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}

	// --- Services ---
	tokens, err := service.NewTokenIssuer(service.TokenConfig{
		SigningKey:           cfg.JWT.SigningKey,
		Issuer:               cfg.JWT.Issuer,
		Audience:             cfg.JWT.Audience,
		AccessTokenLifetime:  cfg.JWT.AccessTokenLifetime(),
		RefreshTokenLifetime: cfg.JWT.RefreshTokenLifetime(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("invalid token configuration")
	}
	authService := service.NewAuthService(users, tokens, throttle, logger.With("auth"))

	if cfg.Auth.AdminEmail != "" {
		bootstrapAdmin(ctx, authService, cfg.Auth, log)
	}

	entityLog := logger.With("entity")
	e := api.NewRouter(api.Dependencies{
		Logger:             log,
		Production:         cfg.IsProduction(),
		RateLimitPerMinute: cfg.RateLimit.PerMinute,
		Checks:             checks,
		Tokens:             tokens,
		Auth:               authService,
		Entities: handler.Services{
			Cakes:      service.NewCakeService(storeFor[domain.Cake](stores, service.CakesCollection), entityLog),
			Categories: service.NewCategoryService(storeFor[domain.Category](stores, service.CategoriesCollection), entityLog),
			Customers:  service.NewCustomerService(storeFor[domain.Customer](stores, service.CustomersCollection), entityLog),
			Feedback:   service.NewFeedbackService(storeFor[domain.Feedback](stores, service.FeedbackCollection), entityLog),
			Orders:     service.NewOrderService(storeFor[domain.Order](stores, service.OrdersCollection), entityLog),
			OrderItems: service.NewOrderItemService(storeFor[domain.OrderItem](stores, service.OrderItemsCollection), entityLog),
			Payments:   service.NewPaymentService(storeFor[domain.Payment](stores, service.PaymentsCollection), entityLog),
			Deliveries: service.NewDeliveryService(storeFor[domain.Delivery](stores, service.DeliveriesCollection), entityLog),
			Users:      service.NewUserService(storeFor[domain.User](stores, service.UsersCollection), entityLog),
		},
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	closers["http"] = e.Shutdown
	wait := gfshutdown.GracefulShutdown(ctx, cfg.ShutdownTimeout, closers)

	exitCode := <-wait
	log.Info().Int("exit_code", exitCode).Msg("server stopped")
	os.Exit(exitCode)
}

// storeFactory hands out collection stores for whichever backend is active.
type storeFactory struct {
	memory *memory.Database
	mongo  *mongodrv.Database
}

func storeFor[T any](f *storeFactory, collection string) ports.Store[T] {
	if f.memory != nil {
		return memory.NewCollection[T](f.memory, collection)
	}
	return mongo.NewCollection[T](f.mongo, collection)
}

func indexes() map[string][]mongodrv.IndexModel {
	return map[string][]mongodrv.IndexModel{
		service.UsersCollection:      {mongo.UniqueIndex("email"), mongo.SparseIndex("refresh_token")},
		service.CakesCollection:      {mongo.Index("category_id"), mongo.Index("name")},
		service.CategoriesCollection: {mongo.Index("name")},
		service.CustomersCollection:  {mongo.Index("email")},
		service.FeedbackCollection:   {mongo.Index("customer_id")},
		service.OrdersCollection:     {mongo.Index("customer_id")},
		service.OrderItemsCollection: {mongo.Index("order_id")},
		service.PaymentsCollection:   {mongo.Index("order_id")},
		service.DeliveriesCollection: {mongo.Index("order_id")},
	}
}

// bootstrapAdmin creates the configured admin account on first start.
func bootstrapAdmin(ctx context.Context, auth *service.AuthService, cfg config.AuthConfig, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := auth.Register(ctx, ports.RegisterInput{
		Username: "admin",
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		Role:     domain.RoleAdmin,
	})
	switch {
	case err == nil:
		log.Info().Str("email", cfg.AdminEmail).Msg("admin account created")
	case errors.Is(err, domain.ErrUserExists):
		log.Debug().Msg("admin account already present")
	default:
		log.Fatal().Err(err).Msg("failed to create admin account")
	}
}

func closeRedis(client *goredis.Client) gfshutdown.Operation {
	return func(context.Context) error {
		return client.Close()
	}
}
