package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/yashrajoria/storefront/account"
	"github.com/yashrajoria/storefront/auth"
	"github.com/yashrajoria/storefront/catalog"
	"github.com/yashrajoria/storefront/checkout"
	"github.com/yashrajoria/storefront/clients"
	"github.com/yashrajoria/storefront/common/logger"
	commonmw "github.com/yashrajoria/storefront/common/middleware"
	"github.com/yashrajoria/storefront/config"
	"github.com/yashrajoria/storefront/controllers"
	"github.com/yashrajoria/storefront/database"
	"github.com/yashrajoria/storefront/kafka"
	awspkg "github.com/yashrajoria/storefront/pkg/aws"
	"github.com/yashrajoria/storefront/routes"
	"github.com/yashrajoria/storefront/session"
)

const serviceName = "storefront"

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var awsCfg sdkaws.Config
	if cfg.AWSEnabled() {
		awsCfg, err = awspkg.LoadAWSConfig(ctx, awspkg.Options{Region: cfg.AWSRegion, Endpoint: cfg.AWSEndpoint})
		if err != nil {
			log.Fatalf("failed to load AWS config: %v", err)
		}
	}

	var cwWriter io.Writer
	if cfg.CloudWatchEnabled {
		cw, err := awspkg.NewCloudWatchLogsClient(ctx, awsCfg, cfg.CloudWatchLogGroup, serviceName)
		if err != nil {
			log.Printf("CloudWatch logs disabled: %v", err)
		} else {
			cwWriter = cw
		}
	}
	zlog := logger.InitializeWithWriter(cfg.AppEnv, cwWriter)
	defer func() { _ = zlog.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	var (
		recorder checkout.Recorder
		metrics  commonmw.MetricsRecorder
	)
	if cfg.CloudWatchEnabled {
		m := awspkg.NewMetricsClient(awsCfg, cfg.CloudWatchNamespace, serviceName, true)
		recorder, metrics = m, m
	}

	var store session.Store = session.NewMemoryStore()
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			zlog.Fatal("failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		store = session.NewRedisStore(redisClient, cfg.SessionTTL)
		zlog.Info("session identity stored in Redis")
	}

	var publishers checkout.Publishers
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaOrderTopic)
		if err != nil {
			zlog.Fatal("failed to create Kafka producer", zap.Error(err))
		}
		defer producer.Close()
		publishers = append(publishers, producer)
	}
	if cfg.SNSOrderTopicARN != "" {
		publishers = append(publishers, awspkg.NewSNSPublisher(awsCfg, cfg.SNSOrderTopicARN))
	}
	var publisher checkout.EventPublisher
	if len(publishers) > 0 {
		publisher = publishers
	}

	storeClient := clients.NewStoreClient(clients.Endpoints{
		Login:       cfg.AuthLoginURL,
		Register:    cfg.AuthRegisterURL,
		CreateOrder: cfg.OrdersCreateURL,
		ListOrders:  cfg.OrdersListURL,
	}, cfg.RequestTimeout)

	cat := catalog.Default()
	registry := session.NewRegistry(controllers.NewShopperFactory(controllers.ShopperDeps{
		Catalog:   cat,
		Store:     store,
		Orders:    storeClient,
		Publisher: publisher,
		Recorder:  recorder,
		Logger:    zlog,
	}))
	shoppers := controllers.NewShoppers(registry)
	limiter := commonmw.NewRateLimiter(rate.Every(time.Minute/20), 5, 10*time.Minute)

	router := routes.NewRouter(routes.Handlers{
		Storefront: controllers.NewStorefrontController(cat, shoppers),
		Checkout:   controllers.NewCheckoutController(shoppers),
		Account:    controllers.NewAccountController(account.NewViewer(storeClient, zlog), shoppers),
		Auth:       controllers.NewAuthController(auth.NewService(storeClient, zlog), shoppers),
	}, routes.Options{
		Logger:       zlog,
		Metrics:      metrics,
		Issuer:       session.NewTokenIssuer(cfg.SessionSecret, cfg.SessionTTL),
		SecureCookie: cfg.IsProduction(),
		CORSOrigins:  cfg.CORSOrigins,
		AuthLimiter:  limiter,
	})

	sweepCtx, stopSweeps := context.WithCancel(ctx)
	defer stopSweeps()
	go sweep(sweepCtx, zlog, 10*time.Minute, func() {
		if n := registry.Sweep(cfg.StateIdleTTL); n > 0 {
			zlog.Info("dropped idle sessions", zap.Int("count", n))
		}
		limiter.Cleanup()
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		zlog.Info("Storefront is running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("Server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zlog.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Shutdown error", zap.Error(err))
	}
	zlog.Info("Server shutdown complete.")
}

// sweep runs fn every interval until ctx is done.
func sweep(ctx context.Context, zlog *zap.Logger, interval time.Duration, fn func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			zlog.Debug("sweeper stopped")
			return
		case <-ticker.C:
			fn()
		}
	}
}
