package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"postboard/internal/awsconf"
	"postboard/internal/cdn/cloudfront"
	"postboard/internal/config"
	"postboard/internal/handler"
	"postboard/internal/imageproc"
	"postboard/internal/observability"
	"postboard/internal/repository/mongodb"
	"postboard/internal/router"
	"postboard/internal/service"
	s3storage "postboard/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, err := mongodb.NewClient(ctx, &cfg.Mongo)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Printf("mongo disconnect: %v", err)
		}
	}()
	db := mongoClient.Database(cfg.Mongo.Database)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("failed to ensure indexes: %w", err)
	}

	awsCfg, err := awsconf.Load(ctx, cfg.S3.Region, cfg.S3.AccessKey, cfg.S3.SecretKey)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := observability.NewMetrics("postboard", reg)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	// Initialize repositories and gateways
	postRepo := observability.InstrumentPosts(mongodb.NewPostRepo(db), metrics)
	storage := observability.InstrumentStorage(s3storage.NewS3Client(awsCfg, &cfg.S3), metrics)
	cdn := observability.InstrumentCDN(cloudfront.NewCloudFrontClient(awsCfg, cfg.CDN.DistributionID), metrics)
	transformer := imageproc.NewTransformer(cfg.Image.Width, cfg.Image.Height, cfg.Image.JPEGQuality).
		WithMaxPixels(cfg.Image.MaxPixels)

	// Initialize services
	postSvc := service.NewPostService(postRepo, storage, cdn, transformer, &cfg.S3, &cfg.CDN)

	// Initialize handlers
	postH := handler.NewPostHandler(postSvc)
	healthH := handler.NewHealthHandler(mongodb.NewPinger(mongoClient))

	// Setup router
	r, err := router.Setup(postH, healthH, router.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Metrics:        metrics,
		Gatherer:       reg,
	})
	if err != nil {
		return fmt.Errorf("failed to set up router: %w", err)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Printf("Server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
