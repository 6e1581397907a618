package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	catalogapp "github.com/al1ce23/shitshop/internal/catalog/app"
	"github.com/al1ce23/shitshop/internal/catalog/infra/fsdir"
	"github.com/al1ce23/shitshop/internal/catalog/infra/s3store"
	"github.com/al1ce23/shitshop/internal/gateway"
	orderapp "github.com/al1ce23/shitshop/internal/order/app"
	"github.com/al1ce23/shitshop/internal/order/infra/mailer"
	"github.com/al1ce23/shitshop/pkg/config"
	"github.com/al1ce23/shitshop/pkg/logger"
	"github.com/al1ce23/shitshop/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   "storefront",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	// Catalog
	source, catalogDir, err := productSource(ctx, cfg.Catalog, log)
	if err != nil {
		log.Error("catalog setup failed", slog.Any("err", err))
		os.Exit(1)
	}
	catalogSvc := catalogapp.NewService(source)

	// Orders
	if cfg.Shop.OrderEmail == "" {
		log.Warn("ORDER_EMAIL is not set, owner notifications will fail")
	}
	m, err := mailer.New(cfg.Mail, cfg.Shop.Name, log)
	if err != nil {
		log.Error("mailer setup failed", slog.Any("err", err))
		os.Exit(1)
	}
	orderSvc := orderapp.NewService(m, orderapp.Shop{
		Name:       cfg.Shop.Name,
		Currency:   cfg.Shop.Currency,
		OrderEmail: cfg.Shop.OrderEmail,
	}, log)

	handler := gateway.NewHandler(catalogSvc, orderSvc, log, gateway.Options{
		CatalogDir:         catalogDir,
		PublicDir:          cfg.HTTP.PublicDir,
		CORSOrigins:        cfg.HTTP.CORSOrigins,
		TrustedProxies:     cfg.HTTP.TrustedProxies,
		OrderRatePerMinute: cfg.HTTP.OrderRatePerMinute,
		OrderRateBurst:     cfg.HTTP.OrderRateBurst,
		MaxBodyBytes:       cfg.HTTP.MaxBodyBytes,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	grpcAddr := fmt.Sprintf(":%d", cfg.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		log.Error("listen failed", slog.Any("err", err), slog.String("addr", grpcAddr))
		os.Exit(1)
	}
	healthSrv := health.NewServer()
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	grpcServer := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()
	go func() {
		defer wg.Done()
		log.Info("grpc health starting", slog.String("addr", grpcAddr))
		if err := grpcServer.Serve(lis); err != nil {
			log.Error("grpc serve error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")
	healthSrv.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-shutdownCtx.Done():
		log.Warn("graceful stop timeout, forcing stop")
		grpcServer.Stop()
	case <-stopped:
	}

	wg.Wait()
	log.Info("bye")
}

// productSource returns the configured catalog and, for a local catalog,
// the directory whose images the HTTP server should serve.
func productSource(ctx context.Context, cfg config.Catalog, log *slog.Logger) (catalogapp.ProductSource, string, error) {
	switch cfg.Source {
	case "", "dir":
		return fsdir.NewProductRepo(cfg.Dir, gateway.ProductImageRoute, cfg.Concurrency, log), cfg.Dir, nil
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, "", errors.New("S3_BUCKET is required for the s3 catalog")
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, "", fmt.Errorf("load aws config: %w", err)
		}
		publicBase := cfg.S3PublicBaseURL
		if publicBase == "" {
			publicBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, awsCfg.Region)
		}
		repo := s3store.NewProductRepo(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.S3Prefix, publicBase, cfg.Concurrency, log)
		return repo, "", nil
	default:
		return nil, "", fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
}
