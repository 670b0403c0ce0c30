package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/simaogato/partsdash-backend/internal/adapter/grpc"
	httpadapter "github.com/simaogato/partsdash-backend/internal/adapter/http"
	"github.com/simaogato/partsdash-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/partsdash-backend/internal/config"
	"github.com/simaogato/partsdash-backend/internal/logger"
	"github.com/simaogato/partsdash-backend/internal/usecase/account"
	"github.com/simaogato/partsdash-backend/internal/usecase/dashboard"
	"github.com/simaogato/partsdash-backend/internal/usecase/sales"
	"github.com/simaogato/partsdash-backend/internal/usecase/seeder"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger config comes from cfg, so nothing structured exists yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Stage: cfg.Stage, Service: "partsdash"})
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server exited with error", zap.Error(err))
	}
	log.Info("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	// 1. Setup Database
	db, err := connectWithRetry(ctx, cfg.DBConnStr, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		return err
	}

	// 2. Initialize Repositories (Postgres)
	userRepo := postgres.NewUserRepository(db)
	salesRepo := postgres.NewSalesDataRepository(db)
	repairOrderRepo := postgres.NewRepairOrderRepository(db)
	shipmentRepo := postgres.NewShipmentRepository(db)

	// 3. Initialize Services (Use Cases)
	panels, err := config.LoadCatalog()
	if err != nil {
		return err
	}
	dashboardService, err := dashboard.NewDashboardService(salesRepo, repairOrderRepo, shipmentRepo, panels)
	if err != nil {
		return err
	}
	salesService := sales.NewSalesService(salesRepo, repairOrderRepo, shipmentRepo)
	accountService := account.NewAccountService(userRepo)

	// Seed the admin account when a password is configured
	if cfg.AdminPassword != "" {
		created, err := seeder.NewSystemSeeder(userRepo, accountService).Seed(ctx, seeder.AdminCredentials{
			Username: cfg.AdminUsername,
			Password: cfg.AdminPassword,
		})
		if err != nil {
			return err
		}
		log.Info("admin account checked", zap.String("username", cfg.AdminUsername), zap.Bool("created", created))
	}

	// 4. Build transports
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpc.LoggingInterceptor(log),
			grpc.AuthInterceptor(cfg.APIToken),
		),
	)
	grpc.RegisterDashboardServiceServer(grpcServer, grpc.NewServer(dashboardService, salesService, cfg.StuckPackingDays))
	reflection.Register(grpcServer)

	httpServer := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: httpadapter.NewRouter(httpadapter.RouterConfig{
			APIToken:    cfg.APIToken,
			CORSOrigins: cfg.CORSOrigins,
			Logger:      log,
			Accounts:    accountService,
		}, httpadapter.NewHandler(dashboardService, cfg.StuckPackingDays, log)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return err
	}

	// 5. Serve until a signal arrives or a listener fails
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("gRPC server listening", zap.String("addr", cfg.GRPCAddr))
		return grpcServer.Serve(lis)
	})

	g.Go(func() error {
		log.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		grpcServer.GracefulStop()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// connectWithRetry waits for Postgres to accept connections, which matters
// when the database container starts alongside the server
func connectWithRetry(ctx context.Context, connStr string, log *zap.Logger) (*postgres.DB, error) {
	const attempts = 5

	var lastErr error
	for i := 1; i <= attempts; i++ {
		db, err := postgres.NewDB(ctx, connStr)
		if err == nil {
			return db, nil
		}
		lastErr = err
		log.Warn("database not ready", zap.Int("attempt", i), zap.Error(err))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
	return nil, lastErr
}
