package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/amanahtour/gudang-api/internal/application/auth"
	"github.com/amanahtour/gudang-api/internal/application/ledger"
	"github.com/amanahtour/gudang-api/internal/application/recorder"
	"github.com/amanahtour/gudang-api/internal/application/reporting"
	"github.com/amanahtour/gudang-api/internal/infrastructure/cache"
	"github.com/amanahtour/gudang-api/internal/infrastructure/postgres"
	"github.com/amanahtour/gudang-api/internal/infrastructure/whatsapp"
	httpRouter "github.com/amanahtour/gudang-api/internal/interfaces/http"
	"github.com/amanahtour/gudang-api/pkg/config"
	"github.com/amanahtour/gudang-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("muat konfigurasi: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("memulai aplikasi")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("koneksi PostgreSQL")
	}
	defer pool.Close()

	caps, err := postgres.LoadSchemaCapabilities(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("deteksi kapabilitas skema")
	}

	// Repo terikat pool (baca di luar transaksi)
	itemRepo := postgres.NewItemRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool, caps)
	stockRepo := postgres.NewWarehouseStockRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	incomingRepo := postgres.NewIncomingRepository(pool)
	outgoingRepo := postgres.NewOutgoingRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	summaryRepo := postgres.NewSummaryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache ringkasan stok: Redis bila diaktifkan, selain itu noop
	var summaryCache reporting.SummaryCache = cache.NoopSummaryCache{}
	if cfg.Cache.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("Redis tidak terjangkau, cache ringkasan dimatikan")
		} else {
			summaryCache = cache.NewSummaryCache(rdb, cfg.Cache.TTL, log.Zerolog())
			log.Info().Str("addr", cfg.Cache.Addr).Msg("cache ringkasan stok aktif")
		}
	}

	// Monitor stok rendah via WhatsApp (best-effort, pasca commit)
	var monitor recorder.LowStockMonitor
	var stockMonitor *whatsapp.StockMonitor
	if cfg.WhatsApp.Enabled {
		sender := whatsapp.NewClient(cfg.WhatsApp.BaseURL, cfg.WhatsApp.Token, cfg.WhatsApp.Target, log.Zerolog())
		stockMonitor = whatsapp.NewStockMonitor(itemRepo, sender, cfg.WhatsApp.Cooldown, log.Zerolog())
		monitor = stockMonitor
		log.Info().Str("target", cfg.WhatsApp.Target).Msg("notifikasi stok rendah aktif")
	}

	ledgerUC := ledger.NewStockLedgerUseCase()
	reconcileUC := ledger.NewReconcileUseCase(txRunner, itemRepo)
	incomingRecorder := recorder.NewIncomingRecorder(txRunner, ledgerUC, monitor)
	outgoingRecorder := recorder.NewOutgoingRecorder(txRunner, ledgerUC, monitor)
	transferRecorder := recorder.NewTransferRecorder(txRunner, ledgerUC)
	summaryUC := reporting.NewStockSummaryUseCase(summaryRepo, summaryCache)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		IncomingRecorder: incomingRecorder,
		OutgoingRecorder: outgoingRecorder,
		TransferRecorder: transferRecorder,
		SummaryUC:        summaryUC,
		LedgerUC:         ledgerUC,
		ReconcileUC:      reconcileUC,
		ItemRepo:         itemRepo,
		WarehouseRepo:    warehouseRepo,
		StockRepo:        stockRepo,
		MovementRepo:     movementRepo,
		IncomingRepo:     incomingRepo,
		OutgoingRepo:     outgoingRepo,
		TransferRepo:     transferRepo,
		JWTSecret:        cfg.JWT.Secret,
	})

	// Rekonsiliasi terjadwal: bandingkan saldo tersimpan dengan saldo
	// turunan dari log movement; perbaiki otomatis bila dikonfigurasi.
	schedCtx, stopSched := context.WithCancel(ctx)
	defer stopSched()
	if cfg.Reconcile.Interval > 0 {
		go runReconcileLoop(schedCtx, reconcileUC, summaryUC, cfg.Reconcile, log)
	}
	if stockMonitor != nil {
		go runLowStockLoop(schedCtx, stockMonitor)
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("server HTTP berhenti")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinyal shutdown diterima, menutup server...")
	stopSched()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown server")
	}

	log.Info().Msg("aplikasi berhenti")
}

func runReconcileLoop(ctx context.Context, uc *ledger.ReconcileUseCase, summaryUC *reporting.StockSummaryUseCase, cfg config.ReconcileConfig, log *logger.Logger) {
	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		var (
			drifts []ledger.DriftEntry
			err    error
		)
		if cfg.AutoRepair {
			drifts, err = uc.Repair(ctx)
		} else {
			drifts, err = uc.Check(ctx)
		}
		if err != nil {
			log.Error().Err(err).Msg("rekonsiliasi stok terjadwal gagal")
			continue
		}
		if len(drifts) == 0 {
			log.Debug().Msg("rekonsiliasi stok: tidak ada drift")
			continue
		}
		log.Warn().Int("drifts", len(drifts)).Bool("repaired", cfg.AutoRepair).Msg("rekonsiliasi stok menemukan drift")
		if cfg.AutoRepair {
			summaryUC.Invalidate(ctx)
		}
	}
}

// runLowStockLoop mengecek seluruh barang di bawah minimum tiap jam,
// melengkapi pengecekan per barang yang sudah jalan pasca movement.
func runLowStockLoop(ctx context.Context, monitor *whatsapp.StockMonitor) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			monitor.CheckAll(ctx)
		}
	}
}
