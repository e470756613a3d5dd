package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pedrosavio99/cafe-online-ifpb/internal/config"
	apphttp "github.com/pedrosavio99/cafe-online-ifpb/internal/http"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/http/middleware"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/cart"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/checkout"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/menu"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/orders"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/payments"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/profile"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/users"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/notify"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/storage"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/storeclient"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	// Client-side state only; orders live in the external store.
	if err := db.AutoMigrate(
		&users.User{},
		&middleware.Session{},
		&profile.Profile{},
		&cart.Record{},
		&menu.Item{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := menu.Seed(ctx, db); err != nil {
		log.Fatalf("seed menu: %v", err)
	}

	files, err := storage.FromConfig(ctx, cfg)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	logger.Info("storage_ready", slog.String("driver", files.Driver))

	store := storeclient.New(cfg.OrderStoreURL, cfg.HTTPTimeout, logger)
	provider := payments.NewHTTPProvider(cfg.PaymentURL, cfg.HTTPTimeout, logger)

	usersSvc := users.NewService(db)
	profilesSvc := profile.NewService(db)
	cartsSvc := cart.NewService(db)
	menuSvc := menu.NewService(menu.NewRepo(db), files.Storage, logger)
	notifyCenter := notify.NewCenter(cfg.NotificationTTL)
	checkoutSvc := checkout.NewService(cartsSvc, profilesSvc, store, provider, notifyCenter,
		cfg.BaseURL, cfg.PaymentInstrument, logger)

	registry := orders.NewRegistry()
	poller := orders.NewPoller(store, registry, cfg.PollInterval, cfg.PollLifetime, logger)
	controller := orders.NewController(store, registry, poller, logger)

	r := apphttp.NewRouter(apphttp.Deps{
		Cfg:        cfg,
		Log:        logger,
		DB:         db,
		Users:      usersSvc,
		Profiles:   profilesSvc,
		Carts:      cartsSvc,
		Menu:       menuSvc,
		Checkout:   checkoutSvc,
		Notify:     notifyCenter,
		Store:      store,
		Registry:   registry,
		Poller:     poller,
		Controller: controller,
		BaseCtx:    ctx,
	})

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	go func() {
		logger.Info("server_listening", slog.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server_shutting_down")
	poller.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown_failed", slog.Any("err", err))
	}
}
