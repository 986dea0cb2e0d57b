package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/joho/godotenv"
	"github.com/maxaizer/job-portal/internal/bot"
	"github.com/maxaizer/job-portal/internal/clients/jobboard"
	"github.com/maxaizer/job-portal/internal/config"
	"github.com/maxaizer/job-portal/internal/logger"
	"github.com/maxaizer/job-portal/internal/metrics"
	"github.com/maxaizer/job-portal/internal/repositories"
	"github.com/maxaizer/job-portal/internal/services"
	"github.com/maxaizer/job-portal/internal/web"
	log "github.com/sirupsen/logrus"
)

func newJobBoardClient(cfg config.APIConfig) *jobboard.Client {
	client := jobboard.NewClient(cfg.BaseURL)
	if cfg.RequestTimeout > 0 {
		client.SetTimeout(cfg.RequestTimeout)
	}
	client.SetRateLimit(cfg.MaxRequestsPerSecond)
	return client
}

func runNotifier(cfg config.NotifierConfig, bus EventBus.Bus) (stop func()) {
	if !cfg.Enabled() {
		log.Info("telegram notifier disabled")
		return func() {}
	}

	notifier, err := bot.NewNotifier(cfg.TelegramToken, cfg.AdminChatID, bus)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeTgApi).Errorf("can't create notifier: %v", err)
		return func() {}
	}
	return notifier.Stop
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("can't load .env file: %v", err)
	}

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.Register()

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	if err = dbContext.Migrate(); err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	data := repositories.NewDataRepository(dbContext.DB)
	states := repositories.NewCachedData(data)

	cleaner, err := services.NewBrowserStateCleaner(data, states, cfg.DB.StateExpirationDays)
	if err != nil {
		log.Fatalf("can't create browser state cleaner: %v", err)
	}
	defer cleaner.Stop()

	bus := EventBus.New()
	stopNotifier := runNotifier(cfg.Notifier, bus)
	defer stopNotifier()

	server, err := web.NewServer(cfg.Server, newJobBoardClient(cfg.API), states, bus)
	if err != nil {
		log.Fatalf("can't create web server: %v", err)
	}

	go func() {
		if err := server.Start(); err != nil {
			log.Errorf("web server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down services...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("%v", err)
	}
	log.Info("Services stopped.")
}
