// Package worker is the scheduler process: it runs the quotation expiry and
// reminder passes on an interval until interrupted.
package worker

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	quotationUC "servit/internal/application/quotation/usecases"
	"servit/internal/domain/shared/events"
	"servit/internal/infrastructure/config"
	"servit/internal/infrastructure/database"
	"servit/internal/infrastructure/migration"
	"servit/internal/infrastructure/notification"
	"servit/internal/infrastructure/repository"
	"servit/internal/infrastructure/scheduler"
	"servit/internal/shared/clock"
	"servit/internal/shared/db"
	"servit/internal/shared/logger"
)

var configPath string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run the quotation lifecycle worker",
		Long:  `Run the scheduler process that expires overdue quotations and sends pending-quotation reminders.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting quotation lifecycle worker")

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if err := migration.AutoMigrate(database.Get(), log); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Infow("redis connection established", "address", cfg.Redis.GetAddr())

	dispatcher := events.NewInMemoryEventDispatcher(0)
	if err := dispatcher.Start(); err != nil {
		return fmt.Errorf("failed to start event dispatcher: %w", err)
	}
	defer dispatcher.Stop()

	gormDB := database.Get()
	txManager := db.NewTransactionManager(gormDB)
	quotationRepo := repository.NewQuotationRepository(gormDB)
	partRepo := repository.NewPartRepository(gormDB)
	ticketRepo := repository.NewRepairTicketRepository(gormDB)
	notifier := notification.NewGateway(cfg.Email, ticketRepo, log)
	clk := clock.System()

	ucConfig := quotationUC.Config{
		ExpiryDays:           cfg.Quotation.ExpiryDays,
		ReminderDelayHours:   cfg.Quotation.ReminderDelayHours,
		CustomerWarrantyDays: cfg.Part.CustomerWarrantyDays,
		LowStockThreshold:    cfg.Part.LowStockThreshold,
	}

	expiryJob := quotationUC.NewExpireQuotationsUseCase(
		quotationRepo, partRepo, txManager, notifier, dispatcher, clk, log.Named("expiry"))
	reminderJob := quotationUC.NewProcessRemindersUseCase(
		quotationRepo, txManager, notifier, clk, ucConfig, log.Named("reminders"))

	manager, err := scheduler.NewSchedulerManager(log.Named("scheduler"))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	if err := manager.RegisterQuotationJobs(expiryJob, reminderJob, cfg.Quotation.SchedulerIntervalMinutes); err != nil {
		return fmt.Errorf("failed to register scheduler jobs: %w", err)
	}

	manager.Start()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Infow("received signal, shutting down", "signal", sig)

	if err := manager.Stop(); err != nil {
		return err
	}

	log.Infow("quotation lifecycle worker stopped")
	return nil
}
