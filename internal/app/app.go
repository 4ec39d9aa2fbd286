package app

import (
	"context"

	"github.com/finflow/budgetguard/internal/config"
	"github.com/finflow/budgetguard/internal/delivery/httpapi"
	"github.com/finflow/budgetguard/internal/infra/db"
	"github.com/finflow/budgetguard/internal/infra/log"
	"github.com/finflow/budgetguard/internal/infra/notify"
	"github.com/finflow/budgetguard/internal/infra/sched"
	"github.com/finflow/budgetguard/internal/usecase"
	"go.uber.org/zap"
)

type App struct {
	server    *httpapi.Server
	scheduler *sched.Scheduler
	logger    *zap.Logger
	cleanupFn func() error
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger, err := log.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	dbConn, err := db.Open(cfg, logger)
	if err != nil {
		return nil, err
	}

	budgetRepo := db.NewBudgetRepository(dbConn)
	groupRepo := db.NewGroupRepository(dbConn)
	userRepo := db.NewUserRepository(dbConn)
	alertRepo := db.NewAlertRepository(dbConn)
	ledgerRepo := db.NewLedgerRepository(dbConn)
	resolver := db.NewRecipientResolver(groupRepo, userRepo)

	emailSender := notify.NewEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, logger)
	smsSender := notify.NewSMSSender(cfg.SMSGatewayURL, cfg.SMSGatewayAPIKey, cfg.SMSFrom, cfg.SMSGatewayTimeout, logger)

	statusUC := usecase.NewStatusUsecase(budgetRepo, ledgerRepo)
	monitor := usecase.NewMonitor(budgetRepo, statusUC, alertRepo, resolver, emailSender, smsSender, logger)
	alertUC := usecase.NewAlertUsecase(alertRepo, userRepo)

	server := httpapi.NewServer(cfg.HTTPAddr, statusUC, monitor, alertUC, logger)
	scheduler := sched.New(cfg.CheckSchedule, monitor, logger)

	cleanup := func() error {
		sqlDB, err := dbConn.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return &App{server: server, scheduler: scheduler, logger: logger, cleanupFn: cleanup}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("budgetguard service starting")
	if err := a.scheduler.Start(ctx); err != nil {
		return err
	}

	a.logger.Info("budgetguard service started")
	return a.server.Start(ctx)
}

func (a *App) Shutdown() {
	a.logger.Info("budgetguard service shutting down")
	a.scheduler.Stop()
	if a.cleanupFn != nil {
		if err := a.cleanupFn(); err != nil {
			a.logger.Warn("failed to close database", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
