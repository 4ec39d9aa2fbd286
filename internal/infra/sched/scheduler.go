package sched

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Checker is the monitoring entry point the scheduler drives.
type Checker interface {
	CheckAll(ctx context.Context)
}

// Scheduler runs the budget sweep on a cron cadence.
type Scheduler struct {
	cron    *cron.Cron
	spec    string
	checker Checker
	logger  *zap.Logger
}

func New(spec string, checker Checker, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		spec:    spec,
		checker: checker,
		logger:  logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.logger.Debug("scheduled budget sweep start")
		s.checker.CheckAll(ctx)
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("scheduler started", zap.String("spec", s.spec))
	return nil
}

// Stop halts the cron loop and waits for an in-flight sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}
