package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/finflow/budgetguard/internal/usecase"
	"go.uber.org/zap"
)

// Server is the thin JSON API over the monitoring core.
type Server struct {
	status  *usecase.StatusUsecase
	monitor *usecase.Monitor
	alerts  *usecase.AlertUsecase
	logger  *zap.Logger
	http    *http.Server
}

func NewServer(addr string, status *usecase.StatusUsecase, monitor *usecase.Monitor, alerts *usecase.AlertUsecase, logger *zap.Logger) *Server {
	s := &Server{
		status:  status,
		monitor: monitor,
		alerts:  alerts,
		logger:  logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /v1/budgets/{id}/status", s.handleBudgetStatus)
	mux.HandleFunc("POST /v1/budgets/{id}/check", s.handleBudgetCheck)
	mux.HandleFunc("GET /v1/alerts", s.handleListAlerts)
	mux.HandleFunc("POST /v1/alerts/{id}/ack", s.handleAcknowledgeAlert)

	s.http = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Info("http server started", zap.String("addr", s.http.Addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
