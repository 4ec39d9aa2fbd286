package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/finflow/budgetguard/internal/domain"
	"github.com/finflow/budgetguard/internal/usecase"
	"go.uber.org/zap"
)

type statusResponse struct {
	Limit       string  `json:"limit"`
	Spent       string  `json:"spent"`
	Remaining   string  `json:"remaining"`
	OverBudget  bool    `json:"over_budget"`
	PercentUsed float64 `json:"percentage_used"`
}

type alertResponse struct {
	ID           uint       `json:"id"`
	BudgetID     uint       `json:"budget_id"`
	BudgetName   string     `json:"budget_name"`
	BudgetScope  string     `json:"budget_scope"`
	GroupName    string     `json:"group_name,omitempty"`
	Channel      string     `json:"channel"`
	Threshold    int        `json:"threshold"`
	Status       string     `json:"status"`
	SentAt       *time.Time `json:"sent_at,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
	Spent        string     `json:"spent"`
	Limit        string     `json:"limit"`
	PercentUsed  float64    `json:"percentage_used"`
	Period       string     `json:"period"`
	Acknowledged bool       `json:"acknowledged"`
	CreatedAt    time.Time  `json:"created_at"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleBudgetStatus(w http.ResponseWriter, r *http.Request) {
	budgetID, ok := pathID(w, r)
	if !ok {
		return
	}

	status, err := s.status.GetStatus(r.Context(), budgetID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Limit:       usecase.FormatMinor(status.LimitMinor),
		Spent:       usecase.FormatMinor(status.SpentMinor),
		Remaining:   usecase.FormatMinor(status.RemainingMinor),
		OverBudget:  status.OverBudget,
		PercentUsed: status.PercentUsed,
	})
}

func (s *Server) handleBudgetCheck(w http.ResponseWriter, r *http.Request) {
	budgetID, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.monitor.CheckThresholds(r.Context(), budgetID); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUint(r.URL.Query().Get("user_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing or invalid user_id"})
		return
	}

	filter, err := parseAlertFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	views, err := s.alerts.ListAlerts(r.Context(), userID, filter)
	if err != nil {
		s.writeError(w, err)
		return
	}

	responses := make([]alertResponse, 0, len(views))
	for _, view := range views {
		responses = append(responses, mapAlertResponse(view))
	}
	writeJSON(w, http.StatusOK, responses)
}

func (s *Server) handleAcknowledgeAlert(w http.ResponseWriter, r *http.Request) {
	alertID, ok := pathID(w, r)
	if !ok {
		return
	}
	userID, err := parseUint(r.URL.Query().Get("user_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing or invalid user_id"})
		return
	}

	alert, err := s.alerts.AcknowledgeAlert(r.Context(), alertID, userID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	view := domain.AlertView{Alert: *alert}
	writeJSON(w, http.StatusOK, mapAlertResponse(view))
}

func parseAlertFilter(r *http.Request) (domain.AlertFilter, error) {
	var filter domain.AlertFilter
	query := r.URL.Query()

	if raw := query.Get("budget_id"); raw != "" {
		id, err := parseUint(raw)
		if err != nil {
			return filter, errors.New("invalid budget_id")
		}
		filter.BudgetID = &id
	}
	if raw := query.Get("status"); raw != "" {
		status := domain.AlertStatus(raw)
		switch status {
		case domain.AlertPending, domain.AlertSent, domain.AlertFailed:
			filter.Status = &status
		default:
			return filter, errors.New("invalid status")
		}
	}
	if raw := query.Get("threshold"); raw != "" {
		threshold, err := strconv.Atoi(raw)
		if err != nil {
			return filter, errors.New("invalid threshold")
		}
		filter.Threshold = &threshold
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return filter, errors.New("invalid limit")
		}
		filter.Limit = limit
	}
	return filter, nil
}

func mapAlertResponse(view domain.AlertView) alertResponse {
	return alertResponse{
		ID:           view.ID,
		BudgetID:     view.BudgetID,
		BudgetName:   view.BudgetName,
		BudgetScope:  string(view.BudgetScope),
		GroupName:    view.GroupName,
		Channel:      string(view.Channel),
		Threshold:    view.Threshold,
		Status:       string(view.Status),
		SentAt:       view.SentAt,
		ErrorMessage: view.ErrorMessage,
		Spent:        usecase.FormatMinor(view.SpentMinor),
		Limit:        usecase.FormatMinor(view.LimitMinor),
		PercentUsed:  view.PercentUsed,
		Period:       view.PeriodKey,
		Acknowledged: view.Acknowledged,
		CreatedAt:    view.CreatedAt,
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrBudgetNotFound),
		errors.Is(err, usecase.ErrAlertNotFound),
		errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrBadRequest):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		s.logger.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := parseUint(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func parseUint(raw string) (uint, error) {
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}
