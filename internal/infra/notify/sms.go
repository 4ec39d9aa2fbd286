package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SMSSender delivers alert texts through an HTTP SMS gateway. The client
// timeout is the delivery timeout; hitting it is an ordinary failure.
type SMSSender struct {
	baseURL string
	apiKey  string
	from    string
	client  *http.Client
	logger  *zap.Logger
}

func NewSMSSender(baseURL, apiKey, from string, timeout time.Duration, logger *zap.Logger) *SMSSender {
	return &SMSSender{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		from:    from,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type smsRequest struct {
	To   string `json:"to"`
	From string `json:"from"`
	Body string `json:"body"`
}

func (s *SMSSender) SendSMS(ctx context.Context, phoneNumber, message string) error {
	payload, err := json.Marshal(smsRequest{To: phoneNumber, From: s.from, Body: message})
	if err != nil {
		return err
	}

	endpoint := s.baseURL + "/messages"
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		request.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	start := time.Now()
	s.logger.Info("sms send start", zap.String("to", phoneNumber))
	response, err := s.client.Do(request)
	if err != nil {
		s.logger.Warn("sms send failed", zap.String("to", phoneNumber), zap.Error(err))
		return err
	}
	defer response.Body.Close()

	s.logger.Info("sms send complete",
		zap.String("to", phoneNumber),
		zap.Int("status", response.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("sms gateway: status %d", response.StatusCode)
	}
	return nil
}
