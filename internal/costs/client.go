package costs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/denisok6893-rgb/property-insights/internal/logger"
)

const endpointPath = "/hidden-costs-calculator"

// Estimator computes a hidden-costs breakdown.
type Estimator interface {
	Estimate(ctx context.Context, req Request) (Breakdown, error)
}

// Local runs the calculation in process.
type Local struct{}

func (Local) Estimate(_ context.Context, req Request) (Breakdown, error) {
	return Calculate(req)
}

// Client calls a remote hidden-costs calculator and falls back to the
// local calculation when the remote call fails for any reason.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Estimate(ctx context.Context, req Request) (Breakdown, error) {
	// Invalid input is rejected locally; the remote would return 400 anyway.
	local, err := Calculate(req)
	if err != nil {
		return Breakdown{}, err
	}

	log := logger.FromContext(ctx).With(slog.String("component", "costs_client"))

	remote, err := c.post(ctx, req)
	if err != nil {
		log.Warn("remote hidden costs calculator failed, using local result", logger.Err(err))
		return local, nil
	}
	log.Debug("remote hidden costs calculator answered", slog.Int64("total_one_time", remote.TotalOneTimeCosts))
	return remote, nil
}

func (c *Client) post(ctx context.Context, req Request) (Breakdown, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Breakdown{}, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpointPath, bytes.NewReader(body))
	if err != nil {
		return Breakdown{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if traceID := logger.TraceIDFromContext(ctx); traceID != "" {
		httpReq.Header.Set("X-Trace-ID", traceID)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Breakdown{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return Breakdown{}, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out Breakdown
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Breakdown{}, fmt.Errorf("decode response: %w", err)
	}
	if err := checkBreakdown(out, req); err != nil {
		return Breakdown{}, err
	}
	return out, nil
}

// checkBreakdown rejects remote answers that cannot belong to req, such as
// an empty object decoded into zero values.
func checkBreakdown(b Breakdown, req Request) error {
	switch {
	case b.StampDutyRate <= 0 || b.RegistrationRate <= 0:
		return errors.New("implausible response: missing rates")
	case b.StampDuty < 0 || b.Registration < 0 || b.GST < 0:
		return errors.New("implausible response: negative amounts")
	case b.TotalAllInPrice < int64(req.PropertyPrice):
		return fmt.Errorf("implausible response: all-in price %d below price", b.TotalAllInPrice)
	}
	return nil
}
