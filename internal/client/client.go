package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	queryTimeout  = 10 * time.Second
	reportTimeout = 30 * time.Second
)

// Client is a thin HTTP client for the CRM API, used by background jobs
// which hit the same operation surface as any external caller. All calls
// carry client-side timeouts; transport failures come back as plain errors
// for the caller to log and skip.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates an API client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: reportTimeout,
		},
	}
}

// LowStockProduct is the subset of product fields the low-stock job logs.
type LowStockProduct struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Stock int       `json:"stock"`
}

// LowStockResult is the low-stock corrective mutation response.
type LowStockResult struct {
	UpdatedProducts []LowStockProduct `json:"updated_products"`
	Count           int               `json:"count"`
	Message         string            `json:"message"`
	Success         bool              `json:"success"`
}

// ReportSummary mirrors the report endpoint payload.
type ReportSummary struct {
	TotalCustomers int             `json:"total_customers"`
	TotalOrders    int             `json:"total_orders"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
}

// Ping checks API liveness via the health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to build health request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health endpoint returned HTTP %d", resp.StatusCode)
	}

	return nil
}

// UpdateLowStockProducts invokes the low-stock corrective mutation.
func (c *Client) UpdateLowStockProducts(ctx context.Context) (*LowStockResult, error) {
	ctx, cancel := context.WithTimeout(ctx, reportTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/products/restock-low-stock", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build low-stock request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("low-stock request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("low-stock endpoint returned HTTP %d", resp.StatusCode)
	}

	result := &LowStockResult{}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return nil, fmt.Errorf("failed to decode low-stock response: %w", err)
	}

	return result, nil
}

// ReportSummary fetches the aggregated CRM statistics.
func (c *Client) ReportSummary(ctx context.Context) (*ReportSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, reportTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/reports/summary", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build report request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("report request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("report endpoint returned HTTP %d", resp.StatusCode)
	}

	summary := &ReportSummary{}
	if err := json.NewDecoder(resp.Body).Decode(summary); err != nil {
		return nil, fmt.Errorf("failed to decode report response: %w", err)
	}

	return summary, nil
}
