// Package client wraps the external UBL document APIs behind narrow
// contracts: invoice XML in, invoice id out; despatch payload in, advice out.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/notuna/order-service/internal/config"
	"github.com/notuna/order-service/internal/ubl"
	"github.com/notuna/order-service/pkg/utils"
)

const requestTimeout = 30 * time.Second

type DocumentsClient struct {
	logger *slog.Logger
	http   *http.Client
	cfg    config.DocsAPI
}

func NewDocumentsClient(logger *slog.Logger, cfg config.DocsAPI) *DocumentsClient {
	return &DocumentsClient{
		logger: logger.With(slog.String("component", "docs_client")),
		http:   &http.Client{Timeout: requestTimeout},
		cfg:    cfg,
	}
}

type invoiceResponse struct {
	InvoiceID string `json:"invoiceId"`
}

// GenerateInvoice posts the purchase order XML and returns the invoice id the
// API assigned.
func (c *DocumentsClient) GenerateInvoice(ctx context.Context, invoiceXML []byte) (string, error) {
	var invoiceID string

	fn := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.InvoiceURL, bytes.NewReader(invoiceXML))
		if err != nil {
			return fmt.Errorf("failed to build invoice request: %w", err)
		}
		req.Header.Set("Content-Type", "application/xml")
		if c.cfg.InvoiceAPIKey != "" {
			req.Header.Set("X-API-Key", c.cfg.InvoiceAPIKey)
		}
		if c.cfg.InvoiceUserEmail != "" {
			req.Header.Set("X-User-Email", c.cfg.InvoiceUserEmail)
		}

		res, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("invoice request failed: %w", err)
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(res.Body)
			c.logger.ErrorContext(ctx, "invoice api error",
				slog.Int("status", res.StatusCode), slog.String("body", string(body)))
			return fmt.Errorf("invoice api returned status %d", res.StatusCode)
		}

		var parsed invoiceResponse
		if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
			return fmt.Errorf("failed to decode invoice response: %w", err)
		}
		invoiceID = parsed.InvoiceID
		return nil
	}

	if err := utils.Retry(retryConfig(), fn); err != nil {
		return "", err
	}
	return invoiceID, nil
}

// GenerateDespatch posts the despatch payload and returns the advice object
// as the API produced it.
func (c *DocumentsClient) GenerateDespatch(ctx context.Context, payload ubl.DespatchRequest) (map[string]any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal despatch payload: %w", err)
	}

	var advice map[string]any

	fn := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.DespatchURL, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("failed to build despatch request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		res, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("despatch request failed: %w", err)
		}
		defer res.Body.Close()

		if res.StatusCode < 200 || res.StatusCode >= 300 {
			c.logger.ErrorContext(ctx, "despatch api error", slog.Int("status", res.StatusCode))
			return fmt.Errorf("despatch api returned status %d", res.StatusCode)
		}

		if err := json.NewDecoder(res.Body).Decode(&advice); err != nil {
			return fmt.Errorf("failed to decode despatch response: %w", err)
		}
		return nil
	}

	if err := utils.Retry(retryConfig(), fn); err != nil {
		return nil, err
	}
	return advice, nil
}

func retryConfig() utils.RetryConfig {
	return utils.RetryConfig{
		InitialDelay: 100 * time.Millisecond,
		MaxAttempts:  3,
		Multiplier:   2,
	}
}
