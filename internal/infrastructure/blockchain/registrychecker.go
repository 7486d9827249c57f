package blockchain

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/walletnames/registrar/internal/application/purchase/chain"
	"github.com/walletnames/registrar/internal/shared/logger"
)

const (
	defaultRegistryTimeout = 10 * time.Second
	// Error bodies are only read for diagnostics.
	maxRegistryErrorBody = 4 << 10
)

// RegistryChecker queries the name registry indexer over HTTP.
// GET {endpoint}/accounts/{name} answers 200 when the name exists and 404
// when it is free. Anything else is treated as the registry being unavailable.
type RegistryChecker struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     logger.Interface
}

var _ chain.RegistrationChecker = (*RegistryChecker)(nil)

func NewRegistryChecker(endpoint, apiKey string, timeout time.Duration, logger logger.Interface) *RegistryChecker {
	if timeout <= 0 {
		timeout = defaultRegistryTimeout
	}
	return &RegistryChecker{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (c *RegistryChecker) IsRegistered(ctx context.Context, name string) (bool, error) {
	reqURL := fmt.Sprintf("%s/accounts/%s", c.endpoint, url.PathEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to query registry: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		c.logger.Debugw("name found in registry", "name", name)
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxRegistryErrorBody))
		c.logger.Warnw("unexpected registry response",
			"name", name,
			"status", resp.StatusCode,
			"body", string(body),
		)
		return false, fmt.Errorf("registry returned status %d", resp.StatusCode)
	}
}
