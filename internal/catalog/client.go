package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/orders-next/internal/logger"
	"github.com/orders-next/internal/models"
)

var (
	ErrConfigInvalid   = errors.New("catalog config invalid")
	ErrUnavailable     = errors.New("catalog service unavailable")
	ErrResponseInvalid = errors.New("catalog response invalid")
)

const defaultTimeout = 30 * time.Second

// Product is a catalog product as returned by the products service.
type Product struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Price models.Money `json:"price"`
}

// Client resolves product data from the external catalog.
type Client interface {
	GetProductsByIDs(ctx context.Context, ids []string) (map[string]Product, error)
	GetProductByID(ctx context.Context, id string) (*Product, error)
}

// Config configures the HTTP catalog client. Endpoints are tried in order
// until one answers.
type Config struct {
	Endpoints []string
	Timeout   time.Duration
}

func (c *Config) normalize() {
	cleaned := make([]string, 0, len(c.Endpoints))
	for _, endpoint := range c.Endpoints {
		endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
		if endpoint != "" {
			cleaned = append(cleaned, endpoint)
		}
	}
	c.Endpoints = cleaned
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// HTTPClient is the HTTP implementation of Client.
type HTTPClient struct {
	endpoints []string
	client    *http.Client
}

// NewHTTPClient creates a catalog client.
func NewHTTPClient(cfg Config) (*HTTPClient, error) {
	cfg.normalize()
	if len(cfg.Endpoints) == 0 {
		return nil, fmt.Errorf("%w: no endpoints", ErrConfigInvalid)
	}
	return &HTTPClient{
		endpoints: cfg.Endpoints,
		client:    &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// GetProductsByIDs resolves products in one batch call. When the batch
// endpoint fails everywhere, it falls back to per-product lookups. Products
// missing from the catalog are absent from the result map.
func (c *HTTPClient) GetProductsByIDs(ctx context.Context, ids []string) (map[string]Product, error) {
	result := make(map[string]Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	products, err := c.fetchBatch(ctx, ids)
	if err == nil {
		for _, product := range products {
			result[product.ID] = product
		}
		return result, nil
	}
	logger.Warnw("catalog_batch_failed", "error", err, "id_count", len(ids))

	// Per-product fallback. A miss (404) is not an error; only a full
	// transport failure is.
	for _, id := range ids {
		product, err := c.GetProductByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if product != nil {
			result[product.ID] = *product
		}
	}
	return result, nil
}

// GetProductByID resolves a single product. Returns (nil, nil) when the
// catalog does not know the id.
func (c *HTTPClient) GetProductByID(ctx context.Context, id string) (*Product, error) {
	var lastErr error
	for _, base := range c.endpoints {
		endpoint := base + "/api/v1/products/" + id
		body, status, err := c.getJSON(ctx, endpoint)
		if err != nil {
			lastErr = err
			continue
		}
		if status == http.StatusNotFound {
			return nil, nil
		}
		if status < 200 || status >= 300 {
			lastErr = fmt.Errorf("http status %d", status)
			continue
		}
		var product Product
		if err := json.Unmarshal(body, &product); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
		}
		if product.ID == "" {
			product.ID = id
		}
		return &product, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

func (c *HTTPClient) fetchBatch(ctx context.Context, ids []string) ([]Product, error) {
	payload := map[string]interface{}{"product_ids": ids}
	var lastErr error
	for _, base := range c.endpoints {
		endpoint := base + "/api/v1/products/batch"
		body, err := c.postJSON(ctx, endpoint, payload)
		if err != nil {
			lastErr = err
			continue
		}
		var products []Product
		if err := json.Unmarshal(body, &products); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
		}
		return products, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

func (c *HTTPClient) postJSON(ctx context.Context, endpoint string, params map[string]interface{}) ([]byte, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("http status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func (c *HTTPClient) getJSON(ctx context.Context, endpoint string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}
