package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/orders-next/internal/models"

	"github.com/shopspring/decimal"
)

func money(t *testing.T, s string) models.Money {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return models.NewMoneyFromDecimal(d)
}

func catalogProducts(t *testing.T) map[string]Product {
	return map[string]Product{
		"p-1": {ID: "p-1", Name: "Widget", Price: money(t, "19.99")},
		"p-2": {ID: "p-2", Name: "Gadget", Price: money(t, "5.00")},
	}
}

func newCatalogServer(t *testing.T, products map[string]Product, batchStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/products/batch", func(w http.ResponseWriter, r *http.Request) {
		if batchStatus != http.StatusOK {
			w.WriteHeader(batchStatus)
			return
		}
		var req struct {
			ProductIDs []string `json:"product_ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		found := []Product{}
		for _, id := range req.ProductIDs {
			if product, ok := products[id]; ok {
				found = append(found, product)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(found)
	})
	mux.HandleFunc("/api/v1/products/", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Path[len("/api/v1/products/"):]
		product, ok := products[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(product)
	})
	return httptest.NewServer(mux)
}

func TestGetProductsByIDsBatch(t *testing.T) {
	server := newCatalogServer(t, catalogProducts(t), http.StatusOK)
	defer server.Close()

	client, err := NewHTTPClient(Config{Endpoints: []string{server.URL}})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	got, err := client.GetProductsByIDs(context.Background(), []string{"p-1", "p-2", "missing"})
	if err != nil {
		t.Fatalf("GetProductsByIDs: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 products, got %d", len(got))
	}
	if got["p-1"].Name != "Widget" {
		t.Fatalf("unexpected product name: %q", got["p-1"].Name)
	}
	if _, ok := got["missing"]; ok {
		t.Fatalf("missing id should be absent from result")
	}
}

func TestGetProductsByIDsFallsBackToSingles(t *testing.T) {
	server := newCatalogServer(t, catalogProducts(t), http.StatusInternalServerError)
	defer server.Close()

	client, err := NewHTTPClient(Config{Endpoints: []string{server.URL}})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	got, err := client.GetProductsByIDs(context.Background(), []string{"p-1", "missing"})
	if err != nil {
		t.Fatalf("GetProductsByIDs: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 product, got %d", len(got))
	}
	if got["p-1"].Price.String() != "19.99" {
		t.Fatalf("unexpected price: %s", got["p-1"].Price.String())
	}
}

func TestGetProductByIDWalksEndpoints(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer dead.Close()
	server := newCatalogServer(t, catalogProducts(t), http.StatusOK)
	defer server.Close()

	client, err := NewHTTPClient(Config{Endpoints: []string{dead.URL, server.URL}})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	product, err := client.GetProductByID(context.Background(), "p-2")
	if err != nil {
		t.Fatalf("GetProductByID: %v", err)
	}
	if product == nil || product.Name != "Gadget" {
		t.Fatalf("unexpected product: %+v", product)
	}
}

func TestGetProductByIDNotFound(t *testing.T) {
	server := newCatalogServer(t, catalogProducts(t), http.StatusOK)
	defer server.Close()

	client, err := NewHTTPClient(Config{Endpoints: []string{server.URL}})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	product, err := client.GetProductByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetProductByID: %v", err)
	}
	if product != nil {
		t.Fatalf("expected nil product, got %+v", product)
	}
}

func TestAllEndpointsDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	server.Close()

	client, err := NewHTTPClient(Config{
		Endpoints: []string{server.URL},
		Timeout:   2 * time.Second,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.GetProductsByIDs(context.Background(), []string{"p-1"})
	if err == nil {
		t.Fatalf("expected error when every endpoint is down")
	}
}

func TestNewHTTPClientRequiresEndpoints(t *testing.T) {
	if _, err := NewHTTPClient(Config{}); err == nil {
		t.Fatalf("expected config error")
	}
}
