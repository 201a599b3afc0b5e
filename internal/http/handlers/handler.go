package handlers

import (
	"github.com/orders-next/internal/provider"
)

// Handler bundles the HTTP handlers over the service container.
type Handler struct {
	*provider.Container
}

// New creates the handler set.
func New(c *provider.Container) *Handler {
	return &Handler{
		Container: c,
	}
}
