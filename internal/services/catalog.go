package services

import (
	"context"
	"net/url"

	"github.com/desertthunder/salonx/internal/cache"
	"github.com/desertthunder/salonx/internal/models"
)

const servicesKey = "services"

// Catalog is the facade over the service catalog.
type Catalog struct {
	client *Client
	list   *cache.Store[[]models.Service]
	byID   *cache.Store[*models.Service]
}

func NewCatalog(client *Client, cfg CacheConfig) *Catalog {
	opts := cfg.options("services")
	return &Catalog{
		client: client,
		list:   cache.New[[]models.Service]("services", cfg.Freshness, opts...),
		byID:   cache.New[*models.Service]("service", cfg.Freshness, opts...),
	}
}

// GetServices returns the full catalog (GET /servicios).
func (c *Catalog) GetServices(ctx context.Context) ([]models.Service, error) {
	return c.list.Fetch(ctx, servicesKey, func(ctx context.Context) ([]models.Service, error) {
		var services []models.Service
		if err := c.client.Get(ctx, "/servicios", nil, &services); err != nil {
			return nil, err
		}
		return services, nil
	})
}

// GetServiceByID returns one service (GET /servicios/{id}).
func (c *Catalog) GetServiceByID(ctx context.Context, id string) (*models.Service, error) {
	return c.byID.Fetch(ctx, id, func(ctx context.Context) (*models.Service, error) {
		var svc models.Service
		if err := c.client.Get(ctx, "/servicios/"+url.PathEscape(id), nil, &svc); err != nil {
			return nil, err
		}
		return &svc, nil
	})
}

func (c *Catalog) reset(ctx context.Context) {
	c.list.Clear(ctx)
	c.byID.Clear(ctx)
}
