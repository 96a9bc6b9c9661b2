package services

import (
	"context"
	"fmt"

	"github.com/desertthunder/salonx/internal/cache"
	"github.com/desertthunder/salonx/internal/models"
	"github.com/desertthunder/salonx/internal/shared"
)

const venuesKey = "venues"

// Venues is the facade over salon locations. Lookups scan the cached list.
type Venues struct {
	client *Client
	list   *cache.Store[[]models.Venue]
}

func NewVenues(client *Client, cfg CacheConfig) *Venues {
	return &Venues{
		client: client,
		list:   cache.New[[]models.Venue]("venues", cfg.Freshness, cfg.options("venues")...),
	}
}

// GetVenues returns every venue (GET /sedes).
func (v *Venues) GetVenues(ctx context.Context) ([]models.Venue, error) {
	return v.list.Fetch(ctx, venuesKey, func(ctx context.Context) ([]models.Venue, error) {
		var venues []models.Venue
		if err := v.client.Get(ctx, "/sedes", nil, &venues); err != nil {
			return nil, err
		}
		return venues, nil
	})
}

// GetVenueByID finds a venue by its _id.
func (v *Venues) GetVenueByID(ctx context.Context, id string) (*models.Venue, error) {
	return v.find(ctx, id, func(venue models.Venue) bool { return venue.ID == id })
}

// GetVenueByCode finds a venue by its sede_id code.
func (v *Venues) GetVenueByCode(ctx context.Context, code string) (*models.Venue, error) {
	return v.find(ctx, code, func(venue models.Venue) bool { return venue.Code == code })
}

func (v *Venues) find(ctx context.Context, ref string, match func(models.Venue) bool) (*models.Venue, error) {
	venues, err := v.GetVenues(ctx)
	if err != nil {
		return nil, err
	}
	for _, venue := range venues {
		if match(venue) {
			return &venue, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", shared.ErrVenueNotFound, ref)
}

func (v *Venues) reset(ctx context.Context) {
	v.list.Clear(ctx)
}
