package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/desertthunder/salonx/internal/cache"
	"github.com/desertthunder/salonx/internal/models"
	"github.com/desertthunder/salonx/internal/shared"
)

func fichasKey(clientID string) string { return "fichas_" + clientID }

// Fichas is the facade over client service records.
type Fichas struct {
	client *Client
	lists  *cache.Store[[]models.Ficha]
	byID   *cache.Store[*models.Ficha]
}

func NewFichas(client *Client, cfg CacheConfig) *Fichas {
	opts := cfg.options("fichas")
	return &Fichas{
		client: client,
		lists:  cache.New[[]models.Ficha]("fichas", cfg.Freshness, opts...),
		byID:   cache.New[*models.Ficha]("ficha", cfg.Freshness, opts...),
	}
}

// GetFichas lists the client's records (GET /fichas?cliente_id=).
func (f *Fichas) GetFichas(ctx context.Context, clientID string) ([]models.Ficha, error) {
	return f.lists.Fetch(ctx, fichasKey(clientID), func(ctx context.Context) ([]models.Ficha, error) {
		query := url.Values{}
		if clientID != "" {
			query.Set("cliente_id", clientID)
		}
		var fichas []models.Ficha
		if err := f.client.Get(ctx, "/fichas", query, &fichas); err != nil {
			return nil, err
		}
		return fichas, nil
	})
}

// GetFichaByID returns one record (GET /fichas/{id}).
func (f *Fichas) GetFichaByID(ctx context.Context, id string) (*models.Ficha, error) {
	return f.byID.Fetch(ctx, id, func(ctx context.Context) (*models.Ficha, error) {
		var ficha models.Ficha
		if err := f.client.Get(ctx, "/fichas/"+url.PathEscape(id), nil, &ficha); err != nil {
			return nil, err
		}
		return &ficha, nil
	})
}

// CreateFicha uploads a record with its before/after photos as multipart form data (POST /fichas).
func (f *Fichas) CreateFicha(ctx context.Context, in models.NewFicha) (*models.Ficha, error) {
	if in.ClientID == "" || in.StylistID == "" {
		return nil, fmt.Errorf("%w: client and stylist are required", shared.ErrMissingArgument)
	}

	files := make([]FormFile, 0, len(in.PhotosBefore)+len(in.PhotosAfter))
	for _, p := range in.PhotosBefore {
		files = append(files, FormFile{Field: "fotos_antes", Filename: p.Name, Data: p.Data})
	}
	for _, p := range in.PhotosAfter {
		files = append(files, FormFile{Field: "fotos_despues", Filename: p.Name, Data: p.Data})
	}

	var ficha models.Ficha
	if err := f.client.PostMultipart(ctx, "/fichas", in.Fields(), files, &ficha); err != nil {
		return nil, err
	}

	f.lists.Invalidate(ctx, fichasKey(in.ClientID))
	return &ficha, nil
}

func (f *Fichas) reset(ctx context.Context) {
	f.lists.Clear(ctx)
	f.byID.Clear(ctx)
}
