package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/desertthunder/salonx/internal/cache"
	"github.com/desertthunder/salonx/internal/models"
	"github.com/desertthunder/salonx/internal/shared"
)

func blocksKey(stylistID string) string { return "blocks_" + stylistID }

// Blocks is the facade over agenda blocks.
type Blocks struct {
	client *Client
	lists  *cache.Store[[]models.Block]
	byID   *cache.Store[*models.Block]
}

func NewBlocks(client *Client, cfg CacheConfig) *Blocks {
	opts := cfg.options("blocks")
	return &Blocks{
		client: client,
		lists:  cache.New[[]models.Block]("blocks", cfg.Freshness, opts...),
		byID:   cache.New[*models.Block]("block", cfg.Freshness, opts...),
	}
}

// GetBlocks lists the stylist's blocks (GET /bloqueos?profesional_id=).
func (b *Blocks) GetBlocks(ctx context.Context, stylistID string) ([]models.Block, error) {
	return b.lists.Fetch(ctx, blocksKey(stylistID), func(ctx context.Context) ([]models.Block, error) {
		query := url.Values{}
		if stylistID != "" {
			query.Set("profesional_id", stylistID)
		}
		var blocks []models.Block
		if err := b.client.Get(ctx, "/bloqueos", query, &blocks); err != nil {
			return nil, err
		}
		return blocks, nil
	})
}

// GetBlockByID returns one block (GET /bloqueos/{id}).
func (b *Blocks) GetBlockByID(ctx context.Context, id string) (*models.Block, error) {
	return b.byID.Fetch(ctx, id, func(ctx context.Context) (*models.Block, error) {
		var block models.Block
		if err := b.client.Get(ctx, "/bloqueos/"+url.PathEscape(id), nil, &block); err != nil {
			return nil, err
		}
		return &block, nil
	})
}

// CreateBlock posts a block (POST /bloqueos) and invalidates the stylist's block list.
func (b *Blocks) CreateBlock(ctx context.Context, in models.NewBlock) (*models.Block, error) {
	if in.StylistID == "" || in.Date == "" || in.StartTime == "" || in.EndTime == "" {
		return nil, fmt.Errorf("%w: stylist, date, start and end are required", shared.ErrMissingArgument)
	}

	var block models.Block
	if err := b.client.Post(ctx, "/bloqueos", in, &block); err != nil {
		return nil, err
	}

	b.lists.Invalidate(ctx, blocksKey(in.StylistID))
	return &block, nil
}

func (b *Blocks) reset(ctx context.Context) {
	b.lists.Clear(ctx)
	b.byID.Clear(ctx)
}
