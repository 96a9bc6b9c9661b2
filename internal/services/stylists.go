package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/desertthunder/salonx/internal/cache"
	"github.com/desertthunder/salonx/internal/models"
	"github.com/desertthunder/salonx/internal/shared"
	"golang.org/x/sync/errgroup"
)

const stylistsKey = "stylists"

func stylistEmailKey(email string) string {
	return "stylist_email_" + strings.ToLower(strings.TrimSpace(email))
}

// Stylists is the facade over the professionals of the salon.
type Stylists struct {
	client  *Client
	catalog *Catalog
	list    *cache.Store[[]models.Stylist]
	byID    *cache.Store[models.Stylist]
	emails  *cache.Store[struct{}]
}

func NewStylists(client *Client, catalog *Catalog, cfg CacheConfig) *Stylists {
	opts := cfg.options("stylists")
	return &Stylists{
		client:  client,
		catalog: catalog,
		list:    cache.New[[]models.Stylist]("stylists", cfg.Freshness, opts...),
		byID:    cache.New[models.Stylist]("stylist", cfg.Freshness, opts...),
		emails:  cache.New[struct{}]("stylist_email", cfg.Freshness, opts...),
	}
}

// GetStylists returns every stylist sorted by name (GET /profesionales) and refreshes the id mapping.
func (s *Stylists) GetStylists(ctx context.Context) ([]models.Stylist, error) {
	return s.list.Fetch(ctx, stylistsKey, s.fetchAll)
}

func (s *Stylists) fetchAll(ctx context.Context) ([]models.Stylist, error) {
	var stylists []models.Stylist
	if err := s.client.Get(ctx, "/profesionales", nil, &stylists); err != nil {
		return nil, err
	}

	sort.SliceStable(stylists, func(i, j int) bool {
		return strings.ToLower(stylists[i].Name) < strings.ToLower(stylists[j].Name)
	})

	seen := make(map[string]bool, len(stylists))
	for _, st := range stylists {
		s.byID.Set(st.ID, st)
		seen[st.ID] = true
	}
	for _, id := range s.byID.Keys() {
		if !seen[id] {
			s.byID.Delete(id)
		}
	}
	return stylists, nil
}

// GetStylistByID returns one stylist, from the mapping when fresh (GET /profesionales/{id}).
func (s *Stylists) GetStylistByID(ctx context.Context, id string) (*models.Stylist, error) {
	st, err := s.byID.Fetch(ctx, id, func(ctx context.Context) (models.Stylist, error) {
		var st models.Stylist
		if err := s.client.Get(ctx, "/profesionales/"+url.PathEscape(id), nil, &st); err != nil {
			return models.Stylist{}, err
		}
		return st, nil
	})
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", shared.ErrStylistNotFound, id)
		}
		return nil, err
	}
	return &st, nil
}

// GetStylistByEmail scans the mapping for email. The full list is refetched when the email key is stale.
func (s *Stylists) GetStylistByEmail(ctx context.Context, email string) (*models.Stylist, error) {
	key := stylistEmailKey(email)

	if s.emails.ShouldRefetch(key) {
		_, err := cache.Stale(
			func() ([]models.Stylist, error) {
				stylists, err := s.refresh(ctx)
				if err == nil {
					s.emails.Mark(key)
				}
				return stylists, err
			},
			func() ([]models.Stylist, bool) { return s.byID.Values(), s.byID.Len() > 0 },
		)
		if err != nil {
			return nil, err
		}
	}

	for _, st := range s.byID.Values() {
		if st.MatchesEmail(email) {
			return &st, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", shared.ErrStylistNotFound, email)
}

// refresh forces a full refetch and stamps the list.
func (s *Stylists) refresh(ctx context.Context) ([]models.Stylist, error) {
	stylists, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	s.list.Set(stylistsKey, stylists)
	for _, st := range stylists {
		s.emails.Mark(stylistEmailKey(st.Email))
	}
	return stylists, nil
}

// GetStylistServices returns the catalog services the stylist specializes in.
//
// The stylist and the catalog are fetched in parallel. A stylist with no specialties yields an empty slice even when the catalog is unavailable.
func (s *Stylists) GetStylistServices(ctx context.Context, stylistID string) ([]models.Service, error) {
	var (
		stylist    *models.Stylist
		catalog    []models.Service
		catalogErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		st, err := s.GetStylistByID(gctx, stylistID)
		if err != nil {
			return err
		}
		stylist = st
		return nil
	})
	g.Go(func() error {
		catalog, catalogErr = s.catalog.GetServices(gctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(stylist.Specialties) == 0 {
		return []models.Service{}, nil
	}
	if catalogErr != nil {
		return nil, catalogErr
	}

	specialties := stylist.SpecialtySet()
	services := make([]models.Service, 0, len(specialties))
	for _, svc := range catalog {
		if _, ok := specialties[svc.ID]; ok {
			services = append(services, svc)
		}
	}
	return services, nil
}

func (s *Stylists) reset(ctx context.Context) {
	s.list.Clear(ctx)
	s.byID.Clear(ctx)
	s.emails.Clear(ctx)
}
