package product

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"storefront/internal/cache"
)

const (
	listCacheTTL     = 5 * time.Minute
	listVersionKey   = "products:ver"
	defaultListLimit = 20
	maxListLimit     = 100
)

// Publisher receives a notification after a product is committed. Used to push
// the new listing to connected grid clients.
type Publisher interface {
	ProductCreated(p *Product)
}

type Service struct {
	repo  Repository
	cache *cache.Client // nil disables caching
	feed  Publisher     // nil disables live events
}

func NewService(repo Repository, cache *cache.Client, feed Publisher) *Service {
	return &Service{repo: repo, cache: cache, feed: feed}
}

// Create validates the payload, derives the persisted image set from the
// client's upload entries and writes everything atomically. Entries that never
// finished uploading are dropped silently; only a fully empty usable set is an
// error.
func (s *Service) Create(ctx context.Context, req *CreateProductRequest) (*Product, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	done := make([]ProductImage, 0, len(req.Images))
	hasExplicitPrimary := false
	for _, img := range req.Images {
		if !img.Done() {
			continue
		}

		row := ProductImage{
			Key:       img.Key,
			Alt:       img.Alt,
			Mime:      img.Mime,
			Ordering:  len(done),
			IsPrimary: img.IsPrimary != nil && *img.IsPrimary,
		}
		if img.Ordering != nil {
			row.Ordering = *img.Ordering
		}
		if img.URL != "" {
			url := img.URL
			row.URL = &url
		}
		if row.Key == "" {
			// url-only entry; keep the url as the key so the row satisfies
			// the not-null constraint
			row.Key = img.URL
		}
		if row.IsPrimary {
			hasExplicitPrimary = true
		}
		done = append(done, row)
	}
	if len(done) == 0 {
		return nil, ErrNoUsableImages
	}
	if !hasExplicitPrimary {
		done[0].IsPrimary = true
	}

	p := &Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       strings.TrimSpace(req.Price),
		Currency:    strings.TrimSpace(req.Currency),
	}

	if _, err := s.repo.CreateWithImages(ctx, p, done); err != nil {
		return nil, fmt.Errorf("failed to persist product: %w", err)
	}
	p.Images = done

	s.invalidateListCache(ctx)
	if s.feed != nil {
		s.feed.ProductCreated(p)
	}

	return p, nil
}

// List serves the storefront grid. Reads go through the redis cache when one
// is configured; misses fall back to the DB and repopulate.
func (s *Service) List(ctx context.Context, page, limit int) ([]Product, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := (page - 1) * limit

	key := s.listCacheKey(ctx, page, limit)
	if cached, err := s.cache.Get(ctx, key); err == nil {
		var products []Product
		if err := json.Unmarshal([]byte(cached), &products); err == nil {
			return products, nil
		}
	}

	products, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(products); err == nil {
		if err := s.cache.Set(ctx, key, data, listCacheTTL); err != nil {
			log.Printf("product list cache set failed: %v", err)
		}
	}

	return products, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

// listCacheKey stamps the current listing version into the key, so a single
// counter bump invalidates every cached page at once.
func (s *Service) listCacheKey(ctx context.Context, page, limit int) string {
	ver, err := s.cache.Get(ctx, listVersionKey)
	if err != nil {
		ver = "0"
	}
	return fmt.Sprintf("products:v%s:p%d:l%d", ver, page, limit)
}

func (s *Service) invalidateListCache(ctx context.Context) {
	if _, err := s.cache.Incr(ctx, listVersionKey); err != nil {
		log.Printf("product list cache invalidation failed: %v", err)
	}
}

func validateCreate(req *CreateProductRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return ErrNameRequired
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(req.Price), 64)
	if err != nil || price <= 0 {
		return ErrInvalidPrice
	}
	if strings.TrimSpace(req.Currency) == "" {
		return ErrCurrencyRequired
	}
	if len(req.Images) == 0 {
		return ErrNoUsableImages
	}
	return nil
}
