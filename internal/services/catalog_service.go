package services

import (
	"sync"
	"time"

	"shopfront/internal/domain"
)

// ProductSource is the remote catalog; *catalogapi.Client satisfies it.
type ProductSource interface {
	FetchProducts(p domain.ProductsParams) (domain.ProductsResponse, error)
	CreateProduct(req domain.ProductCreationRequest) (domain.CreatedProduct, error)
}

const DefaultStale = 5 * time.Minute

type listEntry struct {
	products  []domain.Product
	fetchedAt time.Time
}

// CatalogService caches product listings per page size for Stale and drops the
// cache whenever a product is created.
type CatalogService struct {
	API   ProductSource
	Stale time.Duration
	Now   func() time.Time

	mu    sync.RWMutex
	lists map[int]listEntry
	gen   uint64 // bumped by Invalidate
}

func NewCatalogService(api ProductSource, stale time.Duration) *CatalogService {
	if stale <= 0 {
		stale = DefaultStale
	}
	return &CatalogService{API: api, Stale: stale, Now: time.Now, lists: map[int]listEntry{}}
}

func (s *CatalogService) ListProducts(limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = domain.DefaultLimit
	}
	products, gen, ok := s.cached(limit)
	if ok {
		return products, nil
	}

	res, err := s.API.FetchProducts(domain.ProductsParams{Limit: limit})
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	// a create that finished during the fetch makes this result stale
	if s.gen == gen {
		s.lists[limit] = listEntry{products: res.Products, fetchedAt: s.Now()}
	}
	s.mu.Unlock()
	return res.Products, nil
}

func (s *CatalogService) cached(limit int) ([]domain.Product, uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.lists[limit]
	if !ok || s.Now().Sub(e.fetchedAt) >= s.Stale {
		return nil, s.gen, false
	}
	return e.products, s.gen, true
}

func (s *CatalogService) CreateProduct(req domain.ProductCreationRequest) (domain.CreatedProduct, error) {
	created, err := s.API.CreateProduct(req)
	if err != nil {
		return domain.CreatedProduct{}, err
	}
	s.Invalidate()
	return created, nil
}

// Invalidate forgets every cached listing.
func (s *CatalogService) Invalidate() {
	s.mu.Lock()
	s.lists = map[int]listEntry{}
	s.gen++
	s.mu.Unlock()
}
