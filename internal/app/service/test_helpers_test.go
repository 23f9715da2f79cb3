package service

import (
	"context"
	"sync"
	"time"

	"reviro_api/internal/common"
	"reviro_api/internal/domain/model"
	"reviro_api/internal/domain/repository"
)

// In-memory repository doubles implementing the same contracts as the pg
// repositories. Kept concurrency-safe so tests can exercise parallel calls.

type memUserRepository struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*model.User
}

func newMemUserRepository() *memUserRepository {
	return &memUserRepository{users: make(map[int64]*model.User)}
}

func (r *memUserRepository) Create(_ context.Context, user *model.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return 0, common.ErrConflict
		}
	}
	r.nextID++
	stored := *user
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.users[stored.ID] = &stored
	return stored.ID, nil
}

func (r *memUserRepository) FindByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memUserRepository) FindByID(_ context.Context, id int64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, common.ErrNotFound
}

type memRefreshTokenRepository struct {
	mu      sync.Mutex
	nextID  int64
	records map[string]*model.RefreshToken
}

func newMemRefreshTokenRepository() *memRefreshTokenRepository {
	return &memRefreshTokenRepository{records: make(map[string]*model.RefreshToken)}
}

func (r *memRefreshTokenRepository) Store(_ context.Context, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.records[token] = &model.RefreshToken{ID: r.nextID, Token: token, ExpiresAt: expiresAt}
	return nil
}

func (r *memRefreshTokenRepository) Find(_ context.Context, token string) (*model.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.records[token]; ok {
		copied := *rec
		return &copied, nil
	}
	return nil, common.ErrNotFound
}

func (r *memRefreshTokenRepository) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, token)
	return nil
}

func (r *memRefreshTokenRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for token, rec := range r.records {
		if rec.ExpiresAt.Before(now) {
			delete(r.records, token)
			count++
		}
	}
	return count, nil
}

func (r *memRefreshTokenRepository) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

type memCompanyRepository struct {
	mu        sync.Mutex
	nextID    int64
	companies map[int64]*model.Company
}

func newMemCompanyRepository() *memCompanyRepository {
	return &memCompanyRepository{companies: make(map[int64]*model.Company)}
}

func (r *memCompanyRepository) Create(_ context.Context, company *model.Company) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	stored := *company
	stored.ID = r.nextID
	r.companies[stored.ID] = &stored
	return stored.ID, nil
}

func (r *memCompanyRepository) FindByID(_ context.Context, id int64) (*model.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.companies[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, common.ErrNotFound
}

func (r *memCompanyRepository) List(_ context.Context, skip, limit int) ([]model.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Company{}
	for id := int64(1); id <= r.nextID; id++ {
		if c, ok := r.companies[id]; ok {
			out = append(out, *c)
		}
	}
	if skip >= len(out) {
		return []model.Company{}, nil
	}
	out = out[skip:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memCompanyRepository) Update(_ context.Context, company *model.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[company.ID]; !ok {
		return common.ErrNotFound
	}
	stored := *company
	r.companies[company.ID] = &stored
	return nil
}

func (r *memCompanyRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.companies, id)
	return nil
}

type memProductRepository struct {
	mu       sync.Mutex
	nextID   int64
	products map[int64]*model.Product
}

func newMemProductRepository() *memProductRepository {
	return &memProductRepository{products: make(map[int64]*model.Product)}
}

func (r *memProductRepository) Create(_ context.Context, product *model.Product) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	stored := *product
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.products[stored.ID] = &stored
	return stored.ID, nil
}

func (r *memProductRepository) FindByID(_ context.Context, companyID, productID int64) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[productID]; ok && p.CompanyID == companyID {
		copied := *p
		return &copied, nil
	}
	return nil, common.ErrNotFound
}

func (r *memProductRepository) ListByCompany(_ context.Context, companyID int64, skip, limit int) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Product{}
	for id := int64(1); id <= r.nextID; id++ {
		if p, ok := r.products[id]; ok && p.CompanyID == companyID {
			out = append(out, *p)
		}
	}
	if skip >= len(out) {
		return []model.Product{}, nil
	}
	out = out[skip:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memProductRepository) Update(_ context.Context, product *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[product.ID]; !ok || p.CompanyID != product.CompanyID {
		return common.ErrNotFound
	}
	stored := *product
	stored.UpdatedAt = time.Now()
	r.products[product.ID] = &stored
	return nil
}

func (r *memProductRepository) Delete(_ context.Context, companyID, productID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[productID]; !ok || p.CompanyID != companyID {
		return common.ErrNotFound
	}
	delete(r.products, productID)
	return nil
}

var (
	_ repository.UserRepository         = (*memUserRepository)(nil)
	_ repository.RefreshTokenRepository = (*memRefreshTokenRepository)(nil)
	_ repository.CompanyRepository      = (*memCompanyRepository)(nil)
	_ repository.ProductRepository      = (*memProductRepository)(nil)
)
