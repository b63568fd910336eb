package service

import (
	"context"
	"time"

	"github.com/durgamdileep/product-auth-api/internal/core/domain"
	"github.com/durgamdileep/product-auth-api/internal/core/ports"
)

// ProductService implements the product operations. The route table already
// gates these paths; List re-checks its own guard so both layers must agree
// before anything is returned.
type ProductService struct {
	repo ports.ProductRepository
}

func NewProductService(repo ports.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) Create(ctx context.Context, in ports.ProductInput) (*domain.Product, error) {
	now := time.Now().UTC()
	product := &domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return s.repo.Create(ctx, product)
}

// List requires an authenticated principal holding PRODUCT_VIEW, evaluated
// here independently of the path-based policy table.
func (s *ProductService) List(ctx context.Context, principal *domain.Principal) ([]domain.Product, error) {
	if principal == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !principal.HasAuthority(domain.AuthorityProductView) {
		return nil, domain.ErrForbidden
	}
	return s.repo.FindAll(ctx)
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) Update(ctx context.Context, id string, in ports.ProductInput) (*domain.Product, error) {
	product := &domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		UpdatedAt:   time.Now().UTC(),
	}
	return s.repo.Update(ctx, id, product)
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
