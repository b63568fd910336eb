package ports

import (
	"context"

	"github.com/durgamdileep/product-auth-api/internal/core/domain"
)

// ProductInput carries the writable product fields.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
}

// ProductService exposes the product operations gated by the route policies.
// List additionally enforces its own guard (PRODUCT_VIEW and an
// authenticated principal) independently of the route table.
type ProductService interface {
	Create(ctx context.Context, in ProductInput) (*domain.Product, error)
	List(ctx context.Context, principal *domain.Principal) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, id string, in ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
