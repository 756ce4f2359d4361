package port

import (
	"context"

	"github.com/rafaelleal24/stockledger/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

// StockChange is the outcome of one applied stock delta.
type StockChange struct {
	Product  domain.Product
	OldStock int
}

type ProductPort interface {
	// Create stores the product and assigns its ID. Fails with KindDuplicateSKU on a taken SKU.
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id domain.ID) (*domain.Product, error)
	GetAll(ctx context.Context) ([]*domain.Product, error)
	// Update replaces the stored product. Fails with KindDuplicateSKU if another product owns the SKU.
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id domain.ID) error
	// AdjustStock validates and applies a single delta atomically.
	AdjustStock(ctx context.Context, id domain.ID, delta int) (*StockChange, error)
	// ApplyStockDeltas validates every delta before applying any of them.
	ApplyStockDeltas(ctx context.Context, deltas []domain.StockDelta) ([]StockChange, error)
}
