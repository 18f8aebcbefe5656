package service

import (
	"context"

	"go.uber.org/zap"

	"modual-backend/internal/domain"
	"modual-backend/internal/product"
)

// ProductService stellt Produktliste und Produktseiten bereit.
type ProductService struct {
	loader Loader[[]domain.Product]
	logger *zap.Logger
}

func NewProductService(loader Loader[[]domain.Product], logger *zap.Logger) *ProductService {
	return &ProductService{loader: loader, logger: logger}
}

// Products lädt die Produktliste, bei refresh unter Umgehung des Caches.
func (s *ProductService) Products(ctx context.Context, refresh bool) ([]domain.Product, Meta, error) {
	return load(ctx, s.loader, refresh)
}

// Page baut die Produktseite für identifier (Name oder Index).
func (s *ProductService) Page(ctx context.Context, identifier string) (product.Page, Meta, error) {
	products, meta, err := load(ctx, s.loader, false)
	if err != nil {
		return product.Page{}, meta, err
	}
	page, err := product.NewPage(products, identifier)
	if err != nil {
		return product.Page{}, meta, err
	}
	s.logger.Debug("produktseite erstellt", zap.String("kennung", identifier), zap.String("produkt", page.Name))
	return page, meta, nil
}

// ClearCache leert den Produkt-Cache.
func (s *ProductService) ClearCache(ctx context.Context) {
	s.loader.ClearCache(ctx)
}
