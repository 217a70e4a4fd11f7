package productrepo

import (
	"context"

	"ordering/internal/core/ports"

	"gorm.io/gorm"
)

// GormProductCatalog implements ports.ProductCatalog over the products table.
type GormProductCatalog struct {
	db *gorm.DB
}

func NewGormProductCatalog(db *gorm.DB) *GormProductCatalog {
	return &GormProductCatalog{db: db}
}

// GetByIDs loads the listed products in one query.
func (c *GormProductCatalog) GetByIDs(ctx context.Context, ids []string) (map[string]ports.Product, error) {
	products := make(map[string]ports.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	var dtos []ProductDTO
	if err := c.db.WithContext(ctx).Where("id IN ?", ids).Find(&dtos).Error; err != nil {
		return nil, err
	}

	for _, dto := range dtos {
		p, err := toPort(dto)
		if err != nil {
			return nil, err
		}
		products[p.ID] = p
	}

	return products, nil
}
