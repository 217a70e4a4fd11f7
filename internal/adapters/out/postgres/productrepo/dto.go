// Package productrepo reads the product catalog owned by the catalog service.
// This service never writes to the products table.
package productrepo

import (
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"

	"github.com/shopspring/decimal"
)

// ProductDTO maps the columns of products that checkout snapshots.
type ProductDTO struct {
	ID       string          `gorm:"type:varchar(64);primaryKey"`
	Name     string          `gorm:"type:varchar(255);not null"`
	Price    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Image    string          `gorm:"type:text"`
	IsActive bool            `gorm:"not null;default:true"`
}

// TableName specifies the database table name for products.
func (ProductDTO) TableName() string {
	return "products"
}

func toPort(dto ProductDTO) (ports.Product, error) {
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return ports.Product{}, err
	}
	return ports.Product{
		ID:       dto.ID,
		Name:     dto.Name,
		Price:    price,
		Image:    dto.Image,
		IsActive: dto.IsActive,
	}, nil
}
