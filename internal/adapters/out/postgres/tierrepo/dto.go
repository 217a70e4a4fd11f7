// Package tierrepo persists the discount tier configuration.
package tierrepo

import (
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/tier"

	"github.com/shopspring/decimal"
)

// TierDTO is one row of the tier set.
type TierDTO struct {
	ID              uint            `gorm:"primaryKey"`
	MinAmount       decimal.Decimal `gorm:"type:numeric(12,2);not null;uniqueIndex"`
	DiscountPercent decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	Label           string          `gorm:"type:varchar(255);not null"`
}

// TableName specifies the database table name for tiers.
func (TierDTO) TableName() string {
	return "discount_tiers"
}

func fromDomain(t tier.Tier) TierDTO {
	return TierDTO{
		MinAmount:       t.MinAmount().Decimal(),
		DiscountPercent: t.DiscountPercent(),
		Label:           t.Label(),
	}
}

func toDomain(dto TierDTO) (tier.Tier, error) {
	minAmount, err := kernel.NewMoney(dto.MinAmount)
	if err != nil {
		return tier.Tier{}, err
	}
	return tier.NewTier(minAmount, dto.DiscountPercent, dto.Label)
}
