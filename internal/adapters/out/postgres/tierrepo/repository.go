package tierrepo

import (
	"context"

	"ordering/internal/core/domain/model/tier"

	"gorm.io/gorm"
)

// GormTierRepository implements TierRepository using GORM.
type GormTierRepository struct {
	db *gorm.DB
}

// NewGormTierRepository creates a new GORM tier repository.
func NewGormTierRepository(db *gorm.DB) *GormTierRepository {
	return &GormTierRepository{db: db}
}

// GetAll returns the tier set ordered by minAmount.
func (r *GormTierRepository) GetAll(ctx context.Context) ([]tier.Tier, error) {
	var dtos []TierDTO
	if err := r.db.WithContext(ctx).Order("min_amount").Find(&dtos).Error; err != nil {
		return nil, err
	}

	tiers := make([]tier.Tier, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, t)
	}

	return tiers, nil
}

// ReplaceAll deletes the current set and inserts tiers. Callers run it inside
// a unit of work so readers never observe a partial set.
func (r *GormTierRepository) ReplaceAll(ctx context.Context, tiers []tier.Tier) error {
	if err := tier.ValidateSet(tiers); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&TierDTO{}).Error; err != nil {
		return err
	}

	if len(tiers) == 0 {
		return nil
	}

	dtos := make([]TierDTO, 0, len(tiers))
	for _, t := range tiers {
		dtos = append(dtos, fromDomain(t))
	}

	return db.Create(&dtos).Error
}
