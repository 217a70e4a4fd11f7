package couponrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/coupon"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCouponRepository implements CouponRepository using GORM.
type GormCouponRepository struct {
	db *gorm.DB
}

// NewGormCouponRepository creates a new GORM coupon repository.
func NewGormCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

// Add saves a new coupon. The connection must be opened with
// gorm.Config.TranslateError so a taken code surfaces as gorm.ErrDuplicatedKey.
func (r *GormCouponRepository) Add(ctx context.Context, aggregate *coupon.Coupon) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("code", fmt.Errorf("coupon %s already exists", dto.Code))
		}
		return err
	}

	return nil
}

// Update writes the admin editable fields. used_count is left alone so a
// concurrent Redeem is never overwritten.
func (r *GormCouponRepository) Update(ctx context.Context, aggregate *coupon.Coupon) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&CouponDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "code", "used_count").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("coupon", aggregate.Code())
	}

	return nil
}

// GetByCode looks a coupon up by its normalized code.
func (r *GormCouponRepository) GetByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	code = coupon.NormalizeCode(code)
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	var dto CouponDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("coupon", code)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Redeem consumes one use with a single conditional UPDATE, so two checkouts
// racing for the last use cannot both succeed.
func (r *GormCouponRepository) Redeem(ctx context.Context, aggregate *coupon.Coupon, now time.Time) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE coupons
		SET used_count = used_count + 1
		WHERE id = ?
			AND is_active
			AND (expires_at IS NULL OR expires_at > ?)
			AND (usage_limit IS NULL OR used_count < usage_limit)
	`, aggregate.ID().Bytes(), now.UTC())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewCouponInvalidError(aggregate.Code(), coupon.ReasonLimitReached)
	}

	if err := aggregate.Redeem(); err != nil {
		return err
	}

	return nil
}

// ListExpiredActive returns active coupons whose expiry is not after now.
func (r *GormCouponRepository) ListExpiredActive(ctx context.Context, now time.Time) ([]*coupon.Coupon, error) {
	var dtos []CouponDTO
	if err := r.db.WithContext(ctx).
		Where("is_active AND expires_at IS NOT NULL AND expires_at <= ?", now.UTC()).
		Order("expires_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	coupons := make([]*coupon.Coupon, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		coupons = append(coupons, c)
	}

	return coupons, nil
}
