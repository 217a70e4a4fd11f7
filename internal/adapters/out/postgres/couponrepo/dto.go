// Package couponrepo persists coupon aggregates with GORM.
package couponrepo

import (
	"time"

	"ordering/internal/core/domain/model/coupon"
	"ordering/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// CouponDTO represents the database structure for persisting coupons.
type CouponDTO struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Code        string           `gorm:"type:varchar(64);not null;uniqueIndex"`
	Type        string           `gorm:"type:varchar(16);not null"`
	Value       decimal.Decimal  `gorm:"type:numeric(12,2);not null"`
	MinOrder    decimal.Decimal  `gorm:"type:numeric(12,2);not null;default:0"`
	MaxDiscount *decimal.Decimal `gorm:"type:numeric(12,2)"`
	IsActive    bool             `gorm:"not null;index"`
	ExpiresAt   *time.Time       `gorm:"type:timestamptz"`
	UsageLimit  *int
	UsedCount   int            `gorm:"not null;default:0"`
	Target      string         `gorm:"type:varchar(16);not null"`
	TargetUsers pq.StringArray `gorm:"type:text[]"`
}

// TableName specifies the database table name for coupons.
func (CouponDTO) TableName() string {
	return "coupons"
}

func fromDomain(c *coupon.Coupon) CouponDTO {
	var maxDiscount *decimal.Decimal
	if m := c.MaxDiscount(); m != nil {
		d := m.Decimal()
		maxDiscount = &d
	}

	users := make(pq.StringArray, 0, len(c.TargetUsers()))
	for _, u := range c.TargetUsers() {
		users = append(users, u.String())
	}

	return CouponDTO{
		ID:          c.ID().Bytes(),
		Code:        c.Code(),
		Type:        c.Type().String(),
		Value:       c.Value(),
		MinOrder:    c.MinOrder().Decimal(),
		MaxDiscount: maxDiscount,
		IsActive:    c.IsActive(),
		ExpiresAt:   c.ExpiresAt(),
		UsageLimit:  c.UsageLimit(),
		UsedCount:   c.UsedCount(),
		Target:      c.Target().String(),
		TargetUsers: users,
	}
}

func toDomain(dto CouponDTO) (*coupon.Coupon, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	couponType, err := coupon.ParseType(dto.Type)
	if err != nil {
		return nil, err
	}

	target, err := coupon.ParseTarget(dto.Target)
	if err != nil {
		return nil, err
	}

	minOrder, err := kernel.NewMoney(dto.MinOrder)
	if err != nil {
		return nil, err
	}

	var maxDiscount *kernel.Money
	if dto.MaxDiscount != nil {
		m, moneyErr := kernel.NewMoney(*dto.MaxDiscount)
		if moneyErr != nil {
			return nil, moneyErr
		}
		maxDiscount = &m
	}

	users := make([]kernel.UUID, 0, len(dto.TargetUsers))
	for _, raw := range dto.TargetUsers {
		u, uuidErr := kernel.UUIDFromString(raw)
		if uuidErr != nil {
			return nil, uuidErr
		}
		users = append(users, u)
	}

	return coupon.RestoreCoupon(id, coupon.Params{
		Code:        dto.Code,
		Type:        couponType,
		Value:       dto.Value,
		MinOrder:    minOrder,
		MaxDiscount: maxDiscount,
		IsActive:    dto.IsActive,
		ExpiresAt:   dto.ExpiresAt,
		UsageLimit:  dto.UsageLimit,
		Target:      target,
		TargetUsers: users,
	}, dto.UsedCount)
}
