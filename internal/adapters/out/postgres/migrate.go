package postgres

import (
	"ordering/internal/adapters/out/postgres/couponrepo"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/adapters/out/postgres/productrepo"
	"ordering/internal/adapters/out/postgres/tierrepo"

	"gorm.io/gorm"
)

// Migrate creates or extends every table the service reads or writes.
// products belongs to the catalog service; AutoMigrate only creates it when it
// is missing, which is the case in local and test databases.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&couponrepo.CouponDTO{},
		&tierrepo.TierDTO{},
		&productrepo.ProductDTO{},
	)
}
