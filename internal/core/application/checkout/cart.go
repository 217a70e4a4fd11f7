package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// CartLine is one product and quantity submitted by the client.
type CartLine struct {
	ProductID string
	Quantity  int
}

// ValidateCart checks that lines is non-empty, every line has a product id
// and no product appears twice.
func ValidateCart(lines []CartLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	seen := make(map[string]struct{}, len(lines))
	var err error
	for i, line := range lines {
		id := strings.TrimSpace(line.ProductID)
		if id == "" {
			err = errors.Join(err, errs.NewValueIsRequiredError(fmt.Sprintf("items[%d].productId", i)))
			continue
		}
		if _, dup := seen[id]; dup {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].productId", i),
				fmt.Errorf("product %s is listed twice", id),
			))
		}
		seen[id] = struct{}{}
	}
	return err
}

// SnapshotItems copies name, price and image of each cart product from the
// catalog into line items. Unknown and inactive products are rejected.
func SnapshotItems(ctx context.Context, catalog ports.ProductCatalog, lines []CartLine) ([]order.LineItem, error) {
	if err := ValidateCart(lines); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, strings.TrimSpace(line.ProductID))
	}

	products, err := catalog.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(lines))
	var itemsErr error
	for i, line := range lines {
		product, ok := products[ids[i]]
		if !ok || !product.IsActive {
			itemsErr = errors.Join(itemsErr, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].productId", i),
				fmt.Errorf("product %s is not available", ids[i]),
			))
			continue
		}

		item, itemErr := order.NewLineItem(product.ID, product.Name, product.Price, line.Quantity, product.Image)
		if itemErr != nil {
			itemsErr = errors.Join(itemsErr, fmt.Errorf("items[%d]: %w", i, itemErr))
			continue
		}
		items = append(items, item)
	}

	if itemsErr != nil {
		return nil, itemsErr
	}
	return items, nil
}
