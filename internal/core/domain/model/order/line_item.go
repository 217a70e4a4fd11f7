package order

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

const (
	MinQuantity = 1
	MaxQuantity = 100
)

var ErrLineItemIsNotConstructed = errs.NewValueIsRequiredError("line item must be created via NewLineItem")

// LineItem is a product snapshot taken at checkout. Name, unit price and image
// are copied from the catalog so later catalog edits never alter the order.
type LineItem struct { //nolint:recvcheck //using for validation
	productID string
	name      string
	unitPrice kernel.Money
	quantity  int
	image     string

	guard guard.ConstructorGuard
}

func NewLineItem(productID, name string, unitPrice kernel.Money, quantity int, image string) (LineItem, error) {
	item := LineItem{
		image: strings.TrimSpace(image),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setName(name),
		item.setUnitPrice(unitPrice),
		item.setQuantity(quantity),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

func (i LineItem) ProductID() string       { return i.productID }
func (i LineItem) Name() string            { return i.name }
func (i LineItem) UnitPrice() kernel.Money { return i.unitPrice }
func (i LineItem) Quantity() int           { return i.quantity }
func (i LineItem) Image() string           { return i.image }

// Total is unit price times quantity.
func (i LineItem) Total() kernel.Money {
	return i.unitPrice.Times(i.quantity)
}

// Subtotal sums the totals of items.
func Subtotal(items []LineItem) kernel.Money {
	var sum kernel.Money
	for _, item := range items {
		sum = sum.Add(item.Total())
	}
	return sum
}

func (i *LineItem) setProductID(productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return errs.NewValueIsRequiredError("productId")
	}
	i.productID = productID
	return nil
}

func (i *LineItem) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	i.name = name
	return nil
}

func (i *LineItem) setUnitPrice(price kernel.Money) error {
	if !price.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is not greater than 0", price))
	}
	i.unitPrice = price
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity < MinQuantity || quantity > MaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, MinQuantity, MaxQuantity)
	}
	i.quantity = quantity
	return nil
}
