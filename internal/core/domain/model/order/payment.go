package order

import (
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
)

// MinUTRLength is the shortest accepted bank transaction reference.
const MinUTRLength = 12

// PaymentMethod is how the customer pays.
type PaymentMethod int

const (
	UnknownPaymentMethod PaymentMethod = iota
	COD
	UPI
	Card
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		COD:  "COD",
		UPI:  "UPI",
		Card: "CARD",
	}
}

// ParsePaymentMethod accepts "COD", "UPI" or "CARD".
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for method, name := range getPaymentMethodStrings() {
		if name == s {
			return method, nil
		}
	}
	return UnknownPaymentMethod, errs.NewValueIsInvalidErrorWithCause(
		"paymentMethod",
		fmt.Errorf("%q is not one of COD, UPI, CARD", s),
	)
}

func (m PaymentMethod) String() string {
	if s, ok := getPaymentMethodStrings()[m]; ok {
		return s
	}
	return "UNKNOWN"
}

func (m PaymentMethod) Validate() error {
	if _, ok := getPaymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// Payment is the payment method plus the customer supplied UTR.
// The UTR is kept only for UPI payments, where it is mandatory.
type Payment struct {
	method    PaymentMethod
	utrNumber string
}

func NewPayment(method PaymentMethod, utrNumber string) (Payment, error) {
	if err := method.Validate(); err != nil {
		return Payment{}, err
	}

	if method != UPI {
		return Payment{method: method}, nil
	}

	utr, err := ValidateUTR("utrNumber", utrNumber)
	if err != nil {
		return Payment{}, err
	}

	return Payment{method: method, utrNumber: utr}, nil
}

func (p Payment) Method() PaymentMethod { return p.method }
func (p Payment) UTRNumber() string     { return p.utrNumber }

// IsCashOnDelivery reports whether no money was collected up front.
func (p Payment) IsCashOnDelivery() bool {
	return p.method == COD
}

// ValidateUTR trims a bank transaction reference and enforces MinUTRLength.
func ValidateUTR(paramName, utr string) (string, error) {
	utr = strings.TrimSpace(utr)
	if utr == "" {
		return "", errs.NewValueIsRequiredError(paramName)
	}
	if len(utr) < MinUTRLength {
		return "", errs.NewValueIsInvalidErrorWithCause(
			paramName,
			fmt.Errorf("must be at least %d characters, got %d", MinUTRLength, len(utr)),
		)
	}
	return utr, nil
}
