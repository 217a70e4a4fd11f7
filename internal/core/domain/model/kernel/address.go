package kernel

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress")

var (
	// phonePattern accepts a ten digit Indian mobile number with an optional +91 or 0 prefix.
	phonePattern   = regexp.MustCompile(`^(?:\+91|0)?[6-9]\d{9}$`)
	pincodePattern = regexp.MustCompile(`^[1-9]\d{5}$`)
)

// Address is the shipping address snapshot stored on an order.
// It is copied by value; later profile edits never change a placed order.
type Address struct { //nolint:recvcheck //using for validation
	fullName string
	phone    string
	line1    string
	line2    string
	city     string
	state    string
	pincode  string

	guard guard.ConstructorGuard
}

// AddressFields groups the raw inputs for NewAddress.
type AddressFields struct {
	FullName string
	Phone    string
	Line1    string
	Line2    string
	City     string
	State    string
	Pincode  string
}

// NewAddress trims and validates every field and reports all problems at once.
func NewAddress(f AddressFields) (Address, error) {
	a := Address{
		line2: strings.TrimSpace(f.Line2),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setRequired(&a.fullName, "fullName", f.FullName),
		a.setPhone(f.Phone),
		a.setRequired(&a.line1, "addressLine1", f.Line1),
		a.setRequired(&a.city, "city", f.City),
		a.setRequired(&a.state, "state", f.State),
		a.setPincode(f.Pincode),
	); err != nil {
		return Address{}, err
	}

	return a, nil
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) FullName() string { return a.fullName }
func (a Address) Phone() string    { return a.phone }
func (a Address) Line1() string    { return a.line1 }
func (a Address) Line2() string    { return a.line2 }
func (a Address) City() string     { return a.city }
func (a Address) State() string    { return a.state }
func (a Address) Pincode() string  { return a.pincode }

// Fields returns the address as plain values, for adapters.
func (a Address) Fields() AddressFields {
	return AddressFields{
		FullName: a.fullName,
		Phone:    a.phone,
		Line1:    a.line1,
		Line2:    a.line2,
		City:     a.city,
		State:    a.state,
		Pincode:  a.pincode,
	}
}

func (a *Address) setRequired(dst *string, name, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	*dst = value
	return nil
}

func (a *Address) setPhone(phone string) error {
	phone = strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	if !phonePattern.MatchString(phone) {
		return errs.NewValueIsInvalidErrorWithCause("phone", fmt.Errorf("%q is not a valid mobile number", phone))
	}
	a.phone = phone
	return nil
}

func (a *Address) setPincode(pincode string) error {
	pincode = strings.TrimSpace(pincode)
	if pincode == "" {
		return errs.NewValueIsRequiredError("pincode")
	}
	if !pincodePattern.MatchString(pincode) {
		return errs.NewValueIsInvalidErrorWithCause("pincode", fmt.Errorf("%q is not a 6 digit pincode", pincode))
	}
	a.pincode = pincode
	return nil
}
