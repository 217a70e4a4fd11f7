package order

import (
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// Reference identifies an order either by sequential code or by internal id.
type Reference struct {
	id   *kernel.UUID
	code Code
}

// ParseReference accepts an order code (UK-2602-0001) or a UUID.
func ParseReference(s string) (Reference, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Reference{}, errs.NewValueIsRequiredError("orderId")
	}

	if IsCode(s) {
		return Reference{code: Code{value: s}}, nil
	}

	id, err := kernel.UUIDFromString(s)
	if err != nil {
		return Reference{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}
	return Reference{id: &id}, nil
}

func ReferenceByID(id kernel.UUID) Reference {
	return Reference{id: &id}
}

func ReferenceByCode(code Code) Reference {
	return Reference{code: code}
}

// ID returns the internal id; ok is false for code references.
func (r Reference) ID() (kernel.UUID, bool) {
	if r.id == nil {
		return kernel.UUID{}, false
	}
	return *r.id, true
}

func (r Reference) Code() Code {
	return r.code
}

func (r Reference) IsZero() bool {
	return r.id == nil && r.code.IsZero()
}

func (r Reference) String() string {
	if r.id != nil {
		return r.id.String()
	}
	return r.code.String()
}
