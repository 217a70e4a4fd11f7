package order

import (
	"fmt"
	"regexp"
	"time"

	"ordering/internal/pkg/errs"
)

var codePattern = regexp.MustCompile(`^[A-Z]{2,5}-\d{4}-\d{4,}$`)

// Code is the human readable order number, <PREFIX>-<YYMM>-<NNNN>.
// The sequence restarts every month.
type Code struct {
	value string
}

// NewCode formats a code for the month of issuedAt.
func NewCode(prefix string, issuedAt time.Time, sequence int64) (Code, error) {
	if sequence < 1 {
		return Code{}, errs.NewValueIsInvalidErrorWithCause("sequence", fmt.Errorf("%d is not positive", sequence))
	}
	return ParseCode(fmt.Sprintf("%s-%s-%04d", prefix, issuedAt.UTC().Format("0601"), sequence))
}

// ParseCode validates a stored or user supplied code.
func ParseCode(s string) (Code, error) {
	if !codePattern.MatchString(s) {
		return Code{}, errs.NewValueIsInvalidErrorWithCause("orderCode", fmt.Errorf("%q is not an order code", s))
	}
	return Code{value: s}, nil
}

// IsCode reports whether s looks like an order code.
func IsCode(s string) bool {
	return codePattern.MatchString(s)
}

func (c Code) String() string {
	return c.value
}

func (c Code) IsZero() bool {
	return c.value == ""
}
