package builder

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrUnknownRouter = errors.New("no interchain account router registered")
	ErrUnknownDomain = errors.New("no domain id registered")
	ErrValueTransfer = errors.New("calls with value cannot be relayed")
	ErrEncoding      = errors.New("failed to encode dispatch call")
)

// UnsupportedValueError lists the calls of a batch that attach native value.
type UnsupportedValueError struct {
	Indices []int
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("%s: calls %v", ErrValueTransfer, e.Indices)
}

func (e *UnsupportedValueError) Unwrap() error {
	return ErrValueTransfer
}
