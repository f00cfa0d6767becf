package commands

import (
	"errors"

	"foodorder/internal/pkg/errs"
)

// CapacityExceededMessage is stored in failure records of capacity rejections.
const CapacityExceededMessage = "Maximum number of simultaneous orders (3) exceeded"

var (
	// ErrCapacityExceeded is returned when an order cannot start because
	// the simultaneous order capacity is exhausted.
	ErrCapacityExceeded = errors.New(CapacityExceededMessage)

	// ErrNoLines is returned for orders without lines.
	ErrNoLines = errs.NewValueIsRequiredError("lines")
)
