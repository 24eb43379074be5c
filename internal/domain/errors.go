package domain

import "errors"

// Sentinel errors for the product lifecycle. Callers classify with errors.Is;
// context is attached with pkg/errors wrapping where useful.
var (
	// ErrProductNotFound indicates that no product exists with the given ID.
	ErrProductNotFound = errors.New("product not found")

	// ErrDuplicateCode indicates another ACTIVE product already holds the code.
	ErrDuplicateCode = errors.New("product code already exists")

	// ErrDuplicateName indicates another ACTIVE product already holds the name.
	ErrDuplicateName = errors.New("product name already exists")

	// ErrProductAlreadyInactive indicates a soft delete of an already
	// soft-deleted product.
	ErrProductAlreadyInactive = errors.New("product is already inactive")

	// ErrProductIDChanged indicates the persisted ID no longer matches the
	// original after an update. Defensive, should be unreachable.
	ErrProductIDChanged = errors.New("product ID cannot be changed")
)
