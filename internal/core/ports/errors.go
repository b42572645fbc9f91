package ports

import "errors"

// ErrReferenceNotFound marks a write that pointed at a product, process or
// machine the catalog does not have. It is wrapped in errs.ObjectNotFoundError.
var ErrReferenceNotFound = errors.New("referenced record not found")
