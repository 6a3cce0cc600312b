package cart

import "errors"

// Business-rule rejections. None of them mutates the store.
var (
	ErrOutOfStock   = errors.New("product is out of stock")
	ErrStockCeiling = errors.New("cannot add more than available stock")
	ErrExceedsStock = errors.New("cannot exceed available stock")
)
