package checkoutlog

import "errors"

var ErrNotFound = errors.New("checkout attempt not found")
