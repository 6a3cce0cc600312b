package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jcmexdev/grocery-pos/internal/pos/cart"
	"github.com/jcmexdev/grocery-pos/internal/pos/checkout"
	"github.com/jcmexdev/grocery-pos/internal/pos/core/domain/entity"
)

const (
	msgOutOfStock       = "Product is out of stock!"
	msgStockCeiling     = "Cannot add more than available stock!"
	msgExceedsStock     = "Cannot exceed available stock!"
	msgEmptyCart        = "Cart is empty!"
	msgSubmitInProgress = "Checkout already in progress"
	msgInvalidPayment   = "Invalid payment method"
	msgRetry            = "An error occurred. Please try again."
	msgNotFound         = "Product not found"
	msgUnknownProduct   = "Unknown product"
	msgNotInvoiced      = "Items added during checkout were kept in the cart"
)

// cartNotice maps a store rejection to the notice shown for it.
func cartNotice(err error) entity.Notice {
	switch {
	case errors.Is(err, cart.ErrOutOfStock):
		return entity.Warning(msgOutOfStock)
	case errors.Is(err, cart.ErrStockCeiling):
		return entity.Warning(msgStockCeiling)
	case errors.Is(err, cart.ErrExceedsStock):
		return entity.Warning(msgExceedsStock)
	}
	return entity.Failure(msgRetry)
}

// checkoutNotice maps a failed submission to exactly one notice. Transport
// failures are logged here since the cashier only sees the generic text.
func checkoutNotice(ctx context.Context, err error) entity.Notice {
	var serr *checkout.ServerError
	var terr *checkout.TransportError
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		return entity.Warning(msgEmptyCart)
	case errors.Is(err, checkout.ErrSubmitInProgress):
		return entity.Warning(msgSubmitInProgress)
	case errors.Is(err, checkout.ErrInvalidPaymentMethod):
		return entity.Failure(msgInvalidPayment)
	case errors.As(err, &serr):
		slog.InfoContext(ctx, "checkout rejected by backend", "reason", serr.Message)
		return entity.Failure(serr.Message)
	case errors.As(err, &terr):
		slog.ErrorContext(ctx, "checkout failed", "error", terr.Err)
		return entity.Failure(msgRetry)
	}
	slog.ErrorContext(ctx, "checkout failed", "error", err)
	return entity.Failure(msgRetry)
}
