package repository

import (
	"context"

	"ripple/internal/domain/entity"
)

// StatusDecision is called with the freshly read order inside a transaction.
// It mutates the order and returns the amount to credit to the vendor wallet,
// or zero. It may run more than once if the transaction is retried.
type StatusDecision func(order *entity.Order) (credit float64, err error)

type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListByVendor(ctx context.Context, vendorID, status string) ([]*entity.Order, error)
	ListByDonor(ctx context.Context, donorID string) ([]*entity.Order, error)
	ListByCharity(ctx context.Context, charityID string) ([]*entity.Order, error)
	// UpdateStatus writes the decided order and any wallet credit atomically.
	UpdateStatus(ctx context.Context, id string, decide StatusDecision) (*entity.Order, error)
}

// OrderBuilder is called inside the checkout transaction with the donor's
// selected cart rows as they stand at commit time. It returns the orders to
// write, or an error to abort. It may run more than once if the transaction
// is retried.
type OrderBuilder func(selected []*entity.CartItem) ([]*entity.Order, error)

// CheckoutRepository turns a donor's cart into orders in one transaction.
type CheckoutRepository interface {
	// PlaceOrders reads the donor's cart and every listing the built orders
	// reference, decrements stock, writes the orders and deletes all of the
	// donor's cart rows. It fails with a not-found error if a listing no
	// longer exists.
	PlaceOrders(ctx context.Context, donorID string, build OrderBuilder) ([]*entity.Order, error)
}
