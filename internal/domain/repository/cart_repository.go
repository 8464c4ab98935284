package repository

import (
	"context"

	"ripple/internal/domain/entity"
)

type CartRepository interface {
	Create(ctx context.Context, item *entity.CartItem) error
	GetByID(ctx context.Context, id string) (*entity.CartItem, error)
	// FindMatch returns the donor's row for the same product and charity, if any.
	FindMatch(ctx context.Context, donorID, productID, charityID string) (*entity.CartItem, error)
	Update(ctx context.Context, item *entity.CartItem) error
	Delete(ctx context.Context, id string) error
	ListByDonor(ctx context.Context, donorID string) ([]*entity.CartItem, error)
	DeleteByDonor(ctx context.Context, donorID string) (int, error)
}
