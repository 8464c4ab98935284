package repository

import (
	"context"

	"ripple/internal/domain/entity"
)

type ListingFilter struct {
	Category string
	InStock  bool
}

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, vendorID, id string) (*entity.Listing, error)
	Update(ctx context.Context, listing *entity.Listing) error
	Delete(ctx context.Context, vendorID, id string) error
	ListByVendor(ctx context.Context, vendorID string) ([]*entity.Listing, error)
	// ListAll queries listings across every vendor.
	ListAll(ctx context.Context, filter ListingFilter) ([]*entity.Listing, error)
}
