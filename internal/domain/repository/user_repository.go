package repository

import (
	"context"

	"ripple/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}

// VendorRepository stores vendor profiles. Vendors that signed up before the
// users collection existed only have a document here.
type VendorRepository interface {
	Create(ctx context.Context, vendor *entity.Vendor) error
	GetByID(ctx context.Context, id string) (*entity.Vendor, error)
	Update(ctx context.Context, vendor *entity.Vendor) error
}

type PublicCharityRepository interface {
	Upsert(ctx context.Context, charity *entity.PublicCharity) error
	GetByID(ctx context.Context, id string) (*entity.PublicCharity, error)
}
