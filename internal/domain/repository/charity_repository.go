package repository

import (
	"context"

	"ripple/internal/domain/entity"
)

type PostFilter struct {
	CharityID string
	PostType  string
}

// PostEdit mutates a freshly read post inside a transaction. It may run more
// than once if the transaction is retried.
type PostEdit func(post *entity.CharityPost) error

type CharityPostRepository interface {
	Create(ctx context.Context, post *entity.CharityPost) error
	GetByID(ctx context.Context, id string) (*entity.CharityPost, error)
	// Update applies edit to the stored post and writes it back atomically,
	// so concurrent donation counters are never overwritten.
	Update(ctx context.Context, id string, edit PostEdit) (*entity.CharityPost, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter PostFilter) ([]*entity.CharityPost, error)
}

type DonationRepository interface {
	// Record stores the donation and, when it targets a post, bumps the post's
	// donated counters in the same transaction.
	Record(ctx context.Context, record *entity.DonationRecord) error
	ListByCharity(ctx context.Context, charityID string) ([]*entity.DonationRecord, error)
	ListByDonor(ctx context.Context, donorID string) ([]*entity.DonationRecord, error)
}
