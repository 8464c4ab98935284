package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"ripple/internal/domain/entity"
	"ripple/internal/domain/repository"
	"ripple/pkg/errors"
)

type firestoreCartRepository struct {
	client *firestore.Client
}

func NewFirestoreCartRepository(client *firestore.Client) repository.CartRepository {
	return &firestoreCartRepository{
		client: client,
	}
}

func (r *firestoreCartRepository) Create(ctx context.Context, item *entity.CartItem) error {
	ref := r.client.Collection("cart").NewDoc()
	item.ID = ref.ID

	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	if _, err := ref.Set(ctx, item); err != nil {
		return errors.Internal("Failed to add cart item", err)
	}
	return nil
}

func (r *firestoreCartRepository) GetByID(ctx context.Context, id string) (*entity.CartItem, error) {
	doc, err := r.client.Collection("cart").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Cart item", err)
		}
		return nil, errors.Internal("Failed to get cart item", err)
	}

	var item entity.CartItem
	if err := doc.DataTo(&item); err != nil {
		return nil, errors.Internal("Failed to parse cart item", err)
	}
	item.ID = doc.Ref.ID

	return &item, nil
}

func (r *firestoreCartRepository) FindMatch(ctx context.Context, donorID, productID, charityID string) (*entity.CartItem, error) {
	query := r.client.Collection("cart").
		Where("donorId", "==", donorID).
		Where("productId", "==", productID).
		Where("charityId", "==", charityID).
		Limit(1)

	items, err := collectCartItems(query.Documents(ctx))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.NotFound("Cart item", nil)
	}
	return items[0], nil
}

func (r *firestoreCartRepository) Update(ctx context.Context, item *entity.CartItem) error {
	item.UpdatedAt = time.Now()
	if _, err := r.client.Collection("cart").Doc(item.ID).Set(ctx, item); err != nil {
		return errors.Internal("Failed to update cart item", err)
	}
	return nil
}

func (r *firestoreCartRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Collection("cart").Doc(id).Delete(ctx); err != nil {
		return errors.Internal("Failed to delete cart item", err)
	}
	return nil
}

func (r *firestoreCartRepository) ListByDonor(ctx context.Context, donorID string) ([]*entity.CartItem, error) {
	query := r.client.Collection("cart").Where("donorId", "==", donorID)
	return collectCartItems(query.Documents(ctx))
}

func (r *firestoreCartRepository) DeleteByDonor(ctx context.Context, donorID string) (int, error) {
	refs, err := r.client.Collection("cart").Where("donorId", "==", donorID).Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to list cart", err)
	}
	if len(refs) == 0 {
		return 0, nil
	}

	bw := r.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(refs))
	for _, doc := range refs {
		job, err := bw.Delete(doc.Ref)
		if err != nil {
			bw.End()
			return 0, errors.Internal("Failed to clear cart", err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return 0, errors.Internal("Failed to clear cart", err)
		}
	}
	return len(refs), nil
}

func collectCartItems(iter *firestore.DocumentIterator) ([]*entity.CartItem, error) {
	defer iter.Stop()

	items := []*entity.CartItem{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list cart items", err)
		}

		var item entity.CartItem
		if err := doc.DataTo(&item); err != nil {
			return nil, errors.Internal("Failed to parse cart item", err)
		}
		item.ID = doc.Ref.ID
		items = append(items, &item)
	}
	return items, nil
}
