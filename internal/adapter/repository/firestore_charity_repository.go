package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"ripple/internal/domain/entity"
	"ripple/internal/domain/repository"
	"ripple/pkg/errors"
)

type firestoreCharityPostRepository struct {
	client *firestore.Client
}

func NewFirestoreCharityPostRepository(client *firestore.Client) repository.CharityPostRepository {
	return &firestoreCharityPostRepository{
		client: client,
	}
}

func decodePost(doc *firestore.DocumentSnapshot) (*entity.CharityPost, error) {
	var post entity.CharityPost
	if err := doc.DataTo(&post); err != nil {
		return nil, errors.Internal("Failed to parse post data", err)
	}
	post.ID = doc.Ref.ID
	return &post, nil
}

func (r *firestoreCharityPostRepository) Create(ctx context.Context, post *entity.CharityPost) error {
	ref := r.client.Collection("charities").NewDoc()
	post.ID = ref.ID

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	if _, err := ref.Set(ctx, post); err != nil {
		return errors.Internal("Failed to create post", err)
	}
	return nil
}

func (r *firestoreCharityPostRepository) GetByID(ctx context.Context, id string) (*entity.CharityPost, error) {
	doc, err := r.client.Collection("charities").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Post", err)
		}
		return nil, errors.Internal("Failed to get post", err)
	}
	return decodePost(doc)
}

func (r *firestoreCharityPostRepository) Update(ctx context.Context, id string, edit repository.PostEdit) (*entity.CharityPost, error) {
	ref := r.client.Collection("charities").Doc(id)

	var updated *entity.CharityPost
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Post", err)
			}
			return err
		}
		post, err := decodePost(doc)
		if err != nil {
			return err
		}

		if err := edit(post); err != nil {
			return err
		}
		post.UpdatedAt = time.Now()

		updated = post
		return tx.Set(ref, post)
	})
	if err != nil {
		return nil, errors.Wrap(err, "Failed to update post")
	}
	return updated, nil
}

func (r *firestoreCharityPostRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Collection("charities").Doc(id).Delete(ctx); err != nil {
		return errors.Internal("Failed to delete post", err)
	}
	return nil
}

func (r *firestoreCharityPostRepository) List(ctx context.Context, filter repository.PostFilter) ([]*entity.CharityPost, error) {
	query := r.client.Collection("charities").Query
	if filter.CharityID != "" {
		query = query.Where("charityId", "==", filter.CharityID)
	}
	if filter.PostType != "" {
		query = query.Where("postType", "==", filter.PostType)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	posts := []*entity.CharityPost{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list posts", err)
		}

		post, err := decodePost(doc)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

type firestoreDonationRepository struct {
	client *firestore.Client
}

func NewFirestoreDonationRepository(client *firestore.Client) repository.DonationRepository {
	return &firestoreDonationRepository{
		client: client,
	}
}

func (r *firestoreDonationRepository) Record(ctx context.Context, record *entity.DonationRecord) error {
	ref := r.client.Collection("donations").NewDoc()
	record.ID = ref.ID
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var post *entity.CharityPost
		var postRef *firestore.DocumentRef

		if record.PostID != "" {
			postRef = r.client.Collection("charities").Doc(record.PostID)
			doc, err := tx.Get(postRef)
			if err != nil {
				if status.Code(err) == codes.NotFound {
					return errors.NotFound("Post", err)
				}
				return err
			}
			if post, err = decodePost(doc); err != nil {
				return err
			}
		}

		if err := tx.Create(ref, record); err != nil {
			return err
		}

		if post != nil {
			post.AddDonations(record.Items)
			return tx.Update(postRef, []firestore.Update{
				{Path: "neededItems", Value: post.NeededItems},
				{Path: "updatedAt", Value: time.Now()},
			})
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "Failed to record donation")
	}
	return nil
}

func (r *firestoreDonationRepository) ListByCharity(ctx context.Context, charityID string) ([]*entity.DonationRecord, error) {
	return collectDonations(r.client.Collection("donations").Where("charityId", "==", charityID).Documents(ctx))
}

func (r *firestoreDonationRepository) ListByDonor(ctx context.Context, donorID string) ([]*entity.DonationRecord, error) {
	return collectDonations(r.client.Collection("donations").Where("donorId", "==", donorID).Documents(ctx))
}

func collectDonations(iter *firestore.DocumentIterator) ([]*entity.DonationRecord, error) {
	defer iter.Stop()

	records := []*entity.DonationRecord{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list donations", err)
		}

		var record entity.DonationRecord
		if err := doc.DataTo(&record); err != nil {
			return nil, errors.Internal("Failed to parse donation", err)
		}
		record.ID = doc.Ref.ID
		records = append(records, &record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}
