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

type firestoreListingRepository struct {
	client *firestore.Client
}

func NewFirestoreListingRepository(client *firestore.Client) repository.ListingRepository {
	return &firestoreListingRepository{
		client: client,
	}
}

func listingsOf(client *firestore.Client, vendorID string) *firestore.CollectionRef {
	return client.Collection("vendors").Doc(vendorID).Collection("listings")
}

func decodeListing(doc *firestore.DocumentSnapshot) (*entity.Listing, error) {
	var listing entity.Listing
	if err := doc.DataTo(&listing); err != nil {
		return nil, errors.Internal("Failed to parse listing data", err)
	}
	listing.ID = doc.Ref.ID
	if parent := doc.Ref.Parent.Parent; parent != nil {
		listing.VendorID = parent.ID
	}
	return &listing, nil
}

func (r *firestoreListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	ref := listingsOf(r.client, listing.VendorID).NewDoc()
	if listing.ID != "" {
		ref = listingsOf(r.client, listing.VendorID).Doc(listing.ID)
	}
	listing.ID = ref.ID

	now := time.Now()
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = now
	}
	listing.UpdatedAt = now

	if _, err := ref.Set(ctx, listing); err != nil {
		return errors.Internal("Failed to create listing", err)
	}
	return nil
}

func (r *firestoreListingRepository) GetByID(ctx context.Context, vendorID, id string) (*entity.Listing, error) {
	doc, err := listingsOf(r.client, vendorID).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Listing", err)
		}
		return nil, errors.Internal("Failed to get listing", err)
	}
	return decodeListing(doc)
}

func (r *firestoreListingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	listing.UpdatedAt = time.Now()
	ref := listingsOf(r.client, listing.VendorID).Doc(listing.ID)
	if _, err := ref.Set(ctx, listing); err != nil {
		return errors.Internal("Failed to update listing", err)
	}
	return nil
}

func (r *firestoreListingRepository) Delete(ctx context.Context, vendorID, id string) error {
	_, err := listingsOf(r.client, vendorID).Doc(id).Delete(ctx, firestore.Exists)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Listing", err)
		}
		return errors.Internal("Failed to delete listing", err)
	}
	return nil
}

func (r *firestoreListingRepository) ListByVendor(ctx context.Context, vendorID string) ([]*entity.Listing, error) {
	iter := listingsOf(r.client, vendorID).OrderBy("createdAt", firestore.Desc).Documents(ctx)
	return collectListings(iter)
}

func (r *firestoreListingRepository) ListAll(ctx context.Context, filter repository.ListingFilter) ([]*entity.Listing, error) {
	query := r.client.CollectionGroup("listings").Query
	if filter.InStock {
		query = query.Where("quantity", ">", 0)
	}

	listings, err := collectListings(query.Documents(ctx))
	if err != nil {
		return nil, err
	}

	// Category is filtered here to avoid a composite index on the group
	if filter.Category != "" {
		kept := listings[:0]
		for _, l := range listings {
			if l.Category == filter.Category {
				kept = append(kept, l)
			}
		}
		listings = kept
	}

	sort.SliceStable(listings, func(i, j int) bool {
		return listings[i].CreatedAt.After(listings[j].CreatedAt)
	})
	return listings, nil
}

func collectListings(iter *firestore.DocumentIterator) ([]*entity.Listing, error) {
	defer iter.Stop()

	listings := []*entity.Listing{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list listings", err)
		}

		listing, err := decodeListing(doc)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	return listings, nil
}
