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

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	if _, err := r.client.Collection("users").Doc(user.ID).Set(ctx, user); err != nil {
		return errors.Internal("Failed to create user", err)
	}
	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection("users").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to get user", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}
	user.ID = doc.Ref.ID

	return &user, nil
}

func (r *firestoreUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	iter := r.client.Collection("users").Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("User", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to query user", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}
	user.ID = doc.Ref.ID

	return &user, nil
}

func (r *firestoreUserRepository) Update(ctx context.Context, user *entity.User) error {
	updateData := map[string]interface{}{
		"name":      user.Name,
		"phone":     user.Phone,
		"photoURL":  user.PhotoURL,
		"updatedAt": time.Now(),
	}

	// Skip empty strings so a partial update never blanks stored fields
	clean := make(map[string]interface{})
	for key, value := range updateData {
		if s, ok := value.(string); ok && s == "" {
			continue
		}
		clean[key] = value
	}

	if _, err := r.client.Collection("users").Doc(user.ID).Set(ctx, clean, firestore.MergeAll); err != nil {
		return errors.Internal("Failed to update user", err)
	}
	return nil
}

type firestoreVendorRepository struct {
	client *firestore.Client
}

func NewFirestoreVendorRepository(client *firestore.Client) repository.VendorRepository {
	return &firestoreVendorRepository{
		client: client,
	}
}

func (r *firestoreVendorRepository) Create(ctx context.Context, vendor *entity.Vendor) error {
	now := time.Now()
	if vendor.CreatedAt.IsZero() {
		vendor.CreatedAt = now
	}
	vendor.UpdatedAt = now
	if vendor.Type == "" {
		vendor.Type = entity.RoleVendor
	}

	if _, err := r.client.Collection("vendors").Doc(vendor.ID).Set(ctx, vendor); err != nil {
		return errors.Internal("Failed to create vendor", err)
	}
	return nil
}

func (r *firestoreVendorRepository) GetByID(ctx context.Context, id string) (*entity.Vendor, error) {
	doc, err := r.client.Collection("vendors").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Vendor", err)
		}
		return nil, errors.Internal("Failed to get vendor", err)
	}

	var vendor entity.Vendor
	if err := doc.DataTo(&vendor); err != nil {
		return nil, errors.Internal("Failed to parse vendor data", err)
	}
	vendor.ID = doc.Ref.ID

	return &vendor, nil
}

func (r *firestoreVendorRepository) Update(ctx context.Context, vendor *entity.Vendor) error {
	vendor.UpdatedAt = time.Now()
	if _, err := r.client.Collection("vendors").Doc(vendor.ID).Set(ctx, vendor); err != nil {
		return errors.Internal("Failed to update vendor", err)
	}
	return nil
}

type firestorePublicCharityRepository struct {
	client *firestore.Client
}

func NewFirestorePublicCharityRepository(client *firestore.Client) repository.PublicCharityRepository {
	return &firestorePublicCharityRepository{
		client: client,
	}
}

func (r *firestorePublicCharityRepository) Upsert(ctx context.Context, charity *entity.PublicCharity) error {
	now := time.Now()
	if charity.CreatedAt.IsZero() {
		charity.CreatedAt = now
	}
	charity.UpdatedAt = now

	if _, err := r.client.Collection("publicCharities").Doc(charity.ID).Set(ctx, charity); err != nil {
		return errors.Internal("Failed to save charity profile", err)
	}
	return nil
}

func (r *firestorePublicCharityRepository) GetByID(ctx context.Context, id string) (*entity.PublicCharity, error) {
	doc, err := r.client.Collection("publicCharities").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Charity", err)
		}
		return nil, errors.Internal("Failed to get charity", err)
	}

	var charity entity.PublicCharity
	if err := doc.DataTo(&charity); err != nil {
		return nil, errors.Internal("Failed to parse charity data", err)
	}
	charity.ID = doc.Ref.ID

	return &charity, nil
}
