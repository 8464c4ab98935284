package usecase

import (
	"context"
	"strings"

	"ripple/internal/domain/entity"
	"ripple/internal/domain/repository"
	"ripple/pkg/errors"
)

type ListingUseCase struct {
	listingRepo repository.ListingRepository
	vendorRepo  repository.VendorRepository
	images      ImageStore
}

func NewListingUseCase(listingRepo repository.ListingRepository, vendorRepo repository.VendorRepository, images ImageStore) *ListingUseCase {
	return &ListingUseCase{
		listingRepo: listingRepo,
		vendorRepo:  vendorRepo,
		images:      images,
	}
}

type ListingInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
	Category    string
	Condition   string
	ImageURL    string
}

func (in ListingInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.BadRequest("Name is required", nil)
	}
	if in.Price <= 0 {
		return errors.BadRequest("Price must be greater than zero", nil)
	}
	if in.Quantity < 0 {
		return errors.BadRequest("Quantity cannot be negative", nil)
	}
	return nil
}

func (uc *ListingUseCase) Create(ctx context.Context, vendorID string, input ListingInput) (*entity.Listing, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	vendorName := ""
	if vendor, err := uc.vendorRepo.GetByID(ctx, vendorID); err == nil {
		vendorName = vendor.BusinessName
	}

	listing := &entity.Listing{
		VendorID:    vendorID,
		VendorName:  vendorName,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
		Category:    input.Category,
		Condition:   input.Condition,
		ImageURL:    input.ImageURL,
	}

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (uc *ListingUseCase) Get(ctx context.Context, vendorID, id string) (*entity.Listing, error) {
	return uc.listingRepo.GetByID(ctx, vendorID, id)
}

func (uc *ListingUseCase) ListByVendor(ctx context.Context, vendorID string) ([]*entity.Listing, error) {
	return uc.listingRepo.ListByVendor(ctx, vendorID)
}

func (uc *ListingUseCase) Update(ctx context.Context, vendorID, id string, input ListingInput) (*entity.Listing, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	listing, err := uc.listingRepo.GetByID(ctx, vendorID, id)
	if err != nil {
		return nil, err
	}

	listing.Name = strings.TrimSpace(input.Name)
	listing.Description = input.Description
	listing.Price = input.Price
	listing.Quantity = input.Quantity
	listing.Category = input.Category
	listing.Condition = input.Condition
	replaced := ""
	if input.ImageURL != "" && input.ImageURL != listing.ImageURL {
		replaced = listing.ImageURL
		listing.ImageURL = input.ImageURL
	}

	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}
	removeImage(ctx, uc.images, replaced)
	return listing, nil
}

// Delete removes the listing and, best-effort, its image.
func (uc *ListingUseCase) Delete(ctx context.Context, vendorID, id string) error {
	listing, err := uc.listingRepo.GetByID(ctx, vendorID, id)
	if err != nil {
		return err
	}
	if err := uc.listingRepo.Delete(ctx, vendorID, id); err != nil {
		return err
	}
	removeImage(ctx, uc.images, listing.ImageURL)
	return nil
}

// Browse returns in-stock listings from every vendor whose text contains all
// keywords of query, optionally restricted to one category.
func (uc *ListingUseCase) Browse(ctx context.Context, query, category string) ([]*entity.Listing, error) {
	listings, err := uc.listingRepo.ListAll(ctx, repository.ListingFilter{
		Category: category,
		InStock:  true,
	})
	if err != nil {
		return nil, err
	}

	matched := make([]*entity.Listing, 0, len(listings))
	for _, l := range listings {
		if l.MatchesKeywords(query) {
			matched = append(matched, l)
		}
	}
	return matched, nil
}
