package usecase

import (
	"context"

	"ripple/internal/domain/entity"
	"ripple/internal/domain/repository"
	"ripple/pkg/errors"
)

type CartUseCase struct {
	cartRepo    repository.CartRepository
	listingRepo repository.ListingRepository
	postRepo    repository.CharityPostRepository
}

func NewCartUseCase(
	cartRepo repository.CartRepository,
	listingRepo repository.ListingRepository,
	postRepo repository.CharityPostRepository,
) *CartUseCase {
	return &CartUseCase{
		cartRepo:    cartRepo,
		listingRepo: listingRepo,
		postRepo:    postRepo,
	}
}

type AddToCartInput struct {
	VendorID    string
	ProductID   string
	CharityID   string
	CharityName string
	PostID      string
	Quantity    int
}

type CartSummary struct {
	Items         []*entity.CartItem  `json:"items"`
	Groups        []*entity.CartGroup `json:"groups"`
	SelectedCount int                 `json:"selected_count"`
	SelectedTotal float64             `json:"selected_total"`
}

// AddItem adds quantity of a listing to the donor's cart for a charity. A
// row for the same product and charity is topped up instead of duplicated.
// A post, if given, must belong to that charity.
func (uc *CartUseCase) AddItem(ctx context.Context, donorID string, input AddToCartInput) (*entity.CartItem, error) {
	if input.Quantity < 1 {
		return nil, errors.BadRequest("Quantity must be at least 1", nil)
	}

	if input.PostID != "" {
		post, err := uc.postRepo.GetByID(ctx, input.PostID)
		if err != nil {
			return nil, err
		}
		if post.CharityID != input.CharityID {
			return nil, errors.BadRequest("Post does not belong to this charity", nil)
		}
	}

	listing, err := uc.listingRepo.GetByID(ctx, input.VendorID, input.ProductID)
	if err != nil {
		return nil, err
	}

	existing, err := uc.cartRepo.FindMatch(ctx, donorID, input.ProductID, input.CharityID)
	if err == nil {
		existing.Quantity += input.Quantity
		if err := uc.cartRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, errors.CodeNotFound) {
		return nil, err
	}

	item := &entity.CartItem{
		DonorID:     donorID,
		ProductID:   listing.ID,
		ProductName: listing.Name,
		CharityID:   input.CharityID,
		CharityName: input.CharityName,
		PostID:      input.PostID,
		Vendor:      listing.VendorID,
		VendorName:  listing.VendorName,
		Quantity:    input.Quantity,
		Price:       listing.Price,
		Selected:    true,
	}
	if err := uc.cartRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *CartUseCase) List(ctx context.Context, donorID string) (*CartSummary, error) {
	items, err := uc.cartRepo.ListByDonor(ctx, donorID)
	if err != nil {
		return nil, err
	}

	summary := &CartSummary{
		Items:  items,
		Groups: entity.GroupCartItems(items),
	}
	if summary.Groups == nil {
		summary.Groups = []*entity.CartGroup{}
	}
	for _, item := range items {
		if item.Selected {
			summary.SelectedCount++
			summary.SelectedTotal += item.Price * float64(item.Quantity)
		}
	}
	return summary, nil
}

func (uc *CartUseCase) owned(ctx context.Context, donorID, itemID string) (*entity.CartItem, error) {
	item, err := uc.cartRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.DonorID != donorID {
		return nil, errors.Forbidden("You can only modify your own cart", nil)
	}
	return item, nil
}

func (uc *CartUseCase) UpdateQuantity(ctx context.Context, donorID, itemID string, quantity int) (*entity.CartItem, error) {
	if quantity < 1 {
		return nil, errors.BadRequest("Quantity must be at least 1", nil)
	}

	item, err := uc.owned(ctx, donorID, itemID)
	if err != nil {
		return nil, err
	}
	item.Quantity = quantity
	if err := uc.cartRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *CartUseCase) UpdateSelection(ctx context.Context, donorID, itemID string, selected bool) (*entity.CartItem, error) {
	item, err := uc.owned(ctx, donorID, itemID)
	if err != nil {
		return nil, err
	}
	item.Selected = selected
	if err := uc.cartRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *CartUseCase) Remove(ctx context.Context, donorID, itemID string) error {
	if _, err := uc.owned(ctx, donorID, itemID); err != nil {
		return err
	}
	return uc.cartRepo.Delete(ctx, itemID)
}

func (uc *CartUseCase) Clear(ctx context.Context, donorID string) (int, error) {
	return uc.cartRepo.DeleteByDonor(ctx, donorID)
}
