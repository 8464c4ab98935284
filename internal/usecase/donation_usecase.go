package usecase

import (
	"context"
	"strings"

	"ripple/internal/domain/entity"
	"ripple/internal/domain/repository"
	"ripple/pkg/errors"
)

type DonationUseCase struct {
	donationRepo repository.DonationRepository
	postRepo     repository.CharityPostRepository
}

func NewDonationUseCase(donationRepo repository.DonationRepository, postRepo repository.CharityPostRepository) *DonationUseCase {
	return &DonationUseCase{
		donationRepo: donationRepo,
		postRepo:     postRepo,
	}
}

type DonationInput struct {
	CharityID string
	PostID    string
	OrderID   string
	DonorID   string
	DonorName string
	Items     []entity.DonatedItem
	Source    string
}

// RecordItemDonations appends a donation record and, when a post is named,
// bumps that post's donated counters.
func (uc *DonationUseCase) RecordItemDonations(ctx context.Context, input DonationInput) (*entity.DonationRecord, error) {
	if input.CharityID == "" {
		return nil, errors.BadRequest("Charity is required", nil)
	}

	items := make([]entity.DonatedItem, 0, len(input.Items))
	for _, item := range input.Items {
		name := strings.TrimSpace(item.Name)
		if name == "" || item.Quantity <= 0 {
			continue
		}
		item.Name = name
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, errors.BadRequest("At least one item with a positive quantity is required", nil)
	}

	source := input.Source
	if source == "" {
		source = entity.DonationSourceDirect
	}

	record := &entity.DonationRecord{
		CharityID: input.CharityID,
		PostID:    input.PostID,
		OrderID:   input.OrderID,
		DonorID:   input.DonorID,
		DonorName: input.DonorName,
		Items:     items,
		Source:    source,
	}
	if err := uc.donationRepo.Record(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// DonateDirect records items a donor gave outside checkout. A referenced post
// must belong to the charity.
func (uc *DonationUseCase) DonateDirect(ctx context.Context, input DonationInput) (*entity.DonationRecord, error) {
	if input.PostID != "" {
		post, err := uc.postRepo.GetByID(ctx, input.PostID)
		if err != nil {
			return nil, err
		}
		if input.CharityID == "" {
			input.CharityID = post.CharityID
		}
		if post.CharityID != input.CharityID {
			return nil, errors.BadRequest("Post does not belong to this charity", nil)
		}
	}
	input.Source = entity.DonationSourceDirect
	input.OrderID = ""
	return uc.RecordItemDonations(ctx, input)
}

func (uc *DonationUseCase) ListForCharity(ctx context.Context, charityID string) ([]*entity.DonationRecord, error) {
	return uc.donationRepo.ListByCharity(ctx, charityID)
}

func (uc *DonationUseCase) ListForDonor(ctx context.Context, donorID string) ([]*entity.DonationRecord, error) {
	return uc.donationRepo.ListByDonor(ctx, donorID)
}
