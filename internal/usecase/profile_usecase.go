package usecase

import (
	"context"
	"time"

	"ripple/internal/domain/entity"
	"ripple/internal/domain/repository"
	"ripple/pkg/errors"
	"ripple/pkg/logger"
)

const publicCharityTTL = 10 * time.Minute

type ProfileUseCase struct {
	vendorRepo  repository.VendorRepository
	charityRepo repository.PublicCharityRepository
	cache       Cache
}

func NewProfileUseCase(vendorRepo repository.VendorRepository, charityRepo repository.PublicCharityRepository, cache Cache) *ProfileUseCase {
	return &ProfileUseCase{
		vendorRepo:  vendorRepo,
		charityRepo: charityRepo,
		cache:       cache,
	}
}

type VendorProfileInput struct {
	BusinessName string
	Phone        string
	Address      string
	Category     string
	Description  string
	LogoURL      string
}

type CharityProfileInput struct {
	Name        string
	Mission     string
	Description string
	Location    string
	Website     string
	LogoURL     string
	Categories  []string
}

func (uc *ProfileUseCase) GetVendorProfile(ctx context.Context, vendorID string) (*entity.Vendor, error) {
	return uc.vendorRepo.GetByID(ctx, vendorID)
}

func (uc *ProfileUseCase) UpdateVendorProfile(ctx context.Context, vendorID string, input VendorProfileInput) (*entity.Vendor, error) {
	vendor, err := uc.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		if !errors.Is(err, errors.CodeNotFound) {
			return nil, err
		}
		vendor = &entity.Vendor{ID: vendorID, Type: entity.RoleVendor}
	}

	if input.BusinessName != "" {
		vendor.BusinessName = input.BusinessName
	}
	vendor.Phone = input.Phone
	vendor.Address = input.Address
	vendor.Category = input.Category
	vendor.Description = input.Description
	if input.LogoURL != "" {
		vendor.LogoURL = input.LogoURL
	}

	if vendor.CreatedAt.IsZero() {
		err = uc.vendorRepo.Create(ctx, vendor)
	} else {
		err = uc.vendorRepo.Update(ctx, vendor)
	}
	if err != nil {
		return nil, err
	}
	return vendor, nil
}

func (uc *ProfileUseCase) GetCharityProfile(ctx context.Context, charityID string) (*entity.PublicCharity, error) {
	return uc.charityRepo.GetByID(ctx, charityID)
}

func (uc *ProfileUseCase) UpdateCharityProfile(ctx context.Context, charityID string, input CharityProfileInput) (*entity.PublicCharity, error) {
	charity, err := uc.charityRepo.GetByID(ctx, charityID)
	if err != nil {
		if !errors.Is(err, errors.CodeNotFound) {
			return nil, err
		}
		charity = &entity.PublicCharity{ID: charityID}
	}

	if input.Name != "" {
		charity.Name = input.Name
	}
	charity.Mission = input.Mission
	charity.Description = input.Description
	charity.Location = input.Location
	charity.Website = input.Website
	charity.Categories = input.Categories
	if input.LogoURL != "" {
		charity.LogoURL = input.LogoURL
	}

	if err := uc.charityRepo.Upsert(ctx, charity); err != nil {
		return nil, err
	}

	if err := uc.cache.Delete(ctx, publicCharityKey(charityID)); err != nil {
		logger.Warn("Failed to evict charity %s from cache: %v", charityID, err)
	}
	return charity, nil
}

// GetPublicCharity serves the donor-facing profile, cached for a few minutes.
func (uc *ProfileUseCase) GetPublicCharity(ctx context.Context, charityID string) (*entity.PublicCharity, error) {
	key := publicCharityKey(charityID)

	var cached entity.PublicCharity
	if hit, err := uc.cache.GetJSON(ctx, key, &cached); err != nil {
		logger.Warn("Charity cache read failed: %v", err)
	} else if hit {
		return &cached, nil
	}

	charity, err := uc.charityRepo.GetByID(ctx, charityID)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.SetJSON(ctx, key, charity, publicCharityTTL); err != nil {
		logger.Warn("Charity cache write failed: %v", err)
	}
	return charity, nil
}

func publicCharityKey(id string) string {
	return "charity:public:" + id
}
