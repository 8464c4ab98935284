package handler

import (
	"github.com/labstack/echo/v4"

	"ripple/internal/domain/entity"
	"ripple/internal/usecase"
	"ripple/pkg/errors"
)

var (
	authHandler           *AuthHandler
	profileHandler        *ProfileHandler
	listingHandler        *ListingHandler
	cartHandler           *CartHandler
	orderHandler          *OrderHandler
	walletHandler         *WalletHandler
	charityHandler        *CharityHandler
	donationHandler       *DonationHandler
	recommendationHandler *RecommendationHandler
	uploadHandler         *UploadHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	profileUseCase *usecase.ProfileUseCase,
	listingUseCase *usecase.ListingUseCase,
	cartUseCase *usecase.CartUseCase,
	orderUseCase *usecase.OrderUseCase,
	walletUseCase *usecase.WalletUseCase,
	charityUseCase *usecase.CharityUseCase,
	donationUseCase *usecase.DonationUseCase,
	recommendationUseCase *usecase.RecommendationUseCase,
	uploadUseCase *usecase.UploadUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	profileHandler = NewProfileHandler(profileUseCase)
	listingHandler = NewListingHandler(listingUseCase)
	cartHandler = NewCartHandler(cartUseCase)
	orderHandler = NewOrderHandler(orderUseCase)
	walletHandler = NewWalletHandler(walletUseCase)
	charityHandler = NewCharityHandler(charityUseCase)
	donationHandler = NewDonationHandler(donationUseCase)
	recommendationHandler = NewRecommendationHandler(recommendationUseCase)
	uploadHandler = NewUploadHandler(uploadUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetProfileHandler() *ProfileHandler {
	return profileHandler
}

func GetListingHandler() *ListingHandler {
	return listingHandler
}

func GetCartHandler() *CartHandler {
	return cartHandler
}

func GetOrderHandler() *OrderHandler {
	return orderHandler
}

func GetWalletHandler() *WalletHandler {
	return walletHandler
}

func GetCharityHandler() *CharityHandler {
	return charityHandler
}

func GetDonationHandler() *DonationHandler {
	return donationHandler
}

func GetRecommendationHandler() *RecommendationHandler {
	return recommendationHandler
}

func GetUploadHandler() *UploadHandler {
	return uploadHandler
}

// uidFrom returns the uid the auth middleware stored on the context.
func uidFrom(c echo.Context) (string, error) {
	uid, ok := c.Get("uid").(string)
	if !ok || uid == "" {
		return "", errors.Unauthorized("Authentication required", nil)
	}
	return uid, nil
}

// userFrom returns the account record the role middleware stored on the
// context, if any.
func userFrom(c echo.Context) *entity.User {
	user, _ := c.Get("user").(*entity.User)
	return user
}
