package handler

import (
	"github.com/labstack/echo/v4"

	"ripple/internal/usecase"
	"ripple/pkg/logger"
	"ripple/pkg/response"
)

type WalletHandler struct {
	walletUseCase *usecase.WalletUseCase
}

func NewWalletHandler(walletUseCase *usecase.WalletUseCase) *WalletHandler {
	return &WalletHandler{
		walletUseCase: walletUseCase,
	}
}

type withdrawWalletRequest struct {
	Amount float64 `json:"amount" validate:"gt=0"`
}

// GetWallet returns the vendor's wallet, creating an empty one on first use.
func (h *WalletHandler) GetWallet(c echo.Context) error {
	vendorID, err := uidFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	wallet, err := h.walletUseCase.GetWallet(c.Request().Context(), vendorID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, wallet)
}

func (h *WalletHandler) Withdraw(c echo.Context) error {
	var req withdrawWalletRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	vendorID, err := uidFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	wallet, err := h.walletUseCase.Withdraw(c.Request().Context(), vendorID, req.Amount)
	if err != nil {
		return response.Error(c, err)
	}

	logger.Info("Vendor %s withdrew %.2f, balance now %.2f", vendorID, req.Amount, wallet.Balance)
	return response.Success(c, wallet)
}
