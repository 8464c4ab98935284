package usecase

import (
	"context"
	"time"

	"ripple/internal/domain/entity"
	"ripple/internal/domain/repository"
	"ripple/pkg/errors"
	"ripple/pkg/logger"
)

type OrderUseCase struct {
	checkoutRepo repository.CheckoutRepository
	orderRepo    repository.OrderRepository
	userRepo     repository.UserRepository
	donations    *DonationUseCase
	notifier     Notifier
	now          func() time.Time
}

func NewOrderUseCase(
	checkoutRepo repository.CheckoutRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	donations *DonationUseCase,
	notifier Notifier,
) *OrderUseCase {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &OrderUseCase{
		checkoutRepo: checkoutRepo,
		orderRepo:    orderRepo,
		userRepo:     userRepo,
		donations:    donations,
		notifier:     notifier,
		now:          time.Now,
	}
}

// Checkout turns the donor's selected cart rows into one pending order per
// charity and vendor pair. The rows are read, and stock, orders and the cart
// written, in one transaction, so a repeated or concurrent checkout finds an
// empty cart. Donation records and notifications follow best-effort.
func (uc *OrderUseCase) Checkout(ctx context.Context, donorID string) ([]*entity.Order, error) {
	donorName := ""
	if donor, err := uc.userRepo.GetByID(ctx, donorID); err == nil {
		donorName = donor.Name
	}

	orders, err := uc.checkoutRepo.PlaceOrders(ctx, donorID, func(selected []*entity.CartItem) ([]*entity.Order, error) {
		if len(selected) == 0 {
			return nil, errors.EmptyCart()
		}
		return buildOrders(donorID, donorName, selected, uc.now()), nil
	})
	if err != nil {
		return nil, err
	}

	for _, order := range orders {
		uc.recordDonations(ctx, order)
		uc.notifier.Notify(order.VendorID, EventOrderCreated, order)
	}

	logger.With("donor_id", donorID, "orders", len(orders)).Infof("Checkout complete")
	return orders, nil
}

func buildOrders(donorID, donorName string, selected []*entity.CartItem, now time.Time) []*entity.Order {
	groups := entity.GroupCartItems(selected)
	orders := make([]*entity.Order, 0, len(groups))
	for _, group := range groups {
		order := &entity.Order{
			DonorID:     donorID,
			DonorName:   donorName,
			CharityID:   group.CharityID,
			CharityName: group.CharityName,
			VendorID:    group.VendorID,
			VendorName:  group.VendorName,
			Items:       make([]entity.OrderItem, 0, len(group.Items)),
			Status:      entity.OrderStatusPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		for _, item := range group.Items {
			order.Items = append(order.Items, entity.OrderItem{
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				Price:       item.Price,
				PostID:      item.PostID,
			})
		}
		order.Total = order.ItemsTotal()
		orders = append(orders, order)
	}
	return orders
}

// recordDonations writes one donation record per post referenced by the
// order's items. Items without a post go into a record for the charity alone.
func (uc *OrderUseCase) recordDonations(ctx context.Context, order *entity.Order) {
	if uc.donations == nil {
		return
	}

	byPost := make(map[string][]entity.DonatedItem)
	var postIDs []string
	for _, item := range order.Items {
		if _, ok := byPost[item.PostID]; !ok {
			postIDs = append(postIDs, item.PostID)
		}
		byPost[item.PostID] = append(byPost[item.PostID], entity.DonatedItem{
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			ProductID: item.ProductID,
		})
	}

	for _, postID := range postIDs {
		_, err := uc.donations.RecordItemDonations(ctx, DonationInput{
			CharityID: order.CharityID,
			PostID:    postID,
			OrderID:   order.ID,
			DonorID:   order.DonorID,
			DonorName: order.DonorName,
			Items:     byPost[postID],
			Source:    entity.DonationSourceCheckout,
		})
		if err != nil {
			logger.Warn("Failed to record donations for order %s: %v", order.ID, err)
		}
	}
}

func (uc *OrderUseCase) ListForVendor(ctx context.Context, vendorID, status string) ([]*entity.Order, error) {
	if status != "" && !entity.ValidOrderStatus(status) {
		return nil, errors.BadRequest("Unknown order status", nil)
	}
	return uc.orderRepo.ListByVendor(ctx, vendorID, status)
}

func (uc *OrderUseCase) ListForDonor(ctx context.Context, donorID string) ([]*entity.Order, error) {
	return uc.orderRepo.ListByDonor(ctx, donorID)
}

func (uc *OrderUseCase) ListForCharity(ctx context.Context, charityID string) ([]*entity.Order, error) {
	return uc.orderRepo.ListByCharity(ctx, charityID)
}

// Get returns an order to its donor, vendor or charity.
func (uc *OrderUseCase) Get(ctx context.Context, uid, orderID string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if uid != order.DonorID && uid != order.VendorID && uid != order.CharityID {
		return nil, errors.Forbidden("You do not have access to this order", nil)
	}
	return order, nil
}

// UpdateStatus moves an order along its lifecycle on behalf of its vendor.
// The first move into Shipped or Completed credits the vendor wallet with the
// order's item total in the same transaction.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, vendorID, orderID, status string) (*entity.Order, error) {
	if !entity.ValidOrderStatus(status) {
		return nil, errors.BadRequest("Unknown order status", nil)
	}

	var credited float64
	order, err := uc.orderRepo.UpdateStatus(ctx, orderID, func(order *entity.Order) (float64, error) {
		credited = 0
		if order.VendorID != vendorID {
			return 0, errors.Forbidden("Only the order's vendor can change its status", nil)
		}
		if !order.CanTransitionTo(status) {
			return 0, errors.InvalidTransition(order.Status, status)
		}
		if order.CreditsWallet(status) {
			credited = order.ItemsTotal()
			order.WalletCredited = true
		}
		order.ApplyStatus(status, uc.now())
		return credited, nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify(order.DonorID, EventOrderStatus, map[string]interface{}{
		"order_id": order.ID,
		"status":   order.Status,
	})
	if credited > 0 {
		uc.notifier.Notify(order.VendorID, EventWalletCredited, map[string]interface{}{
			"order_id": order.ID,
			"amount":   credited,
		})
		logger.Info("Credited vendor %s with %.2f for order %s", order.VendorID, credited, order.ID)
	}

	return order, nil
}
