package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"ripple/internal/domain/entity"
	"ripple/internal/domain/repository"
	"ripple/pkg/errors"
)

type firestoreOrderRepository struct {
	client *firestore.Client
}

func NewFirestoreOrderRepository(client *firestore.Client) repository.OrderRepository {
	return &firestoreOrderRepository{
		client: client,
	}
}

func decodeOrder(doc *firestore.DocumentSnapshot) (*entity.Order, error) {
	var order entity.Order
	if err := doc.DataTo(&order); err != nil {
		return nil, errors.Internal("Failed to parse order data", err)
	}
	order.ID = doc.Ref.ID
	return &order, nil
}

func (r *firestoreOrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	doc, err := r.client.Collection("orders").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Order", err)
		}
		return nil, errors.Internal("Failed to get order", err)
	}
	return decodeOrder(doc)
}

func (r *firestoreOrderRepository) ListByVendor(ctx context.Context, vendorID, orderStatus string) ([]*entity.Order, error) {
	query := r.client.Collection("orders").Where("vendorId", "==", vendorID)
	if orderStatus != "" {
		query = query.Where("status", "==", orderStatus)
	}
	return collectOrders(query.Documents(ctx))
}

func (r *firestoreOrderRepository) ListByDonor(ctx context.Context, donorID string) ([]*entity.Order, error) {
	return collectOrders(r.client.Collection("orders").Where("donorId", "==", donorID).Documents(ctx))
}

func (r *firestoreOrderRepository) ListByCharity(ctx context.Context, charityID string) ([]*entity.Order, error) {
	return collectOrders(r.client.Collection("orders").Where("charityId", "==", charityID).Documents(ctx))
}

func (r *firestoreOrderRepository) UpdateStatus(ctx context.Context, id string, decide repository.StatusDecision) (*entity.Order, error) {
	orderRef := r.client.Collection("orders").Doc(id)
	entryID := uuid.New().String()

	var updated *entity.Order
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(orderRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Order", err)
			}
			return err
		}
		order, err := decodeOrder(doc)
		if err != nil {
			return err
		}

		// All reads must precede writes, so the wallet is loaded up front.
		wRef := walletRef(r.client, order.VendorID)
		wallet, err := getWalletTx(tx, wRef)
		if err != nil {
			return err
		}

		credit, err := decide(order)
		if err != nil {
			return err
		}

		if credit > 0 {
			wallet.Credit(entryID, credit, order.ID, time.Now())
			if err := tx.Set(wRef, wallet); err != nil {
				return err
			}
		}

		updated = order
		return tx.Set(orderRef, order)
	})
	if err != nil {
		return nil, errors.Wrap(err, "Failed to update order status")
	}

	return updated, nil
}

func collectOrders(iter *firestore.DocumentIterator) ([]*entity.Order, error) {
	defer iter.Stop()

	orders := []*entity.Order{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list orders", err)
		}

		order, err := decodeOrder(doc)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	// Newest first without requiring a composite index
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

type firestoreCheckoutRepository struct {
	client *firestore.Client
}

func NewFirestoreCheckoutRepository(client *firestore.Client) repository.CheckoutRepository {
	return &firestoreCheckoutRepository{
		client: client,
	}
}

type stockKey struct {
	vendorID  string
	listingID string
}

func (r *firestoreCheckoutRepository) PlaceOrders(ctx context.Context, donorID string, build repository.OrderBuilder) ([]*entity.Order, error) {
	cartQuery := r.client.Collection("cart").Where("donorId", "==", donorID)

	var placed []*entity.Order
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		cartDocs, err := tx.Documents(cartQuery).GetAll()
		if err != nil {
			return err
		}

		var selected []*entity.CartItem
		for _, doc := range cartDocs {
			var item entity.CartItem
			if err := doc.DataTo(&item); err != nil {
				return errors.Internal("Failed to parse cart item", err)
			}
			item.ID = doc.Ref.ID
			if item.Selected {
				selected = append(selected, &item)
			}
		}

		orders, err := build(selected)
		if err != nil {
			return err
		}

		ordered := make(map[stockKey]int)
		var keys []stockKey
		for _, order := range orders {
			order.ID = r.client.Collection("orders").NewDoc().ID
			for _, item := range order.Items {
				key := stockKey{vendorID: order.VendorID, listingID: item.ProductID}
				if _, seen := ordered[key]; !seen {
					keys = append(keys, key)
				}
				ordered[key] += item.Quantity
			}
		}

		refs := make([]*firestore.DocumentRef, len(keys))
		for i, key := range keys {
			refs[i] = listingsOf(r.client, key.vendorID).Doc(key.listingID)
		}
		snaps, err := tx.GetAll(refs)
		if err != nil {
			return err
		}

		// All reads are done; writes follow.
		for i, snap := range snaps {
			if !snap.Exists() {
				return errors.NotFound("Listing "+keys[i].listingID, nil)
			}
			current, err := snap.DataAt("quantity")
			if err != nil {
				return err
			}
			remaining := entity.DecrementStock(toInt(current), ordered[keys[i]])
			if err := tx.Update(refs[i], []firestore.Update{
				{Path: "quantity", Value: remaining},
				{Path: "updatedAt", Value: time.Now()},
			}); err != nil {
				return err
			}
		}

		for _, order := range orders {
			if err := tx.Create(r.client.Collection("orders").Doc(order.ID), order); err != nil {
				return err
			}
		}

		for _, doc := range cartDocs {
			if err := tx.Delete(doc.Ref); err != nil {
				return err
			}
		}

		placed = orders
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "Failed to place orders")
	}
	return placed, nil
}

// toInt normalises the numeric types Firestore hands back for a field.
func toInt(v interface{}) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case float64:
		return int(n)
	case int:
		return n
	}
	return 0
}
