package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/url"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MehediHasan95/tasty-pizza-server/internal/domain"
	"github.com/MehediHasan95/tasty-pizza-server/internal/gateway"
	"github.com/MehediHasan95/tasty-pizza-server/internal/repository"
)

var (
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrBadSignature       = errors.New("callback signature invalid")
	ErrAlreadyPaid        = errors.New("order already paid")
)

// CallbackVerifier authenticates gateway callbacks (see gateway.VerifyIPN).
type CallbackVerifier interface {
	VerifyIPN(form url.Values) bool
}

// CheckoutInfo is what the frontend posts when the buyer checks out.
type CheckoutInfo struct {
	UID        string             `json:"uid"`
	FullName   string             `json:"fullName"`
	Email      string             `json:"email"`
	Address    string             `json:"address"`
	City       string             `json:"city"`
	Postcode   string             `json:"postcode"`
	Phone      string             `json:"phone"`
	TotalPrice float64            `json:"total_price"`
	Carts      []domain.CartEntry `json:"carts"`
}

// PaymentService runs the order/payment workflow: persist the pending order
// first, then open the gateway session, and let only a verified callback
// flip the order to paid.
type PaymentService struct {
	orders  repository.OrderRepository
	items   repository.ItemRepository
	carts   repository.CartRepository
	gateway gateway.SessionInitiator

	publicBaseURL   string
	frontendBaseURL string
}

func NewPaymentService(
	orders repository.OrderRepository,
	items repository.ItemRepository,
	carts repository.CartRepository,
	gw gateway.SessionInitiator,
	publicBaseURL, frontendBaseURL string,
) *PaymentService {
	return &PaymentService{
		orders:          orders,
		items:           items,
		carts:           carts,
		gateway:         gw,
		publicBaseURL:   publicBaseURL,
		frontendBaseURL: frontendBaseURL,
	}
}

// CreateIntent persists a pending order keyed by a fresh transaction id,
// then opens the hosted payment session. If the gateway refuses, the order
// just written is removed again so no orphan pending order remains.
func (s *PaymentService) CreateIntent(ctx context.Context, info CheckoutInfo) (string, error) {
	tranID := generateTransactionID()

	order := &domain.Order{
		UID:           info.UID,
		FullName:      info.FullName,
		Email:         info.Email,
		Address:       info.Address,
		City:          info.City,
		Postcode:      info.Postcode,
		Phone:         info.Phone,
		Carts:         info.Carts,
		TotalPrice:    info.TotalPrice,
		TransactionID: tranID,
		PaymentStatus: false,
		Status:        false,
	}

	if _, err := s.orders.Insert(ctx, order); err != nil {
		return "", fmt.Errorf("failed to persist pending order: %w", err)
	}

	session, err := s.gateway.InitiateSession(ctx, gateway.SessionRequest{
		TotalAmount:      strconv.FormatFloat(info.TotalPrice, 'f', 2, 64),
		Currency:         "BDT",
		TranID:           tranID,
		SuccessURL:       fmt.Sprintf("%s/payment-success/%s?uid=%s", s.publicBaseURL, tranID, url.QueryEscape(info.UID)),
		FailURL:          s.publicBaseURL + "/cancle-payment",
		CancelURL:        s.publicBaseURL + "/cancle-payment",
		IPNURL:           fmt.Sprintf("%s/payment-success/%s", s.publicBaseURL, tranID),
		CustomerName:     info.FullName,
		CustomerEmail:    info.Email,
		CustomerAddress:  info.Address,
		CustomerCity:     info.City,
		CustomerPostcode: info.Postcode,
		CustomerCountry:  "Bangladesh",
		CustomerPhone:    info.Phone,
		ProductName:      "Food order",
		ProductCategory:  "Food",
		ProductProfile:   "general",
		ShippingMethod:   "Courier",
	})
	if err != nil {
		// Compensate: the buyer never saw a payment page for this order.
		if _, delErr := s.orders.DeleteByTransactionID(ctx, tranID); delErr != nil {
			log.Printf("failed to remove pending order %s after gateway error: %v", tranID, delErr)
		}
		return "", fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	return session.GatewayPageURL, nil
}

// ConfirmPayment handles a verified success callback. The paid-flip is
// guarded on payment_status, so replays return ErrAlreadyPaid and skip the
// stock decrement and cart cleanup.
func (s *PaymentService) ConfirmPayment(ctx context.Context, tranID string) error {
	order, err := s.orders.FindByTransactionID(ctx, tranID)
	if err != nil {
		return err
	}

	result, err := s.orders.MarkPaid(ctx, tranID)
	if err != nil {
		return err
	}
	if result.ModifiedCount == 0 {
		return ErrAlreadyPaid
	}

	itemIDs := make([]primitive.ObjectID, 0, len(order.Carts))
	cartIDs := make([]primitive.ObjectID, 0, len(order.Carts))
	for _, entry := range order.Carts {
		if itemID, errHex := primitive.ObjectIDFromHex(entry.ItemID); errHex == nil {
			itemIDs = append(itemIDs, itemID)
		}
		if !entry.ID.IsZero() {
			cartIDs = append(cartIDs, entry.ID)
		}
	}

	if _, err := s.items.DecrementStock(ctx, itemIDs); err != nil {
		return err
	}
	if _, err := s.carts.DeleteByIDs(ctx, cartIDs); err != nil {
		return err
	}

	return nil
}

// SuccessRedirectURL is where the buyer's browser lands after a confirmed
// payment.
func (s *PaymentService) SuccessRedirectURL(tranID string) string {
	return fmt.Sprintf("%s/payment-success/%s", s.frontendBaseURL, tranID)
}

// CancelRedirectURL is where fail and cancel callbacks send the browser.
func (s *PaymentService) CancelRedirectURL() string {
	return s.frontendBaseURL + "/user-dashboard/my-cart"
}

// generateTransactionID builds the TP_-prefixed numeric token the gateway
// and the order record share. Regenerates until the token is exactly 13
// characters, i.e. the numeric part has ten digits.
func generateTransactionID() string {
	for {
		tranID := "TP_" + strconv.FormatInt(rand.Int63n(10_000_000_001), 10)
		if len(tranID) == 13 {
			return tranID
		}
	}
}
