package payment

import (
	"fmt"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/gateway"
	"auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/utils"
)

// PaymentService drives the payment lifecycle: CREATED -> DONE|CANCELLED.
// Creation requests a link from the external gateway before anything is
// persisted, so no payment record ever exists without one.
type PaymentService struct {
	payments repository.PaymentStore
	auctions repository.AuctionStore
	users    repository.UserStore
	gateway  gateway.PaymentGateway
	clock    utils.Clock
}

// NewPaymentService creates a new PaymentService instance
func NewPaymentService(
	payments repository.PaymentStore,
	auctions repository.AuctionStore,
	users repository.UserStore,
	gw gateway.PaymentGateway,
	clock utils.Clock,
) *PaymentService {
	return &PaymentService{
		payments: payments,
		auctions: auctions,
		users:    users,
		gateway:  gw,
		clock:    clock,
	}
}

// CreatePayment resolves the acting user, requests a payment link from the
// gateway, resolves the auction and persists a CREATED payment carrying the
// link. Any failing step aborts the whole operation; no partial record is
// left behind.
func (s *PaymentService) CreatePayment(auctionID, actingUserID string, amount float64) (models.Payment, error) {
	if auctionID == "" || actingUserID == "" {
		return models.Payment{}, fmt.Errorf("service: %w - missing auctionID or actingUserID", auctionerrors.ErrInvalidParameter)
	}
	if amount <= 0 {
		return models.Payment{}, fmt.Errorf("service: %w - non-positive payment amount", auctionerrors.ErrInvalidParameter)
	}

	if _, err := s.users.GetUserByID(actingUserID); err != nil {
		return models.Payment{}, fmt.Errorf("service: %w: resolve acting user: %v", auctionerrors.ErrBusinessFailure, err)
	}

	link, err := s.gateway.CreatePaymentLink(amount)
	if err != nil {
		return models.Payment{}, fmt.Errorf("service: %w: create payment link: %v", auctionerrors.ErrBusinessFailure, err)
	}

	auction, err := s.auctions.GetAuctionByID(auctionID)
	if err != nil {
		return models.Payment{}, fmt.Errorf("service: %w", err)
	}

	now := s.clock.Now()
	payment := models.Payment{
		PaymentID:  utils.GenerateID(),
		AuctionID:  auction.AuctionID,
		Amount:     amount,
		Link:       link,
		State:      models.PaymentCreated,
		CreatedBy:  actingUserID,
		ModifiedBy: actingUserID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.payments.SavePayment(payment); err != nil {
		return models.Payment{}, fmt.Errorf("service: %w: save payment: %v", auctionerrors.ErrBusinessFailure, err)
	}
	return payment, nil
}

// CancelPayment voids the external payment and then flips the local state to
// CANCELLED. A gateway failure leaves local state untouched: consistency with
// the external system takes priority. Cancelling an already-cancelled payment
// is a no-op; a DONE payment cannot be cancelled.
func (s *PaymentService) CancelPayment(paymentID string) error {
	payment, err := s.payments.GetPaymentByID(paymentID)
	if err != nil {
		return fmt.Errorf("service: %w", err)
	}

	if payment.State == models.PaymentCancelled {
		return nil
	}
	if payment.State == models.PaymentDone {
		return fmt.Errorf("service: %w - completed payment cannot be cancelled", auctionerrors.ErrInvalidParameter)
	}

	if err := s.gateway.CancelPayment(payment.Link); err != nil {
		return fmt.Errorf("service: %w: cancel payment link: %v", auctionerrors.ErrBusinessFailure, err)
	}

	payment.State = models.PaymentCancelled
	payment.UpdatedAt = s.clock.Now()

	if err := s.payments.SavePayment(payment); err != nil {
		// The gateway cancellation is not reversed: the link is already void
		// and voiding it again is safe, so a retried cancel converges.
		utils.Error("payment cancelled at gateway but local save failed", map[string]any{
			"payment_id": paymentID,
			"link":       payment.Link,
			"error":      err.Error(),
		})
		return fmt.Errorf("service: %w: save payment %s: %v", auctionerrors.ErrBusinessFailure, paymentID, err)
	}
	return nil
}

// GetPaymentByID returns a single payment.
func (s *PaymentService) GetPaymentByID(paymentID string) (models.Payment, error) {
	payment, err := s.payments.GetPaymentByID(paymentID)
	if err != nil {
		return models.Payment{}, fmt.Errorf("service: %w", err)
	}
	return payment, nil
}

// GetPaymentsByAuctionID returns all payments tied to one auction.
func (s *PaymentService) GetPaymentsByAuctionID(auctionID string) ([]models.Payment, error) {
	payments, err := s.payments.GetPaymentsByAuctionID(auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list payments for auction %s: %w", auctionID, err)
	}
	return payments, nil
}
