package jobs

import (
	"context"
	"fmt"
	"time"

	"auction-house/internal/accounting"
	"auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/utils"
)

// PaymentCreator is the payment manager primitive the payment-ensure sweep
// reuses; it is satisfied by paymentService.PaymentService.
type PaymentCreator interface {
	CreatePayment(auctionID, actingUserID string, amount float64) (models.Payment, error)
}

// ReconciliationWorker runs the two periodic sweeps that keep persisted state
// consistent over time: outdating expired bids and ensuring every closed
// auction has exactly one live payment intent. Sweeps run sequentially; a new
// tick never overlaps a run still in progress.
type ReconciliationWorker struct {
	auctions     repository.AuctionStore
	bids         repository.BidStore
	payments     repository.PaymentStore
	accounting   accounting.AccountingService
	creator      PaymentCreator
	clock        utils.Clock
	systemUserID string
	interval     time.Duration
}

// NewReconciliationWorker wires a worker over the given stores and
// collaborators. systemUserID is the identity payments created by the sweep
// are stamped with; it must exist in the user store.
func NewReconciliationWorker(
	auctions repository.AuctionStore,
	bids repository.BidStore,
	payments repository.PaymentStore,
	acc accounting.AccountingService,
	creator PaymentCreator,
	clock utils.Clock,
	systemUserID string,
	interval time.Duration,
) *ReconciliationWorker {
	return &ReconciliationWorker{
		auctions:     auctions,
		bids:         bids,
		payments:     payments,
		accounting:   acc,
		creator:      creator,
		clock:        clock,
		systemUserID: systemUserID,
		interval:     interval,
	}
}

// Run executes both sweeps on every tick until ctx is cancelled.
func (w *ReconciliationWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	utils.Info("reconciliation worker started", map[string]any{"interval": w.interval.String()})

	for {
		select {
		case <-ctx.Done():
			utils.Info("reconciliation worker stopped", nil)
			return
		case <-ticker.C:
			if count, err := w.OutdateExpiredBids(); err != nil {
				utils.Error("outdate sweep failed", map[string]any{"error": err.Error()})
			} else if count > 0 {
				utils.Info("outdate sweep finished", map[string]any{"outdated": count})
			}

			if err := w.EnsureAuctionPayments(); err != nil {
				utils.Error("payment-ensure sweep failed", map[string]any{"error": err.Error()})
			}
		}
	}
}

// OutdateExpiredBids transitions every CREATED bid whose expiry has elapsed
// to OUTDATED in one bulk operation and returns the number affected. Bids in
// any other state are untouched regardless of their expiry.
func (w *ReconciliationWorker) OutdateExpiredBids() (int, error) {
	count, err := w.bids.SetOutdatedForExpiredCreatedBids(w.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("jobs: outdate expired bids: %w", err)
	}
	return count, nil
}

// EnsureAuctionPayments walks every closed auction and creates a payment for
// each one that has neither a CREATED nor a DONE payment, pricing it via the
// accounting collaborator. A failure on one auction is logged and does not
// abort the sweep for the others.
func (w *ReconciliationWorker) EnsureAuctionPayments() error {
	auctions, err := w.auctions.GetAllAuctions()
	if err != nil {
		return fmt.Errorf("jobs: list auctions: %w", err)
	}

	for _, auction := range auctions {
		if auction.State != models.AuctionClosed {
			continue
		}
		if err := w.ensurePaymentFor(auction); err != nil {
			utils.Error("payment-ensure sweep: auction skipped", map[string]any{
				"auction_id": auction.AuctionID,
				"error":      err.Error(),
			})
		}
	}
	return nil
}

func (w *ReconciliationWorker) ensurePaymentFor(auction models.Auction) error {
	payments, err := w.payments.GetPaymentsByAuctionID(auction.AuctionID)
	if err != nil {
		return fmt.Errorf("load payments: %w", err)
	}

	// Re-check before creating: this sweep is the only writer that could
	// violate "at most one live payment intent per auction".
	for _, p := range payments {
		if p.State == models.PaymentCreated || p.State == models.PaymentDone {
			return nil
		}
	}

	cost, err := w.accounting.GetAuctionCost(auction.AuctionID)
	if err != nil {
		return fmt.Errorf("compute auction cost: %w", err)
	}

	payment, err := w.creator.CreatePayment(auction.AuctionID, w.systemUserID, cost)
	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}

	utils.Info("payment created for closed auction", map[string]any{
		"auction_id": auction.AuctionID,
		"payment_id": payment.PaymentID,
		"amount":     cost,
	})
	return nil
}
