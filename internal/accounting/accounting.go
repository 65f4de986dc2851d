package accounting

import (
	"fmt"

	model "auction-house/internal/models"
	"auction-house/internal/repository"
)

//go:generate mockgen -source=accounting.go -destination=mock_accounting.go -package=accounting

// AccountingService computes what an auction's settlement is worth.
type AccountingService interface {
	GetAuctionCost(auctionID string) (float64, error)
}

// AcceptedBidAccounting prices an auction at the amount of its accepted bid.
// An auction without an accepted bid has no defined cost.
type AcceptedBidAccounting struct {
	bids repository.BidStore
}

// NewAcceptedBidAccounting returns an AcceptedBidAccounting over the bid store.
func NewAcceptedBidAccounting(bids repository.BidStore) *AcceptedBidAccounting {
	return &AcceptedBidAccounting{bids: bids}
}

func (a *AcceptedBidAccounting) GetAuctionCost(auctionID string) (float64, error) {
	bids, err := a.bids.GetBidsByAuctionID(auctionID)
	if err != nil {
		return 0, fmt.Errorf("accounting: load bids for auction %s: %w", auctionID, err)
	}

	for _, b := range bids {
		if b.State == model.BidAccepted {
			return b.Amount, nil
		}
	}
	return 0, fmt.Errorf("accounting: auction %s has no accepted bid", auctionID)
}
