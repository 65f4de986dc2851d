package bid

import (
	"fmt"
	"time"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/utils"
)

// BidService drives the bid lifecycle. A bid starts CREATED and ends in
// exactly one of ACCEPTED, REJECTED, CANCELLED or OUTDATED. At most one bid
// per auction ever reaches ACCEPTED; acceptance closes the auction and
// rejects every sibling bid still in CREATED.
type BidService struct {
	bids     repository.BidStore
	auctions repository.AuctionStore
	users    repository.UserStore
	clock    utils.Clock
}

// NewBidService creates a new BidService instance
func NewBidService(
	bids repository.BidStore,
	auctions repository.AuctionStore,
	users repository.UserStore,
	clock utils.Clock,
) *BidService {
	return &BidService{
		bids:     bids,
		auctions: auctions,
		users:    users,
		clock:    clock,
	}
}

// CreateBid records a CREATED bid against an ongoing auction. The acting user
// must resolve; a missing user surfaces as a business failure carrying the
// lookup error, while a missing auction surfaces as not-found.
func (s *BidService) CreateBid(auctionID, actingUserID string, amount float64, until *time.Time) (models.Bid, error) {
	if auctionID == "" || actingUserID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - missing auctionID or actingUserID", auctionerrors.ErrInvalidParameter)
	}
	if amount <= 0 {
		return models.Bid{}, fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidParameter)
	}

	if _, err := s.users.GetUserByID(actingUserID); err != nil {
		return models.Bid{}, fmt.Errorf("service: %w: resolve acting user: %v", auctionerrors.ErrBusinessFailure, err)
	}

	auction, err := s.auctions.GetAuctionByID(auctionID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: %w", err)
	}
	if auction.State != models.AuctionOngoing {
		return models.Bid{}, fmt.Errorf("service: %w - auction is not ongoing", auctionerrors.ErrInvalidParameter)
	}

	now := s.clock.Now()
	if until != nil && !until.After(now) {
		return models.Bid{}, fmt.Errorf("service: %w - bid expiry is in the past", auctionerrors.ErrInvalidParameter)
	}

	bid := models.Bid{
		BidID:      utils.GenerateID(),
		AuctionID:  auctionID,
		Amount:     amount,
		Until:      until,
		State:      models.BidCreated,
		CreatedBy:  actingUserID,
		ModifiedBy: actingUserID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.bids.SaveBid(bid); err != nil {
		return models.Bid{}, fmt.Errorf("service: %w: save bid: %v", auctionerrors.ErrBusinessFailure, err)
	}
	return bid, nil
}

// CancelBid withdraws a CREATED bid. Cancelling an already-cancelled bid is a
// no-op; an elapsed expiry blocks cancellation.
func (s *BidService) CancelBid(bidID string) error {
	bid, err := s.bids.GetBidByID(bidID)
	if err != nil {
		return fmt.Errorf("service: %w", err)
	}

	if bid.State == models.BidCancelled {
		return nil
	}
	if bid.State != models.BidCreated {
		return fmt.Errorf("service: %w - bid cannot be cancelled from state %s", auctionerrors.ErrInvalidParameter, bid.State)
	}

	now := s.clock.Now()
	if bid.Until != nil && !bid.Until.After(now) {
		return fmt.Errorf("service: %w - bid expiry has already elapsed", auctionerrors.ErrInvalidParameter)
	}

	bid.State = models.BidCancelled
	bid.UpdatedAt = now

	if err := s.bids.SaveBid(bid); err != nil {
		return fmt.Errorf("service: %w: save bid %s: %v", auctionerrors.ErrBusinessFailure, bidID, err)
	}
	return nil
}

// AcceptBid accepts a CREATED bid as one logical unit: the parent auction
// becomes CLOSED, the bid becomes ACCEPTED, and every sibling bid still in
// CREATED becomes REJECTED via a single bulk transition. Accepting an
// already-accepted bid is a no-op. The auction is claimed first through an
// atomic check-and-set, so concurrent accepts on sibling bids resolve to a
// single winner: every later claim fails the ongoing check. The accepted bid
// is persisted before the bulk rejection, so the cascade can never touch the
// winner.
func (s *BidService) AcceptBid(bidID string) (models.Bid, error) {
	bid, err := s.bids.GetBidByID(bidID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: %w", err)
	}

	if bid.State == models.BidAccepted {
		return bid, nil
	}
	if bid.State != models.BidCreated {
		return models.Bid{}, fmt.Errorf("service: %w - bid cannot be accepted from state %s", auctionerrors.ErrInvalidParameter, bid.State)
	}

	now := s.clock.Now()
	if bid.Until != nil && !bid.Until.After(now) {
		return models.Bid{}, fmt.Errorf("service: %w - bid expiry has already elapsed", auctionerrors.ErrInvalidParameter)
	}

	claimed, err := s.auctions.CloseAuctionIfOngoing(bid.AuctionID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: %w: resolve auction of bid %s: %v", auctionerrors.ErrBusinessFailure, bidID, err)
	}
	if !claimed {
		return models.Bid{}, fmt.Errorf("service: %w - auction is not ongoing", auctionerrors.ErrInvalidParameter)
	}

	bid.State = models.BidAccepted
	bid.UpdatedAt = now
	if err := s.bids.SaveBid(bid); err != nil {
		return models.Bid{}, fmt.Errorf("service: %w: save bid %s: %v", auctionerrors.ErrBusinessFailure, bidID, err)
	}

	if err := s.bids.SetStateForAuctionCreatedBids(bid.AuctionID, models.BidRejected); err != nil {
		return models.Bid{}, fmt.Errorf("service: %w: reject sibling bids of auction %s: %v", auctionerrors.ErrBusinessFailure, bid.AuctionID, err)
	}

	utils.Info("bid accepted", map[string]any{
		"bid_id":     bid.BidID,
		"auction_id": bid.AuctionID,
		"amount":     bid.Amount,
	})
	return bid, nil
}

// GetBidByID returns a single bid.
func (s *BidService) GetBidByID(bidID string) (models.Bid, error) {
	bid, err := s.bids.GetBidByID(bidID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: %w", err)
	}
	return bid, nil
}

// GetAllBids returns every bid.
func (s *BidService) GetAllBids() ([]models.Bid, error) {
	bids, err := s.bids.GetAllBids()
	if err != nil {
		return nil, fmt.Errorf("service: failed to list bids: %w", err)
	}
	return bids, nil
}

// GetBidsByAuctionID returns all bids placed against one auction.
func (s *BidService) GetBidsByAuctionID(auctionID string) ([]models.Bid, error) {
	bids, err := s.bids.GetBidsByAuctionID(auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list bids for auction %s: %w", auctionID, err)
	}
	return bids, nil
}
