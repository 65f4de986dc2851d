package auction

import (
	"errors"
	"fmt"
	"time"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/utils"
)

// AuctionService drives the auction lifecycle: CREATED -> ONGOING -> CLOSED,
// with CREATED|ONGOING -> CANCELLED as the alternate terminal path. Every
// mutating operation follows the same guard ordering: terminal-state check,
// idempotence check, time-validity check, then persist.
type AuctionService struct {
	auctions repository.AuctionStore
	bids     repository.BidStore
	lots     repository.LotStore
	users    repository.UserStore
	clock    utils.Clock
}

// NewAuctionService creates a new AuctionService instance
func NewAuctionService(
	auctions repository.AuctionStore,
	bids repository.BidStore,
	lots repository.LotStore,
	users repository.UserStore,
	clock utils.Clock,
) *AuctionService {
	return &AuctionService{
		auctions: auctions,
		bids:     bids,
		lots:     lots,
		users:    users,
		clock:    clock,
	}
}

// AuctionPatch carries the updatable schedule fields. A nil field means
// "leave unchanged".
type AuctionPatch struct {
	StartTime *time.Time
	StopTime  *time.Time
}

// CreateAuction creates a CREATED auction against an existing lot, stamped
// with the acting user. Both the lot and the acting user must exist.
func (s *AuctionService) CreateAuction(lotID, actingUserID string, startTime, stopTime *time.Time) (models.Auction, error) {
	if lotID == "" || actingUserID == "" {
		return models.Auction{}, fmt.Errorf("service: %w - missing lotID or actingUserID", auctionerrors.ErrInvalidParameter)
	}

	if _, err := s.users.GetUserByID(actingUserID); err != nil {
		return models.Auction{}, fmt.Errorf("service: resolve acting user: %w", err)
	}
	if _, err := s.lots.GetLotByID(lotID); err != nil {
		return models.Auction{}, fmt.Errorf("service: resolve lot: %w", err)
	}
	if startTime != nil && stopTime != nil && !startTime.Before(*stopTime) {
		return models.Auction{}, fmt.Errorf("service: %w - start time must precede stop time", auctionerrors.ErrInvalidParameter)
	}

	now := s.clock.Now()
	auction := models.Auction{
		AuctionID:  utils.GenerateID(),
		LotID:      lotID,
		State:      models.AuctionCreated,
		StartTime:  startTime,
		StopTime:   stopTime,
		CreatedBy:  actingUserID,
		ModifiedBy: actingUserID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.auctions.SaveAuction(auction); err != nil {
		return models.Auction{}, fmt.Errorf("service: %w: save auction: %v", auctionerrors.ErrBusinessFailure, err)
	}
	return auction, nil
}

// UpdateDetails applies a schedule patch to an auction. Each changed field is
// rejected when its new value lies in the past or when the auction's state no
// longer allows changing it: start time only while CREATED, stop time while
// CREATED or ONGOING. After both fields are applied, start must still
// strictly precede stop.
func (s *AuctionService) UpdateDetails(auctionID string, patch AuctionPatch, actingUserID string) (models.Auction, error) {
	auction, err := s.auctions.GetAuctionByID(auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: %w", err)
	}

	now := s.clock.Now()
	changed := false

	if patch.StartTime != nil && !timesEqual(patch.StartTime, auction.StartTime) {
		if patch.StartTime.Before(now) {
			return models.Auction{}, fmt.Errorf("service: %w - start time is in the past", auctionerrors.ErrInvalidParameter)
		}
		if auction.State != models.AuctionCreated {
			return models.Auction{}, fmt.Errorf("service: %w - start time can only be changed while the auction is %s",
				auctionerrors.ErrInvalidParameter, models.AuctionCreated)
		}
		auction.StartTime = patch.StartTime
		changed = true
	}

	if patch.StopTime != nil && !timesEqual(patch.StopTime, auction.StopTime) {
		if patch.StopTime.Before(now) {
			return models.Auction{}, fmt.Errorf("service: %w - stop time is in the past", auctionerrors.ErrInvalidParameter)
		}
		if auction.State != models.AuctionCreated && auction.State != models.AuctionOngoing {
			return models.Auction{}, fmt.Errorf("service: %w - stop time can only be changed while the auction is %s or %s",
				auctionerrors.ErrInvalidParameter, models.AuctionCreated, models.AuctionOngoing)
		}
		auction.StopTime = patch.StopTime
		changed = true
	}

	if auction.StartTime != nil && auction.StopTime != nil && !auction.StartTime.Before(*auction.StopTime) {
		return models.Auction{}, fmt.Errorf("service: %w - start time must precede stop time", auctionerrors.ErrInvalidParameter)
	}

	auction.ModifiedBy = actingUserID
	if changed {
		auction.UpdatedAt = now
	}

	if err := s.auctions.SaveAuction(auction); err != nil {
		return models.Auction{}, fmt.Errorf("service: %w: save auction %s: %v", auctionerrors.ErrBusinessFailure, auctionID, err)
	}
	return auction, nil
}

// StartAuction transitions a CREATED auction to ONGOING and stamps its start
// time with the current instant. Starting an ONGOING auction is a no-op.
func (s *AuctionService) StartAuction(auctionID string) (models.Auction, error) {
	auction, err := s.auctions.GetAuctionByID(auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: %w", err)
	}

	if auction.State == models.AuctionOngoing {
		return auction, nil
	}
	if auction.State != models.AuctionCreated {
		return models.Auction{}, fmt.Errorf("service: %w - auction cannot be started from state %s",
			auctionerrors.ErrInvalidParameter, auction.State)
	}

	now := s.clock.Now()
	if auction.StopTime != nil && !auction.StopTime.After(now) {
		return models.Auction{}, fmt.Errorf("service: %w - stop time has already elapsed", auctionerrors.ErrInvalidParameter)
	}

	auction.StartTime = &now
	auction.State = models.AuctionOngoing
	auction.UpdatedAt = now

	if err := s.auctions.SaveAuction(auction); err != nil {
		return models.Auction{}, fmt.Errorf("service: %w: save auction %s: %v", auctionerrors.ErrBusinessFailure, auctionID, err)
	}
	return auction, nil
}

// CancelAuction transitions a CREATED or ONGOING auction to CANCELLED and, in
// the same logical unit, cancels every CREATED bid on it. Cancelling an
// already-cancelled auction is a no-op that never touches storage; cancelling
// a CLOSED auction always fails.
func (s *AuctionService) CancelAuction(auctionID string) error {
	auction, err := s.auctions.GetAuctionByID(auctionID)
	if err != nil {
		return fmt.Errorf("service: %w", err)
	}

	if auction.State == models.AuctionClosed {
		return fmt.Errorf("service: %w - closed auction cannot be cancelled", auctionerrors.ErrInvalidParameter)
	}
	if auction.State == models.AuctionCancelled {
		return nil
	}

	now := s.clock.Now()
	if auction.StopTime != nil && !auction.StopTime.After(now) {
		return fmt.Errorf("service: %w - stop time has already elapsed", auctionerrors.ErrInvalidParameter)
	}

	auction.State = models.AuctionCancelled
	auction.UpdatedAt = now

	if err := s.auctions.SaveAuction(auction); err != nil {
		return fmt.Errorf("service: %w: save auction %s: %v", auctionerrors.ErrBusinessFailure, auctionID, err)
	}
	if err := s.bids.SetStateForAuctionCreatedBids(auctionID, models.BidCancelled); err != nil {
		return fmt.Errorf("service: %w: cancel bids of auction %s: %v", auctionerrors.ErrBusinessFailure, auctionID, err)
	}

	utils.Info("auction cancelled", map[string]any{"auction_id": auctionID})
	return nil
}

// DeleteAuction removes an auction. Deleting a missing auction is a no-op,
// not an error.
func (s *AuctionService) DeleteAuction(auctionID string) error {
	if _, err := s.auctions.GetAuctionByID(auctionID); err != nil {
		if errors.Is(err, auctionerrors.ErrAuctionNotFound) {
			return nil
		}
		return fmt.Errorf("service: %w: load auction %s: %v", auctionerrors.ErrBusinessFailure, auctionID, err)
	}

	if err := s.auctions.DeleteAuction(auctionID); err != nil {
		return fmt.Errorf("service: %w: delete auction %s: %v", auctionerrors.ErrBusinessFailure, auctionID, err)
	}
	return nil
}

// GetAuctionByID returns a single auction.
func (s *AuctionService) GetAuctionByID(auctionID string) (models.Auction, error) {
	auction, err := s.auctions.GetAuctionByID(auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: %w", err)
	}
	return auction, nil
}

// GetAllAuctions returns every auction.
func (s *AuctionService) GetAllAuctions() ([]models.Auction, error) {
	auctions, err := s.auctions.GetAllAuctions()
	if err != nil {
		return nil, fmt.Errorf("service: failed to list auctions: %w", err)
	}
	return auctions, nil
}

func timesEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
