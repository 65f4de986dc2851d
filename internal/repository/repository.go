package repository

import (
	"fmt"
	"sync"
	"time"

	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// LotStore holds lot records.
type LotStore interface {
	SaveLot(lot model.Lot) error
	GetLotByID(lotID string) (model.Lot, error)
	GetAllLots() ([]model.Lot, error)
	DeleteLot(lotID string) error
}

// UserStore resolves acting users. Identity issuance happens upstream.
type UserStore interface {
	SaveUser(user model.User) error
	GetUserByID(userID string) (model.User, error)
}

// AuctionStore holds auction records.
type AuctionStore interface {
	SaveAuction(auction model.Auction) error
	GetAuctionByID(auctionID string) (model.Auction, error)
	GetAllAuctions() ([]model.Auction, error)
	DeleteAuction(auctionID string) error
	ExistsByLotID(lotID string) (bool, error)
	// CloseAuctionIfOngoing transitions the auction to CLOSED only when it is
	// currently ONGOING, as one atomic check-and-set, and reports whether the
	// transition happened. Concurrent callers see at most one true.
	CloseAuctionIfOngoing(auctionID string) (bool, error)
}

// BidStore holds bid records. The two Set* operations are bulk state
// transitions: they must change all matching rows as one atomic operation so
// cascades stay consistent under concurrent lifecycle calls.
type BidStore interface {
	SaveBid(bid model.Bid) error
	GetBidByID(bidID string) (model.Bid, error)
	GetAllBids() ([]model.Bid, error)
	GetBidsByAuctionID(auctionID string) ([]model.Bid, error)
	// SetStateForAuctionCreatedBids transitions every CREATED bid of the
	// auction to state. Bids in any other state are untouched.
	SetStateForAuctionCreatedBids(auctionID string, state model.BidState) error
	// SetOutdatedForExpiredCreatedBids transitions every CREATED bid whose
	// expiry has elapsed (is not after now) to OUTDATED and returns how many
	// were affected. The boundary matches the lifecycle guards: a bid that can
	// no longer be accepted or cancelled is sweepable.
	SetOutdatedForExpiredCreatedBids(now time.Time) (int, error)
}

// PaymentStore holds payment records.
type PaymentStore interface {
	SavePayment(payment model.Payment) error
	GetPaymentByID(paymentID string) (model.Payment, error)
	GetPaymentsByAuctionID(auctionID string) ([]model.Payment, error)
}

// MemoryRepo is a concurrency-safe in-memory implementation of all five
// stores. A single mutex guards every map, so bulk cascades are atomic with
// respect to concurrent lifecycle operations.
type MemoryRepo struct {
	mu       sync.RWMutex
	lots     map[string]model.Lot
	users    map[string]model.User
	auctions map[string]model.Auction
	bids     map[string]model.Bid
	payments map[string]model.Payment
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		lots:     make(map[string]model.Lot),
		users:    make(map[string]model.User),
		auctions: make(map[string]model.Auction),
		bids:     make(map[string]model.Bid),
		payments: make(map[string]model.Payment),
	}
}

// SaveLot inserts or replaces a lot record.
func (r *MemoryRepo) SaveLot(lot model.Lot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lots[lot.LotID] = lot
	return nil
}

func (r *MemoryRepo) GetLotByID(lotID string) (model.Lot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lot, ok := r.lots[lotID]
	if !ok {
		return model.Lot{}, fmt.Errorf("get lot %s: %w", lotID, auctionerrors.ErrLotNotFound)
	}
	return lot, nil
}

func (r *MemoryRepo) GetAllLots() ([]model.Lot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lots := make([]model.Lot, 0, len(r.lots))
	for _, lot := range r.lots {
		lots = append(lots, lot)
	}
	return lots, nil
}

func (r *MemoryRepo) DeleteLot(lotID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lots[lotID]; !ok {
		return fmt.Errorf("delete lot %s: %w", lotID, auctionerrors.ErrLotNotFound)
	}
	delete(r.lots, lotID)
	return nil
}

func (r *MemoryRepo) SaveUser(user model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.UserID] = user
	return nil
}

func (r *MemoryRepo) GetUserByID(userID string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[userID]
	if !ok {
		return model.User{}, fmt.Errorf("get user %s: %w", userID, auctionerrors.ErrUserNotFound)
	}
	return user, nil
}

func (r *MemoryRepo) SaveAuction(auction model.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.auctions[auction.AuctionID] = auction
	return nil
}

func (r *MemoryRepo) GetAuctionByID(auctionID string) (model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	auction, ok := r.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return auction, nil
}

func (r *MemoryRepo) GetAllAuctions() ([]model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	auctions := make([]model.Auction, 0, len(r.auctions))
	for _, auction := range r.auctions {
		auctions = append(auctions, auction)
	}
	return auctions, nil
}

func (r *MemoryRepo) DeleteAuction(auctionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[auctionID]; !ok {
		return fmt.Errorf("delete auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	delete(r.auctions, auctionID)
	return nil
}

// CloseAuctionIfOngoing performs the check-and-set under the write lock, so
// of any number of concurrent claims on one auction exactly one succeeds.
func (r *MemoryRepo) CloseAuctionIfOngoing(auctionID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	auction, ok := r.auctions[auctionID]
	if !ok {
		return false, fmt.Errorf("close auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if auction.State != model.AuctionOngoing {
		return false, nil
	}

	auction.State = model.AuctionClosed
	auction.UpdatedAt = time.Now().UTC()
	r.auctions[auctionID] = auction
	return true, nil
}

// ExistsByLotID reports whether any auction references the lot, regardless of
// auction state.
func (r *MemoryRepo) ExistsByLotID(lotID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, auction := range r.auctions {
		if auction.LotID == lotID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepo) SaveBid(bid model.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bids[bid.BidID] = bid
	return nil
}

func (r *MemoryRepo) GetBidByID(bidID string) (model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bid, ok := r.bids[bidID]
	if !ok {
		return model.Bid{}, fmt.Errorf("get bid %s: %w", bidID, auctionerrors.ErrBidNotFound)
	}
	return bid, nil
}

func (r *MemoryRepo) GetAllBids() ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bids := make([]model.Bid, 0, len(r.bids))
	for _, bid := range r.bids {
		bids = append(bids, bid)
	}
	return bids, nil
}

func (r *MemoryRepo) GetBidsByAuctionID(auctionID string) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var bids []model.Bid
	for _, bid := range r.bids {
		if bid.AuctionID == auctionID {
			bids = append(bids, bid)
		}
	}
	return bids, nil
}

// SetStateForAuctionCreatedBids transitions every CREATED bid of the auction
// to state under a single lock acquisition.
func (r *MemoryRepo) SetStateForAuctionCreatedBids(auctionID string, state model.BidState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	for id, bid := range r.bids {
		if bid.AuctionID == auctionID && bid.State == model.BidCreated {
			bid.State = state
			bid.UpdatedAt = now
			r.bids[id] = bid
		}
	}
	return nil
}

// SetOutdatedForExpiredCreatedBids transitions expired CREATED bids to
// OUTDATED. Bids without an expiry, or in any other state, are left alone.
func (r *MemoryRepo) SetOutdatedForExpiredCreatedBids(now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for id, bid := range r.bids {
		if bid.State == model.BidCreated && bid.Until != nil && !bid.Until.After(now) {
			bid.State = model.BidOutdated
			bid.UpdatedAt = now
			r.bids[id] = bid
			count++
		}
	}
	return count, nil
}

func (r *MemoryRepo) SavePayment(payment model.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments[payment.PaymentID] = payment
	return nil
}

func (r *MemoryRepo) GetPaymentByID(paymentID string) (model.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payment, ok := r.payments[paymentID]
	if !ok {
		return model.Payment{}, fmt.Errorf("get payment %s: %w", paymentID, auctionerrors.ErrPaymentNotFound)
	}
	return payment, nil
}

func (r *MemoryRepo) GetPaymentsByAuctionID(auctionID string) ([]model.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var payments []model.Payment
	for _, payment := range r.payments {
		if payment.AuctionID == auctionID {
			payments = append(payments, payment)
		}
	}
	return payments, nil
}
