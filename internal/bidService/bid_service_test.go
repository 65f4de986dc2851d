package bid

import (
	"errors"
	"sync"
	"testing"
	"time"

	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/utils"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type bidMocks struct {
	bids     *repository.MockBidStore
	auctions *repository.MockAuctionStore
	users    *repository.MockUserStore
}

func newBidService(t *testing.T, now time.Time) (*BidService, bidMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := bidMocks{
		bids:     repository.NewMockBidStore(ctrl),
		auctions: repository.NewMockAuctionStore(ctrl),
		users:    repository.NewMockUserStore(ctrl),
	}
	return NewBidService(m.bids, m.auctions, m.users, utils.FixedClock{Instant: now}), m
}

// Tests CreateBid
func TestBidService_CreateBid(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(1 * time.Hour)
	past := now.Add(-1 * time.Hour)

	ongoing := model.Auction{AuctionID: "auction1", LotID: "lot1", State: model.AuctionOngoing}

	tests := []struct {
		name          string
		auctionID     string
		userID        string
		amount        float64
		until         *time.Time
		mockSetup     func(m bidMocks)
		expectError   bool
		expectedError error
	}{
		{
			name:      "valid_bid",
			auctionID: "auction1",
			userID:    "user1",
			amount:    100,
			until:     &future,
			mockSetup: func(m bidMocks) {
				m.users.EXPECT().GetUserByID("user1").Return(model.User{UserID: "user1"}, nil)
				m.auctions.EXPECT().GetAuctionByID("auction1").Return(ongoing, nil)
				m.bids.EXPECT().SaveBid(gomock.Any()).Return(nil)
			},
		},
		{
			name:      "valid_bid_without_expiry",
			auctionID: "auction1",
			userID:    "user1",
			amount:    100,
			mockSetup: func(m bidMocks) {
				m.users.EXPECT().GetUserByID("user1").Return(model.User{UserID: "user1"}, nil)
				m.auctions.EXPECT().GetAuctionByID("auction1").Return(ongoing, nil)
				m.bids.EXPECT().SaveBid(gomock.Any()).Return(nil)
			},
		},
		{
			name:          "empty_auctionID",
			auctionID:     "",
			userID:        "user1",
			amount:        100,
			mockSetup:     func(m bidMocks) {},
			expectError:   true,
			expectedError: auctionerrors.ErrInvalidParameter,
		},
		{
			name:          "zero_amount",
			auctionID:     "auction1",
			userID:        "user1",
			amount:        0,
			mockSetup:     func(m bidMocks) {},
			expectError:   true,
			expectedError: auctionerrors.ErrInvalidParameter,
		},
		{
			name:      "unknown_user_becomes_business_failure",
			auctionID: "auction1",
			userID:    "ghost",
			amount:    100,
			mockSetup: func(m bidMocks) {
				m.users.EXPECT().GetUserByID("ghost").Return(model.User{}, auctionerrors.ErrUserNotFound)
			},
			expectError:   true,
			expectedError: auctionerrors.ErrBusinessFailure,
		},
		{
			name:      "unknown_auction",
			auctionID: "ghost",
			userID:    "user1",
			amount:    100,
			mockSetup: func(m bidMocks) {
				m.users.EXPECT().GetUserByID("user1").Return(model.User{UserID: "user1"}, nil)
				m.auctions.EXPECT().GetAuctionByID("ghost").Return(model.Auction{}, auctionerrors.ErrAuctionNotFound)
			},
			expectError:   true,
			expectedError: auctionerrors.ErrAuctionNotFound,
		},
		{
			name:      "auction_not_ongoing",
			auctionID: "auction1",
			userID:    "user1",
			amount:    100,
			mockSetup: func(m bidMocks) {
				m.users.EXPECT().GetUserByID("user1").Return(model.User{UserID: "user1"}, nil)
				m.auctions.EXPECT().GetAuctionByID("auction1").Return(model.Auction{AuctionID: "auction1", State: model.AuctionCreated}, nil)
			},
			expectError:   true,
			expectedError: auctionerrors.ErrInvalidParameter,
		},
		{
			name:      "expiry_in_the_past",
			auctionID: "auction1",
			userID:    "user1",
			amount:    100,
			until:     &past,
			mockSetup: func(m bidMocks) {
				m.users.EXPECT().GetUserByID("user1").Return(model.User{UserID: "user1"}, nil)
				m.auctions.EXPECT().GetAuctionByID("auction1").Return(ongoing, nil)
			},
			expectError:   true,
			expectedError: auctionerrors.ErrInvalidParameter,
		},
		{
			name:      "repo_fails",
			auctionID: "auction1",
			userID:    "user1",
			amount:    100,
			mockSetup: func(m bidMocks) {
				m.users.EXPECT().GetUserByID("user1").Return(model.User{UserID: "user1"}, nil)
				m.auctions.EXPECT().GetAuctionByID("auction1").Return(ongoing, nil)
				m.bids.EXPECT().SaveBid(gomock.Any()).Return(errors.New("repo write failed"))
			},
			expectError:   true,
			expectedError: auctionerrors.ErrBusinessFailure,
		},
	}

	for _, tc := range tests {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			service, m := newBidService(t, now)
			tc.mockSetup(m)

			bid, err := service.CreateBid(tc.auctionID, tc.userID, tc.amount, tc.until)

			if tc.expectError {
				require.Error(t, err)
				if tc.expectedError != nil {
					require.True(t, errors.Is(err, tc.expectedError), "expected error: %v, got: %v", tc.expectedError, err)
				}
				return
			}

			require.NoError(t, err)
			require.NotEmpty(t, bid.BidID)
			_, parseErr := uuid.Parse(bid.BidID)
			require.NoError(t, parseErr, "BidID should be a valid UUID")
			require.Equal(t, tc.auctionID, bid.AuctionID)
			require.Equal(t, tc.amount, bid.Amount)
			require.Equal(t, model.BidCreated, bid.State)
			require.Equal(t, tc.userID, bid.CreatedBy)
			require.Equal(t, now, bid.CreatedAt)
		})
	}
}

// Tests CancelBid
func TestBidService_CancelBid(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(1 * time.Hour)
	past := now.Add(-1 * time.Minute)

	tests := []struct {
		name          string
		bidID         string
		mockSetup     func(m bidMocks)
		expectError   bool
		expectedError error
	}{
		{
			name:  "cancel_created_bid",
			bidID: "bid1",
			mockSetup: func(m bidMocks) {
				m.bids.EXPECT().GetBidByID("bid1").Return(model.Bid{BidID: "bid1", State: model.BidCreated, Until: &future}, nil)
				m.bids.EXPECT().SaveBid(gomock.Any()).DoAndReturn(func(b model.Bid) error {
					require.Equal(t, model.BidCancelled, b.State)
					require.Equal(t, now, b.UpdatedAt)
					return nil
				})
			},
		},
		{
			// Repeated cancellation is a no-op: no write may happen.
			name:  "cancel_already_cancelled_bid",
			bidID: "bid1",
			mockSetup: func(m bidMocks) {
				m.bids.EXPECT().GetBidByID("bid1").Return(model.Bid{BidID: "bid1", State: model.BidCancelled}, nil)
			},
		},
		{
			name:  "cancel_accepted_bid",
			bidID: "bid1",
			mockSetup: func(m bidMocks) {
				m.bids.EXPECT().GetBidByID("bid1").Return(model.Bid{BidID: "bid1", State: model.BidAccepted}, nil)
			},
			expectError:   true,
			expectedError: auctionerrors.ErrInvalidParameter,
		},
		{
			name:  "cancel_expired_bid",
			bidID: "bid1",
			mockSetup: func(m bidMocks) {
				m.bids.EXPECT().GetBidByID("bid1").Return(model.Bid{BidID: "bid1", State: model.BidCreated, Until: &past}, nil)
			},
			expectError:   true,
			expectedError: auctionerrors.ErrInvalidParameter,
		},
		{
			name:  "unknown_bid",
			bidID: "ghost",
			mockSetup: func(m bidMocks) {
				m.bids.EXPECT().GetBidByID("ghost").Return(model.Bid{}, auctionerrors.ErrBidNotFound)
			},
			expectError:   true,
			expectedError: auctionerrors.ErrBidNotFound,
		},
	}

	for _, tc := range tests {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			service, m := newBidService(t, now)
			tc.mockSetup(m)

			err := service.CancelBid(tc.bidID)

			if tc.expectError {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.expectedError), "expected error: %v, got: %v", tc.expectedError, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// Tests AcceptBid
func TestBidService_AcceptBid(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(1 * time.Hour)
	past := now.Add(-1 * time.Minute)

	created := model.Bid{BidID: "bid1", AuctionID: "auction1", Amount: 100, State: model.BidCreated, Until: &future}

	tests := []struct {
		name          string
		bidID         string
		mockSetup     func(m bidMocks)
		expectError   bool
		expectedError error
	}{
		{
			name:  "accept_closes_auction_and_rejects_siblings",
			bidID: "bid1",
			mockSetup: func(m bidMocks) {
				m.bids.EXPECT().GetBidByID("bid1").Return(created, nil)
				m.auctions.EXPECT().CloseAuctionIfOngoing("auction1").Return(true, nil)
				m.bids.EXPECT().SaveBid(gomock.Any()).DoAndReturn(func(b model.Bid) error {
					require.Equal(t, model.BidAccepted, b.State)
					return nil
				})
				m.bids.EXPECT().SetStateForAuctionCreatedBids("auction1", model.BidRejected).Return(nil)
			},
		},
		{
			// Accepting twice is a no-op: the second call must not write.
			name:  "accept_already_accepted_bid",
			bidID: "bid1",
			mockSetup: func(m bidMocks) {
				accepted := created
				accepted.State = model.BidAccepted
				m.bids.EXPECT().GetBidByID("bid1").Return(accepted, nil)
			},
		},
		{
			name:  "accept_rejected_bid",
			bidID: "bid1",
			mockSetup: func(m bidMocks) {
				rejected := created
				rejected.State = model.BidRejected
				m.bids.EXPECT().GetBidByID("bid1").Return(rejected, nil)
			},
			expectError:   true,
			expectedError: auctionerrors.ErrInvalidParameter,
		},
		{
			name:  "accept_expired_bid",
			bidID: "bid1",
			mockSetup: func(m bidMocks) {
				expired := created
				expired.Until = &past
				m.bids.EXPECT().GetBidByID("bid1").Return(expired, nil)
			},
			expectError:   true,
			expectedError: auctionerrors.ErrInvalidParameter,
		},
		{
			name:  "auction_no_longer_ongoing",
			bidID: "bid1",
			mockSetup: func(m bidMocks) {
				m.bids.EXPECT().GetBidByID("bid1").Return(created, nil)
				m.auctions.EXPECT().CloseAuctionIfOngoing("auction1").Return(false, nil)
			},
			expectError:   true,
			expectedError: auctionerrors.ErrInvalidParameter,
		},
		{
			name:  "auction_missing_becomes_business_failure",
			bidID: "bid1",
			mockSetup: func(m bidMocks) {
				m.bids.EXPECT().GetBidByID("bid1").Return(created, nil)
				m.auctions.EXPECT().CloseAuctionIfOngoing("auction1").Return(false, auctionerrors.ErrAuctionNotFound)
			},
			expectError:   true,
			expectedError: auctionerrors.ErrBusinessFailure,
		},
		{
			name:  "sibling_rejection_fails",
			bidID: "bid1",
			mockSetup: func(m bidMocks) {
				m.bids.EXPECT().GetBidByID("bid1").Return(created, nil)
				m.auctions.EXPECT().CloseAuctionIfOngoing("auction1").Return(true, nil)
				m.bids.EXPECT().SaveBid(gomock.Any()).Return(nil)
				m.bids.EXPECT().SetStateForAuctionCreatedBids("auction1", model.BidRejected).Return(errors.New("repo write failed"))
			},
			expectError:   true,
			expectedError: auctionerrors.ErrBusinessFailure,
		},
	}

	for _, tc := range tests {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			service, m := newBidService(t, now)
			tc.mockSetup(m)

			bid, err := service.AcceptBid(tc.bidID)

			if tc.expectError {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.expectedError), "expected error: %v, got: %v", tc.expectedError, err)
			} else {
				require.NoError(t, err)
				require.Equal(t, model.BidAccepted, bid.State)
			}
		})
	}
}

// Accepting one of several bids placed against the same auction, end to end
// against the in-memory repository: the winner stays ACCEPTED, the auction
// closes, the sibling still in CREATED becomes REJECTED, and a second accept
// against the closed auction fails.
func TestBidService_AcceptBid_Cascade(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := repository.NewMemoryRepo()
	service := NewBidService(repo, repo, repo, utils.FixedClock{Instant: now})

	require.NoError(t, repo.SaveUser(model.User{UserID: "user1", Username: "alice"}))
	require.NoError(t, repo.SaveAuction(model.Auction{AuctionID: "auction1", LotID: "lot1", State: model.AuctionOngoing}))

	b1, err := service.CreateBid("auction1", "user1", 100, nil)
	require.NoError(t, err)
	b2, err := service.CreateBid("auction1", "user1", 150, nil)
	require.NoError(t, err)

	accepted, err := service.AcceptBid(b1.BidID)
	require.NoError(t, err)
	require.Equal(t, model.BidAccepted, accepted.State)

	auction, err := repo.GetAuctionByID("auction1")
	require.NoError(t, err)
	require.Equal(t, model.AuctionClosed, auction.State)

	sibling, err := repo.GetBidByID(b2.BidID)
	require.NoError(t, err)
	require.Equal(t, model.BidRejected, sibling.State)

	// The winner must survive the bulk rejection untouched.
	winner, err := repo.GetBidByID(b1.BidID)
	require.NoError(t, err)
	require.Equal(t, model.BidAccepted, winner.State)

	// The sibling ended up REJECTED, a terminal state; accepting it must fail.
	_, err = service.AcceptBid(b2.BidID)
	require.Error(t, err)
	require.True(t, errors.Is(err, auctionerrors.ErrInvalidParameter))
}

// Two goroutines race to accept sibling bids on the same auction. Exactly one
// accept may win; the loser must fail the ongoing check, and the auction must
// never end up with two ACCEPTED bids.
func TestBidService_AcceptBid_ConcurrentSiblings(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 25; i++ {
		repo := repository.NewMemoryRepo()
		service := NewBidService(repo, repo, repo, utils.FixedClock{Instant: now})

		require.NoError(t, repo.SaveUser(model.User{UserID: "user1", Username: "alice"}))
		require.NoError(t, repo.SaveAuction(model.Auction{AuctionID: "auction1", LotID: "lot1", State: model.AuctionOngoing}))

		b1, err := service.CreateBid("auction1", "user1", 100, nil)
		require.NoError(t, err)
		b2, err := service.CreateBid("auction1", "user1", 150, nil)
		require.NoError(t, err)

		start := make(chan struct{})
		errs := make([]error, 2)

		var wg sync.WaitGroup
		for j, bidID := range []string{b1.BidID, b2.BidID} {
			wg.Add(1)
			go func(j int, bidID string) {
				defer wg.Done()
				<-start
				_, errs[j] = service.AcceptBid(bidID)
			}(j, bidID)
		}
		close(start)
		wg.Wait()

		var wins, losses int
		for _, err := range errs {
			if err == nil {
				wins++
				continue
			}
			losses++
			require.True(t, errors.Is(err, auctionerrors.ErrInvalidParameter), "loser got: %v", err)
		}
		require.Equal(t, 1, wins)
		require.Equal(t, 1, losses)

		auction, err := repo.GetAuctionByID("auction1")
		require.NoError(t, err)
		require.Equal(t, model.AuctionClosed, auction.State)

		bids, err := repo.GetBidsByAuctionID("auction1")
		require.NoError(t, err)
		var accepted int
		for _, b := range bids {
			if b.State == model.BidAccepted {
				accepted++
			}
		}
		require.Equal(t, 1, accepted)
	}
}
