package lot

import (
	"errors"
	"testing"
	"time"

	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/utils"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

type lotMocks struct {
	lots     *repository.MockLotStore
	auctions *repository.MockAuctionStore
	users    *repository.MockUserStore
}

func newLotService(t *testing.T) (*LotService, lotMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := lotMocks{
		lots:     repository.NewMockLotStore(ctrl),
		auctions: repository.NewMockAuctionStore(ctrl),
		users:    repository.NewMockUserStore(ctrl),
	}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return NewLotService(m.lots, m.auctions, m.users, utils.FixedClock{Instant: now}), m
}

// Tests CreateLot
func TestLotService_CreateLot(t *testing.T) {
	tests := []struct {
		name          string
		lotName       string
		surname       string
		userID        string
		mockSetup     func(m lotMocks)
		expectError   bool
		expectedError error
	}{
		{
			name:    "valid_lot",
			lotName: "Vase",
			surname: "Ming",
			userID:  "user1",
			mockSetup: func(m lotMocks) {
				m.users.EXPECT().GetUserByID("user1").Return(model.User{UserID: "user1"}, nil)
				m.lots.EXPECT().SaveLot(gomock.Any()).Return(nil)
			},
		},
		{
			name:          "empty_name",
			lotName:       "",
			userID:        "user1",
			mockSetup:     func(m lotMocks) {},
			expectError:   true,
			expectedError: auctionerrors.ErrInvalidParameter,
		},
		{
			name:    "unknown_user",
			lotName: "Vase",
			userID:  "ghost",
			mockSetup: func(m lotMocks) {
				m.users.EXPECT().GetUserByID("ghost").Return(model.User{}, auctionerrors.ErrUserNotFound)
			},
			expectError:   true,
			expectedError: auctionerrors.ErrUserNotFound,
		},
		{
			name:    "repo_fails",
			lotName: "Vase",
			userID:  "user1",
			mockSetup: func(m lotMocks) {
				m.users.EXPECT().GetUserByID("user1").Return(model.User{UserID: "user1"}, nil)
				m.lots.EXPECT().SaveLot(gomock.Any()).Return(errors.New("repo write failed"))
			},
			expectError:   true,
			expectedError: auctionerrors.ErrBusinessFailure,
		},
	}

	for _, tc := range tests {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			service, m := newLotService(t)
			tc.mockSetup(m)

			lot, err := service.CreateLot(tc.lotName, tc.surname, tc.userID)

			if tc.expectError {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.expectedError), "expected error: %v, got: %v", tc.expectedError, err)
				return
			}

			require.NoError(t, err)
			require.NotEmpty(t, lot.LotID)
			require.Equal(t, tc.lotName, lot.Name)
			require.Equal(t, tc.surname, lot.Surname)
			require.Equal(t, tc.userID, lot.CreatedBy)
		})
	}
}

// Tests DeleteLot
func TestLotService_DeleteLot(t *testing.T) {
	t.Run("delete_unreferenced_lot", func(t *testing.T) {
		service, m := newLotService(t)
		m.lots.EXPECT().GetLotByID("lot1").Return(model.Lot{LotID: "lot1"}, nil)
		m.auctions.EXPECT().ExistsByLotID("lot1").Return(false, nil)
		m.lots.EXPECT().DeleteLot("lot1").Return(nil)

		require.NoError(t, service.DeleteLot("lot1"))
	})

	t.Run("delete_missing_lot_is_noop", func(t *testing.T) {
		service, m := newLotService(t)
		m.lots.EXPECT().GetLotByID("ghost").Return(model.Lot{}, auctionerrors.ErrLotNotFound)

		require.NoError(t, service.DeleteLot("ghost"))
	})

	t.Run("delete_referenced_lot_is_refused", func(t *testing.T) {
		service, m := newLotService(t)
		m.lots.EXPECT().GetLotByID("lot1").Return(model.Lot{LotID: "lot1"}, nil)
		m.auctions.EXPECT().ExistsByLotID("lot1").Return(true, nil)

		err := service.DeleteLot("lot1")
		require.Error(t, err)
		require.True(t, errors.Is(err, auctionerrors.ErrInvalidParameter))
	})
}
