package lot

import (
	"errors"
	"fmt"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/utils"
)

// LotService manages lot records. Lots have no lifecycle of their own, but a
// lot cannot be deleted while any auction still references it.
type LotService struct {
	lots     repository.LotStore
	auctions repository.AuctionStore
	users    repository.UserStore
	clock    utils.Clock
}

// NewLotService creates a new LotService instance
func NewLotService(
	lots repository.LotStore,
	auctions repository.AuctionStore,
	users repository.UserStore,
	clock utils.Clock,
) *LotService {
	return &LotService{
		lots:     lots,
		auctions: auctions,
		users:    users,
		clock:    clock,
	}
}

// CreateLot persists a new lot stamped with the acting user.
func (s *LotService) CreateLot(name, surname, actingUserID string) (models.Lot, error) {
	if name == "" || actingUserID == "" {
		return models.Lot{}, fmt.Errorf("service: %w - missing name or actingUserID", auctionerrors.ErrInvalidParameter)
	}

	if _, err := s.users.GetUserByID(actingUserID); err != nil {
		return models.Lot{}, fmt.Errorf("service: resolve acting user: %w", err)
	}

	now := s.clock.Now()
	lot := models.Lot{
		LotID:      utils.GenerateID(),
		Name:       name,
		Surname:    surname,
		CreatedBy:  actingUserID,
		ModifiedBy: actingUserID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.lots.SaveLot(lot); err != nil {
		return models.Lot{}, fmt.Errorf("service: %w: save lot: %v", auctionerrors.ErrBusinessFailure, err)
	}
	return lot, nil
}

// DeleteLot removes a lot. Deleting a missing lot is a no-op; deleting a lot
// that any auction references is refused.
func (s *LotService) DeleteLot(lotID string) error {
	if _, err := s.lots.GetLotByID(lotID); err != nil {
		if errors.Is(err, auctionerrors.ErrLotNotFound) {
			return nil
		}
		return fmt.Errorf("service: %w: load lot %s: %v", auctionerrors.ErrBusinessFailure, lotID, err)
	}

	referenced, err := s.auctions.ExistsByLotID(lotID)
	if err != nil {
		return fmt.Errorf("service: %w: check auctions of lot %s: %v", auctionerrors.ErrBusinessFailure, lotID, err)
	}
	if referenced {
		return fmt.Errorf("service: %w - lot is referenced by at least one auction", auctionerrors.ErrInvalidParameter)
	}

	if err := s.lots.DeleteLot(lotID); err != nil {
		return fmt.Errorf("service: %w: delete lot %s: %v", auctionerrors.ErrBusinessFailure, lotID, err)
	}
	return nil
}

// GetLotByID returns a single lot.
func (s *LotService) GetLotByID(lotID string) (models.Lot, error) {
	lot, err := s.lots.GetLotByID(lotID)
	if err != nil {
		return models.Lot{}, fmt.Errorf("service: %w", err)
	}
	return lot, nil
}

// GetAllLots returns every lot.
func (s *LotService) GetAllLots() ([]models.Lot, error) {
	lots, err := s.lots.GetAllLots()
	if err != nil {
		return nil, fmt.Errorf("service: failed to list lots: %w", err)
	}
	return lots, nil
}
