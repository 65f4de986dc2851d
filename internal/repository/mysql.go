package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"
)

// OpenMySQL connects to MySQL and verifies the connection.
func OpenMySQL(user, pass, host, port, name string) (*sqlx.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

// MySQLRepo implements all five stores on top of MySQL. Save* operations are
// upserts; the bulk bid transitions run as single UPDATE statements so the
// database applies them atomically.
type MySQLRepo struct {
	db *sqlx.DB
}

// NewMySQLRepo returns a MySQLRepo bound to the given database.
func NewMySQLRepo(db *sqlx.DB) *MySQLRepo {
	return &MySQLRepo{db: db}
}

func (r *MySQLRepo) SaveLot(lot model.Lot) error {
	const q = `INSERT INTO lots (id, name, surname, created_by, modified_by, created_at, updated_at)
		VALUES (:id, :name, :surname, :created_by, :modified_by, :created_at, :updated_at)
		ON DUPLICATE KEY UPDATE name = VALUES(name), surname = VALUES(surname),
			modified_by = VALUES(modified_by), updated_at = VALUES(updated_at)`
	_, err := r.db.NamedExec(q, lot)
	return err
}

func (r *MySQLRepo) GetLotByID(lotID string) (model.Lot, error) {
	var lot model.Lot
	err := r.db.Get(&lot, `SELECT * FROM lots WHERE id = ?`, lotID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Lot{}, fmt.Errorf("get lot %s: %w", lotID, auctionerrors.ErrLotNotFound)
	}
	return lot, err
}

func (r *MySQLRepo) GetAllLots() ([]model.Lot, error) {
	lots := []model.Lot{}
	err := r.db.Select(&lots, `SELECT * FROM lots ORDER BY created_at`)
	return lots, err
}

func (r *MySQLRepo) DeleteLot(lotID string) error {
	res, err := r.db.Exec(`DELETE FROM lots WHERE id = ?`, lotID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("delete lot %s: %w", lotID, auctionerrors.ErrLotNotFound)
	}
	return nil
}

func (r *MySQLRepo) SaveUser(user model.User) error {
	const q = `INSERT INTO users (id, username) VALUES (:id, :username)
		ON DUPLICATE KEY UPDATE username = VALUES(username)`
	_, err := r.db.NamedExec(q, user)
	return err
}

func (r *MySQLRepo) GetUserByID(userID string) (model.User, error) {
	var user model.User
	err := r.db.Get(&user, `SELECT * FROM users WHERE id = ?`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, fmt.Errorf("get user %s: %w", userID, auctionerrors.ErrUserNotFound)
	}
	return user, err
}

func (r *MySQLRepo) SaveAuction(auction model.Auction) error {
	const q = `INSERT INTO auctions (id, lot_id, state, start_time, stop_time, created_by, modified_by, created_at, updated_at)
		VALUES (:id, :lot_id, :state, :start_time, :stop_time, :created_by, :modified_by, :created_at, :updated_at)
		ON DUPLICATE KEY UPDATE state = VALUES(state), start_time = VALUES(start_time),
			stop_time = VALUES(stop_time), modified_by = VALUES(modified_by), updated_at = VALUES(updated_at)`
	_, err := r.db.NamedExec(q, auction)
	return err
}

func (r *MySQLRepo) GetAuctionByID(auctionID string) (model.Auction, error) {
	var auction model.Auction
	err := r.db.Get(&auction, `SELECT * FROM auctions WHERE id = ?`, auctionID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return auction, err
}

func (r *MySQLRepo) GetAllAuctions() ([]model.Auction, error) {
	auctions := []model.Auction{}
	err := r.db.Select(&auctions, `SELECT * FROM auctions ORDER BY created_at`)
	return auctions, err
}

func (r *MySQLRepo) DeleteAuction(auctionID string) error {
	res, err := r.db.Exec(`DELETE FROM auctions WHERE id = ?`, auctionID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("delete auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return nil
}

// CloseAuctionIfOngoing relies on the conditional UPDATE being atomic: the
// database applies the state predicate and the write as one statement, so
// concurrent claims on one auction see at most one affected row.
func (r *MySQLRepo) CloseAuctionIfOngoing(auctionID string) (bool, error) {
	const q = `UPDATE auctions SET state = ?, updated_at = UTC_TIMESTAMP()
		WHERE id = ? AND state = ?`
	res, err := r.db.Exec(q, model.AuctionClosed, auctionID, model.AuctionOngoing)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}

	// No row claimed: distinguish a missing auction from one in another state.
	var exists bool
	if err := r.db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM auctions WHERE id = ?)`, auctionID); err != nil {
		return false, err
	}
	if !exists {
		return false, fmt.Errorf("close auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return false, nil
}

func (r *MySQLRepo) ExistsByLotID(lotID string) (bool, error) {
	var exists bool
	err := r.db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM auctions WHERE lot_id = ?)`, lotID)
	return exists, err
}

func (r *MySQLRepo) SaveBid(bid model.Bid) error {
	const q = `INSERT INTO bids (id, auction_id, amount, until_time, state, created_by, modified_by, created_at, updated_at)
		VALUES (:id, :auction_id, :amount, :until_time, :state, :created_by, :modified_by, :created_at, :updated_at)
		ON DUPLICATE KEY UPDATE amount = VALUES(amount), until_time = VALUES(until_time),
			state = VALUES(state), modified_by = VALUES(modified_by), updated_at = VALUES(updated_at)`
	_, err := r.db.NamedExec(q, bid)
	return err
}

func (r *MySQLRepo) GetBidByID(bidID string) (model.Bid, error) {
	var bid model.Bid
	err := r.db.Get(&bid, `SELECT * FROM bids WHERE id = ?`, bidID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Bid{}, fmt.Errorf("get bid %s: %w", bidID, auctionerrors.ErrBidNotFound)
	}
	return bid, err
}

func (r *MySQLRepo) GetAllBids() ([]model.Bid, error) {
	bids := []model.Bid{}
	err := r.db.Select(&bids, `SELECT * FROM bids ORDER BY created_at`)
	return bids, err
}

func (r *MySQLRepo) GetBidsByAuctionID(auctionID string) ([]model.Bid, error) {
	bids := []model.Bid{}
	err := r.db.Select(&bids, `SELECT * FROM bids WHERE auction_id = ? ORDER BY created_at`, auctionID)
	return bids, err
}

func (r *MySQLRepo) SetStateForAuctionCreatedBids(auctionID string, state model.BidState) error {
	const q = `UPDATE bids SET state = ?, updated_at = UTC_TIMESTAMP()
		WHERE auction_id = ? AND state = ?`
	_, err := r.db.Exec(q, state, auctionID, model.BidCreated)
	return err
}

func (r *MySQLRepo) SetOutdatedForExpiredCreatedBids(now time.Time) (int, error) {
	const q = `UPDATE bids SET state = ?, updated_at = ?
		WHERE state = ? AND until_time IS NOT NULL AND until_time <= ?`
	res, err := r.db.Exec(q, model.BidOutdated, now, model.BidCreated, now)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (r *MySQLRepo) SavePayment(payment model.Payment) error {
	const q = `INSERT INTO payments (id, auction_id, amount, link, state, created_by, modified_by, created_at, updated_at)
		VALUES (:id, :auction_id, :amount, :link, :state, :created_by, :modified_by, :created_at, :updated_at)
		ON DUPLICATE KEY UPDATE amount = VALUES(amount), link = VALUES(link),
			state = VALUES(state), modified_by = VALUES(modified_by), updated_at = VALUES(updated_at)`
	_, err := r.db.NamedExec(q, payment)
	return err
}

func (r *MySQLRepo) GetPaymentByID(paymentID string) (model.Payment, error) {
	var payment model.Payment
	err := r.db.Get(&payment, `SELECT * FROM payments WHERE id = ?`, paymentID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Payment{}, fmt.Errorf("get payment %s: %w", paymentID, auctionerrors.ErrPaymentNotFound)
	}
	return payment, err
}

func (r *MySQLRepo) GetPaymentsByAuctionID(auctionID string) ([]model.Payment, error) {
	payments := []model.Payment{}
	err := r.db.Select(&payments, `SELECT * FROM payments WHERE auction_id = ? ORDER BY created_at`, auctionID)
	return payments, err
}
