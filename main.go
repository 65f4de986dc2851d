package main

import (
	"context"
	"fmt"
	"os"

	"auction-house/internal/accounting"
	auction "auction-house/internal/auctionService"
	bid "auction-house/internal/bidService"
	"auction-house/internal/config"
	"auction-house/internal/gateway"
	"auction-house/internal/jobs"
	lot "auction-house/internal/lotService"
	model "auction-house/internal/models"
	payment "auction-house/internal/paymentService"
	"auction-house/internal/repository"
	"auction-house/internal/server"
	user "auction-house/internal/userService"
	"auction-house/utils"
)

// stores bundles the five store interfaces one backend satisfies together.
type stores struct {
	lots     repository.LotStore
	users    repository.UserStore
	auctions repository.AuctionStore
	bids     repository.BidStore
	payments repository.PaymentStore
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	st, err := openStores(cfg)
	if err != nil {
		utils.Fatal("failed to open storage", map[string]any{"storage": cfg.Storage, "error": err.Error()})
	}

	// The reconciliation worker stamps the payments it creates with this
	// identity, so it must exist before the first sweep.
	systemUser := model.User{UserID: cfg.SystemUsername, Username: cfg.SystemUsername}
	if err := st.users.SaveUser(systemUser); err != nil {
		utils.Fatal("failed to seed system user", map[string]any{"error": err.Error()})
	}

	clock := utils.SystemClock{}
	paymentGateway := gateway.NewFakeGateway()

	lotService := lot.NewLotService(st.lots, st.auctions, st.users, clock)
	userService := user.NewUserService(st.users)
	auctionService := auction.NewAuctionService(st.auctions, st.bids, st.lots, st.users, clock)
	bidService := bid.NewBidService(st.bids, st.auctions, st.users, clock)
	paymentService := payment.NewPaymentService(st.payments, st.auctions, st.users, paymentGateway, clock)

	worker := jobs.NewReconciliationWorker(
		st.auctions, st.bids, st.payments,
		accounting.NewAcceptedBidAccounting(st.bids),
		paymentService, clock, systemUser.UserID, cfg.SweepInterval,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go worker.Run(ctx)

	router := server.SetupRouter(lotService, userService, auctionService, bidService, paymentService)

	addr := ":" + cfg.Port
	utils.Info("starting auction server", map[string]any{"addr": addr, "storage": cfg.Storage})
	if err := router.Run(addr); err != nil {
		utils.Fatal("server stopped", map[string]any{"error": err.Error()})
	}
}

// openStores picks the storage backend from configuration. Both backends
// implement all five store interfaces on one type.
func openStores(cfg config.Config) (stores, error) {
	switch cfg.Storage {
	case "mysql":
		db, err := repository.OpenMySQL(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			return stores{}, err
		}
		repo := repository.NewMySQLRepo(db)
		return stores{lots: repo, users: repo, auctions: repo, bids: repo, payments: repo}, nil
	default:
		repo := repository.NewMemoryRepo()
		return stores{lots: repo, users: repo, auctions: repo, bids: repo, payments: repo}, nil
	}
}
