package perftests

import (
	"fmt"
	"testing"
	"time"

	bid "auction-house/internal/bidService"
	model "auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/utils"
)

// seedOngoingAuction fills a repo with one ongoing auction and its owner.
func seedOngoingAuction(b *testing.B, repo *repository.MemoryRepo, auctionID string) {
	b.Helper()
	if err := repo.SaveUser(model.User{UserID: "bench-user", Username: "bench"}); err != nil {
		b.Fatal(err)
	}
	if err := repo.SaveAuction(model.Auction{AuctionID: auctionID, LotID: "lot1", State: model.AuctionOngoing}); err != nil {
		b.Fatal(err)
	}
}

// Benchmark placing bids sequentially against a single ongoing auction.
func BenchmarkBidService_CreateBid(b *testing.B) {
	repo := repository.NewMemoryRepo()
	seedOngoingAuction(b, repo, "auction1")
	service := bid.NewBidService(repo, repo, repo, utils.SystemClock{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := service.CreateBid("auction1", "bench-user", float64(i+1), nil); err != nil {
			b.Fatal(err)
		}
	}
}

// Benchmark concurrent bid placement to exercise the repository lock.
func BenchmarkBidService_CreateBid_Parallel(b *testing.B) {
	repo := repository.NewMemoryRepo()
	seedOngoingAuction(b, repo, "auction1")
	service := bid.NewBidService(repo, repo, repo, utils.SystemClock{})

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := service.CreateBid("auction1", "bench-user", 100, nil); err != nil {
				b.Fatal(err)
			}
		}
	})
}

// Benchmark the accept cascade with a growing pool of sibling bids.
func BenchmarkBidService_AcceptBid_Cascade(b *testing.B) {
	for _, siblings := range []int{10, 100, 1000} {
		siblings := siblings
		b.Run(fmt.Sprintf("siblings_%d", siblings), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				repo := repository.NewMemoryRepo()
				auctionID := "auction1"
				seedOngoingAuction(b, repo, auctionID)
				service := bid.NewBidService(repo, repo, repo, utils.SystemClock{})

				winner, err := service.CreateBid(auctionID, "bench-user", 1, nil)
				if err != nil {
					b.Fatal(err)
				}
				for j := 0; j < siblings; j++ {
					if _, err := service.CreateBid(auctionID, "bench-user", float64(j+2), nil); err != nil {
						b.Fatal(err)
					}
				}
				b.StartTimer()

				if _, err := service.AcceptBid(winner.BidID); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// Benchmark the outdate sweep across a large bid population.
func BenchmarkMemoryRepo_OutdateSweep(b *testing.B) {
	now := time.Now().UTC()
	expired := now.Add(-1 * time.Minute)

	for i := 0; i < b.N; i++ {
		b.StopTimer()
		repo := repository.NewMemoryRepo()
		for j := 0; j < 1000; j++ {
			bidRecord := model.Bid{
				BidID:     fmt.Sprintf("bid%d", j),
				AuctionID: "auction1",
				Amount:    float64(j + 1),
				State:     model.BidCreated,
			}
			if j%2 == 0 {
				bidRecord.Until = &expired
			}
			if err := repo.SaveBid(bidRecord); err != nil {
				b.Fatal(err)
			}
		}
		b.StartTimer()

		count, err := repo.SetOutdatedForExpiredCreatedBids(now)
		if err != nil {
			b.Fatal(err)
		}
		if count != 500 {
			b.Fatalf("expected 500 outdated bids, got %d", count)
		}
	}
}
