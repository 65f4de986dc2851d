package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	auction "auction-house/internal/auctionService"
	bid "auction-house/internal/bidService"
	"auction-house/internal/gateway"
	lot "auction-house/internal/lotService"
	model "auction-house/internal/models"
	payment "auction-house/internal/paymentService"
	"auction-house/internal/repository"
	"auction-house/internal/server"
	user "auction-house/internal/userService"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
)

// testEnv bundles the router with the handles the tests poke directly.
type testEnv struct {
	router *gin.Engine
	repo   *repository.MemoryRepo
	clock  *utils.FixedClock
}

// SetupTestEnv wires the full service stack over an in-memory repository, a
// fake payment gateway and a fixed clock.
func SetupTestEnv(t *testing.T, clock *utils.FixedClock) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepo()
	gw := gateway.NewFakeGateway()

	lotService := lot.NewLotService(repo, repo, repo, clock)
	userService := user.NewUserService(repo)
	auctionService := auction.NewAuctionService(repo, repo, repo, repo, clock)
	bidService := bid.NewBidService(repo, repo, repo, clock)
	paymentService := payment.NewPaymentService(repo, repo, repo, gw, clock)

	router := server.SetupRouter(lotService, userService, auctionService, bidService, paymentService)
	return &testEnv{router: router, repo: repo, clock: clock}
}

// ExecuteRequestAndParse executes an HTTP request on the router and parses the
// JSON envelope.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}

// data extracts the data object from a response envelope.
func data(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	d, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("response has no data object: %v", resp)
	}
	return d
}

// seedUser registers a user straight through the store.
func (e *testEnv) seedUser(t *testing.T, userID string) {
	t.Helper()
	if err := e.repo.SaveUser(model.User{UserID: userID, Username: userID}); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
}
