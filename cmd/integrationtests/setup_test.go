package integrationtests

import (
	"net/http/httptest"
	"testing"
	"time"

	model "auction-client/internal/models"
	"auction-client/internal/repository"
	"auction-client/internal/server"
	"auction-client/services/auction/client"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// TestBackend bundles a running stub backend with its store and token issuer
// so tests can mint sessions and seed data directly.
type TestBackend struct {
	Server *httptest.Server
	Store  *repository.MemoryStore
	Tokens *server.TokenIssuer
}

// SetupTestBackend starts the full stub backend over a real HTTP listener.
func SetupTestBackend(t *testing.T) *TestBackend {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	tokens := server.NewTokenIssuer([]byte("integration-test-secret"))
	srv := httptest.NewServer(server.SetupRouter(store, tokens))
	t.Cleanup(srv.Close)

	return &TestBackend{Server: srv, Store: store, Tokens: tokens}
}

// ClientFor returns an authenticated client acting as the given user.
func (b *TestBackend) ClientFor(t *testing.T, userID string) *client.Client {
	t.Helper()
	token, err := b.Tokens.Mint(userID, time.Hour)
	require.NoError(t, err)
	return client.New(b.Server.URL, client.WithToken(token))
}

// AnonymousClient returns a client without a session.
func (b *TestBackend) AnonymousClient() *client.Client {
	return client.New(b.Server.URL)
}

// SeedAuction places an auction directly into the store.
func (b *TestBackend) SeedAuction(t *testing.T, auctionID, sellerID string, endTime time.Time) model.Auction {
	t.Helper()
	seeded, err := b.Store.CreateAuction(model.Auction{
		AuctionID:        auctionID,
		Title:            auctionID + " title",
		Description:      auctionID + " description",
		StartingPrice:    decimal.NewFromInt(100),
		MinimumIncrement: decimal.NewFromInt(10),
		EndTime:          endTime,
		SellerID:         sellerID,
	})
	require.NoError(t, err)
	return seeded
}
