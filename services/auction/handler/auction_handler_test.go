package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"auction-client/internal/auctionerrors"
	model "auction-client/internal/models"
	"auction-client/internal/repository"
	"auction-client/services/auction/helpers"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func setupRouter(h *AuctionHandler, authenticatedAs string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	inject := func(c *gin.Context) {
		if authenticatedAs != "" {
			c.Set(userIDKey, authenticatedAs)
		}
		c.Next()
	}

	router.GET("/api/auctions", inject, h.ListAuctionsHandler)
	router.GET("/api/auctions/:id", inject, h.GetAuctionHandler)
	router.GET("/api/users/:user_id/auctions", inject, h.GetUserAuctionsHandler)
	router.POST("/api/auctions", inject, h.CreateAuctionHandler)
	router.PUT("/api/auctions/:id", inject, h.UpdateAuctionHandler)
	router.DELETE("/api/auctions/:id", inject, h.DeleteAuctionHandler)
	router.POST("/api/auctions/:id/bid", inject, h.PlaceBidHandler)
	return router
}

func performJSON(router *gin.Engine, method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if raw, ok := body.([]byte); ok {
		reader = bytes.NewReader(raw)
	} else if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sampleAuction(auctionID string) model.Auction {
	amount := decimal.NewFromInt(150)
	return model.Auction{
		AuctionID:        auctionID,
		Title:            "Vintage Watch Collection",
		Description:      "Rare collection of vintage watches",
		StartingPrice:    decimal.NewFromInt(100),
		MinimumIncrement: decimal.NewFromInt(10),
		CurrentBid:       &amount,
		EndTime:          time.Now().UTC().Add(24 * time.Hour),
		SellerID:         "seller1",
		Bids: []model.Bid{
			{BidID: "bid1", BidderID: "user1", BidderName: "Alice", Amount: amount, CreatedAt: time.Now().UTC()},
		},
	}
}

// Test GetAuctionHandler
func TestGetAuctionHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := repository.NewMockAuctionStore(ctrl)
	handler := NewAuctionHandler(mockStore)

	t.Run("found_authenticated", func(t *testing.T) {
		mockStore.EXPECT().GetAuction("a1").Return(sampleAuction("a1"), nil)

		w := performJSON(setupRouter(handler, "user1"), http.MethodGet, "/api/auctions/a1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var auction model.Auction
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &auction))
		require.Equal(t, "a1", auction.AuctionID)
		require.Equal(t, "user1", auction.Bids[0].BidderID)
	})

	t.Run("found_anonymous_strips_bidders", func(t *testing.T) {
		mockStore.EXPECT().GetAuction("a1").Return(sampleAuction("a1"), nil)

		w := performJSON(setupRouter(handler, ""), http.MethodGet, "/api/auctions/a1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var auction model.Auction
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &auction))
		require.Len(t, auction.Bids, 1)
		require.Empty(t, auction.Bids[0].BidderID)
		require.Empty(t, auction.Bids[0].BidderName)
		// Amounts stay visible either way
		require.True(t, auction.Bids[0].Amount.Equal(decimal.NewFromInt(150)))
	})

	t.Run("not_found", func(t *testing.T) {
		mockStore.EXPECT().GetAuction("missing").Return(model.Auction{}, auctionerrors.ErrAuctionNotFound)

		w := performJSON(setupRouter(handler, "user1"), http.MethodGet, "/api/auctions/missing", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
		require.Contains(t, w.Body.String(), "error")
	})
}

// Test ListAuctionsHandler
func TestListAuctionsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := repository.NewMockAuctionStore(ctrl)
	handler := NewAuctionHandler(mockStore)

	t.Run("authenticated_sees_bidders", func(t *testing.T) {
		mockStore.EXPECT().ListAuctions().Return([]model.Auction{sampleAuction("a1"), sampleAuction("a2")}, nil)

		w := performJSON(setupRouter(handler, "user1"), http.MethodGet, "/api/auctions", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var auctions []model.Auction
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &auctions))
		require.Len(t, auctions, 2)
		require.Equal(t, "user1", auctions[0].Bids[0].BidderID)
	})

	t.Run("anonymous_strips_bidders", func(t *testing.T) {
		mockStore.EXPECT().ListAuctions().Return([]model.Auction{sampleAuction("a1")}, nil)

		w := performJSON(setupRouter(handler, ""), http.MethodGet, "/api/auctions", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var auctions []model.Auction
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &auctions))
		require.Len(t, auctions, 1)
		require.Empty(t, auctions[0].Bids[0].BidderID)
	})
}

// Test GetUserAuctionsHandler
func TestGetUserAuctionsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := repository.NewMockAuctionStore(ctrl)
	handler := NewAuctionHandler(mockStore)
	router := setupRouter(handler, "seller1")

	t.Run("with_auctions", func(t *testing.T) {
		mockStore.EXPECT().GetAuctionsBySeller("seller1").Return([]model.Auction{sampleAuction("a1"), sampleAuction("a2")}, nil)

		w := performJSON(router, http.MethodGet, "/api/users/seller1/auctions", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var auctions []model.Auction
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &auctions))
		require.Len(t, auctions, 2)
	})

	t.Run("nil_becomes_empty_array", func(t *testing.T) {
		mockStore.EXPECT().GetAuctionsBySeller("seller1").Return(nil, nil)

		w := performJSON(router, http.MethodGet, "/api/users/seller1/auctions", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, "[]", w.Body.String())
	})
}

// Test CreateAuctionHandler
func TestCreateAuctionHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := repository.NewMockAuctionStore(ctrl)
	handler := NewAuctionHandler(mockStore)
	router := setupRouter(handler, "seller1")

	validRequest := func() helpers.CreateAuctionRequest {
		return helpers.CreateAuctionRequest{
			Title:            "New Listing",
			Description:      "Description",
			StartingPrice:    decimal.NewFromInt(100),
			MinimumIncrement: decimal.NewFromInt(10),
			EndTime:          time.Now().UTC().Add(48 * time.Hour),
		}
	}

	tests := []struct {
		name           string
		body           any
		mockSetup      func()
		expectedStatus int
	}{
		{
			name: "success",
			body: validRequest(),
			mockSetup: func() {
				mockStore.EXPECT().CreateAuction(gomock.Any()).DoAndReturn(func(a model.Auction) (model.Auction, error) {
					require.Equal(t, "seller1", a.SellerID)
					a.AuctionID = "created-id"
					return a, nil
				})
			},
			expectedStatus: http.StatusCreated,
		},
		{name: "invalid_json", body: []byte(`{invalid`), mockSetup: func() {}, expectedStatus: http.StatusUnprocessableEntity},
		{
			name: "missing_title",
			body: func() helpers.CreateAuctionRequest {
				r := validRequest()
				r.Title = ""
				return r
			}(),
			mockSetup:      func() {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "non_positive_price",
			body: func() helpers.CreateAuctionRequest {
				r := validRequest()
				r.StartingPrice = decimal.NewFromInt(-5)
				return r
			}(),
			mockSetup:      func() {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "end_time_in_past",
			body: func() helpers.CreateAuctionRequest {
				r := validRequest()
				r.EndTime = time.Now().UTC().Add(-time.Hour)
				return r
			}(),
			mockSetup:      func() {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			w := performJSON(router, http.MethodPost, "/api/auctions", tc.body)
			require.Equal(t, tc.expectedStatus, w.Code)

			if tc.expectedStatus == http.StatusCreated {
				var auction model.Auction
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &auction))
				require.Equal(t, "created-id", auction.AuctionID)
			} else {
				require.Contains(t, w.Body.String(), "error")
			}
		})
	}
}

// Test UpdateAuctionHandler error mapping
func TestUpdateAuctionHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := repository.NewMockAuctionStore(ctrl)
	handler := NewAuctionHandler(mockStore)
	router := setupRouter(handler, "seller1")

	body := helpers.UpdateAuctionRequest{
		Title:            "Edited",
		Description:      "Edited description",
		MinimumIncrement: decimal.NewFromInt(20),
	}

	tests := []struct {
		name           string
		storeErr       error
		expectedStatus int
	}{
		{name: "success", storeErr: nil, expectedStatus: http.StatusOK},
		{name: "not_owner_maps_403", storeErr: auctionerrors.ErrNotOwner, expectedStatus: http.StatusForbidden},
		{name: "not_found_maps_404", storeErr: auctionerrors.ErrAuctionNotFound, expectedStatus: http.StatusNotFound},
		{name: "ended_maps_400", storeErr: auctionerrors.ErrAuctionEnded, expectedStatus: http.StatusBadRequest},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if tc.storeErr != nil {
				mockStore.EXPECT().UpdateAuction("a1", "seller1", gomock.Any()).Return(model.Auction{}, tc.storeErr)
			} else {
				mockStore.EXPECT().UpdateAuction("a1", "seller1", gomock.Any()).Return(sampleAuction("a1"), nil)
			}

			w := performJSON(router, http.MethodPut, "/api/auctions/a1", body)
			require.Equal(t, tc.expectedStatus, w.Code)
		})
	}
}

// Test PlaceBidHandler
func TestPlaceBidHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := repository.NewMockAuctionStore(ctrl)
	handler := NewAuctionHandler(mockStore)
	router := setupRouter(handler, "user2")

	t.Run("success_returns_updated_auction", func(t *testing.T) {
		mockStore.EXPECT().PlaceBid("a1", gomock.Any()).DoAndReturn(func(auctionID string, bid model.Bid) (model.Auction, error) {
			require.Equal(t, "user2", bid.BidderID)
			require.True(t, bid.Amount.Equal(decimal.NewFromInt(160)))
			updated := sampleAuction("a1")
			updated.Bids = append(updated.Bids, bid)
			amount := bid.Amount
			updated.CurrentBid = &amount
			return updated, nil
		})

		w := performJSON(router, http.MethodPost, "/api/auctions/a1/bid", helpers.PlaceBidRequest{Amount: decimal.NewFromInt(160)})
		require.Equal(t, http.StatusOK, w.Code)

		var auction model.Auction
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &auction))
		require.Len(t, auction.Bids, 2)
		require.True(t, auction.CurrentBid.Equal(decimal.NewFromInt(160)))
	})

	t.Run("bid_too_low_maps_400", func(t *testing.T) {
		mockStore.EXPECT().PlaceBid("a1", gomock.Any()).Return(model.Auction{}, auctionerrors.ErrBidTooLow)

		w := performJSON(router, http.MethodPost, "/api/auctions/a1/bid", helpers.PlaceBidRequest{Amount: decimal.NewFromInt(10)})
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Contains(t, w.Body.String(), "Bid amount too low")
	})

	t.Run("ended_auction_maps_400", func(t *testing.T) {
		mockStore.EXPECT().PlaceBid("a1", gomock.Any()).Return(model.Auction{}, auctionerrors.ErrAuctionEnded)

		w := performJSON(router, http.MethodPost, "/api/auctions/a1/bid", helpers.PlaceBidRequest{Amount: decimal.NewFromInt(500)})
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Contains(t, w.Body.String(), "Auction has ended")
	})

	t.Run("non_positive_amount_rejected_before_store", func(t *testing.T) {
		w := performJSON(router, http.MethodPost, "/api/auctions/a1/bid", helpers.PlaceBidRequest{Amount: decimal.NewFromInt(-1)})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// Test DeleteAuctionHandler
func TestDeleteAuctionHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := repository.NewMockAuctionStore(ctrl)
	handler := NewAuctionHandler(mockStore)
	router := setupRouter(handler, "seller1")

	t.Run("success", func(t *testing.T) {
		mockStore.EXPECT().DeleteAuction("a1", "seller1").Return(nil)

		w := performJSON(router, http.MethodDelete, "/api/auctions/a1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "deleted")
	})

	t.Run("not_owner", func(t *testing.T) {
		mockStore.EXPECT().DeleteAuction("a1", "seller1").Return(auctionerrors.ErrNotOwner)

		w := performJSON(router, http.MethodDelete, "/api/auctions/a1", nil)
		require.Equal(t, http.StatusForbidden, w.Code)
	})
}
