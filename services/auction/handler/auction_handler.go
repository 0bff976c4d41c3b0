package handler

import (
	"net/http"
	"time"

	model "auction-client/internal/models"
	"auction-client/internal/repository"
	"auction-client/services/auction/helpers"
	"auction-client/utils"

	"github.com/gin-gonic/gin"
)

// userIDKey is the context key the auth middleware sets for the caller
const userIDKey = "user_id"

type AuctionHandler struct {
	store repository.AuctionStore
}

func NewAuctionHandler(store repository.AuctionStore) *AuctionHandler {
	return &AuctionHandler{store: store}
}

// GetAuctionHandler handles GET /api/auctions/:id. The route is reachable
// without a session; unauthenticated callers get the auction with
// bidder-specific fields stripped.
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("id")

	auction, err := h.store.GetAuction(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, message)
		utils.Warn("GetAuctionHandler: error retrieving auction", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	if _, authenticated := c.Get(userIDKey); !authenticated {
		auction = stripBidderFields(auction)
	}

	c.JSON(http.StatusOK, auction)
}

// ListAuctionsHandler handles GET /api/auctions, the open browse view.
// Anonymous callers get the same identity stripping as single-auction reads.
func (h *AuctionHandler) ListAuctionsHandler(c *gin.Context) {
	auctions, err := h.store.ListAuctions()
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, message)
		utils.Error("ListAuctionsHandler: error listing auctions", map[string]any{"error": err.Error()})
		return
	}

	if _, authenticated := c.Get(userIDKey); !authenticated {
		for i, a := range auctions {
			auctions[i] = stripBidderFields(a)
		}
	}

	c.JSON(http.StatusOK, auctions)
}

// GetUserAuctionsHandler handles GET /api/users/:user_id/auctions
func (h *AuctionHandler) GetUserAuctionsHandler(c *gin.Context) {
	sellerID := c.Param("user_id")

	auctions, err := h.store.GetAuctionsBySeller(sellerID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, message)
		utils.Warn("GetUserAuctionsHandler: error retrieving auctions", map[string]any{"seller_id": sellerID, "error": err.Error()})
		return
	}

	if auctions == nil {
		auctions = []model.Auction{}
	}

	c.JSON(http.StatusOK, auctions)
	helpers.LogSuccess("GetUserAuctionsHandler", "auctions retrieved successfully", map[string]any{
		"seller_id": sellerID,
		"count":     len(auctions),
	})
}

// CreateAuctionHandler handles POST /api/auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}
	if err := req.Validate(time.Now().UTC()); err != nil {
		utils.JSONError(c, http.StatusUnprocessableEntity, err.Error())
		utils.Warn("CreateAuctionHandler: invalid auction data", map[string]any{"error": err.Error()})
		return
	}

	auction := model.Auction{
		Title:            req.Title,
		Description:      req.Description,
		StartingPrice:    req.StartingPrice,
		MinimumIncrement: req.MinimumIncrement,
		EndTime:          req.EndTime.UTC(),
		ImageURL:         req.ImageURL,
		SellerID:         c.GetString(userIDKey),
	}

	created, err := h.store.CreateAuction(auction)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, message)
		utils.Error("CreateAuctionHandler: failed to create auction", map[string]any{
			"seller_id": auction.SellerID,
			"error":     err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, created)
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id": created.AuctionID,
		"seller_id":  created.SellerID,
	})
}

// UpdateAuctionHandler handles PUT /api/auctions/:id
func (h *AuctionHandler) UpdateAuctionHandler(c *gin.Context) {
	auctionID := c.Param("id")

	var req helpers.UpdateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateAuctionHandler", err)
		return
	}
	if err := req.Validate(); err != nil {
		utils.JSONError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	update := model.AuctionUpdate{
		Title:            req.Title,
		Description:      req.Description,
		MinimumIncrement: req.MinimumIncrement,
		ImageURL:         req.ImageURL,
	}

	updated, err := h.store.UpdateAuction(auctionID, c.GetString(userIDKey), update)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, message)
		utils.Warn("UpdateAuctionHandler: failed to update auction", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
	helpers.LogSuccess("UpdateAuctionHandler", "auction updated successfully", map[string]any{
		"auction_id": auctionID,
	})
}

// DeleteAuctionHandler handles DELETE /api/auctions/:id
func (h *AuctionHandler) DeleteAuctionHandler(c *gin.Context) {
	auctionID := c.Param("id")

	if err := h.store.DeleteAuction(auctionID, c.GetString(userIDKey)); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, message)
		utils.Warn("DeleteAuctionHandler: failed to delete auction", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	utils.JSONMessage(c, http.StatusOK, "auction deleted successfully")
	helpers.LogSuccess("DeleteAuctionHandler", "auction deleted successfully", map[string]any{
		"auction_id": auctionID,
	})
}

// PlaceBidHandler handles POST /api/auctions/:id/bid. Admission here is
// authoritative: a client whose local validation passed can still be rejected
// when a concurrent bid raised the threshold first.
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	auctionID := c.Param("id")

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}
	if !req.Amount.IsPositive() {
		utils.JSONError(c, http.StatusBadRequest, "Bid amount must be greater than 0")
		return
	}

	bid := model.Bid{
		BidderID:  c.GetString(userIDKey),
		Amount:    req.Amount,
		CreatedAt: time.Now().UTC(),
	}

	updated, err := h.store.PlaceBid(auctionID, bid)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, message)
		utils.Warn("PlaceBidHandler: bid rejected", map[string]any{
			"auction_id": auctionID,
			"bidder_id":  bid.BidderID,
			"amount":     req.Amount.String(),
			"error":      err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, updated)
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"auction_id": auctionID,
		"bidder_id":  bid.BidderID,
		"amount":     req.Amount.String(),
	})
}

// stripBidderFields blanks bidder identities for unauthenticated reads
func stripBidderFields(a model.Auction) model.Auction {
	bids := make([]model.Bid, len(a.Bids))
	for i, b := range a.Bids {
		b.BidderID = ""
		b.BidderName = ""
		bids[i] = b
	}
	a.Bids = bids
	a.WinnerID = ""
	return a
}
