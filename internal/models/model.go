package models

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// User represents a marketplace account
type User struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// Auction represents a timed listing. CurrentBid is nil until the first bid
// is accepted; once set it always equals the amount of the most recent bid.
type Auction struct {
	AuctionID        string           `json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	StartingPrice    decimal.Decimal  `json:"starting_price"`
	MinimumIncrement decimal.Decimal  `json:"minimum_increment"`
	CurrentBid       *decimal.Decimal `json:"current_bid,omitempty"`
	EndTime          time.Time        `json:"end_time"`
	Bids             []Bid            `json:"bids"`
	ImageURL         string           `json:"image_url,omitempty"`
	SellerID         string           `json:"seller_id"`
	WinnerID         string           `json:"winner_id,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}

// Bid represents a single accepted bid on an auction
type Bid struct {
	BidID      string          `json:"bid_id"`
	BidderID   string          `json:"bidder_id"`
	BidderName string          `json:"bidder_name,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	CreatedAt  time.Time       `json:"time"`
}

// AuctionUpdate carries the fields an owner may change on an open auction.
// A nil ImageURL (field absent or JSON null) leaves the image untouched; only
// an explicit "" removes it.
type AuctionUpdate struct {
	Title            string
	Description      string
	MinimumIncrement decimal.Decimal
	ImageURL         *string
}

// HasBids reports whether at least one bid has been accepted
func (a Auction) HasBids() bool {
	return len(a.Bids) > 0
}

// Ended reports whether the auction closed strictly before now
func (a Auction) Ended(now time.Time) bool {
	return a.EndTime.Before(now)
}

// BidsChronological returns a copy of the bid history sorted oldest first.
// The wire order of the bids array is inconsistent between backend views, so
// anything that depends on order must go through here instead of relying on
// slice position.
func (a Auction) BidsChronological() []Bid {
	bids := append([]Bid(nil), a.Bids...)
	sort.SliceStable(bids, func(i, j int) bool {
		return bids[i].CreatedAt.Before(bids[j].CreatedAt)
	})
	return bids
}

// HighestBid returns the most recent bid and true, or a zero Bid and false
// when no bids exist. Bid amounts are strictly increasing chronologically, so
// the latest bid is also the highest.
func (a Auction) HighestBid() (Bid, bool) {
	if len(a.Bids) == 0 {
		return Bid{}, false
	}
	bids := a.BidsChronological()
	return bids[len(bids)-1], true
}
