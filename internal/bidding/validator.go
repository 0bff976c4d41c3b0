// Package bidding implements client-side bid admission control: computing the
// minimum acceptable next bid and rejecting obviously-futile submissions
// before they reach the network. The backend remains the authority on the
// final outcome; a concurrent bid may raise the threshold between validation
// and submission, and a server rejection always overrides a local accept.
package bidding

import (
	"fmt"

	"auction-client/internal/auctionerrors"
	"auction-client/internal/models"

	"github.com/shopspring/decimal"
)

// MinimumNextBid returns the smallest amount the auction will accept next:
// the current bid plus the minimum increment, or the starting price when no
// bids exist yet.
func MinimumNextBid(a models.Auction) decimal.Decimal {
	if a.CurrentBid != nil {
		return a.CurrentBid.Add(a.MinimumIncrement)
	}
	return a.StartingPrice
}

// ValidateBid accepts or rejects a candidate amount. Rejection reasons are
// checked in priority order: a missing session wins over an insufficient
// amount. The minimum boundary is inclusive - a bid equal to MinimumNextBid
// is accepted.
func ValidateBid(amount decimal.Decimal, a models.Auction, authenticated bool) error {
	if !authenticated {
		return fmt.Errorf("bidding: %w", auctionerrors.ErrNotAuthenticated)
	}
	if minimum := MinimumNextBid(a); amount.LessThan(minimum) {
		return fmt.Errorf("bidding: %w - minimum next bid is %s", auctionerrors.ErrBidBelowMinimum, minimum.StringFixed(2))
	}
	return nil
}
