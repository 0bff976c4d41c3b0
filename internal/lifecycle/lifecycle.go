// Package lifecycle derives the Pending/Active/Completed bucket of an auction
// from its closing time and bid history. Buckets are never stored: "now" is a
// moving input, so every caller recomputes from scratch.
package lifecycle

import (
	"time"

	"auction-client/internal/models"
)

// Status is the lifecycle bucket of a single auction
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Buckets is a total partition of a set of auctions: each input auction
// appears in exactly one slice.
type Buckets struct {
	Pending   []models.Auction
	Active    []models.Auction
	Completed []models.Auction
}

// StatusOf evaluates the fixed priority rule for one auction. Closing time
// dominates bid presence: an ended auction is completed whether or not it
// received bids.
func StatusOf(a models.Auction, now time.Time) Status {
	switch {
	case a.Ended(now):
		return StatusCompleted
	case a.HasBids():
		return StatusActive
	default:
		return StatusPending
	}
}

// Classify partitions auctions into lifecycle buckets against a single
// reference instant. The partition is order-independent and carries no state
// between calls.
func Classify(auctions []models.Auction, now time.Time) Buckets {
	var b Buckets
	for _, a := range auctions {
		switch StatusOf(a, now) {
		case StatusCompleted:
			b.Completed = append(b.Completed, a)
		case StatusActive:
			b.Active = append(b.Active, a)
		default:
			b.Pending = append(b.Pending, a)
		}
	}
	return b
}
