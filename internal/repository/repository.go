package repository

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"auction-client/internal/auctionerrors"
	"auction-client/internal/bidding"
	model "auction-client/internal/models"
	"auction-client/utils"
)

// AuctionStore defines the auction storage behind the stub backend
type AuctionStore interface {
	CreateAuction(a model.Auction) (model.Auction, error)
	GetAuction(auctionID string) (model.Auction, error)
	ListAuctions() ([]model.Auction, error)
	GetAuctionsBySeller(sellerID string) ([]model.Auction, error)
	UpdateAuction(auctionID, sellerID string, update model.AuctionUpdate) (model.Auction, error)
	DeleteAuction(auctionID, sellerID string) error
	PlaceBid(auctionID string, bid model.Bid) (model.Auction, error)
}

// MemoryStore is a concurrency-safe in-memory implementation of AuctionStore
type MemoryStore struct {
	mu       sync.RWMutex
	auctions map[string]model.Auction // key: auctionID
	now      func() time.Time
}

// NewMemoryStore creates a new in-memory store instance
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		auctions: make(map[string]model.Auction),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SetClock overrides the store's time source. This method is intended for tests only.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// CreateAuction stores a new listing, assigning an ID when absent
func (s *MemoryStore) CreateAuction(a model.Auction) (model.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.AuctionID == "" {
		a.AuctionID = utils.GenerateID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now()
	}
	if _, exists := s.auctions[a.AuctionID]; exists {
		return model.Auction{}, fmt.Errorf("create auction %s: already exists: %w", a.AuctionID, auctionerrors.ErrInvalidAuction)
	}
	s.auctions[a.AuctionID] = a
	return s.withDerived(a), nil
}

// GetAuction returns one auction by ID
func (s *MemoryStore) GetAuction(auctionID string) (model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return s.withDerived(a), nil
}

// ListAuctions returns every stored auction, newest listing first
func (s *MemoryStore) ListAuctions() ([]model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	auctions := make([]model.Auction, 0, len(s.auctions))
	for _, a := range s.auctions {
		auctions = append(auctions, s.withDerived(a))
	}
	sort.Slice(auctions, func(i, j int) bool {
		return auctions[i].CreatedAt.After(auctions[j].CreatedAt)
	})
	return auctions, nil
}

// GetAuctionsBySeller returns every auction authored by the given seller
func (s *MemoryStore) GetAuctionsBySeller(sellerID string) ([]model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	auctions := make([]model.Auction, 0)
	for _, a := range s.auctions {
		if a.SellerID == sellerID {
			auctions = append(auctions, s.withDerived(a))
		}
	}
	return auctions, nil
}

// UpdateAuction applies owner edits to an open auction
func (s *MemoryStore) UpdateAuction(auctionID, sellerID string, update model.AuctionUpdate) (model.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("update auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if a.SellerID != sellerID {
		return model.Auction{}, fmt.Errorf("update auction %s: %w", auctionID, auctionerrors.ErrNotOwner)
	}
	if a.EndTime.Before(s.now()) {
		return model.Auction{}, fmt.Errorf("update auction %s: %w", auctionID, auctionerrors.ErrAuctionEnded)
	}
	if update.Title == "" || update.Description == "" || !update.MinimumIncrement.IsPositive() {
		return model.Auction{}, fmt.Errorf("update auction %s: %w", auctionID, auctionerrors.ErrInvalidAuction)
	}

	a.Title = update.Title
	a.Description = update.Description
	a.MinimumIncrement = update.MinimumIncrement
	if update.ImageURL != nil {
		a.ImageURL = *update.ImageURL
	}
	s.auctions[auctionID] = a
	return s.withDerived(a), nil
}

// DeleteAuction removes an auction owned by the given seller
func (s *MemoryStore) DeleteAuction(auctionID, sellerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.auctions[auctionID]
	if !ok {
		return fmt.Errorf("delete auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if a.SellerID != sellerID {
		return fmt.Errorf("delete auction %s: %w", auctionID, auctionerrors.ErrNotOwner)
	}
	delete(s.auctions, auctionID)
	return nil
}

// PlaceBid appends a bid to an open auction, enforcing the monotonic
// increment rule the client can only pre-check. The minimum boundary is
// inclusive.
func (s *MemoryStore) PlaceBid(auctionID string, bid model.Bid) (model.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("place bid on auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if a.EndTime.Before(s.now()) {
		return model.Auction{}, fmt.Errorf("place bid on auction %s: %w", auctionID, auctionerrors.ErrAuctionEnded)
	}
	if minimum := bidding.MinimumNextBid(a); bid.Amount.LessThan(minimum) {
		return model.Auction{}, fmt.Errorf("place bid on auction %s: %w - minimum is %s", auctionID, auctionerrors.ErrBidTooLow, minimum.StringFixed(2))
	}

	if bid.BidID == "" {
		bid.BidID = utils.GenerateID()
	}
	if bid.CreatedAt.IsZero() {
		bid.CreatedAt = s.now()
	}

	a.Bids = append(append([]model.Bid(nil), a.Bids...), bid)
	amount := bid.Amount
	a.CurrentBid = &amount
	s.auctions[auctionID] = a
	return s.withDerived(a), nil
}

// withDerived fills read-time derived fields: the winner of a closed auction
// is the highest bidder. Stored state is never mutated.
func (s *MemoryStore) withDerived(a model.Auction) model.Auction {
	a.Bids = append([]model.Bid(nil), a.Bids...)
	if a.WinnerID == "" && a.EndTime.Before(s.now()) {
		if winning, ok := a.HighestBid(); ok {
			a.WinnerID = winning.BidderID
		}
	}
	return a
}
