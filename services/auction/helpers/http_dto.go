package helpers

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Request DTOs. Bodies use the camelCase field names of the backend contract;
// auction resources come back in the snake_case encoding of internal/models.

type CreateAuctionRequest struct {
	Title            string          `json:"title" binding:"required"`
	Description      string          `json:"description" binding:"required"`
	StartingPrice    decimal.Decimal `json:"startingPrice" binding:"required"`
	MinimumIncrement decimal.Decimal `json:"minimumIncrement" binding:"required"`
	EndTime          time.Time       `json:"endTime" binding:"required"`
	ImageURL         string          `json:"imageUrl,omitempty"`
	Category         string          `json:"category,omitempty"`
}

// Validate enforces the field rules that produce a 422 server-side and a
// not-sent ValidationError client-side.
func (r CreateAuctionRequest) Validate(now time.Time) error {
	if !r.StartingPrice.IsPositive() {
		return fmt.Errorf("starting price must be greater than 0")
	}
	if !r.MinimumIncrement.IsPositive() {
		return fmt.Errorf("minimum increment must be greater than 0")
	}
	if !r.EndTime.After(now) {
		return fmt.Errorf("end time must be in the future")
	}
	return nil
}

type UpdateAuctionRequest struct {
	Title            string          `json:"title" binding:"required"`
	Description      string          `json:"description" binding:"required"`
	MinimumIncrement decimal.Decimal `json:"minimumIncrement" binding:"required"`
	// ImageURL: absent or null leaves the image untouched, explicit "" removes it
	ImageURL *string `json:"imageUrl,omitempty"`
}

func (r UpdateAuctionRequest) Validate() error {
	if !r.MinimumIncrement.IsPositive() {
		return fmt.Errorf("minimum increment must be greater than 0")
	}
	return nil
}

type PlaceBidRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}
